package models

// StepStatus is the lifecycle status of a single test step.
type StepStatus string

const (
	StatusNotStarted StepStatus = "not_started"
	StatusInProgress StepStatus = "in_progress"
	StatusPassed     StepStatus = "passed"
	StatusFailed     StepStatus = "failed"
	StatusSkipped    StepStatus = "skipped"
)

// Terminal reports whether the step has a recorded outcome.
func (s StepStatus) Terminal() bool {
	return s == StatusPassed || s == StatusFailed
}

// InputType is the kind of input a step expects from the operator.
type InputType string

const (
	InputNone     InputType = "none"
	InputNumber   InputType = "number"
	InputPassFail InputType = "pass_fail"
)

// Valid reports whether t is a known input type.
func (t InputType) Valid() bool {
	switch t {
	case InputNone, InputNumber, InputPassFail:
		return true
	}
	return false
}

// TimerState is the urgency bucket for the remaining time of a step.
type TimerState string

const (
	TimerNormal   TimerState = "normal"
	TimerWarning  TimerState = "warning"
	TimerCritical TimerState = "critical"
	TimerOvertime TimerState = "overtime"
)

// NavigationMode controls whether entering a step (re)starts its timer.
type NavigationMode string

const (
	ModeNormal   NavigationMode = "normal"
	ModeViewOnly NavigationMode = "view_only"
)

// Role is the permission level of the acting user. It is supplied on
// every navigation call and treated as an opaque token, not a credential.
type Role string

const (
	RoleOperator  Role = "operator"
	RoleAdmin     Role = "admin"
	RoleDeveloper Role = "developer"
)

// CanNavigateBackward reports whether the role may return to earlier steps.
func (r Role) CanNavigateBackward() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// CanEditResults reports whether the role may resubmit completed steps.
func (r Role) CanEditResults() bool {
	return r == RoleAdmin || r == RoleDeveloper
}

// CanEditSteps reports whether the role may edit procedure definitions.
func (r Role) CanEditSteps() bool {
	return r == RoleDeveloper
}

// DisplayName returns the Turkish display name shown in the UI header.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Yönetici"
	case RoleDeveloper:
		return "Geliştirici"
	default:
		return "Operatör"
	}
}

// RunState is the lifecycle state of the orchestrator.
type RunState string

const (
	RunNoSession  RunState = "no_session"
	RunNotStarted RunState = "not_started"
	RunRunning    RunState = "running"
	RunCompleted  RunState = "completed"
)
