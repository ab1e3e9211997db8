package engine

import "github.com/tkorkmaz/prosed/internal/models"

// EventType identifies an engine event delivered to subscribers.
type EventType string

const (
	EventStepChanged       EventType = "step_changed"
	EventTimerTick         EventType = "timer_tick"
	EventResultSubmitted   EventType = "result_submitted"
	EventNavigationBlocked EventType = "navigation_blocked"
	EventTestCompleted     EventType = "test_completed"
	EventDataUpdated       EventType = "data_updated"
)

// Event is one engine notification. Fields are populated per type:
// StepChanged carries StepIndex/TotalSteps/Mode, TimerTick carries
// StepIndex/Remaining/Timer, ResultSubmitted carries StepIndex/Value/Status,
// NavigationBlocked carries Reason.
type Event struct {
	Type       EventType
	StepIndex  int
	TotalSteps int
	Mode       models.NavigationMode
	Remaining  int
	Timer      models.TimerState
	Value      string
	Status     models.StepStatus
	Reason     string
}

// Subscriber receives engine events. Callbacks run on the goroutine that
// triggered the event, in registration order, after the engine has
// committed the corresponding state change.
type Subscriber func(Event)
