package models

import "time"

// ValidationRules holds range constraints for NUMBER inputs. A nil bound
// imposes no constraint on that side.
type ValidationRules struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Step is one unit of work in a procedure: a static definition loaded from
// the procedure file plus runtime state mutated only through the engine.
type Step struct {
	StepID      int       `json:"step_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TimeLimit   int       `json:"time_limit"` // seconds
	ImagePath   string    `json:"image_path,omitempty"`
	InputType   InputType `json:"input_type"`
	InputLabel  string    `json:"input_label"`

	InputValidation ValidationRules `json:"input_validation"`

	// Runtime state
	Status         StepStatus `json:"status"`
	ResultValue    *string    `json:"result_value"` // entered value kept verbatim
	ActualDuration *int       `json:"actual_duration"`
	StartTime      *time.Time `json:"start_time"`
	Comment        string     `json:"comment"`
	CompletedBy    string     `json:"completed_by"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// RequiresInput reports whether the operator must enter a value.
func (s *Step) RequiresInput() bool {
	return s.InputType != InputNone
}
