package engine

import (
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tkorkmaz/prosed/internal/models"
)

// Pass/fail tokens accepted from the input layer. Turkish and English
// variants are both canonical.
var passTokens = map[string]bool{"PASS": true, "GEÇTİ": true}
var failTokens = map[string]bool{"FAIL": true, "KALDI": true}

// IsPassToken reports whether raw is one of the accepted pass tokens.
func IsPassToken(raw string) bool {
	return passTokens[raw]
}

// IsFailToken reports whether raw is one of the accepted fail tokens.
func IsFailToken(raw string) bool {
	return failTokens[raw]
}

// Classify judges a submitted value against the step's input type and
// validation rules. The result is tri-state: nil means no judgement is
// possible or required (NONE inputs), otherwise pass/fail. Malformed
// input is an invalid result, never an error.
func Classify(inputType models.InputType, raw string, rules models.ValidationRules) *bool {
	switch inputType {
	case models.InputNone:
		return nil
	case models.InputPassFail:
		return boolPtr(passTokens[raw])
	case models.InputNumber:
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return boolPtr(false)
		}
		if rules.Min != nil && value < *rules.Min {
			return boolPtr(false)
		}
		if rules.Max != nil && value > *rules.Max {
			return boolPtr(false)
		}
		return boolPtr(true)
	}
	return boolPtr(false)
}

// DetermineStatus maps a classification to a terminal step status. This
// mapping is total: no other status is reachable from a submission.
func DetermineStatus(isValid *bool) models.StepStatus {
	if isValid == nil || *isValid {
		return models.StatusPassed
	}
	return models.StatusFailed
}

// SaveOutcome reports what SaveResult did to the step.
type SaveOutcome struct {
	Status  models.StepStatus
	Changed bool // result value differs from the previous submission
}

// SaveResult writes a submission into the step. It is the single place a
// step's status and result value are written once a session is running.
func SaveResult(step *models.Step, value, comment string, isValid *bool, actualDuration int, completedBy string, at time.Time) SaveOutcome {
	var old string
	if step.ResultValue != nil {
		old = *step.ResultValue
	}
	changed := step.ResultValue == nil || old != value

	v := value
	step.ResultValue = &v
	step.Comment = comment
	d := actualDuration
	step.ActualDuration = &d
	step.CompletedBy = completedBy
	t := at
	step.CompletedAt = &t
	step.Status = DetermineStatus(isValid)

	log.Info().
		Int("step_id", step.StepID).
		Str("value", value).
		Str("status", string(step.Status)).
		Int("duration", actualDuration).
		Msg("result saved")

	return SaveOutcome{Status: step.Status, Changed: changed}
}

func boolPtr(v bool) *bool {
	return &v
}
