// Package procedure loads static step definitions from JSON procedure
// files and enforces the load-time preconditions the engine depends on.
package procedure

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/tkorkmaz/prosed/internal/models"
)

// DefaultInputLabel is used when a step definition omits input_label.
const DefaultInputLabel = "Test Sonucu"

// StepDefinition is the static part of a step as it appears in a
// procedure file.
type StepDefinition struct {
	StepID          int                    `json:"step_id"`
	Name            string                 `json:"name"`
	Description     string                 `json:"description"`
	TimeLimit       int                    `json:"time_limit"`
	ImagePath       string                 `json:"image_path"`
	InputType       string                 `json:"input_type"`
	InputLabel      string                 `json:"input_label"`
	InputValidation models.ValidationRules `json:"input_validation"`
}

// Definition is the document shape of a procedure file.
type Definition struct {
	Name  string           `json:"name"`
	Steps []StepDefinition `json:"steps"`
}

// Load reads a procedure file and builds runtime steps. Violated
// preconditions (missing file, empty step list, duplicate step id,
// non-positive time limit, unknown input type) are fatal here, before
// any session exists: the engine refuses to start rather than run with
// undefined timer or navigation behaviour.
func Load(path string) ([]*models.Step, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read procedure file %s: %w", path, err)
	}
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse procedure file %s: %w", path, err)
	}
	steps, err := Build(def)
	if err != nil {
		return nil, fmt.Errorf("procedure file %s: %w", path, err)
	}
	log.Info().Str("file", path).Int("steps", len(steps)).Msg("procedure loaded")
	return steps, nil
}

// Build validates a definition and converts it to runtime steps.
func Build(def Definition) ([]*models.Step, error) {
	if len(def.Steps) == 0 {
		return nil, fmt.Errorf("no steps defined")
	}
	seen := make(map[int]bool, len(def.Steps))
	steps := make([]*models.Step, 0, len(def.Steps))
	for _, sd := range def.Steps {
		if seen[sd.StepID] {
			return nil, fmt.Errorf("duplicate step_id %d", sd.StepID)
		}
		seen[sd.StepID] = true
		if sd.TimeLimit <= 0 {
			return nil, fmt.Errorf("step %d: time_limit must be positive, got %d", sd.StepID, sd.TimeLimit)
		}
		inputType := models.InputType(sd.InputType)
		if sd.InputType == "" {
			inputType = models.InputNone
		}
		if !inputType.Valid() {
			return nil, fmt.Errorf("step %d: unknown input_type %q", sd.StepID, sd.InputType)
		}
		label := sd.InputLabel
		if label == "" {
			label = DefaultInputLabel
		}
		steps = append(steps, &models.Step{
			StepID:          sd.StepID,
			Name:            sd.Name,
			Description:     sd.Description,
			TimeLimit:       sd.TimeLimit,
			ImagePath:       sd.ImagePath,
			InputType:       inputType,
			InputLabel:      label,
			InputValidation: sd.InputValidation,
			Status:          models.StatusNotStarted,
		})
	}
	return steps, nil
}
