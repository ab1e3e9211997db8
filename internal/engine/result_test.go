package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkorkmaz/prosed/internal/models"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestClassifyPassFail(t *testing.T) {
	testCases := []struct {
		raw  string
		pass bool
	}{
		{"PASS", true},
		{"GEÇTİ", true},
		{"FAIL", false},
		{"KALDI", false},
		{"banana", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got := Classify(models.InputPassFail, tc.raw, models.ValidationRules{})
			require.NotNil(t, got)
			assert.Equal(t, tc.pass, *got)
		})
	}
}

func TestClassifyNumber(t *testing.T) {
	rules := models.ValidationRules{Min: floatPtr(11.5), Max: floatPtr(12.5)}

	testCases := []struct {
		name  string
		raw   string
		rules models.ValidationRules
		pass  bool
	}{
		{"within range", "12.0", rules, true},
		{"at lower bound", "11.5", rules, true},
		{"at upper bound", "12.5", rules, true},
		{"below range", "2", rules, false},
		{"above range", "13.1", rules, false},
		{"unparseable", "abc", rules, false},
		{"empty", "", rules, false},
		{"min only", "999", models.ValidationRules{Min: floatPtr(0)}, true},
		{"max only", "-40", models.ValidationRules{Max: floatPtr(0)}, true},
		{"no bounds", "3.14", models.ValidationRules{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(models.InputNumber, tc.raw, tc.rules)
			require.NotNil(t, got)
			assert.Equal(t, tc.pass, *got)
		})
	}
}

func TestClassifyNone(t *testing.T) {
	assert.Nil(t, Classify(models.InputNone, "", models.ValidationRules{}))
	assert.Nil(t, Classify(models.InputNone, "anything", models.ValidationRules{}))
}

func TestDetermineStatus(t *testing.T) {
	assert.Equal(t, models.StatusPassed, DetermineStatus(nil))
	assert.Equal(t, models.StatusPassed, DetermineStatus(boolPtr(true)))
	assert.Equal(t, models.StatusFailed, DetermineStatus(boolPtr(false)))
}

func TestSaveResult(t *testing.T) {
	step := &models.Step{
		StepID:          1,
		Name:            "Voltaj kontrolü",
		InputType:       models.InputNumber,
		InputValidation: models.ValidationRules{Min: floatPtr(11.5), Max: floatPtr(12.5)},
		TimeLimit:       30,
		Status:          models.StatusInProgress,
	}
	at := time.Date(2026, time.August, 30, 10, 15, 0, 0, time.UTC)

	out := SaveResult(step, "2", "düşük", boolPtr(false), 7, "Operatör", at)

	assert.Equal(t, models.StatusFailed, out.Status)
	assert.True(t, out.Changed)
	require.NotNil(t, step.ResultValue)
	assert.Equal(t, "2", *step.ResultValue, "raw value kept verbatim")
	assert.Equal(t, "düşük", step.Comment)
	require.NotNil(t, step.ActualDuration)
	assert.Equal(t, 7, *step.ActualDuration)
	assert.Equal(t, "Operatör", step.CompletedBy)
	require.NotNil(t, step.CompletedAt)
	assert.Equal(t, at, *step.CompletedAt)

	// Resubmitting the same value is not a change, a different one is.
	out = SaveResult(step, "2", "", boolPtr(false), 9, "Operatör", at)
	assert.False(t, out.Changed)

	out = SaveResult(step, "12.1", "", boolPtr(true), 12, "Yönetici", at)
	assert.True(t, out.Changed)
	assert.Equal(t, models.StatusPassed, out.Status)
	assert.Equal(t, "12.1", *step.ResultValue)
}
