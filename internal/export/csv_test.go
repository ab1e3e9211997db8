package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkorkmaz/prosed/internal/db"
	"github.com/tkorkmaz/prosed/internal/models"
	"github.com/tkorkmaz/prosed/internal/persistence"
)

func TestWriteSession(t *testing.T) {
	started := time.Date(2026, time.August, 30, 14, 30, 0, 0, time.UTC)
	finished := started.Add(11 * time.Second)
	session := &db.ArchivedSession{
		SessionID:            "20260830_143000",
		StockNumber:          "ABC123",
		SerialNumber:         "SN-7",
		StartedAt:            &started,
		FinishedAt:           &finished,
		DurationSeconds:      11,
		CompletionPercentage: 100,
		PassedCount:          1,
		FailedCount:          1,
		Steps: []db.ArchivedStep{
			{StepID: 1, Name: "Güç kontrolü", Status: "passed", ResultValue: "PASS",
				TimeLimit: 5, ActualDuration: 4, CompletedBy: "Operatör"},
			{StepID: 2, Name: "Voltaj ölçümü", Status: "failed", ResultValue: "2",
				Comment: "düşük", TimeLimit: 10, ActualDuration: 7, CompletedBy: "Operatör"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSession(&buf, session))

	out := buf.String()
	assert.Contains(t, out, "session_id,20260830_143000")
	assert.Contains(t, out, "completion_percentage,100.0")
	assert.Contains(t, out, strings.Join(stepHeader, ","))
	assert.Contains(t, out, "1,Güç kontrolü,passed,PASS,,5,4,Operatör")
	assert.Contains(t, out, "2,Voltaj ölçümü,failed,2,düşük,10,7,Operatör")
}

func TestWriteSnapshot(t *testing.T) {
	started := time.Date(2026, time.August, 30, 14, 30, 0, 0, time.UTC)
	value := "12.1"
	duration := 7
	snap := &persistence.Snapshot{
		SessionID:            "20260830_143000",
		StockNumber:          "ABC123",
		StartTime:            &started,
		DurationSeconds:      42,
		CompletionPercentage: 33.333,
		PassedCount:          1,
		Steps: []persistence.StepSnapshot{
			{StepID: 1, Name: "Voltaj ölçümü", Status: models.StatusPassed,
				ResultValue: &value, ActualDuration: &duration, TimeLimit: 10,
				CompletedBy: "Operatör"},
			{StepID: 2, Name: "Görsel kontrol", Status: models.StatusInProgress, TimeLimit: 120},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, snap))

	out := buf.String()
	assert.Contains(t, out, "completion_percentage,33.3")
	assert.Contains(t, out, "finished_at,\n", "unfinished run has a blank finish time")
	assert.Contains(t, out, "1,Voltaj ölçümü,passed,12.1,,10,7,Operatör")
	// Nil result and duration render as empty cells, not zeroes.
	assert.Contains(t, out, "2,Görsel kontrol,in_progress,,,120,,")
}
