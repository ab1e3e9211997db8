package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkorkmaz/prosed/internal/models"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitializeAt(filepath.Join(t.TempDir(), "prosed.db")))
	t.Cleanup(func() {
		require.NoError(t, Close())
		DB = nil
	})
}

func completedSession(now time.Time) *models.Session {
	s := models.NewSession(models.SessionInfo{
		StockNumber:   "ABC123",
		SerialNumber:  "SN-7",
		StationNumber: "IST-01",
	}, nil, now)
	s.Start(now)

	pass := "PASS"
	fail := "2"
	d1, d2 := 4, 7
	at := now.Add(11 * time.Second)
	s.Steps = []*models.Step{
		{StepID: 1, Name: "Güç kontrolü", Status: models.StatusPassed,
			ResultValue: &pass, ActualDuration: &d1, TimeLimit: 5,
			CompletedBy: "Operatör", CompletedAt: &at},
		{StepID: 2, Name: "Voltaj ölçümü", Status: models.StatusFailed,
			ResultValue: &fail, ActualDuration: &d2, TimeLimit: 10,
			CompletedBy: "Operatör", CompletedAt: &at, Comment: "düşük"},
	}
	s.End(now.Add(11 * time.Second))
	return s
}

func TestArchiveAndGetSession(t *testing.T) {
	setupTestDB(t)
	now := time.Date(2026, time.August, 30, 14, 30, 0, 0, time.UTC)

	record, err := ArchiveSession(completedSession(now), now.Add(11*time.Second))
	require.NoError(t, err)
	assert.NotZero(t, record.ID)

	got, err := GetSession("20260830_143000")
	require.NoError(t, err)
	assert.Equal(t, "ABC123", got.StockNumber)
	assert.Equal(t, 11, got.DurationSeconds)
	assert.Equal(t, 1, got.PassedCount)
	assert.Equal(t, 1, got.FailedCount)
	assert.Equal(t, float64(100), got.CompletionPercentage)

	require.Len(t, got.Steps, 2)
	assert.Equal(t, "PASS", got.Steps[0].ResultValue)
	assert.Equal(t, 7, got.Steps[1].ActualDuration)
	assert.Equal(t, "düşük", got.Steps[1].Comment)
}

func TestArchiveDuplicateSessionID(t *testing.T) {
	setupTestDB(t)
	now := time.Date(2026, time.August, 30, 14, 30, 0, 0, time.UTC)

	_, err := ArchiveSession(completedSession(now), now)
	require.NoError(t, err)
	_, err = ArchiveSession(completedSession(now), now)
	assert.Error(t, err, "session_id is unique")
}

func TestListSessions(t *testing.T) {
	setupTestDB(t)
	base := time.Date(2026, time.August, 30, 14, 30, 0, 0, time.UTC)

	_, err := ArchiveSession(completedSession(base), base)
	require.NoError(t, err)
	_, err = ArchiveSession(completedSession(base.Add(time.Minute)), base.Add(time.Minute))
	require.NoError(t, err)

	sessions, err := ListSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestGetSessionUnknown(t *testing.T) {
	setupTestDB(t)

	_, err := GetSession("19990101_000000")
	assert.Error(t, err)
}
