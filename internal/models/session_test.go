package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionNow = time.Date(2026, time.August, 30, 14, 30, 5, 0, time.UTC)

func TestNewSession(t *testing.T) {
	s := NewSession(SessionInfo{
		StockNumber:   "ABC123",
		SerialNumber:  "SN-7",
		StationNumber: "IST-01",
		SIPCode:       "SIP-9",
	}, nil, sessionNow)

	assert.Equal(t, "20260830_143005", s.SessionID)
	assert.Equal(t, "ABC123", s.StockNumber)
	assert.Nil(t, s.StartTime)
	assert.False(t, s.IsActive())
}

func TestNewSessionMetadataWins(t *testing.T) {
	meta := &SessionMetadata{
		StockNumber:  "META-STOCK",
		SerialNumber: "META-SN",
		Station:      "META-IST",
	}
	s := NewSession(SessionInfo{StockNumber: "ignored", StationNumber: "ignored"}, meta, sessionNow)

	assert.Equal(t, "META-STOCK", s.StockNumber)
	assert.Equal(t, "META-SN", s.SerialNumber)
	assert.Equal(t, "META-IST", s.StationNumber)
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession(SessionInfo{}, nil, sessionNow)

	assert.Equal(t, 0, s.DurationSeconds(sessionNow))

	s.Start(sessionNow)
	assert.True(t, s.IsActive())
	assert.Equal(t, 42, s.DurationSeconds(sessionNow.Add(42*time.Second)))

	s.End(sessionNow.Add(90 * time.Second))
	assert.False(t, s.IsActive())
	// After end the duration is frozen regardless of the clock.
	assert.Equal(t, 90, s.DurationSeconds(sessionNow.Add(10*time.Hour)))
}

func TestSessionCounts(t *testing.T) {
	s := NewSession(SessionInfo{}, nil, sessionNow)
	s.Steps = []*Step{
		{StepID: 1, Status: StatusPassed},
		{StepID: 2, Status: StatusFailed},
		{StepID: 3, Status: StatusSkipped},
		{StepID: 4, Status: StatusInProgress},
		{StepID: 5, Status: StatusNotStarted},
	}

	assert.Equal(t, 1, s.PassedCount())
	assert.Equal(t, 1, s.FailedCount())
	assert.Equal(t, float64(40), s.CompletionPercentage(), "only passed and failed steps count as done")

	require.NotNil(t, s.StepByID(3))
	assert.Equal(t, StatusSkipped, s.StepByID(3).Status)
	assert.Nil(t, s.StepByID(99))
}

func TestCompletionPercentageEmpty(t *testing.T) {
	s := NewSession(SessionInfo{}, nil, sessionNow)
	assert.Equal(t, float64(0), s.CompletionPercentage())
}

func TestCalibrationStatus(t *testing.T) {
	m := &SessionMetadata{}
	today := time.Date(2026, time.August, 30, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, CalibrationUnknown, m.CalibrationStatus("", today))
	assert.Equal(t, CalibrationUnknown, m.CalibrationStatus("30/08/2026", today))
	assert.Equal(t, CalibrationExpired, m.CalibrationStatus("2026-08-29", today))
	assert.Equal(t, CalibrationExpiringSoon, m.CalibrationStatus("2026-08-30", today), "expiring today still counts as soon")
	assert.Equal(t, CalibrationExpiringSoon, m.CalibrationStatus("2026-09-25", today))
	assert.Equal(t, CalibrationValid, m.CalibrationStatus("2026-09-29", today))
	assert.Equal(t, CalibrationValid, m.CalibrationStatus("2027-01-01", today))
}

func TestReportFieldsExcludeHeaderOnly(t *testing.T) {
	m := &SessionMetadata{StockNumber: "ABC", Station: "IST-01", SIPCode: "SIP-9"}
	fields := m.ReportFields()

	assert.Equal(t, "ABC", fields["stok_no"])
	assert.NotContains(t, fields, "istasyon")
	assert.NotContains(t, fields, "sip_code")
}
