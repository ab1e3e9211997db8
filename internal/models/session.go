package models

import "time"

// SessionInfo holds the free-form identifiers entered at session setup.
type SessionInfo struct {
	StockNumber   string `json:"stock_number"`
	SerialNumber  string `json:"serial_number"`
	StationNumber string `json:"station_number"`
	SIPCode       string `json:"sip_code"`
}

// Session is one end-to-end run of a procedure: all steps plus aggregate
// metadata. At most one session is active per engine instance.
type Session struct {
	SessionID     string `json:"session_id"`
	StockNumber   string `json:"stock_number"`
	SerialNumber  string `json:"serial_number"`
	StationNumber string `json:"station_number"`
	SIPCode       string `json:"sip_code"`

	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	Steps    []*Step          `json:"steps"`
	Metadata *SessionMetadata `json:"metadata,omitempty"`
}

// NewSession creates a session with an ID derived from the creation time.
// When metadata is present its identifying fields win over info.
func NewSession(info SessionInfo, metadata *SessionMetadata, now time.Time) *Session {
	s := &Session{
		SessionID:     now.Format("20060102_150405"),
		StockNumber:   info.StockNumber,
		SerialNumber:  info.SerialNumber,
		StationNumber: info.StationNumber,
		SIPCode:       info.SIPCode,
		Metadata:      metadata,
	}
	if metadata != nil {
		s.StockNumber = metadata.StockNumber
		s.SerialNumber = metadata.SerialNumber
		s.StationNumber = metadata.Station
		s.SIPCode = metadata.SIPCode
	}
	return s
}

// Start marks the session as started.
func (s *Session) Start(now time.Time) {
	t := now
	s.StartTime = &t
}

// End marks the session as ended.
func (s *Session) End(now time.Time) {
	t := now
	s.EndTime = &t
}

// IsActive reports whether the session has started but not ended.
func (s *Session) IsActive() bool {
	return s.StartTime != nil && s.EndTime == nil
}

// DurationSeconds returns elapsed seconds since start, using the end time
// once the session has ended. Returns 0 before start.
func (s *Session) DurationSeconds(now time.Time) int {
	if s.StartTime == nil {
		return 0
	}
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return int(end.Sub(*s.StartTime).Seconds())
}

// CompletionPercentage is the share of steps with a terminal status.
func (s *Session) CompletionPercentage() float64 {
	if len(s.Steps) == 0 {
		return 0
	}
	completed := 0
	for _, step := range s.Steps {
		if step.Status.Terminal() {
			completed++
		}
	}
	return float64(completed) / float64(len(s.Steps)) * 100
}

// PassedCount counts steps with status passed.
func (s *Session) PassedCount() int {
	n := 0
	for _, step := range s.Steps {
		if step.Status == StatusPassed {
			n++
		}
	}
	return n
}

// FailedCount counts steps with status failed.
func (s *Session) FailedCount() int {
	n := 0
	for _, step := range s.Steps {
		if step.Status == StatusFailed {
			n++
		}
	}
	return n
}

// StepByID returns the step with the given id, or nil.
func (s *Session) StepByID(id int) *Step {
	for _, step := range s.Steps {
		if step.StepID == id {
			return step
		}
	}
	return nil
}
