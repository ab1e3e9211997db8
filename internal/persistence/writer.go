// Package persistence mirrors live session state to a single JSON file
// that is fully overwritten after every state-changing event, so an
// external monitor can observe an in-progress run without a live process.
package persistence

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"k8s.io/utils/clock"

	"github.com/tkorkmaz/prosed/internal/models"
)

const (
	filePrefix  = "GuncellemeRaporu"
	FileVersion = "1.0"

	// DisplayTimeFormat is the dd/mm/yyyy timestamp format used in
	// snapshot step entries.
	DisplayTimeFormat = "02/01/2006 15:04:05"

	probeName = ".prosed_write_check.tmp"
)

// StepSnapshot is one step entry in the continuous update file.
type StepSnapshot struct {
	StepID          int                    `json:"step_id"`
	Name            string                 `json:"name"`
	Status          models.StepStatus      `json:"status"`
	StartTime       *string                `json:"start_time"`
	ActualDuration  *int                   `json:"actual_duration"`
	ResultValue     *string                `json:"result_value"`
	Comment         string                 `json:"comment"`
	TimeLimit       int                    `json:"time_limit"`
	CompletedBy     string                 `json:"completed_by"`
	InputValidation models.ValidationRules `json:"input_validation"`
}

// Snapshot is the full, self-consistent document written on every flush.
type Snapshot struct {
	SessionID            string                  `json:"session_id"`
	StockNumber          string                  `json:"stock_number"`
	SerialNumber         string                  `json:"serial_number"`
	StationNumber        string                  `json:"station_number"`
	SIPCode              string                  `json:"sip_code"`
	StartTime            *time.Time              `json:"start_time"`
	EndTime              *time.Time              `json:"end_time"`
	DurationSeconds      int                     `json:"duration_seconds"`
	CompletionPercentage float64                 `json:"completion_percentage"`
	PassedCount          int                     `json:"passed_count"`
	FailedCount          int                     `json:"failed_count"`
	Metadata             *models.SessionMetadata `json:"metadata,omitempty"`
	Steps                []StepSnapshot          `json:"steps"`
	LastUpdated          time.Time               `json:"last_updated"`
	FileVersion          string                  `json:"file_version"`
}

// Writer serializes a session to its update file. A failed directory
// probe or write disables nothing but the return value: the session
// keeps running in memory and every subsequent Write reports false.
type Writer struct {
	clk     clock.PassiveClock
	dir     string
	path    string
	session *models.Session
	enabled bool
}

// NewWriter returns a writer with no directory attached yet.
func NewWriter(clk clock.PassiveClock) *Writer {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Writer{clk: clk}
}

// SetDirectory validates dir for writability (create if missing, then a
// disposable write/delete probe) and accepts it. On failure the writer
// disables itself and reports false.
func (w *Writer) SetDirectory(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("update directory not usable")
		w.enabled = false
		return false
	}
	probe := filepath.Join(dir, probeName)
	if err := os.WriteFile(probe, []byte("probe"), 0644); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("update directory not writable")
		w.enabled = false
		return false
	}
	os.Remove(probe)

	w.dir = dir
	w.enabled = true
	if w.session != nil {
		w.generatePath()
	}
	log.Info().Str("dir", dir).Msg("update directory set")
	return true
}

// Attach sets the session to mirror and derives the output filename
// once. The name stays stable for the session's lifetime even if the
// identifying fields were blank.
func (w *Writer) Attach(session *models.Session) {
	w.session = session
	if w.dir != "" {
		w.generatePath()
	}
}

func (w *Writer) generatePath() {
	name := Filename(w.session.StationNumber, w.session.StockNumber, w.clk.Now())
	w.path = filepath.Join(w.dir, name)
	log.Debug().Str("path", w.path).Msg("update file path derived")
}

// Write overwrites the update file with a complete snapshot. I/O errors
// are logged and reported as false; they never propagate.
func (w *Writer) Write() bool {
	if !w.enabled || w.path == "" {
		return false
	}
	if w.session == nil {
		log.Warn().Msg("no session to write")
		return false
	}
	data, err := json.MarshalIndent(w.BuildSnapshot(), "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("snapshot marshal failed")
		return false
	}
	if err := os.WriteFile(w.path, data, 0644); err != nil {
		log.Error().Err(err).Str("path", w.path).Msg("snapshot write failed")
		return false
	}
	return true
}

// BuildSnapshot assembles the document for the attached session.
func (w *Writer) BuildSnapshot() *Snapshot {
	now := w.clk.Now()
	s := w.session
	snap := &Snapshot{
		SessionID:            s.SessionID,
		StockNumber:          s.StockNumber,
		SerialNumber:         s.SerialNumber,
		StationNumber:        s.StationNumber,
		SIPCode:              s.SIPCode,
		StartTime:            s.StartTime,
		EndTime:              s.EndTime,
		DurationSeconds:      s.DurationSeconds(now),
		CompletionPercentage: s.CompletionPercentage(),
		PassedCount:          s.PassedCount(),
		FailedCount:          s.FailedCount(),
		Metadata:             s.Metadata,
		LastUpdated:          now,
		FileVersion:          FileVersion,
	}
	for _, step := range s.Steps {
		entry := StepSnapshot{
			StepID:          step.StepID,
			Name:            step.Name,
			Status:          step.Status,
			ActualDuration:  step.ActualDuration,
			ResultValue:     step.ResultValue,
			Comment:         step.Comment,
			TimeLimit:       step.TimeLimit,
			CompletedBy:     step.CompletedBy,
			InputValidation: step.InputValidation,
		}
		if step.StartTime != nil {
			formatted := step.StartTime.Format(DisplayTimeFormat)
			entry.StartTime = &formatted
		}
		snap.Steps = append(snap.Steps, entry)
	}
	return snap
}

// Disable turns off continuous writing.
func (w *Writer) Disable() {
	w.enabled = false
	log.Info().Msg("continuous writing disabled")
}

// Enabled reports whether writes will be attempted.
func (w *Writer) Enabled() bool {
	return w.enabled && w.path != ""
}

// Path returns the derived update file path, empty until a session and
// directory are both set.
func (w *Writer) Path() string {
	return w.path
}

// Filename derives the update file name. Blank station or stock segments
// are omitted rather than left as empty placeholders, and the stock
// number is stripped to alphanumerics, dash and underscore.
func Filename(stationNumber, stockNumber string, now time.Time) string {
	parts := []string{filePrefix}
	if stationNumber != "" {
		parts = append(parts, stationNumber)
	}
	parts = append(parts, now.Format("20060102"))
	if clean := sanitize(stockNumber); clean != "" {
		parts = append(parts, clean)
	}
	return strings.Join(parts, "_") + ".json"
}

func sanitize(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ReadSnapshot parses an update file. Consumers may catch the file
// mid-write, so callers are expected to retry on error.
func ReadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
