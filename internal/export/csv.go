// Package export writes flat CSV reports for archived sessions and live
// snapshots.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tkorkmaz/prosed/internal/db"
	"github.com/tkorkmaz/prosed/internal/persistence"
)

var stepHeader = []string{
	"step_id", "name", "status", "result_value", "comment",
	"time_limit", "actual_duration", "completed_by",
}

// WriteSession writes one archived session as a CSV report: a summary
// block followed by a row per step.
func WriteSession(w io.Writer, session *db.ArchivedSession) error {
	cw := csv.NewWriter(w)

	summary := [][]string{
		{"session_id", session.SessionID},
		{"stock_number", session.StockNumber},
		{"serial_number", session.SerialNumber},
		{"started_at", formatTime(session.StartedAt)},
		{"finished_at", formatTime(session.FinishedAt)},
		{"duration_seconds", strconv.Itoa(session.DurationSeconds)},
		{"completion_percentage", fmt.Sprintf("%.1f", session.CompletionPercentage)},
		{"passed_count", strconv.Itoa(session.PassedCount)},
		{"failed_count", strconv.Itoa(session.FailedCount)},
		{},
	}
	for _, row := range summary {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if err := cw.Write(stepHeader); err != nil {
		return err
	}
	for _, step := range session.Steps {
		row := []string{
			strconv.Itoa(step.StepID),
			step.Name,
			step.Status,
			step.ResultValue,
			step.Comment,
			strconv.Itoa(step.TimeLimit),
			strconv.Itoa(step.ActualDuration),
			step.CompletedBy,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteSnapshot writes a continuous update file as a CSV report, for
// exporting a run that was never archived.
func WriteSnapshot(w io.Writer, snap *persistence.Snapshot) error {
	cw := csv.NewWriter(w)

	summary := [][]string{
		{"session_id", snap.SessionID},
		{"stock_number", snap.StockNumber},
		{"serial_number", snap.SerialNumber},
		{"started_at", formatTime(snap.StartTime)},
		{"finished_at", formatTime(snap.EndTime)},
		{"duration_seconds", strconv.Itoa(snap.DurationSeconds)},
		{"completion_percentage", fmt.Sprintf("%.1f", snap.CompletionPercentage)},
		{"passed_count", strconv.Itoa(snap.PassedCount)},
		{"failed_count", strconv.Itoa(snap.FailedCount)},
		{},
	}
	for _, row := range summary {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	if err := cw.Write(stepHeader); err != nil {
		return err
	}
	for _, step := range snap.Steps {
		row := []string{
			strconv.Itoa(step.StepID),
			step.Name,
			string(step.Status),
			deref(step.ResultValue),
			step.Comment,
			strconv.Itoa(step.TimeLimit),
			derefInt(step.ActualDuration),
			step.CompletedBy,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
