package db

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tkorkmaz/prosed/internal/models"
)

// ArchivedSession is the stored record of one completed run.
type ArchivedSession struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	SessionID     string     `gorm:"uniqueIndex;not null" json:"session_id"`
	StockNumber   string     `json:"stock_number"`
	SerialNumber  string     `json:"serial_number"`
	StationNumber string     `json:"station_number"`
	SIPCode       string     `json:"sip_code"`
	StartedAt     *time.Time `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`

	DurationSeconds      int     `json:"duration_seconds"`
	CompletionPercentage float64 `json:"completion_percentage"`
	PassedCount          int     `json:"passed_count"`
	FailedCount          int     `json:"failed_count"`

	// Relationships
	Steps []ArchivedStep `gorm:"foreignKey:SessionRef;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"steps"`
}

// ArchivedStep is the stored record of one step outcome.
type ArchivedStep struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	SessionRef uint   `gorm:"not null;index" json:"session_ref"`
	StepID     int    `gorm:"not null" json:"step_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`

	ResultValue    string     `json:"result_value"`
	Comment        string     `json:"comment"`
	TimeLimit      int        `json:"time_limit"`
	ActualDuration int        `json:"actual_duration"`
	CompletedBy    string     `json:"completed_by"`
	CompletedAt    *time.Time `json:"completed_at"`
}

// ArchiveSession stores a completed session with all step outcomes.
func ArchiveSession(session *models.Session, now time.Time) (*ArchivedSession, error) {
	record := ArchivedSession{
		SessionID:            session.SessionID,
		StockNumber:          session.StockNumber,
		SerialNumber:         session.SerialNumber,
		StationNumber:        session.StationNumber,
		SIPCode:              session.SIPCode,
		StartedAt:            session.StartTime,
		FinishedAt:           session.EndTime,
		DurationSeconds:      session.DurationSeconds(now),
		CompletionPercentage: session.CompletionPercentage(),
		PassedCount:          session.PassedCount(),
		FailedCount:          session.FailedCount(),
	}
	for _, step := range session.Steps {
		archived := ArchivedStep{
			StepID:      step.StepID,
			Name:        step.Name,
			Status:      string(step.Status),
			Comment:     step.Comment,
			TimeLimit:   step.TimeLimit,
			CompletedBy: step.CompletedBy,
			CompletedAt: step.CompletedAt,
		}
		if step.ResultValue != nil {
			archived.ResultValue = *step.ResultValue
		}
		if step.ActualDuration != nil {
			archived.ActualDuration = *step.ActualDuration
		}
		record.Steps = append(record.Steps, archived)
	}

	if err := DB.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListSessions returns archived sessions, most recent first.
func ListSessions() ([]ArchivedSession, error) {
	var sessions []ArchivedSession
	err := DB.Order("created_at DESC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession retrieves one archived session with its steps.
func GetSession(sessionID string) (*ArchivedSession, error) {
	var session ArchivedSession
	err := DB.Where("session_id = ?", sessionID).Preload("Steps").First(&session).Error
	if err != nil {
		return nil, fmt.Errorf("session %s not found", sessionID)
	}
	return &session, nil
}
