package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	AnalysisPending   = "pending"
	AnalysisSucceeded = "succeeded"
	AnalysisFailed    = "failed"
)

type Report struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	FileName       string     `gorm:"not null" json:"file_name"`
	FileURL        string     `gorm:"not null" json:"file_url"`
	FileType       string     `gorm:"not null" json:"file_type"`
	StorageKey     string     `json:"-"`
	ReportDate     time.Time  `gorm:"type:date;not null" json:"report_date"`
	SummaryEnglish *string    `gorm:"type:text" json:"summary_english"`
	SummaryUrdu    *string    `gorm:"type:text" json:"summary_urdu"`
	AnalysisStatus string     `gorm:"type:varchar(16);not null;index" json:"analysis_status"` // "pending", "succeeded", "failed"
	AnalysisError  *string    `gorm:"type:text" json:"analysis_error,omitempty"`
	AnalyzedAt     *time.Time `json:"analyzed_at,omitempty"`

	Timestamp
}

func (Report) TableName() string {
	return "medical_reports"
}

// HasSummary reports whether both summaries were written back.
func (r *Report) HasSummary() bool {
	return r.SummaryEnglish != nil && r.SummaryUrdu != nil
}
