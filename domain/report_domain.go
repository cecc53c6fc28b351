package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetReports      = "reports retrieved successfully"
	MessageSuccessGetReportDetail = "report retrieved successfully"
	MessageSuccessDeleteReport    = "report deleted successfully"
	MessageSuccessAnalyzeReport   = "report analyzed successfully"

	MessageFailedUploadReport    = "failed to upload report"
	MessageFailedGetReports      = "failed to retrieve reports"
	MessageFailedGetReportDetail = "failed to retrieve report"
	MessageFailedDeleteReport    = "failed to delete report"
	MessageFailedAnalyzeReport   = "failed to analyze report"

	MessageInvalidFileType = "Sirf PDF ya image files upload kar sakte hain (PDF, JPG, PNG)"
	MessageFileTooLarge    = "File size 10MB se kam hona chahiye"
	MessageAnalysisPending = "Report upload ho gayi lekin analysis pending hai. Dashboard se check karein."

	ErrReportNotFound     = errors.New("report not found")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrFileTooLarge       = errors.New("file too large")
	ErrFileRequired       = errors.New("file is required")
	ErrInvalidReportDate  = errors.New("invalid report date")
	ErrIllegalTransition  = errors.New("illegal upload state transition")
	ErrReportAlreadyFinal = errors.New("report summaries already written")
)

const MaxReportFileSize = 10 * 1024 * 1024

var AllowedReportTypes = []string{"application/pdf", "image/jpeg", "image/jpg", "image/png"}

type (
	UploadReportRequest struct {
		File       *multipart.FileHeader `form:"file" validate:"required"`
		ReportDate string                `form:"report_date" validate:"omitempty,date_only"`
	}

	ReportResponse struct {
		ID             string     `json:"id"`
		FileName       string     `json:"file_name"`
		FileURL        string     `json:"file_url"`
		FileType       string     `json:"file_type"`
		ReportDate     string     `json:"report_date"`
		SummaryEnglish *string    `json:"summary_english"`
		SummaryUrdu    *string    `json:"summary_urdu"`
		AnalysisStatus string     `json:"analysis_status"`
		AnalysisError  *string    `json:"analysis_error,omitempty"`
		AnalyzedAt     *time.Time `json:"analyzed_at,omitempty"`
		CreatedAt      time.Time  `json:"created_at"`
	}

	UploadReportResponse struct {
		Report ReportResponse `json:"report"`
		State  string         `json:"state"`
		// AnalysisMessage is set when the file was stored but analysis did not complete.
		AnalysisMessage string `json:"analysis_message,omitempty"`
	}

	ReportCounts struct {
		Total     int64 `json:"total"`
		Pending   int64 `json:"pending"`
		Succeeded int64 `json:"succeeded"`
		Failed    int64 `json:"failed"`
	}
)
