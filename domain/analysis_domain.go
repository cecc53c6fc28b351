package domain

import "errors"

var (
	MessageFileURLRequired     = "File URL is required"
	MessageAINotConfigured     = "AI service not configured"
	MessageAIRateLimited       = "Rate limit exceeded. Thodi der baad dobara try karein."
	MessageAIQuotaExhausted    = "AI credits exhausted. Please contact support."
	MessageAIAnalysisFailed    = "Failed to analyze report"
	MessageAIInvalidResponse   = "Invalid AI response"
	MessageSummaryUnavailable  = "Summary not available"
	MessageUrduUnavailable     = "Roman Urdu summary nahi mil saka"
	MessageUrduSeeEnglish      = "Report ka tafseel English me dekhen."
	MessageSuccessAnalysisDone = "Mubarak ho! Report upload aur analyze ho gayi hai."

	ErrFileURLRequired       = errors.New("file url is required")
	ErrAnalysisNotConfigured = errors.New("ai service not configured")
	ErrAnalysisRateLimited   = errors.New("ai service rate limited")
	ErrAnalysisQuota         = errors.New("ai credits exhausted")
	ErrAnalysisFailed        = errors.New("ai analysis failed")
	ErrAnalysisInvalidReply  = errors.New("invalid ai response")
)

type (
	AnalyzeReportRequest struct {
		FileURL  string `json:"fileUrl"`
		FileName string `json:"fileName"`
	}

	AnalyzeReportResponse struct {
		SummaryEnglish string `json:"summaryEnglish"`
		SummaryUrdu    string `json:"summaryUrdu"`
	}

	AnalyzeReportError struct {
		Error string `json:"error"`
	}

	// SummaryPair is the normalized model output. Both fields are always non-empty.
	SummaryPair struct {
		English   string `json:"english"`
		RomanUrdu string `json:"romanUrdu"`
	}
)

// AnalysisErrorMessage maps an analysis failure to the user-facing message and
// HTTP status of its category.
func AnalysisErrorMessage(err error) (int, string) {
	switch {
	case errors.Is(err, ErrFileURLRequired):
		return 400, MessageFileURLRequired
	case errors.Is(err, ErrAnalysisRateLimited):
		return 429, MessageAIRateLimited
	case errors.Is(err, ErrAnalysisQuota):
		return 402, MessageAIQuotaExhausted
	case errors.Is(err, ErrAnalysisNotConfigured):
		return 500, MessageAINotConfigured
	case errors.Is(err, ErrAnalysisInvalidReply):
		return 500, MessageAIInvalidResponse
	default:
		return 500, MessageAIAnalysisFailed
	}
}
