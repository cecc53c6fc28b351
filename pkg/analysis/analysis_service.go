package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"Sehat-Backend/domain"
	"Sehat-Backend/pkg/metrics"
)

const (
	DefaultGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultModel      = "google/gemini-2.5-flash"
	DefaultTimeout    = 60 * time.Second

	maxLoggedBody = 2048
)

const systemPrompt = `You are a medical report analyzer. Analyze medical reports and provide clear, bilingual summaries.

CRITICAL: Respond ONLY with valid JSON in this exact format:
{
  "english": "Clear, concise summary of key findings, test results, and recommendations",
  "romanUrdu": "Roman Urdu me medical report ka mukhtasir bayaan. Test results aur zaroori baatain shamil karein"
}

Rules:
- Keep summaries factual and clear
- Highlight abnormal values
- Use simple medical terminology
- Roman Urdu should be easy to read (e.g., "Blood pressure zyada hai" not complex medical terms)
- Do not add any text outside the JSON object`

type (
	AnalysisService interface {
		AnalyzeReport(ctx context.Context, fileURL, fileName string) (domain.SummaryPair, error)
		// Forget drops any cached result for fileURL.
		Forget(fileURL string)
	}

	Config struct {
		URL     string
		APIKey  string
		Model   string
		Timeout time.Duration
	}

	analysisService struct {
		cfg        Config
		httpClient *http.Client
		cache      *ResultCache
		metrics    *metrics.Collector
		log        *zap.Logger
		tracer     trace.Tracer
	}
)

type (
	chatRequest struct {
		Model    string        `json:"model"`
		Messages []chatMessage `json:"messages"`
	}

	chatMessage struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	}

	contentPart struct {
		Type     string    `json:"type"`
		Text     string    `json:"text,omitempty"`
		ImageURL *imageURL `json:"image_url,omitempty"`
	}

	imageURL struct {
		URL string `json:"url"`
	}

	chatResponse struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
)

// NewAnalysisService builds the gateway client. cache may be nil to disable
// result caching.
func NewAnalysisService(cfg Config, cache *ResultCache, collector *metrics.Collector, log *zap.Logger) AnalysisService {
	if cfg.URL == "" {
		cfg.URL = DefaultGatewayURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &analysisService{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache,
		metrics:    collector,
		log:        log,
		tracer:     otel.Tracer("Sehat-Backend/pkg/analysis"),
	}
}

func (s *analysisService) AnalyzeReport(ctx context.Context, fileURL, fileName string) (domain.SummaryPair, error) {
	if fileURL == "" {
		return domain.SummaryPair{}, domain.ErrFileURLRequired
	}

	if s.cfg.APIKey == "" {
		s.log.Error("AI_GATEWAY_API_KEY not configured")
		s.metrics.AnalysesTotal.WithLabelValues("not_configured").Inc()
		return domain.SummaryPair{}, domain.ErrAnalysisNotConfigured
	}

	if s.cache != nil {
		if pair, ok := s.cache.Get(fileURL); ok {
			s.metrics.AnalysesTotal.WithLabelValues("cached").Inc()
			return pair, nil
		}
	}

	ctx, span := s.tracer.Start(ctx, "analysis.AnalyzeReport",
		trace.WithAttributes(
			attribute.String("report.file_name", fileName),
			attribute.String("ai.model", s.cfg.Model),
		),
	)
	defer span.End()

	s.log.Info("analyzing medical report", zap.String("file_name", fileName))

	start := time.Now()
	pair, err := s.callGateway(ctx, fileURL, fileName)
	s.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	s.metrics.AnalysesTotal.WithLabelValues(outcome(err)).Inc()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.SummaryPair{}, err
	}

	if s.cache != nil {
		s.cache.Set(fileURL, pair)
	}

	s.log.Info("analysis complete", zap.String("file_name", fileName))
	return pair, nil
}

func (s *analysisService) Forget(fileURL string) {
	if s.cache != nil {
		s.cache.Remove(fileURL)
	}
}

func (s *analysisService) callGateway(ctx context.Context, fileURL, fileName string) (domain.SummaryPair, error) {
	body, err := json.Marshal(buildChatRequest(s.cfg.Model, fileURL, fileName))
	if err != nil {
		return domain.SummaryPair{}, fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return domain.SummaryPair{}, fmt.Errorf("%w: building request: %v", domain.ErrAnalysisFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.log.Error("AI gateway request failed", zap.Error(err))
		return domain.SummaryPair{}, fmt.Errorf("%w: %v", domain.ErrAnalysisFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errorText, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		s.log.Error("AI gateway error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", errorText),
		)
		return domain.SummaryPair{}, statusError(resp.StatusCode)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		s.log.Error("AI gateway returned undecodable body", zap.Error(err))
		return domain.SummaryPair{}, fmt.Errorf("%w: %v", domain.ErrAnalysisInvalidReply, err)
	}

	if len(completion.Choices) == 0 || completion.Choices[0].Message.Content == "" {
		s.log.Error("no content in AI response")
		return domain.SummaryPair{}, domain.ErrAnalysisInvalidReply
	}

	content := completion.Choices[0].Message.Content
	pair := ExtractSummaryPair(content)
	if pair.RomanUrdu == domain.MessageUrduSeeEnglish {
		s.log.Warn("failed to parse AI response, using raw text", zap.String("content", truncateRunes(content, maxLoggedBody)))
	}
	return pair, nil
}

func buildChatRequest(model, fileURL, fileName string) chatRequest {
	return chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{
				Role: "user",
				Content: []contentPart{
					{
						Type: "text",
						Text: fmt.Sprintf("Analyze this medical report: %s\nProvide bilingual summary (English and Roman Urdu).", fileName),
					},
					{
						Type:     "image_url",
						ImageURL: &imageURL{URL: fileURL},
					},
				},
			},
		},
	}
}

func statusError(status int) error {
	switch status {
	case http.StatusTooManyRequests:
		return domain.ErrAnalysisRateLimited
	case http.StatusPaymentRequired:
		return domain.ErrAnalysisQuota
	default:
		return fmt.Errorf("%w: gateway status %d", domain.ErrAnalysisFailed, status)
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "succeeded"
	case errors.Is(err, domain.ErrAnalysisRateLimited):
		return "rate_limited"
	case errors.Is(err, domain.ErrAnalysisQuota):
		return "quota_exhausted"
	case errors.Is(err, domain.ErrAnalysisInvalidReply):
		return "invalid_response"
	default:
		return "failed"
	}
}
