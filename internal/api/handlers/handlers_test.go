package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Sehat-Backend/domain"
	"Sehat-Backend/internal/utils"
)

var testIdentity = domain.Identity{UserID: uuid.MustParse("6f1f8c3e-2b7a-4a53-9d1e-0c6a1d2b3c4d"), Email: "patient@example.com"}

func newApp() *fiber.App {
	utils.InitValidator()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(domain.LocalsIdentity, testIdentity)
		return c.Next()
	})
	return app
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, target, fileName, contentType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// report service fake

type fakeReportService struct {
	uploadReq  domain.UploadReportRequest
	uploadRes  domain.UploadReportResponse
	err        error
	reports    []domain.ReportResponse
	lastPage   int
	lastLimit  int
	lastID     string
	lastUserID uuid.UUID
}

func (s *fakeReportService) UploadReport(_ context.Context, identity domain.Identity, req domain.UploadReportRequest) (domain.UploadReportResponse, error) {
	s.lastUserID = identity.UserID
	s.uploadReq = req
	return s.uploadRes, s.err
}

func (s *fakeReportService) GetReports(_ context.Context, userID uuid.UUID, page, limit int) ([]domain.ReportResponse, int64, error) {
	s.lastUserID, s.lastPage, s.lastLimit = userID, page, limit
	return s.reports, int64(len(s.reports)), s.err
}

func (s *fakeReportService) GetReportByID(_ context.Context, userID uuid.UUID, id string) (domain.ReportResponse, error) {
	s.lastUserID, s.lastID = userID, id
	if s.err != nil {
		return domain.ReportResponse{}, s.err
	}
	return domain.ReportResponse{ID: id}, nil
}

func (s *fakeReportService) AnalyzeReport(_ context.Context, userID uuid.UUID, id string) (domain.ReportResponse, error) {
	s.lastUserID, s.lastID = userID, id
	if s.err != nil {
		return domain.ReportResponse{}, s.err
	}
	en, ur := "E", "U"
	return domain.ReportResponse{ID: id, SummaryEnglish: &en, SummaryUrdu: &ur}, nil
}

func (s *fakeReportService) DeleteReport(_ context.Context, userID uuid.UUID, id string) error {
	s.lastUserID, s.lastID = userID, id
	return s.err
}

func newReportApp(svc *fakeReportService) *fiber.App {
	app := newApp()
	h := NewReportHandler(svc, utils.Validate)
	app.Post("/api/v1/reports", h.UploadReport)
	app.Get("/api/v1/reports", h.GetReports)
	app.Get("/api/v1/reports/:id", h.GetReportDetails)
	app.Post("/api/v1/reports/:id/analyze", h.AnalyzeReport)
	app.Delete("/api/v1/reports/:id", h.DeleteReport)
	return app
}

func TestUploadReportHandler_Success(t *testing.T) {
	svc := &fakeReportService{uploadRes: domain.UploadReportResponse{State: "done", Report: domain.ReportResponse{ID: "r1"}}}
	app := newReportApp(svc)

	req := multipartRequest(t, "/api/v1/reports", "cbc.pdf", "application/pdf", []byte("%PDF"), map[string]string{"report_date": "2024-02-01"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Status)
	assert.Equal(t, domain.MessageSuccessAnalysisDone, env.Message)
	assert.Equal(t, testIdentity.UserID, svc.lastUserID)
	assert.Equal(t, "cbc.pdf", svc.uploadReq.File.Filename)
	assert.Equal(t, "2024-02-01", svc.uploadReq.ReportDate)
}

func TestUploadReportHandler_PartialSuccess(t *testing.T) {
	msg := domain.MessageAnalysisPending + " " + domain.MessageAIRateLimited
	svc := &fakeReportService{uploadRes: domain.UploadReportResponse{State: "error", AnalysisMessage: msg}}
	app := newReportApp(svc)

	resp, err := app.Test(multipartRequest(t, "/api/v1/reports", "x.png", "image/png", []byte("png"), nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Status)
	assert.Equal(t, msg, env.Message)
}

func TestUploadReportHandler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     func(t *testing.T) *http.Request
		svcErr  error
		status  int
		message string
	}{
		{
			name:    "missing file",
			req:     func(t *testing.T) *http.Request { return multipartRequest(t, "/api/v1/reports", "", "", nil, nil) },
			status:  http.StatusBadRequest,
			message: domain.MessageFailedUploadReport,
		},
		{
			name: "bad date",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/v1/reports", "a.pdf", "application/pdf", []byte("x"), map[string]string{"report_date": "01/02/2024"})
			},
			status:  http.StatusBadRequest,
			message: domain.MessageFailedUploadReport,
		},
		{
			name: "invalid type",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/v1/reports", "a.txt", "text/plain", []byte("x"), nil)
			},
			svcErr:  domain.ErrInvalidFileType,
			status:  http.StatusBadRequest,
			message: domain.MessageInvalidFileType,
		},
		{
			name: "too large",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/v1/reports", "a.png", "image/png", []byte("x"), nil)
			},
			svcErr:  domain.ErrFileTooLarge,
			status:  http.StatusBadRequest,
			message: domain.MessageFileTooLarge,
		},
		{
			name: "storage failure",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/v1/reports", "a.png", "image/png", []byte("x"), nil)
			},
			svcErr:  assert.AnError,
			status:  http.StatusInternalServerError,
			message: domain.MessageFailedUploadReport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newReportApp(&fakeReportService{err: tt.svcErr})

			resp, err := app.Test(tt.req(t))
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			env := decodeEnvelope(t, resp)
			assert.False(t, env.Status)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestGetReportsHandler_Pagination(t *testing.T) {
	svc := &fakeReportService{reports: []domain.ReportResponse{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	app := newReportApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/reports?page=0&limit=2", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	var data struct {
		Items      []domain.ReportResponse `json:"items"`
		Pagination map[string]int          `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Len(t, data.Items, 3)
	assert.Equal(t, 1, svc.lastPage)
	assert.Equal(t, 2, svc.lastLimit)
	assert.Equal(t, 2, data.Pagination["total_pages"])
}

func TestGetReportDetailsHandler(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"found", nil, http.StatusOK},
		{"bad id", domain.ErrParseUUID, http.StatusBadRequest},
		{"not found", domain.ErrReportNotFound, http.StatusNotFound},
		{"db down", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeReportService{err: tt.err}
			resp, err := newReportApp(svc).Test(httptest.NewRequest(http.MethodGet, "/api/v1/reports/abc", nil))
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, "abc", svc.lastID)
		})
	}
}

func TestAnalyzeReportHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"ok", nil, http.StatusOK, domain.MessageSuccessAnalyzeReport},
		{"not found", domain.ErrReportNotFound, http.StatusNotFound, domain.MessageFailedAnalyzeReport},
		{"rate limited", domain.ErrAnalysisRateLimited, http.StatusTooManyRequests, domain.MessageAIRateLimited},
		{"quota", domain.ErrAnalysisQuota, http.StatusPaymentRequired, domain.MessageAIQuotaExhausted},
		{"not configured", domain.ErrAnalysisNotConfigured, http.StatusInternalServerError, domain.MessageAINotConfigured},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newReportApp(&fakeReportService{err: tt.err}).
				Test(httptest.NewRequest(http.MethodPost, "/api/v1/reports/abc/analyze", nil))
			require.NoError(t, err)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, decodeEnvelope(t, resp).Message)
		})
	}
}

func TestDeleteReportHandler(t *testing.T) {
	svc := &fakeReportService{}
	resp, err := newReportApp(svc).Test(httptest.NewRequest(http.MethodDelete, "/api/v1/reports/abc", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.MessageSuccessDeleteReport, decodeEnvelope(t, resp).Message)
	assert.Equal(t, "abc", svc.lastID)
}

// vital service fake

type fakeVitalService struct {
	req domain.AddVitalRequest
	err error
}

func (s *fakeVitalService) AddVital(_ context.Context, _ uuid.UUID, req domain.AddVitalRequest) (domain.VitalResponse, error) {
	s.req = req
	return domain.VitalResponse{ID: "v1", BloodSugar: req.BloodSugar}, s.err
}

func (s *fakeVitalService) GetVitals(context.Context, uuid.UUID) ([]domain.VitalResponse, error) {
	return []domain.VitalResponse{{ID: "v1"}}, s.err
}

func TestVitalHandlers(t *testing.T) {
	svc := &fakeVitalService{}
	app := newApp()
	h := NewVitalHandler(svc, utils.Validate)
	app.Post("/api/v1/vitals", h.AddVital)
	app.Get("/api/v1/vitals", h.GetVitals)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/vitals", map[string]any{
		"blood_pressure_systolic": 130,
		"blood_sugar":             7.2,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, domain.MessageSuccessAddVital, decodeEnvelope(t, resp).Message)
	require.NotNil(t, svc.req.BloodPressureSystolic)
	assert.Equal(t, 130, *svc.req.BloodPressureSystolic)
	assert.Nil(t, svc.req.Weight)

	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/vitals", map[string]any{"notes": strings.Repeat("x", 2001)}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/vitals", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, domain.MessageFailedBodyRequest, decodeEnvelope(t, resp).Message)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/vitals", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

// profile service fake

type fakeProfileService struct {
	err error
}

func (s *fakeProfileService) GetProfile(_ context.Context, userID uuid.UUID) (domain.ProfileResponse, error) {
	return domain.ProfileResponse{ID: userID.String(), FullName: "Ayesha"}, s.err
}

func (s *fakeProfileService) GetDashboard(context.Context, uuid.UUID) (domain.DashboardResponse, error) {
	return domain.DashboardResponse{FullName: "Ayesha", ReportCounts: domain.ReportCounts{Total: 2}}, s.err
}

func TestProfileHandlers(t *testing.T) {
	app := newApp()
	h := NewProfileHandler(&fakeProfileService{})
	app.Get("/api/v1/profile", h.GetProfile)
	app.Get("/api/v1/dashboard", h.GetDashboard)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var profile domain.ProfileResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &profile))
	assert.Equal(t, testIdentity.UserID.String(), profile.ID)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))
	require.NoError(t, err)
	var dashboard domain.DashboardResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &dashboard))
	assert.Equal(t, int64(2), dashboard.ReportCounts.Total)
}

func TestProfileHandler_NotFound(t *testing.T) {
	app := newApp()
	h := NewProfileHandler(&fakeProfileService{err: domain.ErrProfileNotFound})
	app.Get("/api/v1/profile", h.GetProfile)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/profile", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
