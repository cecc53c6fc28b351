package report

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"Sehat-Backend/domain"
	"Sehat-Backend/entities"
	"Sehat-Backend/internal/utils/mailing"
	"Sehat-Backend/internal/utils/storage"
	"Sehat-Backend/pkg/analysis"
	"Sehat-Backend/pkg/metrics"
)

type (
	ReportService interface {
		UploadReport(ctx context.Context, identity domain.Identity, req domain.UploadReportRequest) (domain.UploadReportResponse, error)
		GetReports(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.ReportResponse, int64, error)
		GetReportByID(ctx context.Context, userID uuid.UUID, id string) (domain.ReportResponse, error)
		AnalyzeReport(ctx context.Context, userID uuid.UUID, id string) (domain.ReportResponse, error)
		DeleteReport(ctx context.Context, userID uuid.UUID, id string) error
	}

	reportService struct {
		reportRepository ReportRepository
		s3               storage.AwsS3
		analysisService  analysis.AnalysisService
		mailer           mailing.Mailer
		appURL           string
		metrics          *metrics.Collector
		log              *zap.Logger
		now              func() time.Time
	}
)

func NewReportService(
	reportRepository ReportRepository,
	s3 storage.AwsS3,
	analysisService analysis.AnalysisService,
	mailer mailing.Mailer,
	appURL string,
	collector *metrics.Collector,
	log *zap.Logger,
) ReportService {
	return &reportService{
		reportRepository: reportRepository,
		s3:               s3,
		analysisService:  analysisService,
		mailer:           mailer,
		appURL:           appURL,
		metrics:          collector,
		log:              log,
		now:              time.Now,
	}
}

func (s *reportService) UploadReport(ctx context.Context, identity domain.Identity, req domain.UploadReportRequest) (domain.UploadReportResponse, error) {
	log := s.log.With(zap.String("user_id", identity.UserID.String()))
	flow := NewUploadFlow()

	if err := flow.Select(req.File); err != nil {
		s.metrics.ReportUploadsTotal.WithLabelValues("rejected").Inc()
		return domain.UploadReportResponse{}, err
	}

	now := s.now()
	reportDate, err := parseReportDate(req.ReportDate, now)
	if err != nil {
		s.metrics.ReportUploadsTotal.WithLabelValues("rejected").Inc()
		return domain.UploadReportResponse{}, err
	}

	// Uploading
	if err := flow.StartUpload(); err != nil {
		return domain.UploadReportResponse{}, err
	}
	objectKey, err := s.s3.UploadFile(ctx, strconv.FormatInt(now.UnixMilli(), 10), req.File, identity.UserID.String(), storage.AllowReport...)
	if err != nil {
		log.Error("report blob upload failed", zap.String("file_name", req.File.Filename), zap.Error(err))
		return domain.UploadReportResponse{}, s.abort(flow, err)
	}
	fileURL := s.s3.GetPublicLinkKey(objectKey)

	// Persisting
	if err := flow.StartPersist(); err != nil {
		return domain.UploadReportResponse{}, err
	}
	report := &entities.Report{
		ID:             uuid.New(),
		FileName:       req.File.Filename,
		FileURL:        fileURL,
		FileType:       storage.ContentType(req.File),
		StorageKey:     objectKey,
		ReportDate:     reportDate,
		AnalysisStatus: entities.AnalysisPending,
	}
	if err := s.reportRepository.CreateReport(ctx, identity.UserID, report); err != nil {
		log.Error("report insert failed", zap.String("object_key", objectKey), zap.Error(err))
		if delErr := s.s3.DeleteFile(context.WithoutCancel(ctx), objectKey); delErr != nil {
			log.Warn("orphan report blob not deleted", zap.String("object_key", objectKey), zap.Error(delErr))
		}
		return domain.UploadReportResponse{}, s.abort(flow, err)
	}

	// Analyzing
	if err := flow.StartAnalysis(); err != nil {
		return domain.UploadReportResponse{}, err
	}
	analyzed, analysisMessage := s.analyze(ctx, log, identity.UserID, report)
	if analyzed {
		if err := flow.Finish(); err != nil {
			return domain.UploadReportResponse{}, err
		}
		s.metrics.ReportUploadsTotal.WithLabelValues("done").Inc()
	} else {
		_ = flow.Fail(errors.New(analysisMessage))
		s.metrics.ReportUploadsTotal.WithLabelValues("analysis_failed").Inc()
	}

	s.notify(log, identity.Email, report, analyzed)

	return domain.UploadReportResponse{
		Report:          ToReportResponse(report),
		State:           string(flow.State()),
		AnalysisMessage: analysisMessage,
	}, nil
}

// analyze runs the model on a stored report and records the outcome on the
// row. It returns false and a user-facing message when the report is left
// without summaries.
func (s *reportService) analyze(ctx context.Context, log *zap.Logger, userID uuid.UUID, report *entities.Report) (bool, string) {
	pair, err := s.analysisService.AnalyzeReport(ctx, report.FileURL, report.FileName)
	if err != nil {
		_, message := domain.AnalysisErrorMessage(err)
		log.Error("report analysis failed", zap.String("report_id", report.ID.String()), zap.Error(err))

		reason := err.Error()
		if markErr := s.reportRepository.MarkAnalysisFailed(context.WithoutCancel(ctx), userID, report.ID, reason); markErr != nil {
			log.Error("failed to record analysis failure", zap.String("report_id", report.ID.String()), zap.Error(markErr))
		}
		report.AnalysisStatus = entities.AnalysisFailed
		report.AnalysisError = &reason

		return false, domain.MessageAnalysisPending + " " + message
	}

	analyzedAt := s.now()
	if err := s.reportRepository.SaveSummaries(context.WithoutCancel(ctx), userID, report.ID, pair.English, pair.RomanUrdu, analyzedAt); err != nil {
		log.Error("failed to save report summaries", zap.String("report_id", report.ID.String()), zap.Error(err))
		return false, domain.MessageAnalysisPending
	}

	report.SummaryEnglish = &pair.English
	report.SummaryUrdu = &pair.RomanUrdu
	report.AnalysisStatus = entities.AnalysisSucceeded
	report.AnalysisError = nil
	report.AnalyzedAt = &analyzedAt
	return true, ""
}

func (s *reportService) abort(flow *UploadFlow, cause error) error {
	s.metrics.ReportUploadsTotal.WithLabelValues("failed").Inc()
	if err := flow.Fail(cause); err != nil {
		return err
	}
	return cause
}

func (s *reportService) notify(log *zap.Logger, email string, report *entities.Report, analyzed bool) {
	if email == "" || s.mailer == nil || !s.mailer.Enabled() {
		return
	}

	subject, body, err := mailing.ReportProcessedMail(s.appURL, report.ID.String(), report.FileName, analyzed)
	if err != nil {
		log.Warn("failed to render report mail", zap.Error(err))
		return
	}
	if err := s.mailer.SendMail(email, subject, body); err != nil {
		log.Warn("failed to send report mail", zap.String("report_id", report.ID.String()), zap.Error(err))
	}
}

func (s *reportService) GetReports(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.ReportResponse, int64, error) {
	reports, count, err := s.reportRepository.GetReports(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	res := make([]domain.ReportResponse, 0, len(reports))
	for _, report := range reports {
		res = append(res, ToReportResponse(report))
	}
	return res, count, nil
}

func (s *reportService) GetReportByID(ctx context.Context, userID uuid.UUID, id string) (domain.ReportResponse, error) {
	reportID, err := uuid.Parse(id)
	if err != nil {
		return domain.ReportResponse{}, domain.ErrParseUUID
	}

	report, err := s.reportRepository.GetReportByID(ctx, userID, reportID)
	if err != nil {
		return domain.ReportResponse{}, err
	}
	return ToReportResponse(report), nil
}

// AnalyzeReport retries analysis of a pending or failed report. A report that
// already has summaries is returned as is.
func (s *reportService) AnalyzeReport(ctx context.Context, userID uuid.UUID, id string) (domain.ReportResponse, error) {
	reportID, err := uuid.Parse(id)
	if err != nil {
		return domain.ReportResponse{}, domain.ErrParseUUID
	}

	report, err := s.reportRepository.GetReportByID(ctx, userID, reportID)
	if err != nil {
		return domain.ReportResponse{}, err
	}
	if report.HasSummary() {
		return ToReportResponse(report), nil
	}

	log := s.log.With(zap.String("user_id", userID.String()))

	pair, err := s.analysisService.AnalyzeReport(ctx, report.FileURL, report.FileName)
	if err != nil {
		log.Error("report re-analysis failed", zap.String("report_id", report.ID.String()), zap.Error(err))
		markErr := s.reportRepository.MarkAnalysisFailed(context.WithoutCancel(ctx), userID, report.ID, err.Error())
		if markErr != nil && !errors.Is(markErr, domain.ErrReportAlreadyFinal) {
			log.Error("failed to record analysis failure", zap.String("report_id", report.ID.String()), zap.Error(markErr))
		}
		return domain.ReportResponse{}, err
	}

	analyzedAt := s.now()
	err = s.reportRepository.SaveSummaries(context.WithoutCancel(ctx), userID, report.ID, pair.English, pair.RomanUrdu, analyzedAt)
	if errors.Is(err, domain.ErrReportAlreadyFinal) {
		// Another request finished first; its summaries win.
		current, getErr := s.reportRepository.GetReportByID(ctx, userID, report.ID)
		if getErr != nil {
			return domain.ReportResponse{}, getErr
		}
		return ToReportResponse(current), nil
	}
	if err != nil {
		return domain.ReportResponse{}, err
	}

	report.SummaryEnglish = &pair.English
	report.SummaryUrdu = &pair.RomanUrdu
	report.AnalysisStatus = entities.AnalysisSucceeded
	report.AnalysisError = nil
	report.AnalyzedAt = &analyzedAt
	return ToReportResponse(report), nil
}

func (s *reportService) DeleteReport(ctx context.Context, userID uuid.UUID, id string) error {
	reportID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}

	report, err := s.reportRepository.GetReportByID(ctx, userID, reportID)
	if err != nil {
		return err
	}

	if err := s.reportRepository.DeleteReport(ctx, userID, reportID); err != nil {
		return err
	}
	s.analysisService.Forget(report.FileURL)

	objectKey := report.StorageKey
	if objectKey == "" {
		objectKey = s.s3.GetObjectKeyFromLink(report.FileURL)
	}
	if objectKey != "" {
		if err := s.s3.DeleteFile(context.WithoutCancel(ctx), objectKey); err != nil {
			s.log.Warn("report blob not deleted", zap.String("object_key", objectKey), zap.Error(err))
		}
	}
	return nil
}

func parseReportDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	date, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, domain.ErrInvalidReportDate
	}
	return date, nil
}

func ToReportResponse(report *entities.Report) domain.ReportResponse {
	return domain.ReportResponse{
		ID:             report.ID.String(),
		FileName:       report.FileName,
		FileURL:        report.FileURL,
		FileType:       report.FileType,
		ReportDate:     report.ReportDate.Format(time.DateOnly),
		SummaryEnglish: report.SummaryEnglish,
		SummaryUrdu:    report.SummaryUrdu,
		AnalysisStatus: report.AnalysisStatus,
		AnalysisError:  report.AnalysisError,
		AnalyzedAt:     report.AnalyzedAt,
		CreatedAt:      report.CreatedAt,
	}
}
