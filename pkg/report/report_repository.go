package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Sehat-Backend/domain"
	"Sehat-Backend/entities"
	"Sehat-Backend/internal/utils"
)

type (
	ReportRepository interface {
		CreateReport(ctx context.Context, userID uuid.UUID, report *entities.Report) error
		GetReportByID(ctx context.Context, userID, id uuid.UUID) (*entities.Report, error)
		GetReports(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Report, int64, error)
		SaveSummaries(ctx context.Context, userID, id uuid.UUID, english, urdu string, analyzedAt time.Time) error
		MarkAnalysisFailed(ctx context.Context, userID, id uuid.UUID, reason string) error
		DeleteReport(ctx context.Context, userID, id uuid.UUID) error
		CountByStatus(ctx context.Context, userID uuid.UUID) (domain.ReportCounts, error)
	}

	reportRepository struct {
		db *gorm.DB
	}
)

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CreateReport(ctx context.Context, userID uuid.UUID, report *entities.Report) error {
	report.UserID = userID
	return utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		return tx.Create(report).Error
	})
}

func (r *reportRepository) GetReportByID(ctx context.Context, userID, id uuid.UUID) (*entities.Report, error) {
	var report entities.Report
	err := utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		return tx.Where("id = ? AND user_id = ?", id, userID).First(&report).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) GetReports(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.Report, int64, error) {
	var reports []*entities.Report
	var count int64

	offset := (page - 1) * limit

	err := utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		if err := tx.Model(&entities.Report{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).
			Order("created_at desc").
			Offset(offset).
			Limit(limit).
			Find(&reports).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return reports, count, nil
}

// SaveSummaries writes both summaries in one statement. It only touches a row
// whose summaries are still null, so a report is never summarised twice.
func (r *reportRepository) SaveSummaries(ctx context.Context, userID, id uuid.UUID, english, urdu string, analyzedAt time.Time) error {
	return utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		res := tx.Model(&entities.Report{}).
			Where("id = ? AND user_id = ? AND summary_english IS NULL AND summary_urdu IS NULL", id, userID).
			Updates(map[string]interface{}{
				"summary_english": english,
				"summary_urdu":    urdu,
				"analysis_status": entities.AnalysisSucceeded,
				"analysis_error":  nil,
				"analyzed_at":     analyzedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrReportAlreadyFinal
		}
		return nil
	})
}

func (r *reportRepository) MarkAnalysisFailed(ctx context.Context, userID, id uuid.UUID, reason string) error {
	return utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		res := tx.Model(&entities.Report{}).
			Where("id = ? AND user_id = ? AND summary_english IS NULL", id, userID).
			Updates(map[string]interface{}{
				"analysis_status": entities.AnalysisFailed,
				"analysis_error":  reason,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrReportAlreadyFinal
		}
		return nil
	})
}

func (r *reportRepository) DeleteReport(ctx context.Context, userID, id uuid.UUID) error {
	return utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Report{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrReportNotFound
		}
		return nil
	})
}

func (r *reportRepository) CountByStatus(ctx context.Context, userID uuid.UUID) (domain.ReportCounts, error) {
	var rows []struct {
		AnalysisStatus string
		Count          int64
	}

	err := utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		return tx.Model(&entities.Report{}).
			Select("analysis_status, count(*) as count").
			Where("user_id = ?", userID).
			Group("analysis_status").
			Scan(&rows).Error
	})
	if err != nil {
		return domain.ReportCounts{}, err
	}

	var counts domain.ReportCounts
	for _, row := range rows {
		counts.Total += row.Count
		switch row.AnalysisStatus {
		case entities.AnalysisPending:
			counts.Pending = row.Count
		case entities.AnalysisSucceeded:
			counts.Succeeded = row.Count
		case entities.AnalysisFailed:
			counts.Failed = row.Count
		}
	}
	return counts, nil
}
