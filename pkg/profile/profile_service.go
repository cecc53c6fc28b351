package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"Sehat-Backend/domain"
	"Sehat-Backend/pkg/report"
	"Sehat-Backend/pkg/vital"
)

const recentReportsLimit = 5

type (
	ProfileService interface {
		GetProfile(ctx context.Context, userID uuid.UUID) (domain.ProfileResponse, error)
		GetDashboard(ctx context.Context, userID uuid.UUID) (domain.DashboardResponse, error)
	}

	profileService struct {
		profileRepository ProfileRepository
		reportRepository  report.ReportRepository
		vitalRepository   vital.VitalRepository
	}
)

func NewProfileService(
	profileRepository ProfileRepository,
	reportRepository report.ReportRepository,
	vitalRepository vital.VitalRepository,
) ProfileService {
	return &profileService{
		profileRepository: profileRepository,
		reportRepository:  reportRepository,
		vitalRepository:   vitalRepository,
	}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (domain.ProfileResponse, error) {
	profile, err := s.profileRepository.GetProfile(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	return domain.ProfileResponse{
		ID:       profile.ID.String(),
		FullName: profile.FullName,
	}, nil
}

// GetDashboard tolerates a missing profile row or an empty vitals history.
func (s *profileService) GetDashboard(ctx context.Context, userID uuid.UUID) (domain.DashboardResponse, error) {
	var res domain.DashboardResponse

	profile, err := s.profileRepository.GetProfile(ctx, userID)
	switch {
	case err == nil:
		res.FullName = profile.FullName
	case !errors.Is(err, domain.ErrProfileNotFound):
		return domain.DashboardResponse{}, err
	}

	counts, err := s.reportRepository.CountByStatus(ctx, userID)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	res.ReportCounts = counts

	reports, _, err := s.reportRepository.GetReports(ctx, userID, 1, recentReportsLimit)
	if err != nil {
		return domain.DashboardResponse{}, err
	}
	res.RecentReports = make([]domain.ReportResponse, 0, len(reports))
	for _, r := range reports {
		res.RecentReports = append(res.RecentReports, report.ToReportResponse(r))
	}

	latest, err := s.vitalRepository.GetLatestVital(ctx, userID)
	switch {
	case err == nil:
		v := vital.ToVitalResponse(latest)
		res.LatestVital = &v
	case !errors.Is(err, domain.ErrVitalNotFound):
		return domain.DashboardResponse{}, err
	}

	return res, nil
}
