package vital

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"Sehat-Backend/domain"
	"Sehat-Backend/entities"
	"Sehat-Backend/pkg/metrics"
)

type (
	VitalService interface {
		AddVital(ctx context.Context, userID uuid.UUID, req domain.AddVitalRequest) (domain.VitalResponse, error)
		GetVitals(ctx context.Context, userID uuid.UUID) ([]domain.VitalResponse, error)
	}

	vitalService struct {
		vitalRepository VitalRepository
		metrics         *metrics.Collector
		log             *zap.Logger
		now             func() time.Time
	}
)

func NewVitalService(vitalRepository VitalRepository, collector *metrics.Collector, log *zap.Logger) VitalService {
	return &vitalService{
		vitalRepository: vitalRepository,
		metrics:         collector,
		log:             log,
		now:             time.Now,
	}
}

func (s *vitalService) AddVital(ctx context.Context, userID uuid.UUID, req domain.AddVitalRequest) (domain.VitalResponse, error) {
	vital := &entities.Vital{
		ID:                     uuid.New(),
		BloodPressureSystolic:  req.BloodPressureSystolic,
		BloodPressureDiastolic: req.BloodPressureDiastolic,
		BloodSugar:             req.BloodSugar,
		Weight:                 req.Weight,
		Notes:                  normalizeNotes(req.Notes),
		RecordedAt:             s.now(),
	}

	if err := s.vitalRepository.AddVital(ctx, userID, vital); err != nil {
		s.log.Error("failed to save vitals", zap.String("user_id", userID.String()), zap.Error(err))
		return domain.VitalResponse{}, err
	}

	s.metrics.VitalsRecordedTotal.Inc()
	return ToVitalResponse(vital), nil
}

func (s *vitalService) GetVitals(ctx context.Context, userID uuid.UUID) ([]domain.VitalResponse, error) {
	vitals, err := s.vitalRepository.GetVitals(ctx, userID, 0)
	if err != nil {
		return nil, err
	}

	res := make([]domain.VitalResponse, 0, len(vitals))
	for _, v := range vitals {
		res = append(res, ToVitalResponse(v))
	}
	return res, nil
}

// normalizeNotes stores blank notes as null.
func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func ToVitalResponse(v *entities.Vital) domain.VitalResponse {
	return domain.VitalResponse{
		ID:                     v.ID.String(),
		BloodPressureSystolic:  v.BloodPressureSystolic,
		BloodPressureDiastolic: v.BloodPressureDiastolic,
		BloodSugar:             v.BloodSugar,
		Weight:                 v.Weight,
		Notes:                  v.Notes,
		RecordedAt:             v.RecordedAt,
	}
}
