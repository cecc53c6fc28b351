package vital

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"Sehat-Backend/domain"
	"Sehat-Backend/entities"
	"Sehat-Backend/internal/utils"
)

type (
	VitalRepository interface {
		AddVital(ctx context.Context, userID uuid.UUID, vital *entities.Vital) error
		GetVitals(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Vital, error)
		GetLatestVital(ctx context.Context, userID uuid.UUID) (*entities.Vital, error)
	}

	vitalRepository struct {
		db *gorm.DB
	}
)

func NewVitalRepository(db *gorm.DB) VitalRepository {
	return &vitalRepository{db: db}
}

func (r *vitalRepository) AddVital(ctx context.Context, userID uuid.UUID, vital *entities.Vital) error {
	vital.UserID = userID
	return utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		return tx.Create(vital).Error
	})
}

// GetVitals returns the user's vitals, newest first. limit <= 0 means all.
func (r *vitalRepository) GetVitals(ctx context.Context, userID uuid.UUID, limit int) ([]*entities.Vital, error) {
	var vitals []*entities.Vital
	err := utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		query := tx.Where("user_id = ?", userID).Order("recorded_at desc")
		if limit > 0 {
			query = query.Limit(limit)
		}
		return query.Find(&vitals).Error
	})
	if err != nil {
		return nil, err
	}
	return vitals, nil
}

func (r *vitalRepository) GetLatestVital(ctx context.Context, userID uuid.UUID) (*entities.Vital, error) {
	var vital entities.Vital
	err := utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Order("recorded_at desc").Take(&vital).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrVitalNotFound
		}
		return nil, err
	}
	return &vital, nil
}
