package profile

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
	ProfileRepository interface {
		GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	}

	profileRepository struct {
		db *gorm.DB
	}
)

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	var profile entities.Profile
	err := utils.WithUserScope(ctx, r.db, userID, func(tx *gorm.DB) error {
		return tx.Where("id = ?", userID).Take(&profile).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
