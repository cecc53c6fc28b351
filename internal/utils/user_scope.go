package utils

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const CurrentUserSetting = "app.current_user_id"

var ErrMissingUserScope = errors.New("user scope is required")

// WithUserScope runs fn in a transaction where the row-level security
// policies see userID as the current user. The setting is local to the
// transaction.
func WithUserScope(ctx context.Context, db *gorm.DB, userID uuid.UUID, fn func(tx *gorm.DB) error) error {
	if userID == uuid.Nil {
		return ErrMissingUserScope
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT set_config(?, ?, true)", CurrentUserSetting, userID.String()).Error; err != nil {
			return err
		}
		return fn(tx)
	})
}
