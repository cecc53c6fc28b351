package entities

import (
	"time"

	"github.com/google/uuid"
)

type Vital struct {
	ID                     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID                 uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BloodPressureSystolic  *int      `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int      `json:"blood_pressure_diastolic"`
	BloodSugar             *float64  `gorm:"type:numeric" json:"blood_sugar"`
	Weight                 *float64  `gorm:"type:numeric" json:"weight"`
	Notes                  *string   `gorm:"type:text" json:"notes"`
	RecordedAt             time.Time `gorm:"not null;index" json:"recorded_at"`
}

func (Vital) TableName() string {
	return "vitals"
}
