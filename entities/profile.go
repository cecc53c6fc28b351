package entities

import "github.com/google/uuid"

// Profile rows are created by the auth service when an account is opened.
type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName string    `json:"full_name"`
}

func (Profile) TableName() string {
	return "profiles"
}
