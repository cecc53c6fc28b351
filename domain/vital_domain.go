package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddVital  = "Vitals saved successfully. Vitals save ho gayi hain."
	MessageSuccessGetVitals = "vitals retrieved successfully"

	MessageFailedAddVital  = "Failed to save vitals. Dobara try karein."
	MessageFailedGetVitals = "Failed to load vitals. Vitals load nahi ho sakay."

	ErrVitalNotFound = errors.New("vital not found")
)

type (
	AddVitalRequest struct {
		BloodPressureSystolic  *int     `json:"blood_pressure_systolic"`
		BloodPressureDiastolic *int     `json:"blood_pressure_diastolic"`
		BloodSugar             *float64 `json:"blood_sugar"`
		Weight                 *float64 `json:"weight"`
		Notes                  *string  `json:"notes" validate:"omitempty,max=2000"`
	}

	VitalResponse struct {
		ID                     string    `json:"id"`
		BloodPressureSystolic  *int      `json:"blood_pressure_systolic"`
		BloodPressureDiastolic *int      `json:"blood_pressure_diastolic"`
		BloodSugar             *float64  `json:"blood_sugar"`
		Weight                 *float64  `json:"weight"`
		Notes                  *string   `json:"notes"`
		RecordedAt             time.Time `json:"recorded_at"`
	}
)
