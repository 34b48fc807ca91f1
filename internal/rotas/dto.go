package rotas

import (
	"time"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/google/uuid"
)

// AssignRotaRequest captures a weekly shift assignment. Times use the HH:MM
// form entered in the schedule UI.
type AssignRotaRequest struct {
	DayOfWeek  string `json:"day_of_week" validate:"required"`
	ShiftStart string `json:"shift_start" validate:"required"`
	ShiftEnd   string `json:"shift_end" validate:"required"`
}

// RotaDTO is the wire representation of one weekly shift.
type RotaDTO struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	DayOfWeek  string    `json:"day_of_week"`
	ShiftStart string    `json:"shift_start"`
	ShiftEnd   string    `json:"shift_end"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

// FromModel converts a stored rota into its wire representation.
func FromModel(rota *models.Rota) *RotaDTO {
	if rota == nil {
		return nil
	}
	return &RotaDTO{
		ID:         rota.ID,
		UserID:     rota.UserID,
		DayOfWeek:  rota.DayOfWeek,
		ShiftStart: rota.ShiftStart.HHMM(),
		ShiftEnd:   rota.ShiftEnd.HHMM(),
		IsActive:   rota.IsActive,
		CreatedAt:  rota.CreatedAt,
	}
}
