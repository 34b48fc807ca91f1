package models

import (
	"time"

	dbtypes "github.com/dattendance/attendance-backend/pkg/db/types"
	"github.com/google/uuid"
)

// Rota is one per-weekday shift assignment. At most one active rota exists
// per (user, day_of_week), enforced by a partial unique index.
type Rota struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	DayOfWeek  string            `gorm:"column:day_of_week;type:text;not null"`
	ShiftStart dbtypes.TimeOfDay `gorm:"column:shift_start;not null"`
	ShiftEnd   dbtypes.TimeOfDay `gorm:"column:shift_end;not null"`
	IsActive   bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
}

func (Rota) TableName() string {
	return "rotas"
}
