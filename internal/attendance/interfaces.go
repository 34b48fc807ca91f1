package attendance

import (
	"context"
	"time"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/dattendance/attendance-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the attendance ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindForDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Attendance, error)
	Create(ctx context.Context, row *models.Attendance) (*models.Attendance, error)
	Update(ctx context.Context, row *models.Attendance) error
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Attendance, int64, error)
	ListAll(ctx context.Context, params pagination.Params, filters RecordFilters) ([]models.Attendance, int64, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]models.Attendance, error)
	ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Attendance, error)
	ListByUserAll(ctx context.Context, userID uuid.UUID) ([]models.Attendance, error)
	CountForDate(ctx context.Context, date time.Time, status models.AttendanceStatus) (int64, error)
}

// Service defines the check-in workflow exposed to controllers.
type Service interface {
	// Now exposes the service clock so callers resolve "today" the same
	// way the check-in window does.
	Now() time.Time
	CheckIn(ctx context.Context, userID uuid.UUID) (*CheckResult, error)
	CheckOut(ctx context.Context, userID uuid.UUID) (*CheckResult, error)
	Today(ctx context.Context, userID uuid.UUID) (*RecordDTO, error)
	MyRecords(ctx context.Context, userID uuid.UUID, params pagination.Params) (*RecordList, error)
	AllRecords(ctx context.Context, params pagination.Params, filters RecordFilters) (*RecordList, error)
}
