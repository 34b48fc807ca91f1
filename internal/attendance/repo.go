package attendance

import (
	"context"
	"time"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/dattendance/attendance-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an attendance repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindForDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Attendance, error) {
	var row models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, models.DateOnly(date)).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) Create(ctx context.Context, row *models.Attendance) (*models.Attendance, error) {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.Date = models.DateOnly(row.Date)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repository) Update(ctx context.Context, row *models.Attendance) error {
	// Save skips zero-valued fields; check_out resets need the explicit nil.
	return r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("id = ?", row.ID).
		Updates(map[string]any{
			"check_in":  row.CheckIn,
			"check_out": row.CheckOut,
			"status":    row.Status,
		}).Error
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.Attendance, int64, error) {
	params = pagination.Normalize(params)
	query := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Attendance
	err := query.
		Order("date DESC").
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) ListAll(ctx context.Context, params pagination.Params, filters RecordFilters) ([]models.Attendance, int64, error) {
	params = pagination.Normalize(params)
	query := r.db.WithContext(ctx).Model(&models.Attendance{})

	if filters.DateFrom != nil {
		query = query.Where("date >= ?", models.DateOnly(*filters.DateFrom))
	}
	if filters.DateTo != nil {
		query = query.Where("date <= ?", models.DateOnly(*filters.DateTo))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Attendance
	err := query.
		Order("date DESC, check_in DESC").
		Limit(params.PerPage).
		Offset(params.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) ListInRange(ctx context.Context, from, to time.Time) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", models.DateOnly(from), models.DateOnly(to)).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, models.DateOnly(from), models.DateOnly(to)).
		Order("date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByUserAll(ctx context.Context, userID uuid.UUID) ([]models.Attendance, error) {
	var rows []models.Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) CountForDate(ctx context.Context, date time.Time, status models.AttendanceStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Attendance{}).
		Where("date = ? AND status = ?", models.DateOnly(date), status).
		Count(&count).Error
	return count, err
}
