package rotas

import (
	"context"

	"github.com/dattendance/attendance-backend/pkg/db"
	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Monday-first ordering for weekly schedule listings.
const weekdayOrder = `CASE day_of_week
WHEN 'Monday' THEN 1
WHEN 'Tuesday' THEN 2
WHEN 'Wednesday' THEN 3
WHEN 'Thursday' THEN 4
WHEN 'Friday' THEN 5
WHEN 'Saturday' THEN 6
WHEN 'Sunday' THEN 7
ELSE 8 END`

type repository struct {
	db *gorm.DB
}

// NewRepository builds a rotas repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Rota, error) {
	var rota models.Rota
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&rota).Error
	if err != nil {
		return nil, err
	}
	return &rota, nil
}

func (r *repository) ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]models.Rota, error) {
	var rows []models.Rota
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order(weekdayOrder).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindActiveForDay(ctx context.Context, userID uuid.UUID, day string) (*models.Rota, error) {
	var rota models.Rota
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND day_of_week = ? AND is_active = ?", userID, day, true).
		Order("created_at ASC, id ASC").
		First(&rota).Error
	if err != nil {
		return nil, err
	}
	return &rota, nil
}

// Upsert replaces the active shift for (user, day). A concurrent insert can
// trip the partial unique index; the losing writer retries as an update.
func (r *repository) Upsert(ctx context.Context, rota *models.Rota) (*models.Rota, error) {
	existing, err := r.FindActiveForDay(ctx, rota.UserID, rota.DayOfWeek)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if existing != nil {
		existing.ShiftStart = rota.ShiftStart
		existing.ShiftEnd = rota.ShiftEnd
		if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	if rota.ID == uuid.Nil {
		rota.ID = uuid.New()
	}
	rota.IsActive = true
	if err := r.db.WithContext(ctx).Create(rota).Error; err != nil {
		if db.IsUniqueViolation(err, "idx_rotas_user_day_active") {
			return r.updateExisting(ctx, rota)
		}
		return nil, err
	}
	return rota, nil
}

func (r *repository) updateExisting(ctx context.Context, rota *models.Rota) (*models.Rota, error) {
	existing, err := r.FindActiveForDay(ctx, rota.UserID, rota.DayOfWeek)
	if err != nil {
		return nil, err
	}
	existing.ShiftStart = rota.ShiftStart
	existing.ShiftEnd = rota.ShiftEnd
	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Rota{}, "id = ?", id).Error
}
