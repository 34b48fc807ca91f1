package rotas

import (
	"context"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the rotas table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Rota, error)
	ListActiveForUser(ctx context.Context, userID uuid.UUID) ([]models.Rota, error)
	FindActiveForDay(ctx context.Context, userID uuid.UUID, day string) (*models.Rota, error)
	Upsert(ctx context.Context, rota *models.Rota) (*models.Rota, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines the shift schedule operations exposed to controllers.
type Service interface {
	ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]RotaDTO, error)
	Assign(ctx context.Context, employeeID uuid.UUID, req AssignRotaRequest) (*RotaDTO, error)
	Remove(ctx context.Context, rotaID uuid.UUID) error
}
