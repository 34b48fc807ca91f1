package users

import (
	"context"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/dattendance/attendance-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the users table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.User, int64, error)
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

// Service defines the user management operations exposed to controllers.
type Service interface {
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*EmployeeList, error)
	Get(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	BulkDelete(ctx context.Context, actorID uuid.UUID, ids []string) (int, error)
	EnsureDefaultAdmin(ctx context.Context) error
}
