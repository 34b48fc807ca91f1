package users

import (
	"time"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/dattendance/attendance-backend/pkg/pagination"
	"github.com/google/uuid"
)

// ListFilters describe the inputs supported by the employee listing.
type ListFilters struct {
	// Query matches username, full name, or email, case-insensitively.
	Query string
	// Role restricts to "admin" or "employee" when set.
	Role string
	// Status is "", "active", or "inactive".
	Status string
}

// UserDTO is the wire representation of an account.
type UserDTO struct {
	ID         uuid.UUID   `json:"id"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	FullName   string      `json:"full_name"`
	Role       models.Role `json:"role"`
	Department *string     `json:"department,omitempty"`
	IsActive   bool        `json:"is_active"`
	CreatedAt  time.Time   `json:"created_at"`
}

// FromModel converts a stored user into its wire representation.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FullName:   user.FullName,
		Role:       user.Role,
		Department: user.Department,
		IsActive:   user.IsActive,
		CreatedAt:  user.CreatedAt,
	}
}

// EmployeeList wraps a page of accounts plus its pagination metadata.
type EmployeeList struct {
	Employees []UserDTO       `json:"employees"`
	Meta      pagination.Meta `json:"meta"`
}

// CreateEmployeeRequest captures the fields needed to add an account.
type CreateEmployeeRequest struct {
	Username   string  `json:"username" validate:"required,min=3,max=80"`
	Email      string  `json:"email" validate:"required,email"`
	FullName   string  `json:"full_name" validate:"required,min=1,max=120"`
	Password   string  `json:"password" validate:"required,min=6"`
	Department *string `json:"department,omitempty"`
}

// UpdateEmployeeRequest captures the editable fields of an account.
// Password is optional; when present it is re-hashed and the user notified.
type UpdateEmployeeRequest struct {
	Username   string  `json:"username" validate:"required,min=3,max=80"`
	Email      string  `json:"email" validate:"required,email"`
	FullName   string  `json:"full_name" validate:"required,min=1,max=120"`
	Password   string  `json:"password,omitempty" validate:"omitempty,min=6"`
	Department *string `json:"department,omitempty"`
	IsActive   bool    `json:"is_active"`
}

// UpdateProfileRequest captures the self-service profile fields.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password,omitempty" validate:"omitempty,min=6"`
}
