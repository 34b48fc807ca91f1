package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the canonical identity entity. Attendance and rota rows
// are exclusively owned by their user and removed with it.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:text;not null;uniqueIndex"`
	Email        string    `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FullName     string    `gorm:"column:full_name;not null"`
	Role         Role      `gorm:"type:text;not null;default:employee"`
	Department   *string   `gorm:"column:department"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`

	Attendance []Attendance `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Rotas      []Rota       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// DepartmentOrDash returns the department label used in reports.
func (u *User) DepartmentOrDash() string {
	if u.Department == nil || *u.Department == "" {
		return "-"
	}
	return *u.Department
}
