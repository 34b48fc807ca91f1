package models

import (
	"time"

	"github.com/google/uuid"
)

// Attendance is one day's ledger row for one user. At most one row exists
// per (user, date), enforced by a unique index; conflicting inserts are
// retried as updates.
type Attendance struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date,priority:1"`
	CheckIn   *time.Time       `gorm:"column:check_in"`
	CheckOut  *time.Time       `gorm:"column:check_out"`
	Date      time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date,priority:2"`
	Status    AttendanceStatus `gorm:"type:text;not null;default:present"`
	Notes     string           `gorm:"type:text"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (Attendance) TableName() string {
	return "attendance"
}

// Completed reports whether both check-in and check-out are recorded.
func (a *Attendance) Completed() bool {
	return a.CheckIn != nil && a.CheckOut != nil
}

// WorkedDuration returns the span between check-in and check-out, or zero
// when the row is not completed.
func (a *Attendance) WorkedDuration() time.Duration {
	if !a.Completed() {
		return 0
	}
	return a.CheckOut.Sub(*a.CheckIn)
}

// DateOnly truncates a timestamp to its calendar date in UTC. All ledger
// dates are stored in this normalized form.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
