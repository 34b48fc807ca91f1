package attendance

import (
	"time"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/dattendance/attendance-backend/pkg/pagination"
	"github.com/google/uuid"
)

// RecordFilters describe the inputs supported by the admin record listing.
type RecordFilters struct {
	DateFrom *time.Time
	DateTo   *time.Time
}

// CheckResult is the outcome of a check-in or check-out attempt. Rejections
// carry the employee-facing reason and ride back with a 200 status.
type CheckResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Time    string `json:"time,omitempty"`
}

// RecordDTO is the wire representation of one ledger row.
type RecordDTO struct {
	ID       uuid.UUID               `json:"id"`
	UserID   uuid.UUID               `json:"user_id"`
	Date     string                  `json:"date"`
	CheckIn  *string                 `json:"check_in"`
	CheckOut *string                 `json:"check_out"`
	Status   models.AttendanceStatus `json:"status"`
}

// FromModel converts a stored ledger row into its wire representation.
func FromModel(row *models.Attendance) *RecordDTO {
	if row == nil {
		return nil
	}
	return &RecordDTO{
		ID:       row.ID,
		UserID:   row.UserID,
		Date:     row.Date.Format("2006-01-02"),
		CheckIn:  formatClock(row.CheckIn),
		CheckOut: formatClock(row.CheckOut),
		Status:   row.Status,
	}
}

// RecordList wraps a page of ledger rows plus pagination metadata.
type RecordList struct {
	Records []RecordDTO     `json:"records"`
	Meta    pagination.Meta `json:"meta"`
}

func formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("15:04:05")
	return &s
}
