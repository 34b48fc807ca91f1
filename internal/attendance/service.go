package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dattendance/attendance-backend/pkg/config"
	"github.com/dattendance/attendance-backend/pkg/db"
	"github.com/dattendance/attendance-backend/pkg/db/models"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/metrics"
	"github.com/dattendance/attendance-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dattendance/attendance-backend/internal/rotas"
)

const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
)

type rotaFinder interface {
	FindActiveForDay(ctx context.Context, userID uuid.UUID, day string) (*models.Rota, error)
}

type service struct {
	repo    Repository
	rotas   rotaFinder
	window  rotas.CheckInWindow
	reopen  bool
	metrics *metrics.AttendanceMetrics
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build an attendance service.
type ServiceParams struct {
	Repo    Repository
	Rotas   rotaFinder
	Policy  config.AttendanceConfig
	Metrics *metrics.AttendanceMetrics
	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewService constructs the check-in workflow service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("attendance repository is required")
	}
	if params.Rotas == nil {
		return nil, fmt.Errorf("rota finder is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		repo:    params.Repo,
		rotas:   params.Rotas,
		window:  rotas.CheckInWindow{EarlyMinutes: params.Policy.EarlyCheckInMinutes},
		reopen:  params.Policy.AllowShiftReopen,
		metrics: params.Metrics,
		now:     now,
	}, nil
}

func (s *service) CheckIn(ctx context.Context, userID uuid.UUID) (*CheckResult, error) {
	now := s.now()
	day := now.Weekday().String()

	rota, err := s.rotas.FindActiveForDay(ctx, userID, day)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup rota")
	}

	verdict := s.window.Evaluate(now, rota)
	if !verdict.Allowed {
		s.metrics.IncCheckIn(outcomeRejected)
		return &CheckResult{Message: verdict.Message}, nil
	}

	result, err := s.recordCheckIn(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if result.Success {
		s.metrics.IncCheckIn(outcomeAccepted)
	} else {
		s.metrics.IncCheckIn(outcomeRejected)
	}
	return result, nil
}

func (s *service) recordCheckIn(ctx context.Context, userID uuid.UUID, now time.Time) (*CheckResult, error) {
	existing, err := s.repo.FindForDate(ctx, userID, now)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup attendance")
	}

	if existing == nil {
		_, err := s.repo.Create(ctx, &models.Attendance{
			UserID:  userID,
			Date:    now,
			CheckIn: &now,
			Status:  models.StatusPresent,
		})
		if err != nil {
			// A concurrent check-in won the insert; apply against its row.
			if db.IsUniqueViolation(err, "idx_attendance_user_date") {
				return s.recordCheckIn(ctx, userID, now)
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create attendance")
		}
		return checkInSuccess(now), nil
	}

	switch {
	case existing.Completed():
		if !s.reopen {
			return &CheckResult{Message: "Already checked in today"}, nil
		}
		// A new shift after a completed one reopens the day's row.
		existing.CheckIn = &now
		existing.CheckOut = nil
		existing.Status = models.StatusPresent
	case existing.CheckIn != nil:
		return &CheckResult{Message: "Already checked in today"}, nil
	default:
		existing.CheckIn = &now
		existing.Status = models.StatusPresent
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update attendance")
	}
	return checkInSuccess(now), nil
}

func (s *service) CheckOut(ctx context.Context, userID uuid.UUID) (*CheckResult, error) {
	now := s.now()

	row, err := s.repo.FindForDate(ctx, userID, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.IncCheckOut(outcomeRejected)
			return &CheckResult{Message: "No check-in record found"}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup attendance")
	}
	if row.CheckOut != nil {
		s.metrics.IncCheckOut(outcomeRejected)
		return &CheckResult{Message: "Already checked out today"}, nil
	}

	row.CheckOut = &now
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update attendance")
	}
	s.metrics.IncCheckOut(outcomeAccepted)
	return &CheckResult{
		Success: true,
		Message: "Check-out successful",
		Time:    now.Format("15:04:05"),
	}, nil
}

func (s *service) Now() time.Time {
	return s.now()
}

func (s *service) Today(ctx context.Context, userID uuid.UUID) (*RecordDTO, error) {
	row, err := s.repo.FindForDate(ctx, userID, s.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup attendance")
	}
	return FromModel(row), nil
}

func (s *service) MyRecords(ctx context.Context, userID uuid.UUID, params pagination.Params) (*RecordList, error) {
	rows, total, err := s.repo.ListByUser(ctx, userID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list attendance")
	}
	return buildRecordList(rows, params, total), nil
}

func (s *service) AllRecords(ctx context.Context, params pagination.Params, filters RecordFilters) (*RecordList, error) {
	rows, total, err := s.repo.ListAll(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list attendance")
	}
	return buildRecordList(rows, params, total), nil
}

func buildRecordList(rows []models.Attendance, params pagination.Params, total int64) *RecordList {
	dtos := make([]RecordDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &RecordList{
		Records: dtos,
		Meta:    pagination.NewMeta(params, total),
	}
}

func checkInSuccess(now time.Time) *CheckResult {
	return &CheckResult{
		Success: true,
		Message: "Check-in successful",
		Time:    now.Format("15:04:05"),
	}
}
