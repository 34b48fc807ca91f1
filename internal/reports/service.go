package reports

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service builds the four admin reports plus the dashboard stat feeds.
type Service interface {
	Monthly(ctx context.Context, month, year int) (*MonthlyReport, error)
	EmployeeSummaries(ctx context.Context) (*EmployeeSummaryReport, error)
	WorkingHours(ctx context.Context, month, year int) (*WorkingHoursReport, error)
	Absences(ctx context.Context, month, year int) (*AbsenceReport, error)
	Stats(ctx context.Context) (*DashboardStats, error)
	HoursToday(ctx context.Context) (*EmployeeHoursToday, error)
}

type employeeLister interface {
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

type ledgerReader interface {
	FindForDate(ctx context.Context, userID uuid.UUID, date time.Time) (*models.Attendance, error)
	ListInRange(ctx context.Context, from, to time.Time) ([]models.Attendance, error)
	ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Attendance, error)
	ListByUserAll(ctx context.Context, userID uuid.UUID) ([]models.Attendance, error)
	CountForDate(ctx context.Context, date time.Time, status models.AttendanceStatus) (int64, error)
}

type service struct {
	employees employeeLister
	ledger    ledgerReader
	metrics   *metrics.AttendanceMetrics
	now       func() time.Time
}

// ServiceParams bundles the dependencies required to build a reports service.
type ServiceParams struct {
	Employees employeeLister
	Ledger    ledgerReader
	Metrics   *metrics.AttendanceMetrics
	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewService constructs a reporting service.
func NewService(params ServiceParams) (Service, error) {
	if params.Employees == nil {
		return nil, fmt.Errorf("employee lister is required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger reader is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		employees: params.Employees,
		ledger:    params.Ledger,
		metrics:   params.Metrics,
		now:       now,
	}, nil
}

// monthBounds returns the first and last calendar days of the month.
func monthBounds(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid month %d", month))
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last, nil
}

func round2(value float64) float64 {
	out, _ := decimal.NewFromFloat(value).Round(2).Float64()
	return out
}

func (s *service) Monthly(ctx context.Context, month, year int) (*MonthlyReport, error) {
	first, last, err := monthBounds(month, year)
	if err != nil {
		return nil, err
	}

	rows, err := s.ledger.ListInRange(ctx, first, last)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load month")
	}

	report := &MonthlyReport{
		DailyStats: make(map[string]DailyStat, last.Day()),
		Month:      month,
		Year:       year,
	}
	report.Summary.TotalRecords = len(rows)

	byDate := make(map[string][]models.Attendance)
	for _, row := range rows {
		switch row.Status {
		case models.StatusPresent:
			report.Summary.TotalPresent++
		case models.StatusAbsent:
			report.Summary.TotalAbsent++
		case models.StatusLeave:
			report.Summary.TotalLeave++
		}
		key := row.Date.UTC().Format("2006-01-02")
		byDate[key] = append(byDate[key], row)
	}

	// Every day of the month appears, with zeros for empty days.
	for day := 1; day <= last.Day(); day++ {
		key := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		var stat DailyStat
		for _, row := range byDate[key] {
			switch row.Status {
			case models.StatusPresent:
				stat.Present++
			case models.StatusAbsent:
				stat.Absent++
			case models.StatusLeave:
				stat.Leave++
			}
		}
		report.DailyStats[key] = stat
	}

	s.metrics.IncReport("monthly")
	return report, nil
}

func (s *service) EmployeeSummaries(ctx context.Context) (*EmployeeSummaryReport, error) {
	employees, err := s.employees.ListByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employees")
	}

	report := &EmployeeSummaryReport{Employees: make([]EmployeeSummary, 0, len(employees))}
	for i := range employees {
		emp := &employees[i]
		rows, err := s.ledger.ListByUserAll(ctx, emp.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load employee ledger")
		}

		summary := EmployeeSummary{
			ID:         emp.ID.String(),
			Name:       emp.FullName,
			Username:   emp.Username,
			Department: emp.DepartmentOrDash(),
		}
		var hours float64
		for _, row := range rows {
			switch row.Status {
			case models.StatusPresent:
				summary.TotalPresent++
			case models.StatusAbsent:
				summary.TotalAbsent++
			case models.StatusLeave:
				summary.TotalLeave++
			}
			hours += row.WorkedDuration().Hours()
		}
		summary.TotalRecords = len(rows)
		summary.TotalHours = round2(hours)
		report.Employees = append(report.Employees, summary)
	}

	s.metrics.IncReport("employee")
	return report, nil
}

func (s *service) WorkingHours(ctx context.Context, month, year int) (*WorkingHoursReport, error) {
	first, last, err := monthBounds(month, year)
	if err != nil {
		return nil, err
	}

	employees, err := s.employees.ListByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employees")
	}

	report := &WorkingHoursReport{
		Employees: make([]WorkingHoursRow, 0, len(employees)),
		Month:     month,
		Year:      year,
	}

	var totalHours, sumAverages float64
	for i := range employees {
		emp := &employees[i]
		rows, err := s.ledger.ListByUserInRange(ctx, emp.ID, first, last)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load employee month")
		}

		var hours float64
		days := 0
		for _, row := range rows {
			if row.Completed() {
				hours += row.WorkedDuration().Hours()
				days++
			}
		}
		avg := 0.0
		if days > 0 {
			avg = hours / float64(days)
		}

		row := WorkingHoursRow{
			Name:         emp.FullName,
			Username:     emp.Username,
			Department:   emp.DepartmentOrDash(),
			WorkingDays:  days,
			TotalHours:   round2(hours),
			AverageHours: round2(avg),
		}
		report.Employees = append(report.Employees, row)
		totalHours += row.TotalHours
		sumAverages += row.AverageHours
	}

	report.TotalHours = round2(totalHours)
	if len(employees) > 0 {
		report.AverageHours = round2(sumAverages / float64(len(employees)))
	}

	s.metrics.IncReport("working_hours")
	return report, nil
}

func (s *service) Absences(ctx context.Context, month, year int) (*AbsenceReport, error) {
	first, last, err := monthBounds(month, year)
	if err != nil {
		return nil, err
	}

	rows, err := s.ledger.ListInRange(ctx, first, last)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load month")
	}

	report := &AbsenceReport{Month: month, Year: year, Absences: []AbsenceRow{}}
	userCache := make(map[uuid.UUID]*models.User)
	for _, row := range rows {
		if row.Status != models.StatusAbsent {
			continue
		}
		user, ok := userCache[row.UserID]
		if !ok {
			user, err = s.employees.FindByID(ctx, row.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup employee")
			}
			userCache[row.UserID] = user
		}

		notes := row.Notes
		if notes == "" {
			notes = "-"
		}
		report.Absences = append(report.Absences, AbsenceRow{
			EmployeeName: user.FullName,
			Username:     user.Username,
			Department:   user.DepartmentOrDash(),
			Date:         row.Date.UTC().Format("2006-01-02"),
			Day:          row.Date.UTC().Weekday().String(),
			Notes:        notes,
		})
	}
	report.TotalAbsences = len(report.Absences)

	s.metrics.IncReport("absence")
	return report, nil
}

func (s *service) Stats(ctx context.Context) (*DashboardStats, error) {
	today := s.now()

	total, err := s.employees.CountByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count employees")
	}
	present, err := s.ledger.CountForDate(ctx, today, models.StatusPresent)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count present")
	}
	absent, err := s.ledger.CountForDate(ctx, today, models.StatusAbsent)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count absent")
	}

	return &DashboardStats{
		TotalEmployees: total,
		PresentToday:   present,
		AbsentToday:    absent,
	}, nil
}

func (s *service) HoursToday(ctx context.Context) (*EmployeeHoursToday, error) {
	today := s.now()

	employees, err := s.employees.ListByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employees")
	}

	out := &EmployeeHoursToday{Employees: make([]EmployeeHoursRow, 0, len(employees))}
	for i := range employees {
		emp := &employees[i]
		if !emp.IsActive {
			continue
		}

		hours := "0h 0m"
		status := "Not Checked In"
		row, err := s.ledger.FindForDate(ctx, emp.ID, today)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup attendance")
		}
		if row != nil {
			switch {
			case row.Completed():
				hours = formatWorked(row.WorkedDuration())
				status = "Checked Out"
			case row.CheckIn != nil:
				hours = formatWorked(today.Sub(*row.CheckIn))
				status = "Working"
			}
		}
		out.Employees = append(out.Employees, EmployeeHoursRow{
			Name:   emp.FullName,
			Hours:  hours,
			Status: status,
		})
	}

	// Descending by the rendered hours string.
	sort.SliceStable(out.Employees, func(i, j int) bool {
		return out.Employees[i].Hours > out.Employees[j].Hours
	})
	return out, nil
}

func formatWorked(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}
