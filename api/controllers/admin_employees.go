package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dattendance/attendance-backend/api/responses"
	"github.com/dattendance/attendance-backend/api/validators"
	internalattendance "github.com/dattendance/attendance-backend/internal/attendance"
	"github.com/dattendance/attendance-backend/internal/users"
	"github.com/dattendance/attendance-backend/pkg/config"
	"github.com/dattendance/attendance-backend/pkg/db/models"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/logger"
	"github.com/dattendance/attendance-backend/pkg/pagination"
)

// employeeLedger is the slice of the attendance repository the employee
// detail page needs.
type employeeLedger interface {
	ListByUserInRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]models.Attendance, error)
}

func parseEmployeeID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "employeeId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "employee id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid employee id")
	}
	return id, nil
}

func parseMonthYear(r *http.Request) (int, int, error) {
	now := time.Now().UTC()
	month, err := validators.ParseQueryInt(r, "month", int(now.Month()), 1, 12)
	if err != nil {
		return 0, 0, err
	}
	year, err := validators.ParseQueryInt(r, "year", now.Year(), 2000, 2100)
	if err != nil {
		return 0, 0, err
	}
	return month, year, nil
}

// AdminEmployees lists accounts with the roster filters. Role defaults to
// employee so admins stay out of the roster unless asked for.
func AdminEmployees(svc users.Service, policy config.AttendanceConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := strings.TrimSpace(r.URL.Query().Get("role"))
		if role == "" {
			role = string(models.RoleEmployee)
		}

		filters := users.ListFilters{
			Query:  validators.SanitizeString(r.URL.Query().Get("username"), 120),
			Role:   role,
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
		}

		list, err := svc.List(r.Context(), pagination.Params{Page: page, PerPage: policy.EmployeeListPerPage}, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminAddEmployee creates a new employee account and mails the credentials.
func AdminAddEmployee(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var body users.CreateEmployeeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// AdminViewEmployee returns one employee plus their ledger for the requested
// month, newest first.
func AdminViewEmployee(svc users.Service, ledger employeeLedger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || ledger == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		id, err := parseEmployeeID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		month, year, err := parseMonthYear(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		employee, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if employee.Role != models.RoleEmployee {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "Employee not found"))
			return
		}

		first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		rows, err := ledger.ListByUserInRange(r.Context(), id, first, last)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list attendance"))
			return
		}

		records := make([]internalattendance.RecordDTO, 0, len(rows))
		for i := len(rows) - 1; i >= 0; i-- {
			records = append(records, *internalattendance.FromModel(&rows[i]))
		}

		responses.WriteSuccess(w, map[string]any{
			"employee": employee,
			"records":  records,
			"month":    month,
			"year":     year,
		})
	}
}

// AdminUpdateEmployee edits an employee account.
func AdminUpdateEmployee(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		id, err := parseEmployeeID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body users.UpdateEmployeeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.Update(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// AdminDeleteEmployee removes a single employee account.
func AdminDeleteEmployee(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := parseEmployeeID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"success": true,
			"message": "Employee deleted successfully",
		})
	}
}

// BulkDeleteRequest carries the ids posted from the roster checkboxes.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

// AdminBulkDeleteEmployees deletes a batch of employees, silently skipping
// admins, the caller and ids that do not resolve.
func AdminBulkDeleteEmployees(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		actor, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body BulkDeleteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deleted, err := svc.BulkDelete(r.Context(), actor, body.IDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int{"deleted": deleted})
	}
}
