package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dattendance/attendance-backend/api/responses"
	"github.com/dattendance/attendance-backend/api/validators"
	"github.com/dattendance/attendance-backend/internal/rotas"
	"github.com/dattendance/attendance-backend/internal/users"
	"github.com/dattendance/attendance-backend/pkg/db/models"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/logger"
)

// employeeRoster is the slice of the users repository the schedule pages need.
type employeeRoster interface {
	ListByRole(ctx context.Context, role models.Role) ([]models.User, error)
}

// AdminRotaEmployees lists every employee the schedule page can assign
// shifts to.
func AdminRotaEmployees(roster employeeRoster, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if roster == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users repository unavailable"))
			return
		}

		rows, err := roster.ListByRole(r.Context(), models.RoleEmployee)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list employees"))
			return
		}

		employees := make([]users.UserDTO, 0, len(rows))
		for i := range rows {
			employees = append(employees, *users.FromModel(&rows[i]))
		}
		responses.WriteSuccess(w, map[string]any{"employees": employees})
	}
}

// AdminEmployeeRotas returns one employee's weekly schedule, Monday first.
func AdminEmployeeRotas(svc rotas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rotas service unavailable"))
			return
		}

		id, err := parseEmployeeID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		weekly, err := svc.ListForEmployee(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"rotas": weekly})
	}
}

// AdminAssignRota creates or replaces the shift for one weekday.
func AdminAssignRota(svc rotas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rotas service unavailable"))
			return
		}

		id, err := parseEmployeeID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rotas.AssignRotaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assigned, err := svc.Assign(r.Context(), id, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, assigned)
	}
}

// AdminDeleteRota removes a single shift assignment.
func AdminDeleteRota(svc rotas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rotas service unavailable"))
			return
		}

		raw := strings.TrimSpace(chi.URLParam(r, "rotaId"))
		if raw == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "rota id is required"))
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rota id"))
			return
		}

		if err := svc.Remove(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"success": true})
	}
}
