package controllers

import (
	"net/http"

	"github.com/dattendance/attendance-backend/api/responses"
	"github.com/dattendance/attendance-backend/api/validators"
	"github.com/dattendance/attendance-backend/internal/attendance"
	"github.com/dattendance/attendance-backend/internal/rotas"
	"github.com/dattendance/attendance-backend/pkg/config"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/logger"
	"github.com/dattendance/attendance-backend/pkg/pagination"
)

// EmployeeDashboard bundles today's ledger row, today's shift and the weekly
// schedule for the signed-in employee.
func EmployeeDashboard(attSvc attendance.Service, rotaSvc rotas.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if attSvc == nil || rotaSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attendance service unavailable"))
			return
		}

		id, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		today, err := attSvc.Today(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		weekly, err := rotaSvc.ListForEmployee(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		currentDay := attSvc.Now().Weekday().String()
		var todayRota *rotas.RotaDTO
		for i := range weekly {
			if weekly[i].DayOfWeek == currentDay {
				todayRota = &weekly[i]
				break
			}
		}

		responses.WriteSuccess(w, map[string]any{
			"attendance": today,
			"today_rota": todayRota,
			"rotas":      weekly,
		})
	}
}

// EmployeeCheckIn records the start of today's shift. Business rejections
// (outside the shift window, already checked in) come back with a 200 status
// and success=false so the client can show the reason verbatim.
func EmployeeCheckIn(svc attendance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attendance service unavailable"))
			return
		}

		id, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CheckIn(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// EmployeeCheckOut records the end of today's shift.
func EmployeeCheckOut(svc attendance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attendance service unavailable"))
			return
		}

		id, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CheckOut(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// EmployeeMyRecords pages through the signed-in employee's own ledger.
func EmployeeMyRecords(svc attendance.Service, policy config.AttendanceConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attendance service unavailable"))
			return
		}

		id, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.MyRecords(r.Context(), id, pagination.Params{Page: page, PerPage: policy.RecordsPerPage})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
