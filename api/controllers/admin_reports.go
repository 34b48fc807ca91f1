package controllers

import (
	"net/http"
	"strings"

	"github.com/dattendance/attendance-backend/api/responses"
	"github.com/dattendance/attendance-backend/internal/reports"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/logger"
)

// AdminReports serves the report picked by the type query parameter. Month
// and year default to the current UTC month.
func AdminReports(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		reportType := strings.TrimSpace(r.URL.Query().Get("type"))
		if reportType == "" {
			reportType = "monthly"
		}

		month, year, err := parseMonthYear(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var data any
		switch reportType {
		case "monthly":
			data, err = svc.Monthly(r.Context(), month, year)
		case "employee":
			data, err = svc.EmployeeSummaries(r.Context())
		case "working_hours":
			data, err = svc.WorkingHours(r.Context(), month, year)
		case "absence":
			data, err = svc.Absences(r.Context(), month, year)
		default:
			err = pkgerrors.New(pkgerrors.CodeValidation, "unknown report type").WithDetails(map[string]any{"type": reportType})
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"type":  reportType,
			"month": month,
			"year":  year,
			"data":  data,
		})
	}
}

// AdminStats powers the dashboard headline counters.
func AdminStats(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

// AdminEmployeeHoursToday lists per-employee hours worked so far today.
func AdminEmployeeHoursToday(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		hours, err := svc.HoursToday(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, hours)
	}
}
