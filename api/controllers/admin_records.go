package controllers

import (
	"net/http"

	"github.com/dattendance/attendance-backend/api/responses"
	"github.com/dattendance/attendance-backend/api/validators"
	"github.com/dattendance/attendance-backend/internal/attendance"
	"github.com/dattendance/attendance-backend/pkg/config"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/logger"
	"github.com/dattendance/attendance-backend/pkg/pagination"
)

// AdminAttendanceRecords pages through the full ledger with optional
// date_from/date_to bounds.
func AdminAttendanceRecords(svc attendance.Service, policy config.AttendanceConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "attendance service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dateFrom, err := validators.ParseQueryDate(r, "date_from")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		dateTo, err := validators.ParseQueryDate(r, "date_to")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.AllRecords(r.Context(),
			pagination.Params{Page: page, PerPage: policy.AdminRecordsPerPage},
			attendance.RecordFilters{DateFrom: dateFrom, DateTo: dateTo})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}
