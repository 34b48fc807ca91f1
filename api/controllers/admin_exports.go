package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dattendance/attendance-backend/api/responses"
	"github.com/dattendance/attendance-backend/internal/reports"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/logger"
	"github.com/dattendance/attendance-backend/pkg/metrics"
)

func writeWorkbook(w http.ResponseWriter, export *reports.Export) {
	w.Header().Set("Content-Type", reports.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(export.Content.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Content.Bytes())
}

func exportHandler(kind string, instruments *metrics.AttendanceMetrics, logg *logger.Logger, render func(ctx context.Context, r *http.Request) (*reports.Export, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		export, err := render(r.Context(), r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		instruments.ObserveExport(kind, time.Since(start))
		writeWorkbook(w, export)
	}
}

// AdminExportMonthlyReport streams the monthly attendance workbook.
func AdminExportMonthlyReport(exporter reports.Exporter, instruments *metrics.AttendanceMetrics, logg *logger.Logger) http.HandlerFunc {
	return exportHandler("monthly", instruments, logg, func(ctx context.Context, r *http.Request) (*reports.Export, error) {
		if exporter == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable")
		}
		month, year, err := parseMonthYear(r)
		if err != nil {
			return nil, err
		}
		return exporter.MonthlyWorkbook(ctx, month, year)
	})
}

// AdminExportEmployeeReport streams the all-time employee summary workbook.
func AdminExportEmployeeReport(exporter reports.Exporter, instruments *metrics.AttendanceMetrics, logg *logger.Logger) http.HandlerFunc {
	return exportHandler("employee", instruments, logg, func(ctx context.Context, r *http.Request) (*reports.Export, error) {
		if exporter == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable")
		}
		return exporter.EmployeeWorkbook(ctx)
	})
}

// AdminExportWorkingHoursReport streams the working hours workbook.
func AdminExportWorkingHoursReport(exporter reports.Exporter, instruments *metrics.AttendanceMetrics, logg *logger.Logger) http.HandlerFunc {
	return exportHandler("working_hours", instruments, logg, func(ctx context.Context, r *http.Request) (*reports.Export, error) {
		if exporter == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable")
		}
		month, year, err := parseMonthYear(r)
		if err != nil {
			return nil, err
		}
		return exporter.WorkingHoursWorkbook(ctx, month, year)
	})
}

// AdminExportAbsenceReport streams the absence workbook.
func AdminExportAbsenceReport(exporter reports.Exporter, instruments *metrics.AttendanceMetrics, logg *logger.Logger) http.HandlerFunc {
	return exportHandler("absence", instruments, logg, func(ctx context.Context, r *http.Request) (*reports.Export, error) {
		if exporter == nil {
			return nil, pkgerrors.New(pkgerrors.CodeInternal, "exporter unavailable")
		}
		month, year, err := parseMonthYear(r)
		if err != nil {
			return nil, err
		}
		return exporter.AbsenceWorkbook(ctx, month, year)
	})
}
