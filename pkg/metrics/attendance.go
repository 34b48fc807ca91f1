package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AttendanceMetrics records outcomes for the attendance workflow.
type AttendanceMetrics struct {
	checkIns  *prometheus.CounterVec
	checkOuts *prometheus.CounterVec
	reports   *prometheus.CounterVec
	exports   *prometheus.HistogramVec
}

// NewAttendanceMetrics registers the attendance metrics on the provided registerer.
func NewAttendanceMetrics(reg prometheus.Registerer) *AttendanceMetrics {
	if reg == nil {
		return &AttendanceMetrics{}
	}
	checkIns := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_check_ins_total",
		Help: "Check-in attempts by outcome.",
	}, []string{"outcome"})
	checkOuts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_check_outs_total",
		Help: "Check-out attempts by outcome.",
	}, []string{"outcome"})
	reports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attendance_reports_total",
		Help: "Report generations by kind.",
	}, []string{"kind"})
	exports := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "attendance_export_duration_seconds",
		Help:    "Duration of spreadsheet export builds in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})
	reg.MustRegister(checkIns, checkOuts, reports, exports)
	return &AttendanceMetrics{
		checkIns:  checkIns,
		checkOuts: checkOuts,
		reports:   reports,
		exports:   exports,
	}
}

// IncCheckIn increments the check-in counter for the given outcome.
func (a *AttendanceMetrics) IncCheckIn(outcome string) {
	if a == nil || a.checkIns == nil {
		return
	}
	a.checkIns.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncCheckOut increments the check-out counter for the given outcome.
func (a *AttendanceMetrics) IncCheckOut(outcome string) {
	if a == nil || a.checkOuts == nil {
		return
	}
	a.checkOuts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncReport increments the report counter for the named report kind.
func (a *AttendanceMetrics) IncReport(kind string) {
	if a == nil || a.reports == nil {
		return
	}
	a.reports.WithLabelValues(normalizeLabel(kind)).Inc()
}

// ObserveExport records how long a spreadsheet export took to build.
func (a *AttendanceMetrics) ObserveExport(kind string, duration time.Duration) {
	if a == nil || a.exports == nil {
		return
	}
	a.exports.WithLabelValues(normalizeLabel(kind)).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
