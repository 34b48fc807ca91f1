package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dattendance/attendance-backend/api/controllers"
	"github.com/dattendance/attendance-backend/api/middleware"
	"github.com/dattendance/attendance-backend/internal/attendance"
	internalauth "github.com/dattendance/attendance-backend/internal/auth"
	"github.com/dattendance/attendance-backend/internal/reports"
	"github.com/dattendance/attendance-backend/internal/rotas"
	"github.com/dattendance/attendance-backend/internal/users"
	"github.com/dattendance/attendance-backend/pkg/auth/session"
	"github.com/dattendance/attendance-backend/pkg/config"
	"github.com/dattendance/attendance-backend/pkg/db"
	"github.com/dattendance/attendance-backend/pkg/db/models"
	"github.com/dattendance/attendance-backend/pkg/logger"
	"github.com/dattendance/attendance-backend/pkg/metrics"
	redisclient "github.com/dattendance/attendance-backend/pkg/redis"
)

type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    db.Pinger
	CachePinger redisclient.Pinger
	Sessions    session.AccessSessionChecker
	AuthService internalauth.Service
	Users       users.Service
	UsersRepo   users.Repository
	Rotas       rotas.Service
	Attendance  attendance.Service
	Ledger      attendance.Repository
	Reports     reports.Service
	Exporter    reports.Exporter
	Instruments *metrics.AttendanceMetrics
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DBPinger, deps.CachePinger, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Get("/logout", controllers.AuthLogout(deps.AuthService, logg))
		r.Get("/profile", controllers.ProfileShow(deps.Users, logg))
		r.Post("/profile", controllers.ProfileUpdate(deps.Users, logg))

		r.Route("/employee", func(r chi.Router) {
			r.Use(middleware.RequireRole(string(models.RoleEmployee), logg))
			r.Get("/dashboard", controllers.EmployeeDashboard(deps.Attendance, deps.Rotas, logg))
			r.Post("/check-in", controllers.EmployeeCheckIn(deps.Attendance, logg))
			r.Post("/check-out", controllers.EmployeeCheckOut(deps.Attendance, logg))
			r.Get("/my-records", controllers.EmployeeMyRecords(deps.Attendance, cfg.Attendance, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(string(models.RoleAdmin), logg))

			r.Post("/delete_employee/{employeeId}", controllers.AdminDeleteEmployee(deps.Users, logg))

			r.Route("/admin", func(r chi.Router) {
				r.Get("/dashboard", controllers.AdminStats(deps.Reports, logg))
				r.Get("/employees", controllers.AdminEmployees(deps.Users, cfg.Attendance, logg))
				r.Post("/employees/delete-bulk", controllers.AdminBulkDeleteEmployees(deps.Users, logg))
				r.Post("/add-employee", controllers.AdminAddEmployee(deps.Users, logg))
				r.Get("/employee/{employeeId}", controllers.AdminViewEmployee(deps.Users, deps.Ledger, logg))
				r.Put("/employee/{employeeId}", controllers.AdminUpdateEmployee(deps.Users, logg))

				r.Get("/rotas", controllers.AdminRotaEmployees(deps.UsersRepo, logg))
				r.Get("/employee/{employeeId}/rotas", controllers.AdminEmployeeRotas(deps.Rotas, logg))
				r.Post("/employee/{employeeId}/rotas", controllers.AdminAssignRota(deps.Rotas, logg))
				r.Post("/rota/{rotaId}/delete", controllers.AdminDeleteRota(deps.Rotas, logg))

				r.Get("/attendance-records", controllers.AdminAttendanceRecords(deps.Attendance, cfg.Attendance, logg))
				r.Get("/reports", controllers.AdminReports(deps.Reports, logg))

				r.Route("/export", func(r chi.Router) {
					r.Get("/monthly-report", controllers.AdminExportMonthlyReport(deps.Exporter, deps.Instruments, logg))
					r.Get("/employee-report", controllers.AdminExportEmployeeReport(deps.Exporter, deps.Instruments, logg))
					r.Get("/working-hours-report", controllers.AdminExportWorkingHoursReport(deps.Exporter, deps.Instruments, logg))
					r.Get("/absence-report", controllers.AdminExportAbsenceReport(deps.Exporter, deps.Instruments, logg))
				})
			})

			r.Route("/api/admin", func(r chi.Router) {
				r.Get("/stats", controllers.AdminStats(deps.Reports, logg))
				r.Get("/employee-hours-today", controllers.AdminEmployeeHoursToday(deps.Reports, logg))
			})
		})
	})

	return r
}
