package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dattendance/attendance-backend/api/routes"
	"github.com/dattendance/attendance-backend/internal/attendance"
	internalauth "github.com/dattendance/attendance-backend/internal/auth"
	"github.com/dattendance/attendance-backend/internal/reports"
	"github.com/dattendance/attendance-backend/internal/rotas"
	"github.com/dattendance/attendance-backend/internal/users"
	"github.com/dattendance/attendance-backend/pkg/auth/session"
	"github.com/dattendance/attendance-backend/pkg/config"
	"github.com/dattendance/attendance-backend/pkg/db"
	"github.com/dattendance/attendance-backend/pkg/logger"
	"github.com/dattendance/attendance-backend/pkg/mail"
	"github.com/dattendance/attendance-backend/pkg/metrics"
	"github.com/dattendance/attendance-backend/pkg/migrate"
	redisclient "github.com/dattendance/attendance-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redisclient.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT.SessionTTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	instruments := metrics.NewAttendanceMetrics(prometheus.DefaultRegisterer)
	mailer := mail.FromConfig(cfg.Mail, logg)

	usersRepo := users.NewRepository(dbClient.DB())
	rotasRepo := rotas.NewRepository(dbClient.DB())
	ledger := attendance.NewRepository(dbClient.DB())

	usersService, err := users.NewService(users.ServiceParams{
		Repo:      usersRepo,
		Mailer:    mailer,
		Logger:    logg,
		Password:  cfg.Password,
		Bootstrap: cfg.Bootstrap,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	if err := usersService.EnsureDefaultAdmin(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to ensure default admin", err)
		os.Exit(1)
	}

	authService, err := internalauth.NewService(internalauth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	rotasService, err := rotas.NewService(rotas.ServiceParams{
		Repo:      rotasRepo,
		Employees: usersRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create rotas service", err)
		os.Exit(1)
	}

	attendanceService, err := attendance.NewService(attendance.ServiceParams{
		Repo:    ledger,
		Rotas:   rotasRepo,
		Policy:  cfg.Attendance,
		Metrics: instruments,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create attendance service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(reports.ServiceParams{
		Employees: usersRepo,
		Ledger:    ledger,
		Metrics:   instruments,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	exporter, err := reports.NewExporter(reportsService)
	if err != nil {
		logg.Error(context.Background(), "failed to create report exporter", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Dependencies{
			Config:      cfg,
			Logger:      logg,
			DBPinger:    dbClient,
			CachePinger: redisClient,
			Sessions:    sessionManager,
			AuthService: authService,
			Users:       usersService,
			UsersRepo:   usersRepo,
			Rotas:       rotasService,
			Attendance:  attendanceService,
			Ledger:      ledger,
			Reports:     reportsService,
			Exporter:    exporter,
			Instruments: instruments,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
