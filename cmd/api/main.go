package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/config"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/latepolicy"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/leave"
	"github.com/cmlabs-hris/attendance-engine/internal/domain/settings"
	appHTTP "github.com/cmlabs-hris/attendance-engine/internal/handler/http"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/cron"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/email"
	"github.com/cmlabs-hris/attendance-engine/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/postgresql"
	"github.com/cmlabs-hris/attendance-engine/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/attendance-engine/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/attendance-engine/internal/service/auth"
	latePolicyService "github.com/cmlabs-hris/attendance-engine/internal/service/latepolicy"
	leaveService "github.com/cmlabs-hris/attendance-engine/internal/service/leave"
	settingsService "github.com/cmlabs-hris/attendance-engine/internal/service/settings"
)

// repositories is the storage backend selected by DB_DRIVER.
type repositories struct {
	tx         database.Transactor
	employees  employee.EmployeeRepository
	attendance attendance.AttendanceRepository
	requests   leave.LeaveRequestRepository
	balances   leave.LeaveBalanceRepository
	leaveTypes leave.LeaveTypeRepository
	settings   settings.SettingsRepository
	logs       latepolicy.LateDeductionLogRepository
	close      func()
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		if err := postgresql.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate postgres: %w", err)
		}
		return &repositories{
			tx:         postgresql.NewTransactor(db),
			employees:  postgresql.NewEmployeeRepository(db),
			attendance: postgresql.NewAttendanceRepository(db),
			requests:   postgresql.NewLeaveRequestRepository(db),
			balances:   postgresql.NewLeaveBalanceRepository(db),
			leaveTypes: postgresql.NewLeaveTypeRepository(db),
			settings:   postgresql.NewSettingsRepository(db),
			logs:       postgresql.NewLateDeductionLogRepository(db),
			close:      db.Close,
		}, nil
	case "sqlite":
		db, err := database.NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate sqlite: %w", err)
		}
		return &repositories{
			tx:         sqlite.NewTransactor(db),
			employees:  sqlite.NewEmployeeRepository(db),
			attendance: sqlite.NewAttendanceRepository(db),
			requests:   sqlite.NewLeaveRequestRepository(db),
			balances:   sqlite.NewLeaveBalanceRepository(db),
			leaveTypes: sqlite.NewLeaveTypeRepository(db),
			settings:   sqlite.NewSettingsRepository(db),
			logs:       sqlite.NewLateDeductionLogRepository(db),
			close:      func() { db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.Database.Driver)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("app", "attendance-engine")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		slog.Error("Error connecting to database", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer repos.close()

	loc := cfg.Location()

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		slog.Error("Error initializing email service", "error", err)
		os.Exit(1)
	}
	if cfg.SMTP.Host == "" {
		slog.Info("SMTP not configured, leave status emails are disabled")
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(repos.tx, repos.employees, repos.settings, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(
		repos.tx,
		repos.attendance,
		repos.employees,
		repos.requests,
		repos.settings,
		loc,
		time.Now,
	)
	latePolicySvc := latePolicyService.NewLatePolicyService(
		repos.tx,
		repos.logs,
		repos.balances,
		repos.settings,
		attendanceSvc,
	)
	leaveSvc := leaveService.NewLeaveService(
		repos.tx,
		repos.requests,
		repos.attendance,
		repos.employees,
		repos.settings,
		repos.leaveTypes,
		emailService,
		loc,
		time.Now,
	)
	settingsSvc := settingsService.NewSettingsService(repos.settings, repos.leaveTypes)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewLatePolicyHandler(latePolicySvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewSettingsHandler(settingsSvc),
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(
		attendanceSvc,
		latePolicySvc,
		repos.employees,
		cfg.Attendance.JobInterval,
		cfg.Attendance.JobConcurrency,
		loc,
		time.Now,
	).RegisterJobs(scheduler)
	scheduler.Start(ctx)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "driver", cfg.Database.Driver, "timezone", cfg.Attendance.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	scheduler.Stop()
}
