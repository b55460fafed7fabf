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

	"github.com/corvitlabs/attendance-tracker/internal/config"
	"github.com/corvitlabs/attendance-tracker/internal/domain/policy"
	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	appHTTP "github.com/corvitlabs/attendance-tracker/internal/handler/http"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/cron"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/database"
	"github.com/corvitlabs/attendance-tracker/internal/pkg/jwt"
	"github.com/corvitlabs/attendance-tracker/internal/repository/postgresql"
	attendanceService "github.com/corvitlabs/attendance-tracker/internal/service/attendance"
	serviceAuth "github.com/corvitlabs/attendance-tracker/internal/service/auth"
	officeService "github.com/corvitlabs/attendance-tracker/internal/service/office"
	policyService "github.com/corvitlabs/attendance-tracker/internal/service/policy"
	reportService "github.com/corvitlabs/attendance-tracker/internal/service/report"
	userService "github.com/corvitlabs/attendance-tracker/internal/service/user"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if cfg.Database.MigrateOnStart {
		if err := database.RunMigrations(db); err != nil {
			return err
		}
	}

	loc := cfg.Location()
	tx := postgresql.NewTransactor(db)

	userRepo := postgresql.NewUserRepository(db)
	officeRepo := postgresql.NewOfficeLocationRepository(db)
	configRepo := postgresql.NewSystemConfigRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	userSvc := userService.NewUserService(tx, userRepo)
	officeSvc := officeService.NewOfficeService(officeRepo)
	policySvc := policyService.NewPolicyService(tx, configRepo, policy.SeedMode(cfg.Attendance.PolicySeedMode))
	attendanceSvc := attendanceService.NewAttendanceService(
		tx,
		attendanceRepo,
		breakRepo,
		officeSvc,
		policySvc,
		attendanceService.Options{
			RejectOutsideGeofence: cfg.Attendance.RejectOutsideGeofence,
			Location:              loc,
		},
	)
	reportSvc := reportService.NewReportService(userRepo, attendanceRepo, breakRepo, loc)

	if err := seedAdmin(ctx, cfg.Admin, userSvc); err != nil {
		return err
	}

	router := appHTTP.NewRouter(cfg, JWTService, userSvc, appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		User:         appHTTP.NewUserHandler(userSvc),
		Office:       appHTTP.NewOfficeHandler(officeSvc),
		SystemConfig: appHTTP.NewSystemConfigHandler(policySvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(
		attendanceSvc,
		policySvc,
		loc,
		cfg.Attendance.AbsenceSweepInterval,
		cfg.Attendance.AbsenceSweepGraceMinute,
	).RegisterJobs(scheduler)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		slog.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// seedAdmin creates the configured admin account on first start.
func seedAdmin(ctx context.Context, admin config.AdminConfig, users user.UserService) error {
	if admin.Email == "" {
		return nil
	}
	_, err := users.CreateAdmin(ctx, user.CreateUserRequest{
		EmployeeID: admin.EmployeeID,
		Name:       admin.Name,
		Email:      admin.Email,
		Password:   admin.Password,
	})
	switch {
	case err == nil:
		slog.Info("Admin account created", "email", admin.Email)
	case errors.Is(err, user.ErrAdminAlreadyExists):
	default:
		return fmt.Errorf("seeding admin: %w", err)
	}
	return nil
}

func logLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
