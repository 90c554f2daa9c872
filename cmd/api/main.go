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

	"github.com/cmlabs-hris/timesheet-backend-go/internal/app"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeStorage, err := app.Open(cfg)
	if err != nil {
		return err
	}
	defer closeStorage()

	services := app.NewServices(repos)
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	employeeHandler := appHTTP.NewEmployeeHandler(services.Employee)
	payPeriodHandler := appHTTP.NewPayPeriodHandler(services.PayPeriod)
	timesheetHandler := appHTTP.NewTimesheetHandler(services.Timesheet)
	auditTrailHandler := appHTTP.NewAuditTrailHandler(services.Audit)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: []string{cfg.App.FrontendURL},
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       cfg.LogLevel(),
		},
		JWTService,
		employeeHandler,
		payPeriodHandler,
		timesheetHandler,
		auditTrailHandler,
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewPayPeriodJobs(services.PayPeriod, cfg.Scheduler.PayPeriodCheckInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr, "storage", cfg.App.Storage, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
