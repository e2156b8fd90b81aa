package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/clinicdesk/api/internal/api"
	"github.com/clinicdesk/api/internal/api/handlers"
	"github.com/clinicdesk/api/internal/lifecycle"
	"github.com/clinicdesk/api/internal/repository"
	"github.com/clinicdesk/api/internal/services"
	"github.com/clinicdesk/api/pkg/config"
	"github.com/clinicdesk/api/pkg/database"
	"github.com/clinicdesk/api/pkg/logger"

	// Import generated docs (will be created after running swag init)
	_ "github.com/clinicdesk/api/docs"
)

// @title           ClinicDesk API
// @version         1.0
// @description     Clinic record management: staff users, patients and appointment bookings.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("Starting ClinicDesk API",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	// Connect to database
	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	patientRepo := repository.NewPatientRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)

	jwtSecret := []byte(cfg.JWTSecret)

	// Initialize services
	authService := services.NewAuthService(userRepo, jwtSecret, cfg.TokenTTL)
	userService := services.NewUserService(userRepo)
	patientService := services.NewPatientService(patientRepo)
	appointmentService := services.NewAppointmentService(
		db, appointmentRepo, patientRepo, userRepo,
		lifecycle.Guard{Strict: cfg.StrictTransitions},
	)

	// Create router with dependencies
	router := api.NewRouter(api.Dependencies{
		HMACSecret:          jwtSecret,
		DB:                  db,
		AuthHandler:         handlers.NewAuthHandler(authService),
		UsersHandler:        handlers.NewUsersHandler(userService),
		PatientsHandler:     handlers.NewPatientsHandler(patientService),
		AppointmentsHandler: handlers.NewAppointmentsHandler(appointmentService),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
	} else {
		log.Info("server exited gracefully")
	}
}
