package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	database "github.com/FACorreiaa/go-favorite-cities/app/db"
	appLogger "github.com/FACorreiaa/go-favorite-cities/app/logger"
	"github.com/FACorreiaa/go-favorite-cities/app/observability/metrics"
	"github.com/FACorreiaa/go-favorite-cities/app/tracer"
	"github.com/FACorreiaa/go-favorite-cities/config"
	"github.com/FACorreiaa/go-favorite-cities/internal/container"
)

// @title                      Favorite Cities API
// @version                    1.0
// @description                Users, bearer token authentication and per-user favorite cities.
// @host                       localhost:8000
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the access token.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}
	// Tokens cannot be issued or checked without these.
	if err := cfg.JWT.Validate(); err != nil {
		log.Fatalf("FATAL: Invalid JWT configuration: %v", err)
	}

	logger := appLogger.New(cfg.Mode)
	slog.SetDefault(logger)
	logger.Info("Configuration loaded", slog.String("mode", cfg.Mode), slog.Any("jwt", cfg.JWT))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, &cfg, logger); err != nil {
		logger.Error("Application stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Application shut down complete.")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	providers, err := tracer.InitTracingAndMetrics("go-favorite-cities")
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.Any("error", err))
		}
	}()
	metrics.InitAppMetrics()

	dbConfig, err := database.NewDatabaseConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("database config: %w", err)
	}
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	c, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("container: %w", err)
	}
	defer c.Close()

	if !c.WaitForDB(ctx) {
		return errors.New("database not ready after waiting")
	}

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(cfg.RequestTimeout()))
	router.Mount("/", c.Router())

	apiSrv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	metricsMux := chi.NewMux()
	metricsMux.Handle("/metrics", providers.MetricsHandler())
	metricsSrv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Metrics.Port),
		Handler:           metricsMux,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	for name, srv := range map[string]*http.Server{"api": apiSrv, "metrics": metricsSrv} {
		g.Go(func() error {
			logger.Info("Starting HTTP server", slog.String("server", name), slog.String("address", srv.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, starting graceful shutdown...")

		shutdownTimeout := cfg.Server.ShutdownTimeout
		if shutdownTimeout <= 0 {
			shutdownTimeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return errors.Join(apiSrv.Shutdown(shutdownCtx), metricsSrv.Shutdown(shutdownCtx))
	})

	return g.Wait()
}
