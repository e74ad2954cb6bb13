package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"schoolactivities/config"
	"schoolactivities/internal/adapters/email"
	"schoolactivities/internal/adapters/seed"
	httpdelivery "schoolactivities/internal/delivery/http"
	"schoolactivities/internal/delivery/http/controllers"
	"schoolactivities/internal/domain"
	"schoolactivities/internal/repository/memory"
	"schoolactivities/internal/repository/postgres"
	"schoolactivities/internal/repository/redis"
	"schoolactivities/internal/services"
	"schoolactivities/web"
)

// @title			Mergington High School Activities API
// @version		1.0
// @description	List extracurricular activities and sign students up or off.
// @BasePath		/
func main() {
	logger := config.NewLogger()
	if err := run(logger); err != nil {
		logger.Error("activities api stopped", "error", err)
		os.Exit(1)
	}
}

// run wires the service and blocks until SIGINT/SIGTERM or a server failure.
// Deferred cleanup always runs before it returns.
func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s activity store: %w", cfg.StorageDriver, err)
	}
	defer closeRepo()

	activities, err := loadCatalogue(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load seed catalogue: %w", err)
	}
	if err := repo.Seed(ctx, activities); err != nil {
		return fmt.Errorf("seed activities: %w", err)
	}
	logger.Info("activities seeded", "count", len(activities), "driver", cfg.StorageDriver)

	mailer := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.AWSRegion,
			AccessKeyID:        cfg.Email.AWSAccessKeyID,
			SecretAccessKey:    cfg.Email.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.Email.InsecureSkipVerify,
		},
	}, logger)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	activityService := services.NewActivityService(repo, emailService, logger)

	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		Logger:         logger,
		Activities:     controllers.NewActivityController(logger, activityService),
		Static:         web.Static(),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
	return serve(ctx, server, logger, 15*time.Second)
}

// serve runs server until ctx is done, then shuts it down within grace.
// A listen failure is returned instead of ending the process.
func serve(ctx context.Context, server *http.Server, logger *slog.Logger, grace time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", server.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// openRepository returns the activity store selected by STORAGE_DRIVER and a
// function releasing its connections.
func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.ActivityRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("connected to postgres")
		return postgres.NewActivityRepository(db), func() { _ = db.Close() }, nil

	case config.StorageRedis:
		client := redis.NewClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info("connected to redis", "address", cfg.Redis.Address, "db", cfg.Redis.DB)
		return redis.NewActivityRepository(client), func() { _ = client.Close() }, nil

	default:
		return memory.NewActivityRepository(), func() {}, nil
	}
}

// loadCatalogue prefers SEED_URL, then SEED_FILE, then the embedded catalogue.
func loadCatalogue(ctx context.Context, cfg *config.Config) ([]*domain.Activity, error) {
	if cfg.SeedURL == "" {
		return seed.Load(cfg.SeedFile)
	}
	fetchCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return seed.NewHTTPFetcher(&http.Client{Timeout: 10 * time.Second}).Fetch(fetchCtx, cfg.SeedURL)
}
