// Copyright (c) 2026 Quillpad. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Quillpad HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and run migrations.
//  4. Connect to Redis.
//  5. Seed the superadmin account if none exists.
//  6. Start the notification dispatcher and, if configured, object storage.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/quillpad/internal/admin"
	"github.com/taibuivan/quillpad/internal/api"
	"github.com/taibuivan/quillpad/internal/content/blog"
	"github.com/taibuivan/quillpad/internal/content/comment"
	"github.com/taibuivan/quillpad/internal/content/guideline"
	"github.com/taibuivan/quillpad/internal/content/tag"
	"github.com/taibuivan/quillpad/internal/media"
	"github.com/taibuivan/quillpad/internal/platform/config"
	"github.com/taibuivan/quillpad/internal/platform/constants"
	"github.com/taibuivan/quillpad/internal/platform/migration"
	"github.com/taibuivan/quillpad/internal/platform/notify"
	pgstore "github.com/taibuivan/quillpad/internal/platform/postgres"
	redisstore "github.com/taibuivan/quillpad/internal/platform/redis"
	"github.com/taibuivan/quillpad/internal/platform/sec"
	"github.com/taibuivan/quillpad/internal/platform/storage"
	"github.com/taibuivan/quillpad/internal/users/account"
	"github.com/taibuivan/quillpad/internal/users/auth"
	"github.com/taibuivan/quillpad/internal/users/elevation"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("mail_enabled", cfg.MailEnabled()),
		slog.Bool("storage_enabled", cfg.StorageEnabled()),
	)

	// Startup deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Security & Accounts ────────────────────────────────────────────
	tokenService, err := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer, cfg.TokenTTL)
	must(log, err, "initialize token service")

	roleStamps := auth.NewRoleStampRepository(rdb, cfg.TokenTTL)
	accountService := account.NewService(account.NewPostgresRepository(pool), roleStamps)

	created, err := accountService.SeedSupreme(startupCtx, account.SeedInput{
		Name:     cfg.SuperadminName,
		Email:    cfg.SuperadminEmail,
		Password: cfg.SuperadminPassword,
	})
	must(log, err, "seed superadmin")
	log.Info("superadmin_seed_checked", slog.Bool("created", created))

	// ── 6. Notifications & Storage ────────────────────────────────────────
	dispatcher := notify.NewDispatcher(newSender(log, cfg), log, cfg.NotifyQueueSize, cfg.NotifySendTimeout)

	objects := newObjectStorage(startupCtx, log, cfg)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	elevationService := elevation.NewService(elevation.NewPostgresRepository(pool), dispatcher, cfg.SuperadminEmail)
	blogService := blog.NewService(blog.NewPostgresRepository(pool))

	handlers := api.Handlers{
		Auth:      auth.NewHandler(auth.NewService(accountService, elevationService, tokenService)),
		Account:   account.NewHandler(accountService, blogService),
		Elevation: elevation.NewHandler(elevationService),
		Blog:      blog.NewHandler(blogService),
		Comment:   comment.NewHandler(comment.NewService(comment.NewPostgresRepository(pool))),
		Tag:       tag.NewHandler(tag.NewService(tag.NewPostgresRepository(pool))),
		Guideline: guideline.NewHandler(guideline.NewService(guideline.NewPostgresRepository(pool))),
		Admin:     admin.NewHandler(admin.NewService(admin.NewPostgresCounter(pool))),
		Media:     media.NewHandler(media.NewService(objects)),
	}
	handlers.Liveness, handlers.Readiness = api.NewHealthHandlers(log, healthChecks(pool, rdb)...)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, api.Security{
		Verifier: tokenService,
		Sessions: roleStamps,
	}, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	log.Info("shutting_down_server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
	}

	// Drain queued notifications after the last request has finished.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer drainCancel()
	if err := dispatcher.Close(drainCtx); err != nil {
		log.Warn("notification_drain_incomplete", slog.Any("error", err))
	}

	log.Info("server_stopped")
}

func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// newSender picks SMTP delivery when a relay is configured, the log otherwise.
func newSender(log *slog.Logger, cfg *config.Config) notify.Sender {
	if !cfg.MailEnabled() {
		log.Warn("mail_disabled_notifications_logged")
		return notify.LogSender{Logger: log}
	}

	sender, err := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})
	must(log, err, "initialize smtp sender")
	return sender
}

// newObjectStorage returns nil when storage is not configured; uploads then
// answer 503.
func newObjectStorage(ctx context.Context, log *slog.Logger, cfg *config.Config) storage.ObjectStorage {
	if !cfg.StorageEnabled() {
		log.Warn("storage_disabled_media_upload_unavailable")
		return nil
	}

	client, err := storage.NewMinioClient(storage.MinioConfig{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
		PublicURL: cfg.MediaPublicURL,
	})
	must(log, err, "initialize object storage")
	must(log, client.EnsureBucket(ctx), "ensure media bucket")
	return client
}

func healthChecks(pool *pgxpool.Pool, rdb *goredis.Client) []api.HealthCheck {
	return []api.HealthCheck{
		{Name: "postgres", Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		{Name: "redis", Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
