package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadrouting_backend/internal/email"
	"leadrouting_backend/internal/events"
	apphttp "leadrouting_backend/internal/http"
	"leadrouting_backend/internal/http/router"
	"leadrouting_backend/internal/leads"
	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/internal/notification"
	"leadrouting_backend/internal/notification/archive"
	"leadrouting_backend/internal/notification/sse"
	"leadrouting_backend/internal/push"
	"leadrouting_backend/internal/scheduler"
	"leadrouting_backend/internal/sms"
	"leadrouting_backend/platform/config"
	"leadrouting_backend/platform/db"
	"leadrouting_backend/platform/logger"
	"leadrouting_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	pool := initDatabase(ctx, cfg, log)
	if pool != nil {
		defer pool.Close()
	}

	eventBus := events.NewInMemoryBus(log)
	val := validator.New()

	queue, closeQueue := initQueue(cfg, log)
	if closeQueue != nil {
		defer closeQueue()
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	notificationModule := notification.New(pool, cfg, log)
	if cfg.GetEmailEnabled() {
		notificationModule.Register(domain.ChannelEmail, notification.EmailTransport(email.NewSender(cfg)))
	} else {
		log.Warn("EMAIL_ENABLED is false; email channel disabled")
	}

	if smsClient := sms.NewClient(cfg, log); smsClient != nil {
		notificationModule.Register(domain.ChannelSMS, notification.SMSTransport(smsClient))
	} else {
		log.Warn("SMS_GATEWAY_URL not configured; sms channel disabled")
	}

	if cfg.GetPushRedisURL() != "" {
		publisher, err := push.NewPublisher(cfg)
		if err != nil {
			log.Error("failed to initialize push publisher", "error", err)
			panic("failed to initialize push publisher: " + err.Error())
		}
		defer func() { _ = publisher.Close() }()
		notificationModule.Register(domain.ChannelPush, notification.PushTransport(publisher))
	}

	if cfg.GetRedisURL() != "" {
		relay, err := sse.NewRelayFromURL(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure(), log)
		if err != nil {
			log.Error("failed to initialize dashboard relay", "error", err)
			panic("failed to initialize dashboard relay: " + err.Error())
		}
		defer func() { _ = relay.Close() }()
		go func() {
			if err := relay.Run(ctx, notificationModule.SSE()); err != nil {
				log.Error("dashboard relay stopped", "error", err)
			}
		}()
	}

	if queue != nil {
		notificationModule.Register(domain.ChannelCall, notification.CallTransport(queue))
		if cfg.GetDispatchAsync() {
			notificationModule.SetDispatchScheduler(queue)
			log.Info("notification dispatch runs on the scheduler worker")
		}
	}

	if cfg.IsMinIOEnabled() {
		notificationModule.SetArchive(initArchive(ctx, cfg, log))
	}

	notificationModule.RegisterHandlers(eventBus)

	leadsModule := leads.NewModule(cfg, eventBus, val, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			leadsModule,
			notificationModule,
		},
	}
	if pool != nil {
		app.Health = pool
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		// Long-lived SSE streams would otherwise hold Shutdown open.
		notificationModule.SSE().Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initDatabase connects and migrates when DATABASE_URL is set. Without it the
// delivery log is disabled and the pool is nil.
func initDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) *pgxpool.Pool {
	if cfg.GetDatabaseURL() == "" {
		log.Warn("DATABASE_URL not configured; delivery log disabled")
		return nil
	}

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	log.Info("database connection established")
	return pool
}

func initQueue(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; call-backs and async dispatch disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initArchive(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) *archive.Archive {
	store, err := archive.NewMinIOStore(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	reports := archive.New(store, cfg.GetMinIOBucketDispatchReports())
	if err := withRetry(ctx, log, "ensure dispatch-reports bucket", 5, 2*time.Second, func() error {
		return reports.EnsureBucket(ctx)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinIOBucketDispatchReports())
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("dispatch report archive initialized", "bucket", cfg.GetMinIOBucketDispatchReports())
	return reports
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
