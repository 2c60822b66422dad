package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadrouting_backend/internal/email"
	"leadrouting_backend/internal/events"
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

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.GetDatabaseURL() != "" {
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
		defer pool.Close()
	}

	eventBus := events.NewInMemoryBus(log)

	queue, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = queue.Close() }()

	// The worker runs queued dispatches through the same transports as the
	// API. Agent streams live in the API process, so dashboard events are
	// relayed to it.
	notificationModule := notification.New(pool, cfg, log)
	relay, err := sse.NewRelayFromURL(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure(), log)
	if err != nil {
		log.Error("failed to initialize dashboard relay", "error", err)
		panic("failed to initialize dashboard relay: " + err.Error())
	}
	defer func() { _ = relay.Close() }()
	notificationModule.SetDashboardRelay(relay)

	if cfg.GetEmailEnabled() {
		notificationModule.Register(domain.ChannelEmail, notification.EmailTransport(email.NewSender(cfg)))
	}
	notificationModule.Register(domain.ChannelCall, notification.CallTransport(queue))

	smsClient := sms.NewClient(cfg, log)
	if smsClient != nil {
		notificationModule.Register(domain.ChannelSMS, notification.SMSTransport(smsClient))
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

	if cfg.IsMinIOEnabled() {
		store, err := archive.NewMinIOStore(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}
		notificationModule.SetArchive(archive.New(store, cfg.GetMinIOBucketDispatchReports()))
	}

	notificationModule.RegisterHandlers(eventBus)

	var placer scheduler.CallbackPlacer
	if smsClient != nil {
		placer = smsClient
	} else {
		log.Warn("SMS_GATEWAY_URL not configured; agent call-backs will only be logged")
	}

	worker, err := scheduler.NewWorker(cfg, eventBus, placer, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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

	return errors.New(name + ": " + lastErr.Error())
}
