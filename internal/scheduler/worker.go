package scheduler

import (
	"context"
	"fmt"

	"leadrouting_backend/internal/events"
	"leadrouting_backend/platform/config"
	"leadrouting_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// CallbackPlacer rings an agent's phone.
type CallbackPlacer interface {
	PlaceCall(ctx context.Context, phoneNumber, message string) error
}

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	bus    events.Bus
	calls  CallbackPlacer
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, bus events.Bus, calls CallbackPlacer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := newHandlers(bus, calls, log)
	w.server = server
	return w, nil
}

func newHandlers(bus events.Bus, calls CallbackPlacer, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		mux:   mux,
		bus:   bus,
		calls: calls,
		log:   log,
	}

	mux.HandleFunc(TaskNotificationDispatch, w.handleNotificationDispatch)
	mux.HandleFunc(TaskAgentCallback, w.handleAgentCallback)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleNotificationDispatch(ctx context.Context, task *asynq.Task) error {
	if w.bus == nil {
		return nil
	}

	payload, err := ParseNotificationDispatchPayload(task)
	if err != nil {
		return fmt.Errorf("parse dispatch payload: %v: %w", err, asynq.SkipRetry)
	}

	inquiryID, err := uuid.Parse(payload.InquiryID)
	if err != nil {
		return fmt.Errorf("invalid inquiry id: %v: %w", err, asynq.SkipRetry)
	}

	agentID, err := uuid.Parse(payload.AgentID)
	if err != nil {
		return fmt.Errorf("invalid agent id: %v: %w", err, asynq.SkipRetry)
	}

	return w.bus.PublishSync(ctx, events.NotificationDispatchDue{
		BaseEvent: events.NewBaseEvent(),
		InquiryID: inquiryID,
		AgentID:   agentID,
		Priority:  payload.Priority,
		Recipient: payload.Recipient,
		Content:   payload.Content,
		Channels:  payload.Channels,
	})
}

func (w *Worker) handleAgentCallback(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseAgentCallbackPayload(task)
	if err != nil {
		return fmt.Errorf("parse callback payload: %v: %w", err, asynq.SkipRetry)
	}

	if w.calls == nil {
		w.log.Info("agent callback requested without telephony gateway",
			"inquiryId", payload.InquiryID, "agentId", payload.AgentID, "urgency", payload.Urgency)
		return nil
	}

	if payload.AgentPhone == "" {
		w.log.Warn("agent callback skipped, no phone on file", "agentId", payload.AgentID)
		return nil
	}

	if err := w.calls.PlaceCall(ctx, payload.AgentPhone, payload.Message); err != nil {
		return fmt.Errorf("place agent callback: %w", err)
	}

	w.log.Info("agent callback placed", "inquiryId", payload.InquiryID, "agentId", payload.AgentID)
	return nil
}
