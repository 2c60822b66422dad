// Package notification delivers routed leads to agents. It subscribes to
// routing events so the leads module never needs to know about email
// providers, SMS gateways or push relays.
package notification

import (
	"context"

	"leadrouting_backend/internal/events"
	apphttp "leadrouting_backend/internal/http"
	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/internal/notification/deliverylog"
	"leadrouting_backend/internal/notification/dispatch"
	notifhandler "leadrouting_backend/internal/notification/handler"
	"leadrouting_backend/internal/notification/sse"
	"leadrouting_backend/internal/scheduler"
	"leadrouting_backend/platform/config"
	"leadrouting_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportArchiver keeps a copy of each dispatch report.
type ReportArchiver interface {
	Store(ctx context.Context, report dispatch.Report) (string, error)
}

// Module handles all notification-related event subscriptions.
type Module struct {
	router     *dispatch.Router
	dispatcher *dispatch.Dispatcher
	deliveries *deliverylog.Repository
	sse        *sse.Service
	dashboard  dashboardSink
	handler    *notifhandler.HTTPHandler
	queue      scheduler.DispatchScheduler
	archive    ReportArchiver
	bus        events.Bus
	log        *logger.Logger
}

// New creates the notification module. pool may be nil, in which case
// results are not persisted. The dashboard channel is always available.
func New(pool *pgxpool.Pool, cfg config.DispatchConfig, log *logger.Logger) *Module {
	router := dispatch.NewRouter()
	stream := sse.New(log)
	deliveries := deliverylog.New(pool)

	opts := dispatch.Options{Timeout: cfg.GetDispatchChannelTimeout()}
	if pool != nil {
		opts.Recorder = deliveries
	}

	m := &Module{
		router:     router,
		dispatcher: dispatch.New(router, opts, log),
		deliveries: deliveries,
		sse:        stream,
		dashboard:  localDashboard(stream),
		handler:    notifhandler.NewHTTPHandler(deliveries, stream),
		log:        log,
	}
	router.Register(domain.ChannelDashboard, dashboardTransport(m.dashboard))
	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "notification"
}

// RegisterRoutes mounts delivery log and agent stream routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected)
}

// Register sets the transport of a channel. A nil transport leaves the
// channel unregistered, so it is reported as skipped.
func (m *Module) Register(ch domain.Channel, t dispatch.Transport) {
	m.router.Register(ch, t)
}

// SetDashboardRelay sends dashboard events through relay instead of this
// process's own streams. The worker uses it; it holds no agent streams.
func (m *Module) SetDashboardRelay(relay DashboardRelay) {
	m.dashboard = relay.Forward
	m.router.Register(domain.ChannelDashboard, dashboardTransport(m.dashboard))
}

// SetDispatchScheduler makes LeadRouted fan out on the worker instead of inline.
func (m *Module) SetDispatchScheduler(queue scheduler.DispatchScheduler) {
	m.queue = queue
}

// SetArchive enables report archiving.
func (m *Module) SetArchive(archive ReportArchiver) {
	m.archive = archive
}

// SSE exposes the dashboard stream service.
func (m *Module) SSE() *sse.Service {
	return m.sse
}

// RegisterHandlers subscribes to routing events on the bus.
func (m *Module) RegisterHandlers(bus events.Bus) {
	m.bus = bus
	bus.Subscribe(events.LeadRouted{}.EventName(), m)
	bus.Subscribe(events.NotificationDispatchDue{}.EventName(), m)
}

// Handle implements events.Handler.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadRouted:
		return m.handleLeadRouted(ctx, e)
	case events.NotificationDispatchDue:
		m.Dispatch(ctx, dispatch.Request{
			InquiryID: e.InquiryID,
			Recipient: e.Recipient,
			Content:   e.Content,
			Channels:  e.Channels,
		})
		return nil
	default:
		m.log.Warn("unhandled event type", "event", event.EventName())
		return nil
	}
}

func (m *Module) handleLeadRouted(ctx context.Context, e events.LeadRouted) error {
	req := dispatch.Request{
		InquiryID: e.InquiryID,
		Recipient: e.Recipient,
		Content:   e.Content,
		Channels:  e.Channels,
	}

	if m.queue != nil {
		err := m.queue.EnqueueNotificationDispatch(ctx, scheduler.NotificationDispatchPayload{
			InquiryID: e.InquiryID.String(),
			AgentID:   e.AgentID.String(),
			Priority:  e.Priority,
			Recipient: e.Recipient,
			Content:   e.Content,
			Channels:  e.Channels,
		})
		if err == nil {
			m.log.Info("notification dispatch queued", "inquiryId", e.InquiryID, "channels", len(e.Channels))
			return nil
		}
		m.log.Error("failed to queue dispatch, sending inline", "inquiryId", e.InquiryID, "error", err)
	}

	m.Dispatch(ctx, req)
	return nil
}

// Dispatch fans req out and handles partial delivery. It never fails: each
// channel outcome is in the returned report.
func (m *Module) Dispatch(ctx context.Context, req dispatch.Request) dispatch.Report {
	report := m.dispatcher.Dispatch(ctx, req)

	if m.archive != nil {
		if key, err := m.archive.Store(ctx, report); err != nil {
			m.log.Error("failed to archive dispatch report", "inquiryId", req.InquiryID, "error", err)
		} else {
			m.log.Debug("dispatch report archived", "inquiryId", req.InquiryID, "key", key)
		}
	}

	failed := report.Failed()
	if len(failed) == 0 {
		return report
	}

	m.log.Warn("partial notification delivery",
		"inquiryId", req.InquiryID,
		"agentId", req.Recipient.AgentID,
		"failed", failed,
		"allFailed", report.AllFailed(),
	)

	if err := m.dashboard(ctx, req.Recipient.AgentID, sse.Event{
		Type:      sse.EventDeliveryDegraded,
		InquiryID: req.InquiryID,
		Message:   "Some notification channels failed for this inquiry.",
		Data:      report.Results,
	}); err != nil {
		m.log.Warn("failed to push degraded delivery to dashboard", "inquiryId", req.InquiryID, "error", err)
	}

	if m.bus != nil {
		m.bus.Publish(ctx, events.DeliveryDegraded{
			BaseEvent: events.NewBaseEvent(),
			InquiryID: req.InquiryID,
			AgentID:   req.Recipient.AgentID,
			Failed:    failed,
			Delivered: report.Delivered(),
		})
	}
	return report
}

var _ events.Handler = (*Module)(nil)
