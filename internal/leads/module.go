// Package leads is the lead routing bounded context: it scores inquiries,
// composes agent notifications and hands routing plans to the notification
// module over the event bus.
package leads

import (
	"leadrouting_backend/internal/events"
	apphttp "leadrouting_backend/internal/http"
	"leadrouting_backend/internal/leads/handler"
	"leadrouting_backend/internal/leads/scoring"
	"leadrouting_backend/internal/leads/service"
	"leadrouting_backend/internal/notification/compose"
	"leadrouting_backend/internal/notification/quickreply"
	"leadrouting_backend/platform/config"
	"leadrouting_backend/platform/logger"
	"leadrouting_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the scoring engine from configuration.
func NewModule(cfg config.EngineConfig, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	replies := quickreply.New(cfg.GetAgencyProfile(), cfg.GetPhoneRegion())
	composer := compose.New(replies, cfg.GetAppBaseURL(), cfg.GetPhoneRegion())
	calc := scoring.NewCalculator(scoring.Options{ClampEngagement: cfg.GetClampEngagement()})

	svc := service.New(calc, composer, replies, eventBus, log)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service exposes the routing service for in-process callers.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the scoring endpoints behind service authentication.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

var _ apphttp.Module = (*Module)(nil)
