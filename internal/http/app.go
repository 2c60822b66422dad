package http

import (
	"context"

	"leadrouting_backend/internal/events"
	"leadrouting_backend/platform/config"
	"leadrouting_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// main.go populates it and passes it to the router.
type App struct {
	Config RouterConfig
	Logger *logger.Logger
	// Health is optional; without it /api/health only reports liveness.
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}
