// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadRouted is published once an inquiry has been scored and a routing
// plan composed for its agent.
type LeadRouted struct {
	BaseEvent
	InquiryID  uuid.UUID                  `json:"inquiryId"`
	AgentID    uuid.UUID                  `json:"agentId"`
	Priority   domain.Priority            `json:"priority"`
	Total      int                        `json:"total"`
	Recipient  domain.Recipient           `json:"recipient"`
	Content    domain.NotificationContent `json:"content"`
	Channels   []domain.Channel           `json:"channels"`
	QuickReply string                     `json:"quickReply"`
}

func (e LeadRouted) EventName() string { return "leads.inquiry.routed" }

// =============================================================================
// Notification Domain Events
// =============================================================================

// NotificationDispatchDue is published by the scheduler worker when a queued
// dispatch task comes due. It carries the same plan as LeadRouted.
type NotificationDispatchDue struct {
	BaseEvent
	InquiryID uuid.UUID                  `json:"inquiryId"`
	AgentID   uuid.UUID                  `json:"agentId"`
	Priority  domain.Priority            `json:"priority"`
	Recipient domain.Recipient           `json:"recipient"`
	Content   domain.NotificationContent `json:"content"`
	Channels  []domain.Channel           `json:"channels"`
}

func (e NotificationDispatchDue) EventName() string { return "notification.dispatch.due" }

// DeliveryDegraded is published when at least one selected channel failed
// for an inquiry.
type DeliveryDegraded struct {
	BaseEvent
	InquiryID uuid.UUID        `json:"inquiryId"`
	AgentID   uuid.UUID        `json:"agentId"`
	Failed    []domain.Channel `json:"failed"`
	Delivered []domain.Channel `json:"delivered"`
}

func (e DeliveryDegraded) EventName() string { return "notification.delivery.degraded" }
