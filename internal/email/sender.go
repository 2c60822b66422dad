// Package email delivers agent notifications by email.
package email

import (
	"context"

	"leadrouting_backend/internal/leads/domain"
)

// Sender delivers a lead notification to an agent mailbox.
type Sender interface {
	SendLeadNotification(ctx context.Context, toEmail, agentName string, content domain.NotificationContent) error
}

// NoopSender drops every message. Used when email is disabled.
type NoopSender struct{}

func (NoopSender) SendLeadNotification(context.Context, string, string, domain.NotificationContent) error {
	return nil
}
