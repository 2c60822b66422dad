package notification

import (
	"context"
	"errors"
	"strings"

	"leadrouting_backend/internal/email"
	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/internal/notification/compose"
	"leadrouting_backend/internal/notification/dispatch"
	"leadrouting_backend/internal/notification/sse"
	"leadrouting_backend/internal/scheduler"

	"github.com/google/uuid"
)

var (
	errNoAgentEmail = errors.New("agent has no email address")
	errNoAgentPhone = errors.New("agent has no phone number")
)

const smsMaxRunes = 320

// SMSSender sends text messages.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}

// PushPublisher relays notifications to mobile devices.
type PushPublisher interface {
	Publish(ctx context.Context, recipient domain.Recipient, content domain.NotificationContent) (int64, error)
}

// EmailTransport delivers over SMTP. A nil or disabled sender yields no
// transport, so the channel is reported as skipped.
func EmailTransport(sender email.Sender) dispatch.Transport {
	if sender == nil {
		return nil
	}
	if _, disabled := sender.(email.NoopSender); disabled {
		return nil
	}
	return dispatch.TransportFunc(func(ctx context.Context, r domain.Recipient, content domain.NotificationContent) error {
		if strings.TrimSpace(r.Email) == "" {
			return errNoAgentEmail
		}
		return sender.SendLeadNotification(ctx, r.Email, r.Name, content)
	})
}

// SMSTransport delivers a short text built from the title and the first
// body line.
func SMSTransport(sender SMSSender) dispatch.Transport {
	return dispatch.TransportFunc(func(ctx context.Context, r domain.Recipient, content domain.NotificationContent) error {
		if strings.TrimSpace(r.Phone) == "" {
			return errNoAgentPhone
		}
		return sender.SendSMS(ctx, r.Phone, smsText(content))
	})
}

// PushTransport publishes to the agent's push relay channel.
func PushTransport(pub PushPublisher) dispatch.Transport {
	return dispatch.TransportFunc(func(ctx context.Context, r domain.Recipient, content domain.NotificationContent) error {
		_, err := pub.Publish(ctx, r, content)
		return err
	})
}

// CallTransport queues a call-back to the agent's phone on the worker.
func CallTransport(queue scheduler.CallbackScheduler) dispatch.Transport {
	return dispatch.TransportFunc(func(ctx context.Context, r domain.Recipient, content domain.NotificationContent) error {
		if strings.TrimSpace(r.Phone) == "" {
			return errNoAgentPhone
		}
		inquiryID, _ := dispatch.InquiryID(ctx)
		return queue.EnqueueAgentCallback(ctx, scheduler.AgentCallbackPayload{
			InquiryID:  inquiryID.String(),
			AgentID:    r.AgentID.String(),
			AgentPhone: r.Phone,
			Urgency:    content.Urgency,
			Message:    content.Title,
		})
	})
}

// DashboardRelay forwards dashboard events to the process that owns the
// agent streams.
type DashboardRelay interface {
	Forward(ctx context.Context, agentID uuid.UUID, event sse.Event) error
}

type dashboardSink func(ctx context.Context, agentID uuid.UUID, event sse.Event) error

// localDashboard publishes to streams held by this process. An agent with no
// open stream still counts as delivered; the dashboard lists inquiries on
// load.
func localDashboard(stream *sse.Service) dashboardSink {
	return func(_ context.Context, agentID uuid.UUID, event sse.Event) error {
		stream.Publish(agentID, event)
		return nil
	}
}

func dashboardTransport(sink dashboardSink) dispatch.Transport {
	return dispatch.TransportFunc(func(ctx context.Context, r domain.Recipient, content domain.NotificationContent) error {
		inquiryID, _ := dispatch.InquiryID(ctx)
		return sink(ctx, r.AgentID, sse.Event{
			Type:      sse.EventLeadRouted,
			InquiryID: inquiryID,
			Message:   content.Title,
			Data:      content,
		})
	})
}

func smsText(content domain.NotificationContent) string {
	parts := []string{content.Title}
	if first, _, _ := strings.Cut(content.Body, "\n"); first != "" {
		parts = append(parts, first)
	}
	for _, a := range content.Actions {
		if a.ID == compose.ActionViewFull && a.Payload != "" {
			parts = append(parts, a.Payload)
		}
	}

	text := strings.Join(parts, "\n")
	if runes := []rune(text); len(runes) > smsMaxRunes {
		text = string(runes[:smsMaxRunes-1]) + "…"
	}
	return text
}
