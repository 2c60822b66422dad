// Package service evaluates inquiries into routing plans and hands them to
// the notification module.
package service

import (
	"context"

	"leadrouting_backend/internal/events"
	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/internal/notification/channels"
	"leadrouting_backend/platform/apperr"
	"leadrouting_backend/platform/logger"

	"github.com/google/uuid"
)

// Scorer computes lead scores.
type Scorer interface {
	Score(inquiry domain.Inquiry, property domain.PropertySummary, history *domain.CustomerHistory) (domain.LeadScore, error)
}

// Composer renders agent notifications.
type Composer interface {
	Compose(score domain.LeadScore, inquiry domain.Inquiry, property domain.PropertySummary) domain.NotificationContent
}

// ReplyBuilder drafts quick replies.
type ReplyBuilder interface {
	Build(inquiry domain.Inquiry, property domain.PropertySummary, score domain.LeadScore) string
}

// DispatchAccepted is reported once a plan is handed to the notification module.
const DispatchAccepted = "accepted"

type Service struct {
	scorer   Scorer
	composer Composer
	replies  ReplyBuilder
	bus      events.Bus
	log      *logger.Logger
}

func New(scorer Scorer, composer Composer, replies ReplyBuilder, bus events.Bus, log *logger.Logger) *Service {
	return &Service{scorer: scorer, composer: composer, replies: replies, bus: bus, log: log}
}

// Score validates and scores an inquiry.
func (s *Service) Score(inquiry domain.Inquiry, property domain.PropertySummary, history *domain.CustomerHistory) (domain.LeadScore, error) {
	return s.scorer.Score(inquiry, property, history)
}

// Evaluate scores the inquiry and derives everything the agent needs. It has
// no side effects; an invalid inquiry stops before composition.
func (s *Service) Evaluate(inquiry domain.Inquiry, property domain.PropertySummary, history *domain.CustomerHistory) (domain.RoutingPlan, error) {
	score, err := s.scorer.Score(inquiry, property, history)
	if err != nil {
		return domain.RoutingPlan{}, err
	}

	return domain.RoutingPlan{
		InquiryID:    inquiry.ID.String(),
		Score:        score,
		Notification: s.composer.Compose(score, inquiry, property),
		Channels:     channels.Select(score.Priority, inquiry.PreferredContact),
		QuickReply:   s.replies.Build(inquiry, property, score),
	}, nil
}

// Route evaluates the inquiry and publishes the plan for delivery to
// recipient. Delivery happens asynchronously; per-channel outcomes are
// available from the delivery log.
func (s *Service) Route(ctx context.Context, inquiry domain.Inquiry, property domain.PropertySummary, history *domain.CustomerHistory, recipient domain.Recipient) (domain.RoutingPlan, error) {
	if recipient.AgentID == uuid.Nil {
		return domain.RoutingPlan{}, apperr.InvalidFields("invalid recipient",
			apperr.FieldError{Field: "recipient.agentId", Reason: "required"}).WithOp("leads.Route")
	}

	plan, err := s.Evaluate(inquiry, property, history)
	if err != nil {
		return domain.RoutingPlan{}, err
	}

	log := s.log.WithContext(ctx)
	log.LeadScored(plan.InquiryID, plan.Score.Total, string(plan.Score.Priority))

	if s.bus == nil {
		return plan, apperr.Unavailable("event bus not configured").WithOp("leads.Route")
	}

	s.bus.Publish(ctx, events.LeadRouted{
		BaseEvent:  events.NewBaseEvent(),
		InquiryID:  inquiry.ID,
		AgentID:    recipient.AgentID,
		Priority:   plan.Score.Priority,
		Total:      plan.Score.Total,
		Recipient:  recipient,
		Content:    plan.Notification,
		Channels:   plan.Channels,
		QuickReply: plan.QuickReply,
	})
	return plan, nil
}
