package service

import (
	"context"
	"testing"

	"leadrouting_backend/internal/events"
	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/internal/leads/scoring"
	"leadrouting_backend/internal/notification/compose"
	"leadrouting_backend/internal/notification/quickreply"
	"leadrouting_backend/platform/apperr"
	"leadrouting_backend/platform/config"
	"leadrouting_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(bus events.Bus) *Service {
	replies := quickreply.New(config.DefaultAgencyProfile(), "KE")
	return New(
		scoring.NewCalculator(scoring.Options{}),
		compose.New(replies, "https://app.example.com", "KE"),
		replies,
		bus,
		logger.Discard(),
	)
}

func scenario() (domain.Inquiry, domain.PropertySummary) {
	phone := "+254712345678"
	return domain.Inquiry{
			ID:               uuid.New(),
			CustomerName:     "Amina",
			CustomerPhone:    &phone,
			Message:          "I want to make an offer ASAP, my budget is 20M, 3 bedroom",
			InquiryType:      domain.InquiryTypeOffer,
			PreferredContact: domain.PreferredContactBoth,
		}, domain.PropertySummary{
			Title:     "Garden villa",
			Price:     20_000_000,
			PriceType: domain.PriceTypeSale,
			Location:  "Karen",
			Bedrooms:  3,
			Bathrooms: 2,
		}
}

func TestEvaluateBuildsFullPlan(t *testing.T) {
	inquiry, property := scenario()
	plan, err := newService(nil).Evaluate(inquiry, property, nil)
	require.NoError(t, err)

	assert.Equal(t, inquiry.ID.String(), plan.InquiryID)
	assert.Equal(t, 80, plan.Score.Total)
	assert.Equal(t, domain.PriorityCritical, plan.Notification.Urgency)
	assert.Equal(t, "🔥🎯 New offer inquiry (Score: 80)", plan.Notification.Title)
	assert.Equal(t, []domain.Channel{domain.ChannelEmail, domain.ChannelDashboard, domain.ChannelSMS, domain.ChannelPush, domain.ChannelCall}, plan.Channels)
	assert.Contains(t, plan.QuickReply, "GYD 20,000,000")
	assert.Equal(t, plan.QuickReply, plan.Notification.Actions[1].Payload)
}

func TestEvaluateStopsOnInvalidInquiry(t *testing.T) {
	inquiry, property := scenario()
	inquiry.Message = ""

	_, err := newService(nil).Evaluate(inquiry, property, nil)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRoutePublishesLeadRouted(t *testing.T) {
	bus := events.NewInMemoryBus(logger.Discard())
	var got events.LeadRouted
	bus.Subscribe(events.LeadRouted{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		got = e.(events.LeadRouted)
		return nil
	}))

	inquiry, property := scenario()
	recipient := domain.Recipient{AgentID: uuid.New(), Email: "agent@example.com"}

	plan, err := newService(bus).Route(context.Background(), inquiry, property, nil, recipient)
	require.NoError(t, err)
	bus.Wait()

	assert.Equal(t, inquiry.ID, got.InquiryID)
	assert.Equal(t, recipient.AgentID, got.AgentID)
	assert.Equal(t, plan.Channels, got.Channels)
	assert.Equal(t, plan.Notification, got.Content)
}

func TestRouteRequiresRecipient(t *testing.T) {
	inquiry, property := scenario()
	_, err := newService(events.NewInMemoryBus(logger.Discard())).Route(context.Background(), inquiry, property, nil, domain.Recipient{})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}
