// Package push fans notifications out to mobile push relays over Redis
// pub/sub. Each agent has its own channel, "{prefix}:{agentID}".
package push

import (
	"context"
	"encoding/json"
	"fmt"

	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/platform/config"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "agents"

// Message is the JSON document relays receive.
type Message struct {
	AgentID uuid.UUID       `json:"agentId"`
	Title   string          `json:"title"`
	Body    string          `json:"body"`
	Urgency domain.Priority `json:"urgency"`
	Actions []domain.Action `json:"actions,omitempty"`
}

type Publisher struct {
	rdb    *redis.Client
	prefix string
}

// NewPublisher connects to the configured Redis.
func NewPublisher(cfg config.PushConfig) (*Publisher, error) {
	if cfg.GetPushRedisURL() == "" {
		return nil, fmt.Errorf("push redis url not configured")
	}
	opt, err := redis.ParseURL(cfg.GetPushRedisURL())
	if err != nil {
		return nil, fmt.Errorf("parse push redis url: %w", err)
	}
	return NewPublisherWithClient(redis.NewClient(opt), cfg.GetPushChannelPrefix()), nil
}

// NewPublisherWithClient wraps an existing client.
func NewPublisherWithClient(rdb *redis.Client, prefix string) *Publisher {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Publisher{rdb: rdb, prefix: prefix}
}

// Channel returns the pub/sub channel of an agent.
func (p *Publisher) Channel(agentID uuid.UUID) string {
	return p.prefix + ":" + agentID.String()
}

// Publish sends the notification and returns how many relays received it.
// Zero subscribers is not an error; relays may be offline.
func (p *Publisher) Publish(ctx context.Context, recipient domain.Recipient, content domain.NotificationContent) (int64, error) {
	data, err := json.Marshal(Message{
		AgentID: recipient.AgentID,
		Title:   content.Title,
		Body:    content.Body,
		Urgency: content.Urgency,
		Actions: content.Actions,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal push message: %w", err)
	}

	n, err := p.rdb.Publish(ctx, p.Channel(recipient.AgentID), data).Result()
	if err != nil {
		return 0, fmt.Errorf("publish push message: %w", err)
	}
	return n, nil
}

// Close releases the Redis connection.
func (p *Publisher) Close() error {
	if p == nil || p.rdb == nil {
		return nil
	}
	return p.rdb.Close()
}
