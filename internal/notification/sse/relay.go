package sse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"leadrouting_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultRelayChannel is the Redis pub/sub channel dashboard events travel on.
const DefaultRelayChannel = "dashboard:events"

// ErrNoRelayListener is returned by Forward when no API process is
// subscribed, so no dashboard stream could receive the event.
var ErrNoRelayListener = errors.New("no dashboard relay listener")

type relayMessage struct {
	AgentID uuid.UUID `json:"agentId"`
	Event   Event     `json:"event"`
}

// Relay carries dashboard events from processes without open streams (the
// scheduler worker) to the API process that holds them.
type Relay struct {
	rdb     *redis.Client
	channel string
	log     *logger.Logger
}

// NewRelay wraps an existing client. An empty channel uses DefaultRelayChannel.
func NewRelay(rdb *redis.Client, channel string, log *logger.Logger) *Relay {
	if channel == "" {
		channel = DefaultRelayChannel
	}
	return &Relay{rdb: rdb, channel: channel, log: log}
}

// NewRelayFromURL connects to redisURL. tlsInsecure skips certificate
// verification for rediss:// URLs.
func NewRelayFromURL(redisURL string, tlsInsecure bool, log *logger.Logger) (*Relay, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse relay redis url: %w", err)
	}
	if opt.TLSConfig != nil && tlsInsecure {
		opt.TLSConfig.InsecureSkipVerify = true
	}
	return NewRelay(redis.NewClient(opt), DefaultRelayChannel, log), nil
}

// Forward publishes event for agentID. It fails when nobody is listening.
func (r *Relay) Forward(ctx context.Context, agentID uuid.UUID, event Event) error {
	data, err := json.Marshal(relayMessage{AgentID: agentID, Event: event})
	if err != nil {
		return fmt.Errorf("marshal dashboard event: %w", err)
	}

	n, err := r.rdb.Publish(ctx, r.channel, data).Result()
	if err != nil {
		return fmt.Errorf("publish dashboard event: %w", err)
	}
	if n == 0 {
		return ErrNoRelayListener
	}
	return nil
}

// Run subscribes and feeds relayed events into svc until ctx is done.
func (r *Relay) Run(ctx context.Context, svc *Service) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer func() { _ = sub.Close() }()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe dashboard relay: %w", err)
	}
	r.log.Info("dashboard relay listening", "channel", r.channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			var m relayMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				r.log.Warn("dropping malformed dashboard relay message", "error", err)
				continue
			}
			svc.Publish(m.AgentID, m.Event)
		}
	}
}

// Close releases the Redis connection.
func (r *Relay) Close() error {
	if r == nil || r.rdb == nil {
		return nil
	}
	return r.rdb.Close()
}
