package sse

import (
	"context"
	"testing"
	"time"

	"leadrouting_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRelay(t *testing.T) *Relay {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRelay(rdb, "", logger.Discard())
}

func TestRelayForwardWithoutListenerFails(t *testing.T) {
	relay := newTestRelay(t)

	err := relay.Forward(context.Background(), uuid.New(), Event{Type: EventLeadRouted})
	assert.ErrorIs(t, err, ErrNoRelayListener)
}

func TestRelayDeliversToOpenStreams(t *testing.T) {
	relay := newTestRelay(t)
	svc := New(logger.Discard())
	agent := uuid.New()
	c := &client{agentID: agent, events: make(chan Event, 1)}
	svc.addClient(c)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- relay.Run(ctx, svc) }()

	inquiry := uuid.New()
	require.Eventually(t, func() bool {
		return relay.Forward(context.Background(), agent, Event{Type: EventLeadRouted, InquiryID: inquiry, Message: "New offer"}) == nil
	}, 2*time.Second, 10*time.Millisecond)

	select {
	case got := <-c.events:
		assert.Equal(t, EventLeadRouted, got.Type)
		assert.Equal(t, inquiry, got.InquiryID)
		assert.Equal(t, "New offer", got.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("relayed event never reached the stream")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("relay did not stop")
	}
}
