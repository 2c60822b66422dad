package sse

import (
	"testing"

	"leadrouting_backend/platform/logger"

	"github.com/google/uuid"
)

func TestPublishReachesOnlyTargetAgent(t *testing.T) {
	s := New(logger.Discard())
	agent, other := uuid.New(), uuid.New()

	a := &client{agentID: agent, events: make(chan Event, 1)}
	b := &client{agentID: other, events: make(chan Event, 1)}
	s.addClient(a)
	s.addClient(b)

	if sent := s.Publish(agent, Event{Type: EventLeadRouted}); sent != 1 {
		t.Fatalf("expected 1 stream, got %d", sent)
	}
	if len(b.events) != 0 {
		t.Fatalf("expected other agent to receive nothing")
	}
	if got := (<-a.events).Type; got != EventLeadRouted {
		t.Fatalf("unexpected event %s", got)
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	s := New(logger.Discard())
	agent := uuid.New()
	s.addClient(&client{agentID: agent, events: make(chan Event, 1)})

	s.Publish(agent, Event{Type: EventLeadRouted})
	if sent := s.Publish(agent, Event{Type: EventDeliveryDegraded}); sent != 0 {
		t.Fatalf("expected full buffer to drop the event, got %d sends", sent)
	}
}

func TestRemoveClientAfterClose(t *testing.T) {
	s := New(logger.Discard())
	agent := uuid.New()
	c := &client{agentID: agent, events: make(chan Event, 1)}
	s.addClient(c)

	s.Close()
	s.removeClient(c)

	if s.Connected(agent) != 0 {
		t.Fatalf("expected no connected clients")
	}
}
