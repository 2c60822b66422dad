// Package sse provides Server-Sent Events support for the agent dashboard.
package sse

import (
	"encoding/json"
	"net/http"
	"sync"

	"leadrouting_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EventType represents different types of SSE events
type EventType string

const (
	EventLeadRouted       EventType = "lead_routed"
	EventDeliveryDegraded EventType = "delivery_degraded"
)

const clientBuffer = 32

// Event represents an SSE event payload
type Event struct {
	Type      EventType `json:"type"`
	InquiryID uuid.UUID `json:"inquiryId,omitempty"`
	Message   string    `json:"message,omitempty"`
	Data      any       `json:"data,omitempty"`
}

// client represents a connected SSE client
type client struct {
	agentID uuid.UUID
	events  chan Event
}

// Service manages SSE connections and event broadcasting
type Service struct {
	mu      sync.RWMutex
	clients map[uuid.UUID][]*client // agentID -> clients
	log     *logger.Logger
}

// New creates a new SSE service
func New(log *logger.Logger) *Service {
	return &Service{
		clients: make(map[uuid.UUID][]*client),
		log:     log,
	}
}

func (s *Service) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.agentID] = append(s.clients[c.agentID], c)
}

// removeClient unregisters a client connection. Close may already have
// dropped it, in which case the channel is already closed.
func (s *Service) removeClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clients := s.clients[c.agentID]
	for i, cl := range clients {
		if cl == c {
			s.clients[c.agentID] = append(clients[:i], clients[i+1:]...)
			if len(s.clients[c.agentID]) == 0 {
				delete(s.clients, c.agentID)
			}
			close(c.events)
			return
		}
	}
}

// Connected returns how many streams are open for an agent.
func (s *Service) Connected(agentID uuid.UUID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients[agentID])
}

// Publish sends an event to every open stream of an agent. It never blocks:
// a full buffer drops the event for that stream.
func (s *Service) Publish(agentID uuid.UUID, event Event) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sent := 0
	for _, c := range s.clients[agentID] {
		select {
		case c.events <- event:
			sent++
		default:
			s.log.Warn("sse buffer full", "agentId", agentID, "event", event.Type)
		}
	}

	s.log.Debug("sse event published", "agentId", agentID, "event", event.Type, "clients", sent)
	return sent
}

// Handler returns a Gin handler for SSE connections
func (s *Service) Handler(getAgentID func(*gin.Context) (uuid.UUID, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		agentID, ok := getAgentID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Writer.Header().Set("Content-Type", "text/event-stream")
		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")
		c.Writer.Header().Set("X-Accel-Buffering", "no")

		cl := &client{agentID: agentID, events: make(chan Event, clientBuffer)}
		s.addClient(cl)
		defer s.removeClient(cl)

		c.SSEvent("connected", gin.H{"agentId": agentID})
		c.Writer.Flush()
		s.log.Info("sse client connected", "agentId", agentID)

		clientGone := c.Request.Context().Done()
		for {
			select {
			case <-clientGone:
				s.log.Info("sse client disconnected", "agentId", agentID)
				return
			case event, ok := <-cl.events:
				if !ok {
					return
				}
				data, _ := json.Marshal(event)
				c.SSEvent(string(event.Type), string(data))
				c.Writer.Flush()
			}
		}
	}
}

// Close drops every stream.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, clients := range s.clients {
		for _, c := range clients {
			close(c.events)
		}
	}
	s.clients = make(map[uuid.UUID][]*client)
}
