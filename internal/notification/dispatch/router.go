package dispatch

import (
	"context"
	"sync"

	"leadrouting_backend/internal/leads/domain"
)

// Transport delivers content over one concrete medium.
type Transport interface {
	Deliver(ctx context.Context, recipient domain.Recipient, content domain.NotificationContent) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, recipient domain.Recipient, content domain.NotificationContent) error

// Deliver calls f.
func (f TransportFunc) Deliver(ctx context.Context, recipient domain.Recipient, content domain.NotificationContent) error {
	return f(ctx, recipient, content)
}

// Router is a Sender that maps each channel to a registered Transport.
type Router struct {
	mu         sync.RWMutex
	transports map[domain.Channel]Transport
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{transports: make(map[domain.Channel]Transport)}
}

// Register sets the transport for a channel, replacing any previous one.
// A nil transport unregisters the channel.
func (r *Router) Register(ch domain.Channel, t Transport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t == nil {
		delete(r.transports, ch)
		return
	}
	r.transports[ch] = t
}

// Registered reports whether ch has a transport.
func (r *Router) Registered(ch domain.Channel) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.transports[ch]
	return ok
}

// Send implements Sender. Channels without a transport are skipped and
// carry no error.
func (r *Router) Send(ctx context.Context, ch domain.Channel, recipient domain.Recipient, content domain.NotificationContent) DeliveryResult {
	r.mu.RLock()
	t, ok := r.transports[ch]
	r.mu.RUnlock()

	if !ok {
		return DeliveryResult{Channel: ch, Status: StatusSkipped}
	}
	if err := t.Deliver(ctx, recipient, content); err != nil {
		return DeliveryResult{Channel: ch, Status: StatusFailed, Error: err.Error()}
	}
	return DeliveryResult{Channel: ch, Status: StatusDelivered}
}

var _ Sender = (*Router)(nil)
