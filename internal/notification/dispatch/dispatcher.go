// Package dispatch fans a composed notification out to its selected
// channels. Channels are independent: one failing never stops, retries or
// rolls back another.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DeliveryStatus is the outcome of one channel send.
type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "delivered"
	StatusFailed    DeliveryStatus = "failed"
	StatusSkipped   DeliveryStatus = "skipped"
)

// DeliveryResult reports what happened on a single channel.
type DeliveryResult struct {
	Channel    domain.Channel `json:"channel"`
	Status     DeliveryStatus `json:"status"`
	Error      string         `json:"error,omitempty"`
	DurationMs int64          `json:"durationMs"`
}

// Sender delivers content on one channel.
type Sender interface {
	Send(ctx context.Context, channel domain.Channel, recipient domain.Recipient, content domain.NotificationContent) DeliveryResult
}

// Recorder persists delivery results.
type Recorder interface {
	Record(ctx context.Context, inquiryID, agentID uuid.UUID, result DeliveryResult) error
}

// Request is one notification to fan out.
type Request struct {
	InquiryID uuid.UUID
	Recipient domain.Recipient
	Content   domain.NotificationContent
	Channels  []domain.Channel
}

// Report collects the per-channel results of a dispatch, in request order.
type Report struct {
	InquiryID uuid.UUID        `json:"inquiryId"`
	AgentID   uuid.UUID        `json:"agentId"`
	Results   []DeliveryResult `json:"results"`
}

func (r Report) channelsWith(status DeliveryStatus) []domain.Channel {
	var out []domain.Channel
	for _, res := range r.Results {
		if res.Status == status {
			out = append(out, res.Channel)
		}
	}
	return out
}

// Delivered lists the channels that succeeded.
func (r Report) Delivered() []domain.Channel { return r.channelsWith(StatusDelivered) }

// Failed lists the channels that failed.
func (r Report) Failed() []domain.Channel { return r.channelsWith(StatusFailed) }

// Partial reports whether some channels failed while others delivered.
// Skipped channels count as neither.
func (r Report) Partial() bool {
	return len(r.Failed()) > 0 && len(r.Delivered()) > 0
}

// AllFailed reports whether at least one channel failed and none delivered.
func (r Report) AllFailed() bool {
	return len(r.Failed()) > 0 && len(r.Delivered()) == 0
}

// Options tunes a Dispatcher.
type Options struct {
	// Timeout bounds each channel send. Zero means no per-channel deadline.
	Timeout time.Duration
	// Recorder, when set, receives every result after the fan-out completes.
	Recorder Recorder
}

// Dispatcher sends a Request on all of its channels in parallel.
type Dispatcher struct {
	sender Sender
	opts   Options
	log    *logger.Logger
}

// New creates a dispatcher.
func New(sender Sender, opts Options, log *logger.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, opts: opts, log: log}
}

// Dispatch delivers req on every channel and waits for all of them.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Report {
	results := make([]DeliveryResult, len(req.Channels))
	sendCtx := WithInquiryID(ctx, req.InquiryID)

	// A plain Group: a failing channel must not cancel its siblings.
	var g errgroup.Group
	for i, ch := range req.Channels {
		g.Go(func() error {
			results[i] = d.send(sendCtx, ch, req)
			return nil
		})
	}
	_ = g.Wait()

	report := Report{InquiryID: req.InquiryID, AgentID: req.Recipient.AgentID, Results: results}
	for _, res := range results {
		var err error
		if res.Status == StatusFailed {
			err = errors.New(res.Error)
		}
		d.log.DeliveryOutcome(req.InquiryID.String(), string(res.Channel), string(res.Status), err)

		if d.opts.Recorder != nil {
			if recErr := d.opts.Recorder.Record(ctx, req.InquiryID, req.Recipient.AgentID, res); recErr != nil {
				d.log.Error("failed to record delivery", "inquiryId", req.InquiryID, "channel", res.Channel, "error", recErr)
			}
		}
	}
	return report
}

func (d *Dispatcher) send(ctx context.Context, ch domain.Channel, req Request) (result DeliveryResult) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = DeliveryResult{Status: StatusFailed, Error: fmt.Sprintf("panic: %v", r)}
		}
		if result.Status != StatusFailed {
			result.Error = ""
		}
		result.Channel = ch
		result.DurationMs = time.Since(start).Milliseconds()
	}()

	if d.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.opts.Timeout)
		defer cancel()
	}

	return d.sender.Send(ctx, ch, req.Recipient, req.Content)
}
