// Package deliverylog persists per-channel delivery results so callers can
// surface partial deliveries after the fact.
package deliverylog

import (
	"context"
	"time"

	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/internal/notification/dispatch"
	"leadrouting_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	errRepoNotConfigured = "delivery log repository not configured"
	defaultListLimit     = 100
)

// Entry is one stored delivery result.
type Entry struct {
	ID         uuid.UUID               `json:"id"`
	InquiryID  uuid.UUID               `json:"inquiryId"`
	AgentID    *uuid.UUID              `json:"agentId,omitempty"`
	Channel    domain.Channel          `json:"channel"`
	Status     dispatch.DeliveryStatus `json:"status"`
	Error      *string                 `json:"error,omitempty"`
	DurationMs int64                   `json:"durationMs"`
	CreatedAt  time.Time               `json:"createdAt"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Record implements dispatch.Recorder.
func (r *Repository) Record(ctx context.Context, inquiryID, agentID uuid.UUID, result dispatch.DeliveryResult) error {
	if r == nil || r.pool == nil {
		return apperr.Unavailable(errRepoNotConfigured)
	}

	var agent *uuid.UUID
	if agentID != uuid.Nil {
		agent = &agentID
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notification_deliveries (inquiry_id, agent_id, channel, status, error, duration_ms)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		inquiryID, agent, string(result.Channel), string(result.Status), errorText(result), result.DurationMs,
	)
	return err
}

// errorText is stored only for failed results.
func errorText(result dispatch.DeliveryResult) *string {
	if result.Status != dispatch.StatusFailed || result.Error == "" {
		return nil
	}
	return &result.Error
}

// ListByInquiry returns the newest results for an inquiry, oldest first.
func (r *Repository) ListByInquiry(ctx context.Context, inquiryID uuid.UUID, limit int) ([]Entry, error) {
	if r == nil || r.pool == nil {
		return nil, apperr.Unavailable(errRepoNotConfigured)
	}
	if limit < 1 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, inquiry_id, agent_id, channel, status, error, duration_ms, created_at
		 FROM (
		   SELECT * FROM notification_deliveries
		   WHERE inquiry_id = $1
		   ORDER BY created_at DESC
		   LIMIT $2
		 ) recent
		 ORDER BY created_at ASC`,
		inquiryID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var channel, status string
		if err := rows.Scan(&e.ID, &e.InquiryID, &e.AgentID, &channel, &status, &e.Error, &e.DurationMs, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Channel = domain.Channel(channel)
		e.Status = dispatch.DeliveryStatus(status)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ dispatch.Recorder = (*Repository)(nil)
