package dispatch

import (
	"context"

	"github.com/google/uuid"
)

type inquiryIDKey struct{}

// WithInquiryID attaches the inquiry being dispatched to ctx.
func WithInquiryID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, inquiryIDKey{}, id)
}

// InquiryID returns the inquiry a transport is delivering for, if any.
func InquiryID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(inquiryIDKey{}).(uuid.UUID)
	return id, ok
}
