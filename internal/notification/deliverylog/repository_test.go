package deliverylog

import (
	"context"
	"testing"

	"leadrouting_backend/internal/notification/dispatch"

	"github.com/google/uuid"
)

func TestRepositoryWithoutPoolReportsNotConfigured(t *testing.T) {
	var repo *Repository
	if err := repo.Record(context.Background(), uuid.New(), uuid.New(), dispatch.DeliveryResult{}); err == nil || err.Error() != errRepoNotConfigured {
		t.Fatalf("expected not configured error, got %v", err)
	}

	if _, err := New(nil).ListByInquiry(context.Background(), uuid.New(), 10); err == nil {
		t.Fatalf("expected error without a pool")
	}
}

func TestErrorTextOnlyForFailures(t *testing.T) {
	cases := []struct {
		name   string
		result dispatch.DeliveryResult
		want   string
	}{
		{"failed", dispatch.DeliveryResult{Status: dispatch.StatusFailed, Error: "gateway down"}, "gateway down"},
		{"skipped with stray text", dispatch.DeliveryResult{Status: dispatch.StatusSkipped, Error: "no transport configured"}, ""},
		{"delivered", dispatch.DeliveryResult{Status: dispatch.StatusDelivered}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := errorText(tc.result)
			if tc.want == "" {
				if got != nil {
					t.Fatalf("expected no error text, got %q", *got)
				}
				return
			}
			if got == nil || *got != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, got)
			}
		})
	}
}
