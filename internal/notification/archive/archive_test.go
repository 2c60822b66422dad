package archive

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/internal/notification/dispatch"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	buckets     []string
	bucket      string
	key         string
	contentType string
	body        []byte
}

func (f *fakeStore) EnsureBucketExists(_ context.Context, bucket string) error {
	f.buckets = append(f.buckets, bucket)
	return nil
}

func (f *fakeStore) Put(_ context.Context, bucket, key, contentType string, reader io.Reader, _ int64) error {
	f.bucket, f.key, f.contentType = bucket, key, contentType
	data, err := io.ReadAll(reader)
	f.body = data
	return err
}

func TestStoreWritesJSONReport(t *testing.T) {
	store := &fakeStore{}
	a := New(store, "dispatch-reports")
	a.now = func() time.Time { return time.Unix(0, 42) }

	require.NoError(t, a.EnsureBucket(context.Background()))
	assert.Equal(t, []string{"dispatch-reports"}, store.buckets)

	inquiryID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	report := dispatch.Report{InquiryID: inquiryID, Results: []dispatch.DeliveryResult{
		{Channel: domain.ChannelEmail, Status: dispatch.StatusDelivered},
		{Channel: domain.ChannelSMS, Status: dispatch.StatusFailed, Error: "gateway down"},
	}}

	key, err := a.Store(context.Background(), report)
	require.NoError(t, err)
	assert.Equal(t, "reports/11111111-2222-3333-4444-555555555555/42.json", key)
	assert.Equal(t, "dispatch-reports", store.bucket)
	assert.Equal(t, "application/json", store.contentType)

	var decoded dispatch.Report
	require.NoError(t, json.Unmarshal(store.body, &decoded))
	assert.Equal(t, []domain.Channel{domain.ChannelSMS}, decoded.Failed())
}
