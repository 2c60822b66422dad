package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/internal/notification/deliverylog"
	"leadrouting_backend/internal/notification/dispatch"
	"leadrouting_backend/platform/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLister struct {
	entries []deliverylog.Entry
	err     error
	limit   int
}

func (s *stubLister) ListByInquiry(_ context.Context, _ uuid.UUID, limit int) ([]deliverylog.Entry, error) {
	s.limit = limit
	return s.entries, s.err
}

func newEngine(lister DeliveryLister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHTTPHandler(lister, nil).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestListDeliveries(t *testing.T) {
	inquiryID := uuid.New()
	lister := &stubLister{entries: []deliverylog.Entry{
		{InquiryID: inquiryID, Channel: domain.ChannelEmail, Status: dispatch.StatusDelivered},
		{InquiryID: inquiryID, Channel: domain.ChannelSMS, Status: dispatch.StatusFailed},
	}}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inquiries/"+inquiryID.String()+"/deliveries?limit=5", nil)
	newEngine(lister).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, lister.limit)

	var body struct {
		InquiryID uuid.UUID           `json:"inquiryId"`
		Items     []deliverylog.Entry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, inquiryID, body.InquiryID)
	require.Len(t, body.Items, 2)
	assert.Equal(t, dispatch.StatusFailed, body.Items[1].Status)
}

func TestListDeliveriesRejectsBadID(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine(&stubLister{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inquiries/nope/deliveries", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListDeliveriesWithoutDatabase(t *testing.T) {
	rec := httptest.NewRecorder()
	lister := &stubLister{err: apperr.Unavailable("delivery log repository not configured")}
	newEngine(lister).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/inquiries/"+uuid.NewString()+"/deliveries", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
