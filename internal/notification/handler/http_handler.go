package handler

import (
	"context"
	"net/http"
	"strconv"

	"leadrouting_backend/internal/notification/deliverylog"
	"leadrouting_backend/internal/notification/sse"
	"leadrouting_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DeliveryLister reads stored delivery results.
type DeliveryLister interface {
	ListByInquiry(ctx context.Context, inquiryID uuid.UUID, limit int) ([]deliverylog.Entry, error)
}

type HTTPHandler struct {
	deliveries DeliveryLister
	stream     *sse.Service
}

func NewHTTPHandler(deliveries DeliveryLister, stream *sse.Service) *HTTPHandler {
	return &HTTPHandler{deliveries: deliveries, stream: stream}
}

func (h *HTTPHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inquiries/:id/deliveries", h.ListDeliveries)
	if h.stream != nil {
		rg.GET("/agents/stream", h.stream.Handler(httpkit.AgentID))
	}
}

func (h *HTTPHandler) ListDeliveries(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.deliveries.ListByInquiry(c.Request.Context(), id, limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{
		"inquiryId": id,
		"items":     items,
	})
}
