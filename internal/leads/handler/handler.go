package handler

import (
	"net/http"

	"leadrouting_backend/internal/leads/service"
	"leadrouting_backend/internal/leads/transport"
	"leadrouting_backend/platform/httpkit"
	"leadrouting_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const msgInvalidRequest = "invalid request"

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/score", h.Score)
	rg.POST("/preview", h.Preview)
	rg.POST("/route", h.Route)
}

func (h *Handler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return false
	}
	return !httpkit.HandleError(c, h.val.Check(req))
}

func (h *Handler) Score(c *gin.Context) {
	var req transport.ScoreRequest
	if !h.bind(c, &req) {
		return
	}

	score, err := h.svc.Score(req.Inquiry.ToInquiry(), req.Property.ToProperty(), req.History.ToHistory())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, score)
}

func (h *Handler) Preview(c *gin.Context) {
	var req transport.ScoreRequest
	if !h.bind(c, &req) {
		return
	}

	plan, err := h.svc.Evaluate(req.Inquiry.ToInquiry(), req.Property.ToProperty(), req.History.ToHistory())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, plan)
}

func (h *Handler) Route(c *gin.Context) {
	var req transport.RouteRequest
	if !h.bind(c, &req) {
		return
	}

	plan, err := h.svc.Route(c.Request.Context(), req.Inquiry.ToInquiry(), req.Property.ToProperty(), req.History.ToHistory(), req.Recipient.ToRecipient())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.Accepted(c, transport.RouteResponse{Plan: plan, Dispatch: service.DispatchAccepted})
}
