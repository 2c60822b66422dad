package transport

import (
	"leadrouting_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// InquiryRequest is the inquiry as submitted by the calling system.
type InquiryRequest struct {
	ID               uuid.UUID `json:"id"`
	PropertyID       uuid.UUID `json:"propertyId"`
	AgentID          uuid.UUID `json:"agentId"`
	CustomerName     string    `json:"customerName" validate:"required,min=1,max=200"`
	CustomerEmail    string    `json:"customerEmail" validate:"omitempty,email,max=320"`
	CustomerPhone    *string   `json:"customerPhone,omitempty" validate:"omitempty,max=40"`
	Message          string    `json:"message" validate:"required,min=1,max=10000"`
	InquiryType      string    `json:"inquiryType" validate:"required,oneof=offer viewing information general"`
	PreferredContact string    `json:"preferredContact" validate:"required,oneof=phone email both"`
	Status           string    `json:"status,omitempty" validate:"max=50"`
}

// PropertyRequest is the listing snapshot.
type PropertyRequest struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title" validate:"required,max=300"`
	Price     float64   `json:"price" validate:"gte=0"`
	PriceType string    `json:"priceType" validate:"required,oneof=sale rent"`
	Location  string    `json:"location" validate:"max=300"`
	Bedrooms  int       `json:"bedrooms" validate:"gte=0"`
	Bathrooms int       `json:"bathrooms" validate:"gte=0"`
}

// HistoryRequest is the caller's own lookup of the customer's past activity.
type HistoryRequest struct {
	PreviousInquiries int  `json:"previousInquiries" validate:"gte=0"`
	HasViewed         bool `json:"hasViewed"`
}

// RecipientRequest identifies the agent a routed lead goes to.
type RecipientRequest struct {
	AgentID uuid.UUID `json:"agentId" validate:"required"`
	Name    string    `json:"name" validate:"max=200"`
	Email   string    `json:"email" validate:"omitempty,email,max=320"`
	Phone   string    `json:"phone" validate:"max=40"`
}

// ScoreRequest is the body of POST /leads/score and /leads/preview.
type ScoreRequest struct {
	Inquiry  InquiryRequest  `json:"inquiry" validate:"required"`
	Property PropertyRequest `json:"property" validate:"required"`
	History  *HistoryRequest `json:"history,omitempty"`
}

// RouteRequest is the body of POST /leads/route.
type RouteRequest struct {
	ScoreRequest
	Recipient RecipientRequest `json:"recipient" validate:"required"`
}

// RouteResponse wraps the plan with the dispatch hand-off status.
type RouteResponse struct {
	Plan     domain.RoutingPlan `json:"plan"`
	Dispatch string             `json:"dispatch"`
}
