// Package domain holds the value types of the lead routing engine.
// Everything here is immutable input or pure output; nothing is persisted.
package domain

import (
	"strings"
	"time"

	"leadrouting_backend/platform/apperr"

	"github.com/google/uuid"
)

// InquiryType is the closed set of reasons a customer writes in.
type InquiryType string

const (
	InquiryTypeOffer       InquiryType = "offer"
	InquiryTypeViewing     InquiryType = "viewing"
	InquiryTypeInformation InquiryType = "information"
	InquiryTypeGeneral     InquiryType = "general"
)

// Valid reports whether t is a member of the enumeration.
func (t InquiryType) Valid() bool {
	switch t {
	case InquiryTypeOffer, InquiryTypeViewing, InquiryTypeInformation, InquiryTypeGeneral:
		return true
	}
	return false
}

// ParseInquiryType converts raw input, case-insensitively.
func ParseInquiryType(raw string) (InquiryType, error) {
	t := InquiryType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", apperr.InvalidFields("invalid inquiry type",
			apperr.FieldError{Field: "inquiryType", Reason: "oneof=offer viewing information general"})
	}
	return t, nil
}

// PreferredContact is how the customer asked to be reached.
type PreferredContact string

const (
	PreferredContactPhone PreferredContact = "phone"
	PreferredContactEmail PreferredContact = "email"
	PreferredContactBoth  PreferredContact = "both"
)

// Valid reports whether c is a member of the enumeration.
func (c PreferredContact) Valid() bool {
	switch c {
	case PreferredContactPhone, PreferredContactEmail, PreferredContactBoth:
		return true
	}
	return false
}

// ParsePreferredContact converts raw input, case-insensitively.
func ParsePreferredContact(raw string) (PreferredContact, error) {
	c := PreferredContact(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return "", apperr.InvalidFields("invalid preferred contact",
			apperr.FieldError{Field: "preferredContact", Reason: "oneof=phone email both"})
	}
	return c, nil
}

// PriceType distinguishes sale and rental listings.
type PriceType string

const (
	PriceTypeSale PriceType = "sale"
	PriceTypeRent PriceType = "rent"
)

// Inquiry is a customer-submitted message about a listing. The calling
// system owns it; the engine only reads it.
type Inquiry struct {
	ID               uuid.UUID        `json:"id"`
	PropertyID       uuid.UUID        `json:"propertyId"`
	AgentID          uuid.UUID        `json:"agentId"`
	CustomerName     string           `json:"customerName"`
	CustomerEmail    string           `json:"customerEmail"`
	CustomerPhone    *string          `json:"customerPhone,omitempty"`
	Message          string           `json:"message"`
	InquiryType      InquiryType      `json:"inquiryType"`
	PreferredContact PreferredContact `json:"preferredContact"`
	Status           string           `json:"status,omitempty"`
	Priority         *Priority        `json:"priority,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// Phone returns the trimmed customer phone, or "" when absent.
func (i Inquiry) Phone() string {
	if i.CustomerPhone == nil {
		return ""
	}
	return strings.TrimSpace(*i.CustomerPhone)
}

// HasPhone reports whether a non-blank phone number was supplied.
func (i Inquiry) HasPhone() bool {
	return i.Phone() != ""
}

// PropertySummary is the listing snapshot passed in by the caller.
type PropertySummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Price     float64   `json:"price"`
	PriceType PriceType `json:"priceType"`
	Location  string    `json:"location"`
	Bedrooms  int       `json:"bedrooms"`
	Bathrooms int       `json:"bathrooms"`
}

// CustomerHistory is the caller's own lookup of prior activity.
type CustomerHistory struct {
	PreviousInquiries int  `json:"previousInquiries"`
	HasViewed         bool `json:"hasViewed"`
}

// Recipient is the agent a routing plan is delivered to.
type Recipient struct {
	AgentID uuid.UUID `json:"agentId"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
}
