package transport

import (
	"strings"

	"leadrouting_backend/internal/leads/domain"
)

// ToInquiry converts a validated request. Enumerations are lower-cased but
// otherwise passed through; the scorer rejects unknown values.
func (r InquiryRequest) ToInquiry() domain.Inquiry {
	return domain.Inquiry{
		ID:               r.ID,
		PropertyID:       r.PropertyID,
		AgentID:          r.AgentID,
		CustomerName:     strings.TrimSpace(r.CustomerName),
		CustomerEmail:    strings.TrimSpace(r.CustomerEmail),
		CustomerPhone:    r.CustomerPhone,
		Message:          r.Message,
		InquiryType:      domain.InquiryType(strings.ToLower(strings.TrimSpace(r.InquiryType))),
		PreferredContact: domain.PreferredContact(strings.ToLower(strings.TrimSpace(r.PreferredContact))),
		Status:           r.Status,
	}
}

func (r PropertyRequest) ToProperty() domain.PropertySummary {
	return domain.PropertySummary{
		ID:        r.ID,
		Title:     strings.TrimSpace(r.Title),
		Price:     r.Price,
		PriceType: domain.PriceType(strings.ToLower(r.PriceType)),
		Location:  strings.TrimSpace(r.Location),
		Bedrooms:  r.Bedrooms,
		Bathrooms: r.Bathrooms,
	}
}

// ToHistory returns nil when no history was supplied.
func (r *HistoryRequest) ToHistory() *domain.CustomerHistory {
	if r == nil {
		return nil
	}
	return &domain.CustomerHistory{PreviousInquiries: r.PreviousInquiries, HasViewed: r.HasViewed}
}

func (r RecipientRequest) ToRecipient() domain.Recipient {
	return domain.Recipient{
		AgentID: r.AgentID,
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Phone:   strings.TrimSpace(r.Phone),
	}
}
