// Package quickreply drafts the reply an agent can send back to a customer
// with minimal editing.
package quickreply

import (
	"math"
	"strings"

	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/platform/config"
	"leadrouting_backend/platform/phone"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var typeSentences = map[domain.InquiryType]string{
	domain.InquiryTypeOffer:       "I understand you're ready to make an offer, so let's discuss it immediately.",
	domain.InquiryTypeViewing:     "I'd be happy to arrange a viewing for you. I'm available today or tomorrow.",
	domain.InquiryTypeInformation: "I'd be glad to provide detailed information about this property.",
}

const defaultTypeSentence = "I'm excited to help you find out more about this property!"

// Builder renders quick replies. It holds only read-only settings.
type Builder struct {
	signature []string
	currency  string
	region    string
	printer   *message.Printer
}

// New creates a builder from the agency profile. Unknown currency codes
// fall back to the default profile's currency.
func New(profile config.AgencyProfile, region string) *Builder {
	code := config.DefaultAgencyProfile().Currency
	if unit, err := currency.ParseISO(profile.Currency); err == nil {
		code = unit.String()
	}

	signature := profile.Signature
	if len(signature) == 0 {
		signature = config.DefaultAgencyProfile().Signature
	}

	return &Builder{
		signature: signature,
		currency:  code,
		region:    region,
		printer:   message.NewPrinter(language.English),
	}
}

// Build drafts a reply for the inquiry.
func (b *Builder) Build(inquiry domain.Inquiry, property domain.PropertySummary, score domain.LeadScore) string {
	var sb strings.Builder

	sb.WriteString("Hi " + strings.TrimSpace(inquiry.CustomerName) + ",\n\n")
	sb.WriteString("Thank you for your interest in " + property.Title + ". ")
	sb.WriteString(typeSentence(inquiry.InquiryType))
	sb.WriteString("\n\n")

	sb.WriteString("Property highlights:\n")
	sb.WriteString("- Location: " + property.Location + "\n")
	sb.WriteString("- Price: " + b.FormatPrice(property) + "\n")
	sb.WriteString(b.printer.Sprintf("- Bedrooms: %d | Bathrooms: %d\n\n", property.Bedrooms, property.Bathrooms))

	sb.WriteString(b.callToAction(inquiry, score.Priority))
	sb.WriteString("\n\n")
	sb.WriteString(strings.Join(b.signature, "\n"))

	return sb.String()
}

// FormatPrice renders the listing price with the currency code and digit
// grouping, adding "/month" for rentals.
func (b *Builder) FormatPrice(property domain.PropertySummary) string {
	price := b.printer.Sprintf("%s %d", b.currency, int64(math.Round(property.Price)))
	if property.PriceType == domain.PriceTypeRent {
		price += "/month"
	}
	return price
}

func typeSentence(t domain.InquiryType) string {
	if s, ok := typeSentences[t]; ok {
		return s
	}
	return defaultTypeSentence
}

func (b *Builder) callToAction(inquiry domain.Inquiry, priority domain.Priority) string {
	if priority == domain.PriorityCritical {
		reach := "at your convenience"
		if inquiry.HasPhone() {
			reach = "at " + phone.NormalizeE164ForRegion(inquiry.Phone(), b.region)
		}
		return "Could we speak within the next hour? I can call you " + reach + "."
	}

	if inquiry.PreferredContact == domain.PreferredContactPhone {
		return "Please let me know a convenient time for a quick call."
	}
	return "Please let me know a convenient time, or reply and I'll send you a detailed email with everything you need."
}
