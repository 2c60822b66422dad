// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used when a number carries no country prefix.
const DefaultRegion = "GY"

// NormalizeE164 formats a phone number to E.164 using DefaultRegion.
// If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	return NormalizeE164ForRegion(input, DefaultRegion)
}

// NormalizeE164ForRegion formats a phone number to E.164, resolving national
// numbers against region. If parsing fails, it returns the trimmed input.
func NormalizeE164ForRegion(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}
	if region == "" {
		region = DefaultRegion
	}

	number, err := phonenumbers.Parse(trimmed, strings.ToUpper(region))
	if err != nil {
		return trimmed
	}
	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

// TelLink returns a tel: URI for the number, or "" when input is blank.
// Unparseable input is kept with whitespace stripped so the link still dials.
func TelLink(input, region string) string {
	normalized := NormalizeE164ForRegion(input, region)
	if normalized == "" {
		return ""
	}
	return "tel:" + strings.Join(strings.Fields(normalized), "")
}
