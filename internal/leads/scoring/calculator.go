// Package scoring computes lead scores for property inquiries.
//
// The calculator is a pure function of its arguments and the read-only
// tables below, so a single instance is safe for concurrent use.
package scoring

import (
	"strings"
	"unicode/utf8"

	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/platform/apperr"
)

// Options tunes the calculator.
type Options struct {
	// ClampEngagement caps the engagement factor at maxEngagementPoints after
	// history bonuses. Off by default: bonuses stack on top of the length bucket.
	ClampEngagement bool
}

// Calculator scores inquiries.
type Calculator struct {
	opts Options
}

// NewCalculator creates a calculator with the given options.
func NewCalculator(opts Options) *Calculator {
	return &Calculator{opts: opts}
}

// keywordRule awards points when the message contains any of its keywords.
type keywordRule struct {
	keywords []string
	points   int
}

var inquiryTypePoints = map[domain.InquiryType]int{
	domain.InquiryTypeOffer:       25,
	domain.InquiryTypeViewing:     20,
	domain.InquiryTypeInformation: 15,
	domain.InquiryTypeGeneral:     10,
}

// timelineRules are evaluated first-match-wins, most urgent first.
var timelineRules = []keywordRule{
	{[]string{"urgent", "asap", "immediately"}, 20},
	{[]string{"soon", "quickly"}, 15},
	{[]string{"when available", "no rush"}, 5},
}

const defaultTimelinePoints = 10

var (
	bedroomKeywords = []string{"bedroom", "bed"}
	budgetKeywords  = []string{"budget", "price", "afford"}
	saleKeywords    = []string{"buy", "purchase"}
	rentKeywords    = []string{"rent"}
)

const (
	listingIntentPoints = 10
	bedroomPoints       = 5
	budgetPoints        = 5
)

// engagementBuckets map message length (exclusive lower bound) to points.
var engagementBuckets = []struct {
	longerThan int
	points     int
}{
	{200, 20},
	{100, 15},
	{50, 10},
}

const (
	baseEngagementPoints = 5
	maxEngagementPoints  = 20
	returningBonus       = 5
	viewedBonus          = 5
)

// Score validates the inquiry and computes its LeadScore. history may be nil.
func (c *Calculator) Score(inquiry domain.Inquiry, property domain.PropertySummary, history *domain.CustomerHistory) (domain.LeadScore, error) {
	if err := validateInquiry(inquiry); err != nil {
		return domain.LeadScore{}, err
	}

	message := strings.ToLower(inquiry.Message)
	recs := &recommendations{}

	factors := domain.ScoreFactors{
		InquiryType:   inquiryTypePoints[inquiry.InquiryType],
		Timeline:      scoreTimeline(message),
		Communication: scoreCommunication(inquiry),
		PropertyMatch: scorePropertyMatch(message, property, recs),
		Engagement:    c.scoreEngagement(inquiry.Message, history, recs),
	}

	total := factors.Sum()
	t := classify(total)

	return domain.LeadScore{
		Total:           total,
		Factors:         factors,
		Priority:        t.priority,
		Recommendations: recs.build(t.banner),
	}, nil
}

func validateInquiry(inquiry domain.Inquiry) error {
	var fields []apperr.FieldError
	if strings.TrimSpace(inquiry.Message) == "" {
		fields = append(fields, apperr.FieldError{Field: "message", Reason: "required"})
	}
	if !inquiry.InquiryType.Valid() {
		fields = append(fields, apperr.FieldError{Field: "inquiryType", Reason: "oneof=offer viewing information general"})
	}
	if !inquiry.PreferredContact.Valid() {
		fields = append(fields, apperr.FieldError{Field: "preferredContact", Reason: "oneof=phone email both"})
	}
	if len(fields) == 0 {
		return nil
	}
	return apperr.InvalidFields("invalid inquiry", fields...).WithOp("scoring.Score")
}

func scoreTimeline(message string) int {
	for _, rule := range timelineRules {
		if containsAny(message, rule.keywords) {
			return rule.points
		}
	}
	return defaultTimelinePoints
}

func scoreCommunication(inquiry domain.Inquiry) int {
	hasPhone := inquiry.HasPhone()
	switch {
	case hasPhone && inquiry.PreferredContact == domain.PreferredContactBoth:
		return 15
	case hasPhone && inquiry.PreferredContact == domain.PreferredContactPhone:
		return 12
	case inquiry.PreferredContact == domain.PreferredContactEmail:
		return 8
	default:
		return 10
	}
}

func scorePropertyMatch(message string, property domain.PropertySummary, recs *recommendations) int {
	points := 0

	switch property.PriceType {
	case domain.PriceTypeRent:
		if containsAny(message, rentKeywords) {
			points += listingIntentPoints
		}
	case domain.PriceTypeSale:
		if containsAny(message, saleKeywords) {
			points += listingIntentPoints
		}
	}

	if containsAny(message, bedroomKeywords) {
		points += bedroomPoints
	}
	if containsAny(message, budgetKeywords) {
		points += budgetPoints
		recs.add(recFinancing)
	}

	return points
}

func (c *Calculator) scoreEngagement(message string, history *domain.CustomerHistory, recs *recommendations) int {
	length := utf8.RuneCountInString(message)

	points := baseEngagementPoints
	for _, bucket := range engagementBuckets {
		if length > bucket.longerThan {
			points = bucket.points
			break
		}
	}

	if history != nil {
		if history.PreviousInquiries > 0 {
			points += returningBonus
			recs.add(recReturningCustomer)
		}
		if history.HasViewed {
			points += viewedBonus
		}
	}

	if c.opts.ClampEngagement && points > maxEngagementPoints {
		points = maxEngagementPoints
	}
	return points
}

// containsAny checks if s contains any of the keywords.
func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
