package scoring

import "leadrouting_backend/internal/leads/domain"

type tier struct {
	min      int
	priority domain.Priority
	banner   string
}

// tiers are checked top-down; the last entry catches everything below 40.
var tiers = []tier{
	{80, domain.PriorityCritical, "CRITICAL LEAD — drop everything and respond now."},
	{60, domain.PriorityHigh, "HIGH VALUE LEAD — respond within 1 hour."},
	{40, domain.PriorityMedium, "MEDIUM PRIORITY — respond within 4 hours."},
	{0, domain.PriorityLow, "Standard inquiry — respond within 24 hours."},
}

func classify(total int) tier {
	for _, t := range tiers {
		if total >= t.min {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Classify maps a total score to its priority tier.
func Classify(total int) domain.Priority {
	return classify(total).priority
}

// Banner returns the leading recommendation for a priority tier.
func Banner(p domain.Priority) string {
	for _, t := range tiers {
		if t.priority == p {
			return t.banner
		}
	}
	return tiers[len(tiers)-1].banner
}

const (
	recFinancing         = "Discuss financing options and budget flexibility."
	recReturningCustomer = "Returning customer: reference their previous inquiries."
)

// closingRecommendations are appended to every score, in this order.
var closingRecommendations = []string{
	"Personalize your response with property-specific details.",
	"Include additional photos or a virtual tour link.",
	"Offer flexible viewing times, including evenings and weekends.",
}

// recommendations collects factor-driven advice while scoring runs.
// build places the banner first by construction.
type recommendations struct {
	factor []string
}

func (r *recommendations) add(rec string) {
	r.factor = append(r.factor, rec)
}

func (r *recommendations) build(banner string) []string {
	out := make([]string, 0, 1+len(r.factor)+len(closingRecommendations))
	out = append(out, banner)
	out = append(out, r.factor...)
	return append(out, closingRecommendations...)
}
