// Package compose builds the notification an agent receives for a scored
// inquiry. Output depends only on its inputs, never on the clock.
package compose

import (
	"fmt"
	"strings"

	"leadrouting_backend/internal/leads/domain"
	"leadrouting_backend/platform/phone"
)

// QuickReplyBuilder drafts the reply attached to the quick_response action.
type QuickReplyBuilder interface {
	Build(inquiry domain.Inquiry, property domain.PropertySummary, score domain.LeadScore) string
}

// Action identifiers.
const (
	ActionUrgentCall    = "urgent_call"
	ActionQuickResponse = "quick_response"
	ActionScheduleCall  = "schedule_call"
	ActionViewFull      = "view_full"
)

const maxBodyRecommendations = 3

var priorityIcons = map[domain.Priority]string{
	domain.PriorityCritical: "🔥",
	domain.PriorityHigh:     "🚀",
	domain.PriorityMedium:   "⚡",
	domain.PriorityLow:      "📋",
}

var preambles = map[domain.Priority]string{
	domain.PriorityCritical: "This lead is ready to act now. Respond before anything else.",
	domain.PriorityHigh:     "This is a high-value lead. Aim to respond within the hour.",
}

// Composer renders NotificationContent.
type Composer struct {
	replies QuickReplyBuilder
	baseURL string
	region  string
}

// New creates a composer. baseURL prefixes the inquiry detail link.
func New(replies QuickReplyBuilder, baseURL, region string) *Composer {
	return &Composer{
		replies: replies,
		baseURL: strings.TrimRight(baseURL, "/"),
		region:  region,
	}
}

// Compose builds the notification for a scored inquiry.
func (c *Composer) Compose(score domain.LeadScore, inquiry domain.Inquiry, property domain.PropertySummary) domain.NotificationContent {
	return domain.NotificationContent{
		Title:   Title(score, inquiry.InquiryType),
		Body:    body(score, inquiry, property),
		Urgency: score.Priority,
		Actions: c.actions(score, inquiry, property),
	}
}

// Title formats "{priority icon}{score icon} New {type} inquiry (Score: N)".
func Title(score domain.LeadScore, inquiryType domain.InquiryType) string {
	return fmt.Sprintf("%s%s New %s inquiry (Score: %d)", priorityIcons[score.Priority], scoreIcon(score.Total), inquiryType, score.Total)
}

func scoreIcon(total int) string {
	switch {
	case total >= 80:
		return "🎯"
	case total >= 60:
		return "⭐"
	default:
		return "📬"
	}
}

func body(score domain.LeadScore, inquiry domain.Inquiry, property domain.PropertySummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s is interested in %s.", strings.TrimSpace(inquiry.CustomerName), property.Title)

	if preamble, ok := preambles[score.Priority]; ok {
		sb.WriteString(" " + preamble)
	}

	recs := score.Recommendations
	if len(recs) > maxBodyRecommendations {
		recs = recs[:maxBodyRecommendations]
	}
	if len(recs) > 0 {
		sb.WriteString("\n\nRecommended next steps:")
		for _, rec := range recs {
			sb.WriteString("\n• " + rec)
		}
	}
	return sb.String()
}

func (c *Composer) actions(score domain.LeadScore, inquiry domain.Inquiry, property domain.PropertySummary) []domain.Action {
	tel := ""
	if inquiry.HasPhone() {
		tel = phone.TelLink(inquiry.Phone(), c.region)
	}

	actions := make([]domain.Action, 0, 4)
	if score.Priority == domain.PriorityCritical {
		actions = append(actions, domain.Action{ID: ActionUrgentCall, Label: "Call now", Action: "call", Payload: tel})
	}

	reply := ""
	if c.replies != nil {
		reply = c.replies.Build(inquiry, property, score)
	}

	return append(actions,
		domain.Action{ID: ActionQuickResponse, Label: "Send quick reply", Action: "reply", Payload: reply},
		domain.Action{ID: ActionScheduleCall, Label: "Schedule call", Action: "call", Payload: tel},
		domain.Action{ID: ActionViewFull, Label: "View full inquiry", Action: "open", Payload: c.inquiryURL(inquiry)},
	)
}

func (c *Composer) inquiryURL(inquiry domain.Inquiry) string {
	return c.baseURL + "/inquiries/" + inquiry.ID.String()
}
