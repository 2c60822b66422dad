package email

import (
	"strings"
	"testing"

	"leadrouting_backend/internal/leads/domain"
)

func TestRenderLeadNotification(t *testing.T) {
	content := domain.NotificationContent{
		Title:   "🔥🎯 New offer inquiry (Score: 80)",
		Body:    "Amina is interested in Garden villa.\n\nRecommended next steps:\n• Call <now>",
		Urgency: domain.PriorityCritical,
		Actions: []domain.Action{
			{ID: "urgent_call", Label: "Call now", Action: "call", Payload: "tel:+254712345678"},
			{ID: "quick_response", Label: "Send quick reply", Action: "reply", Payload: "Hi Amina"},
			{ID: "schedule_call", Label: "Schedule call", Action: "call", Payload: ""},
			{ID: "view_full", Label: "View full inquiry", Action: "open", Payload: "https://app.example.com/inquiries/1"},
		},
	}

	out, err := renderLeadNotification("Otieno", content)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, want := range []string{
		"Hi Otieno,",
		"Priority: critical",
		"Amina is interested in Garden villa.",
		`href="https://app.example.com/inquiries/1"`,
		`href="tel:`,
		"254712345678",
		"Call &lt;now&gt;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered email:\n%s", want, out)
		}
	}
	if strings.Contains(out, "ZgotmplZ") {
		t.Fatalf("expected tel link to survive escaping:\n%s", out)
	}
	if strings.Contains(out, "Schedule call") {
		t.Fatalf("expected call actions without a payload to be omitted")
	}
}
