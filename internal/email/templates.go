package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"leadrouting_backend/internal/leads/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type leadNotificationEmailData struct {
	baseEmailData
	AgentName  string
	Urgency    string
	Paragraphs []string
	Links      []actionLink
}

type actionLink struct {
	Label string
	Href  template.URL
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

// renderLeadNotification lays the body out one paragraph per line and uses
// the view_full action as the call to action. Link-like actions are listed.
func renderLeadNotification(agentName string, content domain.NotificationContent) (string, error) {
	data := leadNotificationEmailData{
		baseEmailData: baseEmailData{
			Title:   content.Title,
			Heading: content.Title,
		},
		AgentName:  agentName,
		Urgency:    string(content.Urgency),
		Paragraphs: strings.Split(content.Body, "\n"),
	}

	for _, a := range content.Actions {
		switch {
		case a.Action == "open" && data.CTAURL == "":
			data.CTALabel = a.Label
			data.CTAURL = a.Payload
		case a.Action == "call" && a.Payload != "":
			// tel: is not on html/template's safe scheme list.
			data.Links = append(data.Links, actionLink{Label: a.Label, Href: template.URL(a.Payload)})
		}
	}

	return renderEmailTemplate("agent_notification.html", data)
}
