package email

import (
	"fmt"
	"html/template"
	"strings"
	"sync"
)

// Template names used by the services.
const (
	TemplateApplicationReceived = "application_received"
	TemplateStatusChanged       = "status_changed"
	TemplateInterviewScheduled  = "interview_scheduled"
	TemplateOfferSent           = "offer_sent"
	TemplateOfferResponded      = "offer_responded"
)

var builtinTemplates = map[string]string{
	TemplateApplicationReceived: `
<h2>Application received</h2>
<p>Hi {{.CandidateName}},</p>
<p>Your application for <b>{{.JobTitle}}</b> has been received. We will be in touch.</p>`,

	TemplateStatusChanged: `
<h2>Application update</h2>
<p>Hi {{.CandidateName}},</p>
<p>Your application for <b>{{.JobTitle}}</b> moved to status <b>{{.Status}}</b>.</p>`,

	TemplateInterviewScheduled: `
<h2>Interview scheduled</h2>
<p>Hi {{.CandidateName}},</p>
<p>An interview for <b>{{.JobTitle}}</b> is scheduled for {{.ScheduledDate}}.</p>
{{if .MeetingLink}}<p>Meeting link: <a href="{{.MeetingLink}}">{{.MeetingLink}}</a></p>{{end}}`,

	TemplateOfferSent: `
<h2>You have an offer</h2>
<p>Hi {{.CandidateName}},</p>
<p>We are pleased to offer you the position of <b>{{.Position}}</b> at {{.Salary}} {{.Currency}}.</p>
<p>This offer is valid until {{.ValidUntil}}.</p>
<p><a href="{{.ResponseURL}}">Respond to the offer</a></p>`,

	TemplateOfferResponded: `
<h2>Offer response</h2>
<p>The candidate {{.CandidateName}} has responded to the offer for <b>{{.Position}}</b>: {{.Response}}.</p>`,
}

// TemplateManager renders the built-in templates; callers may register
// replacements at startup.
type TemplateManager struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewTemplateManager() (*TemplateManager, error) {
	m := &TemplateManager{templates: make(map[string]*template.Template)}
	for name, body := range builtinTemplates {
		if err := m.Add(name, body); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *TemplateManager) Add(name, body string) error {
	tmpl, err := template.New(name).Parse(body)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	m.mu.Lock()
	m.templates[name] = tmpl
	m.mu.Unlock()
	return nil
}

func (m *TemplateManager) Render(name string, data TemplateData) (string, error) {
	m.mu.RLock()
	tmpl, ok := m.templates[name]
	m.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return sb.String(), nil
}
