package email

import (
	"fmt"

	"hiretalent_backend/internal/config"

	"gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail through the configured SMTP relay.
type SMTPProvider struct {
	cfg      *config.Config
	renderer *TemplateManager
}

func NewSMTPProvider(cfg *config.Config, renderer *TemplateManager) *SMTPProvider {
	return &SMTPProvider{cfg: cfg, renderer: renderer}
}

func (p *SMTPProvider) Send(to, subject, htmlBody string) error {
	if p.cfg.Email.SMTPHost == "" {
		return fmt.Errorf("SMTP host is not configured")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.cfg.Email.FromEmail, p.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		p.cfg.Email.SMTPHost,
		p.cfg.Email.SMTPPort,
		p.cfg.Email.SMTPUsername,
		p.cfg.Email.SMTPPassword,
	)

	return d.DialAndSend(m)
}

func (p *SMTPProvider) SendTemplate(to, subject, templateName string, data TemplateData) error {
	body, err := p.renderer.Render(templateName, data)
	if err != nil {
		return err
	}
	return p.Send(to, subject, body)
}
