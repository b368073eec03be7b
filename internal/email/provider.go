package email

// TemplateData carries values into an email template.
type TemplateData map[string]interface{}

// Provider sends notification email. Services depend on this interface so
// tests can swap in the noop provider.
type Provider interface {
	// Send delivers a raw HTML message.
	Send(to, subject, htmlBody string) error

	// SendTemplate renders a named template and delivers the result.
	SendTemplate(to, subject, templateName string, data TemplateData) error
}
