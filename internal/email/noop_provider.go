package email

import "sync"

// NoopProvider records messages instead of sending them. Used in tests and
// when SMTP is not configured.
type NoopProvider struct {
	mu   sync.Mutex
	Sent []RecordedMessage
}

type RecordedMessage struct {
	To       string
	Subject  string
	Template string
	Data     TemplateData
	Body     string
}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

func (p *NoopProvider) Send(to, subject, htmlBody string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, RecordedMessage{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (p *NoopProvider) SendTemplate(to, subject, templateName string, data TemplateData) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, RecordedMessage{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

// Messages returns a copy of everything recorded.
func (p *NoopProvider) Messages() []RecordedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]RecordedMessage, len(p.Sent))
	copy(out, p.Sent)
	return out
}
