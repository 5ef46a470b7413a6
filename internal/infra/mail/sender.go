package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/Budorazhka/LastDance-sub001/internal/infra/queue"
)

//go:embed templates/*.html
var templateFS embed.FS

var leadAssignedTmpl = template.Must(template.ParseFS(templateFS, "templates/lead_assigned.html"))

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		From:   from,
		dialer: gomail.NewDialer(host, port, user, password),
	}
}

// NewEmailSenderWithDialer is used when the transport is provided elsewhere.
func NewEmailSenderWithDialer(d Dialer, from string) *EmailSender {
	return &EmailSender{From: from, dialer: d}
}

// SendLeadAssigned implements queue.Notifier.
func (s *EmailSender) SendLeadAssigned(ctx context.Context, p queue.LeadAssignedPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := RenderLeadAssigned(LeadAssignedEmailData{
		ManagerName: p.ManagerName,
		LeadID:      p.LeadID,
		LeadName:    p.LeadName,
		LeadPhone:   p.LeadPhone,
		Source:      p.Source,
		Stage:       p.StageID,
		Reason:      p.Reason,
		AssignedAt:  p.OccurredAt,
	})
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", p.ManagerEmail)
	m.SetHeader("Subject", fmt.Sprintf("New %s lead assigned to you", p.Source))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP mail: %w", err)
	}
	return nil
}

func RenderLeadAssigned(data LeadAssignedEmailData) (string, error) {
	var body bytes.Buffer
	if err := leadAssignedTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("failed to render lead assigned template: %w", err)
	}
	return body.String(), nil
}
