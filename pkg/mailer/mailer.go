package mailer

import (
	"fmt"
	"net/smtp"
	"path/filepath"

	"github.com/jordan-wright/email"

	"github.com/psb-properties/property-report-api/pkg/config"
)

// Message describes a single outbound email.
type Message struct {
	To             string
	Subject        string
	HTML           string
	AttachmentPath string
}

// Sender delivers email over SMTP.
type Sender interface {
	Send(msg Message) (string, error)
}

// SMTPSender sends messages through a configured SMTP relay.
type SMTPSender struct {
	cfg config.SMTPConfig
}

// NewSMTPSender constructs an SMTP-backed sender.
func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send delivers the message in a single attempt and returns the message id.
func (s *SMTPSender) Send(msg Message) (string, error) {
	e := email.NewEmail()
	e.From = s.cfg.From
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.HTML = []byte(msg.HTML)

	if msg.AttachmentPath != "" {
		if _, err := e.AttachFile(msg.AttachmentPath); err != nil {
			return "", fmt.Errorf("attach %s: %w", filepath.Base(msg.AttachmentPath), err)
		}
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	if err := e.Send(addr, auth); err != nil {
		return "", fmt.Errorf("send email: %w", err)
	}

	return e.Headers.Get("Message-Id"), nil
}
