package email

import (
	"hwreview_backend/internal/config"
	"hwreview_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

// Mailer sends transactional mail. Implementations hold their own
// configuration; there is no package-level state.
type Mailer interface {
	Send(to, subject, htmlBody, textBody string) error
}

// SMTPMailer delivers mail through an SMTP relay via gomail.
type SMTPMailer struct {
	cfg config.EmailConfig
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, htmlBody, textBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.FromEmail, m.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", textBody)
	if htmlBody != "" {
		msg.AddAlternative("text/html", htmlBody)
	}

	d := gomail.NewDialer(
		m.cfg.SMTPHost,
		m.cfg.SMTPPort,
		m.cfg.SMTPUsername,
		m.cfg.SMTPPassword,
	)

	return d.DialAndSend(msg)
}

// LogMailer logs instead of sending; used in development and tests.
type LogMailer struct{}

func (LogMailer) Send(to, subject, htmlBody, textBody string) error {
	logger.Info("mail suppressed", "to", to, "subject", subject)
	return nil
}
