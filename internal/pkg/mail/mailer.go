package mail

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"
)

// Attachment is a file sent along with a message, held in memory.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Message is an outbound email.
type Message struct {
	To          string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer sends email. Implementations must honor ctx cancellation where possible;
// send failures are always surfaced to the caller, which decides whether they are fatal.
type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// SMTPConfig holds the SMTP credentials, injected at construction time.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer is a Mailer backed by an SMTP server.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates an SMTPMailer from config.
func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

// Send delivers the message. The dial-and-send runs in a goroutine so a stuck
// SMTP server cannot outlive the caller's context.
func (s *SMTPMailer) Send(ctx context.Context, m Message) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)

	for _, att := range m.Attachments {
		content := att.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		msg.Attach(att.Filename, settings...)
	}

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send to %s failed: %w", m.To, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send to %s aborted: %w", m.To, ctx.Err())
	}
}
