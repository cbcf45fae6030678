// internal/app/system/mailer/mailer.go
package mailer

import (
	"context"

	"github.com/dalemusser/waffle/pantry/email"
)

// Email is one outbound message with both text and HTML bodies.
type Email struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// Sender delivers notification emails. Handlers treat delivery as
// best-effort: a failed send is logged, never surfaced to the caller.
type Sender interface {
	Send(ctx context.Context, e Email) error
}

// Config holds SMTP settings for the default Sender.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTP sends mail through WAFFLE's SMTP sender.
type SMTP struct {
	sender *email.Sender
}

func NewSMTP(cfg Config) *SMTP {
	return &SMTP{
		sender: email.NewSender(email.Config{
			Host:        cfg.Host,
			Port:        cfg.Port,
			Username:    cfg.Username,
			Password:    cfg.Password,
			FromAddress: cfg.From,
			FromName:    cfg.FromName,
		}),
	}
}

func (s *SMTP) Send(ctx context.Context, e Email) error {
	return s.sender.Send(ctx, email.Message{
		To:       e.To,
		Subject:  e.Subject,
		TextBody: e.TextBody,
		HTMLBody: e.HTMLBody,
	})
}
