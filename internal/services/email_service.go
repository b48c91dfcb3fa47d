package services

import (
	"fmt"
	"log/slog"

	"github.com/karadenizdev/taskman-backend/internal/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// EmailService sends transactional mail through SendGrid. All sends are
// fire-and-forget: delivery failures are logged and never propagate to the
// operation that triggered them. With no API key configured, sends are
// skipped entirely.
type EmailService struct {
	client *sendgrid.Client
	from   *mail.Email
}

func NewEmailService(cfg *config.Config) *EmailService {
	s := &EmailService{
		from: mail.NewEmail("Taskman", cfg.EmailFrom),
	}
	if cfg.SendGridAPIKey != "" {
		s.client = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}
	return s
}

// SendWelcome greets a new account. Runs async; signup never waits on it.
func (s *EmailService) SendWelcome(email, name string) {
	s.send(email, "Welcome aboard!",
		fmt.Sprintf("Welcome to the app, %s. Let us know how you get along.", name))
}

// SendCancellation says goodbye after account deletion.
func (s *EmailService) SendCancellation(email, name string) {
	s.send(email, "Sorry to see you go!",
		fmt.Sprintf("Goodbye, %s. We hope to see you back sometime soon.", name))
}

func (s *EmailService) send(email, subject, body string) {
	if s.client == nil {
		slog.Debug("email delivery skipped, no API key configured", "to", email, "subject", subject)
		return
	}

	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", email), body, body)

	go func() {
		resp, err := s.client.Send(message)
		if err != nil {
			slog.Warn("email delivery failed", "to", email, "subject", subject, "error", err)
			return
		}
		if resp.StatusCode >= 400 {
			slog.Warn("email delivery rejected", "to", email, "subject", subject, "status", resp.StatusCode)
		}
	}()
}
