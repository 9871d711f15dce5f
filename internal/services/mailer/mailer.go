package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"escolta/internal/config"
	"escolta/internal/lib/logger/sl"
)

// Mailer delivers transactional mail through SendGrid. When no API key
// is configured it logs the message instead of sending, which keeps
// local and dev environments mail-free.
type Mailer struct {
	log    *slog.Logger
	apiKey string
	from   *mail.Email
}

func New(log *slog.Logger, cfg config.MailConfig) *Mailer {
	return &Mailer{
		log:    log,
		apiKey: cfg.SendgridAPIKey,
		from:   mail.NewEmail(cfg.FromName, cfg.FromAddress),
	}
}

func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	const op = "mailer.Send"

	log := m.log.With(
		slog.String("op", op),
		slog.String("to", to),
		slog.String("subject", subject),
	)

	if m.apiKey == "" {
		log.Info("sendgrid key not configured, logging mail instead", slog.String("body", body))
		return nil
	}

	message := mail.NewSingleEmail(
		m.from,
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	client := sendgrid.NewSendClient(m.apiKey)

	resp, err := client.SendWithContext(ctx, message)
	if err != nil {
		log.Error("failed to send mail", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode >= 400 {
		log.Error("sendgrid rejected mail", slog.Int("status", resp.StatusCode), slog.String("body", resp.Body))
		return fmt.Errorf("%s: sendgrid status %d", op, resp.StatusCode)
	}

	log.Info("mail sent", slog.Int("status", resp.StatusCode))

	return nil
}

func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	subject := "Welcome to the admin panel"
	body := fmt.Sprintf("Hello %s,\n\nYour administrator account is ready. You can sign in with this email address.\n", name)

	return m.Send(ctx, to, subject, body)
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, token string) error {
	subject := "Password reset"
	body := fmt.Sprintf("A password reset was requested for your account.\n\nReset code: %s\n\nThe code is valid for one hour and can be used once. If you did not request this, ignore this message.\n", token)

	return m.Send(ctx, to, subject, body)
}
