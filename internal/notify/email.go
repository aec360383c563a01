// Package notify delivers rendered budget alerts over SMTP.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/common"
)

// SMTPConfig holds the mail account used to send alerts.
type SMTPConfig struct {
	Host     string
	Username string
	Password string
	From     string
	Port     int
}

// Configured reports whether credentials are present. An unconfigured
// notifier skips delivery silently, mirroring a tracker run without
// alert email set up.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.From != "" && c.Password != ""
}

// EmailNotifier sends alert messages through an SMTP account.
type EmailNotifier struct {
	config SMTPConfig
}

// NewEmailNotifier creates a notifier from the given config.
func NewEmailNotifier(config SMTPConfig) *EmailNotifier {
	if config.Port == 0 {
		config.Port = 587
	}
	if config.Username == "" {
		config.Username = config.From
	}
	return &EmailNotifier{config: config}
}

// Send delivers one message. Missing credentials are a logged no-op,
// not an error; alert evaluation must not depend on mail setup.
func (n *EmailNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	if !n.config.Configured() {
		slog.Info("Email credentials not set; skipping notification",
			"recipient", recipient,
			"subject", subject)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(n.config.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipient); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(n.config.Host,
		mail.WithPort(n.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.config.Username),
		mail.WithPassword(n.config.Password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", common.ErrNotificationFailed, err)
	}

	slog.Info("Alert email sent", "recipient", recipient, "subject", subject)
	return nil
}
