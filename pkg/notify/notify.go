// Package notify emails report summaries over SMTP.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sgaunet/auto-merger/internal/logger"
	"github.com/sgaunet/auto-merger/internal/security"
	"github.com/sgaunet/bullets"
	"github.com/wneessen/go-mail"
)

// Environment variables holding optional SMTP credentials.
const (
	UsernameEnv = "SMTP_USERNAME"
	PasswordEnv = "SMTP_PASSWORD" //nolint:gosec // name of the variable, not a credential
)

const lineSeparator = "<br>"

var (
	errNothingToSend = errors.New("nothing to send")
	errNoSender      = errors.New("sender address is required")

	// ErrNothingToSend is returned when the body is empty.
	ErrNothingToSend = errNothingToSend
	// ErrNoSender is returned when no from address is configured.
	ErrNoSender = errNoSender
)

// Settings configures the SMTP relay.
type Settings struct {
	From     string
	Host     string
	Port     int
	Username string
	Password security.SecureToken
}

// WithEnvCredentials fills Username and Password from SMTP_USERNAME and SMTP_PASSWORD.
func (s Settings) WithEnvCredentials() Settings {
	if s.Username == "" {
		s.Username = os.Getenv(UsernameEnv)
	}
	if s.Password.IsEmpty() {
		s.Password, _ = security.TokenFromEnv(PasswordEnv)
	}
	return s
}

// DeliverFunc sends a built message.
type DeliverFunc func(ctx context.Context, msg *mail.Msg) error

// Sender emails HTML summaries.
type Sender struct {
	settings Settings
	deliver  DeliverFunc
	log      *bullets.Logger
}

// NewSender creates a sender delivering through the SMTP relay of settings.
func NewSender(settings Settings) *Sender {
	s := &Sender{settings: settings, log: logger.NoLogger()}
	s.deliver = s.dialAndSend
	return s
}

// NewSenderWithDeliver creates a sender with a custom delivery function.
func NewSenderWithDeliver(settings Settings, deliver DeliverFunc) *Sender {
	return &Sender{settings: settings, deliver: deliver, log: logger.NoLogger()}
}

// SetLogger sets the logger for the sender.
func (s *Sender) SetLogger(logger *bullets.Logger) {
	s.log = logger
}

// BuildMessage builds the HTML message. The body lines are joined with <br>.
func BuildMessage(from string, recipients []string, subject string, body []string) (*mail.Msg, error) {
	if from == "" {
		return nil, errNoSender
	}
	if len(body) == 0 {
		return nil, errNothingToSend
	}

	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(recipients...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, strings.Join(body, lineSeparator))
	return msg, nil
}

// Send emails body to recipients. It does nothing without recipients.
func (s *Sender) Send(ctx context.Context, recipients []string, subject string, body []string) error {
	if len(recipients) == 0 {
		return nil
	}
	if len(body) == 0 {
		s.log.Info("Nothing to send by email")
		return nil
	}

	msg, err := BuildMessage(s.settings.From, recipients, subject, body)
	if err != nil {
		return err
	}

	if err := s.deliver(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", security.SanitizeError(err))
	}
	s.log.Info(fmt.Sprintf("Email %q sent to %s", subject, strings.Join(recipients, ", ")))
	return nil
}

func (s *Sender) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(s.settings.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.settings.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.settings.Username),
			mail.WithPassword(s.settings.Password.Value()),
		)
	}

	client, err := mail.NewClient(s.settings.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to deliver message: %w", err)
	}
	return nil
}
