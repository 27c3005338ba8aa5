// Package notify sends task reminder and completion emails over SMTP.
//
// A Notifier follows a connect, send, disconnect lifecycle:
//
//	n := notify.New(cfg)
//	if err := n.Connect(ctx); err != nil { ... }
//	defer n.Disconnect()
//	n.SendReminder(ctx, "someone@example.com", "Write report", due)
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

const (
	DefaultHost    = "smtp.gmail.com"
	DefaultPort    = 587
	DefaultFrom    = "taskmanager@example.com"
	DefaultTimeout = 5 * time.Second
)

// HeaderNotificationID carries the id returned in a Receipt.
const HeaderNotificationID mail.Header = "X-Task-Notification-ID"

var (
	// ErrNotConnected is returned when sending before Connect.
	ErrNotConnected = errors.New("not connected to SMTP server")

	// ErrConnect is returned when the SMTP connection cannot be established.
	ErrConnect = errors.New("SMTP connection failed")

	// ErrSend is returned when the server rejects a message.
	ErrSend = errors.New("sending email failed")
)

// Config describes the SMTP server and sender identity.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.From == "" {
		c.From = DefaultFrom
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Sender is an SMTP connection. *mail.Client implements it.
type Sender interface {
	DialWithContext(ctx context.Context) error
	Send(messages ...*mail.Msg) error
	Close() error
}

// Receipt describes a delivered message.
type Receipt struct {
	ID      string
	To      string
	Subject string
	SentAt  time.Time
}

// Notifier sends task emails.
type Notifier struct {
	cfg       Config
	newSender func(Config) (Sender, error)
	sender    Sender
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithSender makes Connect use sender instead of dialing a real server.
func WithSender(sender Sender) Option {
	return func(n *Notifier) {
		n.newSender = func(Config) (Sender, error) {
			return sender, nil
		}
	}
}

// WithLogger sets the logger for delivery diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Notifier) {
		n.logger = logger
	}
}

// WithClock sets the clock used for receipts.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		n.now = now
	}
}

// New returns a disconnected notifier. Zero config fields take defaults.
func New(cfg Config, opts ...Option) *Notifier {
	n := &Notifier{
		cfg:       cfg.withDefaults(),
		newSender: newClient,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func newClient(cfg Config) (Sender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.Timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Connect dials the SMTP server, upgrading with STARTTLS and authenticating.
// Connecting twice is a no-op.
func (n *Notifier) Connect(ctx context.Context) error {
	if n.sender != nil {
		return nil
	}

	sender, err := n.newSender(n.cfg)
	if err != nil {
		return fmt.Errorf("%w: %s:%d: %w", ErrConnect, n.cfg.Host, n.cfg.Port, err)
	}
	if err := sender.DialWithContext(ctx); err != nil {
		if closeErr := sender.Close(); closeErr != nil {
			n.logger.Debug("close after failed dial", "error", closeErr)
		}
		return fmt.Errorf("%w: %s:%d: %w", ErrConnect, n.cfg.Host, n.cfg.Port, err)
	}

	n.sender = sender
	n.logger.Debug("connected to SMTP server", "host", n.cfg.Host, "port", n.cfg.Port)
	return nil
}

// Connected reports whether Connect has succeeded and Disconnect has not
// been called since.
func (n *Notifier) Connected() bool {
	return n.sender != nil
}

// Disconnect closes the connection. It is safe to call when not connected.
func (n *Notifier) Disconnect() {
	if n.sender == nil {
		return
	}
	if err := n.sender.Close(); err != nil {
		n.logger.Debug("close SMTP connection", "error", err)
	}
	n.sender = nil
}

// SendEmail sends a plain-text message.
func (n *Notifier) SendEmail(ctx context.Context, to, subject, body string) (Receipt, error) {
	if err := ValidateAddress(to); err != nil {
		return Receipt{}, err
	}
	if n.sender == nil {
		return Receipt{}, ErrNotConnected
	}
	if err := ctx.Err(); err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{
		ID:      uuid.NewString(),
		To:      to,
		Subject: subject,
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return Receipt{}, fmt.Errorf("%w: from %q: %w", ErrInvalidAddress, n.cfg.From, err)
	}
	if err := msg.To(to); err != nil {
		return Receipt{}, fmt.Errorf("%w: %q: %w", ErrInvalidAddress, to, err)
	}
	msg.Subject(subject)
	msg.SetGenHeader(HeaderNotificationID, receipt.ID)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := n.sender.Send(msg); err != nil {
		return Receipt{}, fmt.Errorf("%w: %w", ErrSend, err)
	}

	receipt.SentAt = n.now()
	n.logger.Debug("sent email", "id", receipt.ID, "to", to, "subject", subject)
	return receipt, nil
}

// SendReminder sends a reminder for a task. A zero due time omits the due
// date line.
func (n *Notifier) SendReminder(ctx context.Context, to, title string, due time.Time) (Receipt, error) {
	if err := ValidateAddress(to); err != nil {
		return Receipt{}, err
	}
	return n.SendEmail(ctx, to, ReminderSubject(title), ReminderBody(title, due))
}

// SendCompletion congratulates the recipient on finishing a task.
func (n *Notifier) SendCompletion(ctx context.Context, to, title string) (Receipt, error) {
	if err := ValidateAddress(to); err != nil {
		return Receipt{}, err
	}
	return n.SendEmail(ctx, to, CompletionSubject, CompletionBody(title))
}
