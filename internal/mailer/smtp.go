package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"uclaverify/backend/internal/verification"

	"github.com/wneessen/go-mail"
)

const (
	DefaultHost    = "smtp.gmail.com"
	DefaultPort    = 465
	DefaultTimeout = 15 * time.Second
)

// SMTPConfig names the relay. Credentials are supplied per send.
type SMTPConfig struct {
	Host    string
	Port    int
	Timeout time.Duration
}

// smtpClient is the part of *mail.Client a send needs.
type smtpClient interface {
	DialWithContext(ctx context.Context) error
	Send(messages ...*mail.Msg) error
	Close() error
}

type clientFactory func(host string, opts ...mail.Option) (smtpClient, error)

func newGoMailClient(host string, opts ...mail.Option) (smtpClient, error) {
	client, err := mail.NewClient(host, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// SMTPMailer opens one implicit-TLS session per send and always closes it.
type SMTPMailer struct {
	cfg       SMTPConfig
	newClient clientFactory
	logger    *slog.Logger
}

func NewSMTP(cfg SMTPConfig, logger *slog.Logger) *SMTPMailer {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SMTPMailer{
		cfg:       cfg,
		newClient: newGoMailClient,
		logger:    logger,
	}
}

// SendVerificationEmail sends the code to the default relay with the given
// sender login.
func SendVerificationEmail(ctx context.Context, recipient, code, senderAddress, senderSecret string) error {
	m := NewSMTP(SMTPConfig{}, nil)
	return m.SendVerificationEmail(ctx, recipient, code, Credentials{
		Address: senderAddress,
		Secret:  senderSecret,
	})
}

func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, recipient, code string, creds Credentials) error {
	if !verification.IsValidInstitutionalEmail(recipient) {
		return ErrInvalidRecipient
	}

	msg, err := composeMessage(recipient, code, creds.Address)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeliveryRejected, err)
	}

	client, err := m.newClient(m.cfg.Host, m.clientOptions(creds)...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer func() {
		if err := client.Close(); err != nil {
			m.logger.Warn("failed to close smtp session", slog.String("host", m.cfg.Host), slog.Any("err", err))
		}
	}()

	if err := client.DialWithContext(ctx); err != nil {
		return classifyDial(err)
	}
	if err := client.Send(msg); err != nil {
		return classifySend(err)
	}

	m.logger.Info("verification code sent",
		slog.String("email", recipient),
		slog.String("dispatch_id", DispatchID(ctx)),
	)
	return nil
}

func (m *SMTPMailer) clientOptions(creds Credentials) []mail.Option {
	return []mail.Option{
		mail.WithPort(m.cfg.Port),
		mail.WithSSL(),
		mail.WithTimeout(m.cfg.Timeout),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(creds.Address),
		mail.WithPassword(creds.Secret),
	}
}

func composeMessage(recipient, code, from string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, err
	}
	if err := msg.To(recipient); err != nil {
		return nil, err
	}
	msg.Subject(Subject)
	msg.SetBodyString(mail.TypeTextPlain, Body(code))
	return msg, nil
}
