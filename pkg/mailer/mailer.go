package mailer

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/wneessen/go-mail"
)

type Config struct {
	Enabled  bool          `envconfig:"SMTP_ENABLED" default:"false"`
	Host     string        `envconfig:"SMTP_HOST" default:"localhost"`
	Port     int           `envconfig:"SMTP_PORT" default:"587"`
	Username string        `envconfig:"SMTP_USERNAME"`
	Password string        `envconfig:"SMTP_PASSWORD" json:"-"`
	From     string        `envconfig:"SMTP_FROM" default:"noreply@libraryconnekto.me"`
	Timeout  time.Duration `envconfig:"SMTP_TIMEOUT" default:"15s"`
}

type Message struct {
	To      string
	Subject string
	Body    string
}

type SMTP struct {
	cfg Config
}

func NewSMTP(cfg Config) *SMTP {
	return &SMTP{cfg: cfg}
}

// Send delivers a plain-text message, upgrading to TLS when the server offers it.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m, err := newMsg(s.cfg.From, msg)
	if err != nil {
		return err
	}
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	c, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return errors.Wrap(err, "smtp client")
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return errors.Wrap(err, "smtp send")
	}
	return nil
}

// Compose renders msg as it would be sent on the wire.
func Compose(from string, msg Message) ([]byte, error) {
	m, err := newMsg(from, msg)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if _, err := m.WriteTo(&b); err != nil {
		return nil, errors.Wrap(err, "render message")
	}
	return b.Bytes(), nil
}

func newMsg(from string, msg Message) (*mail.Msg, error) {
	if msg.To == "" {
		return nil, errors.New("mailer: empty recipient")
	}
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, errors.Wrap(err, "sender")
	}
	if err := m.To(msg.To); err != nil {
		return nil, errors.Wrap(err, "recipient")
	}
	m.Subject(msg.Subject)
	m.SetDate()
	m.SetMessageID()
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

// Nop drops every message. Used when SMTP is disabled.
type Nop struct{}

func (Nop) Send(context.Context, Message) error { return nil }
