package mailer

//go:generate go run go.uber.org/mock/mockgen -source=./mailer.go -destination=./mocks/mailer_mock.go -package=mocks

import (
	"context"
	"errors"
	"hotelbooker/config"
	"hotelbooker/infras/otel"
	"hotelbooker/shared/constant"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	DriverLog   = "log"
	DriverBrevo = "brevo"
	DriverSMTP  = "smtp"
)

var (
	ErrNoRecipient    = errors.New("mail has no recipient")
	ErrNotConfigured  = errors.New("mail driver is not configured")
	ErrDeliveryFailed = errors.New("mail delivery failed")
)

type Message struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
}

func (m Message) validate() error {
	if !strings.Contains(m.ToEmail, "@") {
		return ErrNoRecipient
	}

	return nil
}

// Mailer delivers a rendered HTML message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type sender struct {
	Name  string
	Email string
}

func New(cfg *config.Config, otel otel.Otel) Mailer {
	from := sender{Name: cfg.Email.FromName, Email: cfg.Email.FromEmail}
	driver := strings.ToLower(cfg.Email.Driver)

	switch driver {
	case DriverBrevo:
		return newBrevo(cfg, from, otel)
	case DriverSMTP:
		return newSMTP(cfg, from, otel)
	case DriverLog, constant.Empty:
		return &logMailer{from: from}
	default:
		log.Warn().Str("driver", driver).Msg("unknown mail driver, falling back to log")

		return &logMailer{from: from}
	}
}

// logMailer only records what would have been sent.
type logMailer struct {
	from sender
}

func (l *logMailer) Send(_ context.Context, msg Message) error {
	if err := msg.validate(); err != nil {
		return err
	}

	log.Info().
		Str("from", l.from.Email).
		Str("to", msg.ToEmail).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Msg("email send skipped, log driver")

	return nil
}
