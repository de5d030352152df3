package mailer

import (
	"context"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/infras/otel"
	"hotelbooker/shared/constant"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"
)

type smtpMailer struct {
	dialer *gomail.Dialer
	from   sender
	otel   otel.Otel
}

func newSMTP(cfg *config.Config, from sender, otel otel.Otel) *smtpMailer {
	smtp := cfg.Email.SMTP

	return &smtpMailer{
		dialer: gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password),
		from:   from,
		otel:   otel,
	}
}

func (s *smtpMailer) Send(ctx context.Context, msg Message) (err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".smtp.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = msg.validate(); err != nil {
		return err
	}

	if s.dialer.Host == constant.Empty || s.from.Email == constant.Empty {
		return ErrNotConfigured
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.from.Email, s.from.Name)
	m.SetAddressHeader("To", msg.ToEmail, msg.ToName)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody(constant.ContentTypeHTML, msg.HTML)

	if err = s.dialer.DialAndSend(m); err != nil {
		log.Error().Err(err).Str("host", s.dialer.Host).Msg("smtp delivery failed")

		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}

	log.Info().Str("to", msg.ToEmail).Str("subject", msg.Subject).Msg("email sent via smtp")

	return nil
}
