package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/infras/otel"
	"hotelbooker/shared/constant"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type brevoContact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoPayload struct {
	Sender      brevoContact   `json:"sender"`
	To          []brevoContact `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoMailer struct {
	apiKey   string
	endpoint string
	from     sender
	client   *http.Client
	otel     otel.Otel
}

func newBrevo(cfg *config.Config, from sender, otel otel.Otel) *brevoMailer {
	return &brevoMailer{
		apiKey:   cfg.Email.BrevoKey,
		endpoint: cfg.Email.BrevoURL,
		from:     from,
		client:   &http.Client{Timeout: timeout(cfg)},
		otel:     otel,
	}
}

func (b *brevoMailer) Send(ctx context.Context, msg Message) (err error) {
	ctx, scope := b.otel.NewScope(ctx, constant.OtelMailerScopeName, constant.OtelMailerScopeName+".brevo.Send")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = msg.validate(); err != nil {
		return err
	}

	if b.apiKey == constant.Empty || b.from.Email == constant.Empty {
		return ErrNotConfigured
	}

	toName := msg.ToName
	if toName == constant.Empty {
		toName = msg.ToEmail[:strings.Index(msg.ToEmail, "@")]
	}

	body, err := json.Marshal(brevoPayload{
		Sender:      brevoContact{Name: b.from.Name, Email: b.from.Email},
		To:          []brevoContact{{Name: toName, Email: msg.ToEmail}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to encode brevo payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build brevo request: %w", err)
	}

	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("accept", constant.ContentTypeJSON)
	req.Header.Set("content-type", constant.ContentTypeJSON)

	resp, err := b.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("brevo request failed")

		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		log.Error().Int("status", resp.StatusCode).Str("body", string(detail)).Msg("brevo rejected email")

		return fmt.Errorf("%w: brevo status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	log.Info().Str("to", msg.ToEmail).Str("subject", msg.Subject).Msg("email sent via brevo")

	return nil
}

func timeout(cfg *config.Config) time.Duration {
	if cfg.Email.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}

	return time.Duration(cfg.Email.TimeoutSeconds) * time.Second
}
