package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooker/config"
	"hotelbooker/infras/mailer"
	"hotelbooker/infras/otel/mocks"
)

func brevoConfig(endpoint string) *config.Config {
	cfg := &config.Config{}
	cfg.Email.Driver = "brevo"
	cfg.Email.BrevoKey = "brevo-key"
	cfg.Email.BrevoURL = endpoint
	cfg.Email.FromEmail = "bookings@example.com"
	cfg.Email.FromName = "BOOK NEO"

	return cfg
}

func TestBrevoSend(t *testing.T) {
	var payload map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "brevo-key", r.Header.Get("api-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	m := mailer.New(brevoConfig(server.URL), mocks.NewOtel())

	err := m.Send(context.Background(), mailer.Message{
		ToEmail: "guest@example.com",
		Subject: "Booking Confirmed",
		HTML:    "<p>hi</p>",
	})

	require.NoError(t, err)
	assert.Equal(t, "Booking Confirmed", payload["subject"])
	assert.Equal(t, "<p>hi</p>", payload["htmlContent"])

	to, ok := payload["to"].([]any)
	require.True(t, ok)
	require.Len(t, to, 1)
	assert.Equal(t, "guest", to[0].(map[string]any)["name"])
}

func TestBrevoSendRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	err := mailer.New(brevoConfig(server.URL), mocks.NewOtel()).
		Send(context.Background(), mailer.Message{ToEmail: "guest@example.com"})

	assert.ErrorIs(t, err, mailer.ErrDeliveryFailed)
}

func TestBrevoWithoutKey(t *testing.T) {
	cfg := brevoConfig("http://127.0.0.1:1")
	cfg.Email.BrevoKey = ""

	err := mailer.New(cfg, mocks.NewOtel()).Send(context.Background(), mailer.Message{ToEmail: "guest@example.com"})

	assert.ErrorIs(t, err, mailer.ErrNotConfigured)
}

func TestSMTPWithoutHost(t *testing.T) {
	cfg := &config.Config{}
	cfg.Email.Driver = "smtp"
	cfg.Email.FromEmail = "bookings@example.com"

	err := mailer.New(cfg, mocks.NewOtel()).Send(context.Background(), mailer.Message{ToEmail: "guest@example.com"})

	assert.ErrorIs(t, err, mailer.ErrNotConfigured)
}

func TestLogDriver(t *testing.T) {
	m := mailer.New(&config.Config{}, mocks.NewOtel())

	assert.NoError(t, m.Send(context.Background(), mailer.Message{ToEmail: "guest@example.com"}))
	assert.ErrorIs(t, m.Send(context.Background(), mailer.Message{ToEmail: "9999999999"}), mailer.ErrNoRecipient)
}
