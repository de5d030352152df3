package cashfree_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooker/config"
	"hotelbooker/infras/cashfree"
	"hotelbooker/infras/otel/mocks"
	"hotelbooker/shared/constant"
)

func newClient(baseURL string) cashfree.Cashfree {
	cfg := &config.Config{}
	cfg.Payment.Cashfree.AppID = "app-id"
	cfg.Payment.Cashfree.SecretKey = "secret-key"
	cfg.Payment.Cashfree.BaseURL = baseURL
	cfg.Payment.Cashfree.APIVersion = "2023-08-01"
	cfg.Payment.Cashfree.Currency = "INR"
	cfg.Payment.Cashfree.WebhookSecret = "webhook-secret"
	cfg.Payment.Cashfree.ReturnURL = "https://book.example.com/return?order_id={order_id}"

	return cashfree.New(cfg, mocks.NewOtel())
}

func TestCreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "2023-08-01", r.Header.Get("x-api-version"))
		assert.Equal(t, "app-id", r.Header.Get("x-client-id"))
		assert.Equal(t, "secret-key", r.Header.Get("x-client-secret"))

		var body cashfree.OrderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "INR", body.OrderCurrency)
		assert.Equal(t, 5000.0, body.OrderAmount)
		if assert.NotNil(t, body.OrderMeta) {
			assert.Equal(t, "https://book.example.com/return?order_id={order_id}", body.OrderMeta.ReturnURL)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_id":"order_1","order_status":"ACTIVE","payment_session_id":"session_1"}`))
	}))
	defer server.Close()

	order, err := newClient(server.URL).CreateOrder(context.Background(), cashfree.OrderRequest{
		OrderID:     "order_1",
		OrderAmount: 5000,
		CustomerDetails: cashfree.CustomerDetails{
			CustomerID:    "guest_1",
			CustomerPhone: "9999999999",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "session_1", order.PaymentSessionID)
	assert.Equal(t, cashfree.OrderStatusActive, order.OrderStatus)
}

func TestProviderErrorCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"order_amount : invalid value provided","code":"order_amount_invalid","type":"invalid_request_error"}`))
	}))
	defer server.Close()

	_, err := newClient(server.URL).GetOrder(context.Background(), "order_1")

	var providerErr *cashfree.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusBadRequest, providerErr.Status)
	assert.Equal(t, "order_amount_invalid", providerErr.Code)
	assert.Equal(t, "order_amount : invalid value provided", providerErr.Message)
}

func TestProviderErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newClient(server.URL).GetPayments(context.Background(), "order_1")

	var providerErr *cashfree.ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, http.StatusText(http.StatusBadGateway), providerErr.Message)
}

func TestRefund(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/order_1/refunds", r.URL.Path)

		var body cashfree.RefundRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "refund_1", body.RefundID)

		_, _ = w.Write([]byte(`{"refund_id":"refund_1","order_id":"order_1","refund_amount":5000,"refund_status":"PENDING"}`))
	}))
	defer server.Close()

	refund, err := newClient(server.URL).Refund(context.Background(), "order_1", cashfree.RefundRequest{RefundAmount: 5000, RefundID: "refund_1"})

	require.NoError(t, err)
	assert.Equal(t, "PENDING", refund.RefundStatus)
}

func TestMissingCredentials(t *testing.T) {
	cfg := &config.Config{}
	cfg.Payment.Cashfree.BaseURL = "http://127.0.0.1:1"

	_, err := cashfree.New(cfg, mocks.NewOtel()).GetOrder(context.Background(), "order_1")

	assert.ErrorIs(t, err, cashfree.ErrMissingCredentials)
}

func TestVerifyWebhookSignature(t *testing.T) {
	client := newClient("http://unused")
	body := []byte(`{"data":{"order":{"order_id":"order_1"}}}`)

	headers := http.Header{}
	headers.Set(constant.RequestHeaderWebhookTimestamp, "1700000000")
	headers.Set(constant.RequestHeaderWebhookSignature, cashfree.Sign("webhook-secret", "1700000000", body))

	assert.True(t, client.VerifyWebhookSignature(body, headers))

	tampered := append([]byte{}, body...)
	tampered[len(tampered)-2] = 'X'
	assert.False(t, client.VerifyWebhookSignature(tampered, headers))

	headers.Set(constant.RequestHeaderWebhookSignature, cashfree.Sign("other-secret", "1700000000", body))
	assert.False(t, client.VerifyWebhookSignature(body, headers))

	assert.False(t, client.VerifyWebhookSignature(body, http.Header{}))
}

func TestVerifySignatureWithoutSecret(t *testing.T) {
	body := []byte(`{}`)

	assert.False(t, cashfree.VerifySignature("", "1", cashfree.Sign("", "1", body), body))
}

func TestPaymentTransactionID(t *testing.T) {
	var payments []cashfree.Payment
	require.NoError(t, json.Unmarshal([]byte(`[{"cf_payment_id":5114911361,"payment_status":"SUCCESS"},{"cf_payment_id":"abc"}]`), &payments))

	assert.Equal(t, "5114911361", payments[0].TransactionID())
	assert.Equal(t, "abc", payments[1].TransactionID())
	assert.Equal(t, "", cashfree.Payment{}.TransactionID())
}
