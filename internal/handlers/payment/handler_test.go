package payment_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "hotelbooker/infras/otel/mocks"
	"hotelbooker/internal/domains/payment/mocks"
	"hotelbooker/internal/domains/payment/model/dto"
	"hotelbooker/internal/handlers/payment"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/failure"
)

func newRouter(t *testing.T) (*chi.Mux, *mocks.MockPayment) {
	t.Helper()

	svc := mocks.NewMockPayment(gomock.NewController(t))
	handler := payment.New(svc, otelMocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/api", handler.Router)

	return router, svc
}

func TestWebhook_PassesRawBodyAndHeaders(t *testing.T) {
	router, svc := newRouter(t)

	raw := []byte(`{"type":"PAYMENT_SUCCESS_WEBHOOK","data":{"order":{"order_id":"BN-2026-042"}}}`)

	svc.EXPECT().
		HandleWebhook(gomock.Any(), raw, gomock.Any()).
		DoAndReturn(func(_ any, _ []byte, headers http.Header) (dto.WebhookResponse, error) {
			assert.Equal(t, "sig", headers.Get("x-webhook-signature"))
			assert.Equal(t, "1700000000", headers.Get("x-webhook-timestamp"))

			return dto.WebhookResponse{Status: "processed"}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/cashfree", bytes.NewReader(raw))
	req.Header.Set("x-webhook-signature", "sig")
	req.Header.Set("x-webhook-timestamp", "1700000000")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := map[string]map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "processed", body["data"]["status"])
}

func TestWebhook_RejectsOversizedBody(t *testing.T) {
	router, _ := newRouter(t)

	raw := strings.Repeat("a", constant.RequestMaxWebhookBytes+1)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/webhooks/cashfree", strings.NewReader(raw)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "webhook body too large")
}

func TestWebhook_ServiceFailureCode(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		HandleWebhook(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(dto.WebhookResponse{}, failure.Unauthorized("invalid webhook signature"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/webhooks/cashfree", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid webhook signature")
}

func TestGetOrder_UsesPathParam(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().
		GetOrder(gomock.Any(), "BN-2026-042").
		Return(dto.OrderResponse{OrderID: "BN-2026-042", OrderStatus: "ACTIVE"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cashfree/order/BN-2026-042", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "BN-2026-042")
}

func TestCreateOrder_InvalidBody(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/cashfree/create-order", strings.NewReader(`{`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
