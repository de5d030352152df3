package checkout_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelbooker/client/checkout"
)

type launcherFunc func(ctx context.Context, session checkout.Session) (checkout.Result, error)

func (f launcherFunc) Launch(ctx context.Context, session checkout.Session) (checkout.Result, error) {
	return f(ctx, session)
}

func noopLoader(context.Context) error { return nil }

func writeData(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func newAPI(t *testing.T, status *atomic.Value) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/cashfree/create-order", func(w http.ResponseWriter, r *http.Request) {
		var req checkout.PaymentRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}

		writeData(w, http.StatusOK, map[string]any{
			"order_id":           req.OrderID,
			"order_status":       "ACTIVE",
			"order_amount":       req.Amount,
			"payment_session_id": "session_" + req.OrderID,
		})
	})
	mux.HandleFunc("/api/cashfree/order/", func(w http.ResponseWriter, r *http.Request) {
		writeData(w, http.StatusOK, map[string]any{
			"order_id":     r.URL.Path[len("/api/cashfree/order/"):],
			"order_status": status.Load(),
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func paymentRequest() checkout.PaymentRequest {
	return checkout.PaymentRequest{
		OrderID:  "BN-2025-001",
		Amount:   5000,
		Currency: "INR",
		Customer: checkout.Customer{ID: "guest_1", Phone: "9876543210"},
	}
}

func TestPay_Callbacks(t *testing.T) {
	tests := []struct {
		name    string
		result  checkout.Result
		wantErr error
	}{
		{name: "success", result: checkout.ResultSuccess},
		{name: "failure", result: checkout.ResultFailure, wantErr: checkout.ErrPaymentFailed},
		{name: "cancel", result: checkout.ResultCancel, wantErr: checkout.ErrPaymentCancelled},
	}

	status := &atomic.Value{}
	status.Store("ACTIVE")
	server := newAPI(t, status)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var launched checkout.Session

			client := checkout.New(server.URL,
				checkout.WithLoader(noopLoader),
				checkout.WithLauncher(launcherFunc(func(_ context.Context, session checkout.Session) (checkout.Result, error) {
					launched = session

					return tt.result, nil
				})),
			)

			outcome, err := client.Pay(context.Background(), paymentRequest())

			assert.Equal(t, "session_BN-2025-001", launched.PaymentSessionID)
			assert.Equal(t, "BN-2025-001", outcome.OrderID)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, outcome.Success)

				return
			}

			require.NoError(t, err)
			assert.True(t, outcome.Success)
		})
	}
}

func TestPay_TimesOut(t *testing.T) {
	status := &atomic.Value{}
	status.Store("ACTIVE")
	server := newAPI(t, status)

	client := checkout.New(server.URL,
		checkout.WithLoader(noopLoader),
		checkout.WithTimeout(20*time.Millisecond),
		checkout.WithLauncher(launcherFunc(func(ctx context.Context, _ checkout.Session) (checkout.Result, error) {
			<-ctx.Done()

			return "", ctx.Err()
		})),
	)

	outcome, err := client.Pay(context.Background(), paymentRequest())

	require.ErrorIs(t, err, checkout.ErrCheckoutTimeout)
	assert.False(t, outcome.Success)
}

func TestPay_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"order_amount must be greater than 0"}`))
	}))
	defer server.Close()

	client := checkout.New(server.URL,
		checkout.WithLoader(noopLoader),
		checkout.WithLauncher(launcherFunc(func(context.Context, checkout.Session) (checkout.Result, error) {
			t.Fatal("launcher must not run when the order was not created")

			return "", nil
		})),
	)

	_, err := client.Pay(context.Background(), paymentRequest())

	var apiErr *checkout.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "order_amount must be greater than 0", apiErr.Message)
}

func TestPay_PlainTextGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html><body>502 Bad Gateway</body></html>"))
	}))
	defer server.Close()

	client := checkout.New(server.URL, checkout.WithLoader(noopLoader))

	_, err := client.Pay(context.Background(), paymentRequest())

	var apiErr *checkout.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
}

func TestReportPayment_Unconfirmed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"payment not confirmed by provider"}`))
	}))
	defer server.Close()

	client := checkout.New(server.URL, checkout.WithLoader(noopLoader))

	err := client.ReportPayment(context.Background(), "BN-2025-001", checkout.Outcome{Success: true}, "")

	var apiErr *checkout.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "payment not confirmed by provider", apiErr.Message)
}

func TestLoadSDK_RetriesAfterFailure(t *testing.T) {
	calls := 0

	client := checkout.New("http://unused", checkout.WithLoader(func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("network down")
		}

		return nil
	}))

	err := client.LoadSDK(context.Background())
	require.ErrorIs(t, err, checkout.ErrSDKUnavailable)

	require.NoError(t, client.LoadSDK(context.Background()))
	require.NoError(t, client.LoadSDK(context.Background()))

	assert.Equal(t, 2, calls)
}

func TestCheckSDK(t *testing.T) {
	ok := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
	}))
	defer ok.Close()

	missing := httptest.NewServer(http.NotFoundHandler())
	defer missing.Close()

	require.NoError(t, checkout.CheckSDK(ok.Client(), ok.URL)(context.Background()))
	require.Error(t, checkout.CheckSDK(missing.Client(), missing.URL)(context.Background()))
}

func TestPollingLauncher(t *testing.T) {
	tests := []struct {
		status string
		want   checkout.Result
	}{
		{status: "PAID", want: checkout.ResultSuccess},
		{status: "EXPIRED", want: checkout.ResultFailure},
		{status: "TERMINATED", want: checkout.ResultFailure},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			status := &atomic.Value{}
			status.Store(tt.status)
			server := newAPI(t, status)

			out := &bytes.Buffer{}
			client := checkout.New(server.URL, checkout.WithLoader(noopLoader))
			launcher := checkout.NewPollingLauncher(client, out).WithInterval(5 * time.Millisecond)

			result, err := launcher.Launch(context.Background(), checkout.Session{OrderID: "BN-2025-001", PaymentSessionID: "session_x"})

			require.NoError(t, err)
			assert.Equal(t, tt.want, result)
			assert.Contains(t, out.String(), "BN-2025-001")
		})
	}
}

func TestPollingLauncher_StopsWithContext(t *testing.T) {
	status := &atomic.Value{}
	status.Store("ACTIVE")
	server := newAPI(t, status)

	client := checkout.New(server.URL, checkout.WithLoader(noopLoader))
	launcher := checkout.NewPollingLauncher(client, &bytes.Buffer{}).WithInterval(5 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := launcher.Launch(ctx, checkout.Session{OrderID: "BN-2025-001"})

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReportPayment(t *testing.T) {
	var got map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/bookings/BN-2025-001/payment", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeData(w, http.StatusOK, map[string]any{"bookingId": "BN-2025-001"})
	}))
	defer server.Close()

	client := checkout.New(server.URL, checkout.WithLoader(noopLoader))

	err := client.ReportPayment(context.Background(), "BN-2025-001", checkout.Outcome{Success: true, OrderID: "BN-2025-001"}, "tx-1")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"paymentStatus": "completed", "transactionId": "tx-1"}, got)
}
