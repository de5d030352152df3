// Package checkout drives the hosted Cashfree checkout from a Go program.
//
// A Client asks the booking API to open a provider order, hands the returned
// payment session to a Launcher and waits for the launcher to report the
// provider callback. The wait is always bounded by the caller's context and
// the client timeout.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultTimeout = 15 * time.Minute
	DefaultSDKURL  = "https://sdk.cashfree.com/js/v3/cashfree.js"

	createOrderPath = "/api/cashfree/create-order"
	getOrderPath    = "/api/cashfree/order/"

	maxResponseBody = 1 << 20
)

var (
	ErrCheckoutTimeout  = errors.New("checkout timed out")
	ErrPaymentFailed    = errors.New("payment failed")
	ErrPaymentCancelled = errors.New("payment cancelled")
	ErrSDKUnavailable   = errors.New("checkout sdk is unavailable")
)

// Result is the callback the hosted checkout reported.
type Result string

const (
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
	ResultCancel  Result = "cancel"
)

type Customer struct {
	ID    string `json:"customer_id"`
	Name  string `json:"customer_name,omitempty"`
	Email string `json:"customer_email,omitempty"`
	Phone string `json:"customer_phone"`
}

type PaymentRequest struct {
	OrderID  string   `json:"order_id"`
	Amount   float64  `json:"order_amount"`
	Currency string   `json:"order_currency,omitempty"`
	Customer Customer `json:"customer_details"`
	Note     string   `json:"order_note,omitempty"`
}

// Session is the provider order the hosted checkout is opened for.
type Session struct {
	OrderID          string  `json:"order_id"`
	OrderStatus      string  `json:"order_status"`
	OrderAmount      float64 `json:"order_amount"`
	OrderCurrency    string  `json:"order_currency"`
	PaymentSessionID string  `json:"payment_session_id"`
}

type Outcome struct {
	Success bool
	OrderID string
}

// Launcher presents the hosted checkout for a session and blocks until the
// provider reports a callback or ctx ends.
type Launcher interface {
	Launch(ctx context.Context, session Session) (Result, error)
}

// Loader prepares whatever the launcher needs before the first payment.
type Loader func(ctx context.Context) error

// APIError is a non-2xx answer from the booking API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("booking api responded %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	launcher   Launcher
	loader     Loader
	timeout    time.Duration
	interval   time.Duration

	mu     sync.Mutex
	loaded bool
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

func WithLauncher(launcher Launcher) Option {
	return func(c *Client) {
		c.launcher = launcher
	}
}

func WithLoader(loader Loader) Option {
	return func(c *Client) {
		c.loader = loader
	}
}

// WithPollInterval sets how often the default launcher polls the order.
func WithPollInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.interval = interval
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// New creates a client for the booking API at baseURL. Without options it
// checks the public SDK script and launches through a PollingLauncher that
// prints the hosted checkout reference to stdout.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		timeout:    DefaultTimeout,
		interval:   DefaultPollInterval,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		c.loader = CheckSDK(c.httpClient, DefaultSDKURL)
	}

	if c.launcher == nil {
		c.launcher = NewPollingLauncher(c, nil).WithInterval(c.interval)
	}

	return c
}

// LoadSDK runs the loader once. Later calls are no-ops after a successful
// load; a failed load is retried on the next call.
func (c *Client) LoadSDK(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return nil
	}

	if err := c.loader(ctx); err != nil {
		return errors.Join(ErrSDKUnavailable, err)
	}

	c.loaded = true

	return nil
}

// Pay opens a provider order for req and waits for the hosted checkout to
// finish. Failure and cancel callbacks are returned as ErrPaymentFailed and
// ErrPaymentCancelled; running out of time returns ErrCheckoutTimeout.
func (c *Client) Pay(ctx context.Context, req PaymentRequest) (Outcome, error) {
	if err := c.LoadSDK(ctx); err != nil {
		return Outcome{}, err
	}

	session, err := c.CreateOrder(ctx, req)
	if err != nil {
		return Outcome{}, err
	}

	if session.PaymentSessionID == "" {
		return Outcome{OrderID: session.OrderID}, fmt.Errorf("order %s has no payment session", session.OrderID)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := c.launcher.Launch(ctx, session)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return Outcome{OrderID: session.OrderID}, ErrCheckoutTimeout
		}

		return Outcome{OrderID: session.OrderID}, err
	}

	log.Debug().Str("order_id", session.OrderID).Str("result", string(result)).Msg("hosted checkout finished")

	switch result {
	case ResultSuccess:
		return Outcome{Success: true, OrderID: session.OrderID}, nil
	case ResultCancel:
		return Outcome{OrderID: session.OrderID}, ErrPaymentCancelled
	default:
		return Outcome{OrderID: session.OrderID}, ErrPaymentFailed
	}
}

func (c *Client) CreateOrder(ctx context.Context, req PaymentRequest) (Session, error) {
	var session Session

	err := c.do(ctx, http.MethodPost, createOrderPath, req, &session)

	return session, err
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (Session, error) {
	var session Session

	err := c.do(ctx, http.MethodGet, getOrderPath+url.PathEscape(orderID), nil, &session)

	return session, err
}

// ReportPayment tells the booking API how the checkout for bookingRef ended.
// The API only moves a pending booking, so repeating a report is harmless.
// A success report is checked against the provider order and answered with
// a 409 APIError while the provider has not confirmed the payment.
func (c *Client) ReportPayment(ctx context.Context, bookingRef string, outcome Outcome, transactionID string) error {
	status := "failed"
	if outcome.Success {
		status = "completed"
	}

	body := map[string]string{"paymentStatus": status}
	if transactionID != "" {
		body["transactionId"] = transactionID
	}

	return c.do(ctx, http.MethodPatch, "/api/bookings/"+url.PathEscape(bookingRef)+"/payment", body, nil)
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *string         `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call booking api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read booking api response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Error != nil {
			apiErr.Message = *env.Error
		}

		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode booking api response: %w", err)
	}

	if len(env.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode booking api payload: %w", err)
	}

	return nil
}

// CheckSDK returns a loader that checks the checkout script is reachable.
func CheckSDK(client *http.Client, sdkURL string) Loader {
	return func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, sdkURL, nil)
		if err != nil {
			return err
		}

		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("sdk check responded %d", resp.StatusCode)
		}

		return nil
	}
}
