package cashfree

//go:generate go run go.uber.org/mock/mockgen -source=./cashfree.go -destination=./mocks/cashfree_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/infras/otel"
	"hotelbooker/shared/constant"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	headerAPIVersion   = "x-api-version"
	headerClientID     = "x-client-id"
	headerClientSecret = "x-client-secret"

	maxErrorBody = 64 << 10
)

var ErrMissingCredentials = errors.New("cashfree credentials are not configured")

// Cashfree is the server side client of the payment provider REST API.
type Cashfree interface {
	CreateOrder(ctx context.Context, req OrderRequest) (Order, error)
	GetOrder(ctx context.Context, orderID string) (Order, error)
	GetPayments(ctx context.Context, orderID string) ([]Payment, error)
	Refund(ctx context.Context, orderID string, req RefundRequest) (Refund, error)
	VerifyWebhookSignature(rawBody []byte, headers http.Header) bool
}

type cashfreeImpl struct {
	cfg    *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Cashfree {
	timeout := time.Duration(cfg.Payment.Cashfree.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &cashfreeImpl{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		otel:   otel,
	}
}

func (c *cashfreeImpl) CreateOrder(ctx context.Context, req OrderRequest) (res Order, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.OrderCurrency == constant.Empty {
		req.OrderCurrency = c.cfg.Payment.Cashfree.Currency
	}

	if req.OrderMeta == nil && (c.cfg.Payment.Cashfree.ReturnURL != constant.Empty || c.cfg.Payment.Cashfree.NotifyURL != constant.Empty) {
		req.OrderMeta = &OrderMeta{
			ReturnURL: c.cfg.Payment.Cashfree.ReturnURL,
			NotifyURL: c.cfg.Payment.Cashfree.NotifyURL,
		}
	}

	scope.SetAttribute("order_id", req.OrderID)

	err = c.do(ctx, http.MethodPost, "/orders", req, &res)

	return res, err
}

func (c *cashfreeImpl) GetOrder(ctx context.Context, orderID string) (res Order, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".GetOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("order_id", orderID)

	err = c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, &res)

	return res, err
}

func (c *cashfreeImpl) GetPayments(ctx context.Context, orderID string) (res []Payment, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".GetPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID)+"/payments", nil, &res)

	return res, err
}

func (c *cashfreeImpl) Refund(ctx context.Context, orderID string, req RefundRequest) (res Refund, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelPaymentScopeName, constant.OtelPaymentScopeName+".Refund")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"order_id":  orderID,
		"refund_id": req.RefundID,
	})

	err = c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(orderID)+"/refunds", req, &res)

	return res, err
}

func (c *cashfreeImpl) VerifyWebhookSignature(rawBody []byte, headers http.Header) bool {
	return VerifySignature(
		c.cfg.Payment.Cashfree.WebhookSecret,
		headers.Get(constant.RequestHeaderWebhookTimestamp),
		headers.Get(constant.RequestHeaderWebhookSignature),
		rawBody,
	)
}

func (c *cashfreeImpl) do(ctx context.Context, method, path string, body, out any) error {
	settings := c.cfg.Payment.Cashfree
	if settings.AppID == constant.Empty || settings.SecretKey == constant.Empty {
		return ErrMissingCredentials
	}

	var reader io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode cashfree request: %w", err)
		}

		reader = bytes.NewReader(payload)
	}

	endpoint := strings.TrimSuffix(settings.BaseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build cashfree request: %w", err)
	}

	req.Header.Set("Accept", constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(headerAPIVersion, settings.APIVersion)
	req.Header.Set(headerClientID, settings.AppID)
	req.Header.Set(headerClientSecret, settings.SecretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("cashfree request failed")

		return fmt.Errorf("cashfree request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		providerErr := &ProviderError{Status: resp.StatusCode}

		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if jsonErr := json.Unmarshal(raw, providerErr); jsonErr != nil || providerErr.Message == constant.Empty {
			providerErr.Message = http.StatusText(resp.StatusCode)
		}

		log.Error().Int("status", resp.StatusCode).Str("code", providerErr.Code).Str("message", providerErr.Message).
			Str("path", path).Msg("cashfree returned an error")

		return providerErr
	}

	if out == nil {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode cashfree response: %w", err)
	}

	return nil
}
