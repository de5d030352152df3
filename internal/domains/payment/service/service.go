package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/infras/cashfree"
	"hotelbooker/infras/otel"
	bookingService "hotelbooker/internal/domains/booking/service"
	"hotelbooker/internal/domains/payment/model/dto"
	"hotelbooker/shared"
	"hotelbooker/shared/cache"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/failure"
	"hotelbooker/shared/timezone"
	"net/http"

	"github.com/rs/zerolog/log"
)

const cacheWebhook = "webhook"

type Payment interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (dto.OrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (dto.OrderResponse, error)
	HandleWebhook(ctx context.Context, rawBody []byte, headers http.Header) (dto.WebhookResponse, error)
}

type serviceImpl struct {
	provider cashfree.Cashfree
	booking  bookingService.Booking
	cache    cache.RedisCache
	cfg      *config.Config
	otel     otel.Otel
}

func New(provider cashfree.Cashfree, booking bookingService.Booking, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		provider: provider,
		booking:  booking,
		cache:    cache,
		cfg:      cfg,
		otel:     otel,
	}
}

// CreateOrder opens a provider order for the checkout client. An order whose
// id is a pending booking number is linked to that booking when it charges
// the booking total.
func (s *serviceImpl) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.CreateOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	order, err := s.provider.CreateOrder(ctx, req.ToOrderRequest())
	if err != nil {
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("failed to create payment order")

		return res, fmt.Errorf("failed to create payment order: %w", err)
	}

	if err = s.booking.LinkOrder(ctx, order.OrderID, order.OrderAmount, order.OrderCurrency); err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromOrder(order)

	return res, nil
}

func (s *serviceImpl) GetOrder(ctx context.Context, orderID string) (res dto.OrderResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.GetOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	order, err := s.provider.GetOrder(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", orderID).Msg("failed to get payment order")

		return res, fmt.Errorf("failed to get payment order: %w", err)
	}

	res.FromOrder(order)

	return res, nil
}

// HandleWebhook applies a signed payment notification. Each order and status
// pair is processed once; the claim is released when processing fails so the
// provider's retry can succeed.
func (s *serviceImpl) HandleWebhook(ctx context.Context, rawBody []byte, headers http.Header) (res dto.WebhookResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.HandleWebhook")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.provider.VerifyWebhookSignature(rawBody, headers) {
		log.Warn().Msg("webhook rejected, invalid signature")

		return res, failure.InvalidWebhookSignature // nolint:wrapcheck
	}

	var payload dto.WebhookPayload
	if err = json.Unmarshal(rawBody, &payload); err != nil {
		return res, failure.BadRequest(fmt.Errorf("failed to decode webhook payload: %w", err)) // nolint:wrapcheck
	}

	orderID := payload.Order()
	if orderID == constant.Empty {
		return res, failure.BadRequestFromString("webhook payload has no order id") // nolint:wrapcheck
	}

	key := shared.BuildCacheKey(cacheWebhook, orderID, payload.Status())

	claimed, err := s.cache.SetIfAbsent(ctx, key, timezone.Format(timezone.Now(), constant.DateFormat), s.cfg.Booking.WebhookDedupTTLSeconds)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("webhook dedup unavailable, relying on conditional update")

		claimed = true
	}

	if !claimed {
		log.Info().Str("order_id", orderID).Str("status", payload.Status()).Msg("duplicate webhook acknowledged")

		return dto.WebhookResponse{Status: dto.WebhookDuplicate}, nil
	}

	outcome, err := s.booking.ApplyPaymentOutcome(ctx, orderID, payload.Status(), payload.TransactionID())
	if err != nil {
		if delErr := s.cache.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			log.Error().Err(delErr).Str("key", key).Msg("failed to release webhook claim")
		}

		return res, err //nolint:wrapcheck
	}

	return dto.WebhookResponse{Status: dto.WebhookProcessed, Outcome: &outcome}, nil
}
