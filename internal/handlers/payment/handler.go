package payment

import (
	"errors"
	"hotelbooker/infras/otel"
	"hotelbooker/internal/domains/payment/model/dto"
	"hotelbooker/internal/domains/payment/service"
	"hotelbooker/shared/constant"
	"hotelbooker/shared/failure"
	"hotelbooker/shared/validator"
	"hotelbooker/transport/http/response"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/cashfree", func(routerGroup chi.Router) {
		routerGroup.Post("/create-order", handler.CreateOrder)
		routerGroup.Get("/order/{orderId}", handler.GetOrder)
	})
	router.Post("/webhooks/cashfree", handler.Webhook)
}

// CreateOrder opens a gateway order on behalf of the checkout client.
// @Summary Create a Cashfree order
// @Tags Payment
// @Accept json
// @Produce json
// @Param request body dto.CreateOrderRequest true "Create Order Request"
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/cashfree/create-order [post]
func (handler *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateOrder")
	defer scope.End()

	req := dto.CreateOrderRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	order, err := handler.service.CreateOrder(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create payment order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, order)
}

// GetOrder fetches the current order state from the gateway.
// @Summary Get a Cashfree order
// @Tags Payment
// @Produce json
// @Param orderId path string true "Order ID"
// @Success 200 {object} response.Data[dto.OrderResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/cashfree/order/{orderId} [get]
func (handler *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOrder")
	defer scope.End()

	order, err := handler.service.GetOrder(ctx, chi.URLParam(r, constant.RequestParamOrderID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get payment order")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, order)
}

// Webhook receives asynchronous payment notifications.
// @Summary Cashfree payment webhook
// @Description The signature is computed over the raw body, so the body is read before any decoding.
// @Tags Payment
// @Accept json
// @Produce json
// @Param x-webhook-signature header string true "Webhook signature"
// @Param x-webhook-timestamp header string true "Webhook timestamp"
// @Success 200 {object} response.Data[dto.WebhookResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/webhooks/cashfree [post]
func (handler *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Webhook")
	defer scope.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constant.RequestMaxWebhookBytes))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read webhook body")

		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WithError(w, failure.BadRequestFromString("webhook body too large"))

			return
		}

		response.WithError(w, failure.BadRequest(err))

		return
	}

	res, err := handler.service.HandleWebhook(ctx, body, r.Header)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to handle payment webhook")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Webhook " + res.Status)

	response.WithJSON(w, http.StatusOK, res)
}
