package booking

import (
	"hotelbooker/infras/otel"
	"hotelbooker/internal/domains/booking/model/dto"
	"hotelbooker/internal/domains/booking/service"
	"hotelbooker/shared"
	"hotelbooker/shared/constant"
	gDto "hotelbooker/shared/dto"
	"hotelbooker/shared/validator"
	"hotelbooker/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/{id}", handler.GetBooking)
		routerGroup.Patch("/{id}/payment", handler.UpdatePayment)
		routerGroup.Post("/{id}/checkout", handler.Checkout)
		routerGroup.Post("/{id}/cancel", handler.CancelBooking)
		routerGroup.Post("/{id}/send-confirmation", handler.SendConfirmation)
		routerGroup.Get("/{id}/qr", handler.GetQR)
		routerGroup.Post("/{id}/qr", handler.SendQR)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Create a booking for a guest. The total is nights times the room rate and payment starts pending.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings [post]
func (handler *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking " + booking.BookingID + " created")

	response.WithJSON(w, http.StatusCreated, booking)
}

// GetBookings lists bookings, newest first.
// @Summary Get all bookings
// @Description Hotel staff only see their own hotel regardless of the hotelId filter.
// @Tags Booking
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param hotelId query integer false "Filter by hotel"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	var hotelID int64

	if raw := r.URL.Query().Get(constant.RequestParamHotelID); raw != constant.Empty {
		id, err := shared.ParseID(raw)
		if err != nil {
			response.WithError(w, err)

			return
		}

		hotelID = id
	}

	bookings, err := handler.service.GetAll(ctx, queryParams, hotelID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, bookings)
}

// GetBooking retrieves a booking by its booking number.
// @Summary Get a booking
// @Description Anonymous callers must use the BN- booking number. Numeric ids answer 404.
// @Tags Booking
// @Produce json
// @Param id path string true "Booking number"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id} [get]
func (handler *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	booking, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// UpdatePayment records the payment outcome reported by the checkout client.
// @Summary Update booking payment status
// @Description Only a pending payment can change. A completed report needs the provider order to be paid. Repeating a report for a settled booking returns it unchanged.
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Booking id or booking number"
// @Param request body dto.UpdatePaymentRequest true "Update Payment Request"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id}/payment [patch]
func (handler *Handler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePayment")
	defer scope.End()

	req := dto.UpdatePaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	booking, err := handler.service.UpdatePayment(ctx, req, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update booking payment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, booking)
}

// Checkout opens a gateway order for a pending booking.
// @Summary Start checkout
// @Tags Booking
// @Produce json
// @Param id path string true "Booking id or booking number"
// @Success 200 {object} response.Data[dto.CheckoutResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id}/checkout [post]
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	checkout, err := handler.service.Checkout(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to start checkout")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout order " + checkout.OrderID + " opened")

	response.WithJSON(w, http.StatusOK, checkout)
}

// CancelBooking cancels a booking, refunding a completed payment first.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Booking id or booking number"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	booking, err := handler.service.Cancel(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Booking " + booking.BookingID + " cancelled by user " + user)

	response.WithJSON(w, http.StatusOK, booking)
}

// SendConfirmation re-sends the confirmation email.
// @Summary Resend booking confirmation
// @Tags Booking
// @Produce json
// @Param id path string true "Booking id or booking number"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id}/send-confirmation [post]
// @Security BearerAuth
func (handler *Handler) SendConfirmation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendConfirmation")
	defer scope.End()

	if err := handler.service.ResendConfirmation(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send booking confirmation")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Confirmation email sent")
}

// GetQR returns the check-in QR payload.
// @Summary Get booking QR payload
// @Tags Booking
// @Produce json
// @Param id path string true "Booking id or booking number"
// @Success 200 {object} response.Data[dto.QRPayload]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id}/qr [get]
func (handler *Handler) GetQR(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQR")
	defer scope.End()

	payload, err := handler.service.QR(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to build booking QR payload")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, payload)
}

// SendQR emails the check-in QR payload to the guest.
// @Summary Email booking QR code
// @Tags Booking
// @Produce json
// @Param id path string true "Booking id or booking number"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /api/bookings/{id}/qr [post]
// @Security BearerAuth
func (handler *Handler) SendQR(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SendQR")
	defer scope.End()

	if err := handler.service.SendQR(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to send booking QR code")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "QR code email sent")
}
