package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hotelbooker/config"
	"hotelbooker/infras/broker"
	"hotelbooker/infras/cashfree"
	"hotelbooker/infras/otel"
	"hotelbooker/internal/domains/booking/model"
	"hotelbooker/internal/domains/booking/model/dto"
	"hotelbooker/internal/domains/booking/repository"
	hotelModel "hotelbooker/internal/domains/hotel/model"
	hotelRepo "hotelbooker/internal/domains/hotel/repository"
	notificationDto "hotelbooker/internal/domains/notification/model/dto"
	notificationService "hotelbooker/internal/domains/notification/service"
	"hotelbooker/shared"
	"hotelbooker/shared/constant"
	gDto "hotelbooker/shared/dto"
	"hotelbooker/shared/failure"
	"hotelbooker/shared/timezone"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	orderSuffixLength = 8
	refundPrefix      = "refund_"
	customerPrefix    = "guest_"
)

var (
	errNotAwaitingPayment  = errors.New("booking is not awaiting payment")
	errPaymentNotConfirmed = errors.New("payment not confirmed by provider")
	errAlreadyPaid         = errors.New("booking is already paid")
)

// Booking orchestrates the booking lifecycle. Lookups accept a booking
// reference, which is either the numeric id or the BN- booking number.
type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, hotelID int64) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, ref string) (dto.BookingResponse, error)
	Checkout(ctx context.Context, ref string) (dto.CheckoutResponse, error)
	UpdatePayment(ctx context.Context, req dto.UpdatePaymentRequest, ref string) (dto.BookingResponse, error)
	ApplyPaymentOutcome(ctx context.Context, orderID, providerStatus, transactionID string) (dto.PaymentOutcome, error)
	LinkOrder(ctx context.Context, orderID string, amount float64, currency string) error
	Cancel(ctx context.Context, ref string) (dto.BookingResponse, error)
	ResendConfirmation(ctx context.Context, ref string) error
	QR(ctx context.Context, ref string) (dto.QRPayload, error)
	SendQR(ctx context.Context, ref string) error
	ReconcilePending(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo         repository.Booking
	hotelRepo    hotelRepo.Hotel
	payment      cashfree.Cashfree
	notification notificationService.Notification
	publisher    broker.Publisher
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	hotelRepo hotelRepo.Hotel,
	payment cashfree.Cashfree,
	notification notificationService.Notification,
	publisher broker.Publisher,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		hotelRepo:    hotelRepo,
		payment:      payment,
		notification: notification,
		publisher:    publisher,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := req.Dates()
	if err != nil {
		return res, failure.BadRequestFromString("dates must use the YYYY-MM-DD format") // nolint:wrapcheck
	}

	nights := model.Nights(checkIn, checkOut)
	if nights <= 0 {
		return res, failure.BadRequestFromString("check-out date must be after check-in date") // nolint:wrapcheck
	}

	if nights > constant.MaxStayNights {
		return res, failure.BadRequestFromString(fmt.Sprintf("stay cannot exceed %d nights", constant.MaxStayNights)) // nolint:wrapcheck
	}

	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(req.HotelID, hotelModel.FieldID, hotelModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return res, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == 0 {
		return res, failure.HotelNotFound // nolint:wrapcheck
	}

	if !hotel.IsActive() {
		return res, failure.BadRequestFromString("hotel is not accepting bookings") // nolint:wrapcheck
	}

	total := model.TotalAmount(req.RoomType, hotel.BaseRate, nights)
	if total > constant.MaxBookingAmount {
		return res, failure.BadRequestFromString("booking total exceeds the supported amount") // nolint:wrapcheck
	}

	seq, err := s.repo.NextBookingNumber(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to allocate booking number")

		return res, fmt.Errorf("failed to allocate booking number: %w", err)
	}

	bookingID := model.FormatBookingNumber(timezone.Now().Year(), seq)

	booking := req.ToModel(shared.Actor(ctx), bookingID, checkIn, checkOut, total)

	booking.ID, err = s.repo.Insert(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking_id", booking.BookingID).Int("nights", nights).Int("total", total).Msg("booking created")

	s.publish(ctx, broker.EventBookingCreated, booking)

	res.FromModel(booking)

	return res, nil
}

// GetAll lists bookings, newest first by default. Staff and managers only
// ever see their own hotel regardless of the requested hotel.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, hotelID int64) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	if scoped, ok := shared.HotelScope(ctx); ok {
		hotelID = scoped
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	if hotelID != 0 {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldHotelID,
			Value:    hotelID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if params.SortBy == constant.Empty {
		params.SortBy = constant.DefaultValueSortBy
		params.SortDir = constant.DefaultValueSortDir
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	return res, nil
}

// Get reads one booking. Anonymous callers must use the booking number;
// numeric ids are only resolved for signed in users.
func (s *serviceImpl) Get(ctx context.Context, ref string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, numeric := numericRef(ref); numeric && shared.Actor(ctx) == constant.ContextGuest {
		return res, failure.BookingNotFound // nolint:wrapcheck
	}

	booking, err := s.find(ctx, ref)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	return res, nil
}

// Checkout opens a provider order for a pending booking. A linked order that
// is still active is handed out again; a new order replaces it only once the
// provider can no longer take payment for it. A provider failure leaves the
// booking pending so the guest can retry.
func (s *serviceImpl) Checkout(ctx context.Context, ref string) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, ref)
	if err != nil {
		return res, err
	}

	if booking.IsCancelled() || !booking.IsPending() {
		return res, failure.Conflict(errNotAwaitingPayment.Error()) // nolint:wrapcheck
	}

	if booking.ProviderOrderID != constant.Empty {
		current, err := s.payment.GetOrder(ctx, booking.ProviderOrderID)
		if err != nil {
			log.Error().Err(err).Str("order_id", booking.ProviderOrderID).Msg("failed to get payment order")

			return res, fmt.Errorf("failed to get payment order: %w", err)
		}

		switch current.OrderStatus {
		case cashfree.OrderStatusActive:
			if current.PaymentSessionID != constant.Empty {
				return checkoutResponse(booking, current), nil
			}
		case cashfree.OrderStatusPaid:
			if _, _, err = s.settle(ctx, booking, model.PaymentStatusCompleted, s.paidTransaction(ctx, booking.ProviderOrderID)); err != nil {
				return res, err
			}

			return res, failure.Conflict(errAlreadyPaid.Error()) // nolint:wrapcheck
		}
	}

	order, err := s.payment.CreateOrder(ctx, cashfree.OrderRequest{
		OrderID:     newOrderID(booking.BookingID),
		OrderAmount: float64(booking.TotalAmount),
		CustomerDetails: cashfree.CustomerDetails{
			CustomerID:    customerPrefix + strconv.FormatInt(booking.ID, 10),
			CustomerName:  booking.GuestName,
			CustomerEmail: booking.GuestEmail,
			CustomerPhone: booking.GuestContact,
		},
		OrderNote: booking.BookingID,
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.BookingID).Msg("failed to create payment order")

		return res, fmt.Errorf("failed to create payment order: %w", err)
	}

	linked, err := s.repo.TransitionPayment(ctx, booking.ID, model.PaymentStatusPending, s.audit(ctx, map[string]any{
		model.FieldProviderOrderID: order.OrderID,
	}))
	if err != nil {
		log.Error().Err(err).Msg("failed to store payment order")

		return res, fmt.Errorf("failed to store payment order: %w", err)
	}

	if !linked {
		return res, failure.Conflict(errNotAwaitingPayment.Error()) // nolint:wrapcheck
	}

	return checkoutResponse(booking, order), nil
}

// UpdatePayment records the outcome the client saw after checkout. Only a
// pending booking changes; later reports return the booking as stored.
// The provider order decides the result: a completed report needs a paid
// order, and a failure report for a paid order completes the booking.
func (s *serviceImpl) UpdatePayment(ctx context.Context, req dto.UpdatePaymentRequest, ref string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdatePayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, ref)
	if err != nil {
		return res, err
	}

	if booking.IsPending() {
		status, transactionID, err := s.reportedOutcome(ctx, booking, req)
		if err != nil {
			return res, err
		}

		booking, _, err = s.settle(ctx, booking, status, transactionID)
		if err != nil {
			return res, err
		}
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) ApplyPaymentOutcome(ctx context.Context, orderID, providerStatus, transactionID string) (res dto.PaymentOutcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ApplyPaymentOutcome")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(orderID, model.FieldProviderOrderID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking by payment order")

		return res, fmt.Errorf("failed to get booking by payment order: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.BookingNotFound // nolint:wrapcheck
	}

	res.BookingID = booking.BookingID
	res.PaymentStatus = booking.PaymentStatus

	status, ok := paymentStatusFromProvider(providerStatus)
	if !ok {
		log.Info().Str("order_id", orderID).Str("status", providerStatus).Msg("payment notification acknowledged without change")

		return res, nil
	}

	booking, res.Applied, err = s.settle(ctx, booking, status, transactionID)
	if err != nil {
		return res, err
	}

	res.PaymentStatus = booking.PaymentStatus

	return res, nil
}

// LinkOrder attaches a client created provider order to the pending booking
// whose number equals the order id. The order must charge the booking total
// in the configured currency. Any other order id is left alone.
func (s *serviceImpl) LinkOrder(ctx context.Context, orderID string, amount float64, currency string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.LinkOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(orderID, model.FieldBookingID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking for payment order")

		return fmt.Errorf("failed to get booking for payment order: %w", err)
	}

	if booking.ID == 0 || !booking.IsPending() || booking.ProviderOrderID != constant.Empty {
		return nil
	}

	if amount != float64(booking.TotalAmount) || !strings.EqualFold(currency, s.cfg.Payment.Cashfree.Currency) {
		log.Warn().
			Str("booking_id", booking.BookingID).
			Float64("order_amount", amount).
			Str("order_currency", currency).
			Int("total", booking.TotalAmount).
			Msg("payment order does not match booking total, not linked")

		return failure.BadRequestFromString("order amount does not match the booking total") // nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: booking.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{
				ArgName:  "current_" + model.FieldProviderOrderID,
				Field:    model.FieldProviderOrderID,
				Value:    constant.Empty,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}

	_, err = s.repo.Update(ctx, s.audit(ctx, map[string]any{model.FieldProviderOrderID: orderID}), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to link payment order")

		return fmt.Errorf("failed to link payment order: %w", err)
	}

	return nil
}

// Cancel refunds a completed payment before marking the booking cancelled.
// A payment still pending is failed first, so the open provider order can no
// longer complete the booking.
func (s *serviceImpl) Cancel(ctx context.Context, ref string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, ref)
	if err != nil {
		return res, err
	}

	if booking.IsCancelled() {
		return res, failure.Conflict("booking is already cancelled") // nolint:wrapcheck
	}

	if booking.IsPending() {
		booking, err = s.abandonPayment(ctx, booking)
		if err != nil {
			return res, err
		}
	}

	if booking.PaymentStatus == model.PaymentStatusCompleted && booking.ProviderOrderID != constant.Empty {
		if err = s.refund(ctx, booking, "booking cancelled"); err != nil {
			return res, err
		}
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: booking.ID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{
				ArgName:  "current_" + model.FieldStatus,
				Field:    model.FieldStatus,
				Value:    model.StatusCancelled,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			},
		},
	}

	affected, err := s.repo.Update(ctx, s.audit(ctx, map[string]any{model.FieldStatus: model.StatusCancelled}), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	if affected == 0 {
		return res, failure.Conflict("booking is already cancelled") // nolint:wrapcheck
	}

	booking.Status = model.StatusCancelled

	if booking.GuestEmail != constant.Empty {
		if err := s.notification.SendCancellation(ctx, s.snapshot(ctx, booking)); err != nil {
			log.Warn().Err(err).Str("booking_id", booking.BookingID).Msg("cancellation email not delivered")
		}
	}

	s.publish(ctx, broker.EventBookingCancelled, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) ResendConfirmation(ctx context.Context, ref string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ResendConfirmation")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, ref)
	if err != nil {
		return err
	}

	if booking.GuestEmail == constant.Empty {
		return failure.BadRequestFromString("booking has no guest email") // nolint:wrapcheck
	}

	return s.notification.SendConfirmation(ctx, s.snapshot(ctx, booking)) //nolint:wrapcheck
}

func (s *serviceImpl) QR(ctx context.Context, ref string) (res dto.QRPayload, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.QR")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, ref)
	if err != nil {
		return res, err
	}

	return qrPayload(booking, s.hotelName(ctx, booking.HotelID)), nil
}

func (s *serviceImpl) SendQR(ctx context.Context, ref string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.SendQR")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.find(ctx, ref)
	if err != nil {
		return err
	}

	if booking.GuestEmail == constant.Empty {
		return failure.BadRequestFromString("booking has no guest email") // nolint:wrapcheck
	}

	snapshot := s.snapshot(ctx, booking)

	payload, err := json.Marshal(qrPayload(booking, snapshot.HotelName))
	if err != nil {
		return fmt.Errorf("failed to encode qr payload: %w", err)
	}

	return s.notification.SendQRCode(ctx, snapshot, string(payload)) //nolint:wrapcheck
}

// ReconcilePending asks the provider about pending bookings whose webhook
// never arrived and settles the ones that reached a terminal state.
// It returns how many bookings changed.
func (s *serviceImpl) ReconcilePending(ctx context.Context) (settled int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ReconcilePending")
	defer scope.End()
	defer scope.TraceIfError(err)

	age := time.Duration(s.cfg.Booking.Reconcile.PendingAgeMinutes) * time.Minute
	cutoff := timezone.Now().Add(-age)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldPaymentStatus, Value: model.PaymentStatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldProviderOrderID, Value: constant.Empty, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
			gDto.Filter{Field: constant.FieldCreatedAt, Value: cutoff, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{
		Page:    constant.DefaultValuePage,
		Limit:   s.cfg.Booking.Reconcile.BatchSize,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirAsc,
	}

	bookings, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pending bookings")

		return 0, fmt.Errorf("failed to get pending bookings: %w", err)
	}

	for _, booking := range bookings {
		applied, err := s.reconcile(ctx, booking)
		if err != nil {
			log.Error().Err(err).Str("booking_id", booking.BookingID).Msg("failed to reconcile booking")

			continue
		}

		if applied {
			settled++
		}
	}

	return settled, nil
}

func (s *serviceImpl) reconcile(ctx context.Context, booking model.Booking) (bool, error) {
	order, err := s.payment.GetOrder(ctx, booking.ProviderOrderID)
	if err != nil {
		return false, fmt.Errorf("failed to get payment order: %w", err)
	}

	var (
		status        string
		transactionID string
	)

	switch order.OrderStatus {
	case cashfree.OrderStatusPaid:
		status = model.PaymentStatusCompleted
		transactionID = s.paidTransaction(ctx, booking.ProviderOrderID)
	case cashfree.OrderStatusExpired, cashfree.OrderStatusTerminated:
		status = model.PaymentStatusFailed
	default:
		return false, nil
	}

	_, applied, err := s.settle(ctx, booking, status, transactionID)

	return applied, err
}

// settle moves a pending booking to its final payment status. The update is
// conditional on the stored status still being pending, so concurrent or
// repeated notifications apply once and the confirmation email goes out once.
func (s *serviceImpl) settle(ctx context.Context, booking model.Booking, status, transactionID string) (model.Booking, bool, error) {
	if status == model.PaymentStatusCompleted && latePayment(booking) {
		log.Warn().Str("booking_id", booking.BookingID).Msg("payment arrived after the booking stopped awaiting it")

		return booking, false, s.refund(ctx, booking, "payment received after booking closed")
	}

	if !booking.IsPending() {
		return booking, false, nil
	}

	fields := map[string]any{model.FieldPaymentStatus: status}
	if transactionID != constant.Empty {
		fields[model.FieldTransactionID] = transactionID
	}

	applied, err := s.repo.TransitionPayment(ctx, booking.ID, model.PaymentStatusPending, s.audit(ctx, fields))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.BookingID).Msg("failed to update payment status")

		return booking, false, fmt.Errorf("failed to update payment status: %w", err)
	}

	if !applied {
		log.Info().Str("booking_id", booking.BookingID).Msg("payment status already settled")

		current, err := s.repo.Get(ctx, shared.FilterByID(booking.ID, model.FieldID, model.TableName))
		if err != nil || current.ID == 0 {
			return booking, false, nil //nolint:nilerr
		}

		return current, false, nil
	}

	booking.PaymentStatus = status
	if transactionID != constant.Empty {
		booking.TransactionID = transactionID
	}

	log.Info().Str("booking_id", booking.BookingID).Str("payment_status", status).Msg("payment settled")

	if status == model.PaymentStatusCompleted {
		s.publish(ctx, broker.EventPaymentCompleted, booking)
		s.confirm(ctx, booking)
	} else {
		s.publish(ctx, broker.EventPaymentFailed, booking)
	}

	return booking, true, nil
}

// confirm sends the confirmation email. Delivery problems never undo a payment.
func (s *serviceImpl) confirm(ctx context.Context, booking model.Booking) {
	if booking.GuestEmail == constant.Empty {
		log.Info().Str("booking_id", booking.BookingID).Msg("booking has no guest email, confirmation skipped")

		return
	}

	if err := s.notification.SendConfirmation(ctx, s.snapshot(ctx, booking)); err != nil {
		log.Warn().Err(err).Str("booking_id", booking.BookingID).Msg("confirmation email not delivered")
	}
}

// reportedOutcome checks a client report against the provider order.
func (s *serviceImpl) reportedOutcome(ctx context.Context, booking model.Booking, req dto.UpdatePaymentRequest) (string, string, error) {
	if booking.ProviderOrderID == constant.Empty {
		if req.PaymentStatus == model.PaymentStatusCompleted {
			return constant.Empty, constant.Empty, failure.Conflict(errPaymentNotConfirmed.Error()) // nolint:wrapcheck
		}

		return model.PaymentStatusFailed, req.TransactionID, nil
	}

	order, err := s.payment.GetOrder(ctx, booking.ProviderOrderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", booking.ProviderOrderID).Msg("failed to get payment order")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to get payment order: %w", err)
	}

	if order.OrderStatus == cashfree.OrderStatusPaid {
		return model.PaymentStatusCompleted, s.paidTransaction(ctx, booking.ProviderOrderID), nil
	}

	if req.PaymentStatus == model.PaymentStatusCompleted {
		log.Warn().
			Str("booking_id", booking.BookingID).
			Str("order_status", order.OrderStatus).
			Msg("completed payment report rejected")

		return constant.Empty, constant.Empty, failure.Conflict(errPaymentNotConfirmed.Error()) // nolint:wrapcheck
	}

	return model.PaymentStatusFailed, req.TransactionID, nil
}

// paidTransaction returns the provider payment id of the successful attempt
// on a paid order, or an empty string when it cannot be read.
func (s *serviceImpl) paidTransaction(ctx context.Context, orderID string) string {
	payments, err := s.payment.GetPayments(ctx, orderID)
	if err != nil {
		log.Warn().Err(err).Str("order_id", orderID).Msg("failed to get order payments")

		return constant.Empty
	}

	for _, p := range payments {
		if p.PaymentStatus == cashfree.PaymentStatusSuccess {
			return p.TransactionID()
		}
	}

	return constant.Empty
}

// abandonPayment fails the pending payment of a booking being cancelled so a
// later provider notification cannot complete it. When a notification won the
// race the stored booking is returned instead.
func (s *serviceImpl) abandonPayment(ctx context.Context, booking model.Booking) (model.Booking, error) {
	applied, err := s.repo.TransitionPayment(ctx, booking.ID, model.PaymentStatusPending, s.audit(ctx, map[string]any{
		model.FieldPaymentStatus: model.PaymentStatusFailed,
	}))
	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.BookingID).Msg("failed to close pending payment")

		return booking, fmt.Errorf("failed to close pending payment: %w", err)
	}

	if applied {
		booking.PaymentStatus = model.PaymentStatusFailed

		return booking, nil
	}

	current, err := s.repo.Get(ctx, shared.FilterByID(booking.ID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == 0 {
		return booking, failure.BookingNotFound // nolint:wrapcheck
	}

	return current, nil
}

// refund returns the booking total on its provider order. The refund id is
// derived from the booking number so a retried call cannot refund twice; the
// provider rejecting a repeated id counts as done.
func (s *serviceImpl) refund(ctx context.Context, booking model.Booking, note string) error {
	refund, err := s.payment.Refund(ctx, booking.ProviderOrderID, cashfree.RefundRequest{
		RefundAmount: float64(booking.TotalAmount),
		RefundID:     refundPrefix + booking.BookingID,
		RefundNote:   note,
	})

	var providerErr *cashfree.ProviderError
	if errors.As(err, &providerErr) && providerErr.Status == http.StatusConflict {
		log.Info().Str("booking_id", booking.BookingID).Msg("refund already requested")

		return nil
	}

	if err != nil {
		log.Error().Err(err).Str("booking_id", booking.BookingID).Msg("failed to refund booking")

		return fmt.Errorf("failed to refund booking: %w", err)
	}

	log.Info().Str("booking_id", booking.BookingID).Str("refund_status", refund.RefundStatus).Msg("refund requested")

	return nil
}

// latePayment reports a booking that can no longer take the money a provider
// just captured for it.
func latePayment(booking model.Booking) bool {
	if booking.ProviderOrderID == constant.Empty {
		return false
	}

	return booking.PaymentStatus == model.PaymentStatusFailed || (booking.IsCancelled() && booking.IsPending())
}

func numericRef(ref string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(ref), 10, 64)

	return id, err == nil
}

func checkoutResponse(booking model.Booking, order cashfree.Order) dto.CheckoutResponse {
	return dto.CheckoutResponse{
		BookingID:        booking.BookingID,
		OrderID:          order.OrderID,
		PaymentSessionID: order.PaymentSessionID,
		OrderStatus:      order.OrderStatus,
		Amount:           booking.TotalAmount,
	}
}

func (s *serviceImpl) find(ctx context.Context, ref string) (model.Booking, error) {
	ref = strings.TrimSpace(ref)

	filter := shared.FilterByID(ref, model.FieldBookingID, model.TableName)
	if id, ok := numericRef(ref); ok {
		filter = shared.FilterByID(id, model.FieldID, model.TableName)
	}

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return booking, failure.BookingNotFound // nolint:wrapcheck
	}

	if hotelID, scoped := shared.HotelScope(ctx); scoped && hotelID != booking.HotelID {
		return model.Booking{}, failure.BookingNotFound // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) hotelName(ctx context.Context, hotelID int64) string {
	hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(hotelID, hotelModel.FieldID, hotelModel.TableName), hotelModel.FieldID, hotelModel.FieldName)
	if err != nil {
		log.Warn().Err(err).Int64("hotel_id", hotelID).Msg("failed to get hotel name")

		return constant.Empty
	}

	return hotel.Name
}

func (s *serviceImpl) snapshot(ctx context.Context, booking model.Booking) notificationDto.BookingSnapshot {
	return notificationDto.BookingSnapshot{
		BookingID:     booking.BookingID,
		GuestName:     booking.GuestName,
		GuestEmail:    booking.GuestEmail,
		HotelName:     s.hotelName(ctx, booking.HotelID),
		CheckInDate:   booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate:  booking.CheckOutDate.Format(constant.DateOnlyFormat),
		RoomType:      booking.RoomType,
		TotalAmount:   booking.TotalAmount,
		TransactionID: booking.TransactionID,
	}
}

func qrPayload(booking model.Booking, hotelName string) dto.QRPayload {
	return dto.QRPayload{
		Type:      dto.QRPayloadType,
		BookingID: booking.BookingID,
		Guest:     booking.GuestName,
		Hotel:     hotelName,
		CheckIn:   booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOut:  booking.CheckOutDate.Format(constant.DateOnlyFormat),
		Amount:    booking.TotalAmount,
		Generated: timezone.Format(timezone.Now(), constant.DateFormat),
	}
}

func (s *serviceImpl) audit(ctx context.Context, fields map[string]any) map[string]any {
	fields[constant.FieldModifiedAt] = timezone.Now()
	fields[constant.FieldModifiedBy] = shared.Actor(ctx)

	return fields
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	event := broker.Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		BookingID:     booking.BookingID,
		HotelID:       booking.HotelID,
		PaymentStatus: booking.PaymentStatus,
		Status:        booking.Status,
		TotalAmount:   booking.TotalAmount,
		OccurredAt:    timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.Publish(c, event); err != nil {
			log.Error().Err(err).Str("type", eventType).Str("booking_id", booking.BookingID).Msg("failed to publish booking event")
		}
	}()
}

func paymentStatusFromProvider(status string) (string, bool) {
	switch strings.ToUpper(status) {
	case cashfree.PaymentStatusSuccess:
		return model.PaymentStatusCompleted, true
	case cashfree.PaymentStatusFailed, cashfree.PaymentStatusUserDropped, cashfree.PaymentStatusCancelled:
		return model.PaymentStatusFailed, true
	default:
		return constant.Empty, false
	}
}

// newOrderID gives every checkout attempt its own provider order id.
func newOrderID(bookingID string) string {
	return bookingID + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:orderSuffixLength]
}
