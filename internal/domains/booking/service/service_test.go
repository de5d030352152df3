package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelbooker/config"
	brokerMocks "hotelbooker/infras/broker/mocks"
	"hotelbooker/infras/cashfree"
	cashfreeMocks "hotelbooker/infras/cashfree/mocks"
	"hotelbooker/infras/otel/mocks"
	bookingMocks "hotelbooker/internal/domains/booking/mocks"
	"hotelbooker/internal/domains/booking/model"
	"hotelbooker/internal/domains/booking/model/dto"
	"hotelbooker/internal/domains/booking/service"
	hotelMocks "hotelbooker/internal/domains/hotel/mocks"
	hotelModel "hotelbooker/internal/domains/hotel/model"
	notificationMocks "hotelbooker/internal/domains/notification/mocks"
	notificationDto "hotelbooker/internal/domains/notification/model/dto"
	"hotelbooker/shared/constant"
	gDto "hotelbooker/shared/dto"
	"hotelbooker/shared/failure"
)

type bookingFixture struct {
	repo         *bookingMocks.MockBooking
	hotels       *hotelMocks.MockHotel
	payment      *cashfreeMocks.MockCashfree
	notification *notificationMocks.MockNotification
	publisher    *brokerMocks.MockPublisher
	svc          service.Booking
}

func newBookingFixture(t *testing.T) bookingFixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Booking.Reconcile.PendingAgeMinutes = 30
	cfg.Booking.Reconcile.BatchSize = 50
	cfg.Payment.Cashfree.Currency = "INR"

	f := bookingFixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		hotels:       hotelMocks.NewMockHotel(ctrl),
		payment:      cashfreeMocks.NewMockCashfree(ctrl),
		notification: notificationMocks.NewMockNotification(ctrl),
		publisher:    brokerMocks.NewMockPublisher(ctrl),
	}

	f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.hotels, f.payment, f.notification, f.publisher, cfg, mocks.NewOtel())

	return f
}

func testInn() hotelModel.Hotel {
	return hotelModel.Hotel{ID: 1, Name: "Test Inn", Location: "X", BaseRate: 2000, Status: hotelModel.StatusActive}
}

func pendingBooking() model.Booking {
	return model.Booking{
		ID:              7,
		BookingID:       "BN-2025-007",
		HotelID:         1,
		GuestName:       "Asha",
		GuestContact:    "9999999999",
		GuestEmail:      "asha@example.com",
		CheckInDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:    time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC),
		RoomType:        model.RoomTypeAC,
		TotalAmount:     5000,
		PaymentStatus:   model.PaymentStatusPending,
		ProviderOrderID: "BN-2025-007_abcd1234",
		Status:          model.StatusConfirmed,
	}
}

func createRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		HotelID:      1,
		GuestName:    "Asha",
		GuestContact: "9999999999",
		CheckInDate:  "2025-01-01",
		CheckOutDate: "2025-01-03",
		RoomType:     model.RoomTypeAC,
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("prices an ac room for two nights", func(t *testing.T) {
		f := newBookingFixture(t)

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testInn(), nil)
		f.repo.EXPECT().NextBookingNumber(gomock.Any()).Return(int64(1), nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) (int64, error) {
				assert.Equal(t, 5000, booking.TotalAmount)
				assert.Equal(t, model.PaymentStatusPending, booking.PaymentStatus)
				assert.Equal(t, model.StatusConfirmed, booking.Status)
				assert.True(t, strings.HasPrefix(booking.BookingID, "BN-"))
				assert.True(t, strings.HasSuffix(booking.BookingID, "-001"))

				return 11, nil
			})

		res, err := f.svc.Create(context.Background(), createRequest())

		require.NoError(t, err)
		assert.Equal(t, int64(11), res.ID)
		assert.Equal(t, 5000, res.TotalAmount)
		assert.Equal(t, model.PaymentStatusPending, res.PaymentStatus)
	})

	t.Run("suite surcharge", func(t *testing.T) {
		f := newBookingFixture(t)

		req := createRequest()
		req.RoomType = model.RoomTypeSuite

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testInn(), nil)
		f.repo.EXPECT().NextBookingNumber(gomock.Any()).Return(int64(2), nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(12), nil)

		res, err := f.svc.Create(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 6000, res.TotalAmount)
	})

	t.Run("zero nights is rejected before any store call", func(t *testing.T) {
		f := newBookingFixture(t)

		req := createRequest()
		req.CheckOutDate = req.CheckInDate

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("check-out before check-in", func(t *testing.T) {
		f := newBookingFixture(t)

		req := createRequest()
		req.CheckInDate, req.CheckOutDate = req.CheckOutDate, req.CheckInDate

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("stay longer than the cap", func(t *testing.T) {
		f := newBookingFixture(t)

		req := createRequest()
		req.CheckOutDate = "2025-02-01"

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.Contains(t, err.Error(), "30 nights")
	})

	t.Run("total beyond the stored amount range", func(t *testing.T) {
		f := newBookingFixture(t)

		hotel := testInn()
		hotel.BaseRate = 1 << 30

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotel, nil)

		_, err := f.svc.Create(context.Background(), createRequest())

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown hotel", func(t *testing.T) {
		f := newBookingFixture(t)

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{}, nil)

		_, err := f.svc.Create(context.Background(), createRequest())

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("inactive hotel", func(t *testing.T) {
		f := newBookingFixture(t)

		hotel := testInn()
		hotel.Status = hotelModel.StatusInactive

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotel, nil)

		_, err := f.svc.Create(context.Background(), createRequest())

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("store failure", func(t *testing.T) {
		f := newBookingFixture(t)

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(testInn(), nil)
		f.repo.EXPECT().NextBookingNumber(gomock.Any()).Return(int64(0), errors.New("database error"))

		_, err := f.svc.Create(context.Background(), createRequest())

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestBookingService_ApplyPaymentOutcome(t *testing.T) {
	t.Run("success completes the booking and emails once across duplicates", func(t *testing.T) {
		f := newBookingFixture(t)

		completed := pendingBooking()
		completed.PaymentStatus = model.PaymentStatusCompleted

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil),
			f.repo.EXPECT().TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).Return(true, nil),
		)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(testInn(), nil)
		f.notification.EXPECT().
			SendConfirmation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking notificationDto.BookingSnapshot) error {
				assert.Equal(t, "BN-2025-007", booking.BookingID)
				assert.Equal(t, "Test Inn", booking.HotelName)

				return nil
			}).
			Times(1)

		first, err := f.svc.ApplyPaymentOutcome(context.Background(), "BN-2025-007_abcd1234", cashfree.PaymentStatusSuccess, "tx-1")
		require.NoError(t, err)
		assert.True(t, first.Applied)
		assert.Equal(t, model.PaymentStatusCompleted, first.PaymentStatus)

		second, err := f.svc.ApplyPaymentOutcome(context.Background(), "BN-2025-007_abcd1234", cashfree.PaymentStatusSuccess, "tx-1")
		require.NoError(t, err)
		assert.False(t, second.Applied)
		assert.Equal(t, model.PaymentStatusCompleted, second.PaymentStatus)
	})

	t.Run("lost race leaves the stored status", func(t *testing.T) {
		f := newBookingFixture(t)

		failed := pendingBooking()
		failed.PaymentStatus = model.PaymentStatusFailed

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil),
			f.repo.EXPECT().TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).Return(false, nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(failed, nil),
		)

		res, err := f.svc.ApplyPaymentOutcome(context.Background(), "BN-2025-007_abcd1234", cashfree.PaymentStatusSuccess, "")

		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, model.PaymentStatusFailed, res.PaymentStatus)
	})

	t.Run("user dropped fails the booking without email", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.repo.EXPECT().
			TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
				assert.Equal(t, model.PaymentStatusFailed, fields[model.FieldPaymentStatus])
				assert.NotContains(t, fields, model.FieldTransactionID)

				return true, nil
			})

		res, err := f.svc.ApplyPaymentOutcome(context.Background(), "BN-2025-007_abcd1234", cashfree.PaymentStatusUserDropped, "")

		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, model.PaymentStatusFailed, res.PaymentStatus)
	})

	t.Run("unknown status is acknowledged without change", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		res, err := f.svc.ApplyPaymentOutcome(context.Background(), "BN-2025-007_abcd1234", cashfree.PaymentStatusPending, "")

		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, model.PaymentStatusPending, res.PaymentStatus)
	})

	t.Run("email failure does not fail the payment", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.repo.EXPECT().TransitionPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(testInn(), nil)
		f.notification.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		res, err := f.svc.ApplyPaymentOutcome(context.Background(), "BN-2025-007_abcd1234", cashfree.PaymentStatusSuccess, "tx-1")

		require.NoError(t, err)
		assert.True(t, res.Applied)
	})

	t.Run("payment after cancellation is refunded", func(t *testing.T) {
		f := newBookingFixture(t)

		cancelled := pendingBooking()
		cancelled.Status = model.StatusCancelled
		cancelled.PaymentStatus = model.PaymentStatusFailed

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.payment.EXPECT().
			Refund(gomock.Any(), "BN-2025-007_abcd1234", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req cashfree.RefundRequest) (cashfree.Refund, error) {
				assert.Equal(t, "refund_BN-2025-007", req.RefundID)
				assert.Equal(t, 5000.0, req.RefundAmount)

				return cashfree.Refund{RefundStatus: "PENDING"}, nil
			})

		res, err := f.svc.ApplyPaymentOutcome(context.Background(), "BN-2025-007_abcd1234", cashfree.PaymentStatusSuccess, "tx-1")

		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Equal(t, model.PaymentStatusFailed, res.PaymentStatus)
	})

	t.Run("refund already requested counts as done", func(t *testing.T) {
		f := newBookingFixture(t)

		failed := pendingBooking()
		failed.PaymentStatus = model.PaymentStatusFailed

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(failed, nil)
		f.payment.EXPECT().
			Refund(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cashfree.Refund{}, &cashfree.ProviderError{Status: http.StatusConflict, Message: "refund_id already exists"})

		_, err := f.svc.ApplyPaymentOutcome(context.Background(), "BN-2025-007_abcd1234", cashfree.PaymentStatusSuccess, "tx-1")

		require.NoError(t, err)
	})

	t.Run("refund failure is retried by the provider", func(t *testing.T) {
		f := newBookingFixture(t)

		failed := pendingBooking()
		failed.PaymentStatus = model.PaymentStatusFailed

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(failed, nil)
		f.payment.EXPECT().
			Refund(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(cashfree.Refund{}, &cashfree.ProviderError{Status: http.StatusBadGateway, Message: "upstream"})

		_, err := f.svc.ApplyPaymentOutcome(context.Background(), "BN-2025-007_abcd1234", cashfree.PaymentStatusSuccess, "tx-1")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.ApplyPaymentOutcome(context.Background(), "missing", cashfree.PaymentStatusSuccess, "")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_UpdatePayment(t *testing.T) {
	t.Run("completed report confirmed by a paid order", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.payment.EXPECT().GetOrder(gomock.Any(), "BN-2025-007_abcd1234").Return(cashfree.Order{OrderStatus: cashfree.OrderStatusPaid}, nil)
		f.payment.EXPECT().GetPayments(gomock.Any(), "BN-2025-007_abcd1234").Return([]cashfree.Payment{
			{CFPaymentID: "p-9", PaymentStatus: cashfree.PaymentStatusSuccess},
		}, nil)
		f.repo.EXPECT().
			TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
				assert.Equal(t, model.PaymentStatusCompleted, fields[model.FieldPaymentStatus])
				assert.Equal(t, "p-9", fields[model.FieldTransactionID])

				return true, nil
			})
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(testInn(), nil)
		f.notification.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.UpdatePayment(context.Background(), dto.UpdatePaymentRequest{
			PaymentStatus: model.PaymentStatusCompleted,
			TransactionID: "forged",
		}, "7")

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, res.PaymentStatus)
		assert.Equal(t, "p-9", res.TransactionID)
	})

	t.Run("completed report for an unpaid order is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.payment.EXPECT().GetOrder(gomock.Any(), "BN-2025-007_abcd1234").Return(cashfree.Order{OrderStatus: cashfree.OrderStatusActive}, nil)

		_, err := f.svc.UpdatePayment(context.Background(), dto.UpdatePaymentRequest{PaymentStatus: model.PaymentStatusCompleted}, "BN-2025-007")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("completed report without a provider order is rejected", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.ProviderOrderID = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.UpdatePayment(context.Background(), dto.UpdatePaymentRequest{PaymentStatus: model.PaymentStatusCompleted}, "BN-2025-007")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("failure report for a paid order completes the booking", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.GuestEmail = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.payment.EXPECT().GetOrder(gomock.Any(), gomock.Any()).Return(cashfree.Order{OrderStatus: cashfree.OrderStatusPaid}, nil)
		f.payment.EXPECT().GetPayments(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))
		f.repo.EXPECT().
			TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
				assert.Equal(t, model.PaymentStatusCompleted, fields[model.FieldPaymentStatus])
				assert.NotContains(t, fields, model.FieldTransactionID)

				return true, nil
			})

		res, err := f.svc.UpdatePayment(context.Background(), dto.UpdatePaymentRequest{PaymentStatus: model.PaymentStatusFailed}, "BN-2025-007")

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, res.PaymentStatus)
	})

	t.Run("failure report fails the booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.payment.EXPECT().GetOrder(gomock.Any(), gomock.Any()).Return(cashfree.Order{OrderStatus: cashfree.OrderStatusActive}, nil)
		f.repo.EXPECT().TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).Return(true, nil)

		res, err := f.svc.UpdatePayment(context.Background(), dto.UpdatePaymentRequest{PaymentStatus: model.PaymentStatusFailed}, "BN-2025-007")

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusFailed, res.PaymentStatus)
	})

	t.Run("already settled booking is returned as stored", func(t *testing.T) {
		f := newBookingFixture(t)

		completed := pendingBooking()
		completed.PaymentStatus = model.PaymentStatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)

		res, err := f.svc.UpdatePayment(context.Background(), dto.UpdatePaymentRequest{PaymentStatus: model.PaymentStatusFailed}, "BN-2025-007")

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusCompleted, res.PaymentStatus)
	})
}

func TestBookingService_Checkout(t *testing.T) {
	t.Run("stores the provider order", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.ProviderOrderID = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.payment.EXPECT().
			CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req cashfree.OrderRequest) (cashfree.Order, error) {
				assert.True(t, strings.HasPrefix(req.OrderID, "BN-2025-007_"))
				assert.Equal(t, 5000.0, req.OrderAmount)
				assert.Equal(t, "9999999999", req.CustomerDetails.CustomerPhone)

				return cashfree.Order{OrderID: req.OrderID, OrderStatus: cashfree.OrderStatusActive, PaymentSessionID: "session"}, nil
			})
		f.repo.EXPECT().
			TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
				assert.Contains(t, fields, model.FieldProviderOrderID)

				return true, nil
			})

		res, err := f.svc.Checkout(context.Background(), "BN-2025-007")

		require.NoError(t, err)
		assert.Equal(t, "session", res.PaymentSessionID)
		assert.Equal(t, 5000, res.Amount)
	})

	t.Run("active order is handed out again", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.payment.EXPECT().
			GetOrder(gomock.Any(), "BN-2025-007_abcd1234").
			Return(cashfree.Order{OrderID: "BN-2025-007_abcd1234", OrderStatus: cashfree.OrderStatusActive, PaymentSessionID: "first"}, nil)

		res, err := f.svc.Checkout(context.Background(), "BN-2025-007")

		require.NoError(t, err)
		assert.Equal(t, "BN-2025-007_abcd1234", res.OrderID)
		assert.Equal(t, "first", res.PaymentSessionID)
	})

	t.Run("expired order is replaced", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.payment.EXPECT().GetOrder(gomock.Any(), "BN-2025-007_abcd1234").Return(cashfree.Order{OrderStatus: cashfree.OrderStatusExpired}, nil)
		f.payment.EXPECT().
			CreateOrder(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req cashfree.OrderRequest) (cashfree.Order, error) {
				assert.NotEqual(t, "BN-2025-007_abcd1234", req.OrderID)

				return cashfree.Order{OrderID: req.OrderID, OrderStatus: cashfree.OrderStatusActive, PaymentSessionID: "second"}, nil
			})
		f.repo.EXPECT().TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).Return(true, nil)

		res, err := f.svc.Checkout(context.Background(), "BN-2025-007")

		require.NoError(t, err)
		assert.Equal(t, "second", res.PaymentSessionID)
	})

	t.Run("paid order settles the booking instead", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.GuestEmail = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.payment.EXPECT().GetOrder(gomock.Any(), "BN-2025-007_abcd1234").Return(cashfree.Order{OrderStatus: cashfree.OrderStatusPaid}, nil)
		f.payment.EXPECT().GetPayments(gomock.Any(), "BN-2025-007_abcd1234").Return([]cashfree.Payment{
			{CFPaymentID: "p-1", PaymentStatus: cashfree.PaymentStatusSuccess},
		}, nil)
		f.repo.EXPECT().
			TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
				assert.Equal(t, model.PaymentStatusCompleted, fields[model.FieldPaymentStatus])
				assert.NotContains(t, fields, model.FieldProviderOrderID)

				return true, nil
			})

		_, err := f.svc.Checkout(context.Background(), "BN-2025-007")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("provider failure keeps the booking pending", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.ProviderOrderID = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.payment.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Return(cashfree.Order{}, &cashfree.ProviderError{Status: 400, Message: "bad"})

		_, err := f.svc.Checkout(context.Background(), "BN-2025-007")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("settled booking cannot be paid again", func(t *testing.T) {
		f := newBookingFixture(t)

		completed := pendingBooking()
		completed.PaymentStatus = model.PaymentStatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil)

		_, err := f.svc.Checkout(context.Background(), "BN-2025-007")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_LinkOrder(t *testing.T) {
	t.Run("links an unlinked pending booking", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.ProviderOrderID = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, "BN-2025-007", fields[model.FieldProviderOrderID])

				return 1, nil
			})

		require.NoError(t, f.svc.LinkOrder(context.Background(), "BN-2025-007", 5000, "inr"))
	})

	t.Run("order for less than the total is not linked", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.ProviderOrderID = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		err := f.svc.LinkOrder(context.Background(), "BN-2025-007", 1, "INR")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("order in another currency is not linked", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.ProviderOrderID = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		err := f.svc.LinkOrder(context.Background(), "BN-2025-007", 5000, "USD")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("other order ids change nothing", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		require.NoError(t, f.svc.LinkOrder(context.Background(), "order_123", 1, "INR"))
	})

	t.Run("already linked booking is kept", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		require.NoError(t, f.svc.LinkOrder(context.Background(), "BN-2025-007", 5000, "INR"))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("refunds a completed payment", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.PaymentStatus = model.PaymentStatusCompleted

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.payment.EXPECT().
			Refund(gomock.Any(), "BN-2025-007_abcd1234", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, req cashfree.RefundRequest) (cashfree.Refund, error) {
				assert.Equal(t, 5000.0, req.RefundAmount)
				assert.Equal(t, "refund_BN-2025-007", req.RefundID)

				return cashfree.Refund{RefundStatus: "PENDING"}, nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(testInn(), nil)
		f.notification.EXPECT().SendCancellation(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		res, err := f.svc.Cancel(context.Background(), "7")

		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
	})

	t.Run("pending payment is failed without refund", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.GuestEmail = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.repo.EXPECT().
			TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
				assert.Equal(t, model.PaymentStatusFailed, fields[model.FieldPaymentStatus])

				return true, nil
			})
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil)

		res, err := f.svc.Cancel(context.Background(), "7")

		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
		assert.Equal(t, model.PaymentStatusFailed, res.PaymentStatus)
	})

	t.Run("payment completed during cancel is refunded", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.GuestEmail = ""

		completed := booking
		completed.PaymentStatus = model.PaymentStatusCompleted

		gomock.InOrder(
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil),
			f.repo.EXPECT().TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).Return(false, nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(completed, nil),
			f.payment.EXPECT().Refund(gomock.Any(), "BN-2025-007_abcd1234", gomock.Any()).Return(cashfree.Refund{RefundStatus: "PENDING"}, nil),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil),
		)

		res, err := f.svc.Cancel(context.Background(), "7")

		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, res.Status)
	})

	t.Run("cancelling twice conflicts", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.Status = model.StatusCancelled

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		_, err := f.svc.Cancel(context.Background(), "7")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("concurrent cancel conflicts", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.repo.EXPECT().TransitionPayment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)

		_, err := f.svc.Cancel(context.Background(), "7")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_ResendConfirmation(t *testing.T) {
	t.Run("mail failure propagates", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)
		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(testInn(), nil)
		f.notification.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))

		err := f.svc.ResendConfirmation(context.Background(), "7")

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})

	t.Run("no guest email", func(t *testing.T) {
		f := newBookingFixture(t)

		booking := pendingBooking()
		booking.GuestEmail = ""

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)

		err := f.svc.ResendConfirmation(context.Background(), "7")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.ResendConfirmation(context.Background(), "BN-2025-999")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_QR(t *testing.T) {
	f := newBookingFixture(t)

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil).Times(2)
	f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(testInn(), nil).Times(2)

	res, err := f.svc.QR(context.Background(), "7")

	require.NoError(t, err)
	assert.Equal(t, dto.QRPayloadType, res.Type)
	assert.Equal(t, "BN-2025-007", res.BookingID)
	assert.Equal(t, "Test Inn", res.Hotel)
	assert.Equal(t, "2025-01-01", res.CheckIn)
	assert.Equal(t, 5000, res.Amount)

	f.notification.EXPECT().
		SendQRCode(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ notificationDto.BookingSnapshot, payload string) error {
			var decoded dto.QRPayload
			assert.NoError(t, json.Unmarshal([]byte(payload), &decoded))
			assert.Equal(t, "BN-2025-007", decoded.BookingID)

			return nil
		})

	require.NoError(t, f.svc.SendQR(context.Background(), "7"))
}

func TestBookingService_GetAllScopesStaffToTheirHotel(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleStaff)
	ctx = context.WithValue(ctx, constant.ContextKeyHotelID, "3")

	assertHotel := func(filter gDto.FilterGroup) {
		require.Len(t, filter.Filters, 1)
		assert.Equal(t, int64(3), filter.Filters[0].(gDto.Filter).Value)
	}

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
		assertHotel(filter)

		return 1, nil
	})
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assertHotel(filter)
			assert.Equal(t, constant.DefaultValueSortBy, params.SortBy)

			return []model.Booking{pendingBooking()}, nil
		})

	res, err := f.svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, 9)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	require.Len(t, res.Bookings, 1)
}

func TestBookingService_GetByReference(t *testing.T) {
	t.Run("guest reads by booking number", func(t *testing.T) {
		f := newBookingFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		res, err := f.svc.Get(context.Background(), "BN-2025-007")

		require.NoError(t, err)
		assert.Equal(t, "BN-2025-007", res.BookingID)
	})

	t.Run("guest cannot read by numeric id", func(t *testing.T) {
		f := newBookingFixture(t)

		_, err := f.svc.Get(context.Background(), "7")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("signed in user reads by numeric id", func(t *testing.T) {
		f := newBookingFixture(t)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

		res, err := f.svc.Get(ctx, "7")

		require.NoError(t, err)
		assert.Equal(t, int64(7), res.ID)
	})
}

func TestBookingService_GetHidesOtherHotels(t *testing.T) {
	f := newBookingFixture(t)

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserRole, constant.RoleManager)
	ctx = context.WithValue(ctx, constant.ContextKeyHotelID, "2")

	f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(pendingBooking(), nil)

	_, err := f.svc.Get(ctx, "BN-2025-007")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_ReconcilePending(t *testing.T) {
	f := newBookingFixture(t)

	paid := pendingBooking()
	expired := pendingBooking()
	expired.ID = 8
	expired.BookingID = "BN-2025-008"
	expired.ProviderOrderID = "BN-2025-008_ffff0000"
	active := pendingBooking()
	active.ID = 9
	active.ProviderOrderID = "BN-2025-009_00001111"

	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Booking{paid, expired, active}, nil)

	f.payment.EXPECT().GetOrder(gomock.Any(), paid.ProviderOrderID).Return(cashfree.Order{OrderStatus: cashfree.OrderStatusPaid}, nil)
	f.payment.EXPECT().GetPayments(gomock.Any(), paid.ProviderOrderID).Return([]cashfree.Payment{
		{CFPaymentID: "p-1", PaymentStatus: cashfree.PaymentStatusFailed},
		{CFPaymentID: "p-2", PaymentStatus: cashfree.PaymentStatusSuccess},
	}, nil)
	f.repo.EXPECT().
		TransitionPayment(gomock.Any(), int64(7), model.PaymentStatusPending, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ string, fields map[string]any) (bool, error) {
			assert.Equal(t, model.PaymentStatusCompleted, fields[model.FieldPaymentStatus])
			assert.Equal(t, "p-2", fields[model.FieldTransactionID])

			return true, nil
		})
	f.hotels.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(testInn(), nil)
	f.notification.EXPECT().SendConfirmation(gomock.Any(), gomock.Any()).Return(nil)

	f.payment.EXPECT().GetOrder(gomock.Any(), expired.ProviderOrderID).Return(cashfree.Order{OrderStatus: cashfree.OrderStatusExpired}, nil)
	f.repo.EXPECT().
		TransitionPayment(gomock.Any(), int64(8), model.PaymentStatusPending, gomock.Any()).
		Return(true, nil)

	f.payment.EXPECT().GetOrder(gomock.Any(), active.ProviderOrderID).Return(cashfree.Order{OrderStatus: cashfree.OrderStatusActive}, nil)

	settled, err := f.svc.ReconcilePending(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, settled)
}
