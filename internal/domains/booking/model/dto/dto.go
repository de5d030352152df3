package dto

import (
	"hotelbooker/internal/domains/booking/model"
	"hotelbooker/shared"
	"hotelbooker/shared/constant"
	gModel "hotelbooker/shared/model"
	"hotelbooker/shared/timezone"
	"strings"
	"time"
)

type CreateBookingRequest struct {
	HotelID         int64  `json:"hotelId"         validate:"required,gt=0"`
	GuestName       string `json:"guestName"       validate:"required,notblank,max=100"`
	GuestContact    string `json:"guestContact"    validate:"required,notblank,min=10,max=20"`
	GuestEmail      string `json:"guestEmail"      validate:"omitempty,email,max=100"`
	CheckInDate     string `json:"checkInDate"     validate:"required,datetime=2006-01-02"`
	CheckOutDate    string `json:"checkOutDate"    validate:"required,datetime=2006-01-02"`
	RoomType        string `json:"roomType"        validate:"required,oneof=suite deluxe ac non-ac"`
	SpecialRequests string `json:"specialRequests" validate:"omitempty,max=1000"`
}

// Dates parses both stay dates. Validation guarantees the layout for requests
// that went through the validator.
func (c *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return checkIn, checkOut, err
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, c.CheckOutDate)

	return checkIn, checkOut, err
}

func (c *CreateBookingRequest) ToModel(user, bookingID string, checkIn, checkOut time.Time, totalAmount int) model.Booking {
	return model.Booking{
		BookingID:       bookingID,
		HotelID:         c.HotelID,
		GuestName:       strings.TrimSpace(c.GuestName),
		GuestContact:    strings.TrimSpace(c.GuestContact),
		GuestEmail:      strings.TrimSpace(c.GuestEmail),
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		RoomType:        c.RoomType,
		TotalAmount:     totalAmount,
		SpecialRequests: c.SpecialRequests,
		PaymentStatus:   model.PaymentStatusPending,
		Status:          model.StatusConfirmed,
		Metadata:        gModel.NewMetadata(user, timezone.Now()),
	}
}

// UpdatePaymentRequest is the outcome reported by the client after checkout.
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" validate:"required,oneof=completed failed"`
	TransactionID string `json:"transactionId" validate:"omitempty,max=100"`
}

type BookingResponse struct {
	ID              int64  `json:"id"`
	BookingID       string `json:"bookingId"`
	HotelID         int64  `json:"hotelId"`
	GuestName       string `json:"guestName"`
	GuestContact    string `json:"guestContact"`
	GuestEmail      string `json:"guestEmail,omitempty"`
	CheckInDate     string `json:"checkInDate"`
	CheckOutDate    string `json:"checkOutDate"`
	RoomType        string `json:"roomType"`
	TotalAmount     int    `json:"totalAmount"`
	SpecialRequests string `json:"specialRequests,omitempty"`
	PaymentStatus   string `json:"paymentStatus"`
	TransactionID   string `json:"transactionId,omitempty"`
	ProviderOrderID string `json:"providerOrderId,omitempty"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.HotelID = model.HotelID
	r.GuestName = model.GuestName
	r.GuestContact = model.GuestContact
	r.GuestEmail = model.GuestEmail
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.RoomType = model.RoomType
	r.TotalAmount = model.TotalAmount
	r.SpecialRequests = model.SpecialRequests
	r.PaymentStatus = model.PaymentStatus
	r.TransactionID = model.TransactionID
	r.ProviderOrderID = model.ProviderOrderID
	r.Status = model.Status
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"totalPage"`
	TotalData int               `json:"totalData"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type CheckoutResponse struct {
	BookingID        string `json:"bookingId"`
	OrderID          string `json:"orderId"`
	PaymentSessionID string `json:"paymentSessionId"`
	OrderStatus      string `json:"orderStatus"`
	Amount           int    `json:"amount"`
}

// QRPayload is the data encoded into the check-in QR code.
type QRPayload struct {
	Type      string `json:"type"`
	BookingID string `json:"bookingId"`
	Guest     string `json:"guest"`
	Hotel     string `json:"hotel"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Amount    int    `json:"amount"`
	Generated string `json:"generated"`
}

const QRPayloadType = "BOOK_NEO_BOOKING"

// PaymentOutcome reports what an asynchronous payment notification changed.
type PaymentOutcome struct {
	BookingID     string `json:"bookingId"`
	PaymentStatus string `json:"paymentStatus"`
	Applied       bool   `json:"applied"`
}
