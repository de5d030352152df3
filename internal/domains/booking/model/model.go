package model

import (
	"hotelbooker/shared/model"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldBookingID       = "booking_id"
	FieldHotelID         = "hotel_id"
	FieldGuestName       = "guest_name"
	FieldGuestContact    = "guest_contact"
	FieldGuestEmail      = "guest_email"
	FieldCheckInDate     = "check_in_date"
	FieldCheckOutDate    = "check_out_date"
	FieldRoomType        = "room_type"
	FieldTotalAmount     = "total_amount"
	FieldSpecialRequests = "special_requests"
	FieldPaymentStatus   = "payment_status"
	FieldTransactionID   = "transaction_id"
	FieldProviderOrderID = "provider_order_id"
	FieldStatus          = "status"
)

const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

const (
	RoomTypeSuite  = "suite"
	RoomTypeDeluxe = "deluxe"
	RoomTypeAC     = "ac"
	RoomTypeNonAC  = "non-ac"
)

type Booking struct {
	ID              int64     `db:"id"`
	BookingID       string    `db:"booking_id"`
	HotelID         int64     `db:"hotel_id"`
	GuestName       string    `db:"guest_name"`
	GuestContact    string    `db:"guest_contact"`
	GuestEmail      string    `db:"guest_email"`
	CheckInDate     time.Time `db:"check_in_date"`
	CheckOutDate    time.Time `db:"check_out_date"`
	RoomType        string    `db:"room_type"`
	TotalAmount     int       `db:"total_amount"`
	SpecialRequests string    `db:"special_requests"`
	PaymentStatus   string    `db:"payment_status"`
	TransactionID   string    `db:"transaction_id"`
	ProviderOrderID string    `db:"provider_order_id"`
	Status          string    `db:"status"`
	model.Metadata
}

func (b Booking) IsPending() bool {
	return b.PaymentStatus == PaymentStatusPending
}

func (b Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}
