package dto

// BookingSnapshot is the booking data rendered into guest emails.
type BookingSnapshot struct {
	BookingID     string
	GuestName     string
	GuestEmail    string
	HotelName     string
	CheckInDate   string
	CheckOutDate  string
	RoomType      string
	TotalAmount   int
	TransactionID string
}

func (b BookingSnapshot) HasRecipient() bool {
	return b.GuestEmail != ""
}
