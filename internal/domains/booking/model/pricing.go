package model

import (
	"fmt"
	"math"
	"time"
)

const (
	SurchargeSuite = 1000
	SurchargeAC    = 500

	day = 24 * time.Hour
)

// NightlyPrice adds the room type surcharge to the hotel base rate.
func NightlyPrice(roomType string, baseRate int) int {
	switch roomType {
	case RoomTypeSuite:
		return baseRate + SurchargeSuite
	case RoomTypeAC:
		return baseRate + SurchargeAC
	default:
		return baseRate
	}
}

// Nights rounds partial days up. Zero or negative means the stay is invalid.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(float64(checkOut.Sub(checkIn)) / float64(day)))
}

func TotalAmount(roomType string, baseRate, nights int) int {
	return NightlyPrice(roomType, baseRate) * nights
}

func FormatBookingNumber(year int, seq int64) string {
	return fmt.Sprintf("BN-%d-%03d", year, seq)
}
