package model_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hotelbooker/internal/domains/booking/model"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		t.Fatal(err)
	}

	return parsed
}

func TestNightlyPrice(t *testing.T) {
	tests := []struct {
		roomType string
		want     int
	}{
		{model.RoomTypeSuite, 3000},
		{model.RoomTypeAC, 2500},
		{model.RoomTypeDeluxe, 2000},
		{model.RoomTypeNonAC, 2000},
	}

	for _, tt := range tests {
		t.Run(tt.roomType, func(t *testing.T) {
			assert.Equal(t, tt.want, model.NightlyPrice(tt.roomType, 2000))
		})
	}
}

func TestTotalAmountIsNightlyPriceTimesNights(t *testing.T) {
	for _, roomType := range []string{model.RoomTypeSuite, model.RoomTypeDeluxe, model.RoomTypeAC, model.RoomTypeNonAC} {
		for nights := 1; nights <= 14; nights++ {
			assert.Equal(t, model.NightlyPrice(roomType, 1750)*nights, model.TotalAmount(roomType, 1750, nights))
		}
	}

	assert.Equal(t, 5000, model.TotalAmount(model.RoomTypeAC, 2000, 2))
}

func TestNights(t *testing.T) {
	assert.Equal(t, 2, model.Nights(date(t, "2025-01-01"), date(t, "2025-01-03")))
	assert.Equal(t, 0, model.Nights(date(t, "2025-01-01"), date(t, "2025-01-01")))
	assert.Negative(t, model.Nights(date(t, "2025-01-03"), date(t, "2025-01-01")))

	checkIn := date(t, "2025-01-01")
	assert.Equal(t, 1, model.Nights(checkIn, checkIn.Add(90*time.Minute)))
}

func TestFormatBookingNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^BN-\d{4}-\d+$`)

	assert.Equal(t, "BN-2025-007", model.FormatBookingNumber(2025, 7))
	assert.Equal(t, "BN-2025-1234", model.FormatBookingNumber(2025, 1234))
	assert.Regexp(t, pattern, model.FormatBookingNumber(2026, 1))
}
