// Package timezone pins wall clock reads to APP_TIMEZONE. Booking numbers
// take their year from it and audit columns are stamped with it. Names must
// come from the IANA database, e.g. "Asia/Kolkata"; anything else falls back
// to UTC.
package timezone

import (
	"hotelbooker/config"
	"time"

	"github.com/rs/zerolog/log"
)

var location = time.UTC

func init() {
	location = load(config.Get().App.Timezone)
}

func load(name string) *time.Location {
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, using UTC")

		return time.UTC
	}

	return loc
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(location)
}

// Format renders t as wall clock time in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(location).Format(layout)
}
