package timezone_test

import (
	"hotelbooker/shared/timezone"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	before := time.Now()
	now := timezone.Now()

	assert.WithinDuration(t, before, now, time.Second)
	assert.Equal(t, now.Location(), timezone.Now().Location())
}

func TestFormat_KeepsTheInstant(t *testing.T) {
	settledAt := time.Date(2026, 12, 31, 23, 30, 0, 0, time.UTC)

	formatted := timezone.Format(settledAt, time.RFC3339)

	parsed, err := time.Parse(time.RFC3339, formatted)
	require.NoError(t, err)
	assert.True(t, settledAt.Equal(parsed))
}

func TestFormat_UsesAppLocation(t *testing.T) {
	settledAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, settledAt.In(timezone.Now().Location()).Format(time.DateTime), timezone.Format(settledAt, time.DateTime))
}
