package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"hotelbooker/shared/password"
)

func TestHash(t *testing.T) {
	t.Run("front desk password", func(t *testing.T) {
		hashed, err := password.Hash("frontdesk-2026")
		require.NoError(t, err)

		cost, err := bcrypt.Cost([]byte(hashed))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.DefaultCost, cost)
		assert.NoError(t, password.Verify("frontdesk-2026", hashed))
	})

	t.Run("same password salts differently", func(t *testing.T) {
		first, err := password.Hash("supersecret")
		require.NoError(t, err)

		second, err := password.Hash("supersecret")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := password.Hash("")

		assert.ErrorIs(t, err, password.ErrEmptyPassword)
	})

	t.Run("exactly the bcrypt limit", func(t *testing.T) {
		_, err := password.Hash(strings.Repeat("k", 72))

		assert.NoError(t, err)
	})

	t.Run("over the bcrypt limit", func(t *testing.T) {
		_, err := password.Hash(strings.Repeat("k", 73))

		assert.ErrorIs(t, err, password.ErrPasswordTooLong)
	})
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("Résidence#42")
	require.NoError(t, err)

	tests := []struct {
		name    string
		plain   string
		hashed  string
		invalid bool
		broken  bool
	}{
		{name: "match", plain: "Résidence#42", hashed: hashed},
		{name: "wrong case", plain: "résidence#42", hashed: hashed, invalid: true},
		{name: "no password", plain: "", hashed: hashed, invalid: true},
		{name: "account without hash", plain: "Résidence#42", hashed: "", invalid: true},
		{name: "corrupted hash", plain: "Résidence#42", hashed: hashed[:20], broken: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.plain, tt.hashed)

			switch {
			case tt.invalid:
				assert.ErrorIs(t, err, password.ErrInvalidPassword)
			case tt.broken:
				require.Error(t, err)
				assert.NotErrorIs(t, err, password.ErrInvalidPassword)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
