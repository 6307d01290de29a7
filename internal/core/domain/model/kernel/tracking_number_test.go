package kernel_test

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"swiftdrop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackingNumber(t *testing.T) {
	t.Run("should match documented format", func(t *testing.T) {
		pattern := regexp.MustCompile(`^BB\d{8}[A-Z0-9]{4}$`)
		createdAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

		tn := kernel.NewTrackingNumber(createdAt)

		require.NoError(t, tn.Validate())
		assert.Regexp(t, pattern, tn.String())
		assert.Len(t, tn.String(), 14)
	})

	t.Run("should embed last eight digits of creation timestamp", func(t *testing.T) {
		createdAt := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
		wantDigits := fmt.Sprintf("%d", createdAt.Unix())
		wantDigits = wantDigits[len(wantDigits)-8:]

		tn := kernel.NewTrackingNumber(createdAt)

		assert.Equal(t, wantDigits, tn.String()[2:10])
	})

	t.Run("random suffix varies between generations", func(t *testing.T) {
		createdAt := time.Now()

		seen := make(map[string]bool)
		for range 50 {
			seen[kernel.NewTrackingNumber(createdAt).String()] = true
		}

		// 50 draws from a 36^4 space; a single repeated value would be
		// suspicious, all 50 identical would be a broken generator.
		assert.Greater(t, len(seen), 1)
	})
}

func TestTrackingNumberFromString(t *testing.T) {
	t.Run("should accept well-formed value", func(t *testing.T) {
		tn, err := kernel.TrackingNumberFromString("BB56891234K7QX")

		require.NoError(t, err)
		assert.Equal(t, "BB56891234K7QX", tn.String())
	})

	t.Run("should reject malformed values", func(t *testing.T) {
		malformed := []string{
			"",
			"BB1234K7QX",        // timestamp too short
			"XX56891234K7QX",    // wrong prefix
			"BB56891234k7qx",    // lowercase suffix
			"BB56891234K7QX9",   // too long
			"BBABCDEFGHK7QX",    // non-digit timestamp
			"bb56891234K7QX",    // lowercase prefix
		}

		for _, s := range malformed {
			_, err := kernel.TrackingNumberFromString(s)
			require.Error(t, err, "expected %q to be rejected", s)
		}
	})
}

func TestTrackingNumber_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var tn kernel.TrackingNumber

		err := tn.Validate()

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrTrackingNumberIsNotConstructed)
	})
}

func TestTrackingNumber_IsEqual(t *testing.T) {
	tn1, err := kernel.TrackingNumberFromString("BB56891234K7QX")
	require.NoError(t, err)
	tn2, err := kernel.TrackingNumberFromString("BB56891234K7QX")
	require.NoError(t, err)
	tn3, err := kernel.TrackingNumberFromString("BB56891234AAAA")
	require.NoError(t, err)

	assert.True(t, tn1.IsEqual(tn2))
	assert.False(t, tn1.IsEqual(tn3))
}
