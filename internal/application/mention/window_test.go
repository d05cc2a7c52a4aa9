package mention

import (
	"errors"
	"testing"
	"time"

	"github.com/civilregistry/backend/internal/domain/identity"
	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parisOfficer() *identity.Officer {
	return &identity.Officer{
		ServiceName: "Mairie de Paris",
		Address:     &identity.ServiceAddress{City: "Paris", TimeZone: "Europe/Paris"},
	}
}

func TestSigningWindowAssertOutside(t *testing.T) {
	window, err := NewSigningWindow("22:30", "23:30")
	require.NoError(t, err)

	// 21:00 UTC is 23:00 in Paris (CEST in July): inside the window.
	t.Run("inside window is blocked", func(t *testing.T) {
		now := time.Date(2024, 7, 10, 21, 0, 0, 0, time.UTC)
		err := window.AssertOutside(parisOfficer(), now)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SIGNING_WINDOW_CLOSED", domainErr.Code)
	})

	t.Run("outside window passes", func(t *testing.T) {
		now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
		assert.NoError(t, window.AssertOutside(parisOfficer(), now))
	})

	// The interval is exclusive-open: signing exactly at a bound is allowed.
	t.Run("exactly at start passes", func(t *testing.T) {
		now := time.Date(2024, 7, 10, 20, 30, 0, 0, time.UTC) // 22:30 Paris
		assert.NoError(t, window.AssertOutside(parisOfficer(), now))
	})

	t.Run("exactly at end passes", func(t *testing.T) {
		now := time.Date(2024, 7, 10, 21, 30, 0, 0, time.UTC) // 23:30 Paris
		assert.NoError(t, window.AssertOutside(parisOfficer(), now))
	})

	// Seconds count: 22:30:45 is already past the bound, not still "at" it.
	t.Run("seconds past the start are blocked", func(t *testing.T) {
		now := time.Date(2024, 7, 10, 20, 30, 45, 0, time.UTC) // 22:30:45 Paris
		err := window.AssertOutside(parisOfficer(), now)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SIGNING_WINDOW_CLOSED", domainErr.Code)
	})

	t.Run("seconds before the end are blocked", func(t *testing.T) {
		now := time.Date(2024, 7, 10, 21, 29, 59, 0, time.UTC) // 23:29:59 Paris
		err := window.AssertOutside(parisOfficer(), now)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SIGNING_WINDOW_CLOSED", domainErr.Code)
	})

	t.Run("missing service address", func(t *testing.T) {
		officer := &identity.Officer{ServiceName: "Mairie de Paris"}
		err := window.AssertOutside(officer, time.Now())
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SERVICE_ADDRESS_MISSING", domainErr.Code)
	})

	t.Run("invalid zone", func(t *testing.T) {
		officer := &identity.Officer{
			Address: &identity.ServiceAddress{TimeZone: "Nowhere/Invalid"},
		}
		err := window.AssertOutside(officer, time.Now())
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_TIME_ZONE", domainErr.Code)
	})
}

func TestNewSigningWindowRejectsBadBounds(t *testing.T) {
	_, err := NewSigningWindow("25:00", "23:30")
	assert.Error(t, err)

	_, err = NewSigningWindow("22:30", "midnight")
	assert.Error(t, err)
}
