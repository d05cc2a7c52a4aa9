package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/civilregistry/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfficerRequireRight(t *testing.T) {
	officer := &Officer{
		ExternalID: "jdupont@diplo",
		Rights:     []Right{RightDeliver, RightUpdateAct},
	}

	assert.NoError(t, officer.RequireRight(RightDeliver))
	assert.NoError(t, officer.RequireRight(RightUpdateAct))

	err := officer.RequireRight(RightSignMention)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "PERMISSION_DENIED", domainErr.Code)
}

func TestOfficerLocation(t *testing.T) {
	t.Run("resolves zone from service address", func(t *testing.T) {
		officer := &Officer{
			ServiceName: "Consulat de Tokyo",
			Address:     &ServiceAddress{City: "Tokyo", TimeZone: "Asia/Tokyo"},
		}

		loc, err := officer.Location()
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tokyo", loc.String())
	})

	t.Run("missing address", func(t *testing.T) {
		officer := &Officer{ServiceName: "Consulat de Tokyo"}

		_, err := officer.Location()
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "SERVICE_ADDRESS_MISSING", domainErr.Code)
	})

	t.Run("unparsable zone", func(t *testing.T) {
		officer := &Officer{
			ServiceName: "Consulat de Tokyo",
			Address:     &ServiceAddress{TimeZone: "Mars/Olympus"},
		}

		_, err := officer.Location()
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_TIME_ZONE", domainErr.Code)
	})
}

func TestOfficerLocalDate(t *testing.T) {
	officer := &Officer{
		Address: &ServiceAddress{TimeZone: "Pacific/Noumea"}, // UTC+11
	}

	// 23:30 UTC on the 14th is already the 15th in Noumea.
	now := time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC)
	day, err := officer.LocalDate(now)
	require.NoError(t, err)
	assert.Equal(t, 15, day.Day())
	assert.Equal(t, 0, day.Hour())
}
