package identity

import (
	"fmt"
	"time"

	"github.com/civilregistry/backend/internal/domain/shared"
)

// Right is a named permission held by a civil-status officer.
type Right string

const (
	// RightDeliver allows reconciling mentions during a delivery
	RightDeliver Right = "DELIVER"
	// RightSignMention allows composing and signing mention documents
	RightSignMention Right = "SIGN_MENTION"
	// RightUpdateAct allows updating an act, including abandoning draft mentions
	RightUpdateAct Right = "UPDATE_ACT"
)

// ServiceAddress is the address of the consular or municipal service an
// officer is attached to. The time zone drives every local-time rule.
type ServiceAddress struct {
	City     string
	Region   string
	Country  string
	TimeZone string
}

// Officer is the acting civil-status officer. Officers are provisioned by the
// rights-management system and referenced here by their external identifier.
type Officer struct {
	shared.BaseEntity
	ExternalID  string
	FirstName   string
	LastName    string
	ServiceName string
	Address     *ServiceAddress
	Rights      []Right
}

// HasRight reports whether the officer holds the given right.
func (o *Officer) HasRight(right Right) bool {
	for _, r := range o.Rights {
		if r == right {
			return true
		}
	}
	return false
}

// RequireRight fails with PERMISSION_DENIED unless the officer holds the right.
func (o *Officer) RequireRight(right Right) error {
	if !o.HasRight(right) {
		return shared.NewDomainError("PERMISSION_DENIED",
			fmt.Sprintf("officer %s does not hold right %s", o.ExternalID, right))
	}
	return nil
}

// Location resolves the officer's local time zone from the service address.
// A missing address fails with SERVICE_ADDRESS_MISSING, an unparsable zone
// with INVALID_TIME_ZONE carrying the offending zone string.
func (o *Officer) Location() (*time.Location, error) {
	if o.Address == nil || o.Address.TimeZone == "" {
		return nil, shared.NewDomainError("SERVICE_ADDRESS_MISSING",
			fmt.Sprintf("no service address with a time zone for service %s", o.ServiceName))
	}
	loc, err := time.LoadLocation(o.Address.TimeZone)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TIME_ZONE",
			fmt.Sprintf("invalid time zone %q for service %s", o.Address.TimeZone, o.ServiceName))
	}
	return loc, nil
}

// LocalDate returns the calendar date at the officer's service, truncated to
// midnight in the service time zone.
func (o *Officer) LocalDate(now time.Time) (time.Time, error) {
	loc, err := o.Location()
	if err != nil {
		return time.Time{}, err
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), nil
}
