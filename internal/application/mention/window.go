package mention

import (
	"fmt"
	"time"

	"github.com/civilregistry/backend/internal/domain/identity"
	"github.com/civilregistry/backend/internal/domain/shared"
)

// SigningWindow is the daily interval during which signing is forbidden,
// expressed in the officer's local time. The interval is exclusive-open:
// signing exactly at a bound is allowed.
type SigningWindow struct {
	start time.Time
	end   time.Time
	// original bound strings, kept for error reporting
	startRaw string
	endRaw   string
}

// NewSigningWindow parses the two clock-boundary strings ("15:04" layout)
// delimiting the forbidden interval.
func NewSigningWindow(start, end string) (SigningWindow, error) {
	s, err := time.Parse("15:04", start)
	if err != nil {
		return SigningWindow{}, fmt.Errorf("invalid signing window start %q: %w", start, err)
	}
	e, err := time.Parse("15:04", end)
	if err != nil {
		return SigningWindow{}, fmt.Errorf("invalid signing window end %q: %w", end, err)
	}
	return SigningWindow{start: s, end: e, startRaw: start, endRaw: end}, nil
}

// AssertOutside fails with SIGNING_WINDOW_CLOSED when the instant, in the
// officer's local time zone, falls strictly inside the forbidden interval.
// Zone resolution failures surface as SERVICE_ADDRESS_MISSING or
// INVALID_TIME_ZONE.
func (w SigningWindow) AssertOutside(officer *identity.Officer, now time.Time) error {
	loc, err := officer.Location()
	if err != nil {
		return err
	}

	local := now.In(loc)
	// Full time-of-day comparison: 22:30:45 is strictly after a 22:30 bound.
	elapsed := time.Duration(local.Hour())*time.Hour +
		time.Duration(local.Minute())*time.Minute +
		time.Duration(local.Second())*time.Second +
		time.Duration(local.Nanosecond())
	startElapsed := time.Duration(w.start.Hour())*time.Hour + time.Duration(w.start.Minute())*time.Minute
	endElapsed := time.Duration(w.end.Hour())*time.Hour + time.Duration(w.end.Minute())*time.Minute

	if elapsed > startElapsed && elapsed < endElapsed {
		return shared.NewDomainError("SIGNING_WINDOW_CLOSED",
			fmt.Sprintf("signing is blocked between %s and %s local time", w.startRaw, w.endRaw))
	}
	return nil
}
