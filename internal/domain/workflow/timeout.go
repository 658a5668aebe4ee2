package workflow

import (
	"math"
	"time"
)

// ExpirationDate returns the instant at which an application entering the
// state at `from` becomes eligible for expiry, or nil when the state has no
// timeout window. Calendar-day arithmetic is used so the wall-clock
// time-of-day survives daylight-saving shifts.
func ExpirationDate(s State, from time.Time) *time.Time {
	meta, ok := stateMetadata[s]
	if !ok || meta.TimeoutDays == 0 {
		return nil
	}
	exp := from.AddDate(0, 0, meta.TimeoutDays)
	return &exp
}

// ExpirationDateFromNow is ExpirationDate anchored at the current instant.
func ExpirationDateFromNow(s State) *time.Time {
	return ExpirationDate(s, time.Now())
}

// DaysUntilExpiry returns the number of calendar days left before an
// application that entered the state at `from` expires, measured at `now`.
// Partial days round up: 1 hour remaining counts as 1 day. Once the window
// has passed the count is zero or negative. The second return is false when
// the state has no timeout window.
func DaysUntilExpiry(s State, from, now time.Time) (int, bool) {
	exp := ExpirationDate(s, from)
	if exp == nil {
		return 0, false
	}
	remaining := exp.Sub(now)
	return int(math.Ceil(remaining.Hours() / 24)), true
}
