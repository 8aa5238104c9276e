package booking

import "time"

// Clock supplies "now" so that future-date and business-hour checks can
// be tested with a fixed time.
type Clock interface {
	Now() time.Time
}

type locationClock struct {
	loc *time.Location
}

// NewClock returns a Clock reading wall time in loc, the single timezone
// authority for the whole system.
func NewClock(loc *time.Location) Clock {
	return locationClock{loc: loc}
}

func (c locationClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return c.T
}
