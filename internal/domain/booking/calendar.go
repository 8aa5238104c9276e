package booking

import "time"

// ===============================
// Calendar Policy
// ===============================

// Policy encodes the clinic's wall-clock rules. All predicates are pure;
// callers decide whether a false answer is an error.
type Policy struct {
	WorkStartHour int
	WorkEndHour   int
	SlotMinutes   int
	ClosedWeekday time.Weekday
}

// DefaultPolicy is the clinic schedule: 08:00-20:00, 30-minute slots,
// closed on Fridays.
func DefaultPolicy() Policy {
	return Policy{
		WorkStartHour: 8,
		WorkEndHour:   20,
		SlotMinutes:   30,
		ClosedWeekday: time.Friday,
	}
}

func (p Policy) WithinBusinessHours(ts time.Time) bool {
	h := ts.Hour()
	return h >= p.WorkStartHour && h < p.WorkEndHour
}

func (p Policy) IsClosedDay(ts time.Time) bool {
	return ts.Weekday() == p.ClosedWeekday
}

func (p Policy) IsFuture(ts, now time.Time) bool {
	return ts.After(now)
}

// SlotWindow is the doctor-exclusivity window around a booking.
func (p Policy) SlotWindow() time.Duration {
	return time.Duration(p.SlotMinutes) * time.Minute
}

// SlotsPerDay is the number of candidate slots on a working day.
func (p Policy) SlotsPerDay() int {
	return (p.WorkEndHour - p.WorkStartHour) * 60 / p.SlotMinutes
}
