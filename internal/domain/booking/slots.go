package booking

import (
	"time"

	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

// ===============================
// Slot Generator
// ===============================

// AvailableSlots enumerates the bookable slot start times for a doctor
// on date, in ascending order. existing must hold the doctor's
// non-cancelled bookings for that date.
//
// Slots are excluded by exact match against existing bookings, not by
// the +-slot window the conflict checker uses for creation: candidates
// are already quantized to the same grid, so an exact hit is the only
// possible collision when browsing. The two notions must stay separate.
//
// A past date is an invalid request (past_date error); the closed
// weekday is a valid request with zero results.
func AvailableSlots(p Policy, date time.Time, now time.Time, existing []models.Booking) ([]time.Time, error) {
	loc := now.Location()
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if day.Before(today) {
		return nil, Err(KindPastDate)
	}

	if p.IsClosedDay(day) {
		return []time.Time{}, nil
	}

	isToday := day.Equal(today)

	slots := make([]time.Time, 0, p.SlotsPerDay())
	step := time.Duration(p.SlotMinutes) * time.Minute
	start := day.Add(time.Duration(p.WorkStartHour) * time.Hour)
	end := day.Add(time.Duration(p.WorkEndHour) * time.Hour)

	for cur := start; cur.Before(end); cur = cur.Add(step) {
		if isToday && !cur.After(now) {
			continue
		}
		if isBooked(cur, existing) {
			continue
		}
		slots = append(slots, cur)
	}

	return slots, nil
}

func isBooked(slot time.Time, existing []models.Booking) bool {
	for _, b := range existing {
		if b.ScheduledAt.Equal(slot) {
			return true
		}
	}
	return false
}
