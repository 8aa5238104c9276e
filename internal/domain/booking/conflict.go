package booking

import (
	"time"

	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

// ===============================
// Conflict Checker
// ===============================

// Proposal is a candidate (patient, doctor, datetime) to be admitted
// against the existing non-cancelled bookings. ExcludeID names the
// booking being rescheduled so it does not collide with itself.
type Proposal struct {
	PatientID   string
	DoctorID    string
	ScheduledAt time.Time
	ExcludeID   string
}

// HasPatientDayConflict reports whether any existing booking for the
// same patient falls on the same calendar date. The caller supplies a
// set already scoped to the patient and stripped of cancelled bookings.
func HasPatientDayConflict(p Proposal, existing []models.Booking) bool {
	for _, b := range existing {
		if b.ID == p.ExcludeID {
			continue
		}
		if b.PatientID != p.PatientID {
			continue
		}
		if SameDay(b.ScheduledAt, p.ScheduledAt) {
			return true
		}
	}
	return false
}

// HasDoctorSlotConflict reports whether any existing booking for the
// same doctor sits inside the half-open window
// [scheduledAt - slot, scheduledAt + slot). The asymmetry is deliberate:
// a booking exactly one slot later is fine, one slot earlier is not yet
// finished when the proposal starts.
func HasDoctorSlotConflict(p Proposal, existing []models.Booking, slot time.Duration) bool {
	windowStart := p.ScheduledAt.Add(-slot)
	windowEnd := p.ScheduledAt.Add(slot)

	for _, b := range existing {
		if b.ID == p.ExcludeID {
			continue
		}
		if b.DoctorID != p.DoctorID {
			continue
		}
		if !b.ScheduledAt.Before(windowStart) && b.ScheduledAt.Before(windowEnd) {
			return true
		}
	}
	return false
}

// SameDay compares calendar dates in b's location.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
