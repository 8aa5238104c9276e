package dto

import (
	"time"

	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

// PersonSummary is the participant projection embedded in booking
// responses; it never leaks credentials or contact details to peers.
type PersonSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// BookingItem is the wire shape of a booking for list and detail
// responses.
type BookingItem struct {
	ID          string        `json:"id"`
	Patient     PersonSummary `json:"patient"`
	Doctor      PersonSummary `json:"doctor"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	Status      string        `json:"status"`
	Reason      string        `json:"reason"`
	Notes       string        `json:"notes"`
	Version     int64         `json:"version"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func FromBooking(b *models.Booking) BookingItem {
	return BookingItem{
		ID: b.ID,
		Patient: PersonSummary{
			ID:       b.PatientID,
			FullName: b.Patient.FullName,
		},
		Doctor: PersonSummary{
			ID:       b.DoctorID,
			FullName: b.Doctor.FullName,
		},
		ScheduledAt: b.ScheduledAt,
		Status:      b.Status,
		Reason:      b.Reason,
		Notes:       b.Notes,
		Version:     b.Version,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func FromBookings(bs []models.Booking) []BookingItem {
	items := make([]BookingItem, 0, len(bs))
	for i := range bs {
		items = append(items, FromBooking(&bs[i]))
	}
	return items
}
