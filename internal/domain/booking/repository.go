package booking

import (
	"context"
	"time"

	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

// ConflictCheck inspects a proposal's competing bookings while the
// repository holds them locked. Returning an error aborts the write, so
// the check-then-write sequence is a single atomic unit.
type ConflictCheck func(patientSameDay, doctorNearby []models.Booking) error

// ListFilter narrows booking queries. Zero values mean "no restriction".
type ListFilter struct {
	PatientID string
	DoctorID  string
	Status    Status

	From time.Time
	To   time.Time

	ExcludeCancelled bool
}

// Stats is the per-status booking census for the staff dashboard.
type Stats struct {
	Total     int64 `json:"total_bookings"`
	Pending   int64 `json:"pending_bookings"`
	Confirmed int64 `json:"confirmed_bookings"`
	Completed int64 `json:"completed_bookings"`
	Cancelled int64 `json:"cancelled_bookings"`
	Today     int64 `json:"today_bookings"`
	Upcoming  int64 `json:"upcoming_bookings"`
}

type Repository interface {
	// -------- Booking (create / reschedule, atomic) --------

	// CreateBooking locks the proposal's competing bookings, runs check,
	// and inserts only when it passes.
	CreateBooking(ctx context.Context, b *models.Booking, p Proposal, window time.Duration, check ConflictCheck) error

	// UpdateBookingSchedule does the same for a reschedule, and rejects
	// the write with a stale_write error when b.Version no longer
	// matches the stored row.
	UpdateBookingSchedule(ctx context.Context, b *models.Booking, p Proposal, window time.Duration, check ConflictCheck) error

	// -------- Booking (load / mutate) --------

	GetBooking(ctx context.Context, id string) (*models.Booking, error)

	// SaveBooking persists status/field changes with an optimistic
	// version check.
	SaveBooking(ctx context.Context, b *models.Booking) error

	// DeleteBooking is the administrative hard delete.
	DeleteBooking(ctx context.Context, id string) error

	// -------- Existing-bookings queries (exclude cancelled) --------

	BookingsForPatientOnDate(ctx context.Context, patientID string, day time.Time) ([]models.Booking, error)
	BookingsForDoctorNear(ctx context.Context, doctorID string, at time.Time, window time.Duration) ([]models.Booking, error)
	BookingsForDoctorOnDate(ctx context.Context, doctorID string, day time.Time) ([]models.Booking, error)

	// -------- Listing / stats --------

	ListBookings(ctx context.Context, f ListFilter) ([]models.Booking, error)
	BookingStats(ctx context.Context, now time.Time) (*Stats, error)
}

// AccountRef is the scheduler's view of an account: identity, role tag
// and whether it may participate in new bookings.
type AccountRef struct {
	ID     string
	Role   ActorRole
	Active bool
}

// AccountDirectory resolves account references at mutation time. Account
// management itself belongs to another service.
type AccountDirectory interface {
	ResolveAccount(ctx context.Context, id string) (*AccountRef, error)
}
