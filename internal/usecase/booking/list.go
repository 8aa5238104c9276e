package booking

import (
	"context"
	"time"

	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

// Named views over the booking list, matching the clinic's front-desk
// screens.
type ListView string

const (
	ViewAll      ListView = ""
	ViewToday    ListView = "today"
	ViewUpcoming ListView = "upcoming"
	ViewPast     ListView = "past"
)

type ListQuery struct {
	Actor domain.Actor
	View  ListView

	Status domain.Status

	// staff-only filters
	DoctorID  string
	PatientID string
}

type ListBookings struct {
	repo  domain.Repository
	clock domain.Clock
}

func NewListBookings(repo domain.Repository, clock domain.Clock) *ListBookings {
	return &ListBookings{repo: repo, clock: clock}
}

// Execute lists bookings scoped to what the actor may see: patients and
// doctors their own, staff everything.
func (uc *ListBookings) Execute(
	ctx context.Context,
	q ListQuery,
) ([]models.Booking, error) {

	f := domain.ListFilter{Status: q.Status}

	switch q.Actor.Role {
	case domain.RolePatient:
		f.PatientID = q.Actor.ID
	case domain.RoleDoctor:
		f.DoctorID = q.Actor.ID
	case domain.RoleReceptionist, domain.RoleAdmin:
		f.PatientID = q.PatientID
		f.DoctorID = q.DoctorID
	default:
		return nil, domain.Err(domain.KindInvalidRole)
	}

	now := uc.clock.Now()

	switch q.View {
	case ViewToday:
		f.From = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		f.To = f.From.Add(24 * time.Hour)
		f.ExcludeCancelled = true
	case ViewUpcoming:
		f.From = now
		f.To = now.AddDate(0, 0, 7)
		f.ExcludeCancelled = true
	case ViewPast:
		f.To = now
	}

	return uc.repo.ListBookings(ctx, f)
}

type GetBooking struct {
	repo domain.Repository
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo}
}

// Execute loads one booking, visible only to its patient, its doctor, or
// staff.
func (uc *GetBooking) Execute(
	ctx context.Context,
	bookingID string,
	actor domain.Actor,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.IsStaff() && !domain.IsOwner(b, actor) {
		return nil, domain.Err(domain.KindNotFound)
	}

	return b, nil
}
