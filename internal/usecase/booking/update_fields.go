package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/alnourclinic/clinic-scheduler/internal/audit"
	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

// Fields are the free-text mutations; nil means "leave unchanged".
// Status changes go through TransitionStatus, schedule changes through
// RescheduleBooking.
type Fields struct {
	Reason *string
	Notes  *string
}

type UpdateBookingFields struct {
	repo  domain.Repository
	audit AuditSink
	log   *zap.Logger
}

func NewUpdateBookingFields(
	repo domain.Repository,
	auditDispatcher AuditSink,
	log *zap.Logger,
) *UpdateBookingFields {
	return &UpdateBookingFields{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
	}
}

func (uc *UpdateBookingFields) Execute(
	ctx context.Context,
	bookingID string,
	fields Fields,
	actor domain.Actor,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	// Role-scoped field access: patients touch the reason of their own
	// pending booking, doctors the notes of their own bookings, staff
	// both on any booking.
	switch {
	case actor.IsStaff():

	case actor.Role == domain.RolePatient:
		if b.PatientID != actor.ID {
			return nil, &domain.TransitionError{Kind: domain.TransitionNotOwner}
		}
		if domain.Status(b.Status) != domain.StatusPending {
			return nil, domain.Err(domain.KindInvalidRole)
		}
		if fields.Notes != nil {
			return nil, domain.Err(domain.KindInvalidRole)
		}

	case actor.Role == domain.RoleDoctor:
		if b.DoctorID != actor.ID {
			return nil, &domain.TransitionError{Kind: domain.TransitionNotOwner}
		}
		if fields.Reason != nil {
			return nil, domain.Err(domain.KindInvalidRole)
		}

	default:
		return nil, domain.Err(domain.KindInvalidRole)
	}

	if fields.Reason != nil {
		b.Reason = *fields.Reason
	}
	if fields.Notes != nil {
		b.Notes = *fields.Notes
	}

	if err := uc.repo.SaveBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "booking_updated",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
