package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/alnourclinic/clinic-scheduler/internal/audit"
	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

type RescheduleBooking struct {
	repo   domain.Repository
	policy domain.Policy
	clock  domain.Clock
	audit  AuditSink
	log    *zap.Logger
}

func NewRescheduleBooking(
	repo domain.Repository,
	policy domain.Policy,
	clock domain.Clock,
	auditDispatcher AuditSink,
	log *zap.Logger,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:   repo,
		policy: policy,
		clock:  clock,
		audit:  auditDispatcher,
		log:    log,
	}
}

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	bookingID string,
	newScheduledAt time.Time,
	actor domain.Actor,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	current := domain.Status(b.Status)
	if current.IsTerminal() {
		return nil, &domain.TransitionError{Kind: domain.TransitionTerminal, From: current, To: current}
	}

	// Staff moves any booking; a patient may move their own booking only
	// while it is still pending. Doctors do not reschedule.
	if !actor.IsStaff() {
		if actor.Role != domain.RolePatient ||
			b.PatientID != actor.ID ||
			current != domain.StatusPending {
			return nil, domain.Err(domain.KindInvalidRole)
		}
	}

	now := uc.clock.Now()
	if err := validateSchedule(uc.policy, newScheduledAt, now); err != nil {
		return nil, err
	}

	b.ScheduledAt = newScheduledAt

	// the booking's own prior slot must not count against it
	proposal := domain.Proposal{
		PatientID:   b.PatientID,
		DoctorID:    b.DoctorID,
		ScheduledAt: newScheduledAt,
		ExcludeID:   b.ID,
	}

	err = uc.repo.UpdateBookingSchedule(ctx, b, proposal, uc.policy.SlotWindow(), conflictCheck(uc.policy, proposal))
	if err != nil {
		return nil, err
	}

	uc.log.Info("booking rescheduled",
		zap.String("booking_id", b.ID),
		zap.Time("scheduled_at", b.ScheduledAt),
	)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "booking_rescheduled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
