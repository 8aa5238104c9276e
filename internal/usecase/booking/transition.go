package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/alnourclinic/clinic-scheduler/internal/audit"
	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
	"github.com/alnourclinic/clinic-scheduler/internal/notify"
)

type TransitionStatus struct {
	repo   domain.Repository
	clock  domain.Clock
	notify NotifySink
	audit  AuditSink
	log    *zap.Logger
}

func NewTransitionStatus(
	repo domain.Repository,
	clock domain.Clock,
	notifyDispatcher NotifySink,
	auditDispatcher AuditSink,
	log *zap.Logger,
) *TransitionStatus {
	return &TransitionStatus{
		repo:   repo,
		clock:  clock,
		notify: notifyDispatcher,
		audit:  auditDispatcher,
		log:    log,
	}
}

// Execute moves a booking to next. reason is only consulted on
// cancellation, where it is appended to the notes.
func (uc *TransitionStatus) Execute(
	ctx context.Context,
	bookingID string,
	next domain.Status,
	reason string,
	actor domain.Actor,
) (*models.Booking, error) {

	if !domain.IsValidStatus(next) {
		return nil, &domain.TransitionError{Kind: domain.TransitionIllegal, To: next}
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(b.Status)

	if err := domain.Apply(b, next, actor, reason, uc.clock.Now()); err != nil {
		return nil, err
	}

	if from == next {
		return b, nil
	}

	if err := uc.repo.SaveBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.log.Info("booking status changed",
		zap.String("booking_id", b.ID),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
		zap.String("actor_role", string(actor.Role)),
	)

	uc.notify.Dispatch(notify.StatusChanged{
		BookingID: b.ID,
		From:      from,
		To:        next,
		At:        uc.clock.Now(),
	})

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "booking_" + string(next),
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
