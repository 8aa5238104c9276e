package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/alnourclinic/clinic-scheduler/internal/audit"
	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
)

// DeleteBooking is the administrative hard delete; the normal lifecycle
// ends at cancelled or completed.
type DeleteBooking struct {
	repo  domain.Repository
	audit AuditSink
	log   *zap.Logger
}

func NewDeleteBooking(
	repo domain.Repository,
	auditDispatcher AuditSink,
	log *zap.Logger,
) *DeleteBooking {
	return &DeleteBooking{
		repo:  repo,
		audit: auditDispatcher,
		log:   log,
	}
}

func (uc *DeleteBooking) Execute(
	ctx context.Context,
	bookingID string,
	actor domain.Actor,
) error {

	if actor.Role != domain.RoleAdmin {
		return domain.Err(domain.KindInvalidRole)
	}

	if err := uc.repo.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	uc.log.Warn("booking hard-deleted",
		zap.String("booking_id", bookingID),
		zap.String("actor_id", actor.ID),
	)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.ID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}
