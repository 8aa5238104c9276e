package booking

import (
	"context"

	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
)

type BookingStats struct {
	repo  domain.Repository
	clock domain.Clock
}

func NewBookingStats(repo domain.Repository, clock domain.Clock) *BookingStats {
	return &BookingStats{repo: repo, clock: clock}
}

func (uc *BookingStats) Execute(
	ctx context.Context,
	actor domain.Actor,
) (*domain.Stats, error) {

	if !actor.IsStaff() {
		return nil, domain.Err(domain.KindInvalidRole)
	}

	return uc.repo.BookingStats(ctx, uc.clock.Now())
}
