package booking

import (
	"context"
	"time"

	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
)

type ListAvailableSlots struct {
	repo   domain.Repository
	policy domain.Policy
	clock  domain.Clock
}

func NewListAvailableSlots(
	repo domain.Repository,
	policy domain.Policy,
	clock domain.Clock,
) *ListAvailableSlots {
	return &ListAvailableSlots{
		repo:   repo,
		policy: policy,
		clock:  clock,
	}
}

func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	doctorID string,
	date time.Time,
) ([]time.Time, error) {

	existing, err := uc.repo.BookingsForDoctorOnDate(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	return domain.AvailableSlots(uc.policy, date, uc.clock.Now(), existing)
}
