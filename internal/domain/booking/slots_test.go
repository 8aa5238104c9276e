package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

func TestAvailableSlotsFullFutureDay(t *testing.T) {
	p := DefaultPolicy()
	now := at(2025, 11, 10, 12, 0)

	slots, err := AvailableSlots(p, at(2025, 11, 15, 0, 0), now, nil)
	require.NoError(t, err)

	require.Len(t, slots, p.SlotsPerDay())
	assert.True(t, slots[0].Equal(at(2025, 11, 15, 8, 0)))
	assert.True(t, slots[len(slots)-1].Equal(at(2025, 11, 15, 19, 30)))

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Sub(slots[i-1]), "slots must be evenly spaced")
	}
}

func TestAvailableSlotsExcludesBooked(t *testing.T) {
	p := DefaultPolicy()
	now := at(2025, 11, 10, 12, 0)
	booked := []models.Booking{
		existing("b1", "p1", "d1", at(2025, 11, 15, 10, 0)),
		existing("b2", "p2", "d1", at(2025, 11, 15, 14, 30)),
	}

	slots, err := AvailableSlots(p, at(2025, 11, 15, 0, 0), now, booked)
	require.NoError(t, err)

	assert.Len(t, slots, p.SlotsPerDay()-2)
	for _, s := range slots {
		assert.False(t, s.Equal(at(2025, 11, 15, 10, 0)))
		assert.False(t, s.Equal(at(2025, 11, 15, 14, 30)))
	}
}

func TestAvailableSlotsTodayFiltersPast(t *testing.T) {
	p := DefaultPolicy()
	now := at(2025, 11, 15, 13, 10)

	slots, err := AvailableSlots(p, at(2025, 11, 15, 0, 0), now, nil)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	assert.True(t, slots[0].Equal(at(2025, 11, 15, 13, 30)), "first slot must be strictly after now")
	for _, s := range slots {
		assert.True(t, s.After(now))
	}
}

func TestAvailableSlotsClosedDay(t *testing.T) {
	p := DefaultPolicy()
	now := at(2025, 11, 10, 12, 0)

	// 2025-11-21 is a Friday: valid query, zero results, no error.
	slots, err := AvailableSlots(p, at(2025, 11, 21, 0, 0), now, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestAvailableSlotsPastDate(t *testing.T) {
	p := DefaultPolicy()
	now := at(2025, 11, 15, 12, 0)

	slots, err := AvailableSlots(p, at(2025, 11, 14, 0, 0), now, nil)
	assert.Nil(t, slots)
	assert.True(t, IsKind(err, KindPastDate))
}

func TestAvailableSlotsAscendingOrder(t *testing.T) {
	p := DefaultPolicy()
	now := at(2025, 11, 10, 12, 0)

	slots, err := AvailableSlots(p, at(2025, 11, 16, 0, 0), now, []models.Booking{
		existing("b1", "p1", "d1", at(2025, 11, 16, 9, 0)),
	})
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i].After(slots[i-1]))
	}
}
