package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:          "b1",
		PatientID:   "p1",
		DoctorID:    "d1",
		ScheduledAt: at(2025, 11, 15, 10, 0),
		Status:      string(StatusPending),
		Notes:       "first visit",
	}
}

func TestCanTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		to      Status
		role    ActorRole
		isOwner bool
		want    bool
	}{
		{"staff confirms pending", StatusPending, StatusConfirmed, RoleReceptionist, false, true},
		{"admin confirms pending", StatusPending, StatusConfirmed, RoleAdmin, false, true},
		{"patient cannot confirm", StatusPending, StatusConfirmed, RolePatient, true, false},
		{"doctor cannot confirm", StatusPending, StatusConfirmed, RoleDoctor, true, false},
		{"own patient cancels pending", StatusPending, StatusCancelled, RolePatient, true, true},
		{"foreign patient cannot cancel", StatusPending, StatusCancelled, RolePatient, false, false},
		{"own doctor cancels confirmed", StatusConfirmed, StatusCancelled, RoleDoctor, true, true},
		{"staff cancels confirmed", StatusConfirmed, StatusCancelled, RoleAdmin, false, true},
		{"staff completes confirmed", StatusConfirmed, StatusCompleted, RoleReceptionist, false, true},
		{"staff completes straight from pending", StatusPending, StatusCompleted, RoleAdmin, false, true},
		{"patient cannot complete", StatusConfirmed, StatusCompleted, RolePatient, true, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, RoleAdmin, false, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, RoleAdmin, false, false},
		{"terminal identity allowed", StatusCompleted, StatusCompleted, RoleAdmin, false, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to, tc.role, tc.isOwner))
		})
	}
}

func TestApplyConfirm(t *testing.T) {
	b := pendingBooking()
	now := at(2025, 11, 14, 9, 0)

	err := Apply(b, StatusConfirmed, Actor{ID: "s1", Role: RoleReceptionist}, "", now)
	require.NoError(t, err)
	assert.Equal(t, string(StatusConfirmed), b.Status)
	assert.Equal(t, now, b.UpdatedAt)
}

func TestApplyCancelAppendsReason(t *testing.T) {
	b := pendingBooking()

	err := Apply(b, StatusCancelled, Actor{ID: "p1", Role: RolePatient}, "family emergency", at(2025, 11, 14, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, string(StatusCancelled), b.Status)
	assert.Equal(t, "first visit\ncancellation reason: family emergency", b.Notes)
}

func TestApplyFailureLeavesBookingUntouched(t *testing.T) {
	b := pendingBooking()
	before := *b

	err := Apply(b, StatusConfirmed, Actor{ID: "p1", Role: RolePatient}, "", at(2025, 11, 14, 9, 0))
	require.Error(t, err)
	assert.Equal(t, TransitionIllegal, TransitionKindOf(err))
	assert.Equal(t, before, *b)
}

func TestApplyNotOwner(t *testing.T) {
	b := pendingBooking()

	err := Apply(b, StatusCancelled, Actor{ID: "p2", Role: RolePatient}, "", at(2025, 11, 14, 9, 0))
	require.Error(t, err)
	assert.Equal(t, TransitionNotOwner, TransitionKindOf(err))
	assert.Equal(t, string(StatusPending), b.Status)
}

func TestApplyTerminalState(t *testing.T) {
	b := pendingBooking()
	require.NoError(t, Apply(b, StatusCancelled, Actor{ID: "p1", Role: RolePatient}, "", at(2025, 11, 14, 9, 0)))

	// Staff trying to resurrect a cancelled booking must fail.
	err := Apply(b, StatusConfirmed, Actor{ID: "s1", Role: RoleAdmin}, "", at(2025, 11, 14, 10, 0))
	require.Error(t, err)
	assert.Equal(t, TransitionTerminal, TransitionKindOf(err))
	assert.Equal(t, string(StatusCancelled), b.Status)
}

func TestApplyIdentityIsNoOp(t *testing.T) {
	b := pendingBooking()
	before := *b

	err := Apply(b, StatusPending, Actor{ID: "p1", Role: RolePatient}, "", at(2025, 11, 14, 9, 0))
	require.NoError(t, err)
	assert.Equal(t, before, *b)
}

func TestAppendNote(t *testing.T) {
	assert.Equal(t, "a", AppendNote("", "a"))
	assert.Equal(t, "a\nb", AppendNote("a", "b"))
}
