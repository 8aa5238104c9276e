package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

func setupTransition() (*TransitionStatus, *MockRepository, *captureNotify, *captureAudit) {
	repo := &MockRepository{}
	notifySink := &captureNotify{}
	auditSink := &captureAudit{}

	uc := NewTransitionStatus(
		repo,
		domain.FixedClock{T: at(2025, 11, 12, 9, 0)},
		notifySink,
		auditSink,
		testLogger(),
	)
	return uc, repo, notifySink, auditSink
}

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:          "b1",
		PatientID:   "p1",
		DoctorID:    "d1",
		ScheduledAt: at(2025, 11, 15, 10, 0),
		Status:      string(domain.StatusPending),
		Reason:      "first visit",
		Version:     1,
	}
}

func TestTransitionStaffConfirms(t *testing.T) {
	uc, repo, notifySink, auditSink := setupTransition()
	repo.On("GetBooking", "b1").Return(pendingBooking(), nil)
	repo.On("SaveBooking", mock.Anything).Return(nil)

	b, err := uc.Execute(context.Background(), "b1", domain.StatusConfirmed, "",
		domain.Actor{ID: "r1", Role: domain.RoleReceptionist})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	repo.AssertExpectations(t)

	require.Len(t, notifySink.events, 1)
	assert.Equal(t, "b1", notifySink.events[0].BookingID)
	assert.Equal(t, domain.StatusPending, notifySink.events[0].From)
	assert.Equal(t, domain.StatusConfirmed, notifySink.events[0].To)

	require.Len(t, auditSink.events, 1)
	assert.Equal(t, "booking_confirmed", auditSink.events[0].Action)
}

func TestTransitionStaffCompletesFromPending(t *testing.T) {
	// Walk-in closed out at the front desk without an explicit
	// confirmation step.
	uc, repo, _, _ := setupTransition()
	repo.On("GetBooking", "b1").Return(pendingBooking(), nil)
	repo.On("SaveBooking", mock.Anything).Return(nil)

	b, err := uc.Execute(context.Background(), "b1", domain.StatusCompleted, "",
		domain.Actor{ID: "a1", Role: domain.RoleAdmin})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), b.Status)
}

func TestTransitionPatientCancelAppendsReason(t *testing.T) {
	uc, repo, notifySink, _ := setupTransition()
	repo.On("GetBooking", "b1").Return(pendingBooking(), nil)
	repo.On("SaveBooking", mock.Anything).Return(nil)

	b, err := uc.Execute(context.Background(), "b1", domain.StatusCancelled, "family emergency",
		domain.Actor{ID: "p1", Role: domain.RolePatient})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), b.Status)
	assert.Equal(t, "cancellation reason: family emergency", b.Notes)
	require.Len(t, notifySink.events, 1)
	assert.Equal(t, domain.StatusCancelled, notifySink.events[0].To)
}

func TestTransitionPatientCannotConfirm(t *testing.T) {
	uc, repo, notifySink, auditSink := setupTransition()
	repo.On("GetBooking", "b1").Return(pendingBooking(), nil)

	_, err := uc.Execute(context.Background(), "b1", domain.StatusConfirmed, "",
		domain.Actor{ID: "p1", Role: domain.RolePatient})

	assert.Equal(t, domain.TransitionIllegal, domain.TransitionKindOf(err))
	assert.Empty(t, notifySink.events)
	assert.Empty(t, auditSink.events)
}

func TestTransitionNonOwnerPatientCannotCancel(t *testing.T) {
	uc, repo, _, _ := setupTransition()
	repo.On("GetBooking", "b1").Return(pendingBooking(), nil)

	_, err := uc.Execute(context.Background(), "b1", domain.StatusCancelled, "",
		domain.Actor{ID: "p2", Role: domain.RolePatient})

	assert.Equal(t, domain.TransitionNotOwner, domain.TransitionKindOf(err))
}

func TestTransitionCancelledIsTerminal(t *testing.T) {
	// A cancelled booking does not come back, not even for staff.
	uc, repo, notifySink, _ := setupTransition()
	cancelled := pendingBooking()
	cancelled.Status = string(domain.StatusCancelled)
	repo.On("GetBooking", "b1").Return(cancelled, nil)

	_, err := uc.Execute(context.Background(), "b1", domain.StatusConfirmed, "",
		domain.Actor{ID: "a1", Role: domain.RoleAdmin})

	assert.Equal(t, domain.TransitionTerminal, domain.TransitionKindOf(err))
	assert.Empty(t, notifySink.events)
}

func TestTransitionIdentityIsNoOp(t *testing.T) {
	uc, repo, notifySink, auditSink := setupTransition()
	repo.On("GetBooking", "b1").Return(pendingBooking(), nil)

	b, err := uc.Execute(context.Background(), "b1", domain.StatusPending, "",
		domain.Actor{ID: "r1", Role: domain.RoleReceptionist})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	repo.AssertNotCalled(t, "SaveBooking", mock.Anything)
	assert.Empty(t, notifySink.events)
	assert.Empty(t, auditSink.events)
}

func TestTransitionUnknownStatus(t *testing.T) {
	uc, _, _, _ := setupTransition()

	_, err := uc.Execute(context.Background(), "b1", domain.Status("archived"), "",
		domain.Actor{ID: "a1", Role: domain.RoleAdmin})

	assert.Equal(t, domain.TransitionIllegal, domain.TransitionKindOf(err))
}

func TestTransitionStaleWrite(t *testing.T) {
	// Another request updated the booking between our read and our
	// save; the version check refuses the write and nothing is emitted.
	uc, repo, notifySink, auditSink := setupTransition()
	repo.On("GetBooking", "b1").Return(pendingBooking(), nil)
	repo.On("SaveBooking", mock.Anything).Return(domain.Err(domain.KindStaleWrite))

	_, err := uc.Execute(context.Background(), "b1", domain.StatusConfirmed, "",
		domain.Actor{ID: "r1", Role: domain.RoleReceptionist})

	assert.True(t, domain.IsKind(err, domain.KindStaleWrite))
	assert.Empty(t, notifySink.events)
	assert.Empty(t, auditSink.events)
}

func TestTransitionMissingBooking(t *testing.T) {
	uc, repo, _, _ := setupTransition()
	repo.On("GetBooking", "nope").Return(nil, domain.Err(domain.KindNotFound))

	_, err := uc.Execute(context.Background(), "nope", domain.StatusConfirmed, "",
		domain.Actor{ID: "a1", Role: domain.RoleAdmin})

	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
