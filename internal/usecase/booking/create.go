package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnourclinic/clinic-scheduler/internal/audit"
	domain "github.com/alnourclinic/clinic-scheduler/internal/domain/booking"
	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Actor domain.Actor

	PatientID   string
	DoctorID    string
	ScheduledAt time.Time
	Reason      string
	Notes       string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	accounts domain.AccountDirectory
	policy   domain.Policy
	clock    domain.Clock
	audit    AuditSink
	log      *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	accounts domain.AccountDirectory,
	policy domain.Policy,
	clock domain.Clock,
	auditDispatcher AuditSink,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		accounts: accounts,
		policy:   policy,
		clock:    clock,
		audit:    auditDispatcher,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Who may create, and for whom
	// --------------------------------------------------
	switch in.Actor.Role {
	case domain.RolePatient:
		// patients book for themselves only; no proxy booking
		if in.PatientID != in.Actor.ID {
			return nil, domain.Err(domain.KindInvalidRole)
		}
		// notes are the clinic's field, same as on update
		in.Notes = ""
	case domain.RoleReceptionist, domain.RoleAdmin:
		// staff books on behalf of any patient
	default:
		return nil, domain.Err(domain.KindInvalidRole)
	}

	// --------------------------------------------------
	// Resolve participants: right role, active account
	// --------------------------------------------------
	patient, err := uc.accounts.ResolveAccount(ctx, in.PatientID)
	if err != nil {
		return nil, err
	}
	if patient.Role != domain.RolePatient || !patient.Active {
		return nil, domain.Err(domain.KindInvalidRole)
	}

	doctor, err := uc.accounts.ResolveAccount(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Role != domain.RoleDoctor || !doctor.Active {
		return nil, domain.Err(domain.KindInvalidRole)
	}

	// --------------------------------------------------
	// Calendar policy: future, business hours, open day
	// --------------------------------------------------
	now := uc.clock.Now()
	if err := validateSchedule(uc.policy, in.ScheduledAt, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Conflict check + insert as one atomic unit
	// --------------------------------------------------
	b := &models.Booking{
		ID:          uuid.New().String(),
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		ScheduledAt: in.ScheduledAt,
		Status:      string(domain.InitialStatus()), // forced, ignores caller input
		Reason:      in.Reason,
		Notes:       in.Notes,
		Version:     1,
	}

	proposal := domain.Proposal{
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		ScheduledAt: in.ScheduledAt,
	}

	err = uc.repo.CreateBooking(ctx, b, proposal, uc.policy.SlotWindow(), conflictCheck(uc.policy, proposal))
	if err != nil {
		return nil, err
	}

	uc.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("patient_id", b.PatientID),
		zap.String("doctor_id", b.DoctorID),
		zap.Time("scheduled_at", b.ScheduledAt),
	)

	uc.audit.Dispatch(audit.Event{
		ActorID:  &in.Actor.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// validateSchedule runs the calendar policy checks shared by create and
// reschedule.
func validateSchedule(p domain.Policy, ts, now time.Time) error {
	if !p.IsFuture(ts, now) {
		return domain.Err(domain.KindPastDate)
	}
	if !p.WithinBusinessHours(ts) {
		return domain.Err(domain.KindOutsideHours)
	}
	if p.IsClosedDay(ts) {
		return domain.Err(domain.KindClosedDay)
	}
	return nil
}

// conflictCheck evaluates the scheduling invariants against the rows the
// repository has locked.
func conflictCheck(p domain.Policy, proposal domain.Proposal) domain.ConflictCheck {
	return func(patientSameDay, doctorNearby []models.Booking) error {
		if domain.HasPatientDayConflict(proposal, patientSameDay) {
			return domain.Err(domain.KindPatientDayConflict)
		}
		if domain.HasDoctorSlotConflict(proposal, doctorNearby, p.SlotWindow()) {
			return domain.Err(domain.KindDoctorSlotConflict)
		}
		return nil
	}
}
