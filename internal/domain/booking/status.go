package booking

import (
	"time"

	"github.com/alnourclinic/clinic-scheduler/internal/models"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Transition Table
// ===============================

type transitionRule struct {
	staff      bool // receptionist or admin
	ownPatient bool // the booking's patient
	ownDoctor  bool // the booking's doctor
}

// Who may move a booking from one status to another. Absent entries are
// not permitted for anyone. Staff completing straight from pending is
// deliberate: the front desk closes walk-in visits without a confirm step.
var transitions = map[Status]map[Status]transitionRule{
	StatusPending: {
		StatusConfirmed: {staff: true},
		StatusCancelled: {staff: true, ownPatient: true, ownDoctor: true},
		StatusCompleted: {staff: true},
	},
	StatusConfirmed: {
		StatusCancelled: {staff: true, ownPatient: true, ownDoctor: true},
		StatusCompleted: {staff: true},
	},
}

// CanTransition reports whether actorRole may move a booking from current
// to next. isOwner must be true when the actor is the booking's own
// patient or doctor.
func CanTransition(current, next Status, actorRole ActorRole, isOwner bool) bool {
	if current.IsTerminal() {
		return current == next
	}
	if current == next {
		return true
	}

	rule, ok := transitions[current][next]
	if !ok {
		return false
	}

	switch actorRole {
	case RoleReceptionist, RoleAdmin:
		return rule.staff
	case RolePatient:
		return rule.ownPatient && isOwner
	case RoleDoctor:
		return rule.ownDoctor && isOwner
	}
	return false
}

// Apply moves b to next on behalf of actor. On failure the booking is
// untouched. A cancellation reason is appended to the notes, never
// overwriting what staff wrote before.
func Apply(b *models.Booking, next Status, actor Actor, reason string, now time.Time) error {
	current := Status(b.Status)

	if current.IsTerminal() && current != next {
		return &TransitionError{Kind: TransitionTerminal, From: current, To: next}
	}

	isOwner := IsOwner(b, actor)
	if !CanTransition(current, next, actor.Role, isOwner) {
		if rule, ok := transitions[current][next]; ok {
			ownerRole := (actor.Role == RolePatient && rule.ownPatient) ||
				(actor.Role == RoleDoctor && rule.ownDoctor)
			if ownerRole && !isOwner {
				return &TransitionError{Kind: TransitionNotOwner, From: current, To: next}
			}
		}
		return &TransitionError{Kind: TransitionIllegal, From: current, To: next}
	}

	if current == next {
		return nil
	}

	b.Status = string(next)
	if next == StatusCancelled && reason != "" {
		b.Notes = AppendNote(b.Notes, "cancellation reason: "+reason)
	}
	b.UpdatedAt = now
	return nil
}

// IsOwner reports whether actor is the booking's own patient or doctor.
func IsOwner(b *models.Booking, actor Actor) bool {
	switch actor.Role {
	case RolePatient:
		return b.PatientID == actor.ID
	case RoleDoctor:
		return b.DoctorID == actor.ID
	}
	return false
}

// AppendNote adds a line to existing notes without discarding them.
func AppendNote(notes, line string) string {
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}
