package booking

import "errors"

// ===============================
// Error Taxonomy
// ===============================

type ErrorKind string

const (
	// Validation: caller-correctable, never retried.
	KindPastDate     ErrorKind = "past_date"
	KindOutsideHours ErrorKind = "outside_hours"
	KindClosedDay    ErrorKind = "closed_day"
	KindInvalidRole  ErrorKind = "invalid_role"

	// Conflict: retry only makes sense with a different slot.
	KindPatientDayConflict ErrorKind = "patient_day_conflict"
	KindDoctorSlotConflict ErrorKind = "doctor_slot_conflict"

	// Concurrency: the caller may re-read and re-submit.
	KindStaleWrite ErrorKind = "stale_write"

	KindNotFound    ErrorKind = "booking_not_found"
	KindUnavailable ErrorKind = "unavailable"
)

type Error struct {
	Kind  ErrorKind
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return string(e.Kind) + ": " + e.Cause.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Err(kind ErrorKind) error {
	return &Error{Kind: kind}
}

func WrapErr(kind ErrorKind, cause error) error {
	return &Error{Kind: kind, Cause: cause}
}

// KindOf extracts the kind from err, or "" when err is not a booking Error.
func KindOf(err error) ErrorKind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// ===============================
// Transition Errors
// ===============================

type TransitionErrorKind string

const (
	TransitionIllegal  TransitionErrorKind = "illegal_transition"
	TransitionNotOwner TransitionErrorKind = "not_owner"
	TransitionTerminal TransitionErrorKind = "terminal_state"
)

type TransitionError struct {
	Kind TransitionErrorKind
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return string(e.Kind) + ": " + string(e.From) + " -> " + string(e.To)
}

func TransitionKindOf(err error) TransitionErrorKind {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ""
}
