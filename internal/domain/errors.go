package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a referenced entity does not exist.
	// Repositories also return it for soft-deleted rows, so callers never
	// have to reason about deletion flags.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the caller is not allowed to perform
	// the requested operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput marks a validation failure on caller-supplied data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned on a failed login attempt. The
	// message is the same for unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateEmail is returned when signing up with an email that is
	// already in use.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrTransientStore marks a storage-level contention failure
	// (serialization failure, deadlock). It is the only error category safe
	// to retry; business-rule rejections are terminal for the same inputs.
	ErrTransientStore = errors.New("transient store contention")
)

// ConflictError is a business-rule rejection: the requested state transition
// would violate an invariant. Message is user-facing and names the rule that
// was violated; callers surface it verbatim.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// Conflict rejections returned by the registration and event services.
var (
	ErrEventCancelled        = &ConflictError{Message: "cannot register for a cancelled event"}
	ErrEventStarted          = &ConflictError{Message: "cannot register for past events"}
	ErrDeadlinePassed        = &ConflictError{Message: "registration deadline has passed"}
	ErrEventFull             = &ConflictError{Message: "event is already full"}
	ErrAlreadyRegistered     = &ConflictError{Message: "user is already registered for this event"}
	ErrTimeConflict          = &ConflictError{Message: "time conflict with another registered event"}
	ErrAlreadyCancelled      = &ConflictError{Message: "registration is already cancelled"}
	ErrEventAlreadyCancelled = &ConflictError{Message: "event is already cancelled"}
)

// IsConflict reports whether err is (or wraps) a business-rule conflict.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
