package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the state of a registration row.
type RegistrationStatus string

const (
	RegistrationStatusConfirmed RegistrationStatus = "confirmed"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// Registration represents a volunteer's attendance record for an event.
// At most one row ever exists per (event, user) pair: registering again after
// cancelling reactivates the original row instead of inserting a second one.
// Rows are never physically deleted; history stays visible in listings.
// swagger:model Registration
type Registration struct {
	ID      int64              `json:"id"`
	EventID int64              `json:"event_id"`
	UserID  int64              `json:"user_id"`
	Status  RegistrationStatus `json:"status"`
	// RegisteredAt is the instant of the most recent transition into
	// confirmed, not the row's original creation time. Cancellation leaves
	// it untouched.
	RegisteredAt time.Time `json:"registered_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewRegistration creates a confirmed Registration. ID is set by the
// repository on create.
func NewRegistration(eventID, userID int64, now time.Time) *Registration {
	return &Registration{
		EventID:      eventID,
		UserID:       userID,
		Status:       RegistrationStatusConfirmed,
		RegisteredAt: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// RegistrationRepository defines storage operations for registrations.
// The store enforces a uniqueness constraint on (event_id, user_id); Create
// reports a violation as ErrAlreadyRegistered.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	// Update persists status, registered_at, and updated_at for an existing row.
	Update(ctx context.Context, reg *Registration) error
	GetByEventAndUser(ctx context.Context, eventID, userID int64) (*Registration, error)
	// ListByUserID returns all rows for the user, any status, registered_at descending.
	ListByUserID(ctx context.Context, userID int64) ([]*Registration, error)
	// ListByEventID returns all rows for the event, any status, registered_at descending.
	ListByEventID(ctx context.Context, eventID int64) ([]*Registration, error)
	CountConfirmedByEventID(ctx context.Context, eventID int64) (int, error)
	ListConfirmedByUserID(ctx context.Context, userID int64) ([]*Registration, error)
}

// RegistrationWithEvent bundles a registration with a snapshot of its event.
type RegistrationWithEvent struct {
	Registration *Registration  `json:"registration"`
	Event        *EventSnapshot `json:"event"`
}

// RegistrationWithUser bundles a registration with the registrant's summary.
type RegistrationWithUser struct {
	Registration *Registration `json:"registration"`
	User         *UserSummary  `json:"user"`
}

// RegistrationService validates and executes registration state transitions
// and answers registration queries.
type RegistrationService interface {
	// RegisterForEvent registers the user for the event. Returns (view,
	// created, err): created is true when a new row was inserted, false when
	// a previously cancelled row was reactivated.
	RegisterForEvent(ctx context.Context, eventID, userID int64) (*RegistrationWithEvent, bool, error)
	// CancelRegistration moves a confirmed registration to cancelled.
	// Cancelling is always permitted once a confirmed row exists, regardless
	// of the event's current state.
	CancelRegistration(ctx context.Context, eventID, userID int64) error
	ListUserRegistrations(ctx context.Context, userID int64) ([]*RegistrationWithEvent, error)
	ListEventRegistrations(ctx context.Context, eventID int64) ([]*RegistrationWithUser, error)
}
