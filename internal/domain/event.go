package domain

import (
	"context"
	"time"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
)

// Event represents a volunteer event posted by an organizer.
// swagger:model Event
type Event struct {
	ID                   int64       `json:"id"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	Location             string      `json:"location"`
	StartTime            time.Time   `json:"start_time"`
	DurationMinutes      int         `json:"duration_minutes"`
	Capacity             int         `json:"capacity"`
	RegistrationDeadline *time.Time  `json:"registration_deadline,omitempty"`
	Status               EventStatus `json:"status"`
	ImageURL             string      `json:"image_url,omitempty"`
	OrganizerID          int64       `json:"organizer_id"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// EndTime returns the instant the event finishes (start + duration).
func (e *Event) EndTime() time.Time {
	return e.StartTime.Add(time.Duration(e.DurationMinutes) * time.Minute)
}

// Overlaps reports whether two events occupy intersecting time windows.
// Intervals are half-open [start, end): back-to-back events do not overlap.
func (e *Event) Overlaps(other *Event) bool {
	return e.StartTime.Before(other.EndTime()) && other.StartTime.Before(e.EndTime())
}

// EventSnapshot is the read-only projection of an event composed into
// registration views for display purposes.
// swagger:model EventSnapshot
type EventSnapshot struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Location        string      `json:"location"`
	StartTime       time.Time   `json:"start_time"`
	DurationMinutes int         `json:"duration_minutes"`
	Status          EventStatus `json:"status"`
	ImageURL        string      `json:"image_url,omitempty"`
}

// Snapshot returns the display projection of the event.
func (e *Event) Snapshot() *EventSnapshot {
	return &EventSnapshot{
		ID:              e.ID,
		Title:           e.Title,
		Location:        e.Location,
		StartTime:       e.StartTime,
		DurationMinutes: e.DurationMinutes,
		Status:          e.Status,
		ImageURL:        e.ImageURL,
	}
}

// EventRepository defines the interface for event storage. All lookups
// exclude soft-deleted rows.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id int64) (*Event, error)
	// ListUpcoming returns active events starting after now, soonest first,
	// along with the total count for pagination.
	ListUpcoming(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	UpdateStatus(ctx context.Context, id int64, status EventStatus) error
	SoftDelete(ctx context.Context, id int64) error
}

// EventService defines business operations on the event directory.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id int64) (*Event, error)
	ListUpcomingEvents(ctx context.Context, p PaginationParams) ([]*Event, int, error)
	CancelEvent(ctx context.Context, id int64) (*Event, error)
	DeleteEvent(ctx context.Context, id int64) error
}
