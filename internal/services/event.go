package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"volunteerhub/internal/domain"
)

const (
	maxEventCapacity = 100_000
	maxTitleLength   = 200
)

type eventService struct {
	eventRepo domain.EventRepository
}

// NewEventService creates an EventService with the given repository.
func NewEventService(eventRepo domain.EventRepository) domain.EventService {
	return &eventService{eventRepo: eventRepo}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	event.Title = strings.TrimSpace(event.Title)
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if len(event.Title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidInput, maxTitleLength)
	}
	if event.Capacity < 1 || event.Capacity > maxEventCapacity {
		return fmt.Errorf("%w: capacity must be between 1 and %d", domain.ErrInvalidInput, maxEventCapacity)
	}
	if event.DurationMinutes < 1 {
		return fmt.Errorf("%w: duration must be a positive number of minutes", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	if !event.StartTime.After(now) {
		return fmt.Errorf("%w: start time must be in the future", domain.ErrInvalidInput)
	}
	if event.RegistrationDeadline != nil && !event.RegistrationDeadline.Before(event.StartTime) {
		return fmt.Errorf("%w: registration deadline must be before the start time", domain.ErrInvalidInput)
	}
	if event.OrganizerID == 0 {
		return fmt.Errorf("%w: event organizer is required", domain.ErrInvalidInput)
	}

	event.Status = domain.EventStatusActive
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListUpcomingEvents(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	events, total, err := s.eventRepo.ListUpcoming(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list upcoming events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) CancelEvent(ctx context.Context, id int64) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.Status == domain.EventStatusCancelled {
		return nil, domain.ErrEventAlreadyCancelled
	}

	// Registrations are left untouched: the registration service treats a
	// cancelled event as non-registrable, and existing attendees may still
	// cancel on their own.
	if err := s.eventRepo.UpdateStatus(ctx, id, domain.EventStatusCancelled); err != nil {
		return nil, fmt.Errorf("cancel event: %w", err)
	}
	event.Status = domain.EventStatusCancelled
	event.UpdatedAt = time.Now().UTC()
	return event, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id int64) error {
	if err := s.eventRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
