package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"volunteerhub/internal/domain"
)

type recordingEventRepository struct {
	events map[int64]*domain.Event

	created       *domain.Event
	statusUpdates map[int64]domain.EventStatus
	softDeleted   []int64
	listResult    []*domain.Event
	listTotal     int
	err           error
}

func newRecordingEventRepository() *recordingEventRepository {
	return &recordingEventRepository{
		events:        make(map[int64]*domain.Event),
		statusUpdates: make(map[int64]domain.EventStatus),
	}
}

func (m *recordingEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	event.ID = int64(len(m.events) + 1)
	m.events[event.ID] = event
	m.created = event
	return nil
}

func (m *recordingEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *recordingEventRepository) ListUpcoming(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.listResult, m.listTotal, nil
}

func (m *recordingEventRepository) UpdateStatus(ctx context.Context, id int64, status domain.EventStatus) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	m.statusUpdates[id] = status
	return nil
}

func (m *recordingEventRepository) SoftDelete(ctx context.Context, id int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	m.softDeleted = append(m.softDeleted, id)
	return nil
}

func validEvent() *domain.Event {
	deadline := time.Now().UTC().Add(6 * 24 * time.Hour)
	return &domain.Event{
		Title:                "Park Cleanup",
		Description:          "Bring gloves",
		Location:             "Riverside Park",
		StartTime:            time.Now().UTC().Add(7 * 24 * time.Hour),
		DurationMinutes:      180,
		Capacity:             25,
		RegistrationDeadline: &deadline,
		OrganizerID:          1,
	}
}

func TestEventService_CreateEvent(t *testing.T) {
	lateDeadline := time.Now().UTC().Add(8 * 24 * time.Hour)

	tests := []struct {
		name   string
		mutate func(e *domain.Event)
		ok     bool
	}{
		{name: "valid event", mutate: func(e *domain.Event) {}, ok: true},
		{name: "no deadline", mutate: func(e *domain.Event) { e.RegistrationDeadline = nil }, ok: true},
		{name: "empty title", mutate: func(e *domain.Event) { e.Title = "   " }},
		{name: "zero capacity", mutate: func(e *domain.Event) { e.Capacity = 0 }},
		{name: "negative capacity", mutate: func(e *domain.Event) { e.Capacity = -5 }},
		{name: "zero duration", mutate: func(e *domain.Event) { e.DurationMinutes = 0 }},
		{name: "start in the past", mutate: func(e *domain.Event) { e.StartTime = time.Now().UTC().Add(-time.Hour) }},
		{name: "deadline after start", mutate: func(e *domain.Event) { e.RegistrationDeadline = &lateDeadline }},
		{name: "missing organizer", mutate: func(e *domain.Event) { e.OrganizerID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newRecordingEventRepository()
			svc := NewEventService(repo)

			event := validEvent()
			tt.mutate(event)
			err := svc.CreateEvent(context.Background(), event)

			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if repo.created == nil {
					t.Fatal("expected event to be persisted")
				}
				if event.Status != domain.EventStatusActive {
					t.Errorf("expected active status, got %s", event.Status)
				}
				return
			}
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if repo.created != nil {
				t.Error("invalid event must not be persisted")
			}
		})
	}
}

func TestEventService_GetEvent(t *testing.T) {
	repo := newRecordingEventRepository()
	repo.events[7] = &domain.Event{ID: 7, Title: "Food Drive", Status: domain.EventStatusActive}
	svc := NewEventService(repo)

	got, err := svc.GetEvent(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Food Drive" {
		t.Errorf("expected Food Drive, got %s", got.Title)
	}

	if _, err := svc.GetEvent(context.Background(), 8); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventService_ListUpcomingEvents(t *testing.T) {
	repo := newRecordingEventRepository()
	svc := NewEventService(repo)

	events, total, err := svc.ListUpcomingEvents(context.Background(), domain.PaginationParams{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events == nil {
		t.Error("expected a non-nil empty slice")
	}
	if total != 0 {
		t.Errorf("expected total 0, got %d", total)
	}
}

func TestEventService_CancelEvent(t *testing.T) {
	repo := newRecordingEventRepository()
	repo.events[3] = &domain.Event{ID: 3, Title: "Tree Planting", Status: domain.EventStatusActive}
	svc := NewEventService(repo)

	event, err := svc.CancelEvent(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Status != domain.EventStatusCancelled {
		t.Errorf("expected cancelled status, got %s", event.Status)
	}
	if repo.statusUpdates[3] != domain.EventStatusCancelled {
		t.Error("expected status update to be persisted")
	}

	if _, err := svc.CancelEvent(context.Background(), 3); !errors.Is(err, domain.ErrEventAlreadyCancelled) {
		t.Fatalf("expected ErrEventAlreadyCancelled, got %v", err)
	}
	if _, err := svc.CancelEvent(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEventService_DeleteEvent(t *testing.T) {
	repo := newRecordingEventRepository()
	repo.events[5] = &domain.Event{ID: 5, Status: domain.EventStatusActive}
	svc := NewEventService(repo)

	if err := svc.DeleteEvent(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.softDeleted) != 1 || repo.softDeleted[0] != 5 {
		t.Errorf("expected soft delete of event 5, got %v", repo.softDeleted)
	}

	if err := svc.DeleteEvent(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
