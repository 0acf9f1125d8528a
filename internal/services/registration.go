package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"volunteerhub/internal/domain"
)

type registrationService struct {
	eventRepo domain.EventRepository
	userRepo  domain.UserRepository
	regRepo   domain.RegistrationRepository
	email     domain.EmailService
	logger    *slog.Logger

	// Separate lock sets so that holding a user shard while acquiring an
	// event shard can never self-deadlock. Acquisition order is always
	// user, then event.
	userLocks  keyedMutex
	eventLocks keyedMutex
}

// NewRegistrationService creates a RegistrationService. email may be nil, in
// which case no confirmation emails are sent.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	regRepo domain.RegistrationRepository,
	email domain.EmailService,
	logger *slog.Logger,
) domain.RegistrationService {
	return &registrationService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		regRepo:   regRepo,
		email:     email,
		logger:    logger,
	}
}

func (s *registrationService) RegisterForEvent(ctx context.Context, eventID, userID int64) (*domain.RegistrationWithEvent, bool, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}

	now := time.Now().UTC()
	if event.Status == domain.EventStatusCancelled {
		return nil, false, domain.ErrEventCancelled
	}
	if !event.StartTime.After(now) {
		return nil, false, domain.ErrEventStarted
	}
	if event.RegistrationDeadline != nil && !event.RegistrationDeadline.After(now) {
		return nil, false, domain.ErrDeadlinePassed
	}

	reg, created, err := s.register(ctx, event, userID, now)
	if err != nil {
		return nil, false, err
	}
	// The locks are released by the time the email goes out, so a slow mail
	// provider cannot stall other registrations.
	s.sendConfirmation(ctx, userID, event)
	return &domain.RegistrationWithEvent{Registration: reg, Event: event.Snapshot()}, created, nil
}

// register runs the capacity count, the pair lookup, and the insert or
// reactivation as a single check-then-act sequence. It is serialized per user
// (so the user's own overlap check stays valid) and per event (so two callers
// cannot both observe capacity-1 and both insert). The unique index on
// (event_id, user_id) backstops the pair check at the storage layer.
func (s *registrationService) register(ctx context.Context, event *domain.Event, userID int64, now time.Time) (*domain.Registration, bool, error) {
	ul := s.userLocks.lock(userID)
	defer ul.Unlock()
	el := s.eventLocks.lock(event.ID)
	defer el.Unlock()

	count, err := s.regRepo.CountConfirmedByEventID(ctx, event.ID)
	if err != nil {
		return nil, false, fmt.Errorf("count confirmed registrations: %w", err)
	}
	if count >= event.Capacity {
		return nil, false, domain.ErrEventFull
	}

	existing, err := s.regRepo.GetByEventAndUser(ctx, event.ID, userID)
	switch {
	case err == nil:
		if existing.Status == domain.RegistrationStatusConfirmed {
			return nil, false, domain.ErrAlreadyRegistered
		}
		// Reactivate the cancelled row. The schedule was validated when the
		// row was first confirmed; overlap is not re-checked here.
		existing.Status = domain.RegistrationStatusConfirmed
		existing.RegisteredAt = now
		existing.UpdatedAt = now
		if err := s.regRepo.Update(ctx, existing); err != nil {
			return nil, false, fmt.Errorf("reactivate registration: %w", err)
		}
		return existing, false, nil
	case errors.Is(err, domain.ErrNotFound):
		// No row yet for this pair; check the user's schedule, then insert.
	default:
		return nil, false, fmt.Errorf("get registration: %w", err)
	}

	if err := s.checkTimeConflict(ctx, event, userID); err != nil {
		return nil, false, err
	}

	reg := domain.NewRegistration(event.ID, userID, now)
	if err := s.regRepo.Create(ctx, reg); err != nil {
		if domain.IsConflict(err) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("create registration: %w", err)
	}
	return reg, true, nil
}

// checkTimeConflict rejects the candidate event if it overlaps any event the
// user already holds a confirmed registration for, considering only events
// that are still active.
func (s *registrationService) checkTimeConflict(ctx context.Context, candidate *domain.Event, userID int64) error {
	regs, err := s.regRepo.ListConfirmedByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("list confirmed registrations: %w", err)
	}
	for _, reg := range regs {
		if reg.EventID == candidate.ID {
			continue
		}
		other, err := s.eventRepo.GetByID(ctx, reg.EventID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Event deleted but registration kept for history; skip.
				continue
			}
			return fmt.Errorf("get registered event: %w", err)
		}
		if other.Status != domain.EventStatusActive {
			continue
		}
		if candidate.Overlaps(other) {
			return domain.ErrTimeConflict
		}
	}
	return nil
}

func (s *registrationService) CancelRegistration(ctx context.Context, eventID, userID int64) error {
	// Cancel races with register on the same pair; take the same event shard
	// so the lookup and the status flip are atomic with respect to register.
	el := s.eventLocks.lock(eventID)
	defer el.Unlock()

	reg, err := s.regRepo.GetByEventAndUser(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if reg.Status == domain.RegistrationStatusCancelled {
		return domain.ErrAlreadyCancelled
	}

	// RegisteredAt stays at the last confirmation time; only the status moves.
	reg.Status = domain.RegistrationStatusCancelled
	reg.UpdatedAt = time.Now().UTC()
	if err := s.regRepo.Update(ctx, reg); err != nil {
		return fmt.Errorf("cancel registration: %w", err)
	}
	return nil
}

func (s *registrationService) ListUserRegistrations(ctx context.Context, userID int64) ([]*domain.RegistrationWithEvent, error) {
	regs, err := s.regRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	// Fetch events one by one (N+1). Fine at this scale; the cache map keeps
	// repeated pairs cheap.
	eventsByID := make(map[int64]*domain.Event)
	result := make([]*domain.RegistrationWithEvent, 0, len(regs))
	for _, reg := range regs {
		ev, ok := eventsByID[reg.EventID]
		if !ok {
			ev, err = s.eventRepo.GetByID(ctx, reg.EventID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					// Event deleted but registration remains; skip this entry.
					continue
				}
				return nil, fmt.Errorf("get event for registration: %w", err)
			}
			eventsByID[reg.EventID] = ev
		}
		result = append(result, &domain.RegistrationWithEvent{
			Registration: reg,
			Event:        ev.Snapshot(),
		})
	}
	return result, nil
}

func (s *registrationService) ListEventRegistrations(ctx context.Context, eventID int64) ([]*domain.RegistrationWithUser, error) {
	regs, err := s.regRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}

	result := make([]*domain.RegistrationWithUser, 0, len(regs))
	for _, reg := range regs {
		user, err := s.userRepo.GetByID(ctx, reg.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// User soft-deleted; keep the listing consistent by skipping.
				continue
			}
			return nil, fmt.Errorf("get user for registration: %w", err)
		}
		result = append(result, &domain.RegistrationWithUser{
			Registration: reg,
			User:         user.Summary(),
		})
	}
	return result, nil
}

// sendConfirmation sends the registration confirmation email best-effort:
// a mail failure never fails the registration.
func (s *registrationService) sendConfirmation(ctx context.Context, userID int64, event *domain.Event) {
	if s.email == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.WarnContext(ctx, "confirmation email skipped", "user_id", userID, "err", err)
		return
	}
	data := &domain.RegistrationConfirmationEmailData{
		Email:           user.Email,
		Name:            user.Name,
		EventTitle:      event.Title,
		EventLocation:   event.Location,
		StartTime:       event.StartTime,
		DurationMinutes: event.DurationMinutes,
	}
	if err := s.email.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "confirmation email failed", "user_id", userID, "event_id", event.ID, "err", err)
	}
}
