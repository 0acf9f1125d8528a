package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"volunteerhub/internal/domain"
)

// Postgres error codes the repositories translate into domain errors.
const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqDeadlockDetected     = "40P01"
)

// isTransient reports whether err is a contention failure that the caller
// may safely retry (serialization failure or deadlock victim).
func isTransient(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqSerializationFailure || pqErr.Code == pqDeadlockDetected
	}
	return false
}

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{DB: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, user_id, status, registered_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.UserID, reg.Status, reg.RegisteredAt, reg.CreatedAt, reg.UpdatedAt).
		Scan(&reg.ID)
	if err != nil {
		// The unique index on (event_id, user_id) is the storage backstop
		// for the one-row-per-pair rule.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return domain.ErrAlreadyRegistered
		}
		if isTransient(err) {
			return domain.ErrTransientStore
		}
		return err
	}
	return nil
}

func (r *registrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	query := `
		UPDATE registrations
		SET status = $1, registered_at = $2, updated_at = $3
		WHERE id = $4
	`
	res, err := r.DB.ExecContext(ctx, query, reg.Status, reg.RegisteredAt, reg.UpdatedAt, reg.ID)
	if err != nil {
		if isTransient(err) {
			return domain.ErrTransientStore
		}
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, status, registered_at, created_at, updated_at
		FROM registrations
		WHERE event_id = $1 AND user_id = $2
	`
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, status, registered_at, created_at, updated_at
		FROM registrations
		WHERE user_id = $1
		ORDER BY registered_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID int64) ([]*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, status, registered_at, created_at, updated_at
		FROM registrations
		WHERE event_id = $1
		ORDER BY registered_at DESC
	`
	return r.list(ctx, query, eventID)
}

func (r *registrationRepository) ListConfirmedByUserID(ctx context.Context, userID int64) ([]*domain.Registration, error) {
	query := `
		SELECT id, event_id, user_id, status, registered_at, created_at, updated_at
		FROM registrations
		WHERE user_id = $1 AND status = 'confirmed'
		ORDER BY registered_at DESC
	`
	return r.list(ctx, query, userID)
}

func (r *registrationRepository) CountConfirmedByEventID(ctx context.Context, eventID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM registrations
		WHERE event_id = $1 AND status = 'confirmed'
	`
	var count int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count); err != nil {
		if isTransient(err) {
			return 0, domain.ErrTransientStore
		}
		return 0, err
	}
	return count, nil
}

func (r *registrationRepository) list(ctx context.Context, query string, arg int64) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := []*domain.Registration{}
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.RegisteredAt, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return regs, nil
}
