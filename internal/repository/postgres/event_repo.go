package postgres

import (
	"context"
	"database/sql"
	"errors"

	"volunteerhub/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

const eventColumns = `id, title, description, location, start_time, duration_minutes,
		capacity, registration_deadline, status, image_url, organizer_id, created_at, updated_at`

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (title, description, location, start_time, duration_minutes,
			capacity, registration_deadline, status, image_url, organizer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		event.Title, event.Description, event.Location, event.StartTime, event.DurationMinutes,
		event.Capacity, event.RegistrationDeadline, event.Status, event.ImageURL,
		event.OrganizerID, event.CreatedAt, event.UpdatedAt).
		Scan(&event.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1 AND deleted_at IS NULL
	`
	event := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&event.ID, &event.Title, &event.Description, &event.Location, &event.StartTime,
		&event.DurationMinutes, &event.Capacity, &event.RegistrationDeadline, &event.Status,
		&event.ImageURL, &event.OrganizerID, &event.CreatedAt, &event.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *eventRepository) ListUpcoming(ctx context.Context, p domain.PaginationParams) ([]*domain.Event, int, error) {
	countQuery := `
		SELECT COUNT(*)
		FROM events
		WHERE deleted_at IS NULL AND status = 'active' AND start_time > NOW()
	`
	var total int
	if err := r.DB.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE deleted_at IS NULL AND status = 'active' AND start_time > NOW()
		ORDER BY start_time ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.QueryContext(ctx, query, p.PageSize, p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		event := &domain.Event{}
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Description, &event.Location, &event.StartTime,
			&event.DurationMinutes, &event.Capacity, &event.RegistrationDeadline, &event.Status,
			&event.ImageURL, &event.OrganizerID, &event.CreatedAt, &event.UpdatedAt); err != nil {
			return nil, 0, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) UpdateStatus(ctx context.Context, id int64, status domain.EventStatus) error {
	query := `
		UPDATE events
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND deleted_at IS NULL
	`
	res, err := r.DB.ExecContext(ctx, query, status, id)
	if err != nil {
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

func (r *eventRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
		UPDATE events
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
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
