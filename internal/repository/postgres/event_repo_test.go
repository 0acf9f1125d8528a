package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"volunteerhub/internal/domain"
)

var eventTestColumns = []string{
	"id", "title", "description", "location", "start_time", "duration_minutes",
	"capacity", "registration_deadline", "status", "image_url", "organizer_id",
	"created_at", "updated_at",
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(7 * 24 * time.Hour)

	tests := []struct {
		name    string
		event   *domain.Event
		mock    func(mock sqlmock.Sqlmock)
		wantID  int64
		wantErr bool
	}{
		{
			name: "success",
			event: &domain.Event{
				Title:           "Park Cleanup",
				Description:     "Bring gloves",
				Location:        "Riverside Park",
				StartTime:       start,
				DurationMinutes: 180,
				Capacity:        25,
				Status:          domain.EventStatusActive,
				OrganizerID:     1,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events \(title, description, location, start_time, duration_minutes,`).
					WithArgs("Park Cleanup", "Bring gloves", "Riverside Park", start, 180,
						25, nil, domain.EventStatusActive, "", int64(1), now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			wantID: 7,
		},
		{
			name: "db error",
			event: &domain.Event{
				Title:           "Park Cleanup",
				StartTime:       start,
				DurationMinutes: 180,
				Capacity:        25,
				Status:          domain.EventStatusActive,
				OrganizerID:     1,
				CreatedAt:       now,
				UpdatedAt:       now,
			},
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.Create(ctx, tt.event)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(7 * 24 * time.Hour)
	deadline := start.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Event
		wantErr error
	}{
		{
			name: "success",
			id:   7,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, location, start_time, duration_minutes,`).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows(eventTestColumns).
						AddRow(int64(7), "Park Cleanup", "Bring gloves", "Riverside Park", start, 180,
							25, deadline, "active", "", int64(1), now, now))
			},
			want: &domain.Event{
				ID:                   7,
				Title:                "Park Cleanup",
				Description:          "Bring gloves",
				Location:             "Riverside Park",
				StartTime:            start,
				DurationMinutes:      180,
				Capacity:             25,
				RegistrationDeadline: &deadline,
				Status:               domain.EventStatusActive,
				OrganizerID:          1,
				CreatedAt:            now,
				UpdatedAt:            now,
			},
		},
		{
			name: "not found",
			id:   8,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, description, location, start_time, duration_minutes,`).
					WithArgs(int64(8)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			got, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_ListUpcoming(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	start := now.Add(7 * 24 * time.Hour)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, title, description, location, start_time, duration_minutes,`).
		WithArgs(20, 0).
		WillReturnRows(sqlmock.NewRows(eventTestColumns).
			AddRow(int64(7), "Park Cleanup", "", "Riverside Park", start, 180,
				25, nil, "active", "", int64(1), now, now))

	repo := NewEventRepository(db)
	events, total, err := repo.ListUpcoming(ctx, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, events, 1)
	require.Equal(t, "Park Cleanup", events[0].Title)
	require.Nil(t, events[0].RegistrationDeadline)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WithArgs(domain.EventStatusCancelled, int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing or deleted row returns ErrNotFound",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE events`).
					WithArgs(domain.EventStatusCancelled, int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)
			err = repo.UpdateStatus(ctx, 7, domain.EventStatusCancelled)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_SoftDelete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE events`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewEventRepository(db)
	require.NoError(t, repo.SoftDelete(ctx, 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
