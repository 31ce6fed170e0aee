package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"devevent/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func newMockConnector(t *testing.T) (*Connector, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Connector{db: db}, mock
}

func eventRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "slug", "description", "overview", "image", "venue",
		"location", "date", "time", "mode", "audience", "organizer",
		"agenda", "tags", "created_at", "updated_at",
	})
}

func sampleEventRow(rows *sqlmock.Rows) *sqlmock.Rows {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return rows.AddRow(
		"ev-uuid-1", "My Cool Event 2025", "my-cool-event-2025", "desc", "overview",
		"https://ik.example.com/banner.png", "Main Hall", "Berlin, Germany",
		"2025-03-15", "09:00", "offline", "developers", "DevEvent",
		"{Doors open,Keynote}", "{go,backend}", now, now,
	)
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantID  string
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ev-uuid-1"))
			},
			wantID: "ev-uuid-1",
		},
		{
			name: "slug collision from the unique index",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "events_slug_key"})
			},
			wantErr: domain.ErrDuplicateSlug,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConnector(t)
			tt.mock(mock)

			now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			event := &domain.Event{
				Title: "My Cool Event 2025", Slug: "my-cool-event-2025",
				Description: "desc", Overview: "overview",
				Image: "https://ik.example.com/banner.png",
				Venue: "Main Hall", Location: "Berlin, Germany",
				Date: "2025-03-15", Time: "09:00",
				Mode: "offline", Audience: "developers", Organizer: "DevEvent",
				Agenda: []string{"Doors open", "Keynote"}, Tags: []string{"go", "backend"},
				CreatedAt: now, UpdatedAt: now,
			}

			repo := NewEventRepository(conn)
			err := repo.Create(ctx, event)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, event.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		conn, mock := newMockConnector(t)
		mock.ExpectQuery(`SELECT (.+) FROM events WHERE slug = \$1`).
			WithArgs("my-cool-event-2025").
			WillReturnRows(sampleEventRow(eventRows()))

		repo := NewEventRepository(conn)
		event, err := repo.GetBySlug(ctx, "my-cool-event-2025")
		require.NoError(t, err)
		require.Equal(t, "ev-uuid-1", event.ID)
		require.Equal(t, []string{"Doors open", "Keynote"}, event.Agenda)
		require.Equal(t, []string{"go", "backend"}, event.Tags)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		conn, mock := newMockConnector(t)
		mock.ExpectQuery(`SELECT (.+) FROM events WHERE slug = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(conn)
		_, err := repo.GetBySlug(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_SlugExists(t *testing.T) {
	ctx := context.Background()
	conn, mock := newMockConnector(t)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("my-cool-event-2025").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	repo := NewEventRepository(conn)
	exists, err := repo.SlugExists(ctx, "my-cool-event-2025")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_List(t *testing.T) {
	ctx := context.Background()
	conn, mock := newMockConnector(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM events`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT (.+) FROM events ORDER BY created_at DESC`).
		WithArgs(20, 0).
		WillReturnRows(sampleEventRow(eventRows()))

	repo := NewEventRepository(conn)
	events, total, err := repo.List(ctx, domain.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, events, 1)
	require.Equal(t, "my-cool-event-2025", events[0].Slug)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		conn, mock := newMockConnector(t)
		mock.ExpectQuery(`UPDATE events`).
			WillReturnRows(sampleEventRow(eventRows()))

		repo := NewEventRepository(conn)
		updated, err := repo.Update(ctx, &domain.Event{ID: "ev-uuid-1", Title: "My Cool Event 2025"})
		require.NoError(t, err)
		require.Equal(t, "my-cool-event-2025", updated.Slug)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		conn, mock := newMockConnector(t)
		mock.ExpectQuery(`UPDATE events`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(conn)
		_, err := repo.Update(ctx, &domain.Event{ID: "missing"})
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("renamed onto a taken slug", func(t *testing.T) {
		conn, mock := newMockConnector(t)
		mock.ExpectQuery(`UPDATE events`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "events_slug_key"})

		repo := NewEventRepository(conn)
		_, err := repo.Update(ctx, &domain.Event{ID: "ev-uuid-1"})
		require.ErrorIs(t, err, domain.ErrDuplicateSlug)
	})
}

func TestEventRepository_DeleteBySlug(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		conn, mock := newMockConnector(t)
		mock.ExpectExec(`DELETE FROM events WHERE slug = \$1`).
			WithArgs("my-cool-event-2025").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(conn)
		require.NoError(t, repo.DeleteBySlug(ctx, "my-cool-event-2025"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		conn, mock := newMockConnector(t)
		mock.ExpectExec(`DELETE FROM events WHERE slug = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(conn)
		require.ErrorIs(t, repo.DeleteBySlug(ctx, "missing"), domain.ErrNotFound)
	})
}
