package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"eventlisting/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var organizerCols = []string{"id", "name", "image", "created_at", "updated_at"}

func TestOrganizerRepository_FindOrCreateByName(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	logo := "https://img.example/acme.png"

	tests := []struct {
		name     string
		orgName  string
		image    *string
		mock     func(mock sqlmock.Sqlmock)
		want     *domain.Organizer
		wantErr  error
		wantPErr bool
	}{
		{
			name:    "existing organizer returned unchanged",
			orgName: "Acme",
			image:   &logo,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, image, created_at, updated_at FROM organizers WHERE name = \$1`).
					WithArgs("Acme").
					WillReturnRows(sqlmock.NewRows(organizerCols).AddRow("org-1", "Acme", nil, ts, ts))
			},
			want: &domain.Organizer{ID: "org-1", Name: "Acme", CreatedAt: ts, UpdatedAt: ts},
		},
		{
			name:    "new organizer inserted",
			orgName: "Acme",
			image:   &logo,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, image, created_at, updated_at FROM organizers WHERE name = \$1`).
					WithArgs("Acme").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`INSERT INTO organizers \(name, image\) VALUES \(\$1, \$2\)\s+ON CONFLICT \(name\) DO NOTHING`).
					WithArgs("Acme", logo).
					WillReturnRows(sqlmock.NewRows(organizerCols).AddRow("org-2", "Acme", logo, ts, ts))
			},
			want: &domain.Organizer{ID: "org-2", Name: "Acme", Image: &logo, CreatedAt: ts, UpdatedAt: ts},
		},
		{
			name:    "lost insert race retries lookup",
			orgName: "Acme",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, image, created_at, updated_at FROM organizers WHERE name = \$1`).
					WithArgs("Acme").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`INSERT INTO organizers`).
					WithArgs("Acme", nil).
					WillReturnRows(sqlmock.NewRows(organizerCols))
				mock.ExpectQuery(`SELECT id, name, image, created_at, updated_at FROM organizers WHERE name = \$1`).
					WithArgs("Acme").
					WillReturnRows(sqlmock.NewRows(organizerCols).AddRow("org-winner", "Acme", nil, ts, ts))
			},
			want: &domain.Organizer{ID: "org-winner", Name: "Acme", CreatedAt: ts, UpdatedAt: ts},
		},
		{
			name:    "unique violation surfaces as conflict",
			orgName: "Acme",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, image, created_at, updated_at FROM organizers WHERE name = \$1`).
					WithArgs("Acme").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery(`INSERT INTO organizers`).
					WithArgs("Acme", nil).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "organizers_name_key"})
			},
			wantErr: domain.ErrConflict,
		},
		{
			name:    "lookup db error",
			orgName: "Acme",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, image, created_at, updated_at FROM organizers WHERE name = \$1`).
					WithArgs("Acme").
					WillReturnError(sql.ErrConnDone)
			},
			wantPErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewOrganizerRepository(db)
			got, err := repo.FindOrCreateByName(ctx, tt.orgName, tt.image)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
			case tt.wantPErr:
				var perr *domain.PersistenceError
				require.True(t, errors.As(err, &perr))
				assert.ErrorIs(t, err, sql.ErrConnDone)
			default:
				require.NoError(t, err)
				require.Equal(t, tt.want, got)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOrganizerRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT id, name, image, created_at, updated_at FROM organizers WHERE id = \$1`).
			WithArgs("org-1").
			WillReturnRows(sqlmock.NewRows(organizerCols).AddRow("org-1", "Acme", "logo.png", ts, ts))

		got, err := NewOrganizerRepository(db).GetByID(ctx, "org-1")
		require.NoError(t, err)
		require.NotNil(t, got.Image)
		assert.Equal(t, "logo.png", *got.Image)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(`SELECT id, name, image, created_at, updated_at FROM organizers WHERE id = \$1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got, err := NewOrganizerRepository(db).GetByID(ctx, "missing")
		require.ErrorIs(t, err, domain.ErrNotFound)
		require.Nil(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
