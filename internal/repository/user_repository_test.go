package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-api/internal/models"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
)

func init() {
	logger.InitializeForTest()
}

func newPoolMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func userRows(now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "email", "password_hash", "campus", "role", "created_at", "updated_at",
	}).AddRow(int64(7), "student@campus.edu", "$2a$10$hash", "North Campus", "student", now, now)
}

func TestUserRepository_Create(t *testing.T) {
	pool := newPoolMock(t)
	repo := NewUserRepository(pool)
	now := time.Now()

	pool.ExpectQuery(`INSERT INTO users`).
		WithArgs("student@campus.edu", "$2a$10$hash", "North Campus", "student").
		WillReturnRows(userRows(now))

	user, err := repo.Create(context.Background(), "student@campus.edu", "$2a$10$hash", "North Campus", models.UserRoleStudent)

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, models.UserRoleStudent, user.Role)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	pool := newPoolMock(t)
	repo := NewUserRepository(pool)

	pool.ExpectQuery(`INSERT INTO users`).
		WithArgs("taken@campus.edu", "$2a$10$hash", "North Campus", "student").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	_, err := repo.Create(context.Background(), "taken@campus.edu", "$2a$10$hash", "North Campus", models.UserRoleStudent)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	pool := newPoolMock(t)
	repo := NewUserRepository(pool)

	pool.ExpectQuery(`SELECT id, email, password_hash`).
		WithArgs("ghost@campus.edu").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@campus.edu")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	pool := newPoolMock(t)
	repo := NewUserRepository(pool)
	now := time.Now()

	pool.ExpectQuery(`SELECT id, email, password_hash`).
		WithArgs(int64(7)).
		WillReturnRows(userRows(now))

	user, err := repo.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, "student@campus.edu", user.Email)
	assert.NoError(t, pool.ExpectationsWereMet())
}
