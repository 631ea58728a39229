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
)

func friendRequestRows(status string, now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "requester_id", "receiver_id", "status", "created_at", "updated_at",
	}).AddRow(int64(3), int64(1), int64(2), status, now, now)
}

func TestFriendRepository_CreateRequest(t *testing.T) {
	pool := newPoolMock(t)
	repo := NewFriendRepository(pool)

	pool.ExpectQuery(`INSERT INTO friend_requests`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(friendRequestRows("pending", time.Now()))

	request, err := repo.CreateRequest(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, models.FriendRequestPending, request.Status)
	assert.Equal(t, int64(1), request.RequesterID)
	assert.Equal(t, int64(2), request.ReceiverID)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestFriendRepository_CreateRequest_RacingDuplicate(t *testing.T) {
	pool := newPoolMock(t)
	repo := NewFriendRepository(pool)

	// Simulates losing the race against a mirrored request: the unique
	// index on the normalized pair fires even though the pre-check saw
	// nothing.
	pool.ExpectQuery(`INSERT INTO friend_requests`).
		WithArgs(int64(2), int64(1)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "friend_requests_pair_key"})

	_, err := repo.CreateRequest(context.Background(), 2, 1)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestFriendRepository_Accept_NotPending(t *testing.T) {
	pool := newPoolMock(t)
	repo := NewFriendRepository(pool)

	pool.ExpectQuery(`UPDATE friend_requests`).
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Accept(context.Background(), 3)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestFriendRepository_DeleteAccepted_NoConnection(t *testing.T) {
	pool := newPoolMock(t)
	repo := NewFriendRepository(pool)

	pool.ExpectExec(`DELETE FROM friend_requests`).
		WithArgs(int64(1), int64(9)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.DeleteAccepted(context.Background(), 1, 9)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, pool.ExpectationsWereMet())
}

func TestFriendRepository_ListConnectedIDs(t *testing.T) {
	pool := newPoolMock(t)
	repo := NewFriendRepository(pool)

	rows := pgxmock.NewRows([]string{"id"}).
		AddRow(int64(2)).
		AddRow(int64(5))
	pool.ExpectQuery(`SELECT CASE WHEN requester_id`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	ids, err := repo.ListConnectedIDs(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, map[int64]bool{2: true, 5: true}, ids)
	assert.NoError(t, pool.ExpectationsWereMet())
}
