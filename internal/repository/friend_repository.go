package repository

import (
	"context"
	"time"

	"github.com/campusconnect/campusconnect-api/internal/models"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
)

type FriendRepository struct {
	pool PgxIface
}

func NewFriendRepository(pool PgxIface) *FriendRepository {
	return &FriendRepository{pool: pool}
}

const friendRequestColumns = `id, requester_id, receiver_id, status, created_at, updated_at`

// CreateRequest inserts a pending request. The unique index on the
// normalized user pair rejects a second request in either direction, which
// mapError turns into ErrConflict.
func (r *FriendRepository) CreateRequest(ctx context.Context, requesterID, receiverID int64) (*models.FriendRequest, error) {
	start := time.Now()
	query := `
		INSERT INTO friend_requests (requester_id, receiver_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING ` + friendRequestColumns + `
	`

	request, err := scanFriendRequest(r.pool.QueryRow(ctx, query, requesterID, receiverID))
	recordDBCall("friend_requests.create", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return request, nil
}

func (r *FriendRepository) GetByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	start := time.Now()
	query := `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE id = $1
		LIMIT 1
	`

	request, err := scanFriendRequest(r.pool.QueryRow(ctx, query, id))
	recordDBCall("friend_requests.get_by_id", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return request, nil
}

// GetPair returns the request between two users regardless of direction,
// or ErrNotFound when none exists.
func (r *FriendRepository) GetPair(ctx context.Context, userA, userB int64) (*models.FriendRequest, error) {
	start := time.Now()
	query := `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE (requester_id = $1 AND receiver_id = $2)
		   OR (requester_id = $2 AND receiver_id = $1)
		LIMIT 1
	`

	request, err := scanFriendRequest(r.pool.QueryRow(ctx, query, userA, userB))
	recordDBCall("friend_requests.get_pair", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return request, nil
}

// Accept flips a pending request to accepted. Returns ErrNotFound when the
// request no longer exists or is not pending, so a concurrent accept loses
// cleanly.
func (r *FriendRepository) Accept(ctx context.Context, requestID int64) (*models.FriendRequest, error) {
	start := time.Now()
	query := `
		UPDATE friend_requests
		SET status = 'accepted', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + friendRequestColumns + `
	`

	request, err := scanFriendRequest(r.pool.QueryRow(ctx, query, requestID))
	recordDBCall("friend_requests.accept", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return request, nil
}

// DeleteAccepted removes the accepted connection between two users. Returns
// ErrNotFound when they are not connected.
func (r *FriendRepository) DeleteAccepted(ctx context.Context, userA, userB int64) error {
	start := time.Now()
	query := `
		DELETE FROM friend_requests
		WHERE status = 'accepted'
		  AND ((requester_id = $1 AND receiver_id = $2)
		    OR (requester_id = $2 AND receiver_id = $1))
	`

	tag, err := r.pool.Exec(ctx, query, userA, userB)
	recordDBCall("friend_requests.delete_accepted", start, err)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListFriends returns the accepted connections of a user with the
// counterpart's account and profile summary.
func (r *FriendRepository) ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error) {
	start := time.Now()
	query := `
		SELECT u.id, u.email,
		       COALESCE(p.name, ''), COALESCE(p.profile_picture, ''),
		       COALESCE(p.bio, '')
		FROM friend_requests fr
		JOIN users u
		  ON u.id = CASE WHEN fr.requester_id = $1 THEN fr.receiver_id ELSE fr.requester_id END
		LEFT JOIN profiles p ON p.user_id = u.id
		WHERE fr.status = 'accepted'
		  AND (fr.requester_id = $1 OR fr.receiver_id = $1)
		ORDER BY fr.updated_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		recordDBCall("friend_requests.list_friends", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	var friends []*models.Friend
	for rows.Next() {
		var f models.Friend
		if err := rows.Scan(&f.UserID, &f.Email, &f.Name, &f.ProfilePicture, &f.Bio); err != nil {
			recordDBCall("friend_requests.list_friends", start, err)
			return nil, mapError(err)
		}
		friends = append(friends, &f)
	}
	err = rows.Err()
	recordDBCall("friend_requests.list_friends", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return friends, nil
}

// ListPendingReceived returns the pending requests waiting on the user
func (r *FriendRepository) ListPendingReceived(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	start := time.Now()
	query := `
		SELECT ` + friendRequestColumns + `
		FROM friend_requests
		WHERE receiver_id = $1 AND status = 'pending'
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		recordDBCall("friend_requests.list_pending_received", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	var requests []*models.FriendRequest
	for rows.Next() {
		request, err := scanFriendRequest(rows)
		if err != nil {
			recordDBCall("friend_requests.list_pending_received", start, err)
			return nil, mapError(err)
		}
		requests = append(requests, request)
	}
	err = rows.Err()
	recordDBCall("friend_requests.list_pending_received", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return requests, nil
}

// ListConnectedIDs returns the ids of every user the given user has an
// accepted connection with. Used to exclude existing friends from match
// results.
func (r *FriendRepository) ListConnectedIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	start := time.Now()
	query := `
		SELECT CASE WHEN requester_id = $1 THEN receiver_id ELSE requester_id END
		FROM friend_requests
		WHERE status = 'accepted'
		  AND (requester_id = $1 OR receiver_id = $1)
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		recordDBCall("friend_requests.list_connected_ids", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			recordDBCall("friend_requests.list_connected_ids", start, err)
			return nil, mapError(err)
		}
		ids[id] = true
	}
	err = rows.Err()
	recordDBCall("friend_requests.list_connected_ids", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return ids, nil
}

func scanFriendRequest(row rowScanner) (*models.FriendRequest, error) {
	var fr models.FriendRequest
	var status string
	if err := row.Scan(
		&fr.ID,
		&fr.RequesterID,
		&fr.ReceiverID,
		&status,
		&fr.CreatedAt,
		&fr.UpdatedAt,
	); err != nil {
		return nil, err
	}
	fr.Status = models.FriendRequestStatus(status)
	return &fr, nil
}
