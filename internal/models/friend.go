package models

import "time"

// FriendRequestStatus is the lifecycle state of a pairwise connection.
// A record is deleted outright when an accepted connection is removed, so
// there is no "removed" status.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
)

// FriendRequest is a directed connection-request record. At most one
// pending-or-accepted record exists per unordered user pair; the store
// enforces this with a unique index on the normalized pair.
type FriendRequest struct {
	ID          int64               `json:"id"`
	RequesterID int64               `json:"requester_id"`
	ReceiverID  int64               `json:"receiver_id"`
	Status      FriendRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Counterpart returns the other party of the request
func (fr *FriendRequest) Counterpart(userID int64) int64 {
	if fr.RequesterID == userID {
		return fr.ReceiverID
	}
	return fr.RequesterID
}

// Friend is an accepted connection seen from one side
type Friend struct {
	UserID         int64  `json:"friend_id"`
	Email          string `json:"friend_email"`
	Name           string `json:"friend_name"`
	ProfilePicture string `json:"friend_profile_picture"`
	Bio            string `json:"friend_bio"`
}
