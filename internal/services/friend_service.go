package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/campusconnect/campusconnect-api/internal/models"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
)

// FriendService manages the connection request lifecycle: pending requests,
// acceptance, and removal of accepted connections.
type FriendService struct {
	friendRepo FriendStore
	userRepo   UserStore
}

func NewFriendService(friendRepo FriendStore, userRepo UserStore) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// ListFriends returns the user's accepted connections
func (s *FriendService) ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error) {
	return s.friendRepo.ListFriends(ctx, userID)
}

// ListPendingRequests returns requests awaiting the user's decision
func (s *FriendService) ListPendingRequests(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	return s.friendRepo.ListPendingReceived(ctx, userID)
}

// SendRequest creates a pending request toward another user. Self-requests
// and any existing request between the pair, in either direction, conflict.
// The pre-check gives a descriptive message; the unique index on the pair
// catches the race where two users request each other simultaneously.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, receiverID int64) (*models.FriendRequest, error) {
	if requesterID == receiverID {
		return nil, apperrors.ConflictError("cannot send a request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	existing, err := s.friendRepo.GetPair(ctx, requesterID, receiverID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status == models.FriendRequestAccepted {
			return nil, apperrors.ConflictError("already connected")
		}
		return nil, apperrors.ConflictError("a request between you already exists")
	}

	request, err := s.friendRepo.CreateRequest(ctx, requesterID, receiverID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.ConflictError("a request between you already exists")
		}
		logger.Error("Failed to create friend request",
			zap.Int64("requester_id", requesterID),
			zap.Int64("receiver_id", receiverID),
			zap.Error(err))
		return nil, err
	}

	logger.Info("Friend request sent",
		zap.Int64("requester_id", requesterID),
		zap.Int64("receiver_id", receiverID))

	return request, nil
}

// AcceptRequest accepts a pending request addressed to the user. Requests
// addressed to someone else are reported as not found rather than
// forbidden, so request ids cannot be probed.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID int64) (*models.FriendRequest, error) {
	request, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.ReceiverID != userID {
		return nil, apperrors.ErrNotFound
	}
	if request.Status != models.FriendRequestPending {
		return nil, apperrors.ConflictError("request is not pending")
	}

	accepted, err := s.friendRepo.Accept(ctx, requestID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Lost a race against another accept or a removal.
			return nil, apperrors.ConflictError("request is not pending")
		}
		return nil, err
	}

	logger.Info("Friend request accepted",
		zap.Int64("request_id", requestID),
		zap.Int64("user_id", userID))

	return accepted, nil
}

// RemoveFriend deletes the accepted connection between the user and a
// friend. Either side may remove it.
func (s *FriendService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.friendRepo.DeleteAccepted(ctx, userID, friendID); err != nil {
		return err
	}

	logger.Info("Friend removed",
		zap.Int64("user_id", userID),
		zap.Int64("friend_id", friendID))

	return nil
}
