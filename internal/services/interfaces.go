package services

import (
	"context"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

// AuthServiceInterface defines account and session operations
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, userID int64) (*models.MeResponse, error)
}

// ProfileServiceInterface defines profile read/write operations
type ProfileServiceInterface interface {
	GetProfile(ctx context.Context, userID int64) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.Profile, error)
	UploadPicture(ctx context.Context, userID int64, req *models.UploadPictureRequest) (string, error)
}

// MatchServiceInterface defines candidate discovery
type MatchServiceInterface interface {
	FindMatches(ctx context.Context, userID int64, filters models.MatchFilters, limit int) ([]models.MatchEntry, error)
}

// FriendServiceInterface defines the connection lifecycle
type FriendServiceInterface interface {
	ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error)
	ListPendingRequests(ctx context.Context, userID int64) ([]*models.FriendRequest, error)
	SendRequest(ctx context.Context, requesterID, receiverID int64) (*models.FriendRequest, error)
	AcceptRequest(ctx context.Context, userID, requestID int64) (*models.FriendRequest, error)
	RemoveFriend(ctx context.Context, userID, friendID int64) error
}

// ConfessionServiceInterface defines the anonymous confession feed
type ConfessionServiceInterface interface {
	Create(ctx context.Context, authorID int64, req *models.CreateConfessionRequest) (*models.Confession, error)
	List(ctx context.Context, viewerID int64, filters models.ConfessionFilters) ([]*models.Confession, error)
	Vote(ctx context.Context, userID, confessionID int64, vote models.VoteType) (*models.Confession, error)
	Report(ctx context.Context, reporterID, confessionID int64, reason string) error
}

// AdminServiceInterface defines moderation and reporting operations
type AdminServiceInterface interface {
	GetStats(ctx context.Context) (*models.PlatformStats, error)
	ListPendingConfessions(ctx context.Context, limit, offset int) ([]*models.PendingConfession, error)
	ApproveConfession(ctx context.Context, confessionID int64) error
	DeleteConfession(ctx context.Context, confessionID int64) error
	CreateAnnouncement(ctx context.Context, authorID int64, req *models.AnnouncementRequest) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context, limit int) ([]*models.Announcement, error)
}

// Ensure services implement their interfaces
var _ AuthServiceInterface = (*AuthService)(nil)
var _ ProfileServiceInterface = (*ProfileService)(nil)
var _ MatchServiceInterface = (*MatchService)(nil)
var _ FriendServiceInterface = (*FriendService)(nil)
var _ ConfessionServiceInterface = (*ConfessionService)(nil)
var _ AdminServiceInterface = (*AdminService)(nil)
