package services

import (
	"context"

	"github.com/campusconnect/campusconnect-api/internal/cache"
	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/internal/repository"
	"github.com/campusconnect/campusconnect-api/pkg/storage"
)

// Store interfaces are the persistence surface each service consumes. The
// repository package implements them; tests substitute mocks.

type UserStore interface {
	Create(ctx context.Context, email, passwordHash, campus string, role models.UserRole) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	Upsert(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.Profile, error)
	SetPicture(ctx context.Context, userID int64, pictureURL string) error
}

type FriendStore interface {
	CreateRequest(ctx context.Context, requesterID, receiverID int64) (*models.FriendRequest, error)
	GetByID(ctx context.Context, id int64) (*models.FriendRequest, error)
	GetPair(ctx context.Context, userA, userB int64) (*models.FriendRequest, error)
	Accept(ctx context.Context, requestID int64) (*models.FriendRequest, error)
	DeleteAccepted(ctx context.Context, userA, userB int64) error
	ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error)
	ListPendingReceived(ctx context.Context, userID int64) ([]*models.FriendRequest, error)
	ListConnectedIDs(ctx context.Context, userID int64) (map[int64]bool, error)
}

type ConfessionStore interface {
	Create(ctx context.Context, authorID int64, content, mood string, tags []string) (*models.Confession, error)
	GetByID(ctx context.Context, id int64) (*models.Confession, error)
	ListApproved(ctx context.Context, viewerID int64, filters models.ConfessionFilters) ([]*models.Confession, error)
	ToggleVote(ctx context.Context, userID, confessionID int64, vote models.VoteType) (models.VoteType, error)
	CountVotes(ctx context.Context, confessionID int64) (upvotes, downvotes int, err error)
	CreateReport(ctx context.Context, confessionID, reporterID int64, reason string) error
	ListPending(ctx context.Context, limit, offset int) ([]*models.PendingConfession, error)
	Approve(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

type StatsStore interface {
	Totals(ctx context.Context) (*models.PlatformStats, error)
	TopActiveUsers(ctx context.Context, limit int) ([]models.ActiveUser, error)
	MoodDistribution(ctx context.Context) ([]models.MoodCount, error)
	WeeklyActivity(ctx context.Context) ([]models.DailyActivity, error)
}

type AnnouncementStore interface {
	Create(ctx context.Context, authorID int64, title, message string) (*models.Announcement, error)
	List(ctx context.Context, limit int) ([]*models.Announcement, error)
}

// ProfileCacheUpdater refreshes single cache entries after profile writes
type ProfileCacheUpdater interface {
	UpdateProfile(ctx context.Context, userID int64) error
}

// ImageStore stores uploaded images and validates them beforehand
type ImageStore interface {
	UploadImage(ctx context.Context, imageData, key, contentType string) (string, error)
	ValidateImageType(contentType string) error
	ValidateImageSize(imageData string) error
}

// Ensure the repositories implement the store interfaces
var _ UserStore = (*repository.UserRepository)(nil)
var _ ProfileStore = (*repository.ProfileRepository)(nil)
var _ FriendStore = (*repository.FriendRepository)(nil)
var _ ConfessionStore = (*repository.ConfessionRepository)(nil)
var _ StatsStore = (*repository.StatsRepository)(nil)
var _ AnnouncementStore = (*repository.AnnouncementRepository)(nil)
var _ ProfileCacheUpdater = (*cache.ProfileCache)(nil)
var _ CandidateSource = (*cache.ProfileCache)(nil)
var _ ImageStore = (*storage.Client)(nil)
