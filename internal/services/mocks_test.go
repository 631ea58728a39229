package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

// MockUserStore is a mock implementation of UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, email, passwordHash, campus string, role models.UserRole) (*models.User, error) {
	args := m.Called(ctx, email, passwordHash, campus, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockProfileStore is a mock implementation of ProfileStore
type MockProfileStore struct {
	mock.Mock
}

func (m *MockProfileStore) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileStore) Upsert(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.Profile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileStore) SetPicture(ctx context.Context, userID int64, pictureURL string) error {
	args := m.Called(ctx, userID, pictureURL)
	return args.Error(0)
}

// MockFriendStore is a mock implementation of FriendStore
type MockFriendStore struct {
	mock.Mock
}

func (m *MockFriendStore) CreateRequest(ctx context.Context, requesterID, receiverID int64) (*models.FriendRequest, error) {
	args := m.Called(ctx, requesterID, receiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockFriendStore) GetByID(ctx context.Context, id int64) (*models.FriendRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockFriendStore) GetPair(ctx context.Context, userA, userB int64) (*models.FriendRequest, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockFriendStore) Accept(ctx context.Context, requestID int64) (*models.FriendRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FriendRequest), args.Error(1)
}

func (m *MockFriendStore) DeleteAccepted(ctx context.Context, userA, userB int64) error {
	args := m.Called(ctx, userA, userB)
	return args.Error(0)
}

func (m *MockFriendStore) ListFriends(ctx context.Context, userID int64) ([]*models.Friend, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Friend), args.Error(1)
}

func (m *MockFriendStore) ListPendingReceived(ctx context.Context, userID int64) ([]*models.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FriendRequest), args.Error(1)
}

func (m *MockFriendStore) ListConnectedIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]bool), args.Error(1)
}

// MockConfessionStore is a mock implementation of ConfessionStore
type MockConfessionStore struct {
	mock.Mock
}

func (m *MockConfessionStore) Create(ctx context.Context, authorID int64, content, mood string, tags []string) (*models.Confession, error) {
	args := m.Called(ctx, authorID, content, mood, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Confession), args.Error(1)
}

func (m *MockConfessionStore) GetByID(ctx context.Context, id int64) (*models.Confession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Confession), args.Error(1)
}

func (m *MockConfessionStore) ListApproved(ctx context.Context, viewerID int64, filters models.ConfessionFilters) ([]*models.Confession, error) {
	args := m.Called(ctx, viewerID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Confession), args.Error(1)
}

func (m *MockConfessionStore) ToggleVote(ctx context.Context, userID, confessionID int64, vote models.VoteType) (models.VoteType, error) {
	args := m.Called(ctx, userID, confessionID, vote)
	return args.Get(0).(models.VoteType), args.Error(1)
}

func (m *MockConfessionStore) CountVotes(ctx context.Context, confessionID int64) (int, int, error) {
	args := m.Called(ctx, confessionID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockConfessionStore) CreateReport(ctx context.Context, confessionID, reporterID int64, reason string) error {
	args := m.Called(ctx, confessionID, reporterID, reason)
	return args.Error(0)
}

func (m *MockConfessionStore) ListPending(ctx context.Context, limit, offset int) ([]*models.PendingConfession, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PendingConfession), args.Error(1)
}

func (m *MockConfessionStore) Approve(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockConfessionStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStatsStore is a mock implementation of StatsStore
type MockStatsStore struct {
	mock.Mock
}

func (m *MockStatsStore) Totals(ctx context.Context) (*models.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlatformStats), args.Error(1)
}

func (m *MockStatsStore) TopActiveUsers(ctx context.Context, limit int) ([]models.ActiveUser, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ActiveUser), args.Error(1)
}

func (m *MockStatsStore) MoodDistribution(ctx context.Context) ([]models.MoodCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MoodCount), args.Error(1)
}

func (m *MockStatsStore) WeeklyActivity(ctx context.Context) ([]models.DailyActivity, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DailyActivity), args.Error(1)
}

// MockAnnouncementStore is a mock implementation of AnnouncementStore
type MockAnnouncementStore struct {
	mock.Mock
}

func (m *MockAnnouncementStore) Create(ctx context.Context, authorID int64, title, message string) (*models.Announcement, error) {
	args := m.Called(ctx, authorID, title, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Announcement), args.Error(1)
}

func (m *MockAnnouncementStore) List(ctx context.Context, limit int) ([]*models.Announcement, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Announcement), args.Error(1)
}

// MockCandidateSource is a mock implementation of CandidateSource
type MockCandidateSource struct {
	mock.Mock
}

func (m *MockCandidateSource) Get() ([]*models.Profile, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

// MockProfileCacheUpdater is a mock implementation of ProfileCacheUpdater
type MockProfileCacheUpdater struct {
	mock.Mock
}

func (m *MockProfileCacheUpdater) UpdateProfile(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockImageStore is a mock implementation of ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) UploadImage(ctx context.Context, imageData, key, contentType string) (string, error) {
	args := m.Called(ctx, imageData, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) ValidateImageType(contentType string) error {
	args := m.Called(contentType)
	return args.Error(0)
}

func (m *MockImageStore) ValidateImageSize(imageData string) error {
	args := m.Called(imageData)
	return args.Error(0)
}
