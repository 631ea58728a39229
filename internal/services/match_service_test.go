package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/internal/services"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
)

func matchViewer() *models.Profile {
	return &models.Profile{
		UserID:      1,
		Goal:        "find study partner",
		Department:  "Computer Science",
		Year:        2,
		Personality: "introvert",
	}
}

func TestMatchService_FindMatches(t *testing.T) {
	profileStore := new(MockProfileStore)
	friendStore := new(MockFriendStore)
	candidates := new(MockCandidateSource)
	service := services.NewMatchService(profileStore, friendStore, candidates)
	ctx := context.Background()

	profileStore.On("GetByUserID", ctx, int64(1)).Return(matchViewer(), nil).Once()
	friendStore.On("ListConnectedIDs", ctx, int64(1)).
		Return(map[int64]bool{4: true}, nil).Once()
	candidates.On("Get").Return([]*models.Profile{
		{UserID: 2, Goal: "find study partner", Department: "Computer Science", Year: 2},
		{UserID: 3, Goal: "make friends"},
		{UserID: 4, Goal: "find study partner"},
		{UserID: 1, Goal: "find study partner"},
	}, nil).Once()

	entries, err := service.FindMatches(ctx, 1, models.MatchFilters{}, 0)

	require.NoError(t, err)
	// Candidate 4 is already a friend, candidate 1 is the viewer.
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].UserID)
	assert.Equal(t, 75, entries[0].MatchScore)
	assert.Equal(t, int64(3), entries[1].UserID)
	assert.Equal(t, 0, entries[1].MatchScore)

	profileStore.AssertExpectations(t)
	friendStore.AssertExpectations(t)
	candidates.AssertExpectations(t)
}

func TestMatchService_FindMatches_IncompleteProfile(t *testing.T) {
	profileStore := new(MockProfileStore)
	service := services.NewMatchService(profileStore, new(MockFriendStore), new(MockCandidateSource))
	ctx := context.Background()

	profileStore.On("GetByUserID", ctx, int64(1)).
		Return(&models.Profile{UserID: 1}, nil).Once()

	_, err := service.FindMatches(ctx, 1, models.MatchFilters{}, 0)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestMatchService_FindMatches_NoProfile(t *testing.T) {
	profileStore := new(MockProfileStore)
	service := services.NewMatchService(profileStore, new(MockFriendStore), new(MockCandidateSource))
	ctx := context.Background()

	profileStore.On("GetByUserID", ctx, int64(1)).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := service.FindMatches(ctx, 1, models.MatchFilters{}, 0)

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestMatchService_FindMatches_LimitClamped(t *testing.T) {
	profileStore := new(MockProfileStore)
	friendStore := new(MockFriendStore)
	candidates := new(MockCandidateSource)
	service := services.NewMatchService(profileStore, friendStore, candidates)
	ctx := context.Background()

	pool := make([]*models.Profile, 0, 60)
	for i := int64(2); i < 62; i++ {
		pool = append(pool, &models.Profile{UserID: i, Goal: "find study partner"})
	}

	profileStore.On("GetByUserID", ctx, int64(1)).Return(matchViewer(), nil).Once()
	friendStore.On("ListConnectedIDs", ctx, int64(1)).Return(map[int64]bool{}, nil).Once()
	candidates.On("Get").Return(pool, nil).Once()

	entries, err := service.FindMatches(ctx, 1, models.MatchFilters{}, 500)

	require.NoError(t, err)
	assert.Len(t, entries, services.MaxMatchLimit)
}

func TestMatchService_FindMatches_PrivacyBlanksFields(t *testing.T) {
	profileStore := new(MockProfileStore)
	friendStore := new(MockFriendStore)
	candidates := new(MockCandidateSource)
	service := services.NewMatchService(profileStore, friendStore, candidates)
	ctx := context.Background()

	profileStore.On("GetByUserID", ctx, int64(1)).Return(matchViewer(), nil).Once()
	friendStore.On("ListConnectedIDs", ctx, int64(1)).Return(map[int64]bool{}, nil).Once()
	candidates.On("Get").Return([]*models.Profile{
		{
			UserID:            2,
			Goal:              "find study partner",
			Department:        "Computer Science",
			Year:              2,
			PrivacyGoals:      true,
			PrivacyDepartment: true,
		},
	}, nil).Once()

	entries, err := service.FindMatches(ctx, 1, models.MatchFilters{}, 0)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	// Hidden fields still scored but are blanked in the response.
	assert.Equal(t, 75, entries[0].MatchScore)
	assert.Empty(t, entries[0].Goal)
	assert.Empty(t, entries[0].Department)
	assert.Zero(t, entries[0].Year)
}
