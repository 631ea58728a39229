package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-api/config"
	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/internal/services"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
)

func newConfessionService(store *MockConfessionStore) *services.ConfessionService {
	return services.NewConfessionService(store, &config.Config{}, nil)
}

func TestConfessionService_Create(t *testing.T) {
	store := new(MockConfessionStore)
	service := newConfessionService(store)
	ctx := context.Background()

	store.On("Create", ctx, int64(1), "I still eat cereal for dinner most nights", "sheepish", []string{"food"}).
		Return(&models.Confession{ID: 7, AuthorID: 1, Status: models.ConfessionPending}, nil).Once()

	confession, err := service.Create(ctx, 1, &models.CreateConfessionRequest{
		Content: "I still eat cereal for dinner most nights",
		Mood:    "sheepish",
		Tags:    []string{"food"},
	})

	require.NoError(t, err)
	assert.Equal(t, models.ConfessionPending, confession.Status)
	store.AssertExpectations(t)
}

func TestConfessionService_Vote(t *testing.T) {
	store := new(MockConfessionStore)
	service := newConfessionService(store)
	ctx := context.Background()

	store.On("GetByID", ctx, int64(7)).
		Return(&models.Confession{ID: 7, AuthorID: 3, Status: models.ConfessionApproved}, nil).Once()
	store.On("ToggleVote", ctx, int64(1), int64(7), models.VoteUp).
		Return(models.VoteUp, nil).Once()
	store.On("CountVotes", ctx, int64(7)).Return(4, 1, nil).Once()

	confession, err := service.Vote(ctx, 1, 7, models.VoteUp)

	require.NoError(t, err)
	assert.Equal(t, 4, confession.Upvotes)
	assert.Equal(t, 1, confession.Downvotes)
	assert.Equal(t, models.VoteUp, confession.MyVote)
	assert.Zero(t, confession.AuthorID, "author must not leak through vote responses")
	store.AssertExpectations(t)
}

func TestConfessionService_Vote_InvalidType(t *testing.T) {
	service := newConfessionService(new(MockConfessionStore))

	_, err := service.Vote(context.Background(), 1, 7, models.VoteType("sideways"))

	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestConfessionService_Vote_PendingReadsAsMissing(t *testing.T) {
	store := new(MockConfessionStore)
	service := newConfessionService(store)
	ctx := context.Background()

	store.On("GetByID", ctx, int64(7)).
		Return(&models.Confession{ID: 7, Status: models.ConfessionPending}, nil).Once()

	_, err := service.Vote(ctx, 1, 7, models.VoteDown)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	store.AssertNotCalled(t, "ToggleVote")
}

func TestConfessionService_Report_RepeatConflicts(t *testing.T) {
	store := new(MockConfessionStore)
	service := newConfessionService(store)
	ctx := context.Background()

	store.On("GetByID", ctx, int64(7)).
		Return(&models.Confession{ID: 7, Status: models.ConfessionApproved}, nil).Once()
	store.On("CreateReport", ctx, int64(7), int64(1), "spam").
		Return(apperrors.ErrConflict).Once()

	err := service.Report(ctx, 1, 7, "spam")

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	store.AssertExpectations(t)
}

func TestConfessionService_List_DefaultsApplied(t *testing.T) {
	store := new(MockConfessionStore)
	service := newConfessionService(store)
	ctx := context.Background()

	store.On("ListApproved", ctx, int64(1), models.ConfessionFilters{Limit: 20}).
		Return([]*models.Confession{}, nil).Once()

	_, err := service.List(ctx, 1, models.ConfessionFilters{})

	require.NoError(t, err)
	store.AssertExpectations(t)
}
