package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

func rankerViewer() *models.Profile {
	return &models.Profile{
		UserID:      1,
		Goal:        "find study partner",
		Department:  "Computer Science",
		Year:        2,
		Personality: "introvert",
		Religion:    "none",
	}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	viewer := rankerViewer()
	candidates := []*models.Profile{
		{UserID: 2, Goal: "make friends"},                                                // 0
		{UserID: 3, Goal: "find study partner", Department: "Computer Science", Year: 2}, // 75
		{UserID: 4, Goal: "find study partner"},                                          // 30
	}

	ranked := Rank(viewer, candidates, nil, models.MatchFilters{})

	require.Len(t, ranked, 3)
	assert.Equal(t, int64(3), ranked[0].Profile.UserID)
	assert.Equal(t, 75, ranked[0].Score)
	assert.Equal(t, int64(4), ranked[1].Profile.UserID)
	assert.Equal(t, 30, ranked[1].Score)
	assert.Equal(t, int64(2), ranked[2].Profile.UserID)
	assert.Equal(t, 0, ranked[2].Score)
}

func TestRank_StableTieOrder(t *testing.T) {
	viewer := rankerViewer()
	// Candidates 2 and 3 both score 85 (goal, department, adjacent year,
	// religion); candidate 4 scores 40. The two 85s must keep their input
	// order.
	candidates := []*models.Profile{
		{UserID: 2, Goal: "find study partner", Department: "Computer Science", Year: 3, Religion: "none"},
		{UserID: 3, Goal: "find study partner", Department: "Computer Science", Year: 1, Religion: "none"},
		{UserID: 4, Goal: "find study partner", Religion: "none"},
	}

	ranked := Rank(viewer, candidates, nil, models.MatchFilters{})

	require.Len(t, ranked, 3)
	assert.Equal(t, 85, ranked[0].Score)
	assert.Equal(t, 85, ranked[1].Score)
	assert.Equal(t, 40, ranked[2].Score)
	assert.Equal(t, int64(2), ranked[0].Profile.UserID)
	assert.Equal(t, int64(3), ranked[1].Profile.UserID)
}

func TestRank_DropsSelfAndExcluded(t *testing.T) {
	viewer := rankerViewer()
	candidates := []*models.Profile{
		{UserID: 1, Goal: "find study partner"},
		{UserID: 2, Goal: "find study partner"},
		{UserID: 3, Goal: "find study partner"},
	}

	ranked := Rank(viewer, candidates, map[int64]bool{3: true}, models.MatchFilters{})

	require.Len(t, ranked, 1)
	assert.Equal(t, int64(2), ranked[0].Profile.UserID)
}

func TestRank_AppliesFilters(t *testing.T) {
	viewer := rankerViewer()
	candidates := []*models.Profile{
		{UserID: 2, Goal: "make friends", Department: "Physics", Year: 2},
		{UserID: 3, Goal: "make friends", Department: "Physics", Year: 3},
		{UserID: 4, Goal: "networking", Department: "Physics", Year: 2},
	}

	ranked := Rank(viewer, candidates, nil, models.MatchFilters{
		Goal: "make friends",
		Year: 2,
	})

	require.Len(t, ranked, 1)
	assert.Equal(t, int64(2), ranked[0].Profile.UserID)
}

func TestRank_EmptyCandidates(t *testing.T) {
	ranked := Rank(rankerViewer(), nil, nil, models.MatchFilters{})
	assert.Empty(t, ranked)
}
