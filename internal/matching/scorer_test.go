package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

func TestScore_FullMatch(t *testing.T) {
	a := &models.Profile{
		UserID:      1,
		Goal:        "find study partner",
		Department:  "Computer Science",
		Year:        3,
		Personality: "introvert",
		Religion:    "none",
	}
	b := &models.Profile{
		UserID:      2,
		Goal:        "find study partner",
		Department:  "Computer Science",
		Year:        3,
		Personality: "introvert",
		Religion:    "none",
	}

	assert.Equal(t, MaxScore, Score(a, b))
	assert.Equal(t, 100, Score(a, b))
}

func TestScore_WorkedExample(t *testing.T) {
	// Same goal, same department, years one apart, different personality,
	// same religion: 30 + 25 + 20 + 0 + 10.
	a := &models.Profile{
		UserID:      1,
		Goal:        "make friends",
		Department:  "Mechanical Engineering",
		Year:        2,
		Personality: "extrovert",
		Religion:    "hindu",
	}
	b := &models.Profile{
		UserID:      2,
		Goal:        "make friends",
		Department:  "Mechanical Engineering",
		Year:        3,
		Personality: "introvert",
		Religion:    "hindu",
	}

	assert.Equal(t, 85, Score(a, b))
}

func TestScore_Symmetric(t *testing.T) {
	a := &models.Profile{UserID: 1, Goal: "networking", Department: "Physics", Year: 1, Personality: "ambivert"}
	b := &models.Profile{UserID: 2, Goal: "networking", Department: "Math", Year: 2, Religion: "muslim"}

	assert.Equal(t, Score(a, b), Score(b, a))
}

func TestScore_YearProximity(t *testing.T) {
	tests := []struct {
		name     string
		yearA    int
		yearB    int
		expected int
	}{
		{"same year", 2, 2, WeightYear},
		{"one apart", 2, 3, WeightYear},
		{"one apart reversed", 3, 2, WeightYear},
		{"two apart", 1, 3, 0},
		{"viewer year unset", 0, 1, 0},
		{"candidate year unset", 1, 0, 0},
		{"both unset", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &models.Profile{UserID: 1, Year: tt.yearA}
			b := &models.Profile{UserID: 2, Year: tt.yearB}
			assert.Equal(t, tt.expected, Score(a, b))
		})
	}
}

func TestScore_EmptyFieldsNeverMatch(t *testing.T) {
	// Two profiles that are both blank agree on every field, but unset
	// fields must not contribute.
	a := &models.Profile{UserID: 1}
	b := &models.Profile{UserID: 2}

	assert.Equal(t, 0, Score(a, b))
}

func TestScore_Bounds(t *testing.T) {
	profiles := []*models.Profile{
		{UserID: 1, Goal: "g", Department: "d", Year: 1, Personality: "p", Religion: "r"},
		{UserID: 2, Goal: "g", Department: "x", Year: 5, Personality: "p"},
		{UserID: 3},
		{UserID: 4, Religion: "r"},
	}

	for _, a := range profiles {
		for _, b := range profiles {
			s := Score(a, b)
			assert.GreaterOrEqual(t, s, 0)
			assert.LessOrEqual(t, s, MaxScore)
		}
	}
}
