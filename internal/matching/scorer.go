// Package matching implements compatibility scoring and ranking of
// candidate profiles. It is pure computation with no storage or transport
// dependencies so it can be exercised directly in tests.
package matching

import "github.com/campusconnect/campusconnect-api/internal/models"

// Score weights per matching dimension. The weights sum to 100 so a full
// match yields a percentage-like score.
const (
	WeightGoal        = 30
	WeightDepartment  = 25
	WeightYear        = 20
	WeightPersonality = 15
	WeightReligion    = 10

	// MaxScore is the highest attainable compatibility score.
	MaxScore = WeightGoal + WeightDepartment + WeightYear + WeightPersonality + WeightReligion
)

// Score computes the compatibility score between two profiles. Each
// dimension contributes its full weight on a match and nothing otherwise;
// unset fields (empty strings, zero years) never match, including against
// another unset field. Score is symmetric in its arguments.
func Score(a, b *models.Profile) int {
	score := 0
	if a.Goal != "" && a.Goal == b.Goal {
		score += WeightGoal
	}
	if a.Department != "" && a.Department == b.Department {
		score += WeightDepartment
	}
	if a.Year > 0 && b.Year > 0 && absInt(a.Year-b.Year) <= 1 {
		score += WeightYear
	}
	if a.Personality != "" && a.Personality == b.Personality {
		score += WeightPersonality
	}
	if a.Religion != "" && a.Religion == b.Religion {
		score += WeightReligion
	}
	return score
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
