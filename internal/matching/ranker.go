package matching

import (
	"sort"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

// Rank scores every candidate against the viewer's profile and returns them
// ordered by score descending. Candidates equal to the viewer, present in
// excluded, or failing the filters are dropped before scoring. Ties keep the
// candidates' input order.
func Rank(own *models.Profile, candidates []*models.Profile, excluded map[int64]bool, filters models.MatchFilters) []models.MatchCandidate {
	ranked := make([]models.MatchCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.UserID == own.UserID {
			continue
		}
		if excluded[c.UserID] {
			continue
		}
		if !matchesFilters(c, filters) {
			continue
		}
		ranked = append(ranked, models.MatchCandidate{
			Profile: c,
			Score:   Score(own, c),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

func matchesFilters(p *models.Profile, f models.MatchFilters) bool {
	if f.Goal != "" && p.Goal != f.Goal {
		return false
	}
	if f.Department != "" && p.Department != f.Department {
		return false
	}
	if f.Year > 0 && p.Year != f.Year {
		return false
	}
	return true
}
