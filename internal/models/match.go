package models

// MatchFilters are optional exact-match constraints on match candidates.
// Zero values mean "no constraint".
type MatchFilters struct {
	Goal       string
	Department string
	Year       int
}

// MatchCandidate is a scored candidate profile, ordered by score descending.
// Candidates with equal scores keep the order the store returned them in.
type MatchCandidate struct {
	Profile *Profile `json:"profile"`
	Score   int      `json:"match_score"`
}

// MatchEntry is the public shape of a scored candidate. Privacy-guarded
// fields are blanked according to the candidate's privacy flags.
type MatchEntry struct {
	UserID         int64  `json:"user_id"`
	Name           string `json:"name"`
	Bio            string `json:"bio"`
	Goal           string `json:"goal,omitempty"`
	Department     string `json:"department,omitempty"`
	Year           int    `json:"year,omitempty"`
	Personality    string `json:"personality"`
	Hobbies        string `json:"hobbies"`
	ProfilePicture string `json:"profile_picture"`
	MatchScore     int    `json:"match_score"`
}

// ToEntry converts a scored candidate to its public shape, honoring the
// candidate's privacy flags.
func (mc *MatchCandidate) ToEntry() MatchEntry {
	p := mc.Profile
	entry := MatchEntry{
		UserID:         p.UserID,
		Name:           p.Name,
		Bio:            p.Bio,
		Personality:    p.Personality,
		Hobbies:        p.Hobbies,
		ProfilePicture: p.ProfilePicture,
		MatchScore:     mc.Score,
	}
	if !p.PrivacyGoals {
		entry.Goal = p.Goal
	}
	if !p.PrivacyDepartment {
		entry.Department = p.Department
		entry.Year = p.Year
	}
	return entry
}
