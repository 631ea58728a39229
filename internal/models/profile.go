package models

import "time"

// Profile holds the matchable attributes of a user. String fields are empty
// and Year is zero when the user has not filled them in; scoring treats
// unset fields as non-matching, never as errors.
type Profile struct {
	UserID             int64     `json:"user_id"`
	Name               string    `json:"name"`
	Bio                string    `json:"bio"`
	Goal               string    `json:"goal"`
	Personality        string    `json:"personality"`
	Religion           string    `json:"religion"`
	RelationshipStatus string    `json:"relationship_status"`
	Year               int       `json:"year"`
	Department         string    `json:"department"`
	Hobbies            string    `json:"hobbies"`
	ProfilePicture     string    `json:"profile_picture"`
	PrivacyDepartment  bool      `json:"privacy_department"`
	PrivacyStatus      bool      `json:"privacy_status"`
	PrivacyGoals       bool      `json:"privacy_goals"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// IsComplete reports whether the profile carries enough data to be matched.
// Matching the original behavior: a profile row must exist and have at least
// the goal filled in.
func (p *Profile) IsComplete() bool {
	return p.Goal != ""
}

// UpdateProfileRequest carries a partial profile update. Pointer fields
// distinguish "not provided" from "set to empty"; only provided fields are
// written.
type UpdateProfileRequest struct {
	Name               *string `json:"name" binding:"omitempty,max=100"`
	Bio                *string `json:"bio" binding:"omitempty,max=1000"`
	Goal               *string `json:"goal" binding:"omitempty,max=100"`
	Personality        *string `json:"personality" binding:"omitempty,max=50"`
	Religion           *string `json:"religion" binding:"omitempty,max=50"`
	RelationshipStatus *string `json:"relationship_status" binding:"omitempty,max=50"`
	Year               *int    `json:"year" binding:"omitempty,min=1,max=10"`
	Department         *string `json:"department" binding:"omitempty,max=100"`
	Hobbies            *string `json:"hobbies" binding:"omitempty,max=500"`
	ProfilePicture     *string `json:"profile_picture" binding:"omitempty,max=500"`
	PrivacyDepartment  *bool   `json:"privacy_department"`
	PrivacyStatus      *bool   `json:"privacy_status"`
	PrivacyGoals       *bool   `json:"privacy_goals"`
}

// HasUpdates reports whether at least one updatable field was provided
func (r *UpdateProfileRequest) HasUpdates() bool {
	return r.Name != nil || r.Bio != nil || r.Goal != nil || r.Personality != nil ||
		r.Religion != nil || r.RelationshipStatus != nil || r.Year != nil ||
		r.Department != nil || r.Hobbies != nil || r.ProfilePicture != nil ||
		r.PrivacyDepartment != nil || r.PrivacyStatus != nil || r.PrivacyGoals != nil
}

// UploadPictureRequest is the payload for profile picture upload
type UploadPictureRequest struct {
	ImageData   string `json:"image_data" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

// ProfileResponse wraps a profile with its account fields
type ProfileResponse struct {
	Email   string   `json:"email"`
	Campus  string   `json:"campus"`
	Role    UserRole `json:"role"`
	Profile *Profile `json:"profile"`
}
