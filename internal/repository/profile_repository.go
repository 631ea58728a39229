package repository

import (
	"context"
	"time"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

type ProfileRepository struct {
	pool PgxIface
}

func NewProfileRepository(pool PgxIface) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

const profileColumns = `
	user_id, COALESCE(name, ''), COALESCE(bio, ''), COALESCE(goal, ''),
	COALESCE(personality, ''), COALESCE(religion, ''),
	COALESCE(relationship_status, ''), COALESCE(year, 0),
	COALESCE(department, ''), COALESCE(hobbies, ''),
	COALESCE(profile_picture, ''), privacy_department, privacy_status,
	privacy_goals, created_at, updated_at`

// GetByUserID returns the user's profile or ErrNotFound when none exists
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	start := time.Now()
	query := `
		SELECT` + profileColumns + `
		FROM profiles
		WHERE user_id = $1
		LIMIT 1
	`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query, userID))
	recordDBCall("profiles.get_by_user_id", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return profile, nil
}

// Upsert writes the provided fields, creating the profile row on first
// write. Nil request fields leave the stored values untouched.
func (r *ProfileRepository) Upsert(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.Profile, error) {
	start := time.Now()
	query := `
		INSERT INTO profiles (
			user_id, name, bio, goal, personality, religion,
			relationship_status, year, department, hobbies, profile_picture,
			privacy_department, privacy_status, privacy_goals
		)
		VALUES (
			$1, COALESCE($2, ''), COALESCE($3, ''), COALESCE($4, ''),
			COALESCE($5, ''), COALESCE($6, ''), COALESCE($7, ''),
			COALESCE($8, 0), COALESCE($9, ''), COALESCE($10, ''),
			COALESCE($11, ''), COALESCE($12, FALSE), COALESCE($13, FALSE),
			COALESCE($14, FALSE)
		)
		ON CONFLICT (user_id) DO UPDATE SET
			name                = COALESCE($2, profiles.name),
			bio                 = COALESCE($3, profiles.bio),
			goal                = COALESCE($4, profiles.goal),
			personality         = COALESCE($5, profiles.personality),
			religion            = COALESCE($6, profiles.religion),
			relationship_status = COALESCE($7, profiles.relationship_status),
			year                = COALESCE($8, profiles.year),
			department          = COALESCE($9, profiles.department),
			hobbies             = COALESCE($10, profiles.hobbies),
			profile_picture     = COALESCE($11, profiles.profile_picture),
			privacy_department  = COALESCE($12, profiles.privacy_department),
			privacy_status      = COALESCE($13, profiles.privacy_status),
			privacy_goals       = COALESCE($14, profiles.privacy_goals),
			updated_at          = NOW()
		RETURNING` + profileColumns + `
	`

	profile, err := scanProfile(r.pool.QueryRow(ctx, query,
		userID, req.Name, req.Bio, req.Goal, req.Personality, req.Religion,
		req.RelationshipStatus, req.Year, req.Department, req.Hobbies,
		req.ProfilePicture, req.PrivacyDepartment, req.PrivacyStatus,
		req.PrivacyGoals,
	))
	recordDBCall("profiles.upsert", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return profile, nil
}

// SetPicture stores the uploaded picture URL, creating the profile row if
// the user has not filled anything else in yet.
func (r *ProfileRepository) SetPicture(ctx context.Context, userID int64, pictureURL string) error {
	start := time.Now()
	query := `
		INSERT INTO profiles (user_id, profile_picture)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			profile_picture = $2,
			updated_at      = NOW()
	`

	_, err := r.pool.Exec(ctx, query, userID, pictureURL)
	recordDBCall("profiles.set_picture", start, err)
	return mapError(err)
}

// ListCandidates returns every profile except the given user's, in stable
// user-id order so ranking ties stay deterministic.
func (r *ProfileRepository) ListCandidates(ctx context.Context, excludeUserID int64) ([]*models.Profile, error) {
	start := time.Now()
	query := `
		SELECT` + profileColumns + `
		FROM profiles
		WHERE user_id <> $1
		ORDER BY user_id
	`

	rows, err := r.pool.Query(ctx, query, excludeUserID)
	if err != nil {
		recordDBCall("profiles.list_candidates", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	var profiles []*models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			recordDBCall("profiles.list_candidates", start, err)
			return nil, mapError(err)
		}
		profiles = append(profiles, profile)
	}
	err = rows.Err()
	recordDBCall("profiles.list_candidates", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return profiles, nil
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	if err := row.Scan(
		&p.UserID,
		&p.Name,
		&p.Bio,
		&p.Goal,
		&p.Personality,
		&p.Religion,
		&p.RelationshipStatus,
		&p.Year,
		&p.Department,
		&p.Hobbies,
		&p.ProfilePicture,
		&p.PrivacyDepartment,
		&p.PrivacyStatus,
		&p.PrivacyGoals,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
