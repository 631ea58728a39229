package repository

import (
	"context"
	"time"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

type StatsRepository struct {
	pool PgxIface
}

func NewStatsRepository(pool PgxIface) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// Totals fills the scalar counters of the stats report in one round trip
func (r *StatsRepository) Totals(ctx context.Context) (*models.PlatformStats, error) {
	start := time.Now()
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM profiles),
			(SELECT COUNT(*) FROM friend_requests WHERE status = 'accepted'),
			(SELECT COUNT(*) FROM friend_requests WHERE status = 'pending'),
			(SELECT COUNT(*) FROM confessions),
			(SELECT COUNT(*) FROM confessions WHERE status = 'pending')
	`

	var stats models.PlatformStats
	err := r.pool.QueryRow(ctx, query).Scan(
		&stats.TotalUsers,
		&stats.TotalProfiles,
		&stats.TotalConnections,
		&stats.PendingRequests,
		&stats.TotalConfessions,
		&stats.PendingConfessions,
	)
	recordDBCall("stats.totals", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return &stats, nil
}

// TopActiveUsers ranks users by accepted connections plus approved
// confessions.
func (r *StatsRepository) TopActiveUsers(ctx context.Context, limit int) ([]models.ActiveUser, error) {
	start := time.Now()
	query := `
		SELECT u.id, u.email, COALESCE(p.name, ''),
		       (SELECT COUNT(*) FROM friend_requests fr
		        WHERE fr.status = 'accepted'
		          AND (fr.requester_id = u.id OR fr.receiver_id = u.id))
		     + (SELECT COUNT(*) FROM confessions c
		        WHERE c.author_id = u.id AND c.status = 'approved') AS activity
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		ORDER BY activity DESC, u.id ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		recordDBCall("stats.top_active_users", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	var users []models.ActiveUser
	for rows.Next() {
		var u models.ActiveUser
		if err := rows.Scan(&u.UserID, &u.Email, &u.Name, &u.ActivityCount); err != nil {
			recordDBCall("stats.top_active_users", start, err)
			return nil, mapError(err)
		}
		users = append(users, u)
	}
	err = rows.Err()
	recordDBCall("stats.top_active_users", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return users, nil
}

// MoodDistribution tallies approved confessions per mood, skipping posts
// without one.
func (r *StatsRepository) MoodDistribution(ctx context.Context) ([]models.MoodCount, error) {
	start := time.Now()
	query := `
		SELECT mood, COUNT(*)
		FROM confessions
		WHERE status = 'approved' AND mood IS NOT NULL AND mood <> ''
		GROUP BY mood
		ORDER BY COUNT(*) DESC, mood ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		recordDBCall("stats.mood_distribution", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	var moods []models.MoodCount
	for rows.Next() {
		var m models.MoodCount
		if err := rows.Scan(&m.Mood, &m.Count); err != nil {
			recordDBCall("stats.mood_distribution", start, err)
			return nil, mapError(err)
		}
		moods = append(moods, m)
	}
	err = rows.Err()
	recordDBCall("stats.mood_distribution", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return moods, nil
}

// WeeklyActivity counts confessions submitted per day over the last seven
// days, days without submissions included.
func (r *StatsRepository) WeeklyActivity(ctx context.Context) ([]models.DailyActivity, error) {
	start := time.Now()
	query := `
		SELECT TO_CHAR(d.day, 'YYYY-MM-DD'), COUNT(c.id)
		FROM GENERATE_SERIES(
			CURRENT_DATE - INTERVAL '6 days', CURRENT_DATE, INTERVAL '1 day'
		) AS d(day)
		LEFT JOIN confessions c ON DATE(c.created_at) = d.day
		GROUP BY d.day
		ORDER BY d.day ASC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		recordDBCall("stats.weekly_activity", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	var days []models.DailyActivity
	for rows.Next() {
		var d models.DailyActivity
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			recordDBCall("stats.weekly_activity", start, err)
			return nil, mapError(err)
		}
		days = append(days, d)
	}
	err = rows.Err()
	recordDBCall("stats.weekly_activity", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return days, nil
}
