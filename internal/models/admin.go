package models

import "time"

// PlatformStats is the admin dashboard aggregate
type PlatformStats struct {
	TotalUsers         int             `json:"total_users"`
	TotalProfiles      int             `json:"total_profiles"`
	TotalConnections   int             `json:"total_connections"`
	PendingRequests    int             `json:"pending_requests"`
	TotalConfessions   int             `json:"total_confessions"`
	PendingConfessions int             `json:"pending_confessions"`
	TopActiveUsers     []ActiveUser    `json:"top_active_users"`
	MoodDistribution   []MoodCount     `json:"mood_distribution"`
	WeeklyActivity     []DailyActivity `json:"weekly_activity"`
	GeneratedAt        time.Time       `json:"generated_at"`
}

// ActiveUser ranks a user by accepted connections plus approved confessions
type ActiveUser struct {
	UserID        int64  `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	ActivityCount int    `json:"activity_count"`
}

// MoodCount tallies approved confessions per mood tag
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// DailyActivity counts confessions submitted on a calendar day
type DailyActivity struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// AnnouncementRequest is the broadcast-announcement payload
type AnnouncementRequest struct {
	Title   string `json:"title" binding:"required,min=3,max=120"`
	Message string `json:"message" binding:"required,min=3,max=2000"`
}

// Announcement is a stored campus-wide broadcast
type Announcement struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
