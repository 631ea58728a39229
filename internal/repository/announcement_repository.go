package repository

import (
	"context"
	"time"

	"github.com/campusconnect/campusconnect-api/internal/models"
)

type AnnouncementRepository struct {
	pool PgxIface
}

func NewAnnouncementRepository(pool PgxIface) *AnnouncementRepository {
	return &AnnouncementRepository{pool: pool}
}

func (r *AnnouncementRepository) Create(ctx context.Context, authorID int64, title, message string) (*models.Announcement, error) {
	start := time.Now()
	query := `
		INSERT INTO announcements (author_id, title, message)
		VALUES ($1, $2, $3)
		RETURNING id, author_id, title, message, created_at
	`

	var a models.Announcement
	err := r.pool.QueryRow(ctx, query, authorID, title, message).Scan(
		&a.ID, &a.AuthorID, &a.Title, &a.Message, &a.CreatedAt,
	)
	recordDBCall("announcements.create", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return &a, nil
}

func (r *AnnouncementRepository) List(ctx context.Context, limit int) ([]*models.Announcement, error) {
	start := time.Now()
	query := `
		SELECT id, author_id, title, message, created_at
		FROM announcements
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		recordDBCall("announcements.list", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	var announcements []*models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.AuthorID, &a.Title, &a.Message, &a.CreatedAt); err != nil {
			recordDBCall("announcements.list", start, err)
			return nil, mapError(err)
		}
		announcements = append(announcements, &a)
	}
	err = rows.Err()
	recordDBCall("announcements.list", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return announcements, nil
}
