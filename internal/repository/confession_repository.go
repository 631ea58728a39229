package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campusconnect/campusconnect-api/internal/models"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
)

type ConfessionRepository struct {
	pool PgxIface
}

func NewConfessionRepository(pool PgxIface) *ConfessionRepository {
	return &ConfessionRepository{pool: pool}
}

// Create inserts a confession in pending state
func (r *ConfessionRepository) Create(ctx context.Context, authorID int64, content, mood string, tags []string) (*models.Confession, error) {
	start := time.Now()
	query := `
		INSERT INTO confessions (author_id, content, mood, tags, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, author_id, content, COALESCE(mood, ''), tags, status, created_at
	`

	var c models.Confession
	var status string
	err := r.pool.QueryRow(ctx, query, authorID, content, mood, tags).Scan(
		&c.ID, &c.AuthorID, &c.Content, &c.Mood, &c.Tags, &status, &c.CreatedAt,
	)
	recordDBCall("confessions.create", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	c.Status = models.ConfessionStatus(status)
	return &c, nil
}

// GetByID returns a confession regardless of status
func (r *ConfessionRepository) GetByID(ctx context.Context, id int64) (*models.Confession, error) {
	start := time.Now()
	query := `
		SELECT id, author_id, content, COALESCE(mood, ''), tags, status, created_at
		FROM confessions
		WHERE id = $1
		LIMIT 1
	`

	var c models.Confession
	var status string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.AuthorID, &c.Content, &c.Mood, &c.Tags, &status, &c.CreatedAt,
	)
	recordDBCall("confessions.get_by_id", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	c.Status = models.ConfessionStatus(status)
	return &c, nil
}

// ListApproved returns the public feed, newest first, with vote tallies and
// the viewer's own vote.
func (r *ConfessionRepository) ListApproved(ctx context.Context, viewerID int64, filters models.ConfessionFilters) ([]*models.Confession, error) {
	start := time.Now()
	query := `
		SELECT c.id, c.content, COALESCE(c.mood, ''), c.tags, c.created_at,
		       COUNT(*) FILTER (WHERE v.vote_type = 'upvote'),
		       COUNT(*) FILTER (WHERE v.vote_type = 'downvote'),
		       COALESCE(mv.vote_type, '')
		FROM confessions c
		JOIN users u ON u.id = c.author_id
		LEFT JOIN votes v ON v.confession_id = c.id
		LEFT JOIN votes mv ON mv.confession_id = c.id AND mv.user_id = $1
		WHERE c.status = 'approved'
		  AND ($2 = '' OR c.mood = $2)
		  AND ($3 = '' OR $3 = ANY(c.tags))
		  AND ($4 = '' OR u.campus = $4)
		GROUP BY c.id, mv.vote_type
		ORDER BY c.created_at DESC
		LIMIT $5 OFFSET $6
	`

	rows, err := r.pool.Query(ctx, query, viewerID, filters.Mood, filters.Tag, filters.Campus, filters.Limit, filters.Offset)
	if err != nil {
		recordDBCall("confessions.list_approved", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	var confessions []*models.Confession
	for rows.Next() {
		var c models.Confession
		var myVote string
		if err := rows.Scan(
			&c.ID, &c.Content, &c.Mood, &c.Tags, &c.CreatedAt,
			&c.Upvotes, &c.Downvotes, &myVote,
		); err != nil {
			recordDBCall("confessions.list_approved", start, err)
			return nil, mapError(err)
		}
		c.Status = models.ConfessionApproved
		c.MyVote = models.VoteType(myVote)
		confessions = append(confessions, &c)
	}
	err = rows.Err()
	recordDBCall("confessions.list_approved", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return confessions, nil
}

// ToggleVote applies the toggle semantics for a vote: casting the same vote
// again removes it, casting the opposite vote replaces it, and voting fresh
// creates it. Returns the vote now in effect, empty when it was removed.
func (r *ConfessionRepository) ToggleVote(ctx context.Context, userID, confessionID int64, vote models.VoteType) (models.VoteType, error) {
	start := time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		recordDBCall("votes.toggle", start, err)
		return "", mapError(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var current string
	err = tx.QueryRow(ctx,
		`SELECT vote_type FROM votes WHERE user_id = $1 AND confession_id = $2 FOR UPDATE`,
		userID, confessionID,
	).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		recordDBCall("votes.toggle", start, err)
		return "", mapError(err)
	}

	result := vote
	switch models.VoteType(current) {
	case vote:
		_, err = tx.Exec(ctx,
			`DELETE FROM votes WHERE user_id = $1 AND confession_id = $2`,
			userID, confessionID,
		)
		result = ""
	case "":
		_, err = tx.Exec(ctx,
			`INSERT INTO votes (user_id, confession_id, vote_type) VALUES ($1, $2, $3)`,
			userID, confessionID, string(vote),
		)
	default:
		_, err = tx.Exec(ctx,
			`UPDATE votes SET vote_type = $3, updated_at = NOW() WHERE user_id = $1 AND confession_id = $2`,
			userID, confessionID, string(vote),
		)
	}
	if err != nil {
		recordDBCall("votes.toggle", start, err)
		return "", mapError(err)
	}

	err = tx.Commit(ctx)
	recordDBCall("votes.toggle", start, err)
	if err != nil {
		return "", mapError(err)
	}
	return result, nil
}

// CountVotes returns the current tallies for a confession
func (r *ConfessionRepository) CountVotes(ctx context.Context, confessionID int64) (upvotes, downvotes int, err error) {
	start := time.Now()
	query := `
		SELECT COUNT(*) FILTER (WHERE vote_type = 'upvote'),
		       COUNT(*) FILTER (WHERE vote_type = 'downvote')
		FROM votes
		WHERE confession_id = $1
	`

	err = r.pool.QueryRow(ctx, query, confessionID).Scan(&upvotes, &downvotes)
	recordDBCall("votes.count", start, err)
	if err != nil {
		return 0, 0, mapError(err)
	}
	return upvotes, downvotes, nil
}

// CreateReport records a report against a confession. The primary key on
// (confession_id, reporter_id) makes repeat reports conflict.
func (r *ConfessionRepository) CreateReport(ctx context.Context, confessionID, reporterID int64, reason string) error {
	start := time.Now()
	query := `
		INSERT INTO reports (confession_id, reporter_id, reason)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query, confessionID, reporterID, reason)
	recordDBCall("reports.create", start, err)
	return mapError(err)
}

// ListPending returns the moderation queue: pending confessions with their
// report tallies, most-reported first, oldest first within a tally.
func (r *ConfessionRepository) ListPending(ctx context.Context, limit, offset int) ([]*models.PendingConfession, error) {
	start := time.Now()
	query := `
		SELECT c.id, c.author_id, u.email, c.content, COALESCE(c.mood, ''),
		       c.tags, c.created_at,
		       COUNT(rep.id),
		       COALESCE(ARRAY_AGG(rep.reason) FILTER (WHERE rep.id IS NOT NULL), '{}')
		FROM confessions c
		JOIN users u ON u.id = c.author_id
		LEFT JOIN reports rep ON rep.confession_id = c.id
		WHERE c.status = 'pending'
		GROUP BY c.id, u.email
		ORDER BY COUNT(rep.id) DESC, c.created_at ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		recordDBCall("confessions.list_pending", start, err)
		return nil, mapError(err)
	}
	defer rows.Close()

	var pending []*models.PendingConfession
	for rows.Next() {
		var p models.PendingConfession
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.AuthorEmail, &p.Content, &p.Mood,
			&p.Tags, &p.CreatedAt, &p.ReportCount, &p.Reasons,
		); err != nil {
			recordDBCall("confessions.list_pending", start, err)
			return nil, mapError(err)
		}
		p.Status = models.ConfessionPending
		pending = append(pending, &p)
	}
	err = rows.Err()
	recordDBCall("confessions.list_pending", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return pending, nil
}

// Approve flips a pending confession to approved. ErrNotFound when the
// confession is missing or already moderated.
func (r *ConfessionRepository) Approve(ctx context.Context, id int64) error {
	start := time.Now()
	query := `
		UPDATE confessions
		SET status = 'approved', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	tag, err := r.pool.Exec(ctx, query, id)
	recordDBCall("confessions.approve", start, err)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a confession and, via cascading foreign keys, its votes
// and reports.
func (r *ConfessionRepository) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	query := `DELETE FROM confessions WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	recordDBCall("confessions.delete", start, err)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
