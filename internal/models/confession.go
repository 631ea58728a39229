package models

import "time"

// ConfessionStatus is the moderation state of a confession. Posts start
// pending and become visible only after an admin approves them.
type ConfessionStatus string

const (
	ConfessionPending  ConfessionStatus = "pending"
	ConfessionApproved ConfessionStatus = "approved"
)

// VoteType is a reader's reaction to a confession
type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

func (v VoteType) IsValid() bool {
	return v == VoteUp || v == VoteDown
}

// Confession is an anonymous post. AuthorID is stored for moderation but
// never serialized to readers.
type Confession struct {
	ID        int64            `json:"id"`
	AuthorID  int64            `json:"-"`
	Content   string           `json:"content"`
	Mood      string           `json:"mood,omitempty"`
	Tags      []string         `json:"tags,omitempty"`
	Status    ConfessionStatus `json:"-"`
	Upvotes   int              `json:"upvotes"`
	Downvotes int              `json:"downvotes"`
	CreatedAt time.Time        `json:"created_at"`

	// MyVote is the requesting user's current vote, empty when they have
	// not voted. Populated per-request, not stored.
	MyVote VoteType `json:"my_vote,omitempty"`
}

// CreateConfessionRequest is the submit-confession payload
type CreateConfessionRequest struct {
	Content string   `json:"content" binding:"required,min=10,max=1000"`
	Mood    string   `json:"mood" binding:"omitempty,max=32"`
	Tags    []string `json:"tags" binding:"omitempty,max=5,dive,max=24"`
}

// ConfessionFilters narrows the public confession feed
type ConfessionFilters struct {
	Mood   string
	Tag    string
	Campus string
	Limit  int
	Offset int
}

// ReportRequest is the report-confession payload
type ReportRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=255"`
}

// Report flags a confession for moderator attention
type Report struct {
	ID           int64     `json:"id"`
	ConfessionID int64     `json:"confession_id"`
	ReporterID   int64     `json:"-"`
	Reason       string    `json:"reason"`
	CreatedAt    time.Time `json:"created_at"`
}

// PendingConfession is a moderation-queue entry: the confession together
// with its accumulated reports.
type PendingConfession struct {
	Confession
	AuthorEmail string   `json:"author_email"`
	ReportCount int      `json:"report_count"`
	Reasons     []string `json:"report_reasons,omitempty"`
}
