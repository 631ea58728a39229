package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/campusconnect/campusconnect-api/internal/matching"
	"github.com/campusconnect/campusconnect-api/internal/models"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
)

const (
	// DefaultMatchLimit caps results when the client does not ask for a
	// specific count.
	DefaultMatchLimit = 10

	// MaxMatchLimit is the hard ceiling on requested result counts.
	MaxMatchLimit = 50
)

// CandidateSource serves the profile pool matches are scored against. The
// profile cache implements it in production; tests provide a fixture.
type CandidateSource interface {
	Get() ([]*models.Profile, error)
}

// MatchService scores and ranks candidate profiles for a viewer
type MatchService struct {
	profileRepo ProfileStore
	friendRepo  FriendStore
	candidates  CandidateSource
}

func NewMatchService(profileRepo ProfileStore, friendRepo FriendStore, candidates CandidateSource) *MatchService {
	return &MatchService{
		profileRepo: profileRepo,
		friendRepo:  friendRepo,
		candidates:  candidates,
	}
}

// FindMatches ranks everyone on the platform against the viewer's profile.
// Existing connections are excluded; the viewer must have a filled-in
// profile before matching is meaningful.
func (s *MatchService) FindMatches(ctx context.Context, userID int64, filters models.MatchFilters, limit int) ([]models.MatchEntry, error) {
	start := time.Now()

	own, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidInputError("profile", "complete your profile before matching")
		}
		return nil, err
	}
	if !own.IsComplete() {
		return nil, apperrors.InvalidInputError("profile", "complete your profile before matching")
	}

	if limit <= 0 {
		limit = DefaultMatchLimit
	}
	if limit > MaxMatchLimit {
		limit = MaxMatchLimit
	}

	excluded, err := s.friendRepo.ListConnectedIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	pool, err := s.candidates.Get()
	if err != nil {
		logger.Error("Failed to read candidate pool", zap.Error(err))
		return nil, apperrors.InternalError("candidate pool unavailable")
	}

	ranked := matching.Rank(own, pool, excluded, filters)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	entries := make([]models.MatchEntry, 0, len(ranked))
	for i := range ranked {
		entries = append(entries, ranked[i].ToEntry())
	}

	logger.Info("Matches computed",
		zap.Int64("user_id", userID),
		zap.Int("pool_size", len(pool)),
		zap.Int("results", len(entries)),
		zap.Duration("duration", time.Since(start)))

	return entries, nil
}
