package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/campusconnect/campusconnect-api/config"
	"github.com/campusconnect/campusconnect-api/internal/models"
	apperrors "github.com/campusconnect/campusconnect-api/pkg/errors"
	"github.com/campusconnect/campusconnect-api/pkg/httpclient"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
	"github.com/campusconnect/campusconnect-api/pkg/trigger"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100
)

// ConfessionService handles the anonymous confession feed: submission,
// reading, voting, and reporting.
type ConfessionService struct {
	confessionRepo ConfessionStore
	config         *config.Config
	httpClient     httpclient.Client
}

func NewConfessionService(confessionRepo ConfessionStore, cfg *config.Config, httpClient httpclient.Client) *ConfessionService {
	return &ConfessionService{
		confessionRepo: confessionRepo,
		config:         cfg,
		httpClient:     httpClient,
	}
}

// Create submits a confession. It enters the moderation queue and stays
// invisible until approved.
func (s *ConfessionService) Create(ctx context.Context, authorID int64, req *models.CreateConfessionRequest) (*models.Confession, error) {
	confession, err := s.confessionRepo.Create(ctx, authorID, req.Content, req.Mood, req.Tags)
	if err != nil {
		logger.Error("Failed to create confession", zap.Int64("author_id", authorID), zap.Error(err))
		return nil, err
	}

	logger.Info("Confession submitted",
		zap.Int64("confession_id", confession.ID),
		zap.String("mood", confession.Mood))

	return confession, nil
}

// List returns the approved feed with the viewer's votes marked
func (s *ConfessionService) List(ctx context.Context, viewerID int64, filters models.ConfessionFilters) ([]*models.Confession, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultFeedLimit
	}
	if filters.Limit > maxFeedLimit {
		filters.Limit = maxFeedLimit
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	return s.confessionRepo.ListApproved(ctx, viewerID, filters)
}

// Vote toggles the user's vote on an approved confession and returns the
// confession with fresh tallies. Casting the same vote twice removes it;
// casting the opposite vote replaces it.
func (s *ConfessionService) Vote(ctx context.Context, userID, confessionID int64, vote models.VoteType) (*models.Confession, error) {
	if !vote.IsValid() {
		return nil, apperrors.InvalidInputError("vote", "must be upvote or downvote")
	}

	confession, err := s.confessionRepo.GetByID(ctx, confessionID)
	if err != nil {
		return nil, err
	}
	if confession.Status != models.ConfessionApproved {
		// Pending posts are invisible, so voting on one reads as missing.
		return nil, apperrors.ErrNotFound
	}

	result, err := s.confessionRepo.ToggleVote(ctx, userID, confessionID, vote)
	if err != nil {
		logger.Error("Failed to toggle vote",
			zap.Int64("confession_id", confessionID),
			zap.Int64("user_id", userID),
			zap.Error(err))
		return nil, err
	}

	confession.Upvotes, confession.Downvotes, err = s.confessionRepo.CountVotes(ctx, confessionID)
	if err != nil {
		return nil, err
	}
	confession.MyVote = result
	confession.AuthorID = 0

	return confession, nil
}

// Report flags an approved confession for moderation. A user reporting the
// same confession twice conflicts.
func (s *ConfessionService) Report(ctx context.Context, reporterID, confessionID int64, reason string) error {
	confession, err := s.confessionRepo.GetByID(ctx, confessionID)
	if err != nil {
		return err
	}
	if confession.Status != models.ConfessionApproved {
		return apperrors.ErrNotFound
	}

	if err := s.confessionRepo.CreateReport(ctx, confessionID, reporterID, reason); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.ConflictError("you already reported this confession")
		}
		logger.Error("Failed to create report",
			zap.Int64("confession_id", confessionID),
			zap.Error(err))
		return err
	}

	// Notify the moderation channel so heavily reported posts get looked
	// at before the next queue sweep.
	if s.config.EventTriggers.ConfessionReportedTriggerURL != "" {
		payload := map[string]interface{}{
			"type":          "confession_reported",
			"confession_id": confessionID,
			"reason":        reason,
		}
		trigger.CallAsyncWithPayload(s.config.EventTriggers.ConfessionReportedTriggerURL, payload, s.httpClient)
	}

	logger.Info("Confession reported",
		zap.Int64("confession_id", confessionID),
		zap.Int64("reporter_id", reporterID))

	return nil
}
