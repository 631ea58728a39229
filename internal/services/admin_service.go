package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campusconnect/campusconnect-api/config"
	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/pkg/httpclient"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
	"github.com/campusconnect/campusconnect-api/pkg/trigger"
)

const (
	topActiveUserCount       = 5
	defaultAnnouncementLimit = 20
	defaultModerationLimit   = 20
	maxModerationLimit       = 100
)

// AdminService handles moderation and platform reporting
type AdminService struct {
	statsRepo        StatsStore
	confessionRepo   ConfessionStore
	announcementRepo AnnouncementStore
	config           *config.Config
	httpClient       httpclient.Client
}

func NewAdminService(statsRepo StatsStore, confessionRepo ConfessionStore, announcementRepo AnnouncementStore, cfg *config.Config, httpClient httpclient.Client) *AdminService {
	return &AdminService{
		statsRepo:        statsRepo,
		confessionRepo:   confessionRepo,
		announcementRepo: announcementRepo,
		config:           cfg,
		httpClient:       httpClient,
	}
}

// GetStats assembles the dashboard report
func (s *AdminService) GetStats(ctx context.Context) (*models.PlatformStats, error) {
	start := time.Now()

	stats, err := s.statsRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	if stats.TopActiveUsers, err = s.statsRepo.TopActiveUsers(ctx, topActiveUserCount); err != nil {
		return nil, err
	}
	if stats.MoodDistribution, err = s.statsRepo.MoodDistribution(ctx); err != nil {
		return nil, err
	}
	if stats.WeeklyActivity, err = s.statsRepo.WeeklyActivity(ctx); err != nil {
		return nil, err
	}
	stats.GeneratedAt = time.Now().UTC()

	logger.Info("Platform stats generated", zap.Duration("duration", time.Since(start)))
	return stats, nil
}

// ListPendingConfessions returns a page of the moderation queue
func (s *AdminService) ListPendingConfessions(ctx context.Context, limit, offset int) ([]*models.PendingConfession, error) {
	if limit <= 0 {
		limit = defaultModerationLimit
	}
	if limit > maxModerationLimit {
		limit = maxModerationLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.confessionRepo.ListPending(ctx, limit, offset)
}

// ApproveConfession publishes a pending confession
func (s *AdminService) ApproveConfession(ctx context.Context, confessionID int64) error {
	if err := s.confessionRepo.Approve(ctx, confessionID); err != nil {
		return err
	}

	logger.Info("Confession approved", zap.Int64("confession_id", confessionID))
	return nil
}

// DeleteConfession removes a confession along with its votes and reports
func (s *AdminService) DeleteConfession(ctx context.Context, confessionID int64) error {
	if err := s.confessionRepo.Delete(ctx, confessionID); err != nil {
		return err
	}

	logger.Info("Confession deleted", zap.Int64("confession_id", confessionID))
	return nil
}

// CreateAnnouncement stores a campus-wide broadcast and fires the publish
// webhook so downstream channels (mail, push) pick it up.
func (s *AdminService) CreateAnnouncement(ctx context.Context, authorID int64, req *models.AnnouncementRequest) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.Create(ctx, authorID, req.Title, req.Message)
	if err != nil {
		logger.Error("Failed to create announcement", zap.Error(err))
		return nil, err
	}

	if s.config.EventTriggers.AnnouncementPublishedTriggerURL != "" {
		payload := map[string]interface{}{
			"type":            "announcement_published",
			"announcement_id": announcement.ID,
			"title":           announcement.Title,
			"message":         announcement.Message,
		}
		trigger.CallAsyncWithPayload(s.config.EventTriggers.AnnouncementPublishedTriggerURL, payload, s.httpClient)
	}

	logger.Info("Announcement published",
		zap.Int64("announcement_id", announcement.ID),
		zap.Int64("author_id", authorID))

	return announcement, nil
}

// ListAnnouncements returns recent announcements, newest first
func (s *AdminService) ListAnnouncements(ctx context.Context, limit int) ([]*models.Announcement, error) {
	if limit <= 0 {
		limit = defaultAnnouncementLimit
	}
	return s.announcementRepo.List(ctx, limit)
}
