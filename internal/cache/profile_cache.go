// Package cache holds the in-memory candidate pool used by match scoring.
// Matching reads the whole profile set on every request, so profiles are
// served from a periodically refreshed cache instead of hitting Postgres
// per request.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/campusconnect/campusconnect-api/internal/models"
	"github.com/campusconnect/campusconnect-api/pkg/logger"
	"github.com/campusconnect/campusconnect-api/pkg/metrics"
)

// ProfileDataSource is the persistence interface the cache refreshes from
type ProfileDataSource interface {
	ListCandidates(ctx context.Context, excludeUserID int64) ([]*models.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

const (
	profileKeyPrefix = "profile:user:"
	allProfilesKey   = "profile:all"
	cacheCheckPeriod = 10 * time.Second
	maxRetries       = 3
	initialRetryWait = 2 * time.Second
)

// ProfileCache serves the candidate profile pool from memory. The id list
// carries the TTL; individual entries never expire on their own so a lookup
// between refreshes cannot half-miss.
type ProfileCache struct {
	cache       *gocache.Cache
	dataSource  ProfileDataSource
	mu          sync.RWMutex
	refreshing  bool
	ready       bool
	ttl         time.Duration
	lastRefresh time.Time
}

func NewProfileCache(dataSource ProfileDataSource, ttlSeconds int) *ProfileCache {
	return &ProfileCache{
		cache:      gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		dataSource: dataSource,
		ttl:        time.Duration(ttlSeconds) * time.Second,
	}
}

// Initialize populates the cache synchronously and starts the background
// refresh scheduler. Called during startup before accepting requests.
func (pc *ProfileCache) Initialize() error {
	logger.Info("Initializing profile cache...")
	startTime := time.Now()

	if err := pc.refreshWithRetry(); err != nil {
		logger.Error("Failed to initialize profile cache", zap.Error(err))
		return err
	}

	pc.mu.Lock()
	pc.ready = true
	pc.lastRefresh = time.Now()
	pc.mu.Unlock()

	logger.Info("Profile cache initialized successfully",
		zap.Duration("duration", time.Since(startTime)))

	go pc.schedulePeriodicRefresh()

	return nil
}

// IsReady reports whether the cache has been populated
func (pc *ProfileCache) IsReady() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.ready
}

// GetByUserID returns a cached profile without touching the database
func (pc *ProfileCache) GetByUserID(userID int64) (*models.Profile, error) {
	if !pc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	data, found := pc.cache.Get(profileKey(userID))
	if !found {
		metrics.CacheMisses.WithLabelValues("profile_by_user").Inc()
		return nil, fmt.Errorf("profile not cached")
	}

	metrics.CacheHits.WithLabelValues("profile_by_user").Inc()

	profile, ok := data.(*models.Profile)
	if !ok {
		logger.Error("Invalid cache data type", zap.Int64("user_id", userID))
		pc.cache.Delete(profileKey(userID))
		return nil, fmt.Errorf("invalid cache data")
	}

	return profile, nil
}

// Get returns every cached profile. On an expired id list it returns empty
// rather than blocking; the scheduler repopulates shortly.
func (pc *ProfileCache) Get() ([]*models.Profile, error) {
	if !pc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	idsData, found := pc.cache.Get(allProfilesKey)
	if !found {
		metrics.CacheMisses.WithLabelValues("profile_all").Inc()
		logger.Warn("Profile id list not in cache (expired), returning empty")
		return []*models.Profile{}, nil
	}

	ids, ok := idsData.([]int64)
	if !ok {
		logger.Error("Invalid cache data type for profile id list")
		return []*models.Profile{}, nil
	}

	metrics.CacheHits.WithLabelValues("profile_all").Inc()

	profiles := make([]*models.Profile, 0, len(ids))
	for _, id := range ids {
		profile, err := pc.GetByUserID(id)
		if err != nil {
			continue
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// UpdateProfile refreshes a single user's entry from the data source.
// Called from the profile update flow so matches see edits without waiting
// for the next scheduled refresh.
func (pc *ProfileCache) UpdateProfile(ctx context.Context, userID int64) error {
	if !pc.IsReady() {
		return fmt.Errorf("cache not initialized")
	}

	profile, err := pc.dataSource.GetByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to fetch profile for cache update",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return err
	}

	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Set(profileKey(userID), profile, gocache.NoExpiration)

	if err := pc.ensureInListLocked(userID); err != nil {
		logger.Error("Failed to update profile id list", zap.Error(err))
	}

	return nil
}

// ForceRefresh triggers a background refresh and returns the current data
// immediately.
func (pc *ProfileCache) ForceRefresh() ([]*models.Profile, error) {
	go func() {
		if err := pc.refreshInBackground(); err != nil {
			logger.Error("Background refresh failed", zap.Error(err))
		}
	}()

	return pc.Get()
}

func (pc *ProfileCache) schedulePeriodicRefresh() {
	ticker := time.NewTicker(pc.ttl)
	defer ticker.Stop()

	for range ticker.C {
		if err := pc.refreshInBackground(); err != nil {
			logger.Error("Scheduled cache refresh failed", zap.Error(err))
		}
	}
}

func (pc *ProfileCache) refreshInBackground() error {
	pc.mu.Lock()
	if pc.refreshing {
		pc.mu.Unlock()
		logger.Debug("Refresh already in progress, skipping")
		return nil
	}
	pc.refreshing = true
	pc.mu.Unlock()

	defer func() {
		pc.mu.Lock()
		pc.refreshing = false
		pc.mu.Unlock()
	}()

	startTime := time.Now()

	profiles, err := pc.dataSource.ListCandidates(context.Background(), 0)
	if err != nil {
		logger.Error("Failed to fetch profiles in background refresh", zap.Error(err))
		return err
	}

	pc.populateCache(profiles)

	pc.mu.Lock()
	pc.lastRefresh = time.Now()
	pc.mu.Unlock()

	logger.Info("Background refresh completed",
		zap.Int("count", len(profiles)),
		zap.Duration("duration", time.Since(startTime)))

	return nil
}

func (pc *ProfileCache) refreshWithRetry() error {
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			waitTime := initialRetryWait * time.Duration(1<<uint(attempt-1))
			logger.Info("Retrying cache refresh",
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", maxRetries),
				zap.Duration("wait_time", waitTime))
			time.Sleep(waitTime)
		}

		profiles, fetchErr := pc.dataSource.ListCandidates(context.Background(), 0)
		if fetchErr != nil {
			err = fetchErr
			logger.Error("Cache refresh attempt failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		pc.populateCache(profiles)
		return nil
	}

	return fmt.Errorf("failed to refresh cache after %d attempts: %w", maxRetries, err)
}

// populateCache stores profiles individually and writes the id list last.
// Only the id list carries the TTL.
func (pc *ProfileCache) populateCache(profiles []*models.Profile) {
	ids := make([]int64, 0, len(profiles))

	for _, profile := range profiles {
		pc.cache.Set(profileKey(profile.UserID), profile, gocache.NoExpiration)
		ids = append(ids, profile.UserID)
	}

	pc.cache.Set(allProfilesKey, ids, pc.ttl)

	metrics.CacheSize.WithLabelValues("profiles").Set(float64(len(profiles)))
}

// ensureInListLocked adds the user to the id list. Callers hold pc.mu.
func (pc *ProfileCache) ensureInListLocked(userID int64) error {
	idsData, found := pc.cache.Get(allProfilesKey)
	if !found {
		return nil
	}

	ids, ok := idsData.([]int64)
	if !ok {
		return fmt.Errorf("invalid profile id list type")
	}

	for _, id := range ids {
		if id == userID {
			return nil
		}
	}

	ids = append(ids, userID)
	pc.cache.Set(allProfilesKey, ids, pc.ttl)

	return nil
}

// Clear flushes the cache
func (pc *ProfileCache) Clear() {
	pc.cache.Flush()
	logger.Info("Profile cache cleared")
}

func profileKey(userID int64) string {
	return profileKeyPrefix + strconv.FormatInt(userID, 10)
}
