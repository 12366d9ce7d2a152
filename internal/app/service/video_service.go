package service

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/begengineer/quickfit/internal/domain"
)

// VideoService serves stored videos to API consumers.
type VideoService struct {
	repo     domain.VideoRepository
	cache    domain.Cache // optional
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewVideoService creates a new VideoService. cache may be nil to disable
// listing caching.
func NewVideoService(repo domain.VideoRepository, cache domain.Cache, cacheTTL time.Duration, logger *zap.Logger) *VideoService {
	return &VideoService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// PickRandom returns a uniformly random stored video for the level, excluding
// the given video IDs. It returns nil when no video remains after exclusion.
func (s *VideoService) PickRandom(ctx context.Context, level domain.Level, excludeIDs []string) (*domain.Video, error) {
	videos, err := s.listByLevel(ctx, level)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	eligible := make([]*domain.Video, 0, len(videos))
	for _, v := range videos {
		if _, ok := excluded[v.VideoID]; !ok {
			eligible = append(eligible, v)
		}
	}

	if len(eligible) == 0 {
		return nil, nil
	}

	return eligible[rand.IntN(len(eligible))], nil
}

// Stats returns the stored video count for every level.
func (s *VideoService) Stats(ctx context.Context) (map[domain.Level]int64, error) {
	stats := make(map[domain.Level]int64, len(domain.Levels()))
	for _, level := range domain.Levels() {
		count, err := s.repo.CountByLevel(ctx, level)
		if err != nil {
			return nil, err
		}
		stats[level] = count
	}

	return stats, nil
}

// listByLevel loads a level's videos, cache-aside when a cache is configured.
func (s *VideoService) listByLevel(ctx context.Context, level domain.Level) ([]*domain.Video, error) {
	key := videosCacheKey(level)

	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		} else if data != nil {
			var videos []*domain.Video
			if err := json.Unmarshal(data, &videos); err == nil {
				return videos, nil
			}
			s.logger.Warn("corrupt cache entry, falling through", zap.String("key", key))
		}
	}

	videos, err := s.repo.ListByLevel(ctx, level)
	if err != nil {
		return nil, err
	}

	if s.cache != nil && len(videos) > 0 {
		data, err := json.Marshal(videos)
		if err == nil {
			if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
				s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}

	return videos, nil
}

func videosCacheKey(level domain.Level) string {
	return "videos:" + string(level)
}
