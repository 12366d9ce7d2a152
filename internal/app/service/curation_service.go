// Package service provides application use cases.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/begengineer/quickfit/internal/domain"
	"github.com/begengineer/quickfit/pkg/locker"
)

// refreshLockKey guards against overlapping curation runs across instances.
const refreshLockKey = "curation:refresh:lock"

// CurationConfig holds the curation pipeline parameters.
type CurationConfig struct {
	SearchQuery       string
	SearchMaxResults  int
	MaxVideosPerLevel int
	Filter            domain.FilterConfig
	Score             domain.ScoreConfig
	LockTTL           time.Duration
}

// CurationService runs the per-level curation pipeline:
// search → details → filter → score → upsert → prune.
type CurationService struct {
	repo   domain.VideoRepository
	source domain.VideoSource
	cache  domain.Cache             // optional
	locker locker.DistributedLocker // optional
	cfg    CurationConfig
	logger *zap.Logger
}

// NewCurationService creates a new CurationService. cache and locker may be
// nil; the corresponding features are then disabled.
func NewCurationService(
	repo domain.VideoRepository,
	source domain.VideoSource,
	cache domain.Cache,
	locker locker.DistributedLocker,
	cfg CurationConfig,
	logger *zap.Logger,
) *CurationService {
	return &CurationService{
		repo:   repo,
		source: source,
		cache:  cache,
		locker: locker,
		cfg:    cfg,
		logger: logger,
	}
}

// LevelResult holds the outcome of one level's pipeline.
type LevelResult struct {
	Level    domain.Level
	Accepted int   // videos upserted this run
	Pruned   int   // videos evicted this run
	Count    int64 // stored videos after the run (prior state on failure)
	Duration time.Duration
	Error    error
}

// RefreshSummary holds the outcome of a full curation run.
type RefreshSummary struct {
	Results []LevelResult
	Skipped bool // another instance held the run lock
}

// Stats returns the per-level stored counts.
func (s RefreshSummary) Stats() map[domain.Level]int64 {
	stats := make(map[domain.Level]int64, len(s.Results))
	for _, r := range s.Results {
		stats[r.Level] = r.Count
	}

	return stats
}

// Failed returns the number of levels whose pipeline errored.
func (s RefreshSummary) Failed() int {
	failed := 0
	for _, r := range s.Results {
		if r.Error != nil {
			failed++
		}
	}

	return failed
}

// RefreshAll runs the curation pipeline for every level sequentially.
//
// A failure in one level is logged and never aborts the run; its count
// then reflects the prior stored state. The summary therefore always
// carries a count per level, which is what the trigger endpoint reports.
//
// When a locker is configured the run is guarded by a distributed lock:
// a clean run holds the lock for the configured TTL as a cooldown, a run
// with failures releases it immediately so a retry can proceed.
func (s *CurationService) RefreshAll(ctx context.Context) RefreshSummary {
	if s.locker != nil {
		acquired, err := s.locker.Acquire(ctx, refreshLockKey, s.cfg.LockTTL)
		if err != nil {
			s.logger.Error("failed to acquire refresh lock", zap.Error(err))

			return s.skippedSummary(ctx)
		}
		if !acquired {
			s.logger.Info("refresh already running on another instance, skipping")

			return s.skippedSummary(ctx)
		}
	}

	s.logger.Info("starting curation run",
		zap.Int("levels", len(domain.Levels())),
	)

	summary := RefreshSummary{Results: make([]LevelResult, 0, len(domain.Levels()))}
	for _, level := range domain.Levels() {
		result := s.refreshLevel(ctx, level)

		// Best-effort count even when the pipeline failed.
		count, err := s.repo.CountByLevel(ctx, level)
		if err != nil {
			s.logger.Error("failed to count stored videos",
				zap.String("level", string(level)),
				zap.Error(err),
			)
		} else {
			result.Count = count
		}

		summary.Results = append(summary.Results, result)
	}

	failed := summary.Failed()
	if s.locker != nil {
		if failed > 0 {
			if err := s.locker.Release(ctx, refreshLockKey); err != nil {
				s.logger.Error("failed to release refresh lock", zap.Error(err))
			}
		}
		// On a clean run the lock expires after the TTL, acting as a cooldown.
	}

	s.logger.Info("curation run completed",
		zap.Int("levels_failed", failed),
	)

	return summary
}

// refreshLevel runs the pipeline for a single level. Any error, upstream or
// storage, abandons the level for this run; stored state from prior runs is
// left untouched apart from upserts already committed.
func (s *CurationService) refreshLevel(ctx context.Context, level domain.Level) LevelResult {
	start := time.Now()
	result := LevelResult{Level: level}

	log := s.logger.With(zap.String("level", string(level)))

	candidates, err := s.source.Search(ctx, s.cfg.SearchQuery, s.cfg.SearchMaxResults)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		log.Warn("video search failed, skipping level", zap.Error(err))

		return result
	}
	if len(candidates) == 0 {
		result.Duration = time.Since(start)
		log.Info("no candidates found, skipping level")

		return result
	}

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.VideoID
	}

	details, err := s.source.FetchDetails(ctx, ids)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		log.Warn("detail fetch failed, skipping level", zap.Error(err))

		return result
	}

	accepted := domain.FilterVideos(details, level, s.cfg.Filter)
	log.Debug("filtered candidates",
		zap.Int("candidates", len(details)),
		zap.Int("accepted", len(accepted)),
	)

	now := time.Now().UTC()
	for _, d := range accepted {
		score := domain.CalculateScore(d.ViewCount, d.PublishedAt, now, s.cfg.Score)
		if err := s.repo.Upsert(ctx, domain.NewVideo(d, level, score, now)); err != nil {
			result.Error = err
			result.Duration = time.Since(start)
			log.Error("upsert failed, abandoning level", zap.Error(err))

			return result
		}
		result.Accepted++
	}

	pruned, err := s.repo.Prune(ctx, level, s.cfg.MaxVideosPerLevel)
	if err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		log.Error("prune failed", zap.Error(err))

		return result
	}
	result.Pruned = pruned

	s.invalidateLevel(ctx, level)

	result.Duration = time.Since(start)
	log.Info("level refresh completed",
		zap.Int("accepted", result.Accepted),
		zap.Int("pruned", result.Pruned),
		zap.Duration("duration", result.Duration),
	)

	return result
}

// skippedSummary reports current stored counts without running the pipeline.
func (s *CurationService) skippedSummary(ctx context.Context) RefreshSummary {
	summary := RefreshSummary{Skipped: true}
	for _, level := range domain.Levels() {
		result := LevelResult{Level: level}
		if count, err := s.repo.CountByLevel(ctx, level); err == nil {
			result.Count = count
		}
		summary.Results = append(summary.Results, result)
	}

	return summary
}

// invalidateLevel drops the cached listing for a level after its store
// contents changed. Cache failures are logged, never fatal.
func (s *CurationService) invalidateLevel(ctx context.Context, level domain.Level) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, videosCacheKey(level)); err != nil {
		s.logger.Warn("failed to invalidate level cache",
			zap.String("level", string(level)),
			zap.Error(err),
		)
	}
}
