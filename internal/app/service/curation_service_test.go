package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/begengineer/quickfit/internal/domain"
)

type fakeRepo struct {
	mu       sync.Mutex
	videos   map[domain.Level][]*domain.Video
	upsertEr map[domain.Level]error
	countErr error
	pruned   map[domain.Level]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		videos:   make(map[domain.Level][]*domain.Video),
		upsertEr: make(map[domain.Level]error),
		pruned:   make(map[domain.Level]int),
	}
}

func (r *fakeRepo) ListByLevel(_ context.Context, level domain.Level) ([]*domain.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.videos[level], nil
}

func (r *fakeRepo) Upsert(_ context.Context, v *domain.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.upsertEr[v.Level]; err != nil {
		return err
	}
	for i, existing := range r.videos[v.Level] {
		if existing.VideoID == v.VideoID {
			r.videos[v.Level][i] = v

			return nil
		}
	}
	r.videos[v.Level] = append(r.videos[v.Level], v)

	return nil
}

func (r *fakeRepo) Delete(_ context.Context, videoID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for level, videos := range r.videos {
		kept := videos[:0]
		for _, v := range videos {
			if v.VideoID != videoID {
				kept = append(kept, v)
			}
		}
		r.videos[level] = kept
	}

	return nil
}

func (r *fakeRepo) Prune(_ context.Context, level domain.Level, maxCount int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	excess := len(r.videos[level]) - maxCount
	if excess <= 0 {
		return 0, nil
	}
	// Evict from the front; ordering is irrelevant for these tests.
	r.videos[level] = r.videos[level][excess:]
	r.pruned[level] += excess

	return excess, nil
}

func (r *fakeRepo) CountByLevel(_ context.Context, level domain.Level) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.countErr != nil {
		return 0, r.countErr
	}

	return int64(len(r.videos[level])), nil
}

type fakeSource struct {
	results    []domain.SearchResult
	details    []domain.VideoDetails
	searchErr  error
	detailsErr error
	searches   int
	fetches    int
}

func (s *fakeSource) Search(_ context.Context, _ string, _ int) ([]domain.SearchResult, error) {
	s.searches++
	if s.searchErr != nil {
		return nil, s.searchErr
	}

	return s.results, nil
}

func (s *fakeSource) FetchDetails(_ context.Context, _ []string) ([]domain.VideoDetails, error) {
	s.fetches++
	if s.detailsErr != nil {
		return nil, s.detailsErr
	}

	return s.details, nil
}

type fakeLocker struct {
	held     bool
	acquires int
	releases int
	err      error
}

func (l *fakeLocker) Acquire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	l.acquires++
	if l.err != nil {
		return false, l.err
	}
	if l.held {
		return false, nil
	}
	l.held = true

	return true, nil
}

func (l *fakeLocker) Release(_ context.Context, _ string) error {
	l.releases++
	l.held = false

	return nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.entries[key], nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value

	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	c.deletes = append(c.deletes, key)

	return nil
}

func testCurationConfig() CurationConfig {
	return CurationConfig{
		SearchQuery:       "自重トレーニング",
		SearchMaxResults:  50,
		MaxVideosPerLevel: 50,
		Filter: domain.FilterConfig{
			MinDurationSec: 300,
			MaxDurationSec: 1200,
			Rules:          domain.DefaultLevelRules(),
		},
		Score:   domain.DefaultScoreConfig(),
		LockTTL: time.Minute,
	}
}

func details(items ...domain.VideoDetails) []domain.VideoDetails {
	return items
}

func beginnerDetail(id string) domain.VideoDetails {
	return domain.VideoDetails{
		VideoID:     id,
		Title:       "初心者向け 自重トレーニング",
		DurationSec: 600,
		ViewCount:   1000,
		PublishedAt: time.Now().UTC().Add(-24 * time.Hour),
	}
}

func TestCurationService_RefreshAll_StoresFilteredVideos(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{
		results: []domain.SearchResult{{VideoID: "v1"}, {VideoID: "v2"}},
		details: details(
			beginnerDetail("v1"),
			// Too short, rejected at the duration stage for every level.
			domain.VideoDetails{VideoID: "v2", Title: "初心者向け", DurationSec: 120, PublishedAt: time.Now()},
		),
	}

	svc := NewCurationService(repo, source, nil, nil, testCurationConfig(), zap.NewNop())
	summary := svc.RefreshAll(context.Background())

	require.Len(t, summary.Results, 3)
	assert.False(t, summary.Skipped)
	assert.Equal(t, 0, summary.Failed())

	beginner := summary.Results[0]
	assert.Equal(t, domain.LevelBeginner, beginner.Level)
	assert.Equal(t, 1, beginner.Accepted)
	assert.Equal(t, int64(1), beginner.Count)

	stored, err := repo.ListByLevel(context.Background(), domain.LevelBeginner)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "v1", stored[0].VideoID)
	assert.Greater(t, stored[0].Score, 0.0)
}

func TestCurationService_RefreshAll_LevelFailureDoesNotAbortRun(t *testing.T) {
	repo := newFakeRepo()
	repo.upsertEr[domain.LevelBeginner] = domain.ErrStorage
	source := &fakeSource{
		results: []domain.SearchResult{{VideoID: "v1"}},
		details: details(beginnerDetail("v1")),
	}

	svc := NewCurationService(repo, source, nil, nil, testCurationConfig(), zap.NewNop())
	summary := svc.RefreshAll(context.Background())

	require.Len(t, summary.Results, 3)
	assert.Equal(t, 1, summary.Failed())
	assert.ErrorIs(t, summary.Results[0].Error, domain.ErrStorage)

	// Every level was still attempted.
	assert.Equal(t, 3, source.searches)

	// Intermediate and advanced completed normally.
	assert.NoError(t, summary.Results[1].Error)
	assert.NoError(t, summary.Results[2].Error)
}

func TestCurationService_RefreshAll_UpstreamFailureSkipsDetailFetch(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{searchErr: domain.ErrUpstream}

	svc := NewCurationService(repo, source, nil, nil, testCurationConfig(), zap.NewNop())
	summary := svc.RefreshAll(context.Background())

	assert.Equal(t, 3, summary.Failed())
	assert.Equal(t, 0, source.fetches)
	for _, r := range summary.Results {
		assert.ErrorIs(t, r.Error, domain.ErrUpstream)
	}
}

func TestCurationService_RefreshAll_EmptySearchSkipsLevelWithoutError(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{}

	svc := NewCurationService(repo, source, nil, nil, testCurationConfig(), zap.NewNop())
	summary := svc.RefreshAll(context.Background())

	assert.Equal(t, 0, summary.Failed())
	assert.Equal(t, 0, source.fetches)
}

func TestCurationService_RefreshAll_PrunesExcessVideos(t *testing.T) {
	cfg := testCurationConfig()
	cfg.MaxVideosPerLevel = 2

	repo := newFakeRepo()
	source := &fakeSource{
		results: []domain.SearchResult{{VideoID: "v1"}, {VideoID: "v2"}, {VideoID: "v3"}},
		details: details(beginnerDetail("v1"), beginnerDetail("v2"), beginnerDetail("v3")),
	}

	svc := NewCurationService(repo, source, nil, nil, cfg, zap.NewNop())
	summary := svc.RefreshAll(context.Background())

	beginner := summary.Results[0]
	assert.Equal(t, 3, beginner.Accepted)
	assert.Equal(t, 1, beginner.Pruned)
	assert.Equal(t, int64(2), beginner.Count)
}

func TestCurationService_RefreshAll_SkipsWhenLockHeld(t *testing.T) {
	repo := newFakeRepo()
	repo.videos[domain.LevelBeginner] = []*domain.Video{{VideoID: "existing"}}
	source := &fakeSource{
		results: []domain.SearchResult{{VideoID: "v1"}},
		details: details(beginnerDetail("v1")),
	}
	lock := &fakeLocker{held: true}

	svc := NewCurationService(repo, source, nil, lock, testCurationConfig(), zap.NewNop())
	summary := svc.RefreshAll(context.Background())

	assert.True(t, summary.Skipped)
	assert.Equal(t, 0, source.searches)

	// Skipped runs still report current stored counts.
	assert.Equal(t, int64(1), summary.Stats()[domain.LevelBeginner])
}

func TestCurationService_RefreshAll_ReleasesLockOnFailure(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{searchErr: domain.ErrUpstream}
	lock := &fakeLocker{}

	svc := NewCurationService(repo, source, nil, lock, testCurationConfig(), zap.NewNop())
	svc.RefreshAll(context.Background())

	assert.Equal(t, 1, lock.acquires)
	assert.Equal(t, 1, lock.releases)
}

func TestCurationService_RefreshAll_HoldsLockAfterCleanRun(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{
		results: []domain.SearchResult{{VideoID: "v1"}},
		details: details(beginnerDetail("v1")),
	}
	lock := &fakeLocker{}

	svc := NewCurationService(repo, source, nil, lock, testCurationConfig(), zap.NewNop())
	svc.RefreshAll(context.Background())

	assert.Equal(t, 0, lock.releases)
	assert.True(t, lock.held)
}

func TestCurationService_RefreshAll_InvalidatesLevelCache(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{
		results: []domain.SearchResult{{VideoID: "v1"}},
		details: details(beginnerDetail("v1")),
	}
	cache := newFakeCache()
	cache.entries["videos:beginner"] = []byte("stale")

	svc := NewCurationService(repo, source, cache, nil, testCurationConfig(), zap.NewNop())
	svc.RefreshAll(context.Background())

	assert.Contains(t, cache.deletes, "videos:beginner")
	assert.NotContains(t, cache.entries, "videos:beginner")
}

func TestCurationService_RefreshAll_UpsertIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	source := &fakeSource{
		results: []domain.SearchResult{{VideoID: "v1"}},
		details: details(beginnerDetail("v1")),
	}

	svc := NewCurationService(repo, source, nil, nil, testCurationConfig(), zap.NewNop())
	svc.RefreshAll(context.Background())
	summary := svc.RefreshAll(context.Background())

	assert.Equal(t, int64(1), summary.Results[0].Count)

	stored, err := repo.ListByLevel(context.Background(), domain.LevelBeginner)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestRefreshSummary_Stats(t *testing.T) {
	summary := RefreshSummary{Results: []LevelResult{
		{Level: domain.LevelBeginner, Count: 12},
		{Level: domain.LevelIntermediate, Count: 0, Error: errors.New("boom")},
		{Level: domain.LevelAdvanced, Count: 7},
	}}

	stats := summary.Stats()
	assert.Equal(t, int64(12), stats[domain.LevelBeginner])
	assert.Equal(t, int64(0), stats[domain.LevelIntermediate])
	assert.Equal(t, int64(7), stats[domain.LevelAdvanced])
	assert.Equal(t, 1, summary.Failed())
}
