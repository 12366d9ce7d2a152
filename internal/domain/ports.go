package domain

import (
	"context"
	"time"
)

// VideoRepository defines the interface for the ranked video store.
// Implementations: internal/infra/postgres/repository.go
type VideoRepository interface {
	// ListByLevel returns all videos in a level. Order is not guaranteed;
	// ranking is applied by callers.
	ListByLevel(ctx context.Context, level Level) ([]*Video, error)

	// Upsert creates or replaces a single video, keyed by VideoID.
	// Idempotent.
	Upsert(ctx context.Context, video *Video) error

	// Delete removes a single video by its id.
	Delete(ctx context.Context, videoID string) error

	// Prune deletes the lowest-scoring videos in a level until at most
	// maxCount remain. Ties are broken by video_id ascending. Returns the
	// number of videos deleted.
	Prune(ctx context.Context, level Level, maxCount int) (int, error)

	// CountByLevel returns the number of videos stored for a level.
	CountByLevel(ctx context.Context, level Level) (int64, error)
}

// VideoSource defines the interface for the external video content source.
// Implementations: internal/infra/youtube/client.go
type VideoSource interface {
	// Search returns raw candidates for the query. May return fewer than
	// maxResults.
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)

	// FetchDetails returns duration/engagement data for a batch of ids.
	// An empty batch yields an empty result without a network call.
	FetchDetails(ctx context.Context, ids []string) ([]VideoDetails, error)
}

// Cache defines the interface for caching operations.
// Implementations: internal/infra/redis/cache.go
type Cache interface {
	// Get retrieves a value by key. Returns nil if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error
}
