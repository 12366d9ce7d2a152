package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/begengineer/quickfit/internal/domain"
)

// Repository implements domain.VideoRepository using PostgreSQL.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByLevel returns all videos stored for a level.
func (r *Repository) ListByLevel(ctx context.Context, level domain.Level) ([]*domain.Video, error) {
	var models []VideoModel
	err := r.db.WithContext(ctx).
		Where("level = ?", string(level)).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("listing videos by level: %w: %w", domain.ErrStorage, err)
	}

	videos := make([]*domain.Video, len(models))
	for i := range models {
		videos[i] = models[i].ToDomain()
	}

	return videos, nil
}

// Upsert creates or replaces a single video, keyed by video_id.
func (r *Repository) Upsert(ctx context.Context, video *domain.Video) error {
	model := FromDomain(video)
	model.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "video_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"level", "title", "description", "thumbnail_url",
			"duration_sec", "view_count", "tags",
			"score", "published_at", "updated_at",
		}),
	}).Create(model).Error

	if err != nil {
		return fmt.Errorf("upserting video: %w: %w", domain.ErrStorage, err)
	}

	video.CreatedAt = model.CreatedAt
	video.UpdatedAt = model.UpdatedAt

	return nil
}

// Delete removes a video by its id.
func (r *Repository) Delete(ctx context.Context, videoID string) error {
	result := r.db.WithContext(ctx).Where("video_id = ?", videoID).Delete(&VideoModel{})
	if result.Error != nil {
		return fmt.Errorf("deleting video: %w: %w", domain.ErrStorage, result.Error)
	}

	return nil
}

// Prune deletes the lowest-scoring videos in a level until at most maxCount
// remain. Equal scores are broken by video_id ascending so eviction order is
// reproducible. No-op when the level is within capacity.
func (r *Repository) Prune(ctx context.Context, level domain.Level, maxCount int) (int, error) {
	count, err := r.CountByLevel(ctx, level)
	if err != nil {
		return 0, err
	}

	excess := int(count) - maxCount
	if excess <= 0 {
		return 0, nil
	}

	lowest := r.db.Model(&VideoModel{}).
		Select("video_id").
		Where("level = ?", string(level)).
		Order("score ASC, video_id ASC").
		Limit(excess)

	result := r.db.WithContext(ctx).
		Where("video_id IN (?)", lowest).
		Delete(&VideoModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("pruning videos: %w: %w", domain.ErrStorage, result.Error)
	}

	return int(result.RowsAffected), nil
}

// CountByLevel returns the number of videos stored for a level.
func (r *Repository) CountByLevel(ctx context.Context, level domain.Level) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&VideoModel{}).
		Where("level = ?", string(level)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("counting videos by level: %w: %w", domain.ErrStorage, err)
	}

	return count, nil
}
