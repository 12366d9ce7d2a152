package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/begengineer/quickfit/internal/domain"
)

// VideoModel is the GORM model for the videos table.
type VideoModel struct {
	VideoID      string `gorm:"type:varchar(100);primaryKey"`
	Level        string `gorm:"type:varchar(20);not null;index"`
	Title        string `gorm:"type:varchar(500);not null"`
	Description  string `gorm:"type:text"`
	ThumbnailURL string `gorm:"type:varchar(500)"`

	// Metrics
	DurationSec int            `gorm:"default:0"`
	ViewCount   int            `gorm:"default:0"`
	Tags        pq.StringArray `gorm:"type:text[]"`

	// Score
	Score float64 `gorm:"type:decimal(12,2);default:0;index"`

	// Timestamps
	PublishedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for VideoModel.
func (VideoModel) TableName() string {
	return "videos"
}

// ToDomain converts VideoModel to domain.Video.
func (m *VideoModel) ToDomain() *domain.Video {
	return &domain.Video{
		VideoID:      m.VideoID,
		Level:        domain.Level(m.Level),
		Title:        m.Title,
		Description:  m.Description,
		ThumbnailURL: m.ThumbnailURL,
		DurationSec:  m.DurationSec,
		ViewCount:    m.ViewCount,
		Tags:         m.Tags,
		Score:        m.Score,
		PublishedAt:  m.PublishedAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain creates a VideoModel from domain.Video.
func FromDomain(v *domain.Video) *VideoModel {
	return &VideoModel{
		VideoID:      v.VideoID,
		Level:        string(v.Level),
		Title:        v.Title,
		Description:  v.Description,
		ThumbnailURL: v.ThumbnailURL,
		DurationSec:  v.DurationSec,
		ViewCount:    v.ViewCount,
		Tags:         v.Tags,
		Score:        v.Score,
		PublishedAt:  v.PublishedAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
