// Package domain contains the core business logic and entities.
// This package has no external dependencies (only stdlib).
package domain

import (
	"time"
)

// Level identifies a curation bucket by workout difficulty.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels returns all configured levels in processing order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// ParseLevel returns the Level for s, or false if s is not a known level.
func ParseLevel(s string) (Level, bool) {
	switch Level(s) {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return Level(s), true
	default:
		return "", false
	}
}

// SearchResult is a raw candidate from the video source search endpoint.
// Ephemeral; never persisted directly.
type SearchResult struct {
	VideoID      string
	Title        string
	Description  string
	ThumbnailURL string
	PublishedAt  time.Time
}

// VideoDetails is a candidate enriched with duration and engagement data
// from the video source detail endpoint.
type VideoDetails struct {
	VideoID      string
	Title        string
	Description  string
	ThumbnailURL string
	DurationSec  int
	ViewCount    int
	Tags         []string
	PublishedAt  time.Time
}

// Video is a persisted curated item. VideoID is the durable join key back
// to the video source's identifier space.
type Video struct {
	VideoID      string    `json:"video_id"`
	Level        Level     `json:"level"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	DurationSec  int       `json:"duration_sec"`
	ViewCount    int       `json:"view_count"`
	Tags         []string  `json:"tags,omitempty"`
	Score        float64   `json:"score"`
	PublishedAt  time.Time `json:"published_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewVideo builds a Video from accepted details, scored at now.
func NewVideo(d VideoDetails, level Level, score float64, now time.Time) *Video {
	return &Video{
		VideoID:      d.VideoID,
		Level:        level,
		Title:        d.Title,
		Description:  d.Description,
		ThumbnailURL: d.ThumbnailURL,
		DurationSec:  d.DurationSec,
		ViewCount:    d.ViewCount,
		Tags:         d.Tags,
		Score:        score,
		PublishedAt:  d.PublishedAt,
		UpdatedAt:    now,
	}
}
