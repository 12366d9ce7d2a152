package dto

import (
	"time"

	"github.com/begengineer/quickfit/internal/app/service"
	"github.com/begengineer/quickfit/internal/domain"
)

// VideoPayload represents a single video in API responses.
type VideoPayload struct {
	VideoID      string   `json:"video_id"`
	Level        string   `json:"level"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	ThumbnailURL string   `json:"thumbnail_url"`
	DurationSec  int      `json:"duration_sec"`
	ViewCount    int      `json:"view_count"`
	Tags         []string `json:"tags,omitempty"`
	Score        float64  `json:"score"`
	PublishedAt  string   `json:"published_at"`
}

// FromDomainVideo converts domain.Video to VideoPayload.
func FromDomainVideo(v *domain.Video) VideoPayload {
	return VideoPayload{
		VideoID:      v.VideoID,
		Level:        string(v.Level),
		Title:        v.Title,
		Description:  v.Description,
		ThumbnailURL: v.ThumbnailURL,
		DurationSec:  v.DurationSec,
		ViewCount:    v.ViewCount,
		Tags:         v.Tags,
		Score:        v.Score,
		PublishedAt:  v.PublishedAt.Format(time.RFC3339),
	}
}

// VideoResponse represents the response for a video fetch.
type VideoResponse struct {
	Success bool         `json:"success"`
	Video   VideoPayload `json:"video"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// BatchUpdateResponse represents the response for a curation run.
type BatchUpdateResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Stats   map[string]int64 `json:"stats"`
}

// FromRefreshSummary converts a curation run summary to BatchUpdateResponse.
func FromRefreshSummary(summary service.RefreshSummary) BatchUpdateResponse {
	message := "Video update completed"
	if summary.Skipped {
		message = "Video update already in progress"
	} else if failed := summary.Failed(); failed > 0 {
		message = "Video update completed with errors"
	}

	stats := make(map[string]int64, len(summary.Results))
	for _, r := range summary.Results {
		stats[string(r.Level)] = r.Count
	}

	return BatchUpdateResponse{
		Success: true,
		Message: message,
		Stats:   stats,
	}
}

// StatsResponse represents per-level stored video counts.
type StatsResponse struct {
	Success bool             `json:"success"`
	Stats   map[string]int64 `json:"stats"`
}

// FromLevelStats converts per-level counts to StatsResponse.
func FromLevelStats(stats map[domain.Level]int64) StatsResponse {
	out := make(map[string]int64, len(stats))
	for level, count := range stats {
		out[string(level)] = count
	}

	return StatsResponse{Success: true, Stats: out}
}
