// Package dto provides Data Transfer Objects for HTTP requests and responses.
package dto

import (
	"strings"

	"github.com/begengineer/quickfit/internal/domain"
)

// GetVideoRequest represents the query parameters for fetching a video.
type GetVideoRequest struct {
	Level      string `query:"level" validate:"required,oneof=beginner intermediate advanced"`
	ExcludeIDs string `query:"excludeIds" validate:"omitempty,max=2000"`
}

// ToLevel converts the level parameter to its domain value.
func (r *GetVideoRequest) ToLevel() (domain.Level, bool) {
	return domain.ParseLevel(r.Level)
}

// ExcludeIDList splits the comma-separated excludeIds parameter, dropping
// empty entries.
func (r *GetVideoRequest) ExcludeIDList() []string {
	if r.ExcludeIDs == "" {
		return nil
	}

	parts := strings.Split(r.ExcludeIDs, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}

	return ids
}
