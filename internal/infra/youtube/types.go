package youtube

import (
	"regexp"
	"strconv"
	"time"

	"github.com/begengineer/quickfit/internal/domain"
)

// searchListResponse is the wire format of the Data API search.list call.
type searchListResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	ID      searchItemID `json:"id"`
	Snippet snippet      `json:"snippet"`
}

type searchItemID struct {
	Kind    string `json:"kind"`
	VideoID string `json:"videoId"`
}

// videoListResponse is the wire format of the Data API videos.list call.
type videoListResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	ID             string         `json:"id"`
	Snippet        snippet        `json:"snippet"`
	ContentDetails contentDetails `json:"contentDetails"`
	Statistics     statistics     `json:"statistics"`
}

type snippet struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	PublishedAt string     `json:"publishedAt"`
	Thumbnails  thumbnails `json:"thumbnails"`
	Tags        []string   `json:"tags"`
}

type thumbnails struct {
	High    thumbnail `json:"high"`
	Default thumbnail `json:"default"`
}

type thumbnail struct {
	URL string `json:"url"`
}

type contentDetails struct {
	Duration string `json:"duration"`
}

// statistics carries counts as decimal strings on the wire.
type statistics struct {
	ViewCount string `json:"viewCount"`
}

// url picks the high-resolution thumbnail, falling back to default.
func (t thumbnails) url() string {
	if t.High.URL != "" {
		return t.High.URL
	}

	return t.Default.URL
}

func (s searchItem) toDomain() domain.SearchResult {
	publishedAt, _ := time.Parse(time.RFC3339, s.Snippet.PublishedAt)

	return domain.SearchResult{
		VideoID:      s.ID.VideoID,
		Title:        s.Snippet.Title,
		Description:  s.Snippet.Description,
		ThumbnailURL: s.Snippet.Thumbnails.url(),
		PublishedAt:  publishedAt,
	}
}

func (v videoItem) toDomain() domain.VideoDetails {
	publishedAt, _ := time.Parse(time.RFC3339, v.Snippet.PublishedAt)
	viewCount, _ := strconv.Atoi(v.Statistics.ViewCount)

	return domain.VideoDetails{
		VideoID:      v.ID,
		Title:        v.Snippet.Title,
		Description:  v.Snippet.Description,
		ThumbnailURL: v.Snippet.Thumbnails.url(),
		DurationSec:  ParseISODuration(v.ContentDetails.Duration),
		ViewCount:    viewCount,
		Tags:         v.Snippet.Tags,
		PublishedAt:  publishedAt,
	}
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseISODuration converts an ISO 8601 duration designator into seconds,
// e.g. "PT10M30S" → 630. Zero components are omitted upstream. Returns 0
// for values it cannot parse.
func ParseISODuration(s string) int {
	m := isoDurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])

	return hours*3600 + minutes*60 + seconds
}
