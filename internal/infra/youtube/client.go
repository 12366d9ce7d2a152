// Package youtube implements the video source adapter for the YouTube
// Data API v3 (search.list + videos.list).
package youtube

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/begengineer/quickfit/internal/domain"
)

// API paths on the Data API base URL.
const (
	searchEndpoint = "/search"
	videosEndpoint = "/videos"
)

// ClientConfig holds configuration for the Data API client.
type ClientConfig struct {
	BaseURL  string
	APIKey   string
	Region   string // regionCode hint, e.g. "JP"
	Language string // relevanceLanguage hint, e.g. "ja"
	Timeout  time.Duration
	Retry    RetryConfig
	CB       CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client implements domain.VideoSource against the Data API.
type Client struct {
	client   *resty.Client
	cb       *gobreaker.CircuitBreaker[*resty.Response]
	apiKey   string
	region   string
	language string
	logger   *zap.Logger
}

// New creates a new Data API client with retry and circuit breaker wiring.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	settings := gobreaker.Settings{
		Name:        "youtube",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	return &Client{
		client:   client,
		cb:       gobreaker.NewCircuitBreaker[*resty.Response](settings),
		apiKey:   cfg.APIKey,
		region:   cfg.Region,
		language: cfg.Language,
		logger:   logger,
	}
}

// Search finds video candidates for the query. The duration hint narrows
// results to the medium band upstream; the exact bound is enforced later
// by the filter.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]domain.SearchResult, error) {
	if c.apiKey == "" {
		return nil, domain.ErrAPIKeyMissing
	}

	var result searchListResponse
	resp, err := c.execute(ctx, searchEndpoint, &result, map[string]string{
		"part":              "snippet",
		"q":                 query,
		"type":              "video",
		"maxResults":        strconv.Itoa(maxResults),
		"videoDuration":     "medium",
		"relevanceLanguage": c.language,
		"regionCode":        c.region,
		"order":             "relevance",
	})
	if err != nil {
		c.logger.Warn("video search failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("searching videos: %w: %w", domain.ErrUpstream, err)
	}

	parsed := resp.Result().(*searchListResponse)
	results := make([]domain.SearchResult, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		results = append(results, item.toDomain())
	}

	c.logger.Debug("video search completed",
		zap.String("query", query),
		zap.Int("count", len(results)),
	)

	return results, nil
}

// FetchDetails retrieves duration, view and tag data for a batch of ids.
func (c *Client) FetchDetails(ctx context.Context, ids []string) ([]domain.VideoDetails, error) {
	if c.apiKey == "" {
		return nil, domain.ErrAPIKeyMissing
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var result videoListResponse
	resp, err := c.execute(ctx, videosEndpoint, &result, map[string]string{
		"part": "snippet,contentDetails,statistics",
		"id":   strings.Join(ids, ","),
	})
	if err != nil {
		c.logger.Warn("video details fetch failed",
			zap.Error(err),
			zap.String("state", c.cb.State().String()),
		)

		return nil, fmt.Errorf("fetching video details: %w: %w", domain.ErrUpstream, err)
	}

	parsed := resp.Result().(*videoListResponse)
	details := make([]domain.VideoDetails, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		details = append(details, item.toDomain())
	}

	c.logger.Debug("video details fetched",
		zap.Int("requested", len(ids)),
		zap.Int("returned", len(details)),
	)

	return details, nil
}

// execute runs a GET through the circuit breaker with the API key attached.
func (c *Client) execute(ctx context.Context, endpoint string, result any, params map[string]string) (*resty.Response, error) {
	return c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.client.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("key", c.apiKey).
			SetResult(result).
			Get(endpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("youtube api returned status %d", r.StatusCode())
		}

		return r, nil
	})
}
