package domain

import "errors"

// Error taxonomy used to map failures to HTTP status codes and to decide
// per-level isolation in the curation run. Wrap with fmt.Errorf("...: %w", err)
// and test with errors.Is.
var (
	// ErrAPIKeyMissing means required video source credentials are absent.
	// Raised before any network call.
	ErrAPIKeyMissing = errors.New("video source api key is not configured")

	// ErrUpstream covers video source transport, quota and timeout failures.
	ErrUpstream = errors.New("video source request failed")

	// ErrStorage covers persistence read/write failures.
	ErrStorage = errors.New("video store operation failed")
)
