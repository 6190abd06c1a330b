// Package fetcher defines how property pages are retrieved.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Fetcher abstracts page fetching.
type Fetcher interface {
	// Fetch retrieves page content from a URL with a single GET.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources.
	Close() error

	// Type returns a string identifying the fetcher type.
	Type() string
}

// Options controls fetching behavior. Zero values fall back to the
// fetcher's configuration.
type Options struct {
	UserAgent   string
	Timeout     time.Duration
	MaxBodySize int // bytes, 0 = fetcher default
	Headers     map[string]string
}

// Content represents a fetched page.
type Content struct {
	URL         string
	Body        string
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// ErrFetch marks transport failures and HTTP error statuses.
// Check with errors.Is(err, fetcher.ErrFetch).
var ErrFetch = errors.New("fetch failed")

// ErrBodyTooLarge marks a response body that reached the size limit and
// was cut off.
var ErrBodyTooLarge = errors.New("response body too large")

// FetchError describes a failed fetch.
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap lets errors.Is match both ErrFetch and the underlying cause.
func (e *FetchError) Unwrap() []error {
	return []error{ErrFetch, e.Err}
}
