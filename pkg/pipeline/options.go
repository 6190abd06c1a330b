package pipeline

import (
	"github.com/jmylchreest/rightscrape/internal/output"
	"github.com/jmylchreest/rightscrape/pkg/extractor"
	"github.com/jmylchreest/rightscrape/pkg/fetcher"
	"github.com/jmylchreest/rightscrape/pkg/listing"
)

// ErrorPolicy decides what happens when one URL fails.
type ErrorPolicy int

const (
	// AbortOnError stops the run at the first failing URL.
	AbortOnError ErrorPolicy = iota
	// ContinueOnError logs the failure and moves on to the next URL.
	ContinueOnError
)

func (p ErrorPolicy) String() string {
	switch p {
	case AbortOnError:
		return "abort"
	case ContinueOnError:
		return "continue"
	default:
		return "unknown"
	}
}

// Config holds pipeline configuration.
type Config struct {
	Fetcher      fetcher.Fetcher
	FetchOptions fetcher.Options
	Extractor    extractor.Extractor
	Writer       output.Writer
	Filter       listing.FilterOptions
	ErrorPolicy  ErrorPolicy

	// DumpPath receives the raw body of a page that failed extraction.
	// Empty disables dumping.
	DumpPath string
}

// Option configures a Pipeline.
type Option func(*Config)

// WithFetcher sets the page fetcher.
func WithFetcher(f fetcher.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithFetchOptions sets per-request fetch options.
func WithFetchOptions(opts fetcher.Options) Option {
	return func(c *Config) {
		c.FetchOptions = opts
	}
}

// WithExtractor sets the listing extractor.
func WithExtractor(e extractor.Extractor) Option {
	return func(c *Config) {
		c.Extractor = e
	}
}

// WithWriter sets the output writer.
func WithWriter(w output.Writer) Option {
	return func(c *Config) {
		c.Writer = w
	}
}

// WithFilter sets the result filter.
func WithFilter(f listing.FilterOptions) Option {
	return func(c *Config) {
		c.Filter = f
	}
}

// WithErrorPolicy sets the per-URL failure policy.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(c *Config) {
		c.ErrorPolicy = p
	}
}

// WithDumpPath sets where failing page bodies are written.
func WithDumpPath(path string) Option {
	return func(c *Config) {
		c.DumpPath = path
	}
}
