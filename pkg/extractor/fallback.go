package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/rightscrape/internal/logger"
	"github.com/jmylchreest/rightscrape/pkg/listing"
)

// ErrNoExtractor is returned when a fallback chain has no extractors.
var ErrNoExtractor = errors.New("no extractor configured")

// FallbackExtractor tries each extractor in order until one succeeds.
// Only extractors whose Detect matches the document are attempted, so a
// result always comes from a single markup era and is never merged.
type FallbackExtractor struct {
	extractors []Extractor
}

// NewFallback creates a fallback chain from the given extractors.
// The first extractor is the primary one.
func NewFallback(extractors ...Extractor) *FallbackExtractor {
	return &FallbackExtractor{
		extractors: extractors,
	}
}

// Extract tries each detected extractor in order until one succeeds.
// When no extractor recognises the markup the primary one runs anyway, so
// the failure still names the exact field that is missing.
func (f *FallbackExtractor) Extract(url string, doc *goquery.Document) (*listing.Result, error) {
	if len(f.extractors) == 0 {
		return nil, ErrNoExtractor
	}

	var errs []error
	var tried []string

	for _, ext := range f.extractors {
		if !ext.Detect(doc) {
			continue
		}

		tried = append(tried, ext.Name())
		result, err := ext.Extract(url, doc)
		if err == nil {
			logger.Debug("extraction succeeded", "url", url, "extractor", ext.Name())
			return result, nil
		}

		logger.Debug("extractor failed, trying next", "url", url, "extractor", ext.Name(), "error", err)
		errs = append(errs, err)
	}

	if len(tried) == 0 {
		primary := f.extractors[0]
		logger.Debug("no extractor detected page markup, using primary", "url", url, "extractor", primary.Name())
		return primary.Extract(url, doc)
	}

	if len(errs) == 1 {
		return nil, errs[0]
	}
	return nil, fmt.Errorf("all extractors failed (tried: %s): %w", strings.Join(tried, ", "), errors.Join(errs...))
}

// Name returns the fallback chain name.
func (f *FallbackExtractor) Name() string {
	var names []string
	for _, ext := range f.extractors {
		names = append(names, ext.Name())
	}
	return "fallback(" + strings.Join(names, "->") + ")"
}

// Detect returns true if any extractor in the chain recognises doc.
func (f *FallbackExtractor) Detect(doc *goquery.Document) bool {
	for _, ext := range f.extractors {
		if ext.Detect(doc) {
			return true
		}
	}
	return false
}
