// Package extractor provides the interface for listing extraction from parsed pages.
package extractor

import (
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/rightscrape/pkg/listing"
)

// Extractor extracts a listing from a parsed property page.
type Extractor interface {
	// Extract builds a complete listing from doc. url is the trimmed page
	// URL the document was fetched from. Implementations must not mutate doc.
	Extract(url string, doc *goquery.Document) (*listing.Result, error)

	// Name returns the extractor identifier.
	Name() string

	// Detect reports whether doc carries the markup this extractor targets.
	Detect(doc *goquery.Document) bool
}

// Strategy names selectable on the command line.
const (
	StrategyAuto      = "auto"
	StrategyPageModel = "pagemodel"
	StrategyDOMOnly   = "domonly"
)

// NewResult builds a listing and reports an empty mandatory field as an
// ErrMissingField FieldError attributed to strategy.
func NewResult(strategy, url, summary, humanIdentifier, price string, floorplanURL *string, locationImageURL string) (*listing.Result, error) {
	r, err := listing.New(url, summary, humanIdentifier, price, floorplanURL, locationImageURL)
	if err != nil {
		var efe *listing.EmptyFieldError
		if errors.As(err, &efe) {
			return nil, Missing(strategy, url, efe.Field, "empty value")
		}
		return nil, err
	}
	return r, nil
}
