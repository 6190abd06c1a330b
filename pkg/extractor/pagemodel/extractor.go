// Package pagemodel extracts listings from property pages that embed a
// PAGE_MODEL JSON blob in a script tag. The street address and floorplan
// tab come from the DOM; price, title and map image come from the blob.
package pagemodel

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/jmylchreest/rightscrape/pkg/extractor"
	"github.com/jmylchreest/rightscrape/pkg/listing"
)

// Name identifies this strategy in errors and logs.
const Name = extractor.StrategyPageModel

// Extractor implements extractor.Extractor for the embedded-JSON markup.
type Extractor struct {
	sel       extractor.PageModelSelectors
	summary   cascadia.Selector
	floorplan cascadia.Selector
	script    cascadia.Selector
}

// New creates a page-model extractor. It fails if a selector does not
// compile or the marker or separator is empty.
func New(sel extractor.PageModelSelectors) (*Extractor, error) {
	if sel.Marker == "" || sel.Separator == "" {
		return nil, fmt.Errorf("%s: marker and separator must be set", Name)
	}
	e := &Extractor{sel: sel}
	err := extractor.CompileAll(
		extractor.SelectorTarget{Name: "page_model.summary", Selector: sel.Summary, Dst: &e.summary},
		extractor.SelectorTarget{Name: "page_model.floorplan", Selector: sel.Floorplan, Dst: &e.floorplan},
		extractor.SelectorTarget{Name: "page_model.script", Selector: sel.Script, Dst: &e.script},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", Name, err)
	}
	return e, nil
}

// Name returns the extractor identifier.
func (e *Extractor) Name() string {
	return Name
}

// Detect reports whether doc embeds a page model script.
func (e *Extractor) Detect(doc *goquery.Document) bool {
	_, ok := e.findScript(doc)
	return ok
}

// Extract builds a listing from doc.
func (e *Extractor) Extract(url string, doc *goquery.Document) (*listing.Result, error) {
	summary, err := e.extractSummary(url, doc)
	if err != nil {
		return nil, err
	}

	floorplanURL, err := e.extractFloorplan(url, doc)
	if err != nil {
		return nil, err
	}

	m, err := e.extractModel(url, doc)
	if err != nil {
		return nil, err
	}

	price, err := e.field(url, m, "price", e.sel.PricePath)
	if err != nil {
		return nil, err
	}
	humanIdentifier, err := e.field(url, m, "human_identifier", e.sel.HumanIdentifierPath)
	if err != nil {
		return nil, err
	}
	locationImageURL, err := e.field(url, m, "location_image_url", e.sel.LocationImageURLPath)
	if err != nil {
		return nil, err
	}

	return extractor.NewResult(Name, url, summary, humanIdentifier, price, floorplanURL, locationImageURL)
}

func (e *Extractor) extractSummary(url string, doc *goquery.Document) (string, error) {
	node := doc.FindMatcher(e.summary).First()
	if node.Length() == 0 {
		return "", extractor.Missing(Name, url, "summary", "no node matches "+e.sel.Summary)
	}
	return strings.TrimSpace(node.Text()), nil
}

// extractFloorplan returns nil when the page has no floorplan tab. The
// tab's href must be an in-page fragment such as "#/floorplan?activePlan=1";
// anything else cannot be appended to the page URL and is an error.
func (e *Extractor) extractFloorplan(url string, doc *goquery.Document) (*string, error) {
	anchor := doc.FindMatcher(e.floorplan).First()
	if anchor.Length() == 0 {
		return nil, nil
	}
	href, ok := anchor.Attr("href")
	if !ok {
		return nil, nil
	}
	if !strings.HasPrefix(href, "#") {
		return nil, extractor.Malformed(Name, url, "floorplan_url", "href "+strconv.Quote(href)+" is not a fragment")
	}
	idx := strings.IndexByte(href, '/')
	if idx < 0 {
		return nil, extractor.Malformed(Name, url, "floorplan_url", "no '/' in href "+strconv.Quote(href))
	}
	link := url + href[idx+1:]
	return &link, nil
}

func (e *Extractor) findScript(doc *goquery.Document) (string, bool) {
	var text string
	var found bool
	doc.FindMatcher(e.script).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := s.Text()
		if strings.Contains(t, e.sel.Marker) {
			text, found = t, true
			return false
		}
		return true
	})
	return text, found
}

func (e *Extractor) extractModel(url string, doc *goquery.Document) (model, error) {
	text, ok := e.findScript(doc)
	if !ok {
		return model{}, extractor.Missing(Name, url, e.sel.Marker, "no script contains the page model")
	}

	parts := strings.SplitN(text, e.sel.Separator, 2)
	if len(parts) < 2 {
		return model{}, extractor.Unparsable(Name, url, e.sel.Marker, "no "+strconv.Quote(e.sel.Separator)+" assignment in script")
	}

	raw := strings.TrimSpace(parts[1])
	raw = strings.TrimSpace(strings.TrimSuffix(raw, ";"))

	m, ok := decode(raw)
	if !ok {
		return model{}, extractor.Unparsable(Name, url, e.sel.Marker, "value is not valid JSON")
	}
	return m, nil
}

func (e *Extractor) field(url string, m model, field string, path []string) (string, error) {
	v, serr := m.lookup(path)
	if serr != nil {
		return "", &extractor.FieldError{
			URL:      url,
			Strategy: Name,
			Field:    serr.key,
			Detail:   serr.detail + " while reading " + field,
			Err:      serr.kind,
		}
	}
	return v, nil
}
