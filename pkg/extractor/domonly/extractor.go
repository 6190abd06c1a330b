// Package domonly extracts listings from legacy property pages using DOM
// selectors only.
package domonly

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/jmylchreest/rightscrape/pkg/extractor"
	"github.com/jmylchreest/rightscrape/pkg/listing"
)

// Name identifies this strategy in errors and logs.
const Name = extractor.StrategyDOMOnly

// Extractor implements extractor.Extractor for the legacy markup.
type Extractor struct {
	sel extractor.DOMSelectors

	summary            cascadia.Selector
	humanIdentifier    cascadia.Selector
	priceContainer     cascadia.Selector
	priceSel           cascadia.Selector
	floorplanContainer cascadia.Selector
	floorplanAnchor    cascadia.Selector
	mapContainer       cascadia.Selector
	mapImage           cascadia.Selector
}

// New creates a DOM-only extractor. It fails if a selector does not compile.
func New(sel extractor.DOMSelectors) (*Extractor, error) {
	e := &Extractor{sel: sel}
	err := extractor.CompileAll(
		extractor.SelectorTarget{Name: "dom.summary", Selector: sel.Summary, Dst: &e.summary},
		extractor.SelectorTarget{Name: "dom.human_identifier", Selector: sel.HumanIdentifier, Dst: &e.humanIdentifier},
		extractor.SelectorTarget{Name: "dom.price_container", Selector: sel.PriceContainer, Dst: &e.priceContainer},
		extractor.SelectorTarget{Name: "dom.price", Selector: sel.Price, Dst: &e.priceSel},
		extractor.SelectorTarget{Name: "dom.floorplan_container", Selector: sel.FloorplanContainer, Dst: &e.floorplanContainer},
		extractor.SelectorTarget{Name: "dom.floorplan_anchor", Selector: sel.FloorplanAnchor, Dst: &e.floorplanAnchor},
		extractor.SelectorTarget{Name: "dom.map_container", Selector: sel.MapContainer, Dst: &e.mapContainer},
		extractor.SelectorTarget{Name: "dom.map_image", Selector: sel.MapImage, Dst: &e.mapImage},
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

// Detect reports whether doc has the legacy price header.
func (e *Extractor) Detect(doc *goquery.Document) bool {
	return doc.FindMatcher(e.priceContainer).Length() > 0
}

// Extract builds a listing from doc.
func (e *Extractor) Extract(url string, doc *goquery.Document) (*listing.Result, error) {
	summary, err := e.text(url, doc.Selection, e.summary, "summary", e.sel.Summary)
	if err != nil {
		return nil, err
	}

	humanIdentifier, err := e.text(url, doc.Selection, e.humanIdentifier, "human_identifier", e.sel.HumanIdentifier)
	if err != nil {
		return nil, err
	}

	price, err := e.price(url, doc)
	if err != nil {
		return nil, err
	}

	floorplanURL := e.floorplanURL(url, doc)

	locationImageURL, err := e.locationImageURL(url, doc)
	if err != nil {
		return nil, err
	}

	return extractor.NewResult(Name, url, summary, humanIdentifier, price, floorplanURL, locationImageURL)
}

// text returns the trimmed text of the first node under root matching m.
func (e *Extractor) text(url string, root *goquery.Selection, m cascadia.Selector, field, sel string) (string, error) {
	node := root.FindMatcher(m).First()
	if node.Length() == 0 {
		return "", extractor.Missing(Name, url, field, "no node matches "+sel)
	}
	return strings.TrimSpace(node.Text()), nil
}

func (e *Extractor) price(url string, doc *goquery.Document) (string, error) {
	container := doc.FindMatcher(e.priceContainer).First()
	if container.Length() == 0 {
		return "", extractor.Missing(Name, url, "price", "no node matches "+e.sel.PriceContainer)
	}
	return e.text(url, container, e.priceSel, "price", e.sel.PriceContainer+" "+e.sel.Price)
}

// floorplanURL prefixes the floorplan tab's relative href with the page URL.
// Any missing piece means the listing has no floorplan.
func (e *Extractor) floorplanURL(url string, doc *goquery.Document) *string {
	container := doc.FindMatcher(e.floorplanContainer).First()
	if container.Length() == 0 {
		return nil
	}
	href, ok := container.FindMatcher(e.floorplanAnchor).First().Attr("href")
	href = strings.TrimSpace(href)
	if !ok || href == "" {
		return nil
	}
	link := url + href
	return &link
}

func (e *Extractor) locationImageURL(url string, doc *goquery.Document) (string, error) {
	container := doc.FindMatcher(e.mapContainer).First()
	if container.Length() == 0 {
		return "", extractor.Missing(Name, url, "location_image_url", "no node matches "+e.sel.MapContainer)
	}
	img := container.FindMatcher(e.mapImage).First()
	if img.Length() == 0 {
		return "", extractor.Missing(Name, url, "location_image_url", "no node matches "+e.sel.MapContainer+" "+e.sel.MapImage)
	}
	src, ok := img.Attr("src")
	if !ok {
		return "", extractor.Missing(Name, url, "location_image_url", "image has no src attribute")
	}
	return strings.TrimSpace(src), nil
}
