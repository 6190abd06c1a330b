package domonly

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/jmylchreest/rightscrape/pkg/document"
	"github.com/jmylchreest/rightscrape/pkg/extractor"
)

const pageURL = "https://www.example.co.uk/property-for-sale/property-123.html/"

func readTestdata(t *testing.T, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", filename))
	if err != nil {
		t.Fatalf("failed to read testdata %s: %v", filename, err)
	}
	return string(data)
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := document.Parse(html)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func newExtractor(t *testing.T) *Extractor {
	t.Helper()
	e, err := New(extractor.DefaultProfile().DOM)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e
}

const (
	titleNode   = `<h1 class="fs-22">2 bed flat</h1>`
	addressNode = `<address class="fs-16">Old Road</address>`
	priceNode   = `<p id="propertyHeaderPrice"><strong>£1</strong></p>`
	mapNode     = `<a class="js-ga-minimap"><img src="http://img/map.png"></a>`
)

// --- Constructor Tests ---

func TestNew_InvalidSelector(t *testing.T) {
	sel := extractor.DefaultProfile().DOM
	sel.MapImage = "img[["
	e, err := New(sel)
	if err == nil {
		t.Fatal("expected error")
	}
	if e != nil {
		t.Errorf("expected nil extractor, got %+v", e)
	}
	if !strings.Contains(err.Error(), "dom.map_image") {
		t.Errorf("error %q should name dom.map_image", err)
	}
}

// --- Happy Path Tests ---

func TestExtract_Fixture(t *testing.T) {
	r, err := newExtractor(t).Extract(pageURL, parse(t, readTestdata(t, "legacy.html")))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if r.Summary != "Old Road, London, N1" {
		t.Errorf("Summary = %q", r.Summary)
	}
	if r.HumanIdentifier != "2 bedroom flat for sale" {
		t.Errorf("HumanIdentifier = %q", r.HumanIdentifier)
	}
	if r.Price != "£425,000" {
		t.Errorf("Price = %q", r.Price)
	}
	if r.LocationImageURL != "https://media.example/map/static.png?latitude=51.5&longitude=-0.1" {
		t.Errorf("LocationImageURL = %q", r.LocationImageURL)
	}
	wantFloorplan := pageURL + "floorplan.html?index=0"
	if r.FloorplanURL == nil || *r.FloorplanURL != wantFloorplan {
		t.Errorf("FloorplanURL = %v, want %q", r.FloorplanURL, wantFloorplan)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	doc := parse(t, readTestdata(t, "legacy.html"))
	e := newExtractor(t)

	first, err := e.Extract(pageURL, doc)
	if err != nil {
		t.Fatalf("first Extract() error = %v", err)
	}
	second, err := e.Extract(pageURL, doc)
	if err != nil {
		t.Fatalf("second Extract() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
}

// --- Floorplan Tests ---

func TestExtract_FloorplanAbsence(t *testing.T) {
	tests := []struct {
		name      string
		floorplan string
	}{
		{"no container", ""},
		{"container without anchor", `<div id="floorplanTabs"><span>none</span></div>`},
		{"anchor with empty href", `<div id="floorplanTabs"><a href=" ">Floorplan</a></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html := "<html><body>" + titleNode + addressNode + priceNode + tt.floorplan + mapNode + "</body></html>"
			r, err := newExtractor(t).Extract("http://example/1", parse(t, html))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if r.FloorplanURL != nil {
				t.Errorf("FloorplanURL = %q, want nil", *r.FloorplanURL)
			}
			if r.Price != "£1" || r.LocationImageURL != "http://img/map.png" {
				t.Errorf("other fields should be unaffected: %+v", r)
			}
		})
	}
}

// --- Failure Tests ---

func TestExtract_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"no address", titleNode + priceNode + mapNode, "summary"},
		{"no title", addressNode + priceNode + mapNode, "human_identifier"},
		{"no price container", titleNode + addressNode + mapNode, "price"},
		{"price container without strong", titleNode + addressNode + `<p id="propertyHeaderPrice">£1</p>` + mapNode, "price"},
		{"no map container", titleNode + addressNode + priceNode, "location_image_url"},
		{"map without img", titleNode + addressNode + priceNode + `<a class="js-ga-minimap"></a>`, "location_image_url"},
		{"img without src", titleNode + addressNode + priceNode + `<a class="js-ga-minimap"><img alt="map"></a>`, "location_image_url"},
		{"empty title", `<h1 class="fs-22"> </h1>` + addressNode + priceNode + mapNode, "human_identifier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := newExtractor(t).Extract("http://example/1", parse(t, "<html><body>"+tt.body+"</body></html>"))
			if err == nil {
				t.Fatalf("expected error, got %+v", r)
			}
			if !errors.Is(err, extractor.ErrMissingField) {
				t.Errorf("error = %v, want ErrMissingField", err)
			}
			var fe *extractor.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *extractor.FieldError, got %T", err)
			}
			if fe.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fe.Field, tt.wantField)
			}
			if fe.Strategy != Name {
				t.Errorf("Strategy = %q, want %q", fe.Strategy, Name)
			}
		})
	}
}

// --- Detect Tests ---

func TestDetect(t *testing.T) {
	e := newExtractor(t)
	if !e.Detect(parse(t, readTestdata(t, "legacy.html"))) {
		t.Error("expected legacy page to be detected")
	}
	if e.Detect(parse(t, "<html><body>"+addressNode+"</body></html>")) {
		t.Error("expected page without price header not to be detected")
	}
}
