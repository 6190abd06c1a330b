package document

import (
	"strings"
	"testing"
)

func TestParse_FindsNodes(t *testing.T) {
	doc, err := Parse(`<html><body><span itemprop="streetAddress"> 12 Test St </span></body></html>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	got := strings.TrimSpace(doc.Find(`[itemprop="streetAddress"]`).Text())
	if got != "12 Test St" {
		t.Errorf("got %q, want %q", got, "12 Test St")
	}
}

func TestParse_ToleratesMalformedMarkup(t *testing.T) {
	doc, err := Parse(`<div><p>unclosed <b>bold</div>`)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Find("b").Length() != 1 {
		t.Error("expected malformed markup to still produce a <b> node")
	}
}

func TestParse_Empty(t *testing.T) {
	doc, err := Parse("")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Find("script").Length() != 0 {
		t.Error("empty body should contain no scripts")
	}
}
