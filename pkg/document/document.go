// Package document parses fetched page bodies into traversable DOM trees.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Parse parses an HTML page body into a goquery document.
func Parse(body string) (*goquery.Document, error) {
	return ParseReader(strings.NewReader(body))
}

// ParseReader parses HTML read from r into a goquery document.
func ParseReader(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}
