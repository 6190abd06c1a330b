// Package output handles emitting accepted records.
package output

import (
	"errors"
	"fmt"
	"io"
)

// Format represents an emit mode.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatURLs  Format = "urls"
)

// ErrEmitMode is returned when neither or both emit modes are selected.
var ErrEmitMode = errors.New("exactly one of --json or --urls must be set")

// Writer handles output serialization. Every Write is flushed before it
// returns, so downstream consumers can stream results.
type Writer interface {
	// Write outputs a single record.
	Write(data any) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// Locator is implemented by records that know the URL they came from.
type Locator interface {
	Location() string
}

// FormatFromFlags maps the mutually exclusive emit flags to a Format.
func FormatFromFlags(jsonLines, urls bool) (Format, error) {
	switch {
	case jsonLines && !urls:
		return FormatJSONL, nil
	case urls && !jsonLines:
		return FormatURLs, nil
	case jsonLines && urls:
		return "", fmt.Errorf("%w: both were given", ErrEmitMode)
	default:
		return "", fmt.Errorf("%w: neither was given", ErrEmitMode)
	}
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format) (Writer, error) {
	switch format {
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatURLs:
		return NewURLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
