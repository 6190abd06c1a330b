package extractor

import (
	"errors"
	"fmt"
)

// Error kinds for distinguishing extraction failures.
// Check with errors.Is(err, extractor.ErrMissingField).
var (
	// ErrMissingField indicates a required node, attribute or JSON key was absent.
	ErrMissingField = errors.New("missing field")
	// ErrTypeMismatch indicates a JSON value existed but had the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrMalformedAnchor indicates an href lacked the delimiter needed to build a URL.
	ErrMalformedAnchor = errors.New("malformed anchor")
	// ErrParse indicates the embedded page model could not be decoded.
	ErrParse = errors.New("page model parse error")
)

// FieldError identifies the field, page and strategy of an extraction failure.
// Use errors.As to inspect it; Unwrap yields one of the Err* kinds above.
type FieldError struct {
	URL      string
	Strategy string
	Field    string // field, selector or JSON key that failed
	Detail   string // optional human-readable context
	Err      error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s: %s: %s", e.Strategy, e.Err, e.Field)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg + " for " + e.URL
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Missing returns a FieldError of kind ErrMissingField.
func Missing(strategy, url, field, detail string) *FieldError {
	return &FieldError{URL: url, Strategy: strategy, Field: field, Detail: detail, Err: ErrMissingField}
}

// Mismatch returns a FieldError of kind ErrTypeMismatch.
func Mismatch(strategy, url, field, detail string) *FieldError {
	return &FieldError{URL: url, Strategy: strategy, Field: field, Detail: detail, Err: ErrTypeMismatch}
}

// Malformed returns a FieldError of kind ErrMalformedAnchor.
func Malformed(strategy, url, field, detail string) *FieldError {
	return &FieldError{URL: url, Strategy: strategy, Field: field, Detail: detail, Err: ErrMalformedAnchor}
}

// Unparsable returns a FieldError of kind ErrParse.
func Unparsable(strategy, url, field, detail string) *FieldError {
	return &FieldError{URL: url, Strategy: strategy, Field: field, Detail: detail, Err: ErrParse}
}
