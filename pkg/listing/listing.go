// Package listing defines the structured record produced for one property page.
package listing

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Result is one successfully extracted property listing.
type Result struct {
	URL              string  `json:"url" validate:"required"`
	Summary          string  `json:"summary" validate:"required"`
	HumanIdentifier  string  `json:"human_identifier" validate:"required"`
	Price            string  `json:"price" validate:"required"`
	FloorplanURL     *string `json:"floorplan_url"`
	LocationImageURL string  `json:"location_image_url" validate:"required"`
}

// Location returns the listing's source URL.
func (r *Result) Location() string {
	return r.URL
}

// HasFloorplan reports whether a floorplan asset was found.
func (r *Result) HasFloorplan() bool {
	return r.FloorplanURL != nil
}

// EmptyFieldError reports a mandatory field that was empty at construction.
type EmptyFieldError struct {
	Field string // JSON name of the field
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("%s is empty", e.Field)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names so errors match the emitted records.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// New builds a Result, trimming every text field. It fails with an
// *EmptyFieldError naming the first mandatory field left empty.
func New(url, summary, humanIdentifier, price string, floorplanURL *string, locationImageURL string) (*Result, error) {
	r := &Result{
		URL:              strings.TrimSpace(url),
		Summary:          strings.TrimSpace(summary),
		HumanIdentifier:  strings.TrimSpace(humanIdentifier),
		Price:            strings.TrimSpace(price),
		FloorplanURL:     floorplanURL,
		LocationImageURL: strings.TrimSpace(locationImageURL),
	}
	if err := Validate(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks that every mandatory field of r is non-empty.
func Validate(r *Result) error {
	if r == nil {
		return errors.New("nil result")
	}
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &EmptyFieldError{Field: verrs[0].Field()}
	}
	return err
}
