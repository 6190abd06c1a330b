package extractor

import (
	"errors"
	"fmt"
	"os"

	"github.com/andybalholm/cascadia"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Profile holds the markup constants of every strategy, so that site drift
// is a change in one place (or in one YAML file).
type Profile struct {
	PageModel PageModelSelectors `json:"page_model" yaml:"page_model" validate:"required"`
	DOM       DOMSelectors       `json:"dom" yaml:"dom" validate:"required"`
}

// PageModelSelectors configures the embedded-JSON hybrid strategy.
type PageModelSelectors struct {
	Summary   string `json:"summary" yaml:"summary" validate:"required"`
	Floorplan string `json:"floorplan" yaml:"floorplan" validate:"required"`
	Script    string `json:"script" yaml:"script" validate:"required"`

	// Marker is the token identifying the script holding the page model.
	Marker string `json:"marker" yaml:"marker" validate:"required"`
	// Separator splits the script assignment from the JSON value.
	Separator string `json:"separator" yaml:"separator" validate:"required"`

	PricePath            []string `json:"price_path" yaml:"price_path" validate:"required,min=1,dive,required"`
	HumanIdentifierPath  []string `json:"human_identifier_path" yaml:"human_identifier_path" validate:"required,min=1,dive,required"`
	LocationImageURLPath []string `json:"location_image_url_path" yaml:"location_image_url_path" validate:"required,min=1,dive,required"`
}

// DOMSelectors configures the DOM-only strategy.
type DOMSelectors struct {
	Summary         string `json:"summary" yaml:"summary" validate:"required"`
	HumanIdentifier string `json:"human_identifier" yaml:"human_identifier" validate:"required"`

	PriceContainer string `json:"price_container" yaml:"price_container" validate:"required"`
	Price          string `json:"price" yaml:"price" validate:"required"`

	FloorplanContainer string `json:"floorplan_container" yaml:"floorplan_container" validate:"required"`
	FloorplanAnchor    string `json:"floorplan_anchor" yaml:"floorplan_anchor" validate:"required"`

	MapContainer string `json:"map_container" yaml:"map_container" validate:"required"`
	MapImage     string `json:"map_image" yaml:"map_image" validate:"required"`
}

// DefaultProfile returns the selectors matching the site's current and
// legacy property-page markup.
func DefaultProfile() Profile {
	return Profile{
		PageModel: PageModelSelectors{
			Summary:              `[itemprop="streetAddress"]`,
			Floorplan:            `a[href*="floorplan?activePlan="]`,
			Script:               "script",
			Marker:               "PAGE_MODEL",
			Separator:            " = ",
			PricePath:            []string{"propertyData", "prices", "primaryPrice"},
			HumanIdentifierPath:  []string{"propertyData", "text", "pageTitle"},
			LocationImageURLPath: []string{"propertyData", "staticMapImgUrls", "staticMapImgUrlMobile"},
		},
		DOM: DOMSelectors{
			Summary:            ".fs-16",
			HumanIdentifier:    ".fs-22",
			PriceContainer:     "#propertyHeaderPrice",
			Price:              "strong",
			FloorplanContainer: "#floorplanTabs",
			FloorplanAnchor:    "a[href]",
			MapContainer:       ".js-ga-minimap",
			MapImage:           "img",
		},
	}
}

// LoadProfile reads a YAML profile from path. Keys missing from the file
// keep their DefaultProfile values.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- CLI tool reads user-specified selector file
	if err != nil {
		return Profile{}, fmt.Errorf("failed to read selector profile: %w", err)
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML profile over the defaults and validates it.
func ParseProfile(data []byte) (Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to parse selector profile: %w", err)
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate checks that every profile entry is set and that every CSS
// selector compiles.
func (p Profile) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid selector profile: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid selector profile: %w", err)
	}

	var sink cascadia.Selector
	targets := []SelectorTarget{
		{"page_model.summary", p.PageModel.Summary, &sink},
		{"page_model.floorplan", p.PageModel.Floorplan, &sink},
		{"page_model.script", p.PageModel.Script, &sink},
		{"dom.summary", p.DOM.Summary, &sink},
		{"dom.human_identifier", p.DOM.HumanIdentifier, &sink},
		{"dom.price_container", p.DOM.PriceContainer, &sink},
		{"dom.price", p.DOM.Price, &sink},
		{"dom.floorplan_container", p.DOM.FloorplanContainer, &sink},
		{"dom.floorplan_anchor", p.DOM.FloorplanAnchor, &sink},
		{"dom.map_container", p.DOM.MapContainer, &sink},
		{"dom.map_image", p.DOM.MapImage, &sink},
	}
	if err := CompileAll(targets...); err != nil {
		return fmt.Errorf("invalid selector profile: %w", err)
	}
	return nil
}

// SelectorTarget names a CSS selector and where its compiled form goes.
type SelectorTarget struct {
	Name     string
	Selector string
	Dst      *cascadia.Selector
}

// CompileAll compiles every target in order and stops at the first
// selector that is empty or does not compile.
func CompileAll(targets ...SelectorTarget) error {
	for _, t := range targets {
		if t.Selector == "" {
			return fmt.Errorf("%s: empty selector", t.Name)
		}
		m, err := cascadia.Compile(t.Selector)
		if err != nil {
			return fmt.Errorf("%s: %w", t.Name, err)
		}
		*t.Dst = m
	}
	return nil
}
