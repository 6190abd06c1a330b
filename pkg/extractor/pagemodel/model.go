package pagemodel

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/jmylchreest/rightscrape/pkg/extractor"
)

// model is a decoded PAGE_MODEL blob. It is parsed once and then queried
// along fixed key paths.
type model struct {
	root gjson.Result
}

// stepError describes which step of a key path failed.
type stepError struct {
	key    string // key that failed
	kind   error  // extractor.ErrMissingField or extractor.ErrTypeMismatch
	detail string
}

// decode parses raw as JSON. ok is false if raw is not valid JSON.
func decode(raw string) (model, bool) {
	if !gjson.Valid(raw) {
		return model{}, false
	}
	return model{root: gjson.Parse(raw)}, true
}

// lookup descends path one key at a time and returns the leaf string.
// Every step checks that the current value is an object and that the key
// exists; the leaf must be a JSON string.
func (m model) lookup(path []string) (string, *stepError) {
	cur := m.root
	parent := ""
	for i, key := range path {
		if !cur.IsObject() {
			return "", &stepError{
				key:    parentName(parent),
				kind:   extractor.ErrTypeMismatch,
				detail: "expected a JSON object, got " + typeName(cur),
			}
		}
		next, ok := cur.Map()[key]
		if !ok {
			return "", &stepError{
				key:    key,
				kind:   extractor.ErrMissingField,
				detail: "not found in " + parentName(parent),
			}
		}
		if i == len(path)-1 {
			if next.Type != gjson.String {
				return "", &stepError{
					key:    key,
					kind:   extractor.ErrTypeMismatch,
					detail: "expected a JSON string, got " + typeName(next),
				}
			}
			return next.Str, nil
		}
		cur = next
		parent = key
	}
	return "", &stepError{key: strings.Join(path, "."), kind: extractor.ErrMissingField, detail: "empty key path"}
}

func parentName(parent string) string {
	if parent == "" {
		return "page model"
	}
	return parent
}

func typeName(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	case gjson.JSON:
		if r.IsArray() {
			return "array"
		}
		return "object"
	default:
		return "unknown"
	}
}
