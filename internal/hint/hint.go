// Package hint lints the structure of GeoJSON documents.
//
// It reports problems as plain messages and never fails on malformed input:
// a document that cannot be parsed yields a single message describing why.
// Only the shape of the document is inspected, property values are left to
// callers.
package hint

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// geojsonTypes lists every type a GeoJSON object may declare.
var geojsonTypes = []string{
	"Point",
	"MultiPoint",
	"LineString",
	"MultiLineString",
	"Polygon",
	"MultiPolygon",
	"GeometryCollection",
	"Feature",
	"FeatureCollection",
}

// Option configures a Linter.
type Option func(*Linter)

// WithRootTypes restricts the types accepted for the top level object.
func WithRootTypes(types ...string) Option {
	return func(l *Linter) {
		l.rootTypes = append(l.rootTypes, types...)
	}
}

// Linter checks GeoJSON structure. It holds no state between calls.
type Linter struct {
	rootTypes []string
}

// New creates a Linter.
func New(opts ...Option) *Linter {
	l := &Linter{}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Check parses data and lints the resulting document.
func (l *Linter) Check(data []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return []string{fmt.Sprintf("Invalid JSON: %v", err)}
	}

	return l.CheckValue(doc)
}

// CheckValue lints an already decoded document.
// Numbers may be either float64 or json.Number.
func (l *Linter) CheckValue(doc any) []string {
	w := &walker{}

	obj, ok := doc.(map[string]any)
	if !ok {
		w.add("The root of a GeoJSON object must be an object.")
		return w.errs
	}

	if typ, ok := obj["type"].(string); ok && len(l.rootTypes) > 0 && isKnownType(typ) && !contains(l.rootTypes, typ) {
		w.add("Expected %s but got %s", strings.Join(l.rootTypes, " or "), typ)
		return w.errs
	}

	w.root(obj)
	return w.errs
}

type walker struct {
	errs []string
}

func (w *walker) add(format string, args ...any) {
	w.errs = append(w.errs, fmt.Sprintf(format, args...))
}

// root dispatches on the declared type of a GeoJSON object.
func (w *walker) root(obj map[string]any) {
	typ, _ := obj["type"].(string)
	if typ == "" {
		w.add("The type property is required and was not found")
		return
	}

	if !isKnownType(typ) {
		for _, known := range geojsonTypes {
			if strings.EqualFold(known, typ) {
				w.add("Expected %s but got %s (case sensitive)", known, typ)
				return
			}
		}
		w.add("The type %s is unknown", typ)
		return
	}

	switch typ {
	case "FeatureCollection":
		w.featureCollection(obj)
	case "Feature":
		w.feature(obj)
	case "GeometryCollection":
		w.geometryCollection(obj)
	case "Point":
		w.point(obj)
	case "MultiPoint":
		w.geometry(obj, "", 1)
	case "LineString":
		w.geometry(obj, "Line", 1)
	case "MultiLineString":
		w.geometry(obj, "Line", 2)
	case "Polygon":
		w.geometry(obj, "LinearRing", 2)
	case "MultiPolygon":
		w.geometry(obj, "LinearRing", 3)
	}
}

func (w *walker) featureCollection(fc map[string]any) {
	w.crs(fc)
	w.bbox(fc)

	if _, ok := fc["properties"]; ok {
		w.add(`FeatureCollection object cannot contain a "properties" member`)
	}
	if _, ok := fc["coordinates"]; ok {
		w.add(`FeatureCollection object cannot contain a "coordinates" member`)
	}

	if !w.requiredProperty(fc, "features", "array") {
		return
	}

	features := fc["features"].([]any)
	reported := false
	for _, item := range features {
		f, ok := item.(map[string]any)
		if !ok {
			if !reported {
				w.add("Every feature must be an object")
				reported = true
			}
			continue
		}
		w.feature(f)
	}
}

func (w *walker) feature(f map[string]any) {
	w.crs(f)
	w.bbox(f)

	if id, ok := f["id"]; ok {
		switch id.(type) {
		case string, json.Number, float64:
		default:
			w.add(`Feature "id" member must have a string or number value`)
		}
	}
	if _, ok := f["features"]; ok {
		w.add(`Feature object cannot contain a "features" member`)
	}
	if _, ok := f["coordinates"]; ok {
		w.add(`Feature object cannot contain a "coordinates" member`)
	}
	if f["type"] != "Feature" {
		w.add("GeoJSON features must have a type=feature member")
	}

	w.requiredProperty(f, "properties", "object")
	if w.requiredProperty(f, "geometry", "object") {
		if g, ok := f["geometry"].(map[string]any); ok {
			w.root(g)
		}
	}
}

func (w *walker) geometryCollection(gc map[string]any) {
	w.crs(gc)
	w.bbox(gc)

	if !w.requiredProperty(gc, "geometries", "array") {
		return
	}

	geometries := gc["geometries"].([]any)
	if len(geometries) == 1 {
		w.add("GeometryCollection with a single geometry should be avoided in favor of single part geometry")
	}
	for _, item := range geometries {
		g, ok := item.(map[string]any)
		if !ok {
			w.add("The geometries array in a GeometryCollection must contain only geometry objects")
			return
		}
		w.root(g)
	}
}

func (w *walker) point(p map[string]any) {
	w.crs(p)
	w.bbox(p)

	if w.requiredProperty(p, "coordinates", "array") {
		w.position(p["coordinates"])
	}
}

func (w *walker) geometry(g map[string]any, kind string, depth int) {
	w.crs(g)
	w.bbox(g)

	if w.requiredProperty(g, "coordinates", "array") {
		w.positionArray(g["coordinates"], kind, depth)
	}
}

// requiredProperty reports whether obj carries member name of the given
// JSON type. null passes for "object".
func (w *walker) requiredProperty(obj map[string]any, name, typ string) bool {
	v, ok := obj[name]
	if !ok {
		w.add(`"%s" member required`, name)
		return false
	}

	switch typ {
	case "array":
		if _, ok := v.([]any); !ok {
			w.add(`"%s" member should be an array, but is an %s instead`, name, typeOf(v))
			return false
		}
	case "object":
		if v == nil {
			return true
		}
		if _, ok := v.(map[string]any); !ok {
			w.add(`"%s" member should be object, but is an %s instead`, name, typeOf(v))
			return false
		}
	default:
		if typeOf(v) != typ {
			w.add(`"%s" member should be %s, but is an %s instead`, name, typ, typeOf(v))
			return false
		}
	}

	return true
}

func (w *walker) crs(obj map[string]any) {
	if _, ok := obj["crs"]; ok {
		w.add("old-style crs member is not recommended")
	}
}

func (w *walker) bbox(obj map[string]any) {
	v, ok := obj["bbox"]
	if !ok {
		return
	}

	box, ok := v.([]any)
	if !ok {
		w.add("bbox member must be an array of numbers, but is a %s", typeOf(v))
		return
	}
	if !everyNumber(box) {
		w.add("each element in a bbox member must be a number")
	}
	if len(box) != 4 && len(box) != 6 {
		w.add("bbox must contain 4 elements (for 2D) or 6 elements (for 3D)")
	}
}

func (w *walker) position(v any) {
	pos, ok := v.([]any)
	if !ok {
		w.add("position should be an array, is a %s instead", typeOf(v))
		return
	}

	if len(pos) < 2 {
		w.add("position must have 2 or more elements")
	}
	if len(pos) > 3 {
		w.add("position should not have more than 3 elements")
	}
	if !everyNumber(pos) {
		w.add("each element in a position must be a number")
	}
}

// positionArray walks nested coordinate arrays down to positions.
// kind is "Line", "LinearRing" or empty and applies at depth 1.
func (w *walker) positionArray(v any, kind string, depth int) {
	if depth == 0 {
		w.position(v)
		return
	}

	coords, ok := v.([]any)
	if !ok {
		w.add("a number was found where a coordinate array should have been found: this needs to be nested more deeply")
		return
	}

	if depth == 1 && kind != "" {
		switch kind {
		case "LinearRing":
			if len(coords) > 0 {
				if _, ok := coords[len(coords)-1].([]any); !ok {
					w.add("a number was found where a coordinate array should have been found: this needs to be nested more deeply")
					return
				}
			}
			if len(coords) < 4 {
				w.add("a LinearRing of coordinates needs to have four or more positions")
			}
			if len(coords) > 0 && !samePosition(coords[0], coords[len(coords)-1]) {
				w.add("the first and last positions in a LinearRing of coordinates must be the same")
			}
		case "Line":
			if len(coords) < 2 {
				w.add("a line needs to have two or more coordinates to be valid")
			}
		}
	}

	for _, c := range coords {
		w.positionArray(c, kind, depth-1)
	}
}

func samePosition(a, b any) bool {
	pa, ok := a.([]any)
	if !ok {
		return false
	}
	pb, ok := b.([]any)
	if !ok || len(pa) != len(pb) {
		return false
	}
	for i := range pa {
		if fmt.Sprint(pa[i]) != fmt.Sprint(pb[i]) {
			return false
		}
	}

	return true
}

func everyNumber(items []any) bool {
	for _, item := range items {
		if typeOf(item) != "number" {
			return false
		}
	}

	return true
}

// typeOf names a decoded value the way JavaScript's typeof does.
func typeOf(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return "object"
	}
}

func isKnownType(typ string) bool {
	return contains(geojsonTypes, typ)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}
