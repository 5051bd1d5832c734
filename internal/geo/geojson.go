// Package geo handles geographic data structures and their decoding.
package geo

import (
	"github.com/goccy/go-json"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
// Geometry is kept opaque, only the properties are inspected by validation.
type Feature struct {
	ID         any               `json:"id,omitempty" yaml:"id,omitempty"`
	Geometry   *geojson.Geometry `json:"geometry" yaml:"-"`
	Type       string            `json:"type" yaml:"type"`
	Properties Properties        `json:"properties" yaml:"properties"`
}

// Decode parses a GeoJSON FeatureCollection keeping property key order.
func Decode(data []byte) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, err
	}

	return &fc, nil
}
