package hint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinter_Check(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc  string
		want []string
	}{
		"valid collection": {
			doc: `{"type":"FeatureCollection","features":[
				{"type":"Feature","geometry":{"type":"Point","coordinates":[0,0]},"properties":{}},
				{"type":"Feature","id":"a","geometry":null,"properties":null}
			]}`,
		},
		"valid geometries": {
			doc: `{"type":"FeatureCollection","features":[
				{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[0,0],[1,1]]}},
				{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
				{"type":"Feature","properties":{},"geometry":{"type":"MultiPoint","coordinates":[]}},
				{"type":"Feature","properties":{},"geometry":{"type":"GeometryCollection","geometries":[
					{"type":"Point","coordinates":[1,2,3]},
					{"type":"MultiLineString","coordinates":[[[0,0],[2,2]]]}
				]}}
			]}`,
		},
		"root not an object": {
			doc:  `[1,2]`,
			want: []string{"The root of a GeoJSON object must be an object."},
		},
		"invalid json": {
			doc: `{"type":`,
		},
		"unknown type": {
			doc:  `{"type":"NotFeatureCollection","notfeatures":[]}`,
			want: []string{"The type NotFeatureCollection is unknown"},
		},
		"wrong case": {
			doc:  `{"type":"featurecollection","features":[]}`,
			want: []string{"Expected FeatureCollection but got featurecollection (case sensitive)"},
		},
		"missing type": {
			doc:  `{"features":[]}`,
			want: []string{"The type property is required and was not found"},
		},
		"missing features": {
			doc:  `{"type":"FeatureCollection"}`,
			want: []string{`"features" member required`},
		},
		"features not an array": {
			doc:  `{"type":"FeatureCollection","features":{}}`,
			want: []string{`"features" member should be an array, but is an object instead`},
		},
		"feature not an object": {
			doc:  `{"type":"FeatureCollection","features":[1,2]}`,
			want: []string{"Every feature must be an object"},
		},
		"feature members": {
			doc: `{"type":"FeatureCollection","features":[{"type":"Feature","id":true}]}`,
			want: []string{
				`Feature "id" member must have a string or number value`,
				`"properties" member required`,
				`"geometry" member required`,
			},
		},
		"properties not an object": {
			doc:  `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":null,"properties":"x"}]}`,
			want: []string{`"properties" member should be object, but is an string instead`},
		},
		"feature type": {
			doc:  `{"type":"FeatureCollection","features":[{"type":"Point","geometry":null,"properties":{}}]}`,
			want: []string{"GeoJSON features must have a type=feature member"},
		},
		"short position": {
			doc:  `{"type":"Point","coordinates":[1]}`,
			want: []string{"position must have 2 or more elements"},
		},
		"non numeric position": {
			doc:  `{"type":"Point","coordinates":["a",1]}`,
			want: []string{"each element in a position must be a number"},
		},
		"short line": {
			doc:  `{"type":"LineString","coordinates":[[0,0]]}`,
			want: []string{"a line needs to have two or more coordinates to be valid"},
		},
		"open ring": {
			doc: `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1]]]}`,
			want: []string{
				"a LinearRing of coordinates needs to have four or more positions",
				"the first and last positions in a LinearRing of coordinates must be the same",
			},
		},
		"shallow polygon": {
			doc:  `{"type":"Polygon","coordinates":[[0,0]]}`,
			want: []string{"a number was found where a coordinate array should have been found: this needs to be nested more deeply"},
		},
		"bad bbox": {
			doc:  `{"type":"FeatureCollection","bbox":[0,0,1],"features":[]}`,
			want: []string{"bbox must contain 4 elements (for 2D) or 6 elements (for 3D)"},
		},
		"crs member": {
			doc:  `{"type":"FeatureCollection","crs":{},"features":[]}`,
			want: []string{"old-style crs member is not recommended"},
		},
	}

	l := New()
	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := l.Check([]byte(tc.doc))
			if name == "invalid json" {
				assert.Len(t, got, 1)
				assert.Contains(t, got[0], "Invalid JSON")
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLinter_RootTypes(t *testing.T) {
	t.Parallel()

	l := New(WithRootTypes("FeatureCollection"))

	assert.Equal(t,
		[]string{"Expected FeatureCollection but got Point"},
		l.Check([]byte(`{"type":"Point","coordinates":[0,0]}`)))
	assert.Equal(t,
		[]string{"The type Nope is unknown"},
		l.Check([]byte(`{"type":"Nope"}`)))
	assert.Nil(t, l.Check([]byte(`{"type":"FeatureCollection","features":[]}`)))
}

func TestLinter_CheckValue(t *testing.T) {
	t.Parallel()

	doc := map[string]any{
		"type": "Feature",
		"geometry": map[string]any{
			"type":        "Point",
			"coordinates": []any{1.0, 2.0},
		},
		"properties": map[string]any{},
	}

	assert.Nil(t, New().CheckValue(doc))
}
