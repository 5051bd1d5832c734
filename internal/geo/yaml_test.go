package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLToJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		yaml string
		want string
	}{
		"keeps key order": {
			yaml: "b: 1\na: two\nc: true\n",
			want: `{"b":1,"a":"two","c":true}`,
		},
		"sequences and null": {
			yaml: "items:\n  - 1\n  - ~\n  - [x, y]\n",
			want: `{"items":[1,null,["x","y"]]}`,
		},
		"timestamps keep their text": {
			yaml: "date:timestamp: 2015-01-17T18:23:00Z\n",
			want: `{"date:timestamp":"2015-01-17T18:23:00Z"}`,
		},
		"aliases": {
			yaml: "base: &b {x: 1}\ncopy: *b\n",
			want: `{"base":{"x":1},"copy":{"x":1}}`,
		},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := YAMLToJSON([]byte(tc.yaml))
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(got))
			assert.Equal(t, tc.want, string(got))
		})
	}
}

func TestYAMLToJSON_Errors(t *testing.T) {
	t.Parallel()

	_, err := YAMLToJSON([]byte(""))
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = YAMLToJSON([]byte("a: [1, 2"))
	assert.Error(t, err)
}

func TestYAMLToJSON_FeatureCollection(t *testing.T) {
	t.Parallel()

	data, err := YAMLToJSON([]byte(`
type: FeatureCollection
features:
  - type: Feature
    geometry: {type: Point, coordinates: [1.5, 2]}
    properties:
      tofix:category: Trees
      number:height: 12
`))
	require.NoError(t, err)

	fc, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, []string{"tofix:category", "number:height"}, fc.Features[0].Properties.Keys())
}
