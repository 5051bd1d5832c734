package processor

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/woozymasta/tofixlint/internal/config"
	"github.com/woozymasta/tofixlint/internal/tofix"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validJSON = `{"type":"FeatureCollection","features":[
	{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"tofix:category":"a"}},
	{"type":"Feature","geometry":{"type":"Point","coordinates":[3,4]},"properties":{"tofix:category":"b"}}
]}`

const invalidYAML = `
type: FeatureCollection
features:
  - type: Feature
    geometry: {type: Point, coordinates: [0, 0]}
    properties:
      number:foo: 1234
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	jsonPath := writeFile(t, "valid.geojson", validJSON)
	src, err := LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, jsonPath, src.Name)
	assert.Equal(t, validJSON, string(src.Data))

	yamlPath := writeFile(t, "invalid.yml", invalidYAML)
	src, err = LoadFile(yamlPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(src.Data), `{"type":"FeatureCollection"`))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_Inline(t *testing.T) {
	t.Parallel()

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(invalidYAML), &node))

	src, err := Load(nil, config.Collection{Name: "inline", Inline: &node})
	require.NoError(t, err)
	assert.Equal(t, "inline", src.Origin)
	assert.Equal(t,
		[]string{"Required key missing in properties: tofix:category"},
		tofix.Validate(src.Data))
}

func TestLoad_URL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tasks.geojson":
			_, _ = w.Write([]byte(validJSON))
		case "/tasks.yaml":
			_, _ = w.Write([]byte(invalidYAML))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	src, err := Load(srv.Client(), config.Collection{Name: "remote", URL: srv.URL + "/tasks.geojson"})
	require.NoError(t, err)
	assert.Equal(t, validJSON, string(src.Data))

	src, err = Load(srv.Client(), config.Collection{Name: "remote", URL: srv.URL + "/tasks.yaml?v=1"})
	require.NoError(t, err)
	assert.Contains(t, string(src.Data), `"number:foo":1234`)

	_, err = Load(srv.Client(), config.Collection{Name: "missing", URL: srv.URL + "/nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestLoad_NoSource(t *testing.T) {
	t.Parallel()

	_, err := Load(nil, config.Collection{Name: "empty"})
	assert.ErrorIs(t, err, ErrNoSource)
}

func TestToJSON(t *testing.T) {
	t.Parallel()

	out, err := ToJSON([]byte("  {\"a\":1}"), "")
	require.NoError(t, err)
	assert.Equal(t, "  {\"a\":1}", string(out))

	out, err = ToJSON([]byte("a: 1\n"), "")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(out))

	_, err = ToJSON([]byte("a,b"), "csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadReader(t *testing.T) {
	t.Parallel()

	src, err := LoadReader("stdin", strings.NewReader(invalidYAML), "yaml")
	require.NoError(t, err)
	assert.Equal(t, "stdin", src.Name)
	assert.Contains(t, string(src.Data), `"number:foo":1234`)
}

func TestValidateAll(t *testing.T) {
	t.Parallel()

	validPath := writeFile(t, "valid.json", validJSON)
	invalidPath := writeFile(t, "invalid.yaml", invalidYAML)

	cols := []config.Collection{
		{Name: "valid", Path: validPath},
		{Name: "invalid", Path: invalidPath},
		{Name: "missing", Path: filepath.Join(t.TempDir(), "missing.json")},
		{Name: "valid-again", Path: validPath},
	}

	reports := ValidateAll(nil, tofix.New(), cols, 3)
	require.Len(t, reports, 4)

	assert.Equal(t, "valid", reports[0].Name)
	assert.True(t, reports[0].Valid)
	assert.Equal(t, 2, reports[0].Features)
	assert.Equal(t, []float64{1, 2, 3, 4}, reports[0].Bounds)

	assert.False(t, reports[1].Valid)
	assert.Equal(t, []string{"Required key missing in properties: tofix:category"}, reports[1].Errors)

	assert.NotEmpty(t, reports[2].LoadError)
	assert.Equal(t, "valid-again", reports[3].Name)

	invalid, unloaded := Failed(reports)
	assert.Equal(t, 1, invalid)
	assert.Equal(t, 1, unloaded)
}

func TestWriteReports(t *testing.T) {
	t.Parallel()

	reports := []Report{
		{Name: "good", Valid: true, Features: 2},
		{Name: "bad", Errors: []string{"Keys must have a type prefix"}, Features: 1},
		{Name: "gone", LoadError: "status 404"},
	}

	tests := map[string][]string{
		"text": {
			"good: OK (2 features)",
			"bad: 1 errors",
			"  - Keys must have a type prefix",
			"gone: failed to load: status 404",
		},
		"json": {`"name": "good"`, `"valid": true`, `"load_error": "status 404"`},
		"yaml": {"- name: good", "valid: true", "load_error: status 404"},
	}

	for format, want := range tests {
		format, want := format, want
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			require.NoError(t, WriteReports(&buf, reports, format))
			for _, line := range want {
				assert.Contains(t, buf.String(), line)
			}
		})
	}

	assert.ErrorIs(t, WriteReports(&bytes.Buffer{}, reports, "xml"), ErrUnsupportedFormat)
}
