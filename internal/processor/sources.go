// Package processor loads FeatureCollection sources and validates them.
package processor

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/tofixlint/internal/config"
	"github.com/woozymasta/tofixlint/internal/geo"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNoSource is returned for a collection without path, url or inline data.
	ErrNoSource = errors.New("collection has no source")
	// ErrUnsupportedFormat is returned for formats other than json and yaml.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// maxDocumentSize caps the size of a downloaded document.
const maxDocumentSize = 256 << 20

// Source is a loaded document ready for validation, always as JSON.
type Source struct {
	Name   string
	Origin string
	Data   []byte
}

// Load reads the document of a configured collection.
// It supports inline data from config, local files and HTTP URLs.
func Load(client *http.Client, c config.Collection) (Source, error) {
	src := Source{Name: c.Name}

	var (
		data   []byte
		format = c.Format
		err    error
	)

	switch {
	case c.Inline != nil:
		log.Debug().
			Str("collection", c.Name).
			Msg("Using inline collection data from config")
		src.Origin = "inline"
		data, err = geo.NodeToJSON(c.Inline)
		if err != nil {
			return src, fmt.Errorf("inline data: %w", err)
		}
		src.Data = data
		return src, nil

	case c.Path != "":
		src.Origin = c.Path
		data, err = os.ReadFile(c.Path)
		if format == "" {
			format = formatFromName(c.Path)
		}

	case c.URL != "":
		log.Info().
			Str("collection", c.Name).
			Str("source", c.URL).
			Msg("Downloading collection")
		src.Origin = c.URL
		data, err = fetch(client, c.URL)
		if format == "" {
			format = formatFromName(c.URL)
		}

	default:
		return src, ErrNoSource
	}

	if err != nil {
		return src, err
	}

	src.Data, err = ToJSON(data, format)
	return src, err
}

// LoadReader reads a document from r. An empty format is guessed from the
// content.
func LoadReader(name string, r io.Reader, format string) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Source{Name: name}, err
	}

	out, err := ToJSON(data, format)
	return Source{Name: name, Origin: name, Data: out}, err
}

// LoadFile reads a document from disk, the format follows the extension.
func LoadFile(path string) (Source, error) {
	return Load(nil, config.Collection{Name: path, Path: path})
}

// ToJSON converts a json or yaml document into JSON. An empty format is
// guessed from the first non-space byte.
func ToJSON(data []byte, format string) ([]byte, error) {
	if format == "" {
		format = sniffFormat(data)
	}

	switch format {
	case "json":
		return data, nil
	case "yaml":
		return geo.YAMLToJSON(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func formatFromName(name string) string {
	if i := strings.IndexAny(name, "?#"); i >= 0 && strings.Contains(name, "://") {
		name = name[:i]
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json", ".geojson":
		return "json"
	default:
		return ""
	}
}

// sniffFormat treats documents starting with an object or array as JSON.
func sniffFormat(data []byte) string {
	trimmed := bytes.TrimLeft(data, " \t\r\n\ufeff")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return "json"
	}

	return "yaml"
}

// fetch downloads a document over HTTP.
func fetch(client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	// Explicitly ignore close error as it's a read-only operation
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("document exceeds %d bytes", maxDocumentSize)
	}

	return data, nil
}
