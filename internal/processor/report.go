package processor

import (
	"fmt"
	"io"
	"time"

	"github.com/woozymasta/tofixlint/internal/geo"
	"github.com/woozymasta/tofixlint/internal/tofix"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Report is the validation outcome of one source.
type Report struct {
	Name      string    `json:"name" yaml:"name"`
	Origin    string    `json:"origin,omitempty" yaml:"origin,omitempty"`
	LoadError string    `json:"load_error,omitempty" yaml:"load_error,omitempty"`
	Errors    []string  `json:"errors,omitempty" yaml:"errors,omitempty"`
	Bounds    []float64 `json:"bbox,omitempty" yaml:"bbox,omitempty,flow"` // [minLon, minLat, maxLon, maxLat]
	Features  int       `json:"features" yaml:"features"`
	Valid     bool      `json:"valid" yaml:"valid"`
}

// Validate runs v on a loaded source and summarizes the result.
func Validate(v *tofix.Validator, src Source) Report {
	start := time.Now()

	r := Report{Name: src.Name, Origin: src.Origin}
	r.Errors = v.Validate(src.Data)
	r.Valid = r.Errors == nil

	// summary only, structural problems are already part of Errors
	if fc, err := geo.Decode(src.Data); err == nil {
		r.Features = len(fc.Features)
		if b, ok := geo.Bounds(fc); ok {
			r.Bounds = []float64{b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y()}
		}
	}

	if r.Valid {
		log.Info().
			Str("collection", r.Name).
			Int("features", r.Features).
			Dur("duration", time.Since(start)).
			Msg("Collection is valid")
	} else {
		log.Warn().
			Str("collection", r.Name).
			Int("features", r.Features).
			Int("errors", len(r.Errors)).
			Dur("duration", time.Since(start)).
			Msg("Collection has validation errors")
	}

	return r
}

// Failed counts reports with validation errors and reports that failed to load.
func Failed(reports []Report) (invalid, unloaded int) {
	for _, r := range reports {
		switch {
		case r.LoadError != "":
			unloaded++
		case !r.Valid:
			invalid++
		}
	}

	return invalid, unloaded
}

// WriteReports renders reports as text, json or yaml.
func WriteReports(w io.Writer, reports []Report, format string) error {
	switch format {
	case "", "text":
		return writeText(w, reports)

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func writeText(w io.Writer, reports []Report) error {
	for _, r := range reports {
		var err error
		switch {
		case r.LoadError != "":
			_, err = fmt.Fprintf(w, "%s: failed to load: %s\n", r.Name, r.LoadError)
		case r.Valid:
			_, err = fmt.Fprintf(w, "%s: OK (%d features)\n", r.Name, r.Features)
		default:
			_, err = fmt.Fprintf(w, "%s: %d errors\n", r.Name, len(r.Errors))
			for _, msg := range r.Errors {
				if err != nil {
					break
				}
				_, err = fmt.Fprintf(w, "  - %s\n", msg)
			}
		}
		if err != nil {
			return err
		}
	}

	return nil
}
