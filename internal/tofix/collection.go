// Package tofix validates GeoJSON FeatureCollections against the tofix
// property schema.
//
// Every property key has the form <type>:<suffix>. Values under each type
// must pass that type's format check, tofix:category is required on every
// feature and members of a tofix:group must use tofix:group-position
// consistently. Findings are returned as human readable messages; a nil
// result means the document is valid.
package tofix

import (
	"fmt"

	"github.com/woozymasta/tofixlint/internal/geo"
	"github.com/woozymasta/tofixlint/internal/hint"
)

// StructuralChecker reports structural problems of a raw GeoJSON document.
type StructuralChecker interface {
	Check(doc []byte) []string
}

// Option configures a Validator.
type Option func(*Validator)

// WithStructuralChecker replaces the default GeoJSON linter.
func WithStructuralChecker(c StructuralChecker) Option {
	return func(v *Validator) {
		v.structural = c
	}
}

// Validator validates FeatureCollection documents.
// It holds no per-call state and may be used from several goroutines.
type Validator struct {
	structural StructuralChecker
}

// New creates a Validator. By default structure is checked by a GeoJSON
// linter that only accepts a FeatureCollection at the top level.
func New(opts ...Option) *Validator {
	v := &Validator{
		structural: hint.New(hint.WithRootTypes("FeatureCollection")),
	}
	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Validate checks doc and returns every finding, or nil when it is valid.
// Structural problems are returned alone, no property checks run after them.
func (v *Validator) Validate(doc []byte) []string {
	if errs := v.structural.Check(doc); len(errs) > 0 {
		return errs
	}

	fc, err := geo.Decode(doc)
	if err != nil {
		return []string{fmt.Sprintf("Invalid FeatureCollection: %v", err)}
	}

	return v.ValidateCollection(fc)
}

// ValidateCollection runs the property and group checks on an already
// decoded collection.
func (v *Validator) ValidateCollection(fc *geo.FeatureCollection) []string {
	var errs []string
	for _, f := range fc.Features {
		errs = append(errs, ValidateProperties(f.Properties)...)
	}
	errs = append(errs, ValidateGroups(fc.Features)...)

	if len(errs) == 0 {
		return nil
	}

	return errs
}

var defaultValidator = New()

// Validate checks doc with the default Validator.
func Validate(doc []byte) []string {
	return defaultValidator.Validate(doc)
}
