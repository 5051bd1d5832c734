package tofix

import (
	"fmt"
	"slices"
	"strings"

	"github.com/woozymasta/tofixlint/internal/geo"
)

// Keys of the tofix namespace.
const (
	CategoryKey      = "tofix:category"
	HasDirectionKey  = "tofix:has-direction"
	GroupKey         = "tofix:group"
	GroupPositionKey = "tofix:group-position"
)

// Types lists every recognized key type.
var Types = []string{
	"tofix",
	"string",
	"number",
	"date",
	"link",
	"audio",
	"image",
}

// TofixSuffixes lists every suffix allowed under the tofix type.
var TofixSuffixes = []string{
	"category",
	"has-direction",
	"group",
	"group-position",
}

var requiredKeys = []string{CategoryKey}

// ValidateProperties checks the properties of a single feature.
// Every rule runs and all findings are returned, nil when there are none.
func ValidateProperties(props geo.Properties) []string {
	var errs []string

	for _, key := range requiredKeys {
		if !props.Has(key) {
			errs = append(errs, "Required key missing in properties: "+key)
		}
	}

	for _, prop := range props {
		if msg := validateKey(prop.Key); msg != "" {
			errs = append(errs, msg)
		}
	}

	errs = append(errs, validateTofix(props)...)

	for _, rule := range valueRules {
		for _, prop := range FilterByPrefix(props, rule.prefix) {
			if !rule.check(prop.Value) {
				errs = append(errs, fmt.Sprintf("%s is an invalid value for type %s", prop.Value, rule.prefix))
			}
		}
	}

	return errs
}

// validateKey returns the key format violation for key, if any.
func validateKey(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "Keys must have a type prefix"
	}
	if !slices.Contains(Types, parts[0]) {
		return "Key prefixed with unknown type " + parts[0]
	}

	return ""
}

func validateTofix(props geo.Properties) []string {
	var errs []string

	for _, prop := range FilterByPrefix(props, "tofix") {
		parts := strings.Split(prop.Key, ":")
		if len(parts) < 2 {
			// reported by the key format rule
			continue
		}
		if !slices.Contains(TofixSuffixes, parts[1]) {
			errs = append(errs, parts[1]+" is not a valid suffix for the tofix prefix")
		}
	}

	if v, ok := props.Get(HasDirectionKey); ok && !IsBoolean(v) {
		errs = append(errs, "The value for "+HasDirectionKey+" must be a boolean")
	}
	if v, ok := props.Get(GroupPositionKey); ok && !IsNumber(v) {
		errs = append(errs, "The value for "+GroupPositionKey+" must be a number")
	}

	return errs
}
