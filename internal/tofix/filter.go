package tofix

import (
	"strings"

	"github.com/woozymasta/tofixlint/internal/geo"
)

// FilterByPrefix returns the entries whose key type segment equals prefix.
// The segment is everything before the first colon. Order is preserved and
// props is not modified.
func FilterByPrefix(props geo.Properties, prefix string) geo.Properties {
	var filtered geo.Properties
	for _, prop := range props {
		if keyType(prop.Key) == prefix {
			filtered = append(filtered, prop)
		}
	}

	return filtered
}

func keyType(key string) string {
	typ, _, _ := strings.Cut(key, ":")
	return typ
}
