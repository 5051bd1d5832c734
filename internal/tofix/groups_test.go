package tofix

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/woozymasta/tofixlint/internal/geo"
)

func features(list ...geo.Properties) []geo.Feature {
	out := make([]geo.Feature, 0, len(list))
	for _, p := range list {
		out = append(out, geo.Feature{Type: "Feature", Properties: p})
	}

	return out
}

func TestValidateGroups(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		features []geo.Feature
		want     []string
	}{
		"no groups": {
			features: features(props("tofix:category", "a"), props("tofix:category", "b")),
		},
		"group without positions": {
			features: features(
				props("tofix:group", "X"),
				props("tofix:group", "X"),
			),
		},
		"group fully positioned": {
			features: features(
				props("tofix:group", "X", "tofix:group-position", 0),
				props("tofix:group", "X", "tofix:group-position", 1),
			),
		},
		"single error per group": {
			features: features(
				props("tofix:group", "X"),
				props("tofix:group", "X", "tofix:group-position", 1),
				props("tofix:group", "X"),
			),
			want: []string{"Member of group X does not have group-position property set"},
		},
		"ungrouped features are ignored": {
			features: features(
				props("tofix:group", "X", "tofix:group-position", 0),
				props("tofix:category", "loose"),
			),
		},
		"groups reported in order of appearance": {
			features: features(
				props("tofix:group", "B", "tofix:group-position", 0),
				props("tofix:group", "A", "tofix:group-position", 0),
				props("tofix:group", "A"),
				props("tofix:group", "B"),
			),
			want: []string{
				"Member of group B does not have group-position property set",
				"Member of group A does not have group-position property set",
			},
		},
		"number and string group values are distinct": {
			features: features(
				props("tofix:group", 1, "tofix:group-position", 0),
				props("tofix:group", "1"),
			),
		},
	}

	for name, tc := range tests {
		name, tc := name, tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, ValidateGroups(tc.features))
		})
	}
}
