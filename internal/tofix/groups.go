package tofix

import (
	"github.com/woozymasta/tofixlint/internal/geo"
)

// groupKey identifies a group by the kind and rendering of its tofix:group
// value, so that 1 and "1" stay distinct groups.
type groupKey struct {
	value string
	kind  geo.Kind
}

// ValidateGroups checks group-position consistency across features.
// When any member of a group sets tofix:group-position, every member must.
// At most one error is reported per group, for its first member missing the
// key. Groups are reported in order of first appearance.
func ValidateGroups(features []geo.Feature) []string {
	index := make(map[groupKey][]int)
	var order []groupKey

	for i, f := range features {
		v, ok := f.Properties.Get(GroupKey)
		if !ok {
			continue
		}

		key := groupKey{kind: v.Kind(), value: v.String()}
		if _, seen := index[key]; !seen {
			order = append(order, key)
		}
		index[key] = append(index[key], i)
	}

	var errs []string
	for _, key := range order {
		members := index[key]

		positioned := false
		for _, i := range members {
			if features[i].Properties.Has(GroupPositionKey) {
				positioned = true
				break
			}
		}
		if !positioned {
			continue
		}

		for _, i := range members {
			if !features[i].Properties.Has(GroupPositionKey) {
				errs = append(errs, "Member of group "+key.value+" does not have group-position property set")
				break
			}
		}
	}

	return errs
}
