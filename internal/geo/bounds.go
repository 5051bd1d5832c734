package geo

import (
	"github.com/paulmach/orb"
)

// Bounds returns the bounding box covering every feature geometry.
// It reports false when no feature carries a geometry.
func Bounds(fc *FeatureCollection) (orb.Bound, bool) {
	var (
		bound orb.Bound
		found bool
	)

	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		g := f.Geometry.Geometry()
		if g == nil {
			continue
		}

		if !found {
			bound = g.Bound()
			found = true
			continue
		}
		bound = bound.Union(g.Bound())
	}

	return bound, found
}
