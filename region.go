// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
)

// Region is a polygon ring tagged with the index of the input point it
// belongs to. The ring is open: the first vertex is not repeated at the end.
// Several regions may share a PointIndex after clipping.
type Region struct {
	Ring       []r2.Point
	PointIndex int
}

// Bound returns the bounding rectangle of the ring.
func (r Region) Bound() r2.Rect {
	return r2.RectFromPoints(r.Ring...)
}

// Polygon returns the ring as a closed orb polygon.
func (r Region) Polygon() orb.Polygon {
	return orb.Polygon{toOrbRing(r.Ring)}
}

func toOrbRing(ring []r2.Point) orb.Ring {
	out := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		out = append(out, orb.Point{p.X, p.Y})
	}
	if len(ring) > 0 {
		out = append(out, out[0])
	}
	return out
}
