// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/paulmach/orb/planar"
)

// clipAreaTolerance is relative to the area of the bounds.
const clipAreaTolerance = 1e-9

// Clip intersects every region with bounds. A region whose intersection has
// several connected parts yields one region per part, all with the same
// PointIndex. Holes are ignored. Regions with a degenerate or
// self-intersecting ring, or outside bounds, are dropped.
//
// Regions already inside bounds are returned unchanged, so clipping the
// output of Clip again with the same bounds is a no-op. Invalid bounds fail
// with ErrInvalidInput.
func Clip(regions []Region, bounds r2.Rect) ([]Region, error) {
	if err := ValidateBounds(bounds); err != nil {
		return nil, err
	}

	corners := bounds.Vertices()
	window := polyclip.Polygon{toContour(corners[:])}
	box := orb.Bound{
		Min: orb.Point{bounds.X.Lo, bounds.Y.Lo},
		Max: orb.Point{bounds.X.Hi, bounds.Y.Hi},
	}
	tol := clipAreaTolerance * bounds.Size().X * bounds.Size().Y

	var out []Region
	for _, r := range regions {
		ring := dedupVertices(r.Ring)
		if !validRing(ring) {
			continue
		}

		rb := r2.RectFromPoints(ring...)
		if bounds.Contains(rb) {
			out = append(out, Region{Ring: ring, PointIndex: r.PointIndex})
			continue
		}
		if !bounds.Intersects(rb) {
			continue
		}

		for _, piece := range intersectRing(ring, window, box, bounds, tol) {
			out = append(out, Region{Ring: piece, PointIndex: r.PointIndex})
		}
	}
	return out, nil
}

// intersectRing returns the outer rings of the intersection of ring and
// bounds. polyclip-go can lose contours on edges that are axis-aligned up to
// rounding, so its result is checked against the area of a Sutherland-Hodgman
// clip of the ring and replaced by that clip when the two disagree.
func intersectRing(ring []r2.Point, window polyclip.Polygon, box orb.Bound, bounds r2.Rect, tol float64) [][]r2.Point {
	sh := clip.Ring(box, toOrbRing(ring))
	want := math.Abs(planar.Area(sh))
	if want == 0 {
		return nil
	}

	pieces, ok := constructIntersection(ring, window, bounds)
	if ok {
		var got float64
		for _, p := range pieces {
			got += math.Abs(planar.Area(toOrbRing(p)))
		}
		if math.Abs(got-want) <= tol {
			return pieces
		}
	}

	fallback := make([]r2.Point, 0, len(sh))
	for _, p := range sh {
		fallback = append(fallback, bounds.ClampPoint(r2.Point{X: p[0], Y: p[1]}))
	}
	fallback = dedupVertices(fallback)
	if len(fallback) < 3 {
		return nil
	}
	return [][]r2.Point{fallback}
}

func constructIntersection(ring []r2.Point, window polyclip.Polygon, bounds r2.Rect) (pieces [][]r2.Point, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			pieces, ok = nil, false
		}
	}()

	result := polyclip.Polygon{toContour(ring)}.Construct(polyclip.INTERSECTION, window)
	return outerRings(result, bounds), true
}

// outerRings converts the contours of an intersection result into rings
// snapped into bounds, skipping degenerate contours and holes.
func outerRings(result polyclip.Polygon, bounds r2.Rect) [][]r2.Point {
	type contour struct {
		ring []r2.Point
		orb  orb.Ring
		area float64
	}

	var contours []contour
	for _, c := range result {
		ring := make([]r2.Point, len(c))
		for i, p := range c {
			ring[i] = bounds.ClampPoint(r2.Point{X: p.X, Y: p.Y})
		}
		ring = dedupVertices(ring)
		if len(ring) < 3 {
			continue
		}
		closed := toOrbRing(ring)
		area := math.Abs(planar.Area(closed))
		if area == 0 {
			continue
		}
		contours = append(contours, contour{ring: ring, orb: closed, area: area})
	}

	var rings [][]r2.Point
	for i, c := range contours {
		center, _ := planar.CentroidArea(c.orb)
		hole := false
		for j, other := range contours {
			if i != j && other.area > c.area && planar.RingContains(other.orb, center) {
				hole = true
				break
			}
		}
		if !hole {
			rings = append(rings, c.ring)
		}
	}
	return rings
}

// validRing reports whether ring is a simple polygon with finite vertices
// and non-zero area.
func validRing(ring []r2.Point) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	for _, p := range ring {
		if !isFinite(p) {
			return false
		}
	}
	if planar.Area(toOrbRing(ring)) == 0 {
		return false
	}

	for i := range n {
		a, b := ring[i], ring[(i+1)%n]
		// Adjacent edges may only share their common vertex.
		c := ring[(i+2)%n]
		if b.Sub(a).Cross(c.Sub(b)) == 0 && b.Sub(a).Dot(c.Sub(b)) < 0 {
			return false
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				continue
			}
			if segmentsIntersect(a, b, ring[j], ring[(j+1)%n]) {
				return false
			}
		}
	}
	return true
}

func segmentsIntersect(p1, p2, q1, q2 r2.Point) bool {
	d1 := orientation(q1, q2, p1)
	d2 := orientation(q1, q2, p2)
	d3 := orientation(p1, p2, q1)
	d4 := orientation(p1, p2, q2)
	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}
	return (d1 == 0 && onSegment(q1, q2, p1)) ||
		(d2 == 0 && onSegment(q1, q2, p2)) ||
		(d3 == 0 && onSegment(p1, p2, q1)) ||
		(d4 == 0 && onSegment(p1, p2, q2))
}

func orientation(a, b, c r2.Point) float64 {
	cross := b.Sub(a).Cross(c.Sub(a))
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	}
	return 0
}

// onSegment reports whether p, known to be collinear with a and b, lies
// within their bounding box.
func onSegment(a, b, p r2.Point) bool {
	return r2.RectFromPoints(a, b).ContainsPoint(p)
}

// dedupVertices drops repeated consecutive vertices and a closing vertex
// equal to the first.
func dedupVertices(ring []r2.Point) []r2.Point {
	out := make([]r2.Point, 0, len(ring))
	for _, p := range ring {
		if len(out) > 0 && p == out[len(out)-1] {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1] == out[0] {
		out = out[:len(out)-1]
	}
	return out
}

func toContour(ring []r2.Point) polyclip.Contour {
	c := make(polyclip.Contour, len(ring))
	for i, p := range ring {
		c[i] = polyclip.Point{X: p.X, Y: p.Y}
	}
	return c
}
