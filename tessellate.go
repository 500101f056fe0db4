// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

const (
	// paddingSkew grows the margin of successive padding sites so that the
	// four of them are never cocircular.
	paddingSkew = 1e-3
	// vertexMergeTolerance is relative to the size of the padded frame.
	vertexMergeTolerance = 1e-9
)

// Tessellate returns one region per point whose Voronoi cell is bounded, in
// input order. Points and bounds must use the same axis convention.
//
// A nil bounds selects Options.DefaultBounds. Four padding sites are placed
// outside the union of bounds and the points, so every input point gets a
// closed cell. Cells are not clipped; pass the result to Clip.
//
// Points closer together than roughly sqrt(Eps) times the extent of the
// padded frame are treated as duplicates: only one of them gets a cell.
// With the default Eps and margin over a few degrees that is about 1e-5.
// Lower Eps with WithEps to separate tighter clusters.
//
// Fewer than two points yield an empty result. Malformed points or bounds
// fail with ErrInvalidInput and an unbuildable diagram with ErrComputation.
func Tessellate(points []r2.Point, bounds *r2.Rect, setters ...Option) ([]Region, error) {
	opts, err := applyOptions(setters)
	if err != nil {
		return nil, err
	}

	b := opts.DefaultBounds
	if bounds != nil {
		b = *bounds
	}
	if err := ValidateBounds(b); err != nil {
		return nil, err
	}
	for i, p := range points {
		if !isFinite(p) {
			return nil, fmt.Errorf("%w: point %d is not finite: %v", ErrInvalidInput, i, p)
		}
	}

	if len(points) < 2 {
		return nil, nil
	}
	if !hasDistinct(points) {
		return nil, fmt.Errorf("%w: all %d points are coincident", ErrComputation, len(points))
	}

	frame := b.Union(r2.RectFromPoints(points...))
	sites := make([]r2.Point, 0, len(points)+4)
	sites = append(sites, points...)
	sites = append(sites, paddingSites(frame, opts.Margin)...)

	vd, err := NewDiagram(sites, WithEps(opts.Eps))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrComputation, err)
	}

	size := frame.Size()
	tol := vertexMergeTolerance * (math.Max(size.X, size.Y) + 2*opts.Margin)

	var regions []Region
	for i := range points {
		cell, err := vd.Cell(i)
		if err != nil {
			return nil, err
		}
		if !cell.Bounded() {
			continue
		}
		ring := mergeVertices(cell.Ring(), tol)
		if len(ring) < 3 {
			continue
		}
		regions = append(regions, Region{Ring: ring, PointIndex: i})
	}
	return regions, nil
}

// paddingSites returns one site beyond each corner of frame, counter-clockwise
// from the lower left.
func paddingSites(frame r2.Rect, margin float64) []r2.Point {
	dirs := [4]r2.Point{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	sites := make([]r2.Point, 4)
	for k, v := range frame.Vertices() {
		offset := margin * (1 + float64(k)*paddingSkew)
		sites[k] = v.Add(dirs[k].Mul(offset))
	}
	return sites
}

func hasDistinct(points []r2.Point) bool {
	for _, p := range points[1:] {
		if p != points[0] {
			return true
		}
	}
	return false
}

// mergeVertices drops vertices closer than tol to their predecessor,
// including the wrap-around from the last vertex to the first.
func mergeVertices(ring []r2.Point, tol float64) []r2.Point {
	out := make([]r2.Point, 0, len(ring))
	for _, p := range ring {
		if len(out) > 0 && p.Sub(out[len(out)-1]).Norm() <= tol {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1].Sub(out[0]).Norm() <= tol {
		out = out[:len(out)-1]
	}
	return out
}
