// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"

	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/golang/geo/r2"
)

const (
	defaultEps    = 1e-12
	defaultMargin = 10
)

type Options struct {
	Eps float64
	// Margin is the distance padding sites are placed outside the frame.
	Margin float64
	// DefaultBounds is used by Tessellate when no bounds are supplied.
	DefaultBounds r2.Rect
}

type Option func(*Options) error

func defaultOptions() Options {
	return Options{
		Eps:           defaultEps,
		Margin:        defaultMargin,
		DefaultBounds: DefaultBounds,
	}
}

func applyOptions(setters []Option) (Options, error) {
	opts := defaultOptions()
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

func WithEps(eps float64) Option {
	return func(o *Options) error {
		if !(eps > 0) {
			return fmt.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

func WithMargin(margin float64) Option {
	return func(o *Options) error {
		if !(margin > 0) || isInf(margin) {
			return fmt.Errorf("WithMargin: margin must be positive and finite, got %v", margin)
		}
		o.Margin = margin
		return nil
	}
}

func WithDefaultBounds(bounds r2.Rect) Option {
	return func(o *Options) error {
		if err := ValidateBounds(bounds); err != nil {
			return fmt.Errorf("WithDefaultBounds: %w", err)
		}
		o.DefaultBounds = bounds
		return nil
	}
}

type Diagram struct {
	Sites []r2.Point
	// Vertices holds one circumcenter per Delaunay triangle.
	Vertices []r2.Point

	// NOTE: Sort in CCW per Cell
	CellVertices []int
	// NOTE: Sort in CCW per Cell
	CellNeighbors []int
	CellOffsets   []int
	// CellBounded reports whether a cell is a closed polygon. Cells of sites
	// on the convex hull are unbounded and their vertex chain is open.
	CellBounded []bool
}

// NewDiagram computes the Voronoi diagram of sites as the dual of their
// Delaunay triangulation. Only the Eps option is used.
func NewDiagram(sites []r2.Point, setters ...Option) (*Diagram, error) {
	opts, err := applyOptions(setters)
	if err != nil {
		return nil, err
	}

	dt, err := r2delaunay.NewTriangulation(sites, r2delaunay.WithEps(opts.Eps))
	if err != nil {
		return nil, err
	}

	numTriangles := len(dt.Triangles)
	numNeighbors := len(dt.IncidentTriangleIndices)
	vd := &Diagram{
		Sites:         dt.Vertices,
		Vertices:      make([]r2.Point, numTriangles),
		CellVertices:  dt.IncidentTriangleIndices,
		CellNeighbors: make([]int, numNeighbors),
		CellOffsets:   dt.IncidentTriangleOffsets,
		CellBounded:   dt.Interior,
	}

	for i := range numTriangles {
		vd.Vertices[i] = triangleCircumcenter(dt.TriangleVertices(i))
	}

	for vIdx := range dt.Vertices {
		offset := dt.IncidentTriangleOffsets[vIdx]
		for i, tIdx := range dt.IncidentTriangles(vIdx) {
			vd.CellNeighbors[offset+i] = r2delaunay.NextVertex(dt.Triangles[tIdx], vIdx)
		}
	}

	return vd, nil
}

func (vd *Diagram) NumCells() int {
	return len(vd.Sites)
}

// Cell returns the cell of the site at index i.
func (vd *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= vd.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, vd.NumCells())
	}
	return Cell{idx: i, d: vd}, nil
}

func triangleCircumcenter(p1, p2, p3 r2.Point) r2.Point {
	v1 := p2.Sub(p1)
	v2 := p3.Sub(p1)

	d := 2 * v1.Cross(v2)
	l1 := v1.Dot(v1)
	l2 := v2.Dot(v2)

	return p1.Add(r2.Point{
		X: (v2.Y*l1 - v1.Y*l2) / d,
		Y: (v1.X*l2 - v2.X*l1) / d,
	})
}
