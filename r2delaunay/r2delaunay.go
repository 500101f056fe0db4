// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2delaunay computes planar Delaunay triangulations. The vertices are
// lifted onto the paraboloid z = x² + y² and the lower faces of the resulting
// convex hull are projected back onto the plane.
package r2delaunay

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/markus-wa/quickhull-go/v2"
)

const (
	defaultEps = 1e-12
)

type Triangulation struct {
	Vertices  []r2.Point
	Triangles [][3]int
	// NOTE: Sort in CCW per vertex, starting at the hull edge for vertices on
	// the convex hull.
	IncidentTriangleIndices []int
	IncidentTriangleOffsets []int
	// Interior reports whether the triangle fan around a vertex is closed.
	// Vertices on the convex hull and vertices dropped as duplicates are not
	// interior.
	Interior []bool
}

func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx+1 >= len(dt.IncidentTriangleOffsets) {
		panic("IncidentTriangles: vIdx out of range")
	}
	start := dt.IncidentTriangleOffsets[vIdx]
	end := dt.IncidentTriangleOffsets[vIdx+1]
	return dt.IncidentTriangleIndices[start:end]
}

func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.Triangles) {
		panic("TriangleVertices: tIdx out of bounds")
	}
	t := dt.Triangles[tIdx]
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

type TriangulationOptions struct {
	Eps float64
}

type TriangulationOption func(*TriangulationOptions) error

func WithEps(eps float64) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if !(eps > 0) {
			return fmt.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// NewTriangulation returns the Delaunay triangulation of vertices. Coincident
// vertices are kept in Vertices but only one of them takes part in the
// triangulation.
func NewTriangulation(vertices []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	opts := TriangulationOptions{
		Eps: defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	numVertices := len(vertices)
	if numVertices < 3 {
		return nil,
			errors.New("r2delaunay: insufficient vertices for triangulation (minimum 3 required)")
	}
	for i, p := range vertices {
		if !isFinite(p) {
			return nil, fmt.Errorf("r2delaunay: vertex %d is not finite: %v", i, p)
		}
	}

	lifted, err := liftVertices(vertices, opts.Eps)
	if err != nil {
		return nil, err
	}

	var triangles [][3]int
	if numVertices == 3 {
		triangles = [][3]int{{0, 1, 2}}
	} else {
		triangles, err = delaunayTriangles(lifted, opts.Eps)
		if err != nil {
			return nil, err
		}
	}
	numTriangles := len(triangles)

	dt := &Triangulation{
		Vertices:                vertices,
		Triangles:               triangles,
		IncidentTriangleIndices: make([]int, numTriangles*3),
		IncidentTriangleOffsets: make([]int, numVertices+1),
		Interior:                make([]bool, numVertices),
	}

	for _, t := range triangles {
		for _, idx := range t {
			dt.IncidentTriangleOffsets[idx+1]++
		}
	}
	for i := range numVertices {
		dt.IncidentTriangleOffsets[i+1] += dt.IncidentTriangleOffsets[i]
	}

	nxt := make([]int, numVertices)
	copy(nxt, dt.IncidentTriangleOffsets[:numVertices])
	for i := range numTriangles {
		for _, v := range dt.Triangles[i] {
			dt.IncidentTriangleIndices[nxt[v]] = i
			nxt[v]++
		}
		sortTriangleVerticesCCW(&dt.Triangles[i], dt.Vertices)
	}

	for i := range numVertices {
		incidentTriangles := dt.IncidentTriangles(i)
		dt.Interior[i] = sortIncidentTriangleIndicesCCW(i, incidentTriangles, dt.Triangles)
	}

	return dt, nil
}

// delaunayTriangles returns the lower faces of the convex hull of the lifted
// vertices.
func delaunayTriangles(lifted []r3.Vector, eps float64) (triangles [][3]int, err error) {
	// The hull engine signals some degenerate inputs by panicking.
	defer func() {
		if r := recover(); r != nil {
			triangles = nil
			err = fmt.Errorf("r2delaunay: convex hull failed: %v", r)
		}
	}()

	qh := new(quickhull.QuickHull)
	ch := qh.ConvexHull(lifted, true, true, eps)
	if len(ch.Indices)%3 != 0 {
		return nil, errors.New("r2delaunay: inconsistent number of indices returned from QuickHull")
	}

	triangles = lowerFaces(ch.Indices, lifted, eps)
	if len(triangles) == 0 {
		return nil, errors.New("r2delaunay: convex hull has no lower faces")
	}
	return triangles, nil
}

// liftVertices maps vertices into [-1, 1]² and lifts them onto the unit
// paraboloid. It rejects inputs without a proper 2-D extent.
func liftVertices(vertices []r2.Point, eps float64) ([]r3.Vector, error) {
	bound := r2.RectFromPoints(vertices...)
	center := bound.Center()
	size := bound.Size()
	scale := math.Max(size.X, size.Y) / 2
	if scale == 0 {
		return nil, errors.New("r2delaunay: all vertices are coincident")
	}

	normalized := make([]r2.Point, len(vertices))
	for i, p := range vertices {
		normalized[i] = p.Sub(center).Mul(1 / scale)
	}
	if collinear(normalized, eps) {
		return nil, errors.New("r2delaunay: all vertices are collinear")
	}

	lifted := make([]r3.Vector, len(normalized))
	for i, p := range normalized {
		lifted[i] = r3.Vector{X: p.X, Y: p.Y, Z: p.X*p.X + p.Y*p.Y}
	}
	return lifted, nil
}

func collinear(points []r2.Point, eps float64) bool {
	a := points[0]
	far, farDist := a, 0.0
	for _, p := range points[1:] {
		if d := p.Sub(a).Norm(); d > farDist {
			far, farDist = p, d
		}
	}
	dir := far.Sub(a).Normalize()
	for _, p := range points {
		if math.Abs(dir.Cross(p.Sub(a))) > eps {
			return false
		}
	}
	return true
}

// lowerFaces returns the hull triangles whose outward normal points down.
// Triangles repeated with either winding are returned once.
func lowerFaces(indices []int, lifted []r3.Vector, eps float64) [][3]int {
	var centroid r3.Vector
	for _, p := range lifted {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(len(lifted)))

	seen := make(map[[3]int]struct{})
	var faces [][3]int
	for i := 0; i+2 < len(indices); i += 3 {
		t := [3]int{indices[i], indices[i+1], indices[i+2]}
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			continue
		}

		a, b, c := lifted[t[0]], lifted[t[1]], lifted[t[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		norm := n.Norm()
		if norm == 0 {
			continue
		}
		d := n.Dot(a.Sub(centroid))
		switch {
		case math.Abs(d) <= eps*norm:
			// Flat hull: all vertices are cocircular and every face is a lower face.
			n.Z = -math.Abs(n.Z)
		case d < 0:
			n = n.Mul(-1)
		}
		if n.Z >= -eps*norm {
			continue
		}

		key := sortedTriangle(t)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		faces = append(faces, t)
	}
	return faces
}

func sortedTriangle(t [3]int) [3]int {
	if t[0] > t[1] {
		t[0], t[1] = t[1], t[0]
	}
	if t[1] > t[2] {
		t[1], t[2] = t[2], t[1]
	}
	if t[0] > t[1] {
		t[0], t[1] = t[1], t[0]
	}
	return t
}

func sortTriangleVerticesCCW(t *[3]int, v []r2.Point) {
	p0, p1, p2 := v[t[0]], v[t[1]], v[t[2]]
	if p1.Sub(p0).Cross(p2.Sub(p0)) < 0 {
		t[1], t[2] = t[2], t[1]
	}
}

// sortIncidentTriangleIndicesCCW orders the fan around vIdx counter-clockwise
// and reports whether the fan is closed. An open fan starts at the triangle
// whose leading edge lies on the convex hull.
func sortIncidentTriangleIndicesCCW(vIdx int, incidentTris []int, tris [][3]int) bool {
	n := len(incidentTris)
	if n == 0 {
		return false
	}

	for i := range n {
		nxt := NextVertex(tris[incidentTris[i]], vIdx)
		shared := false
		for j := range n {
			if j != i && PrevVertex(tris[incidentTris[j]], vIdx) == nxt {
				shared = true
				break
			}
		}
		if !shared {
			incidentTris[0], incidentTris[i] = incidentTris[i], incidentTris[0]
			break
		}
	}

	for i := 1; i < n; i++ {
		prv := PrevVertex(tris[incidentTris[i-1]], vIdx)
		found := false
		for j := i; j < n; j++ {
			if NextVertex(tris[incidentTris[j]], vIdx) == prv {
				incidentTris[i], incidentTris[j] = incidentTris[j], incidentTris[i]
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return PrevVertex(tris[incidentTris[n-1]], vIdx) == NextVertex(tris[incidentTris[0]], vIdx)
}

func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}

func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}

func isFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
