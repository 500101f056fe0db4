// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/2dChan/r2voronoi/utils"
	"github.com/golang/geo/r2"
)

// Options

func TestWithEps(t *testing.T) {
	tests := []struct {
		name    string
		eps     float64
		wantErr bool
	}{
		{"eps positive", 0.5, false},
		{"eps zero", 0, true},
		{"eps negative", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			opt := WithEps(tt.eps)
			err := opt(&opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithEps(%v) error = %v, wantErr %v", tt.eps, err, tt.wantErr)
			}
			if err == nil && opts.Eps != tt.eps {
				t.Errorf("WithEps(%v) opts.Eps = %v, want %v", tt.eps, opts.Eps, tt.eps)
			}
		})
	}
}

func TestWithMargin(t *testing.T) {
	tests := []struct {
		name    string
		margin  float64
		wantErr bool
	}{
		{"margin positive", 25, false},
		{"margin zero", 0, true},
		{"margin negative", -10, true},
		{"margin infinite", math.Inf(1), true},
		{"margin NaN", math.NaN(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			err := WithMargin(tt.margin)(&opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithMargin(%v) error = %v, wantErr %v", tt.margin, err, tt.wantErr)
			}
			if err == nil && opts.Margin != tt.margin {
				t.Errorf("WithMargin(%v) opts.Margin = %v, want %v", tt.margin, opts.Margin, tt.margin)
			}
		})
	}
}

func TestWithDefaultBounds(t *testing.T) {
	tests := []struct {
		name    string
		bounds  r2.Rect
		wantErr bool
	}{
		{"valid", Bounds(0, 0, 1, 1), false},
		{"reversed", Bounds(1, 0, 0, 1), true},
		{"degenerate", Bounds(0, 0, 0, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			err := WithDefaultBounds(tt.bounds)(&opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("WithDefaultBounds(%v) error = %v, wantErr %v", tt.bounds, err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("WithDefaultBounds(%v) error = %v, want %v", tt.bounds, err, ErrInvalidInput)
			}
		})
	}
}

// Diagram

func TestNewDiagram_WithEps(t *testing.T) {
	points := utils.GenerateRandomPoints(10, 0, DefaultBounds)
	tests := []struct {
		name    string
		eps     float64
		wantErr bool
	}{
		{"eps positive small", 1e-10, false},
		{"eps zero", 0, true},
		{"eps negative", -0.01, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDiagram(points, WithEps(tt.eps))
			if (err != nil) != tt.wantErr {
				t.Errorf("NewDiagram(..., WithEps(%v)) error = %v, wantErr %v", tt.eps, err, tt.wantErr)
			}
		})
	}
}

func TestDiagram_Invariants(t *testing.T) {
	tests := []struct {
		name string
		size int
	}{
		{"minimal", 3},
		{"small", 10},
		{"medium", 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vd := mustNewDiagram(t, tt.size)

			if got, want := len(vd.Sites), tt.size; got != want {
				t.Errorf("vd.Sites count = %v, want %v", got, want)
			}
			if got, want := vd.NumCells(), len(vd.Sites); got != want {
				t.Errorf("vd.NumCells() = %v, want %v", got, want)
			}
			if got, want := len(vd.CellOffsets), len(vd.Sites)+1; got != want {
				t.Errorf("len(vd.CellOffsets) = %v, want %v", got, want)
			}
			// Every Voronoi vertex is shared by the three cells of its triangle.
			if got, want := len(vd.CellVertices), 3*len(vd.Vertices); got != want {
				t.Errorf("len(vd.CellVertices) = %v, want %v", got, want)
			}
		})
	}
}

func TestNewDiagram_DegenerateInput(t *testing.T) {
	tests := []struct {
		name   string
		points []r2.Point
	}{
		{"two points", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}},
		{"collinear", []r2.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDiagram(tt.points); err == nil {
				t.Errorf("NewDiagram(%v) error = nil, want non-nil", tt.points)
			}
		})
	}
}

func TestNewDiagram_VerticesEquidistant(t *testing.T) {
	vd := mustNewDiagram(t, 200)

	for i := range vd.NumCells() {
		cell, err := vd.Cell(i)
		if err != nil {
			t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
		}
		site := cell.Site()
		for j := range cell.NumVertices() {
			v, err := cell.Vertex(j)
			if err != nil {
				t.Fatalf("cell.Vertex(%d) error = %v, want nil", j, err)
			}
			d := v.Sub(site).Norm()
			for k, other := range vd.Sites {
				if od := v.Sub(other).Norm(); od < d*(1-1e-9) {
					t.Errorf("vd.Cell(%d) vertex %d is closer to site %d than to its own site", i, j, k)
				}
			}
		}
	}
}

func TestNewDiagram_VerifyCCW(t *testing.T) {
	vd := mustNewDiagram(t, 100)

	for i := range vd.NumCells() {
		cell, err := vd.Cell(i)
		if err != nil {
			t.Fatalf("vd.Cell(%d) error = %v, want nil", i, err)
		}
		if !cell.Bounded() {
			continue
		}

		center := cell.Site()
		for j := range cell.NumVertices() {
			cIdx := j
			nIdx := (j + 1) % cell.NumVertices()
			c, err := cell.Vertex(cIdx)
			if err != nil {
				t.Fatalf("cell.Vertex(%d) error = %v, want nil", cIdx, err)
			}
			n, err := cell.Vertex(nIdx)
			if err != nil {
				t.Fatalf("cell.Vertex(%d) error = %v, want nil", nIdx, err)
			}

			if cross := c.Sub(center).Cross(n.Sub(center)); cross <= 0 {
				t.Errorf("vd.Cell(%d) Vertices %d,%d not sorted in CCW", i, cIdx, nIdx)
			}
		}

		for j := range cell.NumNeighbors() {
			cIdx := j
			nIdx := (j + 1) % cell.NumNeighbors()
			neigh, err := cell.Neighbor(cIdx)
			if err != nil {
				t.Fatalf("cell.Neighbor(%d) error = %v, want nil", cIdx, err)
			}
			neigh2, err := cell.Neighbor(nIdx)
			if err != nil {
				t.Fatalf("cell.Neighbor(%d) error = %v, want nil", nIdx, err)
			}

			c, n := neigh.Site(), neigh2.Site()
			if cross := c.Sub(center).Cross(n.Sub(center)); cross <= 0 {
				t.Errorf("vd.Cell(%d) Neighbors %d,%d not sorted in CCW", i, cIdx, nIdx)
			}
		}
	}
}

func TestTriangleCircumcenter(t *testing.T) {
	tests := []struct {
		name       string
		p0, p1, p2 r2.Point
		want       r2.Point
	}{
		{
			"right triangle",
			r2.Point{X: 0, Y: 0},
			r2.Point{X: 2, Y: 0},
			r2.Point{X: 0, Y: 2},
			r2.Point{X: 1, Y: 1},
		},
		{
			"right triangle reversed",
			r2.Point{X: 0, Y: 2},
			r2.Point{X: 2, Y: 0},
			r2.Point{X: 0, Y: 0},
			r2.Point{X: 1, Y: 1},
		},
		{
			"equilateral",
			r2.Point{X: -1, Y: 0},
			r2.Point{X: 1, Y: 0},
			r2.Point{X: 0, Y: math.Sqrt(3)},
			r2.Point{X: 0, Y: 1 / math.Sqrt(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := triangleCircumcenter(tt.p0, tt.p1, tt.p2)
			if got.Sub(tt.want).Norm() > 1e-9 {
				t.Errorf("triangleCircumcenter(...) = %v, want %v", got, tt.want)
			}
		})
	}
}

// Benchmarks

func BenchmarkNewDiagram(b *testing.B) {
	sizes := []int{1e+2, 1e+3, 1e+4}
	for _, pointsCnt := range sizes {
		b.Run(fmt.Sprintf("N%d", pointsCnt), func(b *testing.B) {
			points := utils.GenerateRandomPoints(pointsCnt, 0, DefaultBounds)

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				_, err := NewDiagram(points)
				if err != nil {
					b.Fatalf("NewDiagram(...) error = %v, want nil", err)
				}
			}
		})
	}
}

// Helpers

func mustNewDiagram(t *testing.T, n int) *Diagram {
	t.Helper()
	points := utils.GenerateRandomPoints(n, 0, DefaultBounds)
	vd, err := NewDiagram(points)
	if err != nil {
		t.Fatalf("NewDiagram(...) error = %v, want nil", err)
	}
	return vd
}
