// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package utils

import (
	"testing"

	"github.com/golang/geo/r2"
	"github.com/google/go-cmp/cmp"
)

var testBounds = r2.RectFromPoints(r2.Point{X: -109.5, Y: 37}, r2.Point{X: -102, Y: 41})

func TestGenerateRandomPoints_Length(t *testing.T) {
	tests := []struct {
		name string
		cnt  int
		seed int64
	}{
		{"zero points", 0, 42},
		{"one point", 1, 42},
		{"ten points", 10, 0},
		{"hundred points", 100, 99},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := GenerateRandomPoints(tt.cnt, tt.seed, testBounds)
			if len(points) != tt.cnt {
				t.Errorf("GenerateRandomPoints(%v, %v, ...) len = %v, want %v", tt.cnt, tt.seed,
					len(points), tt.cnt)
			}
		})
	}
}

func TestGenerateRandomPoints_InBounds(t *testing.T) {
	const (
		cnt  = 100
		seed = 0
	)
	points := GenerateRandomPoints(cnt, seed, testBounds)
	for i, p := range points {
		if !testBounds.ContainsPoint(p) {
			t.Errorf("GenerateRandomPoints(%v, %v, ...)[%d] = %v, want inside %v", cnt, seed,
				i, p, testBounds)
		}
	}
}

func TestGenerateRandomPoints_Determinism(t *testing.T) {
	const (
		cnt  = 10
		seed = 0
	)
	a := GenerateRandomPoints(cnt, seed, testBounds)
	b := GenerateRandomPoints(cnt, seed, testBounds)
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("GenerateRandomPoints(%v, %v, ...) mismatch (-want +got):\n%v", cnt, seed, diff)
	}
}
