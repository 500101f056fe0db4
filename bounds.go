// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// DefaultBounds covers the state of Colorado with X as longitude and Y as
// latitude. Tessellate uses it when called without bounds, unless
// WithDefaultBounds overrides it.
var DefaultBounds = Bounds(-109.5, 37.0, -102.0, 41.0)

// Bounds returns the rectangle with the given corners. Unlike
// r2.RectFromPoints it keeps reversed corners as they are, so that
// ValidateBounds can reject them.
func Bounds(minX, minY, maxX, maxY float64) r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: minX, Hi: maxX},
		Y: r1.Interval{Lo: minY, Hi: maxY},
	}
}

// ValidateBounds returns an error wrapping ErrInvalidInput unless bounds has
// finite corners and a positive extent on both axes.
func ValidateBounds(bounds r2.Rect) error {
	lo, hi := bounds.Lo(), bounds.Hi()
	if !isFinite(lo) || !isFinite(hi) {
		return fmt.Errorf("%w: bounds %v are not finite", ErrInvalidInput, bounds)
	}
	if !(lo.X < hi.X && lo.Y < hi.Y) {
		return fmt.Errorf("%w: bounds %v are degenerate or reversed", ErrInvalidInput, bounds)
	}
	return nil
}

func isFinite(p r2.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !isInf(p.X) && !isInf(p.Y)
}

func isInf(f float64) bool {
	return math.IsInf(f, 0)
}
