// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import "errors"

var (
	// ErrInvalidInput is returned for malformed call arguments: non-finite
	// points or degenerate, reversed or non-finite bounds.
	ErrInvalidInput = errors.New("r2voronoi: invalid input")
	// ErrComputation is returned when the planar subdivision cannot be formed.
	ErrComputation = errors.New("r2voronoi: computation failed")
)
