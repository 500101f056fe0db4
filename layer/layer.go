// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package layer converts tessellation results into GeoJSON feature
// collections for map renderers. Coordinates are written as (X, Y), so points
// should use X for longitude and Y for latitude.
package layer

import (
	"fmt"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/palette"
	"github.com/golang/geo/r2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	defaultOpacity        = 0.5
	defaultUnknownOpacity = 0.2
)

type Options struct {
	ShowUnknown    bool
	Opacity        float64
	UnknownOpacity float64
}

type Option func(*Options) error

func WithShowUnknown(show bool) Option {
	return func(o *Options) error {
		o.ShowUnknown = show
		return nil
	}
}

func WithOpacity(known, unknown float64) Option {
	return func(o *Options) error {
		if known < 0 || known > 1 || unknown < 0 || unknown > 1 {
			return fmt.Errorf("WithOpacity: opacities must be in [0 1], got %v and %v", known, unknown)
		}
		o.Opacity = known
		o.UnknownOpacity = unknown
		return nil
	}
}

func applyOptions(setters []Option) (Options, error) {
	opts := Options{
		ShowUnknown:    true,
		Opacity:        defaultOpacity,
		UnknownOpacity: defaultUnknownOpacity,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return Options{}, err
		}
	}
	return opts, nil
}

// Cells returns one Polygon feature per region. categories holds the category
// of every input point and colors is usually the result of
// palette.AssignColors over the same categories.
func Cells(
	regions []r2voronoi.Region, categories []string, colors map[string]palette.Color, setters ...Option,
) (*geojson.FeatureCollection, error) {
	opts, err := applyOptions(setters)
	if err != nil {
		return nil, err
	}

	fc := geojson.NewFeatureCollection()
	for _, r := range regions {
		if r.PointIndex < 0 || r.PointIndex >= len(categories) {
			return nil, fmt.Errorf("Cells: point index %d out of range [0 %d)", r.PointIndex, len(categories))
		}
		code := categories[r.PointIndex]
		if code == palette.UnknownCategory && !opts.ShowUnknown {
			continue
		}

		f := geojson.NewFeature(r.Polygon())
		setStyle(f, code, colors, opts)
		f.Properties["point_index"] = r.PointIndex
		fc.Append(f)
	}
	return fc, nil
}

// Markers returns one Point feature per point, styled like Cells.
func Markers(
	points []r2.Point, categories []string, colors map[string]palette.Color, setters ...Option,
) (*geojson.FeatureCollection, error) {
	opts, err := applyOptions(setters)
	if err != nil {
		return nil, err
	}
	if len(points) != len(categories) {
		return nil, fmt.Errorf("Markers: %d points but %d categories", len(points), len(categories))
	}

	fc := geojson.NewFeatureCollection()
	for i, p := range points {
		code := categories[i]
		if code == palette.UnknownCategory && !opts.ShowUnknown {
			continue
		}

		f := geojson.NewFeature(orb.Point{p.X, p.Y})
		setStyle(f, code, colors, opts)
		f.Properties["point_index"] = i
		fc.Append(f)
	}
	return fc, nil
}

func setStyle(f *geojson.Feature, code string, colors map[string]palette.Color, opts Options) {
	color, ok := colors[code]
	if !ok {
		color = palette.Other
	}
	opacity := opts.Opacity
	if code == palette.UnknownCategory {
		opacity = opts.UnknownOpacity
	}

	f.Properties["code"] = code
	f.Properties["group"] = palette.Category(colors, code)
	f.Properties["color"] = color.Name
	f.Properties["fill"] = color.Hex
	f.Properties["opacity"] = opacity
}
