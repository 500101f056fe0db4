// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package palette assigns display colors to point categories.

package palette

import (
	"errors"
	"fmt"
	"sort"
)

const (
	UnknownCategory = "Unknown"
	OtherCategory   = "Other"
)

type Color struct {
	Name string
	Hex  string
}

var (
	Unknown = Color{Name: "grey", Hex: "#7B7B7B"}
	Other   = Color{Name: "lightgrey", Hex: "#BDBDBD"}

	// Default is the marker palette of the building code map.
	Default = []Color{
		{Name: "black", Hex: "#3D3D3D"},
		{Name: "violet", Hex: "#9C2BCB"},
		{Name: "yellow", Hex: "#CAC428"},
		{Name: "orange", Hex: "#CB8427"},
		{Name: "green", Hex: "#2AAD27"},
		{Name: "red", Hex: "#CB2B3E"},
		{Name: "gold", Hex: "#FFD326"},
		{Name: "blue", Hex: "#2A81CB"},
	}
)

type Options struct {
	Palette []Color
	// TopN is the number of categories that receive a palette color.
	// Zero means len(Palette).
	TopN int
}

type Option func(*Options) error

func WithPalette(colors []Color) Option {
	return func(o *Options) error {
		if len(colors) == 0 {
			return errors.New("WithPalette: palette must not be empty")
		}
		o.Palette = colors
		return nil
	}
}

func WithTopN(n int) Option {
	return func(o *Options) error {
		if n <= 0 {
			return fmt.Errorf("WithTopN: n must be positive, got %d", n)
		}
		o.TopN = n
		return nil
	}
}

// AssignColors maps every category in categories to a color. The TopN most
// frequent categories, ties broken alphabetically, receive palette colors in
// alphabetical order, cycling through the palette if TopN exceeds it. The
// remaining categories map to Other and UnknownCategory always maps to
// Unknown.
func AssignColors(categories []string, setters ...Option) (map[string]Color, error) {
	opts := Options{Palette: Default}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	topN := opts.TopN
	if topN == 0 {
		topN = len(opts.Palette)
	}

	counts := make(map[string]int)
	var distinct []string
	for _, c := range categories {
		if c == UnknownCategory {
			continue
		}
		if _, ok := counts[c]; !ok {
			distinct = append(distinct, c)
		}
		counts[c]++
	}
	sort.Slice(distinct, func(i, j int) bool {
		ci, cj := counts[distinct[i]], counts[distinct[j]]
		if ci != cj {
			return ci > cj
		}
		return distinct[i] < distinct[j]
	})

	top := distinct[:min(topN, len(distinct))]
	rest := distinct[len(top):]
	sort.Strings(top)

	colors := make(map[string]Color, len(distinct)+1)
	for i, c := range top {
		colors[c] = opts.Palette[i%len(opts.Palette)]
	}
	for _, c := range rest {
		colors[c] = Other
	}
	colors[UnknownCategory] = Unknown
	return colors, nil
}

// Category returns the category a color map groups c under: c itself when it
// has a palette color, OtherCategory otherwise.
func Category(colors map[string]Color, c string) string {
	if color, ok := colors[c]; ok && color != Other {
		return c
	}
	return OtherCategory
}
