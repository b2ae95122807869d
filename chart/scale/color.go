/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package scale

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sigs.k8s.io/gridchart/chart/style"
)

// DefaultColors is used by color scales that were given no colors.
var DefaultColors = []string{"#90caf9", "#ffb74d", "#d7ccc8", "#80deea"}

func blend(colors []string, ratio float64) string {
	switch len(colors) {
	case 0:
		return ""
	case 1:
		return colors[0]
	}
	if math.IsNaN(ratio) {
		return ""
	}
	ratio = math.Max(0, math.Min(1, ratio))
	pos := ratio * float64(len(colors)-1)
	i := int(math.Floor(pos))
	if i >= len(colors)-1 {
		return colors[len(colors)-1]
	}
	from, err := colorful.Hex(colors[i])
	if err != nil {
		return colors[i]
	}
	to, err := colorful.Hex(colors[i+1])
	if err != nil {
		return colors[i]
	}
	return from.BlendLab(to, pos-float64(i)).Clamped().Hex()
}

func toList(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func stringsFrom(cfg style.Settings, field string) []string {
	var out []string
	for _, v := range cfg.List(field) {
		out = append(out, key(v))
	}
	return out
}

// LinearColor blends a list of colors across a linear range.
type LinearColor struct {
	*Quantitative
	colors []string
}

// NewLinearColor returns a linear color scale using DefaultColors.
func NewLinearColor() *LinearColor {
	s := &LinearColor{Quantitative: NewLinear(), colors: DefaultColors}
	s.Quantitative.nice = false
	s.Quantitative.Init(s, 0)
	return s
}

func (s *LinearColor) Type() string { return TypeLinearColor }

// SetColors replaces the blended colors.
func (s *LinearColor) SetColors(colors []string) {
	if equalStrings(s.colors, colors) {
		return
	}
	s.colors = append([]string(nil), colors...)
	s.changed()
}

func (s *LinearColor) Colors() []string {
	return append([]string(nil), s.colors...)
}

func (s *LinearColor) ColorAt(v interface{}) string {
	return blend(s.colors, s.Transform(v))
}

func (s *LinearColor) Serialize() style.Settings {
	out := s.Quantitative.Serialize()
	out["type"] = TypeLinearColor
	out["colors"] = toList(s.colors)
	return out
}

func (s *LinearColor) SetupByJSON(cfg style.Settings) {
	s.SuspendSignalsDispatching()
	defer s.ResumeSignalsDispatching(true)
	s.Quantitative.SetupByJSON(cfg)
	if cfg.Has("colors") {
		s.SetColors(stringsFrom(cfg, "colors"))
	}
}

// ColorRange is one band of an OrdinalColor scale.  NaN bounds are open.
type ColorRange struct {
	From, To float64
	Color    string
	Name     string
}

// Contains reports whether v falls inside the range, bounds included.
func (r ColorRange) Contains(v float64) bool {
	return (math.IsNaN(r.From) || v >= r.From) && (math.IsNaN(r.To) || v <= r.To)
}

// Label returns the range name, or its bounds when unnamed.
func (r ColorRange) Label() string {
	if r.Name != "" {
		return r.Name
	}
	switch {
	case math.IsNaN(r.From) && math.IsNaN(r.To):
		return "all"
	case math.IsNaN(r.From):
		return "< " + formatNumber(r.To)
	case math.IsNaN(r.To):
		return "> " + formatNumber(r.From)
	default:
		return fmt.Sprintf("%s - %s", formatNumber(r.From), formatNumber(r.To))
	}
}

// OrdinalColor assigns colors by value range.  Without explicit ranges it
// splits the data range into one equal band per color.
type OrdinalColor struct {
	provider

	ranges   []ColorRange
	explicit bool
	colors   []string

	dataMin, dataMax float64
}

// NewOrdinalColor returns an ordinal color scale using DefaultColors.
func NewOrdinalColor() *OrdinalColor {
	s := &OrdinalColor{colors: DefaultColors}
	s.init(s)
	s.StartAutoCalc()
	return s
}

func (s *OrdinalColor) Type() string { return TypeOrdinalColor }

// Ranges returns the active bands.
func (s *OrdinalColor) Ranges() []ColorRange {
	return append([]ColorRange(nil), s.ranges...)
}

// SetRanges fixes the bands.  An empty list makes them data-driven again.
func (s *OrdinalColor) SetRanges(ranges []ColorRange) {
	s.explicit = len(ranges) > 0
	s.ranges = append([]ColorRange(nil), ranges...)
	s.changed()
}

func (s *OrdinalColor) SetColors(colors []string) {
	if equalStrings(s.colors, colors) {
		return
	}
	s.colors = append([]string(nil), colors...)
	s.changed()
}

func (s *OrdinalColor) rangeIndex(v interface{}) int {
	f := toFloat(v)
	if math.IsNaN(f) {
		return -1
	}
	for i, r := range s.ranges {
		if r.Contains(f) {
			return i
		}
	}
	return -1
}

func (s *OrdinalColor) ColorAt(v interface{}) string {
	i := s.rangeIndex(v)
	if i < 0 {
		return ""
	}
	if c := s.ranges[i].Color; c != "" {
		return c
	}
	if len(s.colors) == 0 {
		return ""
	}
	return s.colors[i%len(s.colors)]
}

func (s *OrdinalColor) Transform(v interface{}) float64 {
	i := s.rangeIndex(v)
	if i < 0 {
		return math.NaN()
	}
	return (float64(i) + 0.5) / float64(len(s.ranges))
}

func (s *OrdinalColor) InverseTransform(ratio float64) interface{} {
	n := len(s.ranges)
	if n == 0 {
		return nil
	}
	i := int(math.Floor(ratio * float64(n)))
	if i < 0 {
		i = 0
	} else if i >= n {
		i = n - 1
	}
	return s.ranges[i]
}

func (s *OrdinalColor) NeedsAutoCalc() bool { return !s.explicit }

func (s *OrdinalColor) StartAutoCalc() {
	s.dataMin, s.dataMax = math.Inf(1), math.Inf(-1)
}

func (s *OrdinalColor) ExtendDataRange(values ...interface{}) {
	for _, v := range values {
		f := toFloat(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		s.dataMin = math.Min(s.dataMin, f)
		s.dataMax = math.Max(s.dataMax, f)
	}
}

func (s *OrdinalColor) FinishAutoCalc() bool {
	if s.explicit || s.dataMin > s.dataMax || len(s.colors) == 0 {
		return false
	}
	n := len(s.colors)
	step := (s.dataMax - s.dataMin) / float64(n)
	ranges := make([]ColorRange, n)
	for i := range ranges {
		ranges[i] = ColorRange{
			From:  s.dataMin + step*float64(i),
			To:    s.dataMin + step*float64(i+1),
			Color: s.colors[i],
		}
	}
	ranges[n-1].To = s.dataMax
	if equalRanges(ranges, s.ranges) {
		return false
	}
	s.ranges = ranges
	s.changed()
	return true
}

func (s *OrdinalColor) Ticks(max int) []Tick {
	if max <= 0 {
		return nil
	}
	var ticks []Tick
	for i, r := range s.ranges {
		if i >= max {
			break
		}
		ticks = append(ticks, Tick{Value: r, Ratio: (float64(i) + 0.5) / float64(len(s.ranges)), Label: r.Label()})
	}
	return ticks
}

func bound(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (s *OrdinalColor) Serialize() style.Settings {
	out := style.Settings{"type": TypeOrdinalColor, "colors": toList(s.colors)}
	if s.explicit {
		ranges := make([]interface{}, len(s.ranges))
		for i, r := range s.ranges {
			entry := style.Settings{"from": bound(r.From), "to": bound(r.To)}
			if r.Color != "" {
				entry["color"] = r.Color
			}
			if r.Name != "" {
				entry["name"] = r.Name
			}
			ranges[i] = entry
		}
		out["ranges"] = ranges
	}
	return out
}

func (s *OrdinalColor) SetupByJSON(cfg style.Settings) {
	s.SuspendSignalsDispatching()
	defer s.ResumeSignalsDispatching(true)

	if cfg.Has("colors") {
		s.SetColors(stringsFrom(cfg, "colors"))
	}
	if cfg.Has("ranges") {
		var ranges []ColorRange
		for _, raw := range cfg.List("ranges") {
			entry, ok := raw.(style.Settings)
			if !ok {
				continue
			}
			ranges = append(ranges, ColorRange{
				From:  entry.Float("from", math.NaN()),
				To:    entry.Float("to", math.NaN()),
				Color: entry.String("color", ""),
				Name:  entry.String("name", ""),
			})
		}
		s.SetRanges(ranges)
	}
}

func equalRanges(a, b []ColorRange) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
