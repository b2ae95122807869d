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

package scatter

import (
	"math"

	"sigs.k8s.io/gridchart/chart/core"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/style"
)

// Record fields read by scatter series.
const (
	FieldX = "x"
	FieldY = "y"
)

type point struct {
	index  int
	x, y   float64
	px, py float64
}

// xySeries is the part marker and line series share: numeric x and y
// fields, pixel positions and nearest-point hit testing.
type xySeries struct {
	core.SeriesBase

	points []point
}

func (s *xySeries) ScaleValues(sc scale.Scale) []interface{} {
	src := s.Data()
	if src == nil {
		return nil
	}
	var fields []string
	if sc == s.XScale() {
		fields = append(fields, FieldX)
	}
	if sc == s.YScale() {
		fields = append(fields, FieldY)
	}
	var out []interface{}
	it := src.ResetIterator()
	for it.Advance() {
		for _, f := range fields {
			out = append(out, it.Get(f))
		}
	}
	return out
}

// Values are the y values.
func (s *xySeries) Values() []float64 {
	src := s.Data()
	if src == nil {
		return nil
	}
	out := make([]float64, 0, src.Len())
	it := src.ResetIterator()
	for it.Advance() {
		if v, ok := style.AsFloat(it.Get(FieldY)); ok {
			out = append(out, v)
		}
	}
	return out
}

// collect recomputes the pixel position of every record with numeric x
// and y.
func (s *xySeries) collect() {
	s.points = s.points[:0]
	src := s.Data()
	if src == nil || s.XScale() == nil || s.YScale() == nil {
		return
	}
	it := src.ResetIterator()
	for it.Advance() {
		x, okx := style.AsFloat(it.Get(FieldX))
		y, oky := style.AsFloat(it.Get(FieldY))
		if !okx || !oky {
			continue
		}
		px, py := s.PixelX(x), s.PixelY(y)
		if math.IsNaN(px) || math.IsNaN(py) {
			continue
		}
		s.points = append(s.points, point{index: it.Index(), x: x, y: y, px: px, py: py})
	}
}

// visible reports whether a point lies inside the series bounds, so zoomed
// out points are neither drawn nor hit.
func (s *xySeries) visible(p point) bool {
	b := s.Bounds()
	const eps = 1e-9
	return p.px >= b.Left-eps && p.px <= b.Right()+eps && p.py >= b.Top-eps && p.py <= b.Bottom()+eps
}

func (s *xySeries) pointAt(index int) (point, bool) {
	for _, p := range s.points {
		if p.index == index {
			return p, true
		}
	}
	return point{}, false
}

func (s *xySeries) context(p point) *style.Context {
	var fields map[string]interface{}
	if src := s.Data(); src != nil {
		fields = map[string]interface{}(src.Row(p.index))
	}
	return &style.Context{
		Index:       p.index,
		Value:       p.y,
		X:           p.x,
		Y:           p.y,
		SourceColor: s.AutoStyle().Color,
		SeriesName:  s.Name(),
		Fields:      fields,
	}
}

// nearest returns the visible point closest to (x, y) within radius.
func (s *xySeries) nearest(x, y, radius float64) (point, bool) {
	best, found := point{}, false
	bestD := radius * radius
	for _, p := range s.points {
		if !s.visible(p) {
			continue
		}
		dx, dy := p.px-x, p.py-y
		if d := dx*dx + dy*dy; d <= bestD {
			best, bestD, found = p, d, true
		}
	}
	return best, found
}

func (s *xySeries) hit(self core.Series, x, y, radius float64) *core.Point {
	p, ok := s.nearest(x, y, radius)
	if !ok {
		return nil
	}
	ctx := s.context(p)
	return &core.Point{
		Series: self,
		Index:  p.index,
		X:      p.x,
		Y:      p.y,
		Value:  p.y,
		PixelX: p.px,
		PixelY: p.py,
		Color:  s.Color(ctx),
		Fields: ctx.Fields,
	}
}
