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
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/palette"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

// TypeMarker is the marker series type.
const TypeMarker = "marker"

// MarkerSeries draws a marker shape at every point.
type MarkerSeries struct {
	xySeries

	marker     palette.Marker
	size       float64
	stroke     surface.Stroke
	hoverColor string

	markers *surface.Layer
	hover   *surface.Layer
}

func NewMarkerSeries() *MarkerSeries {
	s := &MarkerSeries{
		size:       3,
		hoverColor: "#545f69",
	}
	s.InitSeries(s, TypeMarker, 0)
	return s
}

// Marker returns the shape in use: the explicit one or the palette's.
func (s *MarkerSeries) Marker() palette.Marker {
	if s.marker != "" {
		return s.marker
	}
	if m := s.AutoStyle().Marker; m != "" {
		return m
	}
	return palette.MarkerCircle
}

// SetMarker fixes the shape; an empty marker follows the marker palette.
func (s *MarkerSeries) SetMarker(m palette.Marker) {
	if s.marker != m {
		s.marker = m
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// SetSize sets the marker radius in pixels.
func (s *MarkerSeries) SetSize(size float64) {
	if size > 0 && s.size != size {
		s.size = size
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (s *MarkerSeries) SetStroke(st surface.Stroke) {
	if s.stroke != st {
		s.stroke = st
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// MarkerPath adds shape m of radius r centered on (x, y) to p.  Crosses
// are strokes only.
func MarkerPath(p *surface.Path, m palette.Marker, x, y, r float64) {
	switch m {
	case palette.MarkerSquare:
		p.AddRect(geom.R(x-r, y-r, 2*r, 2*r))
	case palette.MarkerDiamond:
		p.MoveTo(x, y-r).LineTo(x+r, y).LineTo(x, y+r).LineTo(x-r, y).Close()
	case palette.MarkerTriangleUp:
		p.MoveTo(x, y-r).LineTo(x+r, y+r).LineTo(x-r, y+r).Close()
	case palette.MarkerCross:
		p.MoveTo(x-r, y-r).LineTo(x+r, y+r).MoveTo(x-r, y+r).LineTo(x+r, y-r)
	default:
		// circles are octagons
		for i := 0; i < 8; i++ {
			a := float64(i) * math.Pi / 4
			px, py := x+r*math.Cos(a), y+r*math.Sin(a)
			if i == 0 {
				p.MoveTo(px, py)
			} else {
				p.LineTo(px, py)
			}
		}
		p.Close()
	}
}

func (s *MarkerSeries) Draw() {
	if s.IsConsistent() || s.Layer() == nil {
		return
	}
	if s.markers == nil || s.HasInvalidationState(core.SeriesStates&^core.HoverState) {
		l := s.Layer()
		l.Clear()
		s.markers = l.Layer()
		s.hover = l.Layer()
		s.hover.SetZIndex(1)
		s.collect()
		if s.IsEnabled() {
			s.drawMarkers()
			s.Recorder().Rebuild(TypeMarker, "markers")
		}
	}
	s.drawHover()
	s.Consume(core.SeriesStates)
}

func (s *MarkerSeries) drawMarkers() {
	m := s.Marker()
	// markers sharing a color share a path
	paths := map[string]*surface.Path{}
	for _, p := range s.points {
		if !s.visible(p) {
			continue
		}
		color := s.Color(s.context(p))
		path, ok := paths[color]
		if !ok {
			path = s.markers.Path()
			if m == palette.MarkerCross {
				path.SetStroke(surface.Stroke{Color: color, Thickness: 1})
			} else {
				path.SetFill(color).SetStroke(s.stroke)
			}
			paths[color] = path
		}
		MarkerPath(path, m, p.px, p.py, s.size)
	}
}

func (s *MarkerSeries) drawHover() {
	s.hover.Clear()
	p, ok := s.pointAt(s.Hovered())
	if !ok || !s.visible(p) {
		return
	}
	path := s.hover.Path().SetStroke(surface.Stroke{Color: s.hoverColor, Thickness: 1})
	MarkerPath(path, s.Marker(), p.px, p.py, s.size+1)
	s.Recorder().Rebuild(TypeMarker, "hover")
}

func (s *MarkerSeries) HitTest(x, y float64) *core.Point {
	return s.hit(s, x, y, s.size+1)
}

func (s *MarkerSeries) Serialize() style.Settings {
	out := s.SerializeBase()
	if s.marker != "" {
		out["marker"] = string(s.marker)
	}
	out["size"] = s.size
	out["stroke"] = s.stroke.Color
	out["strokeThickness"] = s.stroke.Thickness
	out["hoverColor"] = s.hoverColor
	return style.Sanitize(out)
}

func (s *MarkerSeries) SetupByJSON(cfg style.Settings) {
	s.SuspendSignalsDispatching()
	defer s.ResumeSignalsDispatching(true)

	s.SetupBase(cfg)
	s.SetMarker(palette.Marker(cfg.String("marker", string(s.marker))))
	s.SetSize(cfg.Float("size", s.size))
	s.SetStroke(surface.Stroke{
		Color:     cfg.String("stroke", s.stroke.Color),
		Thickness: cfg.Float("strokeThickness", s.stroke.Thickness),
	})
	if c := cfg.String("hoverColor", s.hoverColor); c != s.hoverColor {
		s.hoverColor = c
		s.Invalidate(core.HoverState, state.NeedsRedraw)
	}
}

func (s *MarkerSeries) Dispose() {
	s.points = nil
	s.DisposeBase()
}
