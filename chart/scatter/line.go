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
	"sigs.k8s.io/gridchart/chart/core"
	"sigs.k8s.io/gridchart/chart/palette"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

// TypeLine is the line series type.
const TypeLine = "line"

// LineSeries joins its points in data order.  Records without numeric x
// or y break the line.
type LineSeries struct {
	xySeries

	thickness float64
	dashed    bool

	line  *surface.Layer
	hover *surface.Layer
}

func NewLineSeries() *LineSeries {
	s := &LineSeries{thickness: 1}
	s.InitSeries(s, TypeLine, 0)
	return s
}

func (s *LineSeries) SetThickness(t float64) {
	if t > 0 && s.thickness != t {
		s.thickness = t
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (s *LineSeries) SetDashed(dashed bool) {
	if s.dashed != dashed {
		s.dashed = dashed
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (s *LineSeries) Draw() {
	if s.IsConsistent() || s.Layer() == nil {
		return
	}
	if s.line == nil || s.HasInvalidationState(core.SeriesStates&^core.HoverState) {
		l := s.Layer()
		l.Clear()
		s.line = l.Layer()
		s.hover = l.Layer()
		s.hover.SetZIndex(1)
		s.collect()
		if s.IsEnabled() {
			s.drawLine()
			s.Recorder().Rebuild(TypeLine, "line")
		}
	}
	s.drawHover()
	s.Consume(core.SeriesStates)
}

func (s *LineSeries) drawLine() {
	path := s.line.Path().SetStroke(surface.Stroke{
		Color:     s.Color(nil),
		Thickness: s.thickness,
		Dashed:    s.dashed,
	})
	prev := -2
	for _, p := range s.points {
		if p.index == prev+1 {
			path.LineTo(p.px, p.py)
		} else {
			path.MoveTo(p.px, p.py)
		}
		prev = p.index
	}
}

func (s *LineSeries) drawHover() {
	s.hover.Clear()
	p, ok := s.pointAt(s.Hovered())
	if !ok || !s.visible(p) {
		return
	}
	MarkerPath(s.hover.Path().SetFill(s.Color(s.context(p))), palette.MarkerCircle, p.px, p.py, s.thickness+2)
	s.Recorder().Rebuild(TypeLine, "hover")
}

func (s *LineSeries) HitTest(x, y float64) *core.Point {
	return s.hit(s, x, y, s.thickness+2)
}

func (s *LineSeries) Serialize() style.Settings {
	out := s.SerializeBase()
	out["thickness"] = s.thickness
	out["dashed"] = s.dashed
	return style.Sanitize(out)
}

func (s *LineSeries) SetupByJSON(cfg style.Settings) {
	s.SuspendSignalsDispatching()
	defer s.ResumeSignalsDispatching(true)

	s.SetupBase(cfg)
	s.SetThickness(cfg.Float("thickness", s.thickness))
	s.SetDashed(cfg.Bool("dashed", s.dashed))
}

func (s *LineSeries) Dispose() {
	s.points = nil
	s.DisposeBase()
}
