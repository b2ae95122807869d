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

package axis

import (
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/debug"
)

// RangeState is dirty when the scroller's window moved.
const RangeState = state.FirstCustom

// Position says whether a scroller sits between the data area and the axes
// or outside the axes.
type Position int

const (
	AfterAxes Position = iota
	BeforeAxes
)

func (p Position) String() string {
	if p == BeforeAxes {
		return "beforeAxes"
	}
	return "afterAxes"
}

// MinRange is the narrowest window a scroller accepts.
const MinRange = 0.01

// Scroller is a layout.Element showing and controlling a [from, to] window
// of a scale, as ratios.  Dragging the thumb moves the window; pressing
// the track centers the window on the pointer.
type Scroller struct {
	state.Base

	stage       *surface.Stage
	orientation geom.Side
	position    Position
	enabled     bool
	thickness   float64
	fill        string
	thumbFill   string

	from, to float64

	parent  geom.Rect
	padding geom.Padding
	layer   *surface.Layer

	dragging  bool
	dragStart float64
	dragFrom  float64
}

// NewScroller creates a disabled scroller at the bottom showing the whole
// range.
func NewScroller(stage *surface.Stage) *Scroller {
	s := &Scroller{
		stage:       stage,
		orientation: geom.Bottom,
		thickness:   1,
		fill:        "#f0f0f0",
		thumbFill:   "#bcbcbc",
		to:          1,
	}
	s.Init(s, state.Generic|RangeState)
	return s
}

func (s *Scroller) IsEnabled() bool { return s.enabled }

func (s *Scroller) SetEnabled(enabled bool) {
	if s.enabled != enabled {
		s.enabled = enabled
		s.Invalidate(state.Enabled|state.Bounds, state.BoundsChanged|state.EnabledChanged)
	}
}

func (s *Scroller) Orientation() geom.Side { return s.orientation }

func (s *Scroller) SetOrientation(side geom.Side) {
	if s.orientation != side {
		s.orientation = side
		s.Invalidate(state.Bounds, state.BoundsChanged)
	}
}

func (s *Scroller) Position() Position { return s.position }

func (s *Scroller) SetPosition(p Position) {
	if s.position != p {
		s.position = p
		s.Invalidate(state.Bounds, state.BoundsChanged)
	}
}

func (s *Scroller) SetThickness(t float64) {
	if t <= 0 {
		debug.Warning(debug.InvalidSetting, "scroller.thickness", t)
		return
	}
	if s.thickness != t {
		s.thickness = t
		s.Invalidate(state.Bounds, state.BoundsChanged)
	}
}

func (s *Scroller) SetColors(fill, thumbFill string) {
	if s.fill != fill || s.thumbFill != thumbFill {
		s.fill, s.thumbFill = fill, thumbFill
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// Range returns the visible window.
func (s *Scroller) Range() (from, to float64) { return s.from, s.to }

// SetRange moves the window, clamping it into [0, 1].
func (s *Scroller) SetRange(from, to float64) {
	if to-from < MinRange {
		debug.Warning(debug.InvalidSetting, "scroller.range", from, to)
		return
	}
	if from < 0 {
		from = 0
	}
	if to > 1 {
		to = 1
	}
	if s.from == from && s.to == to {
		return
	}
	s.from, s.to = from, to
	s.Invalidate(RangeState, state.NeedsReapplication)
}

func (s *Scroller) SetParentBounds(r geom.Rect) {
	if s.parent != r {
		s.parent = r
		s.Invalidate(state.Bounds, 0)
	}
}

func (s *Scroller) SetPadding(p geom.Padding) {
	if s.padding != p {
		s.padding = p
		s.Invalidate(state.Bounds, 0)
	}
}

func (s *Scroller) StrokeThickness() float64 { return 0 }

// Bounds is the track.
func (s *Scroller) Bounds() geom.Rect {
	in := s.parent.Shrink(s.padding)
	t := s.thickness
	switch s.orientation {
	case geom.Top:
		return geom.R(in.Left, in.Top, in.Width, t)
	case geom.Bottom:
		return geom.R(in.Left, in.Bottom()-t, in.Width, t)
	case geom.Left:
		return geom.R(in.Left, in.Top, t, in.Height)
	default:
		return geom.R(in.Right()-t, in.Top, t, in.Height)
	}
}

func (s *Scroller) RemainingBounds() geom.Rect {
	in := s.parent.Shrink(s.padding)
	if !s.enabled {
		return in
	}
	return in.Shrink(geom.Padding{}.Set(s.orientation, s.thickness))
}

// Thumb is the part of the track showing the window.
func (s *Scroller) Thumb() geom.Rect {
	b := s.Bounds()
	if s.orientation.IsHorizontal() {
		return geom.R(b.Left+s.from*b.Width, b.Top, (s.to-s.from)*b.Width, b.Height)
	}
	// vertical scrollers run bottom to top like the scales
	return geom.R(b.Left, b.Bottom()-s.to*b.Height, b.Width, (s.to-s.from)*b.Height)
}

func (s *Scroller) SetContainer(l *surface.Layer) {
	if s.layer == l {
		return
	}
	s.layer = l
	if l != nil {
		l.OnPointer(s.handle)
	}
	s.Invalidate(state.Container, state.NeedsRedraw)
}

func (s *Scroller) Draw() {
	if s.IsConsistent() || s.layer == nil {
		return
	}
	s.layer.Clear()
	if s.enabled {
		b := s.Bounds()
		s.layer.SetHitArea(b)
		s.layer.Rect(b).SetFill(s.fill)
		s.layer.Rect(s.Thumb()).SetFill(s.thumbFill)
	} else {
		s.layer.SetHitArea(geom.Rect{})
	}
	s.Consume(state.Generic | RangeState)
}

// ratioAt converts a pointer position to a ratio along the track.
func (s *Scroller) ratioAt(x, y float64) float64 {
	b := s.Bounds()
	if s.orientation.IsHorizontal() {
		if b.Width == 0 {
			return 0
		}
		return (x - b.Left) / b.Width
	}
	if b.Height == 0 {
		return 0
	}
	return (b.Bottom() - y) / b.Height
}

// moveTo shifts the window to start at from, keeping its width.
func (s *Scroller) moveTo(from float64) {
	w := s.to - s.from
	if from < 0 {
		from = 0
	}
	if from+w > 1 {
		from = 1 - w
	}
	s.SetRange(from, from+w)
}

func (s *Scroller) handle(evt *surface.PointerEvent) {
	if !s.enabled {
		return
	}
	r := s.ratioAt(evt.ClientX, evt.ClientY)
	switch evt.Type {
	case surface.PointerDown:
		if !s.Thumb().Contains(evt.ClientX, evt.ClientY) {
			s.moveTo(r - (s.to-s.from)/2)
		}
		s.dragging = true
		s.dragStart = r
		s.dragFrom = s.from
		if s.stage != nil {
			s.stage.Capture(s.layer)
		}
		evt.PreventDefault()
	case surface.PointerMove:
		if s.dragging {
			s.moveTo(s.dragFrom + r - s.dragStart)
			evt.PreventDefault()
		}
	case surface.PointerUp:
		if s.dragging {
			s.dragging = false
			if s.stage != nil {
				s.stage.ReleaseCapture()
			}
			evt.PreventDefault()
		}
	}
}

func (s *Scroller) Serialize() style.Settings {
	return style.Settings{
		"enabled":     s.enabled,
		"orientation": s.orientation.String(),
		"position":    s.position.String(),
		"thickness":   s.thickness,
		"fill":        s.fill,
		"thumbFill":   s.thumbFill,
		"from":        s.from,
		"to":          s.to,
	}
}

func (s *Scroller) SetupByJSON(st style.Settings) {
	s.SuspendSignalsDispatching()
	defer s.ResumeSignalsDispatching(true)

	s.SetEnabled(st.Bool("enabled", s.enabled))
	if side, ok := geom.ParseSide(st.String("orientation", s.orientation.String())); ok {
		s.SetOrientation(side)
	}
	switch st.String("position", s.position.String()) {
	case "beforeAxes":
		s.SetPosition(BeforeAxes)
	case "afterAxes":
		s.SetPosition(AfterAxes)
	default:
		debug.Warning(debug.InvalidSetting, "scroller.position", st["position"])
	}
	s.SetThickness(st.Float("thickness", s.thickness))
	s.SetColors(st.String("fill", s.fill), st.String("thumbFill", s.thumbFill))
	s.SetRange(st.Float("from", s.from), st.Float("to", s.to))
}

func (s *Scroller) Dispose() {
	if s.dragging && s.stage != nil {
		s.stage.ReleaseCapture()
	}
	if s.layer != nil {
		s.layer.Clear()
		s.layer.OnPointer(nil)
	}
	s.RemoveAllListeners()
}
