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
	"math"

	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/metrics"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

// GridLines draws a line across the data area at every tick of a scale.
// Vertical lines follow an x scale, horizontal lines a y scale.
type GridLines struct {
	state.Base

	vertical       bool
	enabled        bool
	sc             scale.Scale
	binding        *state.Binding
	stroke         surface.Stroke
	minTickSpacing float64

	zoomFrom, zoomTo float64

	bounds   geom.Rect
	layer    *surface.Layer
	recorder *metrics.Recorder
}

// NewGridLines creates enabled grid lines; vertical lines run top to
// bottom, one per x tick.
func NewGridLines(vertical bool) *GridLines {
	g := &GridLines{
		vertical:       vertical,
		enabled:        true,
		stroke:         surface.Stroke{Color: "#eaeaea", Thickness: 1},
		minTickSpacing: 4,
		zoomTo:         1,
	}
	g.Init(g, state.Generic)
	return g
}

func (g *GridLines) IsEnabled() bool { return g.enabled }

func (g *GridLines) SetEnabled(enabled bool) {
	if g.enabled != enabled {
		g.enabled = enabled
		g.Invalidate(state.Enabled, state.EnabledChanged)
	}
}

func (g *GridLines) Scale() scale.Scale { return g.sc }

// IsVertical reports whether the lines follow an x scale.
func (g *GridLines) IsVertical() bool { return g.vertical }

func (g *GridLines) SetScale(sc scale.Scale) {
	if g.binding == nil {
		if sc == nil {
			return
		}
		g.binding = state.Bind(sc, func(evt state.Event) {
			if evt.HasSignal(state.NeedsReapplication) {
				g.Invalidate(state.Appearance, state.NeedsRedraw)
			}
		})
	} else if !g.binding.Rebind(sc) {
		return
	}
	g.sc = sc
	g.Invalidate(state.Appearance, state.NeedsRedraw)
}

func (g *GridLines) SetStroke(s surface.Stroke) {
	if g.stroke != s {
		g.stroke = s
		g.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// SetMinTickSpacing should match the axis showing the same scale so the
// lines land on its ticks.
func (g *GridLines) SetMinTickSpacing(px float64) {
	if px > 0 && g.minTickSpacing != px {
		g.minTickSpacing = px
		g.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// SetZoom shows only the lines inside the [from, to] ratio window, the
// same way Axis.SetZoom does.
func (g *GridLines) SetZoom(from, to float64) {
	if to <= from {
		return
	}
	if g.zoomFrom != from || g.zoomTo != to {
		g.zoomFrom, g.zoomTo = from, to
		g.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// SetBounds sets the data area.
func (g *GridLines) SetBounds(r geom.Rect) {
	if g.bounds != r {
		g.bounds = r
		g.Invalidate(state.Bounds, state.BoundsChanged)
	}
}

func (g *GridLines) SetContainer(l *surface.Layer) {
	if g.layer != l {
		g.layer = l
		g.Invalidate(state.Container, state.NeedsRedraw)
	}
}

func (g *GridLines) SetRecorder(r *metrics.Recorder) { g.recorder = r }

// Positions returns the pixel coordinate of every line.
func (g *GridLines) Positions() []float64 {
	if g.sc == nil {
		return nil
	}
	length := g.bounds.Height
	if g.vertical {
		length = g.bounds.Width
	}
	max := int(length/g.minTickSpacing) + 1
	if max < 2 {
		max = 2
	}
	span := g.zoomTo - g.zoomFrom
	var out []float64
	for _, t := range g.sc.Ticks(max) {
		r := (t.Ratio - g.zoomFrom) / span
		if math.IsNaN(r) || r < -1e-9 || r > 1+1e-9 {
			continue
		}
		if g.vertical {
			out = append(out, g.bounds.Left+r*g.bounds.Width)
		} else {
			out = append(out, g.bounds.Bottom()-r*g.bounds.Height)
		}
	}
	return out
}

func (g *GridLines) Draw() {
	if g.IsConsistent() || g.layer == nil {
		return
	}
	g.layer.Clear()
	if g.enabled && !g.stroke.IsNone() {
		p := g.layer.Path().SetStroke(g.stroke)
		for _, at := range g.Positions() {
			if g.vertical {
				p.MoveTo(at, g.bounds.Top).LineTo(at, g.bounds.Bottom())
			} else {
				p.MoveTo(g.bounds.Left, at).LineTo(g.bounds.Right(), at)
			}
		}
		g.recorder.Rebuild("gridLines", "lines")
	}
	g.Consume(state.Generic)
}

func (g *GridLines) Serialize() style.Settings {
	return style.Settings{
		"enabled":         g.enabled,
		"stroke":          g.stroke.Color,
		"strokeThickness": g.stroke.Thickness,
		"dashed":          g.stroke.Dashed,
	}
}

func (g *GridLines) SetupByJSON(s style.Settings) {
	g.SuspendSignalsDispatching()
	defer g.ResumeSignalsDispatching(true)

	g.SetEnabled(s.Bool("enabled", g.enabled))
	g.SetStroke(surface.Stroke{
		Color:     s.String("stroke", g.stroke.Color),
		Thickness: s.Float("strokeThickness", g.stroke.Thickness),
		Dashed:    s.Bool("dashed", g.stroke.Dashed),
	})
}

func (g *GridLines) Dispose() {
	if g.binding != nil {
		g.binding.Release()
		g.binding = nil
	}
	if g.layer != nil {
		g.layer.Clear()
	}
	g.RemoveAllListeners()
}
