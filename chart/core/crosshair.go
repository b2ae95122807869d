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

package core

import (
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

// PositionState is set when the crosshair moved.
const PositionState = state.FirstCustom

// Crosshair draws a horizontal and a vertical line through the pointer
// while it is inside the data area.
type Crosshair struct {
	state.Base

	enabled bool
	stroke  surface.Stroke

	bounds  geom.Rect
	x, y    float64
	visible bool

	layer *surface.Layer
}

// NewCrosshair returns a disabled crosshair.
func NewCrosshair() *Crosshair {
	c := &Crosshair{
		stroke: surface.Stroke{Color: "#969EA5", Thickness: 1},
	}
	c.Init(c, state.Generic|PositionState)
	return c
}

func (c *Crosshair) IsEnabled() bool { return c.enabled }

func (c *Crosshair) SetEnabled(enabled bool) {
	if c.enabled != enabled {
		c.enabled = enabled
		c.Invalidate(state.Enabled, state.EnabledChanged)
	}
}

func (c *Crosshair) SetStroke(s surface.Stroke) {
	if c.stroke != s {
		c.stroke = s
		c.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// SetBounds sets the data area the lines span.
func (c *Crosshair) SetBounds(r geom.Rect) {
	if c.bounds != r {
		c.bounds = r
		c.Invalidate(state.Bounds, state.NeedsRedraw)
	}
}

func (c *Crosshair) SetContainer(l *surface.Layer) {
	if c.layer != l {
		c.layer = l
		c.Invalidate(state.Container, state.NeedsRedraw)
	}
}

// MoveTo places the lines through (x, y).  Points outside the data area
// hide them.
func (c *Crosshair) MoveTo(x, y float64) {
	visible := c.bounds.Contains(x, y)
	if visible == c.visible && (!visible || (c.x == x && c.y == y)) {
		return
	}
	c.x, c.y, c.visible = x, y, visible
	c.Invalidate(PositionState, state.NeedsRedraw)
}

// Hide removes the lines until the next MoveTo.
func (c *Crosshair) Hide() {
	if c.visible {
		c.visible = false
		c.Invalidate(PositionState, state.NeedsRedraw)
	}
}

// Position returns where the lines cross and whether they are shown.
func (c *Crosshair) Position() (x, y float64, visible bool) {
	return c.x, c.y, c.visible && c.enabled
}

func (c *Crosshair) Draw() {
	if c.IsConsistent() || c.layer == nil {
		return
	}
	c.layer.Clear()
	if c.enabled && c.visible && !c.stroke.IsNone() {
		c.layer.Path().SetStroke(c.stroke).
			MoveTo(c.bounds.Left, c.y).LineTo(c.bounds.Right(), c.y).
			MoveTo(c.x, c.bounds.Top).LineTo(c.x, c.bounds.Bottom())
	}
	c.Consume(state.Generic | PositionState)
}

func (c *Crosshair) Serialize() style.Settings {
	return style.Settings{
		"enabled":         c.enabled,
		"stroke":          c.stroke.Color,
		"strokeThickness": c.stroke.Thickness,
	}
}

func (c *Crosshair) SetupByJSON(s style.Settings) {
	c.SuspendSignalsDispatching()
	defer c.ResumeSignalsDispatching(true)

	c.SetEnabled(s.Bool("enabled", c.enabled))
	c.SetStroke(surface.Stroke{
		Color:     s.String("stroke", c.stroke.Color),
		Thickness: s.Float("strokeThickness", c.stroke.Thickness),
		Dashed:    c.stroke.Dashed,
	})
}

func (c *Crosshair) Dispose() {
	if c.layer != nil {
		c.layer.Clear()
	}
	c.RemoveAllListeners()
}
