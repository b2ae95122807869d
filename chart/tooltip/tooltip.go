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

// Package tooltip draws the floating label shown next to the hovered point
// or row.
package tooltip

import (
	"strings"

	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

// DefaultFormat is used when no format was configured.
const DefaultFormat = "{name}: {value}"

// Tooltip is an overlay layer with a background box and one text line per
// line of the formatted text.
type Tooltip struct {
	state.Base

	stage *surface.Stage
	layer *surface.Layer

	enabled bool
	format  style.Value[string]
	fill    string
	color   string

	visible bool
	text    string
}

// New creates a hidden tooltip drawing on stage above everything else.
func New(stage *surface.Stage) *Tooltip {
	t := &Tooltip{
		stage:   stage,
		enabled: true,
		format:  style.Constant(DefaultFormat),
		fill:    "#212121",
		color:   "#ffffff",
	}
	t.Init(t, state.Appearance|state.Enabled)
	t.layer = stage.Root().Layer()
	t.layer.SetZIndex(1000)
	return t
}

func (t *Tooltip) IsEnabled() bool { return t.enabled }

func (t *Tooltip) SetEnabled(enabled bool) {
	if t.enabled == enabled {
		return
	}
	t.enabled = enabled
	if !enabled {
		t.Hide()
	}
	t.Invalidate(state.Enabled, state.EnabledChanged)
}

// SetFormat sets the text template (or function of the context).
func (t *Tooltip) SetFormat(v style.Value[string]) {
	t.format = v
	t.Invalidate(state.Appearance, 0)
}

// SetColors sets the background and text colors.
func (t *Tooltip) SetColors(fill, text string) {
	if t.fill == fill && t.color == text {
		return
	}
	t.fill, t.color = fill, text
	t.Invalidate(state.Appearance, 0)
}

// Format renders the text for ctx.  Computed formats are used as is; constant
// ones are expanded as templates.
func (t *Tooltip) Format(ctx *style.Context) string {
	if t.format.IsComputed() {
		return t.format.Resolve(ctx)
	}
	return style.Expand(t.format.Resolve(ctx), ctx)
}

// Show places the tooltip next to (x, y), keeping it inside the stage.
func (t *Tooltip) Show(x, y float64, ctx *style.Context) {
	if !t.enabled {
		return
	}
	text := t.Format(ctx)
	if text == "" {
		t.Hide()
		return
	}
	t.visible = true
	t.text = text
	t.draw(x, y)
	t.Consume(state.Appearance | state.Enabled)
}

func (t *Tooltip) draw(x, y float64) {
	t.layer.Clear()
	lines := strings.Split(t.text, "\n")
	m := t.stage.Measurer()
	var w, lineH float64
	for _, l := range lines {
		lw, lh := m.Measure(l)
		if lw > w {
			w = lw
		}
		if lh > lineH {
			lineH = lh
		}
	}
	box := geom.R(x+1, y+1, w+2, lineH*float64(len(lines)))
	sw, sh := t.stage.Size()
	if box.Right() > sw {
		box.Left = x - box.Width - 1
	}
	if box.Bottom() > sh {
		box.Top = y - box.Height - 1
	}
	if box.Left < 0 {
		box.Left = 0
	}
	if box.Top < 0 {
		box.Top = 0
	}
	t.layer.Rect(box).SetFill(t.fill)
	for i, l := range lines {
		t.layer.Text(box.Left+1, box.Top+float64(i)*lineH, l).SetColor(t.color)
	}
	t.layer.SetVisible(true)
}

// Hide removes the tooltip.
func (t *Tooltip) Hide() {
	if !t.visible {
		return
	}
	t.visible = false
	t.text = ""
	t.layer.Clear()
	t.layer.SetVisible(false)
}

func (t *Tooltip) IsVisible() bool { return t.visible }

// Text returns the text currently shown.
func (t *Tooltip) Text() string { return t.text }

// Bounds returns the box of the visible tooltip.
func (t *Tooltip) Bounds() geom.Rect {
	if !t.visible {
		return geom.Rect{}
	}
	return t.layer.Bounds()
}

// Dispose removes the tooltip layer from the stage.
func (t *Tooltip) Dispose() {
	t.layer.Remove()
	t.RemoveAllListeners()
}

func (t *Tooltip) Serialize() style.Settings {
	return style.Sanitize(style.Settings{
		"enabled":   t.enabled,
		"fill":      t.fill,
		"fontColor": t.color,
		"format":    t.format,
	})
}

func (t *Tooltip) SetupByJSON(cfg style.Settings) {
	if cfg == nil {
		return
	}
	t.SetEnabled(cfg.Bool("enabled", t.enabled))
	if f, ok := style.ValueOf[string](cfg["format"]); ok {
		t.SetFormat(f)
	}
	t.SetColors(cfg.String("fill", t.fill), cfg.String("fontColor", t.color))
}
