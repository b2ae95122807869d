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

package heatmap

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"sigs.k8s.io/gridchart/chart/core"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/debug"
)

// TypeHeat is the only series type of a heat map.
const TypeHeat = "heat"

// Lighten is the hover fill that lightens the cell's own color.
const Lighten = "lighten"

// Record fields read by a heat series.
const (
	FieldX    = "x"
	FieldY    = "y"
	FieldHeat = "heat"
)

type cell struct {
	index  int
	rect   geom.Rect
	x, y   interface{}
	value  float64
	source string
	fill   string
}

// Series draws one colored cell per record at the (x, y) bands of two
// ordinal scales, colored through a color scale.
type Series struct {
	core.SeriesBase

	colorScale   scale.ColorScale
	colorBinding *state.Binding
	measurer     surface.TextMeasurer

	fill          style.Value[string]
	hoverFill     style.Value[string]
	stroke        surface.Stroke
	labelsEnabled bool
	labelFormat   style.Value[string]
	labelColor    string

	cells      []cell
	cellsLayer *surface.Layer
	hoverLayer *surface.Layer
}

// NewSeries returns an empty heat series measuring labels with measurer.
func NewSeries(measurer surface.TextMeasurer) *Series {
	if measurer == nil {
		measurer = surface.CellMeasurer{}
	}
	s := &Series{
		measurer:      measurer,
		hoverFill:     style.Constant(Lighten),
		stroke:        surface.Stroke{Color: "#ffffff", Thickness: 1},
		labelsEnabled: true,
		labelFormat:   style.Constant("{value}"),
		labelColor:    "#212121",
	}
	s.InitSeries(s, TypeHeat, 0)
	return s
}

func (s *Series) ColorScale() scale.ColorScale { return s.colorScale }

// SetColorScale binds the scale mapping heat values to colors.
func (s *Series) SetColorScale(sc scale.ColorScale) {
	if s.colorBinding == nil {
		if sc == nil {
			return
		}
		s.colorBinding = state.Bind(sc, s.ScaleChanged)
	} else {
		var src state.Signaller
		if sc != nil {
			src = sc
		}
		if !s.colorBinding.Rebind(src) {
			return
		}
	}
	s.colorScale = sc
	s.Invalidate(core.DataState, state.NeedsRecalculation)
}

// Scales adds the color scale to the x and y scales.
func (s *Series) Scales() []scale.Scale {
	out := s.SeriesBase.Scales()
	if s.colorScale != nil {
		out = append(out, s.colorScale)
	}
	return out
}

func (s *Series) ScaleValues(sc scale.Scale) []interface{} {
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
	if s.colorScale != nil && sc == scale.Scale(s.colorScale) {
		fields = append(fields, FieldHeat)
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

func (s *Series) Values() []float64 {
	src := s.Data()
	if src == nil {
		return nil
	}
	out := make([]float64, 0, src.Len())
	it := src.ResetIterator()
	for it.Advance() {
		if v, ok := style.AsFloat(it.Get(FieldHeat)); ok {
			out = append(out, v)
		}
	}
	return out
}

// SetFill overrides the cell color.  Computed fills see the color scale's
// color as Context.SourceColor.
func (s *Series) SetFill(v style.Value[string]) {
	s.fill = v
	s.Invalidate(state.Appearance, state.NeedsRedraw)
}

// SetHoverFill sets the fill of the hovered cell; Lighten derives it from
// the cell color.
func (s *Series) SetHoverFill(v style.Value[string]) {
	s.hoverFill = v
	s.Invalidate(core.HoverState, state.NeedsRedraw)
}

func (s *Series) SetStroke(st surface.Stroke) {
	if s.stroke != st {
		s.stroke = st
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (s *Series) SetLabelsEnabled(enabled bool) {
	if s.labelsEnabled != enabled {
		s.labelsEnabled = enabled
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (s *Series) SetLabelFormat(v style.Value[string]) {
	s.labelFormat = v
	s.Invalidate(state.Appearance, state.NeedsRedraw)
}

func (s *Series) SetLabelColor(c string) {
	if s.labelColor != c {
		s.labelColor = c
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (s *Series) context(c *cell) *style.Context {
	var fields map[string]interface{}
	if src := s.Data(); src != nil {
		fields = map[string]interface{}(src.Row(c.index))
	}
	return &style.Context{
		Index:       c.index,
		Value:       c.value,
		X:           c.x,
		Y:           c.y,
		SourceColor: c.source,
		SeriesName:  s.Name(),
		Fields:      fields,
	}
}

// Draw rebuilds the cells when anything but the hover changed, and the
// hover highlight when it changed.
func (s *Series) Draw() {
	if s.IsConsistent() || s.Layer() == nil {
		return
	}
	if s.cellsLayer == nil || s.HasInvalidationState(core.SeriesStates&^core.HoverState) {
		l := s.Layer()
		l.Clear()
		s.cellsLayer = l.Layer()
		s.hoverLayer = l.Layer()
		s.hoverLayer.SetZIndex(1)
		s.cells = s.cells[:0]
		if s.IsEnabled() && s.Data() != nil && s.XScale() != nil && s.YScale() != nil {
			s.drawCells()
			s.Recorder().Rebuild(TypeHeat, "cells")
		}
	}
	s.drawHover()
	s.Consume(core.SeriesStates)
}

func (s *Series) drawCells() {
	w := s.ZoomedBandWidth(core.X, s.XScale())
	h := s.ZoomedBandWidth(core.Y, s.YScale())
	it := s.Data().ResetIterator()
	for it.Advance() {
		x, y := it.Get(FieldX), it.Get(FieldY)
		v, ok := style.AsFloat(it.Get(FieldHeat))
		if !ok {
			continue
		}
		cx, cy := s.PixelX(x), s.PixelY(y)
		if math.IsNaN(cx) || math.IsNaN(cy) {
			continue
		}
		c := cell{
			index: it.Index(),
			rect:  geom.R(cx-w/2, cy-h/2, w, h),
			x:     x,
			y:     y,
			value: v,
		}
		if s.colorScale != nil {
			c.source = s.colorScale.ColorAt(v)
		}
		if c.source == "" {
			c.source = s.AutoStyle().Color
		}
		c.fill = c.source
		if s.fill.IsSet() {
			c.fill = s.fill.Resolve(s.context(&c))
		}
		s.cells = append(s.cells, c)
		s.cellsLayer.Rect(c.rect).SetFill(c.fill).SetStroke(s.stroke)
		if s.labelsEnabled {
			s.drawLabel(&c)
		}
	}
}

func (s *Series) drawLabel(c *cell) {
	var text string
	if s.labelFormat.IsComputed() {
		text = s.labelFormat.Resolve(s.context(c))
	} else {
		text = style.Expand(s.labelFormat.Resolve(nil), s.context(c))
	}
	if text == "" {
		return
	}
	tw, th := s.measurer.Measure(text)
	if tw > c.rect.Width || th > c.rect.Height {
		return
	}
	s.cellsLayer.Text(c.rect.Left+c.rect.Width/2, c.rect.Top+(c.rect.Height-th)/2, text).
		SetAnchor(surface.AnchorMiddle).SetColor(s.labelColor)
}

func (s *Series) drawHover() {
	s.hoverLayer.Clear()
	c := s.cellAt(s.Hovered())
	if c == nil {
		return
	}
	fill := s.hoverFill.Resolve(s.context(c))
	if fill == Lighten {
		fill = lighten(c.fill)
	}
	if fill == "" {
		return
	}
	s.hoverLayer.Rect(c.rect).SetFill(fill).SetStroke(s.stroke)
	s.Recorder().Rebuild(TypeHeat, "hover")
}

// lighten blends color a third of the way to white in Lab space.
func lighten(color string) string {
	c, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 1.0/3).Clamped().Hex()
}

func (s *Series) cellAt(index int) *cell {
	if index < 0 {
		return nil
	}
	for i := range s.cells {
		if s.cells[i].index == index {
			return &s.cells[i]
		}
	}
	return nil
}

// Cells returns the rectangles drawn for each record index.
func (s *Series) Cells() map[int]geom.Rect {
	out := make(map[int]geom.Rect, len(s.cells))
	for _, c := range s.cells {
		out[c.index] = c.rect
	}
	return out
}

// HitTest returns the cell under (x, y).
func (s *Series) HitTest(x, y float64) *core.Point {
	for i := len(s.cells) - 1; i >= 0; i-- {
		c := &s.cells[i]
		if !c.rect.Contains(x, y) {
			continue
		}
		ctx := s.context(c)
		return &core.Point{
			Series: s,
			Index:  c.index,
			X:      c.x,
			Y:      c.y,
			Value:  c.value,
			PixelX: c.rect.Left + c.rect.Width/2,
			PixelY: c.rect.Top + c.rect.Height/2,
			Color:  c.fill,
			Fields: ctx.Fields,
		}
	}
	return nil
}

func (s *Series) Serialize() style.Settings {
	out := s.SerializeBase()
	if s.fill.IsSet() {
		out["fill"] = s.fill
	}
	out["hoverFill"] = s.hoverFill
	out["stroke"] = s.stroke.Color
	out["strokeThickness"] = s.stroke.Thickness
	out["labels"] = style.Settings{
		"enabled":   s.labelsEnabled,
		"format":    s.labelFormat,
		"fontColor": s.labelColor,
	}
	return style.Sanitize(out)
}

func (s *Series) SetupByJSON(cfg style.Settings) {
	s.SuspendSignalsDispatching()
	defer s.ResumeSignalsDispatching(true)

	s.SetupBase(cfg)
	for key, set := range map[string]func(style.Value[string]){
		"fill":      s.SetFill,
		"hoverFill": s.SetHoverFill,
	} {
		if !cfg.Has(key) {
			continue
		}
		if v, ok := style.ValueOf[string](cfg[key]); ok {
			set(v)
		} else {
			debug.Warning(debug.InvalidSetting, "heat."+key, cfg[key])
		}
	}
	s.SetStroke(surface.Stroke{
		Color:     cfg.String("stroke", s.stroke.Color),
		Thickness: cfg.Float("strokeThickness", s.stroke.Thickness),
	})
	labels := cfg.Map("labels")
	s.SetLabelsEnabled(labels.Bool("enabled", s.labelsEnabled))
	if labels.Has("format") {
		if v, ok := style.ValueOf[string](labels["format"]); ok {
			s.SetLabelFormat(v)
		}
	}
	s.SetLabelColor(labels.String("fontColor", s.labelColor))
}

func (s *Series) Dispose() {
	s.colorBinding.Release()
	s.colorBinding = nil
	s.cells = nil
	s.DisposeBase()
}
