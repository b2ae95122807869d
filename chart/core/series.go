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
	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/metrics"
	"sigs.k8s.io/gridchart/chart/palette"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/debug"
)

// Series states beyond the generic ones.
const (
	DataState  = state.FirstCustom
	HoverState = state.FirstCustom << 1

	SeriesStates = state.Generic | DataState | HoverState
)

// Dimension selects the x or the y direction of a chart.
type Dimension int

const (
	X Dimension = iota
	Y
)

// AutoStyle is what the chart's palettes assign to the series at index.
type AutoStyle struct {
	Index  int
	Color  string
	Marker palette.Marker
	Hatch  palette.Hatch
}

// Point is a hit data point.
type Point struct {
	Series Series
	Index  int
	X, Y   interface{}
	Value  float64
	// PixelX and PixelY are the center of the point on the stage.
	PixelX, PixelY float64
	Color          string
	Fields         map[string]interface{}
}

// Context returns the style context describing p.
func (p *Point) Context() *style.Context {
	ctx := &style.Context{
		Index:       p.Index,
		Value:       p.Value,
		X:           p.X,
		Y:           p.Y,
		SourceColor: p.Color,
		Fields:      p.Fields,
	}
	if p.Series != nil {
		ctx.SeriesName = p.Series.Name()
	}
	return ctx
}

// Series is a set of data points drawn by a chart.  Charts own the
// drawing order; series only redraw what their own states say is stale.
type Series interface {
	state.Stateful

	Type() string
	Name() string
	IsEnabled() bool
	SetEnabled(bool)

	Data() data.Source
	SetData(data.Source)

	XScale() scale.Scale
	SetXScale(scale.Scale)
	YScale() scale.Scale
	SetYScale(scale.Scale)
	// Scales lists every scale the series feeds during auto-calc.
	Scales() []scale.Scale
	// ScaleValues returns the values the series contributes to sc.
	ScaleValues(sc scale.Scale) []interface{}

	// Values returns the numeric values summarized into statistics.
	Values() []float64
	SetStatistics(own, chart Stats)
	Statistics() Stats

	SetAutoStyle(AutoStyle)
	SetZoom(dim Dimension, from, to float64)

	SetContainer(*surface.Layer)
	SetBounds(geom.Rect)
	SetRecorder(*metrics.Recorder)
	Draw()

	// HitTest returns the point under (x, y), or nil.
	HitTest(x, y float64) *Point
	// SetHovered highlights the point at index; -1 clears the highlight.
	SetHovered(index int)

	Serialize() style.Settings
	SetupByJSON(style.Settings)
	Dispose()
}

// SeriesBase implements the bookkeeping every series shares: data and
// scale bindings, auto style, statistics, zoom and bounds.  Concrete
// series embed it and implement the drawing.
type SeriesBase struct {
	state.Base

	typ     string
	name    string
	enabled bool

	src        data.Source
	srcBinding *state.Binding

	xScale, yScale     scale.Scale
	xBinding, yBinding *state.Binding

	auto       AutoStyle
	color      style.Value[string]
	own, chart Stats

	zoom [2][2]float64

	bounds   geom.Rect
	layer    *surface.Layer
	hovered  int
	recorder *metrics.Recorder
}

// InitSeries prepares the base for target, a series of type typ
// supporting the series states plus extra.
func (s *SeriesBase) InitSeries(target interface{}, typ string, extra state.State) {
	s.typ = typ
	s.enabled = true
	s.hovered = -1
	s.zoom = [2][2]float64{{0, 1}, {0, 1}}
	s.Init(target, SeriesStates|extra)
}

func (s *SeriesBase) Type() string { return s.typ }

func (s *SeriesBase) Name() string { return s.name }

func (s *SeriesBase) SetName(name string) {
	if s.name != name {
		s.name = name
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (s *SeriesBase) IsEnabled() bool { return s.enabled }

// SetEnabled hides or shows the series.  Disabled series don't take part
// in auto ranges, so the chart recalculates.
func (s *SeriesBase) SetEnabled(enabled bool) {
	if s.enabled != enabled {
		s.enabled = enabled
		s.Invalidate(state.Enabled, state.EnabledChanged|state.NeedsRecalculation)
	}
}

func (s *SeriesBase) Data() data.Source { return s.src }

// SetData binds the series to src, unhooking it from the previous source.
func (s *SeriesBase) SetData(src data.Source) {
	if s.srcBinding == nil {
		if src == nil {
			return
		}
		s.srcBinding = state.Bind(src, s.dataChanged)
	} else if !s.srcBinding.Rebind(src) {
		return
	}
	s.src = src
	s.Invalidate(DataState, state.DataChanged|state.NeedsRecalculation)
}

func (s *SeriesBase) dataChanged(evt state.Event) {
	if evt.HasSignal(state.DataChanged) {
		s.Invalidate(DataState, state.DataChanged|state.NeedsRecalculation)
	}
}

func (s *SeriesBase) XScale() scale.Scale { return s.xScale }

func (s *SeriesBase) YScale() scale.Scale { return s.yScale }

func (s *SeriesBase) SetXScale(sc scale.Scale) {
	if s.bindScale(&s.xBinding, sc) {
		s.xScale = sc
		s.Invalidate(DataState, state.NeedsRecalculation)
	}
}

func (s *SeriesBase) SetYScale(sc scale.Scale) {
	if s.bindScale(&s.yBinding, sc) {
		s.yScale = sc
		s.Invalidate(DataState, state.NeedsRecalculation)
	}
}

// bindScale rewires *b to sc and reports whether anything changed.
func (s *SeriesBase) bindScale(b **state.Binding, sc scale.Scale) bool {
	if *b == nil {
		if sc == nil {
			return false
		}
		*b = state.Bind(sc, s.ScaleChanged)
		return true
	}
	var src state.Signaller
	if sc != nil {
		src = sc
	}
	return (*b).Rebind(src)
}

// ScaleChanged marks the geometry stale when a bound scale remaps.  Series
// with more scales bind them to this too.
func (s *SeriesBase) ScaleChanged(evt state.Event) {
	if evt.HasSignal(state.NeedsReapplication) {
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// Scales returns the x and y scales that are set.
func (s *SeriesBase) Scales() []scale.Scale {
	var out []scale.Scale
	if s.xScale != nil {
		out = append(out, s.xScale)
	}
	if s.yScale != nil {
		out = append(out, s.yScale)
	}
	return out
}

// SetAutoStyle stores what the chart palettes assigned.
func (s *SeriesBase) SetAutoStyle(a AutoStyle) {
	if s.auto != a {
		s.auto = a
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (s *SeriesBase) AutoStyle() AutoStyle { return s.auto }

// SetColor overrides the palette color.  Computed values get the palette
// color as Context.SourceColor.
func (s *SeriesBase) SetColor(v style.Value[string]) {
	s.color = v
	s.Invalidate(state.Appearance, state.NeedsRedraw)
}

// Color resolves the series color for ctx.
func (s *SeriesBase) Color(ctx *style.Context) string {
	if !s.color.IsSet() {
		return s.auto.Color
	}
	if ctx == nil {
		ctx = &style.Context{SeriesName: s.name}
	}
	if ctx.SourceColor == "" {
		ctx.SourceColor = s.auto.Color
	}
	return s.color.Resolve(ctx)
}

func (s *SeriesBase) SetStatistics(own, chart Stats) {
	s.own, s.chart = own, chart
}

func (s *SeriesBase) Statistics() Stats { return s.own }

func (s *SeriesBase) ChartStatistics() Stats { return s.chart }

// SetZoom shows only the [from, to] ratio window of dimension dim.
func (s *SeriesBase) SetZoom(dim Dimension, from, to float64) {
	if to <= from {
		debug.Warning(debug.InvalidSetting, "series.zoom", from, to)
		return
	}
	if s.zoom[dim] != [2]float64{from, to} {
		s.zoom[dim] = [2]float64{from, to}
		s.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// Ratio maps a scale ratio into the zoomed window of dim.
func (s *SeriesBase) Ratio(dim Dimension, r float64) float64 {
	z := s.zoom[dim]
	return (r - z[0]) / (z[1] - z[0])
}

// PixelX converts an x value to a stage coordinate.
func (s *SeriesBase) PixelX(v interface{}) float64 {
	if s.xScale == nil {
		return s.bounds.Left
	}
	return s.bounds.Left + s.Ratio(X, s.xScale.Transform(v))*s.bounds.Width
}

// PixelY converts a y value to a stage coordinate, ratios growing upwards.
func (s *SeriesBase) PixelY(v interface{}) float64 {
	if s.yScale == nil {
		return s.bounds.Bottom()
	}
	return s.bounds.Bottom() - s.Ratio(Y, s.yScale.Transform(v))*s.bounds.Height
}

// ZoomedBandWidth is the pixel width of one band of an ordinal scale in
// dimension dim.
func (s *SeriesBase) ZoomedBandWidth(dim Dimension, sc scale.Scale) float64 {
	o, ok := sc.(*scale.Ordinal)
	if !ok {
		return 0
	}
	z := s.zoom[dim]
	extent := s.bounds.Width
	if dim == Y {
		extent = s.bounds.Height
	}
	return o.BandWidth() / (z[1] - z[0]) * extent
}

func (s *SeriesBase) Bounds() geom.Rect { return s.bounds }

func (s *SeriesBase) SetBounds(r geom.Rect) {
	if s.bounds != r {
		s.bounds = r
		s.Invalidate(state.Bounds, state.BoundsChanged)
	}
}

func (s *SeriesBase) Layer() *surface.Layer { return s.layer }

func (s *SeriesBase) SetContainer(l *surface.Layer) {
	if s.layer != l {
		s.layer = l
		s.Invalidate(state.Container, state.NeedsRedraw)
	}
}

func (s *SeriesBase) Recorder() *metrics.Recorder { return s.recorder }

func (s *SeriesBase) SetRecorder(r *metrics.Recorder) { s.recorder = r }

func (s *SeriesBase) Hovered() int { return s.hovered }

// SetHovered highlights the point at index; -1 clears the highlight.
func (s *SeriesBase) SetHovered(index int) {
	if s.hovered != index {
		s.hovered = index
		s.Invalidate(HoverState, state.NeedsRedraw)
	}
}

// SerializeBase returns the settings every series has.
func (s *SeriesBase) SerializeBase() style.Settings {
	out := style.Settings{
		"type":    s.typ,
		"name":    s.name,
		"enabled": s.enabled,
	}
	if s.color.IsSet() {
		out["color"] = s.color
	}
	if set, ok := s.src.(*data.Set); ok {
		rows := make([]interface{}, 0, set.Len())
		for _, r := range set.Rows() {
			rows = append(rows, style.Settings(r))
		}
		out["data"] = rows
	}
	return out
}

// SetupBase applies the settings every series has.
func (s *SeriesBase) SetupBase(cfg style.Settings) {
	s.SetName(cfg.String("name", s.name))
	s.SetEnabled(cfg.Bool("enabled", s.enabled))
	if cfg.Has("color") {
		if v, ok := style.ValueOf[string](cfg["color"]); ok {
			s.SetColor(v)
		} else {
			debug.Warning(debug.InvalidSetting, "series.color", cfg["color"])
		}
	}
	if cfg.Has("data") {
		s.SetData(data.SetFromSettings(cfg.List("data")))
	}
}

// DisposeBase releases the data and scale bindings and clears the layer.
// Scales are never disposed by a series.
func (s *SeriesBase) DisposeBase() {
	for _, b := range []*state.Binding{s.srcBinding, s.xBinding, s.yBinding} {
		b.Release()
	}
	s.srcBinding, s.xBinding, s.yBinding = nil, nil, nil
	if s.layer != nil {
		s.layer.Clear()
	}
	s.RemoveAllListeners()
}
