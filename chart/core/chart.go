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

// Package core is the orchestrator shared by every chart type.  A Chart
// owns series, axes, grid lines, a scroller, a crosshair, palettes and the
// scales it created, maps their signals onto its own dirty states and
// redraws only the phases those states name.
package core

import (
	"github.com/google/uuid"

	"sigs.k8s.io/gridchart/chart/axis"
	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/layout"
	"sigs.k8s.io/gridchart/chart/metrics"
	"sigs.k8s.io/gridchart/chart/palette"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/chart/tooltip"
	"sigs.k8s.io/gridchart/debug"
)

// Chart states beyond the generic ones.  Bounds doubles as the layout
// state.
const (
	ScalesState = state.FirstCustom << iota
	AxesState
	GridsState
	SeriesState
	PaletteState
	ScrollersState
	CrosshairState

	ChartStates = state.Generic | ScalesState | AxesState | GridsState | SeriesState |
		PaletteState | ScrollersState | CrosshairState
)

const appearanceStates = state.Appearance | state.Enabled | state.ZIndex | state.Container

// Kind describes a chart type to the orchestrator.
type Kind struct {
	Name string
	// DefaultSeries is the series type used when none is named.
	DefaultSeries string
	Series        *Registry
	// NewXScale and NewYScale create the default scales.
	NewXScale, NewYScale func() scale.Scale
	TooltipFormat        string
}

type gridEntry struct {
	lines *axis.GridLines
	dim   Dimension
}

// Chart is the orchestrator.  It is driven from a single goroutine.
type Chart struct {
	state.Base

	id       string
	kind     Kind
	stage    *surface.Stage
	recorder *metrics.Recorder
	solver   layout.Solver

	bounds      geom.Rect
	dataBounds  geom.Rect
	background  string
	calculating bool

	series       []Series
	seriesLayers []*surface.Layer
	scales       [2]scale.Scale
	extraScales  []scale.Scale
	owned        map[scale.Scale]bool
	bindings     map[state.Signaller]*state.Binding

	axes      []*axis.Axis
	grids     []gridEntry
	scroller  *axis.Scroller
	crosshair *Crosshair
	tooltip   *tooltip.Tooltip

	colors  *palette.Palette[string]
	markers *palette.Palette[palette.Marker]
	hatches *palette.Palette[palette.Hatch]

	root          *surface.Layer
	bg            *surface.Layer
	gridLayer     *surface.Layer
	seriesLayer   *surface.Layer
	plot          *surface.Layer
	axesLayer     *surface.Layer
	scrollerLayer *surface.Layer
	overlay       *surface.Layer

	hover  *Point
	points pointListeners
	stats  Stats
}

// New creates a chart of kind on stage with its default scales, a bottom
// x axis, a left y axis and a disabled scroller.
func New(stage *surface.Stage, kind Kind) *Chart {
	c := &Chart{
		id:         uuid.NewString(),
		kind:       kind,
		stage:      stage,
		background: "#ffffff",
		owned:      map[scale.Scale]bool{},
		bindings:   map[state.Signaller]*state.Binding{},
	}
	c.Init(c, ChartStates)

	c.root = stage.Root().Layer()
	c.bg = c.root.Layer()
	c.gridLayer = c.root.Layer()
	c.gridLayer.SetZIndex(1)
	c.seriesLayer = c.root.Layer()
	c.seriesLayer.SetZIndex(2)
	c.plot = c.root.Layer()
	c.plot.SetZIndex(3)
	c.plot.SetHitArea(geom.Rect{})
	c.plot.OnPointer(c.handlePointer)
	c.axesLayer = c.root.Layer()
	c.axesLayer.SetZIndex(4)
	c.scrollerLayer = c.root.Layer()
	c.scrollerLayer.SetZIndex(5)
	c.overlay = c.root.Layer()
	c.overlay.SetZIndex(6)

	theme := style.DefaultTheme().Global
	c.colors = palette.Colors(theme.Strings("palette"))
	c.markers = palette.Markers(theme.Strings("markers"))
	c.hatches = palette.Hatches(theme.Strings("hatches"))
	for _, p := range []state.Signaller{c.colors, c.markers, c.hatches} {
		c.listen(p, c.paletteChanged)
	}

	c.tooltip = tooltip.New(stage)
	if kind.TooltipFormat != "" {
		c.tooltip.SetFormat(style.Constant(kind.TooltipFormat))
	}

	c.crosshair = NewCrosshair()
	c.crosshair.SetContainer(c.overlay)
	c.listen(c.crosshair, func(state.Event) {
		c.Invalidate(CrosshairState, state.NeedsRedraw)
	})

	c.scroller = axis.NewScroller(stage)
	c.scroller.SetContainer(c.scrollerLayer)
	c.listen(c.scroller, c.scrollerChanged)

	if kind.NewXScale != nil {
		c.setScale(X, kind.NewXScale(), true)
	}
	if kind.NewYScale != nil {
		c.setScale(Y, kind.NewYScale(), true)
	}
	c.AddAxis(geom.Bottom)
	c.AddAxis(geom.Left)
	return c
}

// ID is a unique identifier of the chart instance.
func (c *Chart) ID() string { return c.id }

func (c *Chart) Kind() Kind { return c.kind }

func (c *Chart) Stage() *surface.Stage { return c.stage }

// SetRecorder makes the chart and its parts count their work.
func (c *Chart) SetRecorder(r *metrics.Recorder) {
	c.recorder = r
	for _, a := range c.axes {
		a.SetRecorder(r)
	}
	for _, g := range c.grids {
		g.lines.SetRecorder(r)
	}
	for _, s := range c.series {
		s.SetRecorder(r)
	}
}

func (c *Chart) listen(src state.Signaller, l state.Listener) {
	if _, ok := c.bindings[src]; ok {
		return
	}
	c.bindings[src] = state.Bind(src, l)
}

func (c *Chart) unlisten(src state.Signaller) {
	if b, ok := c.bindings[src]; ok {
		b.Release()
		delete(c.bindings, src)
	}
}

func dimOf(side geom.Side) Dimension {
	if side.IsHorizontal() {
		return X
	}
	return Y
}

// Bounds returns the area the chart draws in.  An empty rectangle means
// the whole stage.
func (c *Chart) Bounds() geom.Rect { return c.bounds }

func (c *Chart) SetBounds(r geom.Rect) {
	if c.bounds != r {
		c.bounds = r
		c.Invalidate(state.Bounds, state.BoundsChanged)
	}
}

func (c *Chart) contentBounds() geom.Rect {
	if c.bounds.IsEmpty() {
		return c.stage.Bounds()
	}
	return c.bounds
}

// DataBounds is the area left for the series after the last layout.
func (c *Chart) DataBounds() geom.Rect { return c.dataBounds }

func (c *Chart) Background() string { return c.background }

func (c *Chart) SetBackground(color string) {
	if c.background != color {
		c.background = color
		c.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// Palette returns the series color palette.
func (c *Chart) Palette() *palette.Palette[string] { return c.colors }

func (c *Chart) MarkerPalette() *palette.Palette[palette.Marker] { return c.markers }

func (c *Chart) HatchPalette() *palette.Palette[palette.Hatch] { return c.hatches }

func (c *Chart) Tooltip() *tooltip.Tooltip { return c.tooltip }

func (c *Chart) Crosshair() *Crosshair { return c.crosshair }

func (c *Chart) Scroller() *axis.Scroller { return c.scroller }

// Statistics returns the summary of every enabled series, as of the last
// calculation.
func (c *Chart) Statistics() Stats { return c.stats }

func (c *Chart) paletteChanged(evt state.Event) {
	c.Invalidate(PaletteState|SeriesState, state.NeedsRedraw)
}

func (c *Chart) seriesChanged(evt state.Event) {
	if evt.HasSignal(state.DataChanged | state.NeedsRecalculation | state.EnabledChanged) {
		c.Invalidate(ScalesState|SeriesState, state.NeedsRecalculation)
		return
	}
	c.Invalidate(SeriesState, state.NeedsRedraw)
}

func (c *Chart) axisChanged(evt state.Event) {
	if evt.HasSignal(state.BoundsChanged) {
		c.Invalidate(state.Bounds|AxesState, state.BoundsChanged)
		return
	}
	c.Invalidate(AxesState, state.NeedsRedraw)
}

func (c *Chart) scaleChanged(evt state.Event) {
	if !evt.HasSignal(state.NeedsReapplication) {
		return
	}
	bits := SeriesState | AxesState | GridsState
	// A data-driven scale changed by hand has to be recalculated.
	if sc, ok := evt.Target.(scale.Scale); ok && !c.calculating && sc.NeedsAutoCalc() {
		bits |= ScalesState
	}
	c.Invalidate(bits, state.NeedsReapplication)
}

func (c *Chart) scrollerChanged(evt state.Event) {
	switch {
	case evt.HasSignal(state.NeedsReapplication):
		c.applyZoom()
		c.Invalidate(SeriesState|ScrollersState, state.NeedsRedraw)
	case evt.HasSignal(state.BoundsChanged):
		c.Invalidate(state.Bounds|ScrollersState, state.BoundsChanged)
	default:
		c.Invalidate(ScrollersState, state.NeedsRedraw)
	}
}

// applyZoom hands the scroller window to everything in its dimension.
func (c *Chart) applyZoom() {
	from, to := c.scroller.Range()
	dim := dimOf(c.scroller.Orientation())
	for _, a := range c.axes {
		if dimOf(a.Orientation()) == dim {
			a.SetZoom(from, to)
		}
	}
	for _, g := range c.grids {
		if g.dim == dim {
			g.lines.SetZoom(from, to)
		}
	}
	for _, s := range c.series {
		s.SetZoom(dim, from, to)
	}
}

// XScale returns the default x scale.
func (c *Chart) XScale() scale.Scale { return c.scales[X] }

// YScale returns the default y scale.
func (c *Chart) YScale() scale.Scale { return c.scales[Y] }

// SetXScale replaces the default x scale with an external one, which the
// chart will not dispose.
func (c *Chart) SetXScale(sc scale.Scale) { c.setScale(X, sc, false) }

func (c *Chart) SetYScale(sc scale.Scale) { c.setScale(Y, sc, false) }

// setScale swaps the default scale of dim, moving every axis, grid and
// series that used the previous one.
func (c *Chart) setScale(dim Dimension, sc scale.Scale, owned bool) {
	old := c.scales[dim]
	if sc == nil || old == sc {
		return
	}
	c.scales[dim] = sc
	c.watchScale(sc)
	if owned {
		c.owned[sc] = true
	}
	for _, a := range c.axes {
		if dimOf(a.Orientation()) == dim && (a.Scale() == nil || a.Scale() == old) {
			a.SetScale(sc)
		}
	}
	for _, g := range c.grids {
		if g.dim == dim && (g.lines.Scale() == nil || g.lines.Scale() == old) {
			g.lines.SetScale(sc)
		}
	}
	for _, s := range c.series {
		if dim == X && s.XScale() == old {
			s.SetXScale(sc)
		} else if dim == Y && s.YScale() == old {
			s.SetYScale(sc)
		}
	}
	if old != nil {
		c.releaseScale(old)
	}
	c.Invalidate(ScalesState|SeriesState|AxesState|GridsState, state.NeedsRecalculation)
}

// SetupScale applies settings to the default scale of dim, replacing it
// with a new owned scale when the settings name another type.
func (c *Chart) SetupScale(dim Dimension, s style.Settings) {
	cur := c.scales[dim]
	if cur != nil && s.String("type", cur.Type()) == cur.Type() {
		cur.SetupByJSON(s)
		return
	}
	def := ""
	if cur != nil {
		def = cur.Type()
	}
	if sc, ok := scale.FromSettings(s, def); ok {
		c.setScale(dim, sc, true)
	}
}

// AddScale makes the chart watch a scale used besides the x and y ones.
// Owned scales are disposed with the chart.
func (c *Chart) AddScale(sc scale.Scale, owned bool) {
	if sc == nil {
		return
	}
	c.watchScale(sc)
	if owned {
		c.owned[sc] = true
	}
	c.extraScales = append(c.extraScales, sc)
	c.Invalidate(ScalesState|SeriesState, state.NeedsRecalculation)
}

// RemoveScale forgets a scale added with AddScale, disposing it if owned.
func (c *Chart) RemoveScale(sc scale.Scale) {
	for i, e := range c.extraScales {
		if e == sc {
			c.extraScales = append(c.extraScales[:i], c.extraScales[i+1:]...)
			c.releaseScale(sc)
			return
		}
	}
}

// OwnsScale reports whether the chart created sc and will dispose it.
func (c *Chart) OwnsScale(sc scale.Scale) bool { return c.owned[sc] }

func (c *Chart) watchScale(sc scale.Scale) {
	c.listen(sc, c.scaleChanged)
}

func (c *Chart) releaseScale(sc scale.Scale) {
	c.unlisten(sc)
	if c.owned[sc] {
		delete(c.owned, sc)
		scale.Dispose(sc)
	}
}

// AddAxis adds an axis on side bound to the default scale of its
// dimension.
func (c *Chart) AddAxis(side geom.Side) *axis.Axis {
	a := axis.New(side, c.stage.Measurer())
	a.SetContainer(c.axesLayer.Layer())
	a.SetRecorder(c.recorder)
	dim := dimOf(side)
	if sc := c.scales[dim]; sc != nil {
		a.SetScale(sc)
	}
	if dimOf(c.scroller.Orientation()) == dim {
		if from, to := c.scroller.Range(); from != 0 || to != 1 {
			a.SetZoom(from, to)
		}
	}
	c.axes = append(c.axes, a)
	c.listen(a, c.axisChanged)
	c.Invalidate(state.Bounds|AxesState, state.BoundsChanged)
	return a
}

// Axes returns every axis.
func (c *Chart) Axes() []*axis.Axis { return append([]*axis.Axis(nil), c.axes...) }

// XAxis returns the first axis of the x dimension, or nil.
func (c *Chart) XAxis() *axis.Axis { return c.firstAxis(X) }

// YAxis returns the first axis of the y dimension, or nil.
func (c *Chart) YAxis() *axis.Axis { return c.firstAxis(Y) }

func (c *Chart) firstAxis(dim Dimension) *axis.Axis {
	for _, a := range c.axes {
		if dimOf(a.Orientation()) == dim {
			return a
		}
	}
	return nil
}

// AddGridLines adds lines across the data area at the ticks of the default
// scale of dim.
func (c *Chart) AddGridLines(dim Dimension) *axis.GridLines {
	g := axis.NewGridLines(dim == X)
	g.SetContainer(c.gridLayer.Layer())
	g.SetRecorder(c.recorder)
	g.SetBounds(c.dataBounds)
	if sc := c.scales[dim]; sc != nil {
		g.SetScale(sc)
	}
	c.grids = append(c.grids, gridEntry{lines: g, dim: dim})
	c.listen(g, func(state.Event) {
		c.Invalidate(GridsState, state.NeedsRedraw)
	})
	c.Invalidate(GridsState, state.NeedsRedraw)
	return g
}

// GridLines returns every set of grid lines.
func (c *Chart) GridLines() []*axis.GridLines {
	out := make([]*axis.GridLines, len(c.grids))
	for i, g := range c.grids {
		out[i] = g.lines
	}
	return out
}

// AddSeries creates a series of type typ (the kind's default when empty)
// over src.  Unknown types are reported and leave the chart unchanged.
func (c *Chart) AddSeries(typ string, src data.Source) (Series, bool) {
	if typ == "" {
		typ = c.kind.DefaultSeries
	}
	if c.kind.Series == nil {
		debug.Warning(debug.SeriesTypeNotSupported, typ)
		return nil, false
	}
	s, ok := c.kind.Series.New(typ)
	if !ok {
		return nil, false
	}
	if src != nil {
		s.SetData(src)
	}
	c.attach(s)
	return s, true
}

func (c *Chart) attach(s Series) {
	l := c.seriesLayer.Layer()
	l.SetZIndex(float64(len(c.series)))
	c.series = append(c.series, s)
	c.seriesLayers = append(c.seriesLayers, l)
	s.SetContainer(l)
	s.SetRecorder(c.recorder)
	s.SetBounds(c.dataBounds)
	if from, to := c.scroller.Range(); from != 0 || to != 1 {
		s.SetZoom(dimOf(c.scroller.Orientation()), from, to)
	}
	c.listen(s, c.seriesChanged)
	c.Invalidate(PaletteState|ScalesState|SeriesState, state.NeedsRecalculation)
}

// RemoveSeries disposes s and drops it from the chart.
func (c *Chart) RemoveSeries(s Series) bool {
	for i, e := range c.series {
		if e != s {
			continue
		}
		if c.hover != nil && c.hover.Series == s {
			c.hover = nil
			c.tooltip.Hide()
		}
		c.unlisten(s)
		s.Dispose()
		c.seriesLayers[i].Remove()
		c.series = append(c.series[:i], c.series[i+1:]...)
		c.seriesLayers = append(c.seriesLayers[:i], c.seriesLayers[i+1:]...)
		c.Invalidate(PaletteState|ScalesState|SeriesState, state.NeedsRecalculation)
		return true
	}
	return false
}

// Series returns every series in drawing order.
func (c *Chart) Series() []Series { return append([]Series(nil), c.series...) }

// Draw brings the stage up to date.  Phases run in a fixed order, each only
// when its states are dirty, and each marks consistent exactly the states
// it handled.  Drawing a consistent chart does nothing.
func (c *Chart) Draw() {
	if c.IsConsistent() {
		return
	}
	c.SuspendSignalsDispatching()
	defer c.ResumeSignalsDispatching(false)

	c.recorder.DrawPass(c.kind.Name)
	if c.HasInvalidationState(PaletteState) {
		c.beforeDraw()
		c.Consume(PaletteState)
	}
	if c.HasInvalidationState(ScalesState) {
		c.calculate()
		c.Consume(ScalesState)
	}
	c.drawContent()
}

// beforeDraw hands out palette entries by series index.
func (c *Chart) beforeDraw() {
	for i, s := range c.series {
		s.SetAutoStyle(AutoStyle{
			Index:  i,
			Color:  c.colors.ItemAt(i),
			Marker: c.markers.ItemAt(i),
			Hatch:  c.hatches.ItemAt(i),
		})
	}
}

// calculate binds default scales, runs the auto range of every data-driven
// scale over the enabled series using it and refreshes the statistics.
func (c *Chart) calculate() {
	c.calculating = true
	defer func() { c.calculating = false }()

	var order []scale.Scale
	groups := map[scale.Scale][]Series{}
	for _, s := range c.series {
		if s.XScale() == nil && c.scales[X] != nil {
			s.SetXScale(c.scales[X])
		}
		if s.YScale() == nil && c.scales[Y] != nil {
			s.SetYScale(c.scales[Y])
		}
		for _, sc := range s.Scales() {
			if _, seen := groups[sc]; !seen {
				order = append(order, sc)
				c.watchScale(sc)
			}
			groups[sc] = append(groups[sc], s)
		}
	}
	for _, sc := range order {
		if !sc.NeedsAutoCalc() {
			continue
		}
		sc.SuspendSignalsDispatching()
		sc.StartAutoCalc()
		for _, s := range groups[sc] {
			if s.IsEnabled() {
				sc.ExtendDataRange(s.ScaleValues(sc)...)
			}
		}
		sc.FinishAutoCalc()
		sc.ResumeSignalsDispatching(true)
	}

	own := make([]Stats, len(c.series))
	var all []float64
	for i, s := range c.series {
		values := s.Values()
		own[i] = ComputeStats(values)
		if s.IsEnabled() {
			all = append(all, values...)
		}
	}
	c.stats = ComputeStats(all)
	for i, s := range c.series {
		s.SetStatistics(own[i], c.stats)
	}
}

func (c *Chart) drawContent() {
	if c.HasInvalidationState(appearanceStates | state.Bounds) {
		c.drawBackground()
		c.Consume(appearanceStates)
	}
	if c.HasInvalidationState(state.Bounds | AxesState) {
		c.layout()
		c.Consume(state.Bounds)
	}
	if c.HasInvalidationState(GridsState) {
		for _, g := range c.grids {
			g.lines.Draw()
		}
		c.Consume(GridsState)
	}
	if c.HasInvalidationState(AxesState) {
		for _, a := range c.axes {
			a.Draw()
		}
		c.Consume(AxesState)
	}
	if c.HasInvalidationState(SeriesState) {
		for _, s := range c.series {
			s.Draw()
		}
		c.Consume(SeriesState)
	}
	if c.HasInvalidationState(ScrollersState) {
		c.scroller.Draw()
		c.Consume(ScrollersState)
	}
	if c.HasInvalidationState(CrosshairState) {
		c.crosshair.Draw()
		c.Consume(CrosshairState)
	}
}

func (c *Chart) drawBackground() {
	c.bg.Clear()
	if c.background != "" {
		c.bg.Rect(c.contentBounds()).SetFill(c.background)
	}
	c.recorder.Rebuild(c.kind.Name, "background")
}

// layout places the axes and the scroller and hands the remaining data
// area to everything drawn inside it.
func (c *Chart) layout() {
	content := c.contentBounds()
	axes := make([]layout.Element, 0, len(c.axes))
	for _, a := range c.axes {
		axes = append(axes, a)
	}
	var before, after []layout.Element
	if c.scroller.Position() == axis.BeforeAxes {
		before = append(before, c.scroller)
	} else {
		after = append(after, c.scroller)
	}
	res := c.solver.Solve(content, before, axes, after)
	c.recorder.LayoutSolved(res.Attempts, res.Converged)
	c.setDataBounds(res.DataBounds)
}

func (c *Chart) setDataBounds(r geom.Rect) {
	if c.dataBounds == r {
		return
	}
	c.dataBounds = r
	c.plot.SetHitArea(r)
	c.seriesLayer.Clip(r)
	for _, s := range c.series {
		s.SetBounds(r)
	}
	for _, g := range c.grids {
		g.lines.SetBounds(r)
	}
	c.crosshair.SetBounds(r)
}

// Dispose releases every binding, disposes the parts the chart created
// (including the scales it owns) and removes its layers.  External scales
// are left alone.
func (c *Chart) Dispose() {
	for _, s := range c.series {
		s.Dispose()
	}
	for _, a := range c.axes {
		a.Dispose()
	}
	for _, g := range c.grids {
		g.lines.Dispose()
	}
	c.scroller.Dispose()
	c.crosshair.Dispose()
	c.tooltip.Dispose()
	for _, b := range c.bindings {
		b.Release()
	}
	for sc := range c.owned {
		scale.Dispose(sc)
	}
	c.bindings = map[state.Signaller]*state.Binding{}
	c.owned = map[scale.Scale]bool{}
	c.series, c.seriesLayers, c.axes, c.grids = nil, nil, nil, nil
	c.hover = nil
	c.root.Remove()
	c.RemoveAllListeners()
}
