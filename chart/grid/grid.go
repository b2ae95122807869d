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

// Package grid is the interactive row grid: a scrollable, collapsible tree
// of rows with hover, selection, tooltips, drag scrolling and drag-and-drop
// reordering, optionally paired with a Gantt timeline.
package grid

import (
	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/metrics"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/chart/tooltip"
	"sigs.k8s.io/gridchart/debug"
)

// Grid states beyond the generic and controller ones.
const (
	HeaderState   = state.FirstCustom << 2
	TimelineState = state.FirstCustom << 3

	supported = state.Generic | ItemsState | PositionState | HeaderState | TimelineState
)

// Scrollable receives scroll-drag and wheel deltas.
type Scrollable interface {
	Scroll(dx, dy float64)
}

// Grid renders the visible rows of a Controller and routes pointer input
// to row events.
type Grid struct {
	state.Base

	stage    *surface.Stage
	ctrl     *Controller
	ctrlKey  state.ListenerKey
	tooltip  *tooltip.Tooltip
	timeline *Timeline
	hooks    Hooks
	rows     listeners
	dragger  *Dragger
	scroller Scrollable
	recorder *metrics.Recorder

	bounds       geom.Rect
	headerHeight float64
	headerText   string
	columnWidth  float64
	interactive  bool
	editable     bool

	oddFill, evenFill       string
	selectedFill, hoverFill string
	headerFill              string
	fontColor               string
	rowStroke               surface.Stroke

	layer   *surface.Layer
	fills   *surface.Layer
	hover   *surface.Layer
	lines   *surface.Layer
	header  *surface.Layer
	preview *surface.Layer
	bars    *surface.Layer

	cache      OffsetCache
	cacheStart int

	oddPath, evenPath, selectedPath *surface.Path

	highlighted     bool
	highlightStartY float64
	highlightEndY   float64
	hoveredItem     *data.Item
	selected        *data.Item
}

// New creates a grid over tree drawing on stage.
func New(stage *surface.Stage, tree *data.Tree) *Grid {
	g := &Grid{
		stage:        stage,
		ctrl:         NewController(tree),
		hooks:        NopHooks{},
		headerHeight: 25,
		headerText:   "Name",
		interactive:  true,
		oddFill:      "#fafafa",
		evenFill:     "#ffffff",
		selectedFill: "#d2eafa",
		hoverFill:    "#edf8ff",
		headerFill:   "#f5f5f5",
		fontColor:    "#212121",
		rowStroke:    surface.Stroke{Color: "#cecece", Thickness: 1},
	}
	g.Init(g, supported)
	g.scroller = g
	g.tooltip = tooltip.New(stage)
	g.tooltip.SetFormat(style.Constant("{name}"))
	g.dragger = newDragger(g)

	g.layer = stage.Root().Layer()
	g.layer.OnPointer(g.handlePointer)
	content := g.layer.Layer()
	g.fills = content.Layer()
	g.hover = content.Layer()
	g.hover.SetZIndex(1)
	g.lines = content.Layer()
	g.lines.SetZIndex(2)
	g.bars = g.layer.Layer()
	g.bars.SetZIndex(3)
	g.header = g.layer.Layer()
	g.header.SetZIndex(4)
	g.preview = g.layer.Layer()
	g.preview.SetZIndex(5)

	g.ctrlKey = g.ctrl.Listen(g.controllerChanged)
	return g
}

func (g *Grid) controllerChanged(evt state.Event) {
	switch {
	case evt.HasSignal(state.DataChanged):
		g.Invalidate(ItemsState|PositionState|TimelineState, state.DataChanged)
	case evt.HasSignal(state.BoundsChanged):
		g.Invalidate(PositionState|TimelineState, state.NeedsRedraw)
	default:
		g.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

// Controller returns the row controller.
func (g *Grid) Controller() *Controller { return g.ctrl }

// Stage returns the stage the grid draws on.
func (g *Grid) Stage() *surface.Stage { return g.stage }

// Tooltip returns the row tooltip.
func (g *Grid) Tooltip() *tooltip.Tooltip { return g.tooltip }

// Dragger returns the gesture controller.
func (g *Grid) Dragger() *Dragger { return g.dragger }

func (g *Grid) SetTree(t *data.Tree) { g.ctrl.SetTree(t) }

// SetHooks installs extension hooks; nil restores the no-op ones.
func (g *Grid) SetHooks(h Hooks) {
	if h == nil {
		h = NopHooks{}
	}
	g.hooks = h
}

// SetScrollable redirects scroll drags and wheel deltas.  nil makes the
// grid scroll itself.
func (g *Grid) SetScrollable(s Scrollable) {
	if s == nil {
		s = g
	}
	g.scroller = s
}

// SetRecorder makes the grid count its rebuilds.
func (g *Grid) SetRecorder(r *metrics.Recorder) { g.recorder = r }

// OnRow registers a listener for one event type and returns a key for
// RemoveRowListener.
func (g *Grid) OnRow(t EventType, fn RowListener) int {
	return g.rows.add(t, fn)
}

func (g *Grid) RemoveRowListener(key int) {
	g.rows.remove(key)
}

func (g *Grid) Bounds() geom.Rect { return g.bounds }

func (g *Grid) SetBounds(r geom.Rect) {
	if g.bounds == r {
		return
	}
	g.bounds = r
	g.updateViewHeight()
	g.Invalidate(state.Bounds|HeaderState|TimelineState, state.BoundsChanged)
}

// DataTop is the top of the first row when not scrolled: the header plus
// a one pixel separator.
func (g *Grid) DataTop() float64 {
	return g.bounds.Top + g.headerHeight + 1
}

func (g *Grid) updateViewHeight() {
	g.ctrl.SetViewHeight(g.bounds.Bottom() - g.DataTop())
}

func (g *Grid) HeaderHeight() float64 { return g.headerHeight }

func (g *Grid) SetHeaderHeight(h float64) {
	if h < 0 {
		debug.Warning(debug.InvalidSetting, "headerHeight", h)
		return
	}
	if g.headerHeight != h {
		g.headerHeight = h
		g.updateViewHeight()
		g.Invalidate(HeaderState|PositionState|TimelineState, state.BoundsChanged)
	}
}

func (g *Grid) SetHeaderText(t string) {
	if g.headerText != t {
		g.headerText = t
		g.Invalidate(HeaderState, state.NeedsRedraw)
	}
}

// SetColumnWidth sets the width of the name column when a timeline shares
// the grid.  Zero splits the width in half.
func (g *Grid) SetColumnWidth(w float64) {
	if w < 0 {
		debug.Warning(debug.InvalidSetting, "columnWidth", w)
		return
	}
	if g.columnWidth != w {
		g.columnWidth = w
		g.Invalidate(HeaderState|TimelineState, state.BoundsChanged)
	}
}

func (g *Grid) IsInteractive() bool { return g.interactive }

// SetInteractive turns the default reactions to row events on or off.
// Hooks and listeners see the events either way.
func (g *Grid) SetInteractive(v bool) {
	g.interactive = v
}

func (g *Grid) IsEditable() bool { return g.editable }

// SetEditable allows drag-and-drop reordering.
func (g *Grid) SetEditable(v bool) {
	g.editable = v
}

// SetRowFills sets the odd, even, selected and hover fills.
func (g *Grid) SetRowFills(odd, even, selected, hover string) {
	if g.oddFill == odd && g.evenFill == even && g.selectedFill == selected && g.hoverFill == hover {
		return
	}
	g.oddFill, g.evenFill, g.selectedFill, g.hoverFill = odd, even, selected, hover
	g.highlighted = false
	g.Invalidate(state.Appearance, state.NeedsRedraw)
}

func (g *Grid) SetRowStroke(s surface.Stroke) {
	if g.rowStroke != s {
		g.rowStroke = s
		g.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (g *Grid) SetFontColor(c string) {
	if g.fontColor != c {
		g.fontColor = c
		g.Invalidate(state.Appearance|HeaderState, state.NeedsRedraw)
	}
}

// SetTimeline pairs the grid with a timeline drawn right of the name
// column.  nil removes it.
func (g *Grid) SetTimeline(t *Timeline) {
	if g.timeline == t {
		return
	}
	if g.timeline != nil {
		g.timeline.detach()
	}
	g.timeline = t
	if t != nil {
		t.attach(g)
	}
	g.Invalidate(TimelineState|HeaderState, state.BoundsChanged)
}

func (g *Grid) Timeline() *Timeline { return g.timeline }

// nameColumn is the part of the bounds showing item names.
func (g *Grid) nameColumn() geom.Rect {
	if g.timeline == nil {
		return g.bounds
	}
	w := g.columnWidth
	if w == 0 || w > g.bounds.Width {
		w = g.bounds.Width / 2
	}
	return geom.R(g.bounds.Left, g.bounds.Top, w, g.bounds.Height)
}

// timelineArea is the part of the bounds left for the timeline.
func (g *Grid) timelineArea() geom.Rect {
	col := g.nameColumn()
	return geom.R(col.Right(), g.bounds.Top, g.bounds.Right()-col.Right(), g.bounds.Height)
}

// Scroll scrolls the rows by dy and the timeline, if any, by dx.
func (g *Grid) Scroll(dx, dy float64) {
	if dy != 0 {
		g.ctrl.ScrollBy(dy)
	}
	if dx != 0 && g.timeline != nil {
		g.timeline.ScrollBy(dx)
	}
}

// Draw rebuilds whatever is stale.
func (g *Grid) Draw() {
	if g.IsConsistent() {
		return
	}
	if g.HasInvalidationState(state.Bounds | state.Container) {
		g.layer.SetHitArea(g.bounds)
	}
	if g.HasInvalidationState(HeaderState | state.Bounds | state.Appearance | state.Container) {
		g.drawHeader()
	}
	if g.HasInvalidationState(ItemsState | PositionState | state.Bounds | state.Appearance | state.Container) {
		g.drawRows()
		g.recorder.Rebuild("grid", "rows")
		g.refreshHighlight()
	}
	if g.timeline != nil && g.HasInvalidationState(TimelineState|ItemsState|PositionState|state.Bounds|state.Container) {
		g.timeline.draw(g.bars)
		g.recorder.Rebuild("grid", "timeline")
	}
	g.ctrl.Consume(ItemsState | PositionState)
	g.Consume(supported)
}

func (g *Grid) drawHeader() {
	g.header.Clear()
	if g.headerHeight <= 0 {
		return
	}
	b := g.bounds
	g.header.Rect(geom.R(b.Left, b.Top, b.Width, g.headerHeight)).SetFill(g.headerFill)
	_, th := g.stage.Measurer().Measure(g.headerText)
	g.header.Text(b.Left+1, b.Top+(g.headerHeight-th)/2, g.headerText).SetColor(g.fontColor)
	if !g.rowStroke.IsNone() {
		sep := g.DataTop() - 1
		g.header.Path().SetStroke(g.rowStroke).MoveTo(b.Left, sep).LineTo(b.Right(), sep)
	}
	if g.timeline != nil {
		g.timeline.drawHeader(g.header, geom.R(g.timelineArea().Left, b.Top, g.timelineArea().Width, g.headerHeight))
	}
}

// drawRows builds the row fills, strokes and names for the visible slice
// and refills the offset cache.
func (g *Grid) drawRows() {
	g.fills.Clear()
	g.lines.Clear()
	g.cache.Reset()

	b := g.bounds
	dataTop := g.DataTop()
	items := g.ctrl.VisibleItems()
	start, end := g.ctrl.StartIndex(), g.ctrl.EndIndex()
	g.cacheStart = start

	odd := g.fills.Path().SetFill(g.oddFill)
	even := g.fills.Path().SetFill(g.evenFill)
	selected := g.fills.Path().SetFill(g.selectedFill)
	strokes := g.lines.Path().SetStroke(g.rowStroke)
	texts := g.lines.Layer()
	g.oddPath, g.evenPath, g.selectedPath = odd, even, selected

	m := g.stage.Measurer()
	indent, _ := m.Measure("  ")
	col := g.nameColumn()

	top := dataTop - g.ctrl.VerticalOffset()
	for i := start; i <= end; i++ {
		if i >= len(items) {
			break
		}
		it := items[i]
		h := g.ctrl.ItemHeight(it)
		r := geom.R(b.Left, top, b.Width, h)
		// index 0 is the first row users see, drawn with the odd fill
		if i%2 == 0 {
			odd.AddRect(r)
		} else {
			even.AddRect(r)
		}
		if it.Selected() {
			selected.AddRect(r)
		}
		if !g.rowStroke.IsNone() {
			strokes.MoveTo(b.Left, top+h).LineTo(b.Right(), top+h)
		}
		g.cache.Append(h)

		label := rowMarker(it) + it.Name()
		_, th := m.Measure(label)
		if h >= th {
			texts.Text(col.Left+1+float64(it.Depth())*indent, top+(h-th)/2, label).SetColor(g.fontColor)
		}
		top += h
	}
	texts.Clip(col)

	clip := geom.R(b.Left, dataTop-1, b.Width, top-(dataTop-1)).Intersect(b)
	g.fills.Parent().Clip(clip)
}

func rowMarker(it *data.Item) string {
	switch {
	case it.NumChildren() == 0:
		return "  "
	case it.Collapsed():
		return "▸ "
	default:
		return "▾ "
	}
}

// OffsetCache returns the cumulative row bottoms of the last draw.
func (g *Grid) OffsetCache() *OffsetCache { return &g.cache }

// Serialize returns the grid settings.
func (g *Grid) Serialize() style.Settings {
	s := style.Settings{
		"headerHeight":       g.headerHeight,
		"headerText":         g.headerText,
		"columnWidth":        g.columnWidth,
		"defaultRowHeight":   g.ctrl.DefaultRowHeight(),
		"interactive":        g.interactive,
		"editable":           g.editable,
		"rowOddFill":         g.oddFill,
		"rowEvenFill":        g.evenFill,
		"rowSelectedFill":    g.selectedFill,
		"rowHoverFill":       g.hoverFill,
		"rowStroke":          g.rowStroke.Color,
		"rowStrokeThickness": g.rowStroke.Thickness,
		"fontColor":          g.fontColor,
		"dragHysteresis":     g.dragger.Hysteresis(),
		"tooltip":            g.tooltip.Serialize(),
	}
	if g.timeline != nil {
		s["timeline"] = g.timeline.Serialize()
	}
	if t := g.ctrl.Tree(); t != nil {
		s["data"] = t.ToSettings()
	}
	return s
}

// SetupByJSON applies settings; missing keys keep their current values.
// A "data" list replaces the tree.
func (g *Grid) SetupByJSON(s style.Settings) {
	g.SuspendSignalsDispatching()
	defer g.ResumeSignalsDispatching(true)

	g.SetHeaderHeight(s.Float("headerHeight", g.headerHeight))
	g.SetHeaderText(s.String("headerText", g.headerText))
	g.SetColumnWidth(s.Float("columnWidth", g.columnWidth))
	g.ctrl.SetDefaultRowHeight(s.Float("defaultRowHeight", g.ctrl.DefaultRowHeight()))
	g.SetInteractive(s.Bool("interactive", g.interactive))
	g.SetEditable(s.Bool("editable", g.editable))
	g.SetRowFills(
		s.String("rowOddFill", g.oddFill),
		s.String("rowEvenFill", g.evenFill),
		s.String("rowSelectedFill", g.selectedFill),
		s.String("rowHoverFill", g.hoverFill),
	)
	g.SetRowStroke(surface.Stroke{
		Color:     s.String("rowStroke", g.rowStroke.Color),
		Thickness: s.Float("rowStrokeThickness", g.rowStroke.Thickness),
	})
	g.SetFontColor(s.String("fontColor", g.fontColor))
	g.dragger.SetHysteresis(s.Float("dragHysteresis", g.dragger.Hysteresis()))
	if t := s.Map("tooltip"); t != nil {
		g.tooltip.SetupByJSON(t)
	}
	if t := s.Map("timeline"); t != nil {
		if g.timeline == nil {
			g.SetTimeline(NewTimeline())
		}
		g.timeline.SetupByJSON(t)
	}
	if s.Has("data") {
		g.SetTree(data.TreeFromSettings(s.List("data")))
	}
}

// Dispose stops timers, ends a pending drag and detaches from the stage.
func (g *Grid) Dispose() {
	g.dragger.dispose()
	g.tooltip.Dispose()
	g.ctrl.Unlisten(g.ctrlKey)
	g.ctrl.Dispose()
	if g.timeline != nil {
		g.timeline.detach()
	}
	g.layer.OnPointer(nil)
	g.layer.Remove()
	g.RemoveAllListeners()
}
