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

package grid

import (
	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

// InteractivityEvent resolves a pointer position to the row under it.  It
// returns nil when the pointer is above the first or below the last
// rendered row.
func (g *Grid) InteractivityEvent(evt *surface.PointerEvent) *RowEvent {
	if evt == nil {
		return nil
	}
	return g.rowAt(evt.ClientX, evt.ClientY, evt)
}

func (g *Grid) rowAt(x, y float64, evt *surface.PointerEvent) *RowEvent {
	if y < g.DataTop() || x < g.bounds.Left || x > g.bounds.Right() {
		return nil
	}
	origin := g.DataTop() - g.ctrl.VerticalOffset()
	mouseHeight := y - origin
	if mouseHeight < 0 || mouseHeight > g.cache.Total() {
		return nil
	}
	k := g.cache.Find(mouseHeight)
	if k < 0 {
		return nil
	}
	index := g.cacheStart + k
	items := g.ctrl.VisibleItems()
	if index >= len(items) {
		return nil
	}
	top, bottom := g.cache.Top(k), g.cache.At(k)
	re := &RowEvent{
		Item:         items[index],
		StartY:       origin + top,
		EndY:         origin + bottom,
		HoveredIndex: k,
		Index:        index,
		Pointer:      evt,
	}
	if h := bottom - top; h > 0 {
		re.ItemHeightMouseRatio = (mouseHeight - top) / h
	}
	return re
}

func (g *Grid) handlePointer(evt *surface.PointerEvent) {
	switch evt.Type {
	case surface.PointerMove:
		if g.dragger.Active() {
			// the dragger follows the pointer at the document level
			return
		}
		g.mouseMove(evt)
	case surface.PointerOut:
		if !g.dragger.Active() {
			g.mouseOut(evt)
		}
	case surface.PointerDown:
		g.mouseDown(evt)
	case surface.PointerUp:
		g.mouseUp(evt)
	case surface.PointerClick:
		g.mouseClick(evt)
	case surface.PointerDblClick:
		g.mouseDblClick(evt)
	case surface.PointerWheel:
		g.wheel(evt)
	}
}

// fire runs hook, then the listeners, and reports whether the default
// action should run.
func (g *Grid) fire(re *RowEvent, t EventType, hook func(*RowEvent)) bool {
	re.Type = t
	hook(re)
	return g.rows.dispatch(re) && g.interactive
}

func (g *Grid) mouseMove(evt *surface.PointerEvent) {
	re := g.InteractivityEvent(evt)
	if re == nil {
		if g.hoveredItem != nil {
			g.mouseOut(evt)
		}
		return
	}
	if re.Item != g.hoveredItem {
		if g.hoveredItem != nil {
			g.mouseOut(evt)
		}
		g.hoveredItem = re.Item
		over := *re
		if g.fire(&over, RowMouseOver, g.hooks.AddMouseOver) {
			g.rowMouseOver(&over)
		}
	}
	if g.fire(re, RowMouseMove, g.hooks.AddMouseMove) {
		g.rowMouseMove(re)
	}
}

// mouseOut ends the hover of the current row.
func (g *Grid) mouseOut(evt *surface.PointerEvent) {
	if g.hoveredItem == nil {
		g.tooltip.Hide()
		return
	}
	re := &RowEvent{Item: g.hoveredItem, Index: g.ctrl.IndexOf(g.hoveredItem), Pointer: evt}
	g.hoveredItem = nil
	if g.fire(re, RowMouseOut, g.hooks.AddMouseOut) {
		g.rowMouseOut(re)
	}
}

func (g *Grid) mouseDown(evt *surface.PointerEvent) {
	re := g.InteractivityEvent(evt)
	if re != nil {
		g.fire(re, RowMouseDown, g.hooks.AddMouseDown)
	}
	if evt.Button == surface.ButtonPrimary || evt.Button == surface.ButtonNone {
		g.dragger.start(evt, re)
	}
}

func (g *Grid) mouseUp(evt *surface.PointerEvent) {
	if re := g.InteractivityEvent(evt); re != nil {
		g.fire(re, RowMouseUp, g.hooks.AddMouseUp)
	}
	g.tooltip.Hide()
}

func (g *Grid) mouseClick(evt *surface.PointerEvent) {
	if g.dragger.consumeClick() {
		return
	}
	re := g.InteractivityEvent(evt)
	if re == nil {
		return
	}
	if g.fire(re, RowClick, g.hooks.AddMouseClick) {
		g.rowClick(re)
	}
}

func (g *Grid) mouseDblClick(evt *surface.PointerEvent) {
	re := g.InteractivityEvent(evt)
	if re == nil {
		return
	}
	if g.fire(re, RowDblClick, g.hooks.AddMouseDblClick) {
		g.rowDblClick(re)
	}
}

func (g *Grid) rowMouseOver(re *RowEvent) {
	g.stage.SetCursor(surface.CursorPointer)
}

func (g *Grid) rowMouseMove(re *RowEvent) {
	g.Highlight(re.Index, re.StartY, re.EndY)
	if re.Pointer != nil {
		g.tooltip.Show(re.Pointer.ClientX, re.Pointer.ClientY, g.tooltipContext(re.Item, re.Index))
	}
}

func (g *Grid) rowMouseOut(re *RowEvent) {
	g.ClearHighlight()
	g.tooltip.Hide()
	g.stage.SetCursor(surface.CursorDefault)
}

func (g *Grid) rowClick(re *RowEvent) {
	g.SelectRow(re.Item)
}

func (g *Grid) rowDblClick(re *RowEvent) {
	if re.Item.NumChildren() > 0 {
		g.CollapseExpand(re.Item, !re.Item.Collapsed())
	}
}

func (g *Grid) tooltipContext(it *data.Item, index int) *style.Context {
	return &style.Context{
		Index:      index,
		Item:       it,
		Value:      it.Float("value"),
		SeriesName: it.Name(),
		Fields:     it.Fields(),
	}
}

// Highlight draws the hover rectangle over [startY, endY].  Nothing is
// rebuilt when the span is the one already highlighted.
func (g *Grid) Highlight(index int, startY, endY float64) {
	if g.highlighted && g.highlightStartY == startY && g.highlightEndY == endY {
		return
	}
	g.hover.Clear()
	g.hover.Rect(geom.R(g.bounds.Left, startY, g.bounds.Width, endY-startY)).SetFill(g.hoverFill)
	g.highlighted = true
	g.highlightStartY, g.highlightEndY = startY, endY
	g.recorder.Rebuild("grid", "highlight")
}

// ClearHighlight removes the hover rectangle.
func (g *Grid) ClearHighlight() {
	if !g.highlighted {
		return
	}
	g.hover.Clear()
	g.highlighted = false
}

// Highlighted returns the highlighted span.
func (g *Grid) Highlighted() (startY, endY float64, ok bool) {
	return g.highlightStartY, g.highlightEndY, g.highlighted
}

// refreshHighlight moves the hover rectangle to where the hovered row is
// after a redraw.
func (g *Grid) refreshHighlight() {
	if g.hoveredItem == nil {
		g.ClearHighlight()
		return
	}
	k := g.ctrl.IndexOf(g.hoveredItem) - g.cacheStart
	if k < 0 || k >= g.cache.Len() {
		g.hoveredItem = nil
		g.ClearHighlight()
		return
	}
	origin := g.DataTop() - g.ctrl.VerticalOffset()
	g.Highlight(g.cacheStart+k, origin+g.cache.Top(k), origin+g.cache.At(k))
}

// Selected returns the selected item, if any.
func (g *Grid) Selected() *data.Item { return g.selected }

// SelectRow selects it, deselecting the previous selection, and fires one
// RowSelect event.  A nil item clears the selection.
func (g *Grid) SelectRow(it *data.Item) {
	if g.selected != nil && g.selected != it {
		g.selected.SetSelected(false)
	}
	g.selected = it
	re := &RowEvent{Type: RowSelect, Item: it, Index: -1}
	if it != nil {
		it.SetSelected(true)
		re.Index = g.ctrl.IndexOf(it)
	}
	g.rows.dispatch(re)
}

// CollapseExpand collapses or expands it and fires RowCollapseExpand.  A
// listener can cancel the change.
func (g *Grid) CollapseExpand(it *data.Item, collapse bool) {
	if it == nil || it.Collapsed() == collapse {
		return
	}
	re := &RowEvent{Type: RowCollapseExpand, Item: it, Index: g.ctrl.IndexOf(it)}
	if !g.rows.dispatch(re) {
		return
	}
	it.SetCollapsed(collapse)
}

// wheel scrolls only while there's room in the wheel's direction so the
// surrounding view can scroll otherwise.
func (g *Grid) wheel(evt *surface.PointerEvent) {
	dx, dy := evt.DeltaX, evt.DeltaY
	if (dy > 0 && g.ctrl.AtBottom()) || (dy < 0 && g.ctrl.AtTop()) {
		dy = 0
	}
	if dx != 0 && (g.timeline == nil || !g.timeline.CanScroll(dx)) {
		dx = 0
	}
	if dx == 0 && dy == 0 {
		return
	}
	g.scroller.Scroll(dx, dy)
	evt.PreventDefault()
}
