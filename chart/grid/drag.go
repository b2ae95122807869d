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
	"math"

	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/debug"
)

// Drop zone boundaries as ratios of the destination row's height.
const (
	LowerDragEditRatio  = 0.2
	HigherDragEditRatio = 0.8
)

// DefaultHysteresis is how far, in pixels, the pointer has to travel
// before a press becomes a drag.
const DefaultHysteresis = 3

// AutoScrollMargin is the band inside the rows' edges that starts
// auto-scrolling during a structural drag.
const AutoScrollMargin = 1

type gesture int

const (
	gestureIdle gesture = iota
	gesturePotentialDrag
	gestureDragging
)

// Zone says where in the destination row an item is dropped.
type Zone int

const (
	ZoneBefore Zone = iota
	ZoneInto
	ZoneAfter
)

func (z Zone) String() string {
	switch z {
	case ZoneBefore:
		return "before"
	case ZoneInto:
		return "into"
	default:
		return "after"
	}
}

// ZoneAt classifies a position within a row.
func ZoneAt(ratio float64) Zone {
	switch {
	case ratio < LowerDragEditRatio:
		return ZoneBefore
	case ratio > HigherDragEditRatio:
		return ZoneAfter
	default:
		return ZoneInto
	}
}

// Drop is a candidate destination for a structural drag.
type Drop struct {
	Target *data.Item
	Zone   Zone
	// Parent and Index are where the dragged item would be moved, Index
	// counting the siblings after the item is taken out.
	Parent *data.Item
	Index  int
	// Allowed is false when the drop would put the item inside itself or
	// into a milestone.
	Allowed bool

	StartY, EndY float64
}

// Dragger runs the press-drag-release gesture of a grid.  A drag either
// scrolls (alt held, or the grid isn't editable) or moves the pressed row
// somewhere else in the tree.
type Dragger struct {
	g *Grid

	state      gesture
	hysteresis float64
	structural bool

	startX, startY float64
	lastX, lastY   float64
	item           *data.Item
	drop           *Drop

	preventClickAfterDrag bool

	docKey   surface.DocumentKey
	listened bool

	auto     *AutoScroller
	autoStep float64
}

func newDragger(g *Grid) *Dragger {
	return &Dragger{g: g, hysteresis: DefaultHysteresis}
}

func (d *Dragger) Hysteresis() float64 { return d.hysteresis }

func (d *Dragger) SetHysteresis(px float64) {
	if px < 0 {
		debug.Warning(debug.InvalidSetting, "dragHysteresis", px)
		return
	}
	d.hysteresis = px
}

// SetAutoScroller installs the timer used to scroll while a dragged row
// is held near the edge.  Without one there's no auto-scrolling.
func (d *Dragger) SetAutoScroller(a *AutoScroller) {
	if d.auto != nil {
		d.auto.Stop()
	}
	d.auto = a
}

// Active reports whether a gesture is in progress.
func (d *Dragger) Active() bool { return d.state != gestureIdle }

// Dragging reports whether the pointer moved far enough to drag.
func (d *Dragger) Dragging() bool { return d.state == gestureDragging }

// IsStructural reports whether the current drag moves a row.
func (d *Dragger) IsStructural() bool { return d.state == gestureDragging && d.structural }

// Drop returns the current drop candidate of a structural drag.
func (d *Dragger) Drop() *Drop { return d.drop }

func (d *Dragger) start(evt *surface.PointerEvent, re *RowEvent) {
	d.reset()
	// a new press means the click of any earlier drag was delivered or lost
	d.preventClickAfterDrag = false
	d.state = gesturePotentialDrag
	d.startX, d.startY = evt.ClientX, evt.ClientY
	d.lastX, d.lastY = evt.ClientX, evt.ClientY
	// the mode is settled at press time
	d.structural = d.g.editable && !evt.AltKey && re != nil
	if re != nil {
		d.item = re.Item
	}
	d.docKey = d.g.stage.OnDocument(d.document)
	d.listened = true
}

func (d *Dragger) document(evt *surface.PointerEvent) {
	switch evt.Type {
	case surface.PointerMove:
		d.move(evt)
	case surface.PointerUp:
		d.end(evt)
	}
}

func (d *Dragger) move(evt *surface.PointerEvent) {
	x, y := evt.ClientX, evt.ClientY
	if d.state == gesturePotentialDrag {
		if math.Abs(x-d.startX) <= d.hysteresis && math.Abs(y-d.startY) <= d.hysteresis {
			return
		}
		d.state = gestureDragging
		d.g.tooltip.Hide()
		d.g.ClearHighlight()
	}
	if d.state != gestureDragging {
		return
	}
	if d.structural {
		d.lastX, d.lastY = x, y
		d.updateDrop()
		d.checkAutoScroll(y)
	} else {
		dx, dy := d.lastX-x, d.lastY-y
		d.lastX, d.lastY = x, y
		d.g.scroller.Scroll(dx, dy)
	}
	evt.PreventDefault()
}

func (d *Dragger) end(evt *surface.PointerEvent) {
	if d.state == gestureDragging {
		d.preventClickAfterDrag = true
		if d.structural {
			d.lastX, d.lastY = evt.ClientX, evt.ClientY
			d.updateDrop()
			d.commit()
		}
		evt.PreventDefault()
	}
	d.reset()
}

// consumeClick reports, once, whether a click follows a drag.
func (d *Dragger) consumeClick() bool {
	p := d.preventClickAfterDrag
	d.preventClickAfterDrag = false
	return p
}

func (d *Dragger) reset() {
	if d.listened {
		d.g.stage.RemoveDocumentListener(d.docKey)
		d.listened = false
	}
	if d.auto != nil {
		d.auto.Stop()
	}
	d.autoStep = 0
	d.state = gestureIdle
	d.item = nil
	d.drop = nil
	d.g.preview.Clear()
	d.g.stage.SetCursor(surface.CursorDefault)
}

func (d *Dragger) dispose() {
	d.reset()
	d.preventClickAfterDrag = false
}

// updateDrop hit-tests the last pointer position and redraws the preview.
func (d *Dragger) updateDrop() {
	d.drop = d.g.DropAt(d.item, d.lastX, d.lastY)
	d.g.preview.Clear()
	if d.drop == nil {
		d.g.stage.SetCursor(surface.CursorMove)
		return
	}
	if !d.drop.Allowed {
		d.g.stage.SetCursor(surface.CursorNotAllowed)
		return
	}
	d.g.stage.SetCursor(surface.CursorMove)
	b := d.g.bounds
	dashed := surface.Stroke{Color: "#1976d2", Thickness: 1, Dashed: true}
	switch d.drop.Zone {
	case ZoneInto:
		d.g.preview.Rect(geom.R(b.Left, d.drop.StartY, b.Width, d.drop.EndY-d.drop.StartY)).SetStroke(dashed)
	case ZoneBefore:
		d.g.preview.Path().SetStroke(dashed).MoveTo(b.Left, d.drop.StartY).LineTo(b.Right(), d.drop.StartY)
	default:
		d.g.preview.Path().SetStroke(dashed).MoveTo(b.Left, d.drop.EndY).LineTo(b.Right(), d.drop.EndY)
	}
}

// commit moves the dragged item to the current drop, unless it's
// rejected or a RowBeforeMove listener cancels it.
func (d *Dragger) commit() {
	drop := d.drop
	if drop == nil || !drop.Allowed || d.item == nil {
		debug.Debugf("grid: drop of %q rejected", itemName(d.item))
		return
	}
	re := &RowEvent{Type: RowBeforeMove, Item: d.item, Parent: drop.Parent, Pos: drop.Index, Index: d.g.ctrl.IndexOf(d.item)}
	if !d.g.rows.dispatch(re) {
		return
	}
	tree := d.g.ctrl.Tree()
	if err := tree.Move(d.item, drop.Parent, drop.Index); err != nil {
		debug.Errorf("grid: moving %q: %v", itemName(d.item), err)
		return
	}
	debug.Debugf("grid: moved %q under %q at %d", itemName(d.item), itemName(drop.Parent), drop.Index)
	d.g.rows.dispatch(&RowEvent{Type: RowMove, Item: d.item, Parent: drop.Parent, Pos: drop.Index, Index: d.g.ctrl.IndexOf(d.item)})
}

func itemName(it *data.Item) string {
	if it == nil {
		return ""
	}
	return it.Name()
}

// checkAutoScroll starts, retargets or stops auto-scrolling depending on
// how close y is to the edges of the rows area.
func (d *Dragger) checkAutoScroll(y float64) {
	if d.auto == nil {
		return
	}
	top, bottom := d.g.DataTop(), d.g.bounds.Bottom()
	step := d.g.ctrl.DefaultRowHeight()
	var dir float64
	switch {
	case y < top+AutoScrollMargin:
		dir = -step
	case y > bottom-AutoScrollMargin:
		dir = step
	}
	if dir == d.autoStep {
		return
	}
	d.autoStep = dir
	if dir == 0 {
		d.auto.Stop()
		return
	}
	d.auto.Start(func() {
		if d.state != gestureDragging {
			return
		}
		d.g.ctrl.ScrollBy(dir)
		// rows moved under the pointer; the grid must be redrawn before
		// hit-testing again
		d.g.Draw()
		d.updateDrop()
	})
}

// DropAt computes where dragged would land if released at (x, y).  It
// returns nil when no row is under the pointer.
func (g *Grid) DropAt(dragged *data.Item, x, y float64) *Drop {
	re := g.rowAt(x, y, nil)
	if re == nil {
		return nil
	}
	target := re.Item
	drop := &Drop{
		Target: target,
		Zone:   ZoneAt(re.ItemHeightMouseRatio),
		StartY: re.StartY,
		EndY:   re.EndY,
	}
	if dragged == nil || target == dragged || target.IsDescendantOf(dragged) {
		return drop
	}
	if drop.Zone == ZoneInto {
		if target.IsMilestone() {
			return drop
		}
		drop.Parent, drop.Index = target, target.NumChildren()
	} else {
		items := g.ctrl.VisibleItems()
		var first, second *data.Item
		if drop.Zone == ZoneBefore {
			second = target
			if re.Index > 0 {
				first = items[re.Index-1]
			}
		} else {
			first = target
			if re.Index+1 < len(items) {
				second = items[re.Index+1]
			}
		}
		if first != nil && (first == dragged || first.IsDescendantOf(dragged)) {
			// the dragged subtree counts as one block
			first = dragged
		}
		drop.Parent, drop.Index = placement(dragged, first, second)
	}
	if drop.Parent != nil && (drop.Parent == dragged || drop.Parent.IsDescendantOf(dragged)) {
		return drop
	}
	drop.Allowed = true
	return drop
}

// placement decides where dragged goes when dropped between first and
// second, either of which may be nil at the ends of the list.
func placement(dragged, first, second *data.Item) (*data.Item, int) {
	var parent *data.Item
	var index int
	switch {
	case first == nil && second == nil:
		return nil, 0
	case first == nil:
		parent, index = second.Parent(), second.IndexInParent()
	case second == nil:
		parent, index = first.Parent(), first.IndexInParent()+1
	case first.Depth() == second.Depth():
		parent, index = second.Parent(), second.IndexInParent()
	case second.Depth() > first.Depth():
		// second is first's first child
		return first, 0
	default:
		// after the upper neighbour
		parent, index = first.Parent(), first.IndexInParent()+1
	}
	if dragged.Parent() == parent && dragged.IndexInParent() < index {
		index--
	}
	return parent, index
}
