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
	"sort"

	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/debug"
)

// Controller states.  Item changes signal DataChanged, scrolling signals
// BoundsChanged and metadata changes such as selection only NeedsRedraw.
const (
	// ItemsState is dirty when the visible items or their heights changed.
	ItemsState = state.FirstCustom
	// PositionState is dirty when the vertical scroll position changed.
	PositionState = state.FirstCustom << 1
)

// DefaultRowHeight is used until a controller is told otherwise.
const DefaultRowHeight = 20

// Controller tracks which rows of a tree are visible and which slice of
// them is scrolled into the viewport.
//
// The scroll position is kept in pixels from the top of the first row.
// From it the controller derives the start index (the row under the
// viewport top), the vertical offset (how much of that row is scrolled
// away) and the end index (the last row reaching into the viewport).
type Controller struct {
	state.Base

	tree    *data.Tree
	binding *state.Binding

	defaultRowHeight float64
	viewHeight       float64
	scrollTop        float64

	items []*data.Item
	// tops[i] is the top of items[i]; tops[len(items)] is the total.
	tops []float64
}

// NewController creates a controller over tree, which may be nil.
func NewController(tree *data.Tree) *Controller {
	c := &Controller{defaultRowHeight: DefaultRowHeight, tops: []float64{0}}
	c.Init(c, ItemsState|PositionState)
	c.SetTree(tree)
	return c
}

func (c *Controller) Tree() *data.Tree { return c.tree }

// SetTree switches the controller to another tree and scrolls to the top.
func (c *Controller) SetTree(t *data.Tree) {
	if c.binding == nil {
		c.binding = state.Bind(nil, c.treeChanged)
	}
	if !c.binding.Rebind(sourceOf(t)) && c.tree == t {
		return
	}
	c.tree = t
	c.scrollTop = 0
	c.refresh()
	c.Invalidate(ItemsState|PositionState, state.DataChanged|state.NeedsRecalculation)
}

func sourceOf(t *data.Tree) state.Signaller {
	if t == nil {
		return nil
	}
	return t
}

func (c *Controller) treeChanged(evt state.Event) {
	changed := c.refresh()
	pos := c.clamp()
	switch {
	case changed || evt.HasSignal(state.DataChanged):
		c.Invalidate(ItemsState|PositionState, state.DataChanged|state.NeedsRecalculation)
	case pos:
		c.Invalidate(PositionState, state.BoundsChanged)
	default:
		// metadata such as selection: nothing of ours moved, pass it on
		c.Invalidate(0, state.NeedsRedraw)
	}
}

// refresh recomputes the visible items and their tops, reporting whether
// either changed.
func (c *Controller) refresh() bool {
	var items []*data.Item
	if c.tree != nil {
		items = c.tree.VisibleItems()
	}
	tops := make([]float64, len(items)+1)
	for i, it := range items {
		tops[i+1] = tops[i] + c.ItemHeight(it)
	}
	changed := len(items) != len(c.items)
	for i := 0; !changed && i < len(items); i++ {
		changed = items[i] != c.items[i] || tops[i+1] != c.tops[i+1]
	}
	c.items, c.tops = items, tops
	return changed
}

// DefaultRowHeight is the height of rows without an override.
func (c *Controller) DefaultRowHeight() float64 { return c.defaultRowHeight }

func (c *Controller) SetDefaultRowHeight(h float64) {
	if h <= 0 {
		debug.Warning(debug.InvalidSetting, "defaultRowHeight", h)
		return
	}
	if c.defaultRowHeight == h {
		return
	}
	c.defaultRowHeight = h
	c.refresh()
	c.clamp()
	c.Invalidate(ItemsState|PositionState, state.DataChanged|state.NeedsRecalculation)
}

// ItemHeight is the item's rowHeight field, else its height metadata,
// else the default row height.
func (c *Controller) ItemHeight(it *data.Item) float64 {
	if h, ok := style.AsFloat(it.Get(data.FieldRowHeight)); ok && h >= 0 {
		return h
	}
	if h, ok := style.AsFloat(it.Meta(data.MetaHeight)); ok && h >= 0 {
		return h
	}
	return c.defaultRowHeight
}

// VisibleItems returns the rows in display order.
func (c *Controller) VisibleItems() []*data.Item {
	return c.items
}

// IndexOf returns the visible index of it, or -1.
func (c *Controller) IndexOf(it *data.Item) int {
	for i, v := range c.items {
		if v == it {
			return i
		}
	}
	return -1
}

// TotalHeight is the height of every visible row.
func (c *Controller) TotalHeight() float64 {
	return c.tops[len(c.tops)-1]
}

// ViewHeight is the height of the viewport below the header.
func (c *Controller) ViewHeight() float64 { return c.viewHeight }

func (c *Controller) SetViewHeight(h float64) {
	if h < 0 {
		h = 0
	}
	if c.viewHeight == h {
		return
	}
	c.viewHeight = h
	c.clamp()
	c.Invalidate(PositionState, state.BoundsChanged)
}

func (c *Controller) maxScroll() float64 {
	if m := c.TotalHeight() - c.viewHeight; m > 0 {
		return m
	}
	return 0
}

// clamp keeps scrollTop inside the scrollable range, reporting whether it
// moved.
func (c *Controller) clamp() bool {
	top := c.scrollTop
	if top > c.maxScroll() {
		top = c.maxScroll()
	}
	if top < 0 {
		top = 0
	}
	moved := top != c.scrollTop
	c.scrollTop = top
	return moved
}

// ScrollTop is the scroll position in pixels.
func (c *Controller) ScrollTop() float64 { return c.scrollTop }

// ScrollTo moves to the given pixel position, clamped to the content.
func (c *Controller) ScrollTo(px float64) {
	old := c.scrollTop
	c.scrollTop = px
	c.clamp()
	if c.scrollTop != old {
		c.Invalidate(PositionState, state.BoundsChanged)
	}
}

// ScrollBy scrolls by dy pixels, positive meaning down.
func (c *Controller) ScrollBy(dy float64) {
	c.ScrollTo(c.scrollTop + dy)
}

// ScrollToIndex brings the row at index into view, doing nothing when it
// already is.
func (c *Controller) ScrollToIndex(index int) {
	if index < 0 || index >= len(c.items) {
		return
	}
	top, bottom := c.tops[index], c.tops[index+1]
	switch {
	case top < c.scrollTop:
		c.ScrollTo(top)
	case bottom > c.scrollTop+c.viewHeight:
		c.ScrollTo(bottom - c.viewHeight)
	}
}

// AtTop reports whether nothing is left to scroll up.
func (c *Controller) AtTop() bool { return c.scrollTop <= 0 }

// AtBottom reports whether nothing is left to scroll down.
func (c *Controller) AtBottom() bool { return c.scrollTop >= c.maxScroll() }

// StartIndex is the row under the top of the viewport.
func (c *Controller) StartIndex() int {
	if len(c.items) == 0 {
		return 0
	}
	// first row whose bottom is below scrollTop
	i := sort.Search(len(c.items), func(i int) bool { return c.tops[i+1] > c.scrollTop })
	if i == len(c.items) {
		i--
	}
	return i
}

// EndIndex is the last row reaching into the viewport, or -1 without rows.
func (c *Controller) EndIndex() int {
	if len(c.items) == 0 {
		return -1
	}
	bottom := c.scrollTop + c.viewHeight
	// last row whose top is above the viewport bottom
	i := sort.Search(len(c.items), func(i int) bool { return c.tops[i] >= bottom })
	if i == 0 {
		return 0
	}
	return i - 1
}

// VerticalOffset is how much of the start row is scrolled out of view.
func (c *Controller) VerticalOffset() float64 {
	if len(c.items) == 0 {
		return 0
	}
	return c.scrollTop - c.tops[c.StartIndex()]
}

// Dispose unhooks the controller from its tree.
func (c *Controller) Dispose() {
	c.binding.Release()
	c.RemoveAllListeners()
}
