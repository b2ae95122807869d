/*
Copyright 2020 The Kubernetes Authors.

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

package term

import (
	"github.com/gdamore/tcell"
)

// Flushable contains content that can be flushed to a screen.
type Flushable interface {
	// FlushTo writes content to the screen.  It should only touch the
	// region it was assigned through SetBox.
	FlushTo(screen tcell.Screen)
}

// Resizable widgets receive the region of the screen they own.
type Resizable interface {
	// SetBox assigns the region this widget fills.  It is *not* a request
	// to draw (that's what Flushable is for).
	SetBox(PositionBox)
}

// View is a widget that can be both sized and displayed.
type View interface {
	Flushable
	Resizable
}

// PositionBox describes a region of the screen.
type PositionBox struct {
	// StartCol and StartRow are the zero-indexed top-left cell.
	StartCol, StartRow int
	// Cols and Rows count the cells in the region.
	Cols, Rows int
}

// Contains reports whether the cell at (col, row) lies inside the box.
func (b PositionBox) Contains(col, row int) bool {
	return col >= b.StartCol && col < b.StartCol+b.Cols &&
		row >= b.StartRow && row < b.StartRow+b.Rows
}

// Local converts screen coordinates to coordinates relative to the box.
func (b PositionBox) Local(col, row int) (int, int) {
	return col - b.StartCol, row - b.StartRow
}

// DockPos is the side of a SplitView its fixed-size pane sits on.
type DockPos int

const (
	// PosBelow anchors to the bottom
	PosBelow DockPos = iota
	// PosAbove anchors to the top
	PosAbove
	// PosLeft anchors to the left
	PosLeft
	// PosRight anchors to the right
	PosRight
)

func (p DockPos) horizontal() bool {
	return p == PosLeft || p == PosRight
}

// SplitView divides its box between a fixed-size "docked" pane and a
// "flexed" pane taking the rest.  The chart view uses it to keep a status
// line under the chart.
type SplitView struct {
	// Dock is the side of the fixed-size pane.
	Dock DockPos

	// DockSize is the wanted size of the docked pane, in rows or columns
	// depending on Dock.
	DockSize int
	// DockMaxPercent caps the docked pane to a share of the box when
	// positive.  With DockSize 10, a box of 20 and DockMaxPercent 25 the
	// docked pane gets 5.
	DockMaxPercent int

	// Docked and Flexed hold the pane contents.  Panes that are also
	// Flushable are flushed by the split.
	Docked Resizable
	Flexed Resizable
}

// dockSize clamps DockSize into [0, total-1] and applies DockMaxPercent.
func (v *SplitView) dockSize(total int) int {
	size := v.DockSize
	if size >= total {
		size = total - 1
	}
	if v.DockMaxPercent > 0 {
		if capped := total * v.DockMaxPercent / 100; capped < size {
			size = capped
		}
	}
	if size < 0 {
		size = 0
	}
	return size
}

// boxes computes the docked and flexed regions of box.
func (v *SplitView) boxes(box PositionBox) (docked, flexed PositionBox) {
	docked, flexed = box, box
	if v.Dock.horizontal() {
		size := v.dockSize(box.Cols)
		docked.Cols = size
		flexed.Cols = box.Cols - size
		if v.Dock == PosLeft {
			flexed.StartCol += size
		} else {
			docked.StartCol += flexed.Cols
		}
		return docked, flexed
	}

	size := v.dockSize(box.Rows)
	docked.Rows = size
	flexed.Rows = box.Rows - size
	switch v.Dock {
	case PosAbove:
		flexed.StartRow += size
	case PosBelow:
		docked.StartRow += flexed.Rows
	default:
		panic("invalid dock position")
	}
	return docked, flexed
}

func (v *SplitView) SetBox(box PositionBox) {
	docked, flexed := v.boxes(box)
	v.Docked.SetBox(docked)
	v.Flexed.SetBox(flexed)
}

func (v *SplitView) FlushTo(screen tcell.Screen) {
	for _, pane := range []Resizable{v.Flexed, v.Docked} {
		if flushable, canFlush := pane.(Flushable); canFlush {
			flushable.FlushTo(screen)
		}
	}
}

// StaticResizable just records the size it was given.
type StaticResizable struct {
	PositionBox
}

func (r *StaticResizable) SetBox(box PositionBox) {
	r.PositionBox = box
}
