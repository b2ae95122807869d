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

package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell"
	"k8s.io/utils/clock"

	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/grid"
)

// PanStep is how many cells the timeline moves per arrow key.
const PanStep = 4

const browserHelp = "q:quit ↑↓:select space:fold ←→:pan"

// GridBrowser drives a grid from the keyboard and the mouse, with a status
// line under it describing the selected row.
type GridBrowser struct {
	Grid   *grid.Grid
	Chart  *ChartView
	Status *StatusLine

	// Quit is called when a quit key is pressed.
	Quit func()
	// Repaint is called after a key changed something.
	Repaint func()

	layout *SplitView
}

// NewGridBrowser wraps g.  The grid should be configured with cell sized
// rows and header.
func NewGridBrowser(g *grid.Grid) *GridBrowser {
	b := &GridBrowser{
		Grid:   g,
		Chart:  NewChartView(g),
		Status: &StatusLine{Style: tcell.StyleDefault.Reverse(true)},
	}
	b.layout = &SplitView{
		Dock:     PosBelow,
		DockSize: 1,
		Docked:   b.Status,
		Flexed:   b.Chart,
	}
	g.OnRow(grid.RowSelect, func(*grid.RowEvent) { b.updateStatus() })
	b.updateStatus()
	return b
}

// View returns the grid with its status line.
func (b *GridBrowser) View() View { return b.layout }

// Attach hooks the browser up to r's input and lets drags auto-scroll
// through r's event loop.
func (b *GridBrowser) Attach(r *Runner, clk clock.WithTicker) {
	r.KeyHandler = b.HandleKey
	r.MouseHandler = b.HandleMouse
	b.Repaint = r.RequestRepaint
	b.Grid.Dragger().SetAutoScroller(grid.NewAutoScroller(clk, r.Post))
}

func (b *GridBrowser) repaint() {
	b.updateStatus()
	if b.Repaint != nil {
		b.Repaint()
	}
}

// HandleKey handles a key event.
func (b *GridBrowser) HandleKey(evt *tcell.EventKey) {
	switch evt.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		b.quit()
		return
	case tcell.KeyUp:
		b.moveSelection(-1)
	case tcell.KeyDown:
		b.moveSelection(1)
	case tcell.KeyPgUp:
		b.Grid.Scroll(0, -b.Grid.Controller().ViewHeight())
	case tcell.KeyPgDn:
		b.Grid.Scroll(0, b.Grid.Controller().ViewHeight())
	case tcell.KeyHome:
		b.Grid.Controller().ScrollTo(0)
	case tcell.KeyEnd:
		b.Grid.Controller().ScrollTo(math.Inf(1))
	case tcell.KeyLeft:
		b.Grid.Scroll(-PanStep, 0)
	case tcell.KeyRight:
		b.Grid.Scroll(PanStep, 0)
	case tcell.KeyEnter:
		b.toggleSelected()
	case tcell.KeyRune:
		switch evt.Rune() {
		case 'q':
			b.quit()
			return
		case ' ':
			b.toggleSelected()
		case 'k':
			b.moveSelection(-1)
		case 'j':
			b.moveSelection(1)
		default:
			return
		}
	default:
		return
	}
	b.repaint()
}

// HandleMouse hands a mouse event to the grid.
func (b *GridBrowser) HandleMouse(evt *tcell.EventMouse) {
	if b.Chart.HandleMouse(evt) {
		b.updateStatus()
	}
}

func (b *GridBrowser) quit() {
	if b.Quit != nil {
		b.Quit()
	}
}

// moveSelection selects the row delta rows away from the selected one,
// or the first row when nothing is selected.
func (b *GridBrowser) moveSelection(delta int) {
	ctrl := b.Grid.Controller()
	items := ctrl.VisibleItems()
	if len(items) == 0 {
		return
	}
	i := 0
	if sel := b.Grid.Selected(); sel != nil {
		if cur := ctrl.IndexOf(sel); cur >= 0 {
			i = cur + delta
		}
	}
	if i < 0 {
		i = 0
	} else if i >= len(items) {
		i = len(items) - 1
	}
	b.Grid.SelectRow(items[i])
	ctrl.ScrollToIndex(i)
}

func (b *GridBrowser) toggleSelected() {
	sel := b.Grid.Selected()
	if sel == nil || sel.NumChildren() == 0 {
		return
	}
	b.Grid.CollapseExpand(sel, !sel.Collapsed())
}

func (b *GridBrowser) updateStatus() {
	b.Status.SetText(describe(b.Grid.Selected()), browserHelp)
}

func describe(it *data.Item) string {
	if it == nil {
		return "no selection"
	}
	start, end := it.Start(), it.End()
	switch {
	case math.IsNaN(start):
		return it.Name()
	case it.IsMilestone() || math.IsNaN(end):
		return fmt.Sprintf("%s @ %g", it.Name(), start)
	}
	return fmt.Sprintf("%s %g-%g", it.Name(), start, end)
}
