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

package grid_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/grid"
	"sigs.k8s.io/gridchart/chart/metrics"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

// newGrid lays tree out with its first row at y=30 and draws it once.
func newGrid(tree *data.Tree, height float64) (*surface.Stage, *grid.Grid) {
	stage := surface.NewStage(100, 300, nil)
	g := grid.New(stage, tree)
	g.SetHeaderHeight(29)
	g.SetBounds(geom.R(0, 0, 100, height))
	g.Draw()
	return stage, g
}

func pointer(t surface.PointerType, y float64) *surface.PointerEvent {
	return &surface.PointerEvent{Type: t, ClientX: 10, ClientY: y}
}

type clickHooks struct {
	grid.NopHooks
	clicks []int
}

func (h *clickHooks) AddMouseClick(re *grid.RowEvent) {
	h.clicks = append(h.clicks, re.Index)
}

// maskSpy records the dirty-mask transitions of a grid.
type maskSpy struct {
	invalidated, marked []state.State
}

func (s *maskSpy) Invalidated(effective state.State) { s.invalidated = append(s.invalidated, effective) }

func (s *maskSpy) MarkedConsistent(bits state.State) { s.marked = append(s.marked, bits) }

func unionOf(states []state.State) state.State {
	var u state.State
	for _, st := range states {
		u |= st
	}
	return u
}

var _ = Describe("Grid", func() {
	var (
		stage *surface.Stage
		tree  *data.Tree
		g     *grid.Grid
	)
	BeforeEach(func() {
		tree = flatTree(20)
		stage, g = newGrid(tree, 230)
	})

	Describe("hit testing", func() {
		It("should resolve a position to a row", func() {
			Expect(g.DataTop()).To(Equal(30.0))
			re := g.InteractivityEvent(pointer(surface.PointerMove, 75))
			Expect(re).NotTo(BeNil())
			Expect(re.Index).To(Equal(2))
			Expect(re.Item.Name()).To(Equal("row2"))
			Expect(re.ItemHeightMouseRatio).To(Equal(0.25))
			Expect(re.StartY).To(Equal(70.0))
			Expect(re.EndY).To(Equal(90.0))
		})

		It("should ignore the header and the space below the rows", func() {
			Expect(g.InteractivityEvent(pointer(surface.PointerMove, 29))).To(BeNil())
			Expect(g.InteractivityEvent(pointer(surface.PointerMove, 231))).To(BeNil())
			Expect(g.InteractivityEvent(nil)).To(BeNil())
		})

		It("should account for the vertical offset", func() {
			g.Controller().ScrollTo(30)
			g.Draw()
			re := g.InteractivityEvent(pointer(surface.PointerMove, 35))
			Expect(re.Index).To(Equal(1))
			Expect(re.HoveredIndex).To(Equal(0))
			Expect(re.StartY).To(Equal(20.0))
			Expect(re.EndY).To(Equal(40.0))
		})
	})

	It("should alternate odd and even fills starting with odd", func() {
		odd, even, selected := g.RowPaths()
		oddRects, _ := odd.Subpaths()
		evenRects, _ := even.Subpaths()
		Expect(oddRects).To(HaveLen(5))
		Expect(evenRects).To(HaveLen(5))
		Expect(selected.IsEmpty()).To(BeTrue())
		Expect(odd.Bounds().Top).To(Equal(30.0))
		Expect(g.OffsetCache().Len()).To(Equal(10))
	})

	Describe("selection", func() {
		It("should select the clicked row and deselect the previous one", func() {
			var selects []*data.Item
			g.OnRow(grid.RowSelect, func(re *grid.RowEvent) { selects = append(selects, re.Item) })

			stage.Dispatch(pointer(surface.PointerClick, 35))
			Expect(g.Selected()).To(Equal(tree.Roots()[0]))
			stage.Dispatch(pointer(surface.PointerClick, 55))
			Expect(g.Selected()).To(Equal(tree.Roots()[1]))
			Expect(tree.Roots()[0].Selected()).To(BeFalse())
			Expect(tree.Roots()[1].Selected()).To(BeTrue())
			Expect(selects).To(HaveLen(2))

			g.Draw()
			_, _, selected := g.RowPaths()
			rects, _ := selected.Subpaths()
			Expect(rects).To(HaveLen(1))
			Expect(selected.Bounds().Top).To(Equal(50.0))
		})

		It("should fire one select per call when switching rows", func() {
			alice, bob := tree.Roots()[0], tree.Roots()[1]
			var selects []*data.Item
			g.OnRow(grid.RowSelect, func(re *grid.RowEvent) { selects = append(selects, re.Item) })

			g.SelectRow(bob)
			Expect(selects).To(Equal([]*data.Item{bob}))
			g.SelectRow(alice)
			Expect(selects).To(Equal([]*data.Item{bob, alice}))
			Expect(alice.Selected()).To(BeTrue())
			Expect(bob.Selected()).To(BeFalse())
			Expect(g.Selected()).To(Equal(alice))
		})

		It("should skip the default action when a listener prevents it", func() {
			g.OnRow(grid.RowClick, func(re *grid.RowEvent) { re.PreventDefault() })
			stage.Dispatch(pointer(surface.PointerClick, 35))
			Expect(g.Selected()).To(BeNil())
		})

		It("should still call hooks when not interactive", func() {
			h := &clickHooks{}
			g.SetHooks(h)
			g.SetInteractive(false)
			stage.Dispatch(pointer(surface.PointerClick, 55))
			Expect(h.clicks).To(Equal([]int{1}))
			Expect(g.Selected()).To(BeNil())
		})

		It("should stop notifying removed listeners", func() {
			n := 0
			key := g.OnRow(grid.RowClick, func(*grid.RowEvent) { n++ })
			stage.Dispatch(pointer(surface.PointerClick, 35))
			g.RemoveRowListener(key)
			stage.Dispatch(pointer(surface.PointerClick, 35))
			Expect(n).To(Equal(1))
		})
	})

	Describe("hover", func() {
		It("should rebuild the highlight only when the row changes", func() {
			r := metrics.NewRecorder(nil)
			g.SetRecorder(r)
			stage.Dispatch(pointer(surface.PointerMove, 35))
			stage.Dispatch(pointer(surface.PointerMove, 36))
			stage.Dispatch(pointer(surface.PointerMove, 38))
			Expect(testutil.ToFloat64(r.Rebuilds("grid", "highlight"))).To(Equal(1.0))
			stage.Dispatch(pointer(surface.PointerMove, 55))
			Expect(testutil.ToFloat64(r.Rebuilds("grid", "highlight"))).To(Equal(2.0))

			startY, endY, ok := g.Highlighted()
			Expect(ok).To(BeTrue())
			Expect(startY).To(Equal(50.0))
			Expect(endY).To(Equal(70.0))
		})

		It("should show the tooltip and the pointer cursor over a row", func() {
			var kinds []grid.EventType
			for _, t := range []grid.EventType{grid.RowMouseOver, grid.RowMouseOut} {
				g.OnRow(t, func(re *grid.RowEvent) { kinds = append(kinds, re.Type) })
			}
			stage.Dispatch(pointer(surface.PointerMove, 35))
			Expect(g.Tooltip().IsVisible()).To(BeTrue())
			Expect(g.Tooltip().Text()).To(Equal("row0"))
			Expect(stage.Cursor()).To(Equal(surface.CursorPointer))

			stage.Dispatch(pointer(surface.PointerMove, 55))
			Expect(g.Tooltip().Text()).To(Equal("row1"))
			Expect(kinds).To(Equal([]grid.EventType{grid.RowMouseOver, grid.RowMouseOut, grid.RowMouseOver}))

			stage.Dispatch(pointer(surface.PointerOut, 55))
			Expect(g.Tooltip().IsVisible()).To(BeFalse())
			Expect(stage.Cursor()).To(Equal(surface.CursorDefault))
			_, _, ok := g.Highlighted()
			Expect(ok).To(BeFalse())
		})

		It("should follow the hovered row when the rows scroll", func() {
			stage.Dispatch(pointer(surface.PointerMove, 75))
			g.Controller().ScrollTo(20)
			g.Draw()
			startY, endY, ok := g.Highlighted()
			Expect(ok).To(BeTrue())
			Expect(startY).To(Equal(50.0))
			Expect(endY).To(Equal(70.0))
		})
	})

	Describe("collapsing", func() {
		var p *data.Item
		BeforeEach(func() {
			p = tree.Roots()[1]
			tree.AddChild(p, item("child0"))
			tree.AddChild(p, item("child1"))
			g.Draw()
		})

		It("should toggle on double click", func() {
			Expect(g.Controller().VisibleItems()).To(HaveLen(22))
			stage.Dispatch(pointer(surface.PointerDblClick, 55))
			Expect(p.Collapsed()).To(BeTrue())
			Expect(g.Controller().VisibleItems()).To(HaveLen(20))
			stage.Dispatch(pointer(surface.PointerDblClick, 55))
			Expect(p.Collapsed()).To(BeFalse())
		})

		It("should let a listener cancel the change", func() {
			g.OnRow(grid.RowCollapseExpand, func(re *grid.RowEvent) { re.PreventDefault() })
			g.CollapseExpand(p, true)
			Expect(p.Collapsed()).To(BeFalse())
		})

		It("should leave leaves alone", func() {
			stage.Dispatch(pointer(surface.PointerDblClick, 35))
			Expect(tree.Roots()[0].Collapsed()).To(BeFalse())
		})
	})

	Describe("wheel", func() {
		It("should not consume a wheel it can't scroll", func() {
			evt := pointer(surface.PointerWheel, 100)
			evt.DeltaY = -10
			Expect(stage.Dispatch(evt)).To(BeFalse())
			Expect(g.Controller().ScrollTop()).To(BeZero())
		})

		It("should scroll and consume a wheel it can scroll", func() {
			evt := pointer(surface.PointerWheel, 100)
			evt.DeltaY = 10
			Expect(stage.Dispatch(evt)).To(BeTrue())
			Expect(g.Controller().ScrollTop()).To(Equal(10.0))
		})

		It("should not consume a wheel at the bottom", func() {
			g.Controller().ScrollTo(1000)
			evt := pointer(surface.PointerWheel, 100)
			evt.DeltaY = 10
			Expect(stage.Dispatch(evt)).To(BeFalse())
		})
	})

	Describe("drawing", func() {
		It("should not rebuild anything when nothing changed", func() {
			r := metrics.NewRecorder(nil)
			g.SetRecorder(r)
			g.SetRowStroke(surface.Stroke{Color: "#000000", Thickness: 1})
			g.Draw()
			rev := stage.Revision()
			g.Draw()
			Expect(stage.Revision()).To(Equal(rev))
			Expect(testutil.ToFloat64(r.Rebuilds("grid", "rows"))).To(Equal(1.0))
			Expect(g.IsConsistent()).To(BeTrue())
		})

		It("should clear only the header after a header change", func() {
			sp := &maskSpy{}
			g.SetObserver(sp)
			g.SetHeaderText("Task")
			Expect(sp.invalidated).To(Equal([]state.State{grid.HeaderState}))
			g.Draw()
			Expect(sp.marked).To(Equal([]state.State{grid.HeaderState}))
			Expect(g.IsConsistent()).To(BeTrue())
		})

		It("should clear exactly what scrolling dirtied", func() {
			sp := &maskSpy{}
			g.SetObserver(sp)
			g.Controller().ScrollBy(10)
			Expect(sp.invalidated).NotTo(BeEmpty())
			g.Draw()
			Expect(unionOf(sp.marked)).To(Equal(unionOf(sp.invalidated)))
			Expect(sp.marked).To(HaveLen(1))
		})

		It("should not clear anything when nothing changed", func() {
			sp := &maskSpy{}
			g.SetObserver(sp)
			g.Draw()
			Expect(sp.marked).To(BeEmpty())
		})

		It("should redraw after scrolling", func() {
			g.Controller().ScrollBy(10)
			Expect(g.IsConsistent()).To(BeFalse())
			g.Draw()
			odd, _, _ := g.RowPaths()
			Expect(odd.Bounds().Top).To(Equal(20.0))
		})
	})

	It("should round-trip its settings", func() {
		g.SetupByJSON(style.Settings{
			"headerHeight":     40.0,
			"headerText":       "Task",
			"editable":         true,
			"rowOddFill":       "#111111",
			"defaultRowHeight": 30.0,
		})
		s := g.Serialize()
		Expect(s["headerHeight"]).To(Equal(40.0))
		Expect(s["headerText"]).To(Equal("Task"))
		Expect(s["editable"]).To(BeTrue())
		Expect(s["rowOddFill"]).To(Equal("#111111"))
		Expect(s["rowEvenFill"]).To(Equal("#ffffff"))
		Expect(g.Controller().DefaultRowHeight()).To(Equal(30.0))

		_, other := newGrid(nil, 230)
		other.SetupByJSON(s)
		Expect(other.Serialize()).To(Equal(s))
		Expect(other.Controller().VisibleItems()).To(HaveLen(20))
	})

	It("should reject invalid settings", func() {
		g.SetHeaderHeight(-1)
		g.SetColumnWidth(-5)
		Expect(g.HeaderHeight()).To(Equal(29.0))
		Expect(g.Serialize()["columnWidth"]).To(Equal(0.0))
	})

	It("should stop reacting once disposed", func() {
		g.Dispose()
		stage.Dispatch(pointer(surface.PointerClick, 35))
		Expect(g.Selected()).To(BeNil())
	})
})
