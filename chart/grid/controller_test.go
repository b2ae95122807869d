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
	"fmt"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/grid"
	"sigs.k8s.io/gridchart/chart/state"
)

func item(name string) map[string]interface{} {
	return map[string]interface{}{data.FieldName: name}
}

func flatTree(n int) *data.Tree {
	t := data.NewTree()
	for i := 0; i < n; i++ {
		t.AddRoot(item(fmt.Sprintf("row%d", i)))
	}
	return t
}

var _ = Describe("OffsetCache", func() {
	var c grid.OffsetCache
	BeforeEach(func() {
		c.Reset()
		for _, h := range []float64{20, 30, -5, 10} {
			c.Append(h)
		}
	})

	It("should keep cumulative bottoms", func() {
		Expect(c.Values()).To(Equal([]float64{20, 50, 50, 60}))
		Expect(c.Len()).To(Equal(4))
		Expect(c.Total()).To(Equal(60.0))
		Expect(c.Top(0)).To(Equal(0.0))
		Expect(c.Top(1)).To(Equal(20.0))
	})

	It("should find the row under an offset", func() {
		Expect(c.Find(0)).To(Equal(0))
		Expect(c.Find(19.9)).To(Equal(0))
		Expect(c.Find(20)).To(Equal(1))
		Expect(c.Find(50)).To(Equal(3))
		Expect(c.Find(60)).To(Equal(3))
	})

	It("should reject offsets outside the rows", func() {
		Expect(c.Find(-1)).To(Equal(-1))
		Expect(c.Find(60.5)).To(Equal(-1))
		c.Reset()
		Expect(c.Find(0)).To(Equal(-1))
		Expect(c.Total()).To(BeZero())
	})
})

var _ = Describe("Controller", func() {
	var (
		tree *data.Tree
		c    *grid.Controller
		evts []state.Event
	)
	BeforeEach(func() {
		tree = flatTree(20)
		c = grid.NewController(tree)
		c.SetViewHeight(100)
		c.MarkConsistent(grid.ItemsState | grid.PositionState)
		evts = nil
		c.Listen(func(e state.Event) { evts = append(evts, e) })
	})

	It("should derive the visible slice from the scroll position", func() {
		Expect(c.TotalHeight()).To(Equal(400.0))
		Expect(c.StartIndex()).To(Equal(0))
		Expect(c.EndIndex()).To(Equal(4))

		c.ScrollTo(30)
		Expect(c.StartIndex()).To(Equal(1))
		Expect(c.VerticalOffset()).To(Equal(10.0))
		Expect(c.EndIndex()).To(Equal(6))
		Expect(evts).To(HaveLen(1))
		Expect(evts[0].HasSignal(state.BoundsChanged)).To(BeTrue())
	})

	It("should clamp scrolling to the content", func() {
		c.ScrollTo(1000)
		Expect(c.ScrollTop()).To(Equal(300.0))
		Expect(c.AtBottom()).To(BeTrue())
		c.ScrollBy(-1000)
		Expect(c.ScrollTop()).To(BeZero())
		Expect(c.AtTop()).To(BeTrue())
	})

	It("should scroll just enough to reveal a row", func() {
		c.ScrollToIndex(2)
		Expect(c.ScrollTop()).To(BeZero())
		c.ScrollToIndex(9)
		Expect(c.ScrollTop()).To(Equal(100.0))
		c.ScrollToIndex(3)
		Expect(c.ScrollTop()).To(Equal(60.0))
	})

	It("should honour per-row heights", func() {
		tree.Roots()[0].Set(data.FieldRowHeight, 40.0)
		tree.Roots()[1].SetMeta(data.MetaHeight, 0.0)
		Expect(c.ItemHeight(tree.Roots()[0])).To(Equal(40.0))
		Expect(c.TotalHeight()).To(Equal(400.0 + 20 - 20))
		Expect(evts).NotTo(BeEmpty())
		Expect(evts[0].HasSignal(state.DataChanged)).To(BeTrue())
	})

	It("should drop the rows of collapsed items", func() {
		p := tree.Roots()[0]
		tree.AddChild(p, item("a"))
		tree.AddChild(p, item("b"))
		c.MarkConsistent(grid.ItemsState | grid.PositionState)
		Expect(c.VisibleItems()).To(HaveLen(22))

		evts = nil
		p.SetCollapsed(true)
		Expect(c.VisibleItems()).To(HaveLen(20))
		Expect(c.IndexOf(tree.Roots()[1])).To(Equal(1))
		Expect(evts).To(HaveLen(1))
		Expect(evts[0].HasSignal(state.DataChanged)).To(BeTrue())
	})

	It("should forward metadata changes as a redraw", func() {
		tree.Roots()[3].SetSelected(true)
		Expect(evts).To(HaveLen(1))
		Expect(evts[0].HasSignal(state.DataChanged)).To(BeFalse())
		Expect(evts[0].HasSignal(state.NeedsRedraw)).To(BeTrue())
	})

	It("should work without a tree", func() {
		c.SetTree(nil)
		Expect(c.VisibleItems()).To(BeEmpty())
		Expect(c.TotalHeight()).To(BeZero())
		Expect(c.EndIndex()).To(Equal(-1))
		Expect(c.VerticalOffset()).To(BeZero())
	})

	It("should stop following a released tree", func() {
		c.Dispose()
		evts = nil
		tree.AddRoot(item("late"))
		Expect(evts).To(BeEmpty())
	})
})
