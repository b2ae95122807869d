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

package data_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
)

func names(items []*data.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name()
	}
	return out
}

func named(n string) map[string]interface{} {
	return map[string]interface{}{data.FieldName: n}
}

var _ = Describe("Tree", func() {
	var (
		tree             *data.Tree
		a, a1, a2, a21, b *data.Item
		signals          int
	)

	BeforeEach(func() {
		tree = data.NewTree()
		a = tree.AddRoot(named("a"))
		a1 = tree.AddChild(a, named("a1"))
		a2 = tree.AddChild(a, named("a2"))
		a21 = tree.AddChild(a2, named("a21"))
		b = tree.AddRoot(named("b"))
		signals = 0
		tree.Listen(func(e state.Event) {
			if e.HasSignal(state.DataChanged) {
				signals++
			}
		})
	})

	It("should list items depth-first", func() {
		Expect(names(tree.VisibleItems())).To(Equal([]string{"a", "a1", "a2", "a21", "b"}))
		Expect(tree.Len()).To(Equal(5))
		Expect(a21.Depth()).To(Equal(2))
		Expect(a21.IsDescendantOf(a)).To(BeTrue())
		Expect(a.IsDescendantOf(a)).To(BeFalse())
		Expect(a2.IndexInParent()).To(Equal(1))
		Expect(b.IndexInParent()).To(Equal(1))
	})

	It("should hide the descendants of collapsed items", func() {
		a2.SetCollapsed(true)
		Expect(names(tree.VisibleItems())).To(Equal([]string{"a", "a1", "a2", "b"}))
	})

	It("should move items between parents", func() {
		Expect(tree.Move(b, a2, 0)).To(Succeed())
		Expect(names(a2.Children())).To(Equal([]string{"b", "a21"}))
		Expect(names(tree.Roots())).To(Equal([]string{"a"}))
		Expect(b.Parent()).To(BeIdenticalTo(a2))
		Expect(signals).To(Equal(1))

		Expect(tree.Move(a1, nil, 5)).To(Succeed())
		Expect(names(tree.Roots())).To(Equal([]string{"a", "a1"}))
	})

	It("should refuse to move an item into its own subtree", func() {
		Expect(tree.Move(a, a21, 0)).To(MatchError(data.ErrCyclicMove))
		Expect(tree.Move(a, a, 0)).To(MatchError(data.ErrCyclicMove))
		Expect(names(tree.VisibleItems())).To(Equal([]string{"a", "a1", "a2", "a21", "b"}))
		Expect(signals).To(BeZero())
	})

	It("should refuse descendant drops for every chain up to depth 10", func() {
		for depth := 1; depth <= 10; depth++ {
			t := data.NewTree()
			chain := []*data.Item{t.AddRoot(named("0"))}
			for i := 1; i < depth; i++ {
				chain = append(chain, t.AddChild(chain[i-1], named("x")))
			}
			for i, anc := range chain {
				for _, desc := range chain[i:] {
					Expect(t.Move(anc, desc, 0)).To(MatchError(data.ErrCyclicMove), "depth %d", depth)
				}
			}
			Expect(t.Len()).To(Equal(depth))
			Expect(chain[depth-1].Depth()).To(Equal(depth - 1))
		}
	})

	It("should compute parent ranges from their children", func() {
		a1.Set(data.FieldStart, 10)
		a1.Set(data.FieldEnd, 20)
		a21.Set(data.FieldStart, 5)
		a21.Set(data.FieldEnd, 8)
		tree.ComputeAutoRange()

		Expect(a2.Start()).To(Equal(5.0))
		Expect(a.Start()).To(Equal(5.0))
		Expect(a.End()).To(Equal(20.0))
		Expect(b.Meta(data.MetaAutoStart)).To(BeNil())
	})

	It("should treat equal start and end as a milestone", func() {
		a1.Set(data.FieldStart, 3)
		a1.Set(data.FieldEnd, 3)
		Expect(a1.IsMilestone()).To(BeTrue())
		Expect(a2.IsMilestone()).To(BeFalse())
		b.Set(data.FieldMilestone, true)
		Expect(b.IsMilestone()).To(BeTrue())
	})

	It("should round-trip through settings", func() {
		a.SetCollapsed(true)
		copied := data.TreeFromSettings(tree.ToSettings())
		Expect(copied.ToSettings()).To(Equal(tree.ToSettings()))
		Expect(copied.Roots()[0].Collapsed()).To(BeTrue())
		Expect(copied.Len()).To(Equal(5))
	})
})

var _ = Describe("Set", func() {
	var set *data.Set
	BeforeEach(func() {
		set = data.SetFromSettings([]interface{}{
			style.Settings{"x": 1, "y": 10},
			style.Settings{"x": 5, "y": 20},
			style.Settings{"x": 9, "y": 30},
		})
	})

	It("should iterate with reset and per-record metadata", func() {
		it := set.ResetIterator()
		var ys []interface{}
		for it.Advance() {
			ys = append(ys, it.Get("y"))
			it.SetMeta("seen", true)
		}
		Expect(ys).To(Equal([]interface{}{10, 20, 30}))
		Expect(it.Get("y")).To(BeNil())

		it.Reset()
		Expect(it.Advance()).To(BeTrue())
		Expect(it.Index()).To(Equal(0))
		Expect(it.Meta("seen")).To(Equal(true))
	})

	It("should find records in a range", func() {
		Expect(set.FindInRange("x", 9, 2)).To(Equal([]int{1, 2}))
		Expect(set.FindInRange("missing", 0, 100)).To(BeEmpty())
	})

	It("should signal on append", func() {
		fired := false
		set.Listen(func(e state.Event) { fired = e.HasSignal(state.DataChanged) })
		set.Append(data.Row{"x": 3})
		Expect(fired).To(BeTrue())
		Expect(set.Len()).To(Equal(4))
		Expect(set.Row(10)).To(BeNil())
	})
})
