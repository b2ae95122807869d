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

package data

import (
	"fmt"
	"math"

	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
)

// Tree is an ordered forest of items.
type Tree struct {
	state.Base

	roots   []*Item
	nextSeq int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	t := &Tree{}
	t.Init(t, 0)
	return t
}

func (t *Tree) siblings(parent *Item) []*Item {
	if parent == nil {
		return t.roots
	}
	return parent.children
}

func (t *Tree) setSiblings(parent *Item, items []*Item) {
	if parent == nil {
		t.roots = items
		return
	}
	parent.children = items
}

func (t *Tree) newItem(fields map[string]interface{}) *Item {
	t.nextSeq++
	it := &Item{tree: t, fields: map[string]interface{}{}, seq: t.nextSeq}
	for k, v := range fields {
		it.fields[k] = v
	}
	return it
}

func (t *Tree) changed() {
	t.Invalidate(0, state.DataChanged|state.NeedsRecalculation)
}

// Roots returns a copy of the root list.
func (t *Tree) Roots() []*Item {
	return append([]*Item(nil), t.roots...)
}

// AddRoot appends a root item.
func (t *Tree) AddRoot(fields map[string]interface{}) *Item {
	return t.AddChildAt(nil, fields, len(t.roots))
}

// AddChild appends a child of parent (a root when parent is nil).
func (t *Tree) AddChild(parent *Item, fields map[string]interface{}) *Item {
	return t.AddChildAt(parent, fields, len(t.siblings(parent)))
}

// AddChildAt inserts a child of parent at index, clamped to the valid range.
func (t *Tree) AddChildAt(parent *Item, fields map[string]interface{}, index int) *Item {
	it := t.newItem(fields)
	t.insert(parent, it, index)
	t.changed()
	return it
}

func (t *Tree) insert(parent, it *Item, index int) {
	sib := t.siblings(parent)
	if index < 0 {
		index = 0
	}
	if index > len(sib) {
		index = len(sib)
	}
	sib = append(sib, nil)
	copy(sib[index+1:], sib[index:])
	sib[index] = it
	t.setSiblings(parent, sib)
	it.parent = parent
}

func (t *Tree) detach(it *Item) int {
	sib := t.siblings(it.parent)
	for i, s := range sib {
		if s == it {
			t.setSiblings(it.parent, append(sib[:i:i], sib[i+1:]...))
			it.parent = nil
			return i
		}
	}
	return -1
}

// Remove detaches item (and its subtree) from the tree.
func (t *Tree) Remove(it *Item) {
	if it == nil || it.tree != t {
		return
	}
	if t.detach(it) >= 0 {
		t.changed()
	}
}

// Move re-parents item under parent (nil for the root level) at index,
// index counting the siblings after item was removed.  Moving an item into
// itself or its own subtree fails with ErrCyclicMove and changes nothing.
func (t *Tree) Move(it, parent *Item, index int) error {
	if it == nil || it.tree != t {
		return fmt.Errorf("item does not belong to this tree")
	}
	if parent == it || (parent != nil && parent.IsDescendantOf(it)) {
		return ErrCyclicMove
	}
	if parent != nil && parent.tree != t {
		return fmt.Errorf("destination does not belong to this tree")
	}
	t.detach(it)
	t.insert(parent, it, index)
	t.changed()
	return nil
}

// Traverse walks the tree depth-first, parents before children.  Returning
// false from fn skips the item's children.
func (t *Tree) Traverse(fn func(*Item) bool) {
	var walk func(items []*Item)
	walk = func(items []*Item) {
		for _, it := range items {
			if fn(it) {
				walk(it.children)
			}
		}
	}
	walk(t.roots)
}

// Len counts every item.
func (t *Tree) Len() int {
	n := 0
	t.Traverse(func(*Item) bool { n++; return true })
	return n
}

// VisibleItems lists items in display order, skipping the descendants of
// collapsed items.
func (t *Tree) VisibleItems() []*Item {
	var out []*Item
	t.Traverse(func(it *Item) bool {
		out = append(out, it)
		return !it.Collapsed()
	})
	return out
}

// Find returns the first item whose field equals v.
func (t *Tree) Find(field string, v interface{}) *Item {
	var found *Item
	t.Traverse(func(it *Item) bool {
		if found != nil {
			return false
		}
		if it.fields[field] == v {
			found = it
			return false
		}
		return true
	})
	return found
}

// ComputeAutoRange stores, for every item with children, the smallest start
// and largest end of its subtree as autoStart/autoEnd metadata.  It doesn't
// signal: the result is derived data.
func (t *Tree) ComputeAutoRange() {
	var visit func(it *Item) (float64, float64)
	visit = func(it *Item) (float64, float64) {
		start, end := it.Float(FieldStart), it.Float(FieldEnd)
		if len(it.children) == 0 {
			return start, end
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, c := range it.children {
			s, e := visit(c)
			if !math.IsNaN(s) {
				lo = math.Min(lo, s)
			}
			if !math.IsNaN(e) {
				hi = math.Max(hi, e)
			}
		}
		if math.IsInf(lo, 1) {
			it.setMeta(MetaAutoStart, nil)
		} else {
			it.setMeta(MetaAutoStart, lo)
		}
		if math.IsInf(hi, -1) {
			it.setMeta(MetaAutoEnd, nil)
		} else {
			it.setMeta(MetaAutoEnd, hi)
		}
		if math.IsNaN(start) {
			start = it.Start()
		}
		if math.IsNaN(end) {
			end = it.End()
		}
		return start, end
	}
	for _, r := range t.roots {
		visit(r)
	}
}

// TreeFromSettings builds a tree from a list of item objects; each object's
// "children" entry holds its child objects.
func TreeFromSettings(items []interface{}) *Tree {
	t := NewTree()
	t.SuspendSignalsDispatching()
	defer t.ResumeSignalsDispatching(false)

	var add func(parent *Item, list []interface{})
	add = func(parent *Item, list []interface{}) {
		for _, raw := range list {
			s, ok := raw.(style.Settings)
			if !ok {
				continue
			}
			fields := map[string]interface{}{}
			for k, v := range s {
				if k == "children" || k == MetaCollapsed {
					continue
				}
				fields[k] = v
			}
			it := t.AddChild(parent, fields)
			if s.Bool(MetaCollapsed, false) {
				it.setMeta(MetaCollapsed, true)
			}
			add(it, s.List("children"))
		}
	}
	add(nil, items)
	return t
}

// ToSettings is the inverse of TreeFromSettings.
func (t *Tree) ToSettings() []interface{} {
	var conv func(items []*Item) []interface{}
	conv = func(items []*Item) []interface{} {
		out := make([]interface{}, 0, len(items))
		for _, it := range items {
			s := style.Settings{}
			for k, v := range it.fields {
				s[k] = v
			}
			if it.Collapsed() {
				s[MetaCollapsed] = true
			}
			if len(it.children) > 0 {
				s["children"] = conv(it.children)
			}
			out = append(out, s)
		}
		return out
	}
	return conv(t.roots)
}
