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

// Package data holds the row trees behind grids and the record sets behind
// series.  Both emit DataChanged signals when mutated; the chart components
// only observe them.
package data

import (
	"errors"
	"fmt"
	"math"

	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
)

// Well-known item fields and metadata keys.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldStart     = "actualStart"
	FieldEnd       = "actualEnd"
	FieldRowHeight = "rowHeight"
	FieldMilestone = "milestone"

	MetaHeight    = "height"
	MetaCollapsed = "collapsed"
	MetaSelected  = "selected"
	MetaAutoStart = "autoStart"
	MetaAutoEnd   = "autoEnd"
	MetaDepth     = "depth"
)

// ErrCyclicMove is returned when an item would become its own ancestor.
var ErrCyclicMove = errors.New("cannot move an item into itself or one of its descendants")

// Item is one row of a Tree.
type Item struct {
	tree     *Tree
	parent   *Item
	children []*Item
	fields   map[string]interface{}
	meta     map[string]interface{}
	seq      int
}

// Tree returns the owning tree.
func (it *Item) Tree() *Tree { return it.tree }

// Parent returns the parent item, or nil for roots.
func (it *Item) Parent() *Item { return it.parent }

// Children returns a copy of the child list.
func (it *Item) Children() []*Item { return append([]*Item(nil), it.children...) }

func (it *Item) NumChildren() int { return len(it.children) }

func (it *Item) ChildAt(i int) *Item {
	if i < 0 || i >= len(it.children) {
		return nil
	}
	return it.children[i]
}

// Get returns a field value.
func (it *Item) Get(field string) interface{} {
	return it.fields[field]
}

// Set changes a field value and signals DataChanged.
func (it *Item) Set(field string, v interface{}) {
	if it.fields == nil {
		it.fields = map[string]interface{}{}
	}
	it.fields[field] = v
	if it.tree != nil {
		it.tree.Invalidate(0, state.DataChanged|state.NeedsRecalculation)
	}
}

// Fields returns a copy of every field.
func (it *Item) Fields() map[string]interface{} {
	out := make(map[string]interface{}, len(it.fields))
	for k, v := range it.fields {
		out[k] = v
	}
	return out
}

// Meta returns a metadata value.
func (it *Item) Meta(key string) interface{} {
	return it.meta[key]
}

// SetMeta changes a metadata value, signalling NeedsRedraw when it changed.
func (it *Item) SetMeta(key string, v interface{}) {
	if it.setMeta(key, v) && it.tree != nil {
		it.tree.Invalidate(0, state.NeedsRedraw)
	}
}

func (it *Item) setMeta(key string, v interface{}) bool {
	if it.meta == nil {
		it.meta = map[string]interface{}{}
	}
	if old, ok := it.meta[key]; ok && old == v {
		return false
	}
	if v == nil {
		delete(it.meta, key)
	} else {
		it.meta[key] = v
	}
	return true
}

// Name is the "name" field as a string.
func (it *Item) Name() string {
	if v := it.fields[FieldName]; v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// ID is the "id" field, or a position-based fallback.
func (it *Item) ID() string {
	if v := it.fields[FieldID]; v != nil {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("item-%d", it.seq)
}

func (it *Item) flag(key string) bool {
	b, _ := it.meta[key].(bool)
	return b
}

func (it *Item) Collapsed() bool { return it.flag(MetaCollapsed) }
func (it *Item) Selected() bool  { return it.flag(MetaSelected) }

func (it *Item) SetCollapsed(c bool) { it.SetMeta(MetaCollapsed, c) }
func (it *Item) SetSelected(s bool)  { it.SetMeta(MetaSelected, s) }

// Depth is 0 for roots.
func (it *Item) Depth() int {
	d := 0
	for p := it.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// IsDescendantOf reports whether ancestor is a strict ancestor of it.
func (it *Item) IsDescendantOf(ancestor *Item) bool {
	for p := it.parent; p != nil; p = p.parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// IndexInParent returns the item's position among its siblings (roots
// included).
func (it *Item) IndexInParent() int {
	siblings := it.tree.siblings(it.parent)
	for i, s := range siblings {
		if s == it {
			return i
		}
	}
	return -1
}

// Float returns a numeric field, or NaN.
func (it *Item) Float(field string) float64 {
	if f, ok := style.AsFloat(it.fields[field]); ok {
		return f
	}
	return math.NaN()
}

// IsMilestone reports whether the item is a single point in time: either
// flagged as such or with equal start and end.
func (it *Item) IsMilestone() bool {
	if b, ok := it.fields[FieldMilestone].(bool); ok {
		return b
	}
	start, end := it.Float(FieldStart), it.Float(FieldEnd)
	return !math.IsNaN(start) && start == end
}

// Start returns the item's start, falling back to the computed auto start.
func (it *Item) Start() float64 {
	if v := it.Float(FieldStart); !math.IsNaN(v) {
		return v
	}
	if f, ok := style.AsFloat(it.meta[MetaAutoStart]); ok {
		return f
	}
	return math.NaN()
}

// End returns the item's end, falling back to the computed auto end.
func (it *Item) End() float64 {
	if v := it.Float(FieldEnd); !math.IsNaN(v) {
		return v
	}
	if f, ok := style.AsFloat(it.meta[MetaAutoEnd]); ok {
		return f
	}
	return math.NaN()
}
