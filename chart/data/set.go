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
	"sort"

	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
)

// Row is one record.
type Row map[string]interface{}

// Source is the ordered record sequence a series reads.
type Source interface {
	state.Signaller

	Len() int
	// Row returns the record at i, or nil when out of range.
	Row(i int) Row
	// FindInRange returns the indexes of the records whose numeric field
	// lies in [from, to], in ascending order.
	FindInRange(field string, from, to float64) []int
	// ResetIterator returns an iterator positioned before the first record.
	ResetIterator() Iterator
}

// Iterator walks a Source.  Meta values are per-record scratch space owned
// by the reader (hover state, computed pixel positions).
type Iterator interface {
	Reset()
	// Advance moves to the next record, reporting whether there is one.
	Advance() bool
	Index() int
	Get(field string) interface{}
	Meta(key string) interface{}
	SetMeta(key string, v interface{})
}

// Set is an in-memory Source.
type Set struct {
	state.Base

	rows []Row
	meta []map[string]interface{}
}

// NewSet returns a set holding rows.
func NewSet(rows ...Row) *Set {
	s := &Set{}
	s.Init(s, 0)
	s.setRows(rows)
	return s
}

// SetFromSettings builds a set from a list of objects.  Non-object entries
// become a row with a single "value" field.
func SetFromSettings(list []interface{}) *Set {
	rows := make([]Row, 0, len(list))
	for _, raw := range list {
		switch v := raw.(type) {
		case style.Settings:
			rows = append(rows, Row(v))
		case map[string]interface{}:
			rows = append(rows, Row(v))
		default:
			rows = append(rows, Row{"value": v})
		}
	}
	return NewSet(rows...)
}

func (s *Set) setRows(rows []Row) {
	s.rows = append([]Row(nil), rows...)
	s.meta = make([]map[string]interface{}, len(rows))
}

// SetRows replaces every record.
func (s *Set) SetRows(rows ...Row) {
	s.setRows(rows)
	s.Invalidate(0, state.DataChanged|state.NeedsRecalculation)
}

// Append adds records at the end.
func (s *Set) Append(rows ...Row) {
	if len(rows) == 0 {
		return
	}
	s.rows = append(s.rows, rows...)
	s.meta = append(s.meta, make([]map[string]interface{}, len(rows))...)
	s.Invalidate(0, state.DataChanged|state.NeedsRecalculation)
}

func (s *Set) Len() int { return len(s.rows) }

func (s *Set) Row(i int) Row {
	if i < 0 || i >= len(s.rows) {
		return nil
	}
	return s.rows[i]
}

// Rows returns every record.
func (s *Set) Rows() []Row {
	return append([]Row(nil), s.rows...)
}

func (s *Set) FindInRange(field string, from, to float64) []int {
	if from > to {
		from, to = to, from
	}
	var out []int
	for i, r := range s.rows {
		if v, ok := style.AsFloat(r[field]); ok && v >= from && v <= to {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}

func (s *Set) ResetIterator() Iterator {
	return &setIterator{set: s, index: -1}
}

type setIterator struct {
	set   *Set
	index int
}

func (it *setIterator) Reset() { it.index = -1 }

func (it *setIterator) Advance() bool {
	if it.index+1 >= len(it.set.rows) {
		it.index = len(it.set.rows)
		return false
	}
	it.index++
	return true
}

func (it *setIterator) Index() int { return it.index }

func (it *setIterator) valid() bool {
	return it.index >= 0 && it.index < len(it.set.rows)
}

func (it *setIterator) Get(field string) interface{} {
	if !it.valid() {
		return nil
	}
	return it.set.rows[it.index][field]
}

func (it *setIterator) Meta(key string) interface{} {
	if !it.valid() {
		return nil
	}
	return it.set.meta[it.index][key]
}

func (it *setIterator) SetMeta(key string, v interface{}) {
	if !it.valid() {
		return
	}
	m := it.set.meta[it.index]
	if m == nil {
		m = map[string]interface{}{}
		it.set.meta[it.index] = m
	}
	m[key] = v
}
