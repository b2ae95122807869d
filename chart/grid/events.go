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
	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/surface"
)

// EventType names a row event.
type EventType int

const (
	RowMouseMove EventType = iota
	RowMouseOver
	RowMouseOut
	RowMouseDown
	RowMouseUp
	RowClick
	RowDblClick
	RowSelect
	RowCollapseExpand
	RowBeforeMove
	RowMove
)

var eventNames = [...]string{
	RowMouseMove:      "rowMouseMove",
	RowMouseOver:      "rowMouseOver",
	RowMouseOut:       "rowMouseOut",
	RowMouseDown:      "rowMouseDown",
	RowMouseUp:        "rowMouseUp",
	RowClick:          "rowClick",
	RowDblClick:       "rowDblClick",
	RowSelect:         "rowSelect",
	RowCollapseExpand: "rowCollapseExpand",
	RowBeforeMove:     "rowBeforeMove",
	RowMove:           "rowMove",
}

func (t EventType) String() string {
	if t >= 0 && int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// RowEvent is a pointer event resolved to a row.
type RowEvent struct {
	Type EventType
	Item *data.Item

	// StartY and EndY are the row's pixel span on the stage.
	StartY, EndY float64
	// HoveredIndex counts rendered rows, Index visible rows.
	HoveredIndex int
	Index        int
	// ItemHeightMouseRatio is where in the row the pointer is, from 0 at
	// the top to 1 at the bottom.
	ItemHeightMouseRatio float64

	// Pointer is the event the row event was made from, if any.
	Pointer *surface.PointerEvent

	// Move events carry the destination.
	Parent *data.Item
	Pos    int

	defaultPrevented bool
}

// PreventDefault cancels the grid's own reaction to the event.
func (e *RowEvent) PreventDefault() { e.defaultPrevented = true }

func (e *RowEvent) DefaultPrevented() bool { return e.defaultPrevented }

// RowListener receives row events.
type RowListener func(*RowEvent)

// Hooks are called with every row event before the listeners; embedding
// NopHooks lets an extension override only what it needs.
type Hooks interface {
	AddMouseMove(*RowEvent)
	AddMouseOver(*RowEvent)
	AddMouseOut(*RowEvent)
	AddMouseDown(*RowEvent)
	AddMouseUp(*RowEvent)
	AddMouseClick(*RowEvent)
	AddMouseDblClick(*RowEvent)
}

// NopHooks does nothing.
type NopHooks struct{}

func (NopHooks) AddMouseMove(*RowEvent)     {}
func (NopHooks) AddMouseOver(*RowEvent)     {}
func (NopHooks) AddMouseOut(*RowEvent)      {}
func (NopHooks) AddMouseDown(*RowEvent)     {}
func (NopHooks) AddMouseUp(*RowEvent)       {}
func (NopHooks) AddMouseClick(*RowEvent)    {}
func (NopHooks) AddMouseDblClick(*RowEvent) {}

type listenerEntry struct {
	key int
	fn  RowListener
}

// listeners keeps row listeners per event type in registration order.
type listeners struct {
	next  int
	byTyp map[EventType][]listenerEntry
}

func (l *listeners) add(t EventType, fn RowListener) int {
	if l.byTyp == nil {
		l.byTyp = map[EventType][]listenerEntry{}
	}
	l.next++
	l.byTyp[t] = append(l.byTyp[t], listenerEntry{key: l.next, fn: fn})
	return l.next
}

func (l *listeners) remove(key int) {
	for t, entries := range l.byTyp {
		for i, e := range entries {
			if e.key == key {
				l.byTyp[t] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// dispatch runs the listeners for evt.Type and reports whether the default
// action should still happen.
func (l *listeners) dispatch(evt *RowEvent) bool {
	for _, e := range append([]listenerEntry(nil), l.byTyp[evt.Type]...) {
		e.fn(evt)
	}
	return !evt.defaultPrevented
}
