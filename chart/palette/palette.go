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

// Package palette holds the shared item lists (colors, markers, hatch
// fills) that charts hand out to series in order.
package palette

import (
	"sigs.k8s.io/gridchart/chart/state"
)

// Palette is an ordered, cyclic list of items.  Replacing the items emits
// NeedsReapplication so every holder re-assigns.
type Palette[T comparable] struct {
	state.Base
	items []T
}

// New returns a palette over items.
func New[T comparable](items ...T) *Palette[T] {
	p := &Palette[T]{items: append([]T(nil), items...)}
	p.Init(p, 0)
	return p
}

// Len returns the number of distinct items.
func (p *Palette[T]) Len() int {
	return len(p.items)
}

// ItemAt returns the item for index i, wrapping around.  An empty palette
// yields the zero value.
func (p *Palette[T]) ItemAt(i int) T {
	var zero T
	if len(p.items) == 0 {
		return zero
	}
	i %= len(p.items)
	if i < 0 {
		i += len(p.items)
	}
	return p.items[i]
}

// Items returns a copy of the items.
func (p *Palette[T]) Items() []T {
	return append([]T(nil), p.items...)
}

// SetItems replaces the items, signalling only on change.
func (p *Palette[T]) SetItems(items ...T) {
	if equal(p.items, items) {
		return
	}
	p.items = append([]T(nil), items...)
	p.DispatchSignal(state.NeedsReapplication | state.NeedsRedraw)
}

func equal[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Marker names a point marker shape.
type Marker string

const (
	MarkerCircle     Marker = "circle"
	MarkerSquare     Marker = "square"
	MarkerDiamond    Marker = "diamond"
	MarkerTriangleUp Marker = "triangleUp"
	MarkerCross      Marker = "cross"
)

// Hatch names a hatch fill pattern.
type Hatch string

const (
	HatchNone             Hatch = "none"
	HatchBackwardDiagonal Hatch = "backwardDiagonal"
	HatchForwardDiagonal  Hatch = "forwardDiagonal"
	HatchHorizontal       Hatch = "horizontal"
	HatchVertical         Hatch = "vertical"
)

// Colors, Markers and Hatches build palettes from the string lists found in
// settings.
func Colors(items []string) *Palette[string] {
	return New(items...)
}

func Markers(items []string) *Palette[Marker] {
	out := make([]Marker, len(items))
	for i, it := range items {
		out[i] = Marker(it)
	}
	return New(out...)
}

func Hatches(items []string) *Palette[Hatch] {
	out := make([]Hatch, len(items))
	for i, it := range items {
		out[i] = Hatch(it)
	}
	return New(out...)
}
