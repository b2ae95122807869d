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

// Package layout reconciles the space claimed by axes and scrollers around
// a chart's data area.
//
// An axis' thickness can depend on the room it gets along its length (labels
// stagger when they don't fit), and that room depends on the thickness of
// the axes on the crossing sides.  The solver measures everything, feeds the
// offsets back and re-measures until nothing changes or MaxAttempts is hit.
package layout

import (
	"math"

	"sigs.k8s.io/gridchart/chart/geom"
)

// MaxAttempts bounds the measuring passes.  A layout that hasn't settled by
// then is used as is.
const MaxAttempts = 5

// Element is an axis-like component placed on one side of the data area.
type Element interface {
	IsEnabled() bool
	// Orientation is the side the element is attached to.
	Orientation() geom.Side
	SetParentBounds(geom.Rect)
	SetPadding(geom.Padding)
	// RemainingBounds is the parent bounds minus the padding and the
	// element's own thickness.
	RemainingBounds() geom.Rect
	// StrokeThickness is the width of the element's line, reserved even
	// when the element measures nothing else.
	StrokeThickness() float64
}

// Result is the outcome of a Solve.
type Result struct {
	// DataBounds is the content rectangle minus every offset.
	DataBounds geom.Rect
	// Offsets is the space claimed on each side.
	Offsets  geom.Padding
	Attempts int
	// Converged is false when MaxAttempts passed without settling.
	Converged bool
}

// Solver runs the reconciliation loop.  The zero value uses MaxAttempts.
type Solver struct {
	MaxAttempts int
}

func thickness(e Element, parent geom.Rect, pad geom.Padding) float64 {
	rem := e.RemainingBounds()
	inner := parent.Shrink(pad)
	var t float64
	switch e.Orientation() {
	case geom.Top:
		t = rem.Top - inner.Top
	case geom.Bottom:
		t = inner.Bottom() - rem.Bottom()
	case geom.Left:
		t = rem.Left - inner.Left
	case geom.Right:
		t = inner.Right() - rem.Right()
	}
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	return t
}

func enabled(groups ...[]Element) []Element {
	var out []Element
	for _, g := range groups {
		for _, e := range g {
			if e != nil && e.IsEnabled() {
				out = append(out, e)
			}
		}
	}
	return out
}

func opposite(s geom.Side) geom.Side {
	return (s + 2) % 4
}

// measure runs one pass with the given cross offsets and returns the
// offsets it accumulates.
func measure(content geom.Rect, elements []Element, cross geom.Padding) geom.Padding {
	var next, strokes geom.Padding
	for _, e := range elements {
		side := e.Orientation()
		pad := cross.Set(side, 0).Set(opposite(side), 0)
		e.SetParentBounds(content)
		e.SetPadding(pad)
		next = next.Set(side, next.Get(side)+thickness(e, content, pad))
		if st := e.StrokeThickness(); st > strokes.Get(side) {
			strokes = strokes.Set(side, st)
		}
	}
	for _, side := range geom.Sides {
		if strokes.Get(side) > next.Get(side) {
			next = next.Set(side, strokes.Get(side))
		}
	}
	return next
}

// Solve lays out before (scrollers placed before the axes), axes and after
// (scrollers placed after the axes) around content.  Disabled elements are
// skipped.  On return every element has its final parent bounds and
// padding.
func (s Solver) Solve(content geom.Rect, before, axes, after []Element) Result {
	max := s.MaxAttempts
	if max <= 0 {
		max = MaxAttempts
	}
	elements := enabled(before, axes, after)

	var offsets geom.Padding
	res := Result{}
	for res.Attempts < max {
		res.Attempts++
		next := measure(content, elements, offsets)
		if next == offsets {
			res.Converged = true
			break
		}
		offsets = next
	}

	// final placement: stack the elements of each side outwards-in
	var placed geom.Padding
	for _, e := range elements {
		side := e.Orientation()
		pad := offsets.Set(side, placed.Get(side))
		e.SetParentBounds(content)
		e.SetPadding(pad)
		placed = placed.Set(side, placed.Get(side)+thickness(e, content, pad))
	}

	res.Offsets = offsets
	res.DataBounds = content.Shrink(offsets)
	return res
}
