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

// Package geom holds the pixel geometry shared by the drawing surface and
// every chart component.
package geom

import "fmt"

// Rect is an axis-aligned pixel rectangle.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// R is shorthand for a Rect literal.
func R(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Width: width, Height: height}
}

func (r Rect) Right() float64  { return r.Left + r.Width }
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// IsEmpty reports whether the rectangle covers no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether (x, y) is inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Right() && y >= r.Top && y <= r.Bottom()
}

// Shrink removes p from each side, never producing negative sizes.
func (r Rect) Shrink(p Padding) Rect {
	out := Rect{
		Left:   r.Left + p.Left,
		Top:    r.Top + p.Top,
		Width:  r.Width - p.Left - p.Right,
		Height: r.Height - p.Top - p.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Intersect returns the overlap of r and o (empty if they don't overlap).
func (r Rect) Intersect(o Rect) Rect {
	left, top := max(r.Left, o.Left), max(r.Top, o.Top)
	right, bottom := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if right < left || bottom < top {
		return Rect{Left: left, Top: top}
	}
	return Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.Left, r.Top, r.Width, r.Height)
}

// Padding is space reserved on each side of a rectangle.
type Padding struct {
	Top, Right, Bottom, Left float64
}

// Get returns the padding on side s.
func (p Padding) Get(s Side) float64 {
	switch s {
	case Top:
		return p.Top
	case Right:
		return p.Right
	case Bottom:
		return p.Bottom
	default:
		return p.Left
	}
}

// Set returns p with side s set to v.
func (p Padding) Set(s Side, v float64) Padding {
	switch s {
	case Top:
		p.Top = v
	case Right:
		p.Right = v
	case Bottom:
		p.Bottom = v
	default:
		p.Left = v
	}
	return p
}

// Side names one edge of a rectangle.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Sides lists every side in visiting order.
var Sides = [...]Side{Top, Right, Bottom, Left}

// IsHorizontal reports whether the side runs horizontally (top or bottom).
func (s Side) IsHorizontal() bool {
	return s == Top || s == Bottom
}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("Side(%d)", int(s))
	}
}

// ParseSide is the inverse of Side.String.
func ParseSide(s string) (Side, bool) {
	for _, side := range Sides {
		if side.String() == s {
			return side, true
		}
	}
	return Left, false
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
