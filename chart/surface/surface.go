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

// Package surface is a small retained drawing model.  Components build a
// tree of layers, paths, rectangles and text on a Stage; backends (the
// terminal rasterizer, the SVG writer) render the tree, and the stage routes
// pointer events back to the elements that asked for them.
package surface

import (
	"fmt"
	"sort"
	"strings"

	"sigs.k8s.io/gridchart/chart/geom"
)

// Stroke describes an outline.  An empty color or zero thickness draws
// nothing.
type Stroke struct {
	Color     string
	Thickness float64
	Dashed    bool
}

// NoStroke is the empty stroke.
var NoStroke = Stroke{}

// IsNone reports whether the stroke draws nothing.
func (s Stroke) IsNone() bool {
	return s.Color == "" || s.Thickness <= 0
}

// Element is anything that lives in a layer.
type Element interface {
	ZIndex() float64
	SetZIndex(z float64)
	Visible() bool
	SetVisible(visible bool)
	Parent() *Layer
	// Bounds returns the area the element covers, used for hit testing.
	Bounds() geom.Rect
	// OnPointer binds a handler receiving the pointer events that hit the
	// element.  A nil handler unbinds.
	OnPointer(h PointerHandler)
	Remove()

	base() *node
}

type node struct {
	self    Element
	parent  *Layer
	z       float64
	seq     int
	hidden  bool
	handler PointerHandler
}

func (n *node) base() *node { return n }

func (n *node) ZIndex() float64 { return n.z }

func (n *node) SetZIndex(z float64) {
	if n.z == z {
		return
	}
	n.z = z
	n.touch()
}

func (n *node) Visible() bool { return !n.hidden }

func (n *node) SetVisible(visible bool) {
	if n.hidden == !visible {
		return
	}
	n.hidden = !visible
	n.touch()
}

func (n *node) Parent() *Layer { return n.parent }

func (n *node) OnPointer(h PointerHandler) {
	n.handler = h
}

// Remove detaches the element from its layer.
func (n *node) Remove() {
	if n.parent == nil {
		return
	}
	n.parent.detach(n)
}

func (n *node) stage() *Stage {
	var l *Layer
	if n.parent != nil {
		l = n.parent
	} else if layer, ok := n.self.(*Layer); ok {
		l = layer
	}
	for l != nil {
		if l.owner != nil {
			return l.owner
		}
		l = l.parent
	}
	return nil
}

func (n *node) touch() {
	if s := n.stage(); s != nil {
		s.revision++
	}
}

// Layer groups elements under an optional clip rectangle.
type Layer struct {
	node

	owner    *Stage
	children []Element
	clip     *geom.Rect
	hitArea  *geom.Rect
	nextSeq  int
}

func (l *Layer) adopt(e Element) {
	n := e.base()
	n.parent = l
	l.nextSeq++
	n.seq = l.nextSeq
	l.children = append(l.children, e)
	l.touch()
}

func (l *Layer) detach(n *node) {
	for i, c := range l.children {
		if c.base() == n {
			l.children = append(l.children[:i], l.children[i+1:]...)
			n.parent = nil
			l.touch()
			return
		}
	}
}

// Layer creates a child layer.
func (l *Layer) Layer() *Layer {
	child := &Layer{}
	child.self = child
	l.adopt(child)
	return child
}

// Path creates an empty path.
func (l *Layer) Path() *Path {
	p := &Path{}
	p.self = p
	l.adopt(p)
	return p
}

// Rect creates a rectangle.
func (l *Layer) Rect(r geom.Rect) *Rect {
	rect := &Rect{rect: r}
	rect.self = rect
	l.adopt(rect)
	return rect
}

// Text creates a text element anchored at (x, y), y being the top of the
// text.
func (l *Layer) Text(x, y float64, text string) *Text {
	t := &Text{x: x, y: y, text: text}
	t.self = t
	l.adopt(t)
	return t
}

// Clip restricts drawing (and hit testing) to r.
func (l *Layer) Clip(r geom.Rect) {
	if l.clip != nil && *l.clip == r {
		return
	}
	l.clip = &r
	l.touch()
}

// ClearClip removes the clip rectangle.
func (l *Layer) ClearClip() {
	if l.clip == nil {
		return
	}
	l.clip = nil
	l.touch()
}

// ClipRect returns the clip rectangle, if any.
func (l *Layer) ClipRect() (geom.Rect, bool) {
	if l.clip == nil {
		return geom.Rect{}, false
	}
	return *l.clip, true
}

// SetHitArea sets the area in which the layer's own pointer handler fires.
func (l *Layer) SetHitArea(r geom.Rect) {
	l.hitArea = &r
}

// Clear removes every child.
func (l *Layer) Clear() {
	if len(l.children) == 0 {
		return
	}
	for _, c := range l.children {
		c.base().parent = nil
	}
	l.children = nil
	l.touch()
}

// Len returns the number of direct children.
func (l *Layer) Len() int {
	return len(l.children)
}

// Children returns the children in painting order: by z-index, then by
// creation order.
func (l *Layer) Children() []Element {
	out := append([]Element(nil), l.children...)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].base(), out[j].base()
		if a.z != b.z {
			return a.z < b.z
		}
		return a.seq < b.seq
	})
	return out
}

// Bounds returns the hit area, or the clip, or the union of the children.
func (l *Layer) Bounds() geom.Rect {
	if l.hitArea != nil {
		return *l.hitArea
	}
	if l.clip != nil {
		return *l.clip
	}
	var out geom.Rect
	first := true
	for _, c := range l.children {
		b := c.Bounds()
		if b.IsEmpty() {
			continue
		}
		if first {
			out, first = b, false
			continue
		}
		out = union(out, b)
	}
	return out
}

func union(a, b geom.Rect) geom.Rect {
	left, top := a.Left, a.Top
	if b.Left < left {
		left = b.Left
	}
	if b.Top < top {
		top = b.Top
	}
	right, bottom := a.Right(), a.Bottom()
	if b.Right() > right {
		right = b.Right()
	}
	if b.Bottom() > bottom {
		bottom = b.Bottom()
	}
	return geom.Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// SegmentOp is a path command.
type SegmentOp int

const (
	OpMoveTo SegmentOp = iota
	OpLineTo
	OpClose
)

// Segment is one path command.
type Segment struct {
	Op   SegmentOp
	X, Y float64
}

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Path is a list of straight-line subpaths with a shared fill and stroke.
type Path struct {
	node

	segs   []Segment
	fill   string
	stroke Stroke
}

func (p *Path) MoveTo(x, y float64) *Path {
	p.segs = append(p.segs, Segment{Op: OpMoveTo, X: x, Y: y})
	p.touch()
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	if len(p.segs) == 0 {
		return p.MoveTo(x, y)
	}
	p.segs = append(p.segs, Segment{Op: OpLineTo, X: x, Y: y})
	p.touch()
	return p
}

func (p *Path) Close() *Path {
	if len(p.segs) == 0 {
		return p
	}
	p.segs = append(p.segs, Segment{Op: OpClose})
	p.touch()
	return p
}

// AddRect appends a closed rectangle.
func (p *Path) AddRect(r geom.Rect) *Path {
	return p.MoveTo(r.Left, r.Top).
		LineTo(r.Right(), r.Top).
		LineTo(r.Right(), r.Bottom()).
		LineTo(r.Left, r.Bottom()).
		Close()
}

// Clear removes every segment.
func (p *Path) Clear() {
	if len(p.segs) == 0 {
		return
	}
	p.segs = nil
	p.touch()
}

// IsEmpty reports whether the path has no segments.
func (p *Path) IsEmpty() bool {
	return len(p.segs) == 0
}

func (p *Path) Segments() []Segment {
	return append([]Segment(nil), p.segs...)
}

func (p *Path) Fill() string { return p.fill }

func (p *Path) SetFill(color string) *Path {
	if p.fill != color {
		p.fill = color
		p.touch()
	}
	return p
}

func (p *Path) Stroke() Stroke { return p.stroke }

func (p *Path) SetStroke(s Stroke) *Path {
	if p.stroke != s {
		p.stroke = s
		p.touch()
	}
	return p
}

// Subpaths splits the path into point lists, reporting for each whether it
// was closed.
func (p *Path) Subpaths() (paths [][]Point, closed []bool) {
	var cur []Point
	flush := func(isClosed bool) {
		if len(cur) > 0 {
			paths = append(paths, cur)
			closed = append(closed, isClosed)
		}
		cur = nil
	}
	for _, s := range p.segs {
		switch s.Op {
		case OpMoveTo:
			flush(false)
			cur = []Point{{s.X, s.Y}}
		case OpLineTo:
			cur = append(cur, Point{s.X, s.Y})
		case OpClose:
			flush(true)
		}
	}
	flush(false)
	return paths, closed
}

// Bounds returns the bounding box of every point of the path.
func (p *Path) Bounds() geom.Rect {
	var out geom.Rect
	first := true
	for _, s := range p.segs {
		if s.Op == OpClose {
			continue
		}
		pt := geom.Rect{Left: s.X, Top: s.Y}
		if first {
			out, first = pt, false
			continue
		}
		out = union(out, pt)
	}
	return out
}

// D renders the path in SVG path syntax.
func (p *Path) D() string {
	var b strings.Builder
	for _, s := range p.segs {
		switch s.Op {
		case OpMoveTo:
			fmt.Fprintf(&b, "M%g %g", s.X, s.Y)
		case OpLineTo:
			fmt.Fprintf(&b, "L%g %g", s.X, s.Y)
		case OpClose:
			b.WriteString("Z")
		}
	}
	return b.String()
}

// Rect is a filled and/or stroked rectangle.
type Rect struct {
	node

	rect   geom.Rect
	fill   string
	stroke Stroke
}

func (r *Rect) Bounds() geom.Rect { return r.rect }

func (r *Rect) SetBounds(b geom.Rect) *Rect {
	if r.rect != b {
		r.rect = b
		r.touch()
	}
	return r
}

func (r *Rect) Fill() string { return r.fill }

func (r *Rect) SetFill(color string) *Rect {
	if r.fill != color {
		r.fill = color
		r.touch()
	}
	return r
}

func (r *Rect) Stroke() Stroke { return r.stroke }

func (r *Rect) SetStroke(s Stroke) *Rect {
	if r.stroke != s {
		r.stroke = s
		r.touch()
	}
	return r
}

// Anchor is the horizontal alignment of a text element.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Text is a single line of text.
type Text struct {
	node

	x, y   float64
	text   string
	color  string
	anchor Anchor
}

func (t *Text) Text() string { return t.text }

func (t *Text) SetText(s string) *Text {
	if t.text != s {
		t.text = s
		t.touch()
	}
	return t
}

func (t *Text) Position() (x, y float64) { return t.x, t.y }

func (t *Text) SetPosition(x, y float64) *Text {
	if t.x != x || t.y != y {
		t.x, t.y = x, y
		t.touch()
	}
	return t
}

func (t *Text) Color() string { return t.color }

func (t *Text) SetColor(c string) *Text {
	if t.color != c {
		t.color = c
		t.touch()
	}
	return t
}

func (t *Text) Anchor() Anchor { return t.anchor }

func (t *Text) SetAnchor(a Anchor) *Text {
	if t.anchor != a {
		t.anchor = a
		t.touch()
	}
	return t
}

// Size measures the text with the stage's measurer.
func (t *Text) Size() (w, h float64) {
	if s := t.stage(); s != nil {
		return s.measurer.Measure(t.text)
	}
	return CellMeasurer{}.Measure(t.text)
}

// Bounds returns the box covered by the text once anchored.
func (t *Text) Bounds() geom.Rect {
	w, h := t.Size()
	left := t.x
	switch t.anchor {
	case AnchorMiddle:
		left -= w / 2
	case AnchorEnd:
		left -= w
	}
	return geom.Rect{Left: left, Top: t.y, Width: w, Height: h}
}
