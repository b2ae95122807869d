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

package surface

import (
	"sigs.k8s.io/gridchart/chart/geom"
)

// PointerType is the kind of a pointer event.
type PointerType int

const (
	PointerMove PointerType = iota
	PointerDown
	PointerUp
	PointerClick
	PointerDblClick
	PointerOver
	PointerOut
	PointerWheel
)

func (t PointerType) String() string {
	switch t {
	case PointerMove:
		return "move"
	case PointerDown:
		return "down"
	case PointerUp:
		return "up"
	case PointerClick:
		return "click"
	case PointerDblClick:
		return "dblclick"
	case PointerOver:
		return "over"
	case PointerOut:
		return "out"
	case PointerWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// PointerEvent is a normalized pointer event in stage coordinates.
type PointerEvent struct {
	Type PointerType

	ClientX, ClientY float64
	Button           Button

	AltKey, ShiftKey, CtrlKey bool

	// DeltaX and DeltaY carry wheel movement, positive meaning right/down.
	DeltaX, DeltaY float64

	// Target is the element hit by the event, CurrentTarget the one whose
	// handler is running.
	Target, CurrentTarget Element

	defaultPrevented bool
	stopped          bool
}

// PreventDefault marks the event as consumed.
func (e *PointerEvent) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether any handler consumed the event.
func (e *PointerEvent) DefaultPrevented() bool { return e.defaultPrevented }

// StopPropagation keeps the event from reaching ancestors.
func (e *PointerEvent) StopPropagation() { e.stopped = true }

// PointerHandler receives pointer events.
type PointerHandler func(*PointerEvent)

// Cursor is the pointer shape a component asks for.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorMove
	CursorNotAllowed
)

func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorMove:
		return "move"
	case CursorNotAllowed:
		return "not-allowed"
	default:
		return "default"
	}
}

// DocumentKey identifies a document-level listener.
type DocumentKey int

// Stage owns the element tree and the pointer routing state.
type Stage struct {
	root     *Layer
	width    float64
	height   float64
	measurer TextMeasurer
	revision uint64

	cursor  Cursor
	capture Element
	hovered Element

	nextDocKey DocumentKey
	document   map[DocumentKey]PointerHandler
	docOrder   []DocumentKey
}

// NewStage returns an empty stage.  A nil measurer measures in terminal
// cells.
func NewStage(width, height float64, measurer TextMeasurer) *Stage {
	if measurer == nil {
		measurer = CellMeasurer{}
	}
	s := &Stage{width: width, height: height, measurer: measurer, document: map[DocumentKey]PointerHandler{}}
	s.root = &Layer{owner: s}
	s.root.self = s.root
	return s
}

// Root returns the top-level layer.
func (s *Stage) Root() *Layer { return s.root }

// Size returns the stage size in pixels.
func (s *Stage) Size() (w, h float64) { return s.width, s.height }

// Bounds returns the stage rectangle.
func (s *Stage) Bounds() geom.Rect { return geom.Rect{Width: s.width, Height: s.height} }

// Resize changes the stage size.
func (s *Stage) Resize(w, h float64) {
	if s.width == w && s.height == h {
		return
	}
	s.width, s.height = w, h
	s.revision++
}

// Measurer returns the text measurer.
func (s *Stage) Measurer() TextMeasurer { return s.measurer }

// Revision increases every time anything in the tree changes.
func (s *Stage) Revision() uint64 { return s.revision }

func (s *Stage) Cursor() Cursor { return s.cursor }

func (s *Stage) SetCursor(c Cursor) { s.cursor = c }

// Capture routes every following event to e until ReleaseCapture.
func (s *Stage) Capture(e Element) { s.capture = e }

// ReleaseCapture ends a capture.
func (s *Stage) ReleaseCapture() { s.capture = nil }

// Captured returns the capturing element, if any.
func (s *Stage) Captured() Element { return s.capture }

// OnDocument registers a handler seeing every event after the element
// handlers ran, wherever the pointer is.
func (s *Stage) OnDocument(h PointerHandler) DocumentKey {
	s.nextDocKey++
	s.document[s.nextDocKey] = h
	s.docOrder = append(s.docOrder, s.nextDocKey)
	return s.nextDocKey
}

// RemoveDocumentListener unregisters a document handler.
func (s *Stage) RemoveDocumentListener(k DocumentKey) {
	if _, ok := s.document[k]; !ok {
		return
	}
	delete(s.document, k)
	for i, key := range s.docOrder {
		if key == k {
			s.docOrder = append(s.docOrder[:i], s.docOrder[i+1:]...)
			break
		}
	}
}

// HitTest returns the topmost element with a pointer handler under (x, y).
func (s *Stage) HitTest(x, y float64) Element {
	return hitLayer(s.root, x, y)
}

func hitLayer(l *Layer, x, y float64) Element {
	if l.hidden {
		return nil
	}
	if l.clip != nil && !l.clip.Contains(x, y) {
		return nil
	}
	children := l.Children()
	for i := len(children) - 1; i >= 0; i-- {
		c := children[i]
		if child, ok := c.(*Layer); ok {
			if hit := hitLayer(child, x, y); hit != nil {
				return hit
			}
			continue
		}
		n := c.base()
		if n.handler != nil && !n.hidden && c.Bounds().Contains(x, y) {
			return c
		}
	}
	if l.handler != nil && l.Bounds().Contains(x, y) {
		return l
	}
	return nil
}

func deliver(e Element, evt *PointerEvent) {
	for cur := e; cur != nil && !evt.stopped; {
		if h := cur.base().handler; h != nil {
			evt.CurrentTarget = cur
			h(evt)
		}
		parent := cur.Parent()
		if parent == nil {
			break
		}
		cur = parent
	}
}

// Dispatch routes evt to the captured element or the element under the
// pointer (bubbling to its ancestors), synthesizing over/out events as the
// hovered element changes, then to the document handlers.  It reports
// whether the event was consumed.
func (s *Stage) Dispatch(evt *PointerEvent) bool {
	var target Element
	if s.capture != nil {
		target = s.capture
	} else {
		target = s.HitTest(evt.ClientX, evt.ClientY)
	}
	evt.Target = target

	if s.capture == nil && (evt.Type == PointerMove || evt.Type == PointerOut) {
		next := target
		if evt.Type == PointerOut {
			next = nil
		}
		if next != s.hovered {
			if s.hovered != nil {
				s.notify(s.hovered, PointerOut, evt)
			}
			s.hovered = next
			if next != nil {
				s.notify(next, PointerOver, evt)
			}
		}
	}

	if target != nil && evt.Type != PointerOut {
		deliver(target, evt)
	}

	for _, k := range append([]DocumentKey(nil), s.docOrder...) {
		if h, ok := s.document[k]; ok {
			evt.CurrentTarget = nil
			h(evt)
		}
	}
	return evt.DefaultPrevented()
}

func (s *Stage) notify(e Element, typ PointerType, src *PointerEvent) {
	h := e.base().handler
	if h == nil {
		return
	}
	h(&PointerEvent{
		Type:          typ,
		ClientX:       src.ClientX,
		ClientY:       src.ClientY,
		AltKey:        src.AltKey,
		ShiftKey:      src.ShiftKey,
		CtrlKey:       src.CtrlKey,
		Target:        e,
		CurrentTarget: e,
	})
}
