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

package core

import (
	"sort"

	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

// PointEventType is the kind of a point event.
type PointEventType int

const (
	PointOver PointEventType = iota
	PointOut
	PointClick
)

func (t PointEventType) String() string {
	switch t {
	case PointOver:
		return "pointOver"
	case PointOut:
		return "pointOut"
	case PointClick:
		return "pointClick"
	default:
		return "unknown"
	}
}

// PointEvent tells listeners about pointer interaction with a data point.
type PointEvent struct {
	Type  PointEventType
	Point *Point
}

type PointListener func(PointEvent)

type pointListeners struct {
	next int
	fns  map[int]PointListener
}

func (l *pointListeners) add(fn PointListener) int {
	if l.fns == nil {
		l.fns = map[int]PointListener{}
	}
	l.next++
	l.fns[l.next] = fn
	return l.next
}

func (l *pointListeners) remove(key int) {
	delete(l.fns, key)
}

func (l *pointListeners) fire(evt PointEvent) {
	keys := make([]int, 0, len(l.fns))
	for k := range l.fns {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if fn, ok := l.fns[k]; ok {
			fn(evt)
		}
	}
}

// OnPoint registers a point listener and returns a key for
// RemovePointListener.
func (c *Chart) OnPoint(fn PointListener) int {
	return c.points.add(fn)
}

func (c *Chart) RemovePointListener(key int) {
	c.points.remove(key)
}

func (c *Chart) handlePointer(evt *surface.PointerEvent) {
	switch evt.Type {
	case surface.PointerMove:
		c.PointerMove(evt.ClientX, evt.ClientY)
	case surface.PointerOut:
		c.PointerOut()
	case surface.PointerClick:
		if p := c.HitTest(evt.ClientX, evt.ClientY); p != nil {
			c.points.fire(PointEvent{Type: PointClick, Point: p})
			evt.PreventDefault()
		}
	}
}

// HitTest returns the topmost point of an enabled series under (x, y), or
// nil when there is none or the position is outside the data area.
func (c *Chart) HitTest(x, y float64) *Point {
	if !c.dataBounds.Contains(x, y) {
		return nil
	}
	for i := len(c.series) - 1; i >= 0; i-- {
		s := c.series[i]
		if !s.IsEnabled() {
			continue
		}
		if p := s.HitTest(x, y); p != nil {
			return p
		}
	}
	return nil
}

// Hovered returns the point under the pointer, or nil.
func (c *Chart) Hovered() *Point { return c.hover }

// PointerMove hovers the point under (x, y), shows its tooltip and moves
// the crosshair.
func (c *Chart) PointerMove(x, y float64) {
	p := c.HitTest(x, y)
	c.setHover(p)
	if p != nil {
		c.tooltip.Show(x, y, c.pointContext(p))
	} else {
		c.tooltip.Hide()
	}
	c.crosshair.MoveTo(x, y)
}

// PointerOut clears the hover, the tooltip and the crosshair.
func (c *Chart) PointerOut() {
	c.setHover(nil)
	c.tooltip.Hide()
	c.crosshair.Hide()
}

func samePoint(a, b *Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Series == b.Series && a.Index == b.Index
}

func (c *Chart) setHover(p *Point) {
	if samePoint(c.hover, p) {
		return
	}
	if old := c.hover; old != nil {
		old.Series.SetHovered(-1)
		c.hover = nil
		c.points.fire(PointEvent{Type: PointOut, Point: old})
	}
	if p != nil {
		c.hover = p
		p.Series.SetHovered(p.Index)
		c.points.fire(PointEvent{Type: PointOver, Point: p})
	}
}

// pointContext is the tooltip context of p: its own fields plus the
// series and chart statistics.
func (c *Chart) pointContext(p *Point) *style.Context {
	ctx := p.Context()
	fields := make(map[string]interface{}, len(p.Fields)+10)
	for k, v := range p.Fields {
		fields[k] = v
	}
	if p.Series != nil {
		p.Series.Statistics().Fields("series", fields)
	}
	c.stats.Fields("chart", fields)
	ctx.Fields = fields
	return ctx
}
