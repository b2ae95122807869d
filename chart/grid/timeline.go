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
	"math"

	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/debug"
)

// Timeline draws a Gantt bar for every row of its grid, right of the name
// column.  Items with children get a summary bar spanning their subtree;
// milestones get a diamond.
type Timeline struct {
	state.Base

	g  *Grid
	sc *scale.Quantitative

	fixed    bool
	from, to float64

	barFill       string
	parentFill    string
	milestoneFill string
	barRatio      float64

	dataMin, dataMax float64
}

// NewTimeline creates a timeline showing the whole data range.
func NewTimeline() *Timeline {
	t := &Timeline{
		sc:            scale.NewLinear(),
		barFill:       "#64b5f6",
		parentFill:    "#455a64",
		milestoneFill: "#ef6c00",
		barRatio:      0.6,
		dataMin:       math.NaN(),
		dataMax:       math.NaN(),
	}
	t.sc.SetNice(false)
	t.Init(t, state.Generic)
	return t
}

func (t *Timeline) attach(g *Grid) { t.g = g }

func (t *Timeline) detach() {
	if t.g != nil {
		t.g.bars.Clear()
	}
	t.g = nil
}

// Scale is the time scale of the visible window.
func (t *Timeline) Scale() *scale.Quantitative { return t.sc }

func (t *Timeline) changed() {
	t.Invalidate(state.Appearance, state.NeedsRedraw)
	if t.g != nil {
		t.g.Invalidate(TimelineState|HeaderState, state.NeedsRedraw)
	}
}

// SetVisibleRange fixes the visible window.
func (t *Timeline) SetVisibleRange(from, to float64) {
	if !(to > from) {
		debug.Warning(debug.InvalidSetting, "timeline.range", from, to)
		return
	}
	if t.fixed && t.from == from && t.to == to {
		return
	}
	t.fixed, t.from, t.to = true, from, to
	t.sc.SetRange(from, to)
	t.changed()
}

// VisibleRange returns the window currently shown.
func (t *Timeline) VisibleRange() (from, to float64) {
	return t.sc.Minimum(), t.sc.Maximum()
}

// DataRange returns the extent of every item's start and end.
func (t *Timeline) DataRange() (min, max float64) {
	return t.dataMin, t.dataMax
}

func (t *Timeline) width() float64 {
	if t.g == nil {
		return 0
	}
	return t.g.timelineArea().Width
}

// CanScroll reports whether the window can pan by dx pixels without
// leaving the data range.
func (t *Timeline) CanScroll(dx float64) bool {
	from, to := t.VisibleRange()
	switch {
	case math.IsNaN(t.dataMin):
		return false
	case dx > 0:
		return to < t.dataMax
	case dx < 0:
		return from > t.dataMin
	}
	return false
}

// ScrollBy pans the window by dx pixels.
func (t *Timeline) ScrollBy(dx float64) {
	w := t.width()
	if w <= 0 || dx == 0 {
		return
	}
	from, to := t.VisibleRange()
	shift := dx * (to - from) / w
	t.SetVisibleRange(from+shift, to+shift)
}

// computeRange refreshes the auto ranges of the tree and the data extent,
// applying it to the scale unless the window is fixed.
func (t *Timeline) computeRange(tree *data.Tree) {
	t.dataMin, t.dataMax = math.NaN(), math.NaN()
	if tree == nil {
		return
	}
	tree.ComputeAutoRange()
	var values []interface{}
	tree.Traverse(func(it *data.Item) bool {
		for _, v := range [...]float64{it.Start(), it.End()} {
			if !math.IsNaN(v) {
				values = append(values, v)
				if math.IsNaN(t.dataMin) || v < t.dataMin {
					t.dataMin = v
				}
				if math.IsNaN(t.dataMax) || v > t.dataMax {
					t.dataMax = v
				}
			}
		}
		return true
	})
	if t.fixed {
		return
	}
	t.sc.SuspendSignalsDispatching()
	t.sc.StartAutoCalc()
	t.sc.ExtendDataRange(values...)
	t.sc.FinishAutoCalc()
	t.sc.ResumeSignalsDispatching(false)
}

func (t *Timeline) x(area geom.Rect, v float64) float64 {
	return area.Left + t.sc.Transform(v)*area.Width
}

// BarBounds returns the bar of it for a row spanning [top, top+h], or
// false when the item has no dates.
func (t *Timeline) BarBounds(it *data.Item, top, h float64) (geom.Rect, bool) {
	if t.g == nil {
		return geom.Rect{}, false
	}
	area := t.g.timelineArea()
	start, end := it.Start(), it.End()
	if math.IsNaN(start) || math.IsNaN(end) {
		return geom.Rect{}, false
	}
	ratio := t.barRatio
	if it.NumChildren() > 0 {
		ratio /= 2
	}
	bh := h * ratio
	x1, x2 := t.x(area, start), t.x(area, end)
	return geom.R(x1, top+(h-bh)/2, x2-x1, bh), true
}

func (t *Timeline) draw(layer *surface.Layer) {
	layer.Clear()
	g := t.g
	if g == nil {
		return
	}
	t.computeRange(g.ctrl.Tree())
	area := g.timelineArea()
	items := g.ctrl.VisibleItems()

	bars := layer.Path().SetFill(t.barFill)
	parents := layer.Path().SetFill(t.parentFill)
	milestones := layer.Path().SetFill(t.milestoneFill)

	origin := g.DataTop() - g.ctrl.VerticalOffset()
	for k := 0; k < g.cache.Len(); k++ {
		i := g.cacheStart + k
		if i >= len(items) {
			break
		}
		it := items[i]
		top, h := origin+g.cache.Top(k), g.cache.At(k)-g.cache.Top(k)
		if it.IsMilestone() {
			at := it.Start()
			if math.IsNaN(at) {
				continue
			}
			cx, cy, r := t.x(area, at), top+h/2, h*t.barRatio/2
			milestones.MoveTo(cx, cy-r).LineTo(cx+r, cy).LineTo(cx, cy+r).LineTo(cx-r, cy).Close()
			continue
		}
		r, ok := t.BarBounds(it, top, h)
		if !ok {
			continue
		}
		if it.NumChildren() > 0 {
			parents.AddRect(r)
		} else {
			bars.AddRect(r)
		}
	}
	top := g.DataTop() - 1
	layer.Clip(geom.R(area.Left, top, area.Width, g.bounds.Bottom()-top))
	t.Consume(state.Generic)
}

// drawHeader labels the time axis inside the header.
func (t *Timeline) drawHeader(layer *surface.Layer, r geom.Rect) {
	if r.Width <= 0 || t.g == nil {
		return
	}
	t.computeRange(t.g.ctrl.Tree())
	m := t.g.stage.Measurer()
	sample, th := m.Measure("00000")
	max := int(r.Width/(sample+1)) + 1
	sub := layer.Layer()
	for _, tick := range t.sc.Ticks(max) {
		x := r.Left + tick.Ratio*r.Width
		sub.Text(x, r.Top+(r.Height-th)/2, tick.Label).SetAnchor(surface.AnchorMiddle).SetColor(t.g.fontColor)
	}
	sub.Clip(r)
}

func (t *Timeline) Serialize() style.Settings {
	s := style.Settings{
		"barFill":       t.barFill,
		"parentFill":    t.parentFill,
		"milestoneFill": t.milestoneFill,
		"barRatio":      t.barRatio,
	}
	if t.fixed {
		s["minimum"], s["maximum"] = t.from, t.to
	}
	return s
}

func (t *Timeline) SetupByJSON(s style.Settings) {
	t.barFill = s.String("barFill", t.barFill)
	t.parentFill = s.String("parentFill", t.parentFill)
	t.milestoneFill = s.String("milestoneFill", t.milestoneFill)
	if r := s.Float("barRatio", t.barRatio); r > 0 && r <= 1 {
		t.barRatio = r
	} else {
		debug.Warning(debug.InvalidSetting, "timeline.barRatio", r)
	}
	if s.Has("minimum") && s.Has("maximum") {
		t.SetVisibleRange(s.Float("minimum", 0), s.Float("maximum", 1))
	}
	t.changed()
}
