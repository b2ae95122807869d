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

// Package axis has the components placed around the data area: axes,
// scrollers and grid lines.
//
// An Axis measures itself.  Its thickness depends on how many label lines
// it needs, which depends on the length it gets, which depends on the
// thickness of the perpendicular axes, so the layout solver asks it
// repeatedly until the answers settle.
package axis

import (
	"math"
	"sort"
	"strings"

	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/metrics"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/debug"
)

// Axis states beyond the generic ones.
const (
	TicksState  = state.FirstCustom
	LabelsState = state.FirstCustom << 1
	TitleState  = state.FirstCustom << 2

	supported = state.Generic | TicksState | LabelsState | TitleState
)

// DefaultLabelFormat shows the tick label as the scale formats it.
const DefaultLabelFormat = "{label}"

// maxLines is how many rows horizontal labels may be staggered across.
const maxLines = 2

// Label is a placed tick label.
type Label struct {
	Tick scale.Tick
	// Pos is the pixel position along the axis.
	Pos  float64
	Text string
	// Line is the stagger row, 0 being nearest to the axis line.
	Line int
	W, H float64
}

// Axis is a layout.Element drawing a scale's ticks along one side.
type Axis struct {
	state.Base

	orientation geom.Side
	enabled     bool
	sc          scale.Scale
	binding     *state.Binding

	stroke         surface.Stroke
	tickLength     float64
	minTickSpacing float64
	labelsEnabled  bool
	labelFormat    style.Value[string]
	labelColor     string
	title          string

	zoomFrom, zoomTo float64

	parent   geom.Rect
	padding  geom.Padding
	measurer surface.TextMeasurer
	layer    *surface.Layer
	recorder *metrics.Recorder
}

// New creates an enabled axis on side.  A nil measurer measures in
// terminal cells.
func New(side geom.Side, measurer surface.TextMeasurer) *Axis {
	if measurer == nil {
		measurer = surface.CellMeasurer{}
	}
	a := &Axis{
		orientation:    side,
		enabled:        true,
		stroke:         surface.Stroke{Color: "#cecece", Thickness: 1},
		minTickSpacing: 4,
		labelsEnabled:  true,
		labelFormat:    style.Constant(DefaultLabelFormat),
		labelColor:     "#545f69",
		zoomTo:         1,
		measurer:       measurer,
	}
	a.Init(a, supported)
	return a
}

func (a *Axis) IsEnabled() bool { return a.enabled }

func (a *Axis) SetEnabled(enabled bool) {
	if a.enabled != enabled {
		a.enabled = enabled
		a.Invalidate(state.Enabled|state.Bounds, state.BoundsChanged|state.EnabledChanged)
	}
}

func (a *Axis) Orientation() geom.Side { return a.orientation }

func (a *Axis) SetOrientation(side geom.Side) {
	if a.orientation != side {
		a.orientation = side
		a.Invalidate(state.Bounds|TicksState|LabelsState|TitleState, state.BoundsChanged)
	}
}

func (a *Axis) Scale() scale.Scale { return a.sc }

// SetScale binds the axis to sc, unhooking it from the previous scale.
func (a *Axis) SetScale(sc scale.Scale) {
	if a.binding == nil {
		if sc == nil {
			return
		}
		a.binding = state.Bind(sc, a.scaleChanged)
	} else if !a.binding.Rebind(sc) {
		return
	}
	a.sc = sc
	a.Invalidate(TicksState|LabelsState, state.BoundsChanged)
}

func (a *Axis) scaleChanged(evt state.Event) {
	if evt.HasSignal(state.NeedsReapplication) {
		a.Invalidate(TicksState|LabelsState, state.BoundsChanged)
	}
}

// SetZoom shows only the [from, to] ratio window of the scale.
func (a *Axis) SetZoom(from, to float64) {
	if to <= from {
		debug.Warning(debug.InvalidSetting, "axis.zoom", from, to)
		return
	}
	if a.zoomFrom != from || a.zoomTo != to {
		a.zoomFrom, a.zoomTo = from, to
		a.Invalidate(TicksState|LabelsState, state.BoundsChanged)
	}
}

func (a *Axis) SetStroke(s surface.Stroke) {
	if a.stroke == s {
		return
	}
	sig := state.NeedsRedraw
	if a.stroke.Thickness != s.Thickness {
		sig |= state.BoundsChanged
	}
	a.stroke = s
	a.Invalidate(state.Appearance|state.Bounds, sig)
}

func (a *Axis) SetTickLength(l float64) {
	if a.tickLength != l {
		a.tickLength = l
		a.Invalidate(TicksState|state.Bounds, state.BoundsChanged)
	}
}

// SetMinTickSpacing is the smallest gap, in pixels, between two ticks.
func (a *Axis) SetMinTickSpacing(px float64) {
	if px <= 0 {
		debug.Warning(debug.InvalidSetting, "axis.minTickSpacing", px)
		return
	}
	if a.minTickSpacing != px {
		a.minTickSpacing = px
		a.Invalidate(TicksState|LabelsState, state.BoundsChanged)
	}
}

func (a *Axis) SetLabelsEnabled(enabled bool) {
	if a.labelsEnabled != enabled {
		a.labelsEnabled = enabled
		a.Invalidate(LabelsState|state.Bounds, state.BoundsChanged)
	}
}

// SetLabelFormat sets the label template.  Besides the usual context
// tokens, {label} is the scale's own rendering of the tick.
func (a *Axis) SetLabelFormat(v style.Value[string]) {
	a.labelFormat = v
	a.Invalidate(LabelsState, state.BoundsChanged)
}

func (a *Axis) SetLabelColor(c string) {
	if a.labelColor != c {
		a.labelColor = c
		a.Invalidate(state.Appearance, state.NeedsRedraw)
	}
}

func (a *Axis) Title() string { return a.title }

func (a *Axis) SetTitle(t string) {
	if a.title != t {
		a.title = t
		a.Invalidate(TitleState|state.Bounds, state.BoundsChanged)
	}
}

func (a *Axis) SetParentBounds(r geom.Rect) {
	if a.parent != r {
		a.parent = r
		a.Invalidate(state.Bounds, 0)
	}
}

func (a *Axis) SetPadding(p geom.Padding) {
	if a.padding != p {
		a.padding = p
		a.Invalidate(state.Bounds, 0)
	}
}

// SetContainer sets the layer the axis draws into.
func (a *Axis) SetContainer(l *surface.Layer) {
	if a.layer != l {
		a.layer = l
		a.Invalidate(state.Container, state.NeedsRedraw)
	}
}

// SetRecorder makes the axis count its rebuilds.
func (a *Axis) SetRecorder(r *metrics.Recorder) { a.recorder = r }

func (a *Axis) StrokeThickness() float64 {
	if !a.enabled || a.stroke.IsNone() {
		return 0
	}
	return a.stroke.Thickness
}

func (a *Axis) inner() geom.Rect {
	return a.parent.Shrink(a.padding)
}

func (a *Axis) length() float64 {
	in := a.inner()
	if a.orientation.IsHorizontal() {
		return in.Width
	}
	return in.Height
}

// Labels places the tick labels for the current bounds.
func (a *Axis) Labels() []Label {
	if a.sc == nil || !a.enabled {
		return nil
	}
	in := a.inner()
	length := a.length()
	if length <= 0 {
		return nil
	}
	max := int(length/a.minTickSpacing) + 1
	if max < 2 {
		max = 2
	}
	span := a.zoomTo - a.zoomFrom
	var out []Label
	for _, t := range a.sc.Ticks(max) {
		r := (t.Ratio - a.zoomFrom) / span
		if math.IsNaN(r) || r < -1e-9 || r > 1+1e-9 {
			continue
		}
		l := Label{Tick: t}
		if a.orientation.IsHorizontal() {
			l.Pos = in.Left + r*in.Width
		} else {
			l.Pos = in.Bottom() - r*in.Height
		}
		if a.labelsEnabled {
			ctx := &style.Context{Index: len(out), X: t.Value, Fields: map[string]interface{}{"label": t.Label}}
			if f, ok := style.AsFloat(t.Value); ok {
				ctx.Value = f
			}
			l.Text = style.Expand(a.labelFormat.Resolve(ctx), ctx)
			l.W, l.H = a.measurer.Measure(l.Text)
		}
		out = append(out, l)
	}
	if a.labelsEnabled {
		out = a.reflow(out)
	}
	return out
}

// reflow staggers horizontal labels across up to maxLines rows and drops
// the ones that still collide.  Labels come back ordered by position.
func (a *Axis) reflow(labels []Label) []Label {
	sort.SliceStable(labels, func(i, j int) bool { return labels[i].Pos < labels[j].Pos })
	if !a.orientation.IsHorizontal() {
		return dropOverlapping(labels, func(l Label) (float64, float64) {
			return l.Pos - l.H/2, l.Pos + l.H/2
		})
	}
	extent := func(l Label) (float64, float64) { return l.Pos - l.W/2, l.Pos + l.W/2 }
	for lines := 1; lines <= maxLines; lines++ {
		if fits(labels, lines, extent) {
			for i := range labels {
				labels[i].Line = i % lines
			}
			return labels
		}
	}
	return dropOverlapping(labels, extent)
}

func fits(labels []Label, lines int, extent func(Label) (float64, float64)) bool {
	for i := lines; i < len(labels); i++ {
		_, prevEnd := extent(labels[i-lines])
		start, _ := extent(labels[i])
		if start < prevEnd {
			return false
		}
	}
	return true
}

func dropOverlapping(labels []Label, extent func(Label) (float64, float64)) []Label {
	var out []Label
	last := math.Inf(-1)
	for _, l := range labels {
		start, end := extent(l)
		if start > end {
			start, end = end, start
		}
		if l.Text != "" && start < last {
			continue
		}
		if l.Text != "" {
			last = end
		}
		out = append(out, l)
	}
	return out
}

// Lines is how many label rows the axis needs at its current length.
func (a *Axis) Lines() int {
	return lineCount(a.Labels())
}

func lineCount(labels []Label) int {
	lines := 0
	for _, l := range labels {
		if l.Text != "" && l.Line+1 > lines {
			lines = l.Line + 1
		}
	}
	return lines
}

// Thickness is the space the axis claims on its side.
func (a *Axis) Thickness() float64 {
	if !a.enabled {
		return 0
	}
	t := a.StrokeThickness() + a.tickLength
	labels := a.Labels()
	if a.orientation.IsHorizontal() {
		var h float64
		for _, l := range labels {
			h = math.Max(h, l.H)
		}
		t += float64(lineCount(labels)) * h
	} else {
		var w float64
		for _, l := range labels {
			w = math.Max(w, l.W)
		}
		t += w
	}
	if a.title != "" {
		_, h := a.measurer.Measure(a.title)
		t += h
	}
	return t
}

// Bounds is the strip the axis occupies.
func (a *Axis) Bounds() geom.Rect {
	in := a.inner()
	t := a.Thickness()
	switch a.orientation {
	case geom.Top:
		return geom.R(in.Left, in.Top, in.Width, t)
	case geom.Bottom:
		return geom.R(in.Left, in.Bottom()-t, in.Width, t)
	case geom.Left:
		return geom.R(in.Left, in.Top, t, in.Height)
	default:
		return geom.R(in.Right()-t, in.Top, t, in.Height)
	}
}

func (a *Axis) RemainingBounds() geom.Rect {
	return a.inner().Shrink(geom.Padding{}.Set(a.orientation, a.Thickness()))
}

// Draw rebuilds the axis geometry if anything is stale.
func (a *Axis) Draw() {
	if a.IsConsistent() {
		return
	}
	if a.layer == nil {
		return
	}
	a.layer.Clear()
	if a.enabled && a.sc != nil {
		a.drawLine()
		a.drawLabels()
		a.drawTitle()
		a.recorder.Rebuild("axis", "ticks")
	}
	a.Consume(supported)
}

// lineOffset is the coordinate of the axis line across the axis.
func (a *Axis) lineOffset(b geom.Rect) float64 {
	half := a.StrokeThickness() / 2
	switch a.orientation {
	case geom.Top:
		return b.Bottom() - half
	case geom.Bottom:
		return b.Top + half
	case geom.Left:
		return b.Right() - half
	default:
		return b.Left + half
	}
}

// outward is +1 when moving away from the data area increases the
// coordinate.
func (a *Axis) outward() float64 {
	if a.orientation == geom.Top || a.orientation == geom.Left {
		return -1
	}
	return 1
}

func (a *Axis) drawLine() {
	b := a.Bounds()
	at := a.lineOffset(b)
	if !a.stroke.IsNone() {
		p := a.layer.Path().SetStroke(a.stroke)
		if a.orientation.IsHorizontal() {
			p.MoveTo(b.Left, at).LineTo(b.Right(), at)
		} else {
			p.MoveTo(at, b.Top).LineTo(at, b.Bottom())
		}
	}
	if a.tickLength <= 0 {
		return
	}
	ticks := a.layer.Path().SetStroke(a.stroke)
	end := at + a.outward()*(a.StrokeThickness()/2+a.tickLength)
	for _, l := range a.Labels() {
		if a.orientation.IsHorizontal() {
			ticks.MoveTo(l.Pos, at).LineTo(l.Pos, end)
		} else {
			ticks.MoveTo(at, l.Pos).LineTo(end, l.Pos)
		}
	}
}

func (a *Axis) drawLabels() {
	if !a.labelsEnabled {
		return
	}
	b := a.Bounds()
	gap := a.StrokeThickness() + a.tickLength
	for _, l := range a.Labels() {
		if l.Text == "" {
			continue
		}
		t := a.layer.Text(0, 0, l.Text).SetColor(a.labelColor)
		switch a.orientation {
		case geom.Bottom:
			t.SetAnchor(surface.AnchorMiddle).SetPosition(l.Pos, b.Top+gap+float64(l.Line)*l.H)
		case geom.Top:
			t.SetAnchor(surface.AnchorMiddle).SetPosition(l.Pos, b.Bottom()-gap-float64(l.Line+1)*l.H)
		case geom.Left:
			t.SetAnchor(surface.AnchorEnd).SetPosition(b.Right()-gap, l.Pos-l.H/2)
		default:
			t.SetAnchor(surface.AnchorStart).SetPosition(b.Left+gap, l.Pos-l.H/2)
		}
	}
}

// drawTitle puts the title on the outer edge.  Vertical axes stack its
// characters top to bottom.
func (a *Axis) drawTitle() {
	if a.title == "" {
		return
	}
	b := a.Bounds()
	_, h := a.measurer.Measure(a.title)
	switch a.orientation {
	case geom.Bottom:
		a.layer.Text(b.Left+b.Width/2, b.Bottom()-h, a.title).SetAnchor(surface.AnchorMiddle).SetColor(a.labelColor)
	case geom.Top:
		a.layer.Text(b.Left+b.Width/2, b.Top, a.title).SetAnchor(surface.AnchorMiddle).SetColor(a.labelColor)
	default:
		x := b.Left + h/2
		if a.orientation == geom.Right {
			x = b.Right() - h/2
		}
		runes := strings.Split(a.title, "")
		charH := h
		if len(runes) > 0 {
			_, charH = a.measurer.Measure(runes[0])
		}
		y := b.Top + (b.Height-float64(len(runes))*charH)/2
		if y < b.Top {
			y = b.Top
		}
		for i, r := range runes {
			a.layer.Text(x, y+float64(i)*charH, r).SetAnchor(surface.AnchorMiddle).SetColor(a.labelColor)
		}
	}
}

// Serialize returns the axis settings.  Computed label formats are
// dropped with a warning.
func (a *Axis) Serialize() style.Settings {
	return style.Sanitize(style.Settings{
		"enabled":         a.enabled,
		"orientation":     a.orientation.String(),
		"title":           a.title,
		"stroke":          a.stroke.Color,
		"strokeThickness": a.stroke.Thickness,
		"tickLength":      a.tickLength,
		"minTickSpacing":  a.minTickSpacing,
		"labels": style.Settings{
			"enabled":   a.labelsEnabled,
			"format":    a.labelFormat,
			"fontColor": a.labelColor,
		},
	})
}

// SetupByJSON applies settings; missing keys keep their current values.
func (a *Axis) SetupByJSON(s style.Settings) {
	a.SuspendSignalsDispatching()
	defer a.ResumeSignalsDispatching(true)

	a.SetEnabled(s.Bool("enabled", a.enabled))
	if s.Has("orientation") {
		if side, ok := geom.ParseSide(s.String("orientation", "")); ok {
			a.SetOrientation(side)
		} else {
			debug.Warning(debug.InvalidSetting, "axis.orientation", s.String("orientation", ""))
		}
	}
	a.SetTitle(s.String("title", a.title))
	a.SetStroke(surface.Stroke{
		Color:     s.String("stroke", a.stroke.Color),
		Thickness: s.Float("strokeThickness", a.stroke.Thickness),
		Dashed:    a.stroke.Dashed,
	})
	a.SetTickLength(s.Float("tickLength", a.tickLength))
	if s.Has("minTickSpacing") {
		a.SetMinTickSpacing(s.Float("minTickSpacing", a.minTickSpacing))
	}
	labels := s.Map("labels")
	a.SetLabelsEnabled(labels.Bool("enabled", a.labelsEnabled))
	if labels.Has("format") {
		if v, ok := style.ValueOf[string](labels["format"]); ok {
			a.SetLabelFormat(v)
		}
	}
	a.SetLabelColor(labels.String("fontColor", a.labelColor))
}

// Dispose unhooks the axis from its scale and clears its layer.
func (a *Axis) Dispose() {
	if a.binding != nil {
		a.binding.Release()
		a.binding = nil
	}
	if a.layer != nil {
		a.layer.Clear()
	}
	a.RemoveAllListeners()
}
