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

// Package heatmap is a chart of colored cells on two ordinal scales.
package heatmap

import (
	"sigs.k8s.io/gridchart/chart/core"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/debug"
)

// KindName is the chart type name used in settings.
const KindName = "heatmap"

// Chart is a heat map.  Every heat series shares the chart's color scale.
type Chart struct {
	*core.Chart

	colorScale scale.ColorScale
	defaults   style.Settings
}

// New creates an empty heat map on stage with ordinal x and y scales and
// an ordinal color scale.
func New(stage *surface.Stage) *Chart {
	h := &Chart{}
	reg := core.NewRegistry()
	reg.Register(TypeHeat, func() core.Series {
		s := NewSeries(stage.Measurer())
		s.SetColorScale(h.colorScale)
		if h.defaults != nil {
			s.SetupByJSON(h.defaults)
		}
		return s
	})
	h.Chart = core.New(stage, core.Kind{
		Name:          KindName,
		DefaultSeries: TypeHeat,
		Series:        reg,
		NewXScale:     func() scale.Scale { return scale.NewOrdinal() },
		NewYScale:     func() scale.Scale { return scale.NewOrdinal() },
		TooltipFormat: "{x}, {y}: {value}",
	})
	h.colorScale = scale.NewOrdinalColor()
	h.AddScale(h.colorScale, true)
	return h
}

func (h *Chart) ColorScale() scale.ColorScale { return h.colorScale }

// SetColorScale replaces the color scale with an external one, which the
// chart will not dispose.
func (h *Chart) SetColorScale(sc scale.ColorScale) {
	h.setColorScale(sc, false)
}

func (h *Chart) setColorScale(sc scale.ColorScale, owned bool) {
	if sc == nil || sc == h.colorScale {
		return
	}
	old := h.colorScale
	h.colorScale = sc
	h.AddScale(sc, owned)
	for _, s := range h.heatSeries() {
		s.SetColorScale(sc)
	}
	if old != nil {
		h.RemoveScale(old)
	}
}

// SetupColorScale applies settings to the color scale, replacing it when
// they name another type.  Only color scale types are accepted.
func (h *Chart) SetupColorScale(s style.Settings) {
	if h.colorScale != nil && s.String("type", h.colorScale.Type()) == h.colorScale.Type() {
		h.colorScale.SetupByJSON(s)
		return
	}
	sc, ok := scale.FromSettings(s, scale.TypeOrdinalColor)
	if !ok {
		return
	}
	cs, ok := sc.(scale.ColorScale)
	if !ok {
		debug.Warning(debug.ScaleTypeNotSupported, sc.Type())
		scale.Dispose(sc)
		return
	}
	h.setColorScale(cs, true)
}

func (h *Chart) heatSeries() []*Series {
	var out []*Series
	for _, s := range h.Series() {
		if hs, ok := s.(*Series); ok {
			out = append(out, hs)
		}
	}
	return out
}

// seriesKeys are the chart level settings every heat series inherits.
var seriesKeys = []string{"labels", "hoverFill", "cellStroke"}

func (h *Chart) Serialize() style.Settings {
	out := h.Chart.Serialize()
	if h.colorScale != nil {
		out["colorScale"] = h.colorScale.Serialize()
	}
	return out
}

// SetupByJSON applies the chart settings.  "labels", "hoverFill" and
// "cellStroke" become defaults of every heat series.
func (h *Chart) SetupByJSON(s style.Settings) {
	h.SuspendSignalsDispatching()
	defer h.ResumeSignalsDispatching(true)

	if m := s.Map("colorScale"); m != nil {
		h.SetupColorScale(m)
	}
	defaults := style.Settings{}
	for _, k := range seriesKeys {
		if s.Has(k) {
			defaults[k] = s[k]
		}
	}
	if stroke, ok := defaults["cellStroke"]; ok {
		delete(defaults, "cellStroke")
		defaults["stroke"] = stroke
	}
	if len(defaults) > 0 {
		h.defaults = style.Merge(h.defaults, defaults)
		for _, hs := range h.heatSeries() {
			hs.SetupByJSON(defaults)
		}
	}
	h.Chart.SetupByJSON(s)
}
