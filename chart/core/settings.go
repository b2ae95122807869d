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
	"sigs.k8s.io/gridchart/chart/palette"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/debug"
)

func toList[T ~string](items []T) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		out[i] = string(it)
	}
	return out
}

// Serialize returns the chart settings.  Computed values anywhere in the
// tree are dropped with a warning.
func (c *Chart) Serialize() style.Settings {
	out := style.Settings{
		"type":       c.kind.Name,
		"background": c.background,
		"palette":    toList(c.colors.Items()),
		"markers":    toList(c.markers.Items()),
		"hatches":    toList(c.hatches.Items()),
		"scroller":   c.scroller.Serialize(),
		"crosshair":  c.crosshair.Serialize(),
		"tooltip":    c.tooltip.Serialize(),
	}
	if sc := c.scales[X]; sc != nil {
		out["xScale"] = sc.Serialize()
	}
	if sc := c.scales[Y]; sc != nil {
		out["yScale"] = sc.Serialize()
	}
	if a := c.XAxis(); a != nil {
		out["xAxis"] = a.Serialize()
	}
	if a := c.YAxis(); a != nil {
		out["yAxis"] = a.Serialize()
	}
	if len(c.grids) > 0 {
		out["gridLines"] = c.grids[0].lines.Serialize()
	}
	series := make([]interface{}, 0, len(c.series))
	for _, s := range c.series {
		series = append(series, s.Serialize())
	}
	out["series"] = series
	return style.Sanitize(out)
}

// SetupByJSON applies settings; missing keys keep their current values.
// A "series" list replaces every series.
func (c *Chart) SetupByJSON(s style.Settings) {
	c.SuspendSignalsDispatching()
	defer c.ResumeSignalsDispatching(true)

	if t := s.String("type", c.kind.Name); t != c.kind.Name {
		debug.Warning(debug.InvalidSetting, "chart.type", t)
	}
	c.SetBackground(s.String("background", c.background))
	if s.Has("palette") {
		c.colors.SetItems(s.Strings("palette")...)
	}
	if s.Has("markers") {
		c.markers.SetItems(palette.Markers(s.Strings("markers")).Items()...)
	}
	if s.Has("hatches") {
		c.hatches.SetItems(palette.Hatches(s.Strings("hatches")).Items()...)
	}
	if m := s.Map("xScale"); m != nil {
		c.SetupScale(X, m)
	}
	if m := s.Map("yScale"); m != nil {
		c.SetupScale(Y, m)
	}
	common := s.Map("axis")
	for _, a := range c.axes {
		key := "xAxis"
		if dimOf(a.Orientation()) == Y {
			key = "yAxis"
		}
		if common != nil || s.Has(key) {
			a.SetupByJSON(style.Merge(common, s.Map(key)))
		}
	}
	if m := s.Map("gridLines"); m != nil {
		for _, g := range c.grids {
			g.lines.SetupByJSON(m)
		}
	}
	if m := s.Map("scroller"); m != nil {
		c.scroller.SetupByJSON(m)
	}
	if m := s.Map("crosshair"); m != nil {
		c.crosshair.SetupByJSON(m)
	}
	if m := s.Map("tooltip"); m != nil {
		c.tooltip.SetupByJSON(m)
	}
	if s.Has("series") {
		for _, old := range c.Series() {
			c.RemoveSeries(old)
		}
		for _, raw := range s.List("series") {
			cfg, ok := raw.(style.Settings)
			if !ok {
				debug.Warning(debug.InvalidSetting, "chart.series", raw)
				continue
			}
			if series, ok := c.AddSeries(cfg.String("type", ""), nil); ok {
				series.SetupByJSON(cfg)
			}
		}
	}
}
