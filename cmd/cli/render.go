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

package cli

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"sigs.k8s.io/gridchart/chart"
	"sigs.k8s.io/gridchart/chart/data/promtext"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/heatmap"
	"sigs.k8s.io/gridchart/chart/metrics"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/term"
)

// Render formats.
const (
	FormatSVG  = "svg"
	FormatText = "text"
)

// SVGFontSize is the font size SVG output is measured with.
const SVGFontSize = 12

// Renderer draws a chart once, off screen.
type Renderer struct {
	Theme    style.Theme
	Settings style.Settings

	// Width and Height are in pixels for SVG and in cells for text.
	Width, Height float64

	// Registry, when set, receives the draw counters of the chart.
	Registry *prometheus.Registry
}

// build creates and draws the chart on a stage measured by m.
func (r *Renderer) build(m surface.TextMeasurer) (chart.Chart, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("invalid size %gx%g", r.Width, r.Height)
	}
	stage := surface.NewStage(r.Width, r.Height, m)
	c, err := chart.Build(stage, r.Theme, r.Settings)
	if err != nil {
		return nil, err
	}
	if r.Registry != nil {
		c.SetRecorder(metrics.NewRecorder(r.Registry))
	}
	c.SetBounds(geom.R(0, 0, r.Width, r.Height))
	c.Draw()
	return c, nil
}

// SVG writes the chart as an SVG document.
func (r *Renderer) SVG(w io.Writer) error {
	c, err := r.build(surface.SVGMeasurer{FontSize: SVGFontSize})
	if err != nil {
		return err
	}
	defer c.Dispose()
	if err := surface.WriteSVG(w, c.Stage()); err != nil {
		return fmt.Errorf("unable to write svg: %w", err)
	}
	return nil
}

// Text returns the chart rasterized to terminal cells, one line per row.
func (r *Renderer) Text() (string, error) {
	c, err := r.build(nil)
	if err != nil {
		return "", err
	}
	defer c.Dispose()
	var canvas term.Canvas
	canvas.Render(c.Stage())
	return canvas.String(), nil
}

// Resolved returns the settings of the built chart, as the chart reports
// them after applying the theme.
func (r *Renderer) Resolved() (style.Settings, error) {
	c, err := r.build(nil)
	if err != nil {
		return nil, err
	}
	defer c.Dispose()
	return c.Serialize(), nil
}

// WriteStats writes the gathered counters in the Prometheus text format.
func (r *Renderer) WriteStats(w io.Writer) error {
	if r.Registry == nil {
		return nil
	}
	families, err := r.Registry.Gather()
	if err != nil {
		return fmt.Errorf("unable to gather draw stats: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// WithPromText returns a copy of settings with a heat series holding the
// samples of the exposition text read from in.  Settings without a type
// become a heat map.
func WithPromText(settings style.Settings, in io.Reader, opts promtext.Options) (style.Settings, error) {
	set, err := promtext.Load(in, opts)
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, fmt.Errorf("no samples found in exposition text")
	}
	rows := make([]interface{}, 0, set.Len())
	for _, row := range set.Rows() {
		rows = append(rows, map[string]interface{}(row))
	}
	name := opts.Metric
	if name == "" {
		name = "samples"
	}

	out := style.Merge(settings)
	if out.String("type", "") == "" {
		out["type"] = heatmap.KindName
	}
	series := append([]interface{}(nil), out.List("series")...)
	series = append(series, style.Settings{
		"type": heatmap.TypeHeat,
		"name": name,
		"data": rows,
	})
	out["series"] = series
	return out, nil
}
