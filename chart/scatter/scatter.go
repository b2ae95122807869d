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

// Package scatter is a chart of marker and line series on linear x and y
// scales, with grid lines at the axis ticks.
package scatter

import (
	"sigs.k8s.io/gridchart/chart/core"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/surface"
)

// KindName is the chart type name used in settings.
const KindName = "scatter"

// Chart is a scatter chart.
type Chart struct {
	*core.Chart
}

// Registry returns the series types of a scatter chart.
func Registry() *core.Registry {
	reg := core.NewRegistry()
	reg.Register(TypeMarker, func() core.Series { return NewMarkerSeries() })
	reg.Register(TypeLine, func() core.Series { return NewLineSeries() })
	return reg
}

// New creates an empty scatter chart on stage with vertical and horizontal
// grid lines.
func New(stage *surface.Stage) *Chart {
	c := &Chart{Chart: core.New(stage, core.Kind{
		Name:          KindName,
		DefaultSeries: TypeMarker,
		Series:        Registry(),
		NewXScale:     func() scale.Scale { return scale.NewLinear() },
		NewYScale:     func() scale.Scale { return scale.NewLinear() },
		TooltipFormat: "{seriesName}: {x}, {y}",
	})}
	c.AddGridLines(core.X)
	c.AddGridLines(core.Y)
	return c
}
