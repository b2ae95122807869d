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

// Package chart builds charts from settings.  The "type" of the settings
// picks the chart; the theme layers for that type sit beneath them.
package chart

import (
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/grid"
	"sigs.k8s.io/gridchart/chart/heatmap"
	"sigs.k8s.io/gridchart/chart/metrics"
	"sigs.k8s.io/gridchart/chart/scatter"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

// GridKind is the type name of the grid/timeline.
const GridKind = "grid"

// ErrUnknownType is wrapped by Build when settings name no known chart.
var ErrUnknownType = errors.New("unknown chart type")

// Chart is what the front ends drive.
type Chart interface {
	state.Stateful

	Stage() *surface.Stage
	SetBounds(geom.Rect)
	SetRecorder(*metrics.Recorder)
	Draw()
	Serialize() style.Settings
	SetupByJSON(style.Settings)
	Dispose()
}

// Constructor creates an unconfigured chart on stage.
type Constructor func(stage *surface.Stage) Chart

var constructors = map[string]Constructor{
	heatmap.KindName: func(stage *surface.Stage) Chart { return heatmap.New(stage) },
	scatter.KindName: func(stage *surface.Stage) Chart { return scatter.New(stage) },
	GridKind:         func(stage *surface.Stage) Chart { return grid.New(stage, data.NewTree()) },
}

// Types returns the chart type names Build accepts, sorted.
func Types() []string {
	names := sets.NewString()
	for name := range constructors {
		names.Insert(name)
	}
	return names.List()
}

// Build creates the chart named by settings["type"] on stage and applies
// the theme layers of that type merged under settings.
func Build(stage *surface.Stage, theme style.Theme, settings style.Settings) (Chart, error) {
	typ := settings.String("type", "")
	if typ == "" {
		return nil, fmt.Errorf("%w: settings have no \"type\" (want one of %s)", ErrUnknownType, strings.Join(Types(), ", "))
	}
	ctor, ok := constructors[typ]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownType, typ, strings.Join(Types(), ", "))
	}
	c := ctor(stage)
	c.SetupByJSON(theme.Resolve(typ, settings))
	return c, nil
}

// KindOf returns the type name of a chart built by Build.
func KindOf(c Chart) string {
	switch c.(type) {
	case *heatmap.Chart:
		return heatmap.KindName
	case *scatter.Chart:
		return scatter.KindName
	case *grid.Grid:
		return GridKind
	}
	return ""
}
