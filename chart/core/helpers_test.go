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

package core_test

import (
	"sigs.k8s.io/gridchart/chart/core"
	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/debug"
)

// testSeries reads "x" and "y" fields and hits its first point anywhere
// inside its bounds.
type testSeries struct {
	core.SeriesBase
	draws int
}

func newTestSeries() *testSeries {
	s := &testSeries{}
	s.InitSeries(s, "test", 0)
	return s
}

func (s *testSeries) field(name string) []interface{} {
	var out []interface{}
	if s.Data() == nil {
		return out
	}
	for i := 0; i < s.Data().Len(); i++ {
		out = append(out, s.Data().Row(i)[name])
	}
	return out
}

func (s *testSeries) ScaleValues(sc scale.Scale) []interface{} {
	switch sc {
	case s.XScale():
		return s.field("x")
	case s.YScale():
		return s.field("y")
	}
	return nil
}

func (s *testSeries) Values() []float64 {
	var out []float64
	for _, v := range s.field("y") {
		if f, ok := style.AsFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

func (s *testSeries) Draw() {
	if s.IsConsistent() {
		return
	}
	s.draws++
	s.MarkConsistent(core.SeriesStates)
}

func (s *testSeries) HitTest(x, y float64) *core.Point {
	if s.Data() == nil || s.Data().Len() == 0 || !s.Bounds().Contains(x, y) {
		return nil
	}
	row := s.Data().Row(0)
	v, _ := style.AsFloat(row["y"])
	return &core.Point{Series: s, Index: 0, X: row["x"], Y: row["y"], Value: v, Fields: map[string]interface{}{"y": row["y"]}}
}

func (s *testSeries) Serialize() style.Settings { return s.SerializeBase() }

func (s *testSeries) SetupByJSON(cfg style.Settings) { s.SetupBase(cfg) }

func (s *testSeries) Dispose() { s.DisposeBase() }

func testKind() core.Kind {
	reg := core.NewRegistry()
	reg.Register("test", func() core.Series { return newTestSeries() })
	return core.Kind{
		Name:          "test",
		DefaultSeries: "test",
		Series:        reg,
		NewXScale:     func() scale.Scale { return scale.NewLinear() },
		NewYScale:     func() scale.Scale { return scale.NewLinear() },
		TooltipFormat: "{seriesName}: {value}",
	}
}

func newTestChart() *core.Chart {
	return core.New(surface.NewStage(80, 30, nil), testKind())
}

func addTestSeries(c *core.Chart, name string, rows ...data.Row) *testSeries {
	s, ok := c.AddSeries("", data.NewSet(rows...))
	if !ok {
		panic("test series type is not registered")
	}
	ts := s.(*testSeries)
	ts.SetName(name)
	return ts
}

// spy records the dirty-mask transitions of a component.
type spy struct {
	invalidated []state.State
	marked      []state.State
}

func (s *spy) Invalidated(effective state.State) { s.invalidated = append(s.invalidated, effective) }

func (s *spy) MarkedConsistent(bits state.State) { s.marked = append(s.marked, bits) }

func union(list []state.State) state.State {
	var out state.State
	for _, s := range list {
		out |= s
	}
	return out
}

// captureDiagnostics routes diagnostics into the returned slice until
// restore is called.
func captureDiagnostics() (got *[]debug.Diagnostic, restore func()) {
	var list []debug.Diagnostic
	restore = debug.SetReporter(debug.ReporterFunc(func(d debug.Diagnostic) {
		list = append(list, d)
	}))
	return &list, restore
}
