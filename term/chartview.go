/*
Copyright 2020 The Kubernetes Authors.

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

package term

import (
	"github.com/gdamore/tcell"

	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/surface"
)

// Drawable is anything that lays itself out in bounds and draws onto its
// stage: charts and grids alike.
type Drawable interface {
	Stage() *surface.Stage
	SetBounds(geom.Rect)
	Draw()
}

// ChartView shows a Drawable in a region of the screen.  The stage is
// measured in cells, so the chart is laid out for exactly the box it gets.
type ChartView struct {
	Chart Drawable
	// Pointer normalizes the mouse reports handed to HandleMouse.
	Pointer PointerNormalizer

	pos      PositionBox
	canvas   Canvas
	rendered uint64
	valid    bool
}

// NewChartView wraps c.
func NewChartView(c Drawable) *ChartView {
	return &ChartView{Chart: c}
}

// Box returns the region last assigned to the view.
func (v *ChartView) Box() PositionBox { return v.pos }

func (v *ChartView) SetBox(box PositionBox) {
	v.pos = box
	if v.Chart == nil {
		return
	}
	cols, rows := float64(box.Cols), float64(box.Rows)
	v.Chart.Stage().Resize(cols, rows)
	v.Chart.SetBounds(geom.R(0, 0, cols, rows))
}

// FlushTo redraws the chart if it is dirty and copies it to the screen.
// The stage is only rasterized again when something on it changed.
func (v *ChartView) FlushTo(screen tcell.Screen) {
	if v.Chart == nil || v.pos.Cols <= 0 || v.pos.Rows <= 0 {
		return
	}
	v.Chart.Draw()
	stage := v.Chart.Stage()
	if !v.valid || stage.Revision() != v.rendered {
		v.canvas.Render(stage)
		v.rendered = stage.Revision()
		v.valid = true
	}
	v.canvas.FlushTo(screen, v.pos.StartCol, v.pos.StartRow)
}

// Canvas returns the last rasterized frame.
func (v *ChartView) Canvas() *Canvas { return &v.canvas }

// HandleMouse routes a terminal mouse report to the stage, reporting
// whether it produced any pointer event.
func (v *ChartView) HandleMouse(evt *tcell.EventMouse) bool {
	if v.Chart == nil {
		return false
	}
	events := v.Pointer.Normalize(evt, v.pos)
	stage := v.Chart.Stage()
	for _, e := range events {
		stage.Dispatch(e)
	}
	return len(events) > 0
}
