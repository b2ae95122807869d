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

package scatter_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"sigs.k8s.io/gridchart/chart/core"
	"sigs.k8s.io/gridchart/chart/data"
	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/metrics"
	"sigs.k8s.io/gridchart/chart/palette"
	"sigs.k8s.io/gridchart/chart/scale"
	"sigs.k8s.io/gridchart/chart/scatter"
	"sigs.k8s.io/gridchart/chart/surface"
)

func diagonal() *data.Set {
	return data.NewSet(
		data.Row{"x": 0, "y": 0},
		data.Row{"x": 5, "y": 5},
		data.Row{"x": 10, "y": 10},
	)
}

var _ = Describe("Scatter chart", func() {
	var (
		c   *scatter.Chart
		rec *counters
		db  geom.Rect
	)

	newChart := func() {
		c = scatter.New(surface.NewStage(80, 30, nil))
		rec = newCounters()
		c.SetRecorder(rec.Recorder)
		c.XScale().(*scale.Quantitative).SetRange(0, 10)
		c.YScale().(*scale.Quantitative).SetRange(0, 10)
	}

	AfterEach(func() {
		c.Dispose()
	})

	Describe("markers", func() {
		var s *scatter.MarkerSeries

		BeforeEach(func() {
			newChart()
			series, ok := c.AddSeries("", diagonal())
			Expect(ok).To(BeTrue())
			s = series.(*scatter.MarkerSeries)
			s.SetName("load")
			c.Draw()
			db = c.DataBounds()
		})

		It("should default to markers shaped by the marker palette", func() {
			Expect(s.Type()).To(Equal(scatter.TypeMarker))
			Expect(s.Marker()).To(Equal(c.MarkerPalette().ItemAt(0)))
			s.SetMarker(palette.MarkerDiamond)
			Expect(s.Marker()).To(Equal(palette.MarkerDiamond))
		})

		It("should hit the point under the pointer", func() {
			p := c.HitTest(db.Left+db.Width/2, db.Bottom()-db.Height/2)
			Expect(p).NotTo(BeNil())
			Expect(p.Index).To(Equal(1))
			Expect(p.Value).To(Equal(5.0))
			Expect(p.Color).To(Equal(c.Palette().ItemAt(0)))
			Expect(c.HitTest(db.Left+db.Width/4, db.Bottom()-db.Height/2)).To(BeNil())
		})

		It("should show the tooltip of the hovered point", func() {
			c.PointerMove(db.Left+db.Width/2, db.Bottom()-db.Height/2)
			Expect(c.Tooltip().Text()).To(Equal("load: 5, 5"))
			c.Draw()
			Expect(rec.count(scatter.TypeMarker, "hover")).To(Equal(1.0))
			Expect(rec.count(scatter.TypeMarker, "markers")).To(Equal(1.0))
		})

		It("should not rebuild markers on an idle draw", func() {
			c.Draw()
			Expect(rec.count(scatter.TypeMarker, "markers")).To(Equal(1.0))
		})

		It("should rebuild markers when the data changes", func() {
			s.Data().(*data.Set).Append(data.Row{"x": 2, "y": 8})
			c.Draw()
			Expect(rec.count(scatter.TypeMarker, "markers")).To(Equal(2.0))
			p := c.HitTest(db.Left+db.Width*0.2, db.Bottom()-db.Height*0.8)
			Expect(p).NotTo(BeNil())
			Expect(p.Index).To(Equal(3))
		})

		It("should not hit points zoomed out of view", func() {
			c.Scroller().SetRange(0, 0.5)
			c.Draw()
			db = c.DataBounds()
			p := c.HitTest(db.Right(), db.Bottom()-db.Height/2)
			Expect(p).NotTo(BeNil())
			Expect(p.Index).To(Equal(1))
			Expect(c.HitTest(db.Right(), db.Top)).To(BeNil())
		})

		It("should place grid lines inside the data area", func() {
			Expect(c.GridLines()).To(HaveLen(2))
			for _, g := range c.GridLines() {
				positions := g.Positions()
				Expect(positions).NotTo(BeEmpty())
				for _, pos := range positions {
					if g.IsVertical() {
						Expect(pos).To(BeNumerically(">=", db.Left-1e-9))
						Expect(pos).To(BeNumerically("<=", db.Right()+1e-9))
					} else {
						Expect(pos).To(BeNumerically(">=", db.Top-1e-9))
						Expect(pos).To(BeNumerically("<=", db.Bottom()+1e-9))
					}
				}
			}
		})

		It("should carry marker settings to another chart", func() {
			s.SetMarker(palette.MarkerSquare)
			s.SetSize(5)
			cfg := c.Serialize()

			other := scatter.New(surface.NewStage(80, 30, nil))
			defer other.Dispose()
			other.SetupByJSON(cfg)
			Expect(other.Series()).To(HaveLen(1))
			restored := other.Series()[0].(*scatter.MarkerSeries)
			Expect(restored.Name()).To(Equal("load"))
			Expect(restored.Marker()).To(Equal(palette.MarkerSquare))
			Expect(restored.Serialize().Float("size", 0)).To(Equal(5.0))
			Expect(other.XScale().(*scale.Quantitative).Maximum()).To(Equal(10.0))
		})
	})

	Describe("lines", func() {
		var s *scatter.LineSeries

		BeforeEach(func() {
			newChart()
			series, ok := c.AddSeries(scatter.TypeLine, data.NewSet(
				data.Row{"x": 0, "y": 0},
				data.Row{"x": 2, "y": 4},
				data.Row{"x": "n/a", "y": 5},
				data.Row{"x": 6, "y": 6},
				data.Row{"x": 8, "y": 2},
			))
			Expect(ok).To(BeTrue())
			s = series.(*scatter.LineSeries)
			c.Draw()
			db = c.DataBounds()
		})

		It("should break the line at records without coordinates", func() {
			paths, closed := s.LinePath().Subpaths()
			Expect(paths).To(HaveLen(2))
			Expect(paths[0]).To(HaveLen(2))
			Expect(paths[1]).To(HaveLen(2))
			Expect(closed).To(Equal([]bool{false, false}))
		})

		It("should stroke the line with the series color", func() {
			st := s.LinePath().Stroke()
			Expect(st.Color).To(Equal(c.Palette().ItemAt(0)))
			Expect(st.Thickness).To(Equal(1.0))
			s.SetDashed(true)
			s.SetThickness(2)
			c.Draw()
			Expect(s.LinePath().Stroke().Dashed).To(BeTrue())
			Expect(s.LinePath().Stroke().Thickness).To(Equal(2.0))
		})

		It("should hit points within reach of the line width", func() {
			x, y := db.Left+db.Width*0.6, db.Bottom()-db.Height*0.6
			p := c.HitTest(x+2, y)
			Expect(p).NotTo(BeNil())
			Expect(p.Index).To(Equal(3))
			Expect(c.HitTest(x+4, y)).To(BeNil())
		})

		It("should keep its settings through a round trip", func() {
			s.SetDashed(true)
			cfg := s.Serialize()
			Expect(cfg.Bool("dashed", false)).To(BeTrue())
			restored := scatter.NewLineSeries()
			restored.SetupByJSON(cfg)
			Expect(restored.Serialize()).To(Equal(cfg))
		})
	})
})

var _ = Describe("MarkerPath", func() {
	var layer *surface.Layer

	BeforeEach(func() {
		layer = surface.NewStage(10, 10, nil).Root().Layer()
	})

	It("should draw squares and diamonds inside the marker box", func() {
		for _, m := range []palette.Marker{palette.MarkerSquare, palette.MarkerDiamond, palette.MarkerTriangleUp} {
			p := layer.Path()
			scatter.MarkerPath(p, m, 5, 5, 2)
			Expect(p.Bounds()).To(Equal(geom.R(3, 3, 4, 4)), string(m))
		}
	})

	It("should draw crosses as two open strokes", func() {
		p := layer.Path()
		scatter.MarkerPath(p, palette.MarkerCross, 5, 5, 2)
		paths, closed := p.Subpaths()
		Expect(paths).To(HaveLen(2))
		Expect(closed).To(Equal([]bool{false, false}))
	})

	It("should draw circles as closed octagons", func() {
		p := layer.Path()
		scatter.MarkerPath(p, palette.MarkerCircle, 5, 5, 2)
		paths, closed := p.Subpaths()
		Expect(paths).To(HaveLen(1))
		Expect(paths[0]).To(HaveLen(8))
		Expect(closed).To(Equal([]bool{true}))
	})
})

var _ = Describe("Registry", func() {
	It("should register marker and line series", func() {
		Expect(scatter.Registry().Types()).To(Equal([]string{scatter.TypeLine, scatter.TypeMarker}))
	})

	It("should satisfy the series interface", func() {
		var _ core.Series = scatter.NewMarkerSeries()
		var _ core.Series = scatter.NewLineSeries()
	})
})

type counters struct {
	*metrics.Recorder
}

func newCounters() *counters {
	return &counters{metrics.NewRecorder(prometheus.NewRegistry())}
}

func (c *counters) count(component, part string) float64 {
	return testutil.ToFloat64(c.Rebuilds(component, part))
}
