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

package chart_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/chart"
	"sigs.k8s.io/gridchart/chart/grid"
	"sigs.k8s.io/gridchart/chart/heatmap"
	"sigs.k8s.io/gridchart/chart/scatter"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
)

var _ = Describe("Build", func() {
	var stage *surface.Stage

	BeforeEach(func() {
		stage = surface.NewStage(80, 30, nil)
	})

	It("should know every chart type", func() {
		Expect(chart.Types()).To(Equal([]string{chart.GridKind, heatmap.KindName, scatter.KindName}))
	})

	It("should refuse settings without a type", func() {
		_, err := chart.Build(stage, style.DefaultTheme(), style.Settings{})
		Expect(err).To(MatchError(chart.ErrUnknownType))
	})

	It("should refuse unknown types", func() {
		_, err := chart.Build(stage, style.DefaultTheme(), style.Settings{"type": "pie"})
		Expect(err).To(MatchError(chart.ErrUnknownType))
		Expect(err.Error()).To(ContainSubstring(`"pie"`))
		Expect(stage.Root().Len()).To(Equal(0))
	})

	Context("with a scatter chart", func() {
		settings := func() style.Settings {
			return style.Settings{
				"type": scatter.KindName,
				"series": []interface{}{
					style.Settings{
						"type": scatter.TypeLine,
						"name": "p99",
						"data": []interface{}{
							style.Settings{"x": 1, "y": 2},
							style.Settings{"x": 2, "y": 3},
						},
					},
				},
			}
		}

		It("should create the series it names", func() {
			c, err := chart.Build(stage, style.DefaultTheme(), settings())
			Expect(err).NotTo(HaveOccurred())
			defer c.Dispose()
			Expect(chart.KindOf(c)).To(Equal(scatter.KindName))
			sc := c.(*scatter.Chart)
			Expect(sc.Series()).To(HaveLen(1))
			Expect(sc.Series()[0].Type()).To(Equal(scatter.TypeLine))
			Expect(sc.Series()[0].Name()).To(Equal("p99"))
			c.Draw()
			Expect(c.IsConsistent()).To(BeTrue())
		})

		It("should apply the theme layers of the chart type", func() {
			c, err := chart.Build(stage, style.DefaultTheme(), settings())
			Expect(err).NotTo(HaveOccurred())
			defer c.Dispose()
			sc := c.(*scatter.Chart)
			Expect(sc.Tooltip().Serialize().String("format", "")).To(Equal("{seriesName}: {x}, {y}"))
			Expect(sc.Palette().ItemAt(0)).To(Equal("#1976d2"))
		})

		It("should let instance settings override the theme", func() {
			theme := style.DefaultTheme().WithOverrides(style.Settings{
				scatter.KindName: style.Settings{"background": "#000000"},
			})
			c, err := chart.Build(stage, theme, settings())
			Expect(err).NotTo(HaveOccurred())
			Expect(c.(*scatter.Chart).Background()).To(Equal("#000000"))
			c.Dispose()

			s := settings()
			s["background"] = "#123456"
			c, err = chart.Build(stage, theme, s)
			Expect(err).NotTo(HaveOccurred())
			defer c.Dispose()
			Expect(c.(*scatter.Chart).Background()).To(Equal("#123456"))
		})
	})

	It("should build a heat map with the theme color scale", func() {
		c, err := chart.Build(stage, style.DefaultTheme(), style.Settings{
			"type": heatmap.KindName,
			"series": []interface{}{
				style.Settings{"data": []interface{}{
					style.Settings{"x": "a", "y": "p", "heat": 1},
					style.Settings{"x": "b", "y": "p", "heat": 2},
				}},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		defer c.Dispose()
		h := c.(*heatmap.Chart)
		Expect(h.Series()).To(HaveLen(1))
		Expect(h.Series()[0].Type()).To(Equal(heatmap.TypeHeat))
		c.Draw()
		Expect(h.Series()[0].(*heatmap.Series).Cells()).To(HaveLen(2))
	})

	It("should build a grid over its data", func() {
		c, err := chart.Build(stage, style.DefaultTheme(), style.Settings{
			"type": chart.GridKind,
			"data": []interface{}{
				style.Settings{"name": "build", "children": []interface{}{
					style.Settings{"name": "compile"},
				}},
			},
		})
		Expect(err).NotTo(HaveOccurred())
		defer c.Dispose()
		Expect(chart.KindOf(c)).To(Equal(chart.GridKind))
		g := c.(*grid.Grid)
		Expect(g.Controller().VisibleItems()).To(HaveLen(2))
		Expect(g.Serialize().String("rowOddFill", "")).To(Equal("#fafafa"))
	})
})
