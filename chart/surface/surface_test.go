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

package surface_test

import (
	"bytes"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/surface"
)

var _ = Describe("Stage", func() {
	var stage *surface.Stage
	BeforeEach(func() {
		stage = surface.NewStage(100, 50, nil)
	})

	It("should paint children by z-index, then creation order", func() {
		root := stage.Root()
		a := root.Path()
		b := root.Rect(geom.R(0, 0, 1, 1))
		c := root.Layer()
		a.SetZIndex(10)
		Expect(root.Children()).To(Equal([]surface.Element{b, c, a}))
	})

	It("should bump the revision only on actual changes", func() {
		p := stage.Root().Path()
		rev := stage.Revision()
		p.SetFill("#fff")
		Expect(stage.Revision()).To(BeNumerically(">", rev))

		rev = stage.Revision()
		p.SetFill("#fff")
		p.SetZIndex(0)
		Expect(stage.Revision()).To(Equal(rev))
	})

	It("should split paths into subpaths", func() {
		p := stage.Root().Path()
		p.AddRect(geom.R(0, 0, 2, 2)).MoveTo(5, 5).LineTo(6, 6)
		paths, closed := p.Subpaths()
		Expect(paths).To(HaveLen(2))
		Expect(closed).To(Equal([]bool{true, false}))
		Expect(p.Bounds()).To(Equal(geom.R(0, 0, 6, 6)))
		Expect(p.D()).To(HavePrefix("M0 0L2 0"))
	})

	Context("when routing pointer events", func() {
		var (
			layer *surface.Layer
			got   []surface.PointerType
		)
		BeforeEach(func() {
			got = nil
			layer = stage.Root().Layer()
			layer.SetHitArea(geom.R(10, 10, 20, 20))
			layer.OnPointer(func(e *surface.PointerEvent) { got = append(got, e.Type) })
		})

		It("should deliver hits and synthesize over/out", func() {
			stage.Dispatch(&surface.PointerEvent{Type: surface.PointerMove, ClientX: 15, ClientY: 15})
			stage.Dispatch(&surface.PointerEvent{Type: surface.PointerMove, ClientX: 16, ClientY: 15})
			stage.Dispatch(&surface.PointerEvent{Type: surface.PointerMove, ClientX: 90, ClientY: 40})
			Expect(got).To(Equal([]surface.PointerType{
				surface.PointerOver, surface.PointerMove, surface.PointerMove, surface.PointerOut,
			}))
		})

		It("should prefer the topmost element and bubble to its layer", func() {
			var order []string
			r := layer.Rect(geom.R(12, 12, 4, 4))
			r.OnPointer(func(e *surface.PointerEvent) {
				if e.Type == surface.PointerDown {
					order = append(order, "rect")
				}
			})
			layer.OnPointer(func(e *surface.PointerEvent) {
				if e.Type == surface.PointerDown {
					order = append(order, "layer")
					Expect(e.Target).To(BeIdenticalTo(r))
				}
			})
			stage.Dispatch(&surface.PointerEvent{Type: surface.PointerDown, ClientX: 13, ClientY: 13})
			Expect(order).To(Equal([]string{"rect", "layer"}))
		})

		It("should route to the capturing element wherever the pointer is", func() {
			stage.Capture(layer)
			stage.Dispatch(&surface.PointerEvent{Type: surface.PointerMove, ClientX: 90, ClientY: 40})
			Expect(got).To(Equal([]surface.PointerType{surface.PointerMove}))
			stage.ReleaseCapture()
			Expect(stage.Captured()).To(BeNil())
		})

		It("should show every event to document listeners", func() {
			seen := 0
			key := stage.OnDocument(func(*surface.PointerEvent) { seen++ })
			stage.Dispatch(&surface.PointerEvent{Type: surface.PointerMove, ClientX: 90, ClientY: 40})
			stage.RemoveDocumentListener(key)
			stage.Dispatch(&surface.PointerEvent{Type: surface.PointerMove, ClientX: 91, ClientY: 40})
			Expect(seen).To(Equal(1))
		})

		It("should report consumed events", func() {
			layer.OnPointer(func(e *surface.PointerEvent) { e.PreventDefault() })
			Expect(stage.Dispatch(&surface.PointerEvent{Type: surface.PointerWheel, ClientX: 15, ClientY: 15})).To(BeTrue())
			Expect(stage.Dispatch(&surface.PointerEvent{Type: surface.PointerWheel, ClientX: 95, ClientY: 15})).To(BeFalse())
		})

		It("should not hit through a clip", func() {
			layer.Clip(geom.R(10, 10, 5, 5))
			Expect(stage.HitTest(12, 12)).To(BeIdenticalTo(layer))
			Expect(stage.HitTest(20, 20)).To(BeNil())
		})
	})
})

var _ = Describe("Measurers", func() {
	It("should measure display width in cells", func() {
		w, h := surface.CellMeasurer{}.Measure("日本")
		Expect(w).To(Equal(4.0))
		Expect(h).To(Equal(1.0))
	})
})

var _ = Describe("WriteSVG", func() {
	It("should render clipped paths and text", func() {
		stage := surface.NewStage(40, 20, surface.SVGMeasurer{FontSize: 10})
		layer := stage.Root().Layer()
		layer.Clip(geom.R(0, 0, 20, 20))
		layer.Path().AddRect(geom.R(1, 1, 5, 5)).SetFill("#ff0000").SetStroke(surface.Stroke{Color: "#000", Thickness: 1, Dashed: true})
		layer.Text(2, 2, "a<b").SetAnchor(surface.AnchorMiddle)

		var buf bytes.Buffer
		Expect(surface.WriteSVG(&buf, stage)).To(Succeed())
		out := buf.String()
		Expect(out).To(ContainSubstring(`<clipPath id="clip1"`))
		Expect(out).To(ContainSubstring(`d="M1 1L6 1L6 6L1 6Z"`))
		Expect(out).To(ContainSubstring("stroke-dasharray"))
		Expect(out).To(ContainSubstring("a&lt;b"))
		Expect(out).To(ContainSubstring(`text-anchor="middle"`))
	})
})
