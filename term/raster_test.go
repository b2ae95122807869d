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

package term_test

import (
	"github.com/gdamore/tcell"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/term"
)

var _ = Describe("Canvas", func() {
	var (
		stage  *surface.Stage
		canvas *term.Canvas
		black  = surface.Stroke{Color: "#000000", Thickness: 1}
	)
	BeforeEach(func() {
		stage = surface.NewStage(10, 5, nil)
		canvas = &term.Canvas{}
	})
	render := func() []string {
		canvas.Render(stage)
		return canvas.Lines()
	}

	It("should size itself to the stage", func() {
		render()
		cols, rows := canvas.Size()
		Expect(cols).To(Equal(10))
		Expect(rows).To(Equal(5))
	})

	It("should fill the cells whose centers a rectangle covers", func() {
		stage.Root().Rect(geom.R(1, 1, 3, 2)).SetFill("#ff0000")
		render()
		red := tcell.NewRGBColor(255, 0, 0)
		Expect(canvas.Background(1, 1)).To(Equal(red))
		Expect(canvas.Background(3, 2)).To(Equal(red))
		Expect(canvas.Background(4, 1)).To(Equal(tcell.ColorDefault))
		Expect(canvas.Background(1, 3)).To(Equal(tcell.ColorDefault))
	})

	It("should fill closed paths", func() {
		stage.Root().Path().SetFill("#00f").AddRect(geom.R(5, 0, 2, 2))
		render()
		blue := tcell.NewRGBColor(0, 0, 255)
		Expect(canvas.Background(5, 0)).To(Equal(blue))
		Expect(canvas.Background(6, 1)).To(Equal(blue))
		Expect(canvas.Background(7, 0)).To(Equal(tcell.ColorDefault))
		Expect(canvas.Background(5, 2)).To(Equal(tcell.ColorDefault))
	})

	It("should draw axis-aligned strokes with box-drawing characters, crossing where they meet", func() {
		stage.Root().Path().SetStroke(black).MoveTo(0, 2).LineTo(5, 2)
		stage.Root().Path().SetStroke(black).MoveTo(2, 0).LineTo(2, 5)
		lines := render()
		Expect(lines[0]).To(Equal("  │"))
		Expect(lines[2]).To(Equal("──┼──"))
		Expect(lines[4]).To(Equal("  │"))
	})

	It("should draw dashed strokes with dashed characters", func() {
		stage.Root().Path().SetStroke(surface.Stroke{Color: "#000000", Thickness: 1, Dashed: true}).MoveTo(0, 1).LineTo(3, 1)
		Expect(render()[1]).To(Equal("╌╌╌"))
	})

	It("should outline stroked rectangles", func() {
		stage.Root().Rect(geom.R(0, 0, 4, 3)).SetStroke(black)
		Expect(render()[:3]).To(Equal([]string{"┌──┐", "│  │", "└──┘"}))
	})

	It("should draw other lines with braille dots", func() {
		stage.Root().Path().SetStroke(black).MoveTo(0, 0).LineTo(1, 1)
		render()
		// dots (0,0), (1,1) and (1,2) of the first cell
		Expect(canvas.Rune(0, 0)).To(Equal('\u2831'))
		Expect(canvas.Rune(1, 0)).To(BeNumerically(">", '\u2800'))
		Expect(canvas.Rune(1, 0)).To(BeNumerically("<=", '\u28ff'))
		Expect(canvas.Foreground(0, 0)).To(Equal(tcell.NewRGBColor(0, 0, 0)))
	})

	It("should write anchored text", func() {
		stage.Root().Text(1, 3, "hi").SetColor("#00ff00")
		stage.Root().Text(10, 4, "end").SetAnchor(surface.AnchorEnd)
		lines := render()
		Expect(lines[3]).To(Equal(" hi"))
		Expect(lines[4]).To(Equal("       end"))
		Expect(canvas.Foreground(1, 3)).To(Equal(tcell.NewRGBColor(0, 255, 0)))
	})

	It("should keep the fill behind text", func() {
		stage.Root().Rect(geom.R(0, 0, 10, 1)).SetFill("#ff0000")
		stage.Root().Text(0, 0, "abc")
		lines := render()
		Expect(lines[0]).To(Equal("abc"))
		Expect(canvas.Background(1, 0)).To(Equal(tcell.NewRGBColor(255, 0, 0)))
	})

	It("should clip to the layer clip", func() {
		layer := stage.Root().Layer()
		layer.Clip(geom.R(0, 0, 3, 5))
		layer.Text(0, 0, "abcdef")
		Expect(render()[0]).To(Equal("abc"))
	})

	It("should skip hidden elements", func() {
		stage.Root().Text(0, 0, "shown")
		stage.Root().Text(0, 1, "hidden").SetVisible(false)
		lines := render()
		Expect(lines[0]).To(Equal("shown"))
		Expect(lines[1]).To(BeEmpty())
	})

	It("should paint by z-index", func() {
		stage.Root().Text(0, 0, "a").SetZIndex(1)
		stage.Root().Text(0, 0, "b")
		Expect(render()[0]).To(Equal("a"))
	})

	It("should flush to a screen at an offset", func() {
		stage.Root().Text(0, 0, "hi")
		render()
		screen := tcell.NewSimulationScreen("")
		screen.Init()
		screen.SetSize(4, 2)
		canvas.FlushTo(screen, 1, 1)
		screen.Show()
		Expect(screen).To(DisplayLike(4, 2, "", " hi"))
	})
})
