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

package surface

import (
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// errWriter remembers the first write error so the svgo calls, which don't
// return errors, can be checked once at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// WriteSVG renders the stage as an SVG document.
func WriteSVG(w io.Writer, s *Stage) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	width, height := s.Size()
	canvas.Start(round(width), round(height), `font-family="sans-serif" font-size="12px"`)
	r := &svgRenderer{canvas: canvas}
	r.layer(s.root)
	canvas.End()
	return ew.err
}

type svgRenderer struct {
	canvas *svg.SVG
	clips  int
}

func round(v float64) int {
	return int(math.Round(v))
}

func strokeStyle(s Stroke) string {
	if s.IsNone() {
		return "stroke:none"
	}
	out := fmt.Sprintf("stroke:%s;stroke-width:%g", s.Color, s.Thickness)
	if s.Dashed {
		out += ";stroke-dasharray:4 2"
	}
	return out
}

func fillStyle(fill string) string {
	if fill == "" {
		return "fill:none"
	}
	return "fill:" + fill
}

func (r *svgRenderer) layer(l *Layer) {
	if l.hidden {
		return
	}
	if l.clip != nil {
		r.clips++
		id := fmt.Sprintf("clip%d", r.clips)
		r.canvas.ClipPath(`id="` + id + `"`)
		r.canvas.Rect(round(l.clip.Left), round(l.clip.Top), round(l.clip.Width), round(l.clip.Height))
		r.canvas.ClipEnd()
		r.canvas.Group(`clip-path="url(#` + id + `)"`)
		defer r.canvas.Gend()
	}
	for _, c := range l.Children() {
		if !c.Visible() {
			continue
		}
		switch e := c.(type) {
		case *Layer:
			r.layer(e)
		case *Path:
			if e.IsEmpty() {
				continue
			}
			r.canvas.Path(e.D(), fillStyle(e.fill)+";"+strokeStyle(e.stroke))
		case *Rect:
			b := e.rect
			r.canvas.Rect(round(b.Left), round(b.Top), round(b.Width), round(b.Height), fillStyle(e.fill)+";"+strokeStyle(e.stroke))
		case *Text:
			if e.text == "" {
				continue
			}
			attrs := []string{`dominant-baseline="hanging"`}
			switch e.anchor {
			case AnchorMiddle:
				attrs = append(attrs, `text-anchor="middle"`)
			case AnchorEnd:
				attrs = append(attrs, `text-anchor="end"`)
			}
			if e.color != "" {
				attrs = append(attrs, `fill="`+e.color+`"`)
			}
			r.canvas.Text(round(e.x), round(e.y), e.text, strings.Join(attrs, " "))
		}
	}
}
