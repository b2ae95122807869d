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

package term

import (
	"github.com/gdamore/tcell"
	"github.com/mattn/go-runewidth"
)

// StatusLine is a single row of text: Left is truncated to fit, Right is
// right-aligned and dropped when there's no room for it.
type StatusLine struct {
	Left, Right string
	Style       tcell.Style

	pos PositionBox
}

func (s *StatusLine) SetBox(box PositionBox) {
	s.pos = box
}

// SetText replaces both parts of the line.
func (s *StatusLine) SetText(left, right string) {
	s.Left, s.Right = left, right
}

func (s *StatusLine) FlushTo(screen tcell.Screen) {
	if s.pos.Rows <= 0 || s.pos.Cols <= 0 {
		return
	}
	row := s.pos.StartRow
	for col := 0; col < s.pos.Cols; col++ {
		screen.SetContent(s.pos.StartCol+col, row, ' ', nil, s.Style)
	}

	left := runewidth.Truncate(s.Left, s.pos.Cols, "…")
	leftWidth := putString(screen, s.pos.StartCol, row, left, s.Style)

	rightWidth := runewidth.StringWidth(s.Right)
	if s.Right == "" || leftWidth+1+rightWidth > s.pos.Cols {
		return
	}
	putString(screen, s.pos.StartCol+s.pos.Cols-rightWidth, row, s.Right, s.Style)
}

// putString writes str starting at (col, row), returning its width.
func putString(screen tcell.Screen, col, row int, str string, sty tcell.Style) int {
	start := col
	for _, rn := range str {
		width := runewidth.RuneWidth(rn)
		if width == 0 {
			continue
		}
		screen.SetContent(col, row, rn, nil, sty)
		col += width
	}
	return col - start
}
