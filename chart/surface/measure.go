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
	"github.com/mattn/go-runewidth"
)

// TextMeasurer sizes a single line of text.
type TextMeasurer interface {
	Measure(text string) (w, h float64)
}

// CellMeasurer measures in terminal cells: one row high, as wide as the
// text's display width.
type CellMeasurer struct{}

func (CellMeasurer) Measure(text string) (w, h float64) {
	if text == "" {
		return 0, 0
	}
	return float64(runewidth.StringWidth(text)), 1
}

// SVGMeasurer approximates a proportional font of the given size.
type SVGMeasurer struct {
	FontSize float64
}

func (m SVGMeasurer) Measure(text string) (w, h float64) {
	if text == "" {
		return 0, 0
	}
	size := m.FontSize
	if size <= 0 {
		size = 12
	}
	return float64(runewidth.StringWidth(text)) * size * 0.6, size * 1.2
}
