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
	"math"
	"strings"

	"github.com/gdamore/tcell"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"sigs.k8s.io/gridchart/chart/geom"
	"sigs.k8s.io/gridchart/chart/surface"
)

const (
	brailleCellWidth  = 2
	brailleCellHeight = 4
	brailleBlockStart = '\u2800'
)

// brailleBits maps a dot at (column, row) inside a cell to its bit in the
// braille pattern block, where the dots are numbered like so:
//
//	0 3
//	1 4
//	2 5
//	6 7
var brailleBits = [brailleCellWidth][brailleCellHeight]rune{
	{1 << 0, 1 << 1, 1 << 2, 1 << 6},
	{1 << 3, 1 << 4, 1 << 5, 1 << 7},
}

type rasterCell struct {
	ch   rune
	dots rune
	// wide marks the second half of a double-width rune.
	wide   bool
	fg, bg tcell.Color
}

func (c rasterCell) display() rune {
	switch {
	case c.ch != 0:
		return c.ch
	case c.dots != 0:
		return brailleBlockStart + c.dots
	default:
		return ' '
	}
}

// Canvas rasterizes a stage measured in terminal cells.  Fills become cell
// backgrounds, axis-aligned strokes become box-drawing characters, any
// other stroke is drawn with braille dots (2x4 per cell) and text is
// written cell by cell.
type Canvas struct {
	cols, rows int
	cells      []rasterCell
	colors     map[string]tcell.Color
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Resize sets the canvas size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	c.cols, c.rows = cols, rows
	if cap(c.cells) >= cols*rows {
		c.cells = c.cells[:cols*rows]
	} else {
		c.cells = make([]rasterCell, cols*rows)
	}
	c.Clear()
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = rasterCell{fg: tcell.ColorDefault, bg: tcell.ColorDefault}
	}
}

// Render redraws the whole stage, sizing the canvas to it.
func (c *Canvas) Render(s *surface.Stage) {
	w, h := s.Size()
	c.Resize(int(math.Ceil(w)), int(math.Ceil(h)))
	c.layer(s.Root(), geom.R(0, 0, float64(c.cols), float64(c.rows)))
}

func (c *Canvas) at(col, row int) *rasterCell {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return nil
	}
	return &c.cells[row*c.cols+col]
}

// Rune returns the character shown at (col, row).
func (c *Canvas) Rune(col, row int) rune {
	if cell := c.at(col, row); cell != nil {
		return cell.display()
	}
	return 0
}

// Background returns the fill color of (col, row).
func (c *Canvas) Background(col, row int) tcell.Color {
	if cell := c.at(col, row); cell != nil {
		return cell.bg
	}
	return tcell.ColorDefault
}

// Foreground returns the text or line color of (col, row).
func (c *Canvas) Foreground(col, row int) tcell.Color {
	if cell := c.at(col, row); cell != nil {
		return cell.fg
	}
	return tcell.ColorDefault
}

// FlushTo copies the canvas to the screen with its top-left cell at
// (startCol, startRow).
func (c *Canvas) FlushTo(screen tcell.Screen, startCol, startRow int) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			cell := c.cells[row*c.cols+col]
			if cell.wide {
				continue
			}
			sty := tcell.StyleDefault.Foreground(cell.fg).Background(cell.bg)
			screen.SetContent(startCol+col, startRow+row, cell.display(), nil, sty)
		}
	}
}

// Lines returns the canvas as plain text, one string per row with
// trailing blanks removed.
func (c *Canvas) Lines() []string {
	out := make([]string, c.rows)
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		b.Reset()
		for col := 0; col < c.cols; col++ {
			cell := c.cells[row*c.cols+col]
			if cell.wide {
				continue
			}
			b.WriteRune(cell.display())
		}
		out[row] = strings.TrimRight(b.String(), " ")
	}
	return out
}

// String joins Lines with newlines.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// color converts a CSS-style color to a terminal color, caching the
// result.  Unknown colors leave the terminal default.
func (c *Canvas) color(name string) tcell.Color {
	if name == "" || name == "none" {
		return tcell.ColorDefault
	}
	if c.colors == nil {
		c.colors = map[string]tcell.Color{}
	}
	if col, ok := c.colors[name]; ok {
		return col
	}
	col := tcell.GetColor(name)
	if parsed, err := colorful.Hex(name); err == nil {
		r, g, b := parsed.RGB255()
		col = tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	c.colors[name] = col
	return col
}

func (c *Canvas) layer(l *surface.Layer, clip geom.Rect) {
	if !l.Visible() {
		return
	}
	if r, ok := l.ClipRect(); ok {
		clip = clip.Intersect(r)
	}
	if clip.IsEmpty() {
		return
	}
	for _, child := range l.Children() {
		if !child.Visible() {
			continue
		}
		switch e := child.(type) {
		case *surface.Layer:
			c.layer(e, clip)
		case *surface.Rect:
			c.rect(e, clip)
		case *surface.Path:
			c.path(e, clip)
		case *surface.Text:
			c.text(e, clip)
		}
	}
}

// cellSpan returns the cells whose centers fall inside [from, to].
func cellSpan(from, to float64, n int) (first, last int) {
	first = int(math.Ceil(from - 0.5))
	last = int(math.Floor(to - 0.5))
	if first < 0 {
		first = 0
	}
	if last > n-1 {
		last = n - 1
	}
	return first, last
}

// lineCell returns the cell a line at coordinate v runs through.
func lineCell(v float64, n int) int {
	i := int(math.Floor(v))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func nearest(v float64) int {
	return int(math.Floor(v + 0.5))
}

func (c *Canvas) rect(r *surface.Rect, clip geom.Rect) {
	b := r.Bounds()
	if fill := r.Fill(); fill != "" {
		area := b.Intersect(clip)
		bg := c.color(fill)
		firstCol, lastCol := cellSpan(area.Left, area.Right(), c.cols)
		firstRow, lastRow := cellSpan(area.Top, area.Bottom(), c.rows)
		for row := firstRow; row <= lastRow; row++ {
			for col := firstCol; col <= lastCol; col++ {
				c.at(col, row).bg = bg
			}
		}
	}
	if st := r.Stroke(); !st.IsNone() {
		c.outline(b, c.color(st.Color), st.Dashed, clip)
	}
}

// outline frames the cells a rectangle covers.
func (c *Canvas) outline(b geom.Rect, fg tcell.Color, dashed bool, clip geom.Rect) {
	firstCol, lastCol := cellSpan(b.Left, b.Right(), c.cols)
	firstRow, lastRow := cellSpan(b.Top, b.Bottom(), c.rows)
	if firstCol > lastCol || firstRow > lastRow {
		return
	}
	h, v := horizontalRunes[boolIndex(dashed)], verticalRunes[boolIndex(dashed)]
	for col := firstCol; col <= lastCol; col++ {
		c.lineRune(col, firstRow, h, fg, clip)
		c.lineRune(col, lastRow, h, fg, clip)
	}
	for row := firstRow; row <= lastRow; row++ {
		c.lineRune(firstCol, row, v, fg, clip)
		c.lineRune(lastCol, row, v, fg, clip)
	}
	if firstCol == lastCol || firstRow == lastRow {
		return
	}
	for _, corner := range []struct {
		col, row int
		r        rune
	}{
		{firstCol, firstRow, '┌'}, {lastCol, firstRow, '┐'},
		{firstCol, lastRow, '└'}, {lastCol, lastRow, '┘'},
	} {
		if c.inClip(corner.col, corner.row, clip) {
			cell := c.at(corner.col, corner.row)
			cell.ch, cell.dots, cell.wide, cell.fg = corner.r, 0, false, fg
		}
	}
}

func (c *Canvas) inClip(col, row int, clip geom.Rect) bool {
	return clip.Contains(float64(col)+0.5, float64(row)+0.5)
}

func (c *Canvas) lineRune(col, row int, r rune, fg tcell.Color, clip geom.Rect) {
	if cell := c.at(col, row); cell != nil && c.inClip(col, row, clip) {
		c.boxRune(cell, r, fg)
	}
}

func (c *Canvas) path(p *surface.Path, clip geom.Rect) {
	if p.IsEmpty() {
		return
	}
	paths, closed := p.Subpaths()
	if fill := p.Fill(); fill != "" {
		c.fill(paths, c.color(fill), clip)
	}
	if st := p.Stroke(); !st.IsNone() {
		c.stroke(paths, closed, st, clip)
	}
}

// fill paints the cells whose centers are inside the polygons, using the
// nonzero winding rule.  Every subpath is treated as closed.
func (c *Canvas) fill(paths [][]surface.Point, bg tcell.Color, clip geom.Rect) {
	var bounds geom.Rect
	first := true
	for _, pts := range paths {
		for _, pt := range pts {
			if first {
				bounds = geom.Rect{Left: pt.X, Top: pt.Y}
				first = false
				continue
			}
			bounds = extend(bounds, pt)
		}
	}
	area := bounds.Intersect(clip)
	firstCol, lastCol := cellSpan(area.Left, area.Right(), c.cols)
	firstRow, lastRow := cellSpan(area.Top, area.Bottom(), c.rows)
	for row := firstRow; row <= lastRow; row++ {
		y := float64(row) + 0.5
		for col := firstCol; col <= lastCol; col++ {
			if winding(paths, float64(col)+0.5, y) != 0 {
				c.at(col, row).bg = bg
			}
		}
	}
}

func extend(r geom.Rect, pt surface.Point) geom.Rect {
	left, top := math.Min(r.Left, pt.X), math.Min(r.Top, pt.Y)
	right, bottom := math.Max(r.Right(), pt.X), math.Max(r.Bottom(), pt.Y)
	return geom.Rect{Left: left, Top: top, Width: right - left, Height: bottom - top}
}

// winding returns the winding number of the polygons around (x, y).
func winding(paths [][]surface.Point, x, y float64) int {
	w := 0
	for _, pts := range paths {
		n := len(pts)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			a, b := pts[i], pts[(i+1)%n]
			isLeft := (b.X-a.X)*(y-a.Y) - (x-a.X)*(b.Y-a.Y)
			switch {
			case a.Y <= y && b.Y > y && isLeft > 0:
				w++
			case a.Y > y && b.Y <= y && isLeft < 0:
				w--
			}
		}
	}
	return w
}

func (c *Canvas) stroke(paths [][]surface.Point, closed []bool, st surface.Stroke, clip geom.Rect) {
	fg := c.color(st.Color)
	for i, pts := range paths {
		for j := 1; j < len(pts); j++ {
			c.segment(pts[j-1], pts[j], fg, st.Dashed, clip)
		}
		if closed[i] && len(pts) > 2 {
			c.segment(pts[len(pts)-1], pts[0], fg, st.Dashed, clip)
		}
	}
}

// box-drawing runes, indexed by dashed
var (
	horizontalRunes = [2]rune{'─', '╌'}
	verticalRunes   = [2]rune{'│', '┆'}
)

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (c *Canvas) segment(from, to surface.Point, fg tcell.Color, dashed bool, clip geom.Rect) {
	if c.cols == 0 || c.rows == 0 {
		return
	}
	switch {
	case from.Y == to.Y:
		row := lineCell(from.Y, c.rows)
		firstCol, lastCol := lineSpan(from.X, to.X, c.cols)
		for col := firstCol; col <= lastCol; col++ {
			c.lineRune(col, row, horizontalRunes[boolIndex(dashed)], fg, clip)
		}
	case from.X == to.X:
		col := lineCell(from.X, c.cols)
		firstRow, lastRow := lineSpan(from.Y, to.Y, c.rows)
		for row := firstRow; row <= lastRow; row++ {
			c.lineRune(col, row, verticalRunes[boolIndex(dashed)], fg, clip)
		}
	default:
		c.braille(from, to, fg, dashed, clip)
	}
}

// lineSpan returns the cells an axis-aligned line from a to b runs
// through, at least one.
func lineSpan(a, b float64, n int) (first, last int) {
	first = lineCell(math.Min(a, b), n)
	last = int(math.Ceil(math.Max(a, b))) - 1
	if last > n-1 {
		last = n - 1
	}
	if last < first {
		last = first
	}
	return first, last
}

// boxRune draws a line character, turning crossing lines into a cross.
func (c *Canvas) boxRune(cell *rasterCell, r rune, fg tcell.Color) {
	switch {
	case cell.ch == '─' && r == '│', cell.ch == '│' && r == '─':
		r = '┼'
	}
	cell.ch = r
	cell.dots = 0
	cell.wide = false
	cell.fg = fg
}

// braille draws a line in dot space with Bresenham's algorithm.
func (c *Canvas) braille(from, to surface.Point, fg tcell.Color, dashed bool, clip geom.Rect) {
	x0, y0 := int(math.Floor(from.X*brailleCellWidth)), int(math.Floor(from.Y*brailleCellHeight))
	x1, y1 := int(math.Floor(to.X*brailleCellWidth)), int(math.Floor(to.Y*brailleCellHeight))
	maxX, maxY := c.cols*brailleCellWidth-1, c.rows*brailleCellHeight-1
	x0, x1 = clampInt(x0, maxX), clampInt(x1, maxX)
	y0, y1 = clampInt(y0, maxY), clampInt(y1, maxY)

	dx, sx := absInt(x1-x0), 1
	if x0 > x1 {
		sx = -1
	}
	dy, sy := -absInt(y1-y0), 1
	if y0 > y1 {
		sy = -1
	}
	slopeErr := dx + dy
	for step := 0; ; step++ {
		if !dashed || step%4 < 2 {
			c.dot(x0, y0, fg, clip)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * slopeErr
		if e2 >= dy {
			slopeErr += dy
			x0 += sx
		}
		if e2 <= dx {
			slopeErr += dx
			y0 += sy
		}
	}
}

func (c *Canvas) dot(x, y int, fg tcell.Color, clip geom.Rect) {
	cx := (float64(x) + 0.5) / brailleCellWidth
	cy := (float64(y) + 0.5) / brailleCellHeight
	if !clip.Contains(cx, cy) {
		return
	}
	cell := c.at(x/brailleCellWidth, y/brailleCellHeight)
	if cell == nil {
		return
	}
	if cell.ch != 0 {
		cell.ch = 0
		cell.wide = false
	}
	cell.dots |= brailleBits[x%brailleCellWidth][y%brailleCellHeight]
	cell.fg = fg
}

func clampInt(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (c *Canvas) text(t *surface.Text, clip geom.Rect) {
	if t.Text() == "" {
		return
	}
	b := t.Bounds()
	row := nearest(b.Top)
	if row < 0 || row >= c.rows {
		return
	}
	if y := float64(row) + 0.5; y < clip.Top || y > clip.Bottom() {
		return
	}
	fg := c.color(t.Color())
	col := nearest(b.Left)
	for _, rn := range t.Text() {
		width := runewidth.RuneWidth(rn)
		if width == 0 {
			continue
		}
		if x := float64(col) + float64(width)/2; x >= clip.Left && x <= clip.Right() {
			c.put(col, row, rn, width, fg)
		}
		col += width
	}
}

func (c *Canvas) put(col, row int, rn rune, width int, fg tcell.Color) {
	cell := c.at(col, row)
	if cell == nil || (width > 1 && c.at(col+1, row) == nil) {
		return
	}
	cell.ch, cell.dots, cell.wide, cell.fg = rn, 0, false, fg
	if width > 1 {
		next := c.at(col+1, row)
		next.ch, next.dots, next.wide, next.fg = ' ', 0, true, fg
	}
}
