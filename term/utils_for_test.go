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

package term_test

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gdamore/tcell"
	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"

	"sigs.k8s.io/gridchart/term"
)

// LockableScreen holds a screen that may only be read with a lock held,
// for screens written to by a running event loop.
type LockableScreen interface {
	WithScreen(func(tcell.SimulationScreen))
}

// lockedScreen is a SimulationScreen guarded by a mutex taken both by the
// runner (through the MakeScreen wrapper) and by the matchers.
type lockedScreen struct {
	tcell.SimulationScreen
	mu sync.Mutex
}

func (s *lockedScreen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SimulationScreen.Show()
}

func (s *lockedScreen) WithScreen(cb func(tcell.SimulationScreen)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cb(s.SimulationScreen)
}

// runesMatcher compares the characters on a screen (ignoring style) with
// an expected screen.
type runesMatcher struct {
	expected tcell.SimulationScreen
}

// render flushes contents onto a fresh screen the size of the expected one.
func (m *runesMatcher) render(contents term.Flushable) tcell.SimulationScreen {
	screen := tcell.NewSimulationScreen("")
	screen.Init()
	screen.SetSize(m.expected.Size())
	contents.FlushTo(screen)
	screen.Show()
	return screen
}

func runesOf(screen tcell.SimulationScreen) []rune {
	cells, _, _ := screen.GetContents()
	out := make([]rune, 0, len(cells))
	for _, cell := range cells {
		if len(cell.Runes) == 0 {
			out = append(out, ' ')
			continue
		}
		out = append(out, cell.Runes[0])
	}
	return out
}

// withActual calls cb with the screen behind actual, whatever form it
// comes in.
func (m *runesMatcher) withActual(actual interface{}, cb func(tcell.SimulationScreen)) error {
	switch actual := actual.(type) {
	case LockableScreen:
		actual.WithScreen(cb)
	case term.Flushable:
		cb(m.render(actual))
	case tcell.SimulationScreen:
		cb(actual)
	default:
		return fmt.Errorf("DisplayLike expects a screen or a Flushable, got %T", actual)
	}
	return nil
}

func (m *runesMatcher) Match(actual interface{}) (bool, error) {
	var matches bool
	err := m.withActual(actual, func(screen tcell.SimulationScreen) {
		matches = reflect.DeepEqual(runesOf(m.expected), runesOf(screen))
	})
	return matches, err
}

func (m *runesMatcher) message(actual interface{}, verb string) string {
	var res string
	err := m.withActual(actual, func(screen tcell.SimulationScreen) {
		res = format.Message("\n"+displayCells(screen), verb+" (ignoring style)", "\n"+displayCells(m.expected))
	})
	if err != nil {
		return err.Error()
	}
	return res
}

func (m *runesMatcher) FailureMessage(actual interface{}) string {
	return m.message(actual, "to equal")
}

func (m *runesMatcher) NegatedFailureMessage(actual interface{}) string {
	return m.message(actual, "not to equal")
}

// displayCells shows the screen contents wrapped to its width, with the
// right edge marked so trailing blanks are visible.
func displayCells(screen tcell.SimulationScreen) string {
	cols, _ := screen.Size()
	runes := runesOf(screen)
	var lines []string
	for start := 0; start+cols <= len(runes) && cols > 0; start += cols {
		lines = append(lines, string(runes[start:start+cols])+"|")
	}
	return strings.Join(lines, "\n")
}

// DisplayLike matches the characters of a width x height screen, ignoring
// style.  The expected text is given row by row; rows shorter than width
// are padded with blanks, and missing rows are blank.  It doesn't handle
// double-width runes.
//
// "actual" can be a tcell.SimulationScreen, a LockableScreen or a
// Flushable (rendered to a fresh screen first).
func DisplayLike(width, height int, rows ...string) types.GomegaMatcher {
	expected := tcell.NewSimulationScreen("")
	expected.Init()
	expected.SetSize(width, height)
	for row, text := range rows {
		col := 0
		for _, rn := range text {
			expected.SetContent(col, row, rn, nil, tcell.StyleDefault)
			col++
		}
	}
	expected.Show()
	return &runesMatcher{expected: expected}
}
