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
	"context"
	"sync"

	"github.com/gdamore/tcell"
)

// Runner owns the screen and the event loop.  Every view, chart and stage
// shown by a Runner is touched only from the loop goroutine; other
// goroutines hand work to it through Post, RequestRepaint and
// RequestUpdate.
//
// The loop dispatches events as such:
//
// - "Resize" events resize the current view and redraw it
// - "Update" requests swap in a new view and redraw
// - "Post" requests run the posted function, then redraw
// - "Repaint" requests redraw the current view
// - "Key" events go to KeyHandler
// - "Mouse" events go to MouseHandler, then the view is redrawn
type Runner struct {
	screen   tcell.Screen
	screenMu sync.Mutex

	// KeyHandler receives key events produced during Run.  It must be
	// specified.
	KeyHandler func(*tcell.EventKey)

	// MouseHandler receives mouse events.  Mouse reporting is only enabled
	// when it is set.
	MouseHandler func(*tcell.EventMouse)

	// MakeScreen allows custom screens to be used.  Mainly useful for
	// testing.
	MakeScreen func() (tcell.Screen, error)

	// OnStart runs on the loop goroutine once the screen is initialized,
	// right before the first event is polled.
	OnStart func()
}

type posted func()

// Run initializes the screen, runs the event loop (with an optional initial
// view) until ctx is closed, then shuts the screen down.
func (r *Runner) Run(ctx context.Context, initialView View) error {
	makeScreen := r.MakeScreen
	if makeScreen == nil {
		makeScreen = tcell.NewScreen
	}
	screen, err := makeScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	if r.MouseHandler != nil {
		screen.EnableMouse()
	}

	r.screenMu.Lock()
	r.screen = screen
	r.screenMu.Unlock()

	mainView := initialView

	// paint once in case no resize event shows up right away
	if mainView != nil {
		cols, rows := screen.Size()
		mainView.SetBox(PositionBox{Cols: cols, Rows: rows})
		mainView.FlushTo(screen)
		screen.Show()
	}

	evtLoopDone := make(chan struct{})
	go func() {
		defer close(evtLoopDone)
		if r.OnStart != nil {
			r.OnStart()
		}
		for evt := screen.PollEvent(); evt != nil; evt = screen.PollEvent() {
			screenCols, screenRows := screen.Size()
			switch evt := evt.(type) {
			case *tcell.EventKey:
				if r.KeyHandler != nil {
					r.KeyHandler(evt)
				}
				continue
			case *tcell.EventMouse:
				if r.MouseHandler == nil {
					continue
				}
				r.MouseHandler(evt)
			case *tcell.EventInterrupt:
				switch data := evt.Data().(type) {
				case View:
					// clearing avoids leftovers from the old view's layout
					screen.Clear()
					mainView = data
					mainView.SetBox(PositionBox{Cols: screenCols, Rows: screenRows})
				case posted:
					data()
				}
			case *tcell.EventResize:
				screenCols, screenRows = evt.Size()
				if mainView != nil {
					mainView.SetBox(PositionBox{Cols: screenCols, Rows: screenRows})
				}
				screen.Clear()
			default:
				continue
			}

			if mainView == nil {
				continue
			}
			mainView.FlushTo(screen)
			screen.Show()
		}
	}()

	<-ctx.Done()
	screen.Fini()

	// wait for the loop so callers never race with a late repaint
	<-evtLoopDone

	r.screenMu.Lock()
	r.screen = nil
	r.screenMu.Unlock()
	return nil
}

// post hands an interrupt to the loop.  It reports false when the runner
// isn't running or the event queue is full.
func (r *Runner) post(data interface{}) bool {
	r.screenMu.Lock()
	defer r.screenMu.Unlock()

	if r.screen == nil {
		return false
	}
	return r.screen.PostEvent(tcell.NewEventInterrupt(data)) == nil
}

// Post runs f on the loop goroutine and repaints afterwards.  It does not
// block.  Functions posted while the runner isn't running are dropped.
func (r *Runner) Post(f func()) {
	if f == nil {
		return
	}
	r.post(posted(f))
}

// RequestRepaint requests a repaint of the current view, if any.  It does
// not block.
func (r *Runner) RequestRepaint() {
	r.post(nil)
}

// RequestUpdate replaces the current view and paints it.  It does not
// block.
func (r *Runner) RequestUpdate(newView View) {
	r.post(newView)
}

// ShowCursor shows the cursor at the given location.
func (r *Runner) ShowCursor(col, row int) {
	r.screenMu.Lock()
	defer r.screenMu.Unlock()

	if r.screen != nil {
		r.screen.ShowCursor(col, row)
	}
}

// HideCursor hides the cursor.
func (r *Runner) HideCursor() {
	r.screenMu.Lock()
	defer r.screenMu.Unlock()

	if r.screen != nil {
		r.screen.HideCursor()
	}
}
