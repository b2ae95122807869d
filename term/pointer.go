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
	"time"

	"github.com/gdamore/tcell"
	"k8s.io/utils/clock"

	"sigs.k8s.io/gridchart/chart/surface"
)

// DefaultDoubleClickInterval is the longest gap between two clicks on the
// same cell that still counts as a double click.
const DefaultDoubleClickInterval = 400 * time.Millisecond

const heldButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// PointerNormalizer turns raw terminal mouse reports, which only carry the
// current button mask and position, into the down/up/click/dblclick/move/
// wheel sequence the stage expects.  Positions are reported at the center
// of the cell, relative to the box the events are normalized for.
type PointerNormalizer struct {
	// Clock times double clicks.  It defaults to the real clock.
	Clock clock.PassiveClock
	// DoubleClickInterval defaults to DefaultDoubleClickInterval.
	DoubleClickInterval time.Duration

	buttons    tcell.ButtonMask
	col, row   int
	tracking   bool
	lastClick  time.Time
	clickCol   int
	clickRow   int
	clickArmed bool
}

func (p *PointerNormalizer) now() time.Time {
	if p.Clock == nil {
		p.Clock = clock.RealClock{}
	}
	return p.Clock.Now()
}

func (p *PointerNormalizer) interval() time.Duration {
	if p.DoubleClickInterval <= 0 {
		return DefaultDoubleClickInterval
	}
	return p.DoubleClickInterval
}

func buttonOf(mask tcell.ButtonMask) surface.Button {
	switch {
	case mask&tcell.Button1 != 0:
		return surface.ButtonPrimary
	case mask&tcell.Button3 != 0:
		return surface.ButtonSecondary
	case mask&tcell.Button2 != 0:
		return surface.ButtonMiddle
	default:
		return surface.ButtonNone
	}
}

// Normalize converts evt into stage events for a view occupying box.  A
// pointer leaving the box yields a single out event, unless a button is
// held, in which case the events keep flowing so drags can finish outside.
func (p *PointerNormalizer) Normalize(evt *tcell.EventMouse, box PositionBox) []*surface.PointerEvent {
	x, y := evt.Position()
	mask := evt.Buttons()
	held := mask & heldButtons
	mods := evt.Modifiers()

	if !box.Contains(x, y) && p.buttons == 0 && held == 0 {
		if !p.tracking {
			return nil
		}
		p.tracking = false
		return []*surface.PointerEvent{p.event(surface.PointerOut, surface.ButtonNone, mods)}
	}

	col, row := box.Local(x, y)
	var out []*surface.PointerEvent
	if !p.tracking || col != p.col || row != p.row {
		p.tracking = true
		p.col, p.row = col, row
		out = append(out, p.event(surface.PointerMove, buttonOf(p.buttons), mods))
	}

	if pressed := held &^ p.buttons; pressed != 0 {
		out = append(out, p.event(surface.PointerDown, buttonOf(pressed), mods))
	}
	if released := p.buttons &^ held; released != 0 {
		btn := buttonOf(released)
		out = append(out, p.event(surface.PointerUp, btn, mods))
		out = append(out, p.event(surface.PointerClick, btn, mods))
		if dbl := p.click(); dbl {
			out = append(out, p.event(surface.PointerDblClick, btn, mods))
		}
	}
	p.buttons = held

	if wheel := p.wheel(mask, mods); wheel != nil {
		out = append(out, wheel)
	}
	return out
}

// click records a click at the current cell and reports whether it
// completes a double click.
func (p *PointerNormalizer) click() bool {
	now := p.now()
	if p.clickArmed && p.clickCol == p.col && p.clickRow == p.row && now.Sub(p.lastClick) <= p.interval() {
		p.clickArmed = false
		return true
	}
	p.clickArmed = true
	p.lastClick = now
	p.clickCol, p.clickRow = p.col, p.row
	return false
}

func (p *PointerNormalizer) wheel(mask tcell.ButtonMask, mods tcell.ModMask) *surface.PointerEvent {
	var dx, dy float64
	if mask&tcell.WheelUp != 0 {
		dy--
	}
	if mask&tcell.WheelDown != 0 {
		dy++
	}
	if mask&tcell.WheelLeft != 0 {
		dx--
	}
	if mask&tcell.WheelRight != 0 {
		dx++
	}
	if dx == 0 && dy == 0 {
		return nil
	}
	evt := p.event(surface.PointerWheel, surface.ButtonNone, mods)
	evt.DeltaX, evt.DeltaY = dx, dy
	return evt
}

func (p *PointerNormalizer) event(typ surface.PointerType, btn surface.Button, mods tcell.ModMask) *surface.PointerEvent {
	return &surface.PointerEvent{
		Type:     typ,
		ClientX:  float64(p.col) + 0.5,
		ClientY:  float64(p.row) + 0.5,
		Button:   btn,
		AltKey:   mods&tcell.ModAlt != 0,
		ShiftKey: mods&tcell.ModShift != 0,
		CtrlKey:  mods&tcell.ModCtrl != 0,
	}
}

// Reset forgets held buttons and pending clicks.
func (p *PointerNormalizer) Reset() {
	p.buttons = 0
	p.tracking = false
	p.clickArmed = false
}
