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

// Package state implements the consistency-state and signal machinery shared
// by every visual component.
//
// A component declares the set of states it supports.  Setters mark states
// dirty via Invalidate and, if anything actually became dirty, emit a Signal
// to listeners.  Owners translate the signals of their children into their
// own dirty states; the states are only consumed (MarkConsistent) by the
// owner's draw pass.
package state

// State is a bitmask of consistency states.  A set bit means the
// corresponding aspect of the rendered output is stale.
type State uint32

const (
	// Appearance covers fills, strokes and other pure-visual settings.
	Appearance State = 1 << iota
	// Bounds covers the pixel bounds of the component.
	Bounds
	// Enabled covers the enabled flag.
	Enabled
	// ZIndex covers the stacking order of the component's layers.
	ZIndex
	// Container covers the layer the component renders into.
	Container

	// FirstCustom is the first bit available to component-specific states.
	FirstCustom
)

// Generic is the set of states every visual component supports.
const Generic = Appearance | Bounds | Enabled | ZIndex | Container

// Has reports whether any of bits is set in s.
func (s State) Has(bits State) bool {
	return s&bits != 0
}

// HasAll reports whether every one of bits is set in s.
func (s State) HasAll(bits State) bool {
	return s&bits == bits
}

// With returns s with bits set.
func (s State) With(bits State) State {
	return s | bits
}

// Without returns s with bits cleared.
func (s State) Without(bits State) State {
	return s &^ bits
}

// Signal is a bitmask describing why a component changed.  It's orthogonal
// to State: the receiver decides which of its own states a signal maps to.
type Signal uint32

const (
	NeedsRedraw Signal = 1 << iota
	BoundsChanged
	NeedsRecalculation
	DataChanged
	NeedsReapplication
	EnabledChanged
)

// Has reports whether any of bits is set in s.
func (s Signal) Has(bits Signal) bool {
	return s&bits != 0
}

// Event is what listeners receive.
type Event struct {
	// Target is the component that emitted the signal.
	Target interface{}
	Signal Signal
}

// HasSignal reports whether the event carries any of the given signals.
func (e Event) HasSignal(s Signal) bool {
	return e.Signal.Has(s)
}

// Listener handles signals.
type Listener func(Event)

// ListenerKey identifies a registered listener.
type ListenerKey uint64

// Signaller is implemented by everything that emits signals.
type Signaller interface {
	Listen(Listener) ListenerKey
	Unlisten(ListenerKey) bool
	SuspendSignalsDispatching()
	ResumeSignalsDispatching(dispatch bool)
}

// Stateful is implemented by components with consistency states.
type Stateful interface {
	Signaller
	Invalidate(st State, sig Signal) State
	HasInvalidationState(bits State) bool
	MarkConsistent(bits State)
	IsConsistent() bool
}

// Observer is notified of dirty-mask transitions.  It's intended for tests
// and tracing; production code reacts to signals instead.
type Observer interface {
	// Invalidated receives the states that became dirty.
	Invalidated(effective State)
	// MarkedConsistent receives the states a draw pass cleared.
	MarkedConsistent(bits State)
}
