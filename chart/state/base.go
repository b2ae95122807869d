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

package state

import (
	"sort"
)

// Base carries the dirty mask, listeners and suspension counter of a single
// component.  Components embed it and call Init from their constructor.
//
// Base is not safe for concurrent use: everything runs on the UI loop.
type Base struct {
	supported   State
	consistency State

	target   interface{}
	observer Observer

	nextKey   ListenerKey
	listeners map[ListenerKey]Listener

	suspended int
	pending   Signal
}

// Init declares the supported mask and the value reported as Event.Target.
// Every supported state starts out dirty, so a fresh component draws on its
// first pass.
func (b *Base) Init(target interface{}, supported State) {
	b.target = target
	b.supported = supported
	b.consistency = supported
}

// SupportedStates returns the mask declared at Init.
func (b *Base) SupportedStates() State {
	return b.supported
}

// SetObserver installs a spy that sees every dirty-mask transition.  Pass nil
// to remove it.
func (b *Base) SetObserver(o Observer) {
	b.observer = o
}

// Invalidate marks st dirty and, when any of those states was previously
// consistent, dispatches sig together with NeedsRedraw.  A zero st always
// dispatches, which lets a component forward a pure signal.  It returns the
// states that became dirty.
func (b *Base) Invalidate(st State, sig Signal) State {
	if st&^b.supported != 0 {
		assertSupported(b.target, st, b.supported)
	}
	masked := st & b.supported
	effective := masked &^ b.consistency
	b.consistency |= masked

	if effective != 0 && b.observer != nil {
		b.observer.Invalidated(effective)
	}
	if effective != 0 || st == 0 {
		b.DispatchSignal(sig | NeedsRedraw)
	}
	return effective
}

// HasInvalidationState reports whether any of bits is dirty.
func (b *Base) HasInvalidationState(bits State) bool {
	return b.consistency&bits != 0
}

// DirtyStates returns the full dirty mask.
func (b *Base) DirtyStates() State {
	return b.consistency
}

// MarkConsistent clears bits.  Only the code that actually recomputed those
// aspects may call it.
func (b *Base) MarkConsistent(bits State) {
	if bits&^b.supported != 0 {
		assertSupported(b.target, bits, b.supported)
	}
	bits &= b.supported
	if bits == 0 {
		return
	}
	b.consistency &^= bits
	if b.observer != nil {
		b.observer.MarkedConsistent(bits)
	}
}

// Consume marks consistent the part of bits that is actually dirty, so
// observers only see what was recomputed.
func (b *Base) Consume(bits State) {
	if dirty := bits & b.consistency; dirty != 0 {
		b.MarkConsistent(dirty)
	}
}

// IsConsistent reports whether nothing is dirty.
func (b *Base) IsConsistent() bool {
	return b.consistency == 0
}

// Listen registers l and returns a key for Unlisten.
func (b *Base) Listen(l Listener) ListenerKey {
	if b.listeners == nil {
		b.listeners = make(map[ListenerKey]Listener)
	}
	b.nextKey++
	b.listeners[b.nextKey] = l
	return b.nextKey
}

// Unlisten removes a listener, reporting whether it was registered.
func (b *Base) Unlisten(key ListenerKey) bool {
	if _, ok := b.listeners[key]; !ok {
		return false
	}
	delete(b.listeners, key)
	return true
}

// RemoveAllListeners drops every listener.
func (b *Base) RemoveAllListeners() {
	b.listeners = nil
}

// ListenerCount returns the number of registered listeners.
func (b *Base) ListenerCount() int {
	return len(b.listeners)
}

// DispatchSignal sends sig to every listener in registration order, or
// accumulates it while dispatching is suspended.
func (b *Base) DispatchSignal(sig Signal) {
	if sig == 0 {
		return
	}
	if b.suspended > 0 {
		b.pending |= sig
		return
	}
	b.emit(sig)
}

func (b *Base) emit(sig Signal) {
	if len(b.listeners) == 0 {
		return
	}
	keys := make([]ListenerKey, 0, len(b.listeners))
	for k := range b.listeners {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	evt := Event{Target: b.target, Signal: sig}
	for _, k := range keys {
		// a listener may unregister others while we're iterating
		if l, ok := b.listeners[k]; ok {
			l(evt)
		}
	}
}

// SuspendSignalsDispatching starts (or nests) a batch.  Signals raised until
// the matching resume are merged into one.
func (b *Base) SuspendSignalsDispatching() {
	b.suspended++
}

// ResumeSignalsDispatching ends a batch.  Only the outermost resume flushes;
// it sends the merged signal when dispatch is true and drops it otherwise.
// A resume without a matching suspend does nothing.
func (b *Base) ResumeSignalsDispatching(dispatch bool) {
	if b.suspended == 0 {
		return
	}
	b.suspended--
	if b.suspended > 0 {
		return
	}
	pending := b.pending
	b.pending = 0
	if dispatch && pending != 0 {
		b.emit(pending)
	}
}

// IsSuspended reports whether a batch is open.
func (b *Base) IsSuspended() bool {
	return b.suspended > 0
}
