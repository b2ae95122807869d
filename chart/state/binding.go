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

// Binding ties a listener to a shared provider (a scale, a palette) so the
// listener can be moved when the provider is swapped.
type Binding struct {
	src Signaller
	key ListenerKey
	l   Listener
}

// Bind registers l on src.  A nil src yields an empty binding that can be
// pointed somewhere later with Rebind.
func Bind(src Signaller, l Listener) *Binding {
	b := &Binding{l: l}
	b.Rebind(src)
	return b
}

// Source returns the provider currently listened to.
func (b *Binding) Source() Signaller {
	if b == nil {
		return nil
	}
	return b.src
}

// Rebind unregisters from the current provider and registers on src,
// reporting whether anything changed.
func (b *Binding) Rebind(src Signaller) bool {
	if b.src == src && (src == nil || b.key != 0) {
		return false
	}
	b.Release()
	b.src = src
	if src != nil {
		b.key = src.Listen(b.l)
	}
	return true
}

// Release unregisters the listener.  It's safe to call more than once.
func (b *Binding) Release() {
	if b == nil || b.src == nil {
		return
	}
	b.src.Unlisten(b.key)
	b.src = nil
	b.key = 0
}
