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

package grid

import (
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// AutoScrollPeriod is how often an auto-scroll step runs.
const AutoScrollPeriod = 100 * time.Millisecond

// AutoScroller repeats a step on a ticker until stopped.  The step runs
// through post, which hands it to the goroutine owning the grid.
type AutoScroller struct {
	clock  clock.WithTicker
	period time.Duration
	post   func(func())

	mu   sync.Mutex
	stop chan struct{}
}

// NewAutoScroller creates a stopped auto-scroller.  A nil post runs the
// step on the ticker goroutine, which is only safe when nothing else
// touches the grid concurrently.
func NewAutoScroller(clk clock.WithTicker, post func(func())) *AutoScroller {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if post == nil {
		post = func(f func()) { f() }
	}
	return &AutoScroller{clock: clk, period: AutoScrollPeriod, post: post}
}

// Start runs step every period, replacing any step already running.
func (a *AutoScroller) Start(step func()) {
	a.Stop()

	a.mu.Lock()
	defer a.mu.Unlock()
	ticker := a.clock.NewTicker(a.period)
	stop := make(chan struct{})
	a.stop = stop
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C():
				select {
				case <-stop:
					return
				default:
				}
				a.post(step)
			case <-stop:
				return
			}
		}
	}()
}

// Stop ends the ticker goroutine.  It doesn't wait for it: a step being
// posted at that moment may still run, so steps check their own
// preconditions.
func (a *AutoScroller) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop != nil {
		close(a.stop)
		a.stop = nil
	}
}

// Running reports whether a ticker is active.
func (a *AutoScroller) Running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stop != nil
}
