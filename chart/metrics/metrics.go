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

// Package metrics counts the work done by draw passes, so that redundant
// geometry rebuilds are observable (and testable).
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "gridchart"

// Recorder holds the counters of one chart (or grid) instance.  A nil
// *Recorder ignores everything.
type Recorder struct {
	drawPasses     *prometheus.CounterVec
	rebuilds       *prometheus.CounterVec
	layoutAttempts *prometheus.HistogramVec
}

// NewRecorder creates the counters and registers them with reg when it's
// not nil.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		drawPasses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "draw_passes_total",
			Help:      "Number of draw passes that found something to redraw.",
		}, []string{"component"}),
		rebuilds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geometry_rebuilds_total",
			Help:      "Number of times a piece of geometry was rebuilt.",
		}, []string{"component", "part"}),
		layoutAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_attempts",
			Help:      "Measuring passes needed by the axes layout.",
			Buckets:   []float64{1, 2, 3, 4, 5},
		}, []string{"converged"}),
	}
	if reg != nil {
		reg.MustRegister(r.drawPasses, r.rebuilds, r.layoutAttempts)
	}
	return r
}

// DrawPass records a draw pass of component.
func (r *Recorder) DrawPass(component string) {
	if r == nil {
		return
	}
	r.drawPasses.WithLabelValues(component).Inc()
}

// Rebuild records a rebuild of part of component.
func (r *Recorder) Rebuild(component, part string) {
	if r == nil {
		return
	}
	r.rebuilds.WithLabelValues(component, part).Inc()
}

// LayoutSolved records the outcome of a layout solve.
func (r *Recorder) LayoutSolved(attempts int, converged bool) {
	if r == nil {
		return
	}
	r.layoutAttempts.WithLabelValues(strconv.FormatBool(converged)).Observe(float64(attempts))
}

// DrawPasses returns the counter for component.
func (r *Recorder) DrawPasses(component string) prometheus.Counter {
	return r.drawPasses.WithLabelValues(component)
}

// Rebuilds returns the counter for part of component.
func (r *Recorder) Rebuilds(component, part string) prometheus.Counter {
	return r.rebuilds.WithLabelValues(component, part)
}

// RebuildsVec returns every rebuild counter, for summing across parts.
func (r *Recorder) RebuildsVec() *prometheus.CounterVec {
	return r.rebuilds
}
