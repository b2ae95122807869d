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

package scale

import (
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/gridchart/chart/style"
)

// Ordinal maps a list of names to equal bands, each value landing in the
// middle of its band.
type Ordinal struct {
	provider

	names    []string
	index    map[string]int
	explicit bool
	inverted bool

	pending []string
	seen    sets.String
}

// NewOrdinal returns an ordinal scale collecting its names from the data.
func NewOrdinal() *Ordinal {
	s := &Ordinal{index: map[string]int{}}
	s.init(s)
	s.StartAutoCalc()
	return s
}

func (s *Ordinal) Type() string { return TypeOrdinal }

// Names returns the current names in band order.
func (s *Ordinal) Names() []string {
	return append([]string(nil), s.names...)
}

// SetNames fixes the names, disabling auto-calculation.  A nil list makes
// the scale data-driven again.
func (s *Ordinal) SetNames(names []string) {
	s.explicit = names != nil
	s.setNames(names)
}

func (s *Ordinal) setNames(names []string) bool {
	if equalStrings(s.names, names) {
		return false
	}
	s.names = append([]string(nil), names...)
	s.index = make(map[string]int, len(names))
	for i, n := range s.names {
		if _, dup := s.index[n]; !dup {
			s.index[n] = i
		}
	}
	s.changed()
	return true
}

func (s *Ordinal) SetInverted(inverted bool) {
	if s.inverted == inverted {
		return
	}
	s.inverted = inverted
	s.changed()
}

// BandWidth returns the ratio covered by one band.
func (s *Ordinal) BandWidth() float64 {
	if len(s.names) == 0 {
		return 0
	}
	return 1 / float64(len(s.names))
}

func key(v interface{}) string {
	if str, ok := v.(string); ok {
		return str
	}
	return fmt.Sprint(v)
}

func (s *Ordinal) Transform(v interface{}) float64 {
	i, ok := s.index[key(v)]
	if !ok {
		return math.NaN()
	}
	r := (float64(i) + 0.5) / float64(len(s.names))
	if s.inverted {
		r = 1 - r
	}
	return r
}

func (s *Ordinal) InverseTransform(ratio float64) interface{} {
	n := len(s.names)
	if n == 0 {
		return nil
	}
	if s.inverted {
		ratio = 1 - ratio
	}
	i := int(math.Floor(ratio * float64(n)))
	if i < 0 {
		i = 0
	} else if i >= n {
		i = n - 1
	}
	return s.names[i]
}

func (s *Ordinal) NeedsAutoCalc() bool { return !s.explicit }

func (s *Ordinal) StartAutoCalc() {
	s.pending = nil
	s.seen = sets.NewString()
}

func (s *Ordinal) ExtendDataRange(values ...interface{}) {
	for _, v := range values {
		if v == nil {
			continue
		}
		k := key(v)
		if s.seen.Has(k) {
			continue
		}
		s.seen.Insert(k)
		s.pending = append(s.pending, k)
	}
}

func (s *Ordinal) FinishAutoCalc() bool {
	if s.explicit {
		return false
	}
	return s.setNames(s.pending)
}

func (s *Ordinal) Ticks(max int) []Tick {
	n := len(s.names)
	if max <= 0 || n == 0 {
		return nil
	}
	step := 1
	if n > max {
		step = (n + max - 1) / max
	}
	ticks := make([]Tick, 0, n/step+1)
	for i := 0; i < n; i += step {
		ticks = append(ticks, Tick{Value: s.names[i], Ratio: s.Transform(s.names[i]), Label: s.names[i]})
	}
	return ticks
}

func (s *Ordinal) Serialize() style.Settings {
	out := style.Settings{"type": TypeOrdinal, "inverted": s.inverted}
	if s.explicit {
		names := make([]interface{}, len(s.names))
		for i, n := range s.names {
			names[i] = n
		}
		out["names"] = names
	}
	return out
}

func (s *Ordinal) SetupByJSON(cfg style.Settings) {
	s.SuspendSignalsDispatching()
	defer s.ResumeSignalsDispatching(true)

	if cfg.Has("names") {
		names := []string{}
		for _, v := range cfg.List("names") {
			names = append(names, key(v))
		}
		s.SetNames(names)
	}
	s.SetInverted(cfg.Bool("inverted", s.inverted))
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
