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
	"math"

	mmscale "github.com/aclements/go-moremath/scale"

	"sigs.k8s.io/gridchart/chart/style"
)

// autoTickCount bounds the tick level used when rounding auto ranges.
const autoTickCount = 10

type quantitative interface {
	Map(x float64) float64
	Unmap(y float64) float64
	Ticks(o mmscale.TickOptions) (major, minor []float64)
}

// Quantitative is a continuous scale, either linear or logarithmic.  Each
// end of the range is either fixed or computed from the data.
type Quantitative struct {
	provider

	typ     string
	logBase int

	min, max           float64
	fixedMin, fixedMax bool
	inverted           bool
	nice               bool

	dataMin, dataMax float64
}

// NewLinear returns a linear scale with an auto-calculated range.
func NewLinear() *Quantitative {
	s := &Quantitative{typ: TypeLinear, min: 0, max: 1, nice: true}
	s.init(s)
	s.StartAutoCalc()
	return s
}

// NewLog returns a logarithmic scale with the given base.
func NewLog(base int) *Quantitative {
	if base < 2 {
		base = 10
	}
	s := &Quantitative{typ: TypeLog, logBase: base, min: 1, max: float64(base), nice: true}
	s.init(s)
	s.StartAutoCalc()
	return s
}

func (s *Quantitative) Type() string { return s.typ }

func (s *Quantitative) mapping() quantitative {
	if s.typ == TypeLog {
		if l, err := mmscale.NewLog(s.min, s.max, s.logBase); err == nil {
			return l
		}
	}
	return mmscale.Linear{Min: s.min, Max: s.max}
}

// Minimum returns the low end of the current range.
func (s *Quantitative) Minimum() float64 { return s.min }

// Maximum returns the high end of the current range.
func (s *Quantitative) Maximum() float64 { return s.max }

// SetMinimum fixes the low end of the range.
func (s *Quantitative) SetMinimum(v float64) {
	if s.fixedMin && s.min == v {
		return
	}
	s.fixedMin, s.min = true, v
	s.changed()
}

// SetMaximum fixes the high end of the range.
func (s *Quantitative) SetMaximum(v float64) {
	if s.fixedMax && s.max == v {
		return
	}
	s.fixedMax, s.max = true, v
	s.changed()
}

// SetRange fixes both ends of the range, signalling once.
func (s *Quantitative) SetRange(min, max float64) {
	s.SuspendSignalsDispatching()
	s.SetMinimum(min)
	s.SetMaximum(max)
	s.ResumeSignalsDispatching(true)
}

// ClearRange makes both ends data-driven again.
func (s *Quantitative) ClearRange() {
	if !s.fixedMin && !s.fixedMax {
		return
	}
	s.fixedMin, s.fixedMax = false, false
	s.changed()
}

func (s *Quantitative) IsInverted() bool { return s.inverted }

func (s *Quantitative) SetInverted(inverted bool) {
	if s.inverted == inverted {
		return
	}
	s.inverted = inverted
	s.changed()
}

// SetNice controls whether auto ranges are rounded out to tick boundaries.
func (s *Quantitative) SetNice(nice bool) {
	if s.nice == nice {
		return
	}
	s.nice = nice
	s.changed()
}

func (s *Quantitative) Transform(v interface{}) float64 {
	f := toFloat(v)
	if math.IsNaN(f) {
		return f
	}
	r := s.mapping().Map(f)
	if s.inverted {
		r = 1 - r
	}
	return r
}

func (s *Quantitative) InverseTransform(ratio float64) interface{} {
	if s.inverted {
		ratio = 1 - ratio
	}
	return s.mapping().Unmap(ratio)
}

func (s *Quantitative) NeedsAutoCalc() bool {
	return !s.fixedMin || !s.fixedMax
}

func (s *Quantitative) StartAutoCalc() {
	s.dataMin, s.dataMax = math.Inf(1), math.Inf(-1)
}

func (s *Quantitative) ExtendDataRange(values ...interface{}) {
	for _, v := range values {
		f := toFloat(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		if s.typ == TypeLog && f <= 0 {
			continue
		}
		if f < s.dataMin {
			s.dataMin = f
		}
		if f > s.dataMax {
			s.dataMax = f
		}
	}
}

func (s *Quantitative) FinishAutoCalc() bool {
	if !s.NeedsAutoCalc() {
		return false
	}
	lo, hi := s.dataMin, s.dataMax
	if lo > hi {
		// no data at all
		lo, hi = s.min, s.max
	}
	if s.fixedMin {
		lo = s.min
	}
	if s.fixedMax {
		hi = s.max
	}
	if lo == hi {
		if s.typ == TypeLog {
			lo, hi = lo/float64(s.logBase), hi*float64(s.logBase)
		} else {
			lo, hi = lo-0.5, hi+0.5
		}
	}
	if s.nice && s.typ == TypeLinear {
		rounded := mmscale.Linear{Min: lo, Max: hi}
		rounded.Nice(mmscale.TickOptions{Max: autoTickCount})
		if !s.fixedMin {
			lo = rounded.Min
		}
		if !s.fixedMax {
			hi = rounded.Max
		}
	}
	if lo == s.min && hi == s.max {
		return false
	}
	s.min, s.max = lo, hi
	s.changed()
	return true
}

func (s *Quantitative) Ticks(max int) []Tick {
	if max <= 0 {
		return nil
	}
	major, _ := s.mapping().Ticks(mmscale.TickOptions{Max: max})
	lo, hi := s.min, s.max
	if lo > hi {
		lo, hi = hi, lo
	}
	eps := (hi - lo) * 1e-9
	ticks := make([]Tick, 0, len(major))
	for _, v := range major {
		if v < lo-eps || v > hi+eps {
			continue
		}
		ticks = append(ticks, Tick{Value: v, Ratio: s.Transform(v), Label: formatNumber(v)})
	}
	return ticks
}

func (s *Quantitative) Serialize() style.Settings {
	out := style.Settings{
		"type":     s.typ,
		"inverted": s.inverted,
		"nice":     s.nice,
	}
	if s.fixedMin {
		out["minimum"] = s.min
	}
	if s.fixedMax {
		out["maximum"] = s.max
	}
	if s.typ == TypeLog {
		out["logBase"] = s.logBase
	}
	return out
}

func (s *Quantitative) SetupByJSON(cfg style.Settings) {
	s.SuspendSignalsDispatching()
	defer s.ResumeSignalsDispatching(true)

	if v, ok := style.AsFloat(cfg["minimum"]); ok {
		s.SetMinimum(v)
	}
	if v, ok := style.AsFloat(cfg["maximum"]); ok {
		s.SetMaximum(v)
	}
	s.SetInverted(cfg.Bool("inverted", s.inverted))
	s.SetNice(cfg.Bool("nice", s.nice))
	if s.typ == TypeLog {
		if base := cfg.Int("logBase", s.logBase); base >= 2 && base != s.logBase {
			s.logBase = base
			s.changed()
		}
	}
}
