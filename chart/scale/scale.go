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

// Package scale maps data values to ratios in [0, 1] and back.
//
// Scales are shared providers: several series and axes may hold the same
// scale and all of them are told (through a NeedsReapplication signal) when
// its mapping changes.
package scale

import (
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/gridchart/chart/state"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/debug"
)

const (
	TypeLinear       = "linear"
	TypeLog          = "log"
	TypeOrdinal      = "ordinal"
	TypeLinearColor  = "linearColor"
	TypeOrdinalColor = "ordinalColor"
)

// SupportedTypes lists the type names New understands.
var SupportedTypes = sets.NewString(TypeLinear, TypeLog, TypeOrdinal, TypeLinearColor, TypeOrdinalColor)

// Tick is one labelled position on a scale.
type Tick struct {
	Value interface{}
	Ratio float64
	Label string
}

// Scale is the value-to-ratio mapping used by axes, series and grids.
type Scale interface {
	state.Signaller

	Type() string

	// Transform maps a data value to a ratio.  Values the scale knows
	// nothing about map to NaN.
	Transform(v interface{}) float64
	// InverseTransform maps a ratio back to a data value.
	InverseTransform(ratio float64) interface{}

	// NeedsAutoCalc reports whether the range comes from the data.
	NeedsAutoCalc() bool
	// StartAutoCalc resets the accumulated data range.
	StartAutoCalc()
	// ExtendDataRange feeds data values into the accumulated range.
	ExtendDataRange(values ...interface{})
	// FinishAutoCalc applies the accumulated range, reporting whether the
	// mapping changed.
	FinishAutoCalc() bool

	// Ticks returns at most max labelled positions.
	Ticks(max int) []Tick

	Serialize() style.Settings
	SetupByJSON(style.Settings)
}

// ColorScale additionally maps values to colors.
type ColorScale interface {
	Scale
	ColorAt(v interface{}) string
}

// New creates an empty scale by type name.  Unknown names are reported
// through debug.Warning and yield false.
func New(typ string) (Scale, bool) {
	if !SupportedTypes.Has(typ) {
		debug.Warning(debug.ScaleTypeNotSupported, typ)
		return nil, false
	}
	switch typ {
	case TypeLinear:
		return NewLinear(), true
	case TypeLog:
		return NewLog(10), true
	case TypeOrdinal:
		return NewOrdinal(), true
	case TypeLinearColor:
		return NewLinearColor(), true
	default:
		return NewOrdinalColor(), true
	}
}

// FromSettings creates a scale from its serialized form, defaulting to
// defaultType when no type is named.
func FromSettings(s style.Settings, defaultType string) (Scale, bool) {
	sc, ok := New(s.String("type", defaultType))
	if !ok {
		return nil, false
	}
	sc.SetupByJSON(s)
	return sc, true
}

// Dispose drops every listener of a scale the caller owns.
func Dispose(s Scale) {
	if d, ok := s.(interface{ RemoveAllListeners() }); ok {
		d.RemoveAllListeners()
	}
}

// provider is embedded by every scale.  Scales have no consistency states of
// their own, they only signal.
type provider struct {
	state.Base
}

func (p *provider) init(target interface{}) {
	p.Init(target, 0)
}

func (p *provider) changed() {
	p.DispatchSignal(state.NeedsReapplication | state.NeedsRedraw)
}

// toFloat converts numeric values; anything else maps to NaN.
func toFloat(v interface{}) float64 {
	if f, ok := style.AsFloat(v); ok {
		return f
	}
	return math.NaN()
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.6g", v)
}
