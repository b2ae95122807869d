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

// Package style carries themeable values, nested settings and theme merging.
//
// Every visual property is a Value: either a constant or a function of the
// per-point Context, resolved at draw time.
package style

// Context is what computed values are evaluated against.
type Context struct {
	// Index is the position of the point (or row) being drawn.
	Index int
	// Item is the row item or record being drawn, if any.
	Item interface{}
	// Value is the primary numeric value of the point.
	Value float64
	// X and Y are the raw (unscaled) coordinates of the point.
	X, Y interface{}
	// SourceColor is the color the point would get if nothing overrode it.
	SourceColor string
	// SeriesName is the name of the owning series.
	SeriesName string
	// Fields holds every other field of the record.
	Fields map[string]interface{}
}

// Value is a Constant or a Computed style value.  The zero Value is an unset
// constant.
type Value[T any] struct {
	constant T
	fn       func(*Context) T
	set      bool
}

// Constant wraps a fixed value.
func Constant[T any](v T) Value[T] {
	return Value[T]{constant: v, set: true}
}

// Computed wraps a function of the drawing context.
func Computed[T any](fn func(*Context) T) Value[T] {
	return Value[T]{fn: fn, set: fn != nil}
}

// IsSet reports whether a constant or function was supplied.
func (v Value[T]) IsSet() bool {
	return v.set
}

// IsComputed reports whether the value is a function.
func (v Value[T]) IsComputed() bool {
	return v.fn != nil
}

// Resolve evaluates the value.  A nil ctx is treated as an empty context.
func (v Value[T]) Resolve(ctx *Context) T {
	if v.fn == nil {
		return v.constant
	}
	if ctx == nil {
		ctx = &Context{}
	}
	return v.fn(ctx)
}

// Or returns v when set and def otherwise.
func (v Value[T]) Or(def Value[T]) Value[T] {
	if v.set {
		return v
	}
	return def
}

// Serialize returns the constant, or false for computed and unset values.
func (v Value[T]) Serialize() (interface{}, bool) {
	if !v.set || v.fn != nil {
		return nil, false
	}
	return v.constant, true
}

// ValueOf converts a raw settings entry (a T, a func(*Context) T or a
// Value[T]) into a Value.
func ValueOf[T any](raw interface{}) (Value[T], bool) {
	switch v := raw.(type) {
	case Value[T]:
		return v, true
	case func(*Context) T:
		return Computed(v), true
	case T:
		return Constant(v), true
	default:
		return Value[T]{}, false
	}
}

// FloatValueOf is ValueOf for numbers, accepting any numeric constant.
func FloatValueOf(raw interface{}) (Value[float64], bool) {
	if f, ok := AsFloat(raw); ok {
		return Constant(f), true
	}
	return ValueOf[float64](raw)
}

// AsFloat converts the numeric types that decoders produce to float64.
func AsFloat(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	default:
		return 0, false
	}
}
