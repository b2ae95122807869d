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

package style

import (
	"fmt"
	"reflect"
	"sort"

	"sigs.k8s.io/gridchart/debug"
)

// Settings is a nested configuration map.  Nested objects are Settings as
// well, lists are []interface{}.
type Settings map[string]interface{}

// Merge deep-merges layers, later layers winning.  Nested Settings are merged
// key by key; every other value (lists included) is replaced wholesale.
// None of the inputs are modified.
func Merge(layers ...Settings) Settings {
	out := Settings{}
	for _, layer := range layers {
		mergeInto(out, layer)
	}
	return out
}

func mergeInto(dst, src Settings) {
	for k, v := range src {
		if sub, ok := v.(Settings); ok {
			existing, isMap := dst[k].(Settings)
			if !isMap {
				existing = Settings{}
			} else {
				existing = Merge(existing)
			}
			mergeInto(existing, sub)
			dst[k] = existing
			continue
		}
		dst[k] = v
	}
}

// Has reports whether key is present.
func (s Settings) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Float returns the numeric value at key, or def.
func (s Settings) Float(key string, def float64) float64 {
	if f, ok := AsFloat(s[key]); ok {
		return f
	}
	return def
}

// Int returns the numeric value at key truncated to an int, or def.
func (s Settings) Int(key string, def int) int {
	if f, ok := AsFloat(s[key]); ok {
		return int(f)
	}
	return def
}

// String returns the string at key, or def.
func (s Settings) String(key string, def string) string {
	if v, ok := s[key].(string); ok {
		return v
	}
	return def
}

// Bool returns the boolean at key, or def.
func (s Settings) Bool(key string, def bool) bool {
	if v, ok := s[key].(bool); ok {
		return v
	}
	return def
}

// Map returns the nested settings at key, or nil.
func (s Settings) Map(key string) Settings {
	if v, ok := s[key].(Settings); ok {
		return v
	}
	return nil
}

// List returns the list at key, or nil.
func (s Settings) List(key string) []interface{} {
	if v, ok := s[key].([]interface{}); ok {
		return v
	}
	return nil
}

// Strings returns the list at key keeping only its string entries.
func (s Settings) Strings(key string) []string {
	var out []string
	for _, v := range s.List(key) {
		if str, ok := v.(string); ok {
			out = append(out, str)
		}
	}
	return out
}

// Keys returns the keys in sorted order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Normalize converts decoder output (map[string]interface{},
// map[interface{}]interface{} and nested lists) into Settings.
func Normalize(v interface{}) interface{} {
	switch v := v.(type) {
	case Settings:
		out := make(Settings, len(v))
		for k, val := range v {
			out[k] = Normalize(val)
		}
		return out
	case map[string]interface{}:
		out := make(Settings, len(v))
		for k, val := range v {
			out[k] = Normalize(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(Settings, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}

// NormalizeSettings is Normalize for a top-level object.  Anything that
// isn't an object yields empty settings.
func NormalizeSettings(v interface{}) Settings {
	if s, ok := Normalize(v).(Settings); ok {
		return s
	}
	return Settings{}
}

type computed interface {
	IsComputed() bool
}

// Sanitize returns a copy of s fit for serialization: function values and
// computed Values are dropped, each one reported as an UnsupportedSerialization
// warning naming its path.
func Sanitize(s Settings) Settings {
	return sanitizeMap(s, "")
}

func sanitizeMap(s Settings, prefix string) Settings {
	out := make(Settings, len(s))
	for _, k := range s.Keys() {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		if v, ok := sanitizeValue(s[k], path); ok {
			out[k] = v
		}
	}
	return out
}

func sanitizeValue(v interface{}, path string) (interface{}, bool) {
	switch val := v.(type) {
	case nil:
		return nil, true
	case Settings:
		return sanitizeMap(val, path), true
	case []interface{}:
		out := make([]interface{}, 0, len(val))
		for i, item := range val {
			if clean, ok := sanitizeValue(item, fmt.Sprintf("%s[%d]", path, i)); ok {
				out = append(out, clean)
			}
		}
		return out, true
	case computed:
		if val.IsComputed() {
			debug.Warning(debug.UnsupportedSerialization, path)
			return nil, false
		}
		if ser, ok := val.(interface{ Serialize() (interface{}, bool) }); ok {
			return ser.Serialize()
		}
		return val, true
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		debug.Warning(debug.UnsupportedSerialization, path)
		return nil, false
	}
	return v, true
}
