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

package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"sigs.k8s.io/gridchart/chart/style"
)

// ErrBadPath is wrapped by errors about settings paths.
var ErrBadPath = errors.New("bad settings path")

// A settings path joins keys and list indices with dots, as in
// "xAxis.title" or "series.0.name".
func splitPath(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrBadPath)
	}
	parts := strings.Split(path, ".")
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrBadPath, path)
		}
	}
	return parts, nil
}

func index(part string, n int) (int, bool) {
	i, err := strconv.Atoi(part)
	if err != nil || i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

// GetPath returns the value at path.
func GetPath(s style.Settings, path string) (interface{}, bool) {
	parts, err := splitPath(path)
	if err != nil {
		return nil, false
	}
	var cur interface{} = s
	for _, p := range parts {
		switch node := cur.(type) {
		case style.Settings:
			v, ok := node[p]
			if !ok {
				return nil, false
			}
			cur = v
		case []interface{}:
			i, ok := index(p, len(node))
			if !ok {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// SetPath stores v at path, creating missing objects on the way.  A list
// index equal to the list length appends.
func SetPath(s style.Settings, path string, v interface{}) error {
	parts, err := splitPath(path)
	if err != nil {
		return err
	}
	_, err = setIn(s, parts, v, path)
	return err
}

func setIn(node interface{}, parts []string, v interface{}, path string) (interface{}, error) {
	head, rest := parts[0], parts[1:]
	switch n := node.(type) {
	case style.Settings:
		if len(rest) == 0 {
			n[head] = v
			return n, nil
		}
		child, ok := n[head]
		if !ok {
			child = newContainer(rest[0])
		}
		updated, err := setIn(child, rest, v, path)
		if err != nil {
			return nil, err
		}
		n[head] = updated
		return n, nil
	case []interface{}:
		i, err := strconv.Atoi(head)
		if err != nil || i < 0 || i > len(n) {
			return nil, fmt.Errorf("%w: %q: no index %s in a list of %d", ErrBadPath, path, head, len(n))
		}
		if i == len(n) {
			var fresh interface{} = style.Settings{}
			if len(rest) > 0 {
				fresh = newContainer(rest[0])
			}
			n = append(n, fresh)
		}
		if len(rest) == 0 {
			n[i] = v
			return n, nil
		}
		updated, err := setIn(n[i], rest, v, path)
		if err != nil {
			return nil, err
		}
		n[i] = updated
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %q: %s is a %T, not an object or list", ErrBadPath, path, head, node)
	}
}

// newContainer returns what a missing node should be for the segment
// that follows it: a list before an index, an object otherwise.
func newContainer(next string) interface{} {
	if _, err := strconv.Atoi(next); err == nil {
		return []interface{}{}
	}
	return style.Settings{}
}

// UnsetPath removes the key or list entry at path and reports whether
// there was one.
func UnsetPath(s style.Settings, path string) bool {
	parts, err := splitPath(path)
	if err != nil {
		return false
	}
	parentPath := strings.Join(parts[:len(parts)-1], ".")
	last := parts[len(parts)-1]

	var parent interface{} = s
	if parentPath != "" {
		var ok bool
		if parent, ok = GetPath(s, parentPath); !ok {
			return false
		}
	}
	switch p := parent.(type) {
	case style.Settings:
		if !p.Has(last) {
			return false
		}
		delete(p, last)
		return true
	case []interface{}:
		i, ok := index(last, len(p))
		if !ok {
			return false
		}
		return SetPath(s, parentPath, append(p[:i:i], p[i+1:]...)) == nil
	}
	return false
}

// Paths lists every path in s, objects and lists included, depth first in
// key order.
func Paths(s style.Settings) []string {
	var out []string
	var walk func(prefix string, v interface{})
	walk = func(prefix string, v interface{}) {
		switch n := v.(type) {
		case style.Settings:
			for _, k := range n.Keys() {
				p := join(prefix, k)
				out = append(out, p)
				walk(p, n[k])
			}
		case []interface{}:
			for i, item := range n {
				p := join(prefix, strconv.Itoa(i))
				out = append(out, p)
				walk(p, item)
			}
		}
	}
	walk("", s)
	return out
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
