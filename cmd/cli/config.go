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
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"sigs.k8s.io/gridchart/chart"
	"sigs.k8s.io/gridchart/chart/style"
)

// ErrNotAnObject is returned for documents whose top level isn't a
// mapping.
var ErrNotAnObject = errors.New("settings must be an object")

// ParseSettings decodes a YAML (or JSON) document into settings.  An
// empty document yields empty settings.
func ParseSettings(raw []byte) (style.Settings, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse settings: %w", err)
	}
	if doc == nil {
		return style.Settings{}, nil
	}
	s, ok := style.Normalize(doc).(style.Settings)
	if !ok {
		return nil, fmt.Errorf("%w, got %T", ErrNotAnObject, doc)
	}
	return s, nil
}

// ReadSettings is ParseSettings for a reader.
func ReadSettings(r io.Reader) (style.Settings, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read settings: %w", err)
	}
	return ParseSettings(raw)
}

// LoadSettings reads settings from path.  "-" reads from in.
func LoadSettings(path string, in io.Reader) (style.Settings, error) {
	if path == "-" {
		if in == nil {
			in = os.Stdin
		}
		return ReadSettings(in)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open settings: %w", err)
	}
	defer f.Close()
	s, err := ReadSettings(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadTheme returns the built-in theme, overridden by the file at path
// when one is given.  The file holds a "global" object plus one object per
// chart type.
func LoadTheme(path string) (style.Theme, error) {
	theme := style.DefaultTheme()
	if path == "" {
		return theme, nil
	}
	overrides, err := LoadSettings(path, nil)
	if err != nil {
		return style.Theme{}, fmt.Errorf("unable to load theme: %w", err)
	}
	return theme.WithOverrides(overrides), nil
}

// ParseValue decodes a single YAML value typed at a prompt, such as
// `12`, `"#ff0000"`, `[a, b]` or `{enabled: false}`.
func ParseValue(text string) (interface{}, error) {
	var v interface{}
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, fmt.Errorf("unable to parse value %q: %w", text, err)
	}
	return style.Normalize(v), nil
}

// ParseGridSettings decodes either a list of tasks or a full grid settings
// object and returns grid settings.  Nested tasks go under "children".
func ParseGridSettings(raw []byte) (style.Settings, error) {
	var doc interface{}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unable to parse tasks: %w", err)
	}
	var s style.Settings
	switch v := style.Normalize(doc).(type) {
	case []interface{}:
		s = style.Settings{"data": v}
	case style.Settings:
		s = v
	case nil:
		s = style.Settings{}
	default:
		return nil, fmt.Errorf("%w or a list of tasks, got %T", ErrNotAnObject, doc)
	}
	if t := s.String("type", ""); t != "" && t != chart.GridKind {
		return nil, fmt.Errorf("settings are for a %q chart, not a grid", t)
	}
	s["type"] = chart.GridKind
	return s, nil
}
