/*
Copyright 2020 The Kubernetes Authors.

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
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"gopkg.in/yaml.v2"

	"sigs.k8s.io/gridchart/chart/style"
)

// Output formats for serialized settings.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var (
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgHiCyan).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

func toPrettyJSON(v interface{}) (string, error) {
	s, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(s), nil
}

func toPrettyColoredJSON(v interface{}) (string, error) {
	f := prettyjson.NewFormatter()
	f.Indent = 2
	f.KeyColor = color.New(color.FgGreen)
	f.NullColor = color.New(color.Underline)
	f.NumberColor = color.New(color.FgYellow)
	f.StringColor = color.New(color.FgHiCyan)
	f.BoolColor = nil

	s, err := f.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(s), nil
}

func toYAML(v interface{}) (string, error) {
	o, err := yaml.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(o), nil
}

// FormatValue renders v in the given output format.
func FormatValue(v interface{}, outputType string, colorized bool) (string, error) {
	switch outputType {
	case OutputJSON, "":
		if colorized {
			return toPrettyColoredJSON(v)
		}
		return toPrettyJSON(v)
	case OutputYAML:
		return toYAML(v)
	}
	return "", fmt.Errorf("unsupported formatting option (%s)", outputType)
}

// FormatSettings renders settings after dropping what can't be
// serialized.
func FormatSettings(s style.Settings, outputType string, colorized bool) (string, error) {
	return FormatValue(style.Sanitize(s), outputType, colorized)
}

// Highlight colors a path or keyword when colorized.
func Highlight(s string, colorized bool) string {
	if !colorized {
		return s
	}
	return cyan(s)
}

// Hint colors secondary text when colorized.
func Hint(s string, colorized bool) string {
	if !colorized {
		return s
	}
	return yellow(s)
}

// Failure colors an error message when colorized.
func Failure(s string, colorized bool) string {
	if !colorized {
		return s
	}
	return red(s)
}
