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

// Theme holds the two lower layers of the settings cascade.  Instance
// settings override chart-type defaults, which override the global layer.
type Theme struct {
	Global     Settings
	ChartTypes map[string]Settings
}

// Resolve merges the theme layers for kind under the instance settings.
func (t Theme) Resolve(kind string, instance Settings) Settings {
	return Merge(t.Global, t.ChartTypes[kind], instance)
}

// WithOverrides returns a copy of t with overrides merged into each layer.
// Keys of overrides other than "global" name chart types.
func (t Theme) WithOverrides(overrides Settings) Theme {
	out := Theme{
		Global:     Merge(t.Global, overrides.Map("global")),
		ChartTypes: make(map[string]Settings, len(t.ChartTypes)),
	}
	for kind, s := range t.ChartTypes {
		out.ChartTypes[kind] = Merge(s)
	}
	for _, kind := range overrides.Keys() {
		if kind == "global" {
			continue
		}
		if sub := overrides.Map(kind); sub != nil {
			out.ChartTypes[kind] = Merge(out.ChartTypes[kind], sub)
		}
	}
	return out
}

func list(items ...string) []interface{} {
	out := make([]interface{}, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

// DefaultTheme returns a fresh copy of the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Global: Settings{
			"background": "#ffffff",
			"fontColor":  "#212121",
			"palette": list("#1976d2", "#ef6c00", "#ffd54f", "#455a64", "#96a6a6",
				"#dd2c00", "#00838f", "#00bfa5", "#ffa000", "#8e24aa"),
			"markers": list("circle", "square", "diamond", "triangleUp", "cross"),
			"hatches": list("none", "backwardDiagonal", "forwardDiagonal", "horizontal", "vertical"),
			"axis": Settings{
				"stroke":          "#cecece",
				"strokeThickness": 1.0,
				"minTickSpacing":  4.0,
				"labels":          Settings{"fontColor": "#545f69"},
			},
			"tooltip": Settings{
				"enabled": true,
				"format":  "{name}: {value}",
			},
		},
		ChartTypes: map[string]Settings{
			"heatmap": {
				"colorScale": Settings{
					"type":   "ordinalColor",
					"ranges": []interface{}{},
					"colors": list("#90caf9", "#ffb74d", "#d7ccc8", "#80deea"),
				},
				"xScale":     Settings{"type": "ordinal"},
				"yScale":     Settings{"type": "ordinal"},
				"labels":     Settings{"enabled": true, "format": "{value}"},
				"hoverFill":  "lighten",
				"cellStroke": "#ffffff",
				"tooltip":    Settings{"format": "{x}, {y}: {value}"},
			},
			"scatter": {
				"xScale":    Settings{"type": "linear"},
				"yScale":    Settings{"type": "linear"},
				"gridLines": Settings{"enabled": true, "stroke": "#eeeeee"},
				"crosshair": Settings{"enabled": false, "stroke": "#969EA5"},
				"tooltip":   Settings{"format": "{seriesName}: {x}, {y}"},
			},
			"grid": {
				"headerHeight":       25.0,
				"defaultRowHeight":   20.0,
				"interactive":        true,
				"editable":           false,
				"rowOddFill":         "#fafafa",
				"rowEvenFill":        "#ffffff",
				"rowSelectedFill":    "#d2eafa",
				"rowHoverFill":       "#edf8ff",
				"rowStroke":          "#cecece",
				"rowStrokeThickness": 1.0,
				"dragHysteresis":     3.0,
				"tooltip":            Settings{"format": "{name}"},
			},
		},
	}
}
