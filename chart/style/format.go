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
	"regexp"
)

var tokenRE = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Expand replaces {token}s in template with values from ctx.  Besides the
// context fields (index, value, x, y, name, seriesName, sourceColor) any
// record field can be named.  Unknown tokens expand to nothing.
func Expand(template string, ctx *Context) string {
	if ctx == nil {
		ctx = &Context{}
	}
	return tokenRE.ReplaceAllStringFunc(template, func(tok string) string {
		name := tok[1 : len(tok)-1]
		switch name {
		case "index":
			return fmt.Sprint(ctx.Index)
		case "value":
			return fmt.Sprintf("%g", ctx.Value)
		case "x":
			return str(ctx.X)
		case "y":
			return str(ctx.Y)
		case "seriesName":
			return ctx.SeriesName
		case "sourceColor":
			return ctx.SourceColor
		}
		if v, ok := ctx.Fields[name]; ok {
			return str(v)
		}
		if name == "name" {
			return ctx.SeriesName
		}
		return ""
	})
}

func str(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
