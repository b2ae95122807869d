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

package style_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/debug"
)

var _ = Describe("Value", func() {
	It("should resolve constants without a context", func() {
		v := style.Constant("#ff0000")
		Expect(v.IsSet()).To(BeTrue())
		Expect(v.IsComputed()).To(BeFalse())
		Expect(v.Resolve(nil)).To(Equal("#ff0000"))
	})

	It("should evaluate computed values against the point context", func() {
		v := style.Computed(func(ctx *style.Context) string { return ctx.SourceColor })
		Expect(v.Resolve(&style.Context{SourceColor: "#00ff00"})).To(Equal("#00ff00"))
		Expect(v.Resolve(nil)).To(BeEmpty())
	})

	It("should fall back to a default when unset", func() {
		var v style.Value[float64]
		Expect(v.Or(style.Constant(2.0)).Resolve(nil)).To(Equal(2.0))
	})

	It("should convert raw settings entries", func() {
		v, ok := style.ValueOf[string]("blue")
		Expect(ok).To(BeTrue())
		Expect(v.Resolve(nil)).To(Equal("blue"))

		v, ok = style.ValueOf[string](func(ctx *style.Context) string { return ctx.SeriesName })
		Expect(ok).To(BeTrue())
		Expect(v.IsComputed()).To(BeTrue())

		_, ok = style.ValueOf[string](12)
		Expect(ok).To(BeFalse())

		f, ok := style.FloatValueOf(3)
		Expect(ok).To(BeTrue())
		Expect(f.Resolve(nil)).To(Equal(3.0))
	})
})

var _ = Describe("Settings", func() {
	It("should deep-merge with later layers winning", func() {
		global := style.Settings{"axis": style.Settings{"stroke": "#000", "width": 1}, "palette": []interface{}{"a", "b"}}
		chartType := style.Settings{"axis": style.Settings{"stroke": "#111"}}
		instance := style.Settings{"palette": []interface{}{"c"}}

		merged := style.Merge(global, chartType, instance)
		Expect(merged.Map("axis")).To(Equal(style.Settings{"stroke": "#111", "width": 1}))
		Expect(merged.Strings("palette")).To(Equal([]string{"c"}))
		Expect(global.Map("axis").String("stroke", "")).To(Equal("#000"), "inputs should not be modified")
	})

	It("should resolve theme layers in priority order", func() {
		theme := style.Theme{
			Global:     style.Settings{"a": 1, "b": 1, "c": 1},
			ChartTypes: map[string]style.Settings{"heatmap": {"b": 2, "c": 2}},
		}
		resolved := theme.Resolve("heatmap", style.Settings{"c": 3})
		Expect(resolved.Int("a", 0)).To(Equal(1))
		Expect(resolved.Int("b", 0)).To(Equal(2))
		Expect(resolved.Int("c", 0)).To(Equal(3))
	})

	It("should normalize decoder maps into settings", func() {
		raw := map[interface{}]interface{}{
			"grid": map[interface{}]interface{}{"headerHeight": 30},
			"list": []interface{}{map[string]interface{}{"x": 1}},
		}
		s := style.NormalizeSettings(raw)
		Expect(s.Map("grid").Float("headerHeight", 0)).To(Equal(30.0))
		Expect(s.List("list")[0]).To(BeAssignableToTypeOf(style.Settings{}))
	})

	Context("when sanitizing for serialization", func() {
		var (
			warnings []debug.Diagnostic
			restore  func()
		)
		BeforeEach(func() {
			warnings = nil
			restore = debug.SetReporter(debug.ReporterFunc(func(d debug.Diagnostic) {
				warnings = append(warnings, d)
			}))
		})
		AfterEach(func() {
			restore()
		})

		It("should drop functions with a warning and keep everything else", func() {
			s := style.Settings{
				"fill":   style.Computed(func(*style.Context) string { return "x" }),
				"stroke": style.Constant("#ccc"),
				"nested": style.Settings{"format": func(*style.Context) string { return "" }, "size": 2},
			}
			out := style.Sanitize(s)
			Expect(out).To(Equal(style.Settings{
				"stroke": "#ccc",
				"nested": style.Settings{"size": 2},
			}))
			Expect(warnings).To(HaveLen(2))
			Expect(warnings[0].Code).To(Equal(debug.UnsupportedSerialization))
			Expect(warnings[0].Args).To(Equal([]interface{}{"fill"}))
			Expect(warnings[1].Args).To(Equal([]interface{}{"nested.format"}))
		})
	})
})

var _ = Describe("Expand", func() {
	It("should substitute context values and record fields", func() {
		ctx := &style.Context{Index: 3, Value: 1.5, SeriesName: "cpu", Fields: map[string]interface{}{"host": "a"}}
		Expect(style.Expand("{name}@{host} #{index}: {value}{missing}", ctx)).To(Equal("cpu@a #3: 1.5"))
	})

	It("should prefer a name field over the series name", func() {
		ctx := &style.Context{SeriesName: "s", Fields: map[string]interface{}{"name": "row"}}
		Expect(style.Expand("{name}", ctx)).To(Equal("row"))
	})
})
