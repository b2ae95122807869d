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

package cli_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/cmd/cli"
)

var _ = Describe("Settings files", func() {
	var dir string
	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "gridchart-cli")
		Expect(err).NotTo(HaveOccurred())
	})
	AfterEach(func() {
		os.RemoveAll(dir)
	})

	It("should parse YAML into nested settings", func() {
		s, err := cli.ParseSettings([]byte(`
type: scatter
xAxis:
  title: latency
series:
- {type: line, name: p99}
`))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.String("type", "")).To(Equal("scatter"))
		Expect(s.Map("xAxis").String("title", "")).To(Equal("latency"))
		Expect(s.List("series")).To(HaveLen(1))
		Expect(s.List("series")[0]).To(BeAssignableToTypeOf(style.Settings{}))
	})

	It("should parse JSON too", func() {
		s, err := cli.ParseSettings([]byte(`{"type": "heatmap", "labels": {"enabled": false}}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Map("labels").Bool("enabled", true)).To(BeFalse())
	})

	It("should treat an empty document as empty settings", func() {
		s, err := cli.ParseSettings(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(BeEmpty())
	})

	It("should refuse documents that aren't objects", func() {
		_, err := cli.ParseSettings([]byte("- a\n- b\n"))
		Expect(err).To(MatchError(cli.ErrNotAnObject))
	})

	It("should report syntax errors", func() {
		_, err := cli.ParseSettings([]byte("type: [scatter"))
		Expect(err).To(HaveOccurred())
	})

	It("should load files and stdin", func() {
		path := filepath.Join(dir, "chart.yaml")
		Expect(os.WriteFile(path, []byte("type: heatmap\n"), 0644)).To(Succeed())
		s, err := cli.LoadSettings(path, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(s.String("type", "")).To(Equal("heatmap"))

		s, err = cli.LoadSettings("-", strings.NewReader("type: grid\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.String("type", "")).To(Equal("grid"))

		_, err = cli.LoadSettings(filepath.Join(dir, "missing.yaml"), nil)
		Expect(err).To(HaveOccurred())
	})

	Describe("themes", func() {
		It("should default to the built-in theme", func() {
			theme, err := cli.LoadTheme("")
			Expect(err).NotTo(HaveOccurred())
			Expect(theme).To(Equal(style.DefaultTheme()))
		})

		It("should layer a theme file over the built-in theme", func() {
			path := filepath.Join(dir, "theme.yaml")
			Expect(os.WriteFile(path, []byte(`
global:
  background: "#000000"
heatmap:
  cellStroke: "#111111"
`), 0644)).To(Succeed())
			theme, err := cli.LoadTheme(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(theme.Global.String("background", "")).To(Equal("#000000"))
			Expect(theme.Global.String("fontColor", "")).To(Equal("#212121"))
			Expect(theme.ChartTypes["heatmap"].String("cellStroke", "")).To(Equal("#111111"))
		})
	})

	Describe("values", func() {
		It("should decode scalars, lists and objects", func() {
			v, err := cli.ParseValue("12")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(12))

			v, err = cli.ParseValue(`"#ff0000"`)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal("#ff0000"))

			v, err = cli.ParseValue("[a, b]")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal([]interface{}{"a", "b"}))

			v, err = cli.ParseValue("{enabled: false}")
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(style.Settings{"enabled": false}))
		})
	})

	Describe("grid settings", func() {
		It("should accept a bare list of tasks", func() {
			s, err := cli.ParseGridSettings([]byte("- {name: a}\n- {name: b}\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.String("type", "")).To(Equal("grid"))
			Expect(s.List("data")).To(HaveLen(2))
		})

		It("should accept grid settings", func() {
			s, err := cli.ParseGridSettings([]byte("columnWidth: 30\ndata: [{name: a}]\n"))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Float("columnWidth", 0)).To(Equal(30.0))
			Expect(s.String("type", "")).To(Equal("grid"))
		})

		It("should refuse settings of other charts", func() {
			_, err := cli.ParseGridSettings([]byte("type: heatmap\n"))
			Expect(err).To(HaveOccurred())
		})

		It("should refuse scalars", func() {
			_, err := cli.ParseGridSettings([]byte("42\n"))
			Expect(err).To(MatchError(cli.ErrNotAnObject))
		})
	})
})
