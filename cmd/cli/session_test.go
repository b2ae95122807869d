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

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/cmd/cli"
)

var _ = Describe("Session", func() {
	var s *cli.Session
	BeforeEach(func() {
		s = cli.NewSession(nil, style.DefaultTheme())
	})

	run := func(line string) string {
		out, err := s.Execute(line)
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
		return out
	}

	It("should set, get and unset values", func() {
		Expect(run("set type grid")).To(BeEmpty())
		Expect(run("set xAxis.title {text: latency, enabled: true}")).To(BeEmpty())
		Expect(s.Settings.Map("xAxis").Map("title").String("text", "")).To(Equal("latency"))

		Expect(run("get xAxis.title.text")).To(MatchYAML("latency"))
		Expect(run("unset xAxis")).To(BeEmpty())
		Expect(s.Settings.Has("xAxis")).To(BeFalse())
	})

	It("should show the settings in the chosen format", func() {
		run("set type heatmap")
		Expect(run("show")).To(MatchYAML("type: heatmap"))
		s.Output = cli.OutputJSON
		Expect(run("show")).To(MatchJSON(`{"type": "heatmap"}`))
	})

	It("should ignore blank input", func() {
		Expect(run("   ")).To(BeEmpty())
	})

	It("should report unknown commands", func() {
		_, err := s.Execute("draw")
		Expect(err).To(MatchError(cli.ErrUnknownCommand))
	})

	It("should report missing arguments and paths", func() {
		_, err := s.Execute("set type")
		Expect(err).To(MatchError(ContainSubstring("missing value")))
		_, err = s.Execute("get")
		Expect(err).To(MatchError(ContainSubstring("missing path")))
		_, err = s.Execute("get nothing")
		Expect(err).To(MatchError(cli.ErrBadPath))
		_, err = s.Execute("unset nothing")
		Expect(err).To(MatchError(cli.ErrBadPath))
	})

	It("should render a text preview", func() {
		s.Width, s.Height = 20, 5
		run("set type grid")
		run("set headerHeight 1")
		run("set defaultRowHeight 1")
		run("set data [{name: build}]")
		Expect(run("render")).To(ContainSubstring("build"))
	})

	It("should report what the chart resolved", func() {
		run("set type grid")
		Expect(run("resolved")).To(ContainSubstring("rowOddFill"))
	})

	It("should report build errors", func() {
		_, err := s.Execute("render")
		Expect(err).To(HaveOccurred())
	})

	It("should list chart types and commands", func() {
		Expect(run("types")).To(Equal("grid\nheatmap\nscatter"))
		help := run("help")
		for _, c := range cli.SessionCommands() {
			Expect(help).To(ContainSubstring(c.Name))
		}
	})

	It("should save settings that load back", func() {
		dir, err := os.MkdirTemp("", "gridchart-session")
		Expect(err).NotTo(HaveOccurred())
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, "chart.yaml")

		run("set type scatter")
		run("set series.0 {type: line, name: p99}")
		Expect(run("save " + path)).To(ContainSubstring(path))

		loaded, err := cli.LoadSettings(path, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(loaded).To(Equal(s.Settings))
	})

	It("should complete paths by prefix", func() {
		run("set xAxis.title latency")
		run("set xScale.type linear")
		Expect(s.PathsWithPrefix("x")).To(Equal([]string{"xAxis", "xAxis.title", "xScale", "xScale.type"}))
		Expect(s.PathsWithPrefix("xS")).To(Equal([]string{"xScale", "xScale.type"}))
	})
})
