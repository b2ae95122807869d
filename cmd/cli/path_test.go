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
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/cmd/cli"
)

var _ = Describe("Settings paths", func() {
	var s style.Settings
	BeforeEach(func() {
		s = style.Settings{
			"type":  "scatter",
			"xAxis": style.Settings{"title": "latency"},
			"series": []interface{}{
				style.Settings{"name": "p50"},
				style.Settings{"name": "p99"},
			},
		}
	})

	It("should read through objects and lists", func() {
		v, ok := cli.GetPath(s, "xAxis.title")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("latency"))

		v, ok = cli.GetPath(s, "series.1.name")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("p99"))
	})

	It("should miss absent paths", func() {
		for _, p := range []string{"yAxis", "series.2", "series.x", "type.name", "", "xAxis..title"} {
			_, ok := cli.GetPath(s, p)
			Expect(ok).To(BeFalse(), p)
		}
	})

	It("should create objects on the way when setting", func() {
		Expect(cli.SetPath(s, "yAxis.labels.enabled", false)).To(Succeed())
		Expect(s.Map("yAxis").Map("labels").Bool("enabled", true)).To(BeFalse())
	})

	It("should set list entries and append at the end", func() {
		Expect(cli.SetPath(s, "series.0.name", "median")).To(Succeed())
		Expect(cli.SetPath(s, "series.2", style.Settings{"name": "max"})).To(Succeed())
		Expect(s.List("series")).To(HaveLen(3))
		Expect(s.List("series")[0].(style.Settings).String("name", "")).To(Equal("median"))
		Expect(s.List("series")[2].(style.Settings).String("name", "")).To(Equal("max"))
	})

	It("should refuse to index past the end or into scalars", func() {
		Expect(cli.SetPath(s, "series.5.name", "x")).To(MatchError(cli.ErrBadPath))
		Expect(cli.SetPath(s, "type.name", "x")).To(MatchError(cli.ErrBadPath))
		Expect(cli.SetPath(s, "", "x")).To(MatchError(cli.ErrBadPath))
	})

	It("should unset keys and list entries", func() {
		Expect(cli.UnsetPath(s, "xAxis.title")).To(BeTrue())
		Expect(s.Map("xAxis")).To(BeEmpty())

		Expect(cli.UnsetPath(s, "series.0")).To(BeTrue())
		Expect(s.List("series")).To(HaveLen(1))
		Expect(s.List("series")[0].(style.Settings).String("name", "")).To(Equal("p99"))

		Expect(cli.UnsetPath(s, "series.3")).To(BeFalse())
		Expect(cli.UnsetPath(s, "nothing")).To(BeFalse())
	})

	It("should list every path in key order", func() {
		Expect(cli.Paths(s)).To(Equal([]string{
			"series",
			"series.0",
			"series.0.name",
			"series.1",
			"series.1.name",
			"type",
			"xAxis",
			"xAxis.title",
		}))
	})
})
