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

package debug_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/debug"
)

var _ = Describe("Diagnostics", func() {
	var (
		got     []debug.Diagnostic
		restore func()
	)

	BeforeEach(func() {
		got = nil
		restore = debug.SetReporter(debug.ReporterFunc(func(d debug.Diagnostic) {
			got = append(got, d)
		}))
	})

	AfterEach(func() {
		restore()
	})

	It("should route warnings and errors to the installed reporter", func() {
		debug.Warning(debug.ScaleTypeNotSupported, "log2")
		debug.Error(debug.InvalidSetting, "columnWidth", -1)

		Expect(got).To(Equal([]debug.Diagnostic{
			{Code: debug.ScaleTypeNotSupported, Severity: debug.SeverityWarning, Args: []interface{}{"log2"}},
			{Code: debug.InvalidSetting, Severity: debug.SeverityError, Args: []interface{}{"columnWidth", -1}},
		}))
	})

	It("should put the previous reporter back on restore", func() {
		var inner int
		restoreInner := debug.SetReporter(debug.ReporterFunc(func(debug.Diagnostic) { inner++ }))
		debug.Warning(debug.SeriesTypeNotSupported)
		restoreInner()
		debug.Warning(debug.SeriesTypeNotSupported)

		Expect(inner).To(Equal(1))
		Expect(got).To(HaveLen(1))
	})

	It("should describe the diagnostic with its severity and arguments", func() {
		Expect(debug.Diagnostic{Code: debug.UnsupportedSerialization, Args: []interface{}{"format"}}.String()).
			To(Equal("warning: UnsupportedSerialization [format]"))
		Expect(debug.Diagnostic{Code: debug.InvalidSetting, Severity: debug.SeverityError}.String()).
			To(Equal("error: InvalidSetting"))
	})

	It("should name unknown codes by number", func() {
		Expect(debug.Code(42).String()).To(Equal("Code(42)"))
	})
})
