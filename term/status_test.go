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

package term_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/term"
)

var _ = Describe("StatusLine", func() {
	var line *term.StatusLine
	BeforeEach(func() {
		line = &term.StatusLine{}
		line.SetBox(term.PositionBox{StartRow: 1, Cols: 12, Rows: 1})
	})

	It("should right-align the right part", func() {
		line.SetText("row 3", "q:quit")
		Expect(line).To(DisplayLike(12, 2,
			"",
			"row 3 q:quit",
		))
	})

	It("should leave a gap between both parts", func() {
		line.SetText("rows", "quit")
		Expect(line).To(DisplayLike(12, 2,
			"",
			"rows    quit",
		))
	})

	It("should drop the right part when it doesn't fit", func() {
		line.SetText("selected: alpha", "q:quit")
		Expect(line).To(DisplayLike(12, 2,
			"",
			"selected: a…",
		))
	})

	It("should draw nothing without a box", func() {
		line.SetBox(term.PositionBox{})
		line.SetText("hidden", "")
		Expect(line).To(DisplayLike(12, 2))
	})
})
