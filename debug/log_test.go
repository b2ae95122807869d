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
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/debug"
)

var _ = Describe("Loggers", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "gridchart-debug")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		debug.SetLogDirectory("")
		debug.Teardown()
		os.RemoveAll(dir)
	})

	It("should discard output when no directory is configured", func() {
		debug.SetLogDirectory("")
		os.Unsetenv(debug.DebugLogDirEnv)
		lgr := debug.NewDebugLogger("quiet.log")
		lgr.Println("nobody hears this")

		_, err := os.Stat(filepath.Join(dir, "quiet.log"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("should append to a file in the configured directory", func() {
		debug.SetLogDirectory(dir)
		lgr := debug.NewDebugLogger("trace.log")
		lgr.Println("rows rebuilt")
		debug.Teardown()

		raw, err := os.ReadFile(filepath.Join(dir, "trace.log"))
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring("trace.log enabled"))
		Expect(string(raw)).To(ContainSubstring("rows rebuilt"))
	})
})
