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

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"sigs.k8s.io/gridchart/cmd/cli"
)

var _ = Describe("Environment", func() {
	vars := []string{"GRIDCHART_DEBUG_LOG_DIRECTORY", "GRIDCHART_THEME", "GRIDCHART_COLOR"}
	saved := map[string]*string{}

	BeforeEach(func() {
		for _, v := range vars {
			if val, ok := os.LookupEnv(v); ok {
				saved[v] = &val
			} else {
				saved[v] = nil
			}
			os.Unsetenv(v)
		}
	})
	AfterEach(func() {
		for _, v := range vars {
			if val := saved[v]; val != nil {
				os.Setenv(v, *val)
			} else {
				os.Unsetenv(v)
			}
		}
	})

	It("should default to colors and nothing else", func() {
		env, err := cli.LoadEnv()
		Expect(err).NotTo(HaveOccurred())
		Expect(env).To(Equal(cli.Env{Color: true}))
	})

	It("should read the prefixed variables", func() {
		os.Setenv("GRIDCHART_DEBUG_LOG_DIRECTORY", "/tmp/logs")
		os.Setenv("GRIDCHART_THEME", "dark.yaml")
		os.Setenv("GRIDCHART_COLOR", "false")
		env, err := cli.LoadEnv()
		Expect(err).NotTo(HaveOccurred())
		Expect(env).To(Equal(cli.Env{DebugLogDirectory: "/tmp/logs", Theme: "dark.yaml", Color: false}))
	})

	It("should refuse malformed values", func() {
		os.Setenv("GRIDCHART_COLOR", "sometimes")
		_, err := cli.LoadEnv()
		Expect(err).To(HaveOccurred())
	})

	It("should combine the environment and the flags for colors", func() {
		c := &cli.Command{Env: cli.Env{Color: true}}
		Expect(c.Colorized()).To(BeTrue())
		c.Flags.NoColor = true
		Expect(c.Colorized()).To(BeFalse())
	})
})
