/*
Copyright 2020 The Kubernetes Authors.

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

package cli

import (
	"fmt"
	"io"
)

// IOStreams are the standard streams a command reads from and writes to.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
}

// Flags are the options shared by every gridchart command.
type Flags struct {
	// ThemeFile overrides the built-in theme layers.
	ThemeFile string
	// Output is the format of serialized settings: json or yaml.
	Output string
	// NoColor disables colored output.
	NoColor bool
	// Warnings prints chart diagnostics to ErrOut.
	Warnings bool
}

// Command carries what every subcommand needs once the root command has
// completed its options.
type Command struct {
	Streams IOStreams
	Flags   Flags
	Env     Env
}

// Colorized reports whether output should be colored.
func (c *Command) Colorized() bool {
	return c.Env.Color && !c.Flags.NoColor
}

func (c *Command) Fprintf(format string, args ...interface{}) {
	fmt.Fprintf(c.Streams.Out, format, args...)
}

func (c *Command) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(c.Streams.ErrOut, format, args...)
}
