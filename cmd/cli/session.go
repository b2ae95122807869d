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

package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"sigs.k8s.io/gridchart/chart"
	"sigs.k8s.io/gridchart/chart/style"
)

// ErrUnknownCommand is returned for input no session command matches.
var ErrUnknownCommand = errors.New("unknown command")

// SessionCommand describes one command of a Session.
type SessionCommand struct {
	Name    string
	Args    string
	Summary string
	// TakesPath is set for commands whose first argument is a settings
	// path.
	TakesPath bool

	run func(s *Session, args []string) (string, error)
}

var sessionCommands []SessionCommand

func init() {
	// filled here since help refers back to the list
	sessionCommands = []SessionCommand{
		{Name: "set", Args: "<path> <value>", Summary: "set a value (YAML syntax)", TakesPath: true, run: (*Session).set},
		{Name: "unset", Args: "<path>", Summary: "remove a value", TakesPath: true, run: (*Session).unset},
		{Name: "get", Args: "<path>", Summary: "print a value", TakesPath: true, run: (*Session).get},
		{Name: "show", Summary: "print the settings", run: (*Session).show},
		{Name: "resolved", Summary: "print the settings the chart ends up with", run: (*Session).resolved},
		{Name: "render", Summary: "draw the chart as text", run: (*Session).render},
		{Name: "save", Args: "<file>", Summary: "write the settings to a file", run: (*Session).save},
		{Name: "types", Summary: "list the chart types", run: (*Session).types},
		{Name: "help", Summary: "list the commands", run: (*Session).help},
	}
}

// SessionCommands returns the commands a Session understands.
func SessionCommands() []SessionCommand {
	return append([]SessionCommand(nil), sessionCommands...)
}

func lookupCommand(name string) (SessionCommand, bool) {
	for _, c := range sessionCommands {
		if c.Name == name {
			return c, true
		}
	}
	return SessionCommand{}, false
}

// Session edits chart settings one command at a time.
type Session struct {
	Settings style.Settings
	Theme    style.Theme

	// Output and Colorized control how values are printed.
	Output    string
	Colorized bool

	// Width and Height size text previews, in cells.
	Width, Height float64
}

// NewSession starts editing settings, which may be nil.
func NewSession(settings style.Settings, theme style.Theme) *Session {
	if settings == nil {
		settings = style.Settings{}
	}
	return &Session{
		Settings: settings,
		Theme:    theme,
		Output:   OutputYAML,
		Width:    80,
		Height:   24,
	}
}

// Execute runs one line of input and returns what to print.
func (s *Session) Execute(line string) (string, error) {
	name, rest := splitWord(strings.TrimSpace(line))
	if name == "" {
		return "", nil
	}
	cmd, ok := lookupCommand(name)
	if !ok {
		return "", fmt.Errorf("%w %q (hint: try %q)", ErrUnknownCommand, name, "help")
	}
	var args []string
	switch {
	case cmd.Name == "set":
		path, value := splitWord(rest)
		args = []string{path, value}
	case rest != "":
		args = []string{rest}
	}
	return cmd.run(s, args)
}

// splitWord splits off the first space separated word.
func splitWord(text string) (string, string) {
	i := strings.IndexAny(text, " \t")
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i+1:])
}

func arg(args []string, i int, what string) (string, error) {
	if i >= len(args) || args[i] == "" {
		return "", fmt.Errorf("missing %s", what)
	}
	return args[i], nil
}

func (s *Session) set(args []string) (string, error) {
	path, err := arg(args, 0, "path")
	if err != nil {
		return "", err
	}
	text, err := arg(args, 1, "value")
	if err != nil {
		return "", err
	}
	v, err := ParseValue(text)
	if err != nil {
		return "", err
	}
	if err := SetPath(s.Settings, path, v); err != nil {
		return "", err
	}
	return "", nil
}

func (s *Session) unset(args []string) (string, error) {
	path, err := arg(args, 0, "path")
	if err != nil {
		return "", err
	}
	if !UnsetPath(s.Settings, path) {
		return "", fmt.Errorf("%w: nothing at %q", ErrBadPath, path)
	}
	return "", nil
}

func (s *Session) get(args []string) (string, error) {
	path, err := arg(args, 0, "path")
	if err != nil {
		return "", err
	}
	v, ok := GetPath(s.Settings, path)
	if !ok {
		return "", fmt.Errorf("%w: nothing at %q", ErrBadPath, path)
	}
	return FormatValue(v, s.Output, s.Colorized)
}

func (s *Session) show([]string) (string, error) {
	return FormatSettings(s.Settings, s.Output, s.Colorized)
}

func (s *Session) renderer() *Renderer {
	return &Renderer{Theme: s.Theme, Settings: s.Settings, Width: s.Width, Height: s.Height}
}

func (s *Session) resolved([]string) (string, error) {
	out, err := s.renderer().Resolved()
	if err != nil {
		return "", err
	}
	return FormatSettings(out, s.Output, s.Colorized)
}

func (s *Session) render([]string) (string, error) {
	return s.renderer().Text()
}

func (s *Session) save(args []string) (string, error) {
	path, err := arg(args, 0, "file")
	if err != nil {
		return "", err
	}
	text, err := FormatSettings(s.Settings, s.Output, false)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return "", fmt.Errorf("unable to save settings: %w", err)
	}
	return fmt.Sprintf("saved to %s", path), nil
}

func (s *Session) types([]string) (string, error) {
	return strings.Join(chart.Types(), "\n"), nil
}

func (s *Session) help([]string) (string, error) {
	lines := make([]string, 0, len(sessionCommands))
	for _, c := range sessionCommands {
		usage := c.Name
		if c.Args != "" {
			usage += " " + c.Args
		}
		usage = fmt.Sprintf("%-22s", usage)
		lines = append(lines, Highlight(usage, s.Colorized)+" "+Hint(c.Summary, s.Colorized))
	}
	return strings.Join(lines, "\n"), nil
}

// PathsWithPrefix lists the settings paths starting with prefix, for
// completion.
func (s *Session) PathsWithPrefix(prefix string) []string {
	var out []string
	for _, p := range Paths(s.Settings) {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
