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

package cmd

import (
	"strings"

	"github.com/c-bata/go-prompt"

	"sigs.k8s.io/gridchart/cmd/cli"
)

// Completer suggests session commands, then settings paths for the
// commands that take one.
type Completer struct {
	session *cli.Session
}

func NewCompleter(session *cli.Session) *Completer {
	return &Completer{session: session}
}

func (c *Completer) Complete(d prompt.Document) []prompt.Suggest {
	before := d.TextBeforeCursor()
	if strings.TrimSpace(before) == "" {
		return []prompt.Suggest{}
	}
	words := strings.Fields(before)
	completingFirst := len(words) == 1 && !strings.HasSuffix(before, " ")
	if completingFirst {
		return prompt.FilterHasPrefix(c.commandSuggestions(), words[0], true)
	}

	var cmd *cli.SessionCommand
	for _, sc := range cli.SessionCommands() {
		if sc.Name == words[0] {
			sc := sc
			cmd = &sc
			break
		}
	}
	if cmd == nil || !cmd.TakesPath {
		return []prompt.Suggest{}
	}
	// only the first argument is a path
	switch {
	case len(words) == 1:
		return c.pathSuggestions("")
	case len(words) == 2 && !strings.HasSuffix(before, " "):
		return c.pathSuggestions(words[1])
	}
	return []prompt.Suggest{}
}

func (c *Completer) commandSuggestions() []prompt.Suggest {
	cmds := cli.SessionCommands()
	suggests := make([]prompt.Suggest, len(cmds))
	for i, sc := range cmds {
		suggests[i] = prompt.Suggest{Text: sc.Name, Description: sc.Summary}
	}
	return suggests
}

func (c *Completer) pathSuggestions(prefix string) []prompt.Suggest {
	paths := c.session.PathsWithPrefix(prefix)
	suggests := make([]prompt.Suggest, len(paths))
	for i, p := range paths {
		suggests[i] = prompt.Suggest{Text: p}
	}
	return suggests
}
