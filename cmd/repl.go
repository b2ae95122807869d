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

package cmd

import (
	"fmt"
	"io"

	"github.com/c-bata/go-prompt"
	"github.com/spf13/cobra"

	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/cmd/cli"
)

// ReplOptions are the flags of "gridchart repl".
type ReplOptions struct {
	*GridchartOptions

	configFile string
	chartType  string
	width      float64
	height     float64
}

func newCmdRepl(root *GridchartOptions) *cobra.Command {
	o := &ReplOptions{GridchartOptions: root}
	cmd := &cobra.Command{
		Use:   "repl [options]",
		Short: "Edit chart settings interactively and preview the result",
		Example: `
gridchart repl --config chart.yaml
gridchart repl --type scatter
>>> set series.0 {type: line, data: [{x: 1, y: 2}, {x: 2, y: 3}]}
>>> render
>>> save chart.yaml
`,
		RunE: func(c *cobra.Command, args []string) error {
			session, err := o.Session()
			if err != nil {
				return err
			}
			o.run(session)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&o.configFile, "config", "c", "", "chart settings file to start from")
	flags.StringVar(&o.chartType, "type", "", "chart type to start from when no config is given")
	flags.Float64Var(&o.width, "width", 80, "width of text previews, in cells")
	flags.Float64Var(&o.height, "height", 24, "height of text previews, in cells")
	return cmd
}

// Session creates the editing session described by the flags.
func (o *ReplOptions) Session() (*cli.Session, error) {
	settings := style.Settings{}
	if o.configFile != "" {
		var err error
		if settings, err = cli.LoadSettings(o.configFile, o.Streams.In); err != nil {
			return nil, err
		}
	}
	if o.chartType != "" {
		settings["type"] = o.chartType
	}
	s := cli.NewSession(settings, o.Theme())
	s.Output = o.Flags.Output
	s.Colorized = o.Colorized()
	s.Width, s.Height = o.width, o.height
	return s, nil
}

// promptExecutor is the hook for the interactive prompt: exit words end
// the session, everything else is a session command.
func promptExecutor(out io.Writer, session *cli.Session) prompt.Executor {
	return func(qs string) {
		if cli.ExitFunc(out, qs) {
			return
		}
		res, err := session.Execute(qs)
		if err != nil {
			fmt.Fprintln(out, cli.Failure(err.Error(), session.Colorized))
			return
		}
		if res != "" {
			fmt.Fprintln(out, res)
		}
	}
}

func (o *ReplOptions) run(session *cli.Session) {
	p := prompt.New(
		// this is the thing that gets called when 'enter' is pressed
		promptExecutor(o.Streams.Out, session),
		NewCompleter(session).Complete,
		prompt.OptionTitle("gridchart: interactive chart settings editor"),
		prompt.OptionPrefix(">>> "),
		prompt.OptionPrefixTextColor(prompt.Cyan),
		prompt.OptionInputTextColor(prompt.Yellow),
		prompt.OptionSetExitCheckerOnInput(func(in string, breakline bool) bool {
			return breakline && cli.IsExit(in)
		}),
	)
	// wait for input
	p.Run()
}
