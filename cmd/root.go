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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/cmd/cli"
	"sigs.k8s.io/gridchart/debug"
)

// GridchartOptions holds what every subcommand shares.
type GridchartOptions struct {
	cli.Command
	theme style.Theme
}

// NewGridchartOptions provides an instance of GridchartOptions
func NewGridchartOptions(streams cli.IOStreams) *GridchartOptions {
	return &GridchartOptions{
		Command: cli.Command{Streams: streams},
	}
}

func addFlags(flags *pflag.FlagSet, options *GridchartOptions) {
	flags.StringVar(&options.Flags.ThemeFile, "theme", "", "theme file (YAML or JSON) layered over the built-in theme; defaults to $GRIDCHART_THEME")
	flags.StringVarP(&options.Flags.Output, "output", "o", cli.OutputYAML, "format of printed settings: json or yaml")
	flags.BoolVar(&options.Flags.NoColor, "no-color", false, "if true, never colors output")
	flags.BoolVar(&options.Flags.Warnings, "warnings", false, "if true, prints chart configuration warnings to stderr")
}

// NewCmdGridchart provides the root command with every subcommand attached.
func NewCmdGridchart(streams cli.IOStreams) *cobra.Command {
	o := NewGridchartOptions(streams)
	cmd := &cobra.Command{
		Use:   "gridchart",
		Short: "Draw heat maps, scatter plots and Gantt grids in the terminal or as SVG",
		Example: `
gridchart view                                      # browse a sample project plan
gridchart view --data tasks.yaml                    # browse your own tasks
gridchart render --config chart.yaml > chart.svg    # render a chart as SVG
gridchart render --prom-text metrics.txt -f text    # heat map of scraped metrics
gridchart repl --config chart.yaml                  # edit chart settings interactively
`,
		SilenceUsage: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return o.Complete()
		},
	}
	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)
	cmd.SetErr(streams.ErrOut)

	addFlags(cmd.PersistentFlags(), o)

	cmd.AddCommand(
		newCmdView(o),
		newCmdRender(o),
		newCmdRepl(o),
	)
	return cmd
}

// Complete reads the environment and the theme.
func (o *GridchartOptions) Complete() error {
	env, err := cli.LoadEnv()
	if err != nil {
		return err
	}
	o.Env = env
	if env.DebugLogDirectory != "" {
		debug.SetLogDirectory(env.DebugLogDirectory)
	}
	if o.Flags.Warnings {
		debug.SetReporter(debug.ReporterFunc(o.report))
	}

	themeFile := o.Flags.ThemeFile
	if themeFile == "" {
		themeFile = env.Theme
	}
	o.theme, err = cli.LoadTheme(themeFile)
	if err != nil {
		return err
	}
	return o.Validate()
}

// Validate ensures that all flag values are usable
func (o *GridchartOptions) Validate() error {
	switch o.Flags.Output {
	case cli.OutputJSON, cli.OutputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (want %s or %s)", o.Flags.Output, cli.OutputJSON, cli.OutputYAML)
}

// report prints chart diagnostics to stderr, on top of the error log.
func (o *GridchartOptions) report(d debug.Diagnostic) {
	debug.Errorln(d.String())
	o.Errorf("%s\n", cli.Hint(d.String(), o.Colorized()))
}

// Theme returns the theme loaded by Complete.
func (o *GridchartOptions) Theme() style.Theme { return o.theme }
