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
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"sigs.k8s.io/gridchart/chart/data/promtext"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/cmd/cli"
)

// RenderOptions are the flags of "gridchart render".
type RenderOptions struct {
	*GridchartOptions

	configFile string
	format     string
	outFile    string
	width      float64
	height     float64
	stats      bool

	promTextFile string
	prom         promtext.Options
}

func newCmdRender(root *GridchartOptions) *cobra.Command {
	o := &RenderOptions{GridchartOptions: root}
	cmd := &cobra.Command{
		Use:   "render [options]",
		Short: "Render a chart once, as SVG or text",
		Example: `
gridchart render --config chart.yaml > chart.svg
gridchart render --config chart.yaml -f text --width 100 --height 30
gridchart render --prom-text metrics.txt --x-label code --y-label handler
gridchart render --config chart.yaml -f settings -o json
`,
		RunE: func(c *cobra.Command, args []string) error {
			if err := o.Validate(); err != nil {
				return err
			}
			return o.Run()
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&o.configFile, "config", "c", "", "chart settings file (YAML or JSON), \"-\" for stdin")
	flags.StringVarP(&o.format, "format", "f", cli.FormatSVG, "output: svg, text, or settings (the resolved settings)")
	flags.StringVar(&o.outFile, "out", "", "write the output to this file instead of stdout")
	flags.Float64Var(&o.width, "width", 0, "width in pixels (svg) or cells (text); defaults to 800 or 80")
	flags.Float64Var(&o.height, "height", 0, "height in pixels (svg) or cells (text); defaults to 600 or 24")
	flags.BoolVar(&o.stats, "stats", false, "if true, prints draw counters to stderr after rendering")
	flags.StringVar(&o.promTextFile, "prom-text", "", "Prometheus text exposition file to plot as a heat map, \"-\" for stdin")
	flags.StringVar(&o.prom.XLabel, "x-label", "", "label used for heat map columns (default: all other labels)")
	flags.StringVar(&o.prom.YLabel, "y-label", "", "label used for heat map rows (default: the metric name)")
	flags.StringVar(&o.prom.Metric, "metric", "", "only plot samples of this metric")
	return cmd
}

// Validate checks the render flags.
func (o *RenderOptions) Validate() error {
	switch o.format {
	case cli.FormatSVG, cli.FormatText, "settings":
	default:
		return fmt.Errorf("unsupported render format %q", o.format)
	}
	if o.configFile == "" && o.promTextFile == "" {
		return fmt.Errorf("nothing to render: pass --config or --prom-text")
	}
	if o.configFile == "-" && o.promTextFile == "-" {
		return fmt.Errorf("--config and --prom-text can't both read stdin")
	}
	if o.width < 0 || o.height < 0 {
		return fmt.Errorf("invalid size %gx%g", o.width, o.height)
	}
	return nil
}

func (o *RenderOptions) size() (float64, float64) {
	w, h := o.width, o.height
	if w == 0 {
		w = 800
		if o.format != cli.FormatSVG {
			w = 80
		}
	}
	if h == 0 {
		h = 600
		if o.format != cli.FormatSVG {
			h = 24
		}
	}
	return w, h
}

func (o *RenderOptions) settings() (style.Settings, error) {
	settings := style.Settings{}
	if o.configFile != "" {
		var err error
		if settings, err = cli.LoadSettings(o.configFile, o.Streams.In); err != nil {
			return nil, err
		}
	}
	if o.promTextFile == "" {
		return settings, nil
	}
	var in io.Reader = o.Streams.In
	if o.promTextFile != "-" {
		f, err := os.Open(o.promTextFile)
		if err != nil {
			return nil, fmt.Errorf("unable to open exposition text: %w", err)
		}
		defer f.Close()
		in = f
	}
	return cli.WithPromText(settings, in, o.prom)
}

// Run renders the chart.
func (o *RenderOptions) Run() error {
	settings, err := o.settings()
	if err != nil {
		return err
	}
	w, h := o.size()
	r := &cli.Renderer{Theme: o.Theme(), Settings: settings, Width: w, Height: h}
	if o.stats {
		r.Registry = prometheus.NewRegistry()
	}

	out := o.Streams.Out
	if o.outFile != "" {
		f, err := os.Create(o.outFile)
		if err != nil {
			return fmt.Errorf("unable to create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch o.format {
	case cli.FormatSVG:
		err = r.SVG(out)
	case cli.FormatText:
		var text string
		if text, err = r.Text(); err == nil {
			_, err = fmt.Fprintln(out, text)
		}
	default:
		var resolved style.Settings
		if resolved, err = r.Resolved(); err == nil {
			var text string
			colorized := o.Colorized() && o.outFile == ""
			if text, err = cli.FormatSettings(resolved, o.Flags.Output, colorized); err == nil {
				_, err = fmt.Fprintln(out, text)
			}
		}
	}
	if err != nil {
		return err
	}
	if o.stats {
		return r.WriteStats(o.Streams.ErrOut)
	}
	return nil
}
