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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	"sigs.k8s.io/gridchart/chart"
	"sigs.k8s.io/gridchart/chart/grid"
	"sigs.k8s.io/gridchart/chart/style"
	"sigs.k8s.io/gridchart/chart/surface"
	"sigs.k8s.io/gridchart/cmd/cli"
	"sigs.k8s.io/gridchart/term"
)

// sampleTasks is shown when no data file is given.
const sampleTasks = `
- name: Design
  children:
  - {name: Requirements, actualStart: 0, actualEnd: 3}
  - {name: Architecture, actualStart: 2, actualEnd: 6}
  - {name: Review, actualStart: 6, actualEnd: 6, milestone: true}
- name: Build
  children:
  - {name: Storage, actualStart: 6, actualEnd: 14}
  - {name: API, actualStart: 8, actualEnd: 16}
  - {name: CLI, actualStart: 12, actualEnd: 18}
- name: Release
  collapsed: true
  children:
  - {name: Docs, actualStart: 16, actualEnd: 20}
  - {name: Launch, actualStart: 21, actualEnd: 21, milestone: true}
`

// ViewOptions are the flags of "gridchart view".
type ViewOptions struct {
	*GridchartOptions

	dataFile    string
	columnWidth float64
}

// NewViewOptions provides ViewOptions with their flag defaults.
func NewViewOptions(root *GridchartOptions) *ViewOptions {
	return &ViewOptions{GridchartOptions: root, columnWidth: 24}
}

func newCmdView(root *GridchartOptions) *cobra.Command {
	o := NewViewOptions(root)
	cmd := &cobra.Command{
		Use:   "view [options]",
		Short: "Browse tasks in an interactive grid with a timeline",
		Example: `
gridchart view
gridchart view --data tasks.yaml --column-width 30
`,
		RunE: func(c *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(c.Context(), os.Interrupt)
			defer cancel()
			return o.Run(ctx)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&o.dataFile, "data", "d", "", "tasks (a YAML or JSON list) or grid settings; defaults to a sample plan")
	flags.Float64Var(&o.columnWidth, "column-width", o.columnWidth, "width of the name column, in cells")
	return cmd
}

// Settings returns the grid settings for the terminal: the data file or
// the sample, laid out in cells.
func (o *ViewOptions) Settings() (style.Settings, error) {
	raw := []byte(sampleTasks)
	if o.dataFile != "" {
		var err error
		if raw, err = os.ReadFile(o.dataFile); err != nil {
			return nil, fmt.Errorf("unable to read tasks: %w", err)
		}
	}
	s, err := cli.ParseGridSettings(raw)
	if err != nil {
		return nil, err
	}
	cells := style.Settings{
		"headerHeight":       1.0,
		"defaultRowHeight":   1.0,
		"rowStrokeThickness": 0.0,
		"dragHysteresis":     1.0,
	}
	if !s.Has("columnWidth") {
		cells["columnWidth"] = o.columnWidth
	}
	if !s.Has("timeline") {
		cells["timeline"] = style.Settings{}
	}
	return style.Merge(s, cells), nil
}

// Run shows the grid until a quit key is pressed or ctx is done.
func (o *ViewOptions) Run(ctx context.Context) error {
	settings, err := o.Settings()
	if err != nil {
		return err
	}
	c, err := chart.Build(surface.NewStage(0, 0, nil), o.Theme(), settings)
	if err != nil {
		return err
	}
	defer c.Dispose()
	g, ok := c.(*grid.Grid)
	if !ok {
		return fmt.Errorf("expected a grid, got a %q chart", chart.KindOf(c))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	browser := term.NewGridBrowser(g)
	browser.Quit = cancel
	runner := &term.Runner{}
	browser.Attach(runner, clock.RealClock{})
	return runner.Run(ctx, browser.View())
}
