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

package main

import (
	"context"
	"os"

	"sigs.k8s.io/gridchart/cmd"
	"sigs.k8s.io/gridchart/cmd/cli"
	"sigs.k8s.io/gridchart/debug"
)

func main() {
	root := cmd.NewCmdGridchart(cli.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr})
	err := root.ExecuteContext(context.Background())
	debug.Teardown()
	if err != nil {
		os.Exit(1)
	}
}
