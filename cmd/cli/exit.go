/*
Copyright 2019 The Kubernetes Authors.

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
	"math/rand"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
)

var (
	exitStrings = sets.NewString("q", "quit", "exit", ":q", ":quit")

	exitNotes = []string{
		"\nAll rows collapsed.",
		"\nNo more ticks to nice.",
		"\nThe legend has left the chart.",
		"\nEvery series disposed, every scale kept.",
		"\nRedraw requested, screen declined.",
	}
)

// IsExit reports whether the prompt input asks to leave.
func IsExit(qs string) bool {
	return exitStrings.Has(strings.TrimSpace(qs))
}

// ExitFunc prints a parting note to out and reports true when qs is an
// exit word.
func ExitFunc(out io.Writer, qs string) bool {
	if !IsExit(qs) {
		return false
	}
	r := rand.New(rand.NewSource(time.Now().Unix()))
	fmt.Fprintln(out, exitNotes[r.Intn(len(exitNotes))])
	return true
}
