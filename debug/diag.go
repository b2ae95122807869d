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

package debug

import (
	"fmt"
	"sync"
)

// Code identifies the kind of a diagnostic.
type Code int

const (
	// ScaleTypeNotSupported is reported when a scale is requested by an
	// unknown type name.
	ScaleTypeNotSupported Code = iota + 1
	// SeriesTypeNotSupported is reported when a series is requested by an
	// unknown type name.
	SeriesTypeNotSupported
	// UnsupportedSerialization is reported when a function-valued setting
	// is skipped during serialization.
	UnsupportedSerialization
	// InvalidSetting is reported when a setting has the wrong shape or an
	// out-of-range value.
	InvalidSetting
)

func (c Code) String() string {
	switch c {
	case ScaleTypeNotSupported:
		return "ScaleTypeNotSupported"
	case SeriesTypeNotSupported:
		return "SeriesTypeNotSupported"
	case UnsupportedSerialization:
		return "UnsupportedSerialization"
	case InvalidSetting:
		return "InvalidSetting"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Diagnostic is a non-fatal problem noticed while configuring or
// serializing a chart.  The call that produced it keeps its previous state.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Args     []interface{}
}

func (d Diagnostic) String() string {
	sev := "warning"
	if d.Severity == SeverityError {
		sev = "error"
	}
	if len(d.Args) == 0 {
		return fmt.Sprintf("%s: %v", sev, d.Code)
	}
	return fmt.Sprintf("%s: %v %v", sev, d.Code, d.Args)
}

// Reporter receives diagnostics.
type Reporter interface {
	Report(Diagnostic)
}

// ReporterFunc adapts a function to a Reporter.
type ReporterFunc func(Diagnostic)

func (f ReporterFunc) Report(d Diagnostic) {
	f(d)
}

type logReporter struct{}

func (logReporter) Report(d Diagnostic) {
	Errorln(d.String())
}

var (
	reporterMu sync.RWMutex
	reporter   Reporter = logReporter{}
)

// SetReporter installs r as the diagnostics sink and returns a function
// restoring the previous one.
func SetReporter(r Reporter) (restore func()) {
	reporterMu.Lock()
	defer reporterMu.Unlock()
	prev := reporter
	if r == nil {
		r = logReporter{}
	}
	reporter = r
	return func() {
		reporterMu.Lock()
		defer reporterMu.Unlock()
		reporter = prev
	}
}

func report(d Diagnostic) {
	reporterMu.RLock()
	r := reporter
	reporterMu.RUnlock()
	r.Report(d)
}

// Warning reports a warning with the given code and context arguments.
func Warning(code Code, args ...interface{}) {
	report(Diagnostic{Code: code, Severity: SeverityWarning, Args: args})
}

// Error reports an error with the given code and context arguments.  It
// never panics or aborts the caller.
func Error(code Code, args ...interface{}) {
	report(Diagnostic{Code: code, Severity: SeverityError, Args: args})
}
