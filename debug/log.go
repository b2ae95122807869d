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

package debug

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// if this directory is defined, the loggers will write into it
// (debug.log and error.log are initialized lazily on first use)
const (
	DebugLogDirEnv = "GRIDCHART_DEBUG_LOG_DIRECTORY"
)

var (
	lock         sync.Mutex
	cleanupFuncs = make([]LoggerCleanupFunc, 0)

	// logDir overrides the environment when set through SetLogDirectory.
	logDir string

	debugOnce, errorOnce     sync.Once
	debugLogger, errorLogger *log.Logger
)

type LoggerCleanupFunc func()

func initNoopLogger() *log.Logger {
	return log.New(io.Discard, "", log.Llongfile)
}

func registerCleanupFunc(cleanup func()) {
	lock.Lock()
	defer lock.Unlock()
	cleanupFuncs = append(cleanupFuncs, cleanup)
}

// SetLogDirectory points new loggers at the given directory instead of the
// one named by GRIDCHART_DEBUG_LOG_DIRECTORY.  It only affects loggers that
// haven't been created yet.
func SetLogDirectory(dir string) {
	lock.Lock()
	defer lock.Unlock()
	logDir = dir
}

func logDirectory() string {
	lock.Lock()
	defer lock.Unlock()
	if logDir != "" {
		return logDir
	}
	return os.Getenv(DebugLogDirEnv)
}

// Teardown closes every log file opened so far.
func Teardown() {
	lock.Lock()
	funcs := cleanupFuncs
	cleanupFuncs = nil
	lock.Unlock()
	for _, f := range funcs {
		f()
	}
}

// NewDebugLogger returns a logger writing to logfileName inside the debug log
// directory, or a logger that discards everything if no directory is set.
func NewDebugLogger(logfileName string) *log.Logger {
	lgr := initNoopLogger()
	if l := logDirectory(); l != "" {
		f, err := os.OpenFile(filepath.Join(l, logfileName), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err == nil {
			lgr = log.New(f, "", log.LstdFlags)
			lgr.Printf("%v enabled\n", logfileName)
			registerCleanupFunc(func() {
				f.Close()
			})
		}
	}
	return lgr
}

func debugLog() *log.Logger {
	debugOnce.Do(func() { debugLogger = NewDebugLogger("debug.log") })
	return debugLogger
}

func errorLog() *log.Logger {
	errorOnce.Do(func() { errorLogger = NewDebugLogger("error.log") })
	return errorLogger
}

func Debugf(format string, args ...interface{}) {
	debugLog().Printf(format, args...)
}

func Debugln(args ...interface{}) {
	debugLog().Println(args...)
}

func Errorf(format string, args ...interface{}) {
	errorLog().Printf(format, args...)
}

func Errorln(args ...interface{}) {
	errorLog().Println(args...)
}
