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
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable gridchart reads.
const EnvPrefix = "GRIDCHART"

// Env is the environment gridchart reads on startup.
type Env struct {
	// DebugLogDirectory receives debug.log and error.log when set.
	DebugLogDirectory string `envconfig:"DEBUG_LOG_DIRECTORY"`
	// Theme names a theme file used when --theme isn't given.
	Theme string `envconfig:"THEME"`
	// Color enables colored output.
	Color bool `envconfig:"COLOR" default:"true"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, fmt.Errorf("unable to read %s_* environment: %w", EnvPrefix, err)
	}
	return env, nil
}
