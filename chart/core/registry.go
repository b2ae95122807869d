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

package core

import (
	"k8s.io/apimachinery/pkg/util/sets"

	"sigs.k8s.io/gridchart/debug"
)

// SeriesFactory creates an empty series.
type SeriesFactory func() Series

// Registry maps series type names to factories.
type Registry struct {
	types     sets.String
	factories map[string]SeriesFactory
}

func NewRegistry() *Registry {
	return &Registry{
		types:     sets.NewString(),
		factories: map[string]SeriesFactory{},
	}
}

// Register adds (or replaces) the factory for typ.
func (r *Registry) Register(typ string, f SeriesFactory) {
	r.types.Insert(typ)
	r.factories[typ] = f
}

func (r *Registry) Has(typ string) bool { return r.types.Has(typ) }

// Types returns the registered names, sorted.
func (r *Registry) Types() []string { return r.types.List() }

// New creates a series of type typ.  Unknown types are reported through
// debug.Warning and yield false.
func (r *Registry) New(typ string) (Series, bool) {
	if !r.types.Has(typ) {
		debug.Warning(debug.SeriesTypeNotSupported, typ)
		return nil, false
	}
	return r.factories[typ](), true
}
