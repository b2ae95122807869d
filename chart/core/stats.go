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
	"math"

	"github.com/aclements/go-moremath/stats"
)

// Stats summarizes the numeric values of one series or of a whole chart.
// NaN values are not counted.
type Stats struct {
	Min, Max     float64
	Sum, Average float64
	Count        int
}

// ComputeStats summarizes values.  An empty summary has NaN bounds and
// average and a zero sum.
func ComputeStats(values []float64) Stats {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		nan := math.NaN()
		return Stats{Min: nan, Max: nan, Average: nan}
	}
	sample := stats.Sample{Xs: xs}
	lo, hi := sample.Bounds()
	return Stats{
		Min:     lo,
		Max:     hi,
		Sum:     sample.Sum(),
		Average: sample.Mean(),
		Count:   len(xs),
	}
}

// Fields exposes the summary to templates and computed style values under
// the given prefix, e.g. "seriesMax" for prefix "series".
func (s Stats) Fields(prefix string, into map[string]interface{}) {
	into[prefix+"Min"] = s.Min
	into[prefix+"Max"] = s.Max
	into[prefix+"Sum"] = s.Sum
	into[prefix+"Average"] = s.Average
	into[prefix+"Count"] = s.Count
}
