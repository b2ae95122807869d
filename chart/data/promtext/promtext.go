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

// Package promtext turns Prometheus text exposition into chart records, one
// record per sample, laid out for a heat map: one axis per label.
package promtext

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/model/textparse"

	"sigs.k8s.io/gridchart/chart/data"
)

// Record fields produced by Load.  They match the fields heat series read.
const (
	FieldX      = "x"
	FieldY      = "y"
	FieldHeat   = "heat"
	FieldMetric = "metric"
)

// Options selects which labels become the heat map axes.
type Options struct {
	// XLabel names the label used for x.  Empty means every label but
	// the metric name, rendered as "k=v,...".
	XLabel string
	// YLabel names the label used for y.  Empty means the metric name.
	YLabel string
	// Metric keeps only series with this metric name when set.
	Metric string
}

// Load parses the exposition format read from r.
func Load(r io.Reader, opts Options) (*data.Set, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read exposition text: %w", err)
	}
	rows, err := Parse(raw, opts)
	if err != nil {
		return nil, err
	}
	return data.NewSet(rows...), nil
}

// Parse is Load for text already in memory.
func Parse(text []byte, opts Options) ([]data.Row, error) {
	p := textparse.NewPromParser(text)
	var rows []data.Row
	for {
		entry, err := p.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to parse exposition text: %w", err)
		}
		if entry != textparse.EntrySeries {
			continue
		}
		_, _, value := p.Series()
		if math.IsNaN(value) {
			continue
		}
		var lset labels.Labels
		p.Metric(&lset)

		name := lset.Get(labels.MetricName)
		if opts.Metric != "" && name != opts.Metric {
			continue
		}
		rows = append(rows, data.Row{
			FieldX:      xValue(lset, opts.XLabel),
			FieldY:      yValue(lset, opts.YLabel, name),
			FieldHeat:   value,
			FieldMetric: name,
		})
	}
	return rows, nil
}

func xValue(lset labels.Labels, label string) string {
	if label != "" {
		return lset.Get(label)
	}
	var parts []string
	lset.Range(func(l labels.Label) {
		if l.Name == labels.MetricName {
			return
		}
		parts = append(parts, l.Name+"="+l.Value)
	})
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func yValue(lset labels.Labels, label, name string) string {
	if label != "" {
		return lset.Get(label)
	}
	return name
}
