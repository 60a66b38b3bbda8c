// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cybrota/avlindex/tree"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "avlindex"

// Metrics counts index activity on a private registry. It doubles as the
// tree's rotation observer.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	rotations  *prometheus.CounterVec
	filtered   prometheus.Counter
	nodes      prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "Index operations by kind and outcome.",
		}, []string{"op", "outcome"}),
		rotations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rotations_total",
			Help:      "Tree rotations by direction.",
		}, []string{"direction"}),
		filtered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "filtered_lookups_total",
			Help:      "Lookups answered by the bloom filter without touching the tree.",
		}),
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "nodes",
			Help:      "Live nodes in the tree.",
		}),
	}
	m.registry.MustRegister(m.operations, m.rotations, m.filtered, m.nodes)
	return m
}

// Rotated implements tree.Observer.
func (m *Metrics) Rotated(dir tree.Direction) {
	m.rotations.WithLabelValues(dir.String()).Inc()
}

func (m *Metrics) observe(op string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.operations.WithLabelValues(op, outcome).Inc()
}

type metricSample struct {
	Name   string
	Labels string
	Value  float64
}

// Snapshot gathers every sample, sorted by name then labels.
func (m *Metrics) Snapshot() ([]metricSample, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var samples []metricSample
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			pairs := make([]string, 0, len(metric.GetLabel()))
			for _, lp := range metric.GetLabel() {
				pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
			}

			value := metric.GetCounter().GetValue()
			if g := metric.GetGauge(); g != nil {
				value = g.GetValue()
			}
			samples = append(samples, metricSample{
				Name:   mf.GetName(),
				Labels: strings.Join(pairs, ","),
				Value:  value,
			})
		}
	}

	sort.Slice(samples, func(i, j int) bool {
		if samples[i].Name != samples[j].Name {
			return samples[i].Name < samples[j].Name
		}
		return samples[i].Labels < samples[j].Labels
	})
	return samples, nil
}
