// Copyright The OpenTelemetry Authors
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

package metric // import "github.com/otelworks/metricsdk/sdk/metric"

import (
	"sync"

	"github.com/otelworks/metricsdk/sdk/instrumentation"
	"github.com/otelworks/metricsdk/sdk/metric/internal/aggregate"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
	"github.com/otelworks/metricsdk/sdk/resource"
)

// aggregator is the type-erased handle a pipeline keeps for one
// instrument: it snapshots whatever concrete aggregate.ComputeAggregation
// was built for that instrument's numeric type.
type aggregator struct {
	inst    Instrument
	compute aggregate.ComputeAggregation
	data    metricdata.Aggregation
}

// pipeline is the per-reader registry of every instrument that reader has
// observed. An instrument registers one aggregator per attached reader at
// creation time (each reader may have chosen a different temporality or
// aggregation), so collecting one reader never disturbs another's state.
type pipeline struct {
	resource *resource.Resource

	mu    sync.Mutex
	scope map[instrumentation.Scope][]*aggregator
}

func newPipeline(res *resource.Resource) *pipeline {
	return &pipeline{
		resource: res,
		scope:    make(map[instrumentation.Scope][]*aggregator),
	}
}

// addAggregator registers an instrument's compute function under scope.
func (p *pipeline) addAggregator(scope instrumentation.Scope, inst Instrument, compute aggregate.ComputeAggregation) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scope[scope] = append(p.scope[scope], &aggregator{inst: inst, compute: compute})
}

// produce snapshots every registered aggregator into one ResourceMetrics
// per Meter scope that has at least one instrument with data to report,
// each sharing the pipeline's single Resource.
func (p *pipeline) produce() []metricdata.ResourceMetrics {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]metricdata.ResourceMetrics, 0, len(p.scope))
	for scope, aggs := range p.scope {
		sm := metricdata.ScopeMetrics{Scope: scope, Metrics: make([]metricdata.Metrics, 0, len(aggs))}
		for _, a := range aggs {
			n := a.compute(&a.data)
			if n == 0 {
				continue
			}
			sm.Metrics = append(sm.Metrics, metricdata.Metrics{
				Name:        a.inst.Name,
				Description: a.inst.Description,
				Unit:        a.inst.Unit,
				Data:        a.data,
			})
		}
		if len(sm.Metrics) == 0 {
			continue
		}
		out = append(out, metricdata.ResourceMetrics{
			Resource:     p.resource,
			ScopeMetrics: []metricdata.ScopeMetrics{sm},
		})
	}
	return out
}
