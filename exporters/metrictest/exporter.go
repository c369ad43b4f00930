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

// Package metrictest provides an in-memory Exporter for tests: every
// exported ResourceMetrics is deep-copied and appended to an internal
// store that Fetch returns a defensive copy of.
package metrictest // import "github.com/otelworks/metricsdk/exporters/metrictest"

import (
	"context"
	"errors"
	"sync"

	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// ErrShutdown is returned by ExportBatch once Shutdown has completed.
var ErrShutdown = errors.New("metrictest: exporter is shut down")

// Exporter collects every ResourceMetrics handed to ExportBatch for later
// retrieval via Fetch. Its only export failure is ErrShutdown after
// Shutdown; it exists so tests can assert on what a Reader produced
// without a real destination.
type Exporter struct {
	mu       sync.Mutex
	batches  []metricdata.ResourceMetrics
	shutdown bool
}

// New returns a ready-to-use Exporter.
func New() *Exporter {
	return &Exporter{}
}

// ExportBatch deep-copies rm and appends it to the store.
func (e *Exporter) ExportBatch(_ context.Context, rm *metricdata.ResourceMetrics) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return ErrShutdown
	}
	e.batches = append(e.batches, copyResourceMetrics(*rm))
	return nil
}

// ForceFlush is a no-op: ExportBatch never buffers.
func (e *Exporter) ForceFlush(context.Context) error { return nil }

// Shutdown marks the exporter unusable. It is idempotent.
func (e *Exporter) Shutdown(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdown = true
	return nil
}

// Fetch returns a defensive copy of every batch exported so far, in
// export order.
func (e *Exporter) Fetch() []metricdata.ResourceMetrics {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]metricdata.ResourceMetrics, len(e.batches))
	for i, rm := range e.batches {
		out[i] = copyResourceMetrics(rm)
	}
	return out
}

// Reset discards every stored batch, without affecting shutdown state.
func (e *Exporter) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.batches = nil
}

func copyResourceMetrics(rm metricdata.ResourceMetrics) metricdata.ResourceMetrics {
	out := rm
	out.ScopeMetrics = make([]metricdata.ScopeMetrics, len(rm.ScopeMetrics))
	for i, sm := range rm.ScopeMetrics {
		out.ScopeMetrics[i] = copyScopeMetrics(sm)
	}
	return out
}

func copyScopeMetrics(sm metricdata.ScopeMetrics) metricdata.ScopeMetrics {
	out := sm
	out.Metrics = make([]metricdata.Metrics, len(sm.Metrics))
	for i, m := range sm.Metrics {
		out.Metrics[i] = copyMetrics(m)
	}
	return out
}

func copyMetrics(m metricdata.Metrics) metricdata.Metrics {
	out := m
	out.Data = copyAggregation(m.Data)
	return out
}

func copyAggregation(agg metricdata.Aggregation) metricdata.Aggregation {
	switch a := agg.(type) {
	case metricdata.Sum[int64]:
		a.DataPoints = append([]metricdata.DataPoint[int64]{}, a.DataPoints...)
		return a
	case metricdata.Sum[float64]:
		a.DataPoints = append([]metricdata.DataPoint[float64]{}, a.DataPoints...)
		return a
	case metricdata.Gauge[int64]:
		a.DataPoints = append([]metricdata.DataPoint[int64]{}, a.DataPoints...)
		return a
	case metricdata.Gauge[float64]:
		a.DataPoints = append([]metricdata.DataPoint[float64]{}, a.DataPoints...)
		return a
	case metricdata.Histogram[int64]:
		a.DataPoints = append([]metricdata.HistogramDataPoint[int64]{}, a.DataPoints...)
		for i, dp := range a.DataPoints {
			a.DataPoints[i].Bounds = append([]float64{}, dp.Bounds...)
			a.DataPoints[i].BucketCounts = append([]uint64{}, dp.BucketCounts...)
		}
		return a
	case metricdata.Histogram[float64]:
		a.DataPoints = append([]metricdata.HistogramDataPoint[float64]{}, a.DataPoints...)
		for i, dp := range a.DataPoints {
			a.DataPoints[i].Bounds = append([]float64{}, dp.Bounds...)
			a.DataPoints[i].BucketCounts = append([]uint64{}, dp.BucketCounts...)
		}
		return a
	default:
		return agg
	}
}
