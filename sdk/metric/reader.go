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
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/otelworks/metricsdk/internal/global"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// Reader collects aggregated metric data on demand and, if constructed
// with an exporter, hands each collection's snapshot off for export.
// A Reader may be attached to at most one MeterProvider (via
// MeterProvider.AddReader); attaching the same Reader twice, to the same
// or a different provider, fails.
type Reader struct {
	temporality TemporalitySelector
	aggregation AggregationSelector
	exporter    *MetricExporter

	mu       sync.Mutex
	pipeline *pipeline

	attached  atomic.Bool
	shutdown  atomic.Bool
}

// NewReader constructs a Reader. exporter may be nil, in which case
// Collect only returns the snapshot to its caller and performs no export
// (the pull-based use case, e.g. a Prometheus-style scrape endpoint).
func NewReader(exporter *MetricExporter, opts ...ReaderOption) *Reader {
	c := newReaderConfig(opts)
	return &Reader{
		temporality: c.temporality,
		aggregation: c.aggregation,
		exporter:    exporter,
	}
}

// register attaches this Reader to a pipeline created by a MeterProvider.
// It is called once, by MeterProvider.AddReader.
func (r *Reader) register(p *pipeline) error {
	if !r.attached.CompareAndSwap(false, true) {
		return ErrReaderAlreadyAttached
	}
	r.mu.Lock()
	r.pipeline = p
	r.mu.Unlock()
	return nil
}

// Collect gathers the current aggregated state of every instrument
// registered through this Reader's pipeline, and, if an exporter was
// supplied, hands the snapshot to it. It returns the snapshot regardless,
// so pull-based readers can serve it directly.
func (r *Reader) Collect(ctx context.Context) (metricdata.MetricsData, error) {
	if r.shutdown.Load() {
		// Shutdown already ran a final collect; further calls are a no-op,
		// not an error.
		return metricdata.MetricsData{}, nil
	}
	r.mu.Lock()
	p := r.pipeline
	r.mu.Unlock()
	if p == nil {
		return metricdata.MetricsData{}, ErrReaderNotAttached
	}

	data := metricdata.MetricsData{ResourceMetrics: p.produce()}
	if r.exporter != nil {
		for i := range data.ResourceMetrics {
			if err := r.exporter.ExportBatch(ctx, &data.ResourceMetrics[i]); err != nil {
				return data, fmt.Errorf("%w: %w", ErrExportFailed, err)
			}
		}
	}
	return data, nil
}

// ForceFlush flushes the Reader's exporter, if any.
func (r *Reader) ForceFlush(ctx context.Context) error {
	if r.shutdown.Load() {
		return ErrReaderShutdown
	}
	if r.exporter == nil {
		return nil
	}
	return r.exporter.ForceFlush(ctx)
}

// Shutdown performs one final Collect (any error is logged, not returned),
// marks the Reader unusable, and shuts its exporter down. It is idempotent;
// subsequent calls are no-ops returning nil.
func (r *Reader) Shutdown(ctx context.Context) error {
	if r.shutdown.Load() {
		return nil
	}
	if _, err := r.Collect(ctx); err != nil {
		global.Error(err, "final collect on reader shutdown failed")
	}
	if !r.shutdown.CompareAndSwap(false, true) {
		return nil
	}
	if r.exporter == nil {
		return nil
	}
	return r.exporter.Shutdown(ctx)
}
