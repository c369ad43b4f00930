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
	"time"

	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// Exporter is the minimal capability a push destination (in-memory store,
// stdout sink, OTLP endpoint) must implement. It is the external
// collaborator a MetricExporter wraps with shutdown gating and
// force-flush tracking.
type Exporter interface {
	ExportBatch(ctx context.Context, rm *metricdata.ResourceMetrics) error
	ForceFlush(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// MetricExporter wraps an Exporter with the push-side bookkeeping every
// Reader needs regardless of destination: rejecting calls after Shutdown,
// and letting ForceFlush wait for an export already in flight to finish
// rather than racing it.
//
// The completion flag below is tracked per MetricExporter instance. An
// earlier design shared one flag across every exporter in a process,
// so ForceFlush on exporter A could be satisfied by an unrelated export
// completing on exporter B; each MetricExporter now owns its own flag.
type MetricExporter struct {
	exporter Exporter

	mu       sync.Mutex
	inFlight bool
	done     atomic.Bool

	shutdown atomic.Bool
}

// NewMetricExporter wraps exporter for use by a Reader.
func NewMetricExporter(exporter Exporter) *MetricExporter {
	e := &MetricExporter{exporter: exporter}
	e.done.Store(true)
	return e
}

// ExportBatch forwards rm to the wrapped Exporter, tracking completion
// for ForceFlush to observe.
func (e *MetricExporter) ExportBatch(ctx context.Context, rm *metricdata.ResourceMetrics) error {
	if e.shutdown.Load() {
		return ErrExporterShutdown
	}

	e.mu.Lock()
	e.inFlight = true
	e.done.Store(false)
	e.mu.Unlock()

	err := e.exporter.ExportBatch(ctx, rm)

	e.mu.Lock()
	e.inFlight = false
	e.done.Store(true)
	e.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}
	return nil
}

// ForceFlush blocks until any export currently in flight on this
// MetricExporter completes, then flushes the wrapped Exporter. It polls
// its own completion flag at a 1ms interval and returns
// ErrForceFlushTimeout if ctx expires first.
func (e *MetricExporter) ForceFlush(ctx context.Context) error {
	if e.shutdown.Load() {
		return ErrExporterShutdown
	}

	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		e.mu.Lock()
		inFlight := e.inFlight
		e.mu.Unlock()
		if !inFlight {
			break
		}
		select {
		case <-ctx.Done():
			return ErrForceFlushTimeout
		case <-ticker.C:
		}
	}
	return e.exporter.ForceFlush(ctx)
}

// Shutdown marks the MetricExporter unusable and shuts down the wrapped
// Exporter. It is idempotent.
func (e *MetricExporter) Shutdown(ctx context.Context) error {
	if !e.shutdown.CompareAndSwap(false, true) {
		return nil
	}
	return e.exporter.Shutdown(ctx)
}
