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

// Package stdoutmetric provides an Exporter that writes every collected
// ResourceMetrics to a logr.Logger as structured fields, instead of to a
// network destination.
package stdoutmetric // import "github.com/otelworks/metricsdk/exporters/stdoutmetric"

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// ErrShutdown is returned by ExportBatch once Shutdown has completed.
var ErrShutdown = errors.New("stdoutmetric: exporter is shut down")

// Exporter writes ResourceMetrics to a configured logr.Logger.
type Exporter struct {
	logger   logr.Logger
	shutdown atomic.Bool
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithLogger overrides the default logger, which is stdr.New(nil).
func WithLogger(l logr.Logger) Option {
	return func(e *Exporter) { e.logger = l }
}

// New returns a ready-to-use Exporter.
func New(opts ...Option) *Exporter {
	e := &Exporter{logger: stdr.New(nil)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportBatch logs one line per instrument in rm at info level.
func (e *Exporter) ExportBatch(_ context.Context, rm *metricdata.ResourceMetrics) error {
	if e.shutdown.Load() {
		return ErrShutdown
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			e.logger.Info("metric",
				"scope", sm.Scope.Name,
				"name", m.Name,
				"unit", m.Unit,
				"points", pointCount(m.Data),
			)
		}
	}
	return nil
}

// ForceFlush is a no-op: writes to the logger are unbuffered.
func (e *Exporter) ForceFlush(context.Context) error { return nil }

// Shutdown marks the exporter unusable. It is idempotent.
func (e *Exporter) Shutdown(context.Context) error {
	e.shutdown.Store(true)
	return nil
}

func pointCount(agg metricdata.Aggregation) int {
	switch a := agg.(type) {
	case metricdata.Sum[int64]:
		return len(a.DataPoints)
	case metricdata.Sum[float64]:
		return len(a.DataPoints)
	case metricdata.Gauge[int64]:
		return len(a.DataPoints)
	case metricdata.Gauge[float64]:
		return len(a.DataPoints)
	case metricdata.Histogram[int64]:
		return len(a.DataPoints)
	case metricdata.Histogram[float64]:
		return len(a.DataPoints)
	default:
		return 0
	}
}
