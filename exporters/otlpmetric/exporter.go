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

// Package otlpmetric exports collected metrics to an OTLP-compatible
// receiver over HTTP/protobuf, retrying transient failures with a
// capped exponential backoff.
package otlpmetric // import "github.com/otelworks/metricsdk/exporters/otlpmetric"

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	colmetricpb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"

	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// ErrShutdown is returned by ExportBatch once Shutdown has completed.
var ErrShutdown = errors.New("otlpmetric: exporter is shut down")

// Exporter transforms ResourceMetrics to OTLP and uploads them via a
// Transport, retrying transient failures.
type Exporter struct {
	transport Transport
	maxRetry  time.Duration

	shutdown atomic.Bool
}

// New returns an Exporter configured by opts, uploading over HTTP.
func New(opts ...Option) *Exporter {
	c := newConfig(opts)
	return &Exporter{transport: newHTTPTransport(c), maxRetry: c.maxRetry}
}

// newWithTransport is used by tests to inject a fake Transport.
func newWithTransport(t Transport, maxRetry time.Duration) *Exporter {
	return &Exporter{transport: t, maxRetry: maxRetry}
}

// ExportBatch converts rm to OTLP and uploads it, retrying transient
// failures (5xx, 429, connection errors) with exponential backoff bounded
// by the exporter's configured max retry duration.
func (e *Exporter) ExportBatch(ctx context.Context, rm *metricdata.ResourceMetrics) error {
	if e.shutdown.Load() {
		return ErrShutdown
	}

	req := &colmetricpb.ExportMetricsServiceRequest{
		ResourceMetrics: []*metricspb.ResourceMetrics{transformResourceMetrics(*rm)},
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = e.maxRetry
	return backoff.Retry(func() error {
		err := e.transport.Upload(ctx, req)
		if err == nil {
			return nil
		}
		var retryable retryableError
		if errors.As(err, &retryable) {
			return err
		}
		return backoff.Permanent(err)
	}, backoff.WithContext(bo, ctx))
}

// ForceFlush is a no-op: ExportBatch uploads synchronously and does not
// buffer.
func (e *Exporter) ForceFlush(context.Context) error { return nil }

// Shutdown marks the exporter unusable. It is idempotent.
func (e *Exporter) Shutdown(context.Context) error {
	e.shutdown.Store(true)
	return nil
}
