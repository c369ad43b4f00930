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

package metric_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelworks/metricsdk/sdk/metric"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// blockingExporter lets a test control exactly when ExportBatch returns,
// to exercise MetricExporter.ForceFlush's wait-for-in-flight behavior.
type blockingExporter struct {
	release chan struct{}
	flushed chan struct{}
}

func newBlockingExporter() *blockingExporter {
	return &blockingExporter{release: make(chan struct{}), flushed: make(chan struct{}, 1)}
}

func (b *blockingExporter) ExportBatch(ctx context.Context, _ *metricdata.ResourceMetrics) error {
	<-b.release
	return nil
}
func (b *blockingExporter) ForceFlush(context.Context) error {
	b.flushed <- struct{}{}
	return nil
}
func (b *blockingExporter) Shutdown(context.Context) error { return nil }

func TestMetricExporterForceFlushWaitsForInFlightExport(t *testing.T) {
	be := newBlockingExporter()
	me := metric.NewMetricExporter(be)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = me.ExportBatch(context.Background(), &metricdata.ResourceMetrics{})
	}()

	// Give ExportBatch a moment to mark itself in flight.
	time.Sleep(10 * time.Millisecond)

	flushDone := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		err := me.ForceFlush(ctx)
		assert.NoError(t, err)
		close(flushDone)
	}()

	select {
	case <-be.flushed:
		t.Fatal("ForceFlush must not reach the wrapped exporter while an export is in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(be.release)
	wg.Wait()

	select {
	case <-flushDone:
	case <-time.After(time.Second):
		t.Fatal("ForceFlush did not complete after the in-flight export finished")
	}
}

func TestMetricExporterForceFlushTimesOut(t *testing.T) {
	be := newBlockingExporter()
	me := metric.NewMetricExporter(be)

	go func() { _ = me.ExportBatch(context.Background(), &metricdata.ResourceMetrics{}) }()
	time.Sleep(10 * time.Millisecond)
	defer close(be.release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := me.ForceFlush(ctx)
	require.ErrorIs(t, err, metric.ErrForceFlushTimeout)
}

func TestMetricExporterRejectsCallsAfterShutdown(t *testing.T) {
	be := newBlockingExporter()
	close(be.release)
	me := metric.NewMetricExporter(be)

	require.NoError(t, me.Shutdown(context.Background()))
	require.NoError(t, me.Shutdown(context.Background()), "shutdown must be idempotent")

	err := me.ExportBatch(context.Background(), &metricdata.ResourceMetrics{})
	assert.ErrorIs(t, err, metric.ErrExporterShutdown)
}
