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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/exporters/metrictest"
	"github.com/otelworks/metricsdk/sdk/metric"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// TestScenarioCounterTwoAttributeSets exercises the literal counter
// scenario: add(10, {}); add(5, {k:v}); add(7, {k:v}) must yield two data
// points, 10 and 12.
func TestScenarioCounterTwoAttributeSets(t *testing.T) {
	p := metric.NewMeterProvider()
	reader := metric.NewReader(nil)
	require.NoError(t, p.AddReader(reader))
	m, err := p.Meter("svc")
	require.NoError(t, err)
	counter, err := m.Int64Counter("requests")
	require.NoError(t, err)

	ctx := context.Background()
	kv := attribute.NewSet(attribute.String("k", "v"))
	require.NoError(t, counter.Add(ctx, 10, attribute.Empty()))
	require.NoError(t, counter.Add(ctx, 5, kv))
	require.NoError(t, counter.Add(ctx, 7, kv))

	data, err := reader.Collect(ctx)
	require.NoError(t, err)
	sum := data.ResourceMetrics[0].ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 2)

	byAttrs := map[int]int64{}
	for _, dp := range sum.DataPoints {
		byAttrs[dp.Attributes.Len()] = dp.Value
	}
	assert.Equal(t, int64(10), byAttrs[0])
	assert.Equal(t, int64(12), byAttrs[1])
}

// TestScenarioHistogramDefaultBoundaries exercises the literal default-
// boundary histogram scenario: recording 1, 5, 15 must yield min=1, max=15,
// sum=21, count=3 and bucket_counts=[0,2,0,1,0,...,0] (15 bounds +
// overflow, 16 entries total).
func TestScenarioHistogramDefaultBoundaries(t *testing.T) {
	p := metric.NewMeterProvider()
	reader := metric.NewReader(nil)
	require.NoError(t, p.AddReader(reader))
	m, err := p.Meter("svc")
	require.NoError(t, err)
	hist, err := m.Int64Histogram("latency")
	require.NoError(t, err)

	ctx := context.Background()
	hist.Record(ctx, 1, attribute.Empty())
	hist.Record(ctx, 5, attribute.Empty())
	hist.Record(ctx, 15, attribute.Empty())

	data, err := reader.Collect(ctx)
	require.NoError(t, err)
	h := data.ResourceMetrics[0].ScopeMetrics[0].Metrics[0].Data.(metricdata.Histogram[int64])
	require.Len(t, h.DataPoints, 1)
	dp := h.DataPoints[0]

	assert.Equal(t, uint64(3), dp.Count)
	assert.Equal(t, int64(21), dp.Sum)
	min, ok := dp.Min.Value()
	require.True(t, ok)
	assert.Equal(t, int64(1), min)
	max, ok := dp.Max.Value()
	require.True(t, ok)
	assert.Equal(t, int64(15), max)

	want := []uint64{0, 2, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	require.Len(t, want, len(dp.Bounds)+1)
	assert.Equal(t, want, dp.BucketCounts)
}

// TestScenarioUpDownCounterNetsToSingleValue exercises add(10); add(-5);
// add(-4) on an empty attribute set, expecting a single data point of 1.
func TestScenarioUpDownCounterNetsToSingleValue(t *testing.T) {
	p := metric.NewMeterProvider()
	reader := metric.NewReader(nil)
	require.NoError(t, p.AddReader(reader))
	m, err := p.Meter("svc")
	require.NoError(t, err)
	c, err := m.Int64UpDownCounter("inflight")
	require.NoError(t, err)

	ctx := context.Background()
	c.Add(ctx, 10, attribute.Empty())
	c.Add(ctx, -5, attribute.Empty())
	c.Add(ctx, -4, attribute.Empty())

	data, err := reader.Collect(ctx)
	require.NoError(t, err)
	sum := data.ResourceMetrics[0].ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)
	assert.False(t, sum.IsMonotonic)
}

// TestScenarioInstrumentNameValidationTable exercises the literal name
// validation examples: "123", "", and "alpha-?" each yield InvalidName.
func TestScenarioInstrumentNameValidationTable(t *testing.T) {
	p := metric.NewMeterProvider()
	m, err := p.Meter("svc")
	require.NoError(t, err)

	for _, name := range []string{"123", "", "alpha-?"} {
		_, err := m.Int64Counter(name)
		assert.ErrorIsf(t, err, metric.ErrInvalidName, "name %q", name)
	}
}

// TestScenarioPeriodicExportProducesTwoMetrics exercises the literal
// periodic-export scenario: a counter and a histogram on one Meter, an
// in-memory exporter, and a 10ms interval must yield exactly one
// ResourceMetrics whose sole ScopeMetrics holds exactly two Metric entries.
func TestScenarioPeriodicExportProducesTwoMetrics(t *testing.T) {
	exp := metrictest.New()
	pr := metric.NewPeriodicReader(exp, metric.WithInterval(10*time.Millisecond))
	reader := pr.Start()

	p := metric.NewMeterProvider()
	require.NoError(t, p.AddReader(reader))
	m, err := p.Meter("svc")
	require.NoError(t, err)
	counter, err := m.Int64Counter("requests")
	require.NoError(t, err)
	hist, err := m.Int64Histogram("latency")
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, counter.Add(ctx, 10, attribute.Empty()))
	hist.Record(ctx, 10, attribute.Empty())

	require.Eventually(t, func() bool {
		batches := exp.Fetch()
		if len(batches) == 0 {
			return false
		}
		rm := batches[len(batches)-1]
		return len(rm.ScopeMetrics) == 1 && len(rm.ScopeMetrics[0].Metrics) == 2
	}, 200*time.Millisecond, 5*time.Millisecond)

	require.NoError(t, pr.Shutdown(ctx))
}
