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

package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/metric/aggregation"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

func attrs(kvs ...attribute.KeyValue) attribute.Set { return attribute.NewSet(kvs...) }

func TestSumCumulativeAccumulatesAcrossCollects(t *testing.T) {
	b := Builder[int64]{Temporality: metricdata.CumulativeTemporality}
	measure, compute := b.Sum(true)

	measure(1, attrs(attribute.String("k", "a")))
	measure(2, attrs(attribute.String("k", "a")))
	measure(5, attrs(attribute.String("k", "b")))

	var dest metricdata.Aggregation
	n := compute(&dest)
	require.Equal(t, 2, n)
	sum := dest.(metricdata.Sum[int64])
	assert.Equal(t, metricdata.CumulativeTemporality, sum.Temporality)
	assert.True(t, sum.IsMonotonic)

	// Cumulative: a second collect with no new measurements still reports
	// the running totals, unchanged.
	n = compute(&dest)
	require.Equal(t, 2, n)
}

func TestSumDeltaResetsAfterCollect(t *testing.T) {
	b := Builder[int64]{Temporality: metricdata.DeltaTemporality}
	measure, compute := b.Sum(false)

	measure(10, attrs(attribute.String("k", "a")))

	var dest metricdata.Aggregation
	n := compute(&dest)
	require.Equal(t, 1, n)

	// Delta: nothing written since the last collect reports nothing.
	n = compute(&dest)
	assert.Equal(t, 0, n)
}

func TestLastValueOverwritesAndClearsOnCollect(t *testing.T) {
	b := Builder[float64]{Temporality: metricdata.DeltaTemporality}
	measure, compute := b.LastValue()

	measure(1, attrs())
	measure(2, attrs())

	var dest metricdata.Aggregation
	n := compute(&dest)
	require.Equal(t, 1, n)
	gauge := dest.(metricdata.Gauge[float64])
	assert.Equal(t, float64(2), gauge.DataPoints[0].Value)

	n = compute(&dest)
	assert.Equal(t, 0, n, "gauge is delta-only: an uncollected attribute set reports nothing next cycle")
}

func TestExplicitBucketHistogramBucketing(t *testing.T) {
	b := Builder[int64]{Temporality: metricdata.CumulativeTemporality}
	measure, compute := b.ExplicitBucketHistogram(aggregation.ExplicitBucketHistogram{
		Boundaries: []float64{1, 10, 100, 1000},
	})

	set := attrs()
	measure(1, set)
	measure(5, set)
	measure(15, set)

	var dest metricdata.Aggregation
	n := compute(&dest)
	require.Equal(t, 1, n)
	hist := dest.(metricdata.Histogram[int64])
	dp := hist.DataPoints[0]
	assert.Equal(t, uint64(3), dp.Count)
	assert.Equal(t, int64(21), dp.Sum)
	assert.Equal(t, []uint64{1, 1, 1, 0, 0}, dp.BucketCounts)

	min, ok := dp.Min.Value()
	require.True(t, ok)
	assert.Equal(t, int64(1), min)
	max, ok := dp.Max.Value()
	require.True(t, ok)
	assert.Equal(t, int64(15), max)
}

func TestBuilderFilterDropsAttributesBeforeAggregation(t *testing.T) {
	b := Builder[int64]{
		Temporality: metricdata.CumulativeTemporality,
		Filter: func(kv attribute.KeyValue) bool {
			return kv.Key != "secret"
		},
	}
	measure, compute := b.Sum(false)
	measure(1, attrs(attribute.String("keep", "x"), attribute.String("secret", "y")))

	var dest metricdata.Aggregation
	n := compute(&dest)
	require.Equal(t, 1, n)
	sum := dest.(metricdata.Sum[int64])
	assert.Equal(t, 1, sum.DataPoints[0].Attributes.Len())
	assert.Equal(t, attribute.Key("keep"), sum.DataPoints[0].Attributes.Get(0).Key)
}
