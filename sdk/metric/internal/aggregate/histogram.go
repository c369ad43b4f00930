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

package aggregate // import "github.com/otelworks/metricsdk/sdk/metric/internal/aggregate"

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/metric/aggregation"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// buckets is the per-attribute-set state for a histogram: the bucket
// counts, running count/sum, and min/max extrema.
type buckets[N int64 | float64] struct {
	counts   []uint64
	count    uint64
	total    N
	min, max N
	hasMinMax bool
}

func newBuckets[N int64 | float64](n int) *buckets[N] {
	return &buckets[N]{counts: make([]uint64, n)}
}

// bin records value into the bucket at idx and updates the running
// count/min/max. The first value recorded seeds both min and max; later
// values replace them only when strictly smaller or larger.
func (b *buckets[N]) bin(idx int, value N) {
	b.counts[idx]++
	b.count++
	if !b.hasMinMax {
		b.min, b.max = value, value
		b.hasMinMax = true
		return
	}
	if value < b.min {
		b.min = value
	}
	if value > b.max {
		b.max = value
	}
}

func (b *buckets[N]) sum(value N) { b.total += value }

// histValues is the shared state and update path for cumulative and delta
// explicit-bucket histograms.
type histValues[N int64 | float64] struct {
	noMinMax bool
	bounds   []float64

	mu     sync.Mutex
	values map[uint64][]histEntry[N]
}

type histEntry[N int64 | float64] struct {
	attrs attribute.Set
	b     *buckets[N]
}

func newHistValues[N int64 | float64](cfg aggregation.ExplicitBucketHistogram) *histValues[N] {
	bounds := make([]float64, len(cfg.Boundaries))
	copy(bounds, cfg.Boundaries)
	sort.Float64s(bounds)
	return &histValues[N]{
		noMinMax: cfg.NoMinMax,
		bounds:   bounds,
		values:   make(map[uint64][]histEntry[N]),
	}
}

// bucketIndex returns the index of the first boundary >= value, using a
// non-strict compare (a value exactly equal to a boundary lands in that
// boundary's bucket, not the next one), or len(bounds) if value exceeds
// every boundary. NaN is treated as greater than all boundaries.
func bucketIndex[N int64 | float64](bounds []float64, value N) int {
	fv := float64(value)
	if math.IsNaN(fv) {
		return len(bounds)
	}
	// sort.Search finds the first index for which bounds[i] >= fv, which
	// is exactly the "first boundary >= value" rule the spec calls for.
	return sort.Search(len(bounds), func(i int) bool { return bounds[i] >= fv })
}

func (h *histValues[N]) measure(value N, attrs attribute.Set) {
	idx := bucketIndex(h.bounds, value)

	h.mu.Lock()
	defer h.mu.Unlock()

	hash := attrs.Hash()
	bucket := h.values[hash]
	for _, e := range bucket {
		if e.attrs.Equal(attrs) {
			e.b.bin(idx, value)
			e.b.sum(value)
			return
		}
	}
	b := newBuckets[N](len(h.bounds) + 1)
	b.bin(idx, value)
	b.sum(value)
	h.values[hash] = append(bucket, histEntry[N]{attrs: attrs, b: b})
}

func (h *histValues[N]) each(fn func(attrs attribute.Set, b *buckets[N])) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, bucket := range h.values {
		for _, e := range bucket {
			fn(e.attrs, e.b)
		}
	}
}

func (h *histValues[N]) clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.values = make(map[uint64][]histEntry[N])
}

func (h *histValues[N]) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, b := range h.values {
		n += len(b)
	}
	return n
}

// histogram is an explicit-bucket histogram aggregator.
type histogram[N int64 | float64] struct {
	*histValues[N]
	start time.Time
}

func newHistogram[N int64 | float64](cfg aggregation.ExplicitBucketHistogram) *histogram[N] {
	return &histogram[N]{histValues: newHistValues[N](cfg), start: now()}
}

func (h *histogram[N]) cumulative(dest *metricdata.Aggregation) int {
	t := now()

	hData, _ := (*dest).(metricdata.Histogram[N])
	hData.Temporality = metricdata.CumulativeTemporality

	bounds := make([]float64, len(h.bounds))
	copy(bounds, h.bounds)

	n := h.len()
	dPts := reset(hData.DataPoints, n)
	i := 0
	h.each(func(attrs attribute.Set, b *buckets[N]) {
		counts := make([]uint64, len(b.counts))
		copy(counts, b.counts)

		dp := metricdata.HistogramDataPoint[N]{
			Attributes:   attrs,
			StartTime:    h.start,
			Time:         t,
			Count:        b.count,
			Sum:          b.total,
			Bounds:       bounds,
			BucketCounts: counts,
		}
		if !h.noMinMax && b.hasMinMax {
			dp.Min = metricdata.NewExtrema(b.min)
			dp.Max = metricdata.NewExtrema(b.max)
		}
		dPts[i] = dp
		i++
	})
	hData.DataPoints = dPts
	*dest = hData
	return n
}

func (h *histogram[N]) delta(dest *metricdata.Aggregation) int {
	t := now()

	hData, _ := (*dest).(metricdata.Histogram[N])
	hData.Temporality = metricdata.DeltaTemporality

	bounds := make([]float64, len(h.bounds))
	copy(bounds, h.bounds)

	n := h.len()
	dPts := reset(hData.DataPoints, n)
	i := 0
	start := h.start
	h.each(func(attrs attribute.Set, b *buckets[N]) {
		dp := metricdata.HistogramDataPoint[N]{
			Attributes:   attrs,
			StartTime:    start,
			Time:         t,
			Count:        b.count,
			Sum:          b.total,
			Bounds:       bounds,
			BucketCounts: b.counts,
		}
		if !h.noMinMax && b.hasMinMax {
			dp.Min = metricdata.NewExtrema(b.min)
			dp.Max = metricdata.NewExtrema(b.max)
		}
		dPts[i] = dp
		i++
	})
	hData.DataPoints = dPts
	*dest = hData

	h.clear()
	h.start = t

	return n
}
