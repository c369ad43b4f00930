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

// Package aggregate holds the per-instrument aggregation state: the
// mapping from attribute set to aggregated slot, and the update/snapshot
// logic for Sum, LastValue and ExplicitBucketHistogram.
package aggregate // import "github.com/otelworks/metricsdk/sdk/metric/internal/aggregate"

import (
	"sync"
	"time"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/metric/aggregation"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// now is indirected so tests can pin the clock.
var now = time.Now

// Measure is the recording entry point an Instrument calls for every
// Add/Record.
type Measure[N int64 | float64] func(value N, attrs attribute.Set)

// ComputeAggregation snapshots the current aggregation state into dest and
// returns the number of data points produced.
type ComputeAggregation func(dest *metricdata.Aggregation) int

// Builder assembles a Measure/ComputeAggregation pair for one instrument,
// given the reader's chosen Temporality and an optional attribute Filter
// applied to every incoming measurement before it reaches aggregation
// state. The Filter defaults to nil (accept-all); the field exists so the
// aggregation pipeline's shape matches across every instrument kind, even
// though no public API currently installs a non-default filter.
type Builder[N int64 | float64] struct {
	Temporality metricdata.Temporality
	Filter      attribute.Filter
}

func (b Builder[N]) filter(f Measure[N]) Measure[N] {
	if b.Filter == nil {
		return f
	}
	fltr := b.Filter
	return func(v N, a attribute.Set) {
		fAttr, _ := a.Filter(fltr)
		f(v, fAttr)
	}
}

// LastValue returns a Measure/ComputeAggregation pair implementing
// last-writer-wins semantics; the last value written for an attribute set
// overwrites whatever was there, unconditionally.
func (b Builder[N]) LastValue() (Measure[N], ComputeAggregation) {
	lv := newLastValue[N]()
	return b.filter(lv.measure), func(dest *metricdata.Aggregation) int {
		gData, _ := (*dest).(metricdata.Gauge[N])
		lv.computeAggregation(&gData.DataPoints)
		*dest = gData
		return len(gData.DataPoints)
	}
}

// Sum returns a Measure/ComputeAggregation pair implementing a running
// total, monotonic or not, reported with the Builder's Temporality.
func (b Builder[N]) Sum(monotonic bool) (Measure[N], ComputeAggregation) {
	s := newSum[N](monotonic)
	if b.Temporality == metricdata.DeltaTemporality {
		return b.filter(s.measure), s.delta
	}
	return b.filter(s.measure), s.cumulative
}

// ExplicitBucketHistogram returns a Measure/ComputeAggregation pair
// implementing a fixed-boundary histogram.
func (b Builder[N]) ExplicitBucketHistogram(cfg aggregation.ExplicitBucketHistogram) (Measure[N], ComputeAggregation) {
	h := newHistogram[N](cfg)
	if b.Temporality == metricdata.DeltaTemporality {
		return b.filter(h.measure), h.delta
	}
	return b.filter(h.measure), h.cumulative
}

// valueMap is the attribute-set-keyed slot map shared by Sum and
// LastValue. Keys collide on Set.Hash(); collisions are resolved with a
// byte-wise Equal check, per the spec's hashing rule: "any hash must be
// consistent with byte-wise equality."
type valueMap[N int64 | float64] struct {
	sync.Mutex
	buckets map[uint64][]entry[N]
}

type entry[N int64 | float64] struct {
	attrs attribute.Set
	value N
}

func newValueMap[N int64 | float64]() *valueMap[N] {
	return &valueMap[N]{buckets: make(map[uint64][]entry[N])}
}

// upsert runs fn against the current value stored for attrs (zero if
// absent) and stores the result back, returning it.
func (m *valueMap[N]) upsert(attrs attribute.Set, fn func(cur N) N) N {
	m.Lock()
	defer m.Unlock()

	h := attrs.Hash()
	bucket := m.buckets[h]
	for i, e := range bucket {
		if e.attrs.Equal(attrs) {
			bucket[i].value = fn(e.value)
			return bucket[i].value
		}
	}
	v := fn(0)
	m.buckets[h] = append(bucket, entry[N]{attrs: attrs, value: v})
	return v
}

// each calls fn once per stored entry.
func (m *valueMap[N]) each(fn func(attrs attribute.Set, value N)) {
	m.Lock()
	defer m.Unlock()
	for _, bucket := range m.buckets {
		for _, e := range bucket {
			fn(e.attrs, e.value)
		}
	}
}

// clear empties the map, used after a delta collection resets the window.
func (m *valueMap[N]) clear() {
	m.Lock()
	defer m.Unlock()
	m.buckets = make(map[uint64][]entry[N])
}

// len reports the number of distinct attribute sets stored.
func (m *valueMap[N]) len() int {
	m.Lock()
	defer m.Unlock()
	n := 0
	for _, b := range m.buckets {
		n += len(b)
	}
	return n
}

// reset ensures s has length n, reusing the backing array when it has
// enough capacity.
func reset[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
