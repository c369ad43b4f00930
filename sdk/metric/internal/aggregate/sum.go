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
	"time"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// sum summarizes a set of measurements as their arithmetic total, scoped by
// attribute set. Counter.add rejects negative deltas before a value ever
// reaches here; UpDownCounter.add does not, so the same type serves both.
type sum[N int64 | float64] struct {
	*valueMap[N]

	monotonic bool
	start     time.Time
}

func newSum[N int64 | float64](monotonic bool) *sum[N] {
	return &sum[N]{valueMap: newValueMap[N](), monotonic: monotonic, start: now()}
}

func (s *sum[N]) measure(value N, attrs attribute.Set) {
	s.upsert(attrs, func(cur N) N { return cur + value })
}

func (s *sum[N]) cumulative(dest *metricdata.Aggregation) int {
	t := now()

	sData, _ := (*dest).(metricdata.Sum[N])
	sData.Temporality = metricdata.CumulativeTemporality
	sData.IsMonotonic = s.monotonic

	n := s.len()
	dPts := reset(sData.DataPoints, n)
	i := 0
	s.each(func(attrs attribute.Set, value N) {
		dPts[i] = metricdata.DataPoint[N]{
			Attributes: attrs,
			StartTime:  s.start,
			Time:       t,
			Value:      value,
		}
		i++
	})
	sData.DataPoints = dPts
	*dest = sData
	return n
}

func (s *sum[N]) delta(dest *metricdata.Aggregation) int {
	t := now()

	sData, _ := (*dest).(metricdata.Sum[N])
	sData.Temporality = metricdata.DeltaTemporality
	sData.IsMonotonic = s.monotonic

	n := s.len()
	dPts := reset(sData.DataPoints, n)
	i := 0
	start := s.start
	s.each(func(attrs attribute.Set, value N) {
		dPts[i] = metricdata.DataPoint[N]{
			Attributes: attrs,
			StartTime:  start,
			Time:       t,
			Value:      value,
		}
		i++
	})
	sData.DataPoints = dPts
	*dest = sData

	// A delta window resets after every collection: the next cycle starts
	// counting from zero again.
	s.clear()
	s.start = t

	return n
}
