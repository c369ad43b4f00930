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
	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// lastValue summarizes a set of measurements as the last one made, per
// attribute set. Gauge's default temporality is Delta: a stream that is
// not written to in a collection window reports nothing for it (the
// window resets on every collect).
type lastValue[N int64 | float64] struct {
	*valueMap[N]
}

func newLastValue[N int64 | float64]() *lastValue[N] {
	return &lastValue[N]{valueMap: newValueMap[N]()}
}

func (s *lastValue[N]) measure(value N, attrs attribute.Set) {
	s.upsert(attrs, func(N) N { return value })
}

func (s *lastValue[N]) computeAggregation(dPts *[]metricdata.DataPoint[N]) {
	t := now()

	n := s.len()
	out := reset(*dPts, n)
	i := 0
	s.each(func(attrs attribute.Set, value N) {
		out[i] = metricdata.DataPoint[N]{
			Attributes: attrs,
			StartTime:  t,
			Time:       t,
			Value:      value,
		}
		i++
	})
	*dPts = out

	// Each collection window starts empty again; only values written
	// since the last collect are reported (delta-only aggregation).
	s.clear()
}
