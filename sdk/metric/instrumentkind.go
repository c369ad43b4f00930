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
	"github.com/otelworks/metricsdk/sdk/metric/aggregation"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// InstrumentKind identifies the kind of instrument an Instrument
// description refers to.
type InstrumentKind uint8

const (
	// InstrumentKindCounter identifies a synchronous monotonic Sum.
	InstrumentKindCounter InstrumentKind = iota + 1
	// InstrumentKindUpDownCounter identifies a synchronous non-monotonic Sum.
	InstrumentKindUpDownCounter
	// InstrumentKindHistogram identifies a synchronous ExplicitBucketHistogram.
	InstrumentKindHistogram
	// InstrumentKindGauge identifies a synchronous LastValue.
	InstrumentKindGauge
)

func (k InstrumentKind) String() string {
	switch k {
	case InstrumentKindCounter:
		return "Counter"
	case InstrumentKindUpDownCounter:
		return "UpDownCounter"
	case InstrumentKindHistogram:
		return "Histogram"
	case InstrumentKindGauge:
		return "Gauge"
	default:
		return "undefined"
	}
}

// monotonic reports whether measurements of this instrument kind must be
// non-negative.
func (k InstrumentKind) monotonic() bool {
	return k == InstrumentKindCounter
}

// defaultAggregation returns the aggregation this instrument kind selects
// absent an overriding AggregationSelector.
func (k InstrumentKind) defaultAggregation() aggregation.Aggregation {
	switch k {
	case InstrumentKindCounter, InstrumentKindUpDownCounter:
		return aggregation.Sum{}
	case InstrumentKindHistogram:
		return aggregation.ExplicitBucketHistogram{
			Boundaries: aggregation.DefaultExplicitBoundaries,
		}
	case InstrumentKindGauge:
		return aggregation.LastValue{}
	default:
		return aggregation.Drop{}
	}
}

// defaultTemporality returns the temporality this instrument kind selects
// absent an overriding TemporalitySelector: cumulative for Counter,
// UpDownCounter and Histogram; delta for Gauge.
func (k InstrumentKind) defaultTemporality() metricdata.Temporality {
	if k == InstrumentKindGauge {
		return metricdata.DeltaTemporality
	}
	return metricdata.CumulativeTemporality
}

// Instrument describes a single instrument registered on a Meter: its
// identifying fields (name/kind/unit/description). The instrument's
// numeric type is not part of it; duplicate detection is per Meter and
// ignores the numeric type.
type Instrument struct {
	Name        string
	Kind        InstrumentKind
	Unit        string
	Description string
}
