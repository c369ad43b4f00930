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

// Package metricdata defines the internal metric data model handed from a
// MetricReader to a MetricExporter: the representation a collect() snapshot
// takes before being serialized to an external wire format (OTLP or
// otherwise).
package metricdata // import "github.com/otelworks/metricsdk/sdk/metric/metricdata"

import (
	"time"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/instrumentation"
	"github.com/otelworks/metricsdk/sdk/resource"
)

// Temporality defines the window that an aggregation was performed over.
type Temporality int

const (
	// undefinedTemporality represents an unset Temporality.
	undefinedTemporality Temporality = iota
	// DeltaTemporality indicates values are only valid for the most recent
	// collection interval (OTLP enum value 1).
	DeltaTemporality
	// CumulativeTemporality indicates values are valid since the start of
	// the metric stream (OTLP enum value 2).
	CumulativeTemporality
)

// String returns the OTLP-aligned name of t.
func (t Temporality) String() string {
	switch t {
	case DeltaTemporality:
		return "Delta"
	case CumulativeTemporality:
		return "Cumulative"
	default:
		return "undefined"
	}
}

// MetricsData is the root of a single collection's snapshot.
type MetricsData struct {
	ResourceMetrics []ResourceMetrics
}

// ResourceMetrics pairs a Resource with the scopes of metrics it produced.
// The engine emits exactly one ResourceMetrics per Meter (one resource, one
// scope) rather than grouping multiple scopes under one resource, since
// every Meter shares the single MeterProvider-level resource.
type ResourceMetrics struct {
	Resource     *resource.Resource
	ScopeMetrics []ScopeMetrics
}

// ScopeMetrics is the metrics produced by one instrumentation scope (one
// Meter). The engine always emits exactly one ScopeMetrics per
// ResourceMetrics.
type ScopeMetrics struct {
	Scope   instrumentation.Scope
	Metrics []Metrics
}

// Metrics is a single instrument's aggregated data for a collection cycle.
type Metrics struct {
	Name        string
	Description string
	Unit        string
	Data        Aggregation
}

// Aggregation is implemented by Sum, Gauge and Histogram: the concrete
// shape an instrument's aggregated values take.
type Aggregation interface {
	privateAggregation()
}

// DataPoint is one attribute-set-keyed measurement of a Sum or Gauge.
type DataPoint[N int64 | float64] struct {
	Attributes attribute.Set
	// StartTime is when the stream began accumulating (cumulative Sum) or
	// when the current collection window opened (delta Sum). For a Gauge
	// it equals Time.
	StartTime time.Time
	// Time is when this data point's value was read, i.e. snapshot time.
	Time  time.Time
	Value N
}

// Sum is the aggregated value of a Counter or UpDownCounter.
type Sum[N int64 | float64] struct {
	DataPoints  []DataPoint[N]
	Temporality Temporality
	IsMonotonic bool
}

func (Sum[N]) privateAggregation() {}

// Gauge is the aggregated value of a Gauge instrument: the last value
// written per attribute set during the collection window.
type Gauge[N int64 | float64] struct {
	DataPoints []DataPoint[N]
}

func (Gauge[N]) privateAggregation() {}

// Extrema holds an optional min or max value; the boolean returned by
// Value reports whether a value was ever recorded (histograms with zero
// measurements carry no extrema).
type Extrema[N int64 | float64] struct {
	value   N
	defined bool
}

// NewExtrema returns a defined Extrema holding v.
func NewExtrema[N int64 | float64](v N) Extrema[N] {
	return Extrema[N]{value: v, defined: true}
}

// Value returns the held value and whether it is defined.
func (e Extrema[N]) Value() (N, bool) {
	return e.value, e.defined
}

// HistogramDataPoint is one attribute-set-keyed distribution summary.
type HistogramDataPoint[N int64 | float64] struct {
	Attributes   attribute.Set
	StartTime    time.Time
	Time         time.Time
	Count        uint64
	Sum          N
	Bounds       []float64
	BucketCounts []uint64
	Min          Extrema[N]
	Max          Extrema[N]
}

// Histogram is the aggregated value of a Histogram instrument using
// explicit bucket boundaries.
type Histogram[N int64 | float64] struct {
	DataPoints  []HistogramDataPoint[N]
	Temporality Temporality
}

func (Histogram[N]) privateAggregation() {}
