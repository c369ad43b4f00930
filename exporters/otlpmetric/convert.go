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

package otlpmetric // import "github.com/otelworks/metricsdk/exporters/otlpmetric"

import (
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// transformResourceMetrics converts one internal ResourceMetrics into its
// OTLP protobuf equivalent.
func transformResourceMetrics(rm metricdata.ResourceMetrics) *metricspb.ResourceMetrics {
	out := &metricspb.ResourceMetrics{
		Resource:     &resourcepb.Resource{Attributes: transformAttrs(rm.Resource.Set())},
		ScopeMetrics: make([]*metricspb.ScopeMetrics, 0, len(rm.ScopeMetrics)),
	}
	for _, sm := range rm.ScopeMetrics {
		out.ScopeMetrics = append(out.ScopeMetrics, transformScopeMetrics(sm))
	}
	return out
}

func transformScopeMetrics(sm metricdata.ScopeMetrics) *metricspb.ScopeMetrics {
	out := &metricspb.ScopeMetrics{
		Scope: &commonpb.InstrumentationScope{
			Name:    sm.Scope.Name,
			Version: sm.Scope.Version,
		},
		SchemaUrl: sm.Scope.SchemaURL,
		Metrics:   make([]*metricspb.Metric, 0, len(sm.Metrics)),
	}
	for _, m := range sm.Metrics {
		if pb := transformMetric(m); pb != nil {
			out.Metrics = append(out.Metrics, pb)
		}
	}
	return out
}

func transformMetric(m metricdata.Metrics) *metricspb.Metric {
	out := &metricspb.Metric{
		Name:        m.Name,
		Description: m.Description,
		Unit:        m.Unit,
	}
	switch a := m.Data.(type) {
	case metricdata.Sum[int64]:
		out.Data = &metricspb.Metric_Sum{Sum: transformSumInt64(a)}
	case metricdata.Sum[float64]:
		out.Data = &metricspb.Metric_Sum{Sum: transformSumFloat64(a)}
	case metricdata.Gauge[int64]:
		out.Data = &metricspb.Metric_Gauge{Gauge: transformGaugeInt64(a)}
	case metricdata.Gauge[float64]:
		out.Data = &metricspb.Metric_Gauge{Gauge: transformGaugeFloat64(a)}
	case metricdata.Histogram[int64]:
		out.Data = &metricspb.Metric_Histogram{Histogram: transformHistogramInt64(a)}
	case metricdata.Histogram[float64]:
		out.Data = &metricspb.Metric_Histogram{Histogram: transformHistogramFloat64(a)}
	default:
		return nil
	}
	return out
}

func transformTemporality(t metricdata.Temporality) metricspb.AggregationTemporality {
	if t == metricdata.DeltaTemporality {
		return metricspb.AggregationTemporality_AGGREGATION_TEMPORALITY_DELTA
	}
	return metricspb.AggregationTemporality_AGGREGATION_TEMPORALITY_CUMULATIVE
}

func transformSumInt64(s metricdata.Sum[int64]) *metricspb.Sum {
	dps := make([]*metricspb.NumberDataPoint, len(s.DataPoints))
	for i, dp := range s.DataPoints {
		dps[i] = &metricspb.NumberDataPoint{
			Attributes:        transformAttrs(dp.Attributes),
			StartTimeUnixNano: uint64(dp.StartTime.UnixNano()),
			TimeUnixNano:      uint64(dp.Time.UnixNano()),
			Value:             &metricspb.NumberDataPoint_AsInt{AsInt: dp.Value},
		}
	}
	return &metricspb.Sum{
		DataPoints:             dps,
		AggregationTemporality: transformTemporality(s.Temporality),
		IsMonotonic:            s.IsMonotonic,
	}
}

func transformSumFloat64(s metricdata.Sum[float64]) *metricspb.Sum {
	dps := make([]*metricspb.NumberDataPoint, len(s.DataPoints))
	for i, dp := range s.DataPoints {
		dps[i] = &metricspb.NumberDataPoint{
			Attributes:        transformAttrs(dp.Attributes),
			StartTimeUnixNano: uint64(dp.StartTime.UnixNano()),
			TimeUnixNano:      uint64(dp.Time.UnixNano()),
			Value:             &metricspb.NumberDataPoint_AsDouble{AsDouble: dp.Value},
		}
	}
	return &metricspb.Sum{
		DataPoints:             dps,
		AggregationTemporality: transformTemporality(s.Temporality),
		IsMonotonic:            s.IsMonotonic,
	}
}

func transformGaugeInt64(g metricdata.Gauge[int64]) *metricspb.Gauge {
	dps := make([]*metricspb.NumberDataPoint, len(g.DataPoints))
	for i, dp := range g.DataPoints {
		dps[i] = &metricspb.NumberDataPoint{
			Attributes:        transformAttrs(dp.Attributes),
			StartTimeUnixNano: uint64(dp.StartTime.UnixNano()),
			TimeUnixNano:      uint64(dp.Time.UnixNano()),
			Value:             &metricspb.NumberDataPoint_AsInt{AsInt: dp.Value},
		}
	}
	return &metricspb.Gauge{DataPoints: dps}
}

func transformGaugeFloat64(g metricdata.Gauge[float64]) *metricspb.Gauge {
	dps := make([]*metricspb.NumberDataPoint, len(g.DataPoints))
	for i, dp := range g.DataPoints {
		dps[i] = &metricspb.NumberDataPoint{
			Attributes:        transformAttrs(dp.Attributes),
			StartTimeUnixNano: uint64(dp.StartTime.UnixNano()),
			TimeUnixNano:      uint64(dp.Time.UnixNano()),
			Value:             &metricspb.NumberDataPoint_AsDouble{AsDouble: dp.Value},
		}
	}
	return &metricspb.Gauge{DataPoints: dps}
}

func transformHistogramInt64(h metricdata.Histogram[int64]) *metricspb.Histogram {
	dps := make([]*metricspb.HistogramDataPoint, len(h.DataPoints))
	for i, dp := range h.DataPoints {
		sum := float64(dp.Sum)
		pb := &metricspb.HistogramDataPoint{
			Attributes:        transformAttrs(dp.Attributes),
			StartTimeUnixNano: uint64(dp.StartTime.UnixNano()),
			TimeUnixNano:      uint64(dp.Time.UnixNano()),
			Count:             dp.Count,
			Sum:               &sum,
			BucketCounts:      dp.BucketCounts,
			ExplicitBounds:    dp.Bounds,
		}
		if min, ok := dp.Min.Value(); ok {
			v := float64(min)
			pb.Min = &v
		}
		if max, ok := dp.Max.Value(); ok {
			v := float64(max)
			pb.Max = &v
		}
		dps[i] = pb
	}
	return &metricspb.Histogram{
		DataPoints:             dps,
		AggregationTemporality: transformTemporality(h.Temporality),
	}
}

func transformHistogramFloat64(h metricdata.Histogram[float64]) *metricspb.Histogram {
	dps := make([]*metricspb.HistogramDataPoint, len(h.DataPoints))
	for i, dp := range h.DataPoints {
		sum := dp.Sum
		pb := &metricspb.HistogramDataPoint{
			Attributes:        transformAttrs(dp.Attributes),
			StartTimeUnixNano: uint64(dp.StartTime.UnixNano()),
			TimeUnixNano:      uint64(dp.Time.UnixNano()),
			Count:             dp.Count,
			Sum:               &sum,
			BucketCounts:      dp.BucketCounts,
			ExplicitBounds:    dp.Bounds,
		}
		if min, ok := dp.Min.Value(); ok {
			pb.Min = &min
		}
		if max, ok := dp.Max.Value(); ok {
			pb.Max = &max
		}
		dps[i] = pb
	}
	return &metricspb.Histogram{
		DataPoints:             dps,
		AggregationTemporality: transformTemporality(h.Temporality),
	}
}

func transformAttrs(set attribute.Set) []*commonpb.KeyValue {
	if set.Len() == 0 {
		return nil
	}
	out := make([]*commonpb.KeyValue, set.Len())
	iter := set.Iter()
	i := 0
	for iter.Next() {
		kv := iter.Attribute()
		out[i] = &commonpb.KeyValue{Key: string(kv.Key), Value: transformValue(kv.Value)}
		i++
	}
	return out
}

func transformValue(v attribute.Value) *commonpb.AnyValue {
	switch v.Type() {
	case attribute.BOOL:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_BoolValue{BoolValue: v.AsBool()}}
	case attribute.INT64:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: v.AsInt64()}}
	case attribute.FLOAT64:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_DoubleValue{DoubleValue: v.AsFloat64()}}
	default:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: v.AsString()}}
	}
}
