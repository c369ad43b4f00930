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
	"time"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/metric/aggregation"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
	"github.com/otelworks/metricsdk/sdk/resource"
)

// Option configures a MeterProvider.
type Option interface {
	apply(providerConfig) providerConfig
}

type providerConfig struct {
	resource *resource.Resource
}

type optionFunc func(providerConfig) providerConfig

func (f optionFunc) apply(c providerConfig) providerConfig { return f(c) }

// WithResource associates a Resource with every metric produced by the
// MeterProvider. Absent this option, MeterProvider uses an empty Resource.
func WithResource(r *resource.Resource) Option {
	return optionFunc(func(c providerConfig) providerConfig {
		c.resource = r
		return c
	})
}

// MeterOption configures a Meter obtained from MeterProvider.Meter.
type MeterOption interface {
	applyMeter(meterConfig) meterConfig
}

type meterConfig struct {
	version   string
	schemaURL string
	attrs     attribute.Set
}

type meterOptionFunc func(meterConfig) meterConfig

func (f meterOptionFunc) applyMeter(c meterConfig) meterConfig { return f(c) }

// WithInstrumentationVersion sets the instrumentation scope's version.
func WithInstrumentationVersion(version string) MeterOption {
	return meterOptionFunc(func(c meterConfig) meterConfig {
		c.version = version
		return c
	})
}

// WithSchemaURL sets the instrumentation scope's schema URL.
func WithSchemaURL(schemaURL string) MeterOption {
	return meterOptionFunc(func(c meterConfig) meterConfig {
		c.schemaURL = schemaURL
		return c
	})
}

// WithInstrumentationAttributes sets additional attributes describing the
// instrumentation scope itself (not the Meter's identity fields).
func WithInstrumentationAttributes(attrs ...attribute.KeyValue) MeterOption {
	return meterOptionFunc(func(c meterConfig) meterConfig {
		c.attrs = attribute.NewSet(attrs...)
		return c
	})
}

// InstrumentOption configures a single instrument at creation time.
type InstrumentOption interface {
	applyInstrument(instrumentConfig) instrumentConfig
}

type instrumentConfig struct {
	description string
	unit        string
	boundaries  []float64
	noMinMax    bool
}

type instrumentOptionFunc func(instrumentConfig) instrumentConfig

func (f instrumentOptionFunc) applyInstrument(c instrumentConfig) instrumentConfig { return f(c) }

// WithDescription sets the instrument's description.
func WithDescription(desc string) InstrumentOption {
	return instrumentOptionFunc(func(c instrumentConfig) instrumentConfig {
		c.description = desc
		return c
	})
}

// WithUnit sets the instrument's unit.
func WithUnit(unit string) InstrumentOption {
	return instrumentOptionFunc(func(c instrumentConfig) instrumentConfig {
		c.unit = unit
		return c
	})
}

// WithExplicitBucketBoundaries overrides a Histogram's bucket boundaries.
// It has no effect on other instrument kinds.
func WithExplicitBucketBoundaries(boundaries ...float64) InstrumentOption {
	return instrumentOptionFunc(func(c instrumentConfig) instrumentConfig {
		c.boundaries = boundaries
		return c
	})
}

// WithoutMinMax disables min/max tracking on a Histogram.
func WithoutMinMax() InstrumentOption {
	return instrumentOptionFunc(func(c instrumentConfig) instrumentConfig {
		c.noMinMax = true
		return c
	})
}

// TemporalitySelector selects the temporality a Reader requests for a
// given instrument kind. DefaultTemporalitySelector matches the spec's
// default temporality table.
type TemporalitySelector func(InstrumentKind) metricdata.Temporality

// DefaultTemporalitySelector returns Cumulative for Counter, UpDownCounter
// and Histogram, and Delta for Gauge.
func DefaultTemporalitySelector(kind InstrumentKind) metricdata.Temporality {
	return kind.defaultTemporality()
}

// AggregationSelector selects the aggregation a Reader requests for a
// given instrument kind. DefaultAggregationSelector matches the spec's
// default aggregation table.
type AggregationSelector func(InstrumentKind) aggregation.Aggregation

// DefaultAggregationSelector returns each instrument kind's default
// aggregation (Sum, ExplicitBucketHistogram or LastValue).
func DefaultAggregationSelector(kind InstrumentKind) aggregation.Aggregation {
	return kind.defaultAggregation()
}

// ReaderOption configures a Reader.
type ReaderOption interface {
	applyReader(readerConfig) readerConfig
}

type readerConfig struct {
	temporality TemporalitySelector
	aggregation AggregationSelector
}

func newReaderConfig(opts []ReaderOption) readerConfig {
	c := readerConfig{
		temporality: DefaultTemporalitySelector,
		aggregation: DefaultAggregationSelector,
	}
	for _, opt := range opts {
		c = opt.applyReader(c)
	}
	return c
}

type readerOptionFunc func(readerConfig) readerConfig

func (f readerOptionFunc) applyReader(c readerConfig) readerConfig { return f(c) }

// applyPeriodic lets a plain ReaderOption (temporality/aggregation
// selector) also satisfy PeriodicReaderOption, so both option kinds can
// be passed to NewPeriodicReader.
func (f readerOptionFunc) applyPeriodic(c periodicConfig) periodicConfig {
	c.readerConfig = f(c.readerConfig)
	return c
}

// WithTemporalitySelector overrides the Reader's default temporality
// choice per instrument kind.
func WithTemporalitySelector(selector TemporalitySelector) ReaderOption {
	return readerOptionFunc(func(c readerConfig) readerConfig {
		c.temporality = selector
		return c
	})
}

// WithAggregationSelector overrides the Reader's default aggregation
// choice per instrument kind.
func WithAggregationSelector(selector AggregationSelector) ReaderOption {
	return readerOptionFunc(func(c readerConfig) readerConfig {
		c.aggregation = selector
		return c
	})
}

// Default interval/timeout for a PeriodicExportingMetricReader, per the
// spec: 60s collection interval, 30s per-export timeout.
const (
	DefaultPeriodicInterval = 60 * time.Second
	DefaultPeriodicTimeout  = 30 * time.Second
)

// PeriodicReaderOption configures a PeriodicReader in addition to the
// common ReaderOption set.
type PeriodicReaderOption interface {
	ReaderOption
	applyPeriodic(periodicConfig) periodicConfig
}

type periodicConfig struct {
	readerConfig
	interval time.Duration
	timeout  time.Duration
}

func newPeriodicConfig(opts []PeriodicReaderOption) periodicConfig {
	c := periodicConfig{
		readerConfig: newReaderConfig(nil),
		interval:     DefaultPeriodicInterval,
		timeout:      DefaultPeriodicTimeout,
	}
	for _, opt := range opts {
		c = opt.applyPeriodic(c)
	}
	return c
}

type periodicOptionFunc func(periodicConfig) periodicConfig

func (f periodicOptionFunc) applyPeriodic(c periodicConfig) periodicConfig { return f(c) }

func (f periodicOptionFunc) applyReader(c readerConfig) readerConfig {
	full := periodicConfig{readerConfig: c}
	return f(full).readerConfig
}

// WithInterval overrides the default 60s collection interval.
func WithInterval(d time.Duration) PeriodicReaderOption {
	return periodicOptionFunc(func(c periodicConfig) periodicConfig {
		if d > 0 {
			c.interval = d
		}
		return c
	})
}

// WithTimeout overrides the default 30s per-export timeout.
func WithTimeout(d time.Duration) PeriodicReaderOption {
	return periodicOptionFunc(func(c periodicConfig) periodicConfig {
		if d > 0 {
			c.timeout = d
		}
		return c
	})
}
