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
	"context"

	"github.com/otelworks/metricsdk/attribute"
)

// Int64Counter records non-negative int64 increments.
type Int64Counter struct{ fanout *fanout[int64] }

// Float64Counter records non-negative float64 increments.
type Float64Counter struct{ fanout *fanout[float64] }

// Int64UpDownCounter records int64 increments or decrements.
type Int64UpDownCounter struct{ fanout *fanout[int64] }

// Float64UpDownCounter records float64 increments or decrements.
type Float64UpDownCounter struct{ fanout *fanout[float64] }

// Int64Histogram records a distribution of int64 values.
type Int64Histogram struct{ fanout *fanout[int64] }

// Float64Histogram records a distribution of float64 values.
type Float64Histogram struct{ fanout *fanout[float64] }

// Int64Gauge records the last-observed int64 value per attribute set.
type Int64Gauge struct{ fanout *fanout[int64] }

// Float64Gauge records the last-observed float64 value per attribute set.
type Float64Gauge struct{ fanout *fanout[float64] }

// Add records delta to the counter, scoped by attrs. ctx is accepted for
// symmetry with the rest of the API surface; it is not otherwise
// consulted (recording is synchronous and never blocks on it).
func (c Int64Counter) Add(ctx context.Context, delta int64, attrs attribute.Set) error {
	if delta < 0 {
		return ErrNegativeCounterValue
	}
	c.fanout.record(delta, attrs)
	return nil
}

// Add records delta to the counter, scoped by attrs.
func (c Float64Counter) Add(ctx context.Context, delta float64, attrs attribute.Set) error {
	if delta < 0 {
		return ErrNegativeCounterValue
	}
	c.fanout.record(delta, attrs)
	return nil
}

// Add records delta, which may be negative, scoped by attrs.
func (c Int64UpDownCounter) Add(ctx context.Context, delta int64, attrs attribute.Set) {
	c.fanout.record(delta, attrs)
}

// Add records delta, which may be negative, scoped by attrs.
func (c Float64UpDownCounter) Add(ctx context.Context, delta float64, attrs attribute.Set) {
	c.fanout.record(delta, attrs)
}

// Record adds value to the distribution, scoped by attrs. Unlike Counter,
// a Histogram does not reject negative values: bucket selection and the
// running sum handle them the same as any other value.
func (h Int64Histogram) Record(ctx context.Context, value int64, attrs attribute.Set) {
	h.fanout.record(value, attrs)
}

// Record adds value to the distribution, scoped by attrs.
func (h Float64Histogram) Record(ctx context.Context, value float64, attrs attribute.Set) {
	h.fanout.record(value, attrs)
}

// Record overwrites the last-observed value for attrs.
func (g Int64Gauge) Record(ctx context.Context, value int64, attrs attribute.Set) {
	g.fanout.record(value, attrs)
}

// Record overwrites the last-observed value for attrs.
func (g Float64Gauge) Record(ctx context.Context, value float64, attrs attribute.Set) {
	g.fanout.record(value, attrs)
}

// Int64Counter creates a monotonic int64 sum instrument named name. It
// fails with ErrInstrumentExists if the identity is already registered.
func (m *Meter) Int64Counter(name string, opts ...InstrumentOption) (Int64Counter, error) {
	fo, _, err := createInstrument[int64](m, InstrumentKindCounter, name, opts)
	if err != nil {
		return Int64Counter{}, err
	}
	return Int64Counter{fanout: fo}, nil
}

// Float64Counter creates a monotonic float64 sum instrument named name. It
// fails with ErrInstrumentExists if the identity is already registered.
func (m *Meter) Float64Counter(name string, opts ...InstrumentOption) (Float64Counter, error) {
	fo, _, err := createInstrument[float64](m, InstrumentKindCounter, name, opts)
	if err != nil {
		return Float64Counter{}, err
	}
	return Float64Counter{fanout: fo}, nil
}

// Int64UpDownCounter creates a non-monotonic int64 sum instrument named
// name. It fails with ErrInstrumentExists if the identity is already
// registered.
func (m *Meter) Int64UpDownCounter(name string, opts ...InstrumentOption) (Int64UpDownCounter, error) {
	fo, _, err := createInstrument[int64](m, InstrumentKindUpDownCounter, name, opts)
	if err != nil {
		return Int64UpDownCounter{}, err
	}
	return Int64UpDownCounter{fanout: fo}, nil
}

// Float64UpDownCounter creates a non-monotonic float64 sum instrument
// named name. It fails with ErrInstrumentExists if the identity is
// already registered.
func (m *Meter) Float64UpDownCounter(name string, opts ...InstrumentOption) (Float64UpDownCounter, error) {
	fo, _, err := createInstrument[float64](m, InstrumentKindUpDownCounter, name, opts)
	if err != nil {
		return Float64UpDownCounter{}, err
	}
	return Float64UpDownCounter{fanout: fo}, nil
}

// Int64Histogram creates an int64 explicit-bucket histogram instrument
// named name. It fails with ErrInstrumentExists if the identity is
// already registered.
func (m *Meter) Int64Histogram(name string, opts ...InstrumentOption) (Int64Histogram, error) {
	fo, _, err := createInstrument[int64](m, InstrumentKindHistogram, name, opts)
	if err != nil {
		return Int64Histogram{}, err
	}
	return Int64Histogram{fanout: fo}, nil
}

// Float64Histogram creates a float64 explicit-bucket histogram instrument
// named name. It fails with ErrInstrumentExists if the identity is
// already registered.
func (m *Meter) Float64Histogram(name string, opts ...InstrumentOption) (Float64Histogram, error) {
	fo, _, err := createInstrument[float64](m, InstrumentKindHistogram, name, opts)
	if err != nil {
		return Float64Histogram{}, err
	}
	return Float64Histogram{fanout: fo}, nil
}

// Int64Gauge creates an int64 last-value instrument named name. It fails
// with ErrInstrumentExists if the identity is already registered.
func (m *Meter) Int64Gauge(name string, opts ...InstrumentOption) (Int64Gauge, error) {
	fo, _, err := createInstrument[int64](m, InstrumentKindGauge, name, opts)
	if err != nil {
		return Int64Gauge{}, err
	}
	return Int64Gauge{fanout: fo}, nil
}

// Float64Gauge creates a float64 last-value instrument named name. It
// fails with ErrInstrumentExists if the identity is already registered.
func (m *Meter) Float64Gauge(name string, opts ...InstrumentOption) (Float64Gauge, error) {
	fo, _, err := createInstrument[float64](m, InstrumentKindGauge, name, opts)
	if err != nil {
		return Float64Gauge{}, err
	}
	return Float64Gauge{fanout: fo}, nil
}
