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
	"fmt"
	"sync"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/instrumentation"
	"github.com/otelworks/metricsdk/sdk/metric/aggregation"
	"github.com/otelworks/metricsdk/sdk/metric/internal/aggregate"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// fanout is the recording side of an instrument: one Measure per reader
// currently attached to the instrument's Meter, each built with that
// reader's own temporality/aggregation choice.
type fanout[N int64 | float64] struct {
	mu       sync.Mutex
	measures []aggregate.Measure[N]
}

func (f *fanout[N]) record(v N, attrs attribute.Set) {
	f.mu.Lock()
	measures := f.measures
	f.mu.Unlock()
	for _, m := range measures {
		m(v, attrs)
	}
}

func (f *fanout[N]) append(m aggregate.Measure[N]) {
	f.mu.Lock()
	f.measures = append(f.measures, m)
	f.mu.Unlock()
}

// instrumentEntry is what a Meter keeps per registered instrument: its
// identity and a closure able to extend it with an aggregator for a
// reader attached after the instrument was created.
type instrumentEntry struct {
	inst      Instrument
	fanout    any
	addReader func(rdr *Reader, p *pipeline)
}

// Meter is an instrumentation scope's instrument registry. Obtain one
// from MeterProvider.Meter; construct instruments with its Int64Counter,
// Float64Counter, Int64UpDownCounter, Float64UpDownCounter,
// Int64Histogram, Float64Histogram, Int64Gauge and Float64Gauge methods.
type Meter struct {
	provider *MeterProvider
	scope    instrumentation.Scope
	attrs    attribute.Set

	mu          sync.Mutex
	instruments map[string]*instrumentEntry
}

func newAggregatorFor[N int64 | float64](kind InstrumentKind, rdr *Reader, cfg instrumentConfig) (aggregate.Measure[N], aggregate.ComputeAggregation) {
	b := aggregate.Builder[N]{Temporality: rdr.temporality(kind)}
	switch a := rdr.aggregation(kind).(type) {
	case aggregation.Sum:
		return b.Sum(kind.monotonic())
	case aggregation.LastValue:
		return b.LastValue()
	case aggregation.ExplicitBucketHistogram:
		if len(cfg.boundaries) > 0 {
			a.Boundaries = cfg.boundaries
		}
		if cfg.noMinMax {
			a.NoMinMax = true
		}
		return b.ExplicitBucketHistogram(a)
	default: // aggregation.Drop, or anything unrecognized
		return func(N, attribute.Set) {}, func(*metricdata.Aggregation) int { return 0 }
	}
}

func createInstrument[N int64 | float64](m *Meter, kind InstrumentKind, name string, opts []InstrumentOption) (*fanout[N], Instrument, error) {
	var cfg instrumentConfig
	for _, o := range opts {
		cfg = o.applyInstrument(cfg)
	}
	if kind == InstrumentKindHistogram && len(cfg.boundaries) > 0 {
		if err := aggregation.ValidateExplicitBuckets(cfg.boundaries); err != nil {
			return nil, Instrument{}, err
		}
	}
	if err := ValidateInstrumentOptions(name, cfg.unit, cfg.description); err != nil {
		return nil, Instrument{}, err
	}

	inst := Instrument{Name: name, Kind: kind, Unit: cfg.unit, Description: cfg.description}
	id := instrumentIdentifier(name, kind, cfg.unit, cfg.description)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.instruments[id]; exists {
		return nil, Instrument{}, fmt.Errorf("%w: %s", ErrInstrumentExists, name)
	}

	fo := &fanout[N]{}
	entry := &instrumentEntry{inst: inst, fanout: fo}
	entry.addReader = func(rdr *Reader, p *pipeline) {
		measure, compute := newAggregatorFor[N](kind, rdr, cfg)
		fo.append(measure)
		p.addAggregator(m.scope, inst, compute)
	}
	for _, rp := range m.provider.attachedReaders() {
		entry.addReader(rp.reader, rp.pipeline)
	}
	m.instruments[id] = entry
	return fo, inst, nil
}

// onReaderAdded extends every instrument already registered on this Meter
// with an aggregator for the newly attached reader. Called by
// MeterProvider.AddReader while it still holds the provider lock.
func (m *Meter) onReaderAdded(rdr *Reader, p *pipeline) {
	m.mu.Lock()
	entries := make([]*instrumentEntry, 0, len(m.instruments))
	for _, e := range m.instruments {
		entries = append(entries, e)
	}
	m.mu.Unlock()
	for _, e := range entries {
		e.addReader(rdr, p)
	}
}
