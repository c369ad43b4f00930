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
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/otelworks/metricsdk/sdk/instrumentation"
	"github.com/otelworks/metricsdk/sdk/resource"
)

type readerPipeline struct {
	reader   *Reader
	pipeline *pipeline
}

// MeterProvider is the root registry of Meters; it owns every Meter it
// has handed out and every Reader attached to it, and orchestrates their
// shutdown together.
type MeterProvider struct {
	resource *resource.Resource

	mu      sync.Mutex
	meters  map[uint64]*Meter
	readers []readerPipeline

	shutdown atomic.Bool
}

// NewMeterProvider constructs a MeterProvider. Absent WithResource, the
// provider uses an empty Resource.
func NewMeterProvider(opts ...Option) *MeterProvider {
	var c providerConfig
	for _, o := range opts {
		c = o.apply(c)
	}
	if c.resource == nil {
		c.resource = resource.Empty()
	}
	return &MeterProvider{
		resource: c.resource,
		meters:   make(map[uint64]*Meter),
	}
}

// Meter returns the Meter identified by (name, version, schema URL) and
// the instrumentation attributes carried in opts, creating it on first
// request. A second call with the same identity but a different
// attribute set fails with ErrMeterExistsWithDifferentAttributes.
func (p *MeterProvider) Meter(name string, opts ...MeterOption) (*Meter, error) {
	if p.shutdown.Load() {
		return nil, ErrProviderShutdown
	}

	var c meterConfig
	for _, o := range opts {
		c = o.applyMeter(c)
	}
	id := meterIdentifier(name, c.version, c.schemaURL)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown.Load() {
		return nil, ErrProviderShutdown
	}

	if existing, ok := p.meters[id]; ok {
		if !existing.attrs.Equal(c.attrs) {
			return nil, fmt.Errorf("%w: %s", ErrMeterExistsWithDifferentAttributes, name)
		}
		return existing, nil
	}

	m := &Meter{
		provider: p,
		scope: instrumentation.Scope{
			Name:      name,
			Version:   c.version,
			SchemaURL: c.schemaURL,
		},
		attrs:       c.attrs,
		instruments: make(map[string]*instrumentEntry),
	}
	p.meters[id] = m
	return m, nil
}

// attachedReaders returns a snapshot of the currently attached
// (reader, pipeline) pairs, for a newly created instrument to register
// its initial aggregators against.
func (p *MeterProvider) attachedReaders() []readerPipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]readerPipeline, len(p.readers))
	copy(out, p.readers)
	return out
}

// AddReader attaches r to p. r must not already be attached to any
// MeterProvider, including p itself. Every instrument already created on
// any of p's Meters is retroactively extended with an aggregator for r,
// so a reader added after measurements have started still collects
// everything recorded from this point on.
func (p *MeterProvider) AddReader(r *Reader) error {
	if p.shutdown.Load() {
		return ErrProviderShutdown
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown.Load() {
		return ErrProviderShutdown
	}

	pl := newPipeline(p.resource)
	if err := r.register(pl); err != nil {
		return err
	}
	p.readers = append(p.readers, readerPipeline{reader: r, pipeline: pl})

	for _, m := range p.meters {
		m.onReaderAdded(r, pl)
	}
	return nil
}

// Shutdown tears the provider down: every Meter is dropped from the
// provider's registry, then every attached reader is shut down
// (triggering a final collect via its own Shutdown semantics). It is
// idempotent; a second call returns nil without doing anything.
func (p *MeterProvider) Shutdown(ctx context.Context) error {
	if !p.shutdown.CompareAndSwap(false, true) {
		return nil
	}

	p.mu.Lock()
	readers := make([]readerPipeline, len(p.readers))
	copy(readers, p.readers)
	p.meters = make(map[uint64]*Meter)
	p.readers = nil
	p.mu.Unlock()

	var errs []error
	for _, rp := range readers {
		if err := rp.reader.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return joinErrors(errs)
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		msg := errs[0].Error()
		for _, e := range errs[1:] {
			msg += "; " + e.Error()
		}
		return fmt.Errorf("%s", msg)
	}
}
