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
	"sync"
	"time"

	"github.com/otelworks/metricsdk/internal/global"
)

// PeriodicReader builds a Reader that exports on a fixed interval instead
// of on demand. Start wires the Reader to the given exporter and spawns
// a background goroutine that calls Collect every interval; Shutdown
// stops that goroutine and tears the Reader (and its exporter) down.
type PeriodicReader struct {
	exporter *MetricExporter
	interval time.Duration
	timeout  time.Duration
	opts     []ReaderOption

	reader *Reader

	done   chan struct{}
	stopWg sync.WaitGroup
}

// NewPeriodicReader constructs a PeriodicReader around exporter.
func NewPeriodicReader(exporter Exporter, opts ...PeriodicReaderOption) *PeriodicReader {
	c := newPeriodicConfig(opts)
	readerOpts := []ReaderOption{
		WithTemporalitySelector(c.temporality),
		WithAggregationSelector(c.aggregation),
	}
	return &PeriodicReader{
		exporter: NewMetricExporter(exporter),
		interval: c.interval,
		timeout:  c.timeout,
		opts:     readerOpts,
		done:     make(chan struct{}),
	}
}

// Start creates the embedded Reader wired to this PeriodicReader's
// exporter and begins the background collection loop. The returned
// Reader is what must be passed to MeterProvider.AddReader; it must be
// called exactly once.
func (p *PeriodicReader) Start() *Reader {
	p.reader = NewReader(p.exporter, p.opts...)

	p.stopWg.Add(1)
	go p.run()

	return p.reader
}

func (p *PeriodicReader) run() {
	defer p.stopWg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *PeriodicReader) collectOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if _, err := p.reader.Collect(ctx); err != nil {
		global.Error(err, "periodic metric export failed")
	}
}

// Shutdown stops the background loop, waits for it to exit, and shuts
// the embedded Reader (and exporter) down. It observes shutdown within
// one collection interval rather than waiting for a sleep to unconditionally
// elapse. It is idempotent.
func (p *PeriodicReader) Shutdown(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	default:
		close(p.done)
	}
	p.stopWg.Wait()
	if p.reader == nil {
		return nil
	}
	return p.reader.Shutdown(ctx)
}

// ForceFlush forces the embedded Reader's exporter to flush immediately,
// without waiting for the next tick.
func (p *PeriodicReader) ForceFlush(ctx context.Context) error {
	if p.reader == nil {
		return nil
	}
	return p.reader.ForceFlush(ctx)
}
