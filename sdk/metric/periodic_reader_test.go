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

package metric_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/exporters/metrictest"
	"github.com/otelworks/metricsdk/sdk/metric"
)

func TestPeriodicReaderExportsWithinTwoIntervals(t *testing.T) {
	exp := metrictest.New()
	pr := metric.NewPeriodicReader(exp, metric.WithInterval(100*time.Millisecond))
	reader := pr.Start()

	p := metric.NewMeterProvider()
	require.NoError(t, p.AddReader(reader))
	m, err := p.Meter("svc")
	require.NoError(t, err)
	counter, err := m.Int64Counter("ticks")
	require.NoError(t, err)
	require.NoError(t, counter.Add(context.Background(), 1, attribute.Empty()))

	require.Eventually(t, func() bool {
		return len(exp.Fetch()) > 0
	}, 200*time.Millisecond, 5*time.Millisecond, "expected at least one export_batch within 2x interval")

	require.NoError(t, pr.Shutdown(context.Background()))
}

func TestPeriodicReaderShutdownObservedWithinOneInterval(t *testing.T) {
	exp := metrictest.New()
	pr := metric.NewPeriodicReader(exp, metric.WithInterval(200*time.Millisecond))
	reader := pr.Start()

	p := metric.NewMeterProvider()
	require.NoError(t, p.AddReader(reader))

	done := make(chan struct{})
	go func() {
		_ = pr.Shutdown(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("shutdown did not complete within one interval's worst-case latency")
	}
}
