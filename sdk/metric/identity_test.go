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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelworks/metricsdk/attribute"
	"github.com/otelworks/metricsdk/sdk/metric"
	"github.com/otelworks/metricsdk/sdk/metric/aggregation"
)

func TestValidateInstrumentName(t *testing.T) {
	assert.NoError(t, metric.ValidateInstrumentName("request.count"))
	assert.ErrorIs(t, metric.ValidateInstrumentName(""), metric.ErrInvalidName)
	assert.ErrorIs(t, metric.ValidateInstrumentName("1count"), metric.ErrInvalidName)
	assert.ErrorIs(t, metric.ValidateInstrumentName(strings.Repeat("a", 256)), metric.ErrInvalidName)
	assert.NoError(t, metric.ValidateInstrumentName(strings.Repeat("a", 255)))
}

func TestValidateUnit(t *testing.T) {
	assert.NoError(t, metric.ValidateUnit("ms"))
	assert.NoError(t, metric.ValidateUnit(strings.Repeat("a", 63)))
	assert.ErrorIs(t, metric.ValidateUnit(strings.Repeat("a", 64)), metric.ErrInvalidUnit)
	assert.ErrorIs(t, metric.ValidateUnit("\xc3\xa9"), metric.ErrInvalidUnit)
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, metric.ValidateDescription("a perfectly fine description"))
	assert.NoError(t, metric.ValidateDescription(strings.Repeat("a", 1023)))
	assert.ErrorIs(t, metric.ValidateDescription(strings.Repeat("a", 1024)), metric.ErrInvalidDescription)
	assert.ErrorIs(t, metric.ValidateDescription("\xff\xfe"), metric.ErrInvalidDescription)
}

func TestHistogramRejectsInvalidBoundaries(t *testing.T) {
	p := metric.NewMeterProvider()
	m, err := p.Meter("svc")
	require.NoError(t, err)

	_, err = m.Int64Histogram("bad", metric.WithExplicitBucketBoundaries(10, 1))
	assert.ErrorIs(t, err, aggregation.ErrInvalidExplicitBucketBoundaries)

	_, err = m.Int64Histogram("good", metric.WithExplicitBucketBoundaries(1, 10, 100))
	assert.NoError(t, err)
}

func TestHistogramRecordAcceptsNegativeValue(t *testing.T) {
	p := metric.NewMeterProvider()
	m, err := p.Meter("svc")
	require.NoError(t, err)
	h, err := m.Float64Histogram("latency")
	require.NoError(t, err)

	// Unlike Counter, Histogram has no non-negative constraint: it
	// bins and sums whatever value it is given.
	h.Record(context.Background(), -1, attribute.Empty())
}
