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

package otlpmetric

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	colmetricpb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"

	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// fakeTransport lets a test script a sequence of Upload outcomes.
type fakeTransport struct {
	attempts atomic.Int32
	errs     []error
}

func (f *fakeTransport) Upload(context.Context, *colmetricpb.ExportMetricsServiceRequest) error {
	i := f.attempts.Add(1) - 1
	if int(i) >= len(f.errs) {
		return nil
	}
	return f.errs[i]
}

func TestExportBatchRetriesOnRetryableError(t *testing.T) {
	ft := &fakeTransport{errs: []error{
		retryableError{err: errors.New("connection reset")},
		retryableError{err: errors.New("connection reset")},
	}}
	exp := newWithTransport(ft, 10*time.Second)

	rm := &metricdata.ResourceMetrics{}
	err := exp.ExportBatch(context.Background(), rm)
	require.NoError(t, err)
	assert.Equal(t, int32(3), ft.attempts.Load())
}

func TestExportBatchDoesNotRetryPermanentError(t *testing.T) {
	permanent := errors.New("bad request")
	ft := &fakeTransport{errs: []error{permanent}}
	exp := newWithTransport(ft, time.Second)

	err := exp.ExportBatch(context.Background(), &metricdata.ResourceMetrics{})
	require.Error(t, err)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, int32(1), ft.attempts.Load())
}

func TestExportBatchRejectsAfterShutdown(t *testing.T) {
	ft := &fakeTransport{}
	exp := newWithTransport(ft, time.Second)
	require.NoError(t, exp.Shutdown(context.Background()))

	err := exp.ExportBatch(context.Background(), &metricdata.ResourceMetrics{})
	assert.ErrorIs(t, err, ErrShutdown)
	assert.Equal(t, int32(0), ft.attempts.Load())
}
