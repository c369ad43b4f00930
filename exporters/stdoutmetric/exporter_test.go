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

package stdoutmetric_test

import (
	"context"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otelworks/metricsdk/exporters/stdoutmetric"
	"github.com/otelworks/metricsdk/sdk/metric/metricdata"
)

// capturingSink is a minimal logr.LogSink that records every Info call,
// enough to assert stdoutmetric logs one line per instrument.
type capturingSink struct {
	records []record
}

type record struct {
	msg           string
	keysAndValues []interface{}
}

func (s *capturingSink) Init(logr.RuntimeInfo)              {}
func (s *capturingSink) Enabled(int) bool                   { return true }
func (s *capturingSink) Error(error, string, ...interface{}) {}
func (s *capturingSink) Info(_ int, msg string, keysAndValues ...interface{}) {
	s.records = append(s.records, record{msg: msg, keysAndValues: keysAndValues})
}
func (s *capturingSink) WithValues(...interface{}) logr.LogSink { return s }
func (s *capturingSink) WithName(string) logr.LogSink           { return s }

func sampleBatch() metricdata.ResourceMetrics {
	return metricdata.ResourceMetrics{
		ScopeMetrics: []metricdata.ScopeMetrics{
			{
				Metrics: []metricdata.Metrics{
					{
						Name: "requests",
						Unit: "1",
						Data: metricdata.Sum[int64]{
							DataPoints: []metricdata.DataPoint[int64]{{Value: 3}},
						},
					},
				},
			},
		},
	}
}

func TestExporterLogsOneLinePerInstrument(t *testing.T) {
	sink := &capturingSink{}
	exp := stdoutmetric.New(stdoutmetric.WithLogger(logr.New(sink)))

	rm := sampleBatch()
	require.NoError(t, exp.ExportBatch(context.Background(), &rm))

	require.Len(t, sink.records, 1)
	assert.Equal(t, "metric", sink.records[0].msg)
	assert.Contains(t, sink.records[0].keysAndValues, "requests")
}

func TestExporterRejectsExportAfterShutdown(t *testing.T) {
	sink := &capturingSink{}
	exp := stdoutmetric.New(stdoutmetric.WithLogger(logr.New(sink)))
	require.NoError(t, exp.Shutdown(context.Background()))
	require.NoError(t, exp.Shutdown(context.Background()))

	rm := sampleBatch()
	err := exp.ExportBatch(context.Background(), &rm)
	assert.ErrorIs(t, err, stdoutmetric.ErrShutdown)
	assert.Empty(t, sink.records, "no logging should occur after shutdown")
}
