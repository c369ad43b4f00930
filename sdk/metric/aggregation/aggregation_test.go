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

package aggregation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/otelworks/metricsdk/sdk/metric/aggregation"
)

func TestValidateExplicitBuckets(t *testing.T) {
	assert.NoError(t, aggregation.ValidateExplicitBuckets(aggregation.DefaultExplicitBoundaries))
	assert.ErrorIs(t, aggregation.ValidateExplicitBuckets(nil), aggregation.ErrInvalidExplicitBucketBoundaries)
	assert.ErrorIs(t, aggregation.ValidateExplicitBuckets([]float64{1, 1}), aggregation.ErrInvalidExplicitBucketBoundaries)
	assert.ErrorIs(t, aggregation.ValidateExplicitBuckets([]float64{2, 1}), aggregation.ErrInvalidExplicitBucketBoundaries)
	assert.NoError(t, aggregation.ValidateExplicitBuckets([]float64{1, 10, 100}))
}

func TestExplicitBucketHistogramCopyIsIndependent(t *testing.T) {
	h := aggregation.ExplicitBucketHistogram{Boundaries: []float64{1, 2, 3}}
	cp := h.Copy().(aggregation.ExplicitBucketHistogram)
	cp.Boundaries[0] = 99
	assert.Equal(t, float64(1), h.Boundaries[0])
}
