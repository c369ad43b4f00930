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

// Package aggregation describes the rule an instrument's measurements are
// reduced by: Sum, LastValue, ExplicitBucketHistogram or Drop. A reader's
// AggregationSelector picks one of these per instrument kind.
package aggregation // import "github.com/otelworks/metricsdk/sdk/metric/aggregation"

import (
	"errors"
	"fmt"
	"slices"
)

// Aggregation is the interface all aggregation kinds implement. It exists
// so an AggregationSelector can return any of them from one function
// signature; the concrete type is what a pipeline switches on.
type Aggregation interface {
	// Copy returns a deep copy of the Aggregation.
	Copy() Aggregation
	// Err returns a non-nil error if the Aggregation is invalid.
	Err() error
}

// Drop discards all measurements for the instrument it is applied to.
type Drop struct{}

func (Drop) Copy() Aggregation { return Drop{} }
func (Drop) Err() error        { return nil }

// LastValue aggregates a Gauge by keeping the most recently written value
// per attribute set, overwriting unconditionally (last writer wins within
// a collection cycle).
type LastValue struct{}

func (LastValue) Copy() Aggregation { return LastValue{} }
func (LastValue) Err() error        { return nil }

// Sum aggregates a Counter or UpDownCounter as a running total.
type Sum struct{}

func (Sum) Copy() Aggregation { return Sum{} }
func (Sum) Err() error        { return nil }

// DefaultExplicitBoundaries mirrors the default histogram boundaries
// used when no WithExplicitBucketBoundaries option is given.
var DefaultExplicitBoundaries = []float64{
	0, 5, 10, 25, 50, 75, 100, 250, 500, 750, 1000, 2500, 5000, 7500, 10000,
}

// ExplicitBucketHistogram aggregates a Histogram using a fixed list of
// strictly increasing bucket boundaries. NoMinMax disables recording the
// per-attribute-set min/max extrema.
type ExplicitBucketHistogram struct {
	Boundaries []float64
	NoMinMax   bool
}

// Copy returns a deep copy, cloning the Boundaries slice so the caller's
// backing array cannot be mutated out from under an installed aggregation.
func (e ExplicitBucketHistogram) Copy() Aggregation {
	b := slices.Clone(e.Boundaries)
	return ExplicitBucketHistogram{Boundaries: b, NoMinMax: e.NoMinMax}
}

// ErrInvalidExplicitBucketBoundaries is returned when an
// ExplicitBucketHistogram's Boundaries are empty or not strictly
// increasing.
var ErrInvalidExplicitBucketBoundaries = errors.New("aggregation: explicit bucket boundaries must be a non-empty, strictly increasing list")

// Err validates e's Boundaries: non-empty and strictly increasing.
func (e ExplicitBucketHistogram) Err() error {
	if err := ValidateExplicitBuckets(e.Boundaries); err != nil {
		return err
	}
	return nil
}

// ValidateExplicitBuckets reports ErrInvalidExplicitBucketBoundaries if
// bounds is empty or not strictly increasing.
func ValidateExplicitBuckets(bounds []float64) error {
	if len(bounds) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidExplicitBucketBoundaries)
	}
	for i := 1; i < len(bounds); i++ {
		if bounds[i-1] >= bounds[i] {
			return fmt.Errorf("%w: boundary at index %d (%v) does not exceed the previous boundary (%v)",
				ErrInvalidExplicitBucketBoundaries, i, bounds[i], bounds[i-1])
		}
	}
	return nil
}
