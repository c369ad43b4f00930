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
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel validation errors, matching the spec's error taxonomy.
//
// ErrInvalidExplicitBucketBoundaries and ErrUnsupportedValueType have no
// sentinel here: bucket validation is owned by aggregation.ValidateExplicitBuckets
// (see meter.go's createInstrument), and unsupported value types are rejected
// at compile time by the Int64*/Float64* method set rather than at runtime —
// there is no (kind, value type) pair reachable through this API that the
// spec's table forbids.
var (
	ErrInvalidName        = errors.New("metric: invalid instrument name")
	ErrInvalidUnit        = errors.New("metric: invalid instrument unit")
	ErrInvalidDescription = errors.New("metric: invalid instrument description")
)

var nameRegexp = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.\-/]{0,254}$`)

// ValidateInstrumentName reports ErrInvalidName unless name is 1-255
// characters, starts with an alphabetic character, and otherwise contains
// only alphanumerics or one of `_ - . /`.
func ValidateInstrumentName(name string) error {
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ValidateUnit reports ErrInvalidUnit unless unit is <= 63 ASCII bytes.
func ValidateUnit(unit string) error {
	if len(unit) > 63 {
		return fmt.Errorf("%w: longer than 63 characters", ErrInvalidUnit)
	}
	for i := 0; i < len(unit); i++ {
		if unit[i] > unicode.MaxASCII {
			return fmt.Errorf("%w: contains non-ASCII byte", ErrInvalidUnit)
		}
	}
	return nil
}

// ValidateDescription reports ErrInvalidDescription unless description is
// valid UTF-8 and <= 1023 characters.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > 1023 {
		return fmt.Errorf("%w: longer than 1023 characters", ErrInvalidDescription)
	}
	if !utf8.ValidString(description) {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidDescription)
	}
	return nil
}

// ValidateInstrumentOptions validates the name/unit/description triple
// shared by every instrument kind.
func ValidateInstrumentOptions(name, unit, description string) error {
	if err := ValidateInstrumentName(name); err != nil {
		return err
	}
	if err := ValidateUnit(unit); err != nil {
		return err
	}
	if err := ValidateDescription(description); err != nil {
		return err
	}
	return nil
}

// meterIdentifier returns a stable 64-bit hash over a Meter's identifying
// fields: name, version and schema URL (empty string substituted when
// absent). Two getMeter calls with the same identifier (and matching
// attributes) return the same Meter.
func meterIdentifier(name, version, schemaURL string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	h.Write([]byte{0})
	_, _ = h.Write([]byte(version))
	h.Write([]byte{0})
	_, _ = h.Write([]byte(schemaURL))
	return h.Sum64()
}

// instrumentIdentifier returns the per-Meter identifier a new instrument's
// (name, kind, unit, description) must not collide on. Name is
// case-folded; unit and description participate verbatim, per
// OpenTelemetry's duplicate-instrument rules.
func instrumentIdentifier(name string, kind InstrumentKind, unit, description string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(description))
	descHash := h.Sum64()
	return fmt.Sprintf("%s|%d|%s|%x", strings.ToLower(name), kind, unit, descHash)
}
