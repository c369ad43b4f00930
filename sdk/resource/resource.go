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

// Package resource holds the attributes describing the entity (process,
// host, service) producing telemetry. The metrics engine treats it as an
// opaque attribute.Set supplied at MeterProvider construction time; it is
// not itself re-derived from the environment here (out of scope per the
// metrics engine specification — resource detection is a collaborator).
package resource // import "github.com/otelworks/metricsdk/sdk/resource"

import "github.com/otelworks/metricsdk/attribute"

// Resource describes the entity producing telemetry via an attribute.Set.
type Resource struct {
	set attribute.Set
}

var empty = Resource{set: attribute.Empty()}

// Empty returns a Resource with no attributes.
func Empty() *Resource { return &empty }

// NewSchemaless creates a Resource from a list of attributes, without an
// associated schema URL.
func NewSchemaless(kvs ...attribute.KeyValue) *Resource {
	return &Resource{set: attribute.NewSet(kvs...)}
}

// Set returns the attributes describing r.
func (r *Resource) Set() attribute.Set {
	if r == nil {
		return attribute.Empty()
	}
	return r.set
}
