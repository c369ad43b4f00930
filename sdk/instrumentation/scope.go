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

// Package instrumentation describes the instrumentation scope that produced
// a piece of telemetry: the name/version/schema_url a Meter was created
// with.
package instrumentation // import "github.com/otelworks/metricsdk/sdk/instrumentation"

// Scope represents the instrumentation scope that created a Meter:
// its name, version, and schema URL. Two Scopes with equal fields are
// the same scope; Scope is comparable and safe to use as a map key.
type Scope struct {
	// Name is the name of the instrumentation scope, typically the library
	// or component that created the Meter.
	Name string
	// Version is the version of the instrumentation library.
	Version string
	// SchemaURL of the telemetry emitted by the scope.
	SchemaURL string
}
