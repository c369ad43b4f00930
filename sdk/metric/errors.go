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

import "errors"

// Sentinel errors returned by MeterProvider, Meter, Reader and the
// exporter wrapper. Use errors.Is to test for them; they are frequently
// wrapped with identifying context (name, attributes) via fmt.Errorf("%w").
var (
	// ErrMeterExistsWithDifferentAttributes is returned by
	// MeterProvider.Meter when the same (name, version, schemaURL)
	// identity is requested with a different attribute set than a prior
	// call used.
	ErrMeterExistsWithDifferentAttributes = errors.New("metric: meter already exists with different attributes")

	// ErrInstrumentExists is returned by a Meter's instrument constructors
	// when the requested (name, kind, unit, description) identity already
	// has an instrument registered under it, including a byte-identical
	// repeat of a prior create call. The caller's partially constructed
	// instrument is discarded; the Meter's own state is left untouched.
	ErrInstrumentExists = errors.New("metric: instrument already exists with the same name and identifying fields")

	// ErrNegativeCounterValue is returned by Counter.Add when passed a
	// negative delta. Histogram.Record has no equivalent: the spec's
	// error taxonomy only constrains Counter this way.
	ErrNegativeCounterValue = errors.New("metric: counter measurement must be non-negative")

	// ErrReaderAlreadyAttached is returned by MeterProvider.AddReader
	// when the Reader is already attached to a MeterProvider (this one or
	// another).
	ErrReaderAlreadyAttached = errors.New("metric: reader is already attached to a meter provider")

	// ErrReaderNotAttached is returned by Reader.Collect when the Reader
	// has not been attached to a MeterProvider.
	ErrReaderNotAttached = errors.New("metric: reader is not attached to a meter provider")

	// ErrReaderShutdown is returned by Reader.ForceFlush invoked after
	// Shutdown has completed. Collect and Shutdown after Shutdown are
	// no-ops returning nil instead.
	ErrReaderShutdown = errors.New("metric: reader is shut down")

	// ErrProviderShutdown is returned by MeterProvider.Meter and
	// MeterProvider.AddReader once Shutdown has completed.
	ErrProviderShutdown = errors.New("metric: meter provider is shut down")

	// ErrExporterShutdown is returned by MetricExporter operations invoked
	// after Shutdown has completed.
	ErrExporterShutdown = errors.New("metric: exporter is shut down")

	// ErrExportFailed wraps an error returned by the underlying Exporter
	// capability during ExportBatch.
	ErrExportFailed = errors.New("metric: export failed")

	// ErrForceFlushTimeout is returned by MetricExporter.ForceFlush when
	// the in-flight export does not complete before the context deadline.
	ErrForceFlushTimeout = errors.New("metric: force flush timed out waiting for export to complete")
)
