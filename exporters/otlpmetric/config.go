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

package otlpmetric // import "github.com/otelworks/metricsdk/exporters/otlpmetric"

import "time"

type config struct {
	endpoint string
	insecure bool
	headers  map[string]string
	timeout  time.Duration
	maxRetry time.Duration
}

func newConfig(opts []Option) config {
	c := config{
		endpoint: "localhost:4318",
		timeout:  10 * time.Second,
		maxRetry: time.Minute,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures an Exporter.
type Option func(*config)

// WithEndpoint sets the collector endpoint's host:port. Defaults to
// "localhost:4318".
func WithEndpoint(endpoint string) Option {
	return func(c *config) { c.endpoint = endpoint }
}

// WithInsecure disables TLS when talking to the endpoint.
func WithInsecure() Option {
	return func(c *config) { c.insecure = true }
}

// WithHeaders sets extra HTTP headers sent with every export request.
func WithHeaders(headers map[string]string) Option {
	return func(c *config) { c.headers = headers }
}

// WithTimeout overrides the per-request timeout. Defaults to 10s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithMaxRetryDuration bounds how long ExportBatch retries a failing
// request before giving up. Defaults to 1 minute.
func WithMaxRetryDuration(d time.Duration) Option {
	return func(c *config) { c.maxRetry = d }
}
