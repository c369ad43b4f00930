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

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/protobuf/proto"

	colmetricpb "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
)

// Transport sends an already-assembled OTLP ExportMetricsServiceRequest
// to a collector and reports whether the attempt is worth retrying. Only
// an HTTP/protobuf transport is provided; a gRPC transport would need
// generated service-client stubs this module does not vendor.
type Transport interface {
	Upload(ctx context.Context, req *colmetricpb.ExportMetricsServiceRequest) error
}

// httpTransport uploads OTLP protobuf over HTTP to /v1/metrics.
type httpTransport struct {
	client  *http.Client
	url     string
	headers map[string]string
}

func newHTTPTransport(c config) *httpTransport {
	scheme := "https"
	if c.insecure {
		scheme = "http"
	}
	return &httpTransport{
		client:  &http.Client{Timeout: c.timeout},
		url:     fmt.Sprintf("%s://%s/v1/metrics", scheme, c.endpoint),
		headers: c.headers,
	}
}

// retryableError marks an error as eligible for the exporter's retry loop
// (a transient transport or server failure), versus one that should fail
// fast (a malformed request, a permanent 4xx).
type retryableError struct{ err error }

func (e retryableError) Error() string { return e.err.Error() }
func (e retryableError) Unwrap() error { return e.err }

func (t *httpTransport) Upload(ctx context.Context, req *colmetricpb.ExportMetricsServiceRequest) error {
	body, err := proto.Marshal(req)
	if err != nil {
		return fmt.Errorf("otlpmetric: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("otlpmetric: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-protobuf")
	for k, v := range t.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return retryableError{err: fmt.Errorf("otlpmetric: request failed: %w", err)}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return retryableError{err: fmt.Errorf("otlpmetric: server returned %s", resp.Status)}
	default:
		return fmt.Errorf("otlpmetric: server returned %s", resp.Status)
	}
}
