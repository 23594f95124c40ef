// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package catalog

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/songkit/songser/pkg/defaults"
	apperrors "github.com/songkit/songser/pkg/errors"
)

// FetcherUserAgent is sent with every catalog request.
const FetcherUserAgent = "songser/1.0"

// FetcherOption defines a configuration option for Fetcher.
type FetcherOption func(*Fetcher)

// Fetcher downloads catalog documents over HTTP.
type Fetcher struct {
	UserAgent string
	Client    *http.Client
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) FetcherOption {
	return func(f *Fetcher) {
		f.UserAgent = userAgent
	}
}

// WithTimeout bounds the whole request, body included. Non-positive
// values keep the default.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.Client.Timeout = timeout
		}
	}
}

// WithInsecureSkipVerify disables server certificate verification.
func WithInsecureSkipVerify(skip bool) FetcherOption {
	return func(f *Fetcher) {
		if tr, ok := f.Client.Transport.(*http.Transport); ok && tr.TLSClientConfig != nil {
			tr.TLSClientConfig.InsecureSkipVerify = skip //nolint:gosec
		}
	}
}

// NewFetcher creates a Fetcher with pooled connections and bounded timeouts.
func NewFetcher(options ...FetcherOption) *Fetcher {
	f := &Fetcher{
		UserAgent: FetcherUserAgent,
		Client: &http.Client{
			Timeout:   defaults.HTTPClientTimeout,
			Transport: newDefaultHTTPTransport(),
		},
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

func newDefaultHTTPTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,

		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: 1 * time.Second,

		IdleConnTimeout:   defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2: true,

		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}
}

// Read fetches url and returns the body. Non-200 responses are errors.
func (f *Fetcher) Read(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, apperrors.WrapWithContext(apperrors.ErrCodeUnavailable,
			"catalog request failed", err, map[string]any{"url": url})
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			"catalog not found", map[string]any{"url": url})
	case resp.StatusCode != http.StatusOK:
		return nil, apperrors.NewWithContext(apperrors.ErrCodeUnavailable,
			fmt.Sprintf("failed to fetch catalog: status %s", resp.Status), map[string]any{"url": url})
	}

	if resp.ContentLength > maxCatalogBytes {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"catalog exceeds size limit", map[string]any{
				"source":   url,
				"maxBytes": maxCatalogBytes,
			})
	}
	return readCatalog(resp.Body, url)
}
