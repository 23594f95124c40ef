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
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/songkit/songser/pkg/defaults"
	apperrors "github.com/songkit/songser/pkg/errors"
	"github.com/songkit/songser/pkg/k8s/client"
	"github.com/songkit/songser/pkg/serializer"
)

// ConfigMapDataKey is the ConfigMap data key holding the catalog document.
const ConfigMapDataKey = "catalog.yaml"

// maxCatalogBytes bounds how much of a catalog source is read.
const maxCatalogBytes = 8 << 20

// Option configures a Loader.
type Option func(*Loader)

// WithKubeconfig sets the kubeconfig used for cm:// sources.
func WithKubeconfig(path string) Option {
	return func(l *Loader) {
		l.kubeconfig = path
	}
}

// WithKubeClient injects the Kubernetes client used for cm:// sources.
func WithKubeClient(c client.Interface) Option {
	return func(l *Loader) {
		l.kubeClient = c
	}
}

// WithFetcher sets the fetcher used for http(s) sources.
func WithFetcher(f *Fetcher) Option {
	return func(l *Loader) {
		l.fetcher = f
	}
}

// Loader reads catalogs from files, URLs, and ConfigMaps.
type Loader struct {
	kubeconfig string
	kubeClient client.Interface
	fetcher    *Fetcher
}

// NewLoader returns a Loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	if l.fetcher == nil {
		l.fetcher = NewFetcher()
	}
	return l
}

// Load reads a catalog with a default Loader.
func Load(ctx context.Context, source string, opts ...Option) (*Catalog, error) {
	return NewLoader(opts...).Load(ctx, source)
}

// Load reads and validates the catalog at source. The source is a
// cm://namespace/name URI, an http(s) URL, or a file path.
func (l *Loader) Load(ctx context.Context, source string) (*Catalog, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "catalog source is required")
	}

	var (
		c   *Catalog
		err error
	)
	switch {
	case strings.HasPrefix(source, serializer.ConfigMapURIScheme):
		c, err = l.fromConfigMap(ctx, source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		c, err = l.fromURL(ctx, source)
	default:
		c, err = fromFile(source)
	}
	if err != nil {
		return nil, err
	}

	slog.Debug("catalog loaded", "source", source, "tracks", c.Len())
	return c, nil
}

func fromFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeNotFound,
				"catalog file not found", err, map[string]any{"path": path})
		}
		return nil, fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	data, err := readCatalog(f, path)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data))
}

// readCatalog reads all of r, failing rather than truncating when the
// source is larger than maxCatalogBytes.
func readCatalog(r io.Reader, source string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxCatalogBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", source, err)
	}
	if len(data) > maxCatalogBytes {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"catalog exceeds size limit", map[string]any{
				"source":   source,
				"maxBytes": maxCatalogBytes,
			})
	}
	return data, nil
}

func (l *Loader) fromURL(ctx context.Context, url string) (*Catalog, error) {
	data, err := l.fetcher.Read(ctx, url)
	if err != nil {
		return nil, err
	}
	return Parse(bytes.NewReader(data))
}

func (l *Loader) fromConfigMap(ctx context.Context, uri string) (*Catalog, error) {
	namespace, name, err := serializer.ParseConfigMapURI(uri)
	if err != nil {
		return nil, err
	}

	cs := l.kubeClient
	if cs == nil {
		cs, _, err = client.GetKubeClientWithConfig(l.kubeconfig)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to get kubernetes client", err)
		}
	}

	readCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapReadTimeout)
	defer cancel()

	cm, err := cs.CoreV1().ConfigMaps(namespace).Get(readCtx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get ConfigMap %s/%s: %w", namespace, name, err)
	}

	content, ok := cm.Data[ConfigMapDataKey]
	if !ok {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeNotFound,
			"ConfigMap has no catalog data", map[string]any{
				"namespace": namespace,
				"name":      name,
				"key":       ConfigMapDataKey,
			})
	}

	slog.Debug("reading catalog from ConfigMap",
		"namespace", namespace,
		"name", name,
		"size", len(content))

	return Parse(strings.NewReader(content))
}
