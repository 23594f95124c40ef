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

package serializer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	accorev1 "k8s.io/client-go/applyconfigurations/core/v1"

	"github.com/songkit/songser/pkg/defaults"
	apperrors "github.com/songkit/songser/pkg/errors"
	"github.com/songkit/songser/pkg/k8s/client"
	"github.com/songkit/songser/pkg/track"
)

const (
	// ConfigMapURIScheme prefixes ConfigMap targets: cm://namespace/name.
	ConfigMapURIScheme = "cm://"

	fieldManager = "songser"
)

// ConfigMapWriter writes a serialized track to a Kubernetes ConfigMap.
// The ConfigMap is created if it doesn't exist, or updated if it does.
type ConfigMapWriter struct {
	namespace  string
	name       string
	format     Format
	version    string
	kubeconfig string
	client     client.Interface
	now        func() time.Time
}

// NewConfigMapWriter creates a new ConfigMapWriter that writes to the specified
// namespace and ConfigMap name in the given format.
func NewConfigMapWriter(namespace, name string, format Format) *ConfigMapWriter {
	return &ConfigMapWriter{
		namespace: namespace,
		name:      name,
		format:    format,
		version:   "unknown",
		now:       time.Now,
	}
}

// Serialize applies a ConfigMap holding the encoded track.
// The ConfigMap will have:
//   - data.track.{json|xml}: the encoded document
//   - data.format: the format tag
//   - data.id: the track id
//   - data.timestamp: RFC 3339 time of the write
func (w *ConfigMapWriter) Serialize(ctx context.Context, t track.Track) error {
	doc, err := Serialize(t, w.format)
	if err != nil {
		return err
	}

	writeCtx, cancel := context.WithTimeout(ctx, defaults.ConfigMapWriteTimeout)
	defer cancel()

	cs := w.client
	if cs == nil {
		c, restCfg, err := client.GetKubeClientWithConfig(w.kubeconfig)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to get kubernetes client", err)
		}
		cs = c
		slog.Debug("configmap client ready", "auth_method", client.AuthMethod(restCfg))
	}

	data := map[string]string{
		"track." + w.format.Extension(): doc,
		"format":                        string(w.format),
		"id":                            t.ID,
		"timestamp":                     w.now().UTC().Format(time.RFC3339),
	}

	cm := accorev1.ConfigMap(w.name, w.namespace).
		WithLabels(map[string]string{
			"app.kubernetes.io/name":      "songser",
			"app.kubernetes.io/component": "track",
			"app.kubernetes.io/version":   w.version,
		}).
		WithData(data)

	slog.Info("applying ConfigMap",
		"namespace", w.namespace,
		"name", w.name,
		"format", w.format,
		"id", t.ID)

	// Force takes ownership from earlier field managers.
	_, err = cs.CoreV1().ConfigMaps(w.namespace).Apply(writeCtx, cm, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	})
	if err != nil {
		return fmt.Errorf("failed to apply ConfigMap %s/%s: %w", w.namespace, w.name, err)
	}

	return nil
}

// Close is a no-op for ConfigMapWriter as there are no resources to release.
func (w *ConfigMapWriter) Close() error {
	return nil
}

// ParseConfigMapURI parses a ConfigMap URI in the format cm://namespace/name
// and returns the namespace and name components.
func ParseConfigMapURI(uri string) (namespace, name string, err error) {
	if !strings.HasPrefix(uri, ConfigMapURIScheme) {
		return "", "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid ConfigMap URI: must start with "+ConfigMapURIScheme, map[string]any{"uri": uri})
	}

	path := strings.TrimPrefix(uri, ConfigMapURIScheme)

	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return "", "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid ConfigMap URI: expected "+ConfigMapURIScheme+"namespace/name", map[string]any{"uri": uri})
	}

	namespace = strings.TrimSpace(parts[0])
	name = strings.TrimSpace(parts[1])

	if namespace == "" {
		return "", "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid ConfigMap URI: namespace cannot be empty", map[string]any{"uri": uri})
	}
	if name == "" {
		return "", "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"invalid ConfigMap URI: name cannot be empty", map[string]any{"uri": uri})
	}

	return namespace, name, nil
}
