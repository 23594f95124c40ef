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
	"io"
	"os"
	"strings"

	"github.com/songkit/songser/pkg/k8s/client"
	"github.com/songkit/songser/pkg/oci"
	"github.com/songkit/songser/pkg/track"
)

// StdoutTarget is the explicit target name for standard output.
const StdoutTarget = "-"

// Writer writes serialized tracks, one document per line, to an io.Writer.
// Close must be called to release file handles when using NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a new Writer with the specified format and output destination.
// If output is nil, os.Stdout will be used.
func NewWriter(format Format, output io.Writer) (*Writer, error) {
	if _, err := EncoderFor(format); err != nil {
		return nil, err
	}
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		format: format,
		output: output,
	}, nil
}

// NewStdoutWriter creates a new Writer that outputs to stdout in the specified format.
func NewStdoutWriter(format Format) (*Writer, error) {
	return NewWriter(format, os.Stdout)
}

// WriterOption configures the sinks built by NewFileWriterOrStdout.
type WriterOption func(*writerOptions)

type writerOptions struct {
	kubeconfig  string
	kubeClient  client.Interface
	version     string
	plainHTTP   bool
	insecureTLS bool
}

// WithKubeconfig sets the kubeconfig used for cm:// targets.
func WithKubeconfig(path string) WriterOption {
	return func(o *writerOptions) {
		o.kubeconfig = path
	}
}

// WithKubeClient injects the Kubernetes client used for cm:// targets.
func WithKubeClient(c client.Interface) WriterOption {
	return func(o *writerOptions) {
		o.kubeClient = c
	}
}

// WithVersion sets the version recorded on written ConfigMaps and artifacts.
func WithVersion(v string) WriterOption {
	return func(o *writerOptions) {
		o.version = v
	}
}

// WithPlainHTTP talks to OCI registries over HTTP.
func WithPlainHTTP(v bool) WriterOption {
	return func(o *writerOptions) {
		o.plainHTTP = v
	}
}

// WithInsecureTLS skips registry certificate verification.
func WithInsecureTLS(v bool) WriterOption {
	return func(o *writerOptions) {
		o.insecureTLS = v
	}
}

// NewFileWriterOrStdout creates a Sink for the given target:
//
//   - "" or "-" writes to stdout
//   - cm://namespace/name applies a ConfigMap
//   - oci://registry/repository[:tag] pushes an OCI artifact
//   - anything else creates (or truncates) a local file
//
// Remember to call Close() on sinks that implement Closer.
func NewFileWriterOrStdout(format Format, target string, opts ...WriterOption) (Sink, error) {
	if _, err := EncoderFor(format); err != nil {
		return nil, err
	}

	o := &writerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	trimmed := strings.TrimSpace(target)
	switch {
	case trimmed == "" || trimmed == StdoutTarget:
		return NewStdoutWriter(format)

	case strings.HasPrefix(trimmed, ConfigMapURIScheme):
		namespace, name, err := ParseConfigMapURI(trimmed)
		if err != nil {
			return nil, err
		}
		w := NewConfigMapWriter(namespace, name, format)
		w.kubeconfig = o.kubeconfig
		w.client = o.kubeClient
		if o.version != "" {
			w.version = o.version
		}
		return w, nil

	case oci.IsReference(trimmed):
		ref, err := oci.ParseReference(trimmed)
		if err != nil {
			return nil, err
		}
		w := NewOCIWriter(ref, format)
		w.plainHTTP = o.plainHTTP
		w.insecureTLS = o.insecureTLS
		if o.version != "" {
			w.version = o.version
		}
		return w, nil
	}

	file, err := os.Create(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", trimmed, err)
	}

	return &Writer{
		format: format,
		output: file,
		closer: file,
	}, nil
}

// Close releases any resources associated with the Writer.
// It's safe to call Close multiple times or on stdout-based writers.
func (w *Writer) Close() error {
	if w.closer == nil {
		return nil
	}
	err := w.closer.Close()
	w.closer = nil
	return err
}

// Serialize writes t in the writer's format followed by a newline.
// Context is provided for consistency with the Sink interface,
// but is not actively used for file/stdout writes.
func (w *Writer) Serialize(ctx context.Context, t track.Track) error {
	doc, err := Serialize(t, w.format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w.output, doc+"\n"); err != nil {
		return fmt.Errorf("failed to write %s document: %w", w.format, err)
	}
	return nil
}
