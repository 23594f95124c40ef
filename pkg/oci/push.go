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

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/opencontainers/go-digest"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"

	apperrors "github.com/songkit/songser/pkg/errors"
)

// ArtifactType is the artifact type of pushed track manifests.
const ArtifactType = "application/vnd.songser.track"

// Document is one serialized track to publish.
type Document struct {
	// Content is the encoded track.
	Content []byte
	// MediaType is the layer media type (e.g., "application/json").
	MediaType string
	// Title becomes the layer's org.opencontainers.image.title annotation.
	Title string
	// Annotations are added to the manifest.
	Annotations map[string]string
}

// PushOptions configures a registry push.
type PushOptions struct {
	// Reference is the parsed destination.
	Reference *Reference
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
}

// PushResult contains the result of a successful OCI push.
type PushResult struct {
	// Digest is the manifest digest.
	Digest string
	// ContentDigest is the digest of the document layer.
	ContentDigest string
	// Reference is the full image reference (registry/repository:tag).
	Reference string
}

// PushDocument stores doc as a single-layer artifact in target and tags the
// manifest. It returns the manifest descriptor.
func PushDocument(ctx context.Context, target oras.Target, tag string, doc Document) (ociv1.Descriptor, error) {
	if tag == "" {
		return ociv1.Descriptor{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "tag is required to push OCI artifact")
	}
	if doc.MediaType == "" {
		return ociv1.Descriptor{}, apperrors.New(apperrors.ErrCodeInvalidRequest, "document media type is required")
	}

	layer, err := oras.PushBytes(ctx, target, doc.MediaType, doc.Content)
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to push document layer: %w", err)
	}
	if doc.Title != "" {
		layer.Annotations = map[string]string{ociv1.AnnotationTitle: doc.Title}
	}

	manifest, err := oras.PackManifest(ctx, target, oras.PackManifestVersion1_1, ArtifactType,
		oras.PackManifestOptions{
			Layers:              []ociv1.Descriptor{layer},
			ManifestAnnotations: doc.Annotations,
		})
	if err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to pack manifest: %w", err)
	}

	if err := target.Tag(ctx, manifest, tag); err != nil {
		return ociv1.Descriptor{}, fmt.Errorf("failed to tag manifest: %w", err)
	}

	return manifest, nil
}

// Push stages doc in memory and copies it to the remote repository named
// by opts.Reference.
func Push(ctx context.Context, opts PushOptions, doc Document) (*PushResult, error) {
	if opts.Reference == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "OCI reference is required")
	}
	ref := opts.Reference

	store := memory.New()
	if _, err := PushDocument(ctx, store, ref.Tag, doc); err != nil {
		return nil, err
	}

	repo, err := remote.NewRepository(ref.Repo())
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "failed to initialize remote repository", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = createAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	slog.Info("pushing track artifact",
		"registry", ref.Registry,
		"repository", ref.Repository,
		"tag", ref.Tag,
		"mediaType", doc.MediaType,
	)

	desc, err := oras.Copy(ctx, store, ref.Tag, repo, ref.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeUnavailable, "failed to push artifact to registry", err)
	}

	res := &PushResult{
		Digest:        desc.Digest.String(),
		ContentDigest: digest.FromBytes(doc.Content).String(),
		Reference:     ref.ImageReference(),
	}

	slog.Info("track artifact pushed",
		"reference", res.Reference,
		"digest", res.Digest,
	)

	return res, nil
}

// createAuthClient creates an HTTP client with optional TLS configuration
// and Docker credential support.
func createAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, err := credentials.NewStoreFromDocker(credentials.StoreOptions{})
	if err != nil {
		slog.Debug("docker credential store unavailable", "error", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	client := &auth.Client{
		Client: &http.Client{Transport: transport},
		Cache:  auth.NewCache(),
	}
	if credStore != nil {
		client.Credential = credentials.Credential(credStore)
	}
	return client
}
