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
	"encoding/json"
	"testing"

	"github.com/opencontainers/go-digest"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oras.land/oras-go/v2/content"
	"oras.land/oras-go/v2/content/memory"

	apperrors "github.com/songkit/songser/pkg/errors"
)

const testDoc = `{"id": "1", "title": "Water of Love", "artist": "Dire Straits"}`

func TestPushDocument(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	desc, err := PushDocument(ctx, store, "water-of-love", Document{
		Content:     []byte(testDoc),
		MediaType:   "application/json",
		Title:       "1.json",
		Annotations: map[string]string{"org.opencontainers.image.version": "dev"},
	})
	require.NoError(t, err)
	assert.Equal(t, ociv1.MediaTypeImageManifest, desc.MediaType)

	resolved, err := store.Resolve(ctx, "water-of-love")
	require.NoError(t, err)
	assert.Equal(t, desc.Digest, resolved.Digest)

	raw, err := content.FetchAll(ctx, store, desc)
	require.NoError(t, err)

	var manifest ociv1.Manifest
	require.NoError(t, json.Unmarshal(raw, &manifest))
	assert.Equal(t, ArtifactType, manifest.ArtifactType)
	assert.Equal(t, "dev", manifest.Annotations["org.opencontainers.image.version"])
	require.Len(t, manifest.Layers, 1)

	layer := manifest.Layers[0]
	assert.Equal(t, "application/json", layer.MediaType)
	assert.Equal(t, "1.json", layer.Annotations[ociv1.AnnotationTitle])
	assert.Equal(t, digest.FromBytes([]byte(testDoc)), layer.Digest)

	body, err := content.FetchAll(ctx, store, layer)
	require.NoError(t, err)
	assert.Equal(t, testDoc, string(body))
}

func TestPushDocument_Validation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		tag  string
		doc  Document
	}{
		{
			name: "missing tag",
			doc:  Document{Content: []byte(testDoc), MediaType: "application/json"},
		},
		{
			name: "missing media type",
			tag:  "v1",
			doc:  Document{Content: []byte(testDoc)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PushDocument(ctx, memory.New(), tt.tag, tt.doc)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
		})
	}
}

func TestPush_RequiresReference(t *testing.T) {
	_, err := Push(context.Background(), PushOptions{}, Document{
		Content:   []byte(testDoc),
		MediaType: "application/json",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestCreateAuthClient(t *testing.T) {
	c := createAuthClient(false, true)
	require.NotNil(t, c)
	require.NotNil(t, c.Client)
	assert.NotNil(t, c.Cache)
}
