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

// Package oci publishes serialized tracks to OCI registries.
//
// A serialized track document is stored as a single-layer OCI 1.1 artifact:
// the layer holds the encoded bytes (application/json or application/xml)
// and the manifest carries the artifact type
// "application/vnd.songser.track". Consumers that don't understand the
// type should treat the artifact as an opaque blob.
//
// # Targets
//
// Output targets use the oci:// scheme:
//
//	oci://ghcr.io/songkit/tracks:water-of-love
//	oci://localhost:5000/tracks        (tag defaults to "latest")
//
// # Usage
//
//	ref, err := oci.ParseReference("oci://ghcr.io/songkit/tracks:v1")
//	if err != nil {
//	    return err
//	}
//	res, err := oci.Push(ctx, oci.PushOptions{Reference: ref}, oci.Document{
//	    Content:   []byte(doc),
//	    MediaType: "application/json",
//	    Title:     "track-1.json",
//	})
//
// PushDocument writes into any oras.Target, which is how tests stage
// documents in an in-memory store.
//
// # Authentication
//
// Credentials are loaded from the standard Docker configuration
// (~/.docker/config.json) through the ORAS credentials package.
package oci
