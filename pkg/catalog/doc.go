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

// Package catalog loads track catalogs for batch serialization.
//
// A catalog is a YAML (or JSON) document with a list of tracks:
//
//	kind: Catalog            # optional header
//	apiVersion: songser.io/v1
//	tracks:
//	  - id: "1"
//	    title: Water of Love
//	    artist: Dire Straits
//
// Catalogs can be read from a local file, an HTTP(S) URL, or a Kubernetes
// ConfigMap (cm://namespace/name, data key "catalog.yaml"):
//
//	cat, err := catalog.Load(ctx, "cm://music/catalog")
//	t, err := cat.Find("1")
package catalog
