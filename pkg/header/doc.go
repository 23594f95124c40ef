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

// Package header provides the Kubernetes-style document header shared by
// songser documents.
//
// A header carries three optional fields:
//
//	kind: Catalog
//	apiVersion: songser.io/v1
//	metadata:
//	  owner: radio
//
// Documents embed Header inline so the fields sit at the top level of the
// YAML or JSON document. Check validates whatever fields are present.
package header
