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

// Package client provides a shared Kubernetes client for ConfigMap track
// output and catalog input.
//
// The client is initialized once on first use and cached for subsequent
// calls:
//
//	clientset, config, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//
// For an explicit kubeconfig (e.g. the --kubeconfig CLI flag), use
// GetKubeClientWithConfig, which bypasses the cache.
//
// Discovery order when no path is given:
//   - KUBECONFIG environment variable
//   - ~/.kube/config
//   - In-cluster service account
package client
