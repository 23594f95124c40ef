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

// Package cli implements the songser command-line interface.
//
// # Commands
//
// serialize - Encode a track, or the tracks of a catalog:
//
//	songser serialize --id 1 --title "Water of Love" --artist "Dire Straits" [--format json|xml] [--output TARGET]
//	songser serialize --catalog tracks.yaml [--id 1] [--format xml]
//
// formats - List supported output formats with their content types.
//
// # Output Targets
//
//	(empty) or -              stdout
//	path/to/file              local file
//	cm://namespace/name       Kubernetes ConfigMap (server-side apply)
//	oci://registry/repo:tag   OCI artifact pushed to a registry
//
// # Environment Variables
//
//	SONGSER_FORMAT      Default for --format
//	SONGSER_OUTPUT      Default for --output
//	SONGSER_KUBECONFIG  Default for --kubeconfig
//	SONGSER_LOG_LEVEL   Default for --log-level
//
// # Exit Codes
//
//	0  Success
//	1  Any error (invalid flags, unsupported format, failed write)
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/songkit/songser/pkg/cli.version=1.0.0'"
package cli
