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

	"github.com/songkit/songser/pkg/track"
)

// Sink delivers a serialized track to a destination.
//
// The context is used for cancellation and timeouts by implementations that
// perform remote I/O (ConfigMap writes, registry pushes).
type Sink interface {
	Serialize(ctx context.Context, t track.Track) error
}

// Closer is an optional interface that Sinks can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}
