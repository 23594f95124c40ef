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

package header

import (
	apperrors "github.com/songkit/songser/pkg/errors"
)

// APIVersion is the only document API version understood by this build.
const APIVersion = "songser.io/v1"

// Kind identifies the type of a document.
type Kind string

const (
	KindCatalog Kind = "Catalog"
)

func (k Kind) String() string {
	return string(k)
}

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindCatalog:
		return true
	default:
		return false
	}
}

// Header contains type and versioning information for songser documents.
type Header struct {
	Kind       Kind              `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string            `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Check validates the fields that are set. An empty kind or API version is
// accepted so headerless documents stay valid; a set kind must equal want.
func (h *Header) Check(want Kind) error {
	if h.Kind != "" {
		if !h.Kind.IsValid() {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				"unknown document kind", map[string]any{"kind": h.Kind})
		}
		if h.Kind != want {
			return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
				"unexpected document kind", map[string]any{"kind": h.Kind, "want": want})
		}
	}
	if h.APIVersion != "" && h.APIVersion != APIVersion {
		return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"unsupported apiVersion", map[string]any{"apiVersion": h.APIVersion, "supported": APIVersion})
	}
	return nil
}
