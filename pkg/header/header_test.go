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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/songkit/songser/pkg/errors"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		wantErr bool
	}{
		{name: "empty header", header: Header{}},
		{name: "full header", header: Header{Kind: KindCatalog, APIVersion: APIVersion}},
		{name: "kind only", header: Header{Kind: KindCatalog}},
		{name: "unknown kind", header: Header{Kind: "Playlist"}, wantErr: true},
		{name: "bad api version", header: Header{Kind: KindCatalog, APIVersion: "songser.io/v2"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.Check(KindCatalog)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestKind_IsValid(t *testing.T) {
	assert.True(t, KindCatalog.IsValid())
	assert.False(t, Kind("").IsValid())
	assert.False(t, Kind("Playlist").IsValid())
	assert.Equal(t, "Catalog", KindCatalog.String())
}
