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

package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/songkit/songser/pkg/errors"
	"github.com/songkit/songser/pkg/serializer"
)

const testCatalog = `tracks:
  - id: "1"
    title: Water of Love
    artist: Dire Straits
  - id: "2"
    title: Sultans of Swing
    artist: Dire Straits
`

func runCLI(t *testing.T, args ...string) error {
	t.Helper()
	return newRootCmd().Run(context.Background(), append([]string{name, "--log-level", "error"}, args...))
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracks.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	return path
}

func TestSerializeCmd_FromFlags(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{
			name:   "json",
			format: "json",
			want:   `{"id": "1", "title": "Water of Love", "artist": "Dire Straits"}` + "\n",
		},
		{
			name:   "xml",
			format: "XML",
			want:   `<song id="1"><title>Water of Love</title><artist>Dire Straits</artist></song>` + "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "track.out")
			err := runCLI(t, "serialize",
				"--id", "1",
				"--title", "Water of Love",
				"--artist", "Dire Straits",
				"--format", tt.format,
				"--output", out)
			require.NoError(t, err)
			assert.Equal(t, tt.want, readOutput(t, out))
		})
	}
}

func TestSerializeCmd_UnsupportedFormat(t *testing.T) {
	out := filepath.Join(t.TempDir(), "track.out")
	err := runCLI(t, "serialize", "--id", "1", "--format", "yaml", "--output", out)
	require.Error(t, err)

	var ufe *serializer.UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, serializer.Format("yaml"), ufe.Format)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output expected on error")
}

func TestSerializeCmd_MissingID(t *testing.T) {
	err := runCLI(t, "serialize", "--title", "Water of Love")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestSerializeCmd_FromCatalog(t *testing.T) {
	catalogPath := writeCatalog(t)

	t.Run("all tracks", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "tracks.xml")
		require.NoError(t, runCLI(t, "serialize", "--catalog", catalogPath, "--format", "xml", "--output", out))

		lines := strings.Split(strings.TrimSuffix(readOutput(t, out), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, `<song id="1"><title>Water of Love</title><artist>Dire Straits</artist></song>`, lines[0])
		assert.Equal(t, `<song id="2"><title>Sultans of Swing</title><artist>Dire Straits</artist></song>`, lines[1])
	})

	t.Run("single track by id", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "track.json")
		require.NoError(t, runCLI(t, "serialize", "--catalog", catalogPath, "--id", "2", "--output", out))
		assert.Equal(t, `{"id": "2", "title": "Sultans of Swing", "artist": "Dire Straits"}`+"\n", readOutput(t, out))
	})

	t.Run("unknown id", func(t *testing.T) {
		err := runCLI(t, "serialize", "--catalog", catalogPath, "--id", "99")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
	})

	t.Run("missing catalog", func(t *testing.T) {
		err := runCLI(t, "serialize", "--catalog", filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
	})
}

func TestSerializeCmd_SingleDocumentTargets(t *testing.T) {
	catalogPath := writeCatalog(t)

	for _, target := range []string{
		"cm://default/tracks",
		"oci://localhost:5000/songser/tracks:v1",
		" cm://default/tracks",
		"\toci://localhost:5000/songser/tracks:v1 ",
	} {
		t.Run(target, func(t *testing.T) {
			err := runCLI(t, "serialize", "--catalog", catalogPath, "--output", target)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
		})
	}
}

func TestSerializeCmd_CatalogOverHTTPS(t *testing.T) {
	var userAgent string
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(testCatalog))
	}))
	defer srv.Close()

	t.Run("untrusted certificate", func(t *testing.T) {
		err := runCLI(t, "serialize", "--catalog", srv.URL, "--id", "1")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))
	})

	t.Run("insecure tls", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "track.json")
		require.NoError(t, runCLI(t, "serialize", "--catalog", srv.URL, "--id", "1", "--insecure-tls", "--output", out))
		assert.Equal(t, `{"id": "1", "title": "Water of Love", "artist": "Dire Straits"}`+"\n", readOutput(t, out))
		assert.Equal(t, name+"/"+version, userAgent)
	})
}

func TestSerializeCmd_CatalogTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
		_, _ = w.Write([]byte(testCatalog))
	}))
	defer srv.Close()

	start := time.Now()
	err := runCLI(t, "serialize", "--catalog", srv.URL, "--catalog-timeout", "100ms")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeUnavailable, apperrors.CodeOf(err))
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestSerializeCmd_FormatFromEnv(t *testing.T) {
	t.Setenv("SONGSER_FORMAT", "xml")

	out := filepath.Join(t.TempDir(), "track.out")
	require.NoError(t, runCLI(t, "serialize", "--id", "7", "--output", out))
	assert.Equal(t, `<song id="7"><title></title><artist></artist></song>`+"\n", readOutput(t, out))
}

func TestFormatsCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.Writer = &buf

	require.NoError(t, cmd.Run(context.Background(), []string{name, "formats"}))

	out := buf.String()
	assert.Contains(t, out, "json")
	assert.Contains(t, out, "application/json")
	assert.Contains(t, out, "xml")
	assert.Contains(t, out, "application/xml")
}

func TestIsSingleDocumentTarget(t *testing.T) {
	assert.True(t, isSingleDocumentTarget("cm://ns/name"))
	assert.True(t, isSingleDocumentTarget("oci://ghcr.io/org/repo:tag"))
	assert.False(t, isSingleDocumentTarget("tracks.json"))
	assert.False(t, isSingleDocumentTarget(""))
	assert.False(t, isSingleDocumentTarget(serializer.StdoutTarget))
	assert.True(t, isSingleDocumentTarget("  cm://ns/name"))
}
