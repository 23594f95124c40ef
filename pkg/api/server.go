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

package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/songkit/songser/pkg/catalog"
	"github.com/songkit/songser/pkg/defaults"
	"github.com/songkit/songser/pkg/logging"
	"github.com/songkit/songser/pkg/server"
)

const (
	name           = "songserd"
	versionDefault = "dev"

	// EnvCatalog names the catalog source served for id-only lookups.
	EnvCatalog = "SONGSER_CATALOG"
	// EnvKubeconfig names the kubeconfig used for cm:// catalogs.
	EnvKubeconfig = "SONGSER_KUBECONFIG"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/songkit/songser/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	ctx := context.Background()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	opts, err := handlerOptions(ctx)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		return err
	}

	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(routes(NewHandler(opts...))),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}

func routes(h *Handler) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/v1/serialize": server.WithTimeout(h.HandleSerialize, defaults.SerializeHandlerTimeout),
	}
}

func handlerOptions(ctx context.Context) ([]HandlerOption, error) {
	source := os.Getenv(EnvCatalog)
	if source == "" {
		return nil, nil
	}

	c, err := catalog.Load(ctx, source,
		catalog.WithKubeconfig(os.Getenv(EnvKubeconfig)),
		catalog.WithFetcher(catalog.NewFetcher(catalog.WithUserAgent(name+"/"+version))),
	)
	if err != nil {
		return nil, err
	}
	slog.Info("catalog loaded", "source", source, "tracks", c.Len())
	return []HandlerOption{WithCatalog(c)}, nil
}
