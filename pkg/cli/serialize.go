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
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/songkit/songser/pkg/catalog"
	"github.com/songkit/songser/pkg/defaults"
	apperrors "github.com/songkit/songser/pkg/errors"
	"github.com/songkit/songser/pkg/oci"
	"github.com/songkit/songser/pkg/serializer"
	"github.com/songkit/songser/pkg/track"
)

func serializeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serialize",
		Aliases:               []string{"ser"},
		EnableShellCompletion: true,
		Usage:                 "Serialize a track, or the tracks of a catalog, to JSON or XML",
		Description: `Serialize a single track described by flags:

  songser serialize --id 1 --title "Water of Love" --artist "Dire Straits" --format xml

Or every track of a catalog (or only --id) loaded from a file, an HTTP/HTTPS URL,
or a ConfigMap (cm://namespace/name):

  songser serialize --catalog tracks.yaml --output tracks.json

ConfigMap and OCI targets hold a single document, so serializing a whole catalog
to them requires --id.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Track identifier (required unless --catalog is set)",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "Track title",
			},
			&cli.StringFlag{
				Name:  "artist",
				Usage: "Track artist",
			},
			&cli.StringFlag{
				Name:    "catalog",
				Aliases: []string{"c"},
				Usage: `Path/URI of a track catalog.
	Supports: file paths, HTTP/HTTPS URLs, or ConfigMap URIs (cm://namespace/name).`,
			},
			&cli.DurationFlag{
				Name:  "catalog-timeout",
				Usage: "Timeout for fetching an HTTP/HTTPS catalog",
				Value: defaults.HTTPClientTimeout,
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for oci:// targets (for local development)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for oci:// targets and HTTPS catalogs",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			tracks, err := tracksFromCmd(ctx, cmd)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(cmd.String("output"))
			if len(tracks) > 1 && isSingleDocumentTarget(target) {
				return apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
					"target holds a single track, use --id to select one",
					map[string]any{"output": target, "tracks": len(tracks)})
			}

			sink, err := serializer.NewFileWriterOrStdout(outFormat, target,
				serializer.WithKubeconfig(cmd.String("kubeconfig")),
				serializer.WithVersion(version),
				serializer.WithPlainHTTP(cmd.Bool("plain-http")),
				serializer.WithInsecureTLS(cmd.Bool("insecure-tls")),
			)
			if err != nil {
				return fmt.Errorf("failed to create output for %q: %w", target, err)
			}
			defer func() {
				if closer, ok := sink.(serializer.Closer); ok {
					if err := closer.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}
			}()

			for _, t := range tracks {
				if err := sink.Serialize(ctx, t); err != nil {
					return fmt.Errorf("failed to serialize track %q: %w", t.ID, err)
				}
			}

			if ow, ok := sink.(*serializer.OCIWriter); ok && ow.Result() != nil {
				res := ow.Result()
				slog.Info("track pushed",
					"reference", res.Reference,
					"digest", res.Digest)
			}

			slog.Debug("serialization complete",
				"tracks", len(tracks),
				"format", outFormat)

			return nil
		},
	}
}

// tracksFromCmd returns the tracks selected by the flags of cmd: the catalog
// (or its --id entry) when --catalog is set, otherwise a single track built
// from --id, --title and --artist.
func tracksFromCmd(ctx context.Context, cmd *cli.Command) ([]track.Track, error) {
	id := cmd.String("id")

	source := cmd.String("catalog")
	if source == "" {
		t := track.New(id, cmd.String("title"), cmd.String("artist"))
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid track: %w", err)
		}
		return []track.Track{t}, nil
	}

	if cmd.IsSet("title") || cmd.IsSet("artist") {
		slog.Warn("--title and --artist are ignored when --catalog is set")
	}

	fetcher := catalog.NewFetcher(
		catalog.WithUserAgent(name+"/"+version),
		catalog.WithTimeout(cmd.Duration("catalog-timeout")),
		catalog.WithInsecureSkipVerify(cmd.Bool("insecure-tls")),
	)
	c, err := catalog.Load(ctx, source,
		catalog.WithKubeconfig(cmd.String("kubeconfig")),
		catalog.WithFetcher(fetcher),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %q: %w", source, err)
	}

	if id != "" {
		t, err := c.Find(id)
		if err != nil {
			return nil, err
		}
		return []track.Track{t}, nil
	}

	return c.Tracks, nil
}

func isSingleDocumentTarget(target string) bool {
	target = strings.TrimSpace(target)
	return strings.HasPrefix(target, serializer.ConfigMapURIScheme) || oci.IsReference(target)
}
