/*
Copyright © 2025 Skillsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/wyattowalsh/skillsight/pkg/cache"
	"github.com/wyattowalsh/skillsight/pkg/config"
	"github.com/wyattowalsh/skillsight/pkg/serializer"
	"github.com/wyattowalsh/skillsight/pkg/snapshot"
	"github.com/wyattowalsh/skillsight/pkg/storage"
)

func checkCmd() *cli.Command {
	return &cli.Command{
		Name:                  "check",
		EnableShellCompletion: true,
		Usage:                 "Resolve the live snapshot manifest once and print it",
		Description: `Resolve the active snapshot pointer against the configured bucket and
print the reconciled manifest. Intended for deploy-time verification:
a non-zero exit means the API would answer 503 for default queries.

The manifest can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			m, err := resolveManifest(ctx)
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() { _ = w.Close() }()
			return w.Serialize(ctx, m)
		},
	}
}

// resolveManifest wires the minimal read path: config, object storage,
// resolver. No edge cache is involved; check always reads live state.
func resolveManifest(ctx context.Context) (*snapshot.Manifest, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := storage.NewMinio(storage.Options{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.S3UseSSL,
		PathStyle: cfg.S3PathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting object storage: %w", err)
	}

	log := slog.Default()
	layout := snapshot.NewLayout(cfg.WebPrefix, cfg.LegacyPrefix)
	tier := cache.NewTier(store, cache.Noop{}, cfg.CacheTTL(), log)
	resolver := snapshot.NewResolver(tier, layout, cfg.CacheTTL(), log)

	m, found, err := resolver.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no snapshot manifest or legacy pointer exists in bucket %q", cfg.S3Bucket)
	}
	return m, nil
}
