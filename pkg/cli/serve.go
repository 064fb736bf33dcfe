/*
Copyright © 2025 Skillsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/wyattowalsh/skillsight/pkg/api"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:                  "serve",
		EnableShellCompletion: true,
		Usage:                 "Run the read API daemon",
		Description: `Run the HTTP read API over the configured object storage bucket.
The daemon serves search, listing, detail, and artifact pass-through
endpoints and shuts down gracefully on SIGINT/SIGTERM.`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx)
		},
	}
}

func runServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Serve(gctx)
	})
	return g.Wait()
}
