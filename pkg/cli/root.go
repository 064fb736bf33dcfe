/*
Copyright © 2025 Skillsight Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the skillsightd command line interface.
//
// Two commands exist: serve runs the read API daemon, and check
// resolves the live snapshot manifest once for deploy-time
// verification. Both read their settings from the environment; see
// pkg/config for the key list.
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/wyattowalsh/skillsight/pkg/serializer"
)

const (
	name           = "skillsightd"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatJSON),
		Usage: fmt.Sprintf("Output format (supported values: %s)",
			serializer.SupportedFormats()),
	}
)

// New builds the root command.
func New() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Skillsight snapshot read API",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Commands: []*cli.Command{
			serveCmd(),
			checkCmd(),
		},
		// Bare invocation serves, matching how the daemon is deployed.
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runServe(ctx)
		},
	}
}
