/*
Copyright © 2025 Skillsight Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"strings"
	"testing"
)

func TestNewCommandStructure(t *testing.T) {
	cmd := New()

	if cmd.Name != "skillsightd" {
		t.Errorf("expected command name skillsightd, got %q", cmd.Name)
	}
	if !strings.Contains(cmd.Version, versionDefault) {
		t.Errorf("expected version to contain %q, got %q", versionDefault, cmd.Version)
	}

	want := map[string]bool{"serve": false, "check": false}
	for _, sub := range cmd.Commands {
		if _, ok := want[sub.Name]; ok {
			want[sub.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestCheckRejectsUnknownFormat(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{name: "xml", format: "xml"},
		{name: "csv", format: "csv"},
		{name: "empty override", format: " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Format validation runs before any storage access, so the
			// command fails fast without config or network.
			err := New().Run(context.Background(),
				[]string{"skillsightd", "check", "--format", tt.format})
			if err == nil {
				t.Fatal("expected error for unknown format, got nil")
			}
			if !strings.Contains(err.Error(), "unknown output format") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
