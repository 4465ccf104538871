// Package commands provides high-level command implementations for dotfiles.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the reconciliation engine.
//
// Each command is implemented in its own subdirectory:
//   - status/   - read-only report of repository entries and their links
//   - add/      - bring one path under management
//   - internal/ - mappings file loading shared by both
//
// This file re-exports the command functions so the CLI depends on a single
// package.
package commands

import (
	"context"

	"github.com/arthur-debert/dotfiles/pkg/commands/add"
	"github.com/arthur-debert/dotfiles/pkg/commands/status"
)

// StatusOptions configures Status.
type StatusOptions = status.Options

// StatusResult is returned by Status.
type StatusResult = status.Result

// Status reports every repository entry and how it relates to home.
func Status(opts StatusOptions) (*StatusResult, error) {
	return status.Run(opts)
}

// AddOptions configures Add.
type AddOptions = add.Options

// AddResult is returned by Add.
type AddResult = add.Result

// Add plans and applies the changes that bring one path under management.
func Add(ctx context.Context, opts AddOptions) (*AddResult, error) {
	return add.Run(ctx, opts)
}
