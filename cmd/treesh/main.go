// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the treesh command-line application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/treesh"
	"github.com/matt-FFFFFF/treesh/cmd"
	"github.com/matt-FFFFFF/treesh/internal/ctxlog"
	"github.com/matt-FFFFFF/treesh/internal/interp"
)

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.FromEnv())

	// Subshells are this binary re-executed with a subtree to evaluate.
	if interp.IsSubshell() {
		os.Exit(interp.RunSubshell(ctx))
	}

	cmd.RootCmd.Version = fmt.Sprintf("%s (commit: %s)", treesh.Version, treesh.Commit)

	if err := cmd.RootCmd.Run(ctx, os.Args); err != nil {
		ctxlog.Logger(ctx).Error("command failed", "error", err)
		os.Exit(1)
	}

	os.Exit(0)
}
