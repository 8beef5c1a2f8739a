// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/matt-FFFFFF/treesh/cmd/run"
	"github.com/matt-FFFFFF/treesh/cmd/show"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		run.RunCmd,
		show.ShowCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "treesh",
	Description: `treesh evaluates shell command trees.
A tree combines simple commands with sequencing (;), parallel execution (&),
conditional chaining (|| and &&) and pipelines (|). Trees are read from YAML or HCL files.`,
	Usage:     "treesh run -f tree.yaml",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}
