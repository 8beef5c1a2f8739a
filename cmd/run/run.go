// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the run command, which evaluates a command tree.
package run

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/treesh/internal/ctxlog"
	"github.com/matt-FFFFFF/treesh/internal/interp"
	"github.com/matt-FFFFFF/treesh/internal/treefile"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag     = "file"
	logLevelFlag = "log-level"
	jsonLogFlag  = "json-log"
	shellFlag    = "shell"
	cliExitStr   = ""
)

var (
	// ErrLoadTree is returned when the tree file cannot be loaded.
	ErrLoadTree = errors.New("failed to load command tree")
	// ErrLogLevel is returned for an unknown log level.
	ErrLogLevel = errors.New("unknown log level")
)

// stdio returns the streams the tree is evaluated against.
var stdio = func() (stdin, stdout, stderr *os.File) {
	return os.Stdin, os.Stdout, os.Stderr
}

// RunCmd is the command that evaluates a command tree file.
var RunCmd = New()

// New creates the run command.
func New() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Evaluate a command tree",
		Description: `Evaluate the command tree in the specified file.
The process exits with the tree's exit status.

Tree file URLs use Hashicorp's go-getter syntax, which allows for fetching files from various sources.
See https://github.com/hashicorp/go-getter.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     fileFlag,
				Aliases:  []string{"f"},
				Usage:    "Specify the path or URL of the tree file (.yaml, .yml, .json or .hcl)",
				Required: true,
				OnlyOnce: true,
			},
			&cli.StringFlag{
				Name:    logLevelFlag,
				Aliases: []string{"l"},
				Usage:   "Set the log level (debug, info, warn, error). Overrides " + ctxlog.LogLevelEnvVar,
				Sources: cli.EnvVars(ctxlog.LogLevelEnvVar),
			},
			&cli.BoolFlag{
				Name:        jsonLogFlag,
				Usage:       "Write logs as JSON",
				Value:       false,
				DefaultText: "false",
			},
			&cli.StringFlag{
				Name:      shellFlag,
				Usage:     "Executable used for subshells. Defaults to this program",
				TakesFile: true,
			},
		},
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	if s := cmd.String(logLevelFlag); s != "" {
		level, ok := ctxlog.ParseLevel(s)
		if !ok {
			return cli.Exit(fmt.Errorf("%w: %q", ErrLogLevel, s), 1)
		}

		ctxlog.SetLevel(level)
	}

	if cmd.Bool(jsonLogFlag) {
		ctx = ctxlog.UseJSON(ctx)
	}

	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	logger.Debug("running run command")

	src := cmd.String(fileFlag)

	root, err := treefile.Load(ctx, src)
	if err != nil {
		return cli.Exit(errors.Join(ErrLoadTree, err), 1)
	}

	stdin, stdout, stderr := stdio()
	opts := []interp.Option{interp.WithStdio(stdin, stdout, stderr)}

	if shell := cmd.String(shellFlag); shell != "" {
		opts = append(opts, interp.WithShell(shell))
	}

	status := interp.New(opts...).Run(ctx, root)
	logger.Debug("tree finished", "file", src, "status", status)

	if status != interp.StatusSuccess {
		return cli.Exit(cliExitStr, status)
	}

	return nil
}
