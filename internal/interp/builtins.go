// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/matt-FFFFFF/treesh/internal/ctxlog"
)

// exitFunc terminates the process. Tests replace it.
var exitFunc = os.Exit

// cd changes the working directory of the current process.
func (e *Evaluator) cd(ctx context.Context, c *cmdtree.SimpleCommand, depth int) int {
	if c.Out != nil {
		flags := truncFlags
		if c.IOMode == cmdtree.IOAppendOut {
			flags = appendFlags
		}

		f, err := os.OpenFile(e.expand(*c.Out), flags, redirectPerm)
		if err != nil {
			e.report(ctx, depth, "redirect", fmt.Errorf("%w: %w", ErrRedirectOutput, err))
			return StatusFailure
		}

		_ = f.Close()
	}

	switch {
	case len(c.Params) == 0:
		home, ok := os.LookupEnv("HOME")
		if !ok {
			fmt.Fprintln(e.Stderr, "cd: HOME not set") //nolint:errcheck
			return StatusFailure
		}

		return e.chdir(ctx, home)
	case e.expand(c.Params[0]) == "-":
		old, ok := os.LookupEnv("OLDPWD")
		if !ok {
			fmt.Fprintln(e.Stderr, "cd: OLDPWD not set") //nolint:errcheck
			return StatusFailure
		}

		return e.chdir(ctx, old)
	}

	// An explicit path records the current directory in OLDPWD before trying to change.
	cwd, err := os.Getwd()
	if err != nil {
		e.report(ctx, depth, "getcwd", err)
		return StatusFailure
	}

	if err := os.Setenv("OLDPWD", cwd); err != nil {
		e.report(ctx, depth, "setenv", err)
		return StatusFailure
	}

	return e.chdir(ctx, e.expand(c.Params[0]))
}

func (e *Evaluator) chdir(ctx context.Context, target string) int {
	if err := os.Chdir(target); err != nil {
		ctxlog.Debug(ctx, "chdir failed", "target", target, "error", err)
		fmt.Fprintf(e.Stderr, "cd: %s: No such file or directory\n", target) //nolint:errcheck

		return StatusFailure
	}

	ctxlog.Debug(ctx, "changed directory", "to", target)

	return StatusSuccess
}

// exit ends the current process with ShellExitStatus. Inside a subshell that ends the subshell only.
func (e *Evaluator) exit(ctx context.Context) int {
	ctxlog.Debug(ctx, "exit requested", "pid", os.Getpid())
	exitFunc(ShellExitStatus)

	return ShellExitStatus
}

// assign sets an environment variable for this process and everything it starts afterwards.
func (e *Evaluator) assign(ctx context.Context, name string, value cmdtree.Word, depth int) int {
	v := e.expand(value)
	if err := os.Setenv(name, v); err != nil {
		e.report(ctx, depth, "setenv", err)
		return StatusFailure
	}

	ctxlog.Debug(ctx, "variable assigned", "name", name)

	return StatusSuccess
}
