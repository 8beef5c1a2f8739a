// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/matt-FFFFFF/treesh/internal/ctxlog"
	"github.com/matt-FFFFFF/treesh/internal/expand"
)

// runSimple executes a leaf: a builtin, an assignment or an external program.
func (e *Evaluator) runSimple(ctx context.Context, c *cmdtree.SimpleCommand, depth int) int {
	if c == nil {
		return StatusSuccess
	}

	if len(c.Verb.Parts) == 1 && !c.Verb.Parts[0].Expand {
		switch c.Verb.Parts[0].Text {
		case "cd":
			return e.cd(ctx, c, depth)
		case "exit", "quit":
			return e.exit(ctx)
		}
	}

	if name, value, ok := c.Assignment(); ok {
		return e.assign(ctx, name, value, depth)
	}

	return e.runExternal(ctx, c, depth)
}

// runExternal starts the program named by the expanded verb with its redirections in place
// and waits for it. Redirected files are closed as soon as the program has started.
func (e *Evaluator) runExternal(ctx context.Context, c *cmdtree.SimpleCommand, depth int) int {
	argv := append([]string{e.expand(c.Verb)}, expand.All(e.exp(), c.Params)...)
	logger := ctxlog.Logger(ctx).With("depth", depth, "argv0", argv[0])

	redir, err := e.redirect(c, e.stdio())
	if err != nil {
		e.report(ctx, depth, "redirect", err)
		return StatusFailure
	}

	defer func() {
		if err := redir.Close(); err != nil {
			e.report(ctx, depth, "close", err)
		}
	}()

	path, err := exec.LookPath(argv[0])
	if errors.Is(err, exec.ErrDot) {
		err = nil
	}

	if err != nil {
		logger.Debug("program not found", "error", err)
		return executionFailed(redir.files[2], argv[0])
	}

	proc, err := os.StartProcess(path, argv, &os.ProcAttr{
		Env:   os.Environ(),
		Files: redir.files[:],
	})
	if err != nil {
		if errors.Is(err, syscall.EAGAIN) || errors.Is(err, syscall.ENOMEM) {
			e.report(ctx, depth, "fork", err)
			return StatusFailure
		}

		logger.Debug("program could not be started", "error", err)

		return executionFailed(redir.files[2], argv[0])
	}

	logger.Debug("program started", "pid", proc.Pid)

	if err := redir.Close(); err != nil {
		e.report(ctx, depth, "close", err)
	}

	status := e.wait(ctx, depth, proc)
	logger.Debug("program finished", "pid", proc.Pid, "status", status)

	return status
}

// executionFailed writes the message for a program that cannot be run to the command's error stream.
func executionFailed(stderr *os.File, name string) int {
	fmt.Fprintf(stderr, "Execution failed for '%s'\n", name) //nolint:errcheck
	return StatusFailure
}
