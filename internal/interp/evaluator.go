// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/matt-FFFFFF/treesh/internal/ctxlog"
	"github.com/matt-FFFFFF/treesh/internal/expand"
)

// Evaluator runs command trees. Its standard streams are the ones handed to
// external programs and subshells unless a redirection or pipe replaces them.
type Evaluator struct {
	Stdin    *os.File
	Stdout   *os.File
	Stderr   *os.File
	Expander expand.Expander
	// Shell is the executable re-executed for subshells. Empty means the current executable.
	Shell string
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithStdio replaces the standard streams. Nil arguments keep the current stream.
func WithStdio(stdin, stdout, stderr *os.File) Option {
	return func(e *Evaluator) {
		if stdin != nil {
			e.Stdin = stdin
		}

		if stdout != nil {
			e.Stdout = stdout
		}

		if stderr != nil {
			e.Stderr = stderr
		}
	}
}

// WithExpander sets the word expander. It applies to this process only:
// subshells started for parallel and pipe nodes expand against their inherited environment.
func WithExpander(x expand.Expander) Option {
	return func(e *Evaluator) {
		e.Expander = x
	}
}

// WithShell sets the executable used for subshells.
func WithShell(path string) Option {
	return func(e *Evaluator) {
		e.Shell = path
	}
}

// New creates an Evaluator bound to the process's standard streams and environment.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Expander: expand.Environ,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run evaluates a whole tree from the root.
func (e *Evaluator) Run(ctx context.Context, root *cmdtree.Node) int {
	return e.Evaluate(ctx, root, 0, cmdtree.Root)
}

// Evaluate runs node and returns its exit status. A nil node evaluates to success.
// Depth and origin are used for diagnostics only.
func (e *Evaluator) Evaluate(ctx context.Context, node *cmdtree.Node, depth int, origin cmdtree.Origin) int {
	if node == nil {
		return StatusSuccess
	}

	logger := ctxlog.Logger(ctx).With(
		"depth", depth,
		"path", origin.String(),
		"parentOp", origin.ParentOp.String(),
	)
	logger.Debug("evaluating node", "op", node.Op.String())

	var status int

	switch node.Op {
	case cmdtree.OpNone:
		status = e.runSimple(ctx, node.Command, depth)
	case cmdtree.OpSequential:
		status = e.sequential(ctx, node, depth, origin)
	case cmdtree.OpParallel:
		status = e.parallel(ctx, node, depth, origin)
	case cmdtree.OpConditionalNonzero:
		status = e.conditional(ctx, node, depth, origin, false)
	case cmdtree.OpConditionalZero:
		status = e.conditional(ctx, node, depth, origin, true)
	case cmdtree.OpPipe:
		status = e.pipe(ctx, node, depth, origin)
	default:
		e.report(ctx, depth, "dispatch", fmt.Errorf("%w: %d", cmdtree.ErrOperatorUnknown, node.Op))
		status = StatusFailure
	}

	logger.Debug("node finished", "op", node.Op.String(), "status", status)

	return status
}

// report writes a resource or synchronisation failure to the error stream.
func (e *Evaluator) report(ctx context.Context, depth int, op string, err error) {
	ctxlog.Debug(ctx, "operation failed", "op", op, "depth", depth, "error", err)
	fmt.Fprintf(e.Stderr, "treesh: %s failed at depth %d: %v\n", op, depth, err) //nolint:errcheck
}

func (e *Evaluator) exp() expand.Expander {
	if e.Expander == nil {
		return expand.Environ
	}

	return e.Expander
}

func (e *Evaluator) expand(w cmdtree.Word) string {
	return e.exp().Expand(w)
}

func (e *Evaluator) stdio() stdio {
	return stdio{e.Stdin, e.Stdout, e.Stderr}
}
