// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
)

// pipe connects the standard output of a left subshell to the standard input of a right one.
// Both subshells only report success or failure, and the pipeline's status is the right one's.
func (e *Evaluator) pipe(ctx context.Context, n *cmdtree.Node, depth int, origin cmdtree.Origin) int {
	r, w, err := os.Pipe()
	if err != nil {
		e.report(ctx, depth, "pipe", err)
		return StatusFailure
	}

	left, err := e.spawn(ctx, n.Left, depth+1, origin.Left(n.Op), true, stdio{e.Stdin, w, e.Stderr})
	if err != nil {
		e.report(ctx, depth, "fork", err)
		_ = closeAll(r, w)

		return StatusFailure
	}

	right, spawnErr := e.spawn(ctx, n.Right, depth+1, origin.Right(n.Op), true, stdio{r, e.Stdout, e.Stderr})

	// Both ends belong to the children now. Closing them here lets each side see EOF or EPIPE.
	closeErr := closeAll(r, w)

	if spawnErr != nil {
		e.report(ctx, depth, "fork", spawnErr)
		_ = e.wait(ctx, depth, left)

		return StatusFailure
	}

	if closeErr != nil {
		e.report(ctx, depth, "close", closeErr)
	}

	_ = e.wait(ctx, depth, left)
	status := e.wait(ctx, depth, right)

	if closeErr != nil {
		return StatusFailure
	}

	return status
}
