// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"context"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
)

// parallel runs each child in its own subshell and waits for both, left first.
// The result is zero only when both succeed, otherwise the left failure wins over the right one.
func (e *Evaluator) parallel(ctx context.Context, n *cmdtree.Node, depth int, origin cmdtree.Origin) int {
	left, err := e.spawn(ctx, n.Left, depth+1, origin.Left(n.Op), false, e.stdio())
	if err != nil {
		e.report(ctx, depth, "fork", err)
		return StatusFailure
	}

	right, err := e.spawn(ctx, n.Right, depth+1, origin.Right(n.Op), false, e.stdio())
	if err != nil {
		e.report(ctx, depth, "fork", err)
		_ = e.wait(ctx, depth, left)

		return StatusFailure
	}

	leftStatus := e.wait(ctx, depth, left)
	rightStatus := e.wait(ctx, depth, right)

	return combineParallel(leftStatus, rightStatus)
}
