// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"context"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
)

// sequential evaluates both children in order in the current process and returns the right status.
func (e *Evaluator) sequential(ctx context.Context, n *cmdtree.Node, depth int, origin cmdtree.Origin) int {
	_ = e.Evaluate(ctx, n.Left, depth+1, origin.Left(n.Op))

	return e.Evaluate(ctx, n.Right, depth+1, origin.Right(n.Op))
}

// conditional evaluates left, then right only when left's success matches onSuccess.
// onSuccess is true for `&&` and false for `||`.
func (e *Evaluator) conditional(
	ctx context.Context,
	n *cmdtree.Node,
	depth int,
	origin cmdtree.Origin,
	onSuccess bool,
) int {
	status := e.Evaluate(ctx, n.Left, depth+1, origin.Left(n.Op))

	if (status == StatusSuccess) != onSuccess {
		return status
	}

	return e.Evaluate(ctx, n.Right, depth+1, origin.Right(n.Op))
}
