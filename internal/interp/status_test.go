// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"encoding/gob"
	"os"
	"testing"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombineParallel(t *testing.T) {
	assert.Equal(t, 0, combineParallel(0, 0))
	assert.Equal(t, 2, combineParallel(2, 0))
	assert.Equal(t, 3, combineParallel(0, 3))
	assert.Equal(t, 2, combineParallel(2, 3))
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, StatusSuccess, collapse(0))
	assert.Equal(t, StatusFailure, collapse(1))
	assert.Equal(t, StatusFailure, collapse(141))
}

func sendEnvelope(t *testing.T, env envelope) *os.File {
	t.Helper()

	r, w, err := os.Pipe()
	require.NoError(t, err)
	require.NoError(t, gob.NewEncoder(w).Encode(env))
	require.NoError(t, w.Close())

	return r
}

func TestReadEnvelope(t *testing.T) {
	tree := cmdtree.Sequential(
		cmdtree.Leaf(cmdtree.Command("printf", "%s", "tab\there", "\xff\xfe", "")),
		nil,
	)

	env, err := readEnvelope(sendEnvelope(t, envelope{
		Depth:    2,
		Origin:   cmdtree.Root.Left(cmdtree.OpPipe),
		Collapse: true,
		Shell:    "/usr/local/bin/treesh",
		Node:     tree,
	}))
	require.NoError(t, err)

	assert.Equal(t, 2, env.Depth)
	assert.True(t, env.Collapse)
	assert.Equal(t, "/usr/local/bin/treesh", env.Shell)
	assert.Equal(t, cmdtree.OpPipe, env.Origin.ParentOp)
	assert.Nil(t, env.Node.Right, "absent children are passed through")

	params := env.Node.Left.Command.Params
	require.Len(t, params, 4)
	assert.Equal(t, "tab\there", params[1].Parts[0].Text)
	assert.Equal(t, "\xff\xfe", params[2].Parts[0].Text)
	assert.Equal(t, cmdtree.Literal(""), params[3])
}

func TestReadEnvelope_Invalid(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	_, err = w.WriteString("depth: 1\nnode:\n  op: pipe\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = readEnvelope(r)
	assert.ErrorIs(t, err, ErrReadEnvelope)
}
