// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package show

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestRender(t *testing.T) {
	tree := cmdtree.Sequential(
		cmdtree.Leaf(cmdtree.Command("cd", "/tmp")),
		cmdtree.Pipe(
			cmdtree.Leaf(cmdtree.Command("echo", "hi")),
			cmdtree.Leaf(cmdtree.Command("cat").WriteTo("out.txt")),
		),
	)

	out := Render(tree)

	assert.Contains(t, out, "sequential")
	assert.Contains(t, out, "pipe")
	assert.Contains(t, out, "cd /tmp")
	assert.Contains(t, out, "echo hi")
	assert.Contains(t, out, "cat > out.txt")
}

func TestRender_Leaf(t *testing.T) {
	assert.Contains(t, Render(cmdtree.Leaf(cmdtree.Command("true"))), "true")
	assert.Empty(t, Render(nil))
}

func TestShowCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("op: and\nleft:\n  command:\n    verb: make\nright:\n  command:\n    verb: make\n    params: [install]\n"), 0o600))

	buf := &bytes.Buffer{}
	root := &cli.Command{
		Name:      "treesh",
		Commands:  []*cli.Command{ShowCmd},
		Writer:    buf,
		ErrWriter: io.Discard,
	}

	require.NoError(t, root.Run(context.Background(), []string{"treesh", "show", "-f", path, "--oneline"}))
	assert.Equal(t, "make && make install\n", buf.String())
}
