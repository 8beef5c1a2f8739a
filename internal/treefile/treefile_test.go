// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package treefile

import (
	"context"
	"os"
	"testing"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_HCL(t *testing.T) {
	data, err := os.ReadFile("testdata/tree.hcl")
	require.NoError(t, err)

	n, err := Decode("tree.hcl", data)
	require.NoError(t, err)

	assert.Equal(t, "GREETING = hello ; (echo ${GREETING} ${USER} | cat >> out.txt)", n.String())
}

func TestDecode_YAML(t *testing.T) {
	data, err := os.ReadFile("testdata/tree.yaml")
	require.NoError(t, err)

	n, err := Decode("tree.yaml", data)
	require.NoError(t, err)

	assert.Equal(t, cmdtree.OpConditionalZero, n.Op)
	assert.Equal(t, "cd /tmp && ls -l > listing.txt", n.String())
}

func TestDecode_JSON(t *testing.T) {
	n, err := Decode("tree.json", []byte(`{"command": {"verb": "true"}}`))
	require.NoError(t, err)

	assert.True(t, n.IsLeaf())
	assert.Equal(t, "true", n.Command.Name())
}

func TestDecode_UnknownFormat(t *testing.T) {
	_, err := Decode("tree.toml", []byte(""))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_HCLErrors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "syntax error",
			src:     `command {`,
			wantErr: ErrDecode,
		},
		{
			name:    "two top level blocks",
			src:     "command {\n verb = \"a\"\n}\ncommand {\n verb = \"b\"\n}\n",
			wantErr: ErrInvalidBlock,
		},
		{
			name:    "unknown block",
			src:     "loop {\n}\n",
			wantErr: ErrInvalidBlock,
		},
		{
			name:    "operator with one child",
			src:     "pipe {\n command {\n verb = \"a\"\n }\n}\n",
			wantErr: ErrInvalidBlock,
		},
		{
			name:    "missing verb",
			src:     "command {\n params = [\"x\"]\n}\n",
			wantErr: ErrInvalidAttribute,
		},
		{
			name:    "unknown attribute",
			src:     "command {\n verb = \"a\"\n stdin = \"x\"\n}\n",
			wantErr: ErrInvalidAttribute,
		},
		{
			name:    "params not a list",
			src:     "command {\n verb = \"a\"\n params = { a = 1 }\n}\n",
			wantErr: ErrInvalidAttribute,
		},
		{
			name:    "bad io mode",
			src:     "command {\n verb = \"a\"\n io = \"sideways\"\n}\n",
			wantErr: cmdtree.ErrIOModeUnknown,
		},
		{
			name:    "empty verb",
			src:     "command {\n verb = \"\"\n}\n",
			wantErr: cmdtree.ErrInvalidTree,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode("tree.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestDecode_HCLNumbersBecomeStrings(t *testing.T) {
	n, err := Decode("t.hcl", []byte("assign {\n name = \"X\"\n value = 5\n}\n"))
	require.NoError(t, err)

	name, value, ok := n.Command.Assignment()
	require.True(t, ok)
	assert.Equal(t, "X", name)
	assert.Equal(t, "5", value.String())
}

func TestLoad_LocalFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/trees/a.yaml", []byte("command:\n  verb: echo\n  params: [hi]\n"), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return fs })
	defer stubs.Reset()

	n, err := Load(context.Background(), "/trees/a.yaml")
	require.NoError(t, err)
	assert.Equal(t, "echo hi", n.String())
}

func TestLoad_Errors(t *testing.T) {
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return afero.NewMemMapFs() })
	defer stubs.Reset()

	_, err := Load(context.Background(), "")
	require.ErrorIs(t, err, ErrLoad)

	_, err = Load(context.Background(), "git::http://notexist//tree.yaml")
	require.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, ErrGetTreeFile)
}

func TestLoad_Getter(t *testing.T) {
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return afero.NewMemMapFs() })
	defer stubs.Reset()

	n, err := Load(context.Background(), "./testdata/tree.yaml")
	require.NoError(t, err)
	assert.Equal(t, cmdtree.OpConditionalZero, n.Op)
}
