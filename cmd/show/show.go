// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package show contains the show command, which prints a command tree without running it.
package show

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/matt-FFFFFF/treesh/internal/treefile"
	"github.com/urfave/cli/v3"
)

const (
	fileFlag    = "file"
	onelineFlag = "oneline"
)

var (
	// ErrLoadTree is returned when the tree file cannot be loaded.
	ErrLoadTree = errors.New("failed to load command tree")
	// ErrWriteTree is returned when the tree cannot be written.
	ErrWriteTree = errors.New("failed to write command tree")
)

var (
	operatorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	symbolStyle     = lipgloss.NewStyle().Faint(true)
	commandStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	enumeratorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).MarginRight(1)
)

// ShowCmd is the command that prints a command tree.
var ShowCmd = &cli.Command{
	Name:        "show",
	Usage:       "Print a command tree",
	Description: "Print the command tree in the specified file without running it.",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     fileFlag,
			Aliases:  []string{"f"},
			Usage:    "Specify the path or URL of the tree file (.yaml, .yml, .json or .hcl)",
			Required: true,
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        onelineFlag,
			Usage:       "Print the tree as a single shell-like line",
			Value:       false,
			DefaultText: "false",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		root, err := treefile.Load(ctx, cmd.String(fileFlag))
		if err != nil {
			return errors.Join(ErrLoadTree, err)
		}

		out := Render(root)
		if cmd.Bool(onelineFlag) {
			out = root.String()
		}

		if _, err := fmt.Fprintln(cmd.Root().Writer, out); err != nil {
			return errors.Join(ErrWriteTree, err)
		}

		return nil
	},
}

// Render draws n as a tree. Operators are branches and simple commands are leaves.
func Render(n *cmdtree.Node) string {
	if n == nil {
		return ""
	}

	if n.IsLeaf() {
		return commandStyle.Render(n.String())
	}

	return build(n).String()
}

func build(n *cmdtree.Node) *tree.Tree {
	t := tree.Root(operatorStyle.Render(n.Op.String()) + " " + symbolStyle.Render(n.Op.Symbol())).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle)

	for _, child := range []*cmdtree.Node{n.Left, n.Right} {
		switch {
		case child == nil:
			continue
		case child.IsLeaf():
			t.Child(commandStyle.Render(child.String()))
		default:
			t.Child(build(child))
		}
	}

	return t
}
