// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdtree

import (
	"errors"
	"fmt"
)

// Operator tags a node with the way it combines its children.
type Operator int

const (
	// OpNone marks a leaf wrapping a SimpleCommand.
	OpNone Operator = iota
	// OpSequential runs left then right (`;`).
	OpSequential
	// OpParallel runs left and right in separate processes at the same time (`&`).
	OpParallel
	// OpConditionalNonzero runs right only if left fails (`||`).
	OpConditionalNonzero
	// OpConditionalZero runs right only if left succeeds (`&&`).
	OpConditionalZero
	// OpPipe connects the standard output of left to the standard input of right (`|`).
	OpPipe
)

const (
	opNoneStr       = "command"
	opSequentialStr = "sequential"
	opParallelStr   = "parallel"
	opOrStr         = "or"
	opAndStr        = "and"
	opPipeStr       = "pipe"
	opUnknownStr    = "unknown"
)

// ErrOperatorUnknown is returned when an unknown Operator value is encountered.
var ErrOperatorUnknown = errors.New("unknown operator")

// String returns the string representation of the Operator.
func (o Operator) String() string {
	switch o {
	case OpNone:
		return opNoneStr
	case OpSequential:
		return opSequentialStr
	case OpParallel:
		return opParallelStr
	case OpConditionalNonzero:
		return opOrStr
	case OpConditionalZero:
		return opAndStr
	case OpPipe:
		return opPipeStr
	default:
		return opUnknownStr
	}
}

// Symbol returns the shell token for the operator.
func (o Operator) Symbol() string {
	switch o {
	case OpSequential:
		return ";"
	case OpParallel:
		return "&"
	case OpConditionalNonzero:
		return "||"
	case OpConditionalZero:
		return "&&"
	case OpPipe:
		return "|"
	default:
		return ""
	}
}

// NewOperator creates an Operator from its string form. The empty string is OpNone.
func NewOperator(s string) (Operator, error) {
	switch s {
	case opNoneStr, "":
		return OpNone, nil
	case opSequentialStr:
		return OpSequential, nil
	case opParallelStr:
		return OpParallel, nil
	case opOrStr:
		return OpConditionalNonzero, nil
	case opAndStr:
		return OpConditionalZero, nil
	case opPipeStr:
		return OpPipe, nil
	default:
		return Operator(-1), fmt.Errorf("%w: %q", ErrOperatorUnknown, s)
	}
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (o Operator) MarshalYAML() (any, error) {
	return o.String(), nil
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (o *Operator) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	v, err := NewOperator(s)
	if err != nil {
		return err
	}

	*o = v

	return nil
}

// Node is a command tree node. Leaves (OpNone) carry a Command, every other node carries Left and Right.
type Node struct {
	Op      Operator       `yaml:"op,omitempty"`
	Command *SimpleCommand `yaml:"command,omitempty"`
	Left    *Node          `yaml:"left,omitempty"`
	Right   *Node          `yaml:"right,omitempty"`
}

// Leaf wraps a simple command.
func Leaf(c *SimpleCommand) *Node {
	return &Node{Op: OpNone, Command: c}
}

// Join builds an internal node.
func Join(op Operator, left, right *Node) *Node {
	return &Node{Op: op, Left: left, Right: right}
}

// Sequential builds `left ; right`.
func Sequential(left, right *Node) *Node { return Join(OpSequential, left, right) }

// Parallel builds `left & right`.
func Parallel(left, right *Node) *Node { return Join(OpParallel, left, right) }

// Or builds `left || right`.
func Or(left, right *Node) *Node { return Join(OpConditionalNonzero, left, right) }

// And builds `left && right`.
func And(left, right *Node) *Node { return Join(OpConditionalZero, left, right) }

// Pipe builds `left | right`.
func Pipe(left, right *Node) *Node { return Join(OpPipe, left, right) }

// IsLeaf reports whether the node wraps a simple command.
func (n *Node) IsLeaf() bool {
	return n.Op == OpNone
}

// String renders the tree in shell-like syntax. Nested internal nodes are parenthesised.
func (n *Node) String() string {
	if n == nil {
		return ""
	}

	if n.IsLeaf() {
		if n.Command == nil {
			return ""
		}

		return n.Command.String()
	}

	return group(n.Left) + " " + n.Op.Symbol() + " " + group(n.Right)
}

func group(n *Node) string {
	if n == nil || n.IsLeaf() {
		return n.String()
	}

	return "(" + n.String() + ")"
}
