// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdtree

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
)

var (
	// ErrDecodeTree is returned when a tree cannot be decoded.
	ErrDecodeTree = errors.New("failed to decode command tree")
	// ErrEncodeTree is returned when a tree cannot be encoded.
	ErrEncodeTree = errors.New("failed to encode command tree")
	// ErrInvalidTree is returned when a tree breaks the leaf/internal node shape.
	ErrInvalidTree = errors.New("invalid command tree")
)

// Marshal encodes the tree as YAML.
func Marshal(n *Node) ([]byte, error) {
	b, err := yaml.Marshal(n)
	if err != nil {
		return nil, errors.Join(ErrEncodeTree, err)
	}

	return b, nil
}

// Unmarshal decodes a YAML (or JSON) tree and validates it.
func Unmarshal(data []byte) (*Node, error) {
	var n Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, errors.Join(ErrDecodeTree, err)
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return &n, nil
}

// Validate checks that every leaf carries exactly a command with a verb
// and every internal node exactly two children. All problems are reported.
func (n *Node) Validate() error {
	var result *multierror.Error

	n.validate(Root, &result)

	if err := result.ErrorOrNil(); err != nil {
		return errors.Join(ErrInvalidTree, err)
	}

	return nil
}

func (n *Node) validate(at Origin, result **multierror.Error) {
	if n == nil {
		*result = multierror.Append(*result, fmt.Errorf("%s: missing node", at))
		return
	}

	switch n.Op {
	case OpNone:
		if n.Command == nil {
			*result = multierror.Append(*result, fmt.Errorf("%s: command node without a command", at))
			return
		}

		if n.Command.Verb.IsZero() || n.Command.Verb.String() == "" {
			*result = multierror.Append(*result, fmt.Errorf("%s: command without a verb", at))
		}

		if n.Left != nil || n.Right != nil {
			*result = multierror.Append(*result, fmt.Errorf("%s: command node with children", at))
		}
	case OpSequential, OpParallel, OpConditionalNonzero, OpConditionalZero, OpPipe:
		if n.Command != nil {
			*result = multierror.Append(*result, fmt.Errorf("%s: %s node with a command", at, n.Op))
		}

		n.Left.validate(at.Left(n.Op), result)
		n.Right.validate(at.Right(n.Op), result)
	default:
		*result = multierror.Append(*result, fmt.Errorf("%s: %w", at, ErrOperatorUnknown))
	}
}
