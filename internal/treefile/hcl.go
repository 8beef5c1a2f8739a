// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package treefile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

const (
	blockCommand = "command"
	blockAssign  = "assign"
)

var (
	// ErrInvalidBlock is returned for blocks that are unknown or have the wrong shape.
	ErrInvalidBlock = errors.New("invalid block")
	// ErrInvalidAttribute is returned for attributes that are unknown, missing or of the wrong type.
	ErrInvalidAttribute = errors.New("invalid attribute")
)

func decodeHCL(filename string, data []byte) (*cmdtree.Node, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not native syntax", ErrInvalidBlock, filename)
	}

	if err := noAttributes(body); err != nil {
		return nil, err
	}

	if len(body.Blocks) != 1 {
		return nil, fmt.Errorf("%w: %s: expected exactly one top level block, found %d",
			ErrInvalidBlock, filename, len(body.Blocks))
	}

	n, err := decodeBlock(body.Blocks[0])
	if err != nil {
		return nil, err
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

func decodeBlock(b *hclsyntax.Block) (*cmdtree.Node, error) {
	if len(b.Labels) != 0 {
		return nil, fmt.Errorf("%w: %s: %q blocks take no labels", ErrInvalidBlock, b.DefRange(), b.Type)
	}

	switch b.Type {
	case blockCommand:
		c, err := decodeCommand(b)
		if err != nil {
			return nil, err
		}

		return cmdtree.Leaf(c), nil
	case blockAssign:
		c, err := decodeAssign(b)
		if err != nil {
			return nil, err
		}

		return cmdtree.Leaf(c), nil
	}

	op, err := cmdtree.NewOperator(b.Type)
	if err != nil || op == cmdtree.OpNone {
		return nil, fmt.Errorf("%w: %s: unknown block type %q", ErrInvalidBlock, b.DefRange(), b.Type)
	}

	if err := noAttributes(b.Body); err != nil {
		return nil, err
	}

	if len(b.Body.Blocks) != 2 { //nolint:mnd
		return nil, fmt.Errorf("%w: %s: %q needs exactly two child blocks, found %d",
			ErrInvalidBlock, b.DefRange(), b.Type, len(b.Body.Blocks))
	}

	var result *multierror.Error

	left, err := decodeBlock(b.Body.Blocks[0])
	if err != nil {
		result = multierror.Append(result, err)
	}

	right, err := decodeBlock(b.Body.Blocks[1])
	if err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}

	return cmdtree.Join(op, left, right), nil
}

func decodeCommand(b *hclsyntax.Block) (*cmdtree.SimpleCommand, error) {
	if err := noBlocks(b); err != nil {
		return nil, err
	}

	attrs := b.Body.Attributes
	if err := knownAttributes(attrs, "verb", "params", "in", "out", "err", "io"); err != nil {
		return nil, err
	}

	verb, err := stringAttr(attrs, "verb", true)
	if err != nil {
		return nil, err
	}

	c := cmdtree.Command(*verb)

	var result *multierror.Error

	if a, ok := attrs["params"]; ok {
		params, err := stringList(a)
		if err != nil {
			result = multierror.Append(result, err)
		}

		for _, p := range params {
			c.Params = append(c.Params, cmdtree.ParseWord(p))
		}
	}

	for name, set := range map[string]func(string) *cmdtree.SimpleCommand{
		"in":  c.ReadFrom,
		"out": c.WriteTo,
		"err": c.ErrorsTo,
	} {
		v, err := stringAttr(attrs, name, false)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}

		if v != nil {
			set(*v)
		}
	}

	mode, err := stringAttr(attrs, "io", false)
	if err != nil {
		result = multierror.Append(result, err)
	}

	if mode != nil {
		m, err := cmdtree.NewIOMode(*mode)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%w: %s: %w", ErrInvalidAttribute, attrs["io"].SrcRange, err))
		}

		c.IOMode = m
	}

	return c, result.ErrorOrNil()
}

func decodeAssign(b *hclsyntax.Block) (*cmdtree.SimpleCommand, error) {
	if err := noBlocks(b); err != nil {
		return nil, err
	}

	attrs := b.Body.Attributes
	if err := knownAttributes(attrs, "name", "value"); err != nil {
		return nil, err
	}

	name, err := stringAttr(attrs, "name", true)
	if err != nil {
		return nil, err
	}

	val, err := stringAttr(attrs, "value", true)
	if err != nil {
		return nil, err
	}

	return cmdtree.Assignment(*name, *val), nil
}

// stringAttr returns the named attribute converted to a string, or nil when it is absent and optional.
func stringAttr(attrs hclsyntax.Attributes, name string, required bool) (*string, error) {
	a, ok := attrs[name]
	if !ok {
		if required {
			return nil, fmt.Errorf("%w: missing required attribute %q", ErrInvalidAttribute, name)
		}

		return nil, nil //nolint:nilnil
	}

	v, err := value(a, cty.String)
	if err != nil {
		return nil, err
	}

	s := v.AsString()

	return &s, nil
}

func stringList(a *hclsyntax.Attribute) ([]string, error) {
	v, err := value(a, cty.List(cty.String))
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, v.LengthInt())

	for _, e := range v.AsValueSlice() {
		if e.IsNull() {
			return nil, fmt.Errorf("%w: %s: %q contains null", ErrInvalidAttribute, a.SrcRange, a.Name)
		}

		out = append(out, e.AsString())
	}

	return out, nil
}

// value evaluates a without variables or functions and converts the result to want.
func value(a *hclsyntax.Attribute, want cty.Type) (cty.Value, error) {
	v, diags := a.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}

	v, err := convert.Convert(v, want)
	if err != nil {
		return cty.NilVal, fmt.Errorf("%w: %s: %q must be %s: %w",
			ErrInvalidAttribute, a.SrcRange, a.Name, want.FriendlyName(), err)
	}

	if v.IsNull() || !v.IsKnown() {
		return cty.NilVal, fmt.Errorf("%w: %s: %q must not be null", ErrInvalidAttribute, a.SrcRange, a.Name)
	}

	return v, nil
}

func knownAttributes(attrs hclsyntax.Attributes, allowed ...string) error {
	ok := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}

	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}

	sort.Strings(names)

	var result *multierror.Error

	for _, name := range names {
		if !ok[name] {
			result = multierror.Append(result,
				fmt.Errorf("%w: %s: unknown attribute %q", ErrInvalidAttribute, attrs[name].SrcRange, name))
		}
	}

	return result.ErrorOrNil()
}

func noAttributes(body *hclsyntax.Body) error {
	for name, a := range body.Attributes {
		return fmt.Errorf("%w: %s: unexpected attribute %q", ErrInvalidAttribute, a.SrcRange, name)
	}

	return nil
}

func noBlocks(b *hclsyntax.Block) error {
	if len(b.Body.Blocks) != 0 {
		return fmt.Errorf("%w: %s: %q blocks cannot contain blocks", ErrInvalidBlock, b.DefRange(), b.Type)
	}

	return nil
}
