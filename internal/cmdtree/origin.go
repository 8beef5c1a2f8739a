// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdtree

// Origin locates a node for diagnostics: its path from the root and the operator of its parent.
// It is passed down the call stack instead of being stored on shared nodes.
type Origin struct {
	Path     string   `yaml:"path,omitempty"`
	ParentOp Operator `yaml:"parentOp,omitempty"`
}

// Root is the origin of the top-level node.
var Root = Origin{}

// Left returns the origin of the left child of a node with this origin and operator op.
func (o Origin) Left(op Operator) Origin {
	return Origin{Path: o.Path + "L", ParentOp: op}
}

// Right returns the origin of the right child of a node with this origin and operator op.
func (o Origin) Right(op Operator) Origin {
	return Origin{Path: o.Path + "R", ParentOp: op}
}

// IsRoot reports whether o is the origin of the top-level node.
func (o Origin) IsRoot() bool {
	return o.Path == ""
}

// String returns the path, e.g. "root", "root/L/R".
func (o Origin) String() string {
	s := "root"
	for _, c := range o.Path {
		s += "/" + string(c)
	}

	return s
}
