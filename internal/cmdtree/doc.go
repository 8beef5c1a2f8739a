// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdtree defines the command tree evaluated by the interpreter.
//
// A tree is built once by a front-end (a parser, or a tree file loaded by the treefile package)
// and is read-only afterwards. Leaves wrap a SimpleCommand, internal nodes combine exactly two
// children with one of the five composition operators.
//
// Trees are read from and written to YAML tree files. YAML keeps printable text only, so subshells
// receive their subtree gob encoded instead.
package cmdtree
