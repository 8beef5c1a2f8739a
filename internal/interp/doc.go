// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package interp evaluates a command tree against the operating system and returns one exit status.
//
// Leaves run builtins (cd, exit, quit, NAME = VALUE) in the current process or launch an external
// program with its redirections installed. Sequential and conditional nodes evaluate their children
// in the current process. Parallel and pipe nodes evaluate each child in a subshell: the current
// executable re-executed with TREESH_SUBSHELL set, receiving its subtree over descriptor 3.
// A program using this package must call RunSubshell first thing when IsSubshell reports true.
//
// Errors never leave Evaluate. Each failure is reported on the error stream and converted to a status
// where it happens.
package interp
