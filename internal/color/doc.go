// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package color colorizes diagnostic output with ANSI escape codes.
// Output is only colored when NO_COLOR is unset and either FORCE_COLOR is set
// or standard error is a terminal (detected with golang.org/x/term).
package color
