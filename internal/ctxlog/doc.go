// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a slog logger in a context.
//
// Log output goes to standard error because standard output belongs to the commands being run.
// The default handler is a pretty console handler; the level comes from TREESH_LOG_LEVEL
// and is inherited by subshell processes through the environment.
package ctxlog
