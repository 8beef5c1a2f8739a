// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"os"
	"syscall"
)

const (
	// StatusSuccess is the exit status of a successful evaluation.
	StatusSuccess = 0
	// StatusFailure is returned for every internal failure: missing HOME or OLDPWD, a failed
	// redirection, process creation or wait, and a program that cannot be executed.
	StatusFailure = 1
	// StatusSignalBase is added to the signal number of a child killed by a signal.
	StatusSignalBase = 128
	// ShellExitStatus is the status the exit and quit builtins terminate with.
	ShellExitStatus = 0
)

// decodeStatus converts a terminated child's state into an exit status.
func decodeStatus(state *os.ProcessState) int {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return StatusSignalBase + int(ws.Signal())
	}

	return state.ExitCode()
}

// combineParallel is zero only when both branches succeed,
// otherwise the first non-zero status in left-then-right order.
func combineParallel(left, right int) int {
	if left != StatusSuccess {
		return left
	}

	return right
}

// collapse maps any failure to StatusFailure.
func collapse(status int) int {
	if status == StatusSuccess {
		return StatusSuccess
	}

	return StatusFailure
}
