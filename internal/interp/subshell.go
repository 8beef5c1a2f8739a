// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
	"github.com/matt-FFFFFF/treesh/internal/ctxlog"
)

// SubshellEnvVar marks a process as a subshell. It is removed from the environment on entry.
const SubshellEnvVar = "TREESH_SUBSHELL"

// subshellTreeFd is the descriptor a subshell reads its envelope from.
const subshellTreeFd = 3

var (
	// ErrSpawnSubshell is returned when a subshell process cannot be created.
	ErrSpawnSubshell = errors.New("could not start subshell")
	// ErrReadEnvelope is returned when a subshell cannot read or decode its subtree.
	ErrReadEnvelope = errors.New("could not read subshell tree")
)

// envelope is what a subshell receives on descriptor 3, gob encoded so that words keep their exact bytes.
type envelope struct {
	Depth  int
	Origin cmdtree.Origin
	// Collapse maps any failure to StatusFailure before exiting.
	Collapse bool
	// Shell is the subshell executable of the spawning evaluator, passed on to nested subshells.
	Shell string
	Node  *cmdtree.Node
}

// stdio is the descriptor table installed as 0, 1 and 2 of a child process.
type stdio [3]*os.File

// IsSubshell reports whether this process was started by spawn.
func IsSubshell() bool {
	return os.Getenv(SubshellEnvVar) != ""
}

// RunSubshell reads the subtree from descriptor 3, evaluates it on the process's
// standard streams and returns the status the process should exit with.
func RunSubshell(ctx context.Context) int {
	_ = os.Unsetenv(SubshellEnvVar)

	env, err := readEnvelope(os.NewFile(subshellTreeFd, "subshell-tree"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "treesh: subshell failed: %v\n", err) //nolint:errcheck
		return StatusFailure
	}

	ctxlog.Debug(ctx, "subshell started", "pid", os.Getpid(), "depth", env.Depth, "path", env.Origin.String())

	status := New(WithShell(env.Shell)).Evaluate(ctx, env.Node, env.Depth, env.Origin)
	if env.Collapse {
		status = collapse(status)
	}

	return status
}

func readEnvelope(f *os.File) (*envelope, error) {
	if f == nil {
		return nil, fmt.Errorf("%w: descriptor %d is not open", ErrReadEnvelope, subshellTreeFd)
	}

	defer f.Close() //nolint:errcheck

	// Absent children are left for the evaluator, which treats them as success.
	var env envelope
	if err := gob.NewDecoder(f).Decode(&env); err != nil {
		return nil, errors.Join(ErrReadEnvelope, err)
	}

	return &env, nil
}

// spawn starts a subshell evaluating n with files as its standard streams.
// The caller keeps ownership of files and must Wait on the returned process.
func (e *Evaluator) spawn(
	ctx context.Context,
	n *cmdtree.Node,
	depth int,
	origin cmdtree.Origin,
	collapse bool,
	files stdio,
) (*os.Process, error) {
	payload := &bytes.Buffer{}
	env := envelope{Depth: depth, Origin: origin, Collapse: collapse, Shell: e.Shell, Node: n}

	if err := gob.NewEncoder(payload).Encode(env); err != nil {
		return nil, errors.Join(ErrSpawnSubshell, err)
	}

	shell, err := e.shell()
	if err != nil {
		return nil, errors.Join(ErrSpawnSubshell, err)
	}

	treeR, treeW, err := os.Pipe()
	if err != nil {
		return nil, errors.Join(ErrSpawnSubshell, err)
	}

	proc, err := os.StartProcess(shell, []string{shell}, &os.ProcAttr{
		Env:   append(os.Environ(), SubshellEnvVar+"=1"),
		Files: []*os.File{files[0], files[1], files[2], treeR},
	})

	_ = treeR.Close()

	if err != nil {
		_ = treeW.Close()
		return nil, errors.Join(ErrSpawnSubshell, err)
	}

	ctxlog.Debug(ctx, "subshell spawned", "pid", proc.Pid, "depth", depth, "path", origin.String())

	// A subshell that dies before reading fails on its own; its status reports that.
	if _, err := payload.WriteTo(treeW); err != nil {
		ctxlog.Debug(ctx, "could not send subshell tree", "pid", proc.Pid, "error", err)
	}

	_ = treeW.Close()

	return proc, nil
}

func (e *Evaluator) shell() (string, error) {
	if e.Shell != "" {
		return e.Shell, nil
	}

	return os.Executable()
}

// wait collects a child's status. Failure to collect is reported and yields StatusFailure.
func (e *Evaluator) wait(ctx context.Context, depth int, proc *os.Process) int {
	state, err := proc.Wait()
	if err != nil {
		e.report(ctx, depth, "wait", err)
		return StatusFailure
	}

	return decodeStatus(state)
}
