// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package interp

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
)

const (
	redirectPerm = 0o644
	truncFlags   = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	appendFlags  = os.O_WRONLY | os.O_CREATE | os.O_APPEND
)

var (
	// ErrRedirectInput is returned when the input target cannot be opened.
	ErrRedirectInput = errors.New("could not redirect input")
	// ErrRedirectOutput is returned when the output target cannot be opened.
	ErrRedirectOutput = errors.New("could not redirect output")
	// ErrRedirectError is returned when the error target cannot be opened.
	ErrRedirectError = errors.New("could not redirect error output")
)

// redirection is the descriptor table for one external command plus the files it opened.
// The opened files must be closed once the program has started, whether or not it did.
type redirection struct {
	files  stdio
	opened []*os.File
}

// redirect opens c's targets in order (input, combined stream or output then error)
// on top of base. On failure every file opened so far is closed.
func (e *Evaluator) redirect(c *cmdtree.SimpleCommand, base stdio) (*redirection, error) {
	r := &redirection{files: base}

	if c.In != nil {
		f, err := r.open(e.expand(*c.In), os.O_RDONLY, ErrRedirectInput)
		if err != nil {
			return nil, err
		}

		r.files[0] = f
	}

	// The combined stream is always truncated, whatever the mode.
	if c.CombinedStream() {
		f, err := r.open(e.expand(*c.Out), truncFlags, ErrRedirectOutput)
		if err != nil {
			return nil, err
		}

		r.files[1], r.files[2] = f, f

		return r, nil
	}

	if c.Out != nil {
		flags := truncFlags
		if c.IOMode == cmdtree.IOAppendOut {
			flags = appendFlags
		}

		f, err := r.open(e.expand(*c.Out), flags, ErrRedirectOutput)
		if err != nil {
			return nil, err
		}

		r.files[1] = f
	}

	if c.Err != nil {
		flags := truncFlags
		if c.IOMode == cmdtree.IOAppendErr {
			flags = appendFlags
		}

		f, err := r.open(e.expand(*c.Err), flags, ErrRedirectError)
		if err != nil {
			return nil, err
		}

		r.files[2] = f
	}

	return r, nil
}

func (r *redirection) open(path string, flags int, kind error) (*os.File, error) {
	f, err := os.OpenFile(path, flags, redirectPerm)
	if err != nil {
		if cerr := r.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}

		return nil, fmt.Errorf("%w: %w", kind, err)
	}

	r.opened = append(r.opened, f)

	return f, nil
}

// Close closes every file the redirection opened. It is safe to call more than once.
func (r *redirection) Close() error {
	files := r.opened
	r.opened = nil

	return closeAll(files...)
}

// closeAll closes every closer and aggregates the failures.
func closeAll[T io.Closer](closers ...T) error {
	var result *multierror.Error

	for _, c := range closers {
		if err := c.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}
