// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdtree

import (
	"errors"
	"fmt"
	"strings"
)

// IOMode selects whether output and error redirections truncate or append.
// Only one of the append modes can be active on a command.
type IOMode int

const (
	// IORegular truncates (or creates) output and error targets.
	IORegular IOMode = iota
	// IOAppendOut appends to the output target.
	IOAppendOut
	// IOAppendErr appends to the error target.
	IOAppendErr
)

const (
	ioRegularStr   = "regular"
	ioAppendOutStr = "append-out"
	ioAppendErrStr = "append-err"
	ioUnknownStr   = "unknown"
)

// ErrIOModeUnknown is returned when an unknown IOMode value is encountered.
var ErrIOModeUnknown = errors.New("unknown io mode")

// String returns the string representation of the IOMode.
func (m IOMode) String() string {
	switch m {
	case IORegular:
		return ioRegularStr
	case IOAppendOut:
		return ioAppendOutStr
	case IOAppendErr:
		return ioAppendErrStr
	default:
		return ioUnknownStr
	}
}

// NewIOMode creates an IOMode from a string. The empty string is IORegular.
func NewIOMode(s string) (IOMode, error) {
	switch s {
	case ioRegularStr, "":
		return IORegular, nil
	case ioAppendOutStr:
		return IOAppendOut, nil
	case ioAppendErrStr:
		return IOAppendErr, nil
	default:
		return IOMode(-1), fmt.Errorf("%w: %q", ErrIOModeUnknown, s)
	}
}

// MarshalYAML implements yaml.InterfaceMarshaler.
func (m IOMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// UnmarshalYAML implements yaml.InterfaceUnmarshaler.
func (m *IOMode) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	v, err := NewIOMode(s)
	if err != nil {
		return err
	}

	*m = v

	return nil
}

// SimpleCommand is a leaf of the command tree: a verb, its parameters and optional redirections.
type SimpleCommand struct {
	Verb   Word   `yaml:"verb"`
	Params []Word `yaml:"params,omitempty"`
	In     *Word  `yaml:"in,omitempty"`
	Out    *Word  `yaml:"out,omitempty"`
	Err    *Word  `yaml:"err,omitempty"`
	IOMode IOMode `yaml:"io,omitempty"`
}

// Command builds a simple command. Every argument is parsed with ParseWord.
func Command(verb string, params ...string) *SimpleCommand {
	c := &SimpleCommand{Verb: ParseWord(verb)}
	for _, p := range params {
		c.Params = append(c.Params, ParseWord(p))
	}

	return c
}

// Assignment builds the NAME = VALUE form, with "=" as its own part of the verb.
func Assignment(name, value string) *SimpleCommand {
	verb := Word{Parts: []WordPart{{Text: name}, {Text: "="}}}
	verb.Parts = append(verb.Parts, ParseWord(value).Parts...)

	return &SimpleCommand{Verb: verb}
}

// ReadFrom sets the input redirection target.
func (c *SimpleCommand) ReadFrom(path string) *SimpleCommand {
	w := ParseWord(path)
	c.In = &w

	return c
}

// WriteTo sets the output redirection target.
func (c *SimpleCommand) WriteTo(path string) *SimpleCommand {
	w := ParseWord(path)
	c.Out = &w

	return c
}

// ErrorsTo sets the error redirection target.
func (c *SimpleCommand) ErrorsTo(path string) *SimpleCommand {
	w := ParseWord(path)
	c.Err = &w

	return c
}

// WithMode sets the IOMode.
func (c *SimpleCommand) WithMode(m IOMode) *SimpleCommand {
	c.IOMode = m
	return c
}

// Name returns the raw text of the verb's first part.
func (c *SimpleCommand) Name() string {
	return c.Verb.Head()
}

// Assignment reports whether the command is the NAME = VALUE form.
// The returned value word still needs expanding.
func (c *SimpleCommand) Assignment() (string, Word, bool) {
	parts := c.Verb.Parts
	if len(parts) < 2 || parts[1].Expand || parts[1].Text != "=" || parts[0].Expand {
		return "", Word{}, false
	}

	return parts[0].Text, Word{Parts: parts[2:]}, true
}

// CombinedStream reports whether output and error targets are textually identical,
// in which case both streams share one descriptor.
func (c *SimpleCommand) CombinedStream() bool {
	return c.Out != nil && c.Err != nil && c.Out.String() == c.Err.String()
}

// String renders the command in shell-like syntax.
func (c *SimpleCommand) String() string {
	words := make([]string, 0, len(c.Params)+4)

	if name, value, ok := c.Assignment(); ok {
		words = append(words, name, "=", value.String())
	} else {
		words = append(words, c.Verb.String())
	}

	for _, p := range c.Params {
		words = append(words, p.String())
	}

	if c.In != nil {
		words = append(words, "<", c.In.String())
	}

	switch {
	case c.CombinedStream():
		words = append(words, "&>", c.Out.String())
	default:
		if c.Out != nil {
			op := ">"
			if c.IOMode == IOAppendOut {
				op = ">>"
			}

			words = append(words, op, c.Out.String())
		}

		if c.Err != nil {
			op := "2>"
			if c.IOMode == IOAppendErr {
				op = "2>>"
			}

			words = append(words, op, c.Err.String())
		}
	}

	return strings.Join(words, " ")
}
