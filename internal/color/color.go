// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"

	reset     = "\033[0m"
	prefix    = "\033["
	suffix    = "m"
	sbPadding = 16 // padding for the strings.Builder
)

// Code represents an ANSI control code for text formatting.
type Code int

// Control codes for text formatting.
const (
	Reset Code = iota
	Bold
	Faint
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled bool

func init() {
	enabled = isColorCapable()
}

// Enabled reports whether color output is enabled.
// NO_COLOR always disables it, FORCE_COLOR enables it, otherwise it follows
// whether standard error (where diagnostics go) is a terminal.
func Enabled() bool {
	return enabled
}

// Colorize wraps str in the given codes followed by a reset.
// It returns str unchanged when color output is disabled.
func Colorize(str string, codes ...Code) string {
	if !enabled {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(reset) + sbPadding)
	sb.WriteString(ControlString(codes...))
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

// ControlString generates the ANSI control sequence for the given codes.
func ControlString(codes ...Code) string {
	sb := strings.Builder{}
	sb.Grow(len(prefix) + len(suffix) + sbPadding)
	sb.WriteString(prefix)

	for i, code := range codes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)

	return sb.String()
}

func isColorCapable() bool {
	if os.Getenv(NoColor) != "" {
		return false
	}

	if os.Getenv(ForceColor) != "" {
		return true
	}

	return term.IsTerminal(int(os.Stderr.Fd()))
}
