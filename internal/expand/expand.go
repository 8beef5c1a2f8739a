// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package expand resolves command tree words to literal strings.
package expand

import (
	"os"
	"strings"

	"github.com/matt-FFFFFF/treesh/internal/cmdtree"
)

// Expander resolves a word to a newly built literal string.
type Expander interface {
	Expand(w cmdtree.Word) string
}

// Func adapts a function to the Expander interface.
type Func func(w cmdtree.Word) string

// Expand implements Expander.
func (f Func) Expand(w cmdtree.Word) string {
	return f(w)
}

// Env expands variable parts by looking them up.
// Unset variables expand to the empty string.
type Env struct {
	Lookup func(name string) (string, bool)
}

// Environ expands against the live process environment, so assignments made
// during evaluation are visible to later words.
var Environ = Env{Lookup: os.LookupEnv}

// Expand implements Expander.
func (e Env) Expand(w cmdtree.Word) string {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	sb := strings.Builder{}

	for _, p := range w.Parts {
		if !p.Expand {
			sb.WriteString(p.Text)
			continue
		}

		if v, ok := lookup(p.Text); ok {
			sb.WriteString(v)
		}
	}

	return sb.String()
}

// All expands every word in order.
func All(e Expander, words []cmdtree.Word) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		out = append(out, e.Expand(w))
	}

	return out
}
