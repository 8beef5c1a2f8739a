// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdtree

import (
	"errors"
	"strings"
)

// ErrWordDecode is returned when a word cannot be decoded from YAML.
var ErrWordDecode = errors.New("word must be a string or a list of strings")

// WordPart is one segment of a Word.
// When Expand is true, Text is the name of an environment variable to substitute.
type WordPart struct {
	Text   string
	Expand bool
}

// Word is a token that may contain environment variable references.
// It resolves to a literal string through expansion.
type Word struct {
	Parts []WordPart
}

// Literal returns a word with a single literal part.
func Literal(s string) Word {
	return Word{Parts: []WordPart{{Text: s}}}
}

// Var returns a word that expands to the value of the named environment variable.
func Var(name string) Word {
	return Word{Parts: []WordPart{{Text: name, Expand: true}}}
}

// ParseWord splits s into literal and variable parts.
// $NAME and ${NAME} become variable parts, $$ is a literal dollar sign.
// A dollar sign that does not start a reference is kept literally.
func ParseWord(s string) Word {
	if s == "" {
		return Literal("")
	}

	var (
		w   Word
		lit strings.Builder
	)

	flush := func() {
		if lit.Len() > 0 {
			w.Parts = append(w.Parts, WordPart{Text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i == len(s)-1 {
			lit.WriteByte(s[i])
			continue
		}

		next := s[i+1]

		switch {
		case next == '$':
			lit.WriteByte('$')
			i++
		case next == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end <= 0 {
				lit.WriteByte('$')
				continue
			}

			flush()
			w.Parts = append(w.Parts, WordPart{Text: s[i+2 : i+2+end], Expand: true})
			i += end + 2
		case isNameStart(next):
			j := i + 2
			for j < len(s) && isNameChar(s[j]) {
				j++
			}

			flush()
			w.Parts = append(w.Parts, WordPart{Text: s[i+1 : j], Expand: true})
			i = j - 1
		default:
			lit.WriteByte('$')
		}
	}

	flush()

	return w
}

// Head returns the raw text of the first part, which is what builtin and assignment detection look at.
func (w Word) Head() string {
	if len(w.Parts) == 0 {
		return ""
	}

	return w.Parts[0].Text
}

// IsZero reports whether the word has no parts.
func (w Word) IsZero() bool {
	return len(w.Parts) == 0
}

// String returns the word in source form, the inverse of ParseWord for single-part words.
func (w Word) String() string {
	sb := strings.Builder{}
	for _, p := range w.Parts {
		sb.WriteString(p.source())
	}

	return sb.String()
}

func (p WordPart) source() string {
	if p.Expand {
		return "${" + p.Text + "}"
	}

	return strings.ReplaceAll(p.Text, "$", "$$")
}

// MarshalYAML writes single-part words as a scalar and multi-part words as a list of parts,
// so that part boundaries survive a round trip.
func (w Word) MarshalYAML() (any, error) {
	if len(w.Parts) == 1 {
		return w.Parts[0].source(), nil
	}

	parts := make([]string, 0, len(w.Parts))
	for _, p := range w.Parts {
		parts = append(parts, p.source())
	}

	return parts, nil
}

// UnmarshalYAML accepts either a scalar or a list of scalars, each parsed with ParseWord.
func (w *Word) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		*w = ParseWord(s)
		return nil
	}

	var list []string
	if err := unmarshal(&list); err != nil {
		return errors.Join(ErrWordDecode, err)
	}

	*w = JoinWords(list...)

	return nil
}

// JoinWords parses each element and concatenates the resulting parts in order.
func JoinWords(elems ...string) Word {
	w := Word{Parts: make([]WordPart, 0, len(elems))}
	for _, e := range elems {
		w.Parts = append(w.Parts, ParseWord(e).Parts...)
	}

	return w
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
