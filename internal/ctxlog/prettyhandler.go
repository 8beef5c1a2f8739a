// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/treesh/internal/color"
)

var (
	// ErrMarshalAttribute is returned when an error occurs while marshaling an attribute.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when an error occurs while writing to the output.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the format used for timestamps in log messages.
const TimeFormat = "[15:04:05.000]"

// PrettyHandler formats records as a single human-readable line:
// timestamp, level, message, then the attributes as compact JSON.
//
// Attributes are rendered by an inner JSON handler writing to a shared buffer,
// so WithAttrs and WithGroup behave exactly as they do for slog.JSONHandler.
type PrettyHandler struct {
	h      slog.Handler
	b      *bytes.Buffer
	m      *sync.Mutex
	writer io.Writer
	colour bool
}

// Option implements a functional options pattern for PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets the destination writer for the PrettyHandler.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour enables color output for the PrettyHandler.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour enables color output when the color package reports it is supported.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.Enabled()
	}
}

// NewPrettyHandler creates a new PrettyHandler with the given options.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}

	buf := &bytes.Buffer{}
	handler := &PrettyHandler{
		b: buf,
		h: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
		m:      &sync.Mutex{},
		writer: os.Stderr,
	}

	for _, opt := range options {
		opt(handler)
	}

	return handler
}

// Enabled checks if the handler is enabled for the given level.
func (h *PrettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

// WithAttrs creates a new handler with the given attributes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &PrettyHandler{h: h.h.WithAttrs(attrs), b: h.b, m: h.m, writer: h.writer, colour: h.colour}
}

// WithGroup creates a new handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{h: h.h.WithGroup(name), b: h.b, m: h.m, writer: h.writer, colour: h.colour}
}

// Handle implements the slog.Handler interface for PrettyHandler.
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}

	out := strings.Builder{}
	out.WriteString(h.paint(r.Time.Format(TimeFormat), color.FgWhite))
	out.WriteString(" ")
	out.WriteString(h.paint(r.Level.String()+":", levelColour(r.Level)))
	out.WriteString(" ")
	out.WriteString(h.paint(r.Message, color.FgHiWhite))

	if len(attrs) > 0 {
		f := colorjson.NewFormatter()
		f.DisabledColor = !h.colour

		b, err := f.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		out.WriteString(" ")
		out.Write(b)
	}

	out.WriteString("\n")

	h.m.Lock()
	defer h.m.Unlock()

	if _, err := io.WriteString(h.writer, out.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

func (h *PrettyHandler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.m.Lock()
	defer func() {
		h.b.Reset()
		h.m.Unlock()
	}()

	if err := h.h.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(h.b.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}

	return attrs, nil
}

func (h *PrettyHandler) paint(s string, c color.Code) string {
	if !h.colour {
		return s
	}

	return color.ControlString(c) + s + color.ControlString(color.Reset)
}

func levelColour(l slog.Level) color.Code {
	switch {
	case l <= slog.LevelDebug:
		return color.FgWhite
	case l <= slog.LevelInfo:
		return color.FgCyan
	case l < slog.LevelError:
		return color.FgYellow
	default:
		return color.FgRed
	}
}

// suppressDefaults drops the built-in keys from the inner JSON handler; Handle renders them itself.
func suppressDefaults(next func([]string, slog.Attr) slog.Attr) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey ||
			a.Key == slog.LevelKey ||
			a.Key == slog.MessageKey {
			return slog.Attr{}
		}

		if next == nil {
			return a
		}

		return next(groups, a)
	}
}
