// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name          string
		setupContext  func() context.Context
		expectDefault bool
	}{
		{
			name: "context with logger",
			setupContext: func() context.Context {
				return New(context.Background(), slog.New(slog.NewTextHandler(os.Stderr, nil)))
			},
			expectDefault: false,
		},
		{
			name:          "context without logger",
			setupContext:  context.Background,
			expectDefault: true,
		},
		{
			name: "context with nil logger",
			setupContext: func() context.Context {
				return New(context.Background(), nil)
			},
			expectDefault: true,
		},
		{
			name: "context with wrong type value",
			setupContext: func() context.Context {
				return context.WithValue(context.Background(), loggerKey{}, "not a logger")
			},
			expectDefault: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := Logger(tt.setupContext())
			assert.NotNil(t, logger)
			assert.Equal(t, tt.expectDefault, logger == DefaultLogger)
		})
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer

	ctx := New(context.Background(), slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	ctx = With(ctx, "depth", 3)

	Debug(ctx, "dispatch")
	assert.Contains(t, buf.String(), "depth=3")
	assert.Contains(t, buf.String(), "dispatch")
}

func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer

	ctx := New(context.Background(), slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	tests := []struct {
		name    string
		logFunc func(context.Context, string, ...any)
		level   string
	}{
		{name: "info", logFunc: Info, level: "INFO"},
		{name: "debug", logFunc: Debug, level: "DEBUG"},
		{name: "warn", logFunc: Warn, level: "WARN"},
		{name: "error", logFunc: Error, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc(ctx, "message "+tt.name, "key", "value")

			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), "message "+tt.name)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
		ok    bool
	}{
		{input: "DEBUG", want: slog.LevelDebug, ok: true},
		{input: "info", want: slog.LevelInfo, ok: true},
		{input: "Warn", want: slog.LevelWarn, ok: true},
		{input: "ERROR", want: slog.LevelError, ok: true},
		{input: "", want: slog.LevelWarn, ok: false},
		{input: "loud", want: slog.LevelWarn, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseLevel(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "DEBUG")
	assert.Equal(t, slog.LevelDebug, logLevelFromEnv())

	t.Setenv(LogLevelEnvVar, "")
	assert.Equal(t, slog.LevelWarn, logLevelFromEnv())
}

func TestSetLevelExportsEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")

	original := LevelVar.Level()
	defer LevelVar.Set(original)

	SetLevel(slog.LevelInfo)
	assert.Equal(t, slog.LevelInfo, LevelVar.Level())
	assert.Equal(t, "INFO", os.Getenv(LogLevelEnvVar))
}

func TestUseJSONExportsFormat(t *testing.T) {
	t.Setenv(LogFormatEnvVar, "")

	assert.Same(t, DefaultLogger, FromEnv())

	ctx := UseJSON(context.Background())

	assert.Same(t, JSONLogger, Logger(ctx))
	assert.Equal(t, "json", os.Getenv(LogFormatEnvVar))
	assert.Same(t, JSONLogger, FromEnv(), "subshells pick the format up from the environment")
}
