// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

const (
	// LogLevelEnvVar names the environment variable holding the log level.
	LogLevelEnvVar = "TREESH_LOG_LEVEL"
	// LogFormatEnvVar names the environment variable selecting the log format. "json" selects JSONLogger.
	LogFormatEnvVar = "TREESH_LOG_FORMAT"
	formatJSON      = "json"
)

type loggerKey struct{}

// LevelVar is the level shared by DefaultLogger and JSONLogger.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is a pretty console logger writing to standard error.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColour(),
	WithDestinationWriter(os.Stderr),
))

// JSONLogger is a structured logger writing JSON lines to standard error.
var JSONLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New returns a context carrying logger, or DefaultLogger if logger is nil.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// With returns a context whose logger has the given attributes added.
func With(ctx context.Context, args ...any) context.Context {
	return context.WithValue(ctx, loggerKey{}, Logger(ctx).With(args...))
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// ParseLevel converts DEBUG, INFO, WARN or ERROR (any case) to a slog.Level.
func ParseLevel(s string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelWarn, false
	}
}

// SetLevel sets the shared level and exports it so that subshells inherit it.
func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	_ = os.Setenv(LogLevelEnvVar, level.String())
}

// UseJSON returns a context carrying JSONLogger and exports the format so that subshells use it too.
func UseJSON(ctx context.Context) context.Context {
	_ = os.Setenv(LogFormatEnvVar, formatJSON)
	return New(ctx, JSONLogger)
}

// FromEnv returns the logger selected by LogFormatEnvVar.
func FromEnv() *slog.Logger {
	if strings.EqualFold(strings.TrimSpace(os.Getenv(LogFormatEnvVar)), formatJSON) {
		return JSONLogger
	}

	return DefaultLogger
}

func logLevelFromEnv() slog.Level {
	level, _ := ParseLevel(os.Getenv(LogLevelEnvVar))
	return level
}
