// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides package scoped loggers on top of the go-ethereum slog based logger.
// Loggers created by WithContext resolve the root logger on every call, so they can be
// declared as package variables before the root handler is configured.
package log

import (
	"context"
	"io"
	"log/slog"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// legacy verbosity levels, as accepted on the command line.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

// Logger writes key/value pair records.
type Logger interface {
	With(ctx ...any) Logger
	Enabled(ctx context.Context, level slog.Level) bool

	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
}

type logger struct {
	ctx []any
}

// WithContext returns a logger that prepends ctx to every record.
func WithContext(ctx ...any) Logger {
	return &logger{ctx: ctx}
}

func (l *logger) root() ethlog.Logger {
	return ethlog.Root()
}

func (l *logger) merge(ctx []any) []any {
	if len(l.ctx) == 0 {
		return ctx
	}
	merged := make([]any, 0, len(l.ctx)+len(ctx))
	merged = append(merged, l.ctx...)
	return append(merged, ctx...)
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{ctx: l.merge(ctx)}
}

func (l *logger) Enabled(ctx context.Context, level slog.Level) bool {
	return l.root().Enabled(ctx, level)
}

func (l *logger) Trace(msg string, ctx ...any) { l.root().Trace(msg, l.merge(ctx)...) }
func (l *logger) Debug(msg string, ctx ...any) { l.root().Debug(msg, l.merge(ctx)...) }
func (l *logger) Info(msg string, ctx ...any)  { l.root().Info(msg, l.merge(ctx)...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.root().Warn(msg, l.merge(ctx)...) }
func (l *logger) Error(msg string, ctx ...any) { l.root().Error(msg, l.merge(ctx)...) }

// Info logs with the root logger.
func Info(msg string, ctx ...any) { ethlog.Root().Info(msg, ctx...) }

// Warn logs with the root logger.
func Warn(msg string, ctx ...any) { ethlog.Root().Warn(msg, ctx...) }

// FromLegacyLevel converts a legacy verbosity into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	switch {
	case lvl <= LegacyLevelCrit:
		return ethlog.LevelCrit
	case lvl == LegacyLevelError:
		return slog.LevelError
	case lvl == LegacyLevelWarn:
		return slog.LevelWarn
	case lvl == LegacyLevelInfo:
		return slog.LevelInfo
	case lvl == LegacyLevelDebug:
		return slog.LevelDebug
	default:
		return ethlog.LevelTrace
	}
}

// InitTerminal installs a terminal handler writing to w as the root handler.
func InitTerminal(w io.Writer, lvl slog.Level, useColor bool) {
	ethlog.SetDefault(ethlog.NewLogger(ethlog.NewTerminalHandlerWithLevel(w, lvl, useColor)))
}
