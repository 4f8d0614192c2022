// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin, repo-wide convenience wrapper over
// go-ethereum's structured logger (itself a log/slog frontend). Every
// component logs through WithContext rather than fmt/stdlib log.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"

	gethlog "github.com/ethereum/go-ethereum/log"
	isatty "github.com/mattn/go-isatty"
)

// Logger is re-exported so callers never import go-ethereum/log directly.
type Logger = gethlog.Logger

// Level constants, re-exported for dynamic verbosity control (see package admin).
const (
	LevelTrace = gethlog.LevelTrace
	LevelDebug = gethlog.LevelDebug
	LevelInfo  = gethlog.LevelInfo
	LevelWarn  = gethlog.LevelWarn
	LevelError = gethlog.LevelError
	LevelCrit  = gethlog.LevelCrit
)

// WithContext returns a Logger carrying the given key/value pairs on
// every subsequent log line, e.g. log.WithContext("pkg", "fetch").
func WithContext(ctx ...interface{}) Logger {
	return gethlog.New(ctx...)
}

// Root returns the process-wide root logger.
func Root() Logger { return gethlog.Root() }

// verbosity is the dynamically adjustable level used by the admin HTTP
// surface's /admin/loglevel endpoint.
var verbosity = new(slog.LevelVar)

// SetupTerminal installs a terminal-aware (color, if a TTY) handler on
// the root logger, filtered through the shared verbosity level.
func SetupTerminal(w io.Writer) {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = isatty.IsTerminal(f.Fd())
	}
	handler := gethlog.NewTerminalHandlerWithLevel(w, verbosity.Level(), useColor)
	gethlog.SetDefault(gethlog.NewLogger(&dynamicLevelHandler{inner: handler}))
}

// Verbosity returns the shared LevelVar so admin handlers can read/set it.
func Verbosity() *slog.LevelVar { return verbosity }

// dynamicLevelHandler re-checks the shared verbosity LevelVar on every
// record instead of the fixed level baked into the wrapped handler at
// construction time, since gethlog.NewTerminalHandlerWithLevel only
// accepts a static slog.Level.
type dynamicLevelHandler struct {
	inner slog.Handler
}

func (h *dynamicLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= verbosity.Level()
}

func (h *dynamicLevelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *dynamicLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dynamicLevelHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *dynamicLevelHandler) WithGroup(name string) slog.Handler {
	return &dynamicLevelHandler{inner: h.inner.WithGroup(name)}
}
