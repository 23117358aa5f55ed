// Copyright (c) 2026 The Harvest developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log provides structured logging for all ledger components.
// Components obtain a contextual logger once, at package init:
//
//	var logger = log.WithContext("pkg", "farm")
package log

import (
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Logger is the logging interface used across the repo.
type Logger interface {
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	With(ctx ...any) Logger
}

var (
	levelVar slog.LevelVar
	root     = newLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &levelVar})))
)

func init() {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		// drop the time attr noise on terminals, keep it for log shippers
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: &levelVar,
			ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					a.Value = slog.StringValue(a.Value.Time().Format("15:04:05.000"))
				}
				return a
			},
		})
		root = newLogger(slog.New(h))
	}
	levelVar.Set(slog.LevelInfo)
}

// WithContext returns a logger carrying the given context pairs.
func WithContext(ctx ...any) Logger {
	return root.With(ctx...)
}

// SetLevel sets the global log level by name: debug, info, warn or error.
func SetLevel(name string) error {
	switch strings.ToLower(name) {
	case "debug":
		levelVar.Set(slog.LevelDebug)
	case "info":
		levelVar.Set(slog.LevelInfo)
	case "warn":
		levelVar.Set(slog.LevelWarn)
	case "error":
		levelVar.Set(slog.LevelError)
	default:
		return errors.Errorf("unknown log level %q", name)
	}
	return nil
}

type logger struct {
	l *slog.Logger
}

func newLogger(l *slog.Logger) Logger {
	return &logger{l}
}

func (lg *logger) Debug(msg string, ctx ...any) { lg.l.Debug(msg, ctx...) }
func (lg *logger) Info(msg string, ctx ...any)  { lg.l.Info(msg, ctx...) }
func (lg *logger) Warn(msg string, ctx ...any)  { lg.l.Warn(msg, ctx...) }
func (lg *logger) Error(msg string, ctx ...any) { lg.l.Error(msg, ctx...) }

func (lg *logger) With(ctx ...any) Logger {
	return &logger{lg.l.With(ctx...)}
}
