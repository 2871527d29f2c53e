// Package cli implements the gridstack command-line interface.
//
// Editing commands load a layout file into an engine, run one command on it,
// print a terminal preview and write the result back (or to -o). Inspection
// commands never write unless asked to.
//
//   - compact, move, resize, reflow, add, remove, apply: edit a layout file
//   - play: edit a layout interactively
//   - show, find, validate, breakpoint: inspect a layout
//   - render: write an SVG preview
//   - store: save and load named snapshots
//
// With --verbose every engine command, compaction and store access is logged
// at debug level through the logger carried in the command context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took once it is done.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) progress {
	return progress{logger: l, start: time.Now()}
}

// done logs e.g. "Rendered home.svg (12ms)".
func (p progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
