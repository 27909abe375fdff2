// Package logging provides the structured logger shared by the renderer,
// the exporter and the CLI.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at info level.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "wikimark",
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// PageMissing logs a title the store does not know.
func (l *Logger) PageMissing(title string) {
	l.Warn("page not found", "title", title)
}

// PageFailed logs a page dropped from a batch because its tree is corrupt.
func (l *Logger) PageFailed(title string, err error) {
	l.Error("page render failed",
		"title", title,
		"error", err)
}

// UnsupportedInput logs an input element the renderer drops.
func (l *Logger) UnsupportedInput(inputType string) {
	l.Warn("unsupported input node type", "type", inputType)
}

// OrphanListItem logs a list item rendered without a parent element.
func (l *Logger) OrphanListItem() {
	l.Error("found <li> without parent")
}

// TableDropped logs a table skipped because of its structure.
func (l *Logger) TableDropped(reason string) {
	l.Debug("table dropped", "reason", reason)
}

// InvalidDate logs a metadata field whose date value cannot be read.
func (l *Logger) InvalidDate(field string, value any, err error) {
	l.Error("invalid date value",
		"field", field,
		"value", value,
		"error", err)
}

// ExportStarted logs the start of a batch export.
func (l *Logger) ExportStarted(pages int, dialect string) {
	l.Info("export started",
		"pages", pages,
		"dialect", dialect)
}

// ExportCompleted logs the end of a batch export.
func (l *Logger) ExportCompleted(rendered, skipped int, duration time.Duration) {
	l.Info("export completed",
		"rendered", rendered,
		"skipped", skipped,
		"duration", duration.Round(time.Millisecond))
}
