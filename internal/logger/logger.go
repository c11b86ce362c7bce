package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that writes to a file
func NewFileLogger(path string, level string) (*Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, lvl), cleanup, nil
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ModeSwitched logs a completed mode transition
func (l *Logger) ModeSwitched(from, to string, duration time.Duration) {
	l.Info("mode switched",
		"from", from,
		"to", to,
		"duration", duration.Round(time.Microsecond))
}

// TransitionDiscarded logs a transition whose result was superseded
func (l *Logger) TransitionDiscarded(from, to string, token uint64) {
	l.Warn("transition discarded",
		"from", from,
		"to", to,
		"token", token)
}

// ConversionFailed logs a failed Markdown render
func (l *Logger) ConversionFailed(operation string, err error) {
	l.Error("conversion failed",
		"operation", operation,
		"error", err)
}

// DocumentSaved logs a successful save
func (l *Logger) DocumentSaved(mode string, htmlBytes, markdownBytes int) {
	l.Info("document saved",
		"mode", mode,
		"html_bytes", htmlBytes,
		"markdown_bytes", markdownBytes)
}

// DocumentRestored logs a restore from persisted state
func (l *Logger) DocumentRestored(mode string, words, chars int) {
	l.Info("document restored",
		"mode", mode,
		"words", words,
		"chars", chars)
}

// DocumentImported logs a file upload
func (l *Logger) DocumentImported(name, mimeType, mode string) {
	l.Info("document imported",
		"file", name,
		"mime", mimeType,
		"mode", mode)
}

// DocumentExported logs a file download
func (l *Logger) DocumentExported(name, mimeType string, size int) {
	l.Info("document exported",
		"file", name,
		"mime", mimeType,
		"bytes", size)
}

// DocumentCleared logs an explicit clear
func (l *Logger) DocumentCleared() {
	l.Info("document cleared")
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// StoreError logs a persistence failure
func (l *Logger) StoreError(operation string, err error) {
	l.Error("store error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(backend, converter string, cacheTTL time.Duration) {
	l.Debug("config loaded",
		"backend", backend,
		"converter", converter,
		"render_cache_ttl", cacheTTL)
}

// WithSession tags every record with an editor session id
func (l *Logger) WithSession(id string) *Logger {
	return &Logger{Logger: l.Logger.With("session", id)}
}
