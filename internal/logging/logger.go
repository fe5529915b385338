// Package logging provides structured logging for concord. It wraps
// log/slog to produce JSON-formatted logs under the data directory, with
// persistent attributes for session and participant context.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Log levels accepted by New.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

const logFileName = "concord.log"

// Logger writes JSON-formatted structured logs. It is safe for concurrent
// use.
type Logger struct {
	logger *slog.Logger
	file   *os.File
}

// New creates a Logger writing to {dataDir}/concord.log. An empty dataDir
// logs to stderr instead. Unrecognized levels default to INFO.
func New(dataDir, level string) (*Logger, error) {
	var writer io.Writer
	var file *os.File

	if dataDir != "" {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		var err error
		file, err = os.OpenFile(filepath.Join(dataDir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		writer = file
	} else {
		writer = os.Stderr
	}

	handler := slog.NewJSONHandler(writer, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{logger: slog.New(handler), file: file}, nil
}

// parseLevel converts a string level to slog.Level, defaulting to INFO.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a child logger carrying the given attributes on every entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), file: l.file}
}

// WithSession returns a child logger tagged with the session id.
func (l *Logger) WithSession(sessionID string) *Logger {
	return l.With("session", sessionID)
}

// WithParticipant returns a child logger tagged with the acting participant.
func (l *Logger) WithParticipant(name string) *Logger {
	return l.With("participant", name)
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.logger.Info(msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.logger.Warn(msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Close releases the underlying log file, if any. Child loggers share the
// file; close only the root.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
