package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"pdf-book-reader/internal/domain"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// AppLogger implements the domain.Logger interface
type AppLogger struct {
	level  LogLevel
	logger *slog.Logger
}

// NewLogger creates a new logger instance writing to stdout
func NewLogger(levelStr string) domain.Logger {
	return NewLoggerTo(os.Stdout, levelStr)
}

// NewLoggerTo creates a logger writing text records to w
func NewLoggerTo(w io.Writer, levelStr string) *AppLogger {
	level := parseLogLevel(levelStr)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})

	return &AppLogger{
		level:  level,
		logger: slog.New(handler),
	}
}

// Info logs an info message
func (l *AppLogger) Info(msg string, fields ...interface{}) {
	l.log(INFO, msg, fields...)
}

// Error logs an error message
func (l *AppLogger) Error(msg string, err error, fields ...interface{}) {
	allFields := append([]interface{}{"error", err}, fields...)
	l.log(ERROR, msg, allFields...)
}

// Debug logs a debug message
func (l *AppLogger) Debug(msg string, fields ...interface{}) {
	l.log(DEBUG, msg, fields...)
}

// Warn logs a warning message
func (l *AppLogger) Warn(msg string, fields ...interface{}) {
	l.log(WARN, msg, fields...)
}

// log drops records below the configured level and passes key/value pairs through.
// A trailing key without a value is discarded.
func (l *AppLogger) log(level LogLevel, msg string, fields ...interface{}) {
	if level < l.level {
		return
	}
	if len(fields)%2 != 0 {
		fields = fields[:len(fields)-1]
	}
	l.logger.Log(context.Background(), level.slogLevel(), msg, fields...)
}

func (lvl LogLevel) slogLevel() slog.Level {
	switch lvl {
	case DEBUG:
		return slog.LevelDebug
	case WARN:
		return slog.LevelWarn
	case ERROR:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// parseLogLevel converts string log level to LogLevel enum
func parseLogLevel(levelStr string) LogLevel {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}
