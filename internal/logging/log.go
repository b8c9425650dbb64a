// Package logging provides a small leveled logger on top of the standard
// log package.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Level represents logging verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel parses ERROR, WARN, INFO or DEBUG (case-insensitive).
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError, nil
	case "WARN", "WARNING":
		return LevelWarn, nil
	case "INFO", "":
		return LevelInfo, nil
	case "DEBUG":
		return LevelDebug, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Logger writes leveled, component-tagged lines.
type Logger struct {
	level     Level
	component string
	out       *log.Logger
}

// New creates a logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// NewStderr creates a logger writing to standard error.
func NewStderr(level Level) *Logger {
	return New(os.Stderr, level)
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelError)
}

// With returns a logger tagging lines with component.
func (l *Logger) With(component string) *Logger {
	c := *l
	c.component = component
	return &c
}

// Level returns the current level.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) logf(level Level, tag, format string, args ...interface{}) {
	if l == nil || l.level < level {
		return
	}
	prefix := "[" + tag + "] "
	if l.component != "" {
		prefix += "[" + l.component + "] "
	}
	l.out.Printf(prefix+format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) { l.logf(LevelError, "ERROR", format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(LevelWarn, "WARN", format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(LevelInfo, "INFO", format, args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.logf(LevelDebug, "DEBUG", format, args...) }
