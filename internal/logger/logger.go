// Package logger provides a simple leveled logger for the game.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Named child loggers share their parent's
// level and output. The logger is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// ParseLevel maps a config string to a Level. Unknown values give LevelNormal.
func ParseLevel(s string) Level {
	switch s {
	case "off", "quiet":
		return LevelOff
	case "verbose", "debug":
		return LevelVerbose
	default:
		return LevelNormal
	}
}

type shared struct {
	mu    sync.RWMutex
	level Level
	out   io.Writer
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	s      *shared
	name   string
	debug  *log.Logger
	info   *log.Logger
	warn   *log.Logger
	errLog *log.Logger
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}
	return build(&shared{level: level, out: out}, "")
}

func build(s *shared, name string) *Logger {
	flags := log.Ltime | log.Lmicroseconds
	prefix := ""
	if name != "" {
		prefix = name + ": "
	}
	return &Logger{
		s:      s,
		name:   name,
		debug:  log.New(s.out, "[DBG] "+prefix, flags|log.Lmsgprefix),
		info:   log.New(s.out, "[INF] "+prefix, flags|log.Lmsgprefix),
		warn:   log.New(s.out, "[WRN] "+prefix, flags|log.Lmsgprefix),
		errLog: log.New(s.out, "[ERR] "+prefix, flags|log.Lmsgprefix),
	}
}

// Named returns a child logger whose lines are tagged with name.
func (l *Logger) Named(name string) *Logger {
	if l.name != "" {
		name = l.name + "." + name
	}
	return build(l.s, name)
}

// SetLevel changes the log level at runtime, for this logger and all of its
// named children.
func (l *Logger) SetLevel(level Level) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.level = level
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	return l.s.level
}

func (l *Logger) output(min Level, dst *log.Logger, format string, args []any) {
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	if l.s.level >= min {
		dst.Output(3, fmt.Sprintf(format, args...))
	}
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.output(LevelVerbose, l.debug, format, args)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.output(LevelNormal, l.info, format, args)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.output(LevelNormal, l.warn, format, args)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.output(LevelNormal, l.errLog, format, args)
}
