package logger

import (
	"fmt"
	"io"
	"os"
)

// Logger handles operational logging to stderr, keeping stdout clean for data output
type Logger struct {
	writer io.Writer
	prefix string
	quiet  bool
	debug  bool
}

// New creates a new logger that writes to stderr
func New(quiet, debug bool) *Logger {
	return NewWithWriter(os.Stderr, quiet, debug)
}

// NewWithWriter creates a new logger that writes to w
func NewWithWriter(w io.Writer, quiet, debug bool) *Logger {
	return &Logger{
		writer: w,
		quiet:  quiet,
		debug:  debug,
	}
}

// WithPrefix returns a copy of the logger that starts every line with "[prefix] "
func (l *Logger) WithPrefix(prefix string) *Logger {
	c := *l
	c.prefix = "[" + prefix + "] "
	return &c
}

func (l *Logger) printf(label, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(l.writer, l.prefix+label+format+"\n", args...)
}

// Infof logs an informational message
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.quiet {
		l.printf("", format, args...)
	}
}

// Successf logs a success message
func (l *Logger) Successf(format string, args ...interface{}) {
	if !l.quiet {
		l.printf("✓ ", format, args...)
	}
}

// Warningf logs a warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	if !l.quiet {
		l.printf("Warning: ", format, args...)
	}
}

// Errorf logs an error message (always shown, even in quiet mode)
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf("Error: ", format, args...)
}

// Debugf logs a debug message (only shown when debug mode is enabled)
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.debug {
		l.printf("DEBUG: ", format, args...)
	}
}

// Println prints a blank line (for spacing)
func (l *Logger) Println() {
	if !l.quiet {
		_, _ = fmt.Fprintln(l.writer)
	}
}
