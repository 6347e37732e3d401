package starfield

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger receives lifecycle messages and, when debug is enabled, per-frame
// stats.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger writes leveled lines through the standard log package. Info
// and debug go to out, warnings and errors to err.
type DefaultLogger struct {
	mu     sync.Mutex
	debug  bool
	prefix string
	out    *log.Logger
	err    *log.Logger
}

// NewDefaultLogger returns a logger writing to stdout and stderr.
func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewWriterLogger(os.Stdout, os.Stderr, prefix, debug)
}

// NewWriterLogger returns a logger writing to the given writers.
func NewWriterLogger(out, errOut io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &DefaultLogger{
		debug:  debug,
		prefix: prefix,
		out:    log.New(out, "", flags),
		err:    log.New(errOut, "", flags),
	}
}

func (l *DefaultLogger) DebugEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.debug
}

func (l *DefaultLogger) SetDebug(enabled bool) {
	l.mu.Lock()
	l.debug = enabled
	l.mu.Unlock()
}

func (l *DefaultLogger) prefixf(level string, format string, args ...any) string {
	if l.prefix != "" {
		return fmt.Sprintf("[%s] %s: %s", l.prefix, level, fmt.Sprintf(format, args...))
	}
	return fmt.Sprintf("%s: %s", level, fmt.Sprintf(format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if !l.DebugEnabled() {
		return
	}
	l.out.Print(l.prefixf("DEBUG", format, args...))
}

func (l *DefaultLogger) Infof(format string, args ...any) {
	l.out.Print(l.prefixf("INFO", format, args...))
}

func (l *DefaultLogger) Warnf(format string, args ...any) {
	l.err.Print(l.prefixf("WARN", format, args...))
}

func (l *DefaultLogger) Errorf(format string, args ...any) {
	l.err.Print(l.prefixf("ERROR", format, args...))
}

type nopLogger struct{}

// NewNopLogger returns a Logger that discards everything.
func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// tagged prefixes every message with an animator tag so several mounted
// scenes can share one Logger.
type tagged struct {
	Logger
	tag string
}

func withTag(l Logger, tag string) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return tagged{Logger: l, tag: tag}
}

func (t tagged) Debugf(format string, args ...any) {
	t.Logger.Debugf("[%s] %s", t.tag, fmt.Sprintf(format, args...))
}

func (t tagged) Infof(format string, args ...any) {
	t.Logger.Infof("[%s] %s", t.tag, fmt.Sprintf(format, args...))
}

func (t tagged) Warnf(format string, args ...any) {
	t.Logger.Warnf("[%s] %s", t.tag, fmt.Sprintf(format, args...))
}

func (t tagged) Errorf(format string, args ...any) {
	t.Logger.Errorf("[%s] %s", t.tag, fmt.Sprintf(format, args...))
}
