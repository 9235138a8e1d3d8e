// Package logging writes leveled log lines for the collatz service.
// Each line carries an uppercase level prefix and optional key=value
// fields. Context such as a request id attaches via With, and field
// order in the output is deterministic.
package logging

import (
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
)

// Level orders log severities.
type Level int

// Log levels, chattiest first. A logger drops lines below its
// configured minimum.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the uppercase prefix used in log lines.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// field is one bound key=value pair. Bound fields keep the order in
// which they were attached.
type field struct {
	key string
	val interface{}
}

// Logger writes leveled lines with bound context fields. Loggers are
// safe for concurrent use; child loggers from With share the parent's
// sink but never mutate the parent.
type Logger struct {
	mu    sync.RWMutex
	min   Level
	bound []field
	sink  *log.Logger
}

// defaultLogger backs the package-level functions.
var defaultLogger = New()

// New returns a logger that writes to stderr at warn level. The serve
// command raises the level once configuration is resolved.
func New() *Logger {
	return &Logger{
		min:  LevelWarn,
		sink: log.New(os.Stderr, "", log.LstdFlags),
	}
}

// SetLevel sets the minimum severity that gets written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.min = level
}

// SetDebug switches the minimum level between debug and info. The serve
// command calls this once flags and environment are resolved.
func (l *Logger) SetDebug(debug bool) {
	if debug {
		l.SetLevel(LevelDebug)
	} else {
		l.SetLevel(LevelInfo)
	}
}

// SetOutput redirects log lines, mainly for tests.
func (l *Logger) SetOutput(sink *log.Logger) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sink = sink
}

// With returns a child logger that carries key=value on every line.
// The receiver is left unchanged.
func (l *Logger) With(key string, value interface{}) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.child([]field{{key, value}})
}

// WithFields returns a child logger carrying all given fields. The map
// is flattened in sorted key order.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	add := make([]field, len(keys))
	for i, k := range keys {
		add[i] = field{k, fields[k]}
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.child(add)
}

// child clones the logger with extra bound fields appended. Callers
// hold at least a read lock.
func (l *Logger) child(add []field) *Logger {
	bound := make([]field, 0, len(l.bound)+len(add))
	bound = append(bound, l.bound...)
	bound = append(bound, add...)
	return &Logger{min: l.min, bound: bound, sink: l.sink}
}

// emit writes one line of the form "LEVEL: msg | k=v k=v". Bound
// fields come first in binding order, then the inline pairs in call
// order. Keys are not deduplicated. A pair whose key is not a string
// is skipped; a dangling value without a key is dropped.
func (l *Logger) emit(level Level, msg string, keyVals []interface{}) {
	l.mu.RLock()
	threshold := l.min
	sink := l.sink
	bound := l.bound
	l.mu.RUnlock()

	if level < threshold {
		return
	}

	var sb strings.Builder
	sb.WriteString(level.String())
	sb.WriteString(": ")
	sb.WriteString(msg)

	wrote := false
	for _, f := range bound {
		writeField(&sb, &wrote, f.key, f.val)
	}
	for i := 0; i+1 < len(keyVals); i += 2 {
		key, ok := keyVals[i].(string)
		if !ok {
			continue
		}
		writeField(&sb, &wrote, key, keyVals[i+1])
	}

	sink.Print(sb.String())
}

// writeField appends " k=v", emitting the " |" separator before the
// first field.
func writeField(sb *strings.Builder, wrote *bool, key string, val interface{}) {
	if !*wrote {
		sb.WriteString(" |")
		*wrote = true
	}
	sb.WriteByte(' ')
	sb.WriteString(key)
	sb.WriteByte('=')
	sb.WriteString(valueString(val))
}

// valueString renders a field value. Strings containing whitespace and
// error messages are quoted.
func valueString(v interface{}) string {
	switch val := v.(type) {
	case string:
		if strings.ContainsAny(val, " \t\n") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case error:
		return fmt.Sprintf("%q", val.Error())
	default:
		return fmt.Sprint(v)
	}
}

// Debug logs verbose diagnostics, visible only in debug mode.
func (l *Logger) Debug(msg string, keyVals ...interface{}) {
	l.emit(LevelDebug, msg, keyVals)
}

// Info logs routine events such as served requests.
func (l *Logger) Info(msg string, keyVals ...interface{}) {
	l.emit(LevelInfo, msg, keyVals)
}

// Warn logs recoverable problems, such as a rejected request.
func (l *Logger) Warn(msg string, keyVals ...interface{}) {
	l.emit(LevelWarn, msg, keyVals)
}

// Error logs failures that need attention.
func (l *Logger) Error(msg string, keyVals ...interface{}) {
	l.emit(LevelError, msg, keyVals)
}

// Package-level functions that forward to the default logger.

// SetLevel sets the minimum log level for the default logger.
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetDebug switches the default logger between debug and info level.
func SetDebug(debug bool) {
	defaultLogger.SetDebug(debug)
}

// SetOutput redirects the default logger's lines.
func SetOutput(sink *log.Logger) {
	defaultLogger.SetOutput(sink)
}

// With returns a child of the default logger carrying one extra field.
func With(key string, value interface{}) *Logger {
	return defaultLogger.With(key, value)
}

// WithFields returns a child of the default logger carrying all given
// fields.
func WithFields(fields map[string]interface{}) *Logger {
	return defaultLogger.WithFields(fields)
}

// Debug logs to the default logger at debug level.
func Debug(msg string, keyVals ...interface{}) {
	defaultLogger.Debug(msg, keyVals...)
}

// Info logs to the default logger at info level.
func Info(msg string, keyVals ...interface{}) {
	defaultLogger.Info(msg, keyVals...)
}

// Warn logs to the default logger at warn level.
func Warn(msg string, keyVals ...interface{}) {
	defaultLogger.Warn(msg, keyVals...)
}

// Error logs to the default logger at error level.
func Error(msg string, keyVals ...interface{}) {
	defaultLogger.Error(msg, keyVals...)
}
