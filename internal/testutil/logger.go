package testutil

import (
	"fmt"
	"strings"
	"sync"

	"github.com/nagisham/syren/logging"
)

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Fields map[string]any
}

// RecordingLogger keeps every entry in memory so tests can assert on what
// was logged instead of on returned errors.
// Example:
//
//	logger := NewRecordingLogger()
//	em := event.New(event.WithLogger(logger))
//	...
//	require.Len(t, logger.Entries("WARN"), 1)
type RecordingLogger struct {
	mu      sync.Mutex
	entries []Entry
}

var (
	_ logging.Logger      = (*RecordingLogger)(nil)
	_ logging.StackLogger = (*RecordingLogger)(nil)
)

// NewRecordingLogger creates an empty recorder.
func NewRecordingLogger() *RecordingLogger { return &RecordingLogger{} }

// Debug records a DEBUG entry.
func (r *RecordingLogger) Debug(msg string, args ...any) { r.record("DEBUG", msg, args) }

// Info records an INFO entry.
func (r *RecordingLogger) Info(msg string, args ...any) { r.record("INFO", msg, args) }

// Warn records a WARN entry.
func (r *RecordingLogger) Warn(msg string, args ...any) { r.record("WARN", msg, args) }

// Error records an ERROR entry.
func (r *RecordingLogger) Error(msg string, args ...any) { r.record("ERROR", msg, args) }

// ErrorWithStack records an ERROR entry carrying err under "error" and a
// placeholder stack.
func (r *RecordingLogger) ErrorWithStack(err error, msg string, args ...any) {
	args = append(args, "error", err.Error(), "stack_trace", "<recorded>")
	r.record("ERROR", msg, args)
}

// Entries returns the entries of the given level ("" for all) in call order.
func (r *RecordingLogger) Entries(level string) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		if level == "" || strings.EqualFold(e.Level, level) {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns the messages of the given level ("" for all).
func (r *RecordingLogger) Messages(level string) []string {
	entries := r.Entries(level)
	msgs := make([]string, len(entries))
	for i, e := range entries {
		msgs[i] = e.Msg
	}
	return msgs
}

// Reset drops every recorded entry.
func (r *RecordingLogger) Reset() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}

func (r *RecordingLogger) record(level, msg string, args []any) {
	fields := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 < len(args) {
			fields[key] = args[i+1]
		} else {
			fields["!BADKEY"] = args[i]
		}
	}

	r.mu.Lock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: fields})
	r.mu.Unlock()
}
