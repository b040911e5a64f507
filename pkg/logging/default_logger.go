// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var _ Logger = (*DefaultLogger)(nil)

// LoggerOptions configures a DefaultLogger.
type LoggerOptions struct {
	// Level sets the minimum level written.
	Level LogLevel
	// Format selects the built-in formatter. Ignored if Formatter is set.
	Format LogFormat
	// Formatter overrides Format.
	Formatter Formatter
	// Output defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to every text message, e.g. "checksum: ".
	Prefix string
	// ShowFields makes the text formatter print structured fields.
	ShowFields bool
	// ShowLevel makes the text formatter tag messages with their level.
	ShowLevel bool
}

// DefaultLoggerOptions returns info-level text logging to stderr.
func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stderr,
	}
}

// writer serializes writes from loggers derived through WithFields, which
// share one output.
type writer struct {
	mu  sync.Mutex
	out io.Writer
}

// DefaultLogger writes formatted entries to an io.Writer. It is safe for
// concurrent use, including by loggers derived from it.
type DefaultLogger struct {
	level     LogLevel
	formatter Formatter
	w         *writer
	fields    map[string]any
}

// NewLogger creates a DefaultLogger from opts.
func NewLogger(opts LoggerOptions) *DefaultLogger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	formatter := opts.Formatter
	if formatter == nil {
		switch opts.Format {
		case FormatJSON:
			formatter = &JSONFormatter{}
		default:
			formatter = &TextFormatter{Prefix: opts.Prefix, ShowFields: opts.ShowFields, ShowLevel: opts.ShowLevel}
		}
	}

	return &DefaultLogger{
		level:     opts.Level,
		formatter: formatter,
		w:         &writer{out: out},
	}
}

// WithFields returns a logger carrying the union of l's fields and fields.
// l is not modified.
func (l *DefaultLogger) WithFields(fields map[string]any) Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}

	return &DefaultLogger{
		level:     l.level,
		formatter: l.formatter,
		w:         l.w,
		fields:    merged,
	}
}

// WithField returns a logger carrying key=value in addition to l's fields.
func (l *DefaultLogger) WithField(key string, value any) Logger {
	return l.WithFields(map[string]any{key: value})
}

// Enabled reports whether level passes the logger's threshold.
func (l *DefaultLogger) Enabled(level LogLevel) bool {
	return level != LevelSilent && level >= l.level
}

func (l *DefaultLogger) log(level LogLevel, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   fmt.Sprintf(format, args...),
		Fields:    l.fields,
	}

	data, err := l.formatter.Format(entry)
	if err != nil {
		data = []byte(fmt.Sprintf("logging error: %v\n", err))
	}

	l.w.mu.Lock()
	defer l.w.mu.Unlock()
	_, _ = l.w.out.Write(data)
}

// Debug logs at debug level.
func (l *DefaultLogger) Debug(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

// Info logs at info level.
func (l *DefaultLogger) Info(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

// Warn logs at warn level.
func (l *DefaultLogger) Warn(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

// Error logs at error level.
func (l *DefaultLogger) Error(format string, args ...any) {
	l.log(LevelError, format, args...)
}
