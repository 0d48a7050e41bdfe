// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels, formatted output and
// structured context fields.
//
// Chain validation steps log through this interface so operators can see
// why a chain was rejected, while the caller only receives a verdict.
type Logger interface {
	// Printf formats and prints an informational log message.
	Printf(format string, v ...any)
	// Println prints an informational log message with a newline.
	Println(v ...any)
	// Errorf formats and prints an error log message.
	Errorf(format string, v ...any)
	// With returns a child logger that attaches key=value to every message.
	With(key string, value any) Logger
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// field is a single structured key/value pair carried by a logger.
type field struct {
	key   string
	value any
}

// withField copies fields and appends a new pair so parents stay untouched.
func withField(fields []field, key string, value any) []field {
	out := make([]field, len(fields), len(fields)+1)
	copy(out, fields)
	return append(out, field{key: key, value: value})
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting;
// structured fields are rendered as a key=value suffix.
type CLILogger struct {
	logger *log.Logger
	fields []field
}

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) {
	c.logger.Print(c.suffix(fmt.Sprintf(format, v...)))
}

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) {
	c.logger.Print(c.suffix(strings.TrimSuffix(fmt.Sprintln(v...), "\n")))
}

// Errorf prints a log message prefixed with "error: ".
func (c *CLILogger) Errorf(format string, v ...any) {
	c.logger.Print(c.suffix("error: " + fmt.Sprintf(format, v...)))
}

// With returns a child CLI logger sharing the same output.
func (c *CLILogger) With(key string, value any) Logger {
	return &CLILogger{logger: c.logger, fields: withField(c.fields, key, value)}
}

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

func (c *CLILogger) suffix(msg string) string {
	if len(c.fields) == 0 {
		return msg
	}

	var sb strings.Builder
	sb.WriteString(msg)
	for _, f := range c.fields {
		fmt.Fprintf(&sb, " %s=%v", f.key, f.value)
	}
	return sb.String()
}

// sink is the writer shared between a JSONLogger and its children.
type sink struct {
	mu     sync.Mutex
	writer io.Writer
}

// JSONLogger implements Logger with one JSON object per line.
// It is used by the HTTP and [MCP] servers. In silent mode output is
// suppressed entirely, which the MCP stdio transport requires.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type JSONLogger struct {
	out    *sink
	silent bool
	fields []field
}

// NewJSONLogger creates a new JSON logger.
// A nil writer discards output.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		out:    &sink{writer: writer},
		silent: silent,
	}
}

// NewNopLogger returns a Logger that drops everything.
func NewNopLogger() Logger { return NewJSONLogger(io.Discard, true) }

// Printf logs an "info" entry.
func (j *JSONLogger) Printf(format string, v ...any) { j.write("info", fmt.Sprintf(format, v...)) }

// Println logs an "info" entry.
func (j *JSONLogger) Println(v ...any) { j.write("info", fmt.Sprint(v...)) }

// Errorf logs an "error" entry.
func (j *JSONLogger) Errorf(format string, v ...any) { j.write("error", fmt.Sprintf(format, v...)) }

// With returns a child logger writing to the same destination.
func (j *JSONLogger) With(key string, value any) Logger {
	return &JSONLogger{out: j.out, silent: j.silent, fields: withField(j.fields, key, value)}
}

// SetOutput sets the output destination for this logger and its children.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.out.mu.Lock()
	defer j.out.mu.Unlock()

	if w == nil {
		j.out.writer = io.Discard
	} else {
		j.out.writer = w
	}
}

func (j *JSONLogger) write(level, msg string) {
	if j.silent {
		return
	}

	entry := make(map[string]any, len(j.fields)+2)
	for _, f := range j.fields {
		if err, ok := f.value.(error); ok {
			entry[f.key] = err.Error()
			continue
		}
		entry[f.key] = f.value
	}
	entry["level"] = level
	entry["message"] = msg

	data, err := json.Marshal(entry)
	if err != nil {
		data, _ = json.Marshal(map[string]any{"level": level, "message": msg})
	}

	j.out.mu.Lock()
	fmt.Fprintln(j.out.writer, string(data))
	j.out.mu.Unlock()
}
