package cache

import (
	"fmt"
	"log"
	"strings"
)

// Field is a key/value pair attached to a log message.
type Field struct {
	Key   string
	Value any
}

// F builds a Field.
func F(key string, value any) Field { return Field{Key: key, Value: value} }

// Logger receives diagnostics from the cache (currently only sweeper
// failures). Plug in an adapter for your logging library of choice.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}

// stdLogger writes through the standard log package. Used as the default.
type stdLogger struct{}

func (stdLogger) Debug(msg string, fields ...Field) { logWith("DEBUG", msg, fields) }
func (stdLogger) Info(msg string, fields ...Field)  { logWith("INFO", msg, fields) }
func (stdLogger) Error(msg string, fields ...Field) { logWith("ERROR", msg, fields) }

func logWith(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString("[" + level + "] " + msg)
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	log.Println(b.String())
}

var (
	_ Logger = NopLogger{}
	_ Logger = stdLogger{}
)
