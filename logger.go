package apiclient

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Logger is the minimal structured logging interface consumed by the client.
// Key/value pairs alternate in keysAndValues.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// SimpleLogger writes leveled lines to a standard library logger. Suitable
// for examples and tests; production embedders usually adapt their own
// logger to the Logger interface instead.
type SimpleLogger struct {
	logger *log.Logger
}

// NewSimpleLogger creates a SimpleLogger writing to stderr.
func NewSimpleLogger() *SimpleLogger {
	return &SimpleLogger{logger: log.New(os.Stderr, "", log.LstdFlags)}
}

func (l *SimpleLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.print("DEBUG", msg, keysAndValues...)
}

func (l *SimpleLogger) Info(msg string, keysAndValues ...interface{}) {
	l.print("INFO", msg, keysAndValues...)
}

func (l *SimpleLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.print("WARN", msg, keysAndValues...)
}

func (l *SimpleLogger) Error(msg string, keysAndValues ...interface{}) {
	l.print("ERROR", msg, keysAndValues...)
}

func (l *SimpleLogger) print(level, msg string, keysAndValues ...interface{}) {
	var b strings.Builder
	b.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	l.logger.Printf("[%s] %s", level, b.String())
}

// DebugConfig controls optional diagnostic logging around the request
// lifecycle. All flags are off unless Enabled is set.
type DebugConfig struct {
	Enabled      bool
	LogRequests  bool
	LogResponses bool
	LogWarnings  bool
	RequestIDGen func() string
}

// DefaultDebugConfig returns a config with all log categories selected but
// debugging disabled.
func DefaultDebugConfig() *DebugConfig {
	return &DebugConfig{
		Enabled:      false,
		LogRequests:  true,
		LogResponses: true,
		LogWarnings:  true,
		RequestIDGen: defaultRequestIDGen,
	}
}

var requestIDCounter uint64

func defaultRequestIDGen() string {
	return fmt.Sprintf("req_%d_%d", time.Now().UnixNano(), atomic.AddUint64(&requestIDCounter, 1))
}
