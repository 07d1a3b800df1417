package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Colorized printing functions for the different log levels, built on fatih/color.
// Each behaves like fmt.Printf on the console and, once SetLogFile has been called,
// also appends a plain timestamped copy of the line to the log file.

// Info logs informational messages in green color.
var Info = newLevel("INFO", color.New(color.FgGreen))

// Warn logs warning messages in bright magenta color.
var Warn = newLevel("WARN", color.New(color.FgHiMagenta))

// Error logs error messages in red color.
var Error = newLevel("ERROR", color.New(color.FgRed))

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is assigned during Init based on the debug flag.
var Debug = func(format string, a ...any) {}

var (
	sinkMu sync.Mutex
	sink   io.Writer
	closer io.Closer
)

// Init initializes the logger package, specifically enabling or disabling debug logging.
// When disabled, Debug is a no-op function that silently ignores debug logs;
// debug lines are never written to the log file in that case either.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = newLevel("DEBUG", color.New(color.FgCyan))
	} else {
		Debug = func(format string, a ...any) {}
	}
}

// SetLogFile opens (or creates) path for appending and mirrors every log line into it.
// The parent directory is created when missing.
func SetLogFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	SetOutput(f)
	sinkMu.Lock()
	closer = f
	sinkMu.Unlock()
	return nil
}

// SetOutput replaces the file sink with w. A nil writer disables it.
func SetOutput(w io.Writer) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	sink = w
}

// Close flushes and releases the log file, if any.
func Close() {
	SetOutput(nil)
}

// newLevel builds a printf-style function that prints colored to the console
// and plain to the file sink.
func newLevel(level string, c *color.Color) func(format string, a ...any) {
	console := c.PrintfFunc()
	return func(format string, a ...any) {
		console(format, a...)
		writeSink(level, fmt.Sprintf(format, a...))
	}
}

func writeSink(level, msg string) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if sink == nil {
		return
	}
	// Console lines already carry a "[LEVEL] " tag; the file gets its own.
	msg = strings.TrimPrefix(msg, "["+level+"] ")
	msg = strings.TrimRight(msg, "\n")
	fmt.Fprintf(sink, "%s %s: %s\n", time.Now().Format("2006-01-02 15:04:05"), level, msg)
}
