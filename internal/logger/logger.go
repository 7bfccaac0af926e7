// Package logger provides verbose logging for secretpass.
// When verbose mode is enabled via the --verbose flag, condition
// transitions and source problems are written to stderr, or to the
// file given with --log-file when the TUI owns the terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	now               = time.Now
	stamp   bool
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// SetTimestamps prefixes every line with an RFC3339 millisecond timestamp.
// Log files want it; interactive stderr does not.
func SetTimestamps(v bool) {
	mu.Lock()
	defer mu.Unlock()
	stamp = v
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write("[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	write("[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func write(level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	prefix := level
	if stamp {
		prefix = now().Format("2006-01-02T15:04:05.000Z07:00") + " " + level
	}
	fmt.Fprintf(output, prefix+format+"\n", args...)
}
