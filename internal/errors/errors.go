package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var stderr io.Writer = os.Stderr

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Report prints the formatted error to stderr without exiting.
func Report(err error) {
	if err != nil {
		fmt.Fprintln(stderr, Format(err))
	}
}

// Fatal logs err, closes every closer in order, and exits with code 1.
// Close failures are logged but do not change the exit code.
func Fatal(l *log.Logger, err error, closers ...io.Closer) {
	if err == nil {
		return
	}
	if l != nil {
		l.Error("Command execution failed", "error", err)
	}
	for _, c := range closers {
		if c == nil {
			continue
		}
		if cerr := c.Close(); cerr != nil && l != nil {
			l.Warn("Failed to close resource", "error", cerr)
		}
	}
	Report(err)
	os.Exit(1)
}
