package errors

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("name not found"),
			expected: "Error: name not found",
		},
		{
			name:     "wrapped error",
			err:      errors.New("mark: name not found"),
			expected: "Error: mark: name not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	result := Formatf("failed to open %s", "praylist.db")
	if result != "Error: failed to open praylist.db" {
		t.Errorf("Formatf() = %q", result)
	}
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	orig := stderr
	stderr = &buf
	defer func() { stderr = orig }()

	Report(nil)
	if buf.Len() != 0 {
		t.Errorf("Report(nil) wrote %q", buf.String())
	}

	Report(errors.New("too few candidates"))
	if buf.String() != "Error: too few candidates\n" {
		t.Errorf("Report() wrote %q", buf.String())
	}
}

type closeRecorder struct {
	path string
}

func (c closeRecorder) Close() error {
	return os.WriteFile(c.path, []byte("closed"), 0600)
}

// TestFatal runs Fatal in a subprocess and checks the exit code, stderr, and
// that closers ran.
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		l := log.New(os.Stderr)
		Fatal(l, errors.New("test error"), closeRecorder{path: os.Getenv("GO_TEST_FATAL_MARKER")})
		return
	}

	marker := t.TempDir() + "/closed"
	cmd := exec.Command(os.Args[0], "-test.run=^TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1", "GO_TEST_FATAL_MARKER="+marker)
	var stderrBuf bytes.Buffer
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderrBuf.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderrBuf.String(), "Error: test error")
		}
	} else {
		t.Fatalf("Fatal() did not exit with error: %v", err)
	}

	if _, err := os.Stat(marker); err != nil {
		t.Errorf("Fatal() did not run closers: %v", err)
	}
}

// TestFatal_NilError tests that Fatal does nothing when passed a nil error
func TestFatal_NilError(t *testing.T) {
	Fatal(nil, nil)
}
