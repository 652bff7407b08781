package errors

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "assertion", err: AssertionError("sum mismatch").Build(), expected: 3},
		{name: "guard", err: GuardError("unclosed guard").Build(), expected: 3},
		{name: "not found", err: NotFoundError("no such document").Build(), expected: 4},
		{name: "config", err: ConfigError("bad encoding").Build(), expected: 7},
		{name: "filesystem wrapped", err: fmt.Errorf("run: %w", FileSystemError("rename").Build()), expected: 11},
		{name: "internal", err: InternalError("panic").Build(), expected: 10},
		{name: "unclassified error", err: errors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(tt.err); got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	err := NotFoundError("document not registered").WithContext("document", "Guide").Build()

	t.Run("quiet", func(t *testing.T) {
		var out bytes.Buffer
		code := NewCLIErrorAdapter(false, logger).Report(&out, err)
		if code != 4 {
			t.Errorf("expected exit code 4, got %d", code)
		}
		if strings.TrimSpace(out.String()) != "Error: document not registered" {
			t.Errorf("unexpected output %q", out.String())
		}
		if logs.Len() != 0 {
			t.Errorf("expected no logs in quiet mode, got %q", logs.String())
		}
	})

	t.Run("verbose", func(t *testing.T) {
		var out bytes.Buffer
		NewCLIErrorAdapter(true, logger).Report(&out, err)
		if !strings.Contains(out.String(), "[not_found]") {
			t.Errorf("expected category in verbose output, got %q", out.String())
		}
		if !strings.Contains(logs.String(), "document=Guide") {
			t.Errorf("expected context in logs, got %q", logs.String())
		}
	})
}

func TestCLIErrorAdapter_JoinedFailures(t *testing.T) {
	err := errors.Join(
		AssertionError("assertion failed").Build(),
		errors.Join(GuardError("guard closed out of order").Build(), FileSystemError("rename document").Build()),
	)

	var out bytes.Buffer
	code := NewCLIErrorAdapter(false, slog.Default()).Report(&out, err)
	if code != 11 {
		t.Errorf("expected the filesystem exit code 11, got %d", code)
	}
	if got := strings.TrimSpace(out.String()); got != "Error: rename document (and 2 more)" {
		t.Errorf("unexpected output %q", got)
	}
}
