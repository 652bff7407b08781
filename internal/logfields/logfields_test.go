package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "r-1", RunID("r-1")},
		{"Document", KeyDocument, "Guide_How2use", Document("Guide_How2use")},
		{"Block", KeyBlock, "sum_block", Block("sum_block")},
		{"Guard", KeyGuard, "html", Guard("html")},
		{"Location", KeyLocation, "guide.go:10", Location("guide.go:10")},
		{"Expression", KeyExpression, "sum == 55", Expression("sum == 55")},
		{"Outcome", KeyOutcome, "passed", Outcome("passed")},
		{"Path", KeyPath, "/tmp/x.md", Path("/tmp/x.md")},
		{"Resource", KeyResource, "YOLO.txt", Resource("YOLO.txt")},
		{"Addr", KeyAddr, ":8080", Addr(":8080")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %s", tc.name, tc.attrVal, got)
		}
	}
}

func TestNumericAndErrorHelpers(t *testing.T) {
	if a := Routine(2); a.Key != KeyRoutine || a.Value.Int64() != 2 {
		t.Fatalf("unexpected routine attr %v", a)
	}
	if a := Count(7); a.Value.Int64() != 7 {
		t.Fatalf("unexpected count attr %v", a)
	}
	if a := Duration(1500 * time.Microsecond); a.Value.Float64() != 1.5 {
		t.Fatalf("expected 1.5ms, got %v", a.Value.Float64())
	}
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("expected empty error value, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Value.String() != "boom" {
		t.Fatalf("expected boom, got %q", a.Value.String())
	}
}
