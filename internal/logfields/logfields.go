package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyDocument   = "document"
	KeyRoutine    = "routine"
	KeyBlock      = "block"
	KeyGuard      = "guard"
	KeyLocation   = "location"
	KeyExpression = "expression"
	KeyOutcome    = "outcome"
	KeyPath       = "path"
	KeyResource   = "resource"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyAddr       = "addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr        { return slog.String(KeyRunID, id) }
func Document(name string) slog.Attr   { return slog.String(KeyDocument, name) }
func Routine(index int) slog.Attr      { return slog.Int(KeyRoutine, index) }
func Block(name string) slog.Attr      { return slog.String(KeyBlock, name) }
func Guard(kind string) slog.Attr      { return slog.String(KeyGuard, kind) }
func Location(loc string) slog.Attr    { return slog.String(KeyLocation, loc) }
func Expression(expr string) slog.Attr { return slog.String(KeyExpression, expr) }
func Outcome(o string) slog.Attr       { return slog.String(KeyOutcome, o) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Resource(name string) slog.Attr   { return slog.String(KeyResource, name) }
func Count(n int) slog.Attr            { return slog.Int(KeyCount, n) }
func Addr(a string) slog.Attr          { return slog.String(KeyAddr, a) }
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
