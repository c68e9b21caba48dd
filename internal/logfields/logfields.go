package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyTerm       = "term"
	KeyPath       = "path"
	KeyInput      = "input"
	KeyOutput     = "output"
	KeyCount      = "count"
	KeyLinks      = "links"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func Term(term string) slog.Attr      { return slog.String(KeyTerm, term) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Input(p string) slog.Attr        { return slog.String(KeyInput, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Links(n int) slog.Attr           { return slog.Int(KeyLinks, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Duration reports d in milliseconds under the canonical duration key.
func Duration(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
