// Package obslog carries the ambient log/slog conventions the
// compiler and runtime packages both log through: two extra leveled
// constants above slog.LevelInfo, each gated behind a package-level
// toggle so the per-frame hot path costs nothing when tracing is off
// (grounded on the teacher's core/util.go LevelTrace/LevelWaveform +
// EnableWaveformLog pattern).
package obslog

import (
	"context"
	"log/slog"
)

const (
	// LevelTrace is for step-by-step compile/schedule tracing —
	// the teacher's LevelTrace (core/util.go), one level above Info.
	LevelTrace slog.Level = slog.LevelInfo + 1

	// LevelSnapshot is for per-frame DebugTap/accumulator activity —
	// the teacher's LevelWaveform (core/util.go), two levels above Info.
	LevelSnapshot slog.Level = slog.LevelInfo + 2
)

// EnableTrace and EnableSnapshot gate Trace/Snapshot respectively,
// mirroring the teacher's EnableWaveformLog toggle: off by default so
// a production run never pays for step-by-step logging it didn't ask
// for.
var (
	EnableTrace    = false
	EnableSnapshot = false
)

// Trace logs msg at LevelTrace through the default slog logger, the
// same package-level-logger convention the teacher's Trace (core/util.go)
// uses rather than threading a *slog.Logger through every call site.
func Trace(msg string, args ...any) {
	if !EnableTrace {
		return
	}
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// Snapshot logs msg at LevelSnapshot, gated by EnableSnapshot.
func Snapshot(msg string, args ...any) {
	if !EnableSnapshot {
		return
	}
	slog.Log(context.Background(), LevelSnapshot, msg, args...)
}
