// Package renderlog centralizes the renderer's diagnostic output with
// structured logging, replacing the teacher's bare core.Logger interface
// and fmt.Printf/log.Printf debug trail (web/server/render.go,
// pkg/integrator's pt.logf) with log/slog. The renderer emits no per-path
// trace lines; Debug is provided but not called anywhere in the tree.
package renderlog

import (
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// SetLevel adjusts the minimum level logged, e.g. slog.LevelDebug for
// per-path tracing during a debugging session.
func SetLevel(level slog.Level) {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Warn reports a recoverable condition worth a human's attention (a
// missing environment texture falling back to black, a degenerate BSDF
// sample) without aborting the render.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error reports a non-fatal error encountered mid-render (a failed texture
// decode, a malformed scene file) that the caller chooses to continue past.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}

// Info reports routine progress (iteration counts, scene load summary).
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Debug reports per-path/per-bounce tracing, the slog equivalent of the
// teacher's pt.logf verbose integrator trace — off by default, enabled
// with SetLevel(slog.LevelDebug).
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}
