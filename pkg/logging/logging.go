// Package logging configures the process-wide slog logger for prtrack.
//
// Debug logging goes to stderr so that stdout stays reserved for command
// output. When debug is off, log records are discarded.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// DebugEnv enables debug logging when set to "1", mirroring the --debug flag.
const DebugEnv = "PRTRACK_DEBUG"

// Initialize sets up the default logger based on the debug flag.
// The environment variable PRTRACK_DEBUG=1 enables debug mode as well,
// so child processes and CI jobs can inherit the setting.
func Initialize(debug bool) {
	if os.Getenv(DebugEnv) == "1" {
		debug = true
	}

	if !debug {
		// Discard all logs when debug is off
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return
	}

	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}
