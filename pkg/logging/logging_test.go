package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestInitializeDebugDisabled(t *testing.T) {
	orig := slog.Default()
	defer slog.SetDefault(orig)

	t.Setenv(DebugEnv, "")
	Initialize(false)

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be disabled by default")
	}
}

func TestInitializeDebugEnabled(t *testing.T) {
	orig := slog.Default()
	defer slog.SetDefault(orig)

	Initialize(true)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be enabled with debug flag")
	}
}

func TestInitializeDebugFromEnv(t *testing.T) {
	orig := slog.Default()
	defer slog.SetDefault(orig)

	t.Setenv(DebugEnv, "1")
	Initialize(false)

	if !slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("debug level should be enabled when %s=1", DebugEnv)
	}
}
