package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithLogLevel(t *testing.T) {
	cfg := settings{level: slog.LevelInfo}
	WithLogLevel("debug")(&cfg)
	require.Equal(t, slog.LevelDebug, cfg.level)

	WithLogLevel("chatty")(&cfg)
	require.Equal(t, slog.LevelDebug, cfg.level)
}

func TestInit_StdoutTraces(t *testing.T) {
	ctx := context.Background()
	instruments, shutdown, err := Init(ctx, "pan-logistics-test", WithStdoutTraces(true), WithEnvironment("test"))
	require.NoError(t, err)
	defer func() { require.NoError(t, shutdown(ctx)) }()

	require.NotNil(t, instruments.Logger)
	require.NotNil(t, instruments.Tracer("test"))
	require.NotNil(t, instruments.Meter("test"))
}
