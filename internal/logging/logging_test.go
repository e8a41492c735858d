package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupLevels(t *testing.T) {
	ctx := context.Background()

	require.True(t, Setup("development").Enabled(ctx, slog.LevelDebug))

	prod := Setup("production")
	require.False(t, prod.Enabled(ctx, slog.LevelDebug))
	require.True(t, prod.Enabled(ctx, slog.LevelInfo))

	require.False(t, Setup("test").Enabled(ctx, slog.LevelInfo))
}
