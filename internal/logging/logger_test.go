package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger_LevelFiltering(t *testing.T) {
	InitLogger("warn", "text")
	require.NotNil(t, Logger)

	ctx := context.Background()
	assert.False(t, Logger.Enabled(ctx, slog.LevelInfo))
	assert.True(t, Logger.Enabled(ctx, slog.LevelWarn))
}

func TestInitLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	InitLogger("chatty", "json")
	require.NotNil(t, Logger)

	ctx := context.Background()
	assert.False(t, Logger.Enabled(ctx, slog.LevelDebug))
	assert.True(t, Logger.Enabled(ctx, slog.LevelInfo))
}

func TestInitLogger_SetsProcessDefault(t *testing.T) {
	InitLogger("info", "text")
	assert.Same(t, Logger, slog.Default())
}
