package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techgear/internal/config"
)

func TestLevelForVerbosity(t *testing.T) {
	assert.Equal(t, "info", LevelForVerbosity("info", 0))
	assert.Equal(t, "debug", LevelForVerbosity("info", 1))
	assert.Equal(t, "trace", LevelForVerbosity("info", 2))
	assert.Equal(t, "trace", LevelForVerbosity("debug", 5))
}

func TestApplyLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	applyLevel("trace")
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
	applyLevel("unknown")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestWriter_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "techgear.log")
	loader := config.NewLoader(config.MapSource{"LOG_COMPRESS": "false"})

	var console bytes.Buffer
	logger := zerolog.New(writer(&console, loader, path))
	logger.Info().Msg("hello rotation")

	assert.Contains(t, console.String(), "hello rotation")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello rotation")
}

func TestRotatingFile_Settings(t *testing.T) {
	loader := config.NewLoader(config.MapSource{
		"LOG_MAX_SIZE_MB":  "10",
		"LOG_MAX_BACKUPS":  "2",
		"LOG_MAX_AGE_DAYS": "not-a-number",
	})

	lj := rotatingFile(loader, "app.log")
	assert.Equal(t, 10, lj.MaxSize)
	assert.Equal(t, 2, lj.MaxBackups)
	assert.Equal(t, DefaultMaxAgeDays, lj.MaxAge)
	assert.True(t, lj.Compress)
}
