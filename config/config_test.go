package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1080, cfg.Video.ShortsWidth)
	assert.Equal(t, 1920, cfg.Video.ShortsHeight)
	assert.Equal(t, 1920, cfg.Video.FullWidth)
	assert.Equal(t, 1080, cfg.Video.FullHeight)
	assert.Equal(t, 5, cfg.Timing.CountdownStart)
	assert.Equal(t, 0.5, cfg.Timing.FadeSec)
	assert.Equal(t, 1.0, cfg.Timing.PauseAfterReveal)
	assert.Equal(t, "#00ff88", cfg.Colors.Correct)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
timing:
  countdown_start: 3
voices:
  default: en-GB-RyanNeural
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Timing.CountdownStart)
	assert.Equal(t, "en-GB-RyanNeural", cfg.Voices.Default)
	// Untouched sections keep their defaults.
	assert.Equal(t, 30, cfg.Video.FPS)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timing: [not, a, map]"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Timing.CountdownStart = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Video.FPS = 0
	assert.Error(t, cfg.Validate())
}

func TestVoice(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "ta-IN-ValluvarNeural", cfg.Voice("tamil"))
	assert.Equal(t, "en-US-GuyNeural", cfg.Voice("english"))
	assert.Equal(t, cfg.Voices.Default, cfg.Voice("klingon"))
}
