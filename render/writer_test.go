package render

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MVinothkumarAWS/k2-Quiz/config"
	"github.com/MVinothkumarAWS/k2-Quiz/types"
)

func TestWriteRejectsEmptySequence(t *testing.T) {
	w := New(config.Default())
	err := w.Write(context.Background(), nil, filepath.Join(t.TempDir(), "out.mp4"))
	assert.Error(t, err)
}

func TestEncoderSettingsFromEnv(t *testing.T) {
	t.Setenv("K2_FFMPEG_PRESET", "slow")
	t.Setenv("K2_FFMPEG_CRF", "18")
	w := New(config.Default())
	assert.Equal(t, "slow", w.preset)
	assert.Equal(t, "18", w.crf)

	t.Setenv("K2_FFMPEG_PRESET", "")
	t.Setenv("K2_FFMPEG_CRF", "")
	w = New(config.Default())
	assert.Equal(t, "veryfast", w.preset)
	assert.Equal(t, "23", w.crf)
}

func TestHasAudio(t *testing.T) {
	assert.False(t, hasAudio(&types.ClipSegment{}))

	tiny := filepath.Join(t.TempDir(), "tiny.mp3")
	require.NoError(t, os.WriteFile(tiny, []byte("x"), 0644))
	assert.False(t, hasAudio(&types.ClipSegment{AudioPath: tiny}), "undersized audio is treated as absent")

	real := filepath.Join(t.TempDir(), "real.mp3")
	require.NoError(t, os.WriteFile(real, make([]byte, 512), 0644))
	assert.True(t, hasAudio(&types.ClipSegment{AudioPath: real}))
}
