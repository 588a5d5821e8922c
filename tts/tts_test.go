package tts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MVinothkumarAWS/k2-Quiz/types"
)

func TestQuestionNarration(t *testing.T) {
	q := &types.QuestionRecord{
		Question: "What is the capital of France?",
		Options:  []string{"London", "Paris", "Berlin", "Madrid"},
		Correct:  1,
	}

	text := QuestionNarration(q)
	assert.Equal(t,
		"What is the capital of France?. "+
			"Option A: London. Option B: Paris. Option C: Berlin. Option D: Madrid. ",
		text)
}

func TestBuildCommandEdgeTTS(t *testing.T) {
	cmd := buildCommand(context.Background(), "edge-tts", "hello", "en-US-GuyNeural", "out.mp3")
	require.NotEmpty(t, cmd.Args)
	assert.Contains(t, cmd.Args[0], "edge-tts")
	assert.Contains(t, cmd.Args, "--voice")
	assert.Contains(t, cmd.Args, "en-US-GuyNeural")
	assert.Contains(t, cmd.Args, "--write-media")
	assert.Contains(t, cmd.Args, "out.mp3")
}

func TestBuildCommandPythonScript(t *testing.T) {
	cmd := buildCommand(context.Background(), "my_tts.py", "hello", "v", "out.mp3")
	assert.Contains(t, cmd.Args[0], "python3")
	assert.Contains(t, cmd.Args, "my_tts.py")
	assert.Contains(t, cmd.Args, "--output")
}

func TestBuildCommandGeneric(t *testing.T) {
	cmd := buildCommand(context.Background(), "/usr/local/bin/say-it", "hello", "v", "out.mp3")
	assert.Contains(t, cmd.Args[0], "say-it")
	assert.Contains(t, cmd.Args, "--text")
	assert.Contains(t, cmd.Args, "hello")
}

func TestResolveEngineFromEnv(t *testing.T) {
	t.Setenv("TTS_COMMAND", "  /opt/tts/speak  ")
	engine, err := resolveEngine()
	require.NoError(t, err)
	assert.Equal(t, "/opt/tts/speak", engine)
}
