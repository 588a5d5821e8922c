// Package tts synthesizes narration audio by shelling out to a TTS
// engine. Set TTS_COMMAND in the environment to a command accepting
// --text, --voice and --output; without it, edge-tts is used when
// available.
package tts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/MVinothkumarAWS/k2-Quiz/config"
	"github.com/MVinothkumarAWS/k2-Quiz/types"
)

type Engine struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Engine {
	return &Engine{cfg: cfg}
}

// QuestionNarration builds the spoken text for one question: the
// question followed by each option announced by letter.
func QuestionNarration(q *types.QuestionRecord) string {
	var b strings.Builder
	b.WriteString(q.Question)
	b.WriteString(". ")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "Option %s: %s. ", types.OptionLabels[i], opt)
	}
	return b.String()
}

// NarrateQuestion synthesizes the narration for a question and returns
// the measured audio duration in seconds.
func (e *Engine) NarrateQuestion(ctx context.Context, q *types.QuestionRecord, voice, outFile string) (float64, error) {
	if err := e.Synthesize(ctx, QuestionNarration(q), voice, outFile); err != nil {
		return 0, err
	}
	dur, err := AudioDuration(outFile)
	if err != nil {
		return 0, fmt.Errorf("measure narration duration: %w", err)
	}
	return dur, nil
}

// Synthesize generates speech audio for text, retrying transient
// failures up to 3 times.
func (e *Engine) Synthesize(ctx context.Context, text, voice, outFile string) error {
	ttsCmd, err := resolveEngine()
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		cmd := buildCommand(ctx, ttsCmd, text, voice, outFile)
		cmd.Stderr = os.Stderr
		lastErr = cmd.Run()
		if lastErr == nil {
			return nil
		}
		log.Warnf("[tts] attempt %d failed: %v — retrying...", attempt, lastErr)
		select {
		case <-time.After(time.Duration(attempt) * 2 * time.Second):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("tts failed after 3 attempts: %w", lastErr)
}

func resolveEngine() (string, error) {
	if cmd := strings.TrimSpace(os.Getenv("TTS_COMMAND")); cmd != "" {
		return cmd, nil
	}
	if _, err := exec.LookPath("edge-tts"); err == nil {
		return "edge-tts", nil
	}
	return "", fmt.Errorf("no TTS engine found: set TTS_COMMAND or install edge-tts (pip install edge-tts)")
}

func buildCommand(ctx context.Context, ttsCmd, text, voice, outFile string) *exec.Cmd {
	switch {
	case ttsCmd == "edge-tts":
		return exec.CommandContext(ctx,
			"edge-tts",
			"--voice", voice,
			"--text", text,
			"--write-media", outFile,
		)
	case strings.HasSuffix(ttsCmd, ".py"):
		return exec.CommandContext(ctx,
			"python3", ttsCmd,
			"--text", text,
			"--voice", voice,
			"--output", outFile,
		)
	default:
		return exec.CommandContext(ctx,
			ttsCmd,
			"--text", text,
			"--voice", voice,
			"--output", outFile,
		)
	}
}

// AudioDuration measures an audio file's duration with ffprobe.
func AudioDuration(path string) (float64, error) {
	out, err := exec.Command("ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	dur, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return dur, nil
}
