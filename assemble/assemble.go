// Package assemble turns one question into the fixed sequence of timed
// image+audio segments that make up its visual narrative:
// Narrate -> Countdown(n..1) -> Reveal.
package assemble

import (
	"context"
	"fmt"
	"image"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/MVinothkumarAWS/k2-Quiz/config"
	"github.com/MVinothkumarAWS/k2-Quiz/frames"
	"github.com/MVinothkumarAWS/k2-Quiz/types"
)

// Narrator synthesizes the spoken narration for a question and reports
// the audio duration in seconds.
type Narrator interface {
	NarrateQuestion(ctx context.Context, q *types.QuestionRecord, voice, outFile string) (float64, error)
}

// IllustrationSource resolves a question's illustration directive to a
// decoded image. ok == false means render without an illustration.
type IllustrationSource interface {
	ResolveDirective(ctx context.Context, directive, query string) (image.Image, bool)
}

// Renderer composes still frames. *frames.Composer is the production
// implementation.
type Renderer interface {
	Render(state *types.DisplayState, format types.Format) image.Image
	RenderIntro(title string, questionCount int) image.Image
	RenderOutro(score, total int) image.Image
}

var _ Renderer = (*frames.Composer)(nil)

type Assembler struct {
	cfg      *config.Config
	composer Renderer
	narrator Narrator
	images   IllustrationSource
}

func New(cfg *config.Config, composer Renderer, narrator Narrator, images IllustrationSource) *Assembler {
	return &Assembler{cfg: cfg, composer: composer, narrator: narrator, images: images}
}

// AssembleQuestion produces the segment sequence for one question:
// one narrated segment, countdown_start one-second countdown segments
// in descending order, and one reveal segment held for pause + fade.
// The narration audio is written into workDir; the caller owns workDir
// cleanup after the segments are consumed.
func (a *Assembler) AssembleQuestion(ctx context.Context, q *types.QuestionRecord, format types.Format, voice string, prog *types.Progress, workDir string) ([]types.ClipSegment, error) {
	audioFile, err := os.CreateTemp(workDir, "narration_*.mp3")
	if err != nil {
		return nil, fmt.Errorf("create narration file: %w", err)
	}
	audioPath := audioFile.Name()
	audioFile.Close()

	audioDur, err := a.narrator.NarrateQuestion(ctx, q, voice, audioPath)
	if err != nil {
		os.Remove(audioPath)
		return nil, fmt.Errorf("narrate question: %w", err)
	}

	segments := make([]types.ClipSegment, 0, a.cfg.Timing.CountdownStart+2)

	// Narrate: question and options on screen for the full narration.
	narrateState := &types.DisplayState{
		Question:  q.Question,
		Options:   q.Options,
		Highlight: -1,
		Progress:  prog,
	}
	segments = append(segments, types.ClipSegment{
		Frame:     a.composer.Render(narrateState, format),
		AudioPath: audioPath,
		Duration:  audioDur,
	})

	// Countdown: one silent second per value, descending. Independent
	// of the narration length; the two are simply laid end to end.
	for t := a.cfg.Timing.CountdownStart; t >= 1; t-- {
		state := &types.DisplayState{
			Question:  q.Question,
			Options:   q.Options,
			Highlight: -1,
			Countdown: t,
			Progress:  prog,
		}
		segments = append(segments, types.ClipSegment{
			Frame:    a.composer.Render(state, format),
			Duration: 1.0,
		})
	}

	// Reveal: highlight the correct option. Full format also gets the
	// illustration (when one resolves) and the updated score.
	revealState := &types.DisplayState{
		Question:  q.Question,
		Options:   q.Options,
		Highlight: q.Correct,
	}
	if format == types.FormatFull {
		if img, ok := a.images.ResolveDirective(ctx, q.Image, q.Options[q.Correct]); ok {
			revealState.Illustration = img
		}
		if prog != nil {
			revealState.Progress = &types.Progress{
				Number: prog.Number,
				Total:  prog.Total,
				Score:  prog.Score + 1,
			}
		}
	}
	segments = append(segments, types.ClipSegment{
		Frame:    a.composer.Render(revealState, format),
		Duration: a.cfg.Timing.PauseAfterReveal + a.cfg.Timing.FadeSec,
	})

	return segments, nil
}

// AssembleFull produces the segment sequence for one full-format video:
// intro bookend, every question in order, outro bookend. A question
// whose narration fails is skipped and reported; it does not abort the
// batch. The score shown is a display artifact: it increments by one on
// every completed question because there is no real answer input.
func (a *Assembler) AssembleFull(ctx context.Context, batch []types.QuestionRecord, title, voice, workDir string) ([]types.ClipSegment, error) {
	total := len(batch)
	segments := []types.ClipSegment{{
		Frame:    a.composer.RenderIntro(title, total),
		Duration: a.cfg.Timing.IntroSec,
	}}

	score := 0
	for i := range batch {
		q := &batch[i]
		prog := &types.Progress{Number: i + 1, Total: total, Score: score}

		qSegments, err := a.AssembleQuestion(ctx, q, types.FormatFull, voice, prog, workDir)
		if err != nil {
			log.Errorf("[assemble] question %d/%d failed: %v — skipping", i+1, total, err)
			continue
		}
		segments = append(segments, qSegments...)
		score++
	}

	if score == 0 {
		return nil, fmt.Errorf("no questions could be assembled")
	}

	segments = append(segments, types.ClipSegment{
		Frame:    a.composer.RenderOutro(score, total),
		Duration: a.cfg.Timing.OutroSec,
	})
	return segments, nil
}
