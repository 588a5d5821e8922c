// Package render encodes a segment sequence into one MP4. Each segment
// is a still PNG combined with its audio (or generated silence) by
// ffmpeg, then all segments are concatenated with stream copy.
package render

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/MVinothkumarAWS/k2-Quiz/config"
	"github.com/MVinothkumarAWS/k2-Quiz/types"
)

type Writer struct {
	cfg    *config.Config
	preset string
	crf    string
}

func New(cfg *config.Config) *Writer {
	preset := os.Getenv("K2_FFMPEG_PRESET")
	if preset == "" {
		preset = "veryfast"
	}
	crf := os.Getenv("K2_FFMPEG_CRF")
	if crf == "" {
		crf = "23"
	}
	return &Writer{cfg: cfg, preset: preset, crf: crf}
}

// Write encodes the segments to outputPath. Segment audio files are
// deleted once consumed; the scratch directory is removed on every
// exit path.
func (w *Writer) Write(ctx context.Context, segments []types.ClipSegment, outputPath string) error {
	if len(segments) == 0 {
		return fmt.Errorf("no segments to write")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	workDir, err := os.MkdirTemp("", "k2_render_")
	if err != nil {
		return fmt.Errorf("create render work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	segPaths := make([]string, len(segments))
	for i, seg := range segments {
		segPath, err := w.encodeSegment(ctx, &seg, workDir, i)
		if err != nil {
			return fmt.Errorf("segment %d: %w", i, err)
		}
		segPaths[i] = segPath
		if seg.AudioPath != "" {
			os.Remove(seg.AudioPath)
		}
	}

	return w.concat(ctx, segPaths, workDir, outputPath)
}

func (w *Writer) encodeSegment(ctx context.Context, seg *types.ClipSegment, workDir string, idx int) (string, error) {
	pngPath := filepath.Join(workDir, fmt.Sprintf("scene_%04d.png", idx))
	segPath := filepath.Join(workDir, fmt.Sprintf("scene_%04d.mp4", idx))

	f, err := os.Create(pngPath)
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, seg.Frame); err != nil {
		f.Close()
		return "", fmt.Errorf("encode frame png: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	args := []string{"-y", "-loop", "1", "-i", pngPath}
	if hasAudio(seg) {
		args = append(args, "-i", seg.AudioPath)
	} else {
		args = append(args, "-f", "lavfi", "-i", "anullsrc=channel_layout=mono:sample_rate=44100")
	}
	args = append(args,
		"-c:v", "libx264",
		"-tune", "stillimage",
		"-c:a", "aac",
		// Consistent sample rate across segments keeps the concat
		// demuxer stream-copyable.
		"-ar", "44100",
		"-b:a", "128k",
		"-pix_fmt", "yuv420p",
		"-r", fmt.Sprintf("%d", w.cfg.Video.FPS),
		"-t", fmt.Sprintf("%.3f", seg.Duration),
		"-preset", w.preset,
		"-crf", w.crf,
	)
	if !hasAudio(seg) {
		args = append(args, "-shortest")
	}
	args = append(args, segPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg encode: %w", err)
	}
	return segPath, nil
}

func (w *Writer) concat(ctx context.Context, segPaths []string, workDir, outputPath string) error {
	listFile := filepath.Join(workDir, "concat.txt")
	var lines []string
	for _, seg := range segPaths {
		lines = append(lines, fmt.Sprintf("file '%s'", seg))
	}
	if err := os.WriteFile(listFile, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		"-movflags", "+faststart",
		outputPath,
	)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg concat: %w", err)
	}
	log.Infof("[render] wrote %s (%d segments)", outputPath, len(segPaths))
	return nil
}

func hasAudio(seg *types.ClipSegment) bool {
	if seg.AudioPath == "" {
		return false
	}
	fi, err := os.Stat(seg.AudioPath)
	return err == nil && fi.Size() > 100
}
