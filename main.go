// Command k2quiz generates quiz videos from a JSON question batch:
// narration audio, timed countdown frames, answer reveal, MP4 output.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/MVinothkumarAWS/k2-Quiz/assemble"
	"github.com/MVinothkumarAWS/k2-Quiz/config"
	"github.com/MVinothkumarAWS/k2-Quiz/frames"
	"github.com/MVinothkumarAWS/k2-Quiz/images"
	"github.com/MVinothkumarAWS/k2-Quiz/render"
	"github.com/MVinothkumarAWS/k2-Quiz/store"
	"github.com/MVinothkumarAWS/k2-Quiz/tts"
	"github.com/MVinothkumarAWS/k2-Quiz/types"
)

func main() {
	// Load .env (local dev only — CI uses environment secrets).
	_ = godotenv.Load()

	formatFlag := flag.String("format", "shorts", "video format: shorts or full")
	langFlag := flag.String("lang", "english", "voice language tag")
	outputFlag := flag.String("output", "", "output base filename (default derived from quiz title)")
	countFlag := flag.Int("count", 10, "questions per full-format video")
	outputDirFlag := flag.String("output-dir", "", "destination directory (default from config)")
	configFlag := flag.String("config", "config.yaml", "path to config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <questions.json>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	inputPath := flag.Arg(0)

	format, err := types.ParseFormat(*formatFlag)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *countFlag < 1 {
		log.Fatalf("count must be >= 1, got %d", *countFlag)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	outputDir := *outputDirFlag
	if outputDir == "" {
		outputDir = cfg.Paths.Output
	}

	// Validation errors surface before any work begins.
	quiz, err := types.LoadQuiz(inputPath)
	if err != nil {
		log.Fatalf("Invalid input: %v", err)
	}
	log.Infof("Loaded %d questions from %s", len(quiz.Questions), inputPath)

	// An unusable duplicate store is a configuration error, fatal at
	// startup.
	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open question store: %v", err)
	}
	defer db.Close()

	accepted, rejected, err := db.FilterDuplicates(quiz.Questions)
	if err != nil {
		log.Fatalf("Duplicate filter failed: %v", err)
	}
	log.Infof("Accepted %d questions, skipped %d duplicates", len(accepted), len(rejected))
	if len(accepted) == 0 {
		log.Info("Nothing new to generate")
		return
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		log.Fatalf("Failed to create output dir %s: %v", outputDir, err)
	}

	runID := uuid.NewString()[:8]
	workDir, err := os.MkdirTemp("", "k2_run_"+runID+"_")
	if err != nil {
		log.Fatalf("Failed to create work dir: %v", err)
	}
	defer os.RemoveAll(workDir)

	log.Infof("🎬 Quiz video generation starting — Run ID: %s", runID)

	composer := frames.NewComposer(cfg)
	assembler := assemble.New(cfg, composer, tts.New(cfg), images.NewResolver(cfg))
	writer := render.New(cfg)
	voice := cfg.Voice(*langFlag)

	baseName := *outputFlag
	if baseName == "" {
		baseName = slug(quiz.Title)
		if baseName == "" {
			baseName = "quiz_" + string(format)
		}
	}

	ctx := context.Background()
	var written []string
	switch format {
	case types.FormatShorts:
		written, err = generateShorts(ctx, assembler, writer, accepted, voice, baseName, outputDir, workDir)
	case types.FormatFull:
		written, err = generateFull(ctx, assembler, writer, accepted, quiz.Title, voice, baseName, outputDir, workDir, *countFlag)
	}
	if err != nil {
		log.Fatalf("❌ Generation failed: %v", err)
	}
	log.Infof("✅ Done — %d video(s) written to %s", len(written), outputDir)
}

// generateShorts writes one vertical video per question. A question
// whose narration fails is skipped and reported; the batch continues.
func generateShorts(ctx context.Context, assembler *assemble.Assembler, writer *render.Writer, questions []types.QuestionRecord, voice, baseName, outputDir, workDir string) ([]string, error) {
	var written []string
	for i := range questions {
		q := &questions[i]
		log.Infof("[shorts] Generating video %d/%d...", i+1, len(questions))

		segments, err := assembler.AssembleQuestion(ctx, q, types.FormatShorts, voice, nil, workDir)
		if err != nil {
			log.Errorf("[shorts] question %d (%q) failed: %v — skipping", i+1, q.Question, err)
			continue
		}

		outPath := filepath.Join(outputDir, fmt.Sprintf("%s_%03d.mp4", baseName, i+1))
		if err := writer.Write(ctx, segments, outPath); err != nil {
			return written, fmt.Errorf("write %s: %w", outPath, err)
		}
		written = append(written, outPath)
	}
	if len(written) == 0 {
		return nil, fmt.Errorf("no videos could be generated")
	}
	return written, nil
}

// generateFull writes one horizontal video per batch of count
// questions, with intro and outro bookends.
func generateFull(ctx context.Context, assembler *assemble.Assembler, writer *render.Writer, questions []types.QuestionRecord, title, voice, baseName, outputDir, workDir string, count int) ([]string, error) {
	var batches [][]types.QuestionRecord
	for start := 0; start < len(questions); start += count {
		end := start + count
		if end > len(questions) {
			end = len(questions)
		}
		batches = append(batches, questions[start:end])
	}

	var written []string
	for batchIdx, batch := range batches {
		log.Infof("[full] Generating video %d/%d (%d questions)...", batchIdx+1, len(batches), len(batch))

		videoTitle := title
		if videoTitle == "" {
			videoTitle = "GK Quiz"
		}
		if len(batches) > 1 {
			videoTitle = fmt.Sprintf("%s - Part %d", videoTitle, batchIdx+1)
		}

		segments, err := assembler.AssembleFull(ctx, batch, videoTitle, voice, workDir)
		if err != nil {
			log.Errorf("[full] batch %d failed: %v — skipping", batchIdx+1, err)
			continue
		}

		outPath := filepath.Join(outputDir, fmt.Sprintf("%s_%03d.mp4", baseName, batchIdx+1))
		if err := writer.Write(ctx, segments, outPath); err != nil {
			return written, fmt.Errorf("write %s: %w", outPath, err)
		}
		written = append(written, outPath)
	}
	if len(written) == 0 {
		return nil, fmt.Errorf("no videos could be generated")
	}
	return written, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slug(s string) string {
	return strings.Trim(slugPattern.ReplaceAllString(strings.ToLower(s), "_"), "_")
}
