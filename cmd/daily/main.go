// Command daily runs the once-per-day automation: dedupe a question
// batch, generate one short per question plus one full video, then
// upload everything with staggered scheduled publish times.
//
//	daily -input questions.json            # generate + upload
//	daily -input questions.json -dry-run   # generate only
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

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
	"github.com/MVinothkumarAWS/k2-Quiz/upload"
)

const (
	// Shorts publish at 05:00, 05:30, ... IST; the full video follows
	// after the last short.
	publishStartHour   = 5
	publishStartMinute = 0
	publishIntervalMin = 30
)

// IST = UTC+5:30.
var ist = time.FixedZone("IST", (5*60+30)*60)

const shortsDescription = `🧠 GK Quiz — Test your General Knowledge!
Can you answer this? Drop your answer in the comments!

🔔 Subscribe to %s for daily GK quizzes
👍 Like | 💬 Comment | 📢 Share

#Quiz #GKQuiz #K2Quiz #Shorts
`

const fullDescription = `🎯 %d GK Questions — How many can you answer?

🔔 Subscribe to %s for daily quizzes
👍 Like if you scored 8+
💬 Write your score in the comments!

#Quiz #GKQuiz #K2Quiz
`

func main() {
	_ = godotenv.Load()

	inputFlag := flag.String("input", "", "path to JSON questions file")
	langFlag := flag.String("lang", "english", "voice language tag")
	configFlag := flag.String("config", "config.yaml", "path to config file")
	dryRunFlag := flag.Bool("dry-run", false, "generate videos, skip upload")
	flag.Parse()

	if *inputFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	quiz, err := types.LoadQuiz(*inputFlag)
	if err != nil {
		log.Fatalf("Invalid input: %v", err)
	}

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to open question store: %v", err)
	}
	defer db.Close()

	accepted, rejected, err := db.FilterDuplicates(quiz.Questions)
	if err != nil {
		log.Fatalf("Duplicate filter failed: %v", err)
	}
	log.Infof("[daily] %d unique questions, %d duplicates skipped", len(accepted), len(rejected))
	if len(accepted) == 0 {
		log.Info("[daily] Nothing new today")
		return
	}

	runID := uuid.NewString()[:8]
	dayDir := filepath.Join(cfg.Paths.Output, time.Now().In(ist).Format("2006-01-02"))
	if err := os.MkdirAll(dayDir, 0755); err != nil {
		log.Fatalf("Failed to create output dir: %v", err)
	}
	workDir, err := os.MkdirTemp("", "k2_daily_"+runID+"_")
	if err != nil {
		log.Fatalf("Failed to create work dir: %v", err)
	}
	defer os.RemoveAll(workDir)

	log.Infof("🎬 Daily pipeline starting — Run ID: %s", runID)

	composer := frames.NewComposer(cfg)
	assembler := assemble.New(cfg, composer, tts.New(cfg), images.NewResolver(cfg))
	writer := render.New(cfg)
	voice := cfg.Voice(*langFlag)
	ctx := context.Background()

	// One short per question.
	var shorts []string
	for i := range accepted {
		q := &accepted[i]
		log.Infof("[daily] Short %d/%d...", i+1, len(accepted))
		segments, err := assembler.AssembleQuestion(ctx, q, types.FormatShorts, voice, nil, workDir)
		if err != nil {
			log.Errorf("[daily] short %d failed: %v — skipping", i+1, err)
			continue
		}
		outPath := filepath.Join(dayDir, fmt.Sprintf("short_%03d.mp4", i+1))
		if err := writer.Write(ctx, segments, outPath); err != nil {
			log.Fatalf("[daily] write short %d: %v", i+1, err)
		}
		shorts = append(shorts, outPath)
	}

	// One full video with all of today's questions.
	title := quiz.Title
	if title == "" {
		title = "Daily GK Quiz"
	}
	var fullVideo string
	segments, err := assembler.AssembleFull(ctx, accepted, title, voice, workDir)
	if err != nil {
		log.Errorf("[daily] full video failed: %v", err)
	} else {
		fullVideo = filepath.Join(dayDir, "full.mp4")
		if err := writer.Write(ctx, segments, fullVideo); err != nil {
			log.Fatalf("[daily] write full video: %v", err)
		}
	}

	if *dryRunFlag {
		log.Infof("✅ Dry run complete — %d shorts + full video in %s", len(shorts), dayDir)
		return
	}

	uploadAll(ctx, cfg, shorts, fullVideo, title, len(accepted))
}

// uploadAll schedules each short at a fixed interval starting tomorrow
// morning IST, with the full video after the last short. An individual
// upload failure is reported and does not stop the rest.
func uploadAll(ctx context.Context, cfg *config.Config, shorts []string, fullVideo, title string, questionCount int) {
	uploader := upload.New(cfg)
	channel := cfg.Upload.ChannelName

	now := time.Now().In(ist)
	first := time.Date(now.Year(), now.Month(), now.Day(), publishStartHour, publishStartMinute, 0, 0, ist).AddDate(0, 0, 1)

	slot := 0
	for i, videoFile := range shorts {
		publishAt := first.Add(time.Duration(slot*publishIntervalMin) * time.Minute)
		meta := &upload.Metadata{
			Title:            fmt.Sprintf("%s #%d #Shorts", title, i+1),
			Description:      fmt.Sprintf(shortsDescription, channel),
			Tags:             []string{"quiz", "gk", "shorts"},
			ScheduledTimeUTC: publishAt.UTC().Format(time.RFC3339),
			Visibility:       "public",
		}
		if id, url, err := uploader.Run(ctx, videoFile, meta); err != nil {
			log.Errorf("[daily] upload short %d failed: %v", i+1, err)
		} else {
			_ = upload.LogUpload(id, url, videoFile, cfg.Paths.Logs, meta)
		}
		slot++
	}

	if fullVideo != "" {
		publishAt := first.Add(time.Duration(slot*publishIntervalMin) * time.Minute)
		meta := &upload.Metadata{
			Title:            fmt.Sprintf("%s — %d Questions", title, questionCount),
			Description:      fmt.Sprintf(fullDescription, questionCount, channel),
			Tags:             []string{"quiz", "gk"},
			ScheduledTimeUTC: publishAt.UTC().Format(time.RFC3339),
			Visibility:       "public",
		}
		if id, url, err := uploader.Run(ctx, fullVideo, meta); err != nil {
			log.Errorf("[daily] upload full video failed: %v", err)
		} else {
			_ = upload.LogUpload(id, url, fullVideo, cfg.Paths.Logs, meta)
		}
	}

	log.Info("✅ Daily pipeline complete")
}
