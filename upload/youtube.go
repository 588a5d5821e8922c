// Package upload publishes finished quiz videos to YouTube via the
// Data API v3, with optional scheduled publishing.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/MVinothkumarAWS/k2-Quiz/config"
)

// Metadata carries everything the upload call needs besides the file.
type Metadata struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	CategoryID       string   `json:"category_id"`
	Visibility       string   `json:"visibility"`
	ScheduledTimeUTC string   `json:"scheduled_time_utc"`
}

type Uploader struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Uploader {
	return &Uploader{cfg: cfg}
}

// Run uploads one video. When a schedule time is set the video goes up
// private with a publish-at timestamp, as the API requires.
func (u *Uploader) Run(ctx context.Context, videoFile string, meta *Metadata) (string, string, error) {
	log.Info("[upload] Authenticating with YouTube API...")

	client, err := u.oauthClient(ctx)
	if err != nil {
		return "", "", fmt.Errorf("youtube auth: %w", err)
	}
	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return "", "", fmt.Errorf("youtube service: %w", err)
	}

	log.Infof("[upload] Uploading: %q", meta.Title)

	categoryID := meta.CategoryID
	if categoryID == "" {
		categoryID = u.cfg.Upload.CategoryID
	}
	visibility := meta.Visibility
	if visibility == "" {
		visibility = u.cfg.Upload.Visibility
	}

	snippet := &youtube.VideoSnippet{
		Title:                meta.Title,
		Description:          meta.Description,
		Tags:                 meta.Tags,
		CategoryId:           categoryID,
		DefaultLanguage:      u.cfg.Upload.DefaultLanguage,
		DefaultAudioLanguage: u.cfg.Upload.DefaultLanguage,
	}
	status := &youtube.VideoStatus{
		PrivacyStatus:           visibility,
		SelfDeclaredMadeForKids: u.cfg.Upload.MadeForKids,
	}
	if meta.ScheduledTimeUTC != "" && visibility == "public" {
		// Scheduled videos must start private.
		status.PrivacyStatus = "private"
		status.PublishAt = meta.ScheduledTimeUTC
		log.Infof("[upload] Scheduled for: %s UTC", meta.ScheduledTimeUTC)
	}

	f, err := os.Open(videoFile)
	if err != nil {
		return "", "", fmt.Errorf("open video file: %w", err)
	}
	defer f.Close()

	if fi, statErr := f.Stat(); statErr == nil {
		log.Infof("[upload] File size: %.1f MB", float64(fi.Size())/1024/1024)
	}

	call := svc.Videos.Insert([]string{"snippet", "status"}, &youtube.Video{
		Snippet: snippet,
		Status:  status,
	})
	call.NotifySubscribers(u.cfg.Upload.NotifySubscribers)
	call.Media(f)

	uploaded, err := call.Do()
	if err != nil {
		return "", "", fmt.Errorf("youtube upload: %w", err)
	}

	videoURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", uploaded.Id)
	log.Infof("[upload] Uploaded: %s", videoURL)
	return uploaded.Id, videoURL, nil
}

// oauthClient builds an HTTP client from env credentials
// (YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, YOUTUBE_REFRESH_TOKEN).
func (u *Uploader) oauthClient(ctx context.Context) (*http.Client, error) {
	clientID := os.Getenv("YOUTUBE_CLIENT_ID")
	clientSecret := os.Getenv("YOUTUBE_CLIENT_SECRET")
	refreshToken := os.Getenv("YOUTUBE_REFRESH_TOKEN")
	if clientID == "" || clientSecret == "" || refreshToken == "" {
		return nil, fmt.Errorf("YOUTUBE_CLIENT_ID, YOUTUBE_CLIENT_SECRET, or YOUTUBE_REFRESH_TOKEN not set")
	}

	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{youtube.YoutubeUploadScope, youtube.YoutubeScope},
	}
	token := &oauth2.Token{
		RefreshToken: refreshToken,
		Expiry:       time.Now().Add(-time.Hour), // force refresh
	}
	return oauth2.NewClient(ctx, conf.TokenSource(ctx, token)), nil
}

// LogUpload records the upload result as JSON in the logs directory.
func LogUpload(videoID, videoURL, videoFile, logsDir string, meta *Metadata) error {
	entry := map[string]interface{}{
		"video_id":      videoID,
		"video_url":     videoURL,
		"title":         meta.Title,
		"scheduled_utc": meta.ScheduledTimeUTC,
		"uploaded_at":   time.Now().UTC().Format(time.RFC3339),
		"video_file":    videoFile,
	}

	if err := os.MkdirAll(logsDir, 0755); err != nil {
		return err
	}
	logFile := filepath.Join(logsDir, fmt.Sprintf("upload_%s.json", time.Now().Format("20060102_150405")))
	data, _ := json.MarshalIndent(entry, "", "  ")
	if err := os.WriteFile(logFile, data, 0644); err != nil {
		return err
	}
	log.Infof("[upload] Upload log saved: %s", logFile)
	return nil
}
