package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Video  VideoConfig  `yaml:"video"`
	Colors ColorsConfig `yaml:"colors"`
	Timing TimingConfig `yaml:"timing"`
	Fonts  FontsConfig  `yaml:"fonts"`
	Voices VoicesConfig `yaml:"voices"`
	Images ImagesConfig `yaml:"images"`
	Store  StoreConfig  `yaml:"store"`
	Upload UploadConfig `yaml:"upload"`
	Paths  PathsConfig  `yaml:"paths"`
}

type VideoConfig struct {
	ShortsWidth  int `yaml:"shorts_width"`
	ShortsHeight int `yaml:"shorts_height"`
	FullWidth    int `yaml:"full_width"`
	FullHeight   int `yaml:"full_height"`
	FPS          int `yaml:"fps"`
}

type ColorsConfig struct {
	Background string `yaml:"background"`
	Text       string `yaml:"text"`
	OptionBox  string `yaml:"option_box"`
	Timer      string `yaml:"timer"`
	Correct    string `yaml:"correct"`
}

type TimingConfig struct {
	CountdownStart   int     `yaml:"countdown_start"`
	FadeSec          float64 `yaml:"fade_sec"`
	PauseAfterReveal float64 `yaml:"pause_after_reveal_sec"`
	IntroSec         float64 `yaml:"intro_sec"`
	OutroSec         float64 `yaml:"outro_sec"`
}

type FontsConfig struct {
	Regular      string `yaml:"regular"`
	Bold         string `yaml:"bold"`
	QuestionSize int    `yaml:"question_size"`
	OptionSize   int    `yaml:"option_size"`
	TimerSize    int    `yaml:"timer_size"`
}

type VoicesConfig struct {
	// ByLanguage maps a voice-language tag ("english", "tamil") to an
	// edge-tts voice identifier.
	ByLanguage map[string]string `yaml:"by_language"`
	Default    string            `yaml:"default"`
}

type ImagesConfig struct {
	CacheDir   string `yaml:"cache_dir"`
	PixabayURL string `yaml:"pixabay_url"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type UploadConfig struct {
	Visibility        string `yaml:"visibility"`
	CategoryID        string `yaml:"category_id"`
	DefaultLanguage   string `yaml:"default_language"`
	NotifySubscribers bool   `yaml:"notify_subscribers"`
	MadeForKids       bool   `yaml:"made_for_kids"`
	ChannelName       string `yaml:"channel_name"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Logs   string `yaml:"logs"`
}

// Default returns the built-in configuration, matching the defaults the
// generator ships with. Every field can be overridden from config.yaml.
func Default() *Config {
	return &Config{
		Video: VideoConfig{
			ShortsWidth:  1080,
			ShortsHeight: 1920,
			FullWidth:    1920,
			FullHeight:   1080,
			FPS:          30,
		},
		Colors: ColorsConfig{
			Background: "#0f0f0f",
			Text:       "#ffffff",
			OptionBox:  "#1a1a2e",
			Timer:      "#ff6b35",
			Correct:    "#00ff88",
		},
		Timing: TimingConfig{
			CountdownStart:   5,
			FadeSec:          0.5,
			PauseAfterReveal: 1.0,
			IntroSec:         3.0,
			OutroSec:         4.0,
		},
		Fonts: FontsConfig{
			Regular:      "fonts/Poppins/Poppins-Medium.ttf",
			Bold:         "fonts/Poppins/Poppins-Bold.ttf",
			QuestionSize: 60,
			OptionSize:   44,
			TimerSize:    80,
		},
		Voices: VoicesConfig{
			ByLanguage: map[string]string{
				"english": "en-US-GuyNeural",
				"tamil":   "ta-IN-ValluvarNeural",
			},
			Default: "en-US-GuyNeural",
		},
		Images: ImagesConfig{
			CacheDir:   "images",
			PixabayURL: "https://pixabay.com/api/",
		},
		Store: StoreConfig{
			Path: "data/questions.db",
		},
		Upload: UploadConfig{
			Visibility:        "public",
			CategoryID:        "27",
			DefaultLanguage:   "en",
			NotifySubscribers: false,
			MadeForKids:       false,
			ChannelName:       "K2 Quiz",
		},
		Paths: PathsConfig{
			Output: "output",
			Logs:   "logs",
		},
	}
}

// Load reads config.yaml over the defaults. A missing file is not an
// error: the defaults are complete on their own.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Timing.CountdownStart < 1 {
		return fmt.Errorf("timing.countdown_start must be >= 1, got %d", c.Timing.CountdownStart)
	}
	if c.Video.FPS < 1 {
		return fmt.Errorf("video.fps must be >= 1, got %d", c.Video.FPS)
	}
	if c.Video.ShortsWidth < 1 || c.Video.ShortsHeight < 1 || c.Video.FullWidth < 1 || c.Video.FullHeight < 1 {
		return fmt.Errorf("video dimensions must be positive")
	}
	return nil
}

// Voice resolves a language tag to a voice identifier.
func (c *Config) Voice(language string) string {
	if v, ok := c.Voices.ByLanguage[language]; ok {
		return v
	}
	return c.Voices.Default
}
