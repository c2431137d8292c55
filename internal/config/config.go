package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Scoring holds the trend-scoring policy constants. These are policy
// choices, not derived from any measured model.
type Scoring struct {
	ViralityWeight  float64 `yaml:"virality_weight"`
	NicheWeight     float64 `yaml:"niche_weight"`
	NicheHit        int     `yaml:"niche_hit"`
	MusicHit        int     `yaml:"music_hit"`
	ViewsPerPoint   float64 `yaml:"views_per_point"`
	NeutralVirality int     `yaml:"neutral_virality"`
}

// Config is the static configuration supplied to every engine at startup.
type Config struct {
	// Directories.
	DataDir      string `yaml:"data_dir"`
	RawDir       string `yaml:"raw_dir"`
	ProcessedDir string `yaml:"processed_dir"`
	QueueDir     string `yaml:"queue_dir"`
	TemplatesDir string `yaml:"templates_dir"`

	// Output video settings.
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	FPS             int    `yaml:"fps"`
	VideoCodec      string `yaml:"video_codec"`
	AudioCodec      string `yaml:"audio_codec"`
	VideoBitrate    string `yaml:"video_bitrate"`
	AudioBitrate    string `yaml:"audio_bitrate"`
	AudioSampleRate int    `yaml:"audio_sample_rate"`
	MaxRate         string `yaml:"max_rate"`
	BufSize         string `yaml:"buf_size"`
	CRF             int    `yaml:"crf"`
	Preset          string `yaml:"preset"`

	SupportedExtensions []string `yaml:"supported_extensions"`

	// External tools.
	FFmpegPath   string        `yaml:"ffmpeg_path"`
	FFprobePath  string        `yaml:"ffprobe_path"`
	WhisperBin   string        `yaml:"whisper_bin"`
	WhisperModel string        `yaml:"whisper_model"`
	StageTimeout time.Duration `yaml:"stage_timeout"`

	// Trend monitoring.
	ApifyToken         string        `yaml:"apify_token"`
	ApifySoundsActor   string        `yaml:"apify_sounds_actor"`
	ApifyHashtagsActor string        `yaml:"apify_hashtags_actor"`
	SnapshotTTL        time.Duration `yaml:"snapshot_ttl"`

	NicheKeywords []string `yaml:"niche_keywords"`
	MusicKeywords []string `yaml:"music_keywords"`
	Scoring       Scoring  `yaml:"scoring"`
}

// Default returns the reference deployment configuration.
func Default() *Config {
	data := "data"
	return &Config{
		DataDir:      data,
		RawDir:       filepath.Join(data, "raw_videos"),
		ProcessedDir: filepath.Join(data, "processed_videos"),
		QueueDir:     filepath.Join(data, "upload_queue"),
		TemplatesDir: "templates",

		Width:           1080,
		Height:          1920,
		FPS:             30,
		VideoCodec:      "libx264",
		AudioCodec:      "aac",
		VideoBitrate:    "4M",
		AudioBitrate:    "128k",
		AudioSampleRate: 44100,
		MaxRate:         "5M",
		BufSize:         "10M",
		CRF:             23,
		Preset:          "medium",

		SupportedExtensions: []string{".mp4", ".mov", ".avi", ".mkv", ".webm"},

		FFmpegPath:   "ffmpeg",
		FFprobePath:  "ffprobe",
		WhisperBin:   "",
		WhisperModel: "",
		StageTimeout: 10 * time.Minute,

		ApifySoundsActor:   "clockworks~tiktok-trending-sounds-scraper",
		ApifyHashtagsActor: "clockworks~tiktok-trending-hashtags",
		SnapshotTTL:        time.Hour,

		NicheKeywords: []string{
			"didgeridoo", "didjeridu", "yidaki", "aboriginal",
			"indigenous", "music", "instrument", "busking",
			"street music", "world music", "meditation",
			"drone", "circular breathing", "outback",
			"australian", "tribal", "rhythm", "percussion",
		},
		MusicKeywords: []string{
			"music", "song", "beat", "sound", "remix", "cover", "instrument",
		},
		Scoring: Scoring{
			ViralityWeight:  0.7,
			NicheWeight:     0.3,
			NicheHit:        30,
			MusicHit:        15,
			ViewsPerPoint:   1_000_000,
			NeutralVirality: 50,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variable overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setStr := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setStr(&c.RawDir, "RAW_VIDEO_DIR")
	setStr(&c.ProcessedDir, "PROCESSED_VIDEO_DIR")
	setStr(&c.QueueDir, "UPLOAD_QUEUE_DIR")
	setStr(&c.FFmpegPath, "FFMPEG_PATH")
	setStr(&c.FFprobePath, "FFPROBE_PATH")
	setStr(&c.WhisperBin, "WHISPER_BIN")
	setStr(&c.WhisperModel, "WHISPER_MODEL")
	setStr(&c.ApifyToken, "APIFY_API_TOKEN")
	if v := os.Getenv("VIDEO_FPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FPS = n
		}
	}
}

// Validate checks that the configuration is internally usable.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid target resolution %dx%d", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return errors.New("fps must be > 0")
	}
	if c.VideoCodec == "" || c.AudioCodec == "" {
		return errors.New("video and audio codecs are required")
	}
	if len(c.SupportedExtensions) == 0 {
		return errors.New("supported extensions list is empty")
	}
	s := c.Scoring
	if s.ViralityWeight < 0 || s.NicheWeight < 0 {
		return errors.New("scoring weights must be >= 0")
	}
	if s.ViewsPerPoint <= 0 {
		return errors.New("scoring views_per_point must be > 0")
	}
	return nil
}

// Supported reports whether the file extension is an accepted input format.
// The check is case-insensitive.
func (c *Config) Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// EnsureDirs creates the working directory roots if missing.
func (c *Config) EnsureDirs() error {
	for _, d := range []string{c.DataDir, c.RawDir, c.ProcessedDir, c.QueueDir, c.TemplatesDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return fmt.Errorf("create dir %s: %w", d, err)
		}
	}
	return nil
}
