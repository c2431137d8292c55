package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/creatorloop/vertcut/internal/config"
	"github.com/creatorloop/vertcut/internal/ports"
	"github.com/creatorloop/vertcut/internal/ports/adapters/ffmpeg"
	"github.com/creatorloop/vertcut/internal/ports/adapters/whispercpp"
	"github.com/creatorloop/vertcut/internal/types"
	"github.com/creatorloop/vertcut/internal/usecase"
)

// Config wires one pipeline invocation. Video and ASR are optional
// overrides for tests; when nil the ffmpeg and whisper.cpp adapters are
// constructed from Conf.
type Config struct {
	Input   string
	Options usecase.Options
	Conf    *config.Config
	Logf    func(format string, args ...any)

	Video ports.VideoTool
	ASR   ports.ASR
}

// Validate rejects bad inputs before any working directory is created.
func (c Config) Validate() error {
	if c.Conf == nil {
		return errors.New("configuration is required")
	}
	if err := c.Conf.Validate(); err != nil {
		return err
	}
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if !c.Conf.Supported(c.Input) {
		return fmt.Errorf("unsupported format: %s", filepath.Ext(c.Input))
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	return nil
}

// Run processes one input video end to end and returns its report. The
// report is also persisted as report.json inside the run's working
// directory, on success and on failure alike; persistence is best-effort
// and never fails the run.
func Run(ctx context.Context, cfg Config) (types.Run, error) {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if err := cfg.Validate(); err != nil {
		return types.Run{}, err
	}

	video := cfg.Video
	if video == nil {
		video = ffmpeg.New(cfg.Conf)
	}
	asr := cfg.ASR
	if asr == nil {
		asr = whispercpp.New(cfg.Conf.WhisperBin, cfg.Conf.WhisperModel)
	}

	now := time.Now()
	stem := strings.TrimSuffix(filepath.Base(cfg.Input), filepath.Ext(cfg.Input))
	workDir := filepath.Join(cfg.Conf.ProcessedDir, buildRunDirName(stem, cfg.Input, now))
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return types.Run{}, fmt.Errorf("create working dir: %w", err)
	}
	if err := os.MkdirAll(cfg.Conf.QueueDir, 0o755); err != nil {
		return types.Run{}, fmt.Errorf("create queue dir: %w", err)
	}
	logf("working dir: %s", workDir)

	ed := usecase.New(usecase.Deps{Video: video, ASR: asr}, logf)
	run := ed.Process(ctx, usecase.Input{
		Path:         cfg.Input,
		Stem:         stem,
		WorkDir:      workDir,
		OutputPath:   filepath.Join(cfg.Conf.QueueDir, fmt.Sprintf("%s_%s_READY.mp4", stem, now.Format("20060102_150405"))),
		TemplatesDir: cfg.Conf.TemplatesDir,
		Options:      cfg.Options,
	})

	if err := writeReport(workDir, run); err != nil {
		// Bookkeeping failure must not break the run itself.
		logf("report not persisted: %v", err)
	} else {
		logf("report: %s", filepath.Join(workDir, "report.json"))
	}
	return run, nil
}

func writeReport(workDir string, run types.Run) error {
	b, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(filepath.Join(workDir, "report.json"), b, 0o644)
}

// PendingVideos lists raw videos waiting to be processed.
func PendingVideos(ctx context.Context, conf *config.Config, tool ports.VideoTool) ([]types.QueuedVideo, error) {
	entries, err := os.ReadDir(conf.RawDir)
	if err != nil {
		return nil, err
	}
	var out []types.QueuedVideo
	for _, e := range entries {
		if e.IsDir() || !conf.Supported(e.Name()) {
			continue
		}
		path := filepath.Join(conf.RawDir, e.Name())
		probe := tool.Probe(ctx, path)
		out = append(out, types.QueuedVideo{
			Filename:   e.Name(),
			Path:       path,
			SizeMB:     probe.SizeMB,
			Duration:   probe.Duration,
			Resolution: probe.Resolution(),
		})
	}
	return out, nil
}

// ReadyVideos lists processed videos sitting in the upload queue.
func ReadyVideos(ctx context.Context, conf *config.Config, tool ports.VideoTool) ([]types.QueuedVideo, error) {
	entries, err := os.ReadDir(conf.QueueDir)
	if err != nil {
		return nil, err
	}
	var out []types.QueuedVideo
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.ToLower(filepath.Ext(name)) != ".mp4" || !strings.Contains(name, "_READY") {
			continue
		}
		path := filepath.Join(conf.QueueDir, name)
		probe := tool.Probe(ctx, path)
		out = append(out, types.QueuedVideo{
			Filename:   name,
			Path:       path,
			SizeMB:     probe.SizeMB,
			Duration:   probe.Duration,
			Resolution: probe.Resolution(),
			Status:     types.StatusReady,
		})
	}
	return out, nil
}

func buildRunDirName(stem, input string, now time.Time) string {
	name := normalizePathSegment(stem)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", input, now.UTC().UnixNano())
	return fmt.Sprintf("%s-%s-%s", name, ts, hash(runSeed)[:6])
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
