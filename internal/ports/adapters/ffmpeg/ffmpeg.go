package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/creatorloop/vertcut/internal/config"
	"github.com/creatorloop/vertcut/internal/types"
)

// Aspect-ratio policy bounds for the vertical reframe. Sources wider than
// cropThreshold have enough width margin to center-crop without losing the
// subject; sources narrower than padThreshold are padded instead so a
// near-vertical frame is never over-cropped.
const (
	cropThreshold = 0.5625
	padThreshold  = 0.5
)

type Adapter struct {
	ffmpeg  string
	ffprobe string

	width        int
	height       int
	fps          int
	videoCodec   string
	audioCodec   string
	videoBitrate string
	audioBitrate string
	maxRate      string
	bufSize      string
	crf          int
	preset       string
	sampleRate   int

	timeout time.Duration
}

func New(cfg *config.Config) *Adapter {
	ff := cfg.FFmpegPath
	if ff == "" {
		ff = "ffmpeg"
	}
	fp := cfg.FFprobePath
	if fp == "" {
		fp = "ffprobe"
	}
	return &Adapter{
		ffmpeg:       ff,
		ffprobe:      fp,
		width:        cfg.Width,
		height:       cfg.Height,
		fps:          cfg.FPS,
		videoCodec:   cfg.VideoCodec,
		audioCodec:   cfg.AudioCodec,
		videoBitrate: cfg.VideoBitrate,
		audioBitrate: cfg.AudioBitrate,
		maxRate:      cfg.MaxRate,
		bufSize:      cfg.BufSize,
		crf:          cfg.CRF,
		preset:       cfg.Preset,
		sampleRate:   cfg.AudioSampleRate,
		timeout:      cfg.StageTimeout,
	}
}

type probeStream struct {
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	RFrameRate string `json:"r_frame_rate"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
		Size     string `json:"size"`
	} `json:"format"`
}

// Probe inspects a video file. It never fails: a missing tool, a non-zero
// exit or unparseable output all yield a zero-valued asset.
func (a *Adapter) Probe(ctx context.Context, path string) types.VideoAsset {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return types.VideoAsset{}
	}
	var data probeOutput
	if err := json.Unmarshal(out, &data); err != nil {
		return types.VideoAsset{}
	}

	var vs probeStream
	for _, s := range data.Streams {
		if s.CodecType == "video" {
			vs = s
			break
		}
	}
	duration, _ := strconv.ParseFloat(data.Format.Duration, 64)
	size, _ := strconv.ParseInt(data.Format.Size, 10, 64)
	return types.VideoAsset{
		Width:    vs.Width,
		Height:   vs.Height,
		Duration: duration,
		FPS:      parseFPS(vs.RFrameRate),
		Codec:    vs.CodecName,
		SizeMB:   round2(float64(size) / (1024 * 1024)),
	}
}

// MakeVertical reframes the input onto the configured portrait canvas.
func (a *Adapter) MakeVertical(ctx context.Context, in, out string, asset types.VideoAsset) error {
	args := []string{
		"-y",
		"-i", in,
		"-vf", a.verticalFilter(asset),
		"-c:v", a.videoCodec,
		"-b:v", a.videoBitrate,
		"-c:a", a.audioCodec,
		"-b:a", a.audioBitrate,
		"-r", strconv.Itoa(a.fps),
		"-movflags", "+faststart",
		out,
	}
	return a.run(ctx, "make vertical", args)
}

func (a *Adapter) verticalFilter(asset types.VideoAsset) string {
	aspect := 1.78
	if asset.Height > 0 {
		aspect = float64(asset.Width) / float64(asset.Height)
	}
	scalePad := fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2:black",
		a.width, a.height, a.width, a.height,
	)
	switch {
	case aspect > cropThreshold:
		// Landscape: center-crop to the target aspect first.
		return fmt.Sprintf("crop=ih*(%d/%d):ih,%s", a.width, a.height, scalePad)
	case aspect < padThreshold:
		// Ultra-tall: scale down and pad.
		return scalePad
	default:
		// Already roughly vertical: scale to fit and pad.
		return scalePad
	}
}

// ColorGrade applies the fixed cosmetic grade: contrast and saturation
// boost, slight brightness lift, vignette, light sharpening. Audio is
// passed through untouched.
func (a *Adapter) ColorGrade(ctx context.Context, in, out string) error {
	vf := "eq=contrast=1.1:brightness=0.02:saturation=1.2," +
		"vignette=PI/5," +
		"unsharp=3:3:0.5"
	args := []string{
		"-y",
		"-i", in,
		"-vf", vf,
		"-c:v", a.videoCodec,
		"-b:v", a.videoBitrate,
		"-c:a", "copy",
		out,
	}
	return a.run(ctx, "color grade", args)
}

// BurnCaptions overlays a styled ASS subtitle file onto the video.
func (a *Adapter) BurnCaptions(ctx context.Context, in, out, assPath string) error {
	args := []string{
		"-y",
		"-i", in,
		"-vf", "ass=" + escapeFilterPath(assPath),
		"-c:v", a.videoCodec,
		"-b:v", a.videoBitrate,
		"-c:a", "copy",
		out,
	}
	return a.run(ctx, "burn captions", args)
}

// Concat joins segments with a stream-copy concat. The generated manifest
// is removed whether or not ffmpeg succeeds.
func (a *Adapter) Concat(ctx context.Context, parts []string, out string) error {
	listPath := filepath.Join(filepath.Dir(out), "concat_list.txt")
	var b strings.Builder
	for _, p := range parts {
		fmt.Fprintf(&b, "file '%s'\n", p)
	}
	if err := os.WriteFile(listPath, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write concat manifest: %w", err)
	}
	defer os.Remove(listPath)

	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		out,
	}
	return a.run(ctx, "concat", args)
}

// FinalEncode produces the upload-ready file: capped bitrate, fixed pixel
// format and faststart so the output is immediately streamable.
func (a *Adapter) FinalEncode(ctx context.Context, in, out string) error {
	args := []string{
		"-y",
		"-i", in,
		"-c:v", a.videoCodec,
		"-preset", a.preset,
		"-crf", strconv.Itoa(a.crf),
		"-b:v", a.videoBitrate,
		"-maxrate", a.maxRate,
		"-bufsize", a.bufSize,
		"-c:a", a.audioCodec,
		"-b:a", a.audioBitrate,
		"-ar", strconv.Itoa(a.sampleRate),
		"-r", strconv.Itoa(a.fps),
		"-movflags", "+faststart",
		"-pix_fmt", "yuv420p",
		out,
	}
	return a.run(ctx, "final encode", args)
}

// ExtractAudioMono16k extracts mono 16kHz PCM audio, the input format the
// speech model expects.
func (a *Adapter) ExtractAudioMono16k(ctx context.Context, in, outWav string) error {
	args := []string{
		"-y",
		"-i", in,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		outWav,
	}
	return a.run(ctx, "extract audio", args)
}

func (a *Adapter) run(ctx context.Context, op string, args []string) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg %s: %w\n%s", op, err, string(b))
	}
	return nil
}

func (a *Adapter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.timeout > 0 {
		return context.WithTimeout(ctx, a.timeout)
	}
	return context.WithCancel(ctx)
}

// parseFPS parses an ffprobe frame rate like "30/1" or "29.97". Anything
// malformed, including a zero denominator, falls back to 30.0.
func parseFPS(s string) float64 {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 30.0
		}
		return round2(n / d)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 30.0
	}
	return f
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func escapeFilterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "\\\\")
	p = strings.ReplaceAll(p, ":", "\\:")
	return p
}
