package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/creatorloop/vertcut/internal/domain/captions"
	"github.com/creatorloop/vertcut/internal/ports"
	"github.com/creatorloop/vertcut/internal/types"
)

type Deps struct {
	Video ports.VideoTool
	ASR   ports.ASR
}

// Editor sequences the media transform stages for one run. It is the
// failure boundary for the whole chain: stage errors become a failed run
// report, they never propagate to the caller.
type Editor struct {
	d    Deps
	logf func(format string, args ...any)
}

func New(d Deps, logf func(format string, args ...any)) *Editor {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Editor{d: d, logf: logf}
}

// Options toggles the conditional stages of a run.
type Options struct {
	AddCaptions bool
	AddIntro    bool
	AddOutro    bool
	ColorGrade  bool
}

// Input describes one run. WorkDir must exist and be exclusively owned by
// this run; OutputPath is the final upload-ready location.
type Input struct {
	Path         string
	Stem         string
	WorkDir      string
	OutputPath   string
	TemplatesDir string
	Options      Options
}

// CaptionResult is the output of the caption sub-pipeline.
type CaptionResult struct {
	Segments  []types.Segment
	SRTPath   string
	ASSPath   string
	WordCount int
	Duration  float64
}

// GenerateCaptions extracts audio, transcribes it (or falls back to the
// instrumental placeholder), and renders SRT and ASS artifacts at sibling
// paths of the video. The scratch wav is always removed.
func (e *Editor) GenerateCaptions(ctx context.Context, videoPath string) (CaptionResult, error) {
	base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
	wav := base + ".wav"
	if err := e.d.Video.ExtractAudioMono16k(ctx, videoPath, wav); err != nil {
		return CaptionResult{}, err
	}
	defer os.Remove(wav)

	var segments []types.Segment
	if e.d.ASR != nil && e.d.ASR.Available() {
		segs, err := e.d.ASR.Transcribe(ctx, wav)
		if err != nil {
			// Transcription failure is never fatal to the run.
			e.logf("transcription failed, using instrumental captions: %v", err)
		} else {
			segments = segs
		}
	} else {
		e.logf("no speech model configured, using instrumental captions")
	}
	segments = captions.Normalize(segments)

	srtPath := base + ".srt"
	assPath := base + ".ass"
	if err := os.WriteFile(srtPath, []byte(captions.RenderSRT(segments)), 0o644); err != nil {
		return CaptionResult{}, fmt.Errorf("write srt: %w", err)
	}
	if err := os.WriteFile(assPath, []byte(captions.RenderASS(segments)), 0o644); err != nil {
		return CaptionResult{}, fmt.Errorf("write ass: %w", err)
	}

	return CaptionResult{
		Segments:  segments,
		SRTPath:   srtPath,
		ASSPath:   assPath,
		WordCount: captions.WordCount(segments),
		Duration:  captions.TotalDuration(segments),
	}, nil
}

// Process runs the linear stage chain
// probed → vertical → [color_graded] → [captioned] → [intro_outro] → exported
// and returns the run report. Steps retains the prefix of completed stages
// when a stage fails.
func (e *Editor) Process(ctx context.Context, in Input) types.Run {
	run := types.Run{
		ID:        uuid.NewString(),
		Input:     in.Path,
		Stem:      in.Stem,
		StartedAt: time.Now(),
		Steps:     []string{},
	}

	probe := e.d.Video.Probe(ctx, in.Path)
	run.Probe = &probe
	run.Steps = append(run.Steps, "probed")
	e.logf("probed %s: %s %.1fs", in.Path, probe.Resolution(), probe.Duration)

	current := filepath.Join(in.WorkDir, in.Stem+"_vertical.mp4")
	if err := e.d.Video.MakeVertical(ctx, in.Path, current, probe); err != nil {
		return fail(run, err)
	}
	run.Steps = append(run.Steps, "vertical")

	if in.Options.ColorGrade {
		graded := filepath.Join(in.WorkDir, in.Stem+"_graded.mp4")
		if err := e.d.Video.ColorGrade(ctx, current, graded); err != nil {
			return fail(run, err)
		}
		run.Steps = append(run.Steps, "color_graded")
		current = graded
	}

	if in.Options.AddCaptions {
		cr, err := e.GenerateCaptions(ctx, current)
		if err != nil {
			return fail(run, err)
		}
		captioned := filepath.Join(in.WorkDir, in.Stem+"_captioned.mp4")
		if err := e.d.Video.BurnCaptions(ctx, current, captioned, cr.ASSPath); err != nil {
			return fail(run, err)
		}
		run.Steps = append(run.Steps, "captioned")
		run.Captions = &types.CaptionStats{WordCount: cr.WordCount, Duration: cr.Duration}
		current = captioned
	}

	if in.Options.AddIntro || in.Options.AddOutro {
		var parts []string
		intro := filepath.Join(in.TemplatesDir, "intro.mp4")
		outro := filepath.Join(in.TemplatesDir, "outro.mp4")
		if in.Options.AddIntro && fileExists(intro) {
			parts = append(parts, intro)
		}
		parts = append(parts, current)
		if in.Options.AddOutro && fileExists(outro) {
			parts = append(parts, outro)
		}
		if len(parts) > 1 {
			joined := filepath.Join(in.WorkDir, in.Stem+"_concat.mp4")
			if err := e.d.Video.Concat(ctx, parts, joined); err != nil {
				return fail(run, err)
			}
			run.Steps = append(run.Steps, "intro_outro")
			current = joined
		}
	}

	if err := e.d.Video.FinalEncode(ctx, current, in.OutputPath); err != nil {
		return fail(run, err)
	}
	run.Steps = append(run.Steps, "exported")

	final := e.d.Video.Probe(ctx, in.OutputPath)
	run.Output = in.OutputPath
	run.OutputSizeMB = final.SizeMB
	run.OutputDuration = final.Duration
	run.OutputResolution = final.Resolution()
	done := time.Now()
	run.CompletedAt = &done
	run.Status = types.StatusReady
	return run
}

func fail(run types.Run, err error) types.Run {
	run.Status = types.StatusFailed
	run.Error = err.Error()
	return run
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
