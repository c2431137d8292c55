package ports

import (
	"context"

	"github.com/creatorloop/vertcut/internal/types"
)

// VideoTool wraps the external media tools (ffmpeg/ffprobe). Every stage
// reads one file and writes a new one; none mutate their input.
type VideoTool interface {
	// Probe is best-effort: a failed or unreadable probe returns a
	// zero-valued asset, never an error.
	Probe(ctx context.Context, path string) types.VideoAsset

	MakeVertical(ctx context.Context, in, out string, asset types.VideoAsset) error
	ColorGrade(ctx context.Context, in, out string) error
	BurnCaptions(ctx context.Context, in, out, assPath string) error
	Concat(ctx context.Context, parts []string, out string) error
	FinalEncode(ctx context.Context, in, out string) error
	ExtractAudioMono16k(ctx context.Context, in, outWav string) error
}

// ASR is a speech-recognition model handle. The model is feature-detected:
// callers must branch on Available before calling Transcribe.
type ASR interface {
	Available() bool
	Transcribe(ctx context.Context, wavPath string) ([]types.Segment, error)
}

// TrendSource fetches raw trend records from some external provider.
type TrendSource interface {
	FetchSounds(ctx context.Context) ([]types.TrendRecord, error)
	FetchHashtags(ctx context.Context) ([]types.TrendRecord, error)
}
