package whispercpp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creatorloop/vertcut/internal/types"
)

// Adapter runs a local whisper.cpp binary and reads back its JSON output.
type Adapter struct {
	bin   string
	model string
}

func New(binPath, modelPath string) *Adapter {
	return &Adapter{bin: binPath, model: modelPath}
}

// Available reports whether a transcriber is configured. The caption
// sub-pipeline falls back to placeholder captions when it is not.
func (a *Adapter) Available() bool {
	return a.bin != "" && a.model != ""
}

func (a *Adapter) Transcribe(ctx context.Context, wavPath string) ([]types.Segment, error) {
	outPrefix := filepath.Join(filepath.Dir(wavPath), "whisper")
	args := []string{
		"-m", a.model,
		"-f", wavPath,
		"-oj",
		"-of", outPrefix,
		"-owts",
	}
	cmd := exec.CommandContext(ctx, a.bin, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp failed: %w\n%s", err, string(b))
	}

	jb, err := os.ReadFile(outPrefix + ".json")
	if err != nil {
		return nil, err
	}

	var out struct {
		Segments []types.Segment `json:"segments"`
	}
	if err := json.Unmarshal(jb, &out); err != nil {
		return nil, err
	}
	for i := range out.Segments {
		out.Segments[i].Text = strings.TrimSpace(out.Segments[i].Text)
		for j := range out.Segments[i].Words {
			out.Segments[i].Words[j].Word = strings.TrimSpace(out.Segments[i].Words[j].Word)
		}
	}
	return out.Segments, nil
}
