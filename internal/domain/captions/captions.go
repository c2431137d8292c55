// Package captions renders timed caption segments into SRT and ASS subtitle
// artifacts. Everything here is a pure function over segment data.
package captions

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/creatorloop/vertcut/internal/types"
)

// minSpeechLen is the minimum total transcript length, in characters, below
// which the audio is treated as instrumental.
const minSpeechLen = 10

// Instrumental returns the fixed placeholder segments used when no usable
// speech is detected.
func Instrumental() []types.Segment {
	return []types.Segment{
		{Start: 0.0, End: 3.0, Text: "🎵 Didgeridoo Vibes 🎵"},
		{Start: 3.0, End: 6.0, Text: "🔊 Feel the Drone 🔊"},
	}
}

// Normalize substitutes the instrumental placeholder when the transcript is
// effectively silence. It never returns an empty slice.
func Normalize(segments []types.Segment) []types.Segment {
	var parts []string
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	total := strings.Join(parts, " ")
	if utf8.RuneCountInString(total) < minSpeechLen {
		return Instrumental()
	}
	return segments
}

// WordCount counts whitespace-separated words across all segments.
func WordCount(segments []types.Segment) int {
	n := 0
	for _, s := range segments {
		n += len(strings.Fields(s.Text))
	}
	return n
}

// TotalDuration returns the end time of the last segment.
func TotalDuration(segments []types.Segment) float64 {
	if len(segments) == 0 {
		return 0
	}
	return segments[len(segments)-1].End
}

// RenderSRT renders segments as a plain sequential SRT file: 1-based cue
// index, timestamp line, text, blank separator.
func RenderSRT(segments []types.Segment) string {
	var b strings.Builder
	for i, s := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, FormatSRTTime(s.Start), FormatSRTTime(s.End), s.Text)
	}
	return b.String()
}

// RenderASS renders segments in the burned-caption style: a glow background
// layer under a sharper foreground layer, upper-cased text, portrait canvas.
func RenderASS(segments []types.Segment) string {
	var b strings.Builder
	b.WriteString(assHeader)
	for _, s := range segments {
		start := FormatASSTime(s.Start)
		end := FormatASSTime(s.End)
		text := strings.ToUpper(s.Text)
		fmt.Fprintf(&b, "Dialogue: 0,%s,%s,TikTokGlow,,0,0,0,,%s\n", start, end, text)
		fmt.Fprintf(&b, "Dialogue: 1,%s,%s,TikTok,,0,0,0,,%s\n", start, end, text)
	}
	return b.String()
}

const assHeader = `[Script Info]
Title: vertcut captions
ScriptType: v4.00+
PlayResX: 1080
PlayResY: 1920
WrapStyle: 0

[V4+ Styles]
Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding
Style: TikTok,Arial Black,72,&H00FFFFFF,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,4,0,2,40,40,200,1
Style: TikTokGlow,Arial Black,72,&H0000D4FF,&H000000FF,&H00000000,&H80000000,-1,0,0,0,100,100,0,0,1,6,2,2,40,40,200,1

[Events]
Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text
`

// FormatSRTTime formats float seconds as HH:MM:SS,mmm.
func FormatSRTTime(sec float64) string {
	ms := totalMillis(sec)
	return fmt.Sprintf("%02d:%02d:%02d,%03d",
		ms/3600000, ms/60000%60, ms/1000%60, ms%1000)
}

// FormatASSTime formats float seconds as H:MM:SS.cc. Centiseconds are
// truncated, not rounded.
func FormatASSTime(sec float64) string {
	cs := totalMillis(sec) / 10
	return fmt.Sprintf("%d:%02d:%02d.%02d",
		cs/360000, cs/6000%60, cs/100%60, cs%100)
}

// totalMillis snaps a float-seconds value to whole milliseconds so that
// e.g. 3725.678 yields 678ms rather than 677 from binary representation.
func totalMillis(sec float64) int64 {
	if sec < 0 {
		return 0
	}
	return int64(math.Round(sec * 1000))
}
