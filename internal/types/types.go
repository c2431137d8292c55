package types

import (
	"fmt"
	"time"
)

// VideoAsset is a point-in-time snapshot of a video file's properties as
// reported by ffprobe. A zero-valued asset means the probe could not read
// the file; callers must treat every field as possibly unknown.
type VideoAsset struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Duration float64 `json:"duration"`
	FPS      float64 `json:"fps"`
	Codec    string  `json:"codec"`
	SizeMB   float64 `json:"size_mb"`
}

// Resolution renders the asset as "WxH".
func (a VideoAsset) Resolution() string {
	return fmt.Sprintf("%dx%d", a.Width, a.Height)
}

// Run statuses.
const (
	StatusReady  = "ready"
	StatusFailed = "failed"
)

// CaptionStats summarizes the caption artifacts attached to a run.
type CaptionStats struct {
	WordCount int     `json:"word_count"`
	Duration  float64 `json:"duration"`
}

// Run is the report of one end-to-end pipeline invocation. Steps grows
// monotonically in pipeline order; a failed run keeps whatever prefix of
// steps completed before the error.
type Run struct {
	ID               string        `json:"id"`
	Input            string        `json:"input"`
	Stem             string        `json:"stem"`
	StartedAt        time.Time     `json:"started_at"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"`
	Probe            *VideoAsset   `json:"probe,omitempty"`
	Steps            []string      `json:"steps"`
	Captions         *CaptionStats `json:"caption_data,omitempty"`
	Output           string        `json:"output,omitempty"`
	OutputSizeMB     float64       `json:"output_size_mb,omitempty"`
	OutputDuration   float64       `json:"output_duration,omitempty"`
	OutputResolution string        `json:"output_resolution,omitempty"`
	Status           string        `json:"status"`
	Error            string        `json:"error,omitempty"`
}

// Segment is one timed caption cue. Words, when present, carry word-level
// timestamps from the speech model.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Word is a word-level timestamp inside a Segment.
type Word struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability,omitempty"`
}

// Trend types accepted by the scorer.
const (
	TrendSound   = "sound"
	TrendHashtag = "hashtag"
)

// TrendRecord is a loosely-shaped trend entry from whichever fetch source
// produced it. Fetch sources populate some subset of the input fields; the
// scorer fills the derived fields, overwriting any previous values.
type TrendRecord struct {
	// Input fields, source-dependent.
	Title       string `json:"title,omitempty"`
	Name        string `json:"name,omitempty"`
	HashtagName string `json:"hashtagName,omitempty"`
	Views       int64  `json:"views,omitempty"`
	VideoCount  int64  `json:"videoCount,omitempty"`
	Rank        int    `json:"rank,omitempty"`
	URL         string `json:"url,omitempty"`
	Snippet     string `json:"snippet,omitempty"`
	Source      string `json:"source,omitempty"`

	// Derived fields, set by the scorer.
	NicheScore      int      `json:"niche_score"`
	ViralityScore   int      `json:"virality_score"`
	CompositeScore  float64  `json:"composite_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	TrendType       string   `json:"trend_type,omitempty"`
	Angle           string   `json:"didgeridoo_angle,omitempty"`
}

// DisplayName returns the first populated name field. Sound sources use
// Title, hashtag sources use Name or HashtagName.
func (t TrendRecord) DisplayName() string {
	if t.Title != "" {
		return t.Title
	}
	if t.Name != "" {
		return t.Name
	}
	return t.HashtagName
}

// Recommendation is one actionable content suggestion derived from the
// top-ranked trends.
type Recommendation struct {
	Type           string   `json:"type"`
	Priority       string   `json:"priority"`
	Trend          string   `json:"trend"`
	Action         string   `json:"action"`
	Hashtags       []string `json:"hashtags,omitempty"`
	EstimatedReach int64    `json:"estimated_reach"`
}

// TrendSnapshot is one scored-and-ranked view of the trend landscape.
type TrendSnapshot struct {
	Sounds          []TrendRecord    `json:"sounds"`
	Hashtags        []TrendRecord    `json:"hashtags"`
	FetchedAt       time.Time        `json:"fetched_at"`
	Recommendations []Recommendation `json:"recommendations"`
}

// ContentIdea is a reusable content format suggestion.
type ContentIdea struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Difficulty     string `json:"difficulty"`
	ViralPotential string `json:"viral_potential"`
}

// QueuedVideo describes a file in the raw or upload-queue directory.
type QueuedVideo struct {
	Filename   string  `json:"filename"`
	Path       string  `json:"path"`
	SizeMB     float64 `json:"size_mb"`
	Duration   float64 `json:"duration"`
	Resolution string  `json:"resolution"`
	Status     string  `json:"status,omitempty"`
}
