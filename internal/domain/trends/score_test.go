package trends

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/creatorloop/vertcut/internal/config"
	"github.com/creatorloop/vertcut/internal/types"
)

func newTestScorer(niche, music []string) *Scorer {
	return NewScorer(config.Default().Scoring, niche, music, rand.New(rand.NewSource(1)))
}

func TestScore_NicheAndMusicKeywords(t *testing.T) {
	s := newTestScorer([]string{"didgeridoo"}, []string{"remix"})

	got := s.Score(types.TrendRecord{Title: "didgeridoo cover remix", Views: 1_000_000}, types.TrendSound)
	if got.NicheScore != 45 {
		t.Fatalf("niche score = %d, want 45 (30 niche + 15 music)", got.NicheScore)
	}
	if !reflect.DeepEqual(got.MatchedKeywords, []string{"didgeridoo", "remix"}) {
		t.Fatalf("matched keywords = %v", got.MatchedKeywords)
	}
	if got.TrendType != types.TrendSound {
		t.Fatalf("trend type = %q", got.TrendType)
	}
}

func TestScore_KeywordsMayDoubleCount(t *testing.T) {
	s := newTestScorer([]string{"music"}, []string{"music"})

	got := s.Score(types.TrendRecord{Name: "music"}, types.TrendHashtag)
	if got.NicheScore != 45 {
		t.Fatalf("niche score = %d, want 45 from double-counted keyword", got.NicheScore)
	}
	if !reflect.DeepEqual(got.MatchedKeywords, []string{"music", "music"}) {
		t.Fatalf("matched keywords = %v", got.MatchedKeywords)
	}
}

func TestScore_NicheClamp(t *testing.T) {
	kws := []string{"a", "b", "c", "d"}
	s := newTestScorer(kws, nil)

	got := s.Score(types.TrendRecord{Title: "a b c d"}, types.TrendSound)
	if got.NicheScore != 100 {
		t.Fatalf("niche score = %d, want clamp at 100", got.NicheScore)
	}
}

func TestScore_ViralityDefaultsToNeutral(t *testing.T) {
	s := newTestScorer(nil, nil)

	got := s.Score(types.TrendRecord{Title: "no popularity data"}, types.TrendSound)
	if got.ViralityScore != 50 {
		t.Fatalf("virality = %d, want exactly 50 for missing popularity", got.ViralityScore)
	}
}

func TestScore_ViralityClamp(t *testing.T) {
	s := newTestScorer(nil, nil)

	got := s.Score(types.TrendRecord{Title: "huge", Views: 50_000_000}, types.TrendSound)
	if got.ViralityScore != 100 {
		t.Fatalf("virality = %d, want clamp at 100", got.ViralityScore)
	}
}

func TestScore_ViralityFromVideoCount(t *testing.T) {
	s := newTestScorer(nil, nil)

	got := s.Score(types.TrendRecord{Name: "fyp", VideoCount: 3_000_000}, types.TrendHashtag)
	if got.ViralityScore != 30 {
		t.Fatalf("virality = %d, want 30 from video count", got.ViralityScore)
	}
}

func TestScore_CompositeWeighting(t *testing.T) {
	cfg := config.Scoring{
		ViralityWeight:  0.7,
		NicheWeight:     0.3,
		NicheHit:        20,
		MusicHit:        20,
		ViewsPerPoint:   1_000_000,
		NeutralVirality: 50,
	}
	s := NewScorer(cfg, []string{"drone"}, []string{"beat"}, rand.New(rand.NewSource(1)))

	// virality 80 (8M views), niche 40 (one hit per list at 20 each).
	got := s.Score(types.TrendRecord{Title: "drone beat", Views: 8_000_000}, types.TrendSound)
	if got.ViralityScore != 80 || got.NicheScore != 40 {
		t.Fatalf("subscores = virality %d niche %d, want 80/40", got.ViralityScore, got.NicheScore)
	}
	if got.CompositeScore != 68.0 {
		t.Fatalf("composite = %v, want 68.0", got.CompositeScore)
	}
}

func TestScore_Idempotent(t *testing.T) {
	rec := types.TrendRecord{Title: "didgeridoo remix", Views: 2_500_000}

	first := newTestScorer([]string{"didgeridoo"}, []string{"remix"}).Score(rec, types.TrendSound)
	second := newTestScorer([]string{"didgeridoo"}, []string{"remix"}).Score(first, types.TrendSound)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-scoring changed derived fields:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestScore_AngleMatchesTrendType(t *testing.T) {
	s := newTestScorer(nil, nil)

	sound := s.Score(types.TrendRecord{Title: "Epic Tribal Drums"}, types.TrendSound)
	if !strings.Contains(sound.Angle, "epic tribal drums") {
		t.Fatalf("sound angle should reference the trend name: %q", sound.Angle)
	}
	tag := s.Score(types.TrendRecord{Name: "fyp"}, types.TrendHashtag)
	if !strings.Contains(tag.Angle, "#fyp") {
		t.Fatalf("hashtag angle should reference the tag: %q", tag.Angle)
	}
}

func TestRank_DescendingByComposite(t *testing.T) {
	recs := []types.TrendRecord{
		{Title: "low", CompositeScore: 12.5},
		{Title: "high", CompositeScore: 88.0},
		{Title: "mid", CompositeScore: 50.1},
	}
	Rank(recs)
	if recs[0].Title != "high" || recs[1].Title != "mid" || recs[2].Title != "low" {
		t.Fatalf("unexpected rank order: %+v", recs)
	}
}
