// Package trends scores raw trend records for niche relevance and viral
// potential, ranks them, and turns the top entries into actionable
// recommendations.
package trends

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/creatorloop/vertcut/internal/config"
	"github.com/creatorloop/vertcut/internal/types"
)

// Scorer computes the derived scoring fields of a trend record. Scoring is
// a pure function of the record's input fields except for the suggested
// angle, which is picked from a fixed template set via the injected random
// source.
type Scorer struct {
	cfg   config.Scoring
	niche []string
	music []string
	rng   *rand.Rand
}

func NewScorer(cfg config.Scoring, niche, music []string, rng *rand.Rand) *Scorer {
	return &Scorer{cfg: cfg, niche: niche, music: music, rng: rng}
}

// Score fills the derived fields of rec. Re-scoring overwrites rather than
// accumulates: the same inputs always yield the same scores.
func (s *Scorer) Score(rec types.TrendRecord, trendType string) types.TrendRecord {
	name := strings.ToLower(rec.DisplayName())

	nicheScore := 0
	matched := []string{}
	for _, kw := range s.niche {
		if strings.Contains(name, kw) {
			nicheScore += s.cfg.NicheHit
			matched = append(matched, kw)
		}
	}
	// Music-adjacent keywords may double-count with the niche list.
	for _, kw := range s.music {
		if strings.Contains(name, kw) {
			nicheScore += s.cfg.MusicHit
			matched = append(matched, kw)
		}
	}
	if nicheScore > 100 {
		nicheScore = 100
	}

	// Views for sounds, video count for hashtags. No popularity data at all
	// scores neutral, not zero: absent data must not read as "not viral".
	views := rec.Views
	if views == 0 {
		views = rec.VideoCount
	}
	virality := s.cfg.NeutralVirality
	if views > 0 {
		virality = int(float64(views) / s.cfg.ViewsPerPoint * 10)
		if virality > 100 {
			virality = 100
		}
	}

	composite := s.cfg.ViralityWeight*float64(virality) + s.cfg.NicheWeight*float64(nicheScore)

	rec.NicheScore = nicheScore
	rec.ViralityScore = virality
	rec.CompositeScore = math.Round(composite*10) / 10
	rec.MatchedKeywords = matched
	rec.TrendType = trendType
	rec.Angle = s.suggestAngle(name, trendType)
	return rec
}

func (s *Scorer) suggestAngle(name, trendType string) string {
	var angles []string
	if trendType == types.TrendSound {
		angles = []string{
			fmt.Sprintf("Play '%s' on the didgeridoo — the contrast will blow minds", name),
			fmt.Sprintf("Duet with the original '%s' using didgeridoo accompaniment", name),
			fmt.Sprintf("Create a didgeridoo remix of '%s' — drone bass version", name),
			fmt.Sprintf("React to '%s' then transition into a didgeridoo cover", name),
		}
	} else {
		angles = []string{
			fmt.Sprintf("Create a didgeridoo video tagged with #%s", name),
			fmt.Sprintf("Show your didgeridoo skills using the #%s trend format", name),
			fmt.Sprintf("Hop on #%s with an unexpected didgeridoo twist", name),
		}
	}
	return angles[s.rng.Intn(len(angles))]
}

// Rank sorts records descending by composite score. Ties stay in whatever
// order the sort leaves them.
func Rank(recs []types.TrendRecord) {
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].CompositeScore > recs[j].CompositeScore
	})
}
