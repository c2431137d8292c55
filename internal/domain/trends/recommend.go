package trends

import (
	"fmt"
	"math/rand"

	"github.com/creatorloop/vertcut/internal/types"
)

// Fixed recommendation policy: the top 3 sounds and top 2 hashtags become
// suggestions. Inputs must already be ranked.
const (
	topSounds   = 3
	topHashtags = 2
)

// Recommend packages the highest-ranked trends into actionable suggestions.
func Recommend(sounds, hashtags []types.TrendRecord) []types.Recommendation {
	var recs []types.Recommendation

	var tagNames []string
	for i := 0; i < len(hashtags) && i < 5; i++ {
		if n := hashtagName(hashtags[i]); n != "" {
			tagNames = append(tagNames, n)
		}
	}

	for i := 0; i < len(sounds) && i < topSounds; i++ {
		s := sounds[i]
		trend := s.Title
		if trend == "" {
			trend = "Unknown"
		}
		recs = append(recs, types.Recommendation{
			Type:           "sound_cover",
			Priority:       "high",
			Trend:          trend,
			Action:         s.Angle,
			Hashtags:       tagNames,
			EstimatedReach: int64(s.ViralityScore) * 1000,
		})
	}

	for i := 0; i < len(hashtags) && i < topHashtags; i++ {
		h := hashtags[i]
		tag := hashtagName(h)
		recs = append(recs, types.Recommendation{
			Type:           "hashtag_ride",
			Priority:       "medium",
			Trend:          "#" + tag,
			Action:         fmt.Sprintf("Create a didgeridoo clip for #%s", tag),
			EstimatedReach: int64(h.ViralityScore) * 500,
		})
	}

	return recs
}

func hashtagName(rec types.TrendRecord) string {
	if rec.HashtagName != "" {
		return rec.HashtagName
	}
	return rec.Name
}

// ContentIdeas returns up to count idea templates, sampled without
// replacement via the given random source.
func ContentIdeas(rng *rand.Rand, count int) []types.ContentIdea {
	ideas := ideaTemplates()
	if count > len(ideas) {
		count = len(ideas)
	}
	if count < 0 {
		count = 0
	}
	rng.Shuffle(len(ideas), func(i, j int) { ideas[i], ideas[j] = ideas[j], ideas[i] })
	return ideas[:count]
}

func ideaTemplates() []types.ContentIdea {
	return []types.ContentIdea{
		{
			Type:           "cover",
			Title:          "🎵 Didgeridoo Cover of '{sound}'",
			Description:    "Play a trending song/sound on the didgeridoo. These often go viral because of the unexpected instrument twist.",
			Difficulty:     "medium",
			ViralPotential: "very high",
		},
		{
			Type:           "reaction",
			Title:          "😱 Reacting to '{sound}' with Didgeridoo",
			Description:    "Play along with a trending video using a duet format. The contrast between modern trends and ancient instrument = gold.",
			Difficulty:     "easy",
			ViralPotential: "high",
		},
		{
			Type:           "tutorial",
			Title:          "🎓 How to Play Didgeridoo: {hashtag} Edition",
			Description:    "Short tutorial clips showing technique. Educational content performs well on the algorithm.",
			Difficulty:     "easy",
			ViralPotential: "medium",
		},
		{
			Type:           "mashup",
			Title:          "🔥 Didgeridoo × {sound} Mashup",
			Description:    "Blend the didgeridoo drone with trending sounds. Unexpected mashups get massive shares.",
			Difficulty:     "hard",
			ViralPotential: "very high",
		},
		{
			Type:           "asmr",
			Title:          "😴 ASMR Didgeridoo Session",
			Description:    "Close-up recording with deep drone sounds. ASMR is consistently trending and the didgeridoo is perfect for it.",
			Difficulty:     "easy",
			ViralPotential: "high",
		},
		{
			Type:           "challenge",
			Title:          "🏆 Didgeridoo Challenge: Can I Play '{sound}'?",
			Description:    "Attempt trending challenges with a didgeridoo twist. The challenge format drives engagement through comments.",
			Difficulty:     "medium",
			ViralPotential: "very high",
		},
		{
			Type:           "street_performance",
			Title:          "🎶 Street Busking: People's Reactions!",
			Description:    "Film public reactions to live didgeridoo performances. Reaction content is consistently viral material.",
			Difficulty:     "easy",
			ViralPotential: "very high",
		},
	}
}
