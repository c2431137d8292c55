package trends

import "github.com/creatorloop/vertcut/internal/types"

// DemoSounds returns canned trending sounds for development and for runs
// with no fetch source configured.
func DemoSounds() []types.TrendRecord {
	return []types.TrendRecord{
		{Title: "Original Sound - EDM Remix", Views: 15_000_000, Rank: 1},
		{Title: "Lofi Beats to Chill To", Views: 8_500_000, Rank: 2},
		{Title: "Epic Tribal Drums", Views: 5_200_000, Rank: 3},
		{Title: "Meditation Bowl Sounds", Views: 4_100_000, Rank: 4},
		{Title: "Outback Sunrise Vibes", Views: 3_800_000, Rank: 5},
		{Title: "Bass Drop Challenge", Views: 12_000_000, Rank: 6},
		{Title: "Street Musician Magic", Views: 7_300_000, Rank: 7},
		{Title: "Acoustic Guitar Trend", Views: 6_100_000, Rank: 8},
		{Title: "Nature Sounds ASMR", Views: 9_400_000, Rank: 9},
		{Title: "World Music Fusion", Views: 2_900_000, Rank: 10},
	}
}

// DemoHashtags returns canned trending hashtags.
func DemoHashtags() []types.TrendRecord {
	return []types.TrendRecord{
		{Name: "fyp", VideoCount: 500_000_000, Rank: 1},
		{Name: "viral", VideoCount: 300_000_000, Rank: 2},
		{Name: "music", VideoCount: 200_000_000, Rank: 3},
		{Name: "talent", VideoCount: 80_000_000, Rank: 4},
		{Name: "streetmusic", VideoCount: 15_000_000, Rank: 5},
		{Name: "mindblowing", VideoCount: 45_000_000, Rank: 6},
		{Name: "indigenous", VideoCount: 8_000_000, Rank: 7},
		{Name: "australia", VideoCount: 25_000_000, Rank: 8},
		{Name: "satisfying", VideoCount: 150_000_000, Rank: 9},
		{Name: "musician", VideoCount: 60_000_000, Rank: 10},
	}
}
