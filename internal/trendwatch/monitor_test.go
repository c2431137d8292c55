package trendwatch

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/creatorloop/vertcut/internal/config"
	"github.com/creatorloop/vertcut/internal/domain/trends"
	"github.com/creatorloop/vertcut/internal/ports"
	"github.com/creatorloop/vertcut/internal/types"
)

type fakeSource struct {
	sounds   []types.TrendRecord
	hashtags []types.TrendRecord
	err      error
	calls    int
}

func (f *fakeSource) FetchSounds(_ context.Context) ([]types.TrendRecord, error) {
	f.calls++
	return f.sounds, f.err
}

func (f *fakeSource) FetchHashtags(_ context.Context) ([]types.TrendRecord, error) {
	return f.hashtags, f.err
}

func newTestMonitor(t *testing.T, sources ...ports.TrendSource) *Monitor {
	t.Helper()
	conf := config.Default()
	scorer := trends.NewScorer(conf.Scoring, conf.NicheKeywords, conf.MusicKeywords, rand.New(rand.NewSource(1)))
	return New(sources, scorer, nil, t.TempDir(), time.Hour, nil)
}

func TestTrends_ScoresRanksAndRecommends(t *testing.T) {
	src := &fakeSource{
		sounds: []types.TrendRecord{
			{Title: "Quiet Tune", Views: 1_000_000},
			{Title: "Huge Banger", Views: 50_000_000},
		},
		hashtags: []types.TrendRecord{
			{Name: "small", VideoCount: 2_000_000},
			{Name: "fyp", VideoCount: 500_000_000},
		},
	}
	m := newTestMonitor(t, src)

	snap, err := m.Trends(context.Background())
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if snap.Sounds[0].Title != "Huge Banger" {
		t.Fatalf("expected sounds ranked by composite, got %+v", snap.Sounds)
	}
	if snap.Sounds[0].ViralityScore != 100 {
		t.Fatalf("expected clamped virality, got %d", snap.Sounds[0].ViralityScore)
	}
	if snap.Hashtags[0].Name != "fyp" {
		t.Fatalf("expected hashtags ranked by composite, got %+v", snap.Hashtags)
	}
	// 2 sounds + 2 hashtags available: 2 covers + 2 rides.
	if len(snap.Recommendations) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(snap.Recommendations))
	}
	if snap.FetchedAt.IsZero() {
		t.Fatal("expected fetched_at to be stamped")
	}
}

func TestTrends_CachedWithinTTL(t *testing.T) {
	src := &fakeSource{sounds: []types.TrendRecord{{Title: "one", Views: 1}}}
	m := newTestMonitor(t, src)

	if _, err := m.Trends(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	if _, err := m.Trends(context.Background()); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("expected a single source fetch within TTL, got %d", src.calls)
	}
}

func TestTrends_TTLExpiryRefetches(t *testing.T) {
	src := &fakeSource{sounds: []types.TrendRecord{{Title: "one", Views: 1}}}
	m := newTestMonitor(t, src)

	current := time.Now()
	m.now = func() time.Time { return current }

	if _, err := m.Trends(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	current = current.Add(2 * time.Hour)
	if _, err := m.Trends(context.Background()); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if src.calls != 2 {
		t.Fatalf("expected refetch after TTL expiry, got %d calls", src.calls)
	}
}

func TestTrends_DemoFallback(t *testing.T) {
	m := newTestMonitor(t, &fakeSource{err: errors.New("source down")})

	snap, err := m.Trends(context.Background())
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if len(snap.Sounds) != len(trends.DemoSounds()) {
		t.Fatalf("expected demo sounds fallback, got %d sounds", len(snap.Sounds))
	}
	if len(snap.Hashtags) != len(trends.DemoHashtags()) {
		t.Fatalf("expected demo hashtags fallback, got %d hashtags", len(snap.Hashtags))
	}
	for _, s := range snap.Sounds {
		if s.TrendType != types.TrendSound || s.CompositeScore == 0 {
			t.Fatalf("expected scored demo record, got %+v", s)
		}
	}
}

func TestTrends_NoSourcesUsesDemoData(t *testing.T) {
	m := newTestMonitor(t)

	snap, err := m.Trends(context.Background())
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if len(snap.Sounds) == 0 || len(snap.Hashtags) == 0 {
		t.Fatal("expected demo data when no sources configured")
	}
}

func TestSnapshotPersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	conf := config.Default()
	scorer := trends.NewScorer(conf.Scoring, conf.NicheKeywords, conf.MusicKeywords, rand.New(rand.NewSource(1)))
	m := New(nil, scorer, nil, dir, time.Hour, nil)

	snap, err := m.Trends(context.Background())
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "trends.json")); err != nil {
		t.Fatalf("expected persisted snapshot: %v", err)
	}

	fresh := New(nil, scorer, nil, dir, time.Hour, nil)
	loaded, ok := fresh.LoadCached()
	if !ok {
		t.Fatal("expected cached snapshot to load")
	}
	if len(loaded.Sounds) != len(snap.Sounds) || len(loaded.Recommendations) != len(snap.Recommendations) {
		t.Fatalf("loaded snapshot does not match: %+v", loaded)
	}
}

func TestContentIdeas_Passthrough(t *testing.T) {
	m := newTestMonitor(t)
	if got := m.ContentIdeas(3); got != nil {
		t.Fatalf("expected nil without an ideas provider, got %v", got)
	}

	m.ideas = func(count int) []types.ContentIdea {
		return trends.ContentIdeas(rand.New(rand.NewSource(1)), count)
	}
	if got := m.ContentIdeas(3); len(got) != 3 {
		t.Fatalf("expected 3 ideas, got %d", len(got))
	}
}
