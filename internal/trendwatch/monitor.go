// Package trendwatch fetches raw trend records, scores and ranks them, and
// maintains a cached snapshot of the result.
package trendwatch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/creatorloop/vertcut/internal/domain/trends"
	"github.com/creatorloop/vertcut/internal/ports"
	"github.com/creatorloop/vertcut/internal/types"
)

const (
	maxSounds   = 20
	maxHashtags = 30
)

// Monitor owns the trend snapshot lifecycle. Sources are tried in order;
// a source error skips that source, and an entirely empty fetch falls back
// to the built-in demo data so the engine always has something to rank.
type Monitor struct {
	sources []ports.TrendSource
	scorer  *trends.Scorer
	ideas   func(count int) []types.ContentIdea
	path    string
	ttl     time.Duration
	now     func() time.Time
	logf    func(format string, args ...any)

	mu        sync.Mutex
	cached    *types.TrendSnapshot
	cacheTime time.Time
}

func New(
	sources []ports.TrendSource,
	scorer *trends.Scorer,
	ideas func(count int) []types.ContentIdea,
	dataDir string,
	ttl time.Duration,
	logf func(format string, args ...any),
) *Monitor {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Monitor{
		sources: sources,
		scorer:  scorer,
		ideas:   ideas,
		path:    filepath.Join(dataDir, "trends.json"),
		ttl:     ttl,
		now:     time.Now,
		logf:    logf,
	}
}

// Trends returns the current snapshot, refetching when the cached one has
// expired. Snapshot persistence is best-effort.
func (m *Monitor) Trends(ctx context.Context) (types.TrendSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil && m.now().Sub(m.cacheTime) < m.ttl {
		return *m.cached, nil
	}

	sounds := m.fetch(func(s ports.TrendSource) ([]types.TrendRecord, error) {
		return s.FetchSounds(ctx)
	})
	if len(sounds) == 0 {
		sounds = trends.DemoSounds()
	}
	hashtags := m.fetch(func(s ports.TrendSource) ([]types.TrendRecord, error) {
		return s.FetchHashtags(ctx)
	})
	if len(hashtags) == 0 {
		hashtags = trends.DemoHashtags()
	}

	for i := range sounds {
		sounds[i] = m.scorer.Score(sounds[i], types.TrendSound)
	}
	for i := range hashtags {
		hashtags[i] = m.scorer.Score(hashtags[i], types.TrendHashtag)
	}
	trends.Rank(sounds)
	trends.Rank(hashtags)
	if len(sounds) > maxSounds {
		sounds = sounds[:maxSounds]
	}
	if len(hashtags) > maxHashtags {
		hashtags = hashtags[:maxHashtags]
	}

	snap := types.TrendSnapshot{
		Sounds:          sounds,
		Hashtags:        hashtags,
		FetchedAt:       m.now(),
		Recommendations: trends.Recommend(sounds, hashtags),
	}

	m.cached = &snap
	m.cacheTime = m.now()
	if err := m.save(snap); err != nil {
		m.logf("trend snapshot not persisted: %v", err)
	}
	return snap, nil
}

func (m *Monitor) fetch(get func(ports.TrendSource) ([]types.TrendRecord, error)) []types.TrendRecord {
	var all []types.TrendRecord
	for _, src := range m.sources {
		recs, err := get(src)
		if err != nil {
			m.logf("trend source failed: %v", err)
			continue
		}
		all = append(all, recs...)
	}
	return all
}

// LoadCached reads the last persisted snapshot from disk.
func (m *Monitor) LoadCached() (types.TrendSnapshot, bool) {
	b, err := os.ReadFile(m.path)
	if err != nil {
		return types.TrendSnapshot{}, false
	}
	var snap types.TrendSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return types.TrendSnapshot{}, false
	}
	m.mu.Lock()
	m.cached = &snap
	m.cacheTime = snap.FetchedAt
	m.mu.Unlock()
	return snap, true
}

// ContentIdeas returns content format suggestions.
func (m *Monitor) ContentIdeas(count int) []types.ContentIdea {
	if m.ideas == nil {
		return nil
	}
	return m.ideas(count)
}

func (m *Monitor) save(snap types.TrendSnapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(m.path, b, 0o644)
}
