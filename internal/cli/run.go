package cli

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/creatorloop/vertcut/internal/config"
	"github.com/creatorloop/vertcut/internal/domain/trends"
	"github.com/creatorloop/vertcut/internal/pipeline"
	"github.com/creatorloop/vertcut/internal/ports"
	"github.com/creatorloop/vertcut/internal/ports/adapters/apify"
	"github.com/creatorloop/vertcut/internal/trendwatch"
	"github.com/creatorloop/vertcut/internal/types"
	"github.com/creatorloop/vertcut/internal/usecase"
)

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return conf, nil
}

func runProcess(cmd *cobra.Command, input string) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := conf.EnsureDirs(); err != nil {
		return err
	}

	captions, _ := cmd.Flags().GetBool("captions")
	grade, _ := cmd.Flags().GetBool("grade")
	intro, _ := cmd.Flags().GetBool("intro")
	outro, _ := cmd.Flags().GetBool("outro")

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Hour)
	defer cancel()

	run, err := pipeline.Run(ctx, pipeline.Config{
		Input: absIn,
		Options: usecase.Options{
			AddCaptions: captions,
			AddIntro:    intro,
			AddOutro:    outro,
			ColorGrade:  grade,
		},
		Conf: conf,
		Logf: func(format string, args ...any) {
			cmd.Printf(format+"\n", args...)
		},
	})
	if err != nil {
		return err
	}

	printRun(cmd, run)
	return nil
}

func printRun(cmd *cobra.Command, run types.Run) {
	cmd.Printf("run %s: %s\n", run.ID, run.Status)
	cmd.Printf("steps: %v\n", run.Steps)
	if run.Status == types.StatusFailed {
		cmd.Printf("error: %s\n", run.Error)
		return
	}
	cmd.Printf("output: %s (%s, %.1fs, %.2f MB)\n",
		run.Output, run.OutputResolution, run.OutputDuration, run.OutputSizeMB)
	if run.Captions != nil {
		cmd.Printf("captions: %d words over %.1fs\n", run.Captions.WordCount, run.Captions.Duration)
	}
}

func runTrends(cmd *cobra.Command, _ []string) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var sources []ports.TrendSource
	ap := apify.New(conf.ApifyToken, conf.ApifySoundsActor, conf.ApifyHashtagsActor, "")
	if ap.Configured() {
		sources = append(sources, ap)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	scorer := trends.NewScorer(conf.Scoring, conf.NicheKeywords, conf.MusicKeywords, rng)
	monitor := trendwatch.New(sources, scorer,
		func(count int) []types.ContentIdea { return trends.ContentIdeas(rng, count) },
		conf.DataDir, conf.SnapshotTTL,
		func(format string, args ...any) { cmd.Printf(format+"\n", args...) },
	)
	monitor.LoadCached()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	snap, err := monitor.Trends(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("fetched at %s\n\nsounds:\n", snap.FetchedAt.Format(time.RFC3339))
	for _, s := range snap.Sounds {
		cmd.Printf("  %5.1f  %s\n", s.CompositeScore, s.DisplayName())
	}
	cmd.Printf("\nhashtags:\n")
	for _, h := range snap.Hashtags {
		cmd.Printf("  %5.1f  #%s\n", h.CompositeScore, h.DisplayName())
	}
	cmd.Printf("\nrecommendations:\n")
	for _, r := range snap.Recommendations {
		cmd.Printf("  [%s] %s — %s\n", r.Priority, r.Trend, r.Action)
	}

	if n, _ := cmd.Flags().GetInt("ideas"); n > 0 {
		cmd.Printf("\ncontent ideas:\n")
		for _, idea := range monitor.ContentIdeas(n) {
			cmd.Printf("  %s (%s, viral potential %s)\n", idea.Title, idea.Difficulty, idea.ViralPotential)
		}
	}
	return nil
}
