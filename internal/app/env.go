package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/animation"
	"github.com/blackwell-systems/mindpatch/internal/config"
	"github.com/blackwell-systems/mindpatch/internal/history"
	"github.com/blackwell-systems/mindpatch/internal/logger"
	"github.com/blackwell-systems/mindpatch/internal/notify"
	"github.com/blackwell-systems/mindpatch/internal/output"
	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/blackwell-systems/mindpatch/internal/store"
	"github.com/blackwell-systems/mindpatch/internal/suggest"
	"github.com/blackwell-systems/mindpatch/internal/tracker"
	"github.com/blackwell-systems/mindpatch/internal/wellness"
	"github.com/spf13/cobra"
)

// demoSeed fixes the generated history so --demo output is reproducible.
const demoSeed = 20260101

// env is everything a command needs once config is loaded.
type env struct {
	cfg *config.Config
	db  *store.DB
	tr  *tracker.Tracker
	out io.Writer
}

func (e *env) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = logger.Close()
}

// loadEnv loads config, sets up logging and output, opens the database and
// hydrates the tracker.
func loadEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := logger.Init(logger.Config{Debug: flagVerbose || cfg.Log.Debug, Dir: cfg.DataDir}); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	applyColor(cmd, cfg)

	loc, err := wellness.LoadLocation(cfg.Timezone)
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}

	db, err := store.Open(cfg.DBPath())
	if err != nil {
		_ = logger.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}

	opts := tracker.Options{
		Session: session.Options{
			StreakMode: session.StreakMode(cfg.Habits.StreakMode),
			Rewards: session.Rewards{
				Entry:     cfg.XP.Entry,
				Gratitude: cfg.XP.Gratitude,
				Habit:     cfg.XP.Habit,
			},
			Location: loc,
		},
		Engine:         suggest.NewEngineWithThresholds(thresholds(cfg)),
		Store:          db,
		Animation:      animationFetcher(cfg),
		GratitudeLimit: cfg.Gratitude.DisplayLimit,
	}
	if cfg.XP.Notify {
		opts.Notifier = notify.New()
	}
	if flagDemo {
		opts.History = history.NewSeededSource(demoSeed, time.Now().In(loc), 2*cfg.HistoryWindow)
	} else {
		opts.History = history.NewStoreSource(db)
	}

	tr, err := tracker.New(opts)
	if err != nil {
		_ = db.Close()
		_ = logger.Close()
		return nil, err
	}
	logger.Debug("environment ready", "db", cfg.DBPath(), "demo", flagDemo, "streak_mode", cfg.Habits.StreakMode)

	return &env{cfg: cfg, db: db, tr: tr, out: cmd.OutOrStdout()}, nil
}

func applyColor(cmd *cobra.Command, cfg *config.Config) {
	enabled := cfg.Output.Color && !flagNoColor
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		enabled = output.ColorEnabled(f, enabled)
	} else {
		enabled = false
	}
	output.SetNoColor(!enabled)
}

func thresholds(cfg *config.Config) suggest.Thresholds {
	r := cfg.Rules
	return suggest.Thresholds{
		DeepResetMaxMood:     wellness.Mood(r.DeepResetMaxMood),
		DeepResetMinHours:    r.DeepResetMinHours,
		NatureWalkMaxMood:    wellness.Mood(r.NatureWalkMaxMood),
		NatureWalkMinHours:   r.NatureWalkMinHours,
		MomentumMinMood:      wellness.Mood(r.MomentumMinMood),
		MomentumMaxHours:     r.MomentumMaxHours,
		GreyScaleMinHours:    r.GreyScaleMinHours,
		GreyScaleSocialRatio: r.GreyScaleSocialRatio,
		NatureResetMaxMood:   wellness.Mood(r.NatureResetMaxMood),
		DeepRestStudyHours:   r.DeepRestStudyHours,
		NegativeCorrelation:  r.NegativeCorrelation,
		WinningMood:          wellness.Mood(r.WinningMood),
		HistoryWindow:        cfg.HistoryWindow,
	}
}

func animationFetcher(cfg *config.Config) animation.Fetcher {
	if !cfg.Animation.Enabled || cfg.Animation.URL == "" {
		return animation.Disabled{}
	}
	f, err := animation.NewHTTPFetcher(cfg.Animation.URL, cfg.Animation.Timeout, nil)
	if err != nil {
		logger.Debug("animation disabled", "err", err)
		return animation.Disabled{}
	}
	return f
}

// writeJSON encodes v indented to w.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
