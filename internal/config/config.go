package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level mindpatch configuration.
type Config struct {
	DataDir       string    `mapstructure:"data_dir"`
	Timezone      string    `mapstructure:"timezone"`
	HistoryWindow int       `mapstructure:"history_window"`
	Rules         Rules     `mapstructure:"rules"`
	Habits        Habits    `mapstructure:"habits"`
	XP            XP        `mapstructure:"xp"`
	Gratitude     Gratitude `mapstructure:"gratitude"`
	Animation     Animation `mapstructure:"animation"`
	Server        Server    `mapstructure:"server"`
	Output        Output    `mapstructure:"output"`
	Log           Log       `mapstructure:"log"`
}

// Rules overrides the recommendation thresholds.
type Rules struct {
	DeepResetMaxMood     int     `mapstructure:"deep_reset_max_mood"`
	DeepResetMinHours    float64 `mapstructure:"deep_reset_min_hours"`
	NatureWalkMaxMood    int     `mapstructure:"nature_walk_max_mood"`
	NatureWalkMinHours   float64 `mapstructure:"nature_walk_min_hours"`
	MomentumMinMood      int     `mapstructure:"momentum_min_mood"`
	MomentumMaxHours     float64 `mapstructure:"momentum_max_hours"`
	GreyScaleMinHours    float64 `mapstructure:"greyscale_min_hours"`
	GreyScaleSocialRatio float64 `mapstructure:"greyscale_social_ratio"`
	NatureResetMaxMood   int     `mapstructure:"nature_reset_max_mood"`
	DeepRestStudyHours   float64 `mapstructure:"deep_rest_study_hours"`
	NegativeCorrelation  float64 `mapstructure:"negative_correlation"`
	WinningMood          int     `mapstructure:"winning_mood"`
}

// Habits configures the screen-free habit tracker.
type Habits struct {
	StreakMode string `mapstructure:"streak_mode"` // "counter" or "derived"
}

// XP configures rewards and level-up notifications.
type XP struct {
	Entry     int  `mapstructure:"entry"`
	Gratitude int  `mapstructure:"gratitude"`
	Habit     int  `mapstructure:"habit"`
	Notify    bool `mapstructure:"notify"`
}

// Gratitude configures journal display.
type Gratitude struct {
	DisplayLimit int `mapstructure:"display_limit"`
}

// Animation configures the optional breathing animation fetch.
type Animation struct {
	Enabled bool          `mapstructure:"enabled"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Server configures the local API server.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Log configures the rotating log file.
type Log struct {
	Debug bool `mapstructure:"debug"`
}

// ErrInvalidStreakMode is returned for an unknown habits.streak_mode.
var ErrInvalidStreakMode = errors.New(`habits.streak_mode must be "counter" or "derived"`)

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("data_dir", DefaultConfigDir)
	v.SetDefault("timezone", "Local")
	v.SetDefault("history_window", DefaultHistoryWindow)
	v.SetDefault("rules.deep_reset_max_mood", DefaultRules.DeepResetMaxMood)
	v.SetDefault("rules.deep_reset_min_hours", DefaultRules.DeepResetMinHours)
	v.SetDefault("rules.nature_walk_max_mood", DefaultRules.NatureWalkMaxMood)
	v.SetDefault("rules.nature_walk_min_hours", DefaultRules.NatureWalkMinHours)
	v.SetDefault("rules.momentum_min_mood", DefaultRules.MomentumMinMood)
	v.SetDefault("rules.momentum_max_hours", DefaultRules.MomentumMaxHours)
	v.SetDefault("rules.greyscale_min_hours", DefaultRules.GreyScaleMinHours)
	v.SetDefault("rules.greyscale_social_ratio", DefaultRules.GreyScaleSocialRatio)
	v.SetDefault("rules.nature_reset_max_mood", DefaultRules.NatureResetMaxMood)
	v.SetDefault("rules.deep_rest_study_hours", DefaultRules.DeepRestStudyHours)
	v.SetDefault("rules.negative_correlation", DefaultRules.NegativeCorrelation)
	v.SetDefault("rules.winning_mood", DefaultRules.WinningMood)
	v.SetDefault("habits.streak_mode", DefaultHabits.StreakMode)
	v.SetDefault("xp.entry", DefaultXP.Entry)
	v.SetDefault("xp.gratitude", DefaultXP.Gratitude)
	v.SetDefault("xp.habit", DefaultXP.Habit)
	v.SetDefault("xp.notify", DefaultXP.Notify)
	v.SetDefault("gratitude.display_limit", DefaultGratitude.DisplayLimit)
	v.SetDefault("animation.enabled", DefaultAnimation.Enabled)
	v.SetDefault("animation.url", DefaultAnimation.URL)
	v.SetDefault("animation.timeout", DefaultAnimation.Timeout)
	v.SetDefault("server.addr", DefaultServer.Addr)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("log.debug", false)

	v.SetEnvPrefix("MINDPATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(expandPath(DefaultConfigDir))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.DataDir = expandPath(cfg.DataDir)

	return &cfg, nil
}

// Validate checks values that cannot be defaulted around.
func (c *Config) Validate() error {
	switch c.Habits.StreakMode {
	case "counter", "derived":
	default:
		return fmt.Errorf("%w (got %q)", ErrInvalidStreakMode, c.Habits.StreakMode)
	}
	if c.HistoryWindow < 2 {
		return fmt.Errorf("history_window must be at least 2 (got %d)", c.HistoryWindow)
	}
	if c.XP.Entry < 0 || c.XP.Gratitude < 0 || c.XP.Habit < 0 {
		return fmt.Errorf("xp rewards cannot be negative")
	}
	return nil
}

// DBPath returns the full path to the SQLite database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
