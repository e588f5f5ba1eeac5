// Package config provides configuration loading and defaults for mindpatch.
package config

import "time"

// DefaultConfigDir is the default location for mindpatch configuration,
// logs and the database.
const DefaultConfigDir = "~/.config/mindpatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "mindpatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultHistoryWindow is the number of recent entries used for the
// mood/screen-time correlation.
const DefaultHistoryWindow = 7

// DefaultRules holds the built-in recommendation thresholds.
var DefaultRules = Rules{
	DeepResetMaxMood:     2,
	DeepResetMinHours:    4,
	NatureWalkMaxMood:    3,
	NatureWalkMinHours:   3,
	MomentumMinMood:      4,
	MomentumMaxHours:     3,
	GreyScaleMinHours:    6,
	GreyScaleSocialRatio: 0.5,
	NatureResetMaxMood:   2,
	DeepRestStudyHours:   5,
	NegativeCorrelation:  -0.3,
	WinningMood:          4,
}

// DefaultHabits holds the default habit settings.
var DefaultHabits = Habits{
	StreakMode: "counter",
}

// DefaultXP holds the default XP rewards.
var DefaultXP = XP{
	Entry:     10,
	Gratitude: 5,
	Habit:     20,
	Notify:    true,
}

// DefaultGratitude holds the default journal display settings.
var DefaultGratitude = Gratitude{
	DisplayLimit: 5,
}

// DefaultAnimation points at the breathing-circle animation. Fetching it is
// best effort.
var DefaultAnimation = Animation{
	Enabled: true,
	URL:     "https://assets.lottiefiles.com/packages/lf20_breathing.json",
	Timeout: 3 * time.Second,
}

// DefaultServer holds the default API server settings.
var DefaultServer = Server{
	Addr: "127.0.0.1:8754",
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
