// Package suggest provides the wellness recommendation engine, its rule
// tables and the mood/screen-time correlation insight.
package suggest

import (
	"errors"

	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// Category identifies the kind of detox action a suggestion recommends.
type Category string

// Suggestion categories. The set is closed: every rule produces one of these.
const (
	CategoryDeepReset          Category = "deep_reset"
	CategoryNatureWalk         Category = "nature_walk"
	CategoryMaintainMomentum   Category = "maintain_momentum"
	CategoryMindfulJournaling  Category = "mindful_journaling"
	CategoryGreyScaleChallenge Category = "greyscale_challenge"
	CategoryNatureReset        Category = "nature_reset"
	CategoryDeepRest           Category = "deep_rest"
	CategoryBalanced           Category = "balanced"
)

// Categories lists every category in a stable order.
var Categories = []Category{
	CategoryDeepReset,
	CategoryNatureWalk,
	CategoryMaintainMomentum,
	CategoryMindfulJournaling,
	CategoryGreyScaleChallenge,
	CategoryNatureReset,
	CategoryDeepRest,
	CategoryBalanced,
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// ErrOutOfDomain is returned for signals the engine refuses to classify.
var ErrOutOfDomain = errors.New("signals out of domain")

// ErrNoRuleMatched is returned when a rule table has no fallback rule.
var ErrNoRuleMatched = errors.New("no rule matched")

// Suggestion is the engine's recommendation for the day.
type Suggestion struct {
	Category  Category `json:"category"`
	Rule      string   `json:"rule"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Rationale string   `json:"rationale"`
}

// Signals are the day's inputs to the engine.
type Signals struct {
	Mood            wellness.Mood       `json:"mood"`
	ScreenTimeHours float64             `json:"screen_time_hours"`
	Breakdown       *wellness.Breakdown `json:"breakdown,omitempty"`
}

// SignalsFromEntry extracts engine signals from a logged entry.
func SignalsFromEntry(e wellness.DailyEntry) Signals {
	return Signals{
		Mood:            e.Mood,
		ScreenTimeHours: e.ScreenTimeHours(),
		Breakdown:       e.Breakdown,
	}
}

// Hours returns total screen time, preferring the category sum.
func (s Signals) Hours() float64 {
	if s.Breakdown != nil {
		return s.Breakdown.Total()
	}
	return s.ScreenTimeHours
}

// Thresholds holds every literal the rules compare against. Upper-bound
// comparisons on hours are strict (>) and mood bounds inclusive unless noted.
type Thresholds struct {
	DeepResetMaxMood  wellness.Mood `json:"deep_reset_max_mood"`
	DeepResetMinHours float64       `json:"deep_reset_min_hours"`

	NatureWalkMaxMood  wellness.Mood `json:"nature_walk_max_mood"`
	NatureWalkMinHours float64       `json:"nature_walk_min_hours"`

	MomentumMinMood  wellness.Mood `json:"momentum_min_mood"`
	MomentumMaxHours float64       `json:"momentum_max_hours"` // inclusive

	GreyScaleMinHours    float64       `json:"greyscale_min_hours"`
	GreyScaleSocialRatio float64       `json:"greyscale_social_ratio"`
	NatureResetMaxMood   wellness.Mood `json:"nature_reset_max_mood"`
	DeepRestStudyHours   float64       `json:"deep_rest_study_hours"`

	NegativeCorrelation float64       `json:"negative_correlation"`
	WinningMood         wellness.Mood `json:"winning_mood"`
	HistoryWindow       int           `json:"history_window"`
}

// DefaultThresholds are the built-in rule constants.
var DefaultThresholds = Thresholds{
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
	HistoryWindow:        7,
}

// Rule examines the signals and returns a suggestion when it applies.
type Rule func(s *Signals, t *Thresholds) (Suggestion, bool)
