package suggest

import (
	"fmt"
	"math"

	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// Engine evaluates ordered rule tables against a day's signals. The first
// matching rule wins, so table order is the tie-break.
type Engine struct {
	baseline   []Rule
	extended   []Rule
	thresholds Thresholds
}

// NewEngine creates an engine with the built-in tables and default thresholds.
func NewEngine() *Engine {
	return NewEngineWithThresholds(DefaultThresholds)
}

// NewEngineWithThresholds creates an engine with the built-in tables and
// custom thresholds.
func NewEngineWithThresholds(t Thresholds) *Engine {
	return &Engine{
		baseline:   BaselineRules(),
		extended:   ExtendedRules(),
		thresholds: t,
	}
}

// BaselineRules is the mood/screen-time table, in priority order.
func BaselineRules() []Rule {
	return []Rule{
		DeepReset,
		NatureWalk,
		MaintainMomentum,
		MindfulJournaling,
	}
}

// ExtendedRules is the category-aware table, in priority order.
func ExtendedRules() []Rule {
	return []Rule{
		GreyScaleChallenge,
		NatureReset,
		DeepRest,
		Balanced,
	}
}

// Thresholds returns the engine's rule constants.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Recommend returns exactly one suggestion for in-domain signals. The
// category-aware table is used when a breakdown is present, the baseline
// table otherwise. Out-of-domain signals fail with ErrOutOfDomain.
func (e *Engine) Recommend(s Signals) (Suggestion, error) {
	if err := checkDomain(s); err != nil {
		return Suggestion{}, err
	}

	rules := e.baseline
	if s.Breakdown != nil {
		rules = e.extended
	}

	for _, rule := range rules {
		if sug, ok := rule(&s, &e.thresholds); ok {
			return sug, nil
		}
	}
	return Suggestion{}, ErrNoRuleMatched
}

func checkDomain(s Signals) error {
	if !s.Mood.Valid() {
		return fmt.Errorf("%w: mood %d", ErrOutOfDomain, s.Mood)
	}
	hours := []float64{s.ScreenTimeHours}
	if b := s.Breakdown; b != nil {
		hours = []float64{b.Study, b.Social, b.Entertainment}
	}
	for _, h := range hours {
		if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
			return fmt.Errorf("%w: screen time %v", ErrOutOfDomain, h)
		}
	}
	return nil
}

// Insight summarises recent history. It never fails: with fewer than two
// entries the correlation is 0 and only the mood branch can fire.
func (e *Engine) Insight(history []wellness.DailyEntry) Insight {
	return BuildInsight(history, &e.thresholds)
}
