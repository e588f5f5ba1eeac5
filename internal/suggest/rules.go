package suggest

import "fmt"

// DeepReset fires for a low mood on a heavy screen day.
func DeepReset(s *Signals, t *Thresholds) (Suggestion, bool) {
	hours := s.Hours()
	if s.Mood > t.DeepResetMaxMood || hours <= t.DeepResetMinHours {
		return Suggestion{}, false
	}
	return Suggestion{
		Category: CategoryDeepReset,
		Rule:     "deep_reset",
		Title:    "Deep reset",
		Text:     "Take a 20-minute phone-free break and do slow breathing.",
		Rationale: fmt.Sprintf(
			"Mood is %s (%d) after %.1fh on screens. A longer break with slow breathing "+
				"helps settle a low mood that heavy screen use tends to deepen.",
			s.Mood.Label(), s.Mood, hours,
		),
	}, true
}

// NatureWalk fires for a middling-or-low mood with more than a few hours of
// screen time.
func NatureWalk(s *Signals, t *Thresholds) (Suggestion, bool) {
	hours := s.Hours()
	if s.Mood > t.NatureWalkMaxMood || hours <= t.NatureWalkMinHours {
		return Suggestion{}, false
	}
	return Suggestion{
		Category: CategoryNatureWalk,
		Rule:     "nature_walk",
		Title:    "Nature walk",
		Text:     "Go for a short walk without your phone.",
		Rationale: fmt.Sprintf(
			"%.1fh of screen time with a %s mood. Movement away from screens is a quick lift.",
			hours, s.Mood.Label(),
		),
	}, true
}

// MaintainMomentum fires for a good mood with modest screen time.
func MaintainMomentum(s *Signals, t *Thresholds) (Suggestion, bool) {
	hours := s.Hours()
	if s.Mood < t.MomentumMinMood || hours > t.MomentumMaxHours {
		return Suggestion{}, false
	}
	return Suggestion{
		Category: CategoryMaintainMomentum,
		Rule:     "maintain_momentum",
		Title:    "Maintain momentum",
		Text:     "You're doing great! Maintain your routine.",
		Rationale: fmt.Sprintf(
			"Mood is %s with only %.1fh on screens. Whatever you are doing is working.",
			s.Mood.Label(), hours,
		),
	}, true
}

// MindfulJournaling is the baseline fallback and always applies.
func MindfulJournaling(s *Signals, t *Thresholds) (Suggestion, bool) {
	return Suggestion{
		Category: CategoryMindfulJournaling,
		Rule:     "mindful_journaling",
		Title:    "Mindful journaling",
		Text:     "Read or journal for 10 minutes offline.",
		Rationale: fmt.Sprintf(
			"Mood %d with %.1fh of screen time. A short offline reflection keeps the day in balance.",
			s.Mood, s.Hours(),
		),
	}, true
}

// GreyScaleChallenge fires when a long screen day is dominated by social media.
func GreyScaleChallenge(s *Signals, t *Thresholds) (Suggestion, bool) {
	if s.Breakdown == nil {
		return Suggestion{}, false
	}
	total := s.Breakdown.Total()
	ratio := s.Breakdown.SocialRatio()
	if total <= t.GreyScaleMinHours || ratio <= t.GreyScaleSocialRatio {
		return Suggestion{}, false
	}
	return Suggestion{
		Category: CategoryGreyScaleChallenge,
		Rule:     "greyscale_challenge",
		Title:    "Greyscale challenge",
		Text:     "Switch your phone to greyscale for the rest of the day.",
		Rationale: fmt.Sprintf(
			"%.1fh on screens and %.0f%% of it on social media. Removing colour makes "+
				"feeds far less compelling.",
			total, ratio*100,
		),
	}, true
}

// NatureReset fires for a low mood regardless of how screen time was spent.
func NatureReset(s *Signals, t *Thresholds) (Suggestion, bool) {
	if s.Mood > t.NatureResetMaxMood {
		return Suggestion{}, false
	}
	return Suggestion{
		Category: CategoryNatureReset,
		Rule:     "nature_reset",
		Title:    "Nature reset",
		Text:     "Step outside for 15 minutes of daylight, phone left indoors.",
		Rationale: fmt.Sprintf(
			"Mood is %s (%d). Daylight and a change of scene are the fastest reset.",
			s.Mood.Label(), s.Mood,
		),
	}, true
}

// DeepRest fires after a long study day.
func DeepRest(s *Signals, t *Thresholds) (Suggestion, bool) {
	if s.Breakdown == nil || s.Breakdown.Study <= t.DeepRestStudyHours {
		return Suggestion{}, false
	}
	return Suggestion{
		Category: CategoryDeepRest,
		Rule:     "deep_rest",
		Title:    "Deep rest",
		Text:     "Close the laptop and take a proper rest block before anything else.",
		Rationale: fmt.Sprintf(
			"%.1fh of study screen time. Focus recovers with rest, not with more screens.",
			s.Breakdown.Study,
		),
	}, true
}

// Balanced is the category-aware fallback and always applies.
func Balanced(s *Signals, t *Thresholds) (Suggestion, bool) {
	return Suggestion{
		Category: CategoryBalanced,
		Rule:     "balanced",
		Title:    "Balanced day",
		Text:     "Your screen time looks balanced. Keep it that way.",
		Rationale: fmt.Sprintf(
			"%.1fh total with no category out of proportion.",
			s.Hours(),
		),
	}, true
}
