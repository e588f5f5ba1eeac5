package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/animation"
	"github.com/blackwell-systems/mindpatch/internal/logger"
	"github.com/blackwell-systems/mindpatch/internal/notify"
	"github.com/blackwell-systems/mindpatch/internal/session"
	"github.com/blackwell-systems/mindpatch/internal/suggest"
	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// EntryInput is a day's check-in as submitted by a user.
type EntryInput struct {
	Date       string              `json:"date,omitempty"`
	Mood       int                 `json:"mood"`
	ScreenTime float64             `json:"screen_time_hours"`
	Breakdown  *wellness.Breakdown `json:"breakdown,omitempty"`
}

// LogResult is the outcome of logging an entry.
type LogResult struct {
	Entry      wellness.DailyEntry `json:"entry"`
	Suggestion suggest.Suggestion  `json:"suggestion"`
	Usage      wellness.UsageBand  `json:"usage"`
	XP         int                 `json:"xp"`
	Level      int                 `json:"level"`
}

// HabitResult is the outcome of toggling the habit.
type HabitResult struct {
	Date      string          `json:"date"`
	Done      bool            `json:"done"`
	Streak    int             `json:"streak"`
	NewBadges []session.Badge `json:"new_badges,omitempty"`
}

// Status summarises the gamification state.
type Status struct {
	Today           string             `json:"today"`
	HabitDoneToday  bool               `json:"habit_done_today"`
	StreakMode      session.StreakMode `json:"streak_mode"`
	Streak          int                `json:"streak"`
	Counter         int                `json:"counter"`
	XP              int                `json:"xp"`
	Level           int                `json:"level"`
	Badges          []session.Badge    `json:"badges"`
	NextBadge       *session.Badge     `json:"next_badge,omitempty"`
	DaysToNextBadge int                `json:"days_to_next_badge,omitempty"`
	Entries         int                `json:"entries"`
	Gratitude       int                `json:"gratitude"`
}

// Dashboard is everything the summary view shows.
type Dashboard struct {
	Status     Status                   `json:"status"`
	Latest     *wellness.DailyEntry     `json:"latest,omitempty"`
	Usage      wellness.UsageBand       `json:"usage,omitempty"`
	Suggestion *suggest.Suggestion      `json:"suggestion,omitempty"`
	Insight    suggest.Insight          `json:"insight"`
	Gratitude  []wellness.GratitudeNote `json:"gratitude"`
}

// LogEntry validates and records an entry and returns the day's suggestion.
func (t *Tracker) LogEntry(ctx context.Context, in EntryInput) (LogResult, error) {
	t.mu.Lock()
	var res LogResult
	err := t.mutate(func() error {
		e, err := t.sess.LogEntry(wellness.DailyEntry{
			Date:       in.Date,
			Mood:       wellness.Mood(in.Mood),
			ScreenTime: in.ScreenTime,
			Breakdown:  in.Breakdown,
		})
		if err != nil {
			return err
		}
		sug, err := t.engine.Recommend(suggest.SignalsFromEntry(e))
		if err != nil {
			return err
		}
		res = LogResult{
			Entry:      e,
			Suggestion: sug,
			Usage:      wellness.ClassifyUsage(e.ScreenTimeHours()),
			XP:         t.sess.XP(),
			Level:      t.sess.Level(),
		}
		return nil
	}, func() error {
		return t.db.SaveEntry(res.Entry, t.sess.XP())
	})
	msgs := t.takePending()
	t.mu.Unlock()

	if err != nil {
		return LogResult{}, err
	}
	logger.Info("entry logged", "date", res.Entry.Date, "mood", int(res.Entry.Mood), "hours", res.Entry.ScreenTimeHours(), "rule", res.Suggestion.Rule)
	t.flush(ctx, msgs)
	return res, nil
}

// Suggestion returns the recommendation for the most recent entry.
func (t *Tracker) Suggestion() (suggest.Suggestion, wellness.DailyEntry, error) {
	t.mu.Lock()
	latest, ok := t.sess.Latest()
	t.mu.Unlock()
	if !ok {
		return suggest.Suggestion{}, wellness.DailyEntry{}, ErrNoEntries
	}
	sug, err := t.engine.Recommend(suggest.SignalsFromEntry(latest))
	return sug, latest, err
}

// Insight computes the correlation insight over the configured window.
func (t *Tracker) Insight(ctx context.Context) (suggest.Insight, error) {
	window := t.engine.Thresholds().HistoryWindow
	entries, err := t.history.Recent(ctx, window)
	if err != nil {
		return suggest.Insight{}, fmt.Errorf("reading history: %w", err)
	}
	return t.engine.Insight(entries), nil
}

// ToggleHabit flips the habit for date (today when empty).
func (t *Tracker) ToggleHabit(ctx context.Context, date string) (HabitResult, error) {
	t.mu.Lock()
	var res HabitResult
	err := t.mutate(func() error {
		if date == "" {
			date = t.sess.Today()
		}
		before := len(t.sess.Badges())
		done, err := t.sess.ToggleHabit(date)
		if err != nil {
			return err
		}
		earned := t.sess.Badges()
		res = HabitResult{Date: date, Done: done, Streak: t.sess.Streak()}
		if len(earned) > before {
			res.NewBadges = earned[before:]
			for _, b := range res.NewBadges {
				t.pending = append(t.pending, notify.BadgeEarned(b))
			}
		}
		return nil
	}, func() error {
		return t.db.SaveHabitToggle(res.Date, res.Done, t.sess.Counter(), t.sess.XP())
	})
	msgs := t.takePending()
	t.mu.Unlock()

	if err != nil {
		return HabitResult{}, err
	}
	logger.Info("habit toggled", "date", res.Date, "done", res.Done, "streak", res.Streak)
	t.flush(ctx, msgs)
	return res, nil
}

// HabitDays returns the completed days in ascending order.
func (t *Tracker) HabitDays() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sess.HabitDays()
}

// AddGratitude records a journal note. ok is false when the text was empty
// after sanitising; that is not an error.
func (t *Tracker) AddGratitude(ctx context.Context, date, text string) (wellness.GratitudeNote, bool, error) {
	if date != "" {
		if _, err := time.Parse(wellness.DateFormat, date); err != nil {
			return wellness.GratitudeNote{}, false, fmt.Errorf("%w: %q", wellness.ErrInvalidDate, date)
		}
	}
	t.mu.Lock()
	var (
		note wellness.GratitudeNote
		ok   bool
	)
	err := t.mutate(func() error {
		note, ok = t.sess.AddGratitude(date, text)
		return nil
	}, func() error {
		if !ok {
			return nil
		}
		id, err := t.db.SaveGratitude(note, t.sess.XP())
		if err != nil {
			return err
		}
		note.ID = id
		t.sess.SetLatestGratitudeID(id)
		return nil
	})
	msgs := t.takePending()
	t.mu.Unlock()

	if err != nil {
		return wellness.GratitudeNote{}, false, err
	}
	if ok {
		logger.Info("gratitude added", "date", note.Date)
	}
	t.flush(ctx, msgs)
	return note, ok, nil
}

// Gratitude returns up to limit notes, newest first. limit <= 0 uses the
// configured display limit.
func (t *Tracker) Gratitude(limit int) []wellness.GratitudeNote {
	if limit <= 0 {
		limit = t.limit
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sess.RecentGratitude(limit)
}

// Status returns the gamification summary.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statusLocked()
}

func (t *Tracker) statusLocked() Status {
	st := t.sess.State()
	today := t.sess.Today()
	streak := t.sess.Streak()
	s := Status{
		Today:          today,
		HabitDoneToday: t.sess.HabitDone(today),
		StreakMode:     t.sess.StreakMode(),
		Streak:         streak,
		Counter:        t.sess.Counter(),
		XP:             t.sess.XP(),
		Level:          t.sess.Level(),
		Badges:         t.sess.Badges(),
		Entries:        len(st.Entries),
		Gratitude:      len(st.Gratitude),
	}
	if s.Badges == nil {
		s.Badges = []session.Badge{}
	}
	if b, remaining, ok := session.NextBadge(streak); ok {
		s.NextBadge = &b
		s.DaysToNextBadge = remaining
	}
	return s
}

// Dashboard assembles the summary view. A failing history source degrades
// to the neutral insight.
func (t *Tracker) Dashboard(ctx context.Context) (Dashboard, error) {
	t.mu.Lock()
	d := Dashboard{
		Status:    t.statusLocked(),
		Gratitude: t.sess.RecentGratitude(t.limit),
	}
	latest, ok := t.sess.Latest()
	t.mu.Unlock()

	if ok {
		d.Latest = &latest
		d.Usage = wellness.ClassifyUsage(latest.ScreenTimeHours())
		sug, err := t.engine.Recommend(suggest.SignalsFromEntry(latest))
		if err != nil && !errors.Is(err, suggest.ErrOutOfDomain) {
			return Dashboard{}, err
		}
		if err == nil {
			d.Suggestion = &sug
		}
	}

	in, err := t.Insight(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Dashboard{}, ctx.Err()
		}
		logger.Warn("insight unavailable", "err", err)
		in = t.engine.Insight(nil)
	}
	d.Insight = in
	return d, nil
}

// Animation fetches the optional breathing animation.
func (t *Tracker) Animation(ctx context.Context) (animation.Animation, bool) {
	return t.anim.Fetch(ctx)
}

// Export returns a copy of the full session state.
func (t *Tracker) Export() session.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sess.State()
}

// Reset clears all tracked data.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	err := t.mutate(func() error {
		t.sess.Reset()
		return nil
	}, func() error {
		return t.db.Reset()
	})
	if err == nil {
		logger.Info("all data reset")
	}
	return err
}

// Preview returns the suggestion for in without recording anything.
func (t *Tracker) Preview(in EntryInput) (suggest.Suggestion, error) {
	e := wellness.DailyEntry{
		Date:       in.Date,
		Mood:       wellness.Mood(in.Mood),
		ScreenTime: in.ScreenTime,
		Breakdown:  in.Breakdown,
	}
	if e.Date == "" {
		t.mu.Lock()
		e.Date = t.sess.Today()
		t.mu.Unlock()
	}
	if err := wellness.ValidateEntry(&e); err != nil {
		return suggest.Suggestion{}, err
	}
	return t.engine.Recommend(suggest.SignalsFromEntry(e))
}
