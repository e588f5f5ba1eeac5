// Package session holds the per-user wellness state: entry history, the
// screen-free habit log and its streak counter, XP and level, badges and the
// gratitude journal. A Session is an explicit value owned by its caller; it
// has no package-level state and is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/wellness"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

// StreakMode selects how the streak is reported.
type StreakMode string

const (
	// StreakCounter reports the independently maintained counter.
	StreakCounter StreakMode = "counter"
	// StreakDerived reports the consecutive-day run read off the habit log.
	StreakDerived StreakMode = "derived"
)

// ErrNegativeXP is returned when asked to award a negative amount.
var ErrNegativeXP = errors.New("xp amount cannot be negative")

// XPPerLevel is the XP needed to advance one level.
const XPPerLevel = 100

// Rewards is the XP granted for each tracked action.
type Rewards struct {
	Entry     int `json:"entry"`
	Gratitude int `json:"gratitude"`
	Habit     int `json:"habit"`
}

// DefaultRewards are the built-in XP rewards.
var DefaultRewards = Rewards{Entry: 10, Gratitude: 5, Habit: 20}

// LevelUp is emitted when an XP award crosses a level boundary.
type LevelUp struct {
	From int `json:"from"`
	To   int `json:"to"`
	XP   int `json:"xp"`
}

// EventFunc receives level-up events. It is called synchronously and its
// outcome is ignored.
type EventFunc func(LevelUp)

// Options configures a new Session.
type Options struct {
	StreakMode StreakMode
	Rewards    Rewards
	OnLevelUp  EventFunc
	Location   *time.Location
	Now        func() time.Time
}

// State is the persistable content of a session.
type State struct {
	Entries      []wellness.DailyEntry    `json:"entries"`
	HabitDays    []string                 `json:"habit_days"`
	RewardedDays []string                 `json:"rewarded_days,omitempty"` // days that already paid habit XP
	Streak       int                      `json:"streak"`
	XP           int                      `json:"xp"`
	Gratitude    []wellness.GratitudeNote `json:"gratitude"`
}

// Session is a single user's wellness state.
type Session struct {
	opts     Options
	policy   *bluemonday.Policy
	entries  []wellness.DailyEntry
	habitLog map[string]struct{}
	rewarded map[string]struct{}
	streak   int
	xp       int
	journal  []wellness.GratitudeNote
}

// New starts an empty session.
func New(opts Options) *Session {
	if opts.StreakMode == "" {
		opts.StreakMode = StreakCounter
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Session{
		opts:     opts,
		policy:   bluemonday.StrictPolicy(),
		habitLog: make(map[string]struct{}),
		rewarded: make(map[string]struct{}),
	}
}

// Restore replaces the session content with st.
func (s *Session) Restore(st State) {
	s.entries = append([]wellness.DailyEntry(nil), st.Entries...)
	sort.SliceStable(s.entries, func(i, j int) bool {
		return s.entries[i].CreatedAt.Before(s.entries[j].CreatedAt)
	})
	s.habitLog = make(map[string]struct{}, len(st.HabitDays))
	s.rewarded = make(map[string]struct{}, len(st.RewardedDays)+len(st.HabitDays))
	for _, d := range st.HabitDays {
		s.habitLog[d] = struct{}{}
		s.rewarded[d] = struct{}{}
	}
	for _, d := range st.RewardedDays {
		s.rewarded[d] = struct{}{}
	}
	s.streak = max(st.Streak, 0)
	s.xp = max(st.XP, 0)
	s.journal = append([]wellness.GratitudeNote(nil), st.Gratitude...)
}

// State returns a copy of the session content.
func (s *Session) State() State {
	return State{
		Entries:      append([]wellness.DailyEntry(nil), s.entries...),
		HabitDays:    s.HabitDays(),
		RewardedDays: sortedDays(s.rewarded),
		Streak:       s.streak,
		XP:           s.xp,
		Gratitude:    append([]wellness.GratitudeNote(nil), s.journal...),
	}
}

// Reset clears everything, as if the session had just been created.
func (s *Session) Reset() {
	s.Restore(State{})
}

// Today returns the current calendar date in the session's timezone.
func (s *Session) Today() string {
	return wellness.Today(s.opts.Now(), s.opts.Location)
}

// StreakMode returns the configured streak mode.
func (s *Session) StreakMode() StreakMode {
	return s.opts.StreakMode
}

// --- Entries ---

// LogEntry validates and appends an entry, filling in ID, date and creation
// time when missing, and awards entry XP.
func (s *Session) LogEntry(e wellness.DailyEntry) (wellness.DailyEntry, error) {
	if e.Date == "" {
		e.Date = s.Today()
	}
	if err := wellness.ValidateEntry(&e); err != nil {
		return wellness.DailyEntry{}, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.opts.Now().UTC()
	}
	s.entries = append(s.entries, e)
	s.award(s.opts.Rewards.Entry)
	return e, nil
}

// Latest returns the most recently logged entry.
func (s *Session) Latest() (wellness.DailyEntry, bool) {
	if len(s.entries) == 0 {
		return wellness.DailyEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// History returns the last n entries in chronological order. n <= 0
// returns all of them.
func (s *Session) History(n int) []wellness.DailyEntry {
	start := 0
	if n > 0 && len(s.entries) > n {
		start = len(s.entries) - n
	}
	return append([]wellness.DailyEntry(nil), s.entries[start:]...)
}

// --- Habit log and streak ---

// ToggleHabit flips date's membership in the habit log. Adding a day
// increments the streak counter and, the first time that day is completed,
// awards habit XP; removing one decrements the counter, floored at zero. It
// returns whether the day is now marked as completed.
func (s *Session) ToggleHabit(date string) (bool, error) {
	if date == "" {
		date = s.Today()
	}
	if _, err := time.Parse(wellness.DateFormat, date); err != nil {
		return false, fmt.Errorf("%w: %q", wellness.ErrInvalidDate, date)
	}

	if _, ok := s.habitLog[date]; ok {
		delete(s.habitLog, date)
		if s.streak > 0 {
			s.streak--
		}
		return false, nil
	}

	s.habitLog[date] = struct{}{}
	s.streak++
	if _, paid := s.rewarded[date]; !paid {
		s.rewarded[date] = struct{}{}
		s.award(s.opts.Rewards.Habit)
	}
	return true, nil
}

// HabitDone reports whether date is in the habit log.
func (s *Session) HabitDone(date string) bool {
	_, ok := s.habitLog[date]
	return ok
}

// HabitDays returns the completed days in ascending order.
func (s *Session) HabitDays() []string {
	return sortedDays(s.habitLog)
}

func sortedDays(set map[string]struct{}) []string {
	days := make([]string, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// Counter returns the maintained streak counter regardless of mode.
func (s *Session) Counter() int {
	return s.streak
}

// Streak returns the streak according to the configured mode.
func (s *Session) Streak() int {
	if s.opts.StreakMode == StreakDerived {
		return s.RunLength()
	}
	return s.streak
}

// RunLength returns the number of consecutive completed days ending today.
// If today is not yet completed the run ending yesterday still counts.
func (s *Session) RunLength() int {
	day := s.Today()
	if !s.HabitDone(day) {
		day = wellness.PreviousDay(day)
	}
	run := 0
	for s.HabitDone(day) {
		run++
		day = wellness.PreviousDay(day)
	}
	return run
}

// Badges returns the badges earned at the current streak.
func (s *Session) Badges() []Badge {
	return BadgesFor(s.Streak())
}

// --- XP ---

// XP returns the total XP.
func (s *Session) XP() int {
	return s.xp
}

// Level returns the current level.
func (s *Session) Level() int {
	return LevelFor(s.xp)
}

// LevelFor returns the level reached with xp points.
func LevelFor(xp int) int {
	return 1 + xp/XPPerLevel
}

// AwardXP adds amount to the XP total. When the level rises it returns the
// level-up event and notifies OnLevelUp.
func (s *Session) AwardXP(amount int) (LevelUp, bool, error) {
	if amount < 0 {
		return LevelUp{}, false, ErrNegativeXP
	}
	ev, up := s.award(amount)
	return ev, up, nil
}

func (s *Session) award(amount int) (LevelUp, bool) {
	if amount <= 0 {
		return LevelUp{}, false
	}
	before := s.Level()
	s.xp += amount
	after := s.Level()
	if after <= before {
		return LevelUp{}, false
	}
	ev := LevelUp{From: before, To: after, XP: s.xp}
	if s.opts.OnLevelUp != nil {
		s.opts.OnLevelUp(ev)
	}
	return ev, true
}

// --- Gratitude journal ---

// AddGratitude appends a note. Markup is stripped; a note that is empty or
// whitespace-only afterwards is dropped and ok is false.
func (s *Session) AddGratitude(date, text string) (note wellness.GratitudeNote, ok bool) {
	clean := strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
	if clean == "" {
		return wellness.GratitudeNote{}, false
	}
	if date == "" {
		date = s.Today()
	}
	id := int64(1)
	if n := len(s.journal); n > 0 {
		id = s.journal[n-1].ID + 1
	}
	note = wellness.GratitudeNote{
		ID:        id,
		Date:      date,
		Text:      clean,
		CreatedAt: s.opts.Now().UTC(),
	}
	s.journal = append(s.journal, note)
	s.award(s.opts.Rewards.Gratitude)
	return note, true
}

// SetLatestGratitudeID replaces the ID of the most recent note, once
// persistence has assigned the permanent one.
func (s *Session) SetLatestGratitudeID(id int64) {
	if n := len(s.journal); n > 0 {
		s.journal[n-1].ID = id
	}
}

// RecentGratitude returns up to n notes, newest first. n <= 0 returns all.
func (s *Session) RecentGratitude(n int) []wellness.GratitudeNote {
	count := len(s.journal)
	if n > 0 && n < count {
		count = n
	}
	out := make([]wellness.GratitudeNote, 0, count)
	for i := len(s.journal) - 1; i >= 0 && len(out) < count; i-- {
		out = append(out, s.journal[i])
	}
	return out
}
