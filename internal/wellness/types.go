// Package wellness defines the daily wellness data model shared by the
// recommendation engine, the session bookkeeping and the store.
package wellness

import "time"

// DateFormat is the calendar-date layout used for entries, habit days and
// gratitude notes.
const DateFormat = "2006-01-02"

// Mood is a self-reported mood score from 1 (very low) to 5 (great).
type Mood int

// Mood scale bounds.
const (
	MoodMin Mood = 1
	MoodMax Mood = 5
)

var moodLabels = map[Mood]string{
	1: "Very Low",
	2: "Low",
	3: "Neutral",
	4: "Good",
	5: "Great",
}

// Valid reports whether m is on the 1..5 scale.
func (m Mood) Valid() bool {
	return m >= MoodMin && m <= MoodMax
}

// Label returns the human-readable name for the mood, or "Unknown".
func (m Mood) Label() string {
	if l, ok := moodLabels[m]; ok {
		return l
	}
	return "Unknown"
}

// Breakdown splits a day's screen time into named categories.
// When present, its total is the authoritative screen-time figure.
type Breakdown struct {
	Study         float64 `json:"study"`
	Social        float64 `json:"social"`
	Entertainment float64 `json:"entertainment"`
}

// Total returns the sum of all categories.
func (b Breakdown) Total() float64 {
	return b.Study + b.Social + b.Entertainment
}

// SocialRatio returns the fraction of screen time spent on social media.
// Returns 0 when no screen time was recorded.
func (b Breakdown) SocialRatio() float64 {
	total := b.Total()
	if total <= 0 {
		return 0
	}
	return b.Social / total
}

// DailyEntry holds the metrics a user logged for one day.
type DailyEntry struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"` // YYYY-MM-DD
	Mood       Mood       `json:"mood"`
	ScreenTime float64    `json:"screen_time_hours"`
	Breakdown  *Breakdown `json:"breakdown,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ScreenTimeHours returns the authoritative screen-time total: the category
// sum when a breakdown is present, otherwise the flat figure.
func (e DailyEntry) ScreenTimeHours() float64 {
	if e.Breakdown != nil {
		return e.Breakdown.Total()
	}
	return e.ScreenTime
}

// GratitudeNote is a single dated journal line.
type GratitudeNote struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
