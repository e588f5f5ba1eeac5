// Package store provides SQLite persistence for mindpatch entries, habit
// days, counters and the gratitude journal.
package store

import "errors"

// timeLayout is a fixed-width UTC timestamp so that stored values sort
// lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Counter names stored in the counters table.
const (
	CounterStreak = "streak"
	CounterXP     = "xp"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Stats summarises table sizes for the doctor command.
type Stats struct {
	Entries   int `json:"entries"`
	HabitDays int `json:"habit_days"`
	Gratitude int `json:"gratitude"`
}
