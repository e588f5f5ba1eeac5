package store

import (
	"database/sql"
	"fmt"

	"github.com/blackwell-systems/mindpatch/internal/session"
)

// LoadState reads everything a session needs to resume.
func (db *DB) LoadState() (session.State, error) {
	var st session.State
	var err error

	if st.Entries, err = db.ListEntries(0); err != nil {
		return st, fmt.Errorf("loading entries: %w", err)
	}
	if st.HabitDays, err = db.ListHabitDays(); err != nil {
		return st, fmt.Errorf("loading habit days: %w", err)
	}
	if st.RewardedDays, err = db.ListRewardedDays(); err != nil {
		return st, fmt.Errorf("loading rewarded days: %w", err)
	}
	if st.Streak, err = db.GetCounter(CounterStreak); err != nil {
		return st, fmt.Errorf("loading streak: %w", err)
	}
	if st.XP, err = db.GetCounter(CounterXP); err != nil {
		return st, fmt.Errorf("loading xp: %w", err)
	}
	if st.Gratitude, err = db.ListGratitude(); err != nil {
		return st, fmt.Errorf("loading gratitude: %w", err)
	}
	return st, nil
}

// Reset deletes all user data, keeping the schema.
func (db *DB) Reset() error {
	return db.withTx(func(tx *sql.Tx) error {
		for _, table := range []string{"entries", "habit_days", "habit_rewards", "counters", "gratitude"} {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}
		return nil
	})
}

// Stats returns row counts for each user table.
func (db *DB) Stats() (Stats, error) {
	var s Stats
	for table, dst := range map[string]*int{
		"entries":    &s.Entries,
		"habit_days": &s.HabitDays,
		"gratitude":  &s.Gratitude,
	} {
		if err := db.conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(dst); err != nil {
			return s, fmt.Errorf("counting %s: %w", table, err)
		}
	}
	return s, nil
}
