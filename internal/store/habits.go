package store

import (
	"database/sql"
	"errors"
	"time"
)

// ListHabitDays returns completed days in ascending order.
func (db *DB) ListHabitDays() ([]string, error) {
	return db.listDays("SELECT day FROM habit_days ORDER BY day")
}

// ListRewardedDays returns every day that has ever earned habit XP, in
// ascending order. Unlike habit_days, rows survive un-toggling.
func (db *DB) ListRewardedDays() ([]string, error) {
	return db.listDays("SELECT day FROM habit_rewards ORDER BY day")
}

func (db *DB) listDays(query string) ([]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// GetCounter returns a named counter, 0 if it has never been set.
func (db *DB) GetCounter(name string) (int, error) {
	var v int
	err := db.conn.QueryRow("SELECT value FROM counters WHERE name = ?", name).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return v, err
}

func setCounter(ex execer, name string, value int) error {
	_, err := ex.Exec(
		`INSERT INTO counters (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		name, value,
	)
	return err
}

// SaveHabitToggle records a habit toggle and the resulting counters in one
// transaction. A completed day is also remembered as rewarded.
func (db *DB) SaveHabitToggle(day string, done bool, streak, xp int) error {
	return db.withTx(func(tx *sql.Tx) error {
		if done {
			now := time.Now().UTC().Format(time.RFC3339)
			if _, err := tx.Exec(
				`INSERT INTO habit_days (day, completed_at) VALUES (?, ?)
				 ON CONFLICT(day) DO NOTHING`,
				day, now,
			); err != nil {
				return err
			}
			if _, err := tx.Exec(
				`INSERT INTO habit_rewards (day, rewarded_at) VALUES (?, ?)
				 ON CONFLICT(day) DO NOTHING`,
				day, now,
			); err != nil {
				return err
			}
		} else if _, err := tx.Exec("DELETE FROM habit_days WHERE day = ?", day); err != nil {
			return err
		}

		if err := setCounter(tx, CounterStreak, streak); err != nil {
			return err
		}
		return setCounter(tx, CounterXP, xp)
	})
}
