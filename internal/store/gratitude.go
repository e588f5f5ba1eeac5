package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// SaveGratitude appends a journal note and stores the XP total it produced
// in one transaction. It returns the note's row ID.
func (db *DB) SaveGratitude(n wellness.GratitudeNote, xp int) (int64, error) {
	var id int64
	err := db.withTx(func(tx *sql.Tx) error {
		result, err := tx.Exec(
			"INSERT INTO gratitude (note_date, text, created_at) VALUES (?, ?, ?)",
			n.Date, n.Text, n.CreatedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return err
		}
		if id, err = result.LastInsertId(); err != nil {
			return err
		}
		return setCounter(tx, CounterXP, xp)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ListGratitude returns every note in insertion order.
func (db *DB) ListGratitude() ([]wellness.GratitudeNote, error) {
	rows, err := db.conn.Query("SELECT id, note_date, text, created_at FROM gratitude ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var notes []wellness.GratitudeNote
	for rows.Next() {
		var n wellness.GratitudeNote
		var createdAt string
		if err := rows.Scan(&n.ID, &n.Date, &n.Text, &createdAt); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		n.CreatedAt = t
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
