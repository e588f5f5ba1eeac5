package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/blackwell-systems/mindpatch/internal/wellness"
)

// SaveEntry stores a daily entry and the XP total it produced in one
// transaction.
func (db *DB) SaveEntry(e wellness.DailyEntry, xp int) error {
	return db.withTx(func(tx *sql.Tx) error {
		if err := insertEntry(tx, e); err != nil {
			return err
		}
		return setCounter(tx, CounterXP, xp)
	})
}

func insertEntry(ex execer, e wellness.DailyEntry) error {
	var study, social, entertainment sql.NullFloat64
	if b := e.Breakdown; b != nil {
		study = sql.NullFloat64{Float64: b.Study, Valid: true}
		social = sql.NullFloat64{Float64: b.Social, Valid: true}
		entertainment = sql.NullFloat64{Float64: b.Entertainment, Valid: true}
	}
	_, err := ex.Exec(
		`INSERT INTO entries
		(id, entry_date, mood, screen_time, study, social, entertainment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Date, int(e.Mood), e.ScreenTime, study, social, entertainment,
		e.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

// ListEntries returns the most recent limit entries in chronological order.
// limit <= 0 returns every entry.
func (db *DB) ListEntries(limit int) ([]wellness.DailyEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := db.conn.Query(
		`SELECT id, entry_date, mood, screen_time, study, social, entertainment, created_at
		 FROM entries ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []wellness.DailyEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// LatestEntry returns the most recently created entry, or ErrNotFound.
func (db *DB) LatestEntry() (wellness.DailyEntry, error) {
	entries, err := db.ListEntries(1)
	if err != nil {
		return wellness.DailyEntry{}, err
	}
	if len(entries) == 0 {
		return wellness.DailyEntry{}, ErrNotFound
	}
	return entries[0], nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (wellness.DailyEntry, error) {
	var e wellness.DailyEntry
	var mood int
	var study, social, entertainment sql.NullFloat64
	var createdAt string
	if err := row.Scan(&e.ID, &e.Date, &mood, &e.ScreenTime, &study, &social, &entertainment, &createdAt); err != nil {
		return wellness.DailyEntry{}, err
	}
	e.Mood = wellness.Mood(mood)
	if study.Valid || social.Valid || entertainment.Valid {
		e.Breakdown = &wellness.Breakdown{
			Study:         study.Float64,
			Social:        social.Float64,
			Entertainment: entertainment.Float64,
		}
	}
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return wellness.DailyEntry{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	e.CreatedAt = t
	return e, nil
}
