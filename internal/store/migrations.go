package store

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are applied in order; migrations[i] brings the schema to
// version i+1.
var migrations = []func(tx *sql.Tx) error{
	migrateV1,
	migrateV2,
}

// currentSchemaVersion is the latest schema version.
var currentSchemaVersion = len(migrations)

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	if err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	for v := version; v < len(migrations); v++ {
		err := db.withTx(func(tx *sql.Tx) error {
			if err := migrations[v](tx); err != nil {
				return err
			}
			if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
				return err
			}
			_, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", v+1)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration v%d: %w", v+1, err)
		}
	}
	return nil
}

// SchemaVersion returns the recorded schema version, 0 for a fresh database.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// migrateV1 creates all initial tables and indexes.
func migrateV1(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS entries (
			id            TEXT PRIMARY KEY,
			entry_date    TEXT NOT NULL,
			mood          INTEGER NOT NULL CHECK (mood BETWEEN 1 AND 5),
			screen_time   REAL NOT NULL CHECK (screen_time >= 0),
			study         REAL,
			social        REAL,
			entertainment REAL,
			created_at    TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS habit_days (
			day          TEXT PRIMARY KEY,
			completed_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS counters (
			name  TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS gratitude (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			note_date  TEXT NOT NULL,
			text       TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(entry_date)`,
		`CREATE INDEX IF NOT EXISTS idx_gratitude_date ON gratitude(note_date)`,
	)
}

// migrateV2 records which days have already paid out habit XP, seeded from
// the days currently marked complete.
func migrateV2(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS habit_rewards (
			day         TEXT PRIMARY KEY,
			rewarded_at TEXT NOT NULL
		)`,
		`INSERT OR IGNORE INTO habit_rewards (day, rewarded_at)
		 SELECT day, completed_at FROM habit_days`,
	)
}

func execAll(tx *sql.Tx, statements ...string) error {
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
