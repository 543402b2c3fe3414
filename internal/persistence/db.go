// Package persistence stores games: JSON save documents on disk and a SQLite
// chronicle indexing every save with the event log it captured.
package persistence

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/medieval-life/internal/agents"
)

// DB wraps a SQLite connection for the save chronicle.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id TEXT PRIMARY KEY,
		player TEXT NOT NULL,
		path TEXT NOT NULL,
		year INTEGER NOT NULL,
		season TEXT NOT NULL,
		wealth INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		save_id TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		text TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS world_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_save ON events(save_id);
	CREATE INDEX IF NOT EXISTS idx_saves_created ON saves(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRecord is one row of the save index.
type SaveRecord struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	Path      string    `json:"path"`
	Year      int       `json:"year"`
	Season    string    `json:"season"`
	Wealth    int       `json:"wealth"`
	CreatedAt time.Time `json:"created_at"`
}

type saveRow struct {
	ID        string `db:"id"`
	Player    string `db:"player"`
	Path      string `db:"path"`
	Year      int    `db:"year"`
	Season    string `db:"season"`
	Wealth    int    `db:"wealth"`
	CreatedAt int64  `db:"created_at"`
}

func (r saveRow) record() SaveRecord {
	return SaveRecord{
		ID:        r.ID,
		Player:    r.Player,
		Path:      r.Path,
		Year:      r.Year,
		Season:    r.Season,
		Wealth:    r.Wealth,
		CreatedAt: time.Unix(r.CreatedAt, 0),
	}
}

// RecordSave indexes a written save file along with its event log and
// updates last_save. A record without an ID is assigned one.
func (db *DB) RecordSave(rec SaveRecord, events []agents.LogEntry) (SaveRecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return rec, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO saves (id, player, path, year, season, wealth, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.ID, rec.Player, rec.Path, rec.Year, rec.Season, rec.Wealth, rec.CreatedAt.Unix(),
	)
	if err != nil {
		return rec, fmt.Errorf("insert save: %w", err)
	}

	stmt, err := tx.Preparex("INSERT INTO events (save_id, timestamp, text) VALUES (?, ?, ?)")
	if err != nil {
		return rec, err
	}
	defer stmt.Close()

	for _, e := range events {
		if _, err := stmt.Exec(rec.ID, e.Timestamp, e.Text); err != nil {
			return rec, fmt.Errorf("insert event: %w", err)
		}
	}

	if err := setMeta(tx, "last_save", rec.ID); err != nil {
		return rec, fmt.Errorf("save meta: %w", err)
	}
	if err := setMeta(tx, "last_player", rec.Player); err != nil {
		return rec, fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return rec, err
	}
	slog.Info("save recorded", "id", rec.ID, "player", rec.Player, "events", len(events))
	return rec, nil
}

func setMeta(tx *sqlx.Tx, key, value string) error {
	_, err := tx.Exec("INSERT OR REPLACE INTO world_meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM world_meta WHERE key = ?", key)
	return value, err
}

// Saves returns the most recent N save records, newest first.
func (db *DB) Saves(limit int) ([]SaveRecord, error) {
	var rows []saveRow
	err := db.conn.Select(&rows,
		"SELECT id, player, path, year, season, wealth, created_at FROM saves ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	out := make([]SaveRecord, len(rows))
	for i, r := range rows {
		out[i] = r.record()
	}
	return out, nil
}

// LastSave returns the most recently recorded save.
func (db *DB) LastSave() (SaveRecord, error) {
	id, err := db.GetMeta("last_save")
	if err != nil {
		return SaveRecord{}, err
	}
	var row saveRow
	err = db.conn.Get(&row,
		"SELECT id, player, path, year, season, wealth, created_at FROM saves WHERE id = ?", id)
	return row.record(), err
}

// SaveEvents returns the event log captured by a save, oldest first.
func (db *DB) SaveEvents(saveID string) ([]agents.LogEntry, error) {
	var events []agents.LogEntry
	err := db.conn.Select(&events,
		"SELECT timestamp, text FROM events WHERE save_id = ? ORDER BY id",
		saveID,
	)
	return events, err
}
