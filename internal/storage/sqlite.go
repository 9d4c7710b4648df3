// Package storage provides SQLite-based persistence for the high-score table.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MaxEntries is the number of scores kept per variant.
const MaxEntries = 10

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Variant   string
	Player    string
	Score     int
	CreatedAt time.Time
}

// VariantStats contains aggregated statistics over a variant's kept scores.
type VariantStats struct {
	Variant    string
	Entries    int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	path, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows a single writer; SSH sessions share this handle.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			variant TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_scores_variant ON scores(variant);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(variant, score DESC, id ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a score and trims the variant's table to the best
// MaxEntries rows. Equal scores keep the older entry first.
// Returns the 1-based rank of the new entry, or 0 if it did not make the table.
func (s *Store) SaveScore(variant, player string, score int) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	result, err := tx.Exec(
		"INSERT INTO scores (variant, player, score, created_at) VALUES (?, ?, ?, ?)",
		variant, player, score, s.now().UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = tx.Exec(
		`DELETE FROM scores
		 WHERE variant = ? AND id NOT IN (
			SELECT id FROM scores WHERE variant = ?
			ORDER BY score DESC, id ASC
			LIMIT ?
		 )`,
		variant, variant, MaxEntries,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prune scores: %w", err)
	}

	var rank int
	err = tx.QueryRow(
		`SELECT COUNT(*) FROM scores
		 WHERE variant = ? AND (score > ? OR (score = ? AND id <= ?))
		 AND EXISTS (SELECT 1 FROM scores WHERE id = ?)`,
		variant, score, score, id, id,
	).Scan(&rank)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot rank score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit score: %w", err)
	}

	return rank, nil
}

// TopScores retrieves the top N scores for the given variant.
// Results are ordered by score descending, older entries first on ties.
func (s *Store) TopScores(variant string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = MaxEntries
	}

	rows, err := s.db.Query(
		`SELECT id, variant, player, score, created_at
		 FROM scores
		 WHERE variant = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Variant, &e.Player, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the best score for the given variant, 0 if none.
func (s *Store) HighScore(variant string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE variant = ?",
		variant,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Qualifies reports whether a score would enter the variant's table.
func (s *Store) Qualifies(variant string, score int) (bool, error) {
	if score <= 0 {
		return false, nil
	}

	var count int
	var lowest sql.NullInt64
	err := s.db.QueryRow(
		"SELECT COUNT(*), MIN(score) FROM scores WHERE variant = ?",
		variant,
	).Scan(&count, &lowest)
	if err != nil {
		return false, fmt.Errorf("storage: cannot check score: %w", err)
	}

	if count < MaxEntries || !lowest.Valid {
		return true, nil
	}
	return score > int(lowest.Int64), nil
}

// ClearScores removes all scores for the given variant.
func (s *Store) ClearScores(variant string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a variant.
func (s *Store) Stats(variant string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM scores WHERE variant = ?`,
		variant,
	).Scan(&stats.Entries, &stats.HighScore, &stats.AvgScore, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllStats retrieves statistics for every variant with saved scores.
func (s *Store) AllStats() (map[string]*VariantStats, error) {
	rows, err := s.db.Query(
		`SELECT variant, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM scores
		 GROUP BY variant`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all variant stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*VariantStats)
	for rows.Next() {
		var vs VariantStats
		var lastPlayed any
		if err := rows.Scan(&vs.Variant, &vs.Entries, &vs.HighScore, &vs.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		vs.LastPlayed = parseTime(lastPlayed)
		stats[vs.Variant] = &vs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	case []byte:
		if parsed, err := time.Parse(timeLayout, string(t)); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
