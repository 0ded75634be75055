package runlog

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists generation records to SQLite.
// Suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a SQLite-backed run log.
// The path should be a file path (e.g., "./generations.db") or ":memory:"
// for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL PRIMARY KEY,
			topic TEXT NOT NULL,
			title TEXT NOT NULL,
			style TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			was_translated INTEGER NOT NULL,
			target_language TEXT NOT NULL DEFAULT '',
			duration_ms REAL NOT NULL,
			created_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_generations_created_at
		ON generations(created_at)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`
		INSERT INTO generations
			(run_id, topic, title, style, word_count, was_translated, target_language, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			topic = excluded.topic,
			title = excluded.title,
			style = excluded.style,
			word_count = excluded.word_count,
			was_translated = excluded.was_translated,
			target_language = excluded.target_language,
			duration_ms = excluded.duration_ms,
			created_at = excluded.created_at
	`, rec.RunID, rec.Topic, rec.Title, rec.Style, rec.WordCount,
		boolToInt(rec.WasTranslated), rec.TargetLanguage, rec.DurationMs,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// Recent implements Store.
func (s *SQLiteStore) Recent(limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		// SQLite treats a negative LIMIT as unbounded.
		limit = -1
	}

	rows, err := s.db.Query(`
		SELECT run_id, topic, title, style, word_count, was_translated, target_language, duration_ms, created_at
		FROM generations
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, max(limit, 0))
	for rows.Next() {
		var rec Record
		var translated int
		var createdAt string
		if err := rows.Scan(&rec.RunID, &rec.Topic, &rec.Title, &rec.Style,
			&rec.WordCount, &translated, &rec.TargetLanguage, &rec.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec.WasTranslated = translated != 0
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
