// Package store persists generated poems to a local sqlite database so
// request history survives the process.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/lyrelab/versesmith/poetry"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS poems (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    scheme TEXT NOT NULL,
    genre TEXT,
    model TEXT,
    emotions TEXT NOT NULL,
    raw_text TEXT NOT NULL,
    final_text TEXT NOT NULL,
    rhymed INTEGER NOT NULL,
    groups_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poems_created_at ON poems(created_at);
`

// Record is one stored generation outcome.
type Record struct {
	ID        string
	CreatedAt time.Time
	Scheme    poetry.RhymeScheme
	Genre     string
	Model     string
	Emotions  poetry.EmotionVector
	RawText   string
	FinalText string
	Rhymed    bool
	Groups    []poetry.GroupReport
}

// Store wraps the poems database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the poems database and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SavePoem inserts a record, assigning an id and timestamp when absent.
// Returns the record id.
func (s *Store) SavePoem(rec Record) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	emotions, err := json.Marshal(rec.Emotions)
	if err != nil {
		return "", fmt.Errorf("marshal emotions: %w", err)
	}
	groups, err := json.Marshal(rec.Groups)
	if err != nil {
		return "", fmt.Errorf("marshal groups: %w", err)
	}

	rhymed := 0
	if rec.Rhymed {
		rhymed = 1
	}

	if _, err := s.db.Exec(
		`INSERT INTO poems(id, created_at, scheme, genre, model, emotions, raw_text, final_text, rhymed, groups_json)
		 VALUES(?,?,?,?,?,?,?,?,?,?)`,
		rec.ID,
		rec.CreatedAt.Format(time.RFC3339Nano),
		string(rec.Scheme),
		rec.Genre,
		rec.Model,
		string(emotions),
		rec.RawText,
		rec.FinalText,
		rhymed,
		string(groups),
	); err != nil {
		return "", fmt.Errorf("insert poem: %w", err)
	}
	return rec.ID, nil
}

// ListRecent returns up to limit records, newest first.
func (s *Store) ListRecent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, scheme, genre, model, emotions, raw_text, final_text, rhymed, groups_json
		 FROM poems ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query poems: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec       Record
			createdAt string
			scheme    string
			emotions  string
			groups    string
			rhymed    int
		)
		if err := rows.Scan(&rec.ID, &createdAt, &scheme, &rec.Genre, &rec.Model, &emotions, &rec.RawText, &rec.FinalText, &rhymed, &groups); err != nil {
			return nil, fmt.Errorf("scan poem: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		rec.CreatedAt = t
		rec.Scheme = poetry.RhymeScheme(scheme)
		rec.Rhymed = rhymed != 0
		if err := json.Unmarshal([]byte(emotions), &rec.Emotions); err != nil {
			return nil, fmt.Errorf("unmarshal emotions: %w", err)
		}
		if groups != "" && groups != "null" {
			if err := json.Unmarshal([]byte(groups), &rec.Groups); err != nil {
				return nil, fmt.Errorf("unmarshal groups: %w", err)
			}
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate poems: %w", err)
	}
	return out, nil
}

// Count returns the number of stored poems.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM poems`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count poems: %w", err)
	}
	return n, nil
}
