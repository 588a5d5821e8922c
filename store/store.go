// Package store persists every question that has ever been turned into a
// video, keyed by a normalized-text hash, so the same question is never
// generated twice.
package store

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
	log "github.com/sirupsen/logrus"

	"github.com/MVinothkumarAWS/k2-Quiz/types"
)

// ErrDuplicate reports that a question with the same normalized text is
// already in the store.
var ErrDuplicate = errors.New("question already seen")

type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS questions (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	question_hash TEXT UNIQUE NOT NULL,
	question_text TEXT NOT NULL,
	category      TEXT,
	language      TEXT,
	difficulty    TEXT,
	created_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Open opens (creating if needed) the seen-question database. An
// unusable store is a configuration error: callers treat it as fatal.
func Open(path string) (*Store, error) {
	const op = "store.Open"

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Normalize lowercases the text, collapses internal whitespace and trims
// the ends, so duplicates differing only in case or spacing hash equal.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// Hash returns the duplicate-detection key for a question text.
func Hash(text string) string {
	sum := md5.Sum([]byte(Normalize(text)))
	return hex.EncodeToString(sum[:])
}

// Add inserts a question. The insert itself is the duplicate check: the
// unique constraint on question_hash makes check-then-insert atomic, so
// within-batch duplicates are caught without a separate lookup.
func (s *Store) Add(q *types.QuestionRecord) error {
	const op = "store.Add"

	_, err := s.db.Exec(
		`INSERT INTO questions (question_hash, question_text, category, language, difficulty)
		 VALUES (?, ?, ?, ?, ?)`,
		Hash(q.Question), q.Question, q.Category, q.Language, q.Difficulty,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && errors.Is(sqliteErr.ExtendedCode, sqlite3.ErrConstraintUnique) {
			return fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FilterDuplicates splits candidates into accepted and rejected. Every
// accepted candidate is inserted immediately, so a second candidate in
// the same batch with the same normalized text is rejected too.
func (s *Store) FilterDuplicates(candidates []types.QuestionRecord) (accepted, rejected []types.QuestionRecord, err error) {
	const op = "store.FilterDuplicates"

	for _, q := range candidates {
		if addErr := s.Add(&q); addErr != nil {
			if errors.Is(addErr, ErrDuplicate) {
				log.Infof("[store] duplicate skipped: %q", q.Question)
				rejected = append(rejected, q)
				continue
			}
			return nil, nil, fmt.Errorf("%s: %w", op, addErr)
		}
		accepted = append(accepted, q)
	}
	return accepted, rejected, nil
}

// Seen reports whether a question text is already in the store.
func (s *Store) Seen(text string) (bool, error) {
	const op = "store.Seen"

	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM questions WHERE question_hash = ?", Hash(text),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return count > 0, nil
}

// Stats summarizes the store contents.
type Stats struct {
	Total      int
	ByCategory map[string]int
	ByLanguage map[string]int
}

func (s *Store) Stats() (*Stats, error) {
	const op = "store.Stats"

	stats := &Stats{
		ByCategory: make(map[string]int),
		ByLanguage: make(map[string]int),
	}
	if err := s.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&stats.Total); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query("SELECT COALESCE(category, ''), COUNT(*) FROM questions GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.ByCategory[category] = count
	}

	rows, err = s.db.Query("SELECT COALESCE(language, ''), COUNT(*) FROM questions GROUP BY language")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	for rows.Next() {
		var language string
		var count int
		if err := rows.Scan(&language, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.ByLanguage[language] = count
	}

	return stats, nil
}

// Clear removes every record. Entries are otherwise never deleted.
func (s *Store) Clear() error {
	const op = "store.Clear"

	if _, err := s.db.Exec("DELETE FROM questions"); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
