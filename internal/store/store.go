// Package store persists generation history in SQLite.
package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"

	"github.com/chaitu-2303/Q-A/internal/level"
	"github.com/chaitu-2303/Q-A/internal/model"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps :memory: databases coherent and serialises writers.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	// m is not closed: that would close s.db.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// SaveGeneration stores a generation and its pairs in one transaction.
// An empty ID is filled with a new UUID and a zero CreatedAt with the current time.
func (s *Store) SaveGeneration(g *model.Generation) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	stats := level.Statistics(g.QAPairs)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO generations (id, paragraph, num_questions, difficulty, total_questions, average_confidence, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Paragraph, g.NumQuestions, g.Difficulty, stats.TotalQuestions, stats.AverageConfidence, g.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert generation: %w", err)
	}

	for i, qa := range g.QAPairs {
		scores, err := json.Marshal(qa.Scores)
		if err != nil {
			return fmt.Errorf("encode scores: %w", err)
		}
		factors, err := json.Marshal(qa.Factors)
		if err != nil {
			return fmt.Errorf("encode factors: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO qa_pairs (generation_id, position, question, answer, type, context, level, confidence, scores, factors)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, i, qa.Question, qa.Answer, qa.Type, qa.Context, qa.Level, qa.Confidence, string(scores), string(factors),
		)
		if err != nil {
			return fmt.Errorf("insert pair %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetGeneration returns a generation with its pairs, or nil if it does not exist.
func (s *Store) GetGeneration(id string) (*model.Generation, error) {
	var g model.Generation
	err := s.db.QueryRow(
		`SELECT id, paragraph, num_questions, difficulty, created_at FROM generations WHERE id = ?`, id,
	).Scan(&g.ID, &g.Paragraph, &g.NumQuestions, &g.Difficulty, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	pairs, err := s.getPairs(id)
	if err != nil {
		return nil, err
	}
	g.QAPairs = pairs
	return &g, nil
}

func (s *Store) getPairs(generationID string) ([]model.ScoredQA, error) {
	rows, err := s.db.Query(
		`SELECT question, answer, type, context, level, confidence, scores, factors
		 FROM qa_pairs WHERE generation_id = ? ORDER BY position`, generationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pairs := []model.ScoredQA{}
	for rows.Next() {
		var (
			qa              model.ScoredQA
			scores, factors string
		)
		if err := rows.Scan(&qa.Question, &qa.Answer, &qa.Type, &qa.Context, &qa.Level, &qa.Confidence, &scores, &factors); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(scores), &qa.Scores); err != nil {
			return nil, fmt.Errorf("decode scores: %w", err)
		}
		if err := json.Unmarshal([]byte(factors), &qa.Factors); err != nil {
			return nil, fmt.Errorf("decode factors: %w", err)
		}
		pairs = append(pairs, qa)
	}
	return pairs, rows.Err()
}

// ListGenerations returns generation summaries, newest first.
func (s *Store) ListGenerations(limit, offset int) ([]model.GenerationSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, num_questions, difficulty, total_questions, average_confidence, created_at
		 FROM generations ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []model.GenerationSummary{}
	for rows.Next() {
		var gs model.GenerationSummary
		if err := rows.Scan(&gs.ID, &gs.NumQuestions, &gs.Difficulty, &gs.TotalQuestions, &gs.AverageConfidence, &gs.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, gs)
	}
	return summaries, rows.Err()
}

// GenerationCount returns the number of stored generations.
func (s *Store) GenerationCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM generations`).Scan(&count)
	return count, err
}

// DeleteGeneration removes a generation and its pairs. It reports whether a row existed.
func (s *Store) DeleteGeneration(id string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM generations WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
