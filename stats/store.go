package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned by a Store after Close.
var ErrClosed = errors.New("stats: store is closed")

const createSamplesTableSQL = `
CREATE TABLE IF NOT EXISTS Samples (
    ID INTEGER PRIMARY KEY AUTOINCREMENT,
    RunID TEXT NOT NULL,
    Algorithm TEXT NOT NULL,
    Label TEXT,
    StartLoc TEXT,
    TargetLoc TEXT,
    Found INTEGER,
    DurationNs INTEGER,
    AllocBytes INTEGER,
    Expanded INTEGER,
    PathLength INTEGER,
    PathWeight INTEGER,
    At TIMESTAMP
);
`

const createSamplesIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_samples_algorithm ON Samples (Algorithm);
`

const insertSampleSQL = `
INSERT INTO Samples (RunID, Algorithm, Label, StartLoc, TargetLoc, Found, DurationNs,
    AllocBytes, Expanded, PathLength, PathWeight, At)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`

const summarySQL = `
SELECT Algorithm, COUNT(*), SUM(Found), AVG(DurationNs), AVG(Expanded), AVG(PathWeight)
FROM Samples
GROUP BY Algorithm
ORDER BY Algorithm;
`

// Summary aggregates the samples of one algorithm.
type Summary struct {
	Algorithm    string        `json:"algorithm"`
	Runs         int           `json:"runs"`
	Found        int           `json:"found"`
	MeanDuration time.Duration `json:"mean_duration_ns"`
	MeanExpanded float64       `json:"mean_expanded"`
	MeanWeight   float64       `json:"mean_weight"`
}

// Store keeps samples in a SQLite database. It is safe for concurrent use;
// Close waits for writes and queries in progress.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

// Open opens or creates the database at dsn (":memory:" for a private
// in-memory one) and makes sure the tables exist.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("stats: open %s: %w", dsn, err)
	}
	// one connection: SQLite serialises writers anyway, and ":memory:"
	// databases are per connection
	db.SetMaxOpenConns(1)
	for _, stmt := range []string{createSamplesTableSQL, createSamplesIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("stats: init: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Record stores one sample.
func (s *Store) Record(sample Sample) error {
	return s.RecordAll(context.Background(), []Sample{sample})
}

// RecordAll stores samples in one transaction.
func (s *Store) RecordAll(ctx context.Context, samples []Sample) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return ErrClosed
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("stats: begin: %w", err)
	}
	for _, x := range samples {
		_, err = tx.ExecContext(ctx, insertSampleSQL,
			x.RunID.String(), x.Algorithm, x.Label, x.Start, x.Target, x.Found,
			x.Duration.Nanoseconds(), x.AllocBytes, x.Expanded, x.PathLength, x.PathWeight, x.At)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("stats: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("stats: commit: %w", err)
	}
	return nil
}

// Summaries aggregates all samples per algorithm, sorted by name.
func (s *Store) Summaries(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, summarySQL)
	if err != nil {
		return nil, fmt.Errorf("stats: query: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum      Summary
			duration float64
		)
		if err := rows.Scan(&sum.Algorithm, &sum.Runs, &sum.Found, &duration, &sum.MeanExpanded, &sum.MeanWeight); err != nil {
			return nil, fmt.Errorf("stats: scan: %w", err)
		}
		sum.MeanDuration = time.Duration(duration)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats: rows: %w", err)
	}
	return out, nil
}

// Close closes the database. Later calls return ErrClosed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	err := s.db.Close()
	s.db = nil
	return err
}
