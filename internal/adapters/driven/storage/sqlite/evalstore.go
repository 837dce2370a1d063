// Package sqlite provides SQLite-backed persistence for evaluation runs.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driven"
)

// Ensure EvalStore implements the interface.
var _ driven.EvalStore = (*EvalStore)(nil)

// schema holds the eval runs table. Per-case outcomes are stored as a JSON
// column rather than a child table: runs are written once, read whole, and
// never queried by case.
const schema = `
CREATE TABLE IF NOT EXISTS eval_runs (
	id         TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	top_k      INTEGER NOT NULL,
	total      INTEGER NOT NULL,
	hits       INTEGER NOT NULL,
	cases      TEXT NOT NULL
)`

// EvalStore persists evaluation runs in a local SQLite database.
type EvalStore struct {
	db   *sql.DB
	path string
}

// NewEvalStore creates an eval store at the specified data directory.
// If dataDir is empty, defaults to ~/.docchat/data/eval.db.
func NewEvalStore(dataDir string) (*EvalStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docchat", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "eval.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating eval_runs table: %w", err)
	}

	return &EvalStore{db: db, path: dbPath}, nil
}

// SaveRun stores a completed evaluation run.
func (s *EvalStore) SaveRun(ctx context.Context, run domain.EvalRun) error {
	cases, err := json.Marshal(run.Cases)
	if err != nil {
		return fmt.Errorf("encoding case results: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO eval_runs (id, created_at, top_k, total, hits, cases)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
		run.TopK,
		run.Total,
		run.Hits,
		string(cases),
	)
	if err != nil {
		return fmt.Errorf("inserting eval run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *EvalStore) ListRuns(ctx context.Context, limit int) ([]domain.EvalRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, top_k, total, hits, cases
		FROM eval_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying eval runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.EvalRun
	for rows.Next() {
		var (
			run       domain.EvalRun
			createdAt string
			cases     string
		)
		if err := rows.Scan(&run.ID, &createdAt, &run.TopK, &run.Total, &run.Hits, &cases); err != nil {
			return nil, fmt.Errorf("scanning eval run: %w", err)
		}

		run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		if err := json.Unmarshal([]byte(cases), &run.Cases); err != nil {
			return nil, fmt.Errorf("decoding case results: %w", err)
		}

		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Path returns the database file path.
func (s *EvalStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *EvalStore) Close() error {
	return s.db.Close()
}
