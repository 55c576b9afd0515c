// internal/report/store.go
//
// Persistence for benchmark runs.
// Responsibilities:
//   - Saving a bench.Result as one benchmark_runs row (histogram as JSON).
//   - Loading one run by id, or the most recent runs first.

package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle/apps/solver/internal/bench"
)

// ErrNotFound is returned by Get for an unknown run id.
var ErrNotFound = errors.New("report: run not found")

// Run is one stored benchmark result.
type Run struct {
	ID        int64          `json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	Words     int            `json:"words"`
	HardMode  bool           `json:"hardMode"`
	Total     int            `json:"totalGuesses"`
	Failures  int            `json:"failures"`
	Average   float64        `json:"average"`
	ElapsedMs int64          `json:"elapsedMs"`
	Buckets   []bench.Bucket `json:"buckets"`
}

// Store persists benchmark runs.
type Store struct{ db *sql.DB }

// NewStore wraps an opened and migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Save records r and returns the stored run.
func (s *Store) Save(ctx context.Context, r *bench.Result) (*Run, error) {
	buckets := r.Buckets()
	hist, err := json.Marshal(buckets)
	if err != nil {
		return nil, fmt.Errorf("encode histogram: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO benchmark_runs(words, hard_mode, total, failures, average, elapsed_ms, histogram)
		 VALUES(?,?,?,?,?,?,?)`,
		r.Words, r.HardMode, r.TotalGuesses, r.Failures, r.Average, r.Elapsed.Milliseconds(), string(hist),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Get loads one run.
func (s *Store) Get(ctx context.Context, id int64) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, words, hard_mode, total, failures, average, elapsed_ms, histogram
		 FROM benchmark_runs WHERE id=?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return r, err
}

// List returns the most recent runs first. limit <= 0 means 20.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, words, hard_mode, total, failures, average, elapsed_ms, histogram
		 FROM benchmark_runs
		 ORDER BY id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Run, 0, limit)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		r       Run
		created string
		hist    string
	)
	if err := row.Scan(&r.ID, &created, &r.Words, &r.HardMode, &r.Total, &r.Failures,
		&r.Average, &r.ElapsedMs, &hist); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	r.CreatedAt = t
	if err := json.Unmarshal([]byte(hist), &r.Buckets); err != nil {
		return nil, fmt.Errorf("decode histogram: %w", err)
	}
	return &r, nil
}
