// internal/store/memory.go
//
// In-memory cache of guess rankings.
// Rankings are a pure function of (hard mode, feedback history), so the HTTP
// API can answer repeated queries (most of all the opening one) without
// re-scoring the dictionary.
//
// Characteristics:
//   - Entries keyed by Key(hardMode, turns).
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Bounded: once full, an arbitrary entry is evicted per insert.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// ErrNotFound is returned by Get on a cache miss.
var ErrNotFound = errors.New("not found")

// Ranking is a cached solver answer for one history.
type Ranking struct {
	Remaining int                    // candidate count after the history
	Guesses   []solver.GuessAnalysis // full ranking, best first
}

// Store defines the cache interface.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Save stores or replaces a ranking.
	Save(ctx context.Context, key string, r *Ranking) error

	// Get retrieves a ranking by key.
	// Returns ErrNotFound on a miss.
	Get(ctx context.Context, key string) (*Ranking, error)
}

// Key builds the cache key for a feedback history, e.g. "H|crane:bygbb|toast:bbbbb".
func Key(hardMode bool, turns []game.Turn) string {
	var b strings.Builder
	if hardMode {
		b.WriteByte('H')
	} else {
		b.WriteByte('N')
	}
	for _, t := range turns {
		b.WriteByte('|')
		b.WriteString(t.Guess)
		b.WriteByte(':')
		b.WriteString(t.Pattern.Code())
	}
	return b.String()
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex        // guards entries
	entries map[string]*Ranking // keyed by Key()
	limit   int
}

// NewMemoryStore constructs a cache holding at most limit entries (limit <= 0: 1024).
func NewMemoryStore(limit int) Store {
	if limit <= 0 {
		limit = 1024
	}
	return &memory{entries: make(map[string]*Ranking), limit: limit}
}

// Save adds or replaces the entry.
func (m *memory) Save(ctx context.Context, key string, r *Ranking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok && len(m.entries) >= m.limit {
		for k := range m.entries {
			delete(m.entries, k)
			break
		}
	}
	m.entries[key] = r
	return nil
}

// Get looks up an entry.
func (m *memory) Get(ctx context.Context, key string) (*Ranking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.entries[key]; ok {
		return r, nil
	}
	return nil, ErrNotFound
}
