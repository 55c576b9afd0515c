// internal/solver/solver.go
//
// Solver state for one game.
// Responsibilities:
//   - Own the dictionary (shared read-only by every clone).
//   - Track the candidate answers still consistent with all feedback.
//   - Track hard-mode constraints when hard mode is on.
//   - Narrow, reset and clone that state.
//
// The candidate set is a bitset over dictionary indices, so it always stays a
// subset of the word list and keeps dictionary order.
package solver

import (
	"runtime"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle/apps/solver/internal/constraint"
	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

// Solver ranks guesses for the current candidate set.
// A Solver is not safe for concurrent mutation; use Clone per goroutine.
type Solver struct {
	words []string        // full dictionary, never mutated after New
	index map[string]uint // word -> position in words

	candidates  *bitset.BitSet
	hardMode    bool
	constraints *constraint.Set
	workers     int

	opening *openingCache // shared by clones of the same dictionary
}

// openingCache holds the ranking of the untouched starting state. It only
// depends on the dictionary, so every clone can reuse it.
type openingCache struct {
	once    sync.Once
	ranking []GuessAnalysis
}

// Option configures a Solver.
type Option func(*Solver)

// WithWorkers bounds the goroutines used while ranking.
func WithWorkers(n int) Option {
	return func(s *Solver) { s.SetWorkers(n) }
}

// WithHardMode starts the solver in hard mode.
func WithHardMode(on bool) Option {
	return func(s *Solver) { s.hardMode = on }
}

// New builds a solver over words. Words are expected to be validated
// WordLength lowercase letters with no duplicates (see package words).
func New(words []string, opts ...Option) *Solver {
	ws := make([]string, len(words))
	copy(ws, words)

	idx := make(map[string]uint, len(ws))
	for i, w := range ws {
		idx[w] = uint(i)
	}

	s := &Solver{
		words:       ws,
		index:       idx,
		candidates:  fullSet(len(ws)),
		constraints: constraint.New(),
		workers:     runtime.GOMAXPROCS(0),
		opening:     &openingCache{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func fullSet(n int) *bitset.BitSet {
	return bitset.New(uint(n)).Complement()
}

// SetHardMode toggles hard mode. Constraints are only collected while it is on.
func (s *Solver) SetHardMode(on bool) { s.hardMode = on }

// HardMode reports whether hard mode is on.
func (s *Solver) HardMode() bool { return s.hardMode }

// SetWorkers bounds ranking parallelism; n < 1 means 1.
func (s *Solver) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	s.workers = n
}

// Workers returns the ranking parallelism.
func (s *Solver) Workers() int { return s.workers }

// RemainingCount returns the number of candidate answers.
func (s *Solver) RemainingCount() int { return int(s.candidates.Count()) }

// PossibleAnswers returns the candidate answers in dictionary order.
func (s *Solver) PossibleAnswers() []string {
	out := make([]string, 0, s.candidates.Count())
	for i, ok := s.candidates.NextSet(0); ok; i, ok = s.candidates.NextSet(i + 1) {
		out = append(out, s.words[i])
	}
	return out
}

// AllWords returns the dictionary. Callers must not modify it.
func (s *Solver) AllWords() []string { return s.words }

// Contains reports whether w is in the dictionary.
func (s *Solver) Contains(w string) bool {
	_, ok := s.index[w]
	return ok
}

// IsCandidate reports whether w is still a possible answer.
func (s *Solver) IsCandidate(w string) bool {
	i, ok := s.index[w]
	return ok && s.candidates.Test(i)
}

// Constraints returns a copy of the hard-mode constraints collected so far.
func (s *Solver) Constraints() *constraint.Set { return s.constraints.Clone() }

// ApplyFeedback narrows the candidates to the words that would have produced
// p for guess. In hard mode the hints are recorded first.
// The candidate set never grows.
func (s *Solver) ApplyFeedback(guess string, p pattern.Pattern) {
	if s.hardMode {
		s.constraints.Update(guess, p)
	}
	for i, ok := s.candidates.NextSet(0); ok; i, ok = s.candidates.NextSet(i + 1) {
		if pattern.Calculate(guess, s.words[i]) != p {
			s.candidates.Clear(i)
		}
	}
}

// Reset restores the full candidate set and clears constraints.
// Hard mode itself stays as it was.
func (s *Solver) Reset() {
	s.candidates = fullSet(len(s.words))
	s.constraints.Reset()
}

// Clone returns an independent solver sharing only the read-only dictionary.
func (s *Solver) Clone() *Solver {
	return &Solver{
		words:       s.words,
		index:       s.index,
		candidates:  s.candidates.Clone(),
		hardMode:    s.hardMode,
		constraints: s.constraints.Clone(),
		workers:     s.workers,
		opening:     s.opening,
	}
}

// atOpening reports whether the state is indistinguishable from a fresh game
// for ranking purposes.
func (s *Solver) atOpening() bool {
	if s.RemainingCount() != len(s.words) {
		return false
	}
	return !s.hardMode || s.constraints.IsEmpty()
}
