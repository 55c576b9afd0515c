// internal/solver/rank.go
//
// Entropy ranking of guesses.
//
// For every eligible guess, the current candidates are bucketed by the pattern
// the guess would produce. The Shannon entropy of that distribution is the
// expected information in bits; higher splits the candidates better.
package solver

import (
	"math"

	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

// rankChunk is the number of guesses scored per task.
const rankChunk = 64

// GuessAnalysis is the score of one candidate guess.
type GuessAnalysis struct {
	Word              string  `json:"word"`
	Entropy           float64 `json:"entropy"`           // bits
	ExpectedRemaining float64 `json:"expectedRemaining"` // |candidates| / 2^entropy
	IsPossibleAnswer  bool    `json:"isPossibleAnswer"`
}

// Entropy returns the information, in bits, that guessing word would yield
// against the current candidates. It is 0 with one candidate or none.
func (s *Solver) Entropy(word string) float64 {
	return entropy(word, s.PossibleAnswers())
}

func entropy(guess string, candidates []string) float64 {
	n := len(candidates)
	if n <= 1 {
		return 0
	}
	var counts [pattern.NumPatterns]uint32
	for _, c := range candidates {
		counts[pattern.Calculate(guess, c)]++
	}

	total := float64(n)
	h := 0.0
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// BestGuess returns the top ranked guess, or false when no candidate remains.
func (s *Solver) BestGuess() (GuessAnalysis, bool) {
	top := s.RankGuesses(1)
	if len(top) == 0 {
		return GuessAnalysis{}, false
	}
	return top[0], true
}

// RankGuesses returns up to n guesses, best first; n <= 0 returns all of them
// rather than none, so callers wanting the full ranking need no count.
//
// The result is empty when no candidate remains. With one candidate it is
// that word; with two, either candidate splits them in one guess.
// Otherwise every eligible word is scored, sorted by entropy and, for equal
// entropy, by whether the word could itself be the answer.
func (s *Solver) RankGuesses(n int) []GuessAnalysis {
	candidates := s.PossibleAnswers()

	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return []GuessAnalysis{{
			Word:              candidates[0],
			Entropy:           0,
			ExpectedRemaining: 1,
			IsPossibleAnswer:  true,
		}}
	case 2:
		pair := make([]GuessAnalysis, 2)
		for i, w := range candidates {
			pair[i] = GuessAnalysis{Word: w, Entropy: 1, ExpectedRemaining: 1, IsPossibleAnswer: true}
		}
		return top(pair, n)
	}

	if s.atOpening() {
		s.opening.once.Do(func() {
			s.opening.ranking = s.rank(candidates)
		})
		return top(s.opening.ranking, n)
	}
	return top(s.rank(candidates), n)
}

// eligible returns the words that may be suggested.
func (s *Solver) eligible() []string {
	if !s.hardMode || s.constraints.IsEmpty() {
		return s.words
	}
	out := make([]string, 0, len(s.words))
	for _, w := range s.words {
		if s.constraints.IsValid(w) {
			out = append(out, w)
		}
	}
	return out
}

// rank scores every eligible word in parallel and sorts once at the end.
// Each task writes only its own slice range.
func (s *Solver) rank(candidates []string) []GuessAnalysis {
	guesses := s.eligible()
	out := make([]GuessAnalysis, len(guesses))
	total := float64(len(candidates))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for lo := 0; lo < len(guesses); lo += rankChunk {
		hi := min(lo+rankChunk, len(guesses))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				w := guesses[i]
				h := entropy(w, candidates)
				out[i] = GuessAnalysis{
					Word:              w,
					Entropy:           h,
					ExpectedRemaining: total / math.Pow(2, h),
					IsPossibleAnswer:  s.IsCandidate(w),
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	slices.SortStableFunc(out, func(a, b GuessAnalysis) bool {
		if a.Entropy != b.Entropy {
			return a.Entropy > b.Entropy
		}
		return a.IsPossibleAnswer && !b.IsPossibleAnswer
	})
	return out
}

// top copies the first n entries so callers never alias cached rankings.
func top(ranked []GuessAnalysis, n int) []GuessAnalysis {
	if n <= 0 || n > len(ranked) {
		n = len(ranked)
	}
	out := make([]GuessAnalysis, n)
	copy(out, ranked[:n])
	return out
}
