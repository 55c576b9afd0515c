// internal/solver/solve.go
//
// Solve loops. The only thing a loop needs from the outside world is an
// Oracle that answers a guess with its pattern: a player typing feedback,
// a known target, or a test double.
package solver

import (
	"fmt"

	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
)

// Oracle supplies the feedback for a guess.
type Oracle interface {
	Feedback(guess string) (pattern.Pattern, error)
}

// OracleFunc adapts a plain function to Oracle.
type OracleFunc func(guess string) (pattern.Pattern, error)

// Feedback calls f.
func (f OracleFunc) Feedback(guess string) (pattern.Pattern, error) { return f(guess) }

// TargetOracle answers with the exact feedback against a known target.
type TargetOracle string

// Feedback scores guess against the target.
func (t TargetOracle) Feedback(guess string) (pattern.Pattern, error) {
	return pattern.Calculate(guess, string(t)), nil
}

// SolveWithOracle plays up to game.DefaultRounds guesses from the current
// state. Each round takes the best ranked guess, asks o for its pattern,
// records the turn and narrows the candidates; a winning pattern ends the run.
// When no guess can be ranked the run ends as game.Stuck.
//
// An oracle error ends the run; the turns recorded so far are returned with it.
func (s *Solver) SolveWithOracle(o Oracle) (*game.Game, error) {
	g := game.New()
	for !g.Finished() {
		best, ok := s.BestGuess()
		if !ok {
			g.MarkStuck()
			break
		}
		p, err := o.Feedback(best.Word)
		if err != nil {
			return g, fmt.Errorf("feedback for %q: %w", best.Word, err)
		}
		g.Record(best.Word, p)
		s.ApplyFeedback(best.Word, p)
	}
	return g, nil
}

// SolveForTarget solves against a known target.
func (s *Solver) SolveForTarget(target string) *game.Game {
	g, _ := s.SolveWithOracle(TargetOracle(target))
	return g
}
