// internal/game/engine.go
//
// State transitions for a single solve run: Start, then Guessing, then one
// of Won, Exhausted or Stuck.
//
// Notes:
//   - A winning pattern finishes the run immediately.
//   - Reaching MaxRounds without a win finishes the run as Exhausted.
//   - Stuck is set by the driver when ranking yields no guess.
//   - Recording after the run finished is a no-op.
package game

import "github.com/robalobadob/wordle/apps/solver/internal/pattern"

// DefaultRounds is the number of guesses the game allows.
const DefaultRounds = 6

// New constructs an empty run with the default round limit.
func New() *Game {
	return &Game{MaxRounds: DefaultRounds, turns: []Turn{}}
}

// Record appends a turn and returns the resulting status.
func (g *Game) Record(guess string, p pattern.Pattern) Status {
	if g.Finished() {
		return g.status
	}
	g.turns = append(g.turns, Turn{Guess: guess, Pattern: p})

	switch {
	case p.IsWin():
		g.status = Won
	case len(g.turns) >= g.MaxRounds:
		g.status = Exhausted
	default:
		g.status = Guessing
	}
	return g.status
}

// MarkStuck finishes an unfinished run because no candidate remains.
func (g *Game) MarkStuck() {
	if !g.Finished() {
		g.status = Stuck
	}
}

// Status reports the current state.
func (g *Game) Status() Status { return g.status }

// Finished reports whether the run can take no more turns.
func (g *Game) Finished() bool {
	return g.status == Won || g.status == Exhausted || g.status == Stuck
}

// Won reports whether the run ended with an all-Correct pattern.
func (g *Game) Won() bool { return g.status == Won }

// Guesses returns the number of turns taken.
func (g *Game) Guesses() int { return len(g.turns) }

// Turns returns a copy of the recorded turns.
func (g *Game) Turns() []Turn {
	out := make([]Turn, len(g.turns))
	copy(out, g.turns)
	return out
}

// Last returns the most recent turn.
func (g *Game) Last() (Turn, bool) {
	if len(g.turns) == 0 {
		return Turn{}, false
	}
	return g.turns[len(g.turns)-1], true
}
