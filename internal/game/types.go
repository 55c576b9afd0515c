// internal/game/types.go
//
// Core type definitions for a single solve run.
// Defines:
//   - Turn: one guess and the feedback it received.
//   - Status: where the run is in its lifecycle.
//   - Game: the ordered turns of one run plus its status.

package game

import "github.com/robalobadob/wordle/apps/solver/internal/pattern"

// Turn is one guess paired with the pattern the oracle answered.
type Turn struct {
	Guess   string          `json:"guess"`
	Pattern pattern.Pattern `json:"pattern"`
}

// Status is the state of a run.
//   - Start:     no guess made yet.
//   - Guessing:  guesses made, not finished.
//   - Won:       the last pattern was all Correct.
//   - Exhausted: MaxRounds guesses made without winning.
//   - Stuck:     no candidate is consistent with the feedback received.
type Status int

const (
	Start Status = iota
	Guessing
	Won
	Exhausted
	Stuck
)

func (s Status) String() string {
	switch s {
	case Start:
		return "start"
	case Guessing:
		return "guessing"
	case Won:
		return "won"
	case Exhausted:
		return "exhausted"
	case Stuck:
		return "stuck"
	}
	return "unknown"
}

// MarshalText lets Status travel as its name in JSON.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Game holds the turns of one run.
type Game struct {
	MaxRounds int    // Maximum number of guesses (6).
	turns     []Turn // Guesses made so far, in order.
	status    Status
}
