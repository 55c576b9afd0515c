// repl.go
//
// Interactive session: the player types the tiles the real game showed and
// the solver suggests the next guess.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/robalobadob/wordle/apps/solver/internal/bench"
	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

const replHelp = `Commands:
  suggest | s               best next guess
  top [n] | t [n]           n best guesses (default 5)
  feedback <word> <tiles>   apply the game's answer, e.g. feedback crane gybbb
                            (g = green, y = yellow, b = black/grey)
  remaining | r             remaining possible answers
  hard                      toggle hard mode
  solve <word>              watch the solver play against <word>
  benchmark | bench         solve every dictionary word
  reset                     start over
  help | h | ?              this text
  quit | q | exit           leave`

type repl struct {
	sv  *solver.Solver
	in  *bufio.Scanner
	out io.Writer
}

func newREPL(sv *solver.Solver, in io.Reader, out io.Writer) *repl {
	return &repl{sv: sv, in: bufio.NewScanner(in), out: out}
}

// Run reads commands until quit or end of input.
func (r *repl) Run() error {
	fmt.Fprintln(r.out, color.Ize(color.Bold, "Wordle solver"))
	fmt.Fprintf(r.out, "Loaded %d words. Type 'help' for commands or 'suggest' to get started.\n\n", len(r.sv.AllWords()))

	for {
		fmt.Fprint(r.out, "> ")
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}
		fields := strings.Fields(r.in.Text())
		if len(fields) == 0 {
			continue
		}
		if !r.dispatch(strings.ToLower(fields[0]), fields[1:]) {
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		}
	}
}

// dispatch runs one command; false means quit.
func (r *repl) dispatch(cmd string, args []string) bool {
	switch cmd {
	case "help", "h", "?":
		fmt.Fprintln(r.out, replHelp)
	case "quit", "exit", "q":
		return false
	case "suggest", "s", "best":
		r.suggest()
	case "top", "t":
		n := 5
		if len(args) > 0 {
			if v, err := strconv.Atoi(args[0]); err == nil && v > 0 {
				n = v
			}
		}
		printRanking(r.out, r.sv.RankGuesses(n))
	case "hard", "hardmode":
		r.sv.SetHardMode(!r.sv.HardMode())
		if r.sv.HardMode() {
			fmt.Fprintln(r.out, "Hard mode: ON. Guesses must use all revealed hints.")
		} else {
			fmt.Fprintln(r.out, "Hard mode: OFF")
		}
	case "feedback", "f", "fb":
		r.feedback(args)
	case "remaining", "r", "left":
		r.remaining()
	case "solve":
		r.solve(args)
	case "benchmark", "bench":
		r.benchmark()
	case "reset":
		r.sv.Reset()
		fmt.Fprintf(r.out, "Reset to initial state. %d words available.\n", r.sv.RemainingCount())
	default:
		fmt.Fprintf(r.out, "Unknown command: %s\nType 'help' for available commands.\n", cmd)
	}
	return true
}

func (r *repl) suggest() {
	best, ok := r.sv.BestGuess()
	if !ok {
		fmt.Fprintln(r.out, "No possible words remaining. Use 'reset' to start over.")
		return
	}
	fmt.Fprintf(r.out, "Best guess: %s\n", color.Ize(color.Bold, strings.ToUpper(best.Word)))
	fmt.Fprintf(r.out, "  Entropy: %.3f bits\n", best.Entropy)
	fmt.Fprintf(r.out, "  Expected remaining: %.1f words\n", best.ExpectedRemaining)
	if best.IsPossibleAnswer {
		fmt.Fprintln(r.out, color.Ize(color.Green, "  ✓ This word is a possible answer"))
	} else {
		fmt.Fprintln(r.out, color.Ize(color.Yellow, "  ✗ This word is NOT a possible answer"))
	}
	fmt.Fprintf(r.out, "Remaining possibilities: %d\n", r.sv.RemainingCount())
	if r.sv.HardMode() {
		fmt.Fprintln(r.out, "Mode: HARD")
	}
}

func (r *repl) feedback(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(r.out, "Usage: feedback <word> <pattern>\nExample: feedback crane gybbb")
		return
	}
	guess, ok := words.Normalize(args[0])
	if !ok {
		fmt.Fprintln(r.out, errBadWord)
		return
	}
	p, err := pattern.Parse(strings.ToLower(args[1]))
	if err != nil {
		fmt.Fprintln(r.out, color.Ize(color.Red, err.Error()))
		fmt.Fprintln(r.out, "Use g=green, y=yellow, b=black (5 characters)")
		return
	}

	before := r.sv.RemainingCount()
	r.sv.ApplyFeedback(guess, p)
	after := r.sv.RemainingCount()

	fmt.Fprintf(r.out, "Guess: %s\nFeedback: %s\n", strings.ToUpper(guess), p)
	fmt.Fprintf(r.out, "Eliminated %d words (%d → %d)\n", before-after, before, after)
	switch {
	case p.IsWin():
		fmt.Fprintln(r.out, color.Ize(color.Green, "🎉 Congratulations! You solved it!"))
	case after == 0:
		fmt.Fprintln(r.out, color.Ize(color.Red, "⚠️  No words match this feedback pattern!"))
		fmt.Fprintln(r.out, "This might indicate an error. Use 'reset' to start over.")
	case after <= 10:
		fmt.Fprintf(r.out, "Remaining words: %s\n", strings.ToUpper(strings.Join(r.sv.PossibleAnswers(), " ")))
	}
}

func (r *repl) remaining() {
	left := r.sv.PossibleAnswers()
	fmt.Fprintf(r.out, "Remaining possibilities: %d\n", len(left))
	if len(left) > 20 {
		return
	}
	for i, w := range left {
		if i > 0 && i%10 == 0 {
			fmt.Fprintln(r.out)
		}
		fmt.Fprintf(r.out, "%8s", strings.ToUpper(w))
	}
	fmt.Fprintln(r.out)
}

// solve plays a fresh game on a clone, leaving the session as it was.
func (r *repl) solve(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(r.out, "Usage: solve <target_word>")
		return
	}
	target, ok := words.Normalize(args[0])
	if !ok {
		fmt.Fprintln(r.out, errBadWord)
		return
	}
	fmt.Fprintf(r.out, "Solving for: %s\n\n", strings.ToUpper(target))
	sv := r.sv.Clone()
	sv.Reset()
	printGame(r.out, sv.SolveForTarget(target))
}

func (r *repl) benchmark() {
	n := len(r.sv.AllWords())
	fmt.Fprintf(r.out, "Running benchmark on all %d words...\n", n)
	bar := newBar(r.out, n, "computing")
	res, err := bench.Run(context.Background(), r.sv, bench.Options{Workers: r.sv.Workers(), Progress: bar})
	_ = bar.Finish()
	if err != nil {
		fmt.Fprintln(r.out, color.Ize(color.Red, err.Error()))
		return
	}
	printResult(r.out, res)
}
