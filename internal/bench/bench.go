// internal/bench/bench.go
//
// Whole-dictionary evaluation of the solver.
// Responsibilities:
//   - Solve every target word on a private clone of the solver.
//   - Count guesses per word and fold them into a histogram and an average.
//
// Each word is an independent task writing only its own result slot; the
// reduction runs after all tasks finish, so results never depend on the
// order in which tasks complete.
package bench

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/solver"
)

// Progress receives one Add(1) per solved word.
// *progressbar.ProgressBar satisfies it.
type Progress interface {
	Add(n int) error
}

// Options tune a benchmark run.
type Options struct {
	Workers  int      // parallel solves; defaults to GOMAXPROCS
	Targets  []string // words to solve; defaults to the whole dictionary
	Progress Progress // optional
}

// Bucket is one histogram row.
type Bucket struct {
	Guesses int `json:"guesses"`
	Count   int `json:"count"`
}

// Result aggregates one run.
type Result struct {
	Words        int           `json:"words"`
	TotalGuesses int           `json:"totalGuesses"`
	Histogram    map[int]int   `json:"histogram"` // guesses -> number of words
	Failures     int           `json:"failures"`  // words not solved
	Average      float64       `json:"average"`
	HardMode     bool          `json:"hardMode"`
	Elapsed      time.Duration `json:"elapsedNs"`
}

// Buckets returns the histogram ordered by guess count.
func (r *Result) Buckets() []Bucket {
	keys := maps.Keys(r.Histogram)
	slices.Sort(keys)
	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{Guesses: k, Count: r.Histogram[k]})
	}
	return out
}

// Worst returns the largest guess count seen.
func (r *Result) Worst() int {
	worst := 0
	for k := range r.Histogram {
		worst = max(worst, k)
	}
	return worst
}

type outcome struct {
	guesses int
	won     bool
}

// Run solves every target from the initial state of base. base itself is
// never modified; its hard-mode setting is inherited by every clone.
//
// Cancelling ctx stops scheduling new words and returns ctx's error.
func Run(ctx context.Context, base *solver.Solver, opts Options) (*Result, error) {
	targets := opts.Targets
	if targets == nil {
		targets = base.AllWords()
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()

	// The opening ranking is shared by all clones; compute it once with full
	// parallelism before fanning out single-threaded solves.
	warm := base.Clone()
	warm.Reset()
	warm.BestGuess()

	results := make([]outcome, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, target := range targets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s := base.Clone()
			s.Reset()
			s.SetWorkers(1)
			run := s.SolveForTarget(target)
			results[i] = outcome{guesses: run.Guesses(), won: run.Won()}
			if opts.Progress != nil {
				_ = opts.Progress.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := reduce(results)
	res.HardMode = base.HardMode()
	res.Elapsed = time.Since(start)

	log.Debug().
		Int("words", res.Words).
		Float64("average", res.Average).
		Int("failures", res.Failures).
		Dur("elapsed", res.Elapsed).
		Msg("benchmark finished")
	return res, nil
}

func reduce(results []outcome) *Result {
	res := &Result{Words: len(results), Histogram: make(map[int]int)}
	for _, o := range results {
		res.TotalGuesses += o.guesses
		res.Histogram[o.guesses]++
		if !o.won {
			res.Failures++
		}
	}
	if res.Words > 0 {
		res.Average = float64(res.TotalGuesses) / float64(res.Words)
	}
	return res
}
