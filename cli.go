// cli.go
//
// Command-line entry points.
//   wordle-solver                         interactive session (see repl.go)
//   wordle-solver solve <word> [--hard]   play against a known word
//   wordle-solver solve --daily           play against today's word
//   wordle-solver suggest [--top n]       best opening guesses
//   wordle-solver bench [--hard] [--save] solve every dictionary word
//   wordle-solver serve                   HTTP API
//   wordle-solver hash-password <pw>      bcrypt hash for OPERATOR_PASSWORD_HASH

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/TwiN/go-color"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/solver/assets"
	"github.com/robalobadob/wordle/apps/solver/internal/bench"
	"github.com/robalobadob/wordle/apps/solver/internal/config"
	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/game"
	"github.com/robalobadob/wordle/apps/solver/internal/httpserver"
	"github.com/robalobadob/wordle/apps/solver/internal/report"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/store"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var errBadWord = errors.New("word must be 5 letters a-z")

func newRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "wordle-solver",
		Short:        "Entropy-based Wordle solver",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sv, err := loadSolver(cfg, false)
			if err != nil {
				return err
			}
			return newREPL(sv, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
		},
	}
	root.AddCommand(
		newSolveCmd(cfg),
		newSuggestCmd(cfg),
		newBenchCmd(cfg),
		newServeCmd(cfg),
		newHashPasswordCmd(),
	)
	return root
}

// loadSolver reads the configured dictionary and builds a solver over it.
func loadSolver(cfg config.Config, hard bool) (*words.Dictionary, *solver.Solver, error) {
	d, err := words.Load(cfg.WordsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load dictionary: %w", err)
	}
	sv := solver.New(d.Words, solver.WithWorkers(cfg.Workers), solver.WithHardMode(hard))
	return d, sv, nil
}

func newSolveCmd(cfg config.Config) *cobra.Command {
	var hard, today bool
	cmd := &cobra.Command{
		Use:   "solve [word]",
		Short: "Solve for a known target word",
		Args:  cobra.RangeArgs(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sv, err := loadSolver(cfg, hard)
			if err != nil {
				return err
			}
			var target string
			switch {
			case today:
				now := time.Now()
				target = daily.Target(now, cfg.DailySalt, sv.AllWords())
				fmt.Fprintf(cmd.OutOrStdout(), "Daily word for %s\n", daily.DateKey(now))
			case len(args) == 1:
				w, ok := words.Normalize(args[0])
				if !ok {
					return errBadWord
				}
				target = w
			default:
				return errors.New("give a target word or --daily")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Solving for: %s\n\n", strings.ToUpper(target))
			printGame(out, sv.SolveForTarget(target))
			return nil
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, "hard mode: guesses must use every revealed hint")
	cmd.Flags().BoolVar(&today, "daily", false, "solve the word of the day (DAILY_SALT)")
	return cmd
}

func newSuggestCmd(cfg config.Config) *cobra.Command {
	var (
		hard bool
		top  int
	)
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Show the best opening guesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sv, err := loadSolver(cfg, hard)
			if err != nil {
				return err
			}
			printRanking(cmd.OutOrStdout(), sv.RankGuesses(top))
			return nil
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, "hard mode")
	cmd.Flags().IntVar(&top, "top", 5, "number of guesses to list")
	return cmd
}

func newBenchCmd(cfg config.Config) *cobra.Command {
	var (
		hard, save bool
		workers    int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Solve every dictionary word and report the guess distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, sv, err := loadSolver(cfg, hard)
			if err != nil {
				return err
			}
			if workers < 1 {
				workers = cfg.Workers
			}

			bar := newBar(cmd.ErrOrStderr(), len(sv.AllWords()), "solving")
			res, err := bench.Run(cmd.Context(), sv, bench.Options{Workers: workers, Progress: bar})
			_ = bar.Finish()
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)

			if save {
				run, err := saveResult(cmd, cfg, res)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved as run #%d\n", run.ID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, "hard mode")
	cmd.Flags().BoolVar(&save, "save", false, "store the result in DB_PATH")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (default WORKERS)")
	return cmd
}

func saveResult(cmd *cobra.Command, cfg config.Config, res *bench.Result) (*report.Run, error) {
	reports, closeDB, err := openReports(cfg)
	if err != nil {
		return nil, err
	}
	defer closeDB()
	return reports.Save(cmd.Context(), res)
}

// openReports opens and migrates the report database at DB_PATH.
func openReports(cfg config.Config) (*report.Store, func(), error) {
	if cfg.DBPath == "" {
		return nil, nil, errors.New("DB_PATH is not set")
	}
	db, err := report.Open(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", cfg.DBPath, err)
	}
	if err := report.Migrate(db, assets.Migrations()); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return report.NewStore(db), func() { _ = db.Close() }, nil
}

func newServeCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, sv, err := loadSolver(cfg, false)
			if err != nil {
				return err
			}

			var reports *report.Store
			if cfg.DBPath != "" {
				st, closeDB, err := openReports(cfg)
				if err != nil {
					return err
				}
				defer closeDB()
				reports = st
			}

			// warm the shared opening ranking before taking traffic
			sv.BestGuess()

			srv := httpserver.New(httpserver.Deps{
				Dict:    d,
				Solver:  sv,
				Cache:   store.NewMemoryStore(0),
				Reports: reports,
				Config:  cfg,
			})
			log.Info().Str("port", cfg.Port).Int("words", len(d.Words)).Msg("starting solver server")
			return srv.Start(":" + cfg.Port)
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for OPERATOR_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := httpserver.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
}

// ------------------------------- output ------------------------------------

func newBar(w io.Writer, n int, desc string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(int64(n),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func printGame(w io.Writer, g *game.Game) {
	for i, t := range g.Turns() {
		fmt.Fprintf(w, "Guess %d: %s → %s\n", i+1, strings.ToUpper(t.Guess), t.Pattern)
	}
	fmt.Fprintln(w)
	switch g.Status() {
	case game.Won:
		fmt.Fprintln(w, color.Ize(color.Green, fmt.Sprintf("✓ Solved in %d guesses!", g.Guesses())))
	case game.Stuck:
		fmt.Fprintln(w, color.Ize(color.Red, "✗ No candidate fits the feedback."))
	default:
		fmt.Fprintln(w, color.Ize(color.Red, fmt.Sprintf("✗ Failed to solve within %d guesses.", game.DefaultRounds)))
	}
}

func printRanking(w io.Writer, top []solver.GuessAnalysis) {
	if len(top) == 0 {
		fmt.Fprintln(w, "No possible words remaining.")
		return
	}
	fmt.Fprintf(w, "Top %d guesses:\n", len(top))
	fmt.Fprintf(w, "%4s %8s %8s %12s %s\n", "#", "Word", "Entropy", "Exp. Remain", "Possible?")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for i, a := range top {
		mark := ""
		if a.IsPossibleAnswer {
			mark = color.Ize(color.Green, "✓")
		}
		fmt.Fprintf(w, "%4d %8s %8.3f %12.1f %s\n", i+1, strings.ToUpper(a.Word), a.Entropy, a.ExpectedRemaining, mark)
	}
}

func printResult(w io.Writer, res *bench.Result) {
	fmt.Fprintln(w, "Guess distribution:")
	for _, b := range res.Buckets() {
		pct := float64(b.Count) / float64(res.Words) * 100
		bar := strings.Repeat("█", max(b.Count*40/res.Words, 1))
		fmt.Fprintf(w, "  %d guesses: %5d (%5.1f%%) %s\n", b.Guesses, b.Count, pct, bar)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Average guesses: %.3f\n", res.Average)
	fmt.Fprintf(w, "Total words: %d\n", res.Words)
	fmt.Fprintf(w, "Time elapsed: %s\n", res.Elapsed.Round(time.Millisecond))
	if res.Failures > 0 {
		fmt.Fprintln(w, color.Ize(color.Red, fmt.Sprintf("Words not solved in %d guesses: %d", game.DefaultRounds, res.Failures)))
	} else {
		fmt.Fprintln(w, color.Ize(color.Green, fmt.Sprintf("✓ All words solved within %d guesses!", game.DefaultRounds)))
	}
}
