package bench

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/pattern"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var testWords = []string{
	"crane", "slate", "trace", "crate", "raise",
	"arise", "stare", "roast", "toast", "beast",
	"grate", "irate", "plate", "state", "those",
	"speed", "creep", "charm", "quick", "dream",
}

type counter struct{ n atomic.Int64 }

func (c *counter) Add(n int) error {
	c.n.Add(int64(n))
	return nil
}

func TestRun(t *testing.T) {
	prog := &counter{}
	res, err := Run(context.Background(), solver.New(testWords), Options{Progress: prog})
	require.NoError(t, err)

	assert.Equal(t, len(testWords), res.Words)
	assert.Equal(t, 0, res.Failures)
	assert.False(t, res.HardMode)
	assert.EqualValues(t, len(testWords), prog.n.Load())
	assert.LessOrEqual(t, res.Worst(), 6)

	sum, total := 0, 0
	for g, n := range res.Histogram {
		sum += n
		total += g * n
	}
	assert.Equal(t, len(testWords), sum)
	assert.Equal(t, res.TotalGuesses, total)
	assert.InDelta(t, float64(total)/float64(len(testWords)), res.Average, 1e-12)

	buckets := res.Buckets()
	require.NotEmpty(t, buckets)
	for i := 1; i < len(buckets); i++ {
		assert.Less(t, buckets[i-1].Guesses, buckets[i].Guesses)
	}
}

func TestRunIsOrderIndependent(t *testing.T) {
	one, err := Run(context.Background(), solver.New(testWords), Options{Workers: 1})
	require.NoError(t, err)
	many, err := Run(context.Background(), solver.New(testWords), Options{Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, one.Histogram, many.Histogram)
	assert.Equal(t, one.TotalGuesses, many.TotalGuesses)
}

func TestRunLeavesBaseUntouched(t *testing.T) {
	base := solver.New(testWords)
	base.ApplyFeedback("crane", pattern.Calculate("crane", "crate"))
	remaining := base.RemainingCount()

	res, err := Run(context.Background(), base, Options{})
	require.NoError(t, err)
	assert.Equal(t, remaining, base.RemainingCount())

	fresh, err := Run(context.Background(), solver.New(testWords), Options{})
	require.NoError(t, err)
	assert.Equal(t, fresh.Histogram, res.Histogram)
}

func TestRunHardMode(t *testing.T) {
	res, err := Run(context.Background(), solver.New(testWords, solver.WithHardMode(true)), Options{})
	require.NoError(t, err)
	assert.True(t, res.HardMode)
	assert.Equal(t, 0, res.Failures)
}

func TestRunTargets(t *testing.T) {
	res, err := Run(context.Background(), solver.New(testWords), Options{Targets: []string{"crate", "those"}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Words)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, solver.New(testWords), Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReduceEmpty(t *testing.T) {
	res := reduce(nil)
	assert.Equal(t, 0, res.Words)
	assert.Equal(t, 0.0, res.Average)
	assert.Empty(t, res.Buckets())
}

func TestRunEmbeddedDictionary(t *testing.T) {
	if testing.Short() {
		t.Skip("solves every dictionary word")
	}
	d, err := words.Embedded()
	require.NoError(t, err)

	res, err := Run(context.Background(), solver.New(d.Words), Options{})
	require.NoError(t, err)
	assert.Equal(t, len(d.Words), res.Words)
	assert.Equal(t, 0, res.Failures)
	assert.LessOrEqual(t, res.Worst(), 6)
	assert.Less(t, res.Average, 4.0)
}
