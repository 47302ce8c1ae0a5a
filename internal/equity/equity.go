// Package equity estimates win probability by Monte Carlo rollout. It
// operates only on copies of the cards it is given and never touches engine
// state, so it is safe to run off the engine's critical path.
package equity

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/woneway/holdem-sim/internal/deck"
	"github.com/woneway/holdem-sim/internal/evaluator"
	"github.com/woneway/holdem-sim/internal/randutil"
)

type workerResult struct {
	credit  float64
	samples int
}

// Estimate runs samples independent rollouts of the hand and returns the
// empirical win fraction for the subject hole cards. Each rollout deals a
// uniformly random completion of the board and random opponent hole cards
// from the remaining deck without replacement. Ties count as a fractional
// win of 1/numWinners.
func Estimate(hole, board []deck.Card, opponents, samples int, rng *rand.Rand) float64 {
	if len(hole) != 2 {
		panic(fmt.Sprintf("equity: need exactly 2 hole cards, got %d", len(hole)))
	}
	if opponents < 1 || samples < 1 {
		return 0
	}

	available := remainingCards(hole, board)
	result := runWorker(hole, board, available, opponents, samples, rng)
	if result.samples == 0 {
		return 0
	}
	return result.credit / float64(result.samples)
}

// EstimateParallel splits the rollouts across workers. Workers share nothing
// but their immutable inputs; each gets an independent RNG derived from rng.
func EstimateParallel(ctx context.Context, hole, board []deck.Card, opponents, samples int, rng *rand.Rand) float64 {
	workers := runtime.GOMAXPROCS(0)
	if workers < 2 || samples < workers*64 {
		return Estimate(hole, board, opponents, samples, rng)
	}

	available := remainingCards(hole, board)
	perWorker := samples / workers
	remainder := samples % workers

	g, ctx := errgroup.WithContext(ctx)
	results := make(chan workerResult, workers)

	for w := 0; w < workers; w++ {
		n := perWorker
		if w < remainder {
			n++
		}
		seed := rng.Int64()
		g.Go(func() error {
			workerRng := randutil.New(seed)
			res := runWorker(hole, board, available, opponents, n, workerRng)
			select {
			case results <- res:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	go func() {
		defer close(results)
		_ = g.Wait()
	}()

	var total workerResult
	for res := range results {
		total.credit += res.credit
		total.samples += res.samples
	}

	if err := g.Wait(); err != nil || total.samples == 0 {
		// Fall back to a sequential pass rather than reporting a partial result.
		return Estimate(hole, board, opponents, samples, rng)
	}
	return total.credit / float64(total.samples)
}

func remainingCards(hole, board []deck.Card) []deck.Card {
	var used [52]bool
	for _, c := range hole {
		used[c.Index()] = true
	}
	for _, c := range board {
		used[c.Index()] = true
	}

	available := make([]deck.Card, 0, 52-len(hole)-len(board))
	for _, c := range deck.All() {
		if !used[c.Index()] {
			available = append(available, c)
		}
	}
	return available
}

func runWorker(hole, board, available []deck.Card, opponents, samples int, rng *rand.Rand) workerResult {
	needBoard := 5 - len(board)
	needed := needBoard + 2*opponents
	if needed > len(available) {
		return workerResult{}
	}

	scratch := make([]deck.Card, len(available))
	fullBoard := make([]deck.Card, 0, 5)
	subject := make([]deck.Card, 0, 7)
	oppHand := make([]deck.Card, 0, 7)

	var credit float64
	for i := 0; i < samples; i++ {
		copy(scratch, available)

		// Partial Fisher-Yates: draw the cards this rollout needs, uniformly
		// without replacement.
		for j := 0; j < needed; j++ {
			k := j + rng.IntN(len(scratch)-j)
			scratch[j], scratch[k] = scratch[k], scratch[j]
		}
		drawn := scratch[:needed]

		fullBoard = append(fullBoard[:0], board...)
		fullBoard = append(fullBoard, drawn[:needBoard]...)

		subject = append(subject[:0], hole...)
		subject = append(subject, fullBoard...)
		best := evaluator.Evaluate(subject)

		winners := 1
		subjectWins := true
		for o := 0; o < opponents; o++ {
			oppHand = append(oppHand[:0], drawn[needBoard+2*o:needBoard+2*o+2]...)
			oppHand = append(oppHand, fullBoard...)
			score := evaluator.Evaluate(oppHand)

			switch score.Compare(best) {
			case 1:
				subjectWins = false
			case 0:
				winners++
			}
			if !subjectWins {
				break
			}
		}

		if subjectWins {
			credit += 1.0 / float64(winners)
		}
	}

	return workerResult{credit: credit, samples: samples}
}
