package equity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woneway/holdem-sim/internal/deck"
	"github.com/woneway/holdem-sim/internal/randutil"
)

func aces() []deck.Card {
	return []deck.Card{
		deck.NewCard(deck.Spades, deck.Ace),
		deck.NewCard(deck.Hearts, deck.Ace),
	}
}

func TestPocketAcesHeadsUpPreflop(t *testing.T) {
	t.Parallel()

	rng := randutil.New(1)
	win := Estimate(aces(), nil, 1, 20000, rng)

	// AA vs one random hand is ~85% to win preflop
	assert.InDelta(t, 0.85, win, 0.03)
}

func TestEquityDecreasesWithMoreOpponents(t *testing.T) {
	t.Parallel()

	rng := randutil.New(2)
	prev := 1.0
	for opponents := 1; opponents <= 7; opponents++ {
		win := Estimate(aces(), nil, opponents, 10000, rng)
		require.Less(t, win, prev, "equity should fall as opponents grow (opponents=%d)", opponents)
		require.Greater(t, win, 0.25, "AA stays the best preflop hand even 8-way")
		prev = win
	}
}

func TestMadeHandOnRiverIsCertain(t *testing.T) {
	t.Parallel()

	// Royal flush on a full board: no opponent holding can win or tie.
	hole := []deck.Card{
		deck.NewCard(deck.Spades, deck.Ace),
		deck.NewCard(deck.Spades, deck.King),
	}
	board := []deck.Card{
		deck.NewCard(deck.Spades, deck.Queen),
		deck.NewCard(deck.Spades, deck.Jack),
		deck.NewCard(deck.Spades, deck.Ten),
		deck.NewCard(deck.Hearts, deck.Two),
		deck.NewCard(deck.Diamonds, deck.Seven),
	}

	rng := randutil.New(3)
	win := Estimate(hole, board, 3, 2000, rng)
	assert.Equal(t, 1.0, win)
}

func TestEstimateParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	win := EstimateParallel(context.Background(), aces(), nil, 2, 20000, randutil.New(4))
	seq := Estimate(aces(), nil, 2, 20000, randutil.New(5))

	// Different RNG streams, same distribution
	assert.InDelta(t, seq, win, 0.03)
}

func TestEstimatePanicsWithoutHoleCards(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		Estimate(nil, nil, 1, 100, randutil.New(6))
	})
}
